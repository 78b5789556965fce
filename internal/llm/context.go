package llm

import "context"

type contextKey string

const (
	purposeKey contextKey = "llm_purpose"
	sessionKey contextKey = "llm_session"
)

// WithPurpose attaches a purpose label to the context for event logging.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom extracts the purpose label from the context.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok {
		return v
	}
	return "unknown"
}

// WithSession links LLM requests made with ctx to a tutoring session.
func WithSession(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionKey, sessionID)
}

// SessionFrom returns the session ID attached by WithSession, or "".
func SessionFrom(ctx context.Context) string {
	v, _ := ctx.Value(sessionKey).(string)
	return v
}
