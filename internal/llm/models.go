package llm

// DefaultMaxTokens is used when a Request leaves MaxTokens unset.
// Anthropic rejects requests without a limit.
const DefaultMaxTokens = 1024

// Friendly model names per provider. Anything not listed is passed
// through as a raw model ID.
var (
	anthropicModels = map[string]string{
		"claude-sonnet": "claude-sonnet-4-5-20250929",
		"claude-haiku":  "claude-haiku-4-5-20251001",
	}

	openaiModels = map[string]string{
		"gpt-4o":       "gpt-4o",
		"gpt-4o-mini":  "gpt-4o-mini",
		"gpt-4.1-mini": "gpt-4.1-mini",
	}

	geminiModels = map[string]string{
		"gemini-flash": "gemini-2.5-flash",
		"gemini-pro":   "gemini-2.5-pro",
	}
)

// resolveModel maps a friendly model name to a provider model ID.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}

func maxTokens(req Request) int {
	if req.MaxTokens > 0 {
		return req.MaxTokens
	}
	return DefaultMaxTokens
}

// finish turns a provider reply into a Response: a truncated reply is an
// error, and schema-bound content is validated.
func finish(req Request, resp *Response) (*Response, error) {
	if resp.StopReason == "max_tokens" {
		return nil, &ErrMaxTokensExceeded{Content: resp.Content}
	}
	if err := validateResponse(req.Schema, resp.Content); err != nil {
		return nil, err
	}
	return resp, nil
}
