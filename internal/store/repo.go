package store

import (
	"context"
	"time"
)

const (
	tableVisualSelections = "visual_selection_events"
	tableHints            = "hint_events"
	tableApproachChecks   = "approach_check_events"
	tableSessions         = "session_events"
	tableEvaluations      = "evaluation_events"
	tableDecompositions   = "decomposition_events"
	tableLLMRequests      = "llm_request_events"
	tableRenderedVisuals  = "rendered_visuals"
)

// QueryOpts configures event queries with filtering and pagination.
// Results are always ordered newest first.
type QueryOpts struct {
	Limit     int       // max results (0 = unlimited)
	After     int64     // sequence > After
	Before    int64     // sequence < Before
	From      time.Time // timestamp >= From
	To        time.Time // timestamp <= To
	SessionID string    // exact match when set
}

// EventMeta is common to every stored event.
type EventMeta struct {
	ID        int64
	Sequence  int64
	Timestamp time.Time
}

// VisualSelectionEventData is one visual-aid decision.
type VisualSelectionEventData struct {
	SessionID       string
	TaskText        string
	Topic           string
	LearnerType     string
	VisualType      string
	Reason          string
	Endpoint        string
	Categories      []string
	StuckLevel      int
	TimeSpentSecs   int
	HintsUsed       int
	QuestionsViewed int
}

// VisualSelectionRecord is a stored visual selection.
type VisualSelectionRecord struct {
	EventMeta
	VisualSelectionEventData
}

// VisualUsage aggregates stored visual selections.
type VisualUsage struct {
	Total      int
	ByType     map[string]int
	ByCategory map[string]int
}

// HintEventData is one progressive hint handed to a student.
type HintEventData struct {
	SessionID     string
	Level         int
	SubtaskText   string
	HintText      string
	Encouragement string
}

// ApproachCheckEventData is one approach check of a student's work.
type ApproachCheckEventData struct {
	SessionID    string
	SubtaskText  string
	StudentWork  string
	OnRightTrack bool
	Confidence   int
	NextStep     string
}

// SessionEventData is the summary of a finished tutoring session.
type SessionEventData struct {
	SessionID       string
	LearnerName     string
	Topic           string
	LearnerType     string
	StartedAt       time.Time
	DurationSecs    int
	Tasks           int
	Subtasks        int
	Visualizations  int
	Animations      int
	Graphs          int
	HintsUsed       int
	ApproachChecks  int
	SelfSufficiency int
}

// SessionRecord is a stored session summary.
type SessionRecord struct {
	EventMeta
	SessionEventData
}

// EvaluationEventData is a tutor's rating of a session.
type EvaluationEventData struct {
	SessionID             string
	Assessor              string
	AIQuestionQuality     int
	EngagementLevel       int
	UnderstandingProgress int
	EfficiencyScore       int
	LearnerTypeIndicator  string
	QuestionLoops         int
	Remarks               string
	FurtherConsiderations string
}

// EvaluationRecord is a stored evaluation.
type EvaluationRecord struct {
	EventMeta
	EvaluationEventData
}

// DecompositionEventData is one task text split into numbered tasks.
// Result holds the decomposition as JSON.
type DecompositionEventData struct {
	SessionID  string
	SourceText string
	Tasks      int
	Subtasks   int
	Result     string
}

// DecompositionRecord is a stored decomposition.
type DecompositionRecord struct {
	EventMeta
	DecompositionEventData
}

// RenderedVisual is a visual rendered for one task of a session.
type RenderedVisual struct {
	Key        string
	SessionID  string
	VisualType string
	Endpoint   string
	Payload    string
	RenderedAt time.Time
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	SessionID    string
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEventRecord is a stored LLM request.
type LLMEventRecord struct {
	EventMeta
	LLMRequestEventData
}

// ModelUsage aggregates token usage for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// PurposeUsage aggregates token usage and latency for one purpose label.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	AppendVisualSelection(ctx context.Context, data VisualSelectionEventData) error
	AppendHint(ctx context.Context, data HintEventData) error
	AppendApproachCheck(ctx context.Context, data ApproachCheckEventData) error
	AppendSession(ctx context.Context, data SessionEventData) error
	AppendEvaluation(ctx context.Context, data EvaluationEventData) error
	AppendDecomposition(ctx context.Context, data DecompositionEventData) error

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	QueryVisualSelections(ctx context.Context, opts QueryOpts) ([]VisualSelectionRecord, error)

	// VisualUsageCounts aggregates every stored visual selection matching
	// opts. Limit is ignored.
	VisualUsageCounts(ctx context.Context, opts QueryOpts) (VisualUsage, error)

	QuerySessions(ctx context.Context, opts QueryOpts) ([]SessionRecord, error)
	QueryEvaluations(ctx context.Context, opts QueryOpts) ([]EvaluationRecord, error)
	QueryDecompositions(ctx context.Context, opts QueryOpts) ([]DecompositionRecord, error)

	// SessionActivity counts hints and approach checks recorded for a session.
	SessionActivity(ctx context.Context, sessionID string) (hints, checks int, err error)

	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error)

	// GetLLMEvent returns nil when no event has the given ID.
	GetLLMEvent(ctx context.Context, id int64) (*LLMEventRecord, error)

	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
}

// RenderCache persists rendered visuals across runs. Entries older than the
// cache TTL count as missing.
type RenderCache interface {
	// Get returns nil when key has no fresh entry. A stale entry is deleted.
	Get(ctx context.Context, key string) (*RenderedVisual, error)

	// Put stores v under v.Key, replacing any previous entry.
	Put(ctx context.Context, v RenderedVisual) error

	// List returns the fresh entries of a session, newest first. An empty
	// sessionID lists every session.
	List(ctx context.Context, sessionID string) ([]RenderedVisual, error)

	// Clear deletes the entries of a session, or all entries when
	// sessionID is empty, and reports how many were removed.
	Clear(ctx context.Context, sessionID string) (int64, error)
}
