package visual

import "time"

// VisualType is the kind of visual aid shown to the learner.
type VisualType string

const (
	TypeGraph     VisualType = "graph"     // Interactive function plot
	TypeAnimation VisualType = "animation" // Step-by-step animation
	TypeKeyFacts  VisualType = "key_facts" // Structured key facts panel
	TypeFormula   VisualType = "formula"   // Formula breakdown
	TypeDiagram   VisualType = "diagram"   // Concept diagram
)

// AllVisualTypes returns every visual type in declaration order.
func AllVisualTypes() []VisualType {
	return []VisualType{TypeGraph, TypeAnimation, TypeKeyFacts, TypeFormula, TypeDiagram}
}

// ParseVisualType converts a string to a VisualType.
// Returns false for values outside the closed set.
func ParseVisualType(s string) (VisualType, bool) {
	for _, t := range AllVisualTypes() {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// LearnerType is the learner's declared style preference.
type LearnerType string

const (
	LearnerVisual       LearnerType = "visual"
	LearnerAnalytical   LearnerType = "analytical"
	LearnerExperimental LearnerType = "experimental"
)

// orDefault returns LearnerVisual for an empty learner type.
func (l LearnerType) orDefault() LearnerType {
	if l == "" {
		return LearnerVisual
	}
	return l
}

// Progress is the student's progress on the current task.
// The zero value means no time spent and no help used.
type Progress struct {
	TimeSpent       int // Seconds on the current task
	HintsUsed       int
	QuestionsViewed int // Distinct subtasks/questions viewed
}

// TaskContext is the input for a single visual selection. All fields are
// optional.
type TaskContext struct {
	TaskText        string
	SubtaskText     string
	Topic           string
	LearnerType     LearnerType
	Progress        Progress
	PreviousVisuals []VisualType // Oldest first

	// SessionID is passed through to the Recorder. It does not affect
	// the decision.
	SessionID string
}

// Decision is the output of a visual selection.
type Decision struct {
	Type       VisualType
	Reason     string
	Categories []Category
	StuckLevel int
	Endpoint   string
}

// UsageEntry is one record in the selector's usage log.
type UsageEntry struct {
	Timestamp   time.Time
	Categories  []Category
	Type        VisualType
	Reason      string
	LearnerType LearnerType
	StuckLevel  int
}

// UsageStats aggregates the usage log.
type UsageStats struct {
	Total      int
	ByType     map[VisualType]int
	ByCategory map[Category]int
}
