package assessment

import (
	"time"

	"github.com/claritycoach/coach/internal/visual"
)

// SessionInput is what a finished tutoring session reports.
type SessionInput struct {
	SessionID      string
	LearnerName    string
	Topic          string
	LearnerType    visual.LearnerType
	Start          time.Time
	End            time.Time
	Tasks          int
	Subtasks       int
	Visuals        []visual.VisualType // Every visual shown, in order
	HintsUsed      int
	ApproachChecks int
}

// SessionSummary aggregates a session for analytics.
type SessionSummary struct {
	SessionID      string
	LearnerName    string
	Topic          string
	LearnerType    visual.LearnerType
	StartedAt      time.Time
	Duration       time.Duration
	Tasks          int
	Subtasks       int
	Visualizations int // Visuals rendered by the generic endpoint
	Animations     int
	Graphs         int
	HintsUsed      int
	ApproachChecks int
	// SelfSufficiency is only set when tracking is enabled; 0 otherwise.
	SelfSufficiency int
}

// Summarize builds a SessionSummary. Visuals are bucketed by the backend
// endpoint that renders them, matching the legacy per-button counters.
// When trackSelfSufficiency is false the score is left at 0.
func Summarize(in SessionInput, trackSelfSufficiency bool) SessionSummary {
	s := SessionSummary{
		SessionID:      in.SessionID,
		LearnerName:    in.LearnerName,
		Topic:          in.Topic,
		LearnerType:    in.LearnerType,
		StartedAt:      in.Start,
		Tasks:          in.Tasks,
		Subtasks:       in.Subtasks,
		HintsUsed:      in.HintsUsed,
		ApproachChecks: in.ApproachChecks,
	}
	if in.End.After(in.Start) {
		s.Duration = in.End.Sub(in.Start)
	}

	for _, v := range in.Visuals {
		switch visual.Endpoint(v) {
		case visual.Endpoint(visual.TypeGraph):
			s.Graphs++
		case visual.Endpoint(visual.TypeAnimation):
			s.Animations++
		default:
			s.Visualizations++
		}
	}

	if trackSelfSufficiency {
		s.SelfSufficiency = SelfSufficiencyScore(in.HintsUsed)
	}
	return s
}

// TotalVisuals returns the number of visuals of any kind shown.
func (s SessionSummary) TotalVisuals() int {
	return s.Visualizations + s.Animations + s.Graphs
}
