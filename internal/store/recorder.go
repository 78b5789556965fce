package store

import (
	"context"

	"github.com/claritycoach/coach/internal/visual"
)

// SelectionRecorder persists visual selections as events so usage history
// survives restarts. It implements visual.Recorder.
type SelectionRecorder struct {
	repo EventRepo
}

// NewSelectionRecorder returns a recorder writing to repo.
func NewSelectionRecorder(repo EventRepo) *SelectionRecorder {
	return &SelectionRecorder{repo: repo}
}

func (r *SelectionRecorder) RecordSelection(ctx context.Context, rec visual.SelectionRecord) error {
	cats := make([]string, len(rec.Decision.Categories))
	for i, c := range rec.Decision.Categories {
		cats[i] = string(c)
	}
	return r.repo.AppendVisualSelection(ctx, VisualSelectionEventData{
		SessionID:       rec.SessionID,
		TaskText:        rec.TaskText,
		Topic:           rec.Topic,
		LearnerType:     string(rec.LearnerType),
		VisualType:      string(rec.Decision.Type),
		Reason:          rec.Decision.Reason,
		Endpoint:        rec.Decision.Endpoint,
		Categories:      cats,
		StuckLevel:      rec.Decision.StuckLevel,
		TimeSpentSecs:   rec.Progress.TimeSpent,
		HintsUsed:       rec.Progress.HintsUsed,
		QuestionsViewed: rec.Progress.QuestionsViewed,
	})
}
