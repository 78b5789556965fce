package assessment

import (
	"errors"
	"fmt"
)

// Rating bounds for evaluator scores.
const (
	MinRating = 1
	MaxRating = 5
)

// ErrMissingSession is returned when an evaluation has no session ID.
var ErrMissingSession = errors.New("assessment: session ID is required")

// Evaluation is a tutor's post-session rating of a tutoring session.
type Evaluation struct {
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

// Validate checks that the evaluation refers to a session and that every
// rating is within [MinRating, MaxRating].
func (e Evaluation) Validate() error {
	if e.SessionID == "" {
		return ErrMissingSession
	}
	ratings := []struct {
		name  string
		value int
	}{
		{"ai question quality", e.AIQuestionQuality},
		{"engagement level", e.EngagementLevel},
		{"understanding progress", e.UnderstandingProgress},
		{"efficiency score", e.EfficiencyScore},
	}
	for _, r := range ratings {
		if r.value < MinRating || r.value > MaxRating {
			return fmt.Errorf("assessment: %s %d out of range [%d, %d]", r.name, r.value, MinRating, MaxRating)
		}
	}
	if e.QuestionLoops < 0 {
		return fmt.Errorf("assessment: question loops must not be negative, got %d", e.QuestionLoops)
	}
	return nil
}

// Average returns the mean of the four ratings.
func (e Evaluation) Average() float64 {
	sum := e.AIQuestionQuality + e.EngagementLevel + e.UnderstandingProgress + e.EfficiencyScore
	return float64(sum) / 4
}
