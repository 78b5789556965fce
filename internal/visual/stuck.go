package visual

const (
	// LongStuckSecs is the time on task (exclusive) after which the
	// learner counts as stuck for a long time.
	LongStuckSecs = 300

	// StuckSecs is the time on task (exclusive) after which the learner
	// counts as somewhat stuck.
	StuckSecs = 120

	// HintThreshold is the hint count (inclusive) that signals difficulty.
	HintThreshold = 2

	// QuestionCyclingThreshold is the number of viewed questions
	// (inclusive) that signals the learner is cycling between subtasks.
	QuestionCyclingThreshold = 3

	// MaxStuckLevel is the highest stuck level.
	MaxStuckLevel = 3
)

// StuckLevel estimates how stuck the learner is, from 0 (not stuck) to
// MaxStuckLevel (very stuck).
func StuckLevel(p Progress) int {
	level := 0

	switch {
	case p.TimeSpent > LongStuckSecs:
		level += 2
	case p.TimeSpent > StuckSecs:
		level++
	}

	if p.HintsUsed >= HintThreshold {
		level++
	}

	if p.QuestionsViewed >= QuestionCyclingThreshold {
		level++
	}

	return min(level, MaxStuckLevel)
}
