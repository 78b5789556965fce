package assessment

// Self-sufficiency scores, from heavy support to fully independent.
const (
	ScoreHeavySupport = 1
	ScoreSignificant  = 2
	ScoreModerate     = 3
	ScoreMinimal      = 4
	ScoreIndependent  = 5
)

// SelfSufficiencyScore rates how independently a task was solved from the
// number of hints requested.
func SelfSufficiencyScore(hintsUsed int) int {
	switch {
	case hintsUsed <= 0:
		return ScoreIndependent
	case hintsUsed <= 1:
		return ScoreMinimal
	case hintsUsed <= 3:
		return ScoreModerate
	case hintsUsed <= 5:
		return ScoreSignificant
	default:
		return ScoreHeavySupport
	}
}

// ScoreLabel returns a short description of a self-sufficiency score.
func ScoreLabel(score int) string {
	switch score {
	case ScoreIndependent:
		return "solved independently"
	case ScoreMinimal:
		return "minimal help"
	case ScoreModerate:
		return "moderate help"
	case ScoreSignificant:
		return "significant help"
	case ScoreHeavySupport:
		return "heavy support"
	default:
		return "unknown"
	}
}
