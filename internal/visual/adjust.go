package visual

import "slices"

// adjustForLearner nudges the selection toward the learner's declared style.
// Analytical learners get key facts instead of an animation unless they are
// clearly stuck; experimental learners get a graph instead of key facts.
func adjustForLearner(t VisualType, reason string, learner LearnerType, stuckLevel int) (VisualType, string) {
	switch learner {
	case LearnerAnalytical:
		if t == TypeAnimation && stuckLevel < DerivativeStuckLevel {
			return TypeKeyFacts, reason + NoteAnalytical
		}
	case LearnerExperimental:
		if t == TypeKeyFacts {
			return TypeGraph, reason + NoteExperimental
		}
	}
	return t, reason
}

// adjustForStuck forces an animation for very stuck learners who have not
// seen one yet. Runs after adjustForLearner and overrides it.
func adjustForStuck(t VisualType, reason string, stuckLevel int, previous []VisualType) (VisualType, string) {
	if stuckLevel >= MaxStuckLevel && !slices.Contains(previous, TypeAnimation) {
		return TypeAnimation, ReasonSevereStuck
	}
	return t, reason
}

// alternativeOrder is the preference order when avoiding a repeat.
var alternativeOrder = []VisualType{TypeGraph, TypeAnimation, TypeKeyFacts}

// avoidRepetition swaps the selection for an unseen alternative when it
// equals the most recently shown visual. If every alternative has been
// shown the selection stands.
func avoidRepetition(t VisualType, reason string, previous []VisualType) (VisualType, string) {
	if len(previous) == 0 || previous[len(previous)-1] != t {
		return t, reason
	}
	for _, alt := range alternativeOrder {
		if !slices.Contains(previous, alt) {
			return alt, ReasonAlternative
		}
	}
	return t, reason
}
