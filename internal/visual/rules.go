package visual

// Justifications shown to the learner alongside the chosen visual.
const (
	ReasonDefault       = "Standard visual aid selection"
	ReasonFunctionGraph = "Funktionsgraph zeigt Nullstellen, Extrema und Verlauf"
	ReasonDerivativeAni = "Schrittweise Animation der Ableitungsregeln"
	ReasonTangentGraph  = "Graph mit Tangente verdeutlicht Steigung"
	ReasonIntegralArea  = "Animation zeigt Flächeninhalt unter der Kurve"
	ReasonUnitCircle    = "Einheitskreis-Animation verdeutlicht Zusammenhänge"
	ReasonGrowthDecay   = "Funktionsverlauf zeigt Wachstum/Zerfall"
	ReasonLinePoints    = "Gerade mit markierten Punkten"
	ReasonGeometryFacts = "Schlüsselfakten und geometrische Beziehungen"
	ReasonConvergence   = "Animation zeigt Konvergenzverhalten"

	NoteAnalytical   = " (Angepasst für analytischen Lerntyp)"
	NoteExperimental = " (Angepasst für experimentellen Lerntyp)"

	ReasonSevereStuck = "Schrittweise Animation für besseres Verständnis (du bist länger hier)"
	ReasonAlternative = "Alternative Visualisierung für neue Perspektive"
)

// RuleInput holds what the primary rules decide on.
type RuleInput struct {
	Categories []Category
	StuckLevel int
}

// Rule is one branch of the category-driven selection chain.
// Apply returns the chosen type and justification, or ok=false if the
// rule does not apply.
type Rule interface {
	Name() string
	Apply(in *RuleInput) (t VisualType, reason string, ok bool)
}

// categoryRule picks a fixed visual when any of its categories is present.
type categoryRule struct {
	name       string
	categories []Category
	visual     VisualType
	reason     string
}

func (r *categoryRule) Name() string { return r.name }

func (r *categoryRule) Apply(in *RuleInput) (VisualType, string, bool) {
	if hasAny(in.Categories, r.categories...) {
		return r.visual, r.reason, true
	}
	return "", "", false
}

// DerivativeStuckLevel is the stuck level (inclusive) from which derivative
// tasks get an animation instead of a tangent graph.
const DerivativeStuckLevel = 2

// derivativeRule shows derivative rules step by step to stuck learners and
// a tangent graph to everyone else.
type derivativeRule struct{}

func (r *derivativeRule) Name() string { return "derivative" }

func (r *derivativeRule) Apply(in *RuleInput) (VisualType, string, bool) {
	if !hasAny(in.Categories, CategoryDerivative) {
		return "", "", false
	}
	if in.StuckLevel >= DerivativeStuckLevel {
		return TypeAnimation, ReasonDerivativeAni, true
	}
	return TypeGraph, ReasonTangentGraph, true
}

// DefaultRules returns the primary selection rules in priority order.
// Function-shape tasks come first since a plot answers most of their
// questions at once.
func DefaultRules() []Rule {
	return []Rule{
		&categoryRule{
			name:       "function-shape",
			categories: []Category{CategoryPolynomial, CategoryExtremum, CategoryRoots, CategoryCurveSketch},
			visual:     TypeGraph,
			reason:     ReasonFunctionGraph,
		},
		&derivativeRule{},
		&categoryRule{name: "integral", categories: []Category{CategoryIntegral}, visual: TypeAnimation, reason: ReasonIntegralArea},
		&categoryRule{name: "trigonometry", categories: []Category{CategoryTrigonometry}, visual: TypeAnimation, reason: ReasonUnitCircle},
		&categoryRule{
			name:       "growth",
			categories: []Category{CategoryExponential, CategoryLogarithm},
			visual:     TypeGraph,
			reason:     ReasonGrowthDecay,
		},
		&categoryRule{name: "linear", categories: []Category{CategoryLinear}, visual: TypeGraph, reason: ReasonLinePoints},
		&categoryRule{name: "geometry", categories: []Category{CategoryGeometry}, visual: TypeKeyFacts, reason: ReasonGeometryFacts},
		&categoryRule{name: "limit", categories: []Category{CategoryLimit}, visual: TypeAnimation, reason: ReasonConvergence},
	}
}

// RunRules executes rules in order and returns the first match.
// Returns ("", "", "") if no rule applies.
func RunRules(rules []Rule, in *RuleInput) (VisualType, string, string) {
	for _, r := range rules {
		if t, reason, ok := r.Apply(in); ok {
			return t, reason, r.Name()
		}
	}
	return "", "", ""
}
