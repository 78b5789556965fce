package visual

import "fmt"

// DefaultEndpoint serves any visual type without a dedicated endpoint.
const DefaultEndpoint = "/visualize"

// DefaultLabel is shown for visual types without a dedicated label.
const DefaultLabel = "💡 Visuelle Hilfe"

var endpoints = map[VisualType]string{
	TypeGraph:     "/plot",
	TypeAnimation: "/animate",
	TypeKeyFacts:  "/visualize",
	TypeFormula:   "/visualize",
	TypeDiagram:   "/visualize",
}

var labels = map[VisualType]string{
	TypeGraph:     "📊 Interaktive Grafik",
	TypeAnimation: "🎬 Schrittweise Animation",
	TypeKeyFacts:  "💡 Schlüsselfakten",
	TypeFormula:   "📐 Formelübersicht",
	TypeDiagram:   "📝 Konzeptdiagramm",
}

// Endpoint returns the backend path that renders the given visual type.
func Endpoint(t VisualType) string {
	if ep, ok := endpoints[t]; ok {
		return ep
	}
	return DefaultEndpoint
}

// Label returns the learner-facing label for the given visual type.
func Label(t VisualType) string {
	if l, ok := labels[t]; ok {
		return l
	}
	return DefaultLabel
}

// Validate checks that the lookup tables cover the closed enumerations, so
// a missing entry cannot hide behind a fallback value.
func Validate() error {
	for _, t := range AllVisualTypes() {
		if _, ok := endpoints[t]; !ok {
			return fmt.Errorf("visual type %q has no endpoint", t)
		}
		if _, ok := labels[t]; !ok {
			return fmt.Errorf("visual type %q has no label", t)
		}
	}

	seen := make(map[Category]bool, len(categoryPatterns))
	for _, cp := range categoryPatterns {
		if cp.pattern == nil {
			return fmt.Errorf("category %q has no pattern", cp.category)
		}
		if seen[cp.category] {
			return fmt.Errorf("duplicate pattern for category %q", cp.category)
		}
		seen[cp.category] = true
	}
	if seen[CategoryGeneral] {
		return fmt.Errorf("category %q must not have a pattern", CategoryGeneral)
	}
	for _, c := range []Category{
		CategoryExtremum, CategoryDerivative, CategoryIntegral, CategoryRoots,
		CategoryPolynomial, CategoryCurveSketch, CategoryLimit, CategoryGeometry,
		CategoryLinear, CategoryExponential, CategoryLogarithm, CategoryTrigonometry,
	} {
		if !seen[c] {
			return fmt.Errorf("category %q has no pattern", c)
		}
	}
	return nil
}
