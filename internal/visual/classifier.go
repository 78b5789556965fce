package visual

import (
	"regexp"
	"strings"
)

// Category is a detected mathematical task topic.
type Category string

const (
	CategoryExtremum     Category = "extremwert"
	CategoryDerivative   Category = "ableitung"
	CategoryIntegral     Category = "integral"
	CategoryRoots        Category = "nullstelle"
	CategoryPolynomial   Category = "polynom"
	CategoryCurveSketch  Category = "kurvendiskussion"
	CategoryLimit        Category = "grenzwert"
	CategoryGeometry     Category = "geometry"
	CategoryLinear       Category = "linear"
	CategoryExponential  Category = "exponential"
	CategoryLogarithm    Category = "logarithmus"
	CategoryTrigonometry Category = "trigonometrie"

	// CategoryGeneral is returned when no pattern matches.
	CategoryGeneral Category = "general"
)

// categoryPattern pairs a category with the pattern that detects it.
type categoryPattern struct {
	category Category
	pattern  *regexp.Regexp
}

// Short function names (sin, cos, tan, ln, log, lim) must not follow a
// letter, so "2sin(x)" and "=ln x" match but "Abstand" and "einzeln" do not.
// sin, cos, tan and ln must also not be followed by a letter other than x
// ("sinx" matches, "Tangente" and "sinnvoll" do not).
const (
	notAfterLetter  = `(?:^|[^a-zäöüß])`
	notBeforeLetter = `(?:x|[^a-zäöüß]|$)`
)

// categoryPatterns is matched in order; the result preserves this order.
var categoryPatterns = []categoryPattern{
	{CategoryExtremum, regexp.MustCompile(`(?i)extremwert|maximum|minimum|hochpunkt|tiefpunkt|extremstelle`)},
	{CategoryDerivative, regexp.MustCompile(`(?i)ableit|\bleite\b|f['′]|differenzier|steigung|tangente`)},
	{CategoryIntegral, regexp.MustCompile(`(?i)integral|∫|stammfunktion|fläche.*unter`)},
	{CategoryRoots, regexp.MustCompile(`(?i)nullstelle|=\s*0(?:[^0-9.,]|$)|löse.*gleichung|wurzel`)},
	// A lone power term such as "x^2" is not enough for polynom, it needs a
	// second term ("x^2-4") or an explicit keyword. Any integrand with two
	// terms still counts: "Integral von x^2+1" is integral and polynom.
	{CategoryPolynomial, regexp.MustCompile(`(?i)polynom|quadrat|kubisch|\bgrad\b|x\^[2-9]\s*[+\-]|[+\-]\s*[0-9]*x\^[2-9]`)},
	{CategoryCurveSketch, regexp.MustCompile(`(?i)kurvendiskussion|wendepunkt|monotonie|symmetrie`)},
	{CategoryLimit, regexp.MustCompile(`(?i)grenzwert|limes|` + notAfterLetter + `lim|konvergen`)},
	{CategoryGeometry, regexp.MustCompile(`(?i)dreieck|kreis|rechteck|fläche|umfang|winkel|pythagoras`)},
	{CategoryLinear, regexp.MustCompile(`(?i)linear|gerade|y.*=.*mx|steigungsdreieck`)},
	{CategoryExponential, regexp.MustCompile(`(?i)exponential|e\^|wachstum|zerfall|halbwertszeit`)},
	{CategoryLogarithm, regexp.MustCompile(`(?i)logarithm|` + notAfterLetter + `(?:ln` + notBeforeLetter + `|log)|natürlich`)},
	{CategoryTrigonometry, regexp.MustCompile(`(?i)` + notAfterLetter + `(?:sin|cos|tan)` + notBeforeLetter + `|sinus|cosinus|tangens|trigonometr|einheitskreis`)},
}

// AllCategories returns every detectable category in match order.
// CategoryGeneral is not included.
func AllCategories() []Category {
	out := make([]Category, len(categoryPatterns))
	for i, cp := range categoryPatterns {
		out[i] = cp.category
	}
	return out
}

// DetectTaskTypes returns every category whose pattern matches the task
// text and topic. The result is never empty: it is [CategoryGeneral] when
// nothing matches.
func DetectTaskTypes(text, topic string) []Category {
	full := strings.ToLower(text + " " + topic)

	var detected []Category
	for _, cp := range categoryPatterns {
		if cp.pattern.MatchString(full) {
			detected = append(detected, cp.category)
		}
	}

	if len(detected) == 0 {
		return []Category{CategoryGeneral}
	}
	return detected
}

// hasAny reports whether cats contains any of want.
func hasAny(cats []Category, want ...Category) bool {
	for _, c := range cats {
		for _, w := range want {
			if c == w {
				return true
			}
		}
	}
	return false
}
