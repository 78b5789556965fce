package visual

import (
	"slices"
	"testing"
)

func TestDetectTaskTypes_SingleCategory(t *testing.T) {
	tests := []struct {
		text string
		want Category
	}{
		{"Finde das Maximum der Funktion", CategoryExtremum},
		{"Bestimme den Hochpunkt", CategoryExtremum},
		{"Bestimme f'(x)", CategoryDerivative},
		{"Leite f(x)=x^3 ab", CategoryDerivative},
		{"Berechne die Stammfunktion", CategoryIntegral},
		{"Berechne ∫ x dx", CategoryIntegral},
		{"Löse die Gleichung 2x = 4", CategoryRoots},
		{"Setze f(x) = 0", CategoryRoots},
		{"Ein kubisches Polynom", CategoryPolynomial},
		{"f(x) = x^2 + 3x", CategoryPolynomial},
		{"Untersuche die Monotonie", CategoryCurveSketch},
		{"Berechne den Grenzwert", CategoryLimit},
		{"Umfang eines Kreises", CategoryGeometry},
		{"Die Gerade durch zwei Punkte", CategoryLinear},
		{"Exponentielles Wachstum einer Population", CategoryExponential},
		{"Rechne mit dem Logarithmus", CategoryLogarithm},
		{"Löse ln(x) auf", CategoryLogarithm},
		{"Berechne sin(x) am Einheitskreis", CategoryTrigonometry},
		{"Bestimme die Periode von f(x)=2sin(x)", CategoryTrigonometry},
		{"Skizziere f(x)=3cos(x)", CategoryTrigonometry},
		{"Bestimme g(x)=sinx", CategoryTrigonometry},
		{"Löse 2ln(x)=4", CategoryLogarithm},
		{"Vereinfache 3log_2(8)", CategoryLogarithm},
		{"Berechne lim_{x→0} sin(x)/x", CategoryLimit},
		{"Ist die Folge konvergent?", CategoryLimit},
	}

	for _, tt := range tests {
		got := DetectTaskTypes(tt.text, "")
		if !slices.Contains(got, tt.want) {
			t.Errorf("DetectTaskTypes(%q) = %v, want to contain %q", tt.text, got, tt.want)
		}
	}
}

func TestDetectTaskTypes_General(t *testing.T) {
	got := DetectTaskTypes("Berechne den Abstand", "")
	if len(got) != 1 || got[0] != CategoryGeneral {
		t.Errorf("got %v, want [general]", got)
	}
}

func TestDetectTaskTypes_Empty(t *testing.T) {
	got := DetectTaskTypes("", "")
	if len(got) != 1 || got[0] != CategoryGeneral {
		t.Errorf("got %v, want [general]", got)
	}
}

func TestDetectTaskTypes_CaseInsensitive(t *testing.T) {
	lower := DetectTaskTypes("bestimme die nullstellen", "")
	upper := DetectTaskTypes("BESTIMME DIE NULLSTELLEN", "")
	if !slices.Equal(lower, upper) {
		t.Errorf("lower = %v, upper = %v, want equal", lower, upper)
	}
	if !slices.Contains(upper, CategoryRoots) {
		t.Errorf("got %v, want to contain %q", upper, CategoryRoots)
	}
}

func TestDetectTaskTypes_TopicCounts(t *testing.T) {
	got := DetectTaskTypes("Aufgabe 3", "Integralrechnung")
	if !slices.Contains(got, CategoryIntegral) {
		t.Errorf("got %v, want topic to contribute %q", got, CategoryIntegral)
	}
}

func TestDetectTaskTypes_MultipleInTableOrder(t *testing.T) {
	// Scenario A: root finding on a polynomial.
	got := DetectTaskTypes("Bestimme die Nullstellen von f(x)=x^2-4", "")
	want := []Category{CategoryRoots, CategoryPolynomial}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	got = DetectTaskTypes("Bestimme Hochpunkt und Wendepunkt des Polynoms", "")
	want = []Category{CategoryExtremum, CategoryPolynomial, CategoryCurveSketch}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDetectTaskTypes_WordBoundaries(t *testing.T) {
	tests := []struct {
		text   string
		absent Category
	}{
		{"Berechne den Abstand", CategoryTrigonometry}, // "tan" inside a word
		{"Zeichne die Tangente", CategoryTrigonometry},
		{"Zähle einzeln", CategoryLogarithm}, // "ln" inside a word
		{"Das ist sinnvoll", CategoryTrigonometry},
		{"Suche im Katalog", CategoryLogarithm},
		{"Eliminiere y", CategoryLimit},
		{"Er begleitet sie", CategoryDerivative},
		{"Berechne das Integral von f(x)=x^2", CategoryPolynomial},
	}
	for _, tt := range tests {
		got := DetectTaskTypes(tt.text, "")
		if slices.Contains(got, tt.absent) {
			t.Errorf("DetectTaskTypes(%q) = %v, should not contain %q", tt.text, got, tt.absent)
		}
	}
}

func TestDetectTaskTypes_IntegralOfPolynomial(t *testing.T) {
	// A two-term integrand still reads as a polynomial, so graph wins over
	// the area animation here.
	got := DetectTaskTypes("Berechne das Integral von f(x)=x^2+1", "")
	want := []Category{CategoryIntegral, CategoryPolynomial}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDetectTaskTypes_NeverEmpty(t *testing.T) {
	inputs := []string{"", " ", "xyz", "12345", "Bestimme die Nullstellen", "∫"}
	for _, in := range inputs {
		got := DetectTaskTypes(in, "")
		if len(got) == 0 {
			t.Errorf("DetectTaskTypes(%q) returned empty result", in)
		}
		if slices.Contains(got, CategoryGeneral) && len(got) != 1 {
			t.Errorf("DetectTaskTypes(%q) = %v, general must stand alone", in, got)
		}
	}
}

func TestAllCategories(t *testing.T) {
	all := AllCategories()
	if len(all) != 12 {
		t.Fatalf("got %d categories, want 12", len(all))
	}
	if slices.Contains(all, CategoryGeneral) {
		t.Error("general must not be a detectable category")
	}
}
