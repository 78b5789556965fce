package flags

import (
	"errors"
	"fmt"
)

// Flags are the feature toggles of the tutoring frontend. The visual
// selector never reads them; callers decide whether to invoke it.
type Flags struct {
	// ShowSolutionButton is permanently off: revealing solutions
	// contradicts the Socratic method.
	ShowSolutionButton bool `yaml:"showSolutionButton"`

	// LegacyVisualButtons shows the three separate visual buttons
	// instead of the smart visual hint. Rollback only.
	LegacyVisualButtons bool `yaml:"legacyVisualButtons"`

	// SmartVisualHint enables the unified visual button backed by the
	// visual selector.
	SmartVisualHint bool `yaml:"smartVisualHint"`

	// UseLightweightCharts renders graphs with a small chart library.
	UseLightweightCharts bool `yaml:"useLightweightCharts"`

	// ProgressiveHints enables the three-level hint system.
	ProgressiveHints bool `yaml:"progressiveHints"`

	// SmartApproachChecker lets students check their approach without
	// seeing the solution.
	SmartApproachChecker bool `yaml:"smartApproachChecker"`

	LazyLoadVisuals bool `yaml:"lazyLoadVisuals"`

	// CacheRenderedGraphs keeps the render request of each subtask's
	// visual for 30 minutes and reuses it while the selection holds.
	CacheRenderedGraphs bool `yaml:"cacheRenderedGraphs"`

	// TrackSelfSufficiency records a 1-5 self-sufficiency score per session.
	TrackSelfSufficiency bool `yaml:"trackSelfSufficiency"`

	ShowDebugControls bool `yaml:"showDebugControls"`
}

// ErrSolutionButton is returned by Validate when the solution button is on.
var ErrSolutionButton = errors.New("showSolutionButton cannot be enabled")

// Default returns the production flag set.
func Default() Flags {
	return Flags{
		ShowSolutionButton:   false,
		LegacyVisualButtons:  false,
		SmartVisualHint:      true,
		UseLightweightCharts: true,
		ProgressiveHints:     true,
		SmartApproachChecker: true,
		LazyLoadVisuals:      false,
		CacheRenderedGraphs:  false,
		TrackSelfSufficiency: true,
		ShowDebugControls:    true,
	}
}

// Validate rejects flag combinations the frontend cannot serve.
func (f Flags) Validate() error {
	if f.ShowSolutionButton {
		return ErrSolutionButton
	}
	if f.SmartVisualHint && f.LegacyVisualButtons {
		return fmt.Errorf("smartVisualHint and legacyVisualButtons are mutually exclusive")
	}
	return nil
}

// Flag is a single named toggle.
type Flag struct {
	Name    string
	Enabled bool
}

type field struct {
	name string
	ptr  *bool
}

func (f *Flags) fields() []field {
	return []field{
		{"showSolutionButton", &f.ShowSolutionButton},
		{"legacyVisualButtons", &f.LegacyVisualButtons},
		{"smartVisualHint", &f.SmartVisualHint},
		{"useLightweightCharts", &f.UseLightweightCharts},
		{"progressiveHints", &f.ProgressiveHints},
		{"smartApproachChecker", &f.SmartApproachChecker},
		{"lazyLoadVisuals", &f.LazyLoadVisuals},
		{"cacheRenderedGraphs", &f.CacheRenderedGraphs},
		{"trackSelfSufficiency", &f.TrackSelfSufficiency},
		{"showDebugControls", &f.ShowDebugControls},
	}
}

// List returns every flag in declaration order.
func (f Flags) List() []Flag {
	fields := f.fields()
	out := make([]Flag, len(fields))
	for i, fd := range fields {
		out[i] = Flag{Name: fd.name, Enabled: *fd.ptr}
	}
	return out
}

// Set toggles the flag with the given YAML name. The result is not
// validated; call Validate before persisting.
func (f *Flags) Set(name string, enabled bool) error {
	for _, fd := range f.fields() {
		if fd.name == name {
			*fd.ptr = enabled
			return nil
		}
	}
	return fmt.Errorf("unknown flag %q", name)
}

// Status summarizes which flags are on.
type Status struct {
	Active   []string
	Disabled []string
	Summary  string
}

// Status returns the active and disabled flag names.
func (f Flags) Status() Status {
	var s Status
	for _, fl := range f.List() {
		if fl.Enabled {
			s.Active = append(s.Active, fl.Name)
		} else {
			s.Disabled = append(s.Disabled, fl.Name)
		}
	}
	s.Summary = fmt.Sprintf("%d active, %d disabled", len(s.Active), len(s.Disabled))
	return s
}
