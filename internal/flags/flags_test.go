package flags

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	f := Default()
	assert.False(t, f.ShowSolutionButton)
	assert.False(t, f.LegacyVisualButtons)
	assert.True(t, f.SmartVisualHint)
	assert.True(t, f.ProgressiveHints)
	assert.True(t, f.TrackSelfSufficiency)
	assert.NoError(t, f.Validate())
}

func TestStatus(t *testing.T) {
	s := Default().Status()
	assert.Equal(t, []string{
		"smartVisualHint", "useLightweightCharts", "progressiveHints",
		"smartApproachChecker", "trackSelfSufficiency", "showDebugControls",
	}, s.Active)
	assert.Equal(t, []string{
		"showSolutionButton", "legacyVisualButtons", "lazyLoadVisuals", "cacheRenderedGraphs",
	}, s.Disabled)
	assert.Equal(t, "6 active, 4 disabled", s.Summary)
}

func TestList_CoversEveryFlag(t *testing.T) {
	assert.Len(t, Default().List(), 10)
}

func TestValidate(t *testing.T) {
	f := Default()
	f.ShowSolutionButton = true
	assert.True(t, errors.Is(f.Validate(), ErrSolutionButton))

	f = Default()
	f.LegacyVisualButtons = true
	assert.Error(t, f.Validate())

	f.SmartVisualHint = false
	assert.NoError(t, f.Validate())
}

func TestLoad_MissingFile(t *testing.T) {
	f, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), f)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flags.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cacheRenderedGraphs: true\nshowDebugControls: false\n"), 0o644))

	f, err := Load(path)
	require.NoError(t, err)
	assert.True(t, f.CacheRenderedGraphs)
	assert.False(t, f.ShowDebugControls)
	assert.True(t, f.SmartVisualHint, "unset keys keep defaults")
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("smartVisualHint: [not, a, bool]\n"), 0o644))
	_, err := Load(bad)
	assert.Error(t, err)

	solution := filepath.Join(dir, "solution.yaml")
	require.NoError(t, os.WriteFile(solution, []byte("showSolutionButton: true\n"), 0o644))
	_, err = Load(solution)
	assert.True(t, errors.Is(err, ErrSolutionButton))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "flags.yaml")
	want := Default()
	want.LazyLoadVisuals = true

	require.NoError(t, Save(path, want))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestResolvePath(t *testing.T) {
	t.Setenv("COACH_FLAGS", "/tmp/custom.yaml")
	p, err := ResolvePath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.yaml", p)

	t.Setenv("COACH_FLAGS", "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	p, err = ResolvePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg", "coach", "flags.yaml"), p)
}

func TestSet(t *testing.T) {
	f := Default()
	require.NoError(t, f.Set("lazyLoadVisuals", true))
	assert.True(t, f.LazyLoadVisuals)

	require.NoError(t, f.Set("smartVisualHint", false))
	assert.False(t, f.SmartVisualHint)

	assert.Error(t, f.Set("noSuchFlag", true))
}
