package cmd

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claritycoach/coach/internal/flags"
	"github.com/claritycoach/coach/internal/hints"
	"github.com/claritycoach/coach/internal/llm"
	"github.com/claritycoach/coach/internal/store"
	"github.com/claritycoach/coach/internal/visual"
)

func run(t *testing.T, args ...string) error {
	t.Helper()
	resetFlags(rootCmd)
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(context.Background())
}

// resetFlags restores every flag to its default so one test's flags do
// not leak into the next run of the shared command tree.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// workspace returns fresh --db and --flags paths, with f saved as flags.
func workspace(t *testing.T, f flags.Flags) (db, fl string) {
	t.Helper()
	dir := t.TempDir()
	db = filepath.Join(dir, "coach.db")
	fl = filepath.Join(dir, "flags.yaml")
	require.NoError(t, flags.Save(fl, f))
	return db, fl
}

// scriptProvider makes tutoring commands use a scripted provider that still
// logs through the event repo.
func scriptProvider(t *testing.T, replies ...llm.MockResponse) {
	t.Helper()
	orig := tutorProvider
	tutorProvider = func(_ context.Context, repo store.EventRepo) (llm.Provider, error) {
		return llm.WithLogging(llm.NewMockProvider(replies...), llm.ProviderMock, repo), nil
	}
	t.Cleanup(func() { tutorProvider = orig })
}

func TestSelectRecordsDecision(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "coach.db")
	fl := filepath.Join(dir, "flags.yaml")

	err := run(t, "select", "--db", db, "--flags", fl,
		"--task", "Berechne das Integral von f(x)=x^2 im Intervall [0,2]",
		"--session", "s-select", "--history", "graph")
	require.NoError(t, err)

	s, err := store.Open(db)
	require.NoError(t, err)
	defer s.Close()

	recs, err := s.EventRepo().QueryVisualSelections(context.Background(), store.QueryOpts{SessionID: "s-select"})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Contains(t, recs[0].Categories, "integral")
	assert.NotEqual(t, "graph", recs[0].VisualType)
}

func TestSelectRejectsUnknownHistory(t *testing.T) {
	dir := t.TempDir()
	err := run(t, "select", "--db", filepath.Join(dir, "coach.db"), "--flags", filepath.Join(dir, "flags.yaml"),
		"--history", "hologram")
	assert.ErrorContains(t, err, "hologram")
}

func TestHintDisabledByFlags(t *testing.T) {
	dir := t.TempDir()
	fl := filepath.Join(dir, "flags.yaml")
	f := flags.Default()
	f.ProgressiveHints = false
	require.NoError(t, flags.Save(fl, f))

	err := run(t, "hint", "--db", filepath.Join(dir, "coach.db"), "--flags", fl, "--subtask", "Bestimme f'(x).")
	assert.ErrorIs(t, err, errFeatureDisabled)
}

func TestSessionRateValidates(t *testing.T) {
	dir := t.TempDir()
	err := run(t, "session", "rate", "s1", "--db", filepath.Join(dir, "coach.db"),
		"--question-quality", "9", "--engagement", "3", "--understanding", "3", "--efficiency", "3")
	assert.ErrorContains(t, err, "out of range")
}

func TestSessionLogRejectsUnknownLearner(t *testing.T) {
	db, fl := workspace(t, flags.Default())
	err := run(t, "session", "log", "s1", "--db", db, "--flags", fl, "--learner", "foo")
	assert.ErrorContains(t, err, `unknown learner type "foo"`)

	s, err := store.Open(db)
	require.NoError(t, err)
	defer s.Close()
	sessions, err := s.EventRepo().QuerySessions(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestSelectCachesRenderedVisual(t *testing.T) {
	f := flags.Default()
	f.CacheRenderedGraphs = true
	db, fl := workspace(t, f)

	args := []string{"select", "--db", db, "--flags", fl,
		"--task", "Bestimme die Periode von f(x)=2sin(x)", "--session", "s-cache"}
	require.NoError(t, run(t, args...))
	require.NoError(t, run(t, args...))

	s, err := store.Open(db)
	require.NoError(t, err)
	defer s.Close()
	ctx := context.Background()

	cached, err := s.RenderCache(visual.DefaultCacheTTL).List(ctx, "s-cache")
	require.NoError(t, err)
	require.Len(t, cached, 1, "the second run must reuse the first render")
	assert.Equal(t, "animation", cached[0].VisualType)
	assert.Contains(t, cached[0].Payload, `"endpoint":"/animate"`)

	recs, err := s.EventRepo().QueryVisualSelections(ctx, store.QueryOpts{SessionID: "s-cache"})
	require.NoError(t, err)
	assert.Len(t, recs, 2, "every run still records its selection")
}

func TestSelectWithoutCacheFlagStoresNoRender(t *testing.T) {
	db, fl := workspace(t, flags.Default())
	require.NoError(t, run(t, "select", "--db", db, "--flags", fl, "--task", "Löse 2ln(x)=4", "--session", "s-nocache"))

	s, err := store.Open(db)
	require.NoError(t, err)
	defer s.Close()
	cached, err := s.RenderCache(visual.DefaultCacheTTL).List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, cached)
}

const clarifyReply = `{"tasks": [{
	"number": "1",
	"topic": "Integralrechnung",
	"difficulty": "leicht",
	"task": "Gegeben ist f(x) = x^2.",
	"subtasks": [
		{"label": "a", "task": "Berechne das Integral von 0 bis 2.", "questions": ["Welche Stammfunktion hat x^2?"]},
		{"label": "b", "task": "Skizziere die Fläche unter f.", "questions": ["Wo schneidet f die x-Achse?"]}
	]
}]}`

func TestClarifyRecordsDecomposition(t *testing.T) {
	scriptProvider(t, llm.MockJSON(clarifyReply))
	db, fl := workspace(t, flags.Default())

	err := run(t, "clarify", "--db", db, "--flags", fl, "--session", "s-clarify", "--visuals",
		"1. Gegeben ist f(x) = x^2. a) Berechne das Integral von 0 bis 2. b) Skizziere die Fläche unter f.")
	require.NoError(t, err)

	s, err := store.Open(db)
	require.NoError(t, err)
	defer s.Close()
	ctx := context.Background()
	repo := s.EventRepo()

	decs, err := repo.QueryDecompositions(ctx, store.QueryOpts{SessionID: "s-clarify"})
	require.NoError(t, err)
	require.Len(t, decs, 1)
	assert.Equal(t, 1, decs[0].Tasks)
	assert.Equal(t, 2, decs[0].Subtasks)
	assert.Contains(t, decs[0].Result, "Integralrechnung")

	calls, err := repo.QueryLLMEvents(ctx, store.QueryOpts{SessionID: "s-clarify"})
	require.NoError(t, err)
	require.Len(t, calls, 1)
	assert.Equal(t, "task-decomposition", calls[0].Purpose)
}

func TestClarifyRejectsEmptyText(t *testing.T) {
	scriptProvider(t)
	db, fl := workspace(t, flags.Default())
	err := run(t, "clarify", "--db", db, "--flags", fl, "   ")
	assert.ErrorIs(t, err, hints.ErrEmptyTask)
}

func TestSortedKeys(t *testing.T) {
	got := sortedKeys(map[string]int{"integral": 2, "ableitung": 5, "general": 2})
	assert.Equal(t, []string{"ableitung", "general", "integral"}, got)
}
