package visual

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"
)

// SelectionRecord is handed to a Recorder after every selection.
type SelectionRecord struct {
	SessionID   string
	TaskText    string
	Topic       string
	LearnerType LearnerType
	Progress    Progress
	Decision    Decision
	Timestamp   time.Time
}

// Recorder persists selections beyond the in-memory usage log.
type Recorder interface {
	RecordSelection(ctx context.Context, rec SelectionRecord) error
}

// Selector picks the visual aid for a task and keeps a bounded usage log
// and a cache of rendered visuals. Selections depend only on the
// TaskContext; the log and cache never influence a decision.
//
// A Selector is safe for concurrent use.
type Selector struct {
	rules    []Rule
	now      func() time.Time
	recorder Recorder

	mu    sync.Mutex
	log   *usageLog
	cache *visualCache
}

// Option configures a Selector.
type Option func(*selectorConfig)

type selectorConfig struct {
	rules         []Rule
	now           func() time.Time
	recorder      Recorder
	logCapacity   int
	cacheCapacity int
	cacheTTL      time.Duration
}

// WithClock sets the time source used for log timestamps and cache expiry.
func WithClock(now func() time.Time) Option {
	return func(c *selectorConfig) { c.now = now }
}

// WithRecorder persists every selection through r.
func WithRecorder(r Recorder) Option {
	return func(c *selectorConfig) { c.recorder = r }
}

// WithRules replaces the primary rule chain.
func WithRules(rules []Rule) Option {
	return func(c *selectorConfig) { c.rules = rules }
}

// WithLogCapacity sets the usage log capacity.
func WithLogCapacity(n int) Option {
	return func(c *selectorConfig) { c.logCapacity = n }
}

// WithCacheCapacity sets the visual cache capacity.
func WithCacheCapacity(n int) Option {
	return func(c *selectorConfig) { c.cacheCapacity = n }
}

// WithCacheTTL sets how long cached visuals stay valid.
func WithCacheTTL(d time.Duration) Option {
	return func(c *selectorConfig) { c.cacheTTL = d }
}

// NewSelector creates a Selector with the default rule chain.
func NewSelector(opts ...Option) *Selector {
	cfg := selectorConfig{
		rules:         DefaultRules(),
		now:           time.Now,
		logCapacity:   DefaultLogCapacity,
		cacheCapacity: DefaultCacheCapacity,
		cacheTTL:      DefaultCacheTTL,
	}
	for _, o := range opts {
		o(&cfg)
	}
	return &Selector{
		rules:    cfg.rules,
		now:      cfg.now,
		recorder: cfg.recorder,
		log:      newUsageLog(cfg.logCapacity),
		cache:    newVisualCache(cfg.cacheCapacity, cfg.cacheTTL),
	}
}

// Select chooses the best visual aid for the task. It never fails: every
// input has a default and every lookup has a fallback.
//
// The decision runs in fixed stages: category rules, learner-type
// adjustment, severe-stuck override, then repetition avoidance. ctx is only
// used by the Recorder.
func (s *Selector) Select(ctx context.Context, task TaskContext) Decision {
	d := s.decide(task)

	now := s.now()
	learner := task.LearnerType.orDefault()

	s.mu.Lock()
	s.log.append(UsageEntry{
		Timestamp:   now,
		Categories:  append([]Category(nil), d.Categories...),
		Type:        d.Type,
		Reason:      d.Reason,
		LearnerType: learner,
		StuckLevel:  d.StuckLevel,
	})
	s.mu.Unlock()

	if s.recorder != nil {
		rec := SelectionRecord{
			SessionID:   task.SessionID,
			TaskText:    task.TaskText,
			Topic:       task.Topic,
			LearnerType: learner,
			Progress:    task.Progress,
			Decision:    d,
			Timestamp:   now,
		}
		// Recording is best effort; the learner still gets a visual.
		if err := s.recorder.RecordSelection(ctx, rec); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to record visual selection: %v\n", err)
		}
	}

	return d
}

// decide is the pure part of Select.
func (s *Selector) decide(task TaskContext) Decision {
	categories := DetectTaskTypes(task.TaskText+" "+task.SubtaskText, task.Topic)
	stuck := StuckLevel(task.Progress)

	selected, reason := TypeKeyFacts, ReasonDefault
	if t, r, name := RunRules(s.rules, &RuleInput{Categories: categories, StuckLevel: stuck}); name != "" {
		selected, reason = t, r
	}

	selected, reason = adjustForLearner(selected, reason, task.LearnerType.orDefault(), stuck)
	selected, reason = adjustForStuck(selected, reason, stuck, task.PreviousVisuals)
	selected, reason = avoidRepetition(selected, reason, task.PreviousVisuals)

	return Decision{
		Type:       selected,
		Reason:     reason,
		Categories: categories,
		StuckLevel: stuck,
		Endpoint:   Endpoint(selected),
	}
}

// UsageStats aggregates the usage log by visual type and category.
func (s *Selector) UsageStats() UsageStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log.stats()
}

// UsageLog returns a copy of the usage log, oldest first.
func (s *Selector) UsageLog() []UsageEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log.snapshot()
}

// CacheVisual stores a rendered visual under key, evicting the oldest
// cached visual when full.
func (s *Selector) CacheVisual(key string, payload any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.put(key, payload, s.now())
}

// CachedVisual returns the visual cached under key if it has not expired.
func (s *Selector) CachedVisual(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.get(key, s.now())
}

// ClearCache drops every cached visual.
func (s *Selector) ClearCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.clear()
}

// CacheLen returns the number of cached visuals, expired ones included.
func (s *Selector) CacheLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.len()
}
