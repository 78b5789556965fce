package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo with the ent SQL builder over database/sql
// and the global sequence counter.
type eventRepo struct {
	db      *sql.DB
	builder *entsql.DialectBuilder
	seq     *sequenceCounter
	now     func() time.Time
}

var metaColumns = []string{"id", "sequence", "timestamp"}

// insert appends one row to an event table, stamping it with the next
// global sequence number and the current time.
func (r *eventRepo) insert(ctx context.Context, table string, cols []string, vals []any) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := r.builder.Insert(table).
		Columns(append([]string{"sequence", "timestamp"}, cols...)...).
		Values(append([]any{seqNum, r.now()}, vals...)...).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert into %s: %w", table, err)
	}
	return nil
}

// selectEvents builds a newest-first query over an event table.
func (r *eventRepo) selectEvents(table string, opts QueryOpts, cols ...string) *entsql.Selector {
	sel := r.builder.Select(append(append([]string{}, metaColumns...), cols...)...).
		From(entsql.Table(table)).
		OrderBy(entsql.Desc("sequence"))
	applyFilters(sel, opts)
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	return sel
}

func applyFilters(sel *entsql.Selector, opts QueryOpts) {
	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("timestamp", opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("timestamp", opts.To.UTC()))
	}
	if opts.SessionID != "" {
		sel.Where(entsql.EQ("session_id", opts.SessionID))
	}
}

// queryRows runs sel and calls scan once per row.
func (r *eventRepo) queryRows(ctx context.Context, sel *entsql.Selector, scan func(*sql.Rows) error) error {
	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (r *eventRepo) count(ctx context.Context, table, sessionID string) (int, error) {
	query, args := r.builder.Select(entsql.Count("*")).
		From(entsql.Table(table)).
		Where(entsql.EQ("session_id", sessionID)).
		Query()
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func joinCategories(cats []string) string {
	return strings.Join(cats, ",")
}

func splitCategories(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func (r *eventRepo) AppendVisualSelection(ctx context.Context, data VisualSelectionEventData) error {
	err := r.insert(ctx, tableVisualSelections,
		[]string{
			"session_id", "task_text", "topic", "learner_type", "visual_type", "reason",
			"endpoint", "categories", "stuck_level", "time_spent_secs", "hints_used", "questions_viewed",
		},
		[]any{
			data.SessionID, data.TaskText, data.Topic, data.LearnerType, data.VisualType, data.Reason,
			data.Endpoint, joinCategories(data.Categories), data.StuckLevel, data.TimeSpentSecs,
			data.HintsUsed, data.QuestionsViewed,
		})
	if err != nil {
		return fmt.Errorf("save visual selection event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryVisualSelections(ctx context.Context, opts QueryOpts) ([]VisualSelectionRecord, error) {
	sel := r.selectEvents(tableVisualSelections, opts,
		"session_id", "task_text", "topic", "learner_type", "visual_type", "reason",
		"endpoint", "categories", "stuck_level", "time_spent_secs", "hints_used", "questions_viewed")

	var records []VisualSelectionRecord
	err := r.queryRows(ctx, sel, func(rows *sql.Rows) error {
		var rec VisualSelectionRecord
		var cats string
		if err := rows.Scan(
			&rec.ID, &rec.Sequence, &rec.Timestamp,
			&rec.SessionID, &rec.TaskText, &rec.Topic, &rec.LearnerType, &rec.VisualType, &rec.Reason,
			&rec.Endpoint, &cats, &rec.StuckLevel, &rec.TimeSpentSecs, &rec.HintsUsed, &rec.QuestionsViewed,
		); err != nil {
			return err
		}
		rec.Categories = splitCategories(cats)
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query visual selections: %w", err)
	}
	return records, nil
}

func (r *eventRepo) VisualUsageCounts(ctx context.Context, opts QueryOpts) (VisualUsage, error) {
	sel := r.builder.Select("visual_type", "categories").From(entsql.Table(tableVisualSelections))
	applyFilters(sel, opts)

	usage := VisualUsage{
		ByType:     make(map[string]int),
		ByCategory: make(map[string]int),
	}
	err := r.queryRows(ctx, sel, func(rows *sql.Rows) error {
		var vt, cats string
		if err := rows.Scan(&vt, &cats); err != nil {
			return err
		}
		usage.Total++
		usage.ByType[vt]++
		for _, c := range splitCategories(cats) {
			usage.ByCategory[c]++
		}
		return nil
	})
	if err != nil {
		return VisualUsage{}, fmt.Errorf("query visual usage: %w", err)
	}
	return usage, nil
}

func (r *eventRepo) AppendHint(ctx context.Context, data HintEventData) error {
	err := r.insert(ctx, tableHints,
		[]string{"session_id", "level", "subtask_text", "hint_text", "encouragement"},
		[]any{data.SessionID, data.Level, data.SubtaskText, data.HintText, data.Encouragement})
	if err != nil {
		return fmt.Errorf("save hint event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendApproachCheck(ctx context.Context, data ApproachCheckEventData) error {
	err := r.insert(ctx, tableApproachChecks,
		[]string{"session_id", "subtask_text", "student_work", "on_right_track", "confidence", "next_step"},
		[]any{data.SessionID, data.SubtaskText, data.StudentWork, data.OnRightTrack, data.Confidence, data.NextStep})
	if err != nil {
		return fmt.Errorf("save approach check event: %w", err)
	}
	return nil
}

func (r *eventRepo) SessionActivity(ctx context.Context, sessionID string) (int, int, error) {
	hints, err := r.count(ctx, tableHints, sessionID)
	if err != nil {
		return 0, 0, fmt.Errorf("count hints: %w", err)
	}
	checks, err := r.count(ctx, tableApproachChecks, sessionID)
	if err != nil {
		return 0, 0, fmt.Errorf("count approach checks: %w", err)
	}
	return hints, checks, nil
}
