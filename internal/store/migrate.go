package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// eventTable declares an event table. Every event table starts with the
// id, sequence and timestamp columns, and timestamp is always indexed.
func eventTable(name string, indexed []string, columns ...*schema.Column) *schema.Table {
	cols := append([]*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
	}, columns...)

	t := &schema.Table{
		Name:       name,
		Columns:    cols,
		PrimaryKey: []*schema.Column{cols[0]},
	}
	for _, c := range append([]string{"timestamp"}, indexed...) {
		addIndex(t, c)
	}
	return t
}

func addIndex(t *schema.Table, column string) {
	for _, c := range t.Columns {
		if c.Name == column {
			t.Indexes = append(t.Indexes, &schema.Index{
				Name:    t.Name + "_" + column,
				Columns: []*schema.Column{c},
			})
			return
		}
	}
	panic(fmt.Sprintf("store: index on unknown column %s.%s", t.Name, column))
}

func text(name string) *schema.Column {
	return &schema.Column{Name: name, Type: field.TypeString, Default: ""}
}

func requiredText(name string) *schema.Column {
	return &schema.Column{Name: name, Type: field.TypeString}
}

func integer(name string) *schema.Column {
	return &schema.Column{Name: name, Type: field.TypeInt, Default: 0}
}

func requiredInt(name string) *schema.Column {
	return &schema.Column{Name: name, Type: field.TypeInt}
}

func boolean(name string) *schema.Column {
	return &schema.Column{Name: name, Type: field.TypeBool, Default: false}
}

var (
	visualSelectionsTable = eventTable(tableVisualSelections, []string{"session_id", "visual_type"},
		text("session_id"),
		text("task_text"),
		text("topic"),
		text("learner_type"),
		requiredText("visual_type"),
		text("reason"),
		text("endpoint"),
		text("categories"),
		integer("stuck_level"),
		integer("time_spent_secs"),
		integer("hints_used"),
		integer("questions_viewed"),
	)

	hintsTable = eventTable(tableHints, []string{"session_id"},
		text("session_id"),
		requiredInt("level"),
		text("subtask_text"),
		text("hint_text"),
		text("encouragement"),
	)

	approachChecksTable = eventTable(tableApproachChecks, []string{"session_id"},
		text("session_id"),
		text("subtask_text"),
		text("student_work"),
		boolean("on_right_track"),
		integer("confidence"),
		text("next_step"),
	)

	sessionsTable = eventTable(tableSessions, []string{"session_id"},
		requiredText("session_id"),
		text("learner_name"),
		text("topic"),
		text("learner_type"),
		&schema.Column{Name: "started_at", Type: field.TypeTime, Nullable: true},
		integer("duration_secs"),
		integer("tasks"),
		integer("subtasks"),
		integer("visualizations"),
		integer("animations"),
		integer("graphs"),
		integer("hints_used"),
		integer("approach_checks"),
		integer("self_sufficiency"),
	)

	evaluationsTable = eventTable(tableEvaluations, []string{"session_id"},
		requiredText("session_id"),
		text("assessor"),
		requiredInt("ai_question_quality"),
		requiredInt("engagement_level"),
		requiredInt("understanding_progress"),
		requiredInt("efficiency_score"),
		text("learner_type_indicator"),
		integer("question_loops"),
		text("remarks"),
		text("further_considerations"),
	)

	decompositionsTable = eventTable(tableDecompositions, []string{"session_id"},
		text("session_id"),
		text("source_text"),
		integer("tasks"),
		integer("subtasks"),
		text("result"),
	)

	llmRequestsTable = eventTable(tableLLMRequests, []string{"purpose", "model"},
		text("session_id"),
		text("provider"),
		text("model"),
		text("purpose"),
		integer("input_tokens"),
		integer("output_tokens"),
		&schema.Column{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		&schema.Column{Name: "success", Type: field.TypeBool},
		text("error_message"),
		text("request_body"),
		text("response_body"),
	)

	renderedVisualsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "cache_key", Type: field.TypeString, Unique: true},
		text("session_id"),
		requiredText("visual_type"),
		text("endpoint"),
		text("payload"),
		{Name: "rendered_at", Type: field.TypeTime},
	}
	renderedVisualsTable = &schema.Table{
		Name:       tableRenderedVisuals,
		Columns:    renderedVisualsColumns,
		PrimaryKey: []*schema.Column{renderedVisualsColumns[0]},
		Indexes: []*schema.Index{
			{Name: tableRenderedVisuals + "_session_id", Columns: []*schema.Column{renderedVisualsColumns[2]}},
		},
	}

	sequenceColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt},
		{Name: "next_val", Type: field.TypeInt64, Default: 1},
	}
	sequenceTable = &schema.Table{
		Name:       tableSequence,
		Columns:    sequenceColumns,
		PrimaryKey: []*schema.Column{sequenceColumns[0]},
	}

	// Tables holds every table the store manages.
	Tables = []*schema.Table{
		visualSelectionsTable,
		hintsTable,
		approachChecksTable,
		sessionsTable,
		evaluationsTable,
		decompositionsTable,
		llmRequestsTable,
		renderedVisualsTable,
		sequenceTable,
	}
)

// migrate creates missing tables, columns and indexes. Nothing is dropped.
func migrate(ctx context.Context, drv *entsql.Driver) error {
	m, err := schema.NewMigrate(drv,
		schema.WithDropColumn(false),
		schema.WithDropIndex(false),
		schema.WithForeignKeys(false),
	)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	if err := m.Create(ctx, Tables...); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}
