package store

import (
	"context"
	"database/sql"
	"fmt"
)

var sessionColumns = []string{
	"session_id", "learner_name", "topic", "learner_type", "started_at", "duration_secs",
	"tasks", "subtasks", "visualizations", "animations", "graphs",
	"hints_used", "approach_checks", "self_sufficiency",
}

func (r *eventRepo) AppendSession(ctx context.Context, data SessionEventData) error {
	err := r.insert(ctx, tableSessions, sessionColumns, []any{
		data.SessionID, data.LearnerName, data.Topic, data.LearnerType, data.StartedAt.UTC(), data.DurationSecs,
		data.Tasks, data.Subtasks, data.Visualizations, data.Animations, data.Graphs,
		data.HintsUsed, data.ApproachChecks, data.SelfSufficiency,
	})
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySessions(ctx context.Context, opts QueryOpts) ([]SessionRecord, error) {
	sel := r.selectEvents(tableSessions, opts, sessionColumns...)

	var records []SessionRecord
	err := r.queryRows(ctx, sel, func(rows *sql.Rows) error {
		var rec SessionRecord
		if err := rows.Scan(
			&rec.ID, &rec.Sequence, &rec.Timestamp,
			&rec.SessionID, &rec.LearnerName, &rec.Topic, &rec.LearnerType, &rec.StartedAt, &rec.DurationSecs,
			&rec.Tasks, &rec.Subtasks, &rec.Visualizations, &rec.Animations, &rec.Graphs,
			&rec.HintsUsed, &rec.ApproachChecks, &rec.SelfSufficiency,
		); err != nil {
			return err
		}
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	return records, nil
}

var evaluationColumns = []string{
	"session_id", "assessor", "ai_question_quality", "engagement_level", "understanding_progress",
	"efficiency_score", "learner_type_indicator", "question_loops", "remarks", "further_considerations",
}

func (r *eventRepo) AppendEvaluation(ctx context.Context, data EvaluationEventData) error {
	err := r.insert(ctx, tableEvaluations, evaluationColumns, []any{
		data.SessionID, data.Assessor, data.AIQuestionQuality, data.EngagementLevel, data.UnderstandingProgress,
		data.EfficiencyScore, data.LearnerTypeIndicator, data.QuestionLoops, data.Remarks, data.FurtherConsiderations,
	})
	if err != nil {
		return fmt.Errorf("save evaluation event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryEvaluations(ctx context.Context, opts QueryOpts) ([]EvaluationRecord, error) {
	sel := r.selectEvents(tableEvaluations, opts, evaluationColumns...)

	var records []EvaluationRecord
	err := r.queryRows(ctx, sel, func(rows *sql.Rows) error {
		var rec EvaluationRecord
		if err := rows.Scan(
			&rec.ID, &rec.Sequence, &rec.Timestamp,
			&rec.SessionID, &rec.Assessor, &rec.AIQuestionQuality, &rec.EngagementLevel, &rec.UnderstandingProgress,
			&rec.EfficiencyScore, &rec.LearnerTypeIndicator, &rec.QuestionLoops, &rec.Remarks, &rec.FurtherConsiderations,
		); err != nil {
			return err
		}
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query evaluations: %w", err)
	}
	return records, nil
}

var decompositionColumns = []string{"session_id", "source_text", "tasks", "subtasks", "result"}

func (r *eventRepo) AppendDecomposition(ctx context.Context, data DecompositionEventData) error {
	err := r.insert(ctx, tableDecompositions, decompositionColumns, []any{
		data.SessionID, data.SourceText, data.Tasks, data.Subtasks, data.Result,
	})
	if err != nil {
		return fmt.Errorf("save decomposition event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryDecompositions(ctx context.Context, opts QueryOpts) ([]DecompositionRecord, error) {
	sel := r.selectEvents(tableDecompositions, opts, decompositionColumns...)

	var records []DecompositionRecord
	err := r.queryRows(ctx, sel, func(rows *sql.Rows) error {
		var rec DecompositionRecord
		if err := rows.Scan(
			&rec.ID, &rec.Sequence, &rec.Timestamp,
			&rec.SessionID, &rec.SourceText, &rec.Tasks, &rec.Subtasks, &rec.Result,
		); err != nil {
			return err
		}
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query decompositions: %w", err)
	}
	return records, nil
}
