package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

var llmColumns = []string{
	"session_id", "provider", "model", "purpose", "input_tokens", "output_tokens",
	"latency_ms", "success", "error_message", "request_body", "response_body",
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	err := r.insert(ctx, tableLLMRequests, llmColumns, []any{
		data.SessionID, data.Provider, data.Model, data.Purpose, data.InputTokens, data.OutputTokens,
		data.LatencyMs, data.Success, data.ErrorMessage, data.RequestBody, data.ResponseBody,
	})
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func scanLLMEvent(rows *sql.Rows) (LLMEventRecord, error) {
	var rec LLMEventRecord
	err := rows.Scan(
		&rec.ID, &rec.Sequence, &rec.Timestamp,
		&rec.SessionID, &rec.Provider, &rec.Model, &rec.Purpose, &rec.InputTokens, &rec.OutputTokens,
		&rec.LatencyMs, &rec.Success, &rec.ErrorMessage, &rec.RequestBody, &rec.ResponseBody,
	)
	return rec, err
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error) {
	sel := r.selectEvents(tableLLMRequests, opts, llmColumns...)

	var records []LLMEventRecord
	err := r.queryRows(ctx, sel, func(rows *sql.Rows) error {
		rec, err := scanLLMEvent(rows)
		if err != nil {
			return err
		}
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	return records, nil
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int64) (*LLMEventRecord, error) {
	sel := r.selectEvents(tableLLMRequests, QueryOpts{Limit: 1}, llmColumns...)
	sel.Where(entsql.EQ("id", id))

	var found *LLMEventRecord
	err := r.queryRows(ctx, sel, func(rows *sql.Rows) error {
		rec, err := scanLLMEvent(rows)
		if err != nil {
			return err
		}
		found = &rec
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get LLM event %d: %w", id, err)
	}
	return found, nil
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]ModelUsage, error) {
	sel := r.builder.Select(
		"model",
		entsql.Count("*"),
		entsql.Sum("input_tokens"),
		entsql.Sum("output_tokens"),
	).
		From(entsql.Table(tableLLMRequests)).
		GroupBy("model").
		OrderBy("model")

	var usage []ModelUsage
	err := r.queryRows(ctx, sel, func(rows *sql.Rows) error {
		var mu ModelUsage
		if err := rows.Scan(&mu.Model, &mu.Calls, &mu.InputTokens, &mu.OutputTokens); err != nil {
			return err
		}
		usage = append(usage, mu)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query LLM usage by model: %w", err)
	}
	return usage, nil
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error) {
	sel := r.builder.Select(
		"purpose",
		entsql.Count("*"),
		entsql.Sum("input_tokens"),
		entsql.Sum("output_tokens"),
		entsql.Avg("latency_ms"),
	).
		From(entsql.Table(tableLLMRequests)).
		GroupBy("purpose").
		OrderBy("purpose")

	var usage []PurposeUsage
	err := r.queryRows(ctx, sel, func(rows *sql.Rows) error {
		var pu PurposeUsage
		var avg float64
		if err := rows.Scan(&pu.Purpose, &pu.Calls, &pu.InputTokens, &pu.OutputTokens, &avg); err != nil {
			return err
		}
		pu.AvgLatencyMs = int64(avg)
		usage = append(usage, pu)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query LLM usage by purpose: %w", err)
	}
	return usage, nil
}
