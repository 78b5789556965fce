package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var renderColumns = []string{"cache_key", "session_id", "visual_type", "endpoint", "payload", "rendered_at"}

type renderCache struct {
	db      *sql.DB
	builder *entsql.DialectBuilder
	ttl     time.Duration
	now     func() time.Time
}

// RenderCache returns a RenderCache whose entries expire after ttl.
func (s *Store) RenderCache(ttl time.Duration) RenderCache {
	return &renderCache{
		db:      s.drv.DB(),
		builder: entsql.Dialect(s.drv.Dialect()),
		ttl:     ttl,
		now:     s.now,
	}
}

func (c *renderCache) fresh(v RenderedVisual) bool {
	return c.now().Sub(v.RenderedAt) < c.ttl
}

func scanRendered(row interface{ Scan(...any) error }) (RenderedVisual, error) {
	var v RenderedVisual
	err := row.Scan(&v.Key, &v.SessionID, &v.VisualType, &v.Endpoint, &v.Payload, &v.RenderedAt)
	return v, err
}

func (c *renderCache) Get(ctx context.Context, key string) (*RenderedVisual, error) {
	query, args := c.builder.Select(renderColumns...).
		From(entsql.Table(tableRenderedVisuals)).
		Where(entsql.EQ("cache_key", key)).
		Query()
	v, err := scanRendered(c.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get rendered visual: %w", err)
	}
	if c.fresh(v) {
		return &v, nil
	}

	query, args = c.builder.Delete(tableRenderedVisuals).
		Where(entsql.EQ("cache_key", key)).
		Query()
	if _, err := c.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("drop stale visual: %w", err)
	}
	return nil, nil
}

func (c *renderCache) Put(ctx context.Context, v RenderedVisual) error {
	if v.RenderedAt.IsZero() {
		v.RenderedAt = c.now()
	}
	query, args := c.builder.Insert(tableRenderedVisuals).
		Columns(renderColumns...).
		Values(v.Key, v.SessionID, v.VisualType, v.Endpoint, v.Payload, v.RenderedAt.UTC()).
		OnConflict(
			entsql.ConflictColumns("cache_key"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if _, err := c.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("put rendered visual: %w", err)
	}
	return nil
}

func (c *renderCache) List(ctx context.Context, sessionID string) ([]RenderedVisual, error) {
	sel := c.builder.Select(renderColumns...).
		From(entsql.Table(tableRenderedVisuals)).
		Where(entsql.GT("rendered_at", c.now().Add(-c.ttl).UTC())).
		OrderBy(entsql.Desc("rendered_at"))
	if sessionID != "" {
		sel.Where(entsql.EQ("session_id", sessionID))
	}

	query, args := sel.Query()
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list rendered visuals: %w", err)
	}
	defer rows.Close()

	var out []RenderedVisual
	for rows.Next() {
		v, err := scanRendered(rows)
		if err != nil {
			return nil, fmt.Errorf("list rendered visuals: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (c *renderCache) Clear(ctx context.Context, sessionID string) (int64, error) {
	del := c.builder.Delete(tableRenderedVisuals)
	if sessionID != "" {
		del.Where(entsql.EQ("session_id", sessionID))
	}
	query, args := del.Query()
	res, err := c.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("clear rendered visuals: %w", err)
	}
	return res.RowsAffected()
}
