package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	entsql "entgo.io/ent/dialect/sql"
)

const tableSequence = "global_sequence"

// sequenceCounter issues one increasing number shared by all event tables,
// so a hint and the visual shown before it can be ordered against each
// other. The mutex serializes callers inside the process; the single
// UPDATE ... RETURNING keeps the increment atomic in the database.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// newSequenceCounter seeds the single-row counter table created by migrate.
// Seeding an existing counter leaves its value alone.
func newSequenceCounter(ctx context.Context, drv *entsql.Driver) (*sequenceCounter, error) {
	query, args := entsql.Dialect(drv.Dialect()).
		Insert(tableSequence).
		Columns("id", "next_val").
		Values(1, 1).
		OnConflict(entsql.DoNothing()).
		Query()
	if err := drv.Exec(ctx, query, args, nil); err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}

	return &sequenceCounter{db: drv.DB()}, nil
}

// Next returns the current value and advances the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE `+tableSequence+` SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}
