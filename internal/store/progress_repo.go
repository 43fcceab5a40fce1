package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// progressRepo implements ProgressRepo on SQLite.
type progressRepo struct {
	db  *sqlx.DB
	seq *sequenceCounter
}

func (r *progressRepo) Save(ctx context.Context, snap *Snapshot) error {
	payload, err := json.Marshal(snap.Data)
	if err != nil {
		return fmt.Errorf("marshal snapshot data: %w", err)
	}

	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}

	ts := snap.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO snapshots (learner_id, sequence, timestamp, data) VALUES (?, ?, ?, ?)`,
		snap.Data.LearnerID, seq, ts, string(payload),
	)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	snap.Sequence = seq
	return nil
}

func (r *progressRepo) Latest(ctx context.Context, learnerID string) (*Snapshot, error) {
	var row struct {
		ID        int       `db:"id"`
		Sequence  int64     `db:"sequence"`
		Timestamp time.Time `db:"timestamp"`
		Data      string    `db:"data"`
	}
	err := r.db.GetContext(ctx, &row,
		`SELECT id, sequence, timestamp, data FROM snapshots
		 WHERE learner_id = ? ORDER BY timestamp DESC, sequence DESC LIMIT 1`,
		learnerID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}

	var data ProgressData
	if err := json.Unmarshal([]byte(row.Data), &data); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot data: %w", err)
	}
	return &Snapshot{
		ID:        row.ID,
		Sequence:  row.Sequence,
		Timestamp: row.Timestamp,
		Data:      data,
	}, nil
}

func (r *progressRepo) Prune(ctx context.Context, learnerID string, keep int) error {
	// The sequence column is unique, so pruning below the Nth newest
	// sequence keeps exactly keep rows even when timestamps collide.
	var threshold int64
	err := r.db.GetContext(ctx, &threshold,
		`SELECT sequence FROM snapshots WHERE learner_id = ?
		 ORDER BY sequence DESC LIMIT 1 OFFSET ?`,
		learnerID, keep,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil // fewer than keep snapshots exist
	}
	if err != nil {
		return fmt.Errorf("query snapshots for prune: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`DELETE FROM snapshots WHERE learner_id = ? AND sequence <= ?`,
		learnerID, threshold,
	)
	if err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}
