package store

import (
	"context"
	"fmt"
	"time"
)

// Presence records that one running instance is alive and counts the
// instances seen recently. The count is advisory only.
type Presence struct {
	store *Store
	id    string
	ttl   time.Duration
	now   func() time.Time
}

// NewPresence tracks the instance id. Instances that have not beaten within
// ttl are no longer counted.
func (s *Store) NewPresence(id string, ttl time.Duration) *Presence {
	return &Presence{store: s, id: id, ttl: ttl, now: time.Now}
}

// Beat refreshes this instance's heartbeat, prunes stale rows and returns the
// number of live instances, never less than one.
func (p *Presence) Beat(ctx context.Context) (int, error) {
	if p.store.closed.Load() {
		return 1, ErrClosed
	}
	now := p.now()
	cutoff := now.Add(-p.ttl).UnixMilli()

	tx, err := p.store.db.BeginTx(ctx, nil)
	if err != nil {
		return 1, fmt.Errorf("begin presence tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO presence (instance_id, last_seen) VALUES (?, ?)
		 ON CONFLICT(instance_id) DO UPDATE SET last_seen = excluded.last_seen`,
		p.id, now.UnixMilli(),
	); err != nil {
		return 1, fmt.Errorf("heartbeat: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM presence WHERE last_seen < ?`, cutoff); err != nil {
		return 1, fmt.Errorf("prune presence: %w", err)
	}

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM presence WHERE last_seen >= ?`, cutoff).Scan(&count); err != nil {
		return 1, fmt.Errorf("count presence: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 1, fmt.Errorf("commit presence tx: %w", err)
	}
	return max(count, 1), nil
}

// Leave removes this instance's heartbeat.
func (p *Presence) Leave(ctx context.Context) error {
	if p.store.closed.Load() {
		return ErrClosed
	}
	if _, err := p.store.db.ExecContext(ctx, `DELETE FROM presence WHERE instance_id = ?`, p.id); err != nil {
		return fmt.Errorf("leave presence: %w", err)
	}
	return nil
}
