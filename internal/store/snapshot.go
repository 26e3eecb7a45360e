package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sadopc/peak/internal/state"
)

// SnapshotKey is the app_state row holding the serialized AppState.
const SnapshotKey = "pomodoro.app.v1"

// Load returns the persisted snapshot, or nil when none is stored. A
// document that no longer decodes is logged and treated as absent.
func (s *Store) Load(ctx context.Context) (*state.AppState, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM app_state WHERE key = ?`, SnapshotKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	st, err := state.Decode([]byte(raw))
	if err != nil {
		s.logger.Printf("discarding unreadable snapshot: %v", err)
		return nil, nil
	}
	return st, nil
}

// Save replaces the persisted snapshot with st.
func (s *Store) Save(ctx context.Context, st *state.AppState) error {
	if s.closed.Load() {
		return ErrClosed
	}
	data, err := state.Encode(st)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO app_state (key, value, updated_at) VALUES (?, ?, strftime('%Y-%m-%dT%H:%M:%SZ','now'))
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		SnapshotKey, string(data),
	)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Clear deletes the persisted snapshot.
func (s *Store) Clear(ctx context.Context) error {
	if s.closed.Load() {
		return ErrClosed
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM app_state WHERE key = ?`, SnapshotKey); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}
	return nil
}
