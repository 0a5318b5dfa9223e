package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"taskboard/internal/model"
)

// AppendHistory writes one immutable history entry and returns it with
// its generated ID and timestamp. There is no update or delete
// counterpart: the ledger only grows.
func (s *SQLiteStore) AppendHistory(ctx context.Context, entry model.HistoryEntry) (*model.HistoryEntry, error) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO history (id, task_id, actor_id, action, old_value, new_value, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.TaskID, entry.ActorID, entry.Action,
		entry.OldValue, entry.NewValue, entry.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("appending history entry: %w", err)
	}
	return &entry, nil
}

// GetHistory retrieves history entries newest first, optionally scoped
// to one task and capped by Limit. Entries written in the same instant
// keep their insertion order via the rowid tiebreak.
func (s *SQLiteStore) GetHistory(ctx context.Context, filter HistoryFilter) ([]model.HistoryEntry, error) {
	query := `
		SELECT id, task_id, actor_id, action, old_value, new_value, created_at
		FROM history`
	var args []any
	if filter.TaskID != nil {
		query += " WHERE task_id = ?"
		args = append(args, *filter.TaskID)
	}
	query += " ORDER BY created_at DESC, rowid DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []model.HistoryEntry
	for rows.Next() {
		var e model.HistoryEntry
		if err := rows.Scan(
			&e.ID, &e.TaskID, &e.ActorID, &e.Action,
			&e.OldValue, &e.NewValue, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning history entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
