package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/ersonp/wikipeople/internal/domain/entities"
)

// LogRun appends an entry to the run log.
func (r *Repository) LogRun(ctx context.Context, action string, details map[string]any) error {
	var detailsJSON sql.NullString
	if details != nil {
		data, err := json.Marshal(details)
		if err != nil {
			return fmt.Errorf("marshaling details: %w", err)
		}
		detailsJSON = sql.NullString{String: string(data), Valid: true}
	}

	_, err := exec(ctx, r.db,
		psql.Insert("runs").
			Columns("id", "action", "details", "created_at").
			Values(generateUUID(), action, detailsJSON, timeNow().UTC()),
		"logging run")
	return err
}

// ListRuns returns the most recent run log entries, newest first.
func (r *Repository) ListRuns(ctx context.Context, limit int) ([]entities.RunEntry, error) {
	sqlStr, args, err := psql.Select("id", "action", "details", "created_at").
		From("runs").
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building SQL for listing runs: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	entries := make([]entities.RunEntry, 0, limit)
	for rows.Next() {
		var entry entities.RunEntry
		var details sql.NullString

		if err := rows.Scan(&entry.ID, &entry.Action, &details, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}

		if details.Valid && details.String != "" {
			if err := json.Unmarshal([]byte(details.String), &entry.Details); err != nil {
				return nil, fmt.Errorf("unmarshaling details: %w", err)
			}
		}

		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
