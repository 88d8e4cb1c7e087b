package storage

import (
	"context"
	"fmt"
	"time"
)

// ImportLog represents a single import or scan batch's outcome.
type ImportLog struct {
	ID           int64   `json:"id"`
	BatchID      string  `json:"batch_id"`
	CreatedAt    string  `json:"created_at"`
	Source       string  `json:"source"`
	Status       string  `json:"status"`
	RowsReceived int     `json:"rows_received"`
	RowsInserted int64   `json:"rows_inserted"`
	RowsSkipped  int64   `json:"rows_skipped"`
	RowsErrored  int     `json:"rows_errored"`
	WarningCount int     `json:"warning_count"`
	DurationMs   *int    `json:"duration_ms"`
	ErrorMessage *string `json:"error_message"`
}

// InsertImportLog creates a new import log entry and returns its id.
// CreatedAt is stamped here when empty.
func (db *DB) InsertImportLog(ctx context.Context, log ImportLog) (int64, error) {
	if log.CreatedAt == "" {
		log.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	var id int64
	err := db.SQL.QueryRowContext(ctx,
		`INSERT INTO import_logs (batch_id, created_at, source, status, rows_received,
		 rows_inserted, rows_skipped, rows_errored, warning_count, duration_ms, error_message)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		 RETURNING id`,
		log.BatchID, log.CreatedAt, log.Source, log.Status, log.RowsReceived,
		log.RowsInserted, log.RowsSkipped, log.RowsErrored, log.WarningCount,
		log.DurationMs, log.ErrorMessage,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting import log: %w", err)
	}
	return id, nil
}

// QueryImportLogs returns the most recent import logs.
func (db *DB) QueryImportLogs(ctx context.Context, limit int) ([]ImportLog, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.SQL.QueryContext(ctx,
		`SELECT id, batch_id, created_at, source, status, rows_received, rows_inserted,
		 rows_skipped, rows_errored, warning_count, duration_ms, error_message
		 FROM import_logs
		 ORDER BY created_at DESC
		 LIMIT $1`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("querying import logs: %w", err)
	}
	defer rows.Close()

	var result []ImportLog
	for rows.Next() {
		var l ImportLog
		if err := rows.Scan(&l.ID, &l.BatchID, &l.CreatedAt, &l.Source, &l.Status,
			&l.RowsReceived, &l.RowsInserted, &l.RowsSkipped, &l.RowsErrored,
			&l.WarningCount, &l.DurationMs, &l.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scanning import log: %w", err)
		}
		result = append(result, l)
	}
	return result, rows.Err()
}
