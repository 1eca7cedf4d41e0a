package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Load statuses
const (
	LoadStatusProcessing = "processing"
	LoadStatusSuccess    = "success"
	LoadStatusError      = "error"
)

// LoadLog one attempt to build the dataset
type LoadLog struct {
	ID              int64      `json:"id"`
	LoadID          string     `json:"loadId"`
	Filename        string     `json:"filename"`
	FilePath        string     `json:"filePath"`
	FileSize        int64      `json:"fileSize"`
	FileHash        string     `json:"fileHash"`
	Status          string     `json:"status"`
	RawRows         int        `json:"rawRows"`
	KeptRows        int        `json:"keptRows"`
	DroppedRows     int        `json:"droppedRows"`
	CoercedValues   int        `json:"coercedValues"`
	FilledSentinels int        `json:"filledSentinels"`
	MissingColumns  []string   `json:"missingColumns"`
	ErrorKind       string     `json:"errorKind,omitempty"`
	ErrorMessage    string     `json:"errorMessage,omitempty"`
	StartedAt       time.Time  `json:"startedAt"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"`
}

// CreateLoadLog inserts a processing entry and returns its row id
func (s *Store) CreateLoadLog(l *LoadLog) (int64, error) {
	if l.StartedAt.IsZero() {
		l.StartedAt = time.Now()
	}
	res, err := s.db.Exec(`
		INSERT INTO load_logs (load_id, filename, file_path, file_size, file_hash, status, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, l.LoadID, l.Filename, l.FilePath, l.FileSize, l.FileHash, LoadStatusProcessing, l.StartedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to create load log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get load log id: %w", err)
	}
	l.ID = id
	l.Status = LoadStatusProcessing
	return id, nil
}

// FinishLoadLog records the outcome of the load with the given row id
func (s *Store) FinishLoadLog(l *LoadLog) error {
	completed := time.Now()
	if l.CompletedAt != nil {
		completed = *l.CompletedAt
	}
	_, err := s.db.Exec(`
		UPDATE load_logs SET
			file_size = ?,
			file_hash = ?,
			status = ?,
			raw_rows = ?,
			kept_rows = ?,
			dropped_rows = ?,
			coerced_values = ?,
			filled_sentinels = ?,
			missing_columns = ?,
			error_kind = ?,
			error_message = ?,
			completed_at = ?
		WHERE id = ?
	`, l.FileSize, l.FileHash, l.Status, l.RawRows, l.KeptRows, l.DroppedRows, l.CoercedValues,
		l.FilledSentinels, strings.Join(l.MissingColumns, ","), l.ErrorKind, l.ErrorMessage, completed, l.ID)
	if err != nil {
		return fmt.Errorf("failed to update load log: %w", err)
	}
	l.CompletedAt = &completed
	return nil
}

// ListLoadLogs newest first
func (s *Store) ListLoadLogs(limit int) ([]LoadLog, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT id, load_id, filename, file_path, file_size, file_hash, status,
			raw_rows, kept_rows, dropped_rows, coerced_values, filled_sentinels,
			missing_columns, error_kind, error_message, started_at, completed_at
		FROM load_logs
		ORDER BY started_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list load logs: %w", err)
	}
	defer rows.Close()

	var out []LoadLog
	for rows.Next() {
		var l LoadLog
		var missing string
		var completed sql.NullTime
		if err := rows.Scan(&l.ID, &l.LoadID, &l.Filename, &l.FilePath, &l.FileSize, &l.FileHash, &l.Status,
			&l.RawRows, &l.KeptRows, &l.DroppedRows, &l.CoercedValues, &l.FilledSentinels,
			&missing, &l.ErrorKind, &l.ErrorMessage, &l.StartedAt, &completed); err != nil {
			return nil, err
		}
		if missing != "" {
			l.MissingColumns = strings.Split(missing, ",")
		}
		if completed.Valid {
			t := completed.Time
			l.CompletedAt = &t
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
