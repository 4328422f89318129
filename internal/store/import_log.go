package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"showboard/internal/model"
)

// CreateImportLog 创建导入日志（状态 processing）
func (s *Store) CreateImportLog(ctx context.Context, id, filename string, startedAt time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO import_logs (id, filename, status, started_at)
		VALUES (?, ?, 'processing', ?)
	`, id, filename, startedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to create import log: %w", err)
	}
	return nil
}

// UpdateImportLog 完成导入日志更新
func (s *Store) UpdateImportLog(ctx context.Context, log model.ImportLog) error {
	completed := time.Now().UTC()
	if log.CompletedAt != nil {
		completed = log.CompletedAt.UTC()
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE import_logs SET
			status = ?,
			total_sheets = ?,
			imported_rows = ?,
			error_message = ?,
			completed_at = ?
		WHERE id = ?
	`, log.Status, log.TotalSheets, log.ImportedRows, log.ErrorMessage, completed, log.ID)
	if err != nil {
		return fmt.Errorf("failed to update import log: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("failed to update import log: unknown id %s", log.ID)
	}
	return nil
}

// LastImport 最近一次导入；没有记录时返回 nil
func (s *Store) LastImport(ctx context.Context) (*model.ImportLog, error) {
	var (
		log       model.ImportLog
		completed sql.NullTime
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, filename, status, total_sheets, imported_rows, error_message, started_at, completed_at
		FROM import_logs
		ORDER BY started_at DESC
		LIMIT 1
	`).Scan(&log.ID, &log.Filename, &log.Status, &log.TotalSheets, &log.ImportedRows,
		&log.ErrorMessage, &log.StartedAt, &completed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query last import: %w", err)
	}
	if completed.Valid {
		t := completed.Time
		log.CompletedAt = &t
	}
	return &log, nil
}
