package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"showboard/internal/model"
	"showboard/internal/source"
)

// TableInfo 已导入表的概要
type TableInfo struct {
	Name      string   `json:"name"`
	Columns   []string `json:"columns"`
	RowCount  int      `json:"rowCount"`
	ImportID  string   `json:"importId"`
	UpdatedAt string   `json:"updatedAt"`
}

// ReplaceRows 用新数据整体替换一张表
func (s *Store) ReplaceRows(ctx context.Context, table string, columns []string, rows []model.Row, importID string) error {
	colsJSON, err := json.Marshal(columns)
	if err != nil {
		return fmt.Errorf("encode columns of %s: %w", table, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM sheet_rows WHERE table_name = ?`, table); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO sheet_rows (table_name, row_no, data_json, import_id)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, row := range rows {
		data, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("encode %s row %d: %w", table, i+1, err)
		}
		if _, err := stmt.ExecContext(ctx, table, i+1, string(data), importID); err != nil {
			return fmt.Errorf("insert %s row %d: %w", table, i+1, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO tables (name, columns_json, row_count, import_id, updated_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET
			columns_json = excluded.columns_json,
			row_count = excluded.row_count,
			import_id = excluded.import_id,
			updated_at = CURRENT_TIMESTAMP
	`, table, string(colsJSON), len(rows), importID); err != nil {
		return fmt.Errorf("record table %s: %w", table, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s: %w", table, err)
	}
	return nil
}

// Rows 实现 source.Source，按 Sheet 顺序返回；无法解码的行记录日志并返回空映射
func (s *Store) Rows(ctx context.Context, table string) ([]model.Row, error) {
	if _, err := s.Table(ctx, table); err != nil {
		return nil, err
	}

	rs, err := s.db.QueryContext(ctx, `
		SELECT row_no, data_json FROM sheet_rows
		WHERE table_name = ?
		ORDER BY row_no
	`, table)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rs.Close()

	out := []model.Row{}
	for rs.Next() {
		var (
			rowNo int
			data  string
		)
		if err := rs.Scan(&rowNo, &data); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		row := model.Row{}
		if err := json.Unmarshal([]byte(data), &row); err != nil {
			s.logger.Warn("undecodable row, using empty mapping",
				zap.String("table", table), zap.Int("row", rowNo), zap.Error(err))
			row = model.Row{}
		}
		out = append(out, row)
	}
	return out, rs.Err()
}

// Table 查询单张表的概要；未导入时返回 source.ErrUnknownTable
func (s *Store) Table(ctx context.Context, name string) (TableInfo, error) {
	info := TableInfo{Name: name}
	var (
		colsJSON  string
		importID  sql.NullString
		updatedAt sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT columns_json, row_count, import_id, updated_at FROM tables WHERE name = ?
	`, name).Scan(&colsJSON, &info.RowCount, &importID, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return info, fmt.Errorf("%w: %s", source.ErrUnknownTable, name)
	}
	if err != nil {
		return info, fmt.Errorf("query table %s: %w", name, err)
	}
	info.ImportID = importID.String
	info.UpdatedAt = updatedAt.String
	if err := json.Unmarshal([]byte(colsJSON), &info.Columns); err != nil {
		s.logger.Warn("undecodable column list", zap.String("table", name), zap.Error(err))
		info.Columns = nil
	}
	return info, nil
}

// ListTables 按名称排序列出所有已导入的表
func (s *Store) ListTables(ctx context.Context) ([]TableInfo, error) {
	rs, err := s.db.QueryContext(ctx, `SELECT name FROM tables ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	var names []string
	for rs.Next() {
		var name string
		if err := rs.Scan(&name); err != nil {
			rs.Close()
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		names = append(names, name)
	}
	if err := rs.Err(); err != nil {
		rs.Close()
		return nil, err
	}
	rs.Close()

	// 单连接：先关闭游标再逐表查询
	out := make([]TableInfo, 0, len(names))
	for _, name := range names {
		info, err := s.Table(ctx, name)
		if err != nil {
			return nil, err
		}
		out = append(out, info)
	}
	return out, nil
}

// CountRows 表行数；未导入的表为 0
func (s *Store) CountRows(ctx context.Context, table string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sheet_rows WHERE table_name = ?`, table).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

var _ source.Source = (*Store)(nil)
