package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"showboard/internal/model"
	"showboard/internal/parser"
)

// Workbook 直接从 xlsx 文件的 Sheet 读取表
//
// 每次调用都重新打开文件，读取最新内容。
type Workbook struct {
	path   string
	logger *zap.Logger
}

// NewWorkbook 创建工作簿数据源
func NewWorkbook(path string, logger *zap.Logger) *Workbook {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Workbook{path: path, logger: logger}
}

// Path 工作簿路径
func (w *Workbook) Path() string {
	return w.path
}

// Rows 读取指定 sheet；表头异常时记录日志并返回空数据
func (w *Workbook) Rows(ctx context.Context, table string) ([]model.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	idx, err := f.GetSheetIndex(table)
	if err != nil {
		return nil, fmt.Errorf("failed to look up sheet %q: %w", table, err)
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}

	rows, err := f.GetRows(table)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", table, err)
	}

	records, skipped, err := parser.RowsToRecords(rows)
	if errors.Is(err, parser.ErrMalformedHeader) {
		w.logger.Warn("malformed header, treating sheet as empty",
			zap.String("path", w.path), zap.String("sheet", table))
		return []model.Row{}, nil
	}
	if err != nil {
		return nil, err
	}
	if skipped > 0 {
		w.logger.Debug("skipped blank rows", zap.String("sheet", table), zap.Int("skipped", skipped))
	}
	return records, nil
}
