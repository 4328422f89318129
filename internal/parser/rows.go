package parser

import (
	"errors"
	"strings"

	"showboard/internal/model"
)

// ErrMalformedHeader 表头为空或全部为空白
var ErrMalformedHeader = errors.New("malformed header row")

// HeaderColumns 表头行中可用的列名（保持 Sheet 顺序）：规范化列名，丢弃空列，重复列保留第一个
func HeaderColumns(header []string) []string {
	cols, _ := headerIndex(header)
	return cols
}

// headerIndex 返回有效列名，以及按单元格下标排列的列名（无效列为空串）
func headerIndex(header []string) (cols []string, byIndex []string) {
	byIndex = make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for i, h := range header {
		name := NormalizeColumnName(h)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		byIndex[i] = name
		cols = append(cols, name)
	}
	return cols, byIndex
}

// RowsToRecords 将二维表格（首行为表头）转换为按表头取值的行
//
// 空白表头列被忽略；重复表头只保留第一次出现的列。
// 完全空白的数据行被跳过，返回值 skipped 为跳过的行数。
func RowsToRecords(rows [][]string) (records []model.Row, skipped int, err error) {
	if len(rows) == 0 {
		return nil, 0, ErrMalformedHeader
	}

	cols, headers := headerIndex(rows[0])
	if len(cols) == 0 {
		return nil, 0, ErrMalformedHeader
	}

	for _, raw := range rows[1:] {
		rec := make(model.Row, len(cols))
		blank := true
		for i, cell := range raw {
			if i >= len(headers) || headers[i] == "" {
				continue
			}
			rec[headers[i]] = cell
			if strings.TrimSpace(cell) != "" {
				blank = false
			}
		}
		if blank {
			skipped++
			continue
		}
		records = append(records, rec)
	}
	return records, skipped, nil
}
