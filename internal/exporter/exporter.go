package exporter

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"showboard/internal/model"
	"showboard/internal/schedule"
)

// 导出工作簿中的 Sheet 名
const (
	ShowsSheet = "Shows"
	QuerySheet = "Query"
)

// 推断日期列
var dateHeaders = []string{"Ship Date", "Return Date", "Show Date"}

// 常用列的固定顺序，其余列按字母序排在后面
var preferredColumns = []string{
	model.ColShow,
	model.ColClient,
	model.ColYear,
	model.ColShip,
	model.ColShowStart,
	model.ColShowEnd,
	model.ColExpectedReturn,
}

// Exporter 排期查询结果导出器
type Exporter struct {
	inference *schedule.Inference
}

// NewExporter 创建导出器
func NewExporter(inference *schedule.Inference) *Exporter {
	return &Exporter{inference: inference}
}

// ExportOptions 导出选项
type ExportOptions struct {
	Columns  []string // 为空时使用所有行的列
	Filters  []model.DateFilter
	Search   *model.SearchParams
	Progress func(ProgressEvent)
}

// Export 将行写入新工作簿并追加推断的发货、回库、开展日期；有查询条件时另写一张查询说明表
func (e *Exporter) Export(rows []model.Row, opts ExportOptions) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", ShowsSheet); err != nil {
		_ = f.Close()
		return nil, err
	}

	columns := opts.Columns
	if len(columns) == 0 {
		columns = CollectColumns(rows)
	}
	headers := append(append([]string{}, columns...), dateHeaders...)

	reportProgress(opts.Progress, 5, "header")
	if err := writeHeader(f, ShowsSheet, headers); err != nil {
		_ = f.Close()
		return nil, err
	}

	for i, row := range rows {
		values := make([]any, 0, len(headers))
		for _, col := range columns {
			values = append(values, row[col])
		}
		d := e.inference.Dates(row)
		values = append(values, d.Ship, d.Return, d.Show)

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		if err := f.SetSheetRow(ShowsSheet, cell, &values); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
		if len(rows) > 0 && (i+1)%200 == 0 {
			reportProgress(opts.Progress, 5+85*(i+1)/len(rows), "rows")
		}
	}

	if err := finishSheet(f, ShowsSheet, len(headers), len(rows)); err != nil {
		_ = f.Close()
		return nil, err
	}

	if len(opts.Filters) > 0 || (opts.Search != nil && opts.Search.Query != "") {
		if err := writeQuerySheet(f, opts); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	reportProgress(opts.Progress, 100, "done")
	return f, nil
}

// CollectColumns 汇总所有行出现过的列
func CollectColumns(rows []model.Row) []string {
	seen := make(map[string]bool)
	for _, row := range rows {
		for col := range row {
			seen[col] = true
		}
	}

	var out []string
	for _, col := range preferredColumns {
		if seen[col] {
			out = append(out, col)
			delete(seen, col)
		}
	}
	rest := make([]string, 0, len(seen))
	for col := range seen {
		rest = append(rest, col)
	}
	sort.Strings(rest)
	return append(out, rest...)
}

func writeHeader(f *excelize.File, sheet string, headers []string) error {
	values := make([]any, len(headers))
	for i, h := range headers {
		values[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &values); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return err
	}
	return f.SetRowStyle(sheet, 1, 1, headerStyle)
}

// finishSheet 冻结表头、设置筛选与列宽
func finishSheet(f *excelize.File, sheet string, cols, rows int) error {
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}

	last, err := excelize.CoordinatesToCellName(cols, rows+1)
	if err != nil {
		return err
	}
	if err := f.AutoFilter(sheet, "A1:"+last, nil); err != nil {
		return err
	}

	lastCol, err := excelize.ColumnNumberToName(cols)
	if err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", lastCol, 16)
}

func writeQuerySheet(f *excelize.File, opts ExportOptions) error {
	if _, err := f.NewSheet(QuerySheet); err != nil {
		return err
	}

	data := [][]any{{"Column", "Type", "Value"}}
	for _, flt := range opts.Filters {
		data = append(data, []any{string(flt.Column), string(flt.Type), flt.Value.String()})
	}
	if opts.Search != nil && opts.Search.Query != "" {
		cols := "(all)"
		if len(opts.Search.Columns) > 0 {
			cols = fmt.Sprint(opts.Search.Columns)
		}
		data = append(data, []any{"Search", cols, opts.Search.Query})
	}

	for i := range data {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(QuerySheet, cell, &data[i]); err != nil {
			return err
		}
	}
	return f.SetColWidth(QuerySheet, "A", "C", 20)
}
