package model

import (
	"sort"
	"strconv"
	"strings"
)

// 排期表列名；行按表头文本取值，列名即工作簿约定的一部分
const (
	ColShow           = "Show"
	ColClient         = "Client"
	ColYear           = "Year"
	ColShip           = "Ship"
	ColShowStart      = "S. Start"
	ColShowEnd        = "S. End"
	ColExpectedReturn = "Expected Return Date"

	// 参考名单表
	ColAbbreviations = "Abbreviations"
	ColAbbr          = "Abbr"
)

// Row 一行表格数据：表头 -> 单元格文本
type Row map[string]string

// Get 去除首尾空白的单元格值，不存在时为 ""
func (r Row) Get(col string) string {
	if r == nil {
		return ""
	}
	return strings.TrimSpace(r[col])
}

// Has 单元格存在且非空
func (r Row) Has(col string) bool {
	return r.Get(col) != ""
}

// Year 解析 Year 列
func (r Row) Year() (int, bool) {
	v := r.Get(ColYear)
	if v == "" {
		return 0, false
	}
	// 表格里年份有时会被存成 "2025.0"
	if f, err := strconv.ParseFloat(v, 64); err == nil && f == float64(int(f)) {
		return int(f), true
	}
	return 0, false
}

// Columns 排序后的列名
func (r Row) Columns() []string {
	cols := make([]string, 0, len(r))
	for k := range r {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols
}

// Clone 复制一行
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
