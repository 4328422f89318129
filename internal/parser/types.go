package parser

import (
	"time"

	"showboard/internal/model"
)

// ParseResult 单个 Sheet 的导入结果
type ParseResult struct {
	SheetName    string          `json:"sheetName"`
	Kind         model.SheetKind `json:"kind"`
	Table        string          `json:"table,omitempty"`
	Status       string          `json:"status"` // imported/skipped/error
	ImportedRows int             `json:"importedRows"`
	SkippedRows  int             `json:"skippedRows"`
	Errors       []string        `json:"errors,omitempty"`
	Duration     time.Duration   `json:"duration"`
}

// ImportReport 导入报告
type ImportReport struct {
	ImportID       string        `json:"importId"`
	Filename       string        `json:"filename"`
	TotalSheets    int           `json:"totalSheets"`
	ImportedSheets int           `json:"importedSheets"`
	SkippedSheets  int           `json:"skippedSheets"`
	ImportedRows   int           `json:"importedRows"`
	Duration       time.Duration `json:"duration"`
	Sheets         []ParseResult `json:"sheets"`
}
