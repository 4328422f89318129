package model

import "time"

// SheetKind 工作表角色
type SheetKind string

const (
	SheetKindSchedule SheetKind = "schedule"
	SheetKindClients  SheetKind = "clients"
	SheetKindShows    SheetKind = "shows"
	SheetKindUnknown  SheetKind = "unknown"
)

// SheetRecognition 单个 sheet 的识别结果
type SheetRecognition struct {
	SheetName     string    `json:"sheetName"`
	Kind          SheetKind `json:"kind"`
	Confidence    float64   `json:"confidence"`
	MissingFields []string  `json:"missingFields,omitempty"`
}

// ImportLog 导入记录
type ImportLog struct {
	ID           string     `json:"id"`
	Filename     string     `json:"filename"`
	Status       string     `json:"status"`
	TotalSheets  int        `json:"totalSheets"`
	ImportedRows int        `json:"importedRows"`
	ErrorMessage string     `json:"errorMessage,omitempty"`
	StartedAt    time.Time  `json:"startedAt"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
}
