package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"showboard/internal/model"
	"showboard/internal/store"
)

// StatusResponse 系统状态响应
type StatusResponse struct {
	Initialized  bool              `json:"initialized"` // 是否已导入排期表
	ScheduleRows int               `json:"scheduleRows"`
	ClientRows   int               `json:"clientRows"`
	ShowRows     int               `json:"showRows"`
	Tables       []store.TableInfo `json:"tables"`
	LastImport   *model.ImportLog  `json:"lastImport,omitempty"`
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	ctx := c.Request.Context()
	names := h.service.Tables()

	tables, err := h.store.ListTables(ctx)
	if err != nil {
		h.logger.Error("list tables failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取数据状态失败"})
		return
	}

	resp := StatusResponse{Tables: tables}
	for _, t := range tables {
		switch t.Name {
		case names.Schedule:
			resp.ScheduleRows = t.RowCount
			resp.Initialized = true
		case names.Clients:
			resp.ClientRows = t.RowCount
		case names.Shows:
			resp.ShowRows = t.RowCount
		}
	}

	last, err := h.store.LastImport(ctx)
	if err != nil {
		h.logger.Warn("read last import failed", zap.Error(err))
	}
	resp.LastImport = last

	c.JSON(http.StatusOK, resp)
}
