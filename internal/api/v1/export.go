package v1

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"showboard/internal/exporter"
)

// ExportOverlap 导出重叠查询结果
// POST /api/shows/overlap/export
func (h *Handler) ExportOverlap(c *gin.Context) {
	req, ok := h.bindOverlap(c)
	if !ok {
		return
	}
	rows, _, ok := h.queryOverlap(c, req)
	if !ok {
		return
	}

	file, err := h.exporter.Export(rows, exporter.ExportOptions{
		Columns: h.scheduleColumns(c),
		Filters: req.Filters,
		Search:  req.Search,
	})
	if err != nil {
		h.logger.Error("export failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "导出失败"})
		return
	}
	defer file.Close()

	c.Header("Content-Disposition", buildExportContentDisposition(time.Now()))
	c.Header("Content-Type", xlsxContentType)
	if err := file.Write(c.Writer); err != nil {
		h.logger.Warn("write export failed", zap.Error(err))
	}
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// scheduleColumns 排期表导入时的列顺序；未知时交给导出器汇总
func (h *Handler) scheduleColumns(c *gin.Context) []string {
	info, err := h.store.Table(c.Request.Context(), h.service.Tables().Schedule)
	if err != nil {
		return nil
	}
	return info.Columns
}

func exportFilename(now time.Time) string {
	return fmt.Sprintf("overlapping-shows-%s.xlsx", now.Format("2006-01-02"))
}

func contentDisposition(name string) string {
	return fmt.Sprintf("attachment; filename=\"%s\"; filename*=UTF-8''%s", name, url.PathEscape(name))
}

func buildExportContentDisposition(now time.Time) string {
	return contentDisposition(exportFilename(now))
}
