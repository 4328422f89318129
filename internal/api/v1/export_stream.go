package v1

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"showboard/internal/exporter"
)

type exportProgressEvent struct {
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Data      any       `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}

// ExportOverlapStream 导出重叠查询结果（SSE 进度 + 完成后提供下载地址）
// POST /api/shows/overlap/export/stream
func (h *Handler) ExportOverlapStream(c *gin.Context) {
	req, ok := h.bindOverlap(c)
	if !ok {
		return
	}
	rows, warning, ok := h.queryOverlap(c, req)
	if !ok {
		return
	}

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "不支持流式响应"})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	send := func(typ, message string, data any) {
		b, err := json.Marshal(exportProgressEvent{Type: typ, Message: message, Data: data, Timestamp: time.Now()})
		if err != nil {
			h.logger.Warn("encode export event failed", zap.Error(err))
			return
		}
		fmt.Fprintf(c.Writer, "data: %s\n\n", b)
		flusher.Flush()
	}

	send("start", "开始导出", gin.H{"rows": len(rows), "warning": warning})

	lastPercent := -1
	file, err := h.exporter.Export(rows, exporter.ExportOptions{
		Columns: h.scheduleColumns(c),
		Filters: req.Filters,
		Search:  req.Search,
		Progress: func(p exporter.ProgressEvent) {
			if p.Percent == lastPercent {
				return
			}
			lastPercent = p.Percent
			send("progress", p.Stage, gin.H{"percent": p.Percent})
		},
	})
	if err != nil {
		h.logger.Error("export failed", zap.Error(err))
		send("error", "导出失败: "+err.Error(), gin.H{})
		return
	}
	defer file.Close()

	tempPath := filepath.Join(h.exportDir, fmt.Sprintf("showboard_export_%s.xlsx", uuid.NewString()))
	if err := file.SaveAs(tempPath); err != nil {
		h.logger.Error("save export failed", zap.String("path", tempPath), zap.Error(err))
		send("error", "写入导出文件失败: "+err.Error(), gin.H{})
		_ = os.Remove(tempPath)
		return
	}

	token := h.downloads.put(tempPath, exportFilename(time.Now()), downloadTTL)
	send("done", "导出完成", gin.H{
		"percent":     100,
		"downloadUrl": "/api/shows/exports/" + token,
	})
}

// DownloadExport 下载导出的 Excel 文件（一次性）
// GET /api/shows/exports/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	item, ok := h.downloads.take(c.Param("token"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "下载链接已失效"})
		return
	}
	defer os.Remove(item.filePath)

	if _, err := os.Stat(item.filePath); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "导出文件不存在"})
		return
	}

	c.Header("Content-Disposition", contentDisposition(item.filename))
	c.Header("Content-Type", xlsxContentType)
	c.File(item.filePath)
}
