package v1

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"showboard/internal/importer"
)

// Import 导入排期工作簿 (SSE 流式响应)
// POST /api/import
func (h *Handler) Import(c *gin.Context) {
	uploaded, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "未找到上传文件"})
		return
	}
	if !strings.EqualFold(filepath.Ext(uploaded.Filename), ".xlsx") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "仅支持 .xlsx 文件"})
		return
	}

	tempFilePath := filepath.Join(h.uploadDir, fmt.Sprintf("showboard_import_%s.xlsx", uuid.NewString()))
	if err := c.SaveUploadedFile(uploaded, tempFilePath); err != nil {
		h.logger.Error("save upload failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "保存文件失败"})
		return
	}
	defer os.Remove(tempFilePath)

	keepUnknown := c.DefaultPostForm("keepUnknown", "false") == "true"

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

	progress := h.importer.Import(c.Request.Context(), importer.ImportOptions{
		FilePath:    tempFilePath,
		Filename:    filepath.Base(uploaded.Filename),
		KeepUnknown: keepUnknown,
	})

	for event := range progress {
		data, err := json.Marshal(event)
		if err != nil {
			h.logger.Warn("encode progress event failed", zap.Error(err))
			continue
		}
		// SSE 格式: data: {json}\n\n
		fmt.Fprintf(c.Writer, "data: %s\n\n", data)
		flusher.Flush()
	}
}
