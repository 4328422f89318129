package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"showboard/internal/search"
)

// HighlightRequest 高亮请求
type HighlightRequest struct {
	Text  string `json:"text"`
	Query string `json:"query"`
	HTML  bool   `json:"html"` // text 为 HTML 片段
}

// Highlight 高亮文本中的搜索词
// POST /api/highlight
func (h *Handler) Highlight(c *gin.Context) {
	var req HighlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求"})
		return
	}

	words := search.Tokenize(req.Query)
	var result string
	if req.HTML {
		result = h.highlighter.HighlightHTML(req.Text, words)
	} else {
		result = h.highlighter.Highlight(req.Text, words)
	}
	c.JSON(http.StatusOK, gin.H{"result": result, "words": words})
}
