package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"showboard/internal/model"
	"showboard/internal/schedule"
	"showboard/internal/search"
	"showboard/internal/source"
)

// OverlapRequest 重叠查询请求
type OverlapRequest struct {
	Filters   []model.DateFilter  `json:"filters"`
	Search    *model.SearchParams `json:"search,omitempty"`
	Highlight bool                `json:"highlight"` // 返回搜索列的高亮片段
}

// ShowRow 查询结果中的一行
type ShowRow struct {
	Row         model.Row         `json:"row"`
	Identifier  string            `json:"identifier,omitempty"`
	Dates       schedule.RowDates `json:"dates"`
	Highlighted map[string]string `json:"highlighted,omitempty"`
}

// OverlapResponse 重叠查询响应
type OverlapResponse struct {
	Count   int       `json:"count"`
	Rows    []ShowRow `json:"rows"`
	Warning string    `json:"warning,omitempty"`
}

func (r *OverlapRequest) validate() error {
	for i, f := range r.Filters {
		if err := f.Validate(); err != nil {
			return fmt.Errorf("filters[%d]: %w", i, err)
		}
		if !f.Value.IsDays() && f.Value.Text == "" {
			return fmt.Errorf("filters[%d]: %w: empty value", i, model.ErrInvalidFilter)
		}
	}
	return nil
}

// bindOverlap 解析并校验请求体；失败时已写入 400 响应
func (h *Handler) bindOverlap(c *gin.Context) (*OverlapRequest, bool) {
	var req OverlapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("无效的请求: %v", err)})
		return nil, false
	}
	if err := req.validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	return &req, true
}

// queryOverlap 执行查询；排期表尚未导入时返回空结果与提示
func (h *Handler) queryOverlap(c *gin.Context, req *OverlapRequest) ([]model.Row, string, bool) {
	rows, err := h.service.GetOverlappingShows(c.Request.Context(), req.Filters, req.Search)
	if err == nil {
		return rows, "", true
	}
	if errors.Is(err, source.ErrUnknownTable) {
		return []model.Row{}, "排期表尚未导入", true
	}
	h.logger.Error("overlap query failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "查询排期失败"})
	return nil, "", false
}

// Overlap 查询与日期条件重叠的展会
// POST /api/shows/overlap
func (h *Handler) Overlap(c *gin.Context) {
	req, ok := h.bindOverlap(c)
	if !ok {
		return
	}
	rows, warning, ok := h.queryOverlap(c, req)
	if !ok {
		return
	}

	var hl *search.Search
	if req.Highlight && req.Search != nil {
		hl = search.FromParams(*req.Search, h.highlighter)
	}

	inference := h.service.Inference()
	resp := OverlapResponse{
		Count:   len(rows),
		Rows:    make([]ShowRow, 0, len(rows)),
		Warning: warning,
	}
	for _, row := range rows {
		item := ShowRow{Row: row, Dates: inference.Dates(row)}
		if hl != nil && hl.Active() {
			item.Highlighted = hl.HighlightRow(row)
		}
		resp.Rows = append(resp.Rows, item)
	}

	c.JSON(http.StatusOK, resp)
}

// ComputeIdentifier 计算展会标识符
// GET /api/shows/identifier?show=&client=&year=
func (h *Handler) ComputeIdentifier(c *gin.Context) {
	id := h.service.ComputeIdentifier(c.Request.Context(), c.Query("show"), c.Query("client"), c.Query("year"))
	c.JSON(http.StatusOK, gin.H{"identifier": id})
}

// GetShowDetails 按标识符查询展会
// GET /api/shows/details?identifier=
func (h *Handler) GetShowDetails(c *gin.Context) {
	identifier := c.Query("identifier")
	if identifier == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少 identifier 参数"})
		return
	}

	row, err := h.service.GetShowDetails(c.Request.Context(), identifier)
	if err != nil && !errors.Is(err, source.ErrUnknownTable) {
		h.logger.Error("show details failed", zap.String("identifier", identifier), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询展会失败"})
		return
	}
	if row == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "展会不存在"})
		return
	}

	c.JSON(http.StatusOK, ShowRow{
		Row:        row,
		Identifier: identifier,
		Dates:      h.service.Inference().Dates(row),
	})
}

// ShipDateRequest 发货日期请求
type ShipDateRequest struct {
	Row model.Row `json:"row" binding:"required"`
}

// GuessShipDate 推断发货日期
// POST /api/shows/ship-date
func (h *Handler) GuessShipDate(c *gin.Context) {
	var req ShipDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"shipDate": h.service.GuessShipDate(req.Row)})
}
