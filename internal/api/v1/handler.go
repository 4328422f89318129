package v1

import (
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"showboard/internal/exporter"
	"showboard/internal/importer"
	"showboard/internal/schedule"
	"showboard/internal/search"
	"showboard/internal/store"
)

// Handler V1 API 处理器
type Handler struct {
	store       *store.Store
	service     *schedule.Service
	importer    *importer.Coordinator
	exporter    *exporter.Exporter
	highlighter *search.Highlighter
	logger      *zap.Logger
	uploadDir   string
	exportDir   string
	downloads   *downloadStore
}

// NewHandler 创建 V1 API 处理器；uploadDir 为空时使用系统临时目录
func NewHandler(
	st *store.Store,
	svc *schedule.Service,
	coord *importer.Coordinator,
	hl *search.Highlighter,
	logger *zap.Logger,
	uploadDir string,
) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if hl == nil {
		hl = search.NewHighlighter("", "")
	}
	if uploadDir == "" {
		uploadDir = os.TempDir()
	}
	return &Handler{
		store:       st,
		service:     svc,
		importer:    coord,
		exporter:    exporter.NewExporter(svc.Inference()),
		highlighter: hl,
		logger:      logger,
		uploadDir:   uploadDir,
		exportDir:   os.TempDir(),
		downloads:   newDownloadStore(),
	}
}

// SetExportDir 设置流式导出临时文件目录
func (h *Handler) SetExportDir(dir string) {
	if dir != "" {
		h.exportDir = dir
	}
}

// RegisterRoutes 注册 V1 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)

	// 排期查询
	shows := router.Group("/shows")
	{
		shows.POST("/overlap", h.Overlap)
		shows.POST("/overlap/export", h.ExportOverlap)
		shows.POST("/overlap/export/stream", h.ExportOverlapStream)
		shows.GET("/exports/:token", h.DownloadExport)
		shows.GET("/identifier", h.ComputeIdentifier)
		shows.GET("/details", h.GetShowDetails)
		shows.POST("/ship-date", h.GuessShipDate)
	}

	// 搜索高亮
	router.POST("/highlight", h.Highlight)

	// 数据导入
	router.POST("/import", h.Import)
}
