package importer

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"showboard/internal/model"
	"showboard/internal/parser"
	"showboard/internal/schedule"
	"showboard/internal/store"
)

// 进度事件类型
const (
	EventStart      = "start"
	EventSheetStart = "sheet_start"
	EventInfo       = "info"
	EventWarning    = "warning"
	EventSheetDone  = "sheet_done"
	EventDone       = "done"
	EventError      = "error"
)

// Sheet 处理状态
const (
	StatusImported = "imported"
	StatusSkipped  = "skipped"
	StatusError    = "error"
)

// Coordinator 导入协调器
type Coordinator struct {
	store      *store.Store
	recognizer *parser.SheetRecognizer
	tables     schedule.Tables
	logger     *zap.Logger

	newID func() string
	now   func() time.Time
}

// NewCoordinator 创建导入协调器
func NewCoordinator(st *store.Store, tables schedule.Tables, logger *zap.Logger) *Coordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coordinator{
		store:      st,
		recognizer: parser.NewSheetRecognizer(),
		tables:     tables,
		logger:     logger,
		newID:      uuid.NewString,
		now:        time.Now,
	}
}

// ImportOptions 导入选项
type ImportOptions struct {
	FilePath    string
	Filename    string // 展示用文件名，默认取 FilePath 的文件名
	KeepUnknown bool   // 未识别的 Sheet 以原 Sheet 名保存
}

// ProgressEvent 进度事件
type ProgressEvent struct {
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Data      any       `json:"data,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// importRun 一次导入的状态
type importRun struct {
	ctx      context.Context
	id       string
	opts     ImportOptions
	file     *excelize.File
	report   *parser.ImportReport
	progress chan<- ProgressEvent
	assigned map[model.SheetKind]string
}

// Import 在后台执行导入并推送进度
//
// 最后一个 done 或 error 事件之后关闭通道；取消 ctx 会在 Sheet 之间停止导入。
func (c *Coordinator) Import(ctx context.Context, opts ImportOptions) <-chan ProgressEvent {
	progress := make(chan ProgressEvent, 100)

	go func() {
		defer close(progress)
		c.doImport(ctx, opts, progress)
	}()

	return progress
}

func (c *Coordinator) doImport(ctx context.Context, opts ImportOptions, progress chan<- ProgressEvent) {
	startTime := c.now()
	if opts.Filename == "" {
		opts.Filename = filepath.Base(opts.FilePath)
	}

	run := &importRun{
		ctx:      ctx,
		id:       c.newID(),
		opts:     opts,
		progress: progress,
		assigned: make(map[model.SheetKind]string),
	}
	run.report = &parser.ImportReport{
		ImportID: run.id,
		Filename: opts.Filename,
		Sheets:   []parser.ParseResult{},
	}

	c.send(run, EventStart, "开始导入 Excel 文件", map[string]string{
		"filename": opts.Filename,
		"importId": run.id,
	})

	if err := c.store.CreateImportLog(ctx, run.id, opts.Filename, startTime); err != nil {
		c.logger.Error("create import log failed", zap.Error(err))
		c.send(run, EventError, fmt.Sprintf("创建导入记录失败: %v", err), nil)
		return
	}

	file, err := excelize.OpenFile(opts.FilePath)
	if err != nil {
		c.fail(run, fmt.Errorf("open %s: %w", opts.Filename, err))
		return
	}
	defer file.Close()
	run.file = file

	sheetList := file.GetSheetList()
	run.report.TotalSheets = len(sheetList)
	c.send(run, EventInfo, fmt.Sprintf("发现 %d 个 Sheet", len(sheetList)), map[string]any{
		"totalSheets": len(sheetList),
	})

	for _, sheetName := range sheetList {
		if err := ctx.Err(); err != nil {
			c.fail(run, fmt.Errorf("import cancelled: %w", err))
			return
		}
		c.processSheet(run, sheetName)
	}

	if _, ok := run.assigned[model.SheetKindSchedule]; !ok {
		c.send(run, EventWarning, "未找到排期表，现有排期数据保持不变", nil)
	}

	run.report.Duration = time.Since(startTime)

	completed := c.now()
	if err := c.store.UpdateImportLog(ctx, model.ImportLog{
		ID:           run.id,
		Status:       "success",
		TotalSheets:  run.report.TotalSheets,
		ImportedRows: run.report.ImportedRows,
		CompletedAt:  &completed,
	}); err != nil {
		c.logger.Warn("update import log failed", zap.String("importId", run.id), zap.Error(err))
	}

	c.logger.Info("import finished",
		zap.String("importId", run.id),
		zap.String("filename", opts.Filename),
		zap.Int("importedSheets", run.report.ImportedSheets),
		zap.Int("importedRows", run.report.ImportedRows),
		zap.Duration("duration", run.report.Duration))

	c.send(run, EventDone, "导入完成", run.report)
}

// processSheet 处理单个 Sheet
func (c *Coordinator) processSheet(run *importRun, sheetName string) {
	sheetStart := time.Now()

	c.send(run, EventSheetStart, fmt.Sprintf("正在解析 Sheet: %s", sheetName), map[string]string{
		"sheetName": sheetName,
	})

	rows, err := run.file.GetRows(sheetName)
	if err != nil {
		c.recordSheetResult(run, parser.ParseResult{
			SheetName: sheetName,
			Kind:      model.SheetKindUnknown,
			Status:    StatusError,
			Errors:    []string{fmt.Sprintf("读取 Sheet 失败: %v", err)},
			Duration:  time.Since(sheetStart),
		})
		return
	}
	if len(rows) == 0 {
		c.skip(run, sheetName, model.SheetKindUnknown, "空 Sheet", sheetStart)
		return
	}

	recognition := c.recognizer.Recognize(sheetName, rows[0])
	c.send(run, EventInfo,
		fmt.Sprintf("Sheet \"%s\" 识别为: %s (置信度: %.2f)", sheetName, recognition.Kind, recognition.Confidence),
		map[string]any{
			"sheetName":  sheetName,
			"kind":       recognition.Kind,
			"confidence": recognition.Confidence,
		})

	table, reason := c.tableFor(run, sheetName, recognition.Kind)
	if table == "" {
		c.skip(run, sheetName, recognition.Kind, reason, sheetStart)
		return
	}

	records, skippedRows, err := parser.RowsToRecords(rows)
	if err != nil {
		if errors.Is(err, parser.ErrMalformedHeader) {
			c.skip(run, sheetName, recognition.Kind, "表头为空", sheetStart)
			return
		}
		c.recordSheetResult(run, parser.ParseResult{
			SheetName: sheetName,
			Kind:      recognition.Kind,
			Status:    StatusError,
			Errors:    []string{err.Error()},
			Duration:  time.Since(sheetStart),
		})
		return
	}

	if err := c.store.ReplaceRows(run.ctx, table, parser.HeaderColumns(rows[0]), records, run.id); err != nil {
		c.recordSheetResult(run, parser.ParseResult{
			SheetName:   sheetName,
			Kind:        recognition.Kind,
			Table:       table,
			Status:      StatusError,
			SkippedRows: len(records),
			Errors:      []string{fmt.Sprintf("写入失败: %v", err)},
			Duration:    time.Since(sheetStart),
		})
		return
	}
	if recognition.Kind != model.SheetKindUnknown {
		run.assigned[recognition.Kind] = sheetName
	}

	c.recordSheetResult(run, parser.ParseResult{
		SheetName:    sheetName,
		Kind:         recognition.Kind,
		Table:        table,
		Status:       StatusImported,
		ImportedRows: len(records),
		SkippedRows:  skippedRows,
		Duration:     time.Since(sheetStart),
	})

	c.send(run, EventSheetDone, fmt.Sprintf("Sheet \"%s\" 导入成功: %d 行", sheetName, len(records)), map[string]any{
		"sheetName":    sheetName,
		"table":        table,
		"importedRows": len(records),
		"skippedRows":  skippedRows,
	})
}

// tableFor 决定 Sheet 写入的表；返回空表名时附带跳过原因
func (c *Coordinator) tableFor(run *importRun, sheetName string, kind model.SheetKind) (string, string) {
	var table string
	switch kind {
	case model.SheetKindSchedule:
		table = c.tables.Schedule
	case model.SheetKindClients:
		table = c.tables.Clients
	case model.SheetKindShows:
		table = c.tables.Shows
	default:
		if run.opts.KeepUnknown {
			return sheetName, ""
		}
		return "", "无法识别 Sheet 类型"
	}

	if prev, ok := run.assigned[kind]; ok {
		return "", fmt.Sprintf("已从 Sheet \"%s\" 导入 %s", prev, kind)
	}
	return table, ""
}

func (c *Coordinator) skip(run *importRun, sheetName string, kind model.SheetKind, reason string, started time.Time) {
	c.recordSheetResult(run, parser.ParseResult{
		SheetName: sheetName,
		Kind:      kind,
		Status:    StatusSkipped,
		Errors:    []string{reason},
		Duration:  time.Since(started),
	})
	c.send(run, EventWarning, fmt.Sprintf("跳过 Sheet: %s (%s)", sheetName, reason), map[string]string{
		"sheetName": sheetName,
		"reason":    reason,
	})
}

// fail 记录失败并发送 error 事件
func (c *Coordinator) fail(run *importRun, err error) {
	c.logger.Error("import failed", zap.String("importId", run.id), zap.Error(err))

	completed := c.now()
	// ctx 可能已取消，导入记录使用独立的 context 写入
	if uerr := c.store.UpdateImportLog(context.WithoutCancel(run.ctx), model.ImportLog{
		ID:           run.id,
		Status:       "failed",
		TotalSheets:  run.report.TotalSheets,
		ImportedRows: run.report.ImportedRows,
		ErrorMessage: err.Error(),
		CompletedAt:  &completed,
	}); uerr != nil {
		c.logger.Warn("update import log failed", zap.String("importId", run.id), zap.Error(uerr))
	}

	c.send(run, EventError, err.Error(), run.report)
}

// recordSheetResult 记录 Sheet 处理结果
func (c *Coordinator) recordSheetResult(run *importRun, result parser.ParseResult) {
	run.report.Sheets = append(run.report.Sheets, result)

	switch result.Status {
	case StatusImported:
		run.report.ImportedSheets++
		run.report.ImportedRows += result.ImportedRows
	case StatusSkipped:
		run.report.SkippedSheets++
	case StatusError:
		c.send(run, EventWarning, fmt.Sprintf("Sheet \"%s\" 导入失败: %v", result.SheetName, result.Errors), map[string]any{
			"sheetName": result.SheetName,
			"errors":    result.Errors,
		})
	}

	c.logger.Debug("sheet processed",
		zap.String("sheet", result.SheetName),
		zap.String("kind", string(result.Kind)),
		zap.String("status", result.Status),
		zap.Int("rows", result.ImportedRows))
}

// send 发送进度事件；接收方放弃（ctx 取消）时直接丢弃
func (c *Coordinator) send(run *importRun, typ, message string, data any) {
	event := ProgressEvent{
		Type:      typ,
		Message:   message,
		Data:      data,
		Timestamp: c.now(),
	}
	select {
	case run.progress <- event:
	case <-run.ctx.Done():
	}
}
