// Package schedule 排期看板的核心查询：日期推断、展会标识符与重叠查询
package schedule

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"showboard/internal/model"
	"showboard/internal/parser"
	"showboard/internal/source"
)

// ErrSourceUnavailable 数据源读取失败
var ErrSourceUnavailable = errors.New("schedule data unavailable")

// Tables 数据源中的表名
type Tables struct {
	Schedule string
	Clients  string
	Shows    string
}

// DefaultTables 默认表名（与工作簿 sheet 名一致）
func DefaultTables() Tables {
	return Tables{
		Schedule: "Schedule",
		Clients:  "Clients",
		Shows:    "Shows",
	}
}

// Service 排期查询服务
type Service struct {
	src    source.Source
	tables Tables
	now    func() time.Time
	parse  DateParser
	logger *zap.Logger

	matcher         Matcher
	clientThreshold float64
	showThreshold   float64

	inference *Inference
	resolver  *IdentifierResolver
}

// Option 服务选项
type Option func(*Service)

// WithClock 注入时钟（决定"今天"）
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLogger 注入日志
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithTables 覆盖表名
func WithTables(t Tables) Option {
	return func(s *Service) { s.tables = t }
}

// WithThresholds 覆盖客户/展会匹配阈值
func WithThresholds(client, show float64) Option {
	return func(s *Service) {
		s.clientThreshold = client
		s.showThreshold = show
	}
}

// WithDateParser 替换日期解析器
func WithDateParser(p DateParser) Option {
	return func(s *Service) { s.parse = p }
}

// NewService 创建服务
func NewService(src source.Source, matcher Matcher, opts ...Option) *Service {
	s := &Service{
		src:     src,
		tables:  DefaultTables(),
		now:     time.Now,
		parse:   parser.ParseDate,
		logger:  zap.NewNop(),
		matcher: matcher,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.inference = NewInference(s.parse, s.now)
	s.resolver = NewIdentifierResolver(s.matcher, s.clientThreshold, s.showThreshold, s.logger)
	return s
}

// Inference 日期推断器
func (s *Service) Inference() *Inference {
	return s.inference
}

// Tables 排期、客户、展会表名
func (s *Service) Tables() Tables {
	return s.tables
}

// GetOverlappingShows 返回满足搜索与全部日期条件的排期行
//
// 排期表无法加载时返回空结果，错误包装 ErrSourceUnavailable；参考名单加载失败只影响标识符匹配。
func (s *Service) GetOverlappingShows(ctx context.Context, filters []model.DateFilter, params *model.SearchParams) ([]model.Row, error) {
	rows, err := s.loadSchedule(ctx)
	if err != nil {
		return []model.Row{}, err
	}

	var refs References
	if needsIdentifiers(filters) {
		refs = s.loadReferences(ctx)
	}

	out := s.FilterByDate(rows, filters, params, refs)
	s.logger.Debug("overlap query",
		zap.Int("filters", len(filters)),
		zap.Int("scheduleRows", len(rows)),
		zap.Int("matched", len(out)))
	return out, nil
}

// ComputeIdentifier 计算展会标识符；showName 为空时不读取参考名单
func (s *Service) ComputeIdentifier(ctx context.Context, showName, clientName, year string) string {
	if strings.TrimSpace(showName) == "" {
		return ""
	}
	return s.resolver.Compute(showName, clientName, year, s.loadReferences(ctx))
}

// GetShowDetails 返回标识符相等的第一行，没有时返回 nil
func (s *Service) GetShowDetails(ctx context.Context, identifier string) (model.Row, error) {
	if identifier == "" {
		return nil, nil
	}
	rows, err := s.loadSchedule(ctx)
	if err != nil {
		return nil, err
	}
	refs := s.loadReferences(ctx)
	for _, row := range rows {
		if s.resolver.ForRow(row, refs) == identifier {
			return row, nil
		}
	}
	return nil, nil
}

// GuessShipDate 见 Inference.GuessShipDate
func (s *Service) GuessShipDate(row model.Row) string {
	return s.inference.GuessShipDate(row)
}

func (s *Service) loadSchedule(ctx context.Context) ([]model.Row, error) {
	rows, err := s.src.Rows(ctx, s.tables.Schedule)
	if err != nil {
		s.logger.Warn("failed to load schedule", zap.String("table", s.tables.Schedule), zap.Error(err))
		return nil, fmt.Errorf("%w: load %s: %w", ErrSourceUnavailable, s.tables.Schedule, err)
	}
	return rows, nil
}

// loadReferences 并发读取客户与展会名单；失败时记录日志并使用空名单
func (s *Service) loadReferences(ctx context.Context) References {
	var clients, shows []model.Row
	// 两张表互不影响：一张失败时另一张仍然可用
	var g errgroup.Group
	g.Go(func() error {
		rows, err := s.src.Rows(ctx, s.tables.Clients)
		if err != nil {
			return fmt.Errorf("load %s: %w", s.tables.Clients, err)
		}
		clients = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.src.Rows(ctx, s.tables.Shows)
		if err != nil {
			return fmt.Errorf("load %s: %w", s.tables.Shows, err)
		}
		shows = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger.Warn("reference lists unavailable, matching against raw names", zap.Error(err))
	}

	return References{
		Clients: model.ReferenceListFromRows(clients, model.ColClient),
		Shows:   model.ReferenceListFromRows(shows, model.ColShow),
	}
}

// 只有标识符类型的过滤条件才需要参考名单
func needsIdentifiers(filters []model.DateFilter) bool {
	for _, f := range filters {
		if !f.Value.IsDays() && f.Value.Text != "" && !parser.IsISODate(f.Value.Text) {
			return true
		}
	}
	return false
}
