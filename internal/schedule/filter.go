package schedule

import (
	"time"

	"go.uber.org/zap"

	"showboard/internal/model"
	"showboard/internal/parser"
	"showboard/internal/search"
)

// resolvedFilter 已解析出目标日期的过滤条件
type resolvedFilter struct {
	model.DateFilter
	date time.Time
	ok   bool
}

// overlapQuery 一次重叠查询的状态；排期行的标识符缓存在这里，随查询结束丢弃
type overlapQuery struct {
	inference *Inference
	resolver  *IdentifierResolver
	refs      References
	schedule  []model.Row
	today     time.Time
	logger    *zap.Logger

	identifiers map[int]string
}

// FilterByDate 先按搜索缩小范围，再保留满足全部日期条件的行
//
// schedule 为完整排期表，用于解析标识符类型的过滤条件。
func (s *Service) FilterByDate(schedule []model.Row, filters []model.DateFilter, params *model.SearchParams, refs References) []model.Row {
	rows := schedule
	if params != nil {
		rows = search.FilterRows(rows, params.Columns, search.Tokenize(params.Query))
	}
	if len(filters) == 0 {
		return rows
	}

	q := &overlapQuery{
		inference:   s.inference,
		resolver:    s.resolver,
		refs:        refs,
		schedule:    schedule,
		today:       parser.Midnight(s.now()),
		logger:      s.logger,
		identifiers: make(map[int]string),
	}
	return q.run(rows, filters)
}

func (q *overlapQuery) run(rows []model.Row, filters []model.DateFilter) []model.Row {
	// 所有过滤条件先解析完成，再逐行比较
	resolved := make([]resolvedFilter, len(filters))
	minYear, maxYear := 0, 0
	found := false
	for i, f := range filters {
		d, ok := q.resolve(f)
		resolved[i] = resolvedFilter{DateFilter: f, date: d, ok: ok}
		if !ok {
			q.logger.Debug("date filter unresolved",
				zap.String("column", string(f.Column)), zap.String("type", string(f.Type)),
				zap.String("value", f.Value.String()))
			continue
		}
		if !found || d.Year() < minYear {
			minYear = d.Year()
		}
		if !found || d.Year() > maxYear {
			maxYear = d.Year()
		}
		found = true
	}

	out := []model.Row{}
	if !found {
		return out
	}

	for _, row := range rows {
		if y, ok := row.Year(); ok && (y < minYear || y > maxYear) {
			continue
		}
		if q.passes(row, resolved) {
			out = append(out, row)
		}
	}
	return out
}

func (q *overlapQuery) passes(row model.Row, filters []resolvedFilter) bool {
	for _, f := range filters {
		if !f.ok {
			return false
		}
		rowDate, ok := q.inference.DateFor(row, f.Column)
		if !ok {
			return false
		}
		switch f.Type {
		case model.FilterAfter:
			if rowDate.Before(f.date) {
				return false
			}
		case model.FilterBefore:
			if rowDate.After(f.date) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// resolve 解析过滤条件的目标日期
func (q *overlapQuery) resolve(f model.DateFilter) (time.Time, bool) {
	if err := f.Validate(); err != nil {
		return time.Time{}, false
	}

	if f.Value.IsDays() {
		return q.today.AddDate(0, 0, *f.Value.Days), true
	}
	if t, ok := parser.ParseISODate(f.Value.Text); ok {
		return t, true
	}

	ref, ok := q.lookup(f.Value.Text)
	if !ok {
		return time.Time{}, false
	}

	// 与另一场展会的时间窗口重叠：
	// 发货早于对方回库、回库晚于对方发货
	switch {
	case f.Column == model.ColumnShip && f.Type == model.FilterBefore:
		return q.inference.ReturnDate(ref)
	case f.Column == model.ColumnReturn && f.Type == model.FilterAfter:
		return q.inference.ShipDate(ref)
	default:
		return q.inference.DateFor(ref, f.Column)
	}
}

// lookup 查找标识符等于 id 的第一行
func (q *overlapQuery) lookup(id string) (model.Row, bool) {
	if id == "" {
		return nil, false
	}
	for i, row := range q.schedule {
		if q.identifier(i, row) == id {
			return row, true
		}
	}
	return nil, false
}

func (q *overlapQuery) identifier(i int, row model.Row) string {
	if id, ok := q.identifiers[i]; ok {
		return id
	}
	id := q.resolver.ForRow(row, q.refs)
	q.identifiers[i] = id
	return id
}
