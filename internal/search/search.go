package search

import "showboard/internal/model"

// Search 看板当前的查询与搜索列
//
// 查询词每次调用时重新计算。Search 不是并发安全的，每个请求各自创建。
type Search struct {
	query       string
	columns     []string
	highlighter *Highlighter
}

// NewSearch 创建搜索状态；h 为 nil 时使用默认高亮器
func NewSearch(h *Highlighter) *Search {
	if h == nil {
		h = NewHighlighter("", "")
	}
	return &Search{highlighter: h}
}

// FromParams 由请求参数构建
func FromParams(p model.SearchParams, h *Highlighter) *Search {
	s := NewSearch(h)
	s.SetQuery(p.Query)
	s.SetColumns(p.Columns...)
	return s
}

// SetQuery 设置查询
func (s *Search) SetQuery(q string) {
	s.query = q
}

// SetColumns 设置搜索列；不传表示整行
func (s *Search) SetColumns(cols ...string) {
	s.columns = append([]string(nil), cols...)
}

// Clear 清空查询
func (s *Search) Clear() {
	s.query = ""
}

// Query 当前查询
func (s *Search) Query() string {
	return s.query
}

// Columns 当前搜索列
func (s *Search) Columns() []string {
	return s.columns
}

// Words 当前查询词
func (s *Search) Words() []string {
	return Tokenize(s.query)
}

// Active 是否有查询词
func (s *Search) Active() bool {
	return len(s.Words()) > 0
}

// Matches 行是否满足查询
func (s *Search) Matches(row model.Row) bool {
	return MatchRow(row, s.columns, s.Words())
}

// Filter 过滤行
func (s *Search) Filter(rows []model.Row) []model.Row {
	return FilterRows(rows, s.columns, s.Words())
}

// Highlight 高亮纯文本
func (s *Search) Highlight(text string) string {
	return s.highlighter.Highlight(text, s.Words())
}

// HighlightHTML 高亮 HTML 片段的文本内容
func (s *Search) HighlightHTML(content string) string {
	return s.highlighter.HighlightHTML(content, s.Words())
}

// HighlightRow 返回行中每个搜索列的高亮值（未设置列时为整行）
func (s *Search) HighlightRow(row model.Row) map[string]string {
	cols := s.columns
	if len(cols) == 0 {
		cols = row.Columns()
	}
	words := s.Words()
	out := make(map[string]string, len(cols))
	for _, col := range cols {
		v, ok := row[col]
		if !ok {
			continue
		}
		out[col] = s.highlighter.Highlight(v, words)
	}
	return out
}
