// Package search 搜索词拆分、按行过滤以及转义后的高亮输出
package search

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"showboard/internal/model"
)

// Tokenize 按空白拆分查询词；空查询返回 nil
func Tokenize(query string) []string {
	words := strings.Fields(query)
	if len(words) == 0 {
		return nil
	}
	return words
}

// MatchRow 每个查询词（忽略大小写）都至少出现在一列中；列为空时搜索整行
//
// 与 FindSpans 使用同一套大小写折叠规则，匹配的行一定有可高亮的区间。
func MatchRow(row model.Row, columns []string, words []string) bool {
	if len(words) == 0 {
		return true
	}
	if len(columns) == 0 {
		columns = row.Columns()
	}

	values := make([]string, 0, len(columns))
	for _, col := range columns {
		if v, ok := row[col]; ok && v != "" {
			values = append(values, v)
		}
	}

	for _, w := range words {
		found := false
		for _, v := range values {
			if containsFold(v, w) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// containsFold 忽略大小写的子串判断
func containsFold(s, word string) bool {
	if word == "" {
		return true
	}
	for i := 0; i < len(s); {
		if foldPrefixLen(s[i:], word) > 0 {
			return true
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return false
}

// FilterRows 保留满足 MatchRow 的行
func FilterRows(rows []model.Row, columns []string, words []string) []model.Row {
	if len(words) == 0 {
		return rows
	}
	out := make([]model.Row, 0, len(rows))
	for _, r := range rows {
		if MatchRow(r, columns, words) {
			out = append(out, r)
		}
	}
	return out
}

// Span 匹配区间（字节偏移，左闭右开）
type Span struct {
	Start int
	End   int
}

// FindSpans 查找所有查询词（忽略大小写）的出现位置，按起点排序，重叠或相邻的区间合并
func FindSpans(text string, words []string) []Span {
	if text == "" || len(words) == 0 {
		return nil
	}

	var spans []Span
	for i := 0; i < len(text); {
		for _, w := range words {
			if w == "" {
				continue
			}
			if n := foldPrefixLen(text[i:], w); n > 0 {
				spans = append(spans, Span{Start: i, End: i + n})
			}
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
	}
	return mergeSpans(spans)
}

func mergeSpans(spans []Span) []Span {
	if len(spans) == 0 {
		return nil
	}
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].Start == spans[j].Start {
			return spans[i].End > spans[j].End
		}
		return spans[i].Start < spans[j].Start
	})

	merged := []Span{spans[0]}
	for _, s := range spans[1:] {
		last := &merged[len(merged)-1]
		if s.Start <= last.End {
			if s.End > last.End {
				last.End = s.End
			}
			continue
		}
		merged = append(merged, s)
	}
	return merged
}

// foldPrefixLen s 以 word 开头（简单大小写折叠）时返回该前缀的字节长度，否则返回 0
func foldPrefixLen(s, word string) int {
	n := 0
	for _, wr := range word {
		if n >= len(s) {
			return 0
		}
		sr, size := utf8.DecodeRuneInString(s[n:])
		if !equalFoldRune(sr, wr) {
			return 0
		}
		n += size
	}
	return n
}

func equalFoldRune(a, b rune) bool {
	if a == b {
		return true
	}
	return unicode.ToLower(a) == unicode.ToLower(b) || unicode.ToUpper(a) == unicode.ToUpper(b)
}
