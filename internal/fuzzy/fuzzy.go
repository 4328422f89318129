// Package fuzzy 将手工输入的客户名、展会名与工作簿中的规范名单进行模糊匹配
package fuzzy

import (
	"errors"
	"strings"
	"unicode"

	sfuzzy "github.com/sahilm/fuzzy"
)

// ErrNoMatch 没有可接受的匹配
var ErrNoMatch = errors.New("no acceptable fuzzy match")

// DefaultThreshold 客户名允许的差异（较长字符串每十个字符的编辑次数）
const DefaultThreshold = 1.5

// 子序列匹配需要的最短查询长度，过短的查询几乎能命中任何名称
const minSubsequenceLen = 3

// Matcher 模糊匹配器
type Matcher struct{}

// NewMatcher 创建匹配器
func NewMatcher() *Matcher {
	return &Matcher{}
}

type candidate struct {
	text  string // 规范化后的文本
	index int    // 对应 names 的下标
}

// TopMatch 返回与 query 最接近的规范名称
//
// abbrs 与 names 按下标对应，一项可包含多个以逗号、分号或斜杠分隔的缩写。
// 依次尝试：名称或缩写完全相同；以名称开头的子序列命中，且查询与名称前几个词的差异
// 不超过 threshold；按编辑距离最接近且差异不超过 threshold 的名称。
func (m *Matcher) TopMatch(query string, names, abbrs []string, threshold float64) (string, error) {
	q := Normalize(query)
	if q == "" || len(names) == 0 {
		return "", ErrNoMatch
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	candidates := buildCandidates(names, abbrs)

	for _, c := range candidates {
		if c.text == q {
			return names[c.index], nil
		}
	}

	if len([]rune(q)) >= minSubsequenceLen {
		texts := make([]string, len(candidates))
		for i, c := range candidates {
			texts[i] = c.text
		}
		words := len(strings.Fields(q))
		for _, match := range sfuzzy.Find(q, texts) {
			if len(match.MatchedIndexes) == 0 || match.MatchedIndexes[0] != 0 {
				continue
			}
			if Divergence(q, leadingWords(match.Str, words)) <= threshold {
				return names[candidates[match.Index].index], nil
			}
		}
	}

	best := -1
	bestScore := 0.0
	for i, c := range candidates {
		score := Divergence(q, c.text)
		if best < 0 || score < bestScore {
			best = i
			bestScore = score
		}
	}
	if best >= 0 && bestScore <= threshold {
		return names[candidates[best].index], nil
	}
	return "", ErrNoMatch
}

// leadingWords 取 s 的前 n 个词
func leadingWords(s string, n int) string {
	fields := strings.Fields(s)
	if n < len(fields) {
		fields = fields[:n]
	}
	return strings.Join(fields, " ")
}

func buildCandidates(names, abbrs []string) []candidate {
	out := make([]candidate, 0, len(names)*2)
	for i, name := range names {
		if n := Normalize(name); n != "" {
			out = append(out, candidate{text: n, index: i})
		}
	}
	for i, entry := range abbrs {
		if i >= len(names) {
			break
		}
		for _, a := range strings.FieldsFunc(entry, isAbbrSeparator) {
			if n := Normalize(a); n != "" {
				out = append(out, candidate{text: n, index: i})
			}
		}
	}
	return out
}

func isAbbrSeparator(r rune) bool {
	return r == ',' || r == ';' || r == '/' || r == '|'
}

// Normalize 小写、去标点、压缩空白
func Normalize(s string) string {
	var b strings.Builder
	space := false
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-' || r == '_':
			space = true
		}
	}
	return b.String()
}

// Divergence 编辑距离按较长字符串长度归一到每十个字符
func Divergence(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	if longest == 0 {
		return 0
	}
	return float64(levenshtein(ra, rb)) * 10 / float64(longest)
}

func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}
