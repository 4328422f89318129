package search

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// 默认高亮标记
const (
	DefaultOpenTag  = "<mark>"
	DefaultCloseTag = "</mark>"
)

// 换行占位符使用私有区字符，源码中的换行不会被当成 <br>
const (
	newlineMarker = "\uE000"
	lineBreakTag  = "<br>"
)

// 块级结束标签与换行标签在剥离标记前先转换为占位符
var blockBreak = regexp.MustCompile(`(?i)</\s*(p|div|li)\s*>|<\s*br\s*/?\s*>`)

// 源码换行按空白处理；输入中已有的占位符直接丢弃
var sourceWhitespace = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", newlineMarker, "")

// Highlighter 生成带高亮标记的安全 HTML
type Highlighter struct {
	open   string
	close  string
	policy *bluemonday.Policy
}

// NewHighlighter 创建高亮器；标记为空时使用 <mark>
func NewHighlighter(openTag, closeTag string) *Highlighter {
	if openTag == "" || closeTag == "" {
		openTag, closeTag = DefaultOpenTag, DefaultCloseTag
	}
	return &Highlighter{
		open:   openTag,
		close:  closeTag,
		policy: bluemonday.StrictPolicy(),
	}
}

// Escape 转义 & < > " '
func Escape(s string) string {
	return html.EscapeString(s)
}

// Highlight 转义文本并用标记包裹每个合并后的匹配区间，匹配文本保持原大小写
func (h *Highlighter) Highlight(text string, words []string) string {
	spans := FindSpans(text, words)
	if len(spans) == 0 {
		return Escape(text)
	}

	var b strings.Builder
	b.Grow(len(text) + len(spans)*(len(h.open)+len(h.close)))
	pos := 0
	for _, s := range spans {
		b.WriteString(Escape(text[pos:s.Start]))
		b.WriteString(h.open)
		b.WriteString(Escape(text[s.Start:s.End]))
		b.WriteString(h.close)
		pos = s.End
	}
	b.WriteString(Escape(text[pos:]))
	return b.String()
}

// HighlightHTML 高亮 HTML 片段的文本内容
//
// 块级结束标签与 <br> 记为换行，其余标记全部剥离；纯文本高亮并转义后再把换行还原为 <br>。
// 片段与查询词中的标记都不会以未转义形式输出。
func (h *Highlighter) HighlightHTML(content string, words []string) string {
	plain := sourceWhitespace.Replace(content)
	plain = blockBreak.ReplaceAllString(plain, newlineMarker)
	plain = html.UnescapeString(h.policy.Sanitize(plain))
	out := h.Highlight(plain, words)
	return strings.ReplaceAll(out, newlineMarker, lineBreakTag)
}
