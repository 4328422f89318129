package parser

import (
	"regexp"
	"strings"
)

var (
	spaceRun   = regexp.MustCompile(`\s+`)
	headerTrim = strings.NewReplacer("\n", " ", "\r", " ", "\t", " ", "\u00a0", " ")
)

// NormalizeColumnName 规范化列名：去除首尾空格、换行与制表符，压缩连续空白
// 与原表头保持可读（"S. Start" 不会变成 "S.Start"）
func NormalizeColumnName(name string) string {
	name = headerTrim.Replace(name)
	name = spaceRun.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

// HeaderKey 用于表头比较的键（忽略大小写与空白差异）
func HeaderKey(name string) string {
	return strings.ToLower(strings.ReplaceAll(NormalizeColumnName(name), " ", ""))
}

// ContainsAny 检查字符串是否包含任意一个关键词
func ContainsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// MatchPattern 使用正则匹配（忽略大小写）
func MatchPattern(text, pattern string) bool {
	re, err := regexp.Compile(`(?i)` + pattern)
	if err != nil {
		return false
	}
	return re.MatchString(text)
}
