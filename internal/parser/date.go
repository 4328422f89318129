package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// DisplayLayout 对外展示的日期格式
const DisplayLayout = "01/02/2006"

// ISOLayout YYYY-MM-DD
const ISOLayout = "2006-01-02"

var (
	isoDate     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	serialValue = regexp.MustCompile(`^\d+(\.\d+)?$`)
)

// 带年份的格式
var layoutsWithYear = []string{
	ISOLayout,
	"1/2/2006",
	"1/2/06",
	"1-2-2006",
	"1-2-06",
	"Jan 2, 2006",
	"Jan 2 2006",
	"January 2, 2006",
	"January 2 2006",
	"2-Jan-2006",
	"2-Jan-06",
	"2 Jan 2006",
	"Mon, Jan 2, 2006",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/1/2",
}

// 不带年份的格式，年份取参考年
var layoutsWithoutYear = []string{
	"1/2",
	"1-2",
	"Jan 2",
	"January 2",
	"2-Jan",
	"2 Jan",
}

// Excel 序列日期的合理范围（约 1927 - 2173 年）
const (
	minExcelSerial = 10000
	maxExcelSerial = 99999
)

// ParseDate 解析单元格中的日期
//
// 没有年份的值使用 refYear；forceYear 为 true 时无论解析出的年份是什么都替换为 refYear。
// 结果统一为 UTC 零点的日历日期。无法解析时返回 false。
func ParseDate(raw string, forceYear bool, refYear int) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	t, hasYear, ok := parseDateValue(s)
	if !ok {
		return time.Time{}, false
	}
	if !hasYear {
		if refYear <= 0 {
			return time.Time{}, false
		}
		return WithYear(t, refYear), true
	}
	if forceYear && refYear > 0 && t.Year() != refYear {
		t = WithYear(t, refYear)
	}
	return t, true
}

// ParseISODate 仅接受 YYYY-MM-DD
func ParseISODate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if !isoDate.MatchString(s) {
		return time.Time{}, false
	}
	t, err := time.Parse(ISOLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// IsISODate 是否为 YYYY-MM-DD 格式
func IsISODate(s string) bool {
	return isoDate.MatchString(strings.TrimSpace(s))
}

func parseDateValue(s string) (t time.Time, hasYear, ok bool) {
	if serialValue.MatchString(s) {
		f, err := strconv.ParseFloat(s, 64)
		if err == nil && f >= minExcelSerial && f <= maxExcelSerial {
			if et, err := excelize.ExcelDateToTime(f, false); err == nil {
				return Midnight(et), true, true
			}
		}
		return time.Time{}, false, false
	}

	for _, layout := range layoutsWithYear {
		if parsed, err := time.Parse(layout, s); err == nil {
			return Midnight(parsed), true, true
		}
	}
	for _, layout := range layoutsWithoutYear {
		if parsed, err := time.Parse(layout, s); err == nil {
			return Midnight(parsed), false, true
		}
	}
	return time.Time{}, false, false
}

// Midnight 截断为 UTC 零点（只保留年月日）
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// WithYear 替换年份，月日保持不变（2/29 落在平年时顺延到 3/1）
func WithYear(t time.Time, year int) time.Time {
	return time.Date(year, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatDate 格式化为 MM/DD/YYYY
func FormatDate(t time.Time) string {
	return t.Format(DisplayLayout)
}
