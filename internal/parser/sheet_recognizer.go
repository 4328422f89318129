package parser

import (
	"strings"

	"showboard/internal/model"
)

// 识别阈值
const minConfidence = 0.5

// SheetRecognizer Sheet 角色识别器（排期表 / 客户表 / 展会表）
type SheetRecognizer struct{}

// NewSheetRecognizer 创建识别器
func NewSheetRecognizer() *SheetRecognizer {
	return &SheetRecognizer{}
}

// 排期表关键字段（正则，| 表示任选其一）
var scheduleKeyFields = []string{
	`^show$`,
	`^client$`,
	`^year$`,
	`^ship`,
	`^s\.?start$`,
	`^s\.?end$`,
	`return`,
}

var clientKeyFields = []string{
	`^client(name)?s?$`,
	`^abbr(eviations?)?$`,
}

var showKeyFields = []string{
	`^show(name)?s?$`,
	`^abbr(eviations?)?$`,
}

// Recognize 识别 Sheet 角色
func (r *SheetRecognizer) Recognize(sheetName string, columnNames []string) model.SheetRecognition {
	keys := make([]string, 0, len(columnNames))
	for _, col := range columnNames {
		if k := HeaderKey(col); k != "" {
			keys = append(keys, k)
		}
	}

	// 排期表优先：它同时包含 Show 与 Client 列
	if res := r.score(sheetName, keys, model.SheetKindSchedule, scheduleKeyFields, []string{"schedule", "production"}); res.Confidence >= minConfidence {
		return res
	}

	clients := r.score(sheetName, keys, model.SheetKindClients, clientKeyFields, []string{"client"})
	shows := r.score(sheetName, keys, model.SheetKindShows, showKeyFields, []string{"show"})

	best := clients
	if shows.Confidence > clients.Confidence {
		best = shows
	}
	if best.Confidence >= minConfidence {
		return best
	}

	return model.SheetRecognition{
		SheetName:  sheetName,
		Kind:       model.SheetKindUnknown,
		Confidence: best.Confidence,
	}
}

func (r *SheetRecognizer) score(sheetName string, keys []string, kind model.SheetKind, keyFields, nameHints []string) model.SheetRecognition {
	var missing []string
	matchCount := 0
	for _, field := range keyFields {
		found := false
		for _, k := range keys {
			if MatchPattern(k, field) {
				found = true
				break
			}
		}
		if found {
			matchCount++
		} else {
			missing = append(missing, field)
		}
	}

	confidence := float64(matchCount) / float64(len(keyFields))

	// Sheet 名称辅助判定
	lowerName := strings.ToLower(sheetName)
	if confidence > 0 && ContainsAny(lowerName, nameHints) {
		confidence += 0.2
	}
	if confidence > 1 {
		confidence = 1
	}

	return model.SheetRecognition{
		SheetName:     sheetName,
		Kind:          kind,
		Confidence:    confidence,
		MissingFields: missing,
	}
}
