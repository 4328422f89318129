package schedule

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"showboard/internal/fuzzy"
	"showboard/internal/model"
)

// ShowMatchThreshold 展会名的匹配阈值，比客户名更宽松
const ShowMatchThreshold = 2.5

// Matcher 模糊匹配协作者
type Matcher interface {
	TopMatch(query string, names, abbrs []string, threshold float64) (string, error)
}

// References 客户与展会参考名单
type References struct {
	Clients model.ReferenceList
	Shows   model.ReferenceList
}

// IdentifierResolver 由模糊匹配后的名称生成 "<客户> <年份> <展会>" 标识符
//
// 调用之间不做缓存，参考名单变化后标识符随之变化。
type IdentifierResolver struct {
	matcher         Matcher
	clientThreshold float64
	showThreshold   float64
	logger          *zap.Logger
}

// NewIdentifierResolver 创建标识符解析器
func NewIdentifierResolver(matcher Matcher, clientThreshold, showThreshold float64, logger *zap.Logger) *IdentifierResolver {
	if clientThreshold <= 0 {
		clientThreshold = fuzzy.DefaultThreshold
	}
	if showThreshold <= 0 {
		showThreshold = ShowMatchThreshold
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IdentifierResolver{
		matcher:         matcher,
		clientThreshold: clientThreshold,
		showThreshold:   showThreshold,
		logger:          logger,
	}
}

// Compute 计算标识符；showName 为空时返回 ""
func (r *IdentifierResolver) Compute(showName, clientName, year string, refs References) string {
	if strings.TrimSpace(showName) == "" {
		return ""
	}

	client := r.match(clientName, refs.Clients, r.clientThreshold)
	show := r.match(showName, refs.Shows, r.showThreshold)

	return strings.TrimSpace(client + " " + strings.TrimSpace(year) + " " + show)
}

// ForRow 计算一行的标识符；Show/Client/Year 全空的行没有标识符
func (r *IdentifierResolver) ForRow(row model.Row, refs References) string {
	if !row.Has(model.ColShow) && !row.Has(model.ColClient) && !row.Has(model.ColYear) {
		return ""
	}
	return r.Compute(row.Get(model.ColShow), row.Get(model.ColClient), rowYearText(row), refs)
}

func (r *IdentifierResolver) match(raw string, list model.ReferenceList, threshold float64) string {
	if r.matcher == nil {
		return strings.TrimSpace(raw)
	}
	name, err := r.matcher.TopMatch(raw, list.Names, list.Abbreviations, threshold)
	if err != nil {
		r.logger.Debug("fuzzy match fell back to raw input",
			zap.String("input", raw), zap.Float64("threshold", threshold), zap.Error(err))
		return strings.TrimSpace(raw)
	}
	return name
}

// "2025.0" 之类的年份按整数输出
func rowYearText(row model.Row) string {
	if y, ok := row.Year(); ok {
		return strconv.Itoa(y)
	}
	return row.Get(model.ColYear)
}
