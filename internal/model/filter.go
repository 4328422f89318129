package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrInvalidFilter 日期过滤条件不合法
var ErrInvalidFilter = errors.New("invalid date filter")

// MaxDayOffset 天数偏移的绝对值上限
const MaxDayOffset = 1_000_000

// DateColumn 过滤所作用的日期列
type DateColumn string

const (
	ColumnShip     DateColumn = "Ship"
	ColumnReturn   DateColumn = "Return"
	ColumnShowDate DateColumn = "ShowDate"
)

// FilterType 过滤方向 before/after
type FilterType string

const (
	FilterBefore FilterType = "before"
	FilterAfter  FilterType = "after"
)

// FilterValue 相对今天的天数偏移，或文本值（ISO 日期或展会标识符）
type FilterValue struct {
	Days *int
	Text string
}

// DaysValue 相对今天的天数偏移
func DaysValue(n int) FilterValue {
	return FilterValue{Days: &n}
}

// TextValue ISO 日期或标识符
func TextValue(s string) FilterValue {
	return FilterValue{Text: s}
}

// IsDays 是否为天数偏移
func (v FilterValue) IsDays() bool {
	return v.Days != nil
}

func (v FilterValue) String() string {
	if v.Days != nil {
		return strconv.Itoa(*v.Days)
	}
	return v.Text
}

// MarshalJSON 天数偏移编码为数字，其余编码为字符串
func (v FilterValue) MarshalJSON() ([]byte, error) {
	if v.Days != nil {
		return json.Marshal(*v.Days)
	}
	return json.Marshal(v.Text)
}

// UnmarshalJSON 接受 JSON 数字（天数偏移）或 JSON 字符串
func (v *FilterValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = FilterValue{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = TextValue(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("%w: value must be a number or string", ErrInvalidFilter)
	}
	if f != math.Trunc(f) {
		return fmt.Errorf("%w: day offset must be an integer, got %v", ErrInvalidFilter, f)
	}
	if math.Abs(f) > MaxDayOffset {
		return fmt.Errorf("%w: day offset %v out of range", ErrInvalidFilter, f)
	}
	*v = DaysValue(int(f))
	return nil
}

// DateFilter 日期过滤条件
type DateFilter struct {
	Column DateColumn  `json:"column"`
	Value  FilterValue `json:"value"`
	Type   FilterType  `json:"type"`
}

// Validate 校验列与方向
func (f DateFilter) Validate() error {
	switch f.Column {
	case ColumnShip, ColumnReturn, ColumnShowDate:
	default:
		return fmt.Errorf("%w: unknown column %q", ErrInvalidFilter, f.Column)
	}
	switch f.Type {
	case FilterBefore, FilterAfter:
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidFilter, f.Type)
	}
	return nil
}

// SearchParams 文本搜索参数；Columns 为空时搜索整行
type SearchParams struct {
	Query   string   `json:"query"`
	Columns []string `json:"columns,omitempty"`
}
