package schedule

import (
	"time"

	"showboard/internal/model"
	"showboard/internal/parser"
)

// 缺少明确日期时使用的天数偏移
const (
	shipBeforeStartDays  = 14
	shipBeforeEndDays    = 21
	returnAfterEndDays   = 10
	returnAfterStartDays = 30
	returnAfterShipDays  = 30
	showAfterShipDays    = 10
)

// DateParser 单元格日期解析，见 parser.ParseDate
type DateParser func(raw string, forceYear bool, refYear int) (time.Time, bool)

// Inference 从部分填写的行推断发货、回库与开展日期；明确填写的单元格始终优先
type Inference struct {
	parse DateParser
	now   func() time.Time
}

// NewInference 创建日期推断器；parse/now 为空时使用默认实现
func NewInference(parse DateParser, now func() time.Time) *Inference {
	if parse == nil {
		parse = parser.ParseDate
	}
	if now == nil {
		now = time.Now
	}
	return &Inference{parse: parse, now: now}
}

// rowYear 返回填写的年份；未填写或无法解析时返回当前年份且 declared=false
func (in *Inference) rowYear(row model.Row) (year int, declared bool) {
	if y, ok := row.Year(); ok {
		return y, true
	}
	return in.now().Year(), false
}

func (in *Inference) cell(row model.Row, col string, year int) (time.Time, bool) {
	if !row.Has(col) {
		return time.Time{}, false
	}
	return in.parse(row.Get(col), false, year)
}

// ShipDate 发货日期
//
// Ship 列，否则 S. Start - 14 天，否则 S. End - 21 天。
// 推算结果落在填写年份之外时，只有替换年份后仍严格早于锚点日期才使用填写年份。
func (in *Inference) ShipDate(row model.Row) (time.Time, bool) {
	year, declared := in.rowYear(row)

	if t, ok := in.cell(row, model.ColShip, year); ok {
		return t, true
	}
	if start, ok := in.cell(row, model.ColShowStart, year); ok {
		return in.shipBefore(start, shipBeforeStartDays, year, declared), true
	}
	if end, ok := in.cell(row, model.ColShowEnd, year); ok {
		return in.shipBefore(end, shipBeforeEndDays, year, declared), true
	}
	return time.Time{}, false
}

func (in *Inference) shipBefore(anchor time.Time, days, year int, declared bool) time.Time {
	ship := anchor.AddDate(0, 0, -days)
	if declared && ship.Year() != year {
		if forced := parser.WithYear(ship, year); forced.Before(anchor) {
			return forced
		}
	}
	return ship
}

// ReturnDate 预计回库日期
//
// Expected Return Date，否则 S. End + 10 天，否则 S. Start + 30 天，否则发货日期 + 30 天。
// 推算结果一律使用填写年份，与发货日期不同，这里不检查先后顺序。
func (in *Inference) ReturnDate(row model.Row) (time.Time, bool) {
	year, declared := in.rowYear(row)

	if t, ok := in.cell(row, model.ColExpectedReturn, year); ok {
		return t, true
	}
	if end, ok := in.cell(row, model.ColShowEnd, year); ok {
		return forceYear(end.AddDate(0, 0, returnAfterEndDays), year, declared), true
	}
	if start, ok := in.cell(row, model.ColShowStart, year); ok {
		return forceYear(start.AddDate(0, 0, returnAfterStartDays), year, declared), true
	}
	if ship, ok := in.ShipDate(row); ok {
		return forceYear(ship.AddDate(0, 0, returnAfterShipDays), year, declared), true
	}
	return time.Time{}, false
}

func forceYear(t time.Time, year int, declared bool) time.Time {
	if declared && t.Year() != year {
		return parser.WithYear(t, year)
	}
	return t
}

// ShowDate 开展日期：S. Start，否则按发货日期 + 10 天估算
func (in *Inference) ShowDate(row model.Row) (time.Time, bool) {
	year, _ := in.rowYear(row)
	if t, ok := in.cell(row, model.ColShowStart, year); ok {
		return t, true
	}
	if ship, ok := in.ShipDate(row); ok {
		return ship.AddDate(0, 0, showAfterShipDays), true
	}
	return time.Time{}, false
}

// DateFor 按过滤列取行日期
func (in *Inference) DateFor(row model.Row, col model.DateColumn) (time.Time, bool) {
	switch col {
	case model.ColumnShip:
		return in.ShipDate(row)
	case model.ColumnReturn:
		return in.ReturnDate(row)
	case model.ColumnShowDate:
		return in.ShowDate(row)
	}
	return time.Time{}, false
}

// GuessShipDate Ship 列非空时原样返回，否则返回推断的发货日期（MM/DD/YYYY），未知时为 ""
func (in *Inference) GuessShipDate(row model.Row) string {
	if row.Has(model.ColShip) {
		return row[model.ColShip]
	}
	if t, ok := in.ShipDate(row); ok {
		return parser.FormatDate(t)
	}
	return ""
}

// RowDates 一行的推断日期（MM/DD/YYYY，未知为空）
type RowDates struct {
	Ship   string `json:"ship"`
	Return string `json:"return"`
	Show   string `json:"show"`
}

// Dates 计算一行的三个日期
func (in *Inference) Dates(row model.Row) RowDates {
	var d RowDates
	if t, ok := in.ShipDate(row); ok {
		d.Ship = parser.FormatDate(t)
	}
	if t, ok := in.ReturnDate(row); ok {
		d.Return = parser.FormatDate(t)
	}
	if t, ok := in.ShowDate(row); ok {
		d.Show = parser.FormatDate(t)
	}
	return d
}
