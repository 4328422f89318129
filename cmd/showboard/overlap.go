package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"showboard/internal/exporter"
	"showboard/internal/model"
	"showboard/internal/schedule"
)

// overlapFlags before/after 条件，按列组织
type overlapFlags struct {
	shipBefore, shipAfter     string
	returnBefore, returnAfter string
	showBefore, showAfter     string

	query   string
	columns []string
	asJSON  bool
	export  string
}

func newOverlapCmd(c *cli) *cobra.Command {
	var f overlapFlags

	cmd := &cobra.Command{
		Use:   "overlap",
		Short: "查询与日期条件重叠的展会",
		Long: `Query shows whose ship, return or show dates satisfy the given bounds.

A bound is either a whole number of days relative to today (e.g. 14 or -7),
an ISO date (2025-06-01), or a show identifier (ACME 2025 SUMMIT), in which
case the same date of that show is used.`,
		Example: `  showboard overlap --ship-after 0 --ship-before 30
  showboard overlap --show-after "ACME 2025 SUMMIT" --query acme --columns Client
  showboard overlap --return-before 2025-07-01 --export overlap.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filters := f.filters()
			var params *model.SearchParams
			if f.query != "" {
				params = &model.SearchParams{Query: f.query, Columns: f.columns}
			}

			svc, closeFn, err := c.queryService()
			if err != nil {
				return err
			}
			defer closeFn()

			rows, err := svc.GetOverlappingShows(cmd.Context(), filters, params)
			if err != nil {
				return fmt.Errorf("query schedule: %w", err)
			}
			c.logger.Debug("overlap query done", zap.Int("filters", len(filters)), zap.Int("rows", len(rows)))

			if f.export != "" {
				return exportRows(cmd.OutOrStdout(), svc, rows, filters, params, f.export)
			}
			if f.asJSON {
				return writeRowsJSON(cmd.OutOrStdout(), svc.Inference(), rows)
			}
			return writeRowsTable(cmd.OutOrStdout(), svc.Inference(), rows)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.shipBefore, "ship-before", "", "Ship 早于")
	flags.StringVar(&f.shipAfter, "ship-after", "", "Ship 晚于")
	flags.StringVar(&f.returnBefore, "return-before", "", "Return 早于")
	flags.StringVar(&f.returnAfter, "return-after", "", "Return 晚于")
	flags.StringVar(&f.showBefore, "show-before", "", "展会日期早于")
	flags.StringVar(&f.showAfter, "show-after", "", "展会日期晚于")
	flags.StringVarP(&f.query, "query", "q", "", "文本搜索")
	flags.StringSliceVar(&f.columns, "columns", nil, "搜索的列（默认整行）")
	flags.BoolVar(&f.asJSON, "json", false, "以 JSON 输出")
	flags.StringVar(&f.export, "export", "", "导出到 xlsx 文件")
	return cmd
}

func (f overlapFlags) filters() []model.DateFilter {
	var out []model.DateFilter
	add := func(col model.DateColumn, typ model.FilterType, raw string) {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return
		}
		out = append(out, model.DateFilter{Column: col, Type: typ, Value: parseFilterValue(raw)})
	}
	add(model.ColumnShip, model.FilterBefore, f.shipBefore)
	add(model.ColumnShip, model.FilterAfter, f.shipAfter)
	add(model.ColumnReturn, model.FilterBefore, f.returnBefore)
	add(model.ColumnReturn, model.FilterAfter, f.returnAfter)
	add(model.ColumnShowDate, model.FilterBefore, f.showBefore)
	add(model.ColumnShowDate, model.FilterAfter, f.showAfter)
	return out
}

// parseFilterValue 整数视为天数偏移，其余按文本（ISO 日期或标识符）处理；
// 超出范围的整数无法解析为日期，过滤条件不会命中任何行
func parseFilterValue(raw string) model.FilterValue {
	if n, err := strconv.Atoi(raw); err == nil && n >= -model.MaxDayOffset && n <= model.MaxDayOffset {
		return model.DaysValue(n)
	}
	return model.TextValue(raw)
}

type rowOutput struct {
	Show       string `json:"show"`
	Client     string `json:"client"`
	Year       string `json:"year"`
	ShipDate   string `json:"shipDate"`
	ReturnDate string `json:"returnDate"`
	ShowDate   string `json:"showDate"`
}

func toOutput(inf *schedule.Inference, row model.Row) rowOutput {
	d := inf.Dates(row)
	return rowOutput{
		Show:       row.Get("Show"),
		Client:     row.Get("Client"),
		Year:       row.Get("Year"),
		ShipDate:   d.Ship,
		ReturnDate: d.Return,
		ShowDate:   d.Show,
	}
}

func writeRowsJSON(w io.Writer, inf *schedule.Inference, rows []model.Row) error {
	out := make([]rowOutput, 0, len(rows))
	for _, row := range rows {
		out = append(out, toOutput(inf, row))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeRowsTable(w io.Writer, inf *schedule.Inference, rows []model.Row) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SHOW\tCLIENT\tYEAR\tSHIP\tRETURN\tSHOW DATE")
	for _, row := range rows {
		o := toOutput(inf, row)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", o.Show, o.Client, o.Year, o.ShipDate, o.ReturnDate, o.ShowDate)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d show(s)\n", len(rows))
	return err
}

func exportRows(w io.Writer, svc *schedule.Service, rows []model.Row, filters []model.DateFilter, params *model.SearchParams, path string) error {
	file, err := exporter.NewExporter(svc.Inference()).Export(rows, exporter.ExportOptions{
		Filters: filters,
		Search:  params,
	})
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer file.Close()
	if err := file.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	_, err = fmt.Fprintf(w, "exported %d show(s) to %s\n", len(rows), path)
	return err
}
