package exporter

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"showboard/internal/model"
	"showboard/internal/schedule"
)

func newTestExporter() *Exporter {
	now := func() time.Time { return time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC) }
	return NewExporter(schedule.NewInference(nil, now))
}

func TestExport_WritesRowsWithInferredDates(t *testing.T) {
	t.Parallel()

	rows := []model.Row{
		{"Show": "SUMMIT", "Client": "ACME", "Year": "2025", "S. Start": "6/15/2025", "S. End": "6/21/2025", "Booth": "A1"},
		{"Show": "EXPO", "Client": "Globex", "Year": "2025", "Ship": "5/15/2025"},
	}

	var stages []string
	f, err := newTestExporter().Export(rows, ExportOptions{
		Progress: func(e ProgressEvent) { stages = append(stages, e.Stage) },
	})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	defer f.Close()

	got, err := f.GetRows(ShowsSheet)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}

	want := [][]string{
		{"Show", "Client", "Year", "Ship", "S. Start", "S. End", "Booth", "Ship Date", "Return Date", "Show Date"},
		{"SUMMIT", "ACME", "2025", "", "6/15/2025", "6/21/2025", "A1", "06/01/2025", "07/01/2025", "06/15/2025"},
		{"EXPO", "Globex", "2025", "5/15/2025", "", "", "", "05/15/2025", "06/14/2025", "05/25/2025"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("sheet mismatch (-want +got):\n%s", diff)
	}

	if idx, _ := f.GetSheetIndex(QuerySheet); idx != -1 {
		t.Fatalf("query sheet should only be written for a query")
	}
	if diff := cmp.Diff([]string{"header", "done"}, stages); diff != "" {
		t.Fatalf("progress mismatch (-want +got):\n%s", diff)
	}
}

func TestExport_QuerySheetAndExplicitColumns(t *testing.T) {
	t.Parallel()

	rows := []model.Row{{"Show": "EXPO", "Client": "Globex", "Year": "2025", "Ship": "5/15/2025"}}
	f, err := newTestExporter().Export(rows, ExportOptions{
		Columns: []string{"Client", "Show"},
		Filters: []model.DateFilter{{Column: model.ColumnShip, Type: model.FilterBefore, Value: model.DaysValue(14)}},
		Search:  &model.SearchParams{Query: "glob"},
	})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	defer f.Close()

	got, err := f.GetRows(ShowsSheet)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if diff := cmp.Diff([]string{"Client", "Show", "Ship Date", "Return Date", "Show Date"}, got[0]); diff != "" {
		t.Fatalf("header mismatch (-want +got):\n%s", diff)
	}

	query, err := f.GetRows(QuerySheet)
	if err != nil {
		t.Fatalf("read query sheet: %v", err)
	}
	want := [][]string{
		{"Column", "Type", "Value"},
		{"Ship", "before", "14"},
		{"Search", "(all)", "glob"},
	}
	if diff := cmp.Diff(want, query); diff != "" {
		t.Fatalf("query sheet mismatch (-want +got):\n%s", diff)
	}
}

func TestCollectColumns(t *testing.T) {
	t.Parallel()

	got := CollectColumns([]model.Row{
		{"Zeta": "1", "Show": "A"},
		{"Year": "2025", "Alpha": "x", "Client": "C"},
	})
	if diff := cmp.Diff([]string{"Show", "Client", "Year", "Alpha", "Zeta"}, got); diff != "" {
		t.Fatalf("columns mismatch (-want +got):\n%s", diff)
	}
}
