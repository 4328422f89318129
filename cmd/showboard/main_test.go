package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"

	"showboard/internal/importer"
	"showboard/internal/model"
)

func writeWorkbook(t *testing.T) string {
	t.Helper()

	sheets := []struct {
		name string
		rows [][]any
	}{
		{"Schedule", [][]any{
			{"Show", "Client", "Year", "Ship", "S. Start", "S. End", "Return"},
			{"SUMMIT", "ACME", "2025", "", "6/15/2025", "6/21/2025", ""},
			{"EXPO", "Globex", "2025", "5/15/2025", "", "", "5/30/2025"},
			{"LATE", "Initech", "2025", "7/2/2025", "", "", ""},
		}},
		{"Clients", [][]any{
			{"Client", "Abbr"},
			{"ACME", "AC"},
			{"Globex Corporation", "GLX"},
		}},
		{"Shows", [][]any{
			{"Show", "Abbr"},
			{"SUMMIT", ""},
			{"EXPO", ""},
		}},
	}

	f := excelize.NewFile()
	defer f.Close()
	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			t.Fatalf("new sheet: %v", err)
		}
		for r, row := range s.rows {
			cell, _ := excelize.CoordinatesToCellName(1, r+1)
			if err := f.SetSheetRow(s.name, cell, &row); err != nil {
				t.Fatalf("set row: %v", err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "schedule.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

// run 以独立的配置与数据目录执行一条命令
func run(t *testing.T, dataDir string, args ...string) (string, error) {
	t.Helper()

	base := []string{
		"--config", filepath.Join(t.TempDir(), "missing.toml"),
		"--data-dir", dataDir,
	}
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(base, args...))
	err := root.Execute()
	return out.String(), err
}

func TestParseFilterValue(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want string
		days bool
	}{
		{"14", "14", true},
		{"-7", "-7", true},
		{"0", "0", true},
		{"2025-06-01", "2025-06-01", false},
		{"ACME 2025 SUMMIT", "ACME 2025 SUMMIT", false},
		{"1.5", "1.5", false},
		{"9999999", "9999999", false},
	}
	for _, tc := range cases {
		got := parseFilterValue(tc.raw)
		if got.IsDays() != tc.days || got.String() != tc.want {
			t.Fatalf("parseFilterValue(%q) = %v (days=%v), want %q (days=%v)", tc.raw, got, got.IsDays(), tc.want, tc.days)
		}
	}
}

func TestOverlapFlags_Filters(t *testing.T) {
	t.Parallel()

	f := overlapFlags{shipAfter: "0", shipBefore: " 30 ", showAfter: "ACME 2025 SUMMIT", returnBefore: "  "}
	got := f.filters()
	want := []model.DateFilter{
		{Column: model.ColumnShip, Type: model.FilterBefore, Value: model.DaysValue(30)},
		{Column: model.ColumnShip, Type: model.FilterAfter, Value: model.DaysValue(0)},
		{Column: model.ColumnShowDate, Type: model.FilterAfter, Value: model.TextValue("ACME 2025 SUMMIT")},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("filters mismatch (-want +got):\n%s", diff)
	}
}

func TestParseCells(t *testing.T) {
	t.Parallel()

	row, err := parseCells([]string{"S. Start = 6/15/2025", "Year=2025", "Notes=a=b"})
	if err != nil {
		t.Fatalf("parseCells: %v", err)
	}
	want := model.Row{"S. Start": "6/15/2025", "Year": "2025", "Notes": "a=b"}
	if diff := cmp.Diff(want, row); diff != "" {
		t.Fatalf("row mismatch (-want +got):\n%s", diff)
	}

	for _, bad := range []string{"Year", "=2025"} {
		if _, err := parseCells([]string{bad}); err == nil {
			t.Fatalf("parseCells(%q) expected error", bad)
		}
	}
}

func TestPrintImportEvents(t *testing.T) {
	t.Parallel()

	events := make(chan importer.ProgressEvent, 3)
	events <- importer.ProgressEvent{Type: importer.EventStart, Message: "开始导入"}
	events <- importer.ProgressEvent{Type: importer.EventError, Message: "boom"}
	events <- importer.ProgressEvent{Type: importer.EventDone, Message: "done"}
	close(events)

	var out bytes.Buffer
	err := printImportEvents(&out, events)
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected error mentioning boom, got %v", err)
	}
	if !strings.Contains(out.String(), "[start] 开始导入") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
}

func TestImportThenQuery(t *testing.T) {
	t.Parallel()

	dataDir := t.TempDir()
	workbook := writeWorkbook(t)

	out, err := run(t, dataDir, "import", workbook)
	if err != nil {
		t.Fatalf("import: %v\n%s", err, out)
	}
	if !strings.Contains(out, "[done]") {
		t.Fatalf("import output missing done event:\n%s", out)
	}

	out, err = run(t, dataDir, "overlap", "--ship-after", "2025-05-20", "--json")
	if err != nil {
		t.Fatalf("overlap: %v\n%s", err, out)
	}
	var rows []rowOutput
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("decode overlap output: %v\n%s", err, out)
	}
	var shows []string
	for _, r := range rows {
		shows = append(shows, r.Show)
	}
	if diff := cmp.Diff([]string{"SUMMIT", "LATE"}, shows); diff != "" {
		t.Fatalf("overlap shows mismatch (-want +got):\n%s", diff)
	}
	if rows[0].ShipDate != "06/01/2025" {
		t.Fatalf("SUMMIT ship date = %q, want inferred 06/01/2025", rows[0].ShipDate)
	}

	out, err = run(t, dataDir, "identifier", "summit", "glx", "--year", "2025")
	if err != nil {
		t.Fatalf("identifier: %v\n%s", err, out)
	}
	if got := strings.TrimSpace(out); got != "Globex Corporation 2025 SUMMIT" {
		t.Fatalf("identifier = %q", got)
	}

	out, err = run(t, dataDir, "ship-date", "--identifier", "Globex Corporation 2025 EXPO")
	if err != nil {
		t.Fatalf("ship-date: %v\n%s", err, out)
	}
	if got := strings.TrimSpace(out); got != "5/15/2025" {
		t.Fatalf("ship-date = %q, want raw cell 5/15/2025", got)
	}
}

func TestOverlap_ReadsWorkbookDirectly(t *testing.T) {
	t.Parallel()

	workbook := writeWorkbook(t)
	exportPath := filepath.Join(t.TempDir(), "out.xlsx")

	out, err := run(t, t.TempDir(), "--workbook", workbook,
		"overlap", "--ship-after", "2025-01-01", "--query", "globex", "--columns", "Client", "--export", exportPath)
	if err != nil {
		t.Fatalf("overlap: %v\n%s", err, out)
	}
	if !strings.Contains(out, "exported 1 show(s)") {
		t.Fatalf("unexpected output:\n%s", out)
	}

	f, err := excelize.OpenFile(exportPath)
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows("Shows")
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("export rows = %d, want header + 1", len(rows))
	}
}

func TestShipDate_RequiresExactlyOneSource(t *testing.T) {
	t.Parallel()

	if _, err := run(t, t.TempDir(), "ship-date"); err == nil {
		t.Fatal("expected error without --set or --identifier")
	}

	out, err := run(t, t.TempDir(), "ship-date", "--set", "S. Start=6/15/2025", "--set", "Year=2025")
	if err != nil {
		t.Fatalf("ship-date: %v\n%s", err, out)
	}
	if got := strings.TrimSpace(out); got != "06/01/2025" {
		t.Fatalf("ship-date = %q, want 06/01/2025", got)
	}
}
