package parser

import (
	"testing"

	"showboard/internal/model"
)

func TestSheetRecognizer_Kinds(t *testing.T) {
	t.Parallel()

	r := NewSheetRecognizer()
	cases := []struct {
		sheet   string
		headers []string
		want    model.SheetKind
	}{
		{"Schedule", []string{"Show", "Client", "Year", "Ship", "S. Start", "S. End", "Expected Return Date", "Notes"}, model.SheetKindSchedule},
		{"2025", []string{"Show", "Client", "Year", "S. Start"}, model.SheetKindSchedule},
		{"Clients", []string{"Client", "Abbreviations"}, model.SheetKindClients},
		{"Shows", []string{"Show", "Abbr"}, model.SheetKindShows},
		{"Client List", []string{"Client"}, model.SheetKindClients},
		{"Notes", []string{"Owner", "Comment"}, model.SheetKindUnknown},
		{"Empty", nil, model.SheetKindUnknown},
	}

	for _, tc := range cases {
		res := r.Recognize(tc.sheet, tc.headers)
		if res.Kind != tc.want {
			t.Fatalf("sheet %s kind mismatch: got=%s conf=%.2f want=%s", tc.sheet, res.Kind, res.Confidence, tc.want)
		}
	}
}
