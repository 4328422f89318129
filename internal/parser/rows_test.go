package parser

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"showboard/internal/model"
)

func TestRowsToRecords(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		{"Show", " Client ", "", "Show", "Year"},
		{"SUMMIT", "Acme", "ignored", "dup", "2025"},
		{"", "", "", "", ""},
		{"EXPO", "Globex"},
	}

	got, skipped, err := RowsToRecords(rows)
	if err != nil {
		t.Fatalf("RowsToRecords: %v", err)
	}
	if skipped != 1 {
		t.Fatalf("skipped = %d, want 1", skipped)
	}
	want := []model.Row{
		{"Show": "SUMMIT", "Client": "Acme", "Year": "2025"},
		{"Show": "EXPO", "Client": "Globex"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestRowsToRecords_MalformedHeader(t *testing.T) {
	t.Parallel()

	for _, rows := range [][][]string{nil, {{"", "  "}, {"a", "b"}}} {
		if _, _, err := RowsToRecords(rows); !errors.Is(err, ErrMalformedHeader) {
			t.Fatalf("expected ErrMalformedHeader, got %v", err)
		}
	}
}

func TestHeaderColumns(t *testing.T) {
	t.Parallel()

	got := HeaderColumns([]string{"Show", "S.\nStart", "", "Show", " Year "})
	if diff := cmp.Diff([]string{"Show", "S. Start", "Year"}, got); diff != "" {
		t.Fatalf("columns mismatch (-want +got):\n%s", diff)
	}
}
