package schedule

import (
	"go.uber.org/zap"

	"showboard/internal/fuzzy"
	"showboard/internal/model"
	"showboard/internal/source"
)

func scheduleRows() []model.Row {
	return []model.Row{
		{"Show": "SUMMIT", "Client": "ACME", "Year": "2025", "S. Start": "6/15/2025", "S. End": "6/21/2025"},
		{"Show": "EXPO", "Client": "Globex", "Year": "2025", "Ship": "5/15/2025"},
		{"Show": "FAIR", "Client": "Initech", "Year": "2025", "Ship": "6/2/2025"},
		{"Show": "GALA", "Client": "ACME", "Year": "2024", "Ship": "5/1/2024"},
		{"Show": "LATE", "Client": "Initech", "Year": "2025", "Ship": "7/2/2025"},
		{"Show": "OPEN", "Ship": "5/20/2025"},
		{"Show": "NOTES", "Client": "Initech", "Year": "2025"},
	}
}

func clientRows() []model.Row {
	return []model.Row{
		{"Client": "ACME", "Abbreviations": "Acme Corp, AC"},
		{"Client": "Globex Corporation", "Abbr": "GLX"},
		{"Client": "Initech"},
	}
}

func showRows() []model.Row {
	return []model.Row{
		{"Show": "SUMMIT"},
		{"Show": "EXPO"},
		{"Show": "FAIR"},
		{"Show": "GALA"},
	}
}

func testSource() source.Static {
	return source.Static{
		"Schedule": scheduleRows(),
		"Clients":  clientRows(),
		"Shows":    showRows(),
	}
}

func testReferences() References {
	return References{
		Clients: model.ReferenceListFromRows(clientRows(), model.ColClient),
		Shows:   model.ReferenceListFromRows(showRows(), model.ColShow),
	}
}

func newTestService(src source.Source, opts ...Option) *Service {
	base := []Option{WithClock(clock), WithLogger(zap.NewNop())}
	return NewService(src, fuzzy.NewMatcher(), append(base, opts...)...)
}

func showNames(rows []model.Row) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Get(model.ColShow))
	}
	return out
}
