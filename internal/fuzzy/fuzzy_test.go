package fuzzy

import (
	"errors"
	"testing"
)

var (
	clientNames = []string{"ACME", "Globex Corporation", "Initech"}
	clientAbbrs = []string{"Acme Corp, ACM", "GLX", ""}
)

func TestTopMatch_ExactAndAbbreviation(t *testing.T) {
	t.Parallel()

	m := NewMatcher()
	cases := map[string]string{
		"acme":               "ACME",
		"  ACME  ":           "ACME",
		"acm":                "ACME",
		"Acme Corp.":         "ACME",
		"glx":                "Globex Corporation",
		"globex corporation": "Globex Corporation",
	}
	for q, want := range cases {
		got, err := m.TopMatch(q, clientNames, clientAbbrs, DefaultThreshold)
		if err != nil {
			t.Fatalf("TopMatch(%q): %v", q, err)
		}
		if got != want {
			t.Fatalf("TopMatch(%q) = %q, want %q", q, got, want)
		}
	}
}

func TestTopMatch_Subsequence(t *testing.T) {
	t.Parallel()

	got, err := NewMatcher().TopMatch("globex", clientNames, clientAbbrs, DefaultThreshold)
	if err != nil || got != "Globex Corporation" {
		t.Fatalf("got %q err=%v", got, err)
	}
}

func TestTopMatch_Typo(t *testing.T) {
	t.Parallel()

	got, err := NewMatcher().TopMatch("Initeck", clientNames, clientAbbrs, DefaultThreshold)
	if err != nil || got != "Initech" {
		t.Fatalf("got %q err=%v", got, err)
	}
}

func TestTopMatch_ThresholdLoosensShowMatch(t *testing.T) {
	t.Parallel()

	shows := []string{"SUMMIT"}
	m := NewMatcher()

	// 2 edits over 6 chars: 3.33 per ten characters
	if _, err := m.TopMatch("SAMMIX", shows, nil, DefaultThreshold); !errors.Is(err, ErrNoMatch) {
		t.Fatalf("default threshold should reject, err=%v", err)
	}
	if _, err := m.TopMatch("SAMMIT", shows, nil, 2.5); err != nil {
		t.Fatalf("looser threshold should accept one edit: %v", err)
	}
	if _, err := m.TopMatch("SAMMIT", shows, nil, 1.5); !errors.Is(err, ErrNoMatch) {
		t.Fatalf("one edit in six chars exceeds 1.5, err=%v", err)
	}
}

func TestTopMatch_NoMatch(t *testing.T) {
	t.Parallel()

	m := NewMatcher()
	if _, err := m.TopMatch("", clientNames, clientAbbrs, 0); !errors.Is(err, ErrNoMatch) {
		t.Fatalf("blank query: %v", err)
	}
	if _, err := m.TopMatch("Umbrella", clientNames, clientAbbrs, 0); !errors.Is(err, ErrNoMatch) {
		t.Fatalf("unrelated query: %v", err)
	}
	if _, err := m.TopMatch("acme", nil, nil, 0); !errors.Is(err, ErrNoMatch) {
		t.Fatalf("empty list: %v", err)
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	if got := Normalize("  Acme   Corp. "); got != "acme corp" {
		t.Fatalf("Normalize = %q", got)
	}
	if got := Normalize("Summit-Expo_2025"); got != "summit expo 2025" {
		t.Fatalf("Normalize = %q", got)
	}
}

func TestTopMatch_LooseSubsequenceRespectsThreshold(t *testing.T) {
	t.Parallel()

	m := NewMatcher()
	cases := []struct {
		query     string
		names     []string
		threshold float64
	}{
		{"sam", []string{"Summit of the Americas Regional Meeting"}, 0.1},
		{"Acorn", []string{"ACME Corporation North"}, DefaultThreshold},
		{"glbx", []string{"Globex Corporation"}, DefaultThreshold},
	}
	for _, tc := range cases {
		if got, err := m.TopMatch(tc.query, tc.names, nil, tc.threshold); !errors.Is(err, ErrNoMatch) {
			t.Fatalf("TopMatch(%q, %v, %v) = %q, %v; want ErrNoMatch", tc.query, tc.names, tc.threshold, got, err)
		}
	}

	got, err := m.TopMatch("Summit Americas", []string{"Summit of the Americas Regional Meeting"}, nil, 2.5)
	if !errors.Is(err, ErrNoMatch) {
		t.Fatalf("two words against 'summit of' should be rejected, got %q, %v", got, err)
	}
	// 与名称开头的词足够接近时仍然接受
	got, err = m.TopMatch("summit of", []string{"Summit of the Americas Regional Meeting"}, nil, DefaultThreshold)
	if err != nil || got != "Summit of the Americas Regional Meeting" {
		t.Fatalf("leading words should match, got %q, %v", got, err)
	}
}

func TestLeadingWords(t *testing.T) {
	t.Parallel()

	if got := leadingWords("globex corporation", 1); got != "globex" {
		t.Fatalf("leadingWords = %q", got)
	}
	if got := leadingWords("acme", 3); got != "acme" {
		t.Fatalf("leadingWords = %q", got)
	}
}
