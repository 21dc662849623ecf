package enrich

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type stubProvider struct {
	name string
	rec  Record
	err  error
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Lookup(context.Context, string, string) (Record, error) {
	return s.rec, s.err
}

func TestFanOut(t *testing.T) {
	providers := []Provider{
		&stubProvider{name: "pdl", rec: Record{CanonicalCompany: "Initech", MatchConfidence: 0.9}},
		&stubProvider{name: "flaky", err: errors.New("timeout")},
		&stubProvider{name: "clearbit", rec: Record{CanonicalTitle: "VP Engineering", MatchConfidence: 0.7}},
	}
	records := FanOut(context.Background(), providers, "Jane Doe", "Initech", nil)
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2 (failing provider skipped)", len(records))
	}
	if records[0].Provider != "pdl" || records[1].Provider != "clearbit" {
		t.Errorf("provider order = %s, %s; want pdl, clearbit", records[0].Provider, records[1].Provider)
	}
}

func TestFanOutNoProviders(t *testing.T) {
	if records := FanOut(context.Background(), nil, "Jane Doe", "", nil); len(records) != 0 {
		t.Errorf("records = %d, want 0", len(records))
	}
}

func TestSplitHeadline(t *testing.T) {
	tests := []struct {
		headline string
		title    string
		company  string
	}{
		{"VP Engineering at Initech", "VP Engineering", "Initech"},
		{"CTO @ Globex", "CTO", "Globex"},
		{"Founder | Hooli", "Founder", "Hooli"},
		{"Independent Consultant", "Independent Consultant", ""},
	}
	for _, tt := range tests {
		title, company := splitHeadline(tt.headline)
		if title != tt.title || company != tt.company {
			t.Errorf("splitHeadline(%q) = %q, %q; want %q, %q", tt.headline, title, company, tt.title, tt.company)
		}
	}
}

func TestLooksLikeLocation(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"Lisbon, Portugal", true},
		{"San Francisco Bay Area, California, United States", true},
		{"VP Engineering at Initech, a platform company", false},
		{"No comma here", false},
	}
	for _, tt := range tests {
		if got := looksLikeLocation(tt.line); got != tt.want {
			t.Errorf("looksLikeLocation(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestParseHeader(t *testing.T) {
	r := &Resume{Text: "\nJane Doe\nVP Engineering at Initech\nLisbon, Portugal\n\nExperience\n"}
	parseHeader(r)
	if r.Name != "Jane Doe" {
		t.Errorf("name = %q", r.Name)
	}
	if r.Headline != "VP Engineering at Initech" || r.Title != "VP Engineering" || r.Company != "Initech" {
		t.Errorf("headline parse = %q / %q / %q", r.Headline, r.Title, r.Company)
	}
	if r.Location != "Lisbon, Portugal" {
		t.Errorf("location = %q", r.Location)
	}
}

func TestGarbledRatio(t *testing.T) {
	clean := "Jane Doe, VP Engineering"
	if got := garbledRatio(clean); got != 0 {
		t.Errorf("clean ratio = %f, want 0", got)
	}
	garbled := strings.Repeat("Ã©", 50) + "ok"
	if got := garbledRatio(garbled); got < maxGarbledRatio {
		t.Errorf("garbled ratio = %f, want above threshold", got)
	}
}
