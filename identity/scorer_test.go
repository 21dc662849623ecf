package identity

import (
	"strings"
	"testing"
)

func janeAttrs() Attributes {
	return Attributes{
		Name:    "Jane Doe",
		Company: "Initech",
		Title:   "VP Engineering",
	}
}

func linkedinHit() WebHit {
	return WebHit{
		Category: "linkedin",
		Title:    "Jane Doe - VP Engineering - Initech | LinkedIn",
		URL:      "https://www.linkedin.com/in/janedoe",
		Snippet:  "Jane Doe. VP Engineering at Initech.",
	}
}

func evidenceSignals(r Result) []string {
	var signals []string
	for _, e := range r.Evidence {
		signals = append(signals, e.Signal)
	}
	return signals
}

func TestLockLabel(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{0, "NOT LOCKED"},
		{49, "NOT LOCKED"},
		{50, "PARTIAL LOCK"},
		{69, "PARTIAL LOCK"},
		{70, "LOCKED"},
		{100, "LOCKED"},
	}
	for _, tt := range tests {
		if got := LockLabel(tt.score); got != tt.want {
			t.Errorf("LockLabel(%d) = %q, want %q", tt.score, tt.want, got)
		}
	}
}

func TestScoreLinkedInURLOnly(t *testing.T) {
	attrs := janeAttrs()
	attrs.Company = ""
	attrs.Title = ""
	attrs.LinkedInURL = "https://www.linkedin.com/in/janedoe"
	r := Score(attrs, false, nil, nil, nil)
	if r.Score != 10 {
		t.Fatalf("score = %d, want 10", r.Score)
	}
	if len(r.Evidence) != 1 || r.Evidence[0].Signal != "linkedin_url" {
		t.Fatalf("evidence = %+v", r.Evidence)
	}
	if !strings.Contains(r.Evidence[0].Source, "not yet verified") {
		t.Errorf("source = %q, want unverified note", r.Evidence[0].Source)
	}
}

func TestScoreMeetingOnly(t *testing.T) {
	attrs := Attributes{Name: "Jane Doe"}
	r := Score(attrs, true, nil, nil, nil)
	if r.Score != 20 {
		t.Fatalf("score = %d, want 20", r.Score)
	}
	if r.Status != "NOT LOCKED" {
		t.Errorf("status = %q, want NOT LOCKED", r.Status)
	}
}

func TestScoreMeetingPlusURL(t *testing.T) {
	attrs := Attributes{Name: "Jane Doe", LinkedInURL: "https://www.linkedin.com/in/janedoe"}
	r := Score(attrs, true, nil, nil, nil)
	if r.Score != 30 {
		t.Fatalf("score = %d, want 30", r.Score)
	}
}

func TestScoreVerifiedLinkedInSupersedesURL(t *testing.T) {
	attrs := Attributes{Name: "Jane Doe", LinkedInURL: "https://www.linkedin.com/in/janedoe"}
	r := Score(attrs, true, nil, nil, []WebHit{linkedinHit()})
	// +30 verified (replaces +10 URL) and +20 meeting.
	if r.Score < 50 {
		t.Fatalf("score = %d, want >= 50", r.Score)
	}
	for _, sig := range evidenceSignals(r) {
		if sig == "linkedin_url" {
			t.Error("unverified linkedin_url awarded alongside linkedin_verified")
		}
	}
}

func TestScoreNameMatchWithoutURL(t *testing.T) {
	attrs := Attributes{Name: "Jane Doe"}
	r := Score(attrs, false, nil, nil, []WebHit{linkedinHit()})
	found := false
	for _, e := range r.Evidence {
		if e.Signal == "name_match" && e.Weight != 15 {
			t.Errorf("name_match weight = %d, want 15", e.Weight)
		}
		if e.Signal == "name_match" {
			found = true
		}
	}
	if !found {
		t.Fatalf("no name_match in evidence: %+v", r.Evidence)
	}
}

func TestScoreLowConfidenceProviderIgnored(t *testing.T) {
	// A record at exactly the 0.5 floor is as ignored as one below it.
	for _, confidence := range []float64{0.3, 0.5} {
		enrichment := Enrichment{
			Provider:        "pdl",
			Company:         "Initech",
			Title:           "VP Engineering",
			Location:        "Lisbon",
			LinkedInURL:     "https://www.linkedin.com/in/janedoe",
			MatchConfidence: confidence,
		}
		r := Score(janeAttrs(), false, []Enrichment{enrichment}, nil, nil)
		if r.Score != 0 {
			t.Errorf("confidence %.1f: score = %d, want 0 (provider fully ignored)", confidence, r.Score)
		}
		for _, e := range r.Evidence {
			if strings.Contains(e.Source, "pdl") {
				t.Errorf("confidence %.1f: provider left evidence entry: %+v", confidence, e)
			}
		}
	}
}

func TestScoreEmployerNotDoubleCounted(t *testing.T) {
	enrichment := Enrichment{Provider: "pdl", Company: "Initech", MatchConfidence: 0.9}
	hits := []WebHit{{
		Category: "general",
		Title:    "Jane Doe of Initech on platform strategy",
		URL:      "https://news.example/a",
		Snippet:  "Jane Doe, Initech.",
	}}
	r := Score(janeAttrs(), false, []Enrichment{enrichment}, nil, hits)
	employerAwards := 0
	for _, e := range r.Evidence {
		if e.Signal == "employer_match" {
			employerAwards++
			if !strings.Contains(e.Source, "pdl") {
				t.Errorf("employer award source = %q, want structured provider first", e.Source)
			}
		}
	}
	if employerAwards != 1 {
		t.Fatalf("employer awards = %d, want 1", employerAwards)
	}
}

func TestScoreEmployerCanonicalWhenNoCompanyGiven(t *testing.T) {
	attrs := Attributes{Name: "Jane Doe"}
	enrichment := Enrichment{Provider: "pdl", Company: "Initech", MatchConfidence: 0.9}
	r := Score(attrs, false, []Enrichment{enrichment}, nil, nil)
	for _, e := range r.Evidence {
		if e.Signal == "employer_canonical" {
			if e.Weight != 15 {
				t.Errorf("canonical employer weight = %d, want 15", e.Weight)
			}
			return
		}
	}
	t.Fatalf("no employer_canonical in evidence: %+v", r.Evidence)
}

func TestScoreTitleFuzzyMatch(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"exact", "VP Engineering", "VP Engineering", true},
		{"word overlap", "VP Engineering", "VP of Engineering", true},
		{"substring", "CEO", "CEO and Co-Founder", true},
		{"unrelated", "CFO", "Head of Design", false},
		{"empty", "", "CEO", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fuzzyMatch(tt.a, tt.b); got != tt.want {
				t.Errorf("fuzzyMatch(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestScoreResumePrecedenceOverWeb(t *testing.T) {
	resume := &ResumeFacts{Company: "Initech", Title: "VP of Engineering", Location: "Lisbon, Portugal"}
	attrs := janeAttrs()
	attrs.Location = "Lisbon"
	hits := []WebHit{{
		Category: "general",
		Title:    "Jane Doe of Initech",
		URL:      "https://news.example/a",
		Snippet:  "Jane Doe, VP Engineering at Initech, based in Lisbon.",
	}}
	r := Score(attrs, false, nil, resume, hits)
	for _, e := range r.Evidence {
		switch e.Signal {
		case "employer_match", "title_match", "location_match":
			if !strings.Contains(e.Source, "resume PDF") {
				t.Errorf("%s source = %q, want resume PDF (precedence over web)", e.Signal, e.Source)
			}
		}
	}
}

func TestScoreDomainAgreement(t *testing.T) {
	mkHit := func(url string) WebHit {
		return WebHit{Category: "general", Title: "Jane Doe profile", URL: url, Snippet: "Jane Doe"}
	}
	attrs := Attributes{Name: "Jane Doe"}

	two := Score(attrs, false, nil, nil, []WebHit{
		mkHit("https://a.example/1"), mkHit("https://b.example/2"),
	})
	three := Score(attrs, false, nil, nil, []WebHit{
		mkHit("https://a.example/1"), mkHit("https://b.example/2"), mkHit("https://c.example/3"),
	})
	samePlusName := func(r Result) int {
		for _, e := range r.Evidence {
			if e.Signal == "multi_domain_agreement" {
				return e.Weight
			}
		}
		return 0
	}
	if got := samePlusName(two); got != 10 {
		t.Errorf("two domains weight = %d, want 10", got)
	}
	if got := samePlusName(three); got != 20 {
		t.Errorf("three domains weight = %d, want 20", got)
	}
}

func TestScoreClamped(t *testing.T) {
	attrs := janeAttrs()
	attrs.Location = "Lisbon"
	attrs.LinkedInURL = "https://www.linkedin.com/in/janedoe"
	enrichment := Enrichment{
		Provider:        "pdl",
		Company:         "Initech",
		Title:           "VP Engineering",
		Location:        "Lisbon, Portugal",
		MatchConfidence: 0.95,
	}
	hits := []WebHit{
		linkedinHit(),
		{Category: "general", Title: "Jane Doe", URL: "https://a.example", Snippet: "Jane Doe of Initech, Lisbon"},
		{Category: "news", Title: "Jane Doe interview", URL: "https://b.example", Snippet: "Jane Doe"},
	}
	r := Score(attrs, true, []Enrichment{enrichment}, nil, hits)
	if r.Score > 100 {
		t.Fatalf("score = %d, want clamped to 100", r.Score)
	}
	if r.Status != "LOCKED" {
		t.Errorf("status = %q, want LOCKED", r.Status)
	}
}
