package qa

import (
	"strings"
	"testing"

	"dossier/identity"
)

func TestScoreGenericness(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantScore  int
		wantPasses bool
	}{
		{
			name:       "empty text",
			text:       "",
			wantScore:  0,
			wantPasses: true,
		},
		{
			name:       "specific prose",
			text:       "Jane Doe joined Initech in March 2021 to run the Lisbon platform team.\nShe previously shipped the billing rewrite at Globex.",
			wantScore:  0,
			wantPasses: true,
		},
		{
			name:       "pure boilerplate",
			text:       "Jane is a visionary leader with a proven track record.\nShe is passionate about driving innovation at scale.",
			wantScore:  100,
			wantPasses: false,
		},
		{
			name:       "tagged filler is exempt",
			text:       "Described as a thought leader by conference organizers. [VERIFIED-PUBLIC]",
			wantScore:  0,
			wantPasses: true,
		},
		{
			name:       "headers and tables skipped",
			text:       "# A visionary thought leader\n| strategic | driven |\n--- proven track record",
			wantScore:  0,
			wantPasses: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreGenericness(tt.text)
			if got.Score != tt.wantScore {
				t.Errorf("score = %d, want %d (flagged %v)", got.Score, tt.wantScore, got.FlaggedPhrases)
			}
			if got.Passes != tt.wantPasses {
				t.Errorf("passes = %v, want %v", got.Passes, tt.wantPasses)
			}
		})
	}
}

func TestScoreGenericnessOneFlagPerSentence(t *testing.T) {
	// Three patterns in one sentence still count once.
	got := ScoreGenericness("A visionary, data-driven leader with a proven track record in the field.\nJane Doe shipped the 2024 billing rewrite for Initech in Lisbon.")
	if got.FlaggedCount != 1 {
		t.Errorf("flagged = %d, want 1", got.FlaggedCount)
	}
	if got.Score != 50 {
		t.Errorf("score = %d, want 50", got.Score)
	}
}

func TestCheckCoverage(t *testing.T) {
	text := "Jane Doe runs the platform group at Initech today. [VERIFIED-MEETING]\n" +
		"She keynoted the 2024 Lisbon infrastructure summit. [VERIFIED-PUBLIC]\n" +
		"She is rumored to be considering a board position somewhere.\n" +
		"# Header line\n" +
		"short line\n"
	got := CheckCoverage(text, DefaultCoverageThreshold)
	if got.TotalLines != 3 || got.TaggedLines != 2 {
		t.Fatalf("lines = %d tagged %d, want 3/2", got.TotalLines, got.TaggedLines)
	}
	if got.Passes {
		t.Error("66.7%% coverage passed an 85%% threshold")
	}
	if len(got.UntaggedLines) != 1 || !strings.Contains(got.UntaggedLines[0], "rumored") {
		t.Errorf("untagged = %v", got.UntaggedLines)
	}
}

func TestCheckCoverageGapAcknowledged(t *testing.T) {
	text := "Jane Doe runs the platform group at Initech today. [VERIFIED-MEETING]\n" +
		"No evidence available for her public speaking history this year.\n"
	got := CheckCoverage(text, DefaultCoverageThreshold)
	if got.Pct != 100.0 {
		t.Fatalf("pct = %.1f, want 100 (gap acknowledgment counts as covered)", got.Pct)
	}
	if !got.Passes {
		t.Error("honest gap line failed the coverage gate")
	}
	if len(got.UntaggedLines) != 0 {
		t.Errorf("untagged = %v, want none", got.UntaggedLines)
	}
}

func TestCheckCoverageEmptyPasses(t *testing.T) {
	got := CheckCoverage("# Only structure\n---\nshort", StrictCoverageThreshold)
	if got.Pct != 100.0 || !got.Passes {
		t.Errorf("pct = %.1f passes = %v, want 100 PASS", got.Pct, got.Passes)
	}
}

func TestPruneUncitedLines(t *testing.T) {
	text := "# Dossier\n" +
		"Jane Doe runs the platform group at Initech today. [VERIFIED-MEETING]\n" +
		"She is rumored to be considering a board position somewhere.\n" +
		"- short bullet\n"
	pruned, dropped := PruneUncitedLines(text)
	if dropped != 1 {
		t.Fatalf("dropped = %d, want 1", dropped)
	}
	if strings.Contains(pruned, "rumored") {
		t.Error("uncited line survived pruning")
	}
	if !strings.Contains(pruned, "# Dossier") || !strings.Contains(pruned, "[VERIFIED-MEETING]") {
		t.Error("structure or cited line lost in pruning")
	}
}

func TestPruneUncitedLinesKeepsGapAcknowledgments(t *testing.T) {
	text := "Jane Doe runs the platform group at Initech today. [VERIFIED-MEETING]\n" +
		"No evidence available for her public speaking history this year.\n" +
		"She is rumored to be considering a board position somewhere.\n"
	pruned, dropped := PruneUncitedLines(text)
	if dropped != 1 {
		t.Fatalf("dropped = %d, want 1", dropped)
	}
	if !strings.Contains(pruned, "No evidence available") {
		t.Error("gap acknowledgment pruned alongside uncited prose")
	}
	if strings.Contains(pruned, "rumored") {
		t.Error("uncited line survived pruning")
	}
}

func TestFindContradictions(t *testing.T) {
	tests := []struct {
		name     string
		facts    []Fact
		want     int
		severity string
	}{
		{
			name: "agreeing values",
			facts: []Fact{
				{Field: "company", Value: "Initech", Source: "pdl"},
				{Field: "company", Value: "initech", Source: "web"},
			},
			want: 0,
		},
		{
			name: "substring containment agrees",
			facts: []Fact{
				{Field: "title", Value: "CEO", Source: "pdl"},
				{Field: "title", Value: "CEO and Co-Founder", Source: "web"},
			},
			want: 0,
		},
		{
			name: "title conflict is high severity",
			facts: []Fact{
				{Field: "title", Value: "VP Engineering", Source: "pdl"},
				{Field: "title", Value: "Head of Sales", Source: "web"},
			},
			want:     1,
			severity: "high",
		},
		{
			name: "location conflict is medium severity",
			facts: []Fact{
				{Field: "location", Value: "Lisbon", Source: "pdl"},
				{Field: "location", Value: "Berlin", Source: "web"},
			},
			want:     1,
			severity: "medium",
		},
		{
			name: "empty values skipped",
			facts: []Fact{
				{Field: "company", Value: "", Source: "pdl"},
				{Field: "company", Value: "Initech", Source: "web"},
			},
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindContradictions(tt.facts)
			if len(got) != tt.want {
				t.Fatalf("contradictions = %d, want %d: %+v", len(got), tt.want, got)
			}
			if tt.want > 0 && got[0].Severity != tt.severity {
				t.Errorf("severity = %q, want %q", got[0].Severity, tt.severity)
			}
		})
	}
}

func TestCheckPersonLevel(t *testing.T) {
	personHeavy := "Jane Doe has led the platform group for three years now.\n" +
		"She prefers asynchronous written communication over meetings.\n" +
		"Their decision style favors small reversible experiments first.\n"
	companyHeavy := "The company expanded into four new European markets last year.\n" +
		"Industry analysts expect the market to consolidate around two firms.\n" +
		"The organization restructured its corporate reporting lines twice.\n"

	if got := CheckPersonLevel(personHeavy, "Jane Doe"); !got.Passes || got.PersonPct != 100.0 {
		t.Errorf("person-heavy: pct = %.1f passes = %v", got.PersonPct, got.Passes)
	}
	if got := CheckPersonLevel(companyHeavy, "Jane Doe"); got.Passes {
		t.Errorf("company-heavy passed at %.1f%%", got.PersonPct)
	}
	if got := CheckPersonLevel("", "Jane Doe"); !got.Passes || got.PersonPct != 100.0 {
		t.Errorf("empty text: pct = %.1f passes = %v", got.PersonPct, got.Passes)
	}
}

func TestCheckSnapshot(t *testing.T) {
	text := "### Strategic Identity Snapshot\n" +
		"- Jane anchors every decision in platform reliability data.\n" +
		"- The company grew revenue forty percent year over year.\n" +
		"- The market is consolidating around managed platforms.\n" +
		"- The industry faces a hiring squeeze through 2027.\n" +
		"### Next Section\n" +
		"- The organization is restructuring.\n"
	got := CheckSnapshot(text, "Jane Doe")
	if !got.Found {
		t.Fatal("snapshot section not found")
	}
	if got.BulletCount != 4 {
		t.Errorf("bullets = %d, want 4 (next section excluded)", got.BulletCount)
	}
	if len(got.NonPersonBullets) != 3 {
		t.Errorf("non-person bullets = %d, want 3", len(got.NonPersonBullets))
	}
	if got.Passes {
		t.Error("three non-person bullets passed a two-bullet allowance")
	}
}

func TestCheckSnapshotAbsentSectionPasses(t *testing.T) {
	got := CheckSnapshot("## Background\nJane Doe runs platform engineering.", "Jane Doe")
	if got.Found || got.BulletCount != 0 || !got.Passes {
		t.Errorf("absent section: %+v", got)
	}
}

func TestAuditInferredHigh(t *testing.T) {
	text := "She will likely sponsor the migration, based on her Q3 roadmap remarks. [INFERRED-H]\n" +
		"She is probably planning to leave the company. [INFERRED-H]\n" +
		"Budget approval per the procurement thread suggests Q1 timing. [INFERRED–HIGH]\n"
	got := AuditInferredHigh(text)
	if got.TotalLines != 3 {
		t.Fatalf("inferred-h lines = %d, want 3", got.TotalLines)
	}
	if len(got.Violations) != 1 || !strings.Contains(got.Violations[0], "planning to leave") {
		t.Errorf("violations = %v", got.Violations)
	}
	if got.Passes {
		t.Error("audit passed with a violation")
	}
}

func TestEvaluate(t *testing.T) {
	goodText := "Jane Doe runs the platform group at Initech today. [VERIFIED-MEETING]\n" +
		"She keynoted the 2024 Lisbon infrastructure summit. [VERIFIED-PUBLIC]\n"
	badText := "The company is a visionary industry leader driving innovation daily.\n" +
		"Market analysts praise the organization's proven track record overall.\n"
	lock := identity.Result{Score: 80, Status: "LOCKED", Evidence: []identity.Evidence{
		{Signal: "linkedin_verified", Weight: 30, Source: "retrieval"},
	}}

	good := Evaluate(goodText, "Jane Doe", DefaultCoverageThreshold, nil, lock)
	if !good.PassesAll {
		t.Errorf("good dossier failed: flags = %v", good.RiskFlags)
	}

	facts := []Fact{
		{Field: "title", Value: "VP Engineering", Source: "pdl"},
		{Field: "title", Value: "Head of Sales", Source: "web"},
	}
	bad := Evaluate(badText, "Jane Doe", DefaultCoverageThreshold, facts, identity.Result{Status: "NOT LOCKED"})
	if bad.PassesAll {
		t.Error("bad dossier passed")
	}
	if len(bad.RiskFlags) == 0 {
		t.Error("bad dossier raised no risk flags")
	}
}

func TestRenderMarkdown(t *testing.T) {
	report := Evaluate(
		"Jane Doe runs the platform group at Initech today. [VERIFIED-MEETING]\n",
		"Jane Doe",
		DefaultCoverageThreshold,
		nil,
		identity.Result{Score: 75, Status: "LOCKED", Evidence: []identity.Evidence{
			{Signal: "employer_match", Weight: 20, Source: "employer confirmed by pdl"},
		}},
	)
	md := RenderMarkdown(report)
	for _, want := range []string{
		"## QA Report: Jane Doe",
		"**Overall**: PASS",
		"### Genericness",
		"### Evidence Coverage",
		"### Identity Lock: 75/100 (LOCKED)",
		"+20pts: employer_match",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("rendered report missing %q", want)
		}
	}
}
