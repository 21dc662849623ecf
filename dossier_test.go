//go:build cgo

package dossier

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"dossier/enrich"
	"dossier/evidence"
	"dossier/gate"
	"dossier/synthesis"
)

// fakeSearcher returns one hit per query, shaped so the linkedin sweep
// query confirms the subject's identity. With empty set, every query
// returns nothing.
type fakeSearcher struct {
	empty bool
	calls int
}

func (f *fakeSearcher) Search(_ context.Context, query string, _ int) ([]evidence.SearchResult, error) {
	f.calls++
	if f.empty {
		return nil, nil
	}
	if strings.Contains(query, "site:linkedin.com") {
		return []evidence.SearchResult{{
			Title:   "Jane Doe - VP Engineering - Initech | LinkedIn",
			URL:     "https://www.linkedin.com/in/janedoe",
			Snippet: "Jane Doe. VP Engineering at Initech.",
		}}, nil
	}
	return []evidence.SearchResult{{
		Title:   "Jane Doe speaks at SaaSConf",
		URL:     fmt.Sprintf("https://example.com/hit-%d", f.calls),
		Snippet: "Jane Doe of Initech on platform engineering.",
	}}, nil
}

type fakeSynth struct {
	text string
	err  error
}

func (f *fakeSynth) Synthesize(context.Context, synthesis.Request) (string, error) {
	return f.text, f.err
}

type fakeProvider struct{ rec enrich.Record }

func (f *fakeProvider) Name() string { return f.rec.Provider }

func (f *fakeProvider) Lookup(context.Context, string, string) (enrich.Record, error) {
	return f.rec, nil
}

const taggedDossier = `# Dossier: Jane Doe

### 1. Current Role
Jane Doe serves as VP Engineering at Initech since 2021. [VERIFIED-PUBLIC]
Jane led the platform group through a 40% infrastructure cost reduction. [INFERRED-M]

### 2. Public Visibility
Jane Doe spoke at SaaSConf 2024 on platform engineering economics. [VERIFIED-PUBLIC]
`

func testEngine(t *testing.T, opts ...Option) Engine {
	t.Helper()
	cfg := DefaultConfig()
	cfg.DBPath = filepath.Join(t.TempDir(), "test.db")
	cfg.QueryIntervalMS = 1
	eng, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { eng.Close() })
	return eng
}

func lockedOpts() []Option {
	return []Option{
		WithSearcher(&fakeSearcher{}),
		WithSynthesizer(&fakeSynth{text: taggedDossier}),
		WithEnricher(&fakeProvider{rec: enrich.Record{
			Provider:         "pdl",
			CanonicalCompany: "Initech",
			LinkedInURL:      "https://www.linkedin.com/in/janedoe",
			MatchConfidence:  0.9,
		}}),
	}
}

func lockedInput() RunInput {
	return RunInput{
		PersonName: "Jane Doe",
		Company:    "Initech",
		MeetingNotes: []MeetingNote{
			{Source: "meeting:2025-06-10", Date: "2025-06-10", Text: "Discussed platform roadmap. Agreed to send pricing follow up."},
		},
	}
}

func TestDeepResearchSucceeds(t *testing.T) {
	eng := testEngine(t, lockedOpts()...)
	res, err := eng.DeepResearch(context.Background(), lockedInput())
	if err != nil {
		t.Fatalf("DeepResearch: %v", err)
	}
	if res.Status != gate.StatusSucceeded {
		t.Fatalf("status = %s, reason %q", res.Status, res.ModeReason)
	}
	if res.Mode != gate.ModeFull {
		t.Errorf("mode = %s, want full (lock %d)", res.Mode, res.LockScore)
	}
	if res.LockScore < 70 || res.LockStatus != "LOCKED" {
		t.Errorf("lock = %d/%s", res.LockScore, res.LockStatus)
	}
	if !strings.Contains(res.Text, "# Dossier: Jane Doe") || !strings.Contains(res.Text, "QA Report") {
		t.Error("output missing dossier prose or QA report")
	}
	if res.QA == nil || !res.QA.PassesAll {
		t.Errorf("qa = %+v", res.QA)
	}
	if res.Brief == nil || len(res.Brief.Moves) == 0 {
		t.Error("brief missing moves")
	}

	run, err := eng.Run(context.Background(), res.RunID)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if run.RunStatus != "SUCCEEDED" || run.DossierText == "" {
		t.Errorf("persisted run = %s, text len %d", run.RunStatus, len(run.DossierText))
	}
	if run.GraphSnapshot == "" || run.QAReport == "" || run.Brief == "" {
		t.Error("persisted run missing snapshot, qa report, or brief")
	}
	if run.VisibilityRows < 8 {
		t.Errorf("visibility rows = %d", run.VisibilityRows)
	}
}

func TestDeepResearchHaltsWithoutPublicResults(t *testing.T) {
	eng := testEngine(t,
		WithSearcher(&fakeSearcher{empty: true}),
		WithSynthesizer(&fakeSynth{text: taggedDossier}),
	)
	res, err := eng.DeepResearch(context.Background(), lockedInput())
	if err != nil {
		t.Fatalf("DeepResearch: %v", err)
	}
	if res.Status != gate.StatusHalted || res.Mode != gate.ModeHalted {
		t.Fatalf("status = %s, mode = %s", res.Status, res.Mode)
	}
	if !strings.Contains(res.Text, "DOSSIER GENERATION HALTED") {
		t.Errorf("halt text = %q", res.Text[:80])
	}

	run, err := eng.Run(context.Background(), res.RunID)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if run.RunStatus != "HALTED" || run.DossierText != "" {
		t.Errorf("persisted = %s, text %q", run.RunStatus, run.DossierText)
	}
	if run.FailureMessage == "" || run.GraphSnapshot == "" {
		t.Error("halted run lost failure report or partial graph")
	}
}

// Untagged synthesis output fails the coverage gate; the text is withheld
// and never persisted.
func TestDeepResearchWithholdsUncoveredText(t *testing.T) {
	opts := lockedOpts()
	opts[1] = WithSynthesizer(&fakeSynth{
		text: "Jane Doe is a results-oriented leader with a passion for innovation in the technology space today.\n",
	})
	eng := testEngine(t, opts...)
	res, err := eng.DeepResearch(context.Background(), lockedInput())
	if err != nil {
		t.Fatalf("DeepResearch: %v", err)
	}
	if res.Status != gate.StatusFailed {
		t.Fatalf("status = %s", res.Status)
	}
	if !strings.Contains(res.Text, "withheld") {
		t.Errorf("failure text = %q", res.Text)
	}

	run, err := eng.Run(context.Background(), res.RunID)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if run.DossierText != "" {
		t.Error("withheld text was persisted")
	}
	if run.FailureMessage == "" {
		t.Error("failure message not persisted")
	}
}

// Strict QA prunes substantive untagged lines instead of failing the run,
// then holds the remainder to the 95% threshold.
func TestDeepResearchStrictQAPrunes(t *testing.T) {
	opts := lockedOpts()
	opts[1] = WithSynthesizer(&fakeSynth{
		text: taggedDossier + "Jane is probably planning a move to a competitor within the year.\n",
	})
	cfg := DefaultConfig()
	cfg.DBPath = filepath.Join(t.TempDir(), "test.db")
	cfg.QueryIntervalMS = 1
	cfg.StrictQA = true
	eng, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer eng.Close()

	res, err := eng.DeepResearch(context.Background(), lockedInput())
	if err != nil {
		t.Fatalf("DeepResearch: %v", err)
	}
	if res.Status != gate.StatusSucceeded {
		t.Fatalf("status = %s, reason %q", res.Status, res.ModeReason)
	}
	if strings.Contains(res.Text, "planning a move to a competitor") {
		t.Error("uncited line survived strict QA")
	}
	if res.QA == nil || !res.QA.Coverage.Passes {
		t.Errorf("coverage after pruning = %+v", res.QA)
	}
}

func TestDeepResearchSynthesisFailure(t *testing.T) {
	opts := lockedOpts()
	opts[1] = WithSynthesizer(&fakeSynth{err: errors.New("model unavailable")})
	eng := testEngine(t, opts...)
	_, err := eng.DeepResearch(context.Background(), lockedInput())
	if !errors.Is(err, ErrSynthesisFailed) {
		t.Fatalf("err = %v, want ErrSynthesisFailed", err)
	}

	runs, err := eng.Store().ListRuns(context.Background(), 10)
	if err != nil {
		t.Fatalf("listing runs: %v", err)
	}
	if len(runs) != 1 || runs[0].RunStatus != "FAILED" {
		t.Fatalf("runs = %+v", runs)
	}
	if runs[0].GraphSnapshot == "" {
		t.Error("failed run lost partial graph")
	}
}

func TestDeepResearchInputValidation(t *testing.T) {
	eng := testEngine(t, WithSynthesizer(&fakeSynth{text: "x"}))
	if _, err := eng.DeepResearch(context.Background(), RunInput{PersonName: "Jane"}); !errors.Is(err, ErrNoSearcher) {
		t.Errorf("no searcher err = %v", err)
	}
	eng2 := testEngine(t, lockedOpts()...)
	if _, err := eng2.DeepResearch(context.Background(), RunInput{}); !errors.Is(err, ErrPersonNameRequired) {
		t.Errorf("empty name err = %v", err)
	}
}

func TestMeetingPrep(t *testing.T) {
	eng := testEngine(t)
	res, err := eng.MeetingPrep(context.Background(), lockedInput())
	if err != nil {
		t.Fatalf("MeetingPrep: %v", err)
	}
	if res.Status != gate.StatusSucceeded {
		t.Fatalf("status = %s", res.Status)
	}
	for _, want := range []string{
		"# Meeting-Prep Brief: Jane Doe",
		"**Mode**: Meeting-Prep (internal evidence only)",
		"## 1. What We Know From Our Interactions",
		"[VERIFIED-MEETING] (2025-06-10)",
		"Open action items:",
		"## 2. What To Do Next",
		"- [ ] Confirm attendees and agenda.",
		"## 3. Key Risks / Watchouts",
		"## 4. Missing Intel Worth Fetching",
		"deep-research pipeline",
	} {
		if !strings.Contains(res.Text, want) {
			t.Errorf("brief missing %q", want)
		}
	}
	// The pricing follow up in the notes is an open action item.
	if !strings.Contains(res.Text, "pricing follow up") {
		t.Error("action item not extracted")
	}

	run, err := eng.Run(context.Background(), res.RunID)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if run.PipelineKind != "meeting_prep" || run.RunStatus != "SUCCEEDED" {
		t.Errorf("persisted = %s/%s", run.PipelineKind, run.RunStatus)
	}
}

func TestMeetingPrepNoHistory(t *testing.T) {
	eng := testEngine(t)
	res, err := eng.MeetingPrep(context.Background(), RunInput{PersonName: "John Smith"})
	if err != nil {
		t.Fatalf("MeetingPrep: %v", err)
	}
	for _, want := range []string{
		"- No meeting or email history available. [UNKNOWN]",
		"- None recorded. [UNKNOWN]",
		"No interaction history; relationship context unknown. [UNKNOWN]",
		"**Role**: Unknown [UNKNOWN]",
	} {
		if !strings.Contains(res.Text, want) {
			t.Errorf("brief missing %q", want)
		}
	}
	// Internal-only tags: no public or high-inference tags may appear.
	for _, banned := range []string{"[VERIFIED-PUBLIC]", "[INFERRED-H]"} {
		if strings.Contains(res.Text, banned) {
			t.Errorf("brief contains %q", banned)
		}
	}
}

func TestRunNotFound(t *testing.T) {
	eng := testEngine(t)
	if _, err := eng.Run(context.Background(), 404); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("err = %v, want ErrRunNotFound", err)
	}
}
