package dossier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"dossier/enrich"
	"dossier/evidence"
	"dossier/gate"
	"dossier/identity"
	"dossier/leverage"
	"dossier/qa"
	"dossier/retrieval"
	"dossier/store"
	"dossier/synthesis"
)

// DeepResearch runs the full evidence-gated pipeline for one person.
func (e *engine) DeepResearch(ctx context.Context, input RunInput) (*RunResult, error) {
	if input.PersonName == "" {
		return nil, ErrPersonNameRequired
	}
	if e.searcher == nil {
		return nil, ErrNoSearcher
	}
	if e.synth == nil {
		return nil, ErrNoSynthesizer
	}

	runID, err := e.store.CreateRun(ctx, input.PersonName, input.Company, string(gate.KindDeepResearch))
	if err != nil {
		return nil, fmt.Errorf("creating run: %w", err)
	}
	e.logger.Info("dossier: deep research started",
		"run_id", runID, "person", input.PersonName, "company", input.Company)

	g := evidence.NewGraph()
	resume := e.buildInternalEvidence(g, input)

	// Retrieval sweeps. Both batteries ledger every query attempted; only
	// cancellation aborts the run.
	sweeper := retrieval.NewSweeper(e.searcher, e.queryInterval(), e.logger)
	visibilityCount, err := sweeper.VisibilitySweep(ctx, g, input.PersonName, input.Company)
	if err != nil {
		return nil, e.failRun(ctx, runID, g, fmt.Errorf("visibility sweep: %w", err))
	}
	personHits, err := sweeper.PersonSweep(ctx, g, input.PersonName, input.Company)
	if err != nil {
		return nil, e.failRun(ctx, runID, g, fmt.Errorf("person sweep: %w", err))
	}
	for _, hit := range personHits {
		snippet := hit.Result.Title
		if hit.Result.Snippet != "" {
			snippet += ": " + hit.Result.Snippet
		}
		g.AddPublicNode(hit.Result.URL, snippet, hit.Result.Date, hit.Category)
	}

	// Enrichment provider fan-out.
	records := enrich.FanOut(ctx, e.enrichers, input.PersonName, input.Company, e.logger)

	// Identity lock.
	attrs := input.Attributes
	if attrs.Name == "" {
		attrs.Name = input.PersonName
	}
	if attrs.Company == "" {
		attrs.Company = input.Company
	}
	lock := identity.Score(attrs, len(input.MeetingNotes) > 0,
		enrichmentSignals(records), resumeSignals(resume), webHits(personHits))

	visibilityRows := g.VisibilityLedgerRows()
	visConfidence := evidence.VisibilityConfidence(visibilityRows)
	hasPublic := visibilityCount > 0 || len(personHits) > 0
	battery := evidence.VisibilityBattery(input.PersonName, input.Company)

	decision := gate.DecideMode(lock.Score, len(visibilityRows) > 0, hasPublic, battery)
	e.logger.Info("dossier: mode decided",
		"run_id", runID, "mode", decision.Mode, "lock_score", lock.Score,
		"visibility_confidence", visConfidence, "public_results", hasPublic)

	if decision.Mode == gate.ModeHalted {
		report := gate.BuildFailureReport(gate.FailureState{
			PersonName:           input.PersonName,
			ModeReason:           decision.Reason,
			LockScore:            lock.Score,
			LockEvidence:         lock.Evidence,
			VisibilityConfidence: visConfidence,
			NodeCount:            len(g.Nodes()),
			Ledger:               g.Ledger(),
			BatteryQueries:       battery,
		})
		run := e.baseRun(runID, g, decision, lock, visibilityRows, visConfidence, hasPublic)
		run.RunStatus = string(gate.StatusHalted)
		run.FailureMessage = report
		if err := e.store.UpdateRun(ctx, *run); err != nil {
			return nil, fmt.Errorf("persisting halted run: %w", err)
		}
		return &RunResult{
			RunID:      runID,
			Status:     gate.StatusHalted,
			Mode:       decision.Mode,
			ModeReason: decision.Reason,
			Text:       report,
			LockScore:  lock.Score,
			LockStatus: lock.Status,
		}, nil
	}

	threshold := gate.AdaptiveCoverageThreshold(len(personHits))
	if e.cfg.StrictQA {
		threshold = evidence.StrictCoverageThreshold
	}

	text, err := e.synth.Synthesize(ctx, synthesis.Request{
		PersonName:        input.PersonName,
		Company:           input.Company,
		Mode:              string(decision.Mode),
		Graph:             g.Snapshot(),
		CoverageThreshold: threshold,
		LockScore:         lock.Score,
	})
	if err != nil {
		ferr := e.failRun(ctx, runID, g, fmt.Errorf("%w: %v", ErrSynthesisFailed, err))
		return nil, ferr
	}

	coverage := evidence.ComputeCoverageFromText(text)
	ok, failMsg := gate.Enforce(gate.EnforceInput{
		LockScore:        lock.Score,
		VisibilityRows:   len(visibilityRows),
		CoveragePct:      coverage,
		HasPublicResults: hasPublic,
		WebResultCount:   len(personHits),
		PersonName:       input.PersonName,
	})
	if !ok {
		// Synthesized text is discarded, never shown and never stored.
		e.logger.Warn("dossier: output gates failed", "run_id", runID, "person", input.PersonName)
		run := e.baseRun(runID, g, decision, lock, visibilityRows, visConfidence, hasPublic)
		run.RunStatus = string(gate.StatusFailed)
		run.EvidenceCoveragePct = coverage
		run.FailureMessage = failMsg
		if err := e.store.UpdateRun(ctx, *run); err != nil {
			return nil, fmt.Errorf("persisting failed run: %w", err)
		}
		return &RunResult{
			RunID:      runID,
			Status:     gate.StatusFailed,
			Mode:       decision.Mode,
			ModeReason: decision.Reason,
			Text:       failMsg,
			LockScore:  lock.Score,
			LockStatus: lock.Status,
			Coverage:   coverage,
		}, nil
	}

	text = gate.FilterProse(text, decision.Mode, lock.Score)
	if e.cfg.StrictQA {
		var dropped int
		text, dropped = qa.PruneUncitedLines(text)
		if dropped > 0 {
			e.logger.Info("dossier: pruned uncited lines", "run_id", runID, "dropped", dropped)
		}
	}

	report := qa.Evaluate(text, input.PersonName, threshold, gatherFacts(attrs, records, resume), lock)
	output := text + artifactsSection(g) + "\n\n" + qa.RenderMarkdown(report)

	brief := leverage.BuildBrief(text, input.PersonName, input.Company, lock.Score, coverage)

	run := e.baseRun(runID, g, decision, lock, visibilityRows, visConfidence, hasPublic)
	run.RunStatus = string(gate.StatusSucceeded)
	run.DossierText = output
	run.EvidenceCoveragePct = coverage
	run.QAReport = marshalJSON(report)
	run.Brief = marshalJSON(brief)
	if err := e.store.UpdateRun(ctx, *run); err != nil {
		return nil, fmt.Errorf("persisting run: %w", err)
	}
	e.logger.Info("dossier: deep research complete",
		"run_id", runID, "person", input.PersonName,
		"lock_score", lock.Score, "coverage", coverage, "qa_pass", report.PassesAll)

	return &RunResult{
		RunID:      runID,
		Status:     gate.StatusSucceeded,
		Mode:       decision.Mode,
		ModeReason: decision.Reason,
		Text:       output,
		LockScore:  lock.Score,
		LockStatus: lock.Status,
		Coverage:   coverage,
		QA:         &report,
		Brief:      &brief,
	}, nil
}

// artifactsSection renders the highest-signal public appearances found by
// the visibility sweep. Empty when the sweep surfaced none.
func artifactsSection(g *evidence.Graph) string {
	artifacts := evidence.HighestSignalArtifacts(g, 3)
	if len(artifacts) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n\n## Highest-Signal Public Artifacts\n")
	for _, a := range artifacts {
		fmt.Fprintf(&b, "- %s (%s, %s) %s [VERIFIED-PUBLIC]\n", a.Title, a.Venue, a.Date, a.URL)
		if a.WhyItMatters != "" {
			fmt.Fprintf(&b, "  %s\n", a.WhyItMatters)
		}
	}
	return b.String()
}

// buildInternalEvidence adds meeting and resume nodes to the graph and
// returns the parsed resume, if any.
func (e *engine) buildInternalEvidence(g *evidence.Graph, input RunInput) *enrich.Resume {
	for i, note := range input.MeetingNotes {
		source := note.Source
		if source == "" {
			source = fmt.Sprintf("meeting:%d", i+1)
		}
		g.AddMeetingNode(source, note.Text, note.Date, fmt.Sprintf("m%d", i+1))
	}
	if input.ResumePDF == "" {
		return nil
	}
	resume, err := enrich.ExtractResume(input.ResumePDF)
	if err != nil {
		e.logger.Warn("dossier: resume extraction failed",
			"path", input.ResumePDF, "error", err)
		return nil
	}
	snippet := resume.Headline
	if snippet == "" {
		snippet = resume.Text
	}
	g.AddPDFNode(input.ResumePDF, snippet, "", "resume")
	return resume
}

// failRun persists a FAILED run with partial state and returns the cause.
func (e *engine) failRun(ctx context.Context, runID int64, g *evidence.Graph, cause error) error {
	e.logger.Error("dossier: run failed", "run_id", runID, "error", cause)
	run := store.Run{
		ID:             runID,
		RunStatus:      string(gate.StatusFailed),
		FailureMessage: cause.Error(),
		GraphSnapshot:  marshalJSON(g.Snapshot()),
	}
	if err := e.store.UpdateRun(ctx, run); err != nil {
		return fmt.Errorf("persisting failed run after %v: %w", cause, err)
	}
	return cause
}

// baseRun assembles the fields shared by every terminal status.
func (e *engine) baseRun(runID int64, g *evidence.Graph, decision gate.Decision,
	lock identity.Result, visibilityRows []evidence.LedgerRow, visConfidence int, hasPublic bool) *store.Run {
	return &store.Run{
		ID:                   runID,
		DossierMode:          string(decision.Mode),
		ModeReason:           decision.Reason,
		EntityLockScore:      lock.Score,
		EntityLockStatus:     lock.Status,
		VisibilityRows:       len(visibilityRows),
		VisibilityConfidence: visConfidence,
		HasPublicResults:     hasPublic,
		GraphSnapshot:        marshalJSON(g.Snapshot()),
	}
}

func enrichmentSignals(records []enrich.Record) []identity.Enrichment {
	out := make([]identity.Enrichment, len(records))
	for i, r := range records {
		out[i] = identity.Enrichment{
			Provider:        r.Provider,
			Company:         r.CanonicalCompany,
			Title:           r.CanonicalTitle,
			Location:        r.CanonicalLocation,
			LinkedInURL:     r.LinkedInURL,
			MatchConfidence: r.MatchConfidence,
		}
	}
	return out
}

func resumeSignals(r *enrich.Resume) *identity.ResumeFacts {
	if r == nil {
		return nil
	}
	return &identity.ResumeFacts{
		Headline: r.Headline,
		Company:  r.Company,
		Title:    r.Title,
		Location: r.Location,
	}
}

func webHits(hits []retrieval.CategorizedResult) []identity.WebHit {
	out := make([]identity.WebHit, len(hits))
	for i, h := range hits {
		out[i] = identity.WebHit{
			Category: h.Category,
			Title:    h.Result.Title,
			URL:      h.Result.URL,
			Snippet:  h.Result.Snippet,
		}
	}
	return out
}

// gatherFacts collects same-field assertions from every source for the
// contradiction gate.
func gatherFacts(attrs identity.Attributes, records []enrich.Record, resume *enrich.Resume) []qa.Fact {
	var facts []qa.Fact
	add := func(field, value, source string) {
		if value != "" {
			facts = append(facts, qa.Fact{Field: field, Value: value, Source: source})
		}
	}
	add("company", attrs.Company, "input")
	add("title", attrs.Title, "input")
	add("location", attrs.Location, "input")
	for _, r := range records {
		add("company", r.CanonicalCompany, r.Provider)
		add("title", r.CanonicalTitle, r.Provider)
		add("location", r.CanonicalLocation, r.Provider)
	}
	if resume != nil {
		add("company", resume.Company, "resume")
		add("title", resume.Title, "resume")
		add("location", resume.Location, "resume")
	}
	return facts
}

func marshalJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}
