package qa

import (
	"fmt"
	"strings"

	"dossier/identity"
)

// genericnessWarnScore is the score above which genericness becomes a
// hallucination risk flag rather than just a failed gate.
const genericnessWarnScore = 30

// Report aggregates every quality gate for one dossier run.
type Report struct {
	PersonName     string             `json:"person_name"`
	Genericness    GenericnessResult  `json:"genericness"`
	Coverage       CoverageResult     `json:"coverage"`
	Contradictions []Contradiction    `json:"contradictions"`
	PersonLevel    PersonLevelResult  `json:"person_level"`
	Snapshot       SnapshotResult     `json:"snapshot"`
	InferredHigh   InferredHighResult `json:"inferred_high"`
	Disambiguation identity.Result    `json:"disambiguation"`
	RiskFlags      []string           `json:"hallucination_risk_flags"`
	PassesAll      bool               `json:"passes_all"`
}

// Evaluate runs every gate over the dossier text and assembles the report.
// The snapshot and inference audits are advisory: they raise risk flags but
// do not by themselves fail the run.
func Evaluate(text, personName string, coverageThreshold float64, facts []Fact, disambiguation identity.Result) Report {
	r := Report{
		PersonName:     personName,
		Genericness:    ScoreGenericness(text),
		Coverage:       CheckCoverage(text, coverageThreshold),
		Contradictions: FindContradictions(facts),
		PersonLevel:    CheckPersonLevel(text, personName),
		Snapshot:       CheckSnapshot(text, personName),
		InferredHigh:   AuditInferredHigh(text),
		Disambiguation: disambiguation,
	}
	r.PassesAll = r.Genericness.Passes &&
		r.Coverage.Passes &&
		len(r.Contradictions) == 0 &&
		r.PersonLevel.Passes

	if r.Genericness.Score > genericnessWarnScore {
		r.RiskFlags = append(r.RiskFlags,
			fmt.Sprintf("genericness score %d: prose reads like boilerplate", r.Genericness.Score))
	}
	if !r.Coverage.Passes {
		r.RiskFlags = append(r.RiskFlags,
			fmt.Sprintf("evidence coverage %.1f%% below %.0f%% threshold", r.Coverage.Pct, r.Coverage.Threshold))
	}
	for _, c := range r.Contradictions {
		if c.Severity == "high" {
			r.RiskFlags = append(r.RiskFlags,
				fmt.Sprintf("high-severity contradiction on %s: %q vs %q", c.Field, c.ValueA, c.ValueB))
		}
	}
	if !r.PersonLevel.Passes {
		r.RiskFlags = append(r.RiskFlags,
			fmt.Sprintf("company-heavy dossier: only %.1f%% of lines are person-level", r.PersonLevel.PersonPct))
	}
	if !r.InferredHigh.Passes {
		r.RiskFlags = append(r.RiskFlags,
			fmt.Sprintf("%d INFERRED-H line(s) name no upstream evidence", len(r.InferredHigh.Violations)))
	}
	return r
}

// RenderMarkdown produces the human-readable QA report appended to dossier
// output and persisted alongside it.
func RenderMarkdown(r Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## QA Report: %s\n\n", r.PersonName)
	fmt.Fprintf(&b, "**Overall**: %s\n\n", passFail(r.PassesAll))

	fmt.Fprintf(&b, "### Genericness: %s (score %d/100)\n", statusWord(r.Genericness.Passes, r.Genericness.Score > genericnessWarnScore), r.Genericness.Score)
	for i, phrase := range r.Genericness.FlaggedPhrases {
		if i >= 5 {
			fmt.Fprintf(&b, "- ... and %d more\n", len(r.Genericness.FlaggedPhrases)-5)
			break
		}
		fmt.Fprintf(&b, "- flagged: %q\n", phrase)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "### Evidence Coverage: %s (%.1f%% tagged, threshold %.0f%%)\n",
		passFail(r.Coverage.Passes), r.Coverage.Pct, r.Coverage.Threshold)
	for i, line := range r.Coverage.UntaggedLines {
		if i >= 5 {
			fmt.Fprintf(&b, "- ... and %d more\n", len(r.Coverage.UntaggedLines)-5)
			break
		}
		fmt.Fprintf(&b, "- untagged: %s\n", line)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "### Contradictions: %d\n", len(r.Contradictions))
	for _, c := range r.Contradictions {
		fmt.Fprintf(&b, "- [%s] %s: %q (%s) vs %q (%s)\n",
			c.Severity, c.Field, c.ValueA, c.SourceA, c.ValueB, c.SourceB)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "### Person-Level Focus: %s (%.1f%%)\n\n",
		passFail(r.PersonLevel.Passes), r.PersonLevel.PersonPct)

	fmt.Fprintf(&b, "### Identity Lock: %d/100 (%s)\n", r.Disambiguation.Score, r.Disambiguation.Status)
	for _, e := range r.Disambiguation.Evidence {
		fmt.Fprintf(&b, "- +%dpts: %s (%s)\n", e.Weight, e.Signal, e.Source)
	}
	b.WriteString("\n")

	if len(r.RiskFlags) > 0 {
		b.WriteString("### Hallucination Risk Flags\n")
		for _, flag := range r.RiskFlags {
			fmt.Fprintf(&b, "- %s\n", flag)
		}
		b.WriteString("\n")
	}

	if len(r.Coverage.UntaggedLines) > 0 {
		b.WriteString("### Top Claims To Verify\n")
		for i, line := range r.Coverage.UntaggedLines {
			if i >= 3 {
				break
			}
			fmt.Fprintf(&b, "%d. %s\n", i+1, line)
		}
	}
	return b.String()
}

func passFail(ok bool) string {
	if ok {
		return "PASS"
	}
	return "FAIL"
}

func statusWord(passes, warn bool) string {
	switch {
	case passes:
		return "PASS"
	case warn:
		return "FAIL"
	}
	return "WARN"
}
