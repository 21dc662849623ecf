package gate

import (
	"fmt"
	"strings"

	"dossier/identity"
)

// minVisibilityRows is the smallest visibility sweep that can support an
// absence claim. Fewer rows means "we barely looked", not "there is nothing".
const minVisibilityRows = 8

// Adaptive coverage tiers keyed on how much public material retrieval
// actually found. Rich retrieval leaves no excuse for untagged prose; thin
// retrieval lowers the bar instead of failing every sparse-but-honest run.
const (
	coverageRichThreshold   = 85.0
	coverageMediumThreshold = 70.0
	coverageSparseThreshold = 60.0

	richWebResults   = 10
	mediumWebResults = 5
)

// AdaptiveCoverageThreshold returns the evidence-coverage percentage a
// dossier must meet given the volume of web results retrieval produced.
func AdaptiveCoverageThreshold(webResultCount int) float64 {
	switch {
	case webResultCount >= richWebResults:
		return coverageRichThreshold
	case webResultCount >= mediumWebResults:
		return coverageMediumThreshold
	}
	return coverageSparseThreshold
}

// EnforceInput carries everything the post-synthesis gate inspects.
type EnforceInput struct {
	LockScore        int
	VisibilityRows   int
	CoveragePct      float64
	HasPublicResults bool
	WebResultCount   int
	PersonName       string
}

// Enforce applies the fail-closed output gates after synthesis. It returns
// whether the text may be shown, and when it may not, a message listing
// every failed gate. All gates are evaluated; nothing short-circuits, so
// the operator sees the complete repair list at once.
func Enforce(in EnforceInput) (shouldOutput bool, failureMessage string) {
	var failures []string
	if !in.HasPublicResults {
		failures = append(failures, "FAIL: NO PUBLIC RETRIEVAL RESULTS. The dossier would rest on internal data alone.")
	}
	switch {
	case in.VisibilityRows == 0:
		failures = append(failures, "FAIL: VISIBILITY SWEEP NOT EXECUTED. Absence of public presence was never checked.")
	case in.VisibilityRows < minVisibilityRows:
		failures = append(failures, fmt.Sprintf(
			"FAIL: VISIBILITY SAMPLE TOO SMALL (%d of %d queries). Cannot assert absence of public presence.",
			in.VisibilityRows, minVisibilityRows))
	}
	threshold := AdaptiveCoverageThreshold(in.WebResultCount)
	if in.CoveragePct < threshold {
		failures = append(failures, fmt.Sprintf(
			"FAIL: EVIDENCE COVERAGE %.1f%% BELOW %.0f%% THRESHOLD (%d web results).",
			in.CoveragePct, threshold, in.WebResultCount))
	}
	if len(failures) == 0 {
		return true, ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Dossier for %s withheld.\n", in.PersonName)
	fmt.Fprintf(&b, "Entity Lock: %d/100 (%s)\n\n", in.LockScore, identity.LockLabel(in.LockScore))
	for _, f := range failures {
		b.WriteString(f)
		b.WriteString("\n")
	}
	return false, strings.TrimRight(b.String(), "\n")
}
