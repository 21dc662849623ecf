package qa

import (
	"strings"

	"dossier/evidence"
)

// Coverage thresholds selectable by the caller.
const (
	DefaultCoverageThreshold = 85.0
	StrictCoverageThreshold  = 95.0
)

// CoverageResult is the outcome of the tagged-coverage gate.
type CoverageResult struct {
	Pct           float64  `json:"pct"`
	Threshold     float64  `json:"threshold"`
	TotalLines    int      `json:"total_lines"`
	TaggedLines   int      `json:"tagged_lines"`
	UntaggedLines []string `json:"untagged_lines"`
	Passes        bool     `json:"passes"`
}

// CheckCoverage measures the share of substantive prose lines carrying an
// evidence tag or explicitly acknowledging a gap. Text with no substantive
// lines trivially passes at 100.
func CheckCoverage(text string, threshold float64) CoverageResult {
	res := CoverageResult{Threshold: threshold}
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if !substantiveProseLine(trimmed) {
			continue
		}
		res.TotalLines++
		if evidenceTagRe.MatchString(trimmed) || evidence.GapAcknowledged(trimmed) {
			res.TaggedLines++
		} else {
			res.UntaggedLines = append(res.UntaggedLines, trimmed)
		}
	}
	if res.TotalLines == 0 {
		res.Pct = 100.0
	} else {
		res.Pct = float64(res.TaggedLines) / float64(res.TotalLines) * 100.0
	}
	res.Passes = res.Pct >= threshold
	return res
}

// substantiveProseLine reports whether a trimmed line should carry an
// evidence tag: long enough to state a fact and not markdown structure.
func substantiveProseLine(line string) bool {
	if len(line) <= 20 {
		return false
	}
	for _, prefix := range []string{"#", "|", "---", "*", ">"} {
		if strings.HasPrefix(line, prefix) {
			return false
		}
	}
	// Section labels like "Key Risks:" are structure, not claims.
	if strings.HasSuffix(line, ":") && len(strings.Fields(line)) <= 4 {
		return false
	}
	return true
}

// PruneUncitedLines drops substantive lines with no evidence tag, keeping
// headers, tables, gap acknowledgments, and short connective lines intact.
// Used by strict QA mode to cut unverifiable prose instead of failing the
// run.
func PruneUncitedLines(text string) (pruned string, dropped int) {
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if substantiveProseLine(trimmed) && !evidenceTagRe.MatchString(trimmed) &&
			!evidence.GapAcknowledged(trimmed) {
			dropped++
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n"), dropped
}
