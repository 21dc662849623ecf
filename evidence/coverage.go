package evidence

import (
	"regexp"
	"strings"
)

// DefaultCoverageThreshold is the minimum evidence coverage for a full
// dossier; StrictCoverageThreshold applies when strict QA is requested.
const (
	DefaultCoverageThreshold = 85.0
	StrictCoverageThreshold  = 95.0
)

// coveredTags are the claim tags that count as evidence-backed even when
// the claim carries no node linkage. Underscore spellings are accepted
// because upstream synthesizers are inconsistent about them.
var coveredTags = map[string]struct{}{
	"VERIFIED-MEETING": {},
	"VERIFIED-PUBLIC":  {},
	"VERIFIED-PDF":     {},
	"VERIFIED_MEETING": {},
	"VERIFIED_PUBLIC":  {},
	"VERIFIED_PDF":     {},
	"INFERRED-H":       {},
	"INFERRED-M":       {},
	"INFERRED-L":       {},
	"INFERRED_H":       {},
	"INFERRED_M":       {},
	"INFERRED_L":       {},
	"INFERRED-HIGH":    {},
	"INFERRED-MEDIUM":  {},
	"INFERRED-LOW":     {},
}

// evidenceTagRe matches an inline evidence tag in prose. Both the hyphen
// and en-dash spellings occur in synthesized text.
var evidenceTagRe = regexp.MustCompile(`(?i)\[(?:VERIFIED[–-](?:MEETING|PUBLIC|PDF)|INFERRED[–-][HML]|UNKNOWN)\]`)

// gapPhrases mark lines that explicitly acknowledge missing evidence.
var gapPhrases = []string{
	"no evidence available",
	"not executed",
	"no data found",
	"not available",
}

// GapAcknowledged reports whether a line explicitly acknowledges missing
// evidence. An honest "nothing found" is coverage, not a gap.
func GapAcknowledged(line string) bool {
	lower := strings.ToLower(line)
	for _, phrase := range gapPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// ComputeCoverage returns the percentage of claims that are evidence-backed:
// the claim links at least one node, or carries a recognized tag. Returns 0
// when there are no claims.
func ComputeCoverage(claims []Claim) float64 {
	if len(claims) == 0 {
		return 0.0
	}
	covered := 0
	for _, c := range claims {
		if len(c.EvidenceIDs) > 0 {
			covered++
			continue
		}
		if _, ok := coveredTags[strings.ToUpper(c.Tag)]; ok {
			covered++
		}
	}
	return float64(covered) / float64(len(claims)) * 100.0
}

// ComputeCoverageFromText scans rendered prose and returns the percentage of
// substantive lines carrying an inline evidence tag or an explicit
// gap acknowledgment. Returns 100 when no line is substantive.
func ComputeCoverageFromText(text string) float64 {
	substantive := 0
	covered := 0
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if !substantiveLine(trimmed) {
			continue
		}
		substantive++
		if evidenceTagRe.MatchString(trimmed) || GapAcknowledged(trimmed) {
			covered++
		}
	}
	if substantive == 0 {
		return 100.0
	}
	return float64(covered) / float64(substantive) * 100.0
}

// substantiveLine reports whether a trimmed line counts toward coverage:
// long enough to carry a factual claim and not markdown structure.
func substantiveLine(line string) bool {
	if len(line) <= 20 {
		return false
	}
	if strings.HasPrefix(line, "#") || strings.HasPrefix(line, "---") || strings.HasPrefix(line, "|") {
		return false
	}
	return true
}
