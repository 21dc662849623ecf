package leverage

import (
	"regexp"
	"strings"
)

// Claim is one extractable statement from a gated dossier, scored for
// in-meeting utility.
type Claim struct {
	Text         string   `json:"text"`
	Section      string   `json:"section"`
	Anchors      []string `json:"anchors"`
	Tags         []string `json:"tags"`
	UtilityScore int      `json:"utility_score"`
}

var (
	sectionHeaderRe = regexp.MustCompile(`^###\s+(\d+)\.\s+(.+)`)
	claimTagRe      = regexp.MustCompile(`\[(?:VERIFIED|INFERRED|UNKNOWN|SOURCE|STRATEGIC MODEL)[^\]]*\]`)
	whitespaceRe    = regexp.MustCompile(`\s+`)
)

// Extraction length floors. Shorter fragments carry no usable claim.
const (
	minRawLineLen     = 25
	minCleanedTextLen = 15
)

// ExtractClaims pulls tagged claims out of dossier markdown. Each claim
// keeps its section context, its evidence tag as an anchor, and is scored
// and tagged on extraction.
func ExtractClaims(dossierText string) []Claim {
	var claims []Claim
	section := ""
	for _, line := range strings.Split(dossierText, "\n") {
		trimmed := strings.TrimSpace(line)
		if m := sectionHeaderRe.FindStringSubmatch(trimmed); m != nil {
			section = "Section " + m[1] + ": " + strings.TrimSpace(m[2])
			continue
		}
		if len(trimmed) < minRawLineLen {
			continue
		}
		if strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "|") ||
			strings.HasPrefix(trimmed, "---") || strings.HasPrefix(trimmed, ">") {
			continue
		}
		tag := claimTagRe.FindString(trimmed)
		if tag == "" {
			continue
		}
		cleaned := claimTagRe.ReplaceAllString(trimmed, "")
		cleaned = whitespaceRe.ReplaceAllString(cleaned, " ")
		cleaned = strings.Trim(cleaned, " -–*•")
		if len(cleaned) < minCleanedTextLen {
			continue
		}
		anchors := []string{strings.Trim(tag, "[]")}
		claims = append(claims, Claim{
			Text:         cleaned,
			Section:      section,
			Anchors:      anchors,
			Tags:         ClassifyTags(cleaned + " " + section),
			UtilityScore: UtilityScore(cleaned, anchors, section),
		})
	}
	return claims
}

// TopClaims filters to claims at or above the utility floor, sorted by
// score descending (stable within equal scores), capped at limit.
func TopClaims(claims []Claim, floor, limit int) []Claim {
	var kept []Claim
	for _, c := range claims {
		if c.UtilityScore >= floor {
			kept = append(kept, c)
		}
	}
	sortByUtility(kept)
	if limit > 0 && len(kept) > limit {
		kept = kept[:limit]
	}
	return kept
}

// AppendixClaims keeps the mid-utility claims: at least AppendixThreshold
// but below UtilityFloor, sorted by score descending. Claims below the
// appendix threshold are dropped outright.
func AppendixClaims(claims []Claim) []Claim {
	var kept []Claim
	for _, c := range claims {
		if c.UtilityScore >= AppendixThreshold && c.UtilityScore < UtilityFloor {
			kept = append(kept, c)
		}
	}
	sortByUtility(kept)
	return kept
}

// sortByUtility sorts in place by score descending. Stable insertion sort:
// extraction order breaks ties.
func sortByUtility(claims []Claim) {
	for i := 1; i < len(claims); i++ {
		for j := i; j > 0 && claims[j].UtilityScore > claims[j-1].UtilityScore; j-- {
			claims[j], claims[j-1] = claims[j-1], claims[j]
		}
	}
}
