package qa

import "strings"

// PersonLevelPassPct is the minimum share of substantive lines that must be
// about the person rather than their company.
const PersonLevelPassPct = 60.0

var pronouns = map[string]bool{
	"he": true, "she": true, "his": true, "her": true,
	"their": true, "they": true, "him": true,
}

// companyVocab marks lines that read as company analysis. A line with both
// person and company signal counts as person.
var companyVocab = []string{
	"company", "organization", "corporate", "firm", "business",
	"industry", "market", "enterprise", "sector", "workforce",
	"headquarters", "revenue growth", "product line",
}

// PersonLevelResult is the outcome of the person-vs-company focus gate.
type PersonLevelResult struct {
	PersonPct    float64  `json:"person_pct"`
	TotalLines   int      `json:"total_lines"`
	PersonLines  int      `json:"person_lines"`
	CompanyLines []string `json:"company_lines"`
	Passes       bool     `json:"passes"`
}

// CheckPersonLevel measures whether the dossier talks about the person or
// drifts into company analysis. Lines mentioning a name fragment or a
// personal pronoun are person-level; lines with only company vocabulary are
// not; ambiguous lines count as person-level. Empty text passes at 100.
func CheckPersonLevel(text, personName string) PersonLevelResult {
	res := PersonLevelResult{}
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if len(trimmed) <= 20 || strings.HasPrefix(trimmed, "#") ||
			strings.HasPrefix(trimmed, "|") || strings.HasPrefix(trimmed, "---") {
			continue
		}
		res.TotalLines++
		if lineIsPersonLevel(trimmed, personName) {
			res.PersonLines++
		} else {
			res.CompanyLines = append(res.CompanyLines, trimmed)
		}
	}
	if res.TotalLines == 0 {
		res.PersonPct = 100.0
	} else {
		res.PersonPct = float64(res.PersonLines) / float64(res.TotalLines) * 100.0
	}
	res.Passes = res.PersonPct >= PersonLevelPassPct
	return res
}

func lineIsPersonLevel(line, personName string) bool {
	if mentionsPerson(line, personName) {
		return true
	}
	lower := strings.ToLower(line)
	for _, word := range companyVocab {
		if strings.Contains(lower, word) {
			return false
		}
	}
	// Ambiguous lines get the benefit of the doubt.
	return true
}

// mentionsPerson reports whether the line references the person by any name
// fragment or by pronoun.
func mentionsPerson(line, personName string) bool {
	lower := strings.ToLower(line)
	for _, frag := range strings.Fields(strings.ToLower(personName)) {
		if frag != "" && strings.Contains(lower, frag) {
			return true
		}
	}
	for _, word := range strings.Fields(lower) {
		word = strings.Trim(word, ".,;:!?()[]\"'")
		if pronouns[word] {
			return true
		}
	}
	return false
}
