package qa

import "strings"

// Fact is one field/value assertion attributed to a source, gathered from
// enrichment providers, resume parsing, and web results.
type Fact struct {
	Field  string `json:"field"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// Contradiction is a pair of same-field facts that disagree.
type Contradiction struct {
	Field    string `json:"field"`
	ValueA   string `json:"value_a"`
	SourceA  string `json:"source_a"`
	ValueB   string `json:"value_b"`
	SourceB  string `json:"source_b"`
	Severity string `json:"severity"`
}

// highSeverityFields are the fields where disagreement most likely means
// two different people were conflated.
var highSeverityFields = map[string]bool{
	"title":   true,
	"company": true,
	"role":    true,
}

// FindContradictions compares all same-field fact pairs. Values that are
// equal ignoring case, or where one contains the other, agree; empty values
// are skipped.
func FindContradictions(facts []Fact) []Contradiction {
	byField := make(map[string][]Fact)
	var order []string
	for _, f := range facts {
		if _, seen := byField[f.Field]; !seen {
			order = append(order, f.Field)
		}
		byField[f.Field] = append(byField[f.Field], f)
	}
	var out []Contradiction
	for _, field := range order {
		group := byField[field]
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				a, b := group[i], group[j]
				if a.Value == "" || b.Value == "" {
					continue
				}
				la, lb := strings.ToLower(a.Value), strings.ToLower(b.Value)
				if la == lb || strings.Contains(la, lb) || strings.Contains(lb, la) {
					continue
				}
				severity := "medium"
				if highSeverityFields[strings.ToLower(field)] {
					severity = "high"
				}
				out = append(out, Contradiction{
					Field:    field,
					ValueA:   a.Value,
					SourceA:  a.Source,
					ValueB:   b.Value,
					SourceB:  b.Source,
					Severity: severity,
				})
			}
		}
	}
	return out
}
