package qa

import (
	"regexp"
	"strings"
)

// inferredHighRe matches the high-confidence inference tag, hyphen or
// en-dash, short or long spelling.
var inferredHighRe = regexp.MustCompile(`(?i)\[INFERRED[–-]H(?:IGH)?\]`)

// upstreamMarkers are the phrasings that tie an inference back to its
// evidence. A high-confidence inference that names no upstream is
// indistinguishable from a guess.
var upstreamMarkers = []string{
	"because",
	"based on",
	"signals",
	"evidence",
	"confirmed by",
	"per the",
	"according to",
	"suggests",
	"derived from",
}

// InferredHighResult is the outcome of the inference-audit gate.
type InferredHighResult struct {
	TotalLines int      `json:"total_lines"`
	Violations []string `json:"violations"`
	Passes     bool     `json:"passes"`
}

// AuditInferredHigh checks that every INFERRED-H line states what it was
// inferred from. Passes only with zero violations.
func AuditInferredHigh(text string) InferredHighResult {
	res := InferredHighResult{}
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if !inferredHighRe.MatchString(trimmed) {
			continue
		}
		res.TotalLines++
		lower := strings.ToLower(trimmed)
		grounded := false
		for _, marker := range upstreamMarkers {
			if strings.Contains(lower, marker) {
				grounded = true
				break
			}
		}
		if !grounded {
			res.Violations = append(res.Violations, trimmed)
		}
	}
	res.Passes = len(res.Violations) == 0
	return res
}
