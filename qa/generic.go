// Package qa holds the deterministic quality gates applied to synthesized
// dossier prose. Every gate is a pure function over text: no I/O, no
// randomness, same input always scores the same.
package qa

import (
	"regexp"
	"strings"
)

// GenericnessPassScore is the maximum genericness score that passes.
const GenericnessPassScore = 20

// evidenceTagRe matches any inline evidence tag, including backtick-wrapped
// variants some synthesizers emit.
var evidenceTagRe = regexp.MustCompile("`?\\[(?:VERIFIED|INFERRED|UNKNOWN|SOURCE)[^\\]]*\\]")

// genericPatterns is the filler-phrase catalog. A sentence matching any of
// these without an evidence tag reads like it was written about nobody in
// particular.
var genericPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:strategic|visionary|thought leader)\b`),
	regexp.MustCompile(`(?i)\b(?:data|results|outcome|metrics)-driven\b`),
	regexp.MustCompile(`(?i)\b(?:passionate about|deeply committed to|focused on delivering)\b`),
	regexp.MustCompile(`(?i)\b(?:transformative|game-changing|cutting-edge|world-class)\b`),
	regexp.MustCompile(`(?i)\bleveraging (?:AI|data|technology) to\b`),
	regexp.MustCompile(`(?i)\bdrives? (?:innovation|growth|results|value)\b`),
	regexp.MustCompile(`(?i)\b(?:human-centered|customer-centric|people-first)\b`),
	regexp.MustCompile(`(?i)\b(?:screens?|looks?|values?) for (?:authenticity|integrity|excellence)\b`),
	regexp.MustCompile(`(?i)\b(?:proven track record|extensive experience|seasoned professional)\b`),
	regexp.MustCompile(`(?i)\b(?:ROI-focused|bottom-line)\b`),
	regexp.MustCompile(`(?i)\blikely (?:data-driven|strategic|analytical|methodical)\b`),
	regexp.MustCompile(`(?i)\bstrong (?:communicator|leader|advocate)\b`),
	regexp.MustCompile(`(?i)\bempowers? (?:teams|people)\b`),
	regexp.MustCompile(`(?i)\bbridges? the gap between\b`),
	regexp.MustCompile(`(?i)\bat the intersection of\b`),
	regexp.MustCompile(`(?i)\b(?:synergies|holistic approach)\b`),
	regexp.MustCompile(`(?i)\b(?:best-in-class|industry-leading|next-gen)\b`),
	regexp.MustCompile(`(?i)\bdigital transformation journey\b`),
}

var sentenceSplitRe = regexp.MustCompile(`[.!?]\s+`)

// GenericnessResult is the outcome of the filler-phrase gate.
type GenericnessResult struct {
	Score          int      `json:"score"`
	TotalSentences int      `json:"total_sentences"`
	FlaggedCount   int      `json:"flagged_count"`
	FlaggedPhrases []string `json:"flagged_phrases"`
	Passes         bool     `json:"passes"`
}

// ScoreGenericness measures what share of sentences lean on filler phrases
// without evidence backing, 0-100 where 0 is fully specific. A sentence is
// flagged at most once no matter how many patterns it trips.
func ScoreGenericness(text string) GenericnessResult {
	total := 0
	flagged := 0
	var phrases []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "|") || strings.HasPrefix(trimmed, "---") {
			continue
		}
		// A tag anywhere on the line exempts its sentences: tags are
		// written after the terminal punctuation they cover.
		lineTagged := evidenceTagRe.MatchString(trimmed)
		for _, sentence := range splitSentences(trimmed) {
			if len(sentence) < 10 {
				continue
			}
			total++
			if lineTagged || evidenceTagRe.MatchString(sentence) {
				continue
			}
			for _, pat := range genericPatterns {
				if m := pat.FindString(sentence); m != "" {
					flagged++
					phrases = append(phrases, m)
					break
				}
			}
		}
	}
	score := 0
	if total > 0 && flagged > 0 {
		score = flagged * 100 / total
		if score > 100 {
			score = 100
		}
	}
	return GenericnessResult{
		Score:          score,
		TotalSentences: total,
		FlaggedCount:   flagged,
		FlaggedPhrases: phrases,
		Passes:         score <= GenericnessPassScore,
	}
}

// splitSentences breaks a line on terminal punctuation followed by
// whitespace, keeping the punctuation with the preceding sentence.
func splitSentences(line string) []string {
	if line == "" {
		return nil
	}
	var sentences []string
	start := 0
	for _, loc := range sentenceSplitRe.FindAllStringIndex(line, -1) {
		// loc[0] is the punctuation mark; keep it.
		sentences = append(sentences, strings.TrimSpace(line[start:loc[0]+1]))
		start = loc[1]
	}
	if rest := strings.TrimSpace(line[start:]); rest != "" {
		sentences = append(sentences, rest)
	}
	return sentences
}
