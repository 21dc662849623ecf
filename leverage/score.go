// Package leverage turns a gated dossier into meeting-ready material: it
// extracts tagged claims, scores how much each one changes what a seller
// would actually do in the room, and assembles moves, an agenda, and a
// decision grade. Everything here is deterministic text scoring.
package leverage

import (
	"regexp"
	"strings"
)

// anchorWeights rank evidence anchor types by trustworthiness.
var anchorWeights = map[string]int{
	"VERIFIED-MEETING": 9,
	"VERIFIED-PDF":     8,
	"VERIFIED-PUBLIC":  7,
	"INFERRED-H":       5,
	"INFERRED-M":       3,
	"INFERRED-L":       1,
	"UNKNOWN":          0,
}

// Component caps. Evidence, specificity, and behavior impact add up; the
// generic penalty subtracts; the total clamps to [0,100].
const (
	anchorSumCap      = 15
	multiAnchorBonus  = 5
	multiAnchorCap    = 2
	evidenceCap       = 25
	digitPoints       = 5
	digitCap          = 12
	properNounPoints  = 3
	properNounCap     = 6
	rolePoints        = 4
	companyPoints     = 3
	specificityCap    = 25
	behaviorSetPoints = 5
	behaviorCap       = 35
	penaltyPoints     = 5
	penaltyCap        = 15
)

var (
	digitRe      = regexp.MustCompile(`\d[\d,.%$€£]+`)
	properNounRe = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)+\b`)
	roleRe       = regexp.MustCompile(`(?i)\b(?:CEO|CTO|CFO|COO|VP|SVP|EVP|Director|Manager|Head of|Partner|Founder)\b`)
	companyRe    = regexp.MustCompile(`\b\w+(?:Inc|Corp|LLC|Ltd|Co)\b|\b[A-Z]{2,}\b`)
)

// behaviorSets each mark one kind of in-meeting consequence. One hit per
// set counts; a claim touching many sets changes more behavior.
var behaviorSets = [][]string{
	{"decision", "decides", "approve", "reject", "evaluate"},
	{"accountab", "responsible for", "measured on", "kpi", "okr", "quota"},
	{"risk", "threat", "pressure", "mandate", "deadline"},
	{"next step", "action", "priority", "initiative", "blocker"},
	{"budget", "revenue", "headcount", "p&l", "margin"},
	{"reports to", "reporting line", "hierarchy", "authority"},
	{"veto", "champion", "sponsor", "gatekeeper"},
}

// fillerPatterns penalize claims that sound impressive and commit to
// nothing. A numeric specific buys back one hit.
var fillerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:strategic|visionary|thought leader)\b`),
	regexp.MustCompile(`(?i)\b(?:data|results|outcome|metrics)-driven\b`),
	regexp.MustCompile(`(?i)\bpassionate about\b`),
	regexp.MustCompile(`(?i)\b(?:transformative|game-changing|cutting-edge|world-class)\b`),
	regexp.MustCompile(`(?i)\bdrives? (?:innovation|growth|results|value)\b`),
	regexp.MustCompile(`(?i)\b(?:human-centered|customer-centric|people-first)\b`),
	regexp.MustCompile(`(?i)\b(?:proven track record|extensive experience|seasoned professional)\b`),
	regexp.MustCompile(`(?i)\bstrong (?:communicator|leader|advocate)\b`),
	regexp.MustCompile(`(?i)\bempowers? (?:teams|people)\b`),
	regexp.MustCompile(`(?i)\bbridges? the gap between\b`),
	regexp.MustCompile(`(?i)\bat the intersection of\b`),
	regexp.MustCompile(`(?i)\b(?:synergies|holistic approach)\b`),
	regexp.MustCompile(`(?i)\b(?:best-in-class|industry-leading|next-gen)\b`),
	regexp.MustCompile(`(?i)\bdeeply committed to\b`),
	regexp.MustCompile(`(?i)\bfocused on delivering\b`),
	regexp.MustCompile(`(?i)\bdigital transformation journey\b`),
	regexp.MustCompile(`(?i)\bwell-positioned to\b`),
}

// UtilityScore rates how much a claim changes seller behavior in the
// meeting, 0-100. Behavior impact reads the claim in its section context;
// specificity and the generic penalty read the claim alone.
func UtilityScore(claimText string, anchors []string, sectionContext string) int {
	fullText := claimText
	if sectionContext != "" {
		fullText = claimText + " " + sectionContext
	}
	score := evidenceStrength(anchors) +
		specificity(claimText) +
		behaviorImpact(fullText) -
		genericPenalty(claimText)
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func evidenceStrength(anchors []string) int {
	sum := 0
	for _, a := range anchors {
		sum += anchorWeight(a)
	}
	if sum > anchorSumCap {
		sum = anchorSumCap
	}
	if len(anchors) > 1 {
		extra := len(anchors) - 1
		if extra > multiAnchorCap {
			extra = multiAnchorCap
		}
		sum += extra * multiAnchorBonus
	}
	if sum > evidenceCap {
		sum = evidenceCap
	}
	return sum
}

// anchorWeight maps a free-text anchor to the best matching weight. Anchors
// arrive with brackets, en-dashes, or long spellings attached.
func anchorWeight(anchor string) int {
	norm := strings.ToUpper(anchor)
	norm = strings.NewReplacer("–", "-", "_", "-", "[", "", "]", "").Replace(norm)
	best := 0
	for key, w := range anchorWeights {
		if strings.Contains(norm, key) && w > best {
			best = w
		}
	}
	return best
}

func specificity(text string) int {
	score := 0
	if n := len(digitRe.FindAllString(text, -1)) * digitPoints; n > 0 {
		if n > digitCap {
			n = digitCap
		}
		score += n
	}
	if n := len(properNounRe.FindAllString(text, -1)) * properNounPoints; n > 0 {
		if n > properNounCap {
			n = properNounCap
		}
		score += n
	}
	if roleRe.MatchString(text) {
		score += rolePoints
	}
	if companyRe.MatchString(text) {
		score += companyPoints
	}
	if score > specificityCap {
		score = specificityCap
	}
	return score
}

func behaviorImpact(text string) int {
	lower := strings.ToLower(text)
	score := 0
	for _, set := range behaviorSets {
		for _, kw := range set {
			if strings.Contains(lower, kw) {
				score += behaviorSetPoints
				break
			}
		}
	}
	if score > behaviorCap {
		score = behaviorCap
	}
	return score
}

func genericPenalty(text string) int {
	hits := 0
	for _, pat := range fillerPatterns {
		if pat.MatchString(text) {
			hits++
		}
	}
	if hits > 0 && digitRe.MatchString(text) {
		hits--
	}
	penalty := hits * penaltyPoints
	if penalty > penaltyCap {
		penalty = penaltyCap
	}
	return penalty
}
