package leverage

import "fmt"

// UtilityFloor is the minimum utility score a claim needs to appear in an
// executive brief. Claims scoring at least AppendixThreshold but below the
// floor survive in the appendix; anything weaker is dropped.
const (
	UtilityFloor      = 70
	AppendixThreshold = 55
)

// maxBriefClaims caps how many claims a brief carries.
const maxBriefClaims = 10

// agendaItems translates the dominant utility tags into agenda entries.
var agendaItems = map[string]string{
	TagBudgetAuthority:  "Map the budget and sign-off chain",
	TagSalesCycle:       "Pin down the evaluation timeline",
	TagAdoptionFriction: "Surface rollout and adoption concerns",
	TagVetoRisk:         "Identify potential blockers and their objections",
	TagSponsorRisk:      "Strengthen the internal champion",
	TagPolitics:         "Understand the stakeholder landscape",
	TagCredibility:      "Establish proof and references",
	TagDifferentiation:  "Sharpen the competitive contrast",
	TagNegotiationLever: "Prepare negotiation positions",
	TagUnknowns:         "Resolve open questions blocking a decision",
}

var genericAgenda = []string{
	"Understand their current priorities",
	"Qualify the decision process",
	"Agree on a concrete next step",
}

// maxAgendaItems and maxRisks cap the respective brief sections.
const (
	maxAgendaItems = 6
	maxRisks       = 5
)

// Brief is the executive meeting brief assembled from a gated dossier.
// Appendix holds the mid-utility claims kept for reference but excluded
// from the brief body.
type Brief struct {
	Title    string   `json:"title"`
	Claims   []Claim  `json:"claims"`
	Appendix []Claim  `json:"appendix"`
	Moves    []Move   `json:"moves"`
	Agenda   []string `json:"agenda"`
	Risks    []string `json:"risks"`
	Grade    Grade    `json:"grade"`
}

// BuildBrief extracts, filters, and assembles the full executive brief for
// a person from gated dossier text. lockScore and coveragePct feed the
// decision grade.
func BuildBrief(dossierText, personName, company string, lockScore int, coveragePct float64) Brief {
	all := ExtractClaims(dossierText)
	top := TopClaims(all, UtilityFloor, maxBriefClaims)
	moves := BuildMoves(top)

	title := fmt.Sprintf("Executive Brief: %s", personName)
	if company != "" {
		title = fmt.Sprintf("Executive Brief: %s (%s)", personName, company)
	}
	return Brief{
		Title:    title,
		Claims:   top,
		Appendix: AppendixClaims(all),
		Moves:    moves,
		Agenda:   buildAgenda(top),
		Risks:    buildRisks(all),
		Grade:    ComputeGrade(top, moves, lockScore, coveragePct),
	}
}

// buildAgenda ranks utility tags by frequency across the kept claims and
// maps the top ones to agenda entries. With no tagged claims it falls back
// to a generic discovery agenda.
func buildAgenda(claims []Claim) []string {
	counts := make(map[string]int)
	for _, c := range claims {
		for _, t := range c.Tags {
			counts[t]++
		}
	}
	var agenda []string
	// tagOrder breaks frequency ties deterministically.
	for len(agenda) < maxAgendaItems {
		best, bestCount := "", 0
		for _, tag := range tagOrder {
			if counts[tag] > bestCount {
				best, bestCount = tag, counts[tag]
			}
		}
		if best == "" {
			break
		}
		delete(counts, best)
		if item, ok := agendaItems[best]; ok {
			agenda = append(agenda, item)
		}
	}
	if len(agenda) == 0 {
		agenda = append(agenda, genericAgenda...)
	}
	return agenda
}

// buildRisks surfaces blocker, champion, and adoption claims as watchouts,
// each cited by its evidence anchor.
func buildRisks(claims []Claim) []string {
	var risks []string
	for _, c := range claims {
		if len(risks) >= maxRisks {
			break
		}
		for _, t := range c.Tags {
			if t == TagVetoRisk || t == TagSponsorRisk || t == TagAdoptionFriction {
				text := c.Text
				if len(text) > 150 {
					text = text[:150]
				}
				ref := "UNKNOWN"
				if len(c.Anchors) > 0 {
					ref = c.Anchors[0]
				}
				risks = append(risks, fmt.Sprintf("%s [%s]", text, ref))
				break
			}
		}
	}
	if len(risks) == 0 {
		risks = append(risks, "No specific risks identified from available evidence [UNKNOWN]")
	}
	return risks
}
