package leverage

import "regexp"

// Utility tag names.
const (
	TagSponsorRisk      = "sponsor_risk"
	TagVetoRisk         = "veto_risk"
	TagSalesCycle       = "sales_cycle"
	TagAdoptionFriction = "adoption_friction"
	TagCredibility      = "credibility"
	TagBudgetAuthority  = "budget_authority"
	TagPolitics         = "politics"
	TagDifferentiation  = "differentiation"
	TagNegotiationLever = "negotiation_lever"
	TagUnknowns         = "unknowns_to_resolve"
)

// tagTriggers maps each utility tag to its trigger expression. tagOrder
// fixes iteration order so tagging stays deterministic.
var tagTriggers = map[string]*regexp.Regexp{
	TagSponsorRisk:      regexp.MustCompile(`(?i)sponsor|champion|advocate|internal ally`),
	TagVetoRisk:         regexp.MustCompile(`(?i)veto|block|gatekeep|resist|pushback|skeptic`),
	TagSalesCycle:       regexp.MustCompile(`(?i)timeline|urgency|deadline|procurement|RFP|evaluation|pilot|POC`),
	TagAdoptionFriction: regexp.MustCompile(`(?i)adoption|change management|resistance|rollout|training|onboard`),
	TagCredibility:      regexp.MustCompile(`(?i)credibility|trust|reputation|track record|reference|testimonial`),
	TagBudgetAuthority:  regexp.MustCompile(`(?i)budget|spend|sign off|procurement|P&L|cost center|allocation`),
	TagPolitics:         regexp.MustCompile(`(?i)politic|faction|power|stakeholder|alignment|coalition|territory`),
	TagDifferentiation:  regexp.MustCompile(`(?i)differentiat|unique|competitive advantage|moat|edge|distinct`),
	TagNegotiationLever: regexp.MustCompile(`(?i)negotiat|lever|concession|pricing|terms|discount|trade-off`),
	TagUnknowns:         regexp.MustCompile(`(?i)unknown|unclear|gap|unverified|TBD|open question`),
}

var tagOrder = []string{
	TagSponsorRisk,
	TagVetoRisk,
	TagSalesCycle,
	TagAdoptionFriction,
	TagCredibility,
	TagBudgetAuthority,
	TagPolitics,
	TagDifferentiation,
	TagNegotiationLever,
	TagUnknowns,
}

// ClassifyTags returns every utility tag whose trigger fires on the text,
// in fixed order.
func ClassifyTags(text string) []string {
	var tags []string
	for _, tag := range tagOrder {
		if tagTriggers[tag].MatchString(text) {
			tags = append(tags, tag)
		}
	}
	return tags
}
