package leverage

import (
	"fmt"
	"strings"
)

// Move types, in the order a brief presents them.
const (
	MoveOpener = "opener"
	MoveProbe  = "probe"
	MoveProof  = "proof"
	MoveWedge  = "wedge"
	MoveClose  = "close"
	MoveAvoid  = "avoid"
)

// Sentinel evidence refs for moves not backed by a specific claim.
const (
	RefInsufficientEvidence = "INSUFFICIENT_EVIDENCE"
	RefDiscovery            = "DISCOVERY"
	RefGeneric              = "GENERIC"
)

// Move is one scripted meeting action tied to its evidence.
type Move struct {
	Type   string   `json:"type"`
	Script string   `json:"script"`
	Refs   []string `json:"refs"`
	Risk   string   `json:"risk"`
}

// probeTemplates pair a utility tag with the question that converts it into
// information. Order encodes priority: budget first, differentiation last.
var probeTemplates = []struct {
	tag    string
	script string
}{
	{TagBudgetAuthority, "Who besides you needs to sign off on a decision like this, and what do they need to see?"},
	{TagAdoptionFriction, "When you rolled out your last major tool change, what slowed the team down the most?"},
	{TagSalesCycle, "What does your evaluation timeline look like, and what could compress or stretch it?"},
	{TagVetoRisk, "Is there anyone who would push back hard on this, and what is their concern?"},
	{TagPolitics, "How do the stakeholders on this line up, and where do their priorities differ?"},
	{TagSponsorRisk, "If you championed this internally, what would make it easy or hard for you?"},
	{TagCredibility, "What would convince your team this works, a reference, a pilot, or something else?"},
	{TagDifferentiation, "What separates the options you are comparing right now, in your own words?"},
}

var genericProbes = []string{
	"What is the most important problem on your plate this quarter?",
	"How are decisions like this one usually made inside your organization?",
	"What would have to be true for this to be a clear win for you?",
}

// Move count targets.
const (
	probeCount = 3
	proofCount = 2
	avoidCount = 2
)

// BuildMoves assembles the ten-move meeting plan from scored claims:
// one opener, three probes, two proofs, one wedge, one close, two avoids.
// Every move carries at least one evidence ref; moves with no claim behind
// them say so explicitly via a sentinel ref.
func BuildMoves(claims []Claim) []Move {
	var moves []Move
	moves = append(moves, buildOpener(claims))
	moves = append(moves, buildProbes(claims)...)
	moves = append(moves, buildProofs(claims)...)
	moves = append(moves, buildWedge(claims))
	moves = append(moves, buildClose(claims))
	moves = append(moves, buildAvoids(claims)...)
	return moves
}

func buildOpener(claims []Claim) Move {
	if len(claims) > 0 {
		top := claims[0]
		return Move{
			Type:   MoveOpener,
			Script: fmt.Sprintf("I noticed your focus on %s. How is that affecting your priorities this quarter?", extractTopic(top.Text)),
			Refs:   top.Anchors,
			Risk:   "low",
		}
	}
	return Move{
		Type:   MoveOpener,
		Script: "Before we dive in, what prompted you to take this meeting now?",
		Refs:   []string{RefInsufficientEvidence},
		Risk:   "low",
	}
}

// buildProbes walks claims in score order and spends each claim's highest
// priority unused tag on a probe, so the best claims pick their questions
// first.
func buildProbes(claims []Claim) []Move {
	var probes []Move
	used := make(map[string]bool)
	for _, c := range claims {
		if len(probes) >= probeCount {
			break
		}
		for _, tmpl := range probeTemplates {
			if used[tmpl.tag] || !hasTag(c, tmpl.tag) {
				continue
			}
			used[tmpl.tag] = true
			probes = append(probes, Move{
				Type:   MoveProbe,
				Script: tmpl.script,
				Refs:   c.Anchors,
				Risk:   "low",
			})
			break
		}
	}
	for i := 0; len(probes) < probeCount && i < len(genericProbes); i++ {
		probes = append(probes, Move{
			Type:   MoveProbe,
			Script: genericProbes[i],
			Refs:   fallbackRefs(claims, RefDiscovery),
			Risk:   "low",
		})
	}
	return probes
}

// buildProofs prefers claims with trust or competitive signal; with none,
// any claim serves, and generic offers fill the rest.
func buildProofs(claims []Claim) []Move {
	source := claimsTaggedAny(claims, TagCredibility, TagDifferentiation)
	if len(source) == 0 {
		source = claims
	}
	var proofs []Move
	for _, c := range source {
		if len(proofs) >= proofCount {
			break
		}
		proofs = append(proofs, Move{
			Type:   MoveProof,
			Script: fmt.Sprintf("Bring material that speaks directly to %s; proof lands when it mirrors their exact pressure.", extractTopic(c.Text)),
			Refs:   c.Anchors,
			Risk:   "low",
		})
	}
	for len(proofs) < proofCount {
		proofs = append(proofs, Move{
			Type:   MoveProof,
			Script: "Offer a reference from a comparable organization facing similar dynamics.",
			Refs:   fallbackRefs(claims, RefGeneric),
			Risk:   "low",
		})
	}
	return proofs
}

func buildWedge(claims []Claim) Move {
	if tension := claimsTaggedAny(claims, TagVetoRisk, TagAdoptionFriction, TagPolitics); len(tension) > 0 {
		c := tension[0]
		return Move{
			Type:   MoveWedge,
			Script: fmt.Sprintf("Stress-test %s: what happens if this goes unaddressed next quarter?", extractTopic(c.Text)),
			Refs:   c.Anchors,
			Risk:   "medium",
		}
	}
	return Move{
		Type:   MoveWedge,
		Script: "Ask what happens if they stay on the current path for another year.",
		Refs:   fallbackRefs(claims, RefDiscovery),
		Risk:   "medium",
	}
}

func buildClose(claims []Claim) Move {
	if len(claims) > 0 {
		top := claims[0]
		return Move{
			Type:   MoveClose,
			Script: fmt.Sprintf("Anchor the next step to %s: propose a concrete follow-up with a date.", extractTopic(top.Text)),
			Refs:   top.Anchors,
			Risk:   "low",
		}
	}
	return Move{
		Type:   MoveClose,
		Script: "Close by agreeing on the single next step and who owns it.",
		Refs:   []string{RefDiscovery},
		Risk:   "low",
	}
}

// buildAvoids turns politically sensitive claims into landmines to step
// around; generic cautions fill the count when none exist.
func buildAvoids(claims []Claim) []Move {
	var avoids []Move
	for _, c := range claimsTaggedAny(claims, TagVetoRisk, TagPolitics) {
		if len(avoids) >= avoidCount {
			break
		}
		avoids = append(avoids, Move{
			Type:   MoveAvoid,
			Script: fmt.Sprintf("Do not challenge their current approach to %s directly; let them frame the problem first.", extractTopic(c.Text)),
			Refs:   c.Anchors,
			Risk:   "high",
		})
	}
	for len(avoids) < avoidCount {
		avoids = append(avoids, Move{
			Type:   MoveAvoid,
			Script: "Avoid assuming their decision process or timeline without confirming first.",
			Refs:   fallbackRefs(claims, RefGeneric),
			Risk:   "low",
		})
	}
	return avoids
}

func hasTag(c Claim, tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// claimsTaggedAny keeps claims carrying any of the given tags, in input
// order.
func claimsTaggedAny(claims []Claim, tags ...string) []Claim {
	var out []Claim
	for _, c := range claims {
		for _, tag := range tags {
			if hasTag(c, tag) {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// fallbackRefs ties a generic move to the strongest claim's anchors, or the
// sentinel when there are no claims at all.
func fallbackRefs(claims []Claim, sentinel string) []string {
	if len(claims) > 0 {
		return claims[0].Anchors
	}
	return []string{sentinel}
}

// extractTopic lowercases the first eight words of a claim, dropping a
// trailing period and marking truncation.
func extractTopic(text string) string {
	words := strings.Fields(text)
	if len(words) <= 8 {
		return strings.TrimRight(strings.ToLower(strings.Join(words, " ")), ".")
	}
	return strings.TrimRight(strings.ToLower(strings.Join(words[:8], " ")), ".") + "..."
}
