package dossier

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dossier/evidence"
	"dossier/gate"
	"dossier/store"
)

// staleAfter is how old the newest interaction may be before the brief
// flags the relationship context as stale.
const staleAfter = 90 * 24 * time.Hour

// maxTargetedQuestions caps section 2's question list.
const maxTargetedQuestions = 5

// MeetingPrep builds the internal-evidence-only brief. It never touches
// the web and never gates: the caller supplied all the evidence there is,
// and the brief says plainly what that evidence does not cover.
func (e *engine) MeetingPrep(ctx context.Context, input RunInput) (*RunResult, error) {
	if input.PersonName == "" {
		return nil, ErrPersonNameRequired
	}

	runID, err := e.store.CreateRun(ctx, input.PersonName, input.Company, string(gate.KindMeetingPrep))
	if err != nil {
		return nil, fmt.Errorf("creating run: %w", err)
	}
	e.logger.Info("dossier: meeting prep started",
		"run_id", runID, "person", input.PersonName, "notes", len(input.MeetingNotes))

	g := evidence.NewGraph()
	resume := e.buildInternalEvidence(g, input)

	attrs := input.Attributes
	if attrs.Company == "" {
		attrs.Company = input.Company
	}
	if resume != nil {
		if attrs.Title == "" {
			attrs.Title = resume.Title
		}
		if attrs.Company == "" {
			attrs.Company = resume.Company
		}
	}

	brief := buildMeetingPrepBrief(input.PersonName, attrs.Title, attrs.Company, input.MeetingNotes, resume != nil)

	run := store.Run{
		ID:            runID,
		RunStatus:     string(gate.StatusSucceeded),
		ModeReason:    "Meeting-Prep (internal evidence only)",
		DossierText:   brief,
		GraphSnapshot: marshalJSON(g.Snapshot()),
	}
	if err := e.store.UpdateRun(ctx, run); err != nil {
		return nil, fmt.Errorf("persisting run: %w", err)
	}

	return &RunResult{
		RunID:      runID,
		Status:     gate.StatusSucceeded,
		ModeReason: "Meeting-Prep (internal evidence only)",
		Text:       brief,
	}, nil
}

// actionItemMarkers flag meeting-note lines that carry an open commitment.
var actionItemMarkers = []string{"follow up", "follow-up", "action item", "next step", "agreed to send"}

// buildMeetingPrepBrief renders the four-section internal brief. Tags are
// limited to VERIFIED-MEETING, INFERRED-L, and UNKNOWN: nothing here has
// public corroboration.
func buildMeetingPrepBrief(name, title, company string, notes []MeetingNote, hasResume bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Meeting-Prep Brief: %s\n", name)
	if title != "" || company != "" {
		role := title
		if company != "" {
			if role != "" {
				role += ", "
			}
			role += company
		}
		fmt.Fprintf(&b, "**Role**: %s\n", role)
	} else {
		b.WriteString("**Role**: Unknown [UNKNOWN]\n")
	}
	b.WriteString("**Mode**: Meeting-Prep (internal evidence only)\n\n")

	b.WriteString("## 1. What We Know From Our Interactions\n")
	if len(notes) == 0 {
		b.WriteString("- No meeting or email history available. [UNKNOWN]\n")
	}
	for _, note := range notes {
		date := note.Date
		if date == "" {
			date = "UNKNOWN"
		}
		fmt.Fprintf(&b, "- %s [VERIFIED-MEETING] (%s)\n", clipLine(note.Text), date)
	}
	actionItems := openActionItems(notes)
	b.WriteString("\nOpen action items:\n")
	if len(actionItems) == 0 {
		b.WriteString("- None recorded. [UNKNOWN]\n")
	}
	for _, item := range actionItems {
		fmt.Fprintf(&b, "- %s [INFERRED-L]\n", item)
	}

	b.WriteString("\n## 2. What To Do Next\n")
	b.WriteString("Targeted questions:\n")
	for _, q := range targetedQuestions(title, company, notes, actionItems) {
		fmt.Fprintf(&b, "- %s\n", q)
	}
	b.WriteString("\nPrep checklist:\n")
	if len(notes) > 0 {
		b.WriteString("- [ ] Re-read the latest meeting notes before the call.\n")
	}
	b.WriteString("- [ ] Confirm attendees and agenda.\n")
	b.WriteString("- [ ] Prepare answers for the targeted questions above.\n")

	b.WriteString("\n## 3. Key Risks / Watchouts\n")
	risks := prepRisks(notes, actionItems)
	if len(risks) == 0 {
		b.WriteString("- None identified from internal evidence. [UNKNOWN]\n")
	}
	for _, r := range risks {
		fmt.Fprintf(&b, "- %s\n", r)
	}

	b.WriteString("\n## 4. Missing Intel Worth Fetching\n")
	b.WriteString("- Public speaking and visibility footprint (never swept). [UNKNOWN]\n")
	b.WriteString("- Canonical role and employer confirmation from public sources. [UNKNOWN]\n")
	if !hasResume {
		b.WriteString("- Resume or profile PDF for identity attributes. [UNKNOWN]\n")
	}
	b.WriteString("\nRecommendation: run the deep-research pipeline to gather and gate public evidence before a high-stakes meeting.\n")

	return b.String()
}

// openActionItems pulls commitment-shaped lines out of the meeting notes.
func openActionItems(notes []MeetingNote) []string {
	var items []string
	for _, note := range notes {
		for _, line := range strings.Split(note.Text, "\n") {
			line = strings.TrimSpace(strings.TrimLeft(line, "-* "))
			if line == "" {
				continue
			}
			lower := strings.ToLower(line)
			for _, marker := range actionItemMarkers {
				if strings.Contains(lower, marker) {
					items = append(items, clipLine(line))
					break
				}
			}
		}
	}
	return items
}

// targetedQuestions turns evidence gaps into questions for the meeting.
func targetedQuestions(title, company string, notes []MeetingNote, actionItems []string) []string {
	var qs []string
	if company == "" {
		qs = append(qs, "Which company are they with now, and in what capacity?")
	}
	if title == "" {
		qs = append(qs, "What is their current role and decision scope?")
	}
	if len(notes) == 0 {
		qs = append(qs, "Who in our organization has interacted with them before?")
	}
	if len(actionItems) > 0 {
		qs = append(qs, "Are the open action items from the last interaction resolved?")
	}
	qs = append(qs, "What outcome do they want from this meeting?")
	if len(qs) > maxTargetedQuestions {
		qs = qs[:maxTargetedQuestions]
	}
	return qs
}

// prepRisks derives watchouts from what the internal record does not show.
func prepRisks(notes []MeetingNote, actionItems []string) []string {
	var risks []string
	if len(notes) == 0 {
		risks = append(risks, "No interaction history; relationship context unknown. [UNKNOWN]")
		return risks
	}
	if latest, ok := latestNoteDate(notes); ok && time.Since(latest) > staleAfter {
		risks = append(risks,
			fmt.Sprintf("Last recorded interaction on %s; context may be stale. [INFERRED-L]",
				latest.Format("2006-01-02")))
	}
	if len(actionItems) > 0 {
		risks = append(risks, "Open action items may be overdue. [INFERRED-L]")
	}
	return risks
}

func latestNoteDate(notes []MeetingNote) (time.Time, bool) {
	var latest time.Time
	found := false
	for _, note := range notes {
		t, err := time.Parse("2006-01-02", note.Date)
		if err != nil {
			continue
		}
		if !found || t.After(latest) {
			latest = t
			found = true
		}
	}
	return latest, found
}

// clipLine collapses a note to a single brief bullet.
func clipLine(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	if len(text) > 200 {
		text = text[:200]
	}
	return text
}
