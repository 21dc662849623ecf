package gate

import (
	"fmt"
	"strings"

	"dossier/evidence"
	"dossier/identity"
)

// FailureState is everything the halt report summarizes.
type FailureState struct {
	PersonName           string
	ModeReason           string
	LockScore            int
	LockEvidence         []identity.Evidence
	VisibilityConfidence int
	NodeCount            int
	Ledger               []evidence.LedgerRow
	BatteryQueries       []string
}

// BuildFailureReport renders the text persisted and shown in place of a
// dossier when the pipeline halts. It states exactly where the run stands
// and which actions raise which scores, so a halt is a work order rather
// than a dead end.
func BuildFailureReport(st FailureState) string {
	var b strings.Builder
	rule := strings.Repeat("=", 60)
	b.WriteString(rule + "\n")
	b.WriteString("DOSSIER GENERATION HALTED: FAIL-CLOSED GATES\n")
	b.WriteString(rule + "\n\n")
	b.WriteString(st.ModeReason + "\n\n")

	b.WriteString("CURRENT STATE\n")
	fmt.Fprintf(&b, "  Entity Lock: %d/100 (%s)\n", st.LockScore, identity.LockLabel(st.LockScore))
	fmt.Fprintf(&b, "  Visibility Confidence: %d/100\n", st.VisibilityConfidence)
	fmt.Fprintf(&b, "  Evidence Nodes: %d\n", st.NodeCount)
	fmt.Fprintf(&b, "  Retrieval Ledger Rows: %d\n\n", len(st.Ledger))

	if len(st.Ledger) > 0 {
		b.WriteString("RETRIEVAL LEDGER\n")
		for _, row := range st.Ledger {
			fmt.Fprintf(&b, "  %s: [%s] %s -> %d result(s)\n", row.QueryID, row.Intent, row.Query, row.ResultCount)
		}
		b.WriteString("\n")
	}

	b.WriteString("WHAT TO DO NEXT\n")
	hasVisibility := false
	for _, row := range st.Ledger {
		if row.Intent == evidence.IntentVisibility {
			hasVisibility = true
			break
		}
	}
	if !hasVisibility && len(st.BatteryQueries) > 0 {
		b.WriteString("  Run the visibility battery:\n")
		for _, q := range st.BatteryQueries {
			fmt.Fprintf(&b, "    - %s\n", q)
		}
	}
	b.WriteString("  Raise the entity lock score:\n")
	b.WriteString("    +10pts: provide a LinkedIn URL (unverified)\n")
	b.WriteString("    +30pts: LinkedIn profile verified via retrieval (replaces +10)\n")
	b.WriteString("    +20pts: meeting or email history with the person\n")
	b.WriteString("    +20pts: employer confirmed by an independent source\n")
	b.WriteString("    +20pts: three or more independent domains agree\n")
	b.WriteString("    +10pts: title confirmed by an independent source\n")
	b.WriteString("    +10pts: location confirmed by an independent source\n\n")

	b.WriteString("WHAT WILL CHANGE AFTER FIX\n")
	fmt.Fprintf(&b, "  At 50+ points a constrained dossier (verified facts only) unlocks.\n")
	fmt.Fprintf(&b, "  At 70+ points the full dossier, inferences included, unlocks.\n")
	return b.String()
}
