package gate

import (
	"fmt"
	"regexp"
	"strings"

	"dossier/identity"
)

// Inference tags stripped in constrained mode. With a partial lock only the
// high and medium inferences go; below that, low inferences go too.
var (
	inferredHighMedRe = regexp.MustCompile(`(?i)\[INFERRED[–-][HM]\]`)
	inferredAnyRe     = regexp.MustCompile(`(?i)\[INFERRED[–-][HML]\]`)
)

// FilterProse applies the mode's output policy to synthesized text. Full
// mode passes through untouched. Halted mode passes through as well: halted
// runs carry a failure report, not prose, and filtering it would mangle it.
// Constrained mode strips inference-tagged lines and prepends a banner
// stating the partial lock.
func FilterProse(text string, mode Mode, lockScore int) string {
	if mode != ModeConstrained {
		return text
	}
	strip := inferredAnyRe
	if lockScore >= partialLockScore {
		strip = inferredHighMedRe
	}
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if structuralLine(trimmed) || !strip.MatchString(trimmed) {
			kept = append(kept, line)
		}
	}
	banner := fmt.Sprintf(
		"> **PARTIAL DOSSIER: IDENTITY %s (%d/100)**\n"+
			"> Unverified inferences have been removed. Raise the entity lock score to restore them.\n\n---\n",
		identity.LockLabel(lockScore), lockScore)
	return banner + strings.Join(kept, "\n")
}

// structuralLine reports whether a line is markdown scaffolding that always
// survives filtering.
func structuralLine(line string) bool {
	if line == "" || len(line) <= 20 {
		return true
	}
	for _, prefix := range []string{"#", "|", "---", "*", ">"} {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}
