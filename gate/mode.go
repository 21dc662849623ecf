// Package gate decides whether a dossier run may proceed, in what mode, and
// whether synthesized output may be shown. It fails closed: when evidence is
// missing the pipeline halts with an actionable report instead of emitting
// plausible prose about possibly the wrong person.
package gate

import (
	"fmt"
	"strings"

	"dossier/identity"
)

// PipelineKind selects which pipeline a run executes. Kept separate from
// RunStatus: earlier revisions overloaded one enumeration with both the
// pipeline selector and the lifecycle state, and consumers matched on the
// literal strings. Both fields still appear in persisted rows.
type PipelineKind string

const (
	KindMeetingPrep  PipelineKind = "meeting_prep"
	KindDeepResearch PipelineKind = "deep_research"
)

// RunStatus is the lifecycle state of a run.
type RunStatus string

const (
	StatusRunning   RunStatus = "RUNNING"
	StatusSucceeded RunStatus = "SUCCEEDED"
	StatusFailed    RunStatus = "FAILED"
	StatusHalted    RunStatus = "HALTED"
)

// Mode is the dossier output mode decided before synthesis.
type Mode string

const (
	ModeFull        Mode = "full"
	ModeConstrained Mode = "constrained"
	ModeHalted      Mode = "halted"
)

// Lock score thresholds for mode decisions.
const (
	fullLockScore    = 70
	partialLockScore = 50
)

// Decision is the pre-synthesis mode outcome.
type Decision struct {
	Mode   Mode   `json:"mode"`
	Reason string `json:"reason"`
}

// DecideMode picks the dossier mode before any synthesis happens.
// visibilityExecuted reports whether the visibility battery ran at all;
// batteryQueries is listed in the halt reason so the operator can run the
// exact missing sweep.
func DecideMode(lockScore int, visibilityExecuted, hasPublicResults bool, batteryQueries []string) Decision {
	if !visibilityExecuted {
		reason := "FAIL: VISIBILITY SWEEP NOT EXECUTED. Required query battery:\n"
		for _, q := range batteryQueries {
			reason += fmt.Sprintf("  - %s\n", q)
		}
		return Decision{Mode: ModeHalted, Reason: strings.TrimRight(reason, "\n")}
	}
	if !hasPublicResults {
		return Decision{Mode: ModeHalted, Reason: "FAIL: NO PUBLIC RETRIEVAL RESULTS. Cannot verify identity against the public record."}
	}
	switch {
	case lockScore >= fullLockScore:
		return Decision{
			Mode:   ModeFull,
			Reason: fmt.Sprintf("Entity LOCKED (%d/100): full dossier authorized.", lockScore),
		}
	case lockScore >= partialLockScore:
		return Decision{
			Mode: ModeConstrained,
			Reason: fmt.Sprintf("PARTIAL DOSSIER: IDENTITY NOT LOCKED (%d/100). "+
				"Verified facts only; medium and high inferences suppressed.", lockScore),
		}
	}
	return Decision{
		Mode: ModeHalted,
		Reason: fmt.Sprintf("FAIL: IDENTITY NOT LOCKED (%d/100, %s). "+
			"Too little disambiguation signal to write about one specific person.",
			lockScore, identity.LockLabel(lockScore)),
	}
}
