// Package synthesis is the LLM boundary: it turns an evidence graph into
// dossier prose. Everything that decides whether that prose may be shown
// lives in the gate and qa packages, not here.
package synthesis

import (
	"context"

	"dossier/evidence"
)

// Request is one synthesis job. The numeric policy inputs are passed to
// the model so the prompt can state the tagging contract it must meet;
// enforcement still happens downstream.
type Request struct {
	PersonName        string
	Company           string
	Mode              string
	Graph             evidence.Snapshot
	CoverageThreshold float64
	LockScore         int
}

// Synthesizer produces dossier prose from an evidence graph.
type Synthesizer interface {
	Synthesize(ctx context.Context, req Request) (string, error)
}
