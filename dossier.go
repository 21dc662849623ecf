// Package dossier orchestrates evidence-gated person intelligence runs.
// A run builds an evidence graph from internal and public sources, scores
// how confidently the subject's identity is locked, and only then decides
// whether synthesized prose may be shown. Missing evidence halts the run
// with a work order instead of producing plausible text about possibly the
// wrong person.
package dossier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"dossier/enrich"
	"dossier/gate"
	"dossier/identity"
	"dossier/leverage"
	"dossier/qa"
	"dossier/retrieval"
	"dossier/store"
	"dossier/synthesis"
)

// Engine is the main entry point for the dossier pipeline.
type Engine interface {
	// DeepResearch runs the full pipeline: retrieval sweeps, enrichment,
	// identity lock, fail-closed gating, synthesis, QA, and the executive
	// brief. The run is persisted in every terminal status.
	DeepResearch(ctx context.Context, input RunInput) (*RunResult, error)

	// MeetingPrep builds an internal-evidence-only brief from meeting
	// history and an optional resume PDF. No web access, no gating.
	MeetingPrep(ctx context.Context, input RunInput) (*RunResult, error)

	// Run retrieves a persisted run by ID.
	Run(ctx context.Context, id int64) (*store.Run, error)

	// Store returns the underlying store for diagnostic access.
	Store() *store.Store

	// Close cleanly shuts down the engine.
	Close() error
}

// MeetingNote is one internal interaction record.
type MeetingNote struct {
	Source string `json:"source"`
	Date   string `json:"date"`
	Text   string `json:"text"`
}

// RunInput describes the subject of a run and the internal evidence
// supplied by the caller.
type RunInput struct {
	PersonName   string              `json:"person_name"`
	Company      string              `json:"company,omitempty"`
	Attributes   identity.Attributes `json:"attributes,omitempty"`
	MeetingNotes []MeetingNote       `json:"meeting_notes,omitempty"`
	ResumePDF    string              `json:"resume_pdf,omitempty"`
}

// RunResult is the outcome of one pipeline run. Text holds whatever the
// gates allowed: the gated dossier with its QA report, a halt report, or
// the meeting-prep brief.
type RunResult struct {
	RunID      int64           `json:"run_id"`
	Status     gate.RunStatus  `json:"status"`
	Mode       gate.Mode       `json:"mode,omitempty"`
	ModeReason string          `json:"mode_reason,omitempty"`
	Text       string          `json:"text"`
	LockScore  int             `json:"lock_score"`
	LockStatus string          `json:"lock_status"`
	Coverage   float64         `json:"coverage_pct"`
	QA         *qa.Report      `json:"qa,omitempty"`
	Brief      *leverage.Brief `json:"brief,omitempty"`
}

// Option configures the engine.
type Option func(*engine)

// WithSearcher injects the web-search backend used by deep research.
func WithSearcher(s retrieval.Searcher) Option {
	return func(e *engine) { e.searcher = s }
}

// WithEnricher registers a people-data provider. May be given repeatedly;
// providers fan out concurrently.
func WithEnricher(p enrich.Provider) Option {
	return func(e *engine) { e.enrichers = append(e.enrichers, p) }
}

// WithSynthesizer overrides the default OpenAI-compatible synthesis client.
func WithSynthesizer(s synthesis.Synthesizer) Option {
	return func(e *engine) { e.synth = s }
}

// WithLogger sets the engine logger. A nil logger discards logs.
func WithLogger(l *slog.Logger) Option {
	return func(e *engine) { e.logger = l }
}

// engine is the concrete implementation of Engine.
type engine struct {
	cfg       Config
	store     *store.Store
	searcher  retrieval.Searcher
	enrichers []enrich.Provider
	synth     synthesis.Synthesizer
	logger    *slog.Logger
}

// New creates a dossier engine with the given configuration.
func New(cfg Config, opts ...Option) (Engine, error) {
	s, err := store.New(cfg.resolveDBPath())
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	e := &engine{cfg: cfg, store: s}
	for _, o := range opts {
		o(e)
	}
	if e.synth == nil {
		e.synth = synthesis.NewClient(cfg.Synthesis)
	}
	if e.logger == nil {
		e.logger = slog.New(slog.DiscardHandler)
	}
	return e, nil
}

// Run retrieves a persisted run by ID.
func (e *engine) Run(ctx context.Context, id int64) (*store.Run, error) {
	run, err := e.store.GetRun(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrRunNotFound, id)
		}
		return nil, err
	}
	return run, nil
}

// Store returns the underlying store for diagnostic access.
func (e *engine) Store() *store.Store {
	return e.store
}

// Close shuts down the engine.
func (e *engine) Close() error {
	return e.store.Close()
}

// queryInterval converts the configured pacing to a duration.
func (e *engine) queryInterval() time.Duration {
	return time.Duration(e.cfg.QueryIntervalMS) * time.Millisecond
}
