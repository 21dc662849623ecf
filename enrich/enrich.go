// Package enrich gathers structured person attributes from external
// people-data providers and user-supplied resume PDFs. Provider records
// carry a match confidence; downstream identity scoring decides whether a
// record is trustworthy, not this package.
package enrich

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Record is one provider's canonical view of a person.
type Record struct {
	Provider          string  `json:"provider"`
	CanonicalCompany  string  `json:"canonical_company"`
	CanonicalTitle    string  `json:"canonical_title"`
	CanonicalLocation string  `json:"canonical_location"`
	LinkedInURL       string  `json:"linkedin_url"`
	MatchConfidence   float64 `json:"match_confidence"`
}

// Provider is the external people-data boundary.
type Provider interface {
	Name() string
	Lookup(ctx context.Context, name, company string) (Record, error)
}

// FanOut queries all providers concurrently and returns whatever records
// came back, in provider order. A failing provider is logged and skipped;
// enrichment is additive signal and one outage must not sink a run. Only
// context cancellation aborts the group.
func FanOut(ctx context.Context, providers []Provider, name, company string, logger *slog.Logger) []Record {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	records := make([]*Record, len(providers))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for i, p := range providers {
		g.Go(func() error {
			rec, err := p.Lookup(ctx, name, company)
			if err != nil {
				logger.Warn("enrich: provider lookup failed", "provider", p.Name(), "person", name, "error", err)
				return nil
			}
			rec.Provider = p.Name()
			mu.Lock()
			records[i] = &rec
			mu.Unlock()
			return nil
		})
	}
	// Goroutines only return nil; Wait is for completion.
	_ = g.Wait()

	var out []Record
	for _, r := range records {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out
}
