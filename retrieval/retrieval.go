// Package retrieval runs the web-search sweeps that feed the evidence
// graph. The search backend is an injected collaborator; this package owns
// query construction, pacing, and the rule that every attempted query
// writes a ledger row, errors and empty results included.
package retrieval

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"dossier/evidence"
)

// Searcher is the external web-search boundary.
type Searcher interface {
	Search(ctx context.Context, query string, num int) ([]evidence.SearchResult, error)
}

// resultsPerQuery is how many results each sweep query requests.
const resultsPerQuery = 10

// defaultQueryInterval paces outbound queries. Search APIs meter per
// second; one query each 300ms stays under every tier we have used.
const defaultQueryInterval = 300 * time.Millisecond

// Sweeper executes query batteries against a Searcher with pacing.
type Sweeper struct {
	searcher Searcher
	limiter  *rate.Limiter
	logger   *slog.Logger
}

// NewSweeper wires a sweeper around a search backend. A nil logger
// discards logs; interval <= 0 uses the default pacing.
func NewSweeper(s Searcher, interval time.Duration, logger *slog.Logger) *Sweeper {
	if interval <= 0 {
		interval = defaultQueryInterval
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Sweeper{
		searcher: s,
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
		logger:   logger,
	}
}

// runQuery executes one paced query and logs its ledger row. Search errors
// degrade to a zero-result row: the ledger records that the query was
// attempted, which is exactly what the gates need to know.
func (sw *Sweeper) runQuery(ctx context.Context, g *evidence.Graph, query, intent string) ([]evidence.SearchResult, error) {
	if err := sw.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("pacing wait: %w", err)
	}
	results, err := sw.searcher.Search(ctx, query, resultsPerQuery)
	if err != nil {
		sw.logger.Warn("retrieval: query failed", "query", query, "intent", intent, "error", err)
		g.LogRetrieval(query, intent, nil)
		return nil, nil
	}
	g.LogRetrieval(query, intent, results)
	return results, nil
}

// VisibilitySweep runs the full public-visibility battery, one ledger row
// per query, and returns the total result count across the battery. The
// only error it returns is context cancellation.
func (sw *Sweeper) VisibilitySweep(ctx context.Context, g *evidence.Graph, name, company string) (int, error) {
	total := 0
	for _, query := range evidence.VisibilityBattery(name, company) {
		results, err := sw.runQuery(ctx, g, query, evidence.IntentVisibility)
		if err != nil {
			return total, err
		}
		total += len(results)
	}
	sw.logger.Info("retrieval: visibility sweep complete", "person", name, "results", total)
	return total, nil
}
