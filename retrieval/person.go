package retrieval

import (
	"context"
	"fmt"

	"dossier/evidence"
)

// CategorizedResult is one search hit labeled with the sweep category that
// produced it. Categories feed identity scoring: a linkedin-category hit
// carries different disambiguation weight than a news hit.
type CategorizedResult struct {
	Category string
	Result   evidence.SearchResult
}

// personQuery is one entry of the person sweep.
type personQuery struct {
	category string
	intent   string
	query    string
}

// personSweepQueries builds the biographical battery. The linkedin query
// runs with entity_lock intent because its hits disambiguate identity; the
// rest run as bio.
func personSweepQueries(name, company string) []personQuery {
	quoted := fmt.Sprintf("%q", name)
	if company != "" {
		base := fmt.Sprintf("%q %q", name, company)
		return []personQuery{
			{"general", evidence.IntentBio, base},
			{"linkedin", evidence.IntentEntityLock, fmt.Sprintf("%q site:linkedin.com %q", name, company)},
			{"company_site", evidence.IntentBio, base + " about OR team OR leadership"},
			{"news", evidence.IntentBio, base + " news OR interview OR article"},
			{"talks", evidence.IntentBio, base + " conference OR podcast OR keynote OR talk"},
			{"registry", evidence.IntentEntityLock, base + " founder OR director OR officer filing"},
		}
	}
	return []personQuery{
		{"general", evidence.IntentBio, quoted},
		{"linkedin", evidence.IntentEntityLock, fmt.Sprintf("%q site:linkedin.com", name)},
		{"news", evidence.IntentBio, quoted + " news OR interview OR article"},
		{"talks", evidence.IntentBio, quoted + " conference OR podcast OR keynote OR talk"},
	}
}

// PersonSweep runs the biographical battery for a person, ledgering every
// query, and returns each hit labeled with its category. The only error it
// returns is context cancellation.
func (sw *Sweeper) PersonSweep(ctx context.Context, g *evidence.Graph, name, company string) ([]CategorizedResult, error) {
	var hits []CategorizedResult
	for _, pq := range personSweepQueries(name, company) {
		results, err := sw.runQuery(ctx, g, pq.query, pq.intent)
		if err != nil {
			return hits, err
		}
		for _, r := range results {
			hits = append(hits, CategorizedResult{Category: pq.category, Result: r})
		}
	}
	sw.logger.Info("retrieval: person sweep complete", "person", name, "hits", len(hits))
	return hits, nil
}
