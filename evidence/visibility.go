package evidence

import (
	"fmt"
	"strings"
)

// visibilityTemplates is the fixed public-visibility query battery. Order
// matters: confidence scoring maps each position to a query family.
var visibilityTemplates = []string{
	`"%s" TED`,
	`"%s" TEDx`,
	`site:ted.com "%s"`,
	`site:youtube.com "%s" TEDx`,
	`"%s" keynote`,
	`"%s" conference talk`,
	`"%s" summit speaker`,
	`"%s" panel discussion`,
	`"%s" podcast`,
	`"%s" webinar`,
	`"%s" interview video`,
	`"%s" fireside chat`,
	`"%s" YouTube talk`,
	`"%s" Vimeo talk`,
	`"%s" SlideShare`,
}

// queryFamilies maps a battery position to its query family. Confidence
// awards one bump per family with results, not per query.
var queryFamilies = []string{
	"ted",
	"tedx",
	"ted",
	"tedx",
	"keynote",
	"conference",
	"summit",
	"panel",
	"podcast",
	"webinar",
	"interview_video",
	"interview_video",
	"youtube_talk",
	"youtube_talk",
	"youtube_talk",
}

// VisibilityBattery expands the query battery for a person. When company is
// non-empty a company-qualified query is appended after the fixed set.
func VisibilityBattery(name, company string) []string {
	queries := make([]string, 0, len(visibilityTemplates)+1)
	for _, tmpl := range visibilityTemplates {
		queries = append(queries, fmt.Sprintf(tmpl, name))
	}
	if company != "" {
		queries = append(queries, fmt.Sprintf(`"%s" "%s" keynote OR conference OR podcast`, name, company))
	}
	return queries
}

// VisibilityConfidence scores how thoroughly the visibility sweep covered
// the public-appearance space, 0-100. Each query family with at least one
// result earns 10 points, and executing any TED/TEDx query earns 10 more
// even with zero results, because a checked-and-empty TED query is itself
// signal. Zero rows means the sweep never ran.
func VisibilityConfidence(rows []LedgerRow) int {
	if len(rows) == 0 {
		return 0
	}
	familiesHit := make(map[string]bool)
	tedExecuted := false
	for i, row := range rows {
		family := "other"
		if i < len(queryFamilies) {
			family = queryFamilies[i]
		}
		if family == "ted" || family == "tedx" {
			tedExecuted = true
		}
		if row.ResultCount > 0 {
			familiesHit[family] = true
		}
	}
	score := len(familiesHit) * 10
	if tedExecuted {
		score += 10
	}
	if score > 100 {
		score = 100
	}
	return score
}

// Artifact is one high-signal public appearance surfaced from the ledger.
type Artifact struct {
	Title        string `json:"title"`
	URL          string `json:"url"`
	Venue        string `json:"venue"`
	Date         string `json:"date"`
	WhyItMatters string `json:"why_it_matters"`
}

// artifactKeywords in ascending signal order; the index is the priority.
var artifactKeywords = []string{
	"slideshare",
	"vimeo",
	"webinar",
	"fireside",
	"interview",
	"panel",
	"podcast",
	"conference",
	"summit",
	"keynote",
	"tedx",
	"ted",
}

// HighestSignalArtifacts extracts up to max public appearances from the
// graph's visibility ledger, ranked by venue signal (TED highest) and
// deduplicated by URL.
func HighestSignalArtifacts(g *Graph, max int) []Artifact {
	if max <= 0 {
		max = 3
	}
	type scored struct {
		artifact Artifact
		priority int
	}
	var candidates []scored
	seen := make(map[string]bool)
	for _, row := range g.VisibilityLedgerRows() {
		query := strings.ToLower(row.Query)
		for _, res := range row.TopResults {
			if res.URL == "" || seen[res.URL] {
				continue
			}
			title := strings.ToLower(res.Title)
			priority := -1
			for i, kw := range artifactKeywords {
				if strings.Contains(title, kw) || strings.Contains(query, kw) {
					priority = i
				}
			}
			if priority < 0 {
				continue
			}
			seen[res.URL] = true
			candidates = append(candidates, scored{
				artifact: Artifact{
					Title:        res.Title,
					URL:          res.URL,
					Venue:        inferVenue(res.URL, title),
					Date:         res.Date,
					WhyItMatters: artifactRationale(priority),
				},
				priority: priority,
			})
		}
	}
	// Stable selection sort keeps ledger order within equal priorities.
	for i := 0; i < len(candidates); i++ {
		best := i
		for j := i + 1; j < len(candidates); j++ {
			if candidates[j].priority > candidates[best].priority {
				best = j
			}
		}
		candidates[i], candidates[best] = candidates[best], candidates[i]
	}
	out := make([]Artifact, 0, max)
	for _, c := range candidates {
		if len(out) >= max {
			break
		}
		out = append(out, c.artifact)
	}
	return out
}

func inferVenue(url, lowerTitle string) string {
	lowerURL := strings.ToLower(url)
	switch {
	case strings.Contains(lowerURL, "ted.com"):
		return "TED"
	case strings.Contains(lowerTitle, "tedx"):
		return "TEDx"
	case strings.Contains(lowerURL, "youtube.com"):
		return "YouTube"
	case strings.Contains(lowerURL, "vimeo.com"):
		return "Vimeo"
	case strings.Contains(lowerURL, "slideshare"):
		return "SlideShare"
	}
	return "Unknown Venue"
}

func artifactRationale(priority int) string {
	switch {
	case priority >= 10:
		return "TED/TEDx appearance: top-tier public visibility signal"
	case priority >= 8:
		return "Keynote or conference talk: strong professional visibility"
	case priority >= 6:
		return "Podcast or panel appearance: established voice in the space"
	case priority >= 4:
		return "Interview or webinar: moderate public visibility"
	}
	return "Public presentation material"
}
