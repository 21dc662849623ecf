// Package identity scores how confidently retrieved evidence pins down one
// specific person, as opposed to a same-named stranger. The score drives the
// fail-closed dossier gates: below the lock thresholds the pipeline constrains
// or halts rather than synthesize about the wrong human.
package identity

import (
	"fmt"
	"net/url"
	"strings"
)

// Signal weights. One award per field; the first confirming source in
// precedence order (structured provider, resume PDF, web cross-reference)
// wins and later sources add nothing.
const (
	weightLinkedInURL      = 10
	weightLinkedInVerified = 30
	weightNameMatch        = 15
	weightMeetingData      = 20
	weightEmployerMatch    = 20
	weightEmployerCanon    = 15
	weightTitleMatch       = 10
	weightLocationMatch    = 10
	weightManyDomains      = 20
	weightTwoDomains       = 10
)

// Lock status thresholds.
const (
	lockThreshold    = 70
	partialThreshold = 50
)

// minProviderConfidence is the match confidence at or below which a
// structured provider record is ignored entirely, evidence entries included.
const minProviderConfidence = 0.5

// Attributes are the caller-supplied facts about the target person.
type Attributes struct {
	Name        string
	Company     string
	Title       string
	Location    string
	LinkedInURL string
}

// Enrichment is one structured people-data provider record.
type Enrichment struct {
	Provider        string
	Company         string
	Title           string
	Location        string
	LinkedInURL     string
	MatchConfidence float64
}

// ResumeFacts are attributes extracted from a user-supplied resume PDF.
type ResumeFacts struct {
	Headline string
	Company  string
	Title    string
	Location string
}

// WebHit is one retrieval result considered for identity confirmation.
type WebHit struct {
	Category string
	Title    string
	URL      string
	Snippet  string
}

// Evidence records one score award and where it came from.
type Evidence struct {
	Signal string `json:"signal"`
	Weight int    `json:"weight"`
	Source string `json:"source"`
}

// Result is the identity lock outcome for one run.
type Result struct {
	Score    int        `json:"score"`
	Status   string     `json:"status"`
	Evidence []Evidence `json:"evidence"`
}

// LockLabel maps a score to its lock status.
func LockLabel(score int) string {
	switch {
	case score >= lockThreshold:
		return "LOCKED"
	case score >= partialThreshold:
		return "PARTIAL LOCK"
	}
	return "NOT LOCKED"
}

// Score computes the identity lock score from all available signal sources.
// hasMeetingData reports whether internal meeting or email history ties the
// person to the caller.
func Score(attrs Attributes, hasMeetingData bool, enrichments []Enrichment, resume *ResumeFacts, hits []WebHit) Result {
	s := &scorer{attrs: attrs, hits: hits}

	// Structured provider records at or below the confidence floor carry
	// no identity signal at all; keep only the usable ones.
	var usable []Enrichment
	for _, e := range enrichments {
		if e.MatchConfidence > minProviderConfidence {
			usable = append(usable, e)
		}
	}

	s.scoreLinkedIn(usable)
	if hasMeetingData {
		s.award("meeting_confirmation", weightMeetingData, "internal meeting/email history confirms relationship")
	}
	s.scoreEmployer(usable, resume)
	s.scoreTitle(usable, resume)
	s.scoreLocation(usable, resume)
	s.scoreDomainAgreement()

	score := s.total
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return Result{Score: score, Status: LockLabel(score), Evidence: s.evidence}
}

type scorer struct {
	attrs    Attributes
	hits     []WebHit
	total    int
	evidence []Evidence
}

func (s *scorer) award(signal string, weight int, source string) {
	s.total += weight
	s.evidence = append(s.evidence, Evidence{Signal: signal, Weight: weight, Source: source})
}

// scoreLinkedIn awards exactly one of: verified profile (+30), unverified
// URL (+10), or retrieval name match with no URL (+15).
func (s *scorer) scoreLinkedIn(enrichments []Enrichment) {
	linkedInURL := s.attrs.LinkedInURL
	if linkedInURL == "" {
		for _, e := range enrichments {
			if e.LinkedInURL != "" {
				linkedInURL = e.LinkedInURL
				break
			}
		}
	}
	var nameHit *WebHit
	for i, h := range s.hits {
		if h.Category != "linkedin" {
			continue
		}
		if (h.Title != "" || h.Snippet != "") && containsName(h.Title+" "+h.Snippet, s.attrs.Name) {
			nameHit = &s.hits[i]
			break
		}
	}
	switch {
	case linkedInURL != "" && nameHit != nil:
		s.award("linkedin_verified", weightLinkedInVerified,
			fmt.Sprintf("LinkedIn profile verified via retrieval: %s", nameHit.URL))
	case linkedInURL != "":
		s.award("linkedin_url", weightLinkedInURL, "LinkedIn URL provided but not yet verified")
	case nameHit != nil:
		s.award("name_match", weightNameMatch,
			fmt.Sprintf("LinkedIn retrieval matches name: %s", nameHit.URL))
	}
}

func (s *scorer) scoreEmployer(enrichments []Enrichment, resume *ResumeFacts) {
	claimed := s.attrs.Company
	for _, e := range enrichments {
		if e.Company == "" {
			continue
		}
		if claimed == "" {
			s.award("employer_canonical", weightEmployerCanon,
				fmt.Sprintf("employer %q supplied by %s (no company to confirm against)", e.Company, e.Provider))
			return
		}
		if fuzzyMatch(e.Company, claimed) {
			s.award("employer_match", weightEmployerMatch,
				fmt.Sprintf("employer confirmed by %s", e.Provider))
			return
		}
	}
	if resume != nil && resume.Company != "" {
		if claimed == "" {
			s.award("employer_canonical", weightEmployerCanon,
				fmt.Sprintf("employer %q supplied by resume PDF (no company to confirm against)", resume.Company))
			return
		}
		if fuzzyMatch(resume.Company, claimed) {
			s.award("employer_match", weightEmployerMatch, "employer confirmed by resume PDF")
			return
		}
	}
	if claimed == "" {
		return
	}
	for _, h := range s.hits {
		text := h.Title + " " + h.Snippet
		if containsName(text, s.attrs.Name) && containsFold(text, claimed) {
			s.award("employer_match", weightEmployerMatch,
				fmt.Sprintf("employer cross-referenced in web result: %s", h.URL))
			return
		}
	}
}

func (s *scorer) scoreTitle(enrichments []Enrichment, resume *ResumeFacts) {
	claimed := s.attrs.Title
	if claimed == "" {
		return
	}
	for _, e := range enrichments {
		if e.Title != "" && fuzzyMatch(e.Title, claimed) {
			s.award("title_match", weightTitleMatch,
				fmt.Sprintf("title confirmed by %s", e.Provider))
			return
		}
	}
	if resume != nil {
		for _, candidate := range []string{resume.Title, resume.Headline} {
			if candidate != "" && fuzzyMatch(candidate, claimed) {
				s.award("title_match", weightTitleMatch, "title confirmed by resume PDF")
				return
			}
		}
	}
	for _, h := range s.hits {
		text := h.Title + " " + h.Snippet
		if containsName(text, s.attrs.Name) && fuzzyMatch(text, claimed) {
			s.award("title_match", weightTitleMatch,
				fmt.Sprintf("title cross-referenced in web result: %s", h.URL))
			return
		}
	}
}

func (s *scorer) scoreLocation(enrichments []Enrichment, resume *ResumeFacts) {
	claimed := s.attrs.Location
	if claimed == "" {
		return
	}
	for _, e := range enrichments {
		if e.Location != "" && containsFold(e.Location, claimed) {
			s.award("location_match", weightLocationMatch,
				fmt.Sprintf("location confirmed by %s", e.Provider))
			return
		}
	}
	if resume != nil && resume.Location != "" && containsFold(resume.Location, claimed) {
		s.award("location_match", weightLocationMatch, "location confirmed by resume PDF")
		return
	}
	for _, h := range s.hits {
		if containsFold(h.Snippet, claimed) {
			s.award("location_match", weightLocationMatch,
				fmt.Sprintf("location cross-referenced in web result: %s", h.URL))
			return
		}
	}
}

// scoreDomainAgreement awards agreement across distinct web domains that
// each independently mention the person.
func (s *scorer) scoreDomainAgreement() {
	domains := make(map[string]bool)
	for _, h := range s.hits {
		if !containsName(h.Title+" "+h.Snippet, s.attrs.Name) {
			continue
		}
		domains[hitDomain(h)] = true
	}
	switch {
	case len(domains) >= 3:
		s.award("multi_domain_agreement", weightManyDomains,
			fmt.Sprintf("%d independent domains agree", len(domains)))
	case len(domains) == 2:
		s.award("multi_domain_agreement", weightTwoDomains, "2 independent domains agree")
	}
}

func hitDomain(h WebHit) string {
	if u, err := url.Parse(h.URL); err == nil && u.Hostname() != "" {
		return strings.TrimPrefix(u.Hostname(), "www.")
	}
	if h.Category != "" {
		return h.Category
	}
	return h.URL
}

func containsName(text, name string) bool {
	if name == "" {
		return false
	}
	return containsFold(text, name)
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// fuzzyMatch reports whether two free-text values refer to the same thing:
// substring containment either way, or any shared word longer than three
// characters ("VP Engineering" matches "VP of Engineering").
func fuzzyMatch(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la == "" || lb == "" {
		return false
	}
	if strings.Contains(la, lb) || strings.Contains(lb, la) {
		return true
	}
	wordsA := make(map[string]bool)
	for _, w := range strings.Fields(la) {
		if len(w) > 3 {
			wordsA[w] = true
		}
	}
	for _, w := range strings.Fields(lb) {
		if len(w) > 3 && wordsA[w] {
			return true
		}
	}
	return false
}
