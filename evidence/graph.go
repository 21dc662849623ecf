package evidence

import "fmt"

// Node types. Every evidence fragment in a graph is one of these.
const (
	TypeMeeting = "MEETING"
	TypePDF     = "PDF"
	TypePublic  = "PUBLIC"
)

// Intent labels used on ledger rows.
const (
	IntentVisibility = "visibility"
	IntentBio        = "bio"
	IntentEntityLock = "entity_lock"
)

// maxSnippetLen is the hard limit on stored snippet length.
const maxSnippetLen = 200

// maxTopResults caps how many raw results a ledger row retains.
const maxTopResults = 5

// Node is a single immutable evidence fragment.
type Node struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Source  string `json:"source"`
	Snippet string `json:"snippet"`
	Date    string `json:"date"`
	Ref     string `json:"ref"`
}

// Claim links a statement to the evidence nodes backing it.
type Claim struct {
	ClaimID     string   `json:"claim_id"`
	Text        string   `json:"text"`
	Tag         string   `json:"tag"`
	EvidenceIDs []string `json:"evidence_ids"`
	Confidence  string   `json:"confidence"`
}

// SearchResult is a normalized web search hit handed in at the boundary.
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
	Source  string `json:"source,omitempty"`
	Date    string `json:"date,omitempty"`
	Tier    string `json:"tier,omitempty"`
}

// TopResult is a ranked result retained on a ledger row.
type TopResult struct {
	Rank    int    `json:"rank"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	Date    string `json:"date"`
	Snippet string `json:"snippet"`
}

// LedgerRow records one attempted retrieval query. A row is written for
// every query, including zero-result attempts: absence of a row means
// "never checked", presence with ResultCount 0 means "checked, found nothing".
type LedgerRow struct {
	QueryID     string      `json:"query_id"`
	Query       string      `json:"query"`
	Intent      string      `json:"intent"`
	TopResults  []TopResult `json:"top_results"`
	ResultCount int         `json:"result_count"`
}

// Snapshot is the fully serializable form of a graph.
type Snapshot struct {
	Nodes  []Node      `json:"nodes"`
	Claims []Claim     `json:"claims"`
	Ledger []LedgerRow `json:"ledger"`
}

// Graph holds evidence nodes, claims, and the retrieval ledger for one
// dossier run. It is the single source of truth for what is known and how
// it became known. Not safe for concurrent use; each run builds its own.
type Graph struct {
	nodes  []Node
	claims []Claim
	ledger []LedgerRow

	nodeIndex  map[string]int
	claimIndex map[string]int

	nextNode  int
	nextClaim int
	nextQuery int
}

// NewGraph returns an empty graph with ID counters starting at 1.
func NewGraph() *Graph {
	return &Graph{
		nodeIndex:  make(map[string]int),
		claimIndex: make(map[string]int),
		nextNode:   1,
		nextClaim:  1,
		nextQuery:  1,
	}
}

func (g *Graph) addNode(nodeType, source, snippet, date, ref string) Node {
	if date == "" {
		date = "UNKNOWN"
	}
	node := Node{
		ID:      fmt.Sprintf("E%d", g.nextNode),
		Type:    nodeType,
		Source:  source,
		Snippet: clip(snippet, maxSnippetLen),
		Date:    date,
		Ref:     ref,
	}
	g.nextNode++
	g.nodeIndex[node.ID] = len(g.nodes)
	g.nodes = append(g.nodes, node)
	return node
}

// AddMeetingNode records evidence from internal meeting or email history.
func (g *Graph) AddMeetingNode(source, snippet, date, ref string) Node {
	return g.addNode(TypeMeeting, source, snippet, date, ref)
}

// AddPDFNode records evidence from a user-supplied document.
func (g *Graph) AddPDFNode(source, snippet, date, ref string) Node {
	return g.addNode(TypePDF, source, snippet, date, ref)
}

// AddPublicNode records evidence from a public web result.
func (g *Graph) AddPublicNode(source, snippet, date, ref string) Node {
	return g.addNode(TypePublic, source, snippet, date, ref)
}

// AddClaim registers a claim with its evidence linkage.
func (g *Graph) AddClaim(text, tag string, evidenceIDs []string, confidence string) Claim {
	if confidence == "" {
		confidence = "L"
	}
	if evidenceIDs == nil {
		evidenceIDs = []string{}
	}
	claim := Claim{
		ClaimID:     fmt.Sprintf("C%d", g.nextClaim),
		Text:        text,
		Tag:         tag,
		EvidenceIDs: evidenceIDs,
		Confidence:  confidence,
	}
	g.nextClaim++
	g.claimIndex[claim.ClaimID] = len(g.claims)
	g.claims = append(g.claims, claim)
	return claim
}

// LogRetrieval appends a ledger row for one executed query. It must be
// called for every query attempted, even when results is empty.
func (g *Graph) LogRetrieval(query, intent string, results []SearchResult) LedgerRow {
	top := make([]TopResult, 0, maxTopResults)
	for i, r := range results {
		if i >= maxTopResults {
			break
		}
		date := r.Date
		if date == "" {
			date = "UNKNOWN"
		}
		top = append(top, TopResult{
			Rank:    i + 1,
			Title:   r.Title,
			URL:     r.URL,
			Date:    date,
			Snippet: clip(r.Snippet, maxSnippetLen),
		})
	}
	row := LedgerRow{
		QueryID:     fmt.Sprintf("Q%d", g.nextQuery),
		Query:       query,
		Intent:      intent,
		TopResults:  top,
		ResultCount: len(results),
	}
	g.nextQuery++
	g.ledger = append(g.ledger, row)
	return row
}

// VisibilityLedgerRows returns only the visibility-intent ledger rows.
func (g *Graph) VisibilityLedgerRows() []LedgerRow {
	var rows []LedgerRow
	for _, r := range g.ledger {
		if r.Intent == IntentVisibility {
			rows = append(rows, r)
		}
	}
	return rows
}

// Node returns the node with the given ID, or false if absent.
func (g *Graph) Node(id string) (Node, bool) {
	i, ok := g.nodeIndex[id]
	if !ok {
		return Node{}, false
	}
	return g.nodes[i], true
}

// Claim returns the claim with the given ID, or false if absent.
func (g *Graph) Claim(id string) (Claim, bool) {
	i, ok := g.claimIndex[id]
	if !ok {
		return Claim{}, false
	}
	return g.claims[i], true
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []Node { return g.nodes }

// Claims returns all claims in insertion order.
func (g *Graph) Claims() []Claim { return g.claims }

// Ledger returns all ledger rows in insertion order.
func (g *Graph) Ledger() []LedgerRow { return g.ledger }

// Snapshot serializes the full graph for persistence and API responses.
func (g *Graph) Snapshot() Snapshot {
	snap := Snapshot{
		Nodes:  make([]Node, len(g.nodes)),
		Claims: make([]Claim, len(g.claims)),
		Ledger: make([]LedgerRow, len(g.ledger)),
	}
	copy(snap.Nodes, g.nodes)
	copy(snap.Claims, g.claims)
	copy(snap.Ledger, g.ledger)
	return snap
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
