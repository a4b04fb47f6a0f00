package graph

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"scamgraph/feature"
	"scamgraph/risk"
)

// propagation tuning: only sites at or above the threshold contaminate
// shared infrastructure; markers absorb 60% of the source risk and
// co-located websites 15%.
const (
	propagationThreshold = 50
	markerRiskFactor     = 0.6
	websiteRiskFactor    = 0.15
)

// CachedAnalysis is the stored outcome of one analysis request.
type CachedAnalysis struct {
	Record     *feature.Record `json:"record"`
	Verdict    risk.Verdict    `json:"verdict"`
	AnalyzedAt time.Time       `json:"analyzed_at"`
}

// Store is the process-wide graph. All mutation happens under a single
// writer lock; reads take the shared lock so they never observe a
// half-applied insertion. Construct with NewStore and pass by reference.
type Store struct {
	mu sync.RWMutex

	nodes       map[string]*Node
	edges       []Edge
	edgeSet     map[string]struct{}
	domainIndex map[string]string // normalized domain -> website node id
	cache       map[string]*CachedAnalysis

	clusters       map[string]string // website node id -> cluster id
	clusterCounter int
}

// NewStore creates a store pre-seeded with known threat infrastructure so
// cluster queries are non-trivial before any live analysis arrives.
func NewStore() *Store {
	s := &Store{
		nodes:          make(map[string]*Node),
		edgeSet:        make(map[string]struct{}),
		domainIndex:    make(map[string]string),
		cache:          make(map[string]*CachedAnalysis),
		clusters:       make(map[string]string),
		clusterCounter: seedClusterCounter,
	}
	s.seed()
	return s
}

func (s *Store) addNode(id, label string, typ NodeType, riskScore int, metadata map[string]any) *Node {
	n := &Node{ID: id, Label: label, Type: typ, Risk: riskScore, Metadata: metadata, AddedAt: time.Now().UTC()}
	s.nodes[id] = n
	return n
}

func edgeKey(source, target, label string) string {
	return source + "|" + target + "|" + label
}

func (s *Store) addEdge(source, target, label string) {
	key := edgeKey(source, target, label)
	if _, ok := s.edgeSet[key]; ok {
		return
	}
	s.edgeSet[key] = struct{}{}
	s.edges = append(s.edges, Edge{Source: source, Target: target, Label: label})
}

// InsertAnalysis upserts the website node for a domain, wires marker nodes
// and edges for every marker present in the record, then runs cluster
// detection and risk propagation. The whole insertion is atomic to readers.
// Returns the website node id.
func (s *Store) InsertAnalysis(domain string, rec *feature.Record, verdict risk.Verdict) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache[domain] = &CachedAnalysis{Record: rec, Verdict: verdict, AnalyzedAt: time.Now().UTC()}

	websiteID, ok := s.domainIndex[domain]
	if !ok {
		websiteID = "w-" + uuid.NewString()[:8]
		s.addNode(websiteID, domain, NodeWebsite, verdict.RiskScore, map[string]any{
			"category":   verdict.Category,
			"confidence": verdict.Confidence,
		})
		s.domainIndex[domain] = websiteID
	} else if n := s.nodes[websiteID]; n != nil {
		n.Risk = verdict.RiskScore
		if n.Metadata == nil {
			n.Metadata = map[string]any{}
		}
		n.Metadata["category"] = verdict.Category
		n.Metadata["confidence"] = verdict.Confidence
	}

	s.attachMarkers(websiteID, rec)
	s.detectCluster(websiteID)
	s.propagateRisk(websiteID, verdict.RiskScore)

	return websiteID
}

// attachMarkers derives a deterministic marker node id per present marker so
// independent analyses of different domains dedupe onto the same node.
func (s *Store) attachMarkers(websiteID string, rec *feature.Record) {
	if rec == nil {
		return
	}
	if ip := rec.DNS.IP; ip != "" {
		id := "ip-" + strings.ReplaceAll(ip, ".", "-")
		if _, ok := s.nodes[id]; !ok {
			s.addNode(id, ip, NodeAddress, 0, nil)
		}
		s.addEdge(websiteID, id, "hosted on")
	}
	if fp := rec.TLS.Fingerprint; fp != "" {
		short := fp
		if len(short) > 8 {
			short = short[:8]
		}
		id := "cert-" + short
		if _, ok := s.nodes[id]; !ok {
			s.addNode(id, "TLS:"+short, NodeCertificate, 0, map[string]any{"issuer": rec.TLS.Issuer})
		}
		s.addEdge(websiteID, id, "shares cert")
	}
	if ga := rec.Trackers.GAID; ga != "" {
		id := "ga-" + ga
		if _, ok := s.nodes[id]; !ok {
			s.addNode(id, ga, NodeTracker, 0, nil)
		}
		s.addEdge(websiteID, id, "uses tracker")
	}
	if fb := rec.Trackers.FBPixel; fb != "" {
		id := "fb-" + fb
		if _, ok := s.nodes[id]; !ok {
			s.addNode(id, "FB:"+fb, NodeTracker, 0, nil)
		}
		s.addEdge(websiteID, id, "uses pixel")
	}
	if w := rec.Financial.CryptoWallet; w != "" {
		short := w
		if len(short) > 12 {
			short = short[:12]
		}
		id := "wallet-" + short
		if _, ok := s.nodes[id]; !ok {
			s.addNode(id, short+"...", NodeWallet, 0, nil)
		}
		s.addEdge(websiteID, id, "uses wallet")
	}
	if tg := rec.Contacts.Telegram; tg != "" {
		id := "tg-" + tg
		if _, ok := s.nodes[id]; !ok {
			s.addNode(id, tg, NodeContact, 0, nil)
		}
		s.addEdge(websiteID, id, "same operator")
	}
}

// neighbors returns the ids of every node sharing an edge with id.
func (s *Store) neighbors(id string) []string {
	var out []string
	seen := map[string]struct{}{}
	for _, e := range s.edges {
		other := ""
		switch id {
		case e.Source:
			other = e.Target
		case e.Target:
			other = e.Source
		default:
			continue
		}
		if _, ok := seen[other]; !ok {
			seen[other] = struct{}{}
			out = append(out, other)
		}
	}
	return out
}

// detectCluster joins the website to the first cluster found among nodes
// sharing any of its markers. Greedy first-match-wins: a later bridge
// between two established clusters does not merge them. Isolated websites
// get no cluster id.
func (s *Store) detectCluster(websiteID string) {
	markers := s.neighbors(websiteID)
	for _, markerID := range markers {
		for _, otherID := range s.neighbors(markerID) {
			if otherID == websiteID {
				continue
			}
			if cluster, ok := s.clusters[otherID]; ok {
				s.clusters[websiteID] = cluster
				return
			}
		}
	}
	if len(markers) > 0 {
		s.clusterCounter++
		s.clusters[websiteID] = fmt.Sprintf("CLS-%04d", s.clusterCounter)
	}
}

// propagateRisk runs one propagation hop for a freshly inserted website.
//
// Outgoing (source risk >= threshold): each connected marker rises to at
// least 60% of the source risk, and every other website on that marker
// gains 15% of the source risk, capped at 100.
//
// Incoming: the inserted site itself absorbs 15% of each high-risk
// neighbor's score through shared markers, so joining contaminated
// infrastructure raises a site's standing risk immediately rather than
// waiting for the neighbor's next re-analysis.
//
// Risk only ever ratchets upward; repeated insertions into a cluster raise
// it incrementally, there is no fixed-point iteration.
func (s *Store) propagateRisk(sourceID string, score int) {
	source := s.nodes[sourceID]
	if source == nil {
		return
	}

	for _, markerID := range s.neighbors(sourceID) {
		marker := s.nodes[markerID]
		if marker == nil || !marker.Type.IsMarker() {
			continue
		}

		if score >= propagationThreshold {
			if out := roundFactor(score, markerRiskFactor); out > marker.Risk {
				marker.Risk = out
			}
			for _, otherID := range s.neighbors(markerID) {
				if otherID == sourceID {
					continue
				}
				if other := s.nodes[otherID]; other != nil && other.Type == NodeWebsite {
					other.Risk = min(100, other.Risk+roundFactor(score, websiteRiskFactor))
				}
			}
		}

		for _, otherID := range s.neighbors(markerID) {
			if otherID == sourceID {
				continue
			}
			other := s.nodes[otherID]
			if other == nil || other.Type != NodeWebsite || other.Risk < propagationThreshold {
				continue
			}
			if in := roundFactor(other.Risk, markerRiskFactor); in > marker.Risk {
				marker.Risk = in
			}
			source.Risk = min(100, source.Risk+roundFactor(other.Risk, websiteRiskFactor))
		}
	}
}

func roundFactor(score int, factor float64) int {
	return int(float64(score)*factor + 0.5)
}

// GetCluster walks breadth-first from the domain's website node out to
// depth 2 (website, its markers, websites sharing those markers) and
// returns every visited node plus the deduplicated incident edges. Unknown
// domains get an empty subgraph, never an error.
func (s *Store) GetCluster(domain string) Subgraph {
	s.mu.RLock()
	defer s.mu.RUnlock()

	websiteID, ok := s.domainIndex[domain]
	if !ok {
		return Subgraph{Nodes: []*Node{}, Edges: []Edge{}}
	}

	type queued struct {
		id    string
		depth int
	}
	visited := map[string]struct{}{websiteID: {}}
	queue := []queued{{websiteID, 0}}
	var nodeIDs []string
	nodeIDs = append(nodeIDs, websiteID)
	edgeSeen := map[string]struct{}{}
	var edges []Edge

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.depth >= 2 {
			continue
		}
		for _, e := range s.edges {
			other := ""
			switch cur.id {
			case e.Source:
				other = e.Target
			case e.Target:
				other = e.Source
			default:
				continue
			}
			if _, ok := visited[other]; !ok {
				visited[other] = struct{}{}
				nodeIDs = append(nodeIDs, other)
				queue = append(queue, queued{other, cur.depth + 1})
			}
			key := edgeKey(e.Source, e.Target, e.Label)
			if _, ok := edgeSeen[key]; !ok {
				edgeSeen[key] = struct{}{}
				edges = append(edges, e)
			}
		}
	}

	nodes := make([]*Node, 0, len(nodeIDs))
	for _, id := range nodeIDs {
		if n, ok := s.nodes[id]; ok {
			nodes = append(nodes, copyNode(n))
		}
	}
	if edges == nil {
		edges = []Edge{}
	}
	return Subgraph{Nodes: nodes, Edges: edges}
}

// GetFullGraph snapshots every node and edge, used when a queried domain
// has no analysis yet.
func (s *Store) GetFullGraph() Subgraph {
	s.mu.RLock()
	defer s.mu.RUnlock()

	nodes := make([]*Node, 0, len(s.nodes))
	for _, n := range s.nodes {
		nodes = append(nodes, copyNode(n))
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
	edges := make([]Edge, len(s.edges))
	copy(edges, s.edges)
	return Subgraph{Nodes: nodes, Edges: edges}
}

// GetClusterID returns the cluster id for a domain, or "" when the domain
// is unknown or unclustered.
func (s *Store) GetClusterID(domain string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	websiteID, ok := s.domainIndex[domain]
	if !ok {
		return ""
	}
	return s.clusters[websiteID]
}

// GetAnalysis returns the cached analysis for a domain, or nil.
func (s *Store) GetAnalysis(domain string) *CachedAnalysis {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cache[domain]
}

// GetBlocklist returns one row per website node, sorted by risk descending.
// Unclustered sites render an em dash, matching the exported table shape.
func (s *Store) GetBlocklist() []BlocklistEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []BlocklistEntry
	for _, n := range s.nodes {
		if n.Type != NodeWebsite {
			continue
		}
		category := "Unknown"
		if c, ok := n.Metadata["category"]; ok {
			category = fmt.Sprint(c)
		}
		tier, status := risk.TierFor(n.Risk)
		cluster := s.clusters[n.ID]
		if cluster == "" {
			cluster = "—"
		}
		markers := 0
		for _, e := range s.edges {
			if e.Source == n.ID || e.Target == n.ID {
				markers++
			}
		}
		out = append(out, BlocklistEntry{
			Domain:       n.Label,
			Category:     category,
			Risk:         n.Risk,
			Tier:         tier,
			Status:       status,
			DetectedDate: n.AddedAt.Format("2006-01-02"),
			Cluster:      cluster,
			Markers:      markers,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Risk > out[j].Risk })
	return out
}

// GetStats aggregates dashboard counters. The jitter makes the feed read as
// live; only ClustersFound is exact.
func (s *Store) GetStats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	websites, blocked, monitored := 0, 0, 0
	for _, n := range s.nodes {
		if n.Type != NodeWebsite {
			continue
		}
		websites++
		if n.Risk >= 80 {
			blocked++
		}
		if n.Risk >= 50 {
			monitored++
		}
	}
	clusterIDs := map[string]struct{}{}
	for _, c := range s.clusters {
		clusterIDs[c] = struct{}{}
	}
	return Stats{
		ScannedToday:   websites + rand.Intn(50),
		ClustersFound:  len(clusterIDs),
		ThreatsBlocked: blocked*100 + rand.Intn(50),
		ActiveMonitors: monitored*80 + rand.Intn(20),
	}
}

func copyNode(n *Node) *Node {
	c := *n
	if n.Metadata != nil {
		c.Metadata = make(map[string]any, len(n.Metadata))
		for k, v := range n.Metadata {
			c.Metadata[k] = v
		}
	}
	return &c
}
