// Package graph is the in-memory infrastructure-intelligence store: websites
// and the markers they share (addresses, certificates, trackers, wallets,
// contacts), connected by typed edges. It answers cluster queries, keeps a
// blocklist view and propagates risk across shared infrastructure.
package graph

import (
	"fmt"
	"time"
)

// NodeType is the closed set of node kinds. Propagation and query logic
// switch on it exhaustively; never compare node kinds as strings.
type NodeType int

const (
	NodeWebsite NodeType = iota
	NodeAddress
	NodeCertificate
	NodeTracker
	NodeWallet
	NodeContact
)

var nodeTypeNames = [...]string{
	NodeWebsite:     "website",
	NodeAddress:     "address",
	NodeCertificate: "certificate",
	NodeTracker:     "tracker",
	NodeWallet:      "wallet",
	NodeContact:     "contact",
}

func (t NodeType) String() string {
	if int(t) < len(nodeTypeNames) {
		return nodeTypeNames[t]
	}
	return fmt.Sprintf("NodeType(%d)", int(t))
}

func (t NodeType) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// IsMarker reports whether the node is shared infrastructure rather than a
// website. Markers are the only nodes risk propagates through.
func (t NodeType) IsMarker() bool {
	return t != NodeWebsite
}

// Node is one vertex in the graph. Website nodes carry the scored risk and
// category metadata; marker nodes start at zero risk and only gain risk
// through propagation.
type Node struct {
	ID       string         `json:"id"`
	Label    string         `json:"label"`
	Type     NodeType       `json:"type"`
	Risk     int            `json:"risk"`
	Metadata map[string]any `json:"metadata,omitempty"`
	AddedAt  time.Time      `json:"added_at"`
}

// Edge is an undirected relation between two nodes. The (source, target,
// label) triple is unique; duplicate inserts are dropped.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label"`
}

// Subgraph is the result shape of cluster and full-graph queries.
type Subgraph struct {
	Nodes []*Node `json:"nodes"`
	Edges []Edge  `json:"edges"`
}

// BlocklistEntry is one row of the exported blocklist view.
type BlocklistEntry struct {
	Domain       string `json:"domain"`
	Category     string `json:"category"`
	Risk         int    `json:"risk"`
	Tier         string `json:"tier"`
	Status       string `json:"status"`
	DetectedDate string `json:"detected_date"`
	Cluster      string `json:"cluster"`
	Markers      int    `json:"markers"`
}

// Stats is the aggregate dashboard feed. ScannedToday, ThreatsBlocked and
// ActiveMonitors carry a small random jitter to read like a live feed; the
// jitter is display noise only and intentionally non-deterministic.
type Stats struct {
	ScannedToday   int `json:"scanned_today"`
	ClustersFound  int `json:"clusters_found"`
	ThreatsBlocked int `json:"threats_blocked"`
	ActiveMonitors int `json:"active_monitors"`
}
