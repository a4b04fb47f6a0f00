package graph

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scamgraph/feature"
	"scamgraph/risk"
)

func recordWithIP(domain, ip string) *feature.Record {
	return &feature.Record{
		Domain: domain,
		DNS:    feature.DNSResult{IP: ip, Success: true},
	}
}

func verdict(score int, category risk.Category) risk.Verdict {
	tier, status := risk.TierFor(score)
	return risk.Verdict{RiskScore: score, Category: category, Confidence: 0.8, Tier: tier, Status: status}
}

func websiteRisk(t *testing.T, s *Store, domain string) int {
	t.Helper()
	sub := s.GetCluster(domain)
	for _, n := range sub.Nodes {
		if n.Type == NodeWebsite && n.Label == domain {
			return n.Risk
		}
	}
	t.Fatalf("website node for %s not found", domain)
	return 0
}

func markerRisk(t *testing.T, s *Store, id string) int {
	t.Helper()
	sub := s.GetFullGraph()
	for _, n := range sub.Nodes {
		if n.ID == id {
			return n.Risk
		}
	}
	t.Fatalf("marker node %s not found", id)
	return 0
}

func TestInsertAnalysisIdempotent(t *testing.T) {
	s := NewStore()
	rec := recordWithIP("repeat.example", "10.1.2.3")
	v := verdict(60, risk.CategoryScam)

	id1 := s.InsertAnalysis("repeat.example", rec, v)
	before := s.GetCluster("repeat.example")

	id2 := s.InsertAnalysis("repeat.example", rec, v)
	after := s.GetCluster("repeat.example")

	assert.Equal(t, id1, id2)
	assert.Len(t, after.Nodes, len(before.Nodes))
	assert.Len(t, after.Edges, len(before.Edges))
}

func TestRiskPropagationSharedAddress(t *testing.T) {
	s := NewStore()

	s.InsertAnalysis("bad-one.example", recordWithIP("bad-one.example", "10.9.9.9"), verdict(90, risk.CategoryScam))
	assert.Equal(t, 54, markerRisk(t, s, "ip-10-9-9-9"), "marker takes 60%% of source risk")

	s.InsertAnalysis("bystander.example", recordWithIP("bystander.example", "10.9.9.9"), verdict(10, risk.CategoryUnknown))
	assert.GreaterOrEqual(t, websiteRisk(t, s, "bystander.example"), 24,
		"joining contaminated infrastructure raises the newcomer's risk")
	assert.Equal(t, 54, markerRisk(t, s, "ip-10-9-9-9"))
}

func TestRiskPropagationMonotonic(t *testing.T) {
	s := NewStore()
	s.InsertAnalysis("victim.example", recordWithIP("victim.example", "10.5.5.5"), verdict(20, risk.CategoryUnknown))
	before := websiteRisk(t, s, "victim.example")

	s.InsertAnalysis("attacker.example", recordWithIP("attacker.example", "10.5.5.5"), verdict(95, risk.CategoryPhishing))
	after := websiteRisk(t, s, "victim.example")
	assert.GreaterOrEqual(t, after, before)

	// low-risk inserts never contaminate anyone
	s.InsertAnalysis("harmless.example", recordWithIP("harmless.example", "10.5.5.5"), verdict(5, risk.CategorySafe))
	assert.GreaterOrEqual(t, websiteRisk(t, s, "victim.example"), after)
}

func TestLowRiskDoesNotPropagate(t *testing.T) {
	s := NewStore()
	s.InsertAnalysis("calm.example", recordWithIP("calm.example", "10.4.4.4"), verdict(40, risk.CategoryUnknown))
	assert.Equal(t, 0, markerRisk(t, s, "ip-10-4-4-4"))
}

func TestClusterJoinAndMint(t *testing.T) {
	s := NewStore()

	// sharing a seeded marker joins the seeded cluster
	s.InsertAnalysis("clone.example", recordWithIP("clone.example", "185.234.72.18"), verdict(70, risk.CategoryCasino))
	assert.Equal(t, "CLS-0042", s.GetClusterID("clone.example"))

	// an isolated pair mints the next counter value
	s.InsertAnalysis("lone.example", recordWithIP("lone.example", "10.7.7.7"), verdict(60, risk.CategoryScam))
	assert.Equal(t, "CLS-0043", s.GetClusterID("lone.example"))
	s.InsertAnalysis("lone2.example", recordWithIP("lone2.example", "10.7.7.7"), verdict(55, risk.CategoryScam))
	assert.Equal(t, "CLS-0043", s.GetClusterID("lone2.example"))
}

func TestIsolatedWebsiteHasNoCluster(t *testing.T) {
	s := NewStore()
	rec := &feature.Record{Domain: "nomarkers.example"}
	s.InsertAnalysis("nomarkers.example", rec, verdict(30, risk.CategoryUnknown))
	assert.Empty(t, s.GetClusterID("nomarkers.example"))
	assert.Empty(t, s.GetClusterID("never-seen.example"))
}

func TestGetClusterUnknownDomain(t *testing.T) {
	s := NewStore()
	sub := s.GetCluster("never-seen.example")
	assert.Empty(t, sub.Nodes)
	assert.Empty(t, sub.Edges)
}

func TestGetClusterDepthTwo(t *testing.T) {
	s := NewStore()
	sub := s.GetCluster("lucky-spin-777.bet")

	labels := map[string]bool{}
	for _, n := range sub.Nodes {
		labels[n.Label] = true
	}
	// seed-w1's markers and the sites sharing them are in reach
	assert.True(t, labels["185.234.72.18"])
	assert.True(t, labels["mega-jackpot-win.net"])
	// sites reachable only through a second marker hop are not
	assert.False(t, labels["invest-gold-pro.xyz"])

	seen := map[string]bool{}
	for _, e := range sub.Edges {
		key := e.Source + "|" + e.Target + "|" + e.Label
		assert.False(t, seen[key], "duplicate edge %s", key)
		seen[key] = true
	}
}

func TestBlocklistSortedWithTiers(t *testing.T) {
	s := NewStore()
	s.InsertAnalysis("nomarkers.example", &feature.Record{Domain: "nomarkers.example"}, verdict(30, risk.CategoryUnknown))

	list := s.GetBlocklist()
	require.NotEmpty(t, list)
	for i, row := range list {
		if i > 0 {
			assert.GreaterOrEqual(t, list[i-1].Risk, row.Risk)
		}
		wantTier, wantStatus := risk.TierFor(row.Risk)
		assert.Equal(t, wantTier, row.Tier)
		assert.Equal(t, wantStatus, row.Status)
	}

	var found bool
	for _, row := range list {
		if row.Domain == "nomarkers.example" {
			found = true
			assert.Equal(t, "—", row.Cluster)
			assert.Zero(t, row.Markers)
		}
	}
	assert.True(t, found)
}

func TestGetStats(t *testing.T) {
	s := NewStore()
	stats := s.GetStats()
	assert.GreaterOrEqual(t, stats.ScannedToday, 10) // ten seeded sites plus jitter
	assert.Equal(t, 2, stats.ClustersFound)
	assert.Greater(t, stats.ThreatsBlocked, 0)
}

func TestGetAnalysisCache(t *testing.T) {
	s := NewStore()
	assert.Nil(t, s.GetAnalysis("fresh.example"))

	rec := recordWithIP("fresh.example", "10.2.3.4")
	s.InsertAnalysis("fresh.example", rec, verdict(42, risk.CategoryScam))
	cached := s.GetAnalysis("fresh.example")
	require.NotNil(t, cached)
	assert.Equal(t, 42, cached.Verdict.RiskScore)
}

func TestApplyEcosystemBoost(t *testing.T) {
	s := NewStore()
	s.InsertAnalysis("clone.example", recordWithIP("clone.example", "185.234.72.18"), verdict(60, risk.CategoryCasino))

	v := verdict(60, risk.CategoryCasino)
	boosted := ApplyEcosystemBoost(s, "clone.example", &v)
	require.True(t, boosted)
	assert.Greater(t, v.RiskScore, 60)
	require.NotEmpty(t, v.Explanations)
	last := v.Explanations[len(v.Explanations)-1]
	assert.Equal(t, "ecosystem", last.Type)
	wantTier, _ := risk.TierFor(v.RiskScore)
	assert.Equal(t, wantTier, v.Tier)
}

func TestApplyEcosystemBoostSkipsSmallClusters(t *testing.T) {
	s := NewStore()
	s.InsertAnalysis("lone.example", recordWithIP("lone.example", "10.7.7.7"), verdict(60, risk.CategoryScam))

	v := verdict(60, risk.CategoryScam)
	assert.False(t, ApplyEcosystemBoost(s, "lone.example", &v))
	assert.Equal(t, 60, v.RiskScore)
}

func TestNodeTypeJSON(t *testing.T) {
	b, err := json.Marshal(NodeCertificate)
	require.NoError(t, err)
	assert.Equal(t, `"certificate"`, string(b))
	assert.Equal(t, "wallet", NodeWallet.String())
	assert.True(t, NodeAddress.IsMarker())
	assert.False(t, NodeWebsite.IsMarker())
}
