package graph

import (
	"fmt"

	"scamgraph/risk"
)

// boost tuning: the cluster must be bigger than a site plus a couple of
// markers, and its other websites must average well above the review
// threshold, before the ecosystem raises a verdict.
const (
	boostMinClusterSize = 3
	boostMeanRiskFloor  = 70.0
	boostFactor         = 0.2
)

// ApplyEcosystemBoost raises a freshly computed verdict when the analyzed
// domain sits inside a high-risk cluster: with more than boostMinClusterSize
// nodes in the 2-hop cluster and a mean other-website risk above
// boostMeanRiskFloor, the score gains round((mean-50) * 0.2) and a synthetic
// ecosystem explanation. Applied at most once per analysis, outside the
// scoring engine, so the engine itself stays pure.
func ApplyEcosystemBoost(s *Store, domain string, v *risk.Verdict) bool {
	sub := s.GetCluster(domain)
	if len(sub.Nodes) <= boostMinClusterSize {
		return false
	}

	sum, count := 0, 0
	for _, n := range sub.Nodes {
		if n.Type != NodeWebsite || n.Label == domain {
			continue
		}
		sum += n.Risk
		count++
	}
	if count == 0 {
		return false
	}
	mean := float64(sum) / float64(count)
	if mean <= boostMeanRiskFloor {
		return false
	}

	boost := int((mean-50)*boostFactor + 0.5)
	v.RiskScore = min(100, v.RiskScore+boost)
	v.Tier, v.Status = risk.TierFor(v.RiskScore)
	v.Explanations = append(v.Explanations, risk.Explanation{
		Label:  fmt.Sprintf("Connected to a high-risk cluster (%d linked sites, avg risk %.0f)", count, mean),
		Weight: boost,
		Type:   "ecosystem",
	})
	return true
}
