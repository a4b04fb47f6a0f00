// Package risk turns a feature record into an explainable 0-100 maliciousness
// score. Scoring is rule-based and deterministic: the same record always
// produces the same verdict, and every point of the score is traceable to a
// named rule.
package risk

import "scamgraph/feature"

// Category is the threat classification of a scored domain.
type Category string

const (
	CategoryCasino   Category = "Casino"
	CategoryScam     Category = "Scam"
	CategoryPhishing Category = "Phishing"
	CategoryPyramid  Category = "Pyramid"
	CategorySafe     Category = "Safe"
	CategoryUnknown  Category = "Unknown"
)

// threatCategories are the categories rules can vote for, in stable order.
var threatCategories = []Category{CategoryCasino, CategoryScam, CategoryPhishing, CategoryPyramid}

// Explanation is one fired rule surfaced to the caller.
type Explanation struct {
	Label  string `json:"label"`
	Weight int    `json:"weight"`
	Type   string `json:"type"` // infrastructure, content, tracking, financial, funnel, ecosystem
}

// Verdict is the scoring result for one feature record.
type Verdict struct {
	RiskScore      int                  `json:"risk_score"`
	Category       Category             `json:"category"`
	Confidence     float64              `json:"confidence"`
	Probabilities  map[Category]float64 `json:"probabilities"`
	Explanations   []Explanation        `json:"explanations"`
	Tier           string               `json:"tier"`
	Status         string               `json:"status"`
	RulesEvaluated int                  `json:"rules_evaluated"`
	RulesFired     int                  `json:"rules_fired"`
}

// TierFor maps a score onto the shared tier/status scheme. The same
// thresholds drive the blocklist view and the variant scanner display.
func TierFor(score int) (tier, status string) {
	switch {
	case score >= 80:
		return "A", "Blocked"
	case score >= 50:
		return "B", "Under Review"
	default:
		return "C", "Monitoring"
	}
}

// firing is the internal result of one rule that matched.
type firing struct {
	name        string
	score       int
	explanation string
	typ         string
	category    Category // empty for general signals
}

// rule is a single predicate over the feature record. Returns nil when the
// rule does not apply; rules must tolerate zero-valued record sections.
type rule struct {
	name     string
	evaluate func(f *feature.Record) *firing
}
