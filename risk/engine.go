package risk

import (
	"math"
	"sort"

	"scamgraph/feature"
)

// Engine scores feature records against a fixed rule set. Engines are
// stateless after construction and safe for concurrent use.
type Engine struct {
	rules []rule
}

// NewEngine builds an engine with the given weights.
func NewEngine(w RuleWeights) *Engine {
	return &Engine{rules: buildRules(w)}
}

// NewDefaultEngine builds an engine with the production weight set.
func NewDefaultEngine() *Engine {
	return NewEngine(DefaultWeights())
}

// Score evaluates every rule against the record and assembles the verdict.
// Pure: no I/O, no mutation of the record, deterministic for equal input.
func (e *Engine) Score(f *feature.Record) Verdict {
	var fired []firing
	for _, r := range e.rules {
		if res := r.evaluate(f); res != nil {
			res.name = r.name
			fired = append(fired, *res)
		}
	}

	raw := 0
	for _, fr := range fired {
		raw += fr.score
	}
	score := raw
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	// Whitelisted or negligible score: Safe, no explanations, no categories.
	if f.Analysis.Legitimate || score <= safeScoreCeiling {
		return Verdict{
			RiskScore:      score,
			Category:       CategorySafe,
			Confidence:     maxConfidence,
			Probabilities:  zeroProbabilities(),
			Explanations:   []Explanation{},
			Tier:           "C",
			Status:         "Safe",
			RulesEvaluated: len(e.rules),
			RulesFired:     len(fired),
		}
	}

	category, confidence, probs := classify(fired)

	explanations := make([]Explanation, 0, len(fired))
	for _, fr := range fired {
		if fr.score > 0 {
			explanations = append(explanations, Explanation{Label: fr.explanation, Weight: fr.score, Type: fr.typ})
		}
	}
	sort.SliceStable(explanations, func(i, j int) bool {
		return explanations[i].Weight > explanations[j].Weight
	})

	tier, status := TierFor(score)
	return Verdict{
		RiskScore:      score,
		Category:       category,
		Confidence:     confidence,
		Probabilities:  probs,
		Explanations:   explanations,
		Tier:           tier,
		Status:         status,
		RulesEvaluated: len(e.rules),
		RulesFired:     len(fired),
	}
}

// classify derives the primary threat category from the fired rules.
// Categorized rules vote with their scores; 30% of the positive general
// score is split evenly across categories that already have weight, so
// general noise never creates a category on its own.
func classify(fired []firing) (Category, float64, map[Category]float64) {
	scores := map[Category]float64{}
	for _, c := range threatCategories {
		scores[c] = 0
	}

	general := 0.0
	for _, fr := range fired {
		if fr.category != "" {
			scores[fr.category] += float64(fr.score)
		} else if fr.score > 0 {
			general += float64(fr.score)
		}
	}

	var detected []Category
	for _, c := range threatCategories {
		if scores[c] > 0 {
			detected = append(detected, c)
		}
	}
	if len(detected) > 0 {
		bonus := general * generalSignalCut / float64(len(detected))
		for _, c := range detected {
			scores[c] += bonus
		}
	}

	total := 0.0
	for _, c := range threatCategories {
		total += scores[c]
	}
	if total == 0 {
		return CategoryUnknown, 0, scores
	}

	primary := threatCategories[0]
	for _, c := range threatCategories[1:] {
		if scores[c] > scores[primary] {
			primary = c
		}
	}

	probs := make(map[Category]float64, len(scores))
	for c, s := range scores {
		probs[c] = round2(s / total)
	}
	confidence := scores[primary] / total
	if confidence > maxConfidence {
		confidence = maxConfidence
	}
	return primary, round2(confidence), probs
}

func zeroProbabilities() map[Category]float64 {
	probs := make(map[Category]float64, len(threatCategories))
	for _, c := range threatCategories {
		probs[c] = 0
	}
	return probs
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
