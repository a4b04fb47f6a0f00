package typosquat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scamgraph/feature"
)

func TestGenerateCandidatesBasics(t *testing.T) {
	candidates := GenerateCandidates("example.com")
	require.NotEmpty(t, candidates)
	assert.LessOrEqual(t, len(candidates), MaxCandidates)

	seen := map[string]string{}
	for _, c := range candidates {
		assert.NotEqual(t, "example.com", c.Domain)
		assert.True(t, feature.ValidDomain(c.Domain), "invalid candidate %q", c.Domain)
		_, dup := seen[c.Domain]
		assert.False(t, dup, "duplicate candidate %q", c.Domain)
		seen[c.Domain] = c.Strategy
	}
}

func TestGenerateCandidatesHomoglyph(t *testing.T) {
	candidates := GenerateCandidates("paypal.com")
	byDomain := map[string]string{}
	for _, c := range candidates {
		byDomain[c.Domain] = c.Strategy
	}
	assert.Equal(t, StrategyHomoglyph, byDomain["paypa1.com"])
	assert.Equal(t, StrategyHomoglyph, byDomain["paypai.com"])
	assert.Equal(t, StrategyOmission, byDomain["papal.com"])
	assert.Equal(t, StrategyTLDSwap, byDomain["paypal.net"])
}

func TestGenerateCandidatesFirstStrategyWins(t *testing.T) {
	// "qaypal" comes out of both homoglyph (p->q) and keyboard typo
	// (p->o,l... p neighbors o,l — not q); homoglyph runs first anyway
	candidates := GenerateCandidates("paypal.com")
	for _, c := range candidates {
		if c.Domain == "qaypal.com" {
			assert.Equal(t, StrategyHomoglyph, c.Strategy)
			return
		}
	}
	t.Fatal("expected qaypal.com in candidate set")
}

func TestGenerateCandidatesCap(t *testing.T) {
	out := generateCandidates("verylongexampledomainname.com", 100)
	assert.Len(t, out, 100)
	// the cap fills from the highest-priority strategy first
	assert.Equal(t, StrategyHomoglyph, out[0].Strategy)
}

func TestGenerateCandidatesBareLabel(t *testing.T) {
	// a TLD-less input defaults to .com
	candidates := GenerateCandidates("paypal")
	require.NotEmpty(t, candidates)
	for _, c := range candidates {
		assert.NotEqual(t, "paypal", c.Domain)
	}
}

func TestDefaultStrategyWeights(t *testing.T) {
	w := DefaultStrategyWeights()
	// compound homoglyph strategies are the hardest to spot and rank highest
	assert.Equal(t, 92, w[StrategyHomoglyphTLD])
	assert.Equal(t, 90, w[StrategyDoubleHomoglyph])
	assert.Equal(t, 50, w[StrategyHyphenInsertion])
	assert.Len(t, w, 16)
}
