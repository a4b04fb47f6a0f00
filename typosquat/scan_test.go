package typosquat

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scamgraph/risk"
)

// fakeResolver is a fixed oracle: domains present in live exist, everything
// else does not.
type fakeResolver struct {
	live map[string]string
}

func (f *fakeResolver) Lookup(_ context.Context, domain string) (string, bool) {
	addr, ok := f.live[domain]
	return addr, ok
}

func testCandidates() []Candidate {
	return []Candidate{
		{Domain: "paypa1.com", Strategy: StrategyHomoglyph},
		{Domain: "paypal.net", Strategy: StrategyTLDSwap},
		{Domain: "paypall.com", Strategy: StrategyDuplication},
		{Domain: "papal.com", Strategy: StrategyOmission},
		{Domain: "paypal-login.com", Strategy: StrategyPrefixSuffix},
		{Domain: "qaypal.com", Strategy: StrategyKeyboardTypo},
		{Domain: "payqal.xyz", Strategy: StrategyHomoglyphTLD},
		{Domain: "aypal.com", Strategy: StrategyOmission},
	}
}

func testOracle() *fakeResolver {
	return &fakeResolver{live: map[string]string{
		"paypa1.com":       "203.0.113.7",
		"paypal.net":       "203.0.113.8",
		"paypal-login.com": "no-A-record",
		"payqal.xyz":       "203.0.113.9",
	}}
}

func collect(events <-chan Event) (variants []Variant, progress []Progress) {
	for ev := range events {
		if ev.Found != nil {
			variants = append(variants, *ev.Found)
		}
		if ev.Progress != nil {
			progress = append(progress, *ev.Progress)
		}
	}
	return variants, progress
}

func TestScanFindsLiveVariants(t *testing.T) {
	s := NewScanner(testOracle(), nil, Options{Concurrency: 3, BatchDelay: -1, Seed: 1})
	variants, progress := collect(s.ScanCandidates(context.Background(), "paypal.com", testCandidates()))

	require.Len(t, variants, 4)
	domains := map[string]Variant{}
	for _, v := range variants {
		domains[v.Domain] = v
	}
	assert.Contains(t, domains, "paypa1.com")
	assert.Contains(t, domains, "paypal-login.com")
	assert.Equal(t, "no-A-record", domains["paypal-login.com"].Addr)

	require.NotEmpty(t, progress)
	last := progress[len(progress)-1]
	assert.Equal(t, len(testCandidates()), last.Total)
	assert.Equal(t, last.Total, last.Checked)
	for i := 1; i < len(progress); i++ {
		assert.Greater(t, progress[i].Checked, progress[i-1].Checked)
	}
}

func TestScanRiskWeights(t *testing.T) {
	weights := DefaultStrategyWeights()
	s := NewScanner(testOracle(), nil, Options{Concurrency: 4, BatchDelay: -1, Seed: 42})
	variants, _ := collect(s.ScanCandidates(context.Background(), "paypal.com", testCandidates()))

	for _, v := range variants {
		base := weights[v.Strategy]
		assert.GreaterOrEqual(t, v.Risk, base-3, "%s below jitter floor", v.Domain)
		assert.LessOrEqual(t, v.Risk, base+6, "%s above jitter ceiling", v.Domain)
		assert.LessOrEqual(t, v.Risk, 99)
		wantTier, _ := risk.TierFor(v.Risk)
		assert.Equal(t, wantTier, v.Tier)
	}
}

func TestScanDeterministicWithSeed(t *testing.T) {
	opts := Options{Concurrency: 2, BatchDelay: -1, Seed: 7}
	a, _ := collect(NewScanner(testOracle(), nil, opts).ScanCandidates(context.Background(), "paypal.com", testCandidates()))
	b, _ := collect(NewScanner(testOracle(), nil, opts).ScanCandidates(context.Background(), "paypal.com", testCandidates()))
	assert.Equal(t, a, b)
}

func TestScanMaxResults(t *testing.T) {
	s := NewScanner(testOracle(), nil, Options{Concurrency: 1, BatchDelay: -1, Seed: 3, MaxResults: 2})
	variants, _ := collect(s.ScanCandidates(context.Background(), "paypal.com", testCandidates()))
	assert.Len(t, variants, 2)
}

func TestScanCancellationReturnsSubset(t *testing.T) {
	full, _ := collect(NewScanner(testOracle(), nil, Options{Concurrency: 2, BatchDelay: -1, Seed: 9}).
		ScanCandidates(context.Background(), "paypal.com", testCandidates()))
	fullSet := map[string]bool{}
	for _, v := range full {
		fullSet[v.Domain] = true
	}

	ctx, cancel := context.WithCancel(context.Background())
	events := NewScanner(testOracle(), nil, Options{Concurrency: 2, BatchDelay: 10 * time.Millisecond, Seed: 9}).
		ScanCandidates(ctx, "paypal.com", testCandidates())

	var partial []Variant
	first := true
	for ev := range events {
		if ev.Found != nil {
			partial = append(partial, *ev.Found)
		}
		if first {
			cancel()
			first = false
		}
	}
	cancel()

	assert.Less(t, len(partial), len(full)+1)
	for _, v := range partial {
		assert.True(t, fullSet[v.Domain], "cancelled scan found %s outside the full result set", v.Domain)
	}
}

func TestScanEmptyCandidates(t *testing.T) {
	s := NewScanner(testOracle(), nil, Options{BatchDelay: -1})
	variants, progress := collect(s.ScanCandidates(context.Background(), "paypal.com", nil))
	assert.Empty(t, variants)
	assert.Empty(t, progress)
}
