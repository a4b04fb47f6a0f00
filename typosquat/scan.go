package typosquat

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"scamgraph/risk"
)

// Scan defaults.
const (
	defaultConcurrency = 15
	defaultBatchDelay  = 50 * time.Millisecond
)

// Variant is a verified live typosquat.
type Variant struct {
	Domain   string `json:"domain"`
	Strategy string `json:"strategy"`
	Addr     string `json:"ip"`
	Risk     int    `json:"risk"`
	Tier     string `json:"tier"`
}

// Event is one message on a scan's output stream. Exactly one field is set;
// scan completion is the closure of the channel, not an event.
type Event struct {
	Progress *Progress `json:"progress,omitempty"`
	Found    *Variant  `json:"found,omitempty"`
}

// Progress reports how far the scan has advanced, emitted after each batch.
type Progress struct {
	Checked int `json:"checked"`
	Total   int `json:"total"`
}

// Options tune a scan. The zero value gives production behavior.
type Options struct {
	// Concurrency is the number of lookups in flight per batch.
	Concurrency int
	// BatchDelay is the pause between batches, easing load on the
	// resolver. Negative disables the delay.
	BatchDelay time.Duration
	// MaxResults stops the scan early once that many live variants are
	// found. Zero means unlimited.
	MaxResults int
	// Seed fixes the shuffle and risk jitter for reproducible scans.
	// Zero seeds from the clock.
	Seed int64
}

func (o Options) withDefaults() Options {
	if o.Concurrency <= 0 {
		o.Concurrency = defaultConcurrency
	}
	if o.BatchDelay == 0 {
		o.BatchDelay = defaultBatchDelay
	}
	if o.BatchDelay < 0 {
		o.BatchDelay = 0
	}
	if o.Seed == 0 {
		o.Seed = time.Now().UnixNano()
	}
	return o
}

// Scanner verifies candidate domains against a resolver and assigns each
// live variant a heuristic risk from the per-strategy weight table.
type Scanner struct {
	resolver Resolver
	weights  map[string]int
	opts     Options
}

// NewScanner builds a scanner. A nil weights map falls back to the default
// strategy weight table.
func NewScanner(resolver Resolver, weights map[string]int, opts Options) *Scanner {
	if weights == nil {
		weights = DefaultStrategyWeights()
	}
	return &Scanner{resolver: resolver, weights: weights, opts: opts.withDefaults()}
}

// Scan generates candidates for the domain and verifies them. Events are
// delivered on the returned channel; the channel closes when the scan
// finishes, is cancelled, or hits MaxResults. Cancellation stops new
// lookups but never discards variants already found.
func (s *Scanner) Scan(ctx context.Context, domain string) <-chan Event {
	return s.ScanCandidates(ctx, domain, GenerateCandidates(domain))
}

// ScanCandidates verifies a pre-generated candidate list. Candidates are
// shuffled so partial scans are not biased toward the strategies that
// generate first; batches drain fully before the next one starts, keeping
// progress monotonic and memory bounded.
func (s *Scanner) ScanCandidates(ctx context.Context, domain string, candidates []Candidate) <-chan Event {
	events := make(chan Event)

	go func() {
		defer close(events)

		rng := rand.New(rand.NewSource(s.opts.Seed))
		shuffled := make([]Candidate, len(candidates))
		copy(shuffled, candidates)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		total := len(shuffled)
		checked := 0
		found := 0
		slog.Info("typosquat scan started", "domain", domain, "candidates", total)

		for start := 0; start < total; start += s.opts.Concurrency {
			if ctx.Err() != nil {
				slog.Info("typosquat scan cancelled", "domain", domain, "checked", checked, "found", found)
				return
			}

			end := min(start+s.opts.Concurrency, total)
			batch := shuffled[start:end]
			results := make([]*Variant, len(batch))

			var wg sync.WaitGroup
			for i, cand := range batch {
				if ctx.Err() != nil {
					break
				}
				wg.Add(1)
				go func(i int, cand Candidate) {
					defer wg.Done()
					addr, ok := s.resolver.Lookup(ctx, cand.Domain)
					if !ok {
						return
					}
					results[i] = &Variant{Domain: cand.Domain, Strategy: cand.Strategy, Addr: addr}
				}(i, cand)
			}
			wg.Wait()

			checked += len(batch)
			for _, v := range results {
				if v == nil {
					continue
				}
				v.Risk = s.riskFor(v.Strategy, rng)
				v.Tier, _ = risk.TierFor(v.Risk)
				found++
				// plain send: completed lookups are never discarded, the
				// consumer drains until closure even after cancelling
				events <- Event{Found: v}
				if s.opts.MaxResults > 0 && found >= s.opts.MaxResults {
					slog.Info("typosquat scan hit result limit", "domain", domain, "found", found)
					return
				}
			}

			events <- Event{Progress: &Progress{Checked: checked, Total: total}}

			if end < total && s.opts.BatchDelay > 0 {
				select {
				case <-time.After(s.opts.BatchDelay):
				case <-ctx.Done():
					return
				}
			}
		}
		slog.Info("typosquat scan finished", "domain", domain, "checked", checked, "found", found)
	}()

	return events
}

// riskFor draws the display risk for a strategy: base weight from the
// table, a small random perturbation, clamped below 100.
func (s *Scanner) riskFor(strategy string, rng *rand.Rand) int {
	base, ok := s.weights[strategy]
	if !ok {
		base = 50
	}
	r := base + rng.Intn(10) - 3
	if r > 99 {
		r = 99
	}
	return r
}
