package feature

import "context"

// Extractor produces a Feature Record for a raw target (URL or bare domain).
// Implementations must be safe for concurrent use. The live and synthetic
// implementations are selected by configuration at startup and are never
// mixed within a single record.
type Extractor interface {
	Extract(ctx context.Context, target string) (*Record, error)
}
