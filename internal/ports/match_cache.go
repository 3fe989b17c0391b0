package ports

import (
	"carrier-match-service/internal/domain"
	"context"
)

// Optional cache of previously computed match results keyed by a request
// fingerprint. A miss is reported with ok=false and a nil error.
type MatchCache interface {
	Get(ctx context.Context, key string) (result domain.MatchResult, ok bool, err error)
	Put(ctx context.Context, key string, result domain.MatchResult) error
}
