package services

import (
	"carrier-match-service/internal/domain"
	"carrier-match-service/internal/platform/obs"
	"cmp"
	"context"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"
)

// maxParallelScoring bounds concurrent classifier calls during Rank.
const maxParallelScoring = 5

// Rank scores every carrier for one package and returns the results best
// first: higher match score, then lower compensation, then carrier id.
//
// The classifier is loaded once and shared read-only by all workers. The first
// failing carrier cancels the remaining work; limit <= 0 returns every result.
func (p *MatchPredictor) Rank(
	ctx context.Context,
	modelRef string,
	pkg domain.Package,
	carriers []domain.Carrier,
	limit int,
) (ranked []domain.MatchResult, err error) {
	defer obs.Time(ctx, "match.Rank")(&err)

	err = RunOperation("rank", func() error {
		if len(carriers) == 0 {
			ranked = []domain.MatchResult{}
			return nil
		}

		classifier, err := p.loadClassifier(ctx, modelRef)
		if err != nil {
			return err
		}

		results := make([]domain.MatchResult, len(carriers))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(maxParallelScoring)

		for i, c := range carriers {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				r, err := Score(gctx, classifier, pkg, c)
				if err != nil {
					return fmt.Errorf("carrier %q: %w", c.ID, err)
				}
				results[i] = r
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		slices.SortStableFunc(results, compareMatches)
		if limit > 0 && limit < len(results) {
			results = results[:limit]
		}
		ranked = results
		return nil
	})

	return ranked, err
}

func compareMatches(a, b domain.MatchResult) int {
	if c := cmp.Compare(b.MatchScore, a.MatchScore); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Compensation, b.Compensation); c != 0 {
		return c
	}
	return cmp.Compare(a.CarrierID, b.CarrierID)
}
