package services

import (
	"carrier-match-service/internal/domain"
	"carrier-match-service/internal/platform/obs"
	"carrier-match-service/internal/ports"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
)

// MatchPredictor scores package/carrier pairs with a stored classifier.
//
// The predictor holds no per-request state and is safe for concurrent use as
// long as its ModelStore and MatchCache are.
type MatchPredictor struct {
	Models ports.ModelStore
	// Cache is optional; nil disables result caching.
	Cache ports.MatchCache
}

func NewMatchPredictor(models ports.ModelStore, cache ports.MatchCache) *MatchPredictor {
	return &MatchPredictor{Models: models, Cache: cache}
}

// Predict loads the classifier at modelRef and scores one pair.
// Every failure is returned as a *domain.OperationFailure.
func (p *MatchPredictor) Predict(
	ctx context.Context,
	modelRef string,
	pkg domain.Package,
	carrier domain.Carrier,
) (result domain.MatchResult, err error) {
	defer obs.Time(ctx, "match.Predict")(&err)

	err = RunOperation("predict", func() error {
		features, err := BuildFeatureVector(pkg, carrier)
		if err != nil {
			return err
		}

		classifier, err := p.loadClassifier(ctx, modelRef)
		if err != nil {
			return err
		}

		// Results are keyed by what the model is, not where it lives, so a
		// retrained artifact at the same ref never serves old scores.
		versioned, cacheable := classifier.(ports.VersionedClassifier)
		if !cacheable || p.Cache == nil {
			result, err = scoreFeatures(ctx, classifier, pkg, carrier, features)
			return err
		}

		key := MatchFingerprint(versioned.ModelVersion(), pkg, carrier.ID, features)
		if cached, ok := p.cacheGet(ctx, key); ok {
			result = cached
			return nil
		}

		result, err = scoreFeatures(ctx, classifier, pkg, carrier, features)
		if err != nil {
			return err
		}

		p.cachePut(ctx, key, result)
		return nil
	})

	return result, err
}

func (p *MatchPredictor) loadClassifier(ctx context.Context, modelRef string) (ports.Classifier, error) {
	if p.Models == nil {
		return nil, domain.Fail("load model", domain.KindModelIO, errors.New("model store is nil"))
	}
	if strings.TrimSpace(modelRef) == "" {
		return nil, domain.Fail("load model", domain.KindModelIO, errors.New("model reference must be non-empty"))
	}

	classifier, err := p.Models.Load(ctx, modelRef)
	if err != nil {
		return nil, domain.Fail("load model", domain.KindModelIO, fmt.Errorf("%q: %w", modelRef, err))
	}
	return classifier, nil
}

// Score evaluates one pair against an already loaded classifier.
func Score(ctx context.Context, classifier ports.Classifier, pkg domain.Package, carrier domain.Carrier) (domain.MatchResult, error) {
	features, err := BuildFeatureVector(pkg, carrier)
	if err != nil {
		return domain.MatchResult{}, err
	}
	return scoreFeatures(ctx, classifier, pkg, carrier, features)
}

func scoreFeatures(
	ctx context.Context,
	classifier ports.Classifier,
	pkg domain.Package,
	carrier domain.Carrier,
	features domain.FeatureVector,
) (domain.MatchResult, error) {
	// The classifier reports the probability of the success class (label 1).
	score, err := classifier.PredictProbability(ctx, features)
	if err != nil {
		return domain.MatchResult{}, domain.Fail("predict probability", domain.KindModelIO, err)
	}
	if math.IsNaN(score) || score < 0 || score > 1 {
		return domain.MatchResult{}, domain.Fail(
			"predict probability",
			domain.KindModelIO,
			fmt.Errorf("got %v: %w", score, domain.ErrProbabilityOutOfRange),
		)
	}

	deviation := DeviationFromFeatures(features)
	return domain.MatchResult{
		CarrierID:      carrier.ID,
		PackageID:      pkg.ID,
		MatchScore:     score,
		Compensation:   Compensation(pkg, deviation.Distance),
		RouteDeviation: deviation,
	}, nil
}

// MatchFingerprint identifies a scoring request by everything the result
// depends on: the model version, the pair's ids, the features and the pricing
// inputs.
func MatchFingerprint(modelVersion string, pkg domain.Package, carrierID string, features domain.FeatureVector) string {
	var b strings.Builder
	b.WriteString(modelVersion)
	b.WriteByte('|')
	b.WriteString(pkg.ID)
	b.WriteByte('|')
	b.WriteString(carrierID)
	for _, v := range features {
		b.WriteByte('|')
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	b.WriteByte('|')
	b.WriteString(strconv.FormatFloat(pkg.Dimensions.Weight, 'g', -1, 64))
	b.WriteByte('|')
	b.WriteString(string(pkg.Urgency))

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

func (p *MatchPredictor) cacheGet(ctx context.Context, key string) (domain.MatchResult, bool) {
	if p.Cache == nil {
		return domain.MatchResult{}, false
	}
	r, ok, err := p.Cache.Get(ctx, key)
	if err != nil {
		log.Printf("match cache read failed: %v", err)
		return domain.MatchResult{}, false
	}
	return r, ok
}

func (p *MatchPredictor) cachePut(ctx context.Context, key string, r domain.MatchResult) {
	if p.Cache == nil {
		return
	}
	if err := p.Cache.Put(ctx, key, r); err != nil {
		log.Printf("match cache write failed: %v", err)
	}
}
