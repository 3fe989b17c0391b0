package cache

import (
	"carrier-match-service/internal/domain"
	"encoding/json"
	"fmt"
)

// cachedMatch is the stored form of a MatchResult.
type cachedMatch struct {
	CarrierID         string  `json:"carrierId"`
	PackageID         string  `json:"packageId"`
	MatchScore        float64 `json:"matchScore"`
	Compensation      float64 `json:"compensation"`
	DeviationDistance float64 `json:"deviationDistance"`
	DeviationTime     float64 `json:"deviationTime"`
}

func encodeMatch(r domain.MatchResult) ([]byte, error) {
	b, err := json.Marshal(cachedMatch{
		CarrierID:         r.CarrierID,
		PackageID:         r.PackageID,
		MatchScore:        r.MatchScore,
		Compensation:      r.Compensation,
		DeviationDistance: r.RouteDeviation.Distance,
		DeviationTime:     r.RouteDeviation.Time,
	})
	if err != nil {
		return nil, fmt.Errorf("encode match: %w", err)
	}
	return b, nil
}

func decodeMatch(b []byte) (domain.MatchResult, error) {
	var c cachedMatch
	if err := json.Unmarshal(b, &c); err != nil {
		return domain.MatchResult{}, fmt.Errorf("decode match: %w", err)
	}
	return domain.MatchResult{
		CarrierID:    c.CarrierID,
		PackageID:    c.PackageID,
		MatchScore:   c.MatchScore,
		Compensation: c.Compensation,
		RouteDeviation: domain.RouteDeviation{
			Distance: c.DeviationDistance,
			Time:     c.DeviationTime,
		},
	}, nil
}
