package dto

import (
	"carrier-match-service/internal/domain"
	"carrier-match-service/internal/records"
)

type PredictRequest struct {
	Package *records.Package `json:"package" validate:"required"`
	Carrier *records.Carrier `json:"carrier" validate:"required"`
}

type RankRequest struct {
	Package  *records.Package  `json:"package" validate:"required"`
	Carriers []records.Carrier `json:"carriers" validate:"required,dive"`
	// Limit caps the number of results; 0 returns every carrier.
	Limit int `json:"limit" validate:"gte=0"`
}

type RouteDeviationResponse struct {
	Distance float64 `json:"distance"`
	Time     float64 `json:"time"`
}

type MatchResponse struct {
	CarrierID      string                 `json:"carrierId"`
	PackageID      string                 `json:"packageId"`
	MatchScore     float64                `json:"matchScore"`
	Compensation   float64                `json:"compensation"`
	RouteDeviation RouteDeviationResponse `json:"routeDeviation"`
}

type RankResponse struct {
	Matches []MatchResponse `json:"matches"`
}

type OutcomeResponse struct {
	Recorded bool `json:"recorded"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// NewMatchResponse maps a domain result to its wire shape.
func NewMatchResponse(r domain.MatchResult) MatchResponse {
	return MatchResponse{
		CarrierID:    r.CarrierID,
		PackageID:    r.PackageID,
		MatchScore:   r.MatchScore,
		Compensation: r.Compensation,
		RouteDeviation: RouteDeviationResponse{
			Distance: r.RouteDeviation.Distance,
			Time:     r.RouteDeviation.Time,
		},
	}
}

// QuoteResponse is the model-free price of one pair.
type QuoteResponse struct {
	CarrierID    string  `json:"carrierId"`
	PackageID    string  `json:"packageId"`
	Compensation float64 `json:"compensation"`
}
