package services

import (
	"carrier-match-service/internal/domain"
	"fmt"
	"math"
)

// Pricing constants in currency units.
const (
	BaseRate             = 50.0
	RatePerDeviationKm   = 10.0
	RatePerKg            = 5.0
	HighUrgencyPremium   = 100.0
	MediumUrgencyPremium = 50.0
)

// Compensation prices a delivery from the package and the carrier's detour.
// It does not depend on the carrier's history or the predicted match score.
func Compensation(pkg domain.Package, deviationKm float64) float64 {
	total := BaseRate +
		deviationKm*RatePerDeviationKm +
		pkg.Dimensions.Weight*RatePerKg +
		UrgencyPremium(pkg.Urgency)

	return RoundCents(total)
}

// UrgencyPremium is the flat surcharge for an urgency tier.
func UrgencyPremium(u domain.Urgency) float64 {
	switch u {
	case domain.UrgencyHigh:
		return HighUrgencyPremium
	case domain.UrgencyMedium:
		return MediumUrgencyPremium
	default:
		return 0
	}
}

// QuoteCompensation prices a pair without a model: it estimates the route
// deviation itself and applies Compensation. Failures are
// *domain.OperationFailure values like Predict's.
func QuoteCompensation(pkg domain.Package, carrier domain.Carrier) (amount float64, err error) {
	err = RunOperation("quote", func() error {
		deviation, err := EstimateRouteDeviation(carrier.RouteCoordinates, pkg.PickupCoordinates, pkg.DeliveryCoordinates)
		if err != nil {
			return fmt.Errorf("quote compensation: %w", err)
		}
		amount = Compensation(pkg, deviation.Distance)
		return nil
	})
	return amount, err
}

// RoundCents rounds to 2 decimal places, halves away from zero.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
