package services

import (
	"carrier-match-service/internal/domain"
	"fmt"
)

// BuildFeatureVector extracts the classifier input for one package/carrier pair.
//
// This is the only place optional carrier history is defaulted: a missing
// rating or on-time rate counts as 0, and missing deliveries as none.
func BuildFeatureVector(pkg domain.Package, carrier domain.Carrier) (domain.FeatureVector, error) {
	var f domain.FeatureVector

	deviation, err := EstimateRouteDeviation(carrier.RouteCoordinates, pkg.PickupCoordinates, pkg.DeliveryCoordinates)
	if err != nil {
		return f, fmt.Errorf("build features: %w", err)
	}

	timeScore, err := TimeCompatibility(carrier.Schedule, pkg.PickupWindow, pkg.DeliveryWindow)
	if err != nil {
		return f, fmt.Errorf("build features: %w", err)
	}

	f[domain.FeatureRouteDeviationDistance] = deviation.Distance
	f[domain.FeatureRouteDeviationTime] = deviation.Time
	f[domain.FeatureTimeCompatibility] = timeScore
	f[domain.FeatureSizeCompatibility] = SizeCompatibility(carrier.VehicleCapacity, pkg.Dimensions)
	f[domain.FeatureCarrierRating] = valueOr(carrier.Rating, 0)
	f[domain.FeatureCarrierOnTimeRate] = valueOr(carrier.OnTimeRate, 0)
	f[domain.FeatureCarrierExperience] = float64(len(carrier.CompletedDeliveries))

	return f, nil
}

// DeviationFromFeatures reads the route deviation back out of a vector built
// by BuildFeatureVector.
func DeviationFromFeatures(f domain.FeatureVector) domain.RouteDeviation {
	return domain.RouteDeviation{
		Distance: f[domain.FeatureRouteDeviationDistance],
		Time:     f[domain.FeatureRouteDeviationTime],
	}
}

func valueOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}
