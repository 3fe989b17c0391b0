package services

import (
	"carrier-match-service/internal/domain"
	"math"
)

const (
	// targetUtilization is the share of vehicle capacity at which a package
	// scores best.
	targetUtilization = 0.3
	// minFittingSizeScore is the floor for any package that physically fits.
	minFittingSizeScore = 0.1
)

// SizeCompatibility scores how well a package uses the vehicle.
//
// A package that exceeds the vehicle on any single axis (length, width,
// height, weight) scores exactly 0. Otherwise the score peaks at 1 when the
// binding ratio (the larger of volume and weight utilization) is 30% and never
// drops below 0.1.
func SizeCompatibility(vehicle domain.VehicleCapacity, pkg domain.Dimensions) float64 {
	fits := pkg.Length <= vehicle.Length &&
		pkg.Width <= vehicle.Width &&
		pkg.Height <= vehicle.Height &&
		pkg.Weight <= vehicle.WeightLimit
	if !fits {
		return 0
	}

	volumeRatio := pkg.Volume() / vehicle.Volume()
	weightRatio := pkg.Weight / vehicle.WeightLimit

	efficiency := 1 - math.Abs(targetUtilization-math.Max(volumeRatio, weightRatio))
	// math.Max propagates NaN; a NaN efficiency still gets the floor.
	if math.IsNaN(efficiency) || efficiency < minFittingSizeScore {
		return minFittingSizeScore
	}
	return efficiency
}
