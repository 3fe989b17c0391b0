package services

import (
	"carrier-match-service/internal/domain"
	"fmt"
	"math"
)

// AverageSpeedKmh converts deviation distance into added travel time.
// There is no road network behind the estimate; every detour is assumed to be
// driven at this constant speed.
const AverageSpeedKmh = 30.0

// NearestRoutePoint returns the index of the route point closest to target and
// its distance in kilometres.
//
// The scan is linear in the route length. Ties keep the earliest point so the
// result is deterministic for routes that revisit a location.
func NearestRoutePoint(route []domain.Coordinates, target domain.Coordinates) (int, float64, error) {
	if len(route) == 0 {
		return -1, 0, domain.ErrEmptyRoute
	}

	best := -1
	bestKm := math.Inf(1)
	for i, p := range route {
		d := GreatCircleKm(p, target)
		if d < bestKm {
			best = i
			bestKm = d
		}
	}

	return best, bestKm, nil
}

// EstimateRouteDeviation sums the detours from the carrier's route to the
// pickup and delivery points.
//
// The two nearest points are searched independently: they may coincide and
// need not appear in pickup-then-delivery order along the route.
func EstimateRouteDeviation(route []domain.Coordinates, pickup, delivery domain.Coordinates) (domain.RouteDeviation, error) {
	_, pickupKm, err := NearestRoutePoint(route, pickup)
	if err != nil {
		return domain.RouteDeviation{}, fmt.Errorf("estimate route deviation: pickup: %w", err)
	}

	_, deliveryKm, err := NearestRoutePoint(route, delivery)
	if err != nil {
		return domain.RouteDeviation{}, fmt.Errorf("estimate route deviation: delivery: %w", err)
	}

	distance := pickupKm + deliveryKm
	return domain.RouteDeviation{
		Distance: distance,
		Time:     distance / AverageSpeedKmh * 60,
	}, nil
}
