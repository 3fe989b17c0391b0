package services

import (
	"carrier-match-service/internal/domain"
	"math"
)

const earthRadiusKm = 6371.0

// GreatCircleKm returns the haversine distance in kilometres between two points.
//
// Every deviation in the service goes through this one function so that scores
// computed for different carriers stay comparable.
func GreatCircleKm(a, b domain.Coordinates) float64 {
	dLat := degreesToRadians(b.Lat - a.Lat)
	dLon := degreesToRadians(b.Lon - a.Lon)

	rLat1 := degreesToRadians(a.Lat)
	rLat2 := degreesToRadians(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
