package domain

import (
	"fmt"
	"math"
)

// Immutable geographic coordinates in decimal degrees.
type Coordinates struct {
	Lat float64
	Lon float64
}

// NewCoordinates validates a (lat, lon) pair. Out-of-range values are rejected
// rather than clamped so distances are never computed on wrapped points.
func NewCoordinates(lat, lon float64) (Coordinates, error) {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return Coordinates{}, fmt.Errorf("latitude %v: %w", lat, ErrCoordinateOutOfRange)
	}
	if math.IsNaN(lon) || lon < -180 || lon > 180 {
		return Coordinates{}, fmt.Errorf("longitude %v: %w", lon, ErrCoordinateOutOfRange)
	}
	return Coordinates{Lat: lat, Lon: lon}, nil
}

// Return coordinates as [lat, lon], the order used on the wire.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lat, c.Lon} }
