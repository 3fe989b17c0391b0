package domain

import "encoding/json"

// Schedule is the carrier's availability window for the day.
type Schedule struct {
	StartTime string
	EndTime   string
}

// Window returns the schedule as a TimeWindow.
func (s Schedule) Window() TimeWindow {
	return TimeWindow{Start: s.StartTime, End: s.EndTime}
}

// VehicleCapacity bounds what a carrier can take on each axis.
type VehicleCapacity struct {
	Length      float64
	Width       float64
	Height      float64
	WeightLimit float64
}

// Volume returns length x width x height.
func (v VehicleCapacity) Volume() float64 { return v.Length * v.Width * v.Height }

// Crowdsourced carrier travelling a planned route who may pick up a package.
//
// Rating and OnTimeRate are nil when the source record omitted them.
// CompletedDeliveries is kept opaque; only its length is a scoring signal.
type Carrier struct {
	ID                  string
	RouteCoordinates    []Coordinates
	Schedule            Schedule
	VehicleCapacity     VehicleCapacity
	Rating              *float64
	OnTimeRate          *float64
	CompletedDeliveries []json.RawMessage
}
