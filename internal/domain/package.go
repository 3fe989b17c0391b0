package domain

// Urgency tier declared by the shipper. Unknown or empty tiers carry no premium.
type Urgency string

const (
	UrgencyHigh   Urgency = "high"
	UrgencyMedium Urgency = "medium"
)

// TimeWindow is a wall-clock interval of "HH:MM" strings. End is assumed to be
// at or after Start.
type TimeWindow struct {
	Start string
	End   string
}

// Dimensions of a package in the same units as VehicleCapacity.
type Dimensions struct {
	Length float64
	Width  float64
	Height float64
	Weight float64
}

// Volume returns length x width x height.
func (d Dimensions) Volume() float64 { return d.Length * d.Width * d.Height }

// Represents a single delivery request to be matched with a carrier.
// A Package is transient: it is built per request from external input
// and discarded after scoring.
type Package struct {
	ID                  string
	PickupCoordinates   Coordinates
	DeliveryCoordinates Coordinates
	PickupWindow        TimeWindow
	DeliveryWindow      TimeWindow
	Dimensions          Dimensions
	Urgency             Urgency
}
