// Package records holds the JSON shapes of packages, carriers and training
// examples as they arrive from callers, and converts them to domain values.
package records

import (
	"encoding/json"
)

// Point is a coordinate pair encoded as [lat, lon].
type Point []float64

// Window is encoded as ["HH:MM", "HH:MM"].
type Window []string

type Dimensions struct {
	Length *float64 `json:"length" validate:"required,gte=0"`
	Width  *float64 `json:"width" validate:"required,gte=0"`
	Height *float64 `json:"height" validate:"required,gte=0"`
	Weight *float64 `json:"weight" validate:"required,gte=0"`
}

type Package struct {
	ID                  ID          `json:"id" validate:"required"`
	PickupCoordinates   Point       `json:"pickupCoordinates" validate:"required,len=2"`
	DeliveryCoordinates Point       `json:"deliveryCoordinates" validate:"required,len=2"`
	PickupWindow        Window      `json:"pickupWindow" validate:"required,len=2,dive,required"`
	DeliveryWindow      Window      `json:"deliveryWindow" validate:"required,len=2,dive,required"`
	Dimensions          *Dimensions `json:"dimensions" validate:"required"`
	Urgency             string      `json:"urgency,omitempty"`
}

type Schedule struct {
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
}

type VehicleCapacity struct {
	Length      *float64 `json:"length" validate:"required,gt=0"`
	Width       *float64 `json:"width" validate:"required,gt=0"`
	Height      *float64 `json:"height" validate:"required,gt=0"`
	WeightLimit *float64 `json:"weightLimit" validate:"required,gt=0"`
}

// Carrier leaves routeCoordinates free of a length rule: an empty route is a
// geometry failure reported by conversion, a missing one a validation failure.
type Carrier struct {
	ID                  ID                `json:"id" validate:"required"`
	RouteCoordinates    []Point           `json:"routeCoordinates" validate:"required,dive,len=2"`
	Schedule            *Schedule         `json:"schedule" validate:"required"`
	VehicleCapacity     *VehicleCapacity  `json:"vehicleCapacity" validate:"required"`
	Rating              *float64          `json:"rating,omitempty" validate:"omitempty,gte=0"`
	OnTimeRate          *float64          `json:"onTimeRate,omitempty" validate:"omitempty,gte=0"`
	CompletedDeliveries []json.RawMessage `json:"completedDeliveries,omitempty"`
}

type TrainingExample struct {
	Package *Package `json:"package" validate:"required"`
	Carrier *Carrier `json:"carrier" validate:"required"`
	Success *bool    `json:"success" validate:"required"`
}
