package records

import (
	"carrier-match-service/internal/domain"
	"encoding/json"
	"fmt"
)

// Domain converts a validated package record.
func (p *Package) Domain() (domain.Package, error) {
	pickup, err := p.PickupCoordinates.domain()
	if err != nil {
		return domain.Package{}, domain.Fail("convert package", domain.KindGeometry, fmt.Errorf("pickupCoordinates: %w", err))
	}
	delivery, err := p.DeliveryCoordinates.domain()
	if err != nil {
		return domain.Package{}, domain.Fail("convert package", domain.KindGeometry, fmt.Errorf("deliveryCoordinates: %w", err))
	}

	pickupWindow, err := p.PickupWindow.domain()
	if err != nil {
		return domain.Package{}, domain.Fail("convert package", domain.KindValidation, fmt.Errorf("pickupWindow: %w", err))
	}
	deliveryWindow, err := p.DeliveryWindow.domain()
	if err != nil {
		return domain.Package{}, domain.Fail("convert package", domain.KindValidation, fmt.Errorf("deliveryWindow: %w", err))
	}

	return domain.Package{
		ID:                  string(p.ID),
		PickupCoordinates:   pickup,
		DeliveryCoordinates: delivery,
		PickupWindow:        pickupWindow,
		DeliveryWindow:      deliveryWindow,
		Dimensions: domain.Dimensions{
			Length: *p.Dimensions.Length,
			Width:  *p.Dimensions.Width,
			Height: *p.Dimensions.Height,
			Weight: *p.Dimensions.Weight,
		},
		Urgency: domain.Urgency(p.Urgency),
	}, nil
}

// Domain converts a validated carrier record.
func (c *Carrier) Domain() (domain.Carrier, error) {
	if len(c.RouteCoordinates) == 0 {
		return domain.Carrier{}, domain.Fail("convert carrier", domain.KindGeometry, domain.ErrEmptyRoute)
	}

	route := make([]domain.Coordinates, 0, len(c.RouteCoordinates))
	for i, pt := range c.RouteCoordinates {
		coords, err := pt.domain()
		if err != nil {
			return domain.Carrier{}, domain.Fail("convert carrier", domain.KindGeometry, fmt.Errorf("routeCoordinates[%d]: %w", i, err))
		}
		route = append(route, coords)
	}

	schedule := domain.Schedule{StartTime: c.Schedule.StartTime, EndTime: c.Schedule.EndTime}
	if err := checkClock(schedule.StartTime, schedule.EndTime); err != nil {
		return domain.Carrier{}, domain.Fail("convert carrier", domain.KindValidation, fmt.Errorf("schedule: %w", err))
	}

	return domain.Carrier{
		ID:               string(c.ID),
		RouteCoordinates: route,
		Schedule:         schedule,
		VehicleCapacity: domain.VehicleCapacity{
			Length:      *c.VehicleCapacity.Length,
			Width:       *c.VehicleCapacity.Width,
			Height:      *c.VehicleCapacity.Height,
			WeightLimit: *c.VehicleCapacity.WeightLimit,
		},
		Rating:              copyFloat(c.Rating),
		OnTimeRate:          copyFloat(c.OnTimeRate),
		CompletedDeliveries: c.CompletedDeliveries,
	}, nil
}

// Domain converts a validated training example.
func (t *TrainingExample) Domain() (domain.TrainingExample, error) {
	pkg, err := t.Package.Domain()
	if err != nil {
		return domain.TrainingExample{}, err
	}
	carrier, err := t.Carrier.Domain()
	if err != nil {
		return domain.TrainingExample{}, err
	}
	return domain.TrainingExample{Package: pkg, Carrier: carrier, Success: *t.Success}, nil
}

func (p Point) domain() (domain.Coordinates, error) {
	return domain.NewCoordinates(p[0], p[1])
}

func (w Window) domain() (domain.TimeWindow, error) {
	if err := checkClock(w[0], w[1]); err != nil {
		return domain.TimeWindow{}, err
	}
	return domain.TimeWindow{Start: w[0], End: w[1]}, nil
}

func checkClock(values ...string) error {
	for _, v := range values {
		if _, err := domain.ParseClock(v); err != nil {
			return err
		}
	}
	return nil
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

// EncodePackage converts a domain package back to its wire record.
func EncodePackage(p domain.Package) Package {
	return Package{
		ID:                  ID(p.ID),
		PickupCoordinates:   p.PickupCoordinates.CoordsToList(),
		DeliveryCoordinates: p.DeliveryCoordinates.CoordsToList(),
		PickupWindow:        Window{p.PickupWindow.Start, p.PickupWindow.End},
		DeliveryWindow:      Window{p.DeliveryWindow.Start, p.DeliveryWindow.End},
		Dimensions: &Dimensions{
			Length: &p.Dimensions.Length,
			Width:  &p.Dimensions.Width,
			Height: &p.Dimensions.Height,
			Weight: &p.Dimensions.Weight,
		},
		Urgency: string(p.Urgency),
	}
}

// EncodeCarrier converts a domain carrier back to its wire record.
func EncodeCarrier(c domain.Carrier) Carrier {
	route := make([]Point, 0, len(c.RouteCoordinates))
	for _, pt := range c.RouteCoordinates {
		route = append(route, pt.CoordsToList())
	}

	return Carrier{
		ID:               ID(c.ID),
		RouteCoordinates: route,
		Schedule:         &Schedule{StartTime: c.Schedule.StartTime, EndTime: c.Schedule.EndTime},
		VehicleCapacity: &VehicleCapacity{
			Length:      &c.VehicleCapacity.Length,
			Width:       &c.VehicleCapacity.Width,
			Height:      &c.VehicleCapacity.Height,
			WeightLimit: &c.VehicleCapacity.WeightLimit,
		},
		Rating:              copyFloat(c.Rating),
		OnTimeRate:          copyFloat(c.OnTimeRate),
		CompletedDeliveries: c.CompletedDeliveries,
	}
}

// EncodeTrainingExample converts a domain example back to its wire record.
func EncodeTrainingExample(ex domain.TrainingExample) TrainingExample {
	pkg := EncodePackage(ex.Package)
	carrier := EncodeCarrier(ex.Carrier)
	success := ex.Success
	return TrainingExample{Package: &pkg, Carrier: &carrier, Success: &success}
}

// MarshalTrainingExample encodes one example as wire JSON.
func MarshalTrainingExample(ex domain.TrainingExample) ([]byte, error) {
	return json.Marshal(EncodeTrainingExample(ex))
}
