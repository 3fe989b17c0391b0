package services

import (
	"carrier-match-service/internal/domain"
	"fmt"
)

// TimeCompatibility reports how well the carrier's schedule covers both legs.
// The weaker of the pickup and delivery overlaps bounds the result.
func TimeCompatibility(schedule domain.Schedule, pickup, delivery domain.TimeWindow) (float64, error) {
	carrierWindow := schedule.Window()

	pickupScore, err := WindowOverlap(carrierWindow, pickup)
	if err != nil {
		return 0, fmt.Errorf("time compatibility: pickup window: %w", err)
	}

	deliveryScore, err := WindowOverlap(carrierWindow, delivery)
	if err != nil {
		return 0, fmt.Errorf("time compatibility: delivery window: %w", err)
	}

	return min(pickupScore, deliveryScore), nil
}
