package services

import (
	"carrier-match-service/internal/domain"
	"errors"
	"testing"
)

func TestTimeCompatibilityTakesWeakerLeg(t *testing.T) {
	schedule := domain.Schedule{StartTime: "08:00", EndTime: "12:00"}

	// Pickup fully covered, delivery half covered.
	got, err := TimeCompatibility(schedule, window("09:00", "10:00"), window("11:00", "13:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0.5 {
		t.Fatalf("score = %v, want 0.5", got)
	}

	got, err = TimeCompatibility(schedule, window("13:00", "14:00"), window("09:00", "10:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0 {
		t.Fatalf("score = %v, want 0 when pickup is outside the schedule", got)
	}
}

func TestTimeCompatibilityDegenerateWindow(t *testing.T) {
	schedule := domain.Schedule{StartTime: "08:00", EndTime: "12:00"}

	_, err := TimeCompatibility(schedule, window("09:00", "10:00"), window("11:00", "11:00"))
	if !errors.Is(err, domain.ErrZeroDurationWindow) {
		t.Fatalf("err = %v, want ErrZeroDurationWindow", err)
	}
}
