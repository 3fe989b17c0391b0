package services

import (
	"carrier-match-service/internal/domain"
	"fmt"
)

// WindowOverlap returns the fraction of window b covered by window a.
//
// The ratio is normalized by b's duration only, so WindowOverlap(a, b) and
// WindowOverlap(b, a) differ whenever the durations differ. A zero-duration b
// is rejected with ErrZeroDurationWindow whether or not the windows intersect.
func WindowOverlap(a, b domain.TimeWindow) (float64, error) {
	aStart, aEnd, err := a.Minutes()
	if err != nil {
		return 0, fmt.Errorf("window overlap: first window: %w", err)
	}
	bStart, bEnd, err := b.Minutes()
	if err != nil {
		return 0, fmt.Errorf("window overlap: second window: %w", err)
	}

	duration := bEnd - bStart
	if duration == 0 {
		return 0, fmt.Errorf("window overlap: %s-%s: %w", b.Start, b.End, domain.ErrZeroDurationWindow)
	}

	overlapStart := max(aStart, bStart)
	overlapEnd := min(aEnd, bEnd)
	if overlapEnd <= overlapStart {
		return 0, nil
	}

	return float64(overlapEnd-overlapStart) / float64(duration), nil
}
