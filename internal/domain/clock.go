package domain

import (
	"fmt"
	"strconv"
	"strings"
)

const MinutesPerDay = 24 * 60

// ParseClock converts an "HH:MM" wall-clock string to minutes since midnight.
// "24:00" is accepted as the end of the day.
func ParseClock(s string) (int, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("parse clock %q: %w", s, ErrInvalidClock)
	}

	hours, err := parseClockField(hh)
	if err != nil {
		return 0, fmt.Errorf("parse clock %q: hours: %w", s, err)
	}
	if len(mm) != 2 {
		return 0, fmt.Errorf("parse clock %q: %w", s, ErrInvalidClock)
	}
	minutes, err := parseClockField(mm)
	if err != nil {
		return 0, fmt.Errorf("parse clock %q: minutes: %w", s, err)
	}

	if minutes > 59 || hours > 24 || (hours == 24 && minutes != 0) {
		return 0, fmt.Errorf("parse clock %q: %w", s, ErrInvalidClock)
	}

	return hours*60 + minutes, nil
}

func parseClockField(s string) (int, error) {
	if len(s) == 0 || len(s) > 2 {
		return 0, ErrInvalidClock
	}
	// strconv.Atoi alone would accept signs.
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, ErrInvalidClock
		}
	}
	return strconv.Atoi(s)
}

// FormatClock is the inverse of ParseClock for values in [0, 1440].
func FormatClock(minutes int) (string, error) {
	if minutes < 0 || minutes > MinutesPerDay {
		return "", fmt.Errorf("format clock %d: %w", minutes, ErrInvalidClock)
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60), nil
}

// Minutes parses both ends of the window.
func (w TimeWindow) Minutes() (start, end int, err error) {
	if start, err = ParseClock(w.Start); err != nil {
		return 0, 0, err
	}
	if end, err = ParseClock(w.End); err != nil {
		return 0, 0, err
	}
	return start, end, nil
}
