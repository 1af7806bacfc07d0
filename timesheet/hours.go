package timesheet

import (
	"errors"
	"fmt"
	"math"
	"time"
)

const (
	minShift = 5 * time.Minute
	maxShift = 16 * time.Hour
)

var (
	ErrShiftTooShort = errors.New("shift too short (<5 minutes)")
	ErrShiftTooLong  = errors.New("shift too long (>16 hours)")
)

// ComputeHours returns the billable hours between start and end on the given
// work date, rounded half-up to two decimals. A shift whose end does not come
// after its start is taken to cross midnight and gains a day. Only the
// per-row fallback path needs this; the bulk endpoint computes hours
// server-side.
func ComputeHours(workDate, start, end string) (float64, error) {
	startAt, err := time.Parse("2006-01-02 15:04", workDate+" "+start)
	if err != nil {
		return 0, fmt.Errorf("parsing start: %w", err)
	}
	endAt, err := time.Parse("2006-01-02 15:04", workDate+" "+end)
	if err != nil {
		return 0, fmt.Errorf("parsing end: %w", err)
	}

	if !endAt.After(startAt) {
		endAt = endAt.Add(24 * time.Hour)
	}

	elapsed := endAt.Sub(startAt)
	if elapsed < minShift {
		return 0, ErrShiftTooShort
	}
	if elapsed > maxShift {
		return 0, ErrShiftTooLong
	}

	return math.Round(elapsed.Hours()*100) / 100, nil
}
