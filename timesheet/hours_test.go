package timesheet

import (
	"errors"
	"testing"
)

func TestComputeHours(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		start   string
		end     string
		hours   float64
		wantErr error
	}{
		{
			name:  "plain day shift",
			date:  "2024-01-01",
			start: "09:00",
			end:   "17:30",
			hours: 8.5,
		},
		{
			name:  "crosses midnight",
			date:  "2024-01-01",
			start: "23:30",
			end:   "00:15",
			hours: 0.75,
		},
		{
			name:  "equal start and end counts as a full day",
			date:  "2024-01-01",
			start: "09:00",
			end:   "09:00",
			hours: 0, // 24h > 16h bound
			wantErr: ErrShiftTooLong,
		},
		{
			name:    "too short",
			date:    "2024-01-01",
			start:   "09:00",
			end:     "09:02",
			wantErr: ErrShiftTooShort,
		},
		{
			name:    "too long",
			date:    "2024-01-01",
			start:   "06:00",
			end:     "23:30",
			wantErr: ErrShiftTooLong,
		},
		{
			name:  "rounded to two decimals",
			date:  "2024-01-01",
			start: "09:00",
			end:   "09:50",
			hours: 0.83, // 50/60 = 0.8333..
		},
		{
			name:  "exactly five minutes allowed",
			date:  "2024-01-01",
			start: "09:00",
			end:   "09:05",
			hours: 0.08,
		},
		{
			name:  "exactly sixteen hours allowed",
			date:  "2024-01-01",
			start: "06:00",
			end:   "22:00",
			hours: 16,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			hours, err := ComputeHours(test.date, test.start, test.end)
			if test.wantErr != nil {
				if !errors.Is(err, test.wantErr) {
					t.Errorf("error mismatch: expected %v, got %v", test.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Errorf("ComputeHours: %s", err.Error())
				return
			}
			if hours != test.hours {
				t.Errorf("hours mismatch: expected %v, got %v", test.hours, hours)
			}
		})
	}
}

func TestComputeHoursBadInput(t *testing.T) {
	if _, err := ComputeHours("2024-13-01", "09:00", "10:00"); err == nil {
		t.Errorf("expected an error for an invalid date, got none")
	}
	if _, err := ComputeHours("2024-01-01", "25:00", "10:00"); err == nil {
		t.Errorf("expected an error for an invalid clock value, got none")
	}
}
