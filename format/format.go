package format

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	// duration formats
	TimeHMS = "hms" // hours, minutes and seconds
	TimeHM  = "hm"  // hours and minutes (default)
	TimeM   = "m"   // minutes
)

// Hours renders decimal billable hours the way the API stores them.
func Hours(h float64) string {
	return fmt.Sprintf("%.2f", h)
}

// HoursDuration converts decimal hours into a duration for the duration
// formatters below.
func HoursDuration(h float64) time.Duration {
	return time.Duration(math.Round(h * float64(time.Hour)))
}

func DurationM(d time.Duration) string {
	return fmt.Sprintf("%dm", int(math.Floor(d.Minutes())))
}

func DurationHM(d time.Duration) string {
	hours := int(math.Floor(d.Hours()))
	d = d - (time.Duration(hours) * time.Hour)
	minutes := int(math.Floor(d.Minutes()))

	var sb strings.Builder
	if hours > 0 {
		sb.WriteString(fmt.Sprintf("%dh", hours))
	}

	if minutes > 0 || hours == 0 {
		if hours > 0 {
			sb.WriteString(" ")
		}

		sb.WriteString(fmt.Sprintf("%dm", minutes))
	}

	return sb.String()
}

func DurationHMS(d time.Duration) string {
	hours := int(math.Floor(d.Hours()))
	d = d - (time.Duration(hours) * time.Hour)
	minutes := int(math.Floor(d.Minutes()))
	d = d - (time.Duration(minutes) * time.Minute)
	seconds := int(math.Floor(d.Seconds()))

	var sb strings.Builder
	if hours > 0 {
		sb.WriteString(fmt.Sprintf("%dh", hours))
	}

	if minutes > 0 {
		if hours > 0 {
			sb.WriteString(" ")
		}

		sb.WriteString(fmt.Sprintf("%dm", minutes))
	}

	if seconds > 0 || (hours == 0 && minutes == 0) {
		if hours > 0 || minutes > 0 {
			sb.WriteString(" ")
		}

		sb.WriteString(fmt.Sprintf("%ds", seconds))
	}

	return sb.String()
}

// Duration formats d using one of the TimeM/TimeHM/TimeHMS formats.
func Duration(d time.Duration, timeFormat string) string {
	switch timeFormat {
	case TimeM:
		return DurationM(d)
	case TimeHMS:
		return DurationHMS(d)
	default:
		return DurationHM(d)
	}
}

func ValidateTimeFormat(format string) error {
	validFormats := []string{
		TimeM, TimeHM, TimeHMS,
	}

	for _, vf := range validFormats {
		if format == vf {
			return nil
		}
	}

	return fmt.Errorf("invalid time format %q - Valid formats: %s", format, strings.Join(validFormats, ", "))
}
