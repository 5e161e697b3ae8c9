package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MinutesPerDay bounds a time-of-day value. Schedules that run past midnight
// wrap to the next day's clock value; the day rollover itself is not tracked.
const MinutesPerDay = 24 * 60

// ParseTimeToMinutes converts an "HH:MM" 24-hour clock string to minutes since
// midnight. ok is false for empty or malformed input.
func ParseTimeToMinutes(s string) (minutes int, ok bool) {
	hh, mm, found := strings.Cut(strings.TrimSpace(s), ":")
	if !found || len(hh) == 0 || len(hh) > 2 || len(mm) != 2 || !allDigits(hh) || !allDigits(mm) {
		return 0, false
	}

	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}

	return h*60 + m, true
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// FormatMinutesToTime formats minutes since midnight as "HH:MM", wrapping
// values outside [0, 1440).
func FormatMinutesToTime(minutes int) string {
	m := ((minutes % MinutesPerDay) + MinutesPerDay) % MinutesPerDay
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// AddMinutesToTime returns t shifted by delta minutes, or "" if t is invalid.
func AddMinutesToTime(t string, delta int) string {
	start, ok := ParseTimeToMinutes(t)
	if !ok {
		return ""
	}
	return FormatMinutesToTime(start + delta)
}

// ComputeEndTime returns the clock time durationHours after start, or "" if
// either input is invalid.
func ComputeEndTime(start string, durationHours float64) string {
	if math.IsNaN(durationHours) || math.IsInf(durationHours, 0) {
		return ""
	}
	return AddMinutesToTime(start, int(math.Round(durationHours*60)))
}
