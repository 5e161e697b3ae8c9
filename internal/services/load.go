package services

import (
	"math"
	"roadtrip-planner-service/internal/domain"
	"roadtrip-planner-service/internal/geo"
	"strconv"
	"strings"
)

// Day load labels.
const (
	LoadAmbitious = "Ambitious day"
	LoadFull      = "Full day"
	LoadBalanced  = "Balanced day"
	LoadEasy      = "Easy day"
)

// LoadThresholds are inclusive lower bounds, in hours of activities plus
// driving, for each load label.
type LoadThresholds struct {
	Ambitious float64
	Full      float64
	Balanced  float64
}

func DefaultLoadThresholds() LoadThresholds {
	return LoadThresholds{Ambitious: 9, Full: 7, Balanced: 5}
}

func (t LoadThresholds) Classify(activityHours, driveHours float64) string {
	total := activityHours + driveHours
	switch {
	case total >= t.Ambitious:
		return LoadAmbitious
	case total >= t.Full:
		return LoadFull
	case total >= t.Balanced:
		return LoadBalanced
	default:
		return LoadEasy
	}
}

// ClassifyLoad labels a day using the default thresholds.
func ClassifyLoad(activityHours, driveHours float64) string {
	return DefaultLoadThresholds().Classify(activityHours, driveHours)
}

// ActivityHours sums the effective duration of each activity on the day: the
// scheduled duration when present, else the catalog duration, else zero.
func ActivityHours(day *domain.Day, resolve ActivityResolver) float64 {
	total := 0.0
	for _, id := range day.Activities {
		if entry, ok := day.Schedule[id]; ok && finiteNonNegative(entry.Duration) {
			total += entry.Duration
			continue
		}
		if d, ok := resolve(id).DurationHours(); ok {
			total += d
		}
	}
	return total
}

// DriveHours returns the day's driving time in hours, zero without a route.
func DriveHours(route *domain.DayRoute) float64 {
	if route == nil {
		return 0
	}
	return route.DurationS / 3600
}

// ParseCostPerMile parses free-text user input such as "0.67" or "$0.67".
// ok is false for empty, non-numeric, negative or non-finite input.
func ParseCostPerMile(s string) (float64, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "$")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || !finiteNonNegative(v) {
		return 0, false
	}
	return v, true
}

// EstimateCost returns the driving cost for totalMeters at costPerMile.
// ok is false when the rate is unusable; the estimate is then unavailable
// rather than zero.
func EstimateCost(totalMeters float64, costPerMile string) (float64, bool) {
	rate, ok := ParseCostPerMile(costPerMile)
	if !ok {
		return 0, false
	}
	return geo.MetersToMiles(totalMeters) * rate, true
}

func finiteNonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
