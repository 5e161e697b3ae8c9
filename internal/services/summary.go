package services

import (
	"roadtrip-planner-service/internal/domain"
	"roadtrip-planner-service/internal/geo"
)

// DaySummary is the per-day feedback shown in a day header.
type DaySummary struct {
	Day           *domain.Day
	Route         *domain.DayRoute
	Waypoints     int
	ActivityHours float64
	DriveHours    float64
	Load          string
}

// TripSummary combines per-day loads with whole-trip totals.
// Cost is meaningful only when CostAvailable is set.
type TripSummary struct {
	Days          []DaySummary
	DistanceM     float64
	DurationS     float64
	DistanceMiles float64
	Cost          float64
	CostAvailable bool
}

// SummarizeTrip labels each day's load and attaches the trip totals and cost
// estimate.
func SummarizeTrip(
	days []*domain.Day,
	routes domain.TripRoutes,
	resolve ActivityResolver,
	thresholds LoadThresholds,
	costPerMile string,
) TripSummary {
	out := TripSummary{
		Days:          make([]DaySummary, 0, len(days)),
		DistanceM:     routes.DistanceM,
		DurationS:     routes.DurationS,
		DistanceMiles: geo.Round1(geo.MetersToMiles(routes.DistanceM)),
	}

	for _, day := range days {
		if day == nil {
			continue
		}
		route := routes.Days[day.ID]
		activityHours := ActivityHours(day, resolve)
		driveHours := DriveHours(route)

		out.Days = append(out.Days, DaySummary{
			Day:           day,
			Route:         route,
			Waypoints:     len(DayWaypoints(day, resolve)),
			ActivityHours: activityHours,
			DriveHours:    driveHours,
			Load:          thresholds.Classify(activityHours, driveHours),
		})
	}

	out.Cost, out.CostAvailable = EstimateCost(routes.DistanceM, costPerMile)
	return out
}
