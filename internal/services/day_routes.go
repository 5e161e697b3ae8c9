package services

import (
	"context"
	"roadtrip-planner-service/internal/domain"

	"golang.org/x/sync/errgroup"
)

// DefaultRouteConcurrency bounds in-flight route requests per day.
const DefaultRouteConcurrency = 4

// Waypoint is a pinned stop on a day's driving route.
type Waypoint struct {
	ActivityID  string
	Name        string
	Coordinates domain.Coordinates
}

// DayWaypoints returns the day's routable stops in visit order: activities
// with valid coordinates, excluding city markers.
func DayWaypoints(day *domain.Day, resolve ActivityResolver) []Waypoint {
	out := make([]Waypoint, 0, len(day.Activities))
	for _, id := range day.Activities {
		a := resolve(id)
		if a == nil || a.IsCity() || !domain.HasCoordinates(a.Coordinates) {
			continue
		}
		out = append(out, Waypoint{ActivityID: a.ID, Name: a.Name, Coordinates: *a.Coordinates})
	}
	return out
}

// FetchDayRoutes fetches the route for every consecutive pair of waypoints.
//
// Pairs are fetched concurrently, at most limit at a time, and returned in
// waypoint order. Fewer than two waypoints yield no segments.
func FetchDayRoutes(ctx context.Context, client *RouteClient, waypoints []Waypoint, limit int) []domain.RouteSegment {
	if len(waypoints) < 2 {
		return []domain.RouteSegment{}
	}
	if limit <= 0 {
		limit = DefaultRouteConcurrency
	}

	segments := make([]domain.RouteSegment, len(waypoints)-1)

	var g errgroup.Group
	g.SetLimit(limit)

	for i := 0; i < len(waypoints)-1; i++ {
		from, to := waypoints[i], waypoints[i+1]
		g.Go(func() error {
			r := client.FetchDrivingRoute(ctx, from.Coordinates, to.Coordinates)
			// Each goroutine owns index i, so no lock is needed.
			segments[i] = domain.RouteSegment{
				From:       from.Name,
				To:         to.Name,
				DistanceM:  r.DistanceM,
				DurationS:  r.DurationS,
				IsFallback: r.IsFallback,
				Line:       r.Coordinates,
			}
			return nil
		})
	}
	_ = g.Wait()

	return segments
}

// BuildDayRoute sums segments into the day's route. It returns nil when there
// are no segments.
func BuildDayRoute(day *domain.Day, segments []domain.RouteSegment) *domain.DayRoute {
	if len(segments) == 0 {
		return nil
	}

	route := &domain.DayRoute{
		DayID:     day.ID,
		DayNumber: day.Number,
		Line:      make([]domain.Coordinates, 0),
		Segments:  segments,
	}

	for _, s := range segments {
		route.DistanceM += s.DistanceM
		route.DurationS += s.DurationS

		line := s.Line
		// Consecutive segments share a junction point; keep one copy.
		if n := len(route.Line); n > 0 && len(line) > 0 && route.Line[n-1] == line[0] {
			line = line[1:]
		}
		route.Line = append(route.Line, line...)
	}

	return route
}
