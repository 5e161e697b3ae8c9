package services

import (
	"context"
	"fmt"
	"log"
	"roadtrip-planner-service/internal/domain"
	"strings"
	"sync"
)

// TripRouter computes and remembers driving routes for the days of a trip.
//
// RefreshDay is the path taken when a day's stops change: it is guarded by a
// RouteTracker so only the newest computation per day is kept. AggregateTrip
// reuses a remembered route when the day's waypoints are unchanged and it has
// no straight-line segments; it computes the rest.
type TripRouter struct {
	Client      *RouteClient
	Tracker     *RouteTracker
	Concurrency int

	mu     sync.RWMutex
	latest map[string]rememberedRoute
}

type rememberedRoute struct {
	signature string
	route     *domain.DayRoute
}

func NewTripRouter(client *RouteClient, concurrency int) *TripRouter {
	return &TripRouter{
		Client:      client,
		Tracker:     NewRouteTracker(),
		Concurrency: concurrency,
		latest:      make(map[string]rememberedRoute),
	}
}

// waypointSignature identifies a waypoint list by its ordered rounded coordinates.
func waypointSignature(wps []Waypoint) string {
	var b strings.Builder
	for _, w := range wps {
		fmt.Fprintf(&b, "%.5f,%.5f;", w.Coordinates.Lat, w.Coordinates.Lon)
	}
	return b.String()
}

// RefreshDay recomputes the route for day, superseding any computation for
// the same day still in flight. committed is false when a newer refresh began
// before this one finished; the stale result is discarded.
func (t *TripRouter) RefreshDay(
	ctx context.Context,
	day *domain.Day,
	resolve ActivityResolver,
) (route *domain.DayRoute, committed bool) {
	wps := DayWaypoints(day, resolve)
	sig := waypointSignature(wps)

	cctx, gen := t.Tracker.Begin(ctx, day.ID)
	defer t.Tracker.Done(day.ID, gen)

	route = BuildDayRoute(day, FetchDayRoutes(cctx, t.Client, wps, t.Concurrency))

	if cctx.Err() != nil {
		log.Printf("day route superseded day_id=%s generation=%d", day.ID, gen)
		return nil, false
	}

	committed = t.Tracker.Commit(day.ID, gen, func() {
		t.mu.Lock()
		t.latest[day.ID] = rememberedRoute{signature: sig, route: route}
		t.mu.Unlock()
	})
	if !committed {
		log.Printf("day route superseded day_id=%s generation=%d", day.ID, gen)
		return nil, false
	}
	return route, true
}

// Latest returns the most recently committed route for dayID, if any.
func (t *TripRouter) Latest(dayID string) (*domain.DayRoute, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	r, ok := t.latest[dayID]
	return r.route, ok
}

func (t *TripRouter) remembered(dayID, signature string) (*domain.DayRoute, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	r, ok := t.latest[dayID]
	if !ok || r.signature != signature || r.route.HasFallback() {
		return nil, false
	}
	return r.route, true
}

// AggregateTrip routes every day concurrently and sums whole-trip totals once
// all days have settled. Days with fewer than two pinned stops get no route.
func (t *TripRouter) AggregateTrip(
	ctx context.Context,
	days []*domain.Day,
	resolve ActivityResolver,
) domain.TripRoutes {
	routes := make([]*domain.DayRoute, len(days))

	var wg sync.WaitGroup
	for i, day := range days {
		if day == nil {
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()

			wps := DayWaypoints(day, resolve)
			if len(wps) < 2 {
				return
			}
			if r, ok := t.remembered(day.ID, waypointSignature(wps)); ok {
				routes[i] = r
				return
			}
			routes[i] = BuildDayRoute(day, FetchDayRoutes(ctx, t.Client, wps, t.Concurrency))
		}()
	}
	wg.Wait()

	out := domain.TripRoutes{Days: make(map[string]*domain.DayRoute, len(days))}
	for _, r := range routes {
		if r == nil {
			continue
		}
		out.Days[r.DayID] = r
		out.DistanceM += r.DistanceM
		out.DurationS += r.DurationS
	}
	return out
}
