package services

import (
	"context"
	"errors"
	"roadtrip-planner-service/internal/adapters/cache"
	"roadtrip-planner-service/internal/adapters/routing"
	"roadtrip-planner-service/internal/domain"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func tripCatalog() *domain.Catalog {
	return domain.NewCatalog([]*domain.Activity{
		{ID: "city", Name: "Portland", Category: domain.CategoryCity, Coordinates: &portland},
		{ID: "a", Name: "Old Port", Duration: hours(2), Coordinates: &portland},
		{ID: "b", Name: "Kennebunkport", Duration: hours(1), Coordinates: &kennebunk},
		{ID: "custom", Name: "Friend's house", Duration: hours(2)},
		{ID: "c", Name: "Marginal Way", Duration: hours(1.5), Coordinates: &ogunquit},
	})
}

func tripRoutes() []routing.MockRoute {
	return []routing.MockRoute{
		{From: portland, To: kennebunk, Meters: 40000, Seconds: 2400},
		{From: kennebunk, To: ogunquit, Meters: 20000, Seconds: 1200},
	}
}

func TestDayWaypointsSkipsCityAndUnpinned(t *testing.T) {
	day := &domain.Day{ID: "d1", Activities: []string{"city", "a", "custom", "b", "missing", "c"}}

	wps := DayWaypoints(day, tripCatalog().Resolve)

	if len(wps) != 3 || wps[0].ActivityID != "a" || wps[1].ActivityID != "b" || wps[2].ActivityID != "c" {
		t.Fatalf("waypoints = %+v", wps)
	}
}

func TestFetchDayRoutesKeepsWaypointOrder(t *testing.T) {
	client := NewRouteClient(routing.NewMockRouteProvider(tripRoutes()), cache.NewMemoryRouteCache())
	day := &domain.Day{ID: "d1", Number: 1, Activities: []string{"a", "b", "c"}}
	wps := DayWaypoints(day, tripCatalog().Resolve)

	segments := FetchDayRoutes(context.Background(), client, wps, 2)

	if len(segments) != 2 {
		t.Fatalf("segments = %d, want 2", len(segments))
	}
	if segments[0].From != "Old Port" || segments[0].To != "Kennebunkport" || segments[0].DistanceM != 40000 {
		t.Fatalf("segment 0 = %+v", segments[0])
	}
	if segments[1].From != "Kennebunkport" || segments[1].To != "Marginal Way" || segments[1].DistanceM != 20000 {
		t.Fatalf("segment 1 = %+v", segments[1])
	}

	route := BuildDayRoute(day, segments)
	if route.DistanceM != 60000 || route.DurationS != 3600 {
		t.Fatalf("totals = %v/%v, want 60000/3600", route.DistanceM, route.DurationS)
	}
	if len(route.Line) != 3 || route.Line[1] != kennebunk {
		t.Fatalf("line = %v, want junction point once", route.Line)
	}
	if route.DayID != "d1" || route.DayNumber != 1 || route.HasFallback() {
		t.Fatalf("route = %+v", route)
	}
}

// slowProvider answers later pairs first to shake out ordering bugs.
type slowProvider struct {
	inner *routing.MockRouteProvider
}

func (p slowProvider) Route(ctx context.Context, origin, destination domain.Coordinates) (domain.Route, error) {
	if origin == portland {
		time.Sleep(20 * time.Millisecond)
	}
	return p.inner.Route(ctx, origin, destination)
}

func TestFetchDayRoutesOrderUnderConcurrency(t *testing.T) {
	client := NewRouteClient(slowProvider{routing.NewMockRouteProvider(tripRoutes())}, nil)
	wps := DayWaypoints(&domain.Day{Activities: []string{"a", "b", "c"}}, tripCatalog().Resolve)

	segments := FetchDayRoutes(context.Background(), client, wps, 0)
	if segments[0].DistanceM != 40000 || segments[1].DistanceM != 20000 {
		t.Fatalf("segments reordered: %+v", segments)
	}
}

func TestFetchDayRoutesMixedFallback(t *testing.T) {
	client := NewRouteClient(routing.NewMockRouteProvider(tripRoutes()[:1]), nil)
	day := &domain.Day{ID: "d1", Activities: []string{"a", "b", "c"}}
	segments := FetchDayRoutes(context.Background(), client, DayWaypoints(day, tripCatalog().Resolve), 4)

	if segments[0].IsFallback || !segments[1].IsFallback {
		t.Fatalf("fallback flags = %v, %v", segments[0].IsFallback, segments[1].IsFallback)
	}
	if !BuildDayRoute(day, segments).HasFallback() {
		t.Fatalf("day route should report fallback")
	}
}

func TestDayWithFewerThanTwoWaypointsHasNoRoute(t *testing.T) {
	client := NewRouteClient(routing.NewMockRouteProvider(tripRoutes()), nil)
	router := NewTripRouter(client, 2)

	days := []*domain.Day{
		{ID: "empty", Number: 1},
		{ID: "single", Number: 2, Activities: []string{"city", "a", "custom"}},
	}
	routes := router.AggregateTrip(context.Background(), days, tripCatalog().Resolve)

	if len(routes.Days) != 0 || routes.DistanceM != 0 || routes.DurationS != 0 {
		t.Fatalf("routes = %+v, want none", routes)
	}
	if segs := FetchDayRoutes(context.Background(), client, nil, 2); len(segs) != 0 {
		t.Fatalf("segments = %v", segs)
	}
	if BuildDayRoute(days[0], nil) != nil {
		t.Fatalf("expected nil day route")
	}
}

func TestAggregateTripSumsDays(t *testing.T) {
	provider := routing.NewMockRouteProvider(tripRoutes())
	router := NewTripRouter(NewRouteClient(provider, cache.NewMemoryRouteCache()), 2)

	days := []*domain.Day{
		{ID: "d1", Number: 1, Activities: []string{"a", "b"}},
		{ID: "d2", Number: 2, Activities: []string{"b", "custom", "c"}},
		{ID: "d3", Number: 3},
	}
	routes := router.AggregateTrip(context.Background(), days, tripCatalog().Resolve)

	if len(routes.Days) != 2 {
		t.Fatalf("day routes = %d, want 2", len(routes.Days))
	}
	if routes.DistanceM != 60000 || routes.DurationS != 3600 {
		t.Fatalf("totals = %v/%v, want 60000/3600", routes.DistanceM, routes.DurationS)
	}
	if routes.Days["d2"].DayNumber != 2 {
		t.Fatalf("d2 route = %+v", routes.Days["d2"])
	}
}

func TestAggregateTripReusesRefreshedDay(t *testing.T) {
	provider := routing.NewMockRouteProvider(tripRoutes())
	router := NewTripRouter(NewRouteClient(provider, nil), 2)
	day := &domain.Day{ID: "d1", Number: 1, Activities: []string{"a", "b"}}

	if _, ok := router.RefreshDay(context.Background(), day, tripCatalog().Resolve); !ok {
		t.Fatalf("refresh should commit")
	}
	router.AggregateTrip(context.Background(), []*domain.Day{day}, tripCatalog().Resolve)

	if provider.Calls() != 1 {
		t.Fatalf("provider calls = %d, want 1", provider.Calls())
	}

	day.Activities = []string{"b", "c"}
	routes := router.AggregateTrip(context.Background(), []*domain.Day{day}, tripCatalog().Resolve)
	if routes.DistanceM != 20000 || provider.Calls() != 2 {
		t.Fatalf("changed day not recomputed: distance=%v calls=%d", routes.DistanceM, provider.Calls())
	}
}

// outageProvider fails every request while down is set.
type outageProvider struct {
	inner *routing.MockRouteProvider
	down  atomic.Bool
}

func (p *outageProvider) Route(ctx context.Context, origin, destination domain.Coordinates) (domain.Route, error) {
	if p.down.Load() {
		return domain.Route{}, errors.New("routing service unavailable")
	}
	return p.inner.Route(ctx, origin, destination)
}

func TestAggregateTripRecomputesFallbackAfterRecovery(t *testing.T) {
	provider := &outageProvider{inner: routing.NewMockRouteProvider(tripRoutes())}
	provider.down.Store(true)
	router := NewTripRouter(NewRouteClient(provider, cache.NewMemoryRouteCache()), 2)
	day := &domain.Day{ID: "d1", Number: 1, Activities: []string{"a", "b"}}
	resolve := tripCatalog().Resolve

	route, ok := router.RefreshDay(context.Background(), day, resolve)
	if !ok || !route.HasFallback() {
		t.Fatalf("refresh during outage = %+v ok=%v, want committed fallback", route, ok)
	}

	provider.down.Store(false)
	routes := router.AggregateTrip(context.Background(), []*domain.Day{day}, resolve)

	got := routes.Days["d1"]
	if got == nil || got.HasFallback() || got.DistanceM != 40000 {
		t.Fatalf("after recovery = %+v, want real 40000 m route", got)
	}
}

// blockingProvider holds every request until released.
type blockingProvider struct {
	inner   *routing.MockRouteProvider
	release chan struct{}
	started chan struct{}
	once    sync.Once
}

func (p *blockingProvider) Route(ctx context.Context, origin, destination domain.Coordinates) (domain.Route, error) {
	p.once.Do(func() { close(p.started) })
	select {
	case <-p.release:
	case <-ctx.Done():
		return domain.Route{}, ctx.Err()
	}
	return p.inner.Route(ctx, origin, destination)
}

func TestRefreshDaySupersededResultIsDiscarded(t *testing.T) {
	blocking := &blockingProvider{
		inner:   routing.NewMockRouteProvider(tripRoutes()),
		release: make(chan struct{}),
		started: make(chan struct{}),
	}
	router := NewTripRouter(NewRouteClient(blocking, nil), 2)
	resolve := tripCatalog().Resolve

	stale := &domain.Day{ID: "d1", Number: 1, Activities: []string{"a", "b"}}
	done := make(chan bool)
	go func() {
		_, ok := router.RefreshDay(context.Background(), stale, resolve)
		done <- ok
	}()
	<-blocking.started

	fresh := &domain.Day{ID: "d1", Number: 1, Activities: []string{"b", "c"}}
	type outcome struct {
		route *domain.DayRoute
		ok    bool
	}
	freshDone := make(chan outcome)
	go func() {
		route, ok := router.RefreshDay(context.Background(), fresh, resolve)
		freshDone <- outcome{route, ok}
	}()

	// Beginning the fresh refresh cancels the stale one.
	if <-done {
		t.Fatalf("stale refresh must not commit")
	}

	close(blocking.release)
	got := <-freshDone
	if !got.ok || got.route.DistanceM != 20000 {
		t.Fatalf("fresh refresh = %+v ok=%v", got.route, got.ok)
	}

	latest, _ := router.Latest("d1")
	if latest.DistanceM != 20000 {
		t.Fatalf("latest = %v, want fresh route", latest.DistanceM)
	}
}
