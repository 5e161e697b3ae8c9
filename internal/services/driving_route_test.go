package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"roadtrip-planner-service/internal/adapters/cache"
	"roadtrip-planner-service/internal/adapters/routing"
	"roadtrip-planner-service/internal/domain"
	"roadtrip-planner-service/internal/geo"
	"roadtrip-planner-service/internal/ports"
	"testing"
	"time"
)

var (
	portland  = domain.Coordinates{Lat: 43.66, Lon: -70.25}
	kennebunk = domain.Coordinates{Lat: 43.36, Lon: -70.48}
	ogunquit  = domain.Coordinates{Lat: 43.25, Lon: -70.60}
)

func TestFetchDrivingRouteServerErrorFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	provider, err := routing.NewOSRMRouteProvider(srv.URL, "driving", time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	client := NewRouteClient(provider, cache.NewMemoryRouteCache())

	r := client.FetchDrivingRoute(context.Background(), portland, kennebunk)

	if !r.IsFallback || r.FallbackReason != domain.FallbackUnavailable {
		t.Fatalf("result = %+v, want unavailable fallback", r)
	}
	miles, _ := geo.Miles(&portland, &kennebunk)
	if math.Abs(r.DistanceM-miles*1609.344) > 1e-6 {
		t.Fatalf("distance = %v, want %v", r.DistanceM, miles*1609.344)
	}
	if math.Abs(r.DurationS-miles/45*3600) > 1e-6 {
		t.Fatalf("duration = %v, want %v", r.DurationS, miles/45*3600)
	}
	if r.Steps == nil || len(r.Steps) != 0 {
		t.Fatalf("steps = %v, want empty", r.Steps)
	}
	if len(r.Coordinates) != 2 || r.Coordinates[0] != portland || r.Coordinates[1] != kennebunk {
		t.Fatalf("coordinates = %v, want endpoints", r.Coordinates)
	}
	if r.DistanceMiles != fmt.Sprintf("%.1f", miles) {
		t.Fatalf("distance miles = %q", r.DistanceMiles)
	}
}

func TestFetchDrivingRouteNetworkFailureNeverErrors(t *testing.T) {
	provider := routing.NewMockRouteProvider(nil)
	provider.Err = errors.New("dial tcp: connection refused")
	client := NewRouteClient(provider, cache.NewMemoryRouteCache())

	r := client.FetchDrivingRoute(context.Background(), portland, kennebunk)
	if !r.IsFallback || math.IsNaN(r.DistanceM) || math.IsInf(r.DurationS, 0) {
		t.Fatalf("result = %+v, want finite fallback", r)
	}
}

func TestFetchDrivingRouteNoRouteReason(t *testing.T) {
	provider := routing.NewMockRouteProvider(nil)
	provider.Err = fmt.Errorf("osrm: %w", ports.ErrNoRoute)
	client := NewRouteClient(provider, nil)

	r := client.FetchDrivingRoute(context.Background(), portland, kennebunk)
	if !r.IsFallback || r.FallbackReason != domain.FallbackNoRoute {
		t.Fatalf("result = %+v, want no_route fallback", r)
	}
}

func TestFetchDrivingRouteInvalidInput(t *testing.T) {
	client := NewRouteClient(routing.NewMockRouteProvider(nil), nil)

	r := client.FetchDrivingRoute(context.Background(), domain.Coordinates{Lat: math.NaN()}, kennebunk)
	if !r.IsFallback || r.FallbackReason != domain.FallbackInvalidInput || r.DistanceM != 0 {
		t.Fatalf("result = %+v, want zero invalid_input fallback", r)
	}
}

func TestFetchDrivingRouteCachesRoadRoutes(t *testing.T) {
	provider := routing.NewMockRouteProvider([]routing.MockRoute{
		{From: portland, To: kennebunk, Meters: 40000, Seconds: 2100},
	})
	routeCache := cache.NewMemoryRouteCache()
	client := NewRouteClient(provider, routeCache)

	first := client.FetchDrivingRoute(context.Background(), portland, kennebunk)
	second := client.FetchDrivingRoute(context.Background(), portland, kennebunk)

	if first.IsFallback || first.DistanceM != 40000 || first.DurationMinutes != 35 {
		t.Fatalf("first = %+v", first)
	}
	if first.DurationFormatted != "35 min" || first.DistanceMiles != "24.9" {
		t.Fatalf("formatted = %q / %q", first.DurationFormatted, first.DistanceMiles)
	}
	if second.DistanceM != first.DistanceM {
		t.Fatalf("cached result differs")
	}
	if provider.Calls() != 1 {
		t.Fatalf("provider calls = %d, want 1", provider.Calls())
	}
	if hits, misses := routeCache.Stats(); hits != 1 || misses != 1 {
		t.Fatalf("hits/misses = %d/%d, want 1/1", hits, misses)
	}
}

func TestFetchDrivingRouteDoesNotCacheFallback(t *testing.T) {
	provider := routing.NewMockRouteProvider(nil)
	routeCache := cache.NewMemoryRouteCache()
	client := NewRouteClient(provider, routeCache)

	client.FetchDrivingRoute(context.Background(), portland, kennebunk)
	client.FetchDrivingRoute(context.Background(), portland, kennebunk)

	if provider.Calls() != 2 || routeCache.Len() != 0 {
		t.Fatalf("calls = %d cached = %d, want 2 and 0", provider.Calls(), routeCache.Len())
	}
}

func TestFormatDuration(t *testing.T) {
	cases := map[int]string{0: "0 min", 45: "45 min", 60: "1 hr 0 min", 135: "2 hr 15 min", -5: "0 min"}
	for in, want := range cases {
		if got := FormatDuration(in); got != want {
			t.Errorf("FormatDuration(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestRouteKeyRoundsCoordinates(t *testing.T) {
	a := domain.Coordinates{Lat: 43.6600001, Lon: -70.2500004}
	if RouteKey(a, kennebunk) != RouteKey(portland, kennebunk) {
		t.Fatalf("keys differ for sub-meter difference")
	}
	if RouteKey(portland, kennebunk) == RouteKey(kennebunk, portland) {
		t.Fatalf("key must be directional")
	}
}
