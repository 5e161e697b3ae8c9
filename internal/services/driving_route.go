package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"roadtrip-planner-service/internal/domain"
	"roadtrip-planner-service/internal/geo"
	"roadtrip-planner-service/internal/ports"
)

// DefaultFallbackSpeedMPH is the average speed assumed for straight-line
// estimates when no road route is available.
const DefaultFallbackSpeedMPH = 45.0

// RouteClient resolves driving routes through a RouteProvider and always
// produces a usable result: any provider failure degrades to a straight-line
// estimate flagged with IsFallback.
type RouteClient struct {
	Provider         ports.RouteProvider
	Cache            ports.RouteCache
	FallbackSpeedMPH float64
}

func NewRouteClient(provider ports.RouteProvider, cache ports.RouteCache) *RouteClient {
	return &RouteClient{
		Provider:         provider,
		Cache:            cache,
		FallbackSpeedMPH: DefaultFallbackSpeedMPH,
	}
}

// RouteKey identifies an origin/destination pair with coordinates rounded to
// five decimals (about one meter).
func RouteKey(origin, destination domain.Coordinates) string {
	return fmt.Sprintf("%.5f,%.5f|%.5f,%.5f", origin.Lat, origin.Lon, destination.Lat, destination.Lon)
}

// FetchDrivingRoute returns the driving route from origin to destination.
// Only road routes are cached, so a transient outage is retried on the next call.
func (c *RouteClient) FetchDrivingRoute(ctx context.Context, origin, destination domain.Coordinates) domain.RouteResult {
	if !origin.Valid() || !destination.Valid() {
		return c.fallback(origin, destination, domain.FallbackInvalidInput)
	}

	key := RouteKey(origin, destination)
	if c.Cache != nil {
		if r, ok := c.Cache.Get(key); ok {
			return r
		}
	}

	if c.Provider == nil {
		return c.fallback(origin, destination, domain.FallbackUnavailable)
	}

	route, err := c.Provider.Route(ctx, origin, destination)
	if err != nil {
		reason := domain.FallbackUnavailable
		if errors.Is(err, ports.ErrNoRoute) {
			reason = domain.FallbackNoRoute
		}
		log.Printf("route fallback reason=%s key=%s err=%v", reason, key, err)
		return c.fallback(origin, destination, reason)
	}

	line := route.Line
	if len(line) == 0 {
		line = []domain.Coordinates{origin, destination}
	}
	steps := route.Steps
	if steps == nil {
		steps = []domain.Step{}
	}

	result := newRouteResult(line, route.DistanceM, route.DurationS, steps)
	if c.Cache != nil {
		c.Cache.Put(key, result)
	}
	return result
}

// fallback estimates the route as a straight line driven at FallbackSpeedMPH.
func (c *RouteClient) fallback(origin, destination domain.Coordinates, reason string) domain.RouteResult {
	speed := c.FallbackSpeedMPH
	if !(speed > 0) || math.IsInf(speed, 0) {
		speed = DefaultFallbackSpeedMPH
	}

	miles, ok := geo.Miles(&origin, &destination)
	if !ok {
		miles = 0
	}

	result := newRouteResult(
		[]domain.Coordinates{origin, destination},
		geo.MilesToMeters(miles),
		miles/speed*3600,
		[]domain.Step{},
	)
	result.IsFallback = true
	result.FallbackReason = reason
	return result
}

func newRouteResult(line []domain.Coordinates, meters, seconds float64, steps []domain.Step) domain.RouteResult {
	minutes := int(math.Round(seconds / 60))
	return domain.RouteResult{
		Coordinates:       line,
		DistanceM:         meters,
		DurationS:         seconds,
		DistanceMiles:     fmt.Sprintf("%.1f", geo.MetersToMiles(meters)),
		DurationMinutes:   minutes,
		DurationFormatted: FormatDuration(minutes),
		Steps:             steps,
	}
}

// FormatDuration renders minutes as "H hr M min", or "M min" under an hour.
func FormatDuration(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	h, m := minutes/60, minutes%60
	if h == 0 {
		return fmt.Sprintf("%d min", m)
	}
	return fmt.Sprintf("%d hr %d min", h, m)
}
