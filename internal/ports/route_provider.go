package ports

import (
	"context"
	"errors"
	"roadtrip-planner-service/internal/domain"
)

// ErrNoRoute is returned when the routing service answered but found no
// route between the two points.
var ErrNoRoute = errors.New("no route between points")

// Contract for retrieving a road route between two coordinates.
type RouteProvider interface {
	// Return the driving route from origin to destination.
	Route(ctx context.Context, origin, destination domain.Coordinates) (domain.Route, error)
}

// Process-lifetime store of routes keyed by a rounded coordinate pair.
type RouteCache interface {
	Get(key string) (domain.RouteResult, bool)
	Put(key string, r domain.RouteResult)
}
