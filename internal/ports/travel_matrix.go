package ports

import (
	"context"
	"roadtrip-planner-service/internal/domain"
)

// TravelMatrix returns driving durations from one origin to many destinations
// in a single call. Unreachable destinations are reported as +Inf seconds.
type TravelMatrix interface {
	DurationsFrom(ctx context.Context, origin domain.Coordinates, destinations []domain.Coordinates) ([]float64, error)
}
