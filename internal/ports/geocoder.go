package ports

import (
	"context"
	"roadtrip-planner-service/internal/domain"
)

// Contract for resolving a free-text place query to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (domain.Place, error)
}

// Persistent cache of geocoding hits keyed by normalized query.
type GeocodeCache interface {
	GetMany(ctx context.Context, queries []string) (map[string]domain.Place, error)
	PutMany(ctx context.Context, places map[string]domain.Place) error
}
