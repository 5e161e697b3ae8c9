package ports

import (
	"context"
	"errors"
	"roadtrip-planner-service/internal/domain"
)

// ErrNotFound is returned when a requested activity or day does not exist.
var ErrNotFound = errors.New("not found")

// Port: a boundary for storing the trip's activities and days.
type TripRepository interface {
	ListActivities(ctx context.Context) ([]*domain.Activity, error)
	GetActivity(ctx context.Context, id string) (*domain.Activity, error)
	// Insert or replace an activity.
	SaveActivity(ctx context.Context, a *domain.Activity) error

	// Return all days ordered by day number.
	ListDays(ctx context.Context) ([]*domain.Day, error)
	GetDay(ctx context.Context, id string) (*domain.Day, error)
	// Replace a day, including its activity order and schedule.
	SaveDay(ctx context.Context, d *domain.Day) error
}
