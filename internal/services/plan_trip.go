package services

import (
	"context"
	"errors"
	"fmt"
	"roadtrip-planner-service/internal/domain"
	"roadtrip-planner-service/internal/ports"
	"strings"
)

// LoadResolver reads the activity catalog and returns a resolver over it.
func LoadResolver(ctx context.Context, repo ports.TripRepository) (ActivityResolver, error) {
	activities, err := repo.ListActivities(ctx)
	if err != nil {
		return nil, fmt.Errorf("load resolver: list activities: %w", err)
	}
	return domain.NewCatalog(activities).Resolve, nil
}

// UpdateDayRequest carries the editable fields of a day. Nil fields are left
// unchanged.
type UpdateDayRequest struct {
	Activities *[]string
	StartTime  *string
	Location   *string
}

// ErrInvalidDay is wrapped by UpdateDay for rejected edits.
var ErrInvalidDay = errors.New("invalid day update")

// UpdateDay applies an edit to a stored day. Changing the activity list prunes
// schedule entries for removed activities; the rest of the schedule is kept
// as is until the day is rescheduled.
func UpdateDay(
	ctx context.Context,
	repo ports.TripRepository,
	dayID string,
	req UpdateDayRequest,
) (*domain.Day, error) {
	day, err := repo.GetDay(ctx, dayID)
	if err != nil {
		return nil, fmt.Errorf("update day %q: %w", dayID, err)
	}

	if req.StartTime != nil {
		st := strings.TrimSpace(*req.StartTime)
		if st != "" {
			if _, ok := domain.ParseTimeToMinutes(st); !ok {
				return nil, fmt.Errorf("update day %q: start_time %q: %w", dayID, st, ErrInvalidDay)
			}
		}
		day.StartTime = st
	}

	if req.Location != nil {
		day.Location = strings.TrimSpace(*req.Location)
	}

	if req.Activities != nil {
		seen := make(map[string]struct{}, len(*req.Activities))
		for _, id := range *req.Activities {
			if _, dup := seen[id]; dup {
				return nil, fmt.Errorf("update day %q: activity %q listed twice: %w", dayID, id, ErrInvalidDay)
			}
			seen[id] = struct{}{}
			_, err := repo.GetActivity(ctx, id)
			if errors.Is(err, ports.ErrNotFound) {
				return nil, fmt.Errorf("update day %q: unknown activity %q: %w", dayID, id, ErrInvalidDay)
			}
			if err != nil {
				return nil, fmt.Errorf("update day %q: activity %q: %w", dayID, id, err)
			}
		}
		day.SetActivities(*req.Activities)
	}

	if err := repo.SaveDay(ctx, day); err != nil {
		return nil, fmt.Errorf("update day %q: save: %w", dayID, err)
	}
	return day, nil
}

// AutoScheduleDay regenerates and stores the schedule of a day.
func AutoScheduleDay(
	ctx context.Context,
	repo ports.TripRepository,
	dayID string,
	opts ScheduleOptions,
) (*domain.Day, error) {
	day, err := repo.GetDay(ctx, dayID)
	if err != nil {
		return nil, fmt.Errorf("auto schedule day %q: %w", dayID, err)
	}

	resolve, err := LoadResolver(ctx, repo)
	if err != nil {
		return nil, fmt.Errorf("auto schedule day %q: %w", dayID, err)
	}

	ScheduleDay(day, resolve, opts)

	if err := repo.SaveDay(ctx, day); err != nil {
		return nil, fmt.Errorf("auto schedule day %q: save: %w", dayID, err)
	}
	return day, nil
}

// BuildTripSummary routes every stored day and summarizes loads and totals.
func BuildTripSummary(
	ctx context.Context,
	repo ports.TripRepository,
	router *TripRouter,
	thresholds LoadThresholds,
	costPerMile string,
) (TripSummary, error) {
	days, err := repo.ListDays(ctx)
	if err != nil {
		return TripSummary{}, fmt.Errorf("trip summary: list days: %w", err)
	}

	resolve, err := LoadResolver(ctx, repo)
	if err != nil {
		return TripSummary{}, fmt.Errorf("trip summary: %w", err)
	}

	routes := router.AggregateTrip(ctx, days, resolve)
	return SummarizeTrip(days, routes, resolve, thresholds, costPerMile), nil
}
