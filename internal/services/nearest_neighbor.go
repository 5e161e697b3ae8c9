package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"roadtrip-planner-service/internal/domain"
	"roadtrip-planner-service/internal/geo"
	"roadtrip-planner-service/internal/ports"
)

// legCosts returns the cost of travelling from one stop to each candidate.
type legCosts func(from domain.Coordinates, candidates []domain.Coordinates) []float64

func straightLineCosts(from domain.Coordinates, candidates []domain.Coordinates) []float64 {
	out := make([]float64, len(candidates))
	for i := range candidates {
		miles, ok := geo.Miles(&from, &candidates[i])
		if !ok {
			miles = math.Inf(1)
		}
		out[i] = miles
	}
	return out
}

// matrixCosts ranks candidates by driving duration from the matrix, falling
// back to straight-line distance for a step when the matrix call fails.
func matrixCosts(ctx context.Context, matrix ports.TravelMatrix) legCosts {
	return func(from domain.Coordinates, candidates []domain.Coordinates) []float64 {
		durations, err := matrix.DurationsFrom(ctx, from, candidates)
		if err != nil || len(durations) != len(candidates) {
			log.Printf("travel matrix unavailable, using straight-line distance err=%v", err)
			return straightLineCosts(from, candidates)
		}
		return durations
	}
}

// NearestNeighborOrder suggests a visit order for a day using a greedy
// nearest-neighbor walk over straight-line distance.
//
// The first pinned stop stays first. City markers and activities without
// coordinates keep their slots; only the slots held by pinned stops are
// refilled, so a lunch or hotel without coordinates does not move.
// Ties are broken by activity id so the result is deterministic.
func NearestNeighborOrder(day *domain.Day, resolve ActivityResolver) []string {
	return nearestNeighborOrder(day, resolve, straightLineCosts)
}

func nearestNeighborOrder(day *domain.Day, resolve ActivityResolver, costs legCosts) []string {
	order := append([]string(nil), day.Activities...)

	slots := make([]int, 0, len(order))
	coords := make(map[string]domain.Coordinates, len(order))
	for i, id := range order {
		a := resolve(id)
		if a == nil || a.IsCity() || !domain.HasCoordinates(a.Coordinates) {
			continue
		}
		slots = append(slots, i)
		coords[id] = *a.Coordinates
	}
	if len(slots) < 3 {
		return order
	}

	remaining := make([]string, 0, len(slots)-1)
	for _, i := range slots[1:] {
		remaining = append(remaining, order[i])
	}

	current := order[slots[0]]
	for _, slot := range slots[1:] {
		candidates := make([]domain.Coordinates, len(remaining))
		for i, id := range remaining {
			candidates[i] = coords[id]
		}
		cost := costs(coords[current], candidates)

		// Select next stop by minimum cost (greedy step).
		best := -1
		for i, id := range remaining {
			if best == -1 || cost[i] < cost[best] || (cost[i] == cost[best] && id < remaining[best]) {
				best = i
			}
		}

		current = remaining[best]
		order[slot] = current
		remaining = append(remaining[:best], remaining[best+1:]...)
	}

	return order
}

// OptimizeDayOrder reorders a stored day by nearest neighbor and saves it.
// Legs are ranked by driving duration when matrix is set, else by straight-line
// distance. The schedule is left as is; entries are keyed by activity, so they
// survive the reorder until the day is rescheduled.
func OptimizeDayOrder(
	ctx context.Context,
	repo ports.TripRepository,
	matrix ports.TravelMatrix,
	dayID string,
) (*domain.Day, error) {
	day, err := repo.GetDay(ctx, dayID)
	if err != nil {
		return nil, fmt.Errorf("optimize day %q: %w", dayID, err)
	}

	resolve, err := LoadResolver(ctx, repo)
	if err != nil {
		return nil, fmt.Errorf("optimize day %q: %w", dayID, err)
	}

	costs := legCosts(straightLineCosts)
	if matrix != nil {
		costs = matrixCosts(ctx, matrix)
	}
	day.SetActivities(nearestNeighborOrder(day, resolve, costs))

	if err := repo.SaveDay(ctx, day); err != nil {
		return nil, fmt.Errorf("optimize day %q: save: %w", dayID, err)
	}
	return day, nil
}
