package routing

import (
	"context"
	"fmt"
	"math"
	"roadtrip-planner-service/internal/domain"
	"sync"
)

// MockRoute is a canned route between two coordinates.
type MockRoute struct {
	From, To domain.Coordinates
	Meters   float64
	Seconds  float64
}

// MockRouteProvider returns canned routes and counts calls. Pairs without a
// canned route return Err, or an error naming the pair when Err is nil.
type MockRouteProvider struct {
	mu    sync.Mutex
	m     map[[2]domain.Coordinates]domain.Route
	calls int
	Err   error
}

func NewMockRouteProvider(routes []MockRoute) *MockRouteProvider {
	m := make(map[[2]domain.Coordinates]domain.Route, len(routes))
	for _, r := range routes {
		m[[2]domain.Coordinates{r.From, r.To}] = domain.Route{
			Line:      []domain.Coordinates{r.From, r.To},
			DistanceM: r.Meters,
			DurationS: r.Seconds,
			Steps: []domain.Step{
				{Instruction: "Depart", ManeuverType: "depart"},
				{Instruction: "Arrive at destination", ManeuverType: "arrive"},
			},
		}
	}
	return &MockRouteProvider{m: m}
}

func (p *MockRouteProvider) Route(ctx context.Context, origin, destination domain.Coordinates) (domain.Route, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++

	r, ok := p.m[[2]domain.Coordinates{origin, destination}]
	if !ok {
		if p.Err != nil {
			return domain.Route{}, p.Err
		}
		return domain.Route{}, fmt.Errorf("missing route %v -> %v", origin, destination)
	}

	return r, nil
}

// DurationsFrom answers from the canned route durations; pairs without one
// are +Inf. A non-nil Err fails the whole call.
func (p *MockRouteProvider) DurationsFrom(ctx context.Context, origin domain.Coordinates, destinations []domain.Coordinates) ([]float64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++

	if p.Err != nil {
		return nil, p.Err
	}

	out := make([]float64, len(destinations))
	for i, d := range destinations {
		r, ok := p.m[[2]domain.Coordinates{origin, d}]
		if !ok {
			out[i] = math.Inf(1)
			continue
		}
		out[i] = r.DurationS
	}
	return out, nil
}

// Calls returns the number of Route invocations.
func (p *MockRouteProvider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}
