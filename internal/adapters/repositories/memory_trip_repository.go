package repositories

import (
	"context"
	"fmt"
	"roadtrip-planner-service/internal/domain"
	"roadtrip-planner-service/internal/ports"
	"sort"
	"sync"
)

// In-memory implementation of the TripRepository port. Values are copied on
// the way in and out so callers cannot mutate stored state.
type MemoryTripRepository struct {
	mu         sync.RWMutex
	activities map[string]*domain.Activity
	order      []string
	days       map[string]*domain.Day
}

func NewMemoryTripRepository() *MemoryTripRepository {
	return &MemoryTripRepository{
		activities: make(map[string]*domain.Activity),
		days:       make(map[string]*domain.Day),
	}
}

func (m *MemoryTripRepository) ListActivities(ctx context.Context) ([]*domain.Activity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*domain.Activity, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, copyActivity(m.activities[id]))
	}
	return out, nil
}

func (m *MemoryTripRepository) GetActivity(ctx context.Context, id string) (*domain.Activity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.activities[id]
	if !ok {
		return nil, fmt.Errorf("get activity %q: %w", id, ports.ErrNotFound)
	}
	return copyActivity(a), nil
}

func (m *MemoryTripRepository) SaveActivity(ctx context.Context, a *domain.Activity) error {
	if a == nil || a.ID == "" {
		return fmt.Errorf("save activity: id must be non-empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.activities[a.ID]; !ok {
		m.order = append(m.order, a.ID)
	}
	m.activities[a.ID] = copyActivity(a)
	return nil
}

func (m *MemoryTripRepository) ListDays(ctx context.Context) ([]*domain.Day, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*domain.Day, 0, len(m.days))
	for _, d := range m.days {
		out = append(out, copyDay(d))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Number != out[j].Number {
			return out[i].Number < out[j].Number
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *MemoryTripRepository) GetDay(ctx context.Context, id string) (*domain.Day, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	d, ok := m.days[id]
	if !ok {
		return nil, fmt.Errorf("get day %q: %w", id, ports.ErrNotFound)
	}
	return copyDay(d), nil
}

func (m *MemoryTripRepository) SaveDay(ctx context.Context, d *domain.Day) error {
	if d == nil || d.ID == "" {
		return fmt.Errorf("save day: id must be non-empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.days[d.ID] = copyDay(d)
	return nil
}

func copyActivity(a *domain.Activity) *domain.Activity {
	c := *a
	if a.Coordinates != nil {
		coords := *a.Coordinates
		c.Coordinates = &coords
	}
	if a.Duration != nil {
		d := *a.Duration
		c.Duration = &d
	}
	return &c
}

func copyDay(d *domain.Day) *domain.Day {
	c := *d
	c.Activities = append([]string(nil), d.Activities...)
	c.Schedule = make(map[string]domain.ScheduleEntry, len(d.Schedule))
	for k, v := range d.Schedule {
		if v.TravelMiles != nil {
			miles := *v.TravelMiles
			v.TravelMiles = &miles
		}
		c.Schedule[k] = v
	}
	return &c
}
