package services

import (
	"context"
	"errors"
	"roadtrip-planner-service/internal/adapters/cache"
	"roadtrip-planner-service/internal/adapters/repositories"
	"roadtrip-planner-service/internal/adapters/routing"
	"roadtrip-planner-service/internal/domain"
	"roadtrip-planner-service/internal/ports"
	"testing"
)

func seededRepo(t *testing.T) *repositories.MemoryTripRepository {
	t.Helper()
	ctx := context.Background()

	repo := repositories.NewMemoryTripRepository()
	for _, a := range []*domain.Activity{
		{ID: "city", Name: "Portland", Category: domain.CategoryCity, Coordinates: &portland},
		{ID: "a", Name: "Old Port", Duration: hours(2), Coordinates: &portland},
		{ID: "b", Name: "Kennebunkport", Duration: hours(1), Coordinates: &kennebunk},
		{ID: "c", Name: "Marginal Way", Duration: hours(1.5), Coordinates: &ogunquit},
	} {
		if err := repo.SaveActivity(ctx, a); err != nil {
			t.Fatalf("save activity: %v", err)
		}
	}
	if err := repo.SaveDay(ctx, &domain.Day{
		ID:         "d1",
		Number:     1,
		Activities: []string{"a", "b", "c"},
		Schedule: map[string]domain.ScheduleEntry{
			"a": {StartTime: "09:00", Duration: 2},
			"b": {StartTime: "11:30", Duration: 1},
		},
	}); err != nil {
		t.Fatalf("save day: %v", err)
	}
	return repo
}

func TestUpdateDayPrunesRemovedActivities(t *testing.T) {
	repo := seededRepo(t)
	ids := []string{"c", "a"}

	day, err := UpdateDay(context.Background(), repo, "d1", UpdateDayRequest{Activities: &ids})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, ok := day.Schedule["b"]; ok {
		t.Fatalf("schedule entry for removed activity kept")
	}
	if _, ok := day.Schedule["a"]; !ok {
		t.Fatalf("schedule entry for remaining activity dropped")
	}

	stored, _ := repo.GetDay(context.Background(), "d1")
	if len(stored.Activities) != 2 || stored.Activities[0] != "c" {
		t.Fatalf("stored activities = %v", stored.Activities)
	}
}

func TestUpdateDayValidation(t *testing.T) {
	repo := seededRepo(t)
	ctx := context.Background()

	bad := "9am"
	if _, err := UpdateDay(ctx, repo, "d1", UpdateDayRequest{StartTime: &bad}); !errors.Is(err, ErrInvalidDay) {
		t.Fatalf("expected ErrInvalidDay for bad time, got %v", err)
	}

	dup := []string{"a", "a"}
	if _, err := UpdateDay(ctx, repo, "d1", UpdateDayRequest{Activities: &dup}); !errors.Is(err, ErrInvalidDay) {
		t.Fatalf("expected ErrInvalidDay for duplicate, got %v", err)
	}

	unknown := []string{"ghost"}
	if _, err := UpdateDay(ctx, repo, "d1", UpdateDayRequest{Activities: &unknown}); !errors.Is(err, ErrInvalidDay) {
		t.Fatalf("expected ErrInvalidDay for unknown activity, got %v", err)
	}

	loc := "Coast"
	if _, err := UpdateDay(ctx, repo, "missing", UpdateDayRequest{Location: &loc}); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	empty := ""
	day, err := UpdateDay(ctx, repo, "d1", UpdateDayRequest{StartTime: &empty})
	if err != nil || day.EffectiveStartTime() != domain.DefaultDayStart {
		t.Fatalf("clearing start time: day=%+v err=%v", day, err)
	}
}

func TestAutoScheduleDaySaves(t *testing.T) {
	repo := seededRepo(t)

	opts := DefaultScheduleOptions()
	day, err := AutoScheduleDay(context.Background(), repo, "d1", opts)
	if err != nil {
		t.Fatalf("auto schedule: %v", err)
	}
	if len(day.Schedule) != 3 || day.Schedule["a"].StartTime != "09:00" {
		t.Fatalf("schedule = %+v", day.Schedule)
	}

	stored, _ := repo.GetDay(context.Background(), "d1")
	b := stored.Schedule["b"]
	if b.TravelMiles == nil || b.BufferMinutes < opts.MinBufferMinutes {
		t.Fatalf("stored b = %+v", b)
	}
}

func TestBuildTripSummary(t *testing.T) {
	repo := seededRepo(t)
	client := NewRouteClient(routing.NewMockRouteProvider(tripRoutes()), cache.NewMemoryRouteCache())
	router := NewTripRouter(client, 2)

	s, err := BuildTripSummary(context.Background(), repo, router, DefaultLoadThresholds(), "")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if s.CostAvailable {
		t.Fatalf("expected cost unavailable without a rate")
	}
	if s.DistanceM != 60000 || s.DistanceMiles != 37.3 {
		t.Fatalf("totals = %v m / %v mi", s.DistanceM, s.DistanceMiles)
	}
	if len(s.Days) != 1 {
		t.Fatalf("days = %d", len(s.Days))
	}
	d := s.Days[0]
	// 2 + 1 + 1.5 hours of activities and 1 hour of driving.
	if d.ActivityHours != 4.5 || d.DriveHours != 1 || d.Load != LoadBalanced || d.Waypoints != 3 {
		t.Fatalf("day summary = %+v", d)
	}
}

func TestSyncTripCopiesEverything(t *testing.T) {
	local := seededRepo(t)
	remote := repositories.NewMemoryTripRepository()

	res, err := SyncTrip(context.Background(), local, remote)
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if res.Activities != 4 || res.Days != 1 {
		t.Fatalf("result = %+v", res)
	}

	day, err := remote.GetDay(context.Background(), "d1")
	if err != nil {
		t.Fatalf("remote day: %v", err)
	}
	if len(day.Schedule) != 2 || day.Schedule["b"].StartTime != "11:30" {
		t.Fatalf("remote schedule = %+v", day.Schedule)
	}
}
