package services

import (
	"math"
	"reflect"
	"roadtrip-planner-service/internal/domain"
	"roadtrip-planner-service/internal/geo"
	"testing"
)

func hours(h float64) *float64 { return &h }

func at(lat, lon float64) *domain.Coordinates { return &domain.Coordinates{Lat: lat, Lon: lon} }

func mustMinutes(t *testing.T, s string) int {
	t.Helper()
	m, ok := domain.ParseTimeToMinutes(s)
	if !ok {
		t.Fatalf("invalid time %q", s)
	}
	return m
}

func TestBuildAutoScheduleCoordinateBuffer(t *testing.T) {
	portland := at(43.66, -70.25)
	kennebunk := at(43.36, -70.48)
	activities := []*domain.Activity{
		{ID: "a", Duration: hours(2), Coordinates: portland},
		{ID: "b", Duration: hours(1), Coordinates: kennebunk},
	}

	schedule := BuildAutoSchedule(activities, "09:00", DefaultScheduleOptions())

	first := schedule["a"]
	if first.StartTime != "09:00" || first.BufferMinutes != 0 || first.TravelMiles != nil {
		t.Fatalf("first entry = %+v", first)
	}

	miles, _ := geo.Miles(portland, kennebunk)
	wantBuffer := max(int(math.Round(miles/40*60))+10, 15)

	second := schedule["b"]
	if second.BufferMinutes != wantBuffer {
		t.Fatalf("buffer = %d, want %d", second.BufferMinutes, wantBuffer)
	}
	if got, want := mustMinutes(t, second.StartTime), 9*60+120+wantBuffer; got != want {
		t.Fatalf("start = %s (%d), want %d", second.StartTime, got, want)
	}
	if second.TravelMiles == nil || *second.TravelMiles != geo.Round1(miles) {
		t.Fatalf("travel miles = %v, want %v", second.TravelMiles, geo.Round1(miles))
	}
}

func TestBuildAutoScheduleDefaultBufferWithoutCoordinates(t *testing.T) {
	activities := []*domain.Activity{
		{ID: "a", Duration: hours(1)},
		{ID: "b", Duration: hours(2)},
		{ID: "c", Duration: hours(0.5)},
	}

	schedule := BuildAutoSchedule(activities, "08:30", DefaultScheduleOptions())

	for _, id := range []string{"b", "c"} {
		if schedule[id].BufferMinutes != 20 {
			t.Errorf("%s buffer = %d, want 20", id, schedule[id].BufferMinutes)
		}
		if schedule[id].TravelMiles != nil {
			t.Errorf("%s travel miles should be absent", id)
		}
	}
	if schedule["b"].StartTime != "09:50" || schedule["c"].StartTime != "12:10" {
		t.Fatalf("starts = %s, %s", schedule["b"].StartTime, schedule["c"].StartTime)
	}
}

func TestBuildAutoScheduleFirstBufferZeroAndOrdering(t *testing.T) {
	activities := []*domain.Activity{
		{ID: "a", Duration: hours(1.5), Coordinates: at(44.35, -68.21)},
		{ID: "b", Coordinates: at(44.39, -68.20)},
		{ID: "c", Duration: hours(3)},
		{ID: "d", Duration: hours(1), Coordinates: at(44.10, -69.10)},
	}
	opts := DefaultScheduleOptions()
	schedule := BuildAutoSchedule(activities, "07:45", opts)

	if schedule["a"].BufferMinutes != 0 {
		t.Fatalf("first buffer = %d, want 0", schedule["a"].BufferMinutes)
	}

	for i := 1; i < len(activities); i++ {
		prev := schedule[activities[i-1].ID]
		cur := schedule[activities[i].ID]
		want := (mustMinutes(t, prev.StartTime) + int(math.Round(prev.Duration*60)) + cur.BufferMinutes) % domain.MinutesPerDay
		if got := mustMinutes(t, cur.StartTime); got != want {
			t.Errorf("activity %s start = %d, want %d", activities[i].ID, got, want)
		}
	}
}

func TestBuildAutoScheduleMissingDurationDefaults(t *testing.T) {
	nan := math.NaN()
	activities := []*domain.Activity{{ID: "a"}, {ID: "b", Duration: &nan}}

	schedule := BuildAutoSchedule(activities, "09:00", DefaultScheduleOptions())

	for _, id := range []string{"a", "b"} {
		if schedule[id].Duration != 1.5 {
			t.Errorf("%s duration = %v, want 1.5", id, schedule[id].Duration)
		}
	}
	if schedule["b"].StartTime != "10:50" {
		t.Fatalf("b start = %s, want 10:50", schedule["b"].StartTime)
	}
}

func TestBuildAutoScheduleMinimumBufferAtSamePlace(t *testing.T) {
	p := at(43.66, -70.25)
	activities := []*domain.Activity{
		{ID: "a", Duration: hours(1), Coordinates: p},
		{ID: "b", Duration: hours(1), Coordinates: p},
	}
	opts := DefaultScheduleOptions()
	opts.OverheadMinutes = 0

	schedule := BuildAutoSchedule(activities, "09:00", opts)
	if schedule["b"].BufferMinutes != 15 {
		t.Fatalf("buffer = %d, want minimum 15", schedule["b"].BufferMinutes)
	}
}

func TestBuildAutoScheduleMeasuresFromLastPinnedStop(t *testing.T) {
	portland := at(43.66, -70.25)
	kennebunk := at(43.36, -70.48)
	activities := []*domain.Activity{
		{ID: "a", Duration: hours(1), Coordinates: portland},
		{ID: "custom", Duration: hours(1)},
		{ID: "b", Duration: hours(1), Coordinates: kennebunk},
	}

	schedule := BuildAutoSchedule(activities, "09:00", DefaultScheduleOptions())

	if schedule["custom"].BufferMinutes != 20 {
		t.Fatalf("custom buffer = %d, want default 20", schedule["custom"].BufferMinutes)
	}
	miles, _ := geo.Miles(portland, kennebunk)
	if want := DefaultScheduleOptions().TravelBufferMinutes(miles); schedule["b"].BufferMinutes != want {
		t.Fatalf("b buffer = %d, want %d measured from a", schedule["b"].BufferMinutes, want)
	}
}

func TestBuildAutoScheduleEstimationDisabled(t *testing.T) {
	activities := []*domain.Activity{
		{ID: "a", Duration: hours(1), Coordinates: at(43.66, -70.25)},
		{ID: "b", Duration: hours(1), Coordinates: at(43.36, -70.48)},
	}
	opts := DefaultScheduleOptions()
	opts.EstimateFromCoordinates = false
	opts.DefaultBufferMinutes = 30

	schedule := BuildAutoSchedule(activities, "09:00", opts)
	if schedule["b"].BufferMinutes != 30 || schedule["b"].TravelMiles != nil {
		t.Fatalf("entry = %+v, want default buffer 30 and no miles", schedule["b"])
	}
}

func TestBuildAutoScheduleInvalidStartAndEmpty(t *testing.T) {
	empty := BuildAutoSchedule(nil, "09:00", DefaultScheduleOptions())
	if empty == nil || len(empty) != 0 {
		t.Fatalf("empty schedule = %v", empty)
	}

	schedule := BuildAutoSchedule([]*domain.Activity{{ID: "a"}}, "late", DefaultScheduleOptions())
	if schedule["a"].StartTime != "09:00" {
		t.Fatalf("start = %s, want 09:00", schedule["a"].StartTime)
	}
}

func TestBuildAutoScheduleWrapsPastMidnight(t *testing.T) {
	activities := []*domain.Activity{
		{ID: "a", Duration: hours(2)},
		{ID: "b", Duration: hours(1)},
	}
	schedule := BuildAutoSchedule(activities, "22:30", DefaultScheduleOptions())
	if schedule["b"].StartTime != "00:50" {
		t.Fatalf("start = %s, want 00:50", schedule["b"].StartTime)
	}
}

func TestBuildAutoScheduleDeterministic(t *testing.T) {
	activities := []*domain.Activity{
		{ID: "a", Duration: hours(2), Coordinates: at(43.66, -70.25)},
		{ID: "b", Coordinates: at(43.36, -70.48)},
		{ID: "c", Duration: hours(0.75)},
	}

	first := BuildAutoSchedule(activities, "09:00", DefaultScheduleOptions())
	for i := 0; i < 5; i++ {
		again := BuildAutoSchedule(activities, "09:00", DefaultScheduleOptions())
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs: %v vs %v", i, first, again)
		}
	}
}

func TestScheduleDayReplacesAndPrunes(t *testing.T) {
	catalog := domain.NewCatalog([]*domain.Activity{
		{ID: "a", Duration: hours(1)},
		{ID: "b", Duration: hours(2)},
	})
	day := &domain.Day{
		ID:         "d1",
		Activities: []string{"a", "b", "ghost"},
		StartTime:  "10:00",
		Schedule: map[string]domain.ScheduleEntry{
			"a":     {StartTime: "15:00", Duration: 4},
			"stale": {StartTime: "08:00", Duration: 1},
		},
	}

	ScheduleDay(day, catalog.Resolve, DefaultScheduleOptions())

	if len(day.Schedule) != 2 {
		t.Fatalf("schedule = %v, want entries for a and b only", day.Schedule)
	}
	if day.Schedule["a"].StartTime != "10:00" || day.Schedule["a"].Duration != 1 {
		t.Fatalf("a = %+v, want regenerated entry", day.Schedule["a"])
	}
	if day.Schedule["b"].StartTime != "11:20" {
		t.Fatalf("b start = %s, want 11:20", day.Schedule["b"].StartTime)
	}
}
