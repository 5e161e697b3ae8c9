package services

import (
	"math"
	"roadtrip-planner-service/internal/domain"
	"testing"
)

func TestClassifyLoadThresholdsAreInclusive(t *testing.T) {
	cases := []struct {
		activity, drive float64
		want            string
	}{
		{9, 0, LoadAmbitious},
		{8.99, 0, LoadFull},
		{7, 0, LoadFull},
		{6.99, 0, LoadBalanced},
		{5, 0, LoadBalanced},
		{4.99, 0, LoadEasy},
		{0, 0, LoadEasy},
		{6, 1.5, LoadFull},
		{4, 5, LoadAmbitious},
	}
	for _, c := range cases {
		if got := ClassifyLoad(c.activity, c.drive); got != c.want {
			t.Errorf("ClassifyLoad(%v, %v) = %q, want %q", c.activity, c.drive, got, c.want)
		}
	}
}

func TestCustomThresholds(t *testing.T) {
	th := LoadThresholds{Ambitious: 6, Full: 4, Balanced: 2}
	if got := th.Classify(3, 1); got != LoadFull {
		t.Fatalf("got %q, want %q", got, LoadFull)
	}
}

func TestActivityHoursPrefersScheduledDuration(t *testing.T) {
	catalog := domain.NewCatalog([]*domain.Activity{
		{ID: "a", Duration: hours(2)},
		{ID: "b", Duration: hours(3)},
		{ID: "c"},
		{ID: "d", Duration: hours(math.NaN())},
	})
	day := &domain.Day{
		Activities: []string{"a", "b", "c", "d", "ghost"},
		Schedule:   map[string]domain.ScheduleEntry{"b": {StartTime: "10:00", Duration: 1}},
	}

	if got := ActivityHours(day, catalog.Resolve); got != 3 {
		t.Fatalf("ActivityHours = %v, want 3", got)
	}
}

func TestDriveHours(t *testing.T) {
	if got := DriveHours(nil); got != 0 {
		t.Fatalf("DriveHours(nil) = %v", got)
	}
	if got := DriveHours(&domain.DayRoute{DurationS: 5400}); got != 1.5 {
		t.Fatalf("DriveHours = %v, want 1.5", got)
	}
}

func TestParseCostPerMile(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"0.67", 0.67, true},
		{"$0.67", 0.67, true},
		{" $ 1.5 ", 1.5, true},
		{"0", 0, true},
		{"", 0, false},
		{"abc", 0, false},
		{"-0.2", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
	}
	for _, c := range cases {
		got, ok := ParseCostPerMile(c.in)
		if ok != c.ok || got != c.want {
			t.Errorf("ParseCostPerMile(%q) = %v,%v want %v,%v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestEstimateCost(t *testing.T) {
	cost, ok := EstimateCost(160934.4, "0.5")
	if !ok || math.Abs(cost-50) > 1e-9 {
		t.Fatalf("EstimateCost = %v,%v want 50,true", cost, ok)
	}
	if _, ok := EstimateCost(160934.4, "free"); ok {
		t.Fatalf("expected unavailable cost for bad rate")
	}
}
