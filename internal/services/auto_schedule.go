package services

import (
	"math"
	"roadtrip-planner-service/internal/domain"
	"roadtrip-planner-service/internal/geo"
)

// ScheduleOptions tunes how travel buffers between stops are estimated.
// Zero values for speed and the minimum buffer fall back to the defaults.
type ScheduleOptions struct {
	// Buffer used when either endpoint lacks coordinates.
	DefaultBufferMinutes int
	// When false every buffer after the first is DefaultBufferMinutes.
	EstimateFromCoordinates bool
	AverageSpeedMPH         float64
	// Parking and transition time added to the drive estimate.
	OverheadMinutes  int
	MinBufferMinutes int
}

const (
	defaultStartMinutes  = 9 * 60
	defaultBufferMinutes = 20
	defaultSpeedMPH      = 40.0
	defaultOverheadMin   = 10
	defaultMinBufferMin  = 15
)

func DefaultScheduleOptions() ScheduleOptions {
	return ScheduleOptions{
		DefaultBufferMinutes:    defaultBufferMinutes,
		EstimateFromCoordinates: true,
		AverageSpeedMPH:         defaultSpeedMPH,
		OverheadMinutes:         defaultOverheadMin,
		MinBufferMinutes:        defaultMinBufferMin,
	}
}

func (o ScheduleOptions) normalized() ScheduleOptions {
	if !(o.AverageSpeedMPH > 0) || math.IsInf(o.AverageSpeedMPH, 0) {
		o.AverageSpeedMPH = defaultSpeedMPH
	}
	if o.MinBufferMinutes <= 0 {
		o.MinBufferMinutes = defaultMinBufferMin
	}
	if o.DefaultBufferMinutes < 0 {
		o.DefaultBufferMinutes = 0
	}
	if o.OverheadMinutes < 0 {
		o.OverheadMinutes = 0
	}
	return o
}

// TravelBufferMinutes estimates the minutes needed to get between two stops
// that are miles apart: drive time at the average speed plus overhead, never
// below the minimum buffer.
func (o ScheduleOptions) TravelBufferMinutes(miles float64) int {
	o = o.normalized()
	drive := int(math.Round(miles / o.AverageSpeedMPH * 60))
	return max(drive+o.OverheadMinutes, o.MinBufferMinutes)
}

// scheduleState is the accumulator threaded through the activity list.
// lastCoords is the position of the most recent stop that had coordinates,
// so a stop without coordinates does not reset the travel origin.
type scheduleState struct {
	cursorMinutes int
	lastCoords    *domain.Coordinates
	index         int
}

// BuildAutoSchedule computes start times for activities visited in order,
// beginning at startTime (09:00 when invalid).
//
// The result replaces any existing schedule for the day; manual edits are not
// merged. Clock times wrap silently past midnight.
func BuildAutoSchedule(
	activities []*domain.Activity,
	startTime string,
	opts ScheduleOptions,
) map[string]domain.ScheduleEntry {
	opts = opts.normalized()

	cursor, ok := domain.ParseTimeToMinutes(startTime)
	if !ok {
		cursor = defaultStartMinutes
	}

	schedule := make(map[string]domain.ScheduleEntry, len(activities))
	state := scheduleState{cursorMinutes: cursor}

	for _, a := range activities {
		if a == nil {
			continue
		}
		var entry domain.ScheduleEntry
		state, entry = scheduleStep(state, a, opts)
		schedule[a.ID] = entry
	}

	return schedule
}

// scheduleStep places one activity and returns the advanced state.
func scheduleStep(
	s scheduleState,
	a *domain.Activity,
	opts ScheduleOptions,
) (scheduleState, domain.ScheduleEntry) {
	buffer := 0
	var travelMiles *float64

	if s.index > 0 {
		buffer = opts.DefaultBufferMinutes
		if opts.EstimateFromCoordinates {
			if miles, ok := geo.Miles(s.lastCoords, a.Coordinates); ok {
				buffer = opts.TravelBufferMinutes(miles)
				rounded := geo.Round1(miles)
				travelMiles = &rounded
			}
		}
	}

	duration, ok := a.DurationHours()
	if !ok {
		duration = domain.DefaultActivityHours
	}

	s.cursorMinutes += buffer
	entry := domain.ScheduleEntry{
		StartTime:     domain.FormatMinutesToTime(s.cursorMinutes),
		Duration:      duration,
		BufferMinutes: buffer,
		TravelMiles:   travelMiles,
	}
	s.cursorMinutes += int(math.Round(duration * 60))

	if domain.HasCoordinates(a.Coordinates) {
		c := *a.Coordinates
		s.lastCoords = &c
	}
	s.index++

	return s, entry
}

// ActivityResolver looks up an activity by id, returning nil when unknown.
type ActivityResolver func(id string) *domain.Activity

// ScheduleDay regenerates the schedule of day from its current activity order.
// Ids the resolver does not know are left unscheduled.
func ScheduleDay(day *domain.Day, resolve ActivityResolver, opts ScheduleOptions) {
	activities := make([]*domain.Activity, 0, len(day.Activities))
	for _, id := range day.Activities {
		if a := resolve(id); a != nil {
			activities = append(activities, a)
		}
	}

	day.Schedule = BuildAutoSchedule(activities, day.EffectiveStartTime(), opts)
	day.PruneSchedule()
}
