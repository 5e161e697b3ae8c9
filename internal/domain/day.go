package domain

// DefaultDayStart is the clock time a day begins when none is set.
const DefaultDayStart = "09:00"

// Timing of one activity within a day.
// BufferMinutes is the travel or transition time consumed immediately before
// the activity starts. TravelMiles is set only when both this stop and the
// previous pinned stop have coordinates.
type ScheduleEntry struct {
	StartTime     string
	Duration      float64
	BufferMinutes int
	TravelMiles   *float64
}

// Represents one day of the trip: an ordered list of activity ids and the
// schedule computed or edited for them.
type Day struct {
	ID         string
	Number     int
	Activities []string
	Schedule   map[string]ScheduleEntry
	StartTime  string
	Location   string
}

// EffectiveStartTime returns the day's start time, defaulting to 09:00.
func (d *Day) EffectiveStartTime() string {
	if d.StartTime == "" {
		return DefaultDayStart
	}
	return d.StartTime
}

// SetActivities replaces the visit order and drops schedule entries for
// activities no longer on the day.
func (d *Day) SetActivities(ids []string) {
	d.Activities = append([]string(nil), ids...)
	d.PruneSchedule()
}

// PruneSchedule removes schedule entries whose activity is not on the day.
func (d *Day) PruneSchedule() {
	if len(d.Schedule) == 0 {
		return
	}

	present := make(map[string]struct{}, len(d.Activities))
	for _, id := range d.Activities {
		present[id] = struct{}{}
	}
	for id := range d.Schedule {
		if _, ok := present[id]; !ok {
			delete(d.Schedule, id)
		}
	}
}
