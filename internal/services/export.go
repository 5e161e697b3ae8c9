package services

import (
	"roadtrip-planner-service/internal/domain"
	"strconv"
)

// ExportRow is one scheduled activity in the flat itinerary export.
// Activities without a schedule entry are exported with empty times.
type ExportRow struct {
	DayNumber     int
	DayID         string
	Order         int
	ActivityID    string
	Name          string
	Location      string
	StartTime     string
	EndTime       string
	DurationHours float64
	BufferMinutes int
	TravelMiles   string
}

// ExportHeader names the columns of ExportRow.Record.
var ExportHeader = []string{
	"day", "day_id", "order", "activity_id", "name", "location",
	"start_time", "end_time", "duration_hours", "buffer_minutes", "travel_miles",
}

// Record renders the row as CSV fields in ExportHeader order.
func (r ExportRow) Record() []string {
	return []string{
		strconv.Itoa(r.DayNumber),
		r.DayID,
		strconv.Itoa(r.Order),
		r.ActivityID,
		r.Name,
		r.Location,
		r.StartTime,
		r.EndTime,
		strconv.FormatFloat(r.DurationHours, 'f', -1, 64),
		strconv.Itoa(r.BufferMinutes),
		r.TravelMiles,
	}
}

// ExportRows flattens days into one row per activity in visit order.
func ExportRows(days []*domain.Day, resolve ActivityResolver) []ExportRow {
	rows := make([]ExportRow, 0)
	for _, day := range days {
		if day == nil {
			continue
		}
		for i, id := range day.Activities {
			row := ExportRow{
				DayNumber:  day.Number,
				DayID:      day.ID,
				Order:      i + 1,
				ActivityID: id,
			}
			a := resolve(id)
			if a != nil {
				row.Name = a.Name
				row.Location = a.Location
				row.DurationHours, _ = a.DurationHours()
			}
			if e, ok := day.Schedule[id]; ok {
				row.StartTime = e.StartTime
				row.EndTime = domain.ComputeEndTime(e.StartTime, e.Duration)
				row.DurationHours = e.Duration
				row.BufferMinutes = e.BufferMinutes
				if e.TravelMiles != nil {
					row.TravelMiles = strconv.FormatFloat(*e.TravelMiles, 'f', 1, 64)
				}
			}
			rows = append(rows, row)
		}
	}
	return rows
}
