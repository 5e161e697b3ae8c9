package dto

type ScheduleEntryResponse struct {
	StartTime     string   `json:"start_time"`
	EndTime       string   `json:"end_time"`
	Duration      float64  `json:"duration"`
	BufferMinutes int      `json:"buffer_minutes"`
	TravelMiles   *float64 `json:"travel_miles,omitempty"`
}

type DayResponse struct {
	ID         string                           `json:"id"`
	Number     int                              `json:"number"`
	StartTime  string                           `json:"start_time"`
	Location   string                           `json:"location"`
	Activities []string                         `json:"activities"`
	Schedule   map[string]ScheduleEntryResponse `json:"schedule"`
}

type ListDaysResponse struct {
	Days []DayResponse `json:"days"`
}

// Omitted fields are left unchanged.
type UpdateDayRequest struct {
	Activities *[]string `json:"activities"`
	StartTime  *string   `json:"start_time"`
	Location   *string   `json:"location"`
}

type ScheduleRequest struct {
	DefaultBufferMinutes    *int  `json:"default_buffer_minutes"`
	EstimateFromCoordinates *bool `json:"estimate_from_coordinates"`
}
