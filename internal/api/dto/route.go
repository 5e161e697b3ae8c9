package dto

type StepResponse struct {
	Instruction     string `json:"instruction"`
	RoadName        string `json:"road_name"`
	DistanceMiles   string `json:"distance_miles"`
	DurationMinutes int    `json:"duration_minutes"`
	ManeuverType    string `json:"maneuver_type"`
	Modifier        string `json:"modifier,omitempty"`
}

type RouteResponse struct {
	Coordinates       [][2]float64   `json:"coordinates"`
	DistanceMeters    float64        `json:"distance_meters"`
	DurationSeconds   float64        `json:"duration_seconds"`
	DistanceMiles     string         `json:"distance_miles"`
	DurationMinutes   int            `json:"duration_minutes"`
	DurationFormatted string         `json:"duration_formatted"`
	Steps             []StepResponse `json:"steps"`
	IsFallback        bool           `json:"is_fallback"`
	FallbackReason    string         `json:"fallback_reason,omitempty"`
}

type DayRouteResponse struct {
	DistanceMeters  float64 `json:"distance_meters"`
	DurationSeconds float64 `json:"duration_seconds"`
	DistanceMiles   float64 `json:"distance_miles"`
	Segments        int     `json:"segments"`
	HasFallback     bool    `json:"has_fallback"`
}

type DaySummaryResponse struct {
	DayID         string            `json:"day_id"`
	DayNumber     int               `json:"day_number"`
	Location      string            `json:"location"`
	Waypoints     int               `json:"waypoints"`
	ActivityHours float64           `json:"activity_hours"`
	DriveHours    float64           `json:"drive_hours"`
	Load          string            `json:"load"`
	Route         *DayRouteResponse `json:"route"`
}

// EstimatedCost is omitted when no usable cost per mile was supplied.
type TripSummaryResponse struct {
	Days                 []DaySummaryResponse `json:"days"`
	TotalDistanceMeters  float64              `json:"total_distance_meters"`
	TotalDurationSeconds float64              `json:"total_duration_seconds"`
	TotalDistanceMiles   float64              `json:"total_distance_miles"`
	EstimatedCost        *float64             `json:"estimated_cost,omitempty"`
}

type GeocodeResponse struct {
	Query       string     `json:"query"`
	DisplayName string     `json:"display_name"`
	Coordinates [2]float64 `json:"coordinates"`
}

type SyncResponse struct {
	Activities int `json:"activities"`
	Days       int `json:"days"`
}
