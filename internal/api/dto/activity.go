package dto

// Coordinates are encoded as [lat, lon].
type ActivityResponse struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Location    string      `json:"location"`
	Category    string      `json:"category"`
	Coordinates *[2]float64 `json:"coordinates"`
	Duration    *float64    `json:"duration"`
	Custom      bool        `json:"custom"`
}

type ListActivitiesResponse struct {
	Activities []ActivityResponse `json:"activities"`
}

type CreateActivityRequest struct {
	Name        string      `json:"name"`
	Location    string      `json:"location"`
	Category    string      `json:"category"`
	Coordinates *[2]float64 `json:"coordinates"`
	Duration    *float64    `json:"duration"`
}
