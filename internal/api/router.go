package api

import (
	"net/http"
	"roadtrip-planner-service/internal/api/handlers"
	"roadtrip-planner-service/internal/ports"
	"roadtrip-planner-service/internal/services"

	"github.com/rs/cors"
)

// Deps are the collaborators the HTTP layer needs. Remote and Geocoder may be
// nil; the matching endpoints then answer 503. Matrix is optional.
type Deps struct {
	Repo        ports.TripRepository
	Remote      ports.TripRepository
	RouteClient *services.RouteClient
	Router      *services.TripRouter
	Geocoder    ports.Geocoder
	Matrix      ports.TravelMatrix
	Schedule    services.ScheduleOptions
	Thresholds  services.LoadThresholds
	CORSOrigins []string
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(deps Deps) http.Handler {
	mux, _ := newMux(deps)

	c := cors.New(cors.Options{
		AllowedOrigins: deps.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut},
		AllowedHeaders: []string{"Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
	})

	return requestIDMiddleware(loggingMiddleware(c.Handler(mux)))
}

func newMux(deps Deps) (*http.ServeMux, *handlers.DayHandler) {
	mux := http.NewServeMux()

	activityHandler := &handlers.ActivityHandler{Repo: deps.Repo}
	dayHandler := &handlers.DayHandler{
		Repo:     deps.Repo,
		Router:   deps.Router,
		Schedule: deps.Schedule,
		Matrix:   deps.Matrix,
	}
	routeHandler := &handlers.RouteHandler{Client: deps.RouteClient}
	tripHandler := &handlers.TripHandler{
		Repo:       deps.Repo,
		Router:     deps.Router,
		Thresholds: deps.Thresholds,
		Remote:     deps.Remote,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/activities", activityHandler.Activities)
	mux.HandleFunc("/days", dayHandler.List)
	mux.HandleFunc("/days/{id}", dayHandler.Day)
	mux.HandleFunc("/days/{id}/schedule", dayHandler.AutoSchedule)
	mux.HandleFunc("/days/{id}/optimize", dayHandler.Optimize)
	mux.HandleFunc("/routes/driving", routeHandler.Driving)
	mux.HandleFunc("/trip/summary", tripHandler.Summary)
	mux.HandleFunc("/trip/export.csv", tripHandler.ExportCSV)
	mux.HandleFunc("/sync", tripHandler.Sync)

	if deps.Geocoder != nil {
		geocodeHandler := &handlers.GeocodeHandler{Geocoder: deps.Geocoder}
		mux.HandleFunc("/geocode", geocodeHandler.Lookup)
	} else {
		mux.HandleFunc("/geocode", handlers.Unavailable("geocoding is not configured"))
	}

	return mux, dayHandler
}
