package handlers

import (
	"log"
	"math"
	"net/http"
	"roadtrip-planner-service/internal/api/dto"
	"roadtrip-planner-service/internal/domain"
	"roadtrip-planner-service/internal/ports"
	"strings"

	"github.com/google/uuid"
)

// ActivityHandler lists the catalog and accepts traveler-authored activities.
type ActivityHandler struct {
	Repo ports.TripRepository
}

func (h *ActivityHandler) Activities(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet, http.MethodPost) {
		return
	}
	if r.Method == http.MethodPost {
		h.create(w, r)
		return
	}

	acts, err := h.Repo.ListActivities(r.Context())
	if err != nil {
		log.Printf("list activities failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListActivitiesResponse{
		Activities: make([]dto.ActivityResponse, 0, len(acts)),
	}
	for _, a := range acts {
		res.Activities = append(res.Activities, toActivityResponse(a))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *ActivityHandler) create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateActivityRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeError(w, r, http.StatusBadRequest, "name is required")
		return
	}

	a := &domain.Activity{
		ID:       "custom-" + uuid.NewString(),
		Name:     name,
		Location: strings.TrimSpace(req.Location),
		Category: strings.TrimSpace(req.Category),
		Custom:   true,
	}

	if req.Duration != nil {
		d := *req.Duration
		if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
			writeError(w, r, http.StatusBadRequest, "duration must be a non-negative number of hours")
			return
		}
		a.Duration = &d
	}

	if req.Coordinates != nil {
		c := domain.Coordinates{Lat: req.Coordinates[0], Lon: req.Coordinates[1]}
		if !c.Valid() || math.Abs(c.Lat) > 90 || math.Abs(c.Lon) > 180 {
			writeError(w, r, http.StatusBadRequest, "coordinates must be [lat, lon]")
			return
		}
		a.Coordinates = &c
	}

	if err := h.Repo.SaveActivity(r.Context(), a); err != nil {
		writeServiceError(w, r, "create activity", err)
		return
	}

	writeJSON(w, r, http.StatusCreated, toActivityResponse(a))
}
