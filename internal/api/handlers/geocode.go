package handlers

import (
	"errors"
	"log"
	"net/http"
	"roadtrip-planner-service/internal/api/dto"
	"roadtrip-planner-service/internal/ports"
	"strings"
)

type GeocodeHandler struct {
	Geocoder ports.Geocoder
}

func (h *GeocodeHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}

	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeError(w, r, http.StatusBadRequest, "q is required")
		return
	}

	place, err := h.Geocoder.Geocode(r.Context(), q)
	if errors.Is(err, ports.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "no match for query")
		return
	}
	if err != nil {
		log.Printf("geocode failed: q=%q err=%v", q, err)
		writeError(w, r, http.StatusBadGateway, "geocoding unavailable")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.GeocodeResponse{
		Query:       place.Query,
		DisplayName: place.DisplayName,
		Coordinates: [2]float64{place.Coordinates.Lat, place.Coordinates.Lon},
	})
}
