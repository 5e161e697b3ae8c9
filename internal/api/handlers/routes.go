package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"roadtrip-planner-service/internal/domain"
	"roadtrip-planner-service/internal/services"
	"strconv"
	"strings"
)

type RouteHandler struct {
	Client *services.RouteClient
}

// Driving returns the driving route between ?from=lat,lon and ?to=lat,lon.
// Routing failures still answer 200 with a straight-line fallback.
func (h *RouteHandler) Driving(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}

	from, err := parseLatLon(r.URL.Query().Get("from"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "from: "+err.Error())
		return
	}
	to, err := parseLatLon(r.URL.Query().Get("to"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "to: "+err.Error())
		return
	}

	res := h.Client.FetchDrivingRoute(r.Context(), from, to)
	writeJSON(w, r, http.StatusOK, toRouteResponse(res))
}

func parseLatLon(s string) (domain.Coordinates, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return domain.Coordinates{}, errors.New("expected lat,lon")
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("invalid latitude %q", parts[0])
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("invalid longitude %q", parts[1])
	}
	return domain.Coordinates{Lat: lat, Lon: lon}, nil
}
