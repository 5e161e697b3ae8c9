package handlers

import (
	"encoding/csv"
	"log"
	"net/http"
	"roadtrip-planner-service/internal/api/dto"
	"roadtrip-planner-service/internal/ports"
	"roadtrip-planner-service/internal/services"
)

// TripHandler serves whole-trip views: the route/load summary and the CSV export.
type TripHandler struct {
	Repo       ports.TripRepository
	Router     *services.TripRouter
	Thresholds services.LoadThresholds
	// Sync target; nil when no remote store is configured.
	Remote ports.TripRepository
}

func (h *TripHandler) Summary(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}

	summary, err := services.BuildTripSummary(
		r.Context(),
		h.Repo,
		h.Router,
		h.Thresholds,
		r.URL.Query().Get("cost_per_mile"),
	)
	if err != nil {
		writeServiceError(w, r, "trip summary", err)
		return
	}

	writeJSON(w, r, http.StatusOK, toTripSummaryResponse(summary))
}

func (h *TripHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}

	days, err := h.Repo.ListDays(r.Context())
	if err != nil {
		writeServiceError(w, r, "export trip", err)
		return
	}
	resolve, err := services.LoadResolver(r.Context(), h.Repo)
	if err != nil {
		writeServiceError(w, r, "export trip", err)
		return
	}

	rows := services.ExportRows(days, resolve)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="itinerary.csv"`)
	w.WriteHeader(http.StatusOK)

	cw := csv.NewWriter(w)
	if err := cw.Write(services.ExportHeader); err != nil {
		log.Printf("export trip: write header: %v", err)
		return
	}
	for _, row := range rows {
		if err := cw.Write(row.Record()); err != nil {
			log.Printf("export trip: write row: %v", err)
			return
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		log.Printf("export trip: flush: %v", err)
	}
}

// Sync pushes the local trip to the remote store.
func (h *TripHandler) Sync(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodPost) {
		return
	}
	if h.Remote == nil {
		writeError(w, r, http.StatusServiceUnavailable, "sync is not configured")
		return
	}

	res, err := services.SyncTrip(r.Context(), h.Repo, h.Remote)
	if err != nil {
		log.Printf("sync trip failed: %v", err)
		writeError(w, r, http.StatusBadGateway, "sync failed")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.SyncResponse{Activities: res.Activities, Days: res.Days})
}
