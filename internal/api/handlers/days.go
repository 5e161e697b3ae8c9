package handlers

import (
	"context"
	"log"
	"net/http"
	"roadtrip-planner-service/internal/api/dto"
	"roadtrip-planner-service/internal/ports"
	"roadtrip-planner-service/internal/services"
	"sync"
	"time"
)

const refreshTimeout = 30 * time.Second

// DayHandler reads, edits and schedules days. Edits that change a day's
// stops trigger a background route refresh through Router.
type DayHandler struct {
	Repo     ports.TripRepository
	Router   *services.TripRouter
	Schedule services.ScheduleOptions

	// Optional; nearest-neighbor ordering uses straight-line distance without it.
	Matrix ports.TravelMatrix

	pending sync.WaitGroup
}

func (h *DayHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}

	days, err := h.Repo.ListDays(r.Context())
	if err != nil {
		log.Printf("list days failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListDaysResponse{Days: make([]dto.DayResponse, 0, len(days))}
	for _, d := range days {
		res.Days = append(res.Days, toDayResponse(d))
	}
	writeJSON(w, r, http.StatusOK, res)
}

// Day serves GET and PUT on /days/{id}.
func (h *DayHandler) Day(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet, http.MethodPut) {
		return
	}
	id := r.PathValue("id")

	if r.Method == http.MethodGet {
		day, err := h.Repo.GetDay(r.Context(), id)
		if err != nil {
			writeServiceError(w, r, "get day", err)
			return
		}
		writeJSON(w, r, http.StatusOK, toDayResponse(day))
		return
	}

	var req dto.UpdateDayRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	day, err := services.UpdateDay(r.Context(), h.Repo, id, services.UpdateDayRequest{
		Activities: req.Activities,
		StartTime:  req.StartTime,
		Location:   req.Location,
	})
	if err != nil {
		writeServiceError(w, r, "update day", err)
		return
	}

	if req.Activities != nil {
		h.refreshRoute(r.Context(), day.ID)
	}

	writeJSON(w, r, http.StatusOK, toDayResponse(day))
}

// AutoSchedule regenerates and stores the schedule for /days/{id}/schedule.
func (h *DayHandler) AutoSchedule(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodPost) {
		return
	}

	var req dto.ScheduleRequest
	if !decodeJSON(w, r, &req, true) {
		return
	}

	opts := h.Schedule
	if req.DefaultBufferMinutes != nil {
		if *req.DefaultBufferMinutes < 0 {
			writeError(w, r, http.StatusBadRequest, "default_buffer_minutes must not be negative")
			return
		}
		opts.DefaultBufferMinutes = *req.DefaultBufferMinutes
	}
	if req.EstimateFromCoordinates != nil {
		opts.EstimateFromCoordinates = *req.EstimateFromCoordinates
	}

	day, err := services.AutoScheduleDay(r.Context(), h.Repo, r.PathValue("id"), opts)
	if err != nil {
		writeServiceError(w, r, "auto schedule day", err)
		return
	}
	writeJSON(w, r, http.StatusOK, toDayResponse(day))
}

// Optimize reorders the stops of /days/{id}/optimize by nearest neighbor.
func (h *DayHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodPost) {
		return
	}

	day, err := services.OptimizeDayOrder(r.Context(), h.Repo, h.Matrix, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, "optimize day", err)
		return
	}

	h.refreshRoute(r.Context(), day.ID)
	writeJSON(w, r, http.StatusOK, toDayResponse(day))
}

// refreshRoute recomputes the day's route without holding the response.
// A newer refresh for the same day supersedes this one.
func (h *DayHandler) refreshRoute(reqCtx context.Context, dayID string) {
	if h.Router == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(reqCtx), refreshTimeout)
	h.pending.Add(1)
	go func() {
		defer h.pending.Done()
		defer cancel()

		day, err := h.Repo.GetDay(ctx, dayID)
		if err != nil {
			log.Printf("route refresh: day=%s err=%v", dayID, err)
			return
		}
		resolve, err := services.LoadResolver(ctx, h.Repo)
		if err != nil {
			log.Printf("route refresh: day=%s err=%v", dayID, err)
			return
		}
		h.Router.RefreshDay(ctx, day, resolve)
	}()
}

// Wait blocks until background route refreshes started by this handler finish.
func (h *DayHandler) Wait() {
	h.pending.Wait()
}
