package handlers

import (
	"roadtrip-planner-service/internal/api/dto"
	"roadtrip-planner-service/internal/domain"
	"roadtrip-planner-service/internal/geo"
	"roadtrip-planner-service/internal/services"
)

func toActivityResponse(a *domain.Activity) dto.ActivityResponse {
	res := dto.ActivityResponse{
		ID:       a.ID,
		Name:     a.Name,
		Location: a.Location,
		Category: a.Category,
		Duration: a.Duration,
		Custom:   a.Custom,
	}
	if a.Coordinates != nil {
		res.Coordinates = &[2]float64{a.Coordinates.Lat, a.Coordinates.Lon}
	}
	return res
}

func toDayResponse(d *domain.Day) dto.DayResponse {
	res := dto.DayResponse{
		ID:         d.ID,
		Number:     d.Number,
		StartTime:  d.EffectiveStartTime(),
		Location:   d.Location,
		Activities: append([]string{}, d.Activities...),
		Schedule:   make(map[string]dto.ScheduleEntryResponse, len(d.Schedule)),
	}
	for id, e := range d.Schedule {
		res.Schedule[id] = dto.ScheduleEntryResponse{
			StartTime:     e.StartTime,
			EndTime:       domain.ComputeEndTime(e.StartTime, e.Duration),
			Duration:      e.Duration,
			BufferMinutes: e.BufferMinutes,
			TravelMiles:   e.TravelMiles,
		}
	}
	return res
}

func toLatLon(line []domain.Coordinates) [][2]float64 {
	out := make([][2]float64, 0, len(line))
	for _, c := range line {
		out = append(out, [2]float64{c.Lat, c.Lon})
	}
	return out
}

func toRouteResponse(r domain.RouteResult) dto.RouteResponse {
	res := dto.RouteResponse{
		Coordinates:       toLatLon(r.Coordinates),
		DistanceMeters:    r.DistanceM,
		DurationSeconds:   r.DurationS,
		DistanceMiles:     r.DistanceMiles,
		DurationMinutes:   r.DurationMinutes,
		DurationFormatted: r.DurationFormatted,
		Steps:             make([]dto.StepResponse, 0, len(r.Steps)),
		IsFallback:        r.IsFallback,
		FallbackReason:    r.FallbackReason,
	}
	for _, s := range r.Steps {
		res.Steps = append(res.Steps, dto.StepResponse{
			Instruction:     s.Instruction,
			RoadName:        s.RoadName,
			DistanceMiles:   s.DistanceMiles,
			DurationMinutes: s.DurationMinutes,
			ManeuverType:    s.ManeuverType,
			Modifier:        s.Modifier,
		})
	}
	return res
}

func toTripSummaryResponse(s services.TripSummary) dto.TripSummaryResponse {
	res := dto.TripSummaryResponse{
		Days:                 make([]dto.DaySummaryResponse, 0, len(s.Days)),
		TotalDistanceMeters:  s.DistanceM,
		TotalDurationSeconds: s.DurationS,
		TotalDistanceMiles:   s.DistanceMiles,
	}
	if s.CostAvailable {
		cost := s.Cost
		res.EstimatedCost = &cost
	}

	for _, d := range s.Days {
		ds := dto.DaySummaryResponse{
			DayID:         d.Day.ID,
			DayNumber:     d.Day.Number,
			Location:      d.Day.Location,
			Waypoints:     d.Waypoints,
			ActivityHours: d.ActivityHours,
			DriveHours:    d.DriveHours,
			Load:          d.Load,
		}
		if d.Route != nil {
			ds.Route = &dto.DayRouteResponse{
				DistanceMeters:  d.Route.DistanceM,
				DurationSeconds: d.Route.DurationS,
				DistanceMiles:   geo.Round1(geo.MetersToMiles(d.Route.DistanceM)),
				Segments:        len(d.Route.Segments),
				HasFallback:     d.Route.HasFallback(),
			}
		}
		res.Days = append(res.Days, ds)
	}
	return res
}
