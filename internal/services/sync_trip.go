package services

import (
	"context"
	"fmt"
	"roadtrip-planner-service/internal/platform/obs"
	"roadtrip-planner-service/internal/ports"
)

// SyncResult counts what SyncTrip pushed to the remote store.
type SyncResult struct {
	Activities int
	Days       int
}

// SyncTrip copies every activity and day from local to remote, overwriting
// the remote copy. Activities go first so days never reference unknown ids.
func SyncTrip(ctx context.Context, local, remote ports.TripRepository) (_ SyncResult, err error) {
	defer obs.Time(ctx, "trip.Sync")(&err)

	var res SyncResult

	activities, err := local.ListActivities(ctx)
	if err != nil {
		return res, fmt.Errorf("sync trip: list local activities: %w", err)
	}
	for _, a := range activities {
		if err := remote.SaveActivity(ctx, a); err != nil {
			return res, fmt.Errorf("sync trip: save activity %q: %w", a.ID, err)
		}
		res.Activities++
	}

	days, err := local.ListDays(ctx)
	if err != nil {
		return res, fmt.Errorf("sync trip: list local days: %w", err)
	}
	for _, d := range days {
		if err := remote.SaveDay(ctx, d); err != nil {
			return res, fmt.Errorf("sync trip: save day %q: %w", d.ID, err)
		}
		res.Days++
	}

	return res, nil
}
