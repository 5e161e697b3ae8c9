package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"roadtrip-planner-service/internal/domain"
	"roadtrip-planner-service/internal/platform/obs"
	"strconv"
	"strings"
)

type tableResponse struct {
	Code      string       `json:"code"`
	Message   string       `json:"message"`
	Durations [][]*float64 `json:"durations"`
}

// DurationsFrom retrieves driving durations from origin to each destination
// using the OSRM table service with a single source row.
func (o *OSRMRouteProvider) DurationsFrom(
	ctx context.Context,
	origin domain.Coordinates,
	destinations []domain.Coordinates,
) (_ []float64, err error) {
	defer obs.Time(ctx, "osrm.Table")(&err)

	if len(destinations) == 0 {
		return []float64{}, nil
	}

	locations := make([]string, 0, 1+len(destinations))
	destIdx := make([]string, 0, len(destinations))
	locations = append(locations, fmt.Sprintf("%f,%f", origin.Lon, origin.Lat))
	for i, c := range destinations {
		locations = append(locations, fmt.Sprintf("%f,%f", c.Lon, c.Lat))
		destIdx = append(destIdx, strconv.Itoa(i+1))
	}

	endpoint := fmt.Sprintf(
		"%s/table/v1/%s/%s?sources=0&destinations=%s&annotations=duration",
		o.baseURL, o.profile, strings.Join(locations, ";"), strings.Join(destIdx, ";"),
	)

	resp, err := o.client.DoWithRetry(ctx, func() (*http.Request, error) {
		return o.client.NewRequest(ctx, http.MethodGet, endpoint, nil)
	})
	if err != nil {
		return nil, fmt.Errorf("osrm table request failed: %w", err)
	}
	defer resp.Body.Close()

	var tr tableResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, fmt.Errorf("decode osrm table response: %w", err)
	}
	if tr.Code != "" && tr.Code != "Ok" {
		return nil, fmt.Errorf("osrm table: code=%s message=%q", tr.Code, tr.Message)
	}

	if len(tr.Durations) != 1 {
		return nil, fmt.Errorf("osrm table: expected 1 source row; got %d", len(tr.Durations))
	}
	row := tr.Durations[0]
	if len(row) != len(destinations) {
		return nil, fmt.Errorf("osrm table: row length %d does not match destinations %d", len(row), len(destinations))
	}

	out := make([]float64, len(row))
	for i, d := range row {
		if d == nil {
			out[i] = math.Inf(1)
			continue
		}
		out[i] = *d
	}
	return out, nil
}
