package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"roadtrip-planner-service/internal/domain"
	"roadtrip-planner-service/internal/geo"
	"roadtrip-planner-service/internal/platform/httpx"
	"roadtrip-planner-service/internal/platform/obs"
	"roadtrip-planner-service/internal/ports"
	"strings"
	"time"
)

// OSRMRouteProvider implements RouteProvider using an OSRM /route/v1 endpoint.
//
// Coordinates are swapped to OSRM's lon,lat order when the URL is built and
// swapped back when the geometry is decoded; the rest of the service only
// sees domain.Coordinates.
//
// The provider is safe for concurrent use.
type OSRMRouteProvider struct {
	client  *httpx.Client
	baseURL string
	profile string
}

func NewOSRMRouteProvider(baseURL, profile string, timeout time.Duration) (*OSRMRouteProvider, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("OSRM base url is empty")
	}
	if profile == "" {
		profile = "driving"
	}

	return &OSRMRouteProvider{
		client:  httpx.NewClient(timeout, nil),
		baseURL: baseURL,
		profile: profile,
	}, nil
}

type osrmResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Routes  []osrmRoute `json:"routes"`
}

type osrmRoute struct {
	Distance float64 `json:"distance"`
	Duration float64 `json:"duration"`
	Geometry struct {
		Coordinates [][]float64 `json:"coordinates"`
	} `json:"geometry"`
	Legs []struct {
		Steps []osrmStep `json:"steps"`
	} `json:"legs"`
}

type osrmStep struct {
	Distance float64 `json:"distance"`
	Duration float64 `json:"duration"`
	Name     string  `json:"name"`
	Ref      string  `json:"ref"`
	Maneuver struct {
		Type     string `json:"type"`
		Modifier string `json:"modifier"`
	} `json:"maneuver"`
}

// Route fetches a full-geometry route with turn-by-turn steps.
// A response without routes, or with a NoRoute/NoSegment code, yields
// ports.ErrNoRoute.
func (o *OSRMRouteProvider) Route(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
) (_ domain.Route, err error) {
	defer obs.Time(ctx, "osrm.Route")(&err)

	if !origin.Valid() || !destination.Valid() {
		return domain.Route{}, errors.New("osrm route: origin and destination must be finite")
	}

	endpoint := o.routeURL(origin, destination)

	resp, err := o.client.DoWithRetry(ctx, func() (*http.Request, error) {
		return o.client.NewRequest(ctx, http.MethodGet, endpoint, nil)
	})
	if err != nil {
		var se *httpx.StatusError
		if errors.As(err, &se) && isNoRouteBody(se.Body) {
			return domain.Route{}, fmt.Errorf("osrm route: %w", ports.ErrNoRoute)
		}
		return domain.Route{}, fmt.Errorf("osrm route request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Route{}, fmt.Errorf("decode osrm response: %w", err)
	}

	if decoded.Code != "" && decoded.Code != "Ok" {
		if isNoRouteCode(decoded.Code) {
			return domain.Route{}, fmt.Errorf("osrm route code=%s: %w", decoded.Code, ports.ErrNoRoute)
		}
		return domain.Route{}, fmt.Errorf("osrm route: code=%s message=%q", decoded.Code, decoded.Message)
	}
	if len(decoded.Routes) == 0 {
		return domain.Route{}, fmt.Errorf("osrm route: empty route list: %w", ports.ErrNoRoute)
	}

	return toDomainRoute(decoded.Routes[0])
}

func (o *OSRMRouteProvider) routeURL(origin, destination domain.Coordinates) string {
	coords := fmt.Sprintf("%f,%f;%f,%f", origin.Lon, origin.Lat, destination.Lon, destination.Lat)

	q := url.Values{}
	q.Set("overview", "full")
	q.Set("geometries", "geojson")
	q.Set("steps", "true")

	return fmt.Sprintf("%s/route/v1/%s/%s?%s", o.baseURL, o.profile, coords, q.Encode())
}

func toDomainRoute(r osrmRoute) (domain.Route, error) {
	line := make([]domain.Coordinates, 0, len(r.Geometry.Coordinates))
	for i, c := range r.Geometry.Coordinates {
		if len(c) < 2 {
			return domain.Route{}, fmt.Errorf("osrm route: invalid coordinate at index %d", i)
		}
		// GeoJSON order is [lon, lat].
		line = append(line, domain.Coordinates{Lat: c[1], Lon: c[0]})
	}

	steps := make([]domain.Step, 0)
	for _, leg := range r.Legs {
		for _, s := range leg.Steps {
			road := s.Name
			if road == "" {
				road = s.Ref
			}
			steps = append(steps, domain.Step{
				Instruction:     Instruction(s.Maneuver.Type, s.Maneuver.Modifier, road),
				RoadName:        road,
				DistanceMiles:   fmt.Sprintf("%.1f", geo.MetersToMiles(s.Distance)),
				DurationMinutes: int(math.Round(s.Duration / 60)),
				ManeuverType:    s.Maneuver.Type,
				Modifier:        s.Maneuver.Modifier,
			})
		}
	}

	return domain.Route{
		Line:      line,
		DistanceM: r.Distance,
		DurationS: r.Duration,
		Steps:     steps,
	}, nil
}

func isNoRouteCode(code string) bool {
	return code == "NoRoute" || code == "NoSegment"
}

func isNoRouteBody(body string) bool {
	var decoded osrmResponse
	if err := json.Unmarshal([]byte(body), &decoded); err != nil {
		return false
	}
	return isNoRouteCode(decoded.Code)
}
