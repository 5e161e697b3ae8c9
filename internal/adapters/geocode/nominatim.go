package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"roadtrip-planner-service/internal/domain"
	"roadtrip-planner-service/internal/platform/httpx"
	"roadtrip-planner-service/internal/platform/obs"
	"roadtrip-planner-service/internal/ports"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const DefaultUserAgent = "roadtrip-planner-service/1.0"

type nominatimResult struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// NominatimGeocoder resolves place queries through a Nominatim /search endpoint.
// Outbound calls are limited to one per second and hits are written through
// to Cache when one is configured.
type NominatimGeocoder struct {
	client  *httpx.Client
	limiter *rate.Limiter
	baseURL string
	Cache   ports.GeocodeCache
}

func NewNominatimGeocoder(
	baseURL string,
	userAgent string,
	timeout time.Duration,
	cache ports.GeocodeCache,
) *NominatimGeocoder {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	header := http.Header{}
	header.Set("User-Agent", userAgent)

	return &NominatimGeocoder{
		client:  httpx.NewClient(timeout, header),
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
		baseURL: strings.TrimRight(baseURL, "/"),
		Cache:   cache,
	}
}

// Normalize lowercases a query and collapses internal whitespace so equivalent
// queries share a cache key.
func Normalize(query string) string {
	return strings.Join(strings.Fields(strings.ToLower(query)), " ")
}

func (g *NominatimGeocoder) Geocode(ctx context.Context, query string) (_ domain.Place, err error) {
	defer obs.Time(ctx, "nominatim.Geocode")(&err)

	norm := Normalize(query)
	if norm == "" {
		return domain.Place{}, errors.New("geocode: query is empty")
	}

	if g.Cache != nil {
		hits, err := g.Cache.GetMany(ctx, []string{norm})
		if err != nil {
			log.Printf("geocode cache read failed query=%q err=%v", norm, err)
		} else if p, ok := hits[norm]; ok {
			return p, nil
		}
	}

	place, err := g.search(ctx, norm)
	if err != nil {
		return domain.Place{}, err
	}

	if g.Cache != nil {
		if err := g.Cache.PutMany(ctx, map[string]domain.Place{norm: place}); err != nil {
			log.Printf("geocode cache write failed query=%q err=%v", norm, err)
		}
	}
	return place, nil
}

func (g *NominatimGeocoder) search(ctx context.Context, norm string) (domain.Place, error) {
	endpoint := g.baseURL + "/search"

	resp, err := g.client.DoWithRetry(ctx, func() (*http.Request, error) {
		if err := g.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		req, err := g.client.NewRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("q", norm)
		q.Set("format", "json")
		q.Set("limit", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.Place{}, fmt.Errorf("geocode %q: %w", norm, err)
	}
	defer resp.Body.Close()

	var decoded []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Place{}, fmt.Errorf("geocode %q: decode response: %w", norm, err)
	}
	if len(decoded) == 0 {
		return domain.Place{}, fmt.Errorf("geocode %q: %w", norm, ports.ErrNotFound)
	}

	lat, errLat := strconv.ParseFloat(decoded[0].Lat, 64)
	lon, errLon := strconv.ParseFloat(decoded[0].Lon, 64)
	coords := domain.Coordinates{Lat: lat, Lon: lon}
	if errLat != nil || errLon != nil || !coords.Valid() {
		return domain.Place{}, fmt.Errorf("geocode %q: invalid coordinates lat=%q lon=%q", norm, decoded[0].Lat, decoded[0].Lon)
	}

	return domain.Place{
		Query:       norm,
		DisplayName: decoded[0].DisplayName,
		Coordinates: coords,
	}, nil
}
