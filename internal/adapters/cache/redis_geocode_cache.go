package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"roadtrip-planner-service/internal/domain"
	"roadtrip-planner-service/internal/platform/obs"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisGeocodePrefix = "geocode:"

type redisPlace struct {
	DisplayName string  `json:"display_name"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

// RedisGeocodeCache stores geocoding hits as JSON values under "geocode:<query>".
// A zero TTL keeps entries until evicted.
type RedisGeocodeCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisGeocodeCache(client *redis.Client, ttl time.Duration) *RedisGeocodeCache {
	return &RedisGeocodeCache{Client: client, TTL: ttl}
}

func (r *RedisGeocodeCache) GetMany(
	ctx context.Context,
	queries []string,
) (_ map[string]domain.Place, err error) {
	defer obs.Time(ctx, "geocode.redis.GetMany")(&err)

	if r.Client == nil {
		return nil, errors.New("geocode cache: redis client is nil")
	}

	uniq := uniqueQueries(queries)
	if len(uniq) == 0 {
		return map[string]domain.Place{}, nil
	}

	keys := make([]string, len(uniq))
	for i, q := range uniq {
		keys[i] = redisGeocodePrefix + q
	}

	vals, err := r.Client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: redis mget: %w", err)
	}

	out := make(map[string]domain.Place, len(uniq))
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}
		var rp redisPlace
		if err := json.Unmarshal([]byte(s), &rp); err != nil {
			return nil, fmt.Errorf("get geocode cache: decode %q: %w", keys[i], err)
		}
		out[uniq[i]] = domain.Place{
			Query:       uniq[i],
			DisplayName: rp.DisplayName,
			Coordinates: domain.Coordinates{Lat: rp.Lat, Lon: rp.Lon},
		}
	}

	return out, nil
}

func (r *RedisGeocodeCache) PutMany(ctx context.Context, places map[string]domain.Place) error {
	if r.Client == nil {
		return errors.New("geocode cache: redis client is nil")
	}

	if len(places) == 0 {
		return nil
	}

	pipe := r.Client.TxPipeline()
	for key, p := range places {
		if strings.TrimSpace(key) == "" {
			return fmt.Errorf("insert geocode cache: empty query key")
		}

		b, err := json.Marshal(redisPlace{DisplayName: p.DisplayName, Lat: p.Coordinates.Lat, Lon: p.Coordinates.Lon})
		if err != nil {
			return fmt.Errorf("insert geocode cache query=%q: %w", key, err)
		}
		pipe.Set(ctx, redisGeocodePrefix+key, b, r.TTL)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("insert geocode cache: redis exec: %w", err)
	}
	return nil
}
