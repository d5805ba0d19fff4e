package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"shootscout/models"
	"shootscout/utils"
)

// Client resolves postal addresses to coordinates through a Nominatim-style search
// endpoint. Results are cached in Redis under the normalized address key; a broken
// cache degrades to direct lookups rather than failing the geocode.
type Client struct {
	baseURL string
	http    *http.Client
	cache   *redis.Client
	ttl     time.Duration
}

// New builds a geocoding client. cache may be nil to disable caching.
func New(baseURL string, timeout time.Duration, cache *redis.Client, cacheTTL time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		cache:   cache,
		ttl:     cacheTTL,
	}
}

// searchResult is one hit from the search endpoint; Nominatim encodes coordinates
// as strings.
type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode returns the coordinates for an address, or nil when the address cannot be
// located. Only a transport or decode problem is an error.
func (c *Client) Geocode(ctx context.Context, addr models.Address) (*models.GeoPoint, error) {
	key := addr.Key()
	if key == "" {
		return nil, nil
	}

	if point := c.cached(ctx, key); point != nil {
		return point, nil
	}

	endpoint := fmt.Sprintf("%s/search?format=json&limit=1&q=%s",
		c.baseURL, url.QueryEscape(addr.DisplayLine()))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build geocode request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode request returned status %d", resp.StatusCode)
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("decoding geocode response failed: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	lat, latErr := strconv.ParseFloat(results[0].Lat, 64)
	lon, lonErr := strconv.ParseFloat(results[0].Lon, 64)
	if latErr != nil || lonErr != nil {
		return nil, fmt.Errorf("geocode response has malformed coordinates")
	}

	point := &models.GeoPoint{Lat: lat, Lon: lon}
	c.store(ctx, key, point)
	return point, nil
}

func (c *Client) cached(ctx context.Context, key string) *models.GeoPoint {
	if c.cache == nil {
		return nil
	}
	data, err := c.cache.Get(ctx, cacheKey(key)).Result()
	if err != nil {
		if err != redis.Nil {
			utils.GetLogger().Debug("geocode cache read failed", zap.Error(err))
		}
		return nil
	}
	var point models.GeoPoint
	if err := json.Unmarshal([]byte(data), &point); err != nil {
		return nil
	}
	return &point
}

func (c *Client) store(ctx context.Context, key string, point *models.GeoPoint) {
	if c.cache == nil {
		return
	}
	data, err := json.Marshal(point)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, cacheKey(key), data, c.ttl).Err(); err != nil {
		utils.GetLogger().Debug("geocode cache write failed", zap.Error(err))
	}
}

func cacheKey(addressKey string) string {
	return "geo:" + addressKey
}
