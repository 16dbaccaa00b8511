package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/caffio-app/caffio-api/config"
)

// Coordinates is a resolved lat/lon pair
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// GeocodeCache caches geocoder responses. The upstream endpoint is
// rate-limited, so repeated signups for the same address should not hit it.
type GeocodeCache struct {
	Client *redis.Client
	TTL    time.Duration
}

// NewGeocodeCache creates a Redis-backed geocode cache
func NewGeocodeCache(client *redis.Client, ttl time.Duration) *GeocodeCache {
	return &GeocodeCache{Client: client, TTL: ttl}
}

func (c *GeocodeCache) key(address string) string {
	return "geocode:" + address
}

// Get returns the cached coordinates for an address, if present
func (c *GeocodeCache) Get(ctx context.Context, address string) (*Coordinates, bool) {
	data, err := c.Client.Get(ctx, c.key(address)).Bytes()
	if err != nil {
		return nil, false
	}
	var coords Coordinates
	if err := json.Unmarshal(data, &coords); err != nil {
		return nil, false
	}
	return &coords, true
}

// Set stores coordinates for an address
func (c *GeocodeCache) Set(ctx context.Context, address string, coords *Coordinates) {
	data, err := json.Marshal(coords)
	if err != nil {
		return
	}
	_ = c.Client.Set(ctx, c.key(address), data, c.TTL).Err()
}

// GeocodeService resolves street addresses to coordinates via a
// Nominatim-style endpoint. Resolution is best-effort: any failure returns
// nil coordinates and the caller proceeds without them.
type GeocodeService struct {
	baseURL    string
	httpClient *http.Client
	cache      *GeocodeCache // optional, nil disables caching
}

var geocodeServiceInstance *GeocodeService

// NewGeocodeService creates a new geocode service. cache may be nil.
func NewGeocodeService(cfg *config.Config, cache *GeocodeCache) *GeocodeService {
	return &GeocodeService{
		baseURL: cfg.GeocoderURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		cache: cache,
	}
}

// InitGeocodeService initializes the global geocode service instance
func InitGeocodeService(cfg *config.Config, cache *GeocodeCache) *GeocodeService {
	geocodeServiceInstance = NewGeocodeService(cfg, cache)
	return geocodeServiceInstance
}

// GetGeocodeService returns the initialized geocode service instance
func GetGeocodeService() *GeocodeService {
	return geocodeServiceInstance
}

// SetGeocodeService sets the geocode service instance (primarily for testing)
func SetGeocodeService(s *GeocodeService) {
	geocodeServiceInstance = s
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode resolves an address to coordinates. Returns nil on any failure so
// signup can proceed without coordinates.
func (s *GeocodeService) Geocode(ctx context.Context, address string) *Coordinates {
	if address == "" {
		return nil
	}

	if s.cache != nil {
		if coords, ok := s.cache.Get(ctx, address); ok {
			return coords
		}
	}

	endpoint := fmt.Sprintf("%s/search?q=%s&format=json&limit=1", s.baseURL, url.QueryEscape(address))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		log.Printf("geocode: failed to build request: %v", err)
		return nil
	}
	req.Header.Set("User-Agent", "caffio-api")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.Printf("geocode: request failed for %q: %v", address, err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("geocode: unexpected status %d for %q", resp.StatusCode, address)
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("geocode: failed to read response: %v", err)
		return nil
	}

	var results []nominatimResult
	if err := json.Unmarshal(body, &results); err != nil || len(results) == 0 {
		log.Printf("geocode: no results for %q", address)
		return nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil
	}

	coords := &Coordinates{Latitude: lat, Longitude: lon}
	if s.cache != nil {
		s.cache.Set(ctx, address, coords)
	}
	return coords
}
