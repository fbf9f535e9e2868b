// Package geocode resolves US zip codes and city names to coordinates, with a
// read-through cache in front of the public lookup services.
package geocode

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Cache stores resolved coordinates. The sqlite location repository satisfies
// this; a nil cache disables caching.
type Cache interface {
	Lookup(zip string) (lat, lon float64, ok bool, err error)
	Save(zip string, lat, lon float64) error
}

// Client resolves locations via zippopotam.us (zip codes) and Nominatim
// (free-text city names).
type Client struct {
	zipURL     string
	cityURL    string
	httpClient *http.Client
	cache      Cache
}

// NewClient creates a geocoding client. Empty URLs select the production
// services; cache may be nil.
func NewClient(zipURL, cityURL string, cache Cache) *Client {
	if zipURL == "" {
		zipURL = "https://api.zippopotam.us/us/"
	}
	if cityURL == "" {
		cityURL = "https://nominatim.openstreetmap.org/search"
	}
	return &Client{
		zipURL:     zipURL,
		cityURL:    cityURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		cache:      cache,
	}
}

// NormalizeZip zero-pads a zip code to the 5-digit form used by ZCTA data.
func NormalizeZip(zip string) string {
	for len(zip) < 5 {
		zip = "0" + zip
	}
	return zip
}

type zippopotamResponse struct {
	Places []struct {
		Latitude  string `json:"latitude"`
		Longitude string `json:"longitude"`
	} `json:"places"`
}

// CoordinatesForZip resolves a zip code to coordinates, consulting the cache
// before the network. Fresh results are written back to the cache.
func (c *Client) CoordinatesForZip(zip string) (float64, float64, error) {
	zip = NormalizeZip(zip)

	if c.cache != nil {
		lat, lon, ok, err := c.cache.Lookup(zip)
		if err != nil {
			log.Printf("Warning: cache lookup failed for zip %s: %v", zip, err)
		} else if ok {
			return lat, lon, nil
		}
	}

	res, err := c.httpClient.Get(c.zipURL + zip)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to geocode zip %s: %v", zip, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("unexpected status code geocoding zip %s: %d %s", zip, res.StatusCode, res.Status)
	}

	var payload zippopotamResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return 0, 0, fmt.Errorf("failed to decode geocode response for zip %s: %v", zip, err)
	}
	if len(payload.Places) == 0 {
		return 0, 0, fmt.Errorf("no places found for zip %s", zip)
	}

	lat, err := strconv.ParseFloat(payload.Places[0].Latitude, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("unparseable latitude for zip %s: %v", zip, err)
	}
	lon, err := strconv.ParseFloat(payload.Places[0].Longitude, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("unparseable longitude for zip %s: %v", zip, err)
	}

	if c.cache != nil {
		if err := c.cache.Save(zip, lat, lon); err != nil {
			log.Printf("Warning: could not cache coordinates for zip %s: %v", zip, err)
		}
	}

	return lat, lon, nil
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// CoordinatesForCity resolves a free-text city or place name to coordinates.
func (c *Client) CoordinatesForCity(city string) (float64, float64, error) {
	params := url.Values{}
	params.Set("q", city)
	params.Set("format", "json")
	params.Set("limit", "1")
	params.Set("countrycodes", "us")

	req, err := http.NewRequest(http.MethodGet, c.cityURL+"?"+params.Encode(), nil)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to build geocode request for %q: %v", city, err)
	}
	// Nominatim's usage policy requires an identifying User-Agent.
	req.Header.Set("User-Agent", "paddle-planner/1.0")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to geocode city %q: %v", city, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("unexpected status code geocoding city %q: %d %s", city, res.StatusCode, res.Status)
	}

	var results []nominatimResult
	if err := json.NewDecoder(res.Body).Decode(&results); err != nil {
		return 0, 0, fmt.Errorf("failed to decode geocode response for city %q: %v", city, err)
	}
	if len(results) == 0 {
		return 0, 0, fmt.Errorf("no results found for city %q", city)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("unparseable latitude for city %q: %v", city, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("unparseable longitude for city %q: %v", city, err)
	}

	return lat, lon, nil
}
