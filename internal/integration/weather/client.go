// Package weather retrieves current conditions and multi-day forecasts from
// the Open-Meteo API.
package weather

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/openpaddle/paddle-planner/internal/entities"
)

// forecastHorizonDays covers the weekly planning window plus today. The free
// API tier caps forecasts at 16 days.
const (
	forecastHorizonDays = 8
	maxForecastDays     = 16
)

// Client fetches weather payloads from Open-Meteo.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a weather client. An empty URL selects the production API.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://api.open-meteo.com/v1/forecast"
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Fetch retrieves a weather payload for a coordinate pair covering the given
// number of forecast days. Units are fixed to fahrenheit, mph, and inches;
// hourly timestamps come back in the location's own time zone.
func (c *Client) Fetch(lat, lon float64, forecastDays int) (*Payload, error) {
	if forecastDays > maxForecastDays {
		forecastDays = maxForecastDays
	}

	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(lat, 'f', 4, 64))
	params.Set("longitude", strconv.FormatFloat(lon, 'f', 4, 64))
	params.Set("current", "temperature_2m,relative_humidity_2m,precipitation,wind_speed_10m,wind_direction_10m,wind_gusts_10m")
	params.Set("hourly", "temperature_2m,precipitation_probability,precipitation,wind_speed_10m,wind_direction_10m,wind_gusts_10m")
	params.Set("temperature_unit", "fahrenheit")
	params.Set("wind_speed_unit", "mph")
	params.Set("precipitation_unit", "inch")
	params.Set("timezone", "auto")
	params.Set("forecast_days", strconv.Itoa(forecastDays))

	res, err := c.httpClient.Get(c.baseURL + "?" + params.Encode())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch weather data: %v", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected weather API status code: %d %s", res.StatusCode, res.Status)
	}

	var payload Payload
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode weather response: %v", err)
	}

	return &payload, nil
}

// CurrentSample fetches and extracts the current conditions for a location.
func (c *Client) CurrentSample(lat, lon float64) (*entities.WeatherSample, error) {
	payload, err := c.Fetch(lat, lon, 1)
	if err != nil {
		return nil, err
	}
	return payload.CurrentSample(), nil
}

// ForecastSample fetches a multi-day payload and extracts the aggregate
// sample for one calendar date. Returns nil when the payload has no hours on
// that date.
func (c *Client) ForecastSample(lat, lon float64, date time.Time) (*entities.WeatherSample, error) {
	payload, err := c.Fetch(lat, lon, forecastHorizonDays)
	if err != nil {
		return nil, err
	}

	sample := payload.SampleForDate(date)
	if sample == nil {
		log.Printf("No forecast hours for %s at %.4f,%.4f", date.Format("2006-01-02"), lat, lon)
	}
	return sample, nil
}
