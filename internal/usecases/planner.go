// Package usecases contains the application's business logic: evaluating
// rivers, ranking days, and assembling recommendations.
package usecases

import (
	"fmt"
	"time"

	"github.com/openpaddle/paddle-planner/internal/classes"
	"github.com/openpaddle/paddle-planner/internal/entities"
)

// GaugeProvider supplies the latest reading for a gauge site, or nil when the
// site is reachable but has no data.
type GaugeProvider interface {
	LatestReading(siteID string, metric entities.Metric) (*entities.GaugeReading, error)
}

// Geocoder resolves a zip code to coordinates.
type Geocoder interface {
	CoordinatesForZip(zip string) (lat, lon float64, err error)
}

// WeatherProvider supplies current and forecast weather samples for a
// coordinate pair. A nil sample with nil error means no data was available
// for the request.
type WeatherProvider interface {
	CurrentSample(lat, lon float64) (*entities.WeatherSample, error)
	ForecastSample(lat, lon float64, date time.Time) (*entities.WeatherSample, error)
}

// Options carry the user-configured filters for an evaluation run.
type Options struct {
	HomeZip string

	// MaxWhitewater is a signed difficulty filter: a negative value -k
	// excludes rivers with difficulty below k, a non-negative value k
	// excludes rivers with difficulty k or above. Nil disables the filter.
	MaxWhitewater *int

	// MaxDistanceMiles excludes rivers farther than this from home.
	MaxDistanceMiles *float64

	// ClassRange restricts the catalog to rivers whose class token overlaps
	// the interval. Rows without a parseable class token are dropped.
	ClassRange *classes.Range
}

// Planner evaluates the river catalog against live gauge and weather data.
type Planner struct {
	catalog  []entities.RiverSpec
	gauges   GaugeProvider
	weather  WeatherProvider
	geocoder Geocoder
}

// NewPlanner creates a planner over an ordered river catalog.
func NewPlanner(catalog []entities.RiverSpec, gauges GaugeProvider, weather WeatherProvider, geocoder Geocoder) *Planner {
	return &Planner{
		catalog:  catalog,
		gauges:   gauges,
		weather:  weather,
		geocoder: geocoder,
	}
}

// Catalog returns the planner's river specs in catalog order.
func (p *Planner) Catalog() []entities.RiverSpec {
	return p.catalog
}

// ParseTargetDate validates a YYYY-MM-DD date string. An empty string means
// "today". This is the only place a structurally invalid configuration is
// rejected; everything past this point degrades instead of failing.
func ParseTargetDate(dateStr string, now time.Time) (time.Time, error) {
	if dateStr == "" {
		return midnight(now), nil
	}
	t, err := time.ParseInLocation("2006-01-02", dateStr, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be in YYYY-MM-DD format: %v", err)
	}
	return t, nil
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// filteredCatalog applies the class-range filter when configured.
func (p *Planner) filteredCatalog(opts Options) []entities.RiverSpec {
	if opts.ClassRange == nil {
		return p.catalog
	}
	return classes.Filter(p.catalog, opts.ClassRange.Min, opts.ClassRange.Max)
}

// homeCoordinates resolves the home zip, returning nil when geocoding fails
// so that evaluation proceeds without distances.
func (p *Planner) homeCoordinates(opts Options) *coordinates {
	if opts.HomeZip == "" {
		return nil
	}
	lat, lon, err := p.geocoder.CoordinatesForZip(opts.HomeZip)
	if err != nil {
		return nil
	}
	return &coordinates{lat: lat, lon: lon}
}

type coordinates struct {
	lat float64
	lon float64
}
