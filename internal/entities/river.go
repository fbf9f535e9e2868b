// Package entities contains the core domain objects for the paddle planner
package entities

import (
	"time"
)

// Metric identifies which gauge measurement a reading or range refers to.
type Metric string

const (
	MetricFeet Metric = "feet" // gage height in feet
	MetricCFS  Metric = "cfs"  // discharge in cubic feet per second
)

// Unit returns the display unit for the metric.
func (m Metric) Unit() string {
	if m == MetricCFS {
		return "CFS"
	}
	return "ft"
}

// WaterCondition classifies a gauge reading against the configured range.
type WaterCondition string

const (
	WaterGood    WaterCondition = "good"
	WaterTooLow  WaterCondition = "too_low"
	WaterTooHigh WaterCondition = "too_high"
	WaterNoData  WaterCondition = "no_data"
	WaterError   WaterCondition = "error"
)

// ConditionStatus classifies a weather sample for paddling.
type ConditionStatus string

const (
	ConditionGood    ConditionStatus = "good"
	ConditionCaution ConditionStatus = "caution"
	ConditionPoor    ConditionStatus = "poor"
	ConditionError   ConditionStatus = "error"
)

// RiverSpec is a single catalog entry loaded from the river CSV.
// Optional bounds are nil when the catalog leaves them blank.
type RiverSpec struct {
	Name        string
	Route       string
	LengthMiles float64
	Class       string // class-range token, e.g. "III-IV"; may be empty
	Whitewater  int    // collapsed difficulty, 0 (flat) through 6 (extreme)
	Zipcode     string
	GaugeID     string // 8-character zero-padded USGS site ID
	MinLevel    *float64
	MaxLevel    *float64
	MinCFS      *float64
	MaxCFS      *float64
}

// ActiveBounds returns the acceptable range and metric to classify against.
// The flow range wins whenever both CFS bounds are configured.
func (r RiverSpec) ActiveBounds() (min, max *float64, metric Metric) {
	if r.MinCFS != nil && r.MaxCFS != nil {
		return r.MinCFS, r.MaxCFS, MetricCFS
	}
	return r.MinLevel, r.MaxLevel, MetricFeet
}

// GaugeReading is the latest measurement reported by a gauge site.
type GaugeReading struct {
	SiteID    string
	Value     float64
	Timestamp time.Time
	Metric    Metric
}

// WaterStatus is the classification of a gauge reading against a range.
type WaterStatus struct {
	Status       WaterCondition
	CurrentLevel *float64
	Timestamp    *time.Time
	Metric       Metric
	Message      string
	Min          *float64 // echoed bounds for the active metric
	Max          *float64
}

// WeatherSample holds one weather observation or one forecast-day aggregate.
// PrecipProbability is only populated on forecast samples; consumers must
// tolerate its absence.
type WeatherSample struct {
	Temperature       float64 // °F
	WindSpeed         float64 // mph
	WindGusts         float64 // mph
	WindDirection     float64 // degrees
	WindDirectionName string  // 16-point compass name
	Precipitation     float64 // inches
	PrecipProbability *float64
	Narrative         string // forecast samples only; may be empty
}

// IsForecast reports whether the sample came from a forecast payload.
func (s WeatherSample) IsForecast() bool {
	return s.PrecipProbability != nil
}

// ConditionAssessment is the qualitative paddling verdict for a weather sample.
type ConditionAssessment struct {
	Status  ConditionStatus
	Message string
	Issues  []string
}

// RiverEvaluation is the full result for one river on one date.
type RiverEvaluation struct {
	Name           string
	Route          string
	LengthMiles    float64
	Whitewater     int
	Zipcode        string
	GaugeID        string
	TargetDate     time.Time
	IsToday        bool
	DistanceMiles  *float64
	Water          *WaterStatus
	Weather        *ConditionAssessment
	Conditions     *WeatherSample
	OverallScore   float64
	Recommendation string
	Issues         []string
}

// DayForecast aggregates one calendar day of a weekly run.
type DayForecast struct {
	Date     time.Time
	DayName  string
	DayScore float64
	Rivers   []RiverEvaluation
}

// Location is a geocoded place, cached by zip code.
type Location struct {
	Zip       string
	Name      string
	State     string
	Latitude  float64
	Longitude float64
}
