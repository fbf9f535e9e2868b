package usecases

import (
	"fmt"
	"log"
	"math"
	"time"

	"github.com/openpaddle/paddle-planner/internal/conditions"
	"github.com/openpaddle/paddle-planner/internal/entities"
	"github.com/openpaddle/paddle-planner/internal/geo"
	"github.com/openpaddle/paddle-planner/internal/scoring"
)

// evaluateRiver runs the full pipeline for one river and one date: filter,
// distance, water classification, weather assessment, score. It returns
// (nil, false) when a filter excludes the river. Collaborator failures are
// recorded as issues and degraded statuses; they never abort the evaluation.
func (p *Planner) evaluateRiver(spec entities.RiverSpec, target time.Time, isToday bool, home *coordinates, opts Options) (*entities.RiverEvaluation, bool) {
	if excluded, reason := excludedByWhitewater(spec, opts.MaxWhitewater); excluded {
		log.Printf("Skipping %s: %s", spec.Name, reason)
		return nil, false
	}

	result := &entities.RiverEvaluation{
		Name:        spec.Name,
		Route:       spec.Route,
		LengthMiles: spec.LengthMiles,
		Whitewater:  spec.Whitewater,
		Zipcode:     spec.Zipcode,
		GaugeID:     spec.GaugeID,
		TargetDate:  target,
		IsToday:     isToday,
	}

	// River coordinates serve both the distance calculation and the weather
	// lookup; a geocoding failure degrades both.
	var riverCoords *coordinates
	if lat, lon, err := p.geocoder.CoordinatesForZip(spec.Zipcode); err != nil {
		log.Printf("Warning: could not geocode zip %s for %s: %v", spec.Zipcode, spec.Name, err)
	} else {
		riverCoords = &coordinates{lat: lat, lon: lon}
	}

	if home != nil && riverCoords != nil {
		miles := math.Round(geo.Haversine(home.lat, home.lon, riverCoords.lat, riverCoords.lon)*10) / 10
		result.DistanceMiles = &miles
		if opts.MaxDistanceMiles != nil && miles > *opts.MaxDistanceMiles {
			log.Printf("Excluding %s: distance %.1f miles > %.0f miles", spec.Name, miles, *opts.MaxDistanceMiles)
			return nil, false
		}
	}

	p.checkWater(spec, result, isToday)
	p.checkWeather(spec, result, target, isToday, riverCoords)

	result.OverallScore = scoring.Overall(result.Water, result.Conditions, result.DistanceMiles)
	result.Recommendation = scoring.Recommendation(result.OverallScore)

	return result, true
}

// checkWater classifies the gauge's current reading. Gauges report live data
// only, so future-date evaluations reuse the current reading and say so.
func (p *Planner) checkWater(spec entities.RiverSpec, result *entities.RiverEvaluation, isToday bool) {
	min, max, metric := spec.ActiveBounds()

	reading, err := p.gauges.LatestReading(spec.GaugeID, metric)
	if err != nil {
		result.Issues = append(result.Issues, fmt.Sprintf("Water data unavailable: %v", err))
	}

	status := conditions.ClassifyWater(reading, err, min, max, metric)
	result.Water = &status

	if !isToday {
		result.Issues = append(result.Issues, "Water status based on current gauge reading; gauge forecasts are not available")
	}
}

// checkWeather obtains the weather sample for the target date and assesses
// it. A missing sample leaves the assessment absent and records an issue; the
// evaluation still produces a partial score.
func (p *Planner) checkWeather(spec entities.RiverSpec, result *entities.RiverEvaluation, target time.Time, isToday bool, riverCoords *coordinates) {
	if riverCoords == nil {
		result.Issues = append(result.Issues, "Weather data unavailable")
		return
	}

	var (
		sample *entities.WeatherSample
		err    error
	)
	if isToday {
		sample, err = p.weather.CurrentSample(riverCoords.lat, riverCoords.lon)
	} else {
		sample, err = p.weather.ForecastSample(riverCoords.lat, riverCoords.lon, target)
	}

	if err != nil {
		result.Issues = append(result.Issues, fmt.Sprintf("Weather error: %v", err))
		return
	}
	if sample == nil {
		if isToday {
			result.Issues = append(result.Issues, "Weather data unavailable")
		} else {
			result.Issues = append(result.Issues, "Forecast data unavailable for target date")
		}
		return
	}

	result.Conditions = sample
	assessment := conditions.Assess(sample)
	result.Weather = &assessment
}

// excludedByWhitewater applies the signed difficulty filter.
func excludedByWhitewater(spec entities.RiverSpec, maxWhitewater *int) (bool, string) {
	if maxWhitewater == nil {
		return false, ""
	}
	if *maxWhitewater < 0 {
		minWhitewater := -*maxWhitewater
		if spec.Whitewater < minWhitewater {
			return true, fmt.Sprintf("whitewater %d < %d", spec.Whitewater, minWhitewater)
		}
		return false, ""
	}
	if spec.Whitewater >= *maxWhitewater {
		return true, fmt.Sprintf("whitewater %d >= %d", spec.Whitewater, *maxWhitewater)
	}
	return false, ""
}
