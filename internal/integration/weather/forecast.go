package weather

import (
	"strings"
	"time"

	"github.com/openpaddle/paddle-planner/internal/entities"
)

// hourlyTimeLayout is Open-Meteo's hourly timestamp format: local time for
// the requested coordinates, no zone suffix.
const hourlyTimeLayout = "2006-01-02T15:04"

// Payload is a decoded Open-Meteo response. The hourly arrays are parallel;
// day-level samples are derived from them by calendar date.
type Payload struct {
	Timezone string       `json:"timezone"`
	Current  CurrentBlock `json:"current"`
	Hourly   HourlyBlock  `json:"hourly"`
}

// CurrentBlock holds the instantaneous observations.
type CurrentBlock struct {
	Temperature   float64 `json:"temperature_2m"`
	Humidity      float64 `json:"relative_humidity_2m"`
	Precipitation float64 `json:"precipitation"`
	WindSpeed     float64 `json:"wind_speed_10m"`
	WindDirection float64 `json:"wind_direction_10m"`
	WindGusts     float64 `json:"wind_gusts_10m"`
}

// HourlyBlock holds the parallel hourly forecast arrays.
type HourlyBlock struct {
	Time          []string  `json:"time"`
	Temperature   []float64 `json:"temperature_2m"`
	PrecipProb    []float64 `json:"precipitation_probability"`
	Precipitation []float64 `json:"precipitation"`
	WindSpeed     []float64 `json:"wind_speed_10m"`
	WindDirection []float64 `json:"wind_direction_10m"`
	WindGusts     []float64 `json:"wind_gusts_10m"`
}

// CurrentSample extracts the current-conditions sample. Current samples carry
// no precipitation probability.
func (p *Payload) CurrentSample() *entities.WeatherSample {
	return &entities.WeatherSample{
		Temperature:       p.Current.Temperature,
		WindSpeed:         p.Current.WindSpeed,
		WindGusts:         p.Current.WindGusts,
		WindDirection:     p.Current.WindDirection,
		WindDirectionName: WindDirectionName(p.Current.WindDirection),
		Precipitation:     p.Current.Precipitation,
	}
}

// SampleForDate aggregates the payload's hourly values over one calendar day
// in the payload's own time zone: mean temperature and wind speed, peak gusts
// and precipitation probability, summed precipitation, and the midday wind
// direction. Returns nil when no hours fall on the date.
func (p *Payload) SampleForDate(date time.Time) *entities.WeatherSample {
	hours := p.hoursForDate(date)
	if len(hours) == 0 {
		return nil
	}

	var (
		tempSum, windSum, precipSum float64
		maxGust, maxProb            float64
	)
	for _, h := range hours {
		tempSum += p.Hourly.Temperature[h]
		windSum += p.Hourly.WindSpeed[h]
		precipSum += p.Hourly.Precipitation[h]
		if p.Hourly.WindGusts[h] > maxGust {
			maxGust = p.Hourly.WindGusts[h]
		}
		if p.Hourly.PrecipProb[h] > maxProb {
			maxProb = p.Hourly.PrecipProb[h]
		}
	}

	middayDir := p.Hourly.WindDirection[hours[len(hours)/2]]
	n := float64(len(hours))

	return &entities.WeatherSample{
		Temperature:       tempSum / n,
		WindSpeed:         windSum / n,
		WindGusts:         maxGust,
		WindDirection:     middayDir,
		WindDirectionName: WindDirectionName(middayDir),
		Precipitation:     precipSum,
		PrecipProbability: &maxProb,
		Narrative:         p.narrativeForHours(hours),
	}
}

// hoursForDate returns indices of hourly entries on the target calendar day.
// Indices past the shortest parallel array are dropped.
func (p *Payload) hoursForDate(date time.Time) []int {
	limit := len(p.Hourly.Time)
	for _, n := range []int{
		len(p.Hourly.Temperature), len(p.Hourly.PrecipProb), len(p.Hourly.Precipitation),
		len(p.Hourly.WindSpeed), len(p.Hourly.WindDirection), len(p.Hourly.WindGusts),
	} {
		if n < limit {
			limit = n
		}
	}

	ty, tm, td := date.Date()
	var hours []int
	for i := 0; i < limit; i++ {
		t, err := time.Parse(hourlyTimeLayout, p.Hourly.Time[i])
		if err != nil {
			t, err = time.Parse(time.RFC3339, p.Hourly.Time[i])
			if err != nil {
				continue
			}
		}
		y, m, d := t.Date()
		if y == ty && m == tm && d == td {
			hours = append(hours, i)
		}
	}
	return hours
}

// narrativeForHours builds a short morning/afternoon summary for a day, e.g.
// "Sunny morning, winds increase afternoon". Days with too few hours get no
// narrative.
func (p *Payload) narrativeForHours(hours []int) string {
	if len(hours) < 6 {
		return ""
	}

	morning := hours[:len(hours)/3]
	afternoon := hours[len(hours)/3 : 2*len(hours)/3]
	if len(morning) == 0 || len(afternoon) == 0 {
		return ""
	}

	avg := func(idx []int, vals []float64) float64 {
		sum := 0.0
		for _, i := range idx {
			sum += vals[i]
		}
		return sum / float64(len(idx))
	}

	morningPrecip := avg(morning, p.Hourly.PrecipProb)
	morningWind := avg(morning, p.Hourly.WindSpeed)
	afternoonPrecip := avg(afternoon, p.Hourly.PrecipProb)
	afternoonWind := avg(afternoon, p.Hourly.WindSpeed)

	var parts []string

	switch {
	case morningPrecip > 60:
		parts = append(parts, "rainy morning")
	case morningPrecip > 30:
		parts = append(parts, "cloudy morning")
	default:
		parts = append(parts, "sunny morning")
	}

	windDiff := afternoonWind - morningWind
	if windDiff > 5 {
		parts = append(parts, "winds increase afternoon")
	} else if windDiff < -5 {
		parts = append(parts, "winds calm afternoon")
	}

	switch {
	case morningPrecip < 30 && afternoonPrecip > 70:
		parts = append(parts, "rain develops afternoon")
	case morningPrecip < 30 && afternoonPrecip > 50:
		parts = append(parts, "clouds increase afternoon")
	case morningPrecip > 50 && afternoonPrecip < 30:
		parts = append(parts, "clearing afternoon")
	case afternoonPrecip > 60 && parts[0] != "rainy morning":
		parts = append(parts, "afternoon showers")
	}

	narrative := strings.Join(parts, ", ")
	narrative = strings.ToUpper(narrative[:1]) + narrative[1:]
	if len(narrative) > 50 {
		narrative = narrative[:47] + "..."
	}
	return narrative
}

// compassPoints are the 16-point compass names in clockwise order from north.
var compassPoints = []string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// WindDirectionName converts a bearing in degrees to its 16-point compass name.
func WindDirectionName(degrees float64) string {
	index := int(degrees/22.5+0.5) % 16
	return compassPoints[index]
}

// HourlySample is one hour of forecast detail.
type HourlySample struct {
	Time              time.Time
	Temperature       float64
	WindSpeed         float64
	WindDirection     float64
	WindGusts         float64
	PrecipProbability float64
	Precipitation     float64
}

// HourlyForecast returns up to the next `hours` hourly samples, starting from
// the hour after the payload's first entry.
func (p *Payload) HourlyForecast(hours int) []HourlySample {
	limit := len(p.Hourly.Time)
	if hours+1 < limit {
		limit = hours + 1
	}

	var out []HourlySample
	for i := 1; i < limit; i++ {
		t, err := time.Parse(hourlyTimeLayout, p.Hourly.Time[i])
		if err != nil {
			continue
		}
		if i >= len(p.Hourly.Temperature) || i >= len(p.Hourly.WindSpeed) ||
			i >= len(p.Hourly.WindDirection) || i >= len(p.Hourly.WindGusts) ||
			i >= len(p.Hourly.PrecipProb) || i >= len(p.Hourly.Precipitation) {
			break
		}
		out = append(out, HourlySample{
			Time:              t,
			Temperature:       p.Hourly.Temperature[i],
			WindSpeed:         p.Hourly.WindSpeed[i],
			WindDirection:     p.Hourly.WindDirection[i],
			WindGusts:         p.Hourly.WindGusts[i],
			PrecipProbability: p.Hourly.PrecipProb[i],
			Precipitation:     p.Hourly.Precipitation[i],
		})
	}
	return out
}
