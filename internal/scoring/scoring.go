// Package scoring combines water status, weather, and distance into a single
// comparable score in [0, 100.99].
//
// The integer part reflects substantive quality: water level contributes up to
// 60 points and wind up to 40. The fractional part is a distance tiebreaker
// that never changes the integer recommendation tier.
package scoring

import (
	"math"

	"github.com/openpaddle/paddle-planner/internal/entities"
)

// idealFraction positions the bottom of the ideal band 30% of the way up the
// acceptable range.
const idealFraction = 0.3

// WaterComponent scores the water level on 0-60 points. It contributes 0 when
// the status is an error, the reading is absent, or the bounds are absent.
func WaterComponent(water *entities.WaterStatus) float64 {
	if water == nil || water.Status == entities.WaterError {
		return 0
	}
	if water.CurrentLevel == nil || water.Min == nil || water.Max == nil {
		return 0
	}

	level := *water.CurrentLevel
	min := *water.Min
	max := *water.Max
	idealMin := min + (max-min)*idealFraction

	switch {
	case level > max:
		// Too high - dangerous
		return 5
	case level < min:
		// Too low - not paddleable
		return 0
	case level >= idealMin:
		// Ideal band: 30%+ above min, at or below max
		return 60
	default:
		// Between min and the ideal band: linear from 20 up to 45
		progress := (level - min) / (idealMin - min)
		return 20 + 25*progress
	}
}

// WindComponent scores the wind on 0-40 points. Gusts exceeding the sustained
// speed by more than 10 mph cost 10 points, floored at 0.
func WindComponent(sample *entities.WeatherSample) float64 {
	if sample == nil {
		return 0
	}

	var score float64
	switch {
	case sample.WindSpeed <= 5:
		score = 40
	case sample.WindSpeed <= 10:
		score = 35
	case sample.WindSpeed <= 15:
		score = 20
	case sample.WindSpeed <= 20:
		score = 10
	default:
		score = 0
	}

	if sample.WindGusts > sample.WindSpeed+10 {
		score = math.Max(0, score-10)
	}

	return score
}

// DistanceBonus maps distance in miles onto the (0, 1) tiebreaker band. An
// absent distance scores a neutral 0.50, better than anything over 200 miles.
func DistanceBonus(miles *float64) float64 {
	if miles == nil {
		return 0.50
	}

	switch {
	case *miles <= 30:
		return 0.99
	case *miles <= 60:
		return 0.80
	case *miles <= 100:
		return 0.60
	case *miles <= 150:
		return 0.40
	case *miles <= 200:
		return 0.20
	default:
		return 0.01
	}
}

// Overall computes the final score, rounded to 2 decimals.
func Overall(water *entities.WaterStatus, sample *entities.WeatherSample, distanceMiles *float64) float64 {
	score := WaterComponent(water) + WindComponent(sample) + DistanceBonus(distanceMiles)
	return math.Round(score*100) / 100
}

// Recommendation maps the integer part of a score to a tier label.
func Recommendation(score float64) string {
	switch main := int(score); {
	case main >= 85:
		return "🟢 Perfect conditions!"
	case main >= 70:
		return "🟢 Excellent choice!"
	case main >= 50:
		return "🟡 Good option"
	case main >= 30:
		return "🟠 Marginal conditions"
	case main >= 15:
		return "🔴 Poor conditions"
	default:
		return "❌ Avoid"
	}
}
