package conditions

import (
	"fmt"
	"strings"

	"github.com/openpaddle/paddle-planner/internal/entities"
)

// Thresholds for the independent weather checks, applied in a fixed order.
const (
	maxWindSpeed     = 15.0 // mph
	maxWindGusts     = 20.0 // mph
	maxPrecipitation = 0.1  // inches, current samples
	maxPrecipChance  = 70.0 // percent, forecast samples
	minComfortTempF  = 50.0
	maxComfortTempF  = 95.0
)

// Assess evaluates a weather sample for paddling and collects every violated
// rule as an issue. Zero issues is "good", one is "caution", two or more is
// "poor". Current samples check active precipitation; forecast samples check
// precipitation probability instead.
func Assess(sample *entities.WeatherSample) entities.ConditionAssessment {
	if sample == nil {
		return entities.ConditionAssessment{
			Status:  entities.ConditionError,
			Message: "Error assessing conditions: no weather sample",
		}
	}

	var issues []string

	if sample.WindSpeed > maxWindSpeed {
		issues = append(issues, fmt.Sprintf("High wind speed (%.0f mph)", sample.WindSpeed))
	}
	if sample.WindGusts > maxWindGusts {
		issues = append(issues, fmt.Sprintf("Strong wind gusts (%.0f mph)", sample.WindGusts))
	}
	if sample.IsForecast() {
		if *sample.PrecipProbability > maxPrecipChance {
			issues = append(issues, fmt.Sprintf("High rain chance (%.0f%%)", *sample.PrecipProbability))
		}
	} else if sample.Precipitation > maxPrecipitation {
		issues = append(issues, fmt.Sprintf("Active precipitation (%.2f\")", sample.Precipitation))
	}
	if sample.Temperature < minComfortTempF {
		issues = append(issues, fmt.Sprintf("Cold temperature (%.0f°F)", sample.Temperature))
	}
	if sample.Temperature > maxComfortTempF {
		issues = append(issues, fmt.Sprintf("Very hot temperature (%.0f°F)", sample.Temperature))
	}

	switch len(issues) {
	case 0:
		return entities.ConditionAssessment{
			Status:  entities.ConditionGood,
			Message: "Conditions look good for paddling!",
		}
	case 1:
		return entities.ConditionAssessment{
			Status:  entities.ConditionCaution,
			Message: "Caution: " + issues[0],
			Issues:  issues,
		}
	default:
		return entities.ConditionAssessment{
			Status:  entities.ConditionPoor,
			Message: "Poor conditions: " + strings.Join(issues, ", "),
			Issues:  issues,
		}
	}
}
