// Package conditions classifies gauge readings and weather samples into
// qualitative paddling statuses.
package conditions

import (
	"fmt"

	"github.com/openpaddle/paddle-planner/internal/entities"
)

// ClassifyWater turns a raw gauge reading and the configured acceptable range
// into a WaterStatus. It never fails past its boundary: a fetch error becomes
// status "error", a missing reading becomes "no_data", and the caller can
// always proceed with the returned record.
func ClassifyWater(latest *entities.GaugeReading, fetchErr error, min, max *float64, metric entities.Metric) entities.WaterStatus {
	if fetchErr != nil {
		return entities.WaterStatus{
			Status:  entities.WaterError,
			Metric:  metric,
			Message: fmt.Sprintf("Error: %v", fetchErr),
			Min:     min,
			Max:     max,
		}
	}

	if latest == nil {
		return entities.WaterStatus{
			Status:  entities.WaterNoData,
			Metric:  metric,
			Message: "No data available",
			Min:     min,
			Max:     max,
		}
	}

	if min == nil || max == nil {
		return entities.WaterStatus{
			Status:  entities.WaterError,
			Metric:  metric,
			Message: fmt.Sprintf("Error: no acceptable %s range configured", metric),
			Min:     min,
			Max:     max,
		}
	}

	level := latest.Value
	ts := latest.Timestamp
	unit := metric.Unit()

	status := entities.WaterStatus{
		CurrentLevel: &level,
		Timestamp:    &ts,
		Metric:       metric,
		Min:          min,
		Max:          max,
	}

	switch {
	case level < *min:
		status.Status = entities.WaterTooLow
		status.Message = fmt.Sprintf("Water level (%.2f %s) is below minimum (%g %s)", level, unit, *min, unit)
	case level > *max:
		status.Status = entities.WaterTooHigh
		status.Message = fmt.Sprintf("Water level (%.2f %s) is above maximum (%g %s)", level, unit, *max, unit)
	default:
		status.Status = entities.WaterGood
		status.Message = fmt.Sprintf("Water level (%.2f %s) is in preferred range", level, unit)
	}

	return status
}
