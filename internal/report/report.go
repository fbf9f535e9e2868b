// Package report renders evaluation results as human-readable summaries for
// the bot and CLI surfaces.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/openpaddle/paddle-planner/internal/entities"
	"github.com/openpaddle/paddle-planner/internal/usecases"
)

const dateDisplayLayout = "Monday, January 2, 2006"

// DailySummary renders the ranked results for one date: a header, the top
// five rivers, and the top recommendation when one clears the bar.
func DailySummary(results []entities.RiverEvaluation, target time.Time, isToday bool, now time.Time) string {
	var b strings.Builder

	b.WriteString("🌊 River Paddling Conditions Check\n")
	if isToday {
		fmt.Fprintf(&b, "📅 %s at %s\n", target.Format(dateDisplayLayout), now.Format("3:04 PM"))
	} else {
		fmt.Fprintf(&b, "📅 %s\n", target.Format(dateDisplayLayout))
	}

	if len(results) == 0 {
		b.WriteString("\n❌ No river results to display\n")
		return b.String()
	}

	b.WriteString("\n🏆 RIVER RECOMMENDATIONS SUMMARY\n")
	b.WriteString(strings.Repeat("=", 70) + "\n")

	top := results
	if len(top) > 5 {
		top = top[:5]
	}
	for i, river := range top {
		fmt.Fprintf(&b, "\n%d. %s - %s (Score: %g/100)\n", i+1, river.Name, river.Recommendation, river.OverallScore)
		fmt.Fprintf(&b, "   📍 %s\n", river.Route)

		if river.DistanceMiles != nil {
			fmt.Fprintf(&b, "   🚗 Distance: %.1f miles\n", *river.DistanceMiles)
		}

		if river.Water != nil && river.Water.CurrentLevel != nil {
			fmt.Fprintf(&b, "   💧 Water Level: %.2f %s (%s)\n", *river.Water.CurrentLevel, river.Water.Metric.Unit(), river.Water.Status)
		}

		if river.Conditions != nil {
			fmt.Fprintf(&b, "   🌤️ Weather: %.0f°F, Wind: %.0fmph %s\n",
				river.Conditions.Temperature, river.Conditions.WindSpeed, river.Conditions.WindDirectionName)
		}

		if len(river.Issues) > 0 {
			fmt.Fprintf(&b, "   ⚠️ Issues: %s\n", strings.Join(river.Issues, ", "))
		}
	}

	if best := usecases.BestRiver(results); best != nil {
		fmt.Fprintf(&b, "\n🎯 TOP RECOMMENDATION: %s\n", best.Name)
		fmt.Fprintf(&b, "   %s (Score: %g/100)\n", best.Recommendation, best.OverallScore)
		if !isToday {
			fmt.Fprintf(&b, "   📅 For %s\n", target.Format(dateDisplayLayout))
		}
	} else {
		dateContext := ""
		if !isToday {
			dateContext = " for " + target.Format(dateDisplayLayout)
		}
		fmt.Fprintf(&b, "\n😞 No rivers currently meet good paddling conditions%s.\n", dateContext)
		fmt.Fprintf(&b, "   Best available: %s (Score: %g/100)\n", results[0].Name, results[0].OverallScore)
	}

	return b.String()
}

// WeeklySummary renders the 7-day outlook. Days scoring under 10 are omitted.
func WeeklySummary(days []entities.DayForecast) string {
	var b strings.Builder

	if len(days) == 0 {
		b.WriteString("❌ No forecast data to display\n")
		return b.String()
	}

	b.WriteString("🏆 BEST PADDLING DAYS (Next 7 Days)\n")
	b.WriteString(strings.Repeat("=", 70) + "\n")

	for i, day := range days {
		if day.DayScore < 10 {
			continue
		}

		fmt.Fprintf(&b, "\n%d. %s, %s (Score: %.1f/100)\n", i+1, day.DayName, day.Date.Format("January 2"), day.DayScore)

		switch {
		case len(day.Rivers) >= 2:
			best := day.Rivers[0]
			second := day.Rivers[1]

			fmt.Fprintf(&b, "   🥇 Best: %s\n", best.Name)
			if best.Water != nil && best.Water.CurrentLevel != nil {
				fmt.Fprintf(&b, "      💧 Level: %.2f %s (%s)\n", *best.Water.CurrentLevel, best.Water.Metric.Unit(), best.Water.Status)
			}
			if best.Conditions != nil {
				line := fmt.Sprintf("🌤️ Weather: %.0f°F, Wind: %.0fmph", best.Conditions.Temperature, best.Conditions.WindSpeed)
				if best.Conditions.PrecipProbability != nil {
					line += fmt.Sprintf(", Rain: %.0f%%", *best.Conditions.PrecipProbability)
				}
				if best.Conditions.Narrative != "" {
					line += fmt.Sprintf(" (%s)", best.Conditions.Narrative)
				}
				fmt.Fprintf(&b, "      %s\n", line)
			}
			if best.DistanceMiles != nil {
				fmt.Fprintf(&b, "      🚗 Distance: %.1f miles\n", *best.DistanceMiles)
			}

			fmt.Fprintf(&b, "   🥈 Alternative: %s\n", second.Name)
			fmt.Fprintf(&b, "      %s\n", Comparison(best, second))

		case len(day.Rivers) == 1:
			best := day.Rivers[0]
			fmt.Fprintf(&b, "   🥇 Only option: %s (Score: %.1f/100)\n", best.Name, best.OverallScore)
			if best.Conditions != nil {
				fmt.Fprintf(&b, "      🌤️ Weather: %.0f°F, Wind: %.0fmph\n", best.Conditions.Temperature, best.Conditions.WindSpeed)
			}

		default:
			b.WriteString("   😞 No good options this day\n")
		}
	}

	return b.String()
}

// Comparison describes how a runner-up differs from the best option. Only
// material differences are called out: wind beyond 3 mph, distance beyond 15
// miles, water status changes, and rain chance beyond 20 points.
func Comparison(best, second entities.RiverEvaluation) string {
	var parts []string

	if best.Conditions != nil && second.Conditions != nil {
		bestWind := best.Conditions.WindSpeed
		secondWind := second.Conditions.WindSpeed
		if secondWind > bestWind+3 {
			parts = append(parts, fmt.Sprintf("windier (%.0fmph vs %.0fmph)", secondWind, bestWind))
		} else if bestWind > secondWind+3 {
			parts = append(parts, fmt.Sprintf("less windy (%.0fmph vs %.0fmph)", secondWind, bestWind))
		}
	}

	if best.DistanceMiles != nil && second.DistanceMiles != nil {
		if *second.DistanceMiles > *best.DistanceMiles+15 {
			parts = append(parts, fmt.Sprintf("farther (%.0fmi vs %.0fmi)", *second.DistanceMiles, *best.DistanceMiles))
		} else if *best.DistanceMiles > *second.DistanceMiles+15 {
			parts = append(parts, fmt.Sprintf("closer (%.0fmi vs %.0fmi)", *second.DistanceMiles, *best.DistanceMiles))
		}
	}

	if best.Water != nil && second.Water != nil {
		if second.Water.Status == entities.WaterTooLow && best.Water.Status == entities.WaterGood {
			parts = append(parts, "lower water")
		} else if second.Water.Status == entities.WaterGood && best.Water.Status != entities.WaterGood {
			parts = append(parts, "better water level")
		}
	}

	if best.Conditions != nil && second.Conditions != nil &&
		best.Conditions.PrecipProbability != nil && second.Conditions.PrecipProbability != nil {
		bestRain := *best.Conditions.PrecipProbability
		secondRain := *second.Conditions.PrecipProbability
		if secondRain > bestRain+20 {
			parts = append(parts, fmt.Sprintf("rainier (%.0f%% vs %.0f%% chance)", secondRain, bestRain))
		} else if bestRain > secondRain+20 {
			parts = append(parts, fmt.Sprintf("less rain (%.0f%% vs %.0f%% chance)", secondRain, bestRain))
		}
	}

	if len(parts) > 0 {
		return "Similar option, but " + strings.Join(parts, ", ")
	}
	return fmt.Sprintf("Similar conditions (Score: %.1f/100)", second.OverallScore)
}

// RiverList renders the catalog as a short reference listing.
func RiverList(specs []entities.RiverSpec) string {
	var b strings.Builder

	b.WriteString("🌊 Known rivers:\n")
	for _, spec := range specs {
		fmt.Fprintf(&b, "\n• %s", spec.Name)
		if spec.Class != "" {
			fmt.Fprintf(&b, " (Class %s)", spec.Class)
		}
		b.WriteString("\n")
		if spec.Route != "" {
			fmt.Fprintf(&b, "  📍 %s\n", spec.Route)
		}
		if spec.LengthMiles > 0 {
			fmt.Fprintf(&b, "  📏 %.1f miles\n", spec.LengthMiles)
		}
	}

	return b.String()
}

// MultiSiteSummary renders per-gauge water statuses.
func MultiSiteSummary(statuses []usecases.SiteStatus) string {
	var b strings.Builder

	b.WriteString("💧 Gauge status:\n")
	for _, s := range statuses {
		icon := "❌"
		switch s.Status.Status {
		case entities.WaterGood:
			icon = "✅"
		case entities.WaterTooLow, entities.WaterTooHigh:
			icon = "⚠️"
		}
		name := s.Name
		if name == "" {
			name = s.SiteID
		}
		fmt.Fprintf(&b, "%s %s: %s\n", icon, name, s.Status.Message)
	}

	return b.String()
}
