package usecases

import (
	"log"
	"sort"
	"time"

	"github.com/openpaddle/paddle-planner/internal/entities"
)

// CheckDate evaluates the full catalog for a single date and returns results
// ranked by overall score. dateStr is YYYY-MM-DD, or empty for today; an
// unparseable date is the one configuration error rejected up front.
func (p *Planner) CheckDate(dateStr string, now time.Time, opts Options) ([]entities.RiverEvaluation, error) {
	target, err := ParseTargetDate(dateStr, now)
	if err != nil {
		return nil, err
	}
	return p.EvaluateDay(target, now, opts), nil
}

// CheckToday evaluates the full catalog for the current date.
func (p *Planner) CheckToday(now time.Time, opts Options) []entities.RiverEvaluation {
	return p.EvaluateDay(midnight(now), now, opts)
}

// EvaluateDay runs the evaluator across the catalog for one date and sorts
// results descending by score. The sort is stable, so exact ties keep catalog
// order.
func (p *Planner) EvaluateDay(target, now time.Time, opts Options) []entities.RiverEvaluation {
	isToday := sameDay(target, now)
	home := p.homeCoordinates(opts)
	if home == nil && opts.HomeZip != "" {
		log.Printf("Warning: could not geocode home zip %s; distances unavailable", opts.HomeZip)
	}

	var results []entities.RiverEvaluation
	excluded := 0
	for _, spec := range p.filteredCatalog(opts) {
		result, included := p.evaluateRiver(spec, target, isToday, home, opts)
		if !included {
			excluded++
			continue
		}
		results = append(results, *result)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].OverallScore > results[j].OverallScore
	})

	if excluded > 0 {
		log.Printf("Excluded %d rivers based on filters", excluded)
	}
	log.Printf("Evaluation complete for %s: %d qualifying rivers", target.Format("2006-01-02"), len(results))
	return results
}

// DayScore derives a single day-quality score from ranked results: the
// average of the top two scores, the single score, or 0 for an empty day.
func DayScore(results []entities.RiverEvaluation) float64 {
	switch {
	case len(results) >= 2:
		return (results[0].OverallScore + results[1].OverallScore) / 2
	case len(results) == 1:
		return results[0].OverallScore
	default:
		return 0
	}
}

// BestRiver returns the top result when it clears the recommendation bar of
// 60 points, or nil when nothing is worth suggesting.
func BestRiver(results []entities.RiverEvaluation) *entities.RiverEvaluation {
	if len(results) == 0 {
		return nil
	}
	if results[0].OverallScore >= 60 {
		best := results[0]
		return &best
	}
	return nil
}
