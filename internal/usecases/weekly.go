package usecases

import (
	"log"
	"sort"
	"time"

	"github.com/openpaddle/paddle-planner/internal/entities"
)

// WeeklyForecast evaluates the next 7 calendar days (tomorrow through 7 days
// out) and returns them ranked by day score. Today is covered by the
// single-date path, not this loop.
func (p *Planner) WeeklyForecast(now time.Time, opts Options) []entities.DayForecast {
	var days []entities.DayForecast

	for offset := 1; offset <= 7; offset++ {
		target := midnight(now).AddDate(0, 0, offset)
		log.Printf("Analyzing %s, %s...", target.Weekday(), target.Format("January 02"))

		results := p.EvaluateDay(target, now, opts)

		days = append(days, entities.DayForecast{
			Date:     target,
			DayName:  target.Weekday().String(),
			DayScore: DayScore(results),
			Rivers:   results,
		})
	}

	sort.SliceStable(days, func(i, j int) bool {
		return days[i].DayScore > days[j].DayScore
	})

	log.Printf("Weekly forecast complete: %d days", len(days))
	return days
}

// WhitewaterForecast is the weekly preset for Class III+ paddlers: minimum
// difficulty 3, no distance cap.
func (p *Planner) WhitewaterForecast(now time.Time, opts Options) []entities.DayForecast {
	minThree := -3
	opts.MaxWhitewater = &minThree
	opts.MaxDistanceMiles = nil
	return p.WeeklyForecast(now, opts)
}

// CasualForecast is the weekly preset for Class II and below. Proximity
// "close" caps the search at 30 miles from home.
func (p *Planner) CasualForecast(now time.Time, opts Options, proximity string) []entities.DayForecast {
	maxThree := 3
	opts.MaxWhitewater = &maxThree
	if proximity == "close" {
		closeCap := 30.0
		opts.MaxDistanceMiles = &closeCap
	}
	return p.WeeklyForecast(now, opts)
}
