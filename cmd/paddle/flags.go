package main

import (
	"fmt"
	"os"
	"time"

	"github.com/openpaddle/paddle-planner/internal/catalog"
	"github.com/openpaddle/paddle-planner/internal/classes"
	"github.com/openpaddle/paddle-planner/internal/entities"
	"github.com/openpaddle/paddle-planner/internal/integration/geocode"
	"github.com/openpaddle/paddle-planner/internal/integration/usgs"
	"github.com/openpaddle/paddle-planner/internal/integration/weather"
	"github.com/openpaddle/paddle-planner/internal/report"
	"github.com/openpaddle/paddle-planner/internal/repository"
	"github.com/openpaddle/paddle-planner/internal/usecases"
	"github.com/spf13/cobra"
)

// plannerFlags are the options shared by every evaluation command.
type plannerFlags struct {
	catalogPath   string
	homeZip       string
	classRange    string
	maxWhitewater int
	maxDistance   float64
	dbPath        string
}

func (f *plannerFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.catalogPath, "catalog", "data/rivers.csv", "Path to the river catalog CSV")
	cmd.Flags().StringVar(&f.homeZip, "home-zip", os.Getenv("HOME_ZIP"), "Home zip code for distance calculations")
	cmd.Flags().StringVar(&f.classRange, "class", "", "Restrict to rivers in a class range, e.g. II-IV")
	cmd.Flags().IntVar(&f.maxWhitewater, "max-whitewater", 0, "Exclude rivers at or above this difficulty; negative -k keeps only difficulty k+")
	cmd.Flags().Float64Var(&f.maxDistance, "max-distance", 0, "Exclude rivers farther than this many miles from home")
	cmd.Flags().StringVar(&f.dbPath, "db", os.Getenv("PADDLE_DB"), "Path to the geocode cache database")
}

// build assembles a planner and options from the flags. The geocode cache is
// best-effort; evaluation proceeds uncached when the database can't open.
func (f *plannerFlags) build() (*usecases.Planner, usecases.Options, error) {
	specs, err := catalog.Load(f.catalogPath)
	if err != nil {
		return nil, usecases.Options{}, fmt.Errorf("loading river catalog: %w", err)
	}

	var cache geocode.Cache
	if repo, err := repository.NewSQLiteLocationRepository(f.dbPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: geocode cache unavailable: %v\n", err)
	} else {
		cache = repo
	}

	gauges := usgs.NewClient("", "")
	forecasts := weather.NewClient("")
	geocoder := geocode.NewClient("", "", cache)

	planner := usecases.NewPlanner(specs, gauges, forecasts, geocoder)

	opts := usecases.Options{HomeZip: f.homeZip}
	if f.maxWhitewater != 0 {
		ww := f.maxWhitewater
		opts.MaxWhitewater = &ww
	}
	if f.maxDistance > 0 {
		dist := f.maxDistance
		opts.MaxDistanceMiles = &dist
	}
	if f.classRange != "" {
		r, ok := classes.ParseRange(f.classRange)
		if !ok {
			return nil, usecases.Options{}, fmt.Errorf("unrecognized class range %q", f.classRange)
		}
		opts.ClassRange = &r
	}

	return planner, opts, nil
}

func parseTarget(dateStr string, now time.Time) (time.Time, error) {
	return usecases.ParseTargetDate(dateStr, now)
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func printDaily(results []entities.RiverEvaluation, target time.Time, isToday bool, now time.Time) {
	fmt.Print(report.DailySummary(results, target, isToday, now))
}

func printWeekly(days []entities.DayForecast) {
	fmt.Print(report.WeeklySummary(days))
}

func printRivers(specs []entities.RiverSpec) {
	fmt.Print(report.RiverList(specs))
}
