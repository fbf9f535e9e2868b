package main

import (
	"fmt"
	"time"

	"github.com/openpaddle/paddle-planner/internal/integration/geocode"
	"github.com/openpaddle/paddle-planner/internal/integration/weather"
	"github.com/openpaddle/paddle-planner/internal/report"
	"github.com/openpaddle/paddle-planner/internal/usecases"
	"github.com/spf13/cobra"
)

// newGaugesCmd reports the raw water status of every gauge in the catalog,
// without weather or scoring.
func newGaugesCmd() *cobra.Command {
	var flags plannerFlags

	cmd := &cobra.Command{
		Use:   "gauges",
		Short: "Show the current water status of every catalog gauge",
		RunE: func(cmd *cobra.Command, args []string) error {
			planner, _, err := flags.build()
			if err != nil {
				return err
			}

			var sites []usecases.SiteConfig
			for _, spec := range planner.Catalog() {
				sites = append(sites, usecases.SiteConfig{
					Name:     spec.Name,
					SiteID:   spec.GaugeID,
					MinLevel: spec.MinLevel,
					MaxLevel: spec.MaxLevel,
					MinCFS:   spec.MinCFS,
					MaxCFS:   spec.MaxCFS,
				})
			}

			fmt.Print(report.MultiSiteSummary(planner.MultiSiteStatus(sites)))
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

// newHoursCmd prints the upcoming hourly forecast for a zip code.
func newHoursCmd() *cobra.Command {
	var (
		zip   string
		hours int
	)

	cmd := &cobra.Command{
		Use:   "hours",
		Short: "Show the hour-by-hour forecast for a zip code",
		RunE: func(cmd *cobra.Command, args []string) error {
			geocoder := geocode.NewClient("", "", nil)
			lat, lon, err := geocoder.CoordinatesForZip(zip)
			if err != nil {
				return fmt.Errorf("geocoding zip %s: %w", zip, err)
			}

			payload, err := weather.NewClient("").Fetch(lat, lon, 2)
			if err != nil {
				return fmt.Errorf("fetching forecast: %w", err)
			}

			fmt.Printf("🌤️ Hourly forecast for %s:\n", zip)
			for _, h := range payload.HourlyForecast(hours) {
				fmt.Printf("%s  %3.0f°F  wind %2.0f mph %s (gusts %2.0f)  rain %3.0f%%\n",
					h.Time.Format(time.Kitchen),
					h.Temperature,
					h.WindSpeed,
					weather.WindDirectionName(h.WindDirection),
					h.WindGusts,
					h.PrecipProbability)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&zip, "zip", "", "Zip code to forecast (required)")
	cmd.Flags().IntVar(&hours, "hours", 12, "How many hours ahead to show")
	_ = cmd.MarkFlagRequired("zip")
	return cmd
}
