// Package main provides the paddle CLI entry point.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "paddle",
		Short: "River paddling trip planner",
		Long: `Paddle evaluates a river catalog against live USGS gauge readings and
Open-Meteo weather to recommend where and when to paddle.`,
		Version: version,
	}

	rootCmd.AddCommand(
		newTodayCmd(),
		newDateCmd(),
		newWeekCmd(),
		newWhitewaterCmd(),
		newCasualCmd(),
		newRiversCmd(),
		newGaugesCmd(),
		newHoursCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newTodayCmd() *cobra.Command {
	var flags plannerFlags

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Check paddling conditions right now",
		RunE: func(cmd *cobra.Command, args []string) error {
			planner, opts, err := flags.build()
			if err != nil {
				return err
			}
			now := time.Now()
			results := planner.CheckToday(now, opts)
			printDaily(results, now, true, now)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func newDateCmd() *cobra.Command {
	var flags plannerFlags

	cmd := &cobra.Command{
		Use:   "date YYYY-MM-DD",
		Short: "Check paddling conditions for a specific day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			planner, opts, err := flags.build()
			if err != nil {
				return err
			}
			now := time.Now()
			results, err := planner.CheckDate(args[0], now, opts)
			if err != nil {
				return err
			}
			target, _ := parseTarget(args[0], now)
			printDaily(results, target, sameCalendarDay(target, now), now)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func newWeekCmd() *cobra.Command {
	var flags plannerFlags

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Rank the next 7 days by paddling conditions",
		RunE: func(cmd *cobra.Command, args []string) error {
			planner, opts, err := flags.build()
			if err != nil {
				return err
			}
			days := planner.WeeklyForecast(time.Now(), opts)
			printWeekly(days)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func newWhitewaterCmd() *cobra.Command {
	var flags plannerFlags

	cmd := &cobra.Command{
		Use:   "whitewater",
		Short: "7-day outlook for Class III+ runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			planner, opts, err := flags.build()
			if err != nil {
				return err
			}
			days := planner.WhitewaterForecast(time.Now(), opts)
			printWeekly(days)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func newCasualCmd() *cobra.Command {
	var (
		flags     plannerFlags
		closeOnly bool
	)

	cmd := &cobra.Command{
		Use:   "casual",
		Short: "7-day outlook for easy water (Class II and below)",
		RunE: func(cmd *cobra.Command, args []string) error {
			planner, opts, err := flags.build()
			if err != nil {
				return err
			}
			proximity := ""
			if closeOnly {
				proximity = "close"
			}
			days := planner.CasualForecast(time.Now(), opts, proximity)
			printWeekly(days)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&closeOnly, "close", false, "Only consider rivers within 30 miles of home")
	return cmd
}

func newRiversCmd() *cobra.Command {
	var flags plannerFlags

	cmd := &cobra.Command{
		Use:   "rivers",
		Short: "List the river catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			planner, _, err := flags.build()
			if err != nil {
				return err
			}
			printRivers(planner.Catalog())
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
