package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/openpaddle/paddle-planner/internal/api"
	"github.com/openpaddle/paddle-planner/internal/catalog"
	"github.com/openpaddle/paddle-planner/internal/integration/geocode"
	"github.com/openpaddle/paddle-planner/internal/integration/openai"
	"github.com/openpaddle/paddle-planner/internal/integration/usgs"
	"github.com/openpaddle/paddle-planner/internal/integration/weather"
	"github.com/openpaddle/paddle-planner/internal/repository"
	"github.com/openpaddle/paddle-planner/internal/usecases"
	"github.com/robfig/cron/v3"
)

func main() {
	// Configure logging
	log.SetOutput(os.Stdout)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("Starting Paddle Planner Bot...")

	// Load .env if present; environment variables win either way
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load the river catalog
	catalogPath := os.Getenv("RIVER_CATALOG")
	if catalogPath == "" {
		catalogPath = "data/rivers.csv"
	}
	specs, err := catalog.Load(catalogPath)
	if err != nil {
		log.Fatalf("Failed to load river catalog: %v", err)
	}
	log.Printf("Loaded %d rivers from %s", len(specs), catalogPath)

	// Initialize the location cache
	repo, err := repository.NewSQLiteLocationRepository(os.Getenv("PADDLE_DB"))
	if err != nil {
		log.Fatalf("Failed to initialize repository: %v", err)
	}
	defer repo.Close()

	// Initialize integration clients
	gauges := usgs.NewClient("", "")
	forecasts := weather.NewClient("")
	geocoder := geocode.NewClient("", "", repo)

	planner := usecases.NewPlanner(specs, gauges, forecasts, geocoder)

	// Initialize OpenAI service; the bot degrades to command-only without it
	var interpreter openai.OpenAIService
	if svc, err := openai.NewOpenAIService(); err != nil {
		log.Printf("OpenAI service unavailable, free-text queries disabled: %v", err)
	} else {
		interpreter = svc
	}

	opts := usecases.Options{HomeZip: os.Getenv("HOME_ZIP")}
	if opts.HomeZip == "" {
		log.Println("HOME_ZIP not set; distance bonuses disabled")
	}

	// Get the bot token from environment variable
	botToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	if botToken == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN environment variable is not set")
	}

	// Initialize Telegram bot
	telegramBot, err := api.NewTelegramBot(botToken, planner, interpreter, opts)
	if err != nil {
		log.Fatalf("Failed to initialize Telegram bot: %v", err)
	}

	// Warm today's cache immediately, then keep it fresh hourly
	telegramBot.RefreshToday()

	c := cron.New()
	_, err = c.AddFunc("0 * * * *", telegramBot.RefreshToday)
	if err != nil {
		log.Fatalf("Failed to set up cron job: %v", err)
	}
	c.Start()
	log.Println("Hourly refresh scheduled")

	// Start the bot
	telegramBot.Start()
}
