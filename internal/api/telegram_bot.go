// Package api provides handlers for external APIs and interfaces
package api

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/openpaddle/paddle-planner/internal/entities"
	"github.com/openpaddle/paddle-planner/internal/integration/openai"
	"github.com/openpaddle/paddle-planner/internal/report"
	"github.com/openpaddle/paddle-planner/internal/usecases"
)

// todayCacheTTL bounds how stale a cached today evaluation may get between
// the hourly refreshes.
const todayCacheTTL = time.Hour

// todayCache holds the most recent today evaluation so repeated /today
// requests don't re-hit the gauge and weather services.
type todayCache struct {
	mu        sync.Mutex
	results   []entities.RiverEvaluation
	fetchedAt time.Time
}

// TelegramBot handles interactions with the Telegram API
type TelegramBot struct {
	bot         *tgbotapi.BotAPI
	planner     *usecases.Planner
	interpreter openai.OpenAIService
	opts        usecases.Options
	cache       todayCache
}

// NewTelegramBot creates a new Telegram bot handler. The interpreter may be
// nil, in which case free-text messages get a static fallback.
func NewTelegramBot(botToken string, planner *usecases.Planner, interpreter openai.OpenAIService, opts usecases.Options) (*TelegramBot, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %v", err)
	}

	return &TelegramBot{
		bot:         bot,
		planner:     planner,
		interpreter: interpreter,
		opts:        opts,
	}, nil
}

// Start begins listening for and handling Telegram messages
func (t *TelegramBot) Start() {
	log.Printf("Authorized on Telegram account %s", t.bot.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := t.bot.GetUpdatesChan(u)
	log.Println("Bot is now listening for messages...")

	for update := range updates {
		if update.Message == nil {
			continue
		}

		log.Printf("Received message from %s (ID: %d): %s",
			update.Message.From.UserName,
			update.Message.From.ID,
			update.Message.Text)

		t.handleMessage(update)
	}
}

// RefreshToday re-evaluates today's conditions and replaces the cache. The
// hourly cron job calls this so /today answers stay warm.
func (t *TelegramBot) RefreshToday() {
	log.Println("Refreshing today's river evaluations...")
	results := t.planner.CheckToday(time.Now(), t.opts)

	t.cache.mu.Lock()
	t.cache.results = results
	t.cache.fetchedAt = time.Now()
	t.cache.mu.Unlock()
}

// todayResults returns cached results when fresh, re-evaluating otherwise.
func (t *TelegramBot) todayResults() []entities.RiverEvaluation {
	t.cache.mu.Lock()
	fresh := t.cache.results != nil && time.Since(t.cache.fetchedAt) < todayCacheTTL
	results := t.cache.results
	t.cache.mu.Unlock()

	if fresh {
		return results
	}

	t.RefreshToday()

	t.cache.mu.Lock()
	results = t.cache.results
	t.cache.mu.Unlock()
	return results
}

// handleMessage processes a Telegram message update
func (t *TelegramBot) handleMessage(update tgbotapi.Update) {
	msg := tgbotapi.NewMessage(update.Message.Chat.ID, "")

	switch {
	case update.Message.IsCommand():
		t.handleCommand(update.Message, &msg)
	default:
		t.handleNonCommand(update.Message, &msg)
	}

	log.Printf("Sending response to user %s", update.Message.From.UserName)
	if _, err := t.bot.Send(msg); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}

// handleCommand processes commands like /start, /help, etc.
func (t *TelegramBot) handleCommand(message *tgbotapi.Message, msg *tgbotapi.MessageConfig) {
	switch message.Command() {
	case "start":
		log.Printf("Handling /start command for user %s", message.From.UserName)
		msg.Text = "Welcome to the Paddle Planner! Use /today to check current conditions, /week for the 7-day outlook, or /help for more information."

	case "help":
		log.Printf("Handling /help command for user %s", message.From.UserName)
		msg.Text = "Available commands:\n" +
			"/today - Check paddling conditions right now\n" +
			"/date YYYY-MM-DD - Check conditions for a specific day\n" +
			"/week - Best paddling days over the next 7 days\n" +
			"/whitewater - 7-day outlook for Class III+ runs\n" +
			"/casual [close] - 7-day outlook for easy water\n" +
			"/rivers - Show the river catalog\n" +
			"/help - Show this help message"

	case "today":
		log.Printf("Handling /today command for user %s", message.From.UserName)
		t.handleTodayCommand(msg)

	case "date":
		args := strings.TrimSpace(message.CommandArguments())
		log.Printf("Handling /date command with args '%s' for user %s", args, message.From.UserName)
		t.handleDateCommand(args, msg)

	case "week":
		log.Printf("Handling /week command for user %s", message.From.UserName)
		days := t.planner.WeeklyForecast(time.Now(), t.opts)
		msg.Text = report.WeeklySummary(days)

	case "whitewater":
		log.Printf("Handling /whitewater command for user %s", message.From.UserName)
		days := t.planner.WhitewaterForecast(time.Now(), t.opts)
		msg.Text = report.WeeklySummary(days)

	case "casual":
		proximity := strings.TrimSpace(message.CommandArguments())
		log.Printf("Handling /casual command with args '%s' for user %s", proximity, message.From.UserName)
		days := t.planner.CasualForecast(time.Now(), t.opts, proximity)
		msg.Text = report.WeeklySummary(days)

	case "rivers":
		log.Printf("Handling /rivers command for user %s", message.From.UserName)
		msg.Text = report.RiverList(t.planner.Catalog())

	default:
		log.Printf("Received unknown command /%s from user %s", message.Command(), message.From.UserName)
		msg.Text = "Unknown command. Use /help to see available commands."
	}
}

// handleTodayCommand processes the /today command
func (t *TelegramBot) handleTodayCommand(msg *tgbotapi.MessageConfig) {
	now := time.Now()
	results := t.todayResults()
	msg.Text = report.DailySummary(results, now, true, now)
}

// handleDateCommand processes the /date [YYYY-MM-DD] command
func (t *TelegramBot) handleDateCommand(args string, msg *tgbotapi.MessageConfig) {
	if args == "" {
		msg.Text = "Please specify a date. Example: /date 2026-06-14"
		return
	}

	now := time.Now()
	results, err := t.planner.CheckDate(args, now, t.opts)
	if err != nil {
		msg.Text = fmt.Sprintf("Couldn't read that date: %v", err)
		return
	}

	target, _ := usecases.ParseTargetDate(args, now)
	msg.Text = report.DailySummary(results, target, false, now)
}

// handleNonCommand processes regular messages by asking the interpreter to
// map them onto a command.
func (t *TelegramBot) handleNonCommand(message *tgbotapi.Message, msg *tgbotapi.MessageConfig) {
	log.Printf("Received non-command message from user %s: %s", message.From.UserName, message.Text)

	if t.interpreter == nil {
		msg.Text = "I don't understand. Use /help to see available commands."
		return
	}

	var riverNames []string
	for _, spec := range t.planner.Catalog() {
		riverNames = append(riverNames, spec.Name)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := t.interpreter.InterpretUserQuery(ctx, message.Text, riverNames)
	if err != nil {
		log.Printf("Error interpreting user query: %v", err)
		msg.Text = "I don't understand. Use /help to see available commands."
		return
	}

	now := time.Now()
	switch resp.CommandName {
	case openai.CommandCheckToday:
		t.handleTodayCommand(msg)

	case openai.CommandCheckDate:
		if resp.Date == "" {
			msg.Text = "I couldn't work out which day you meant. Try /date YYYY-MM-DD."
			return
		}
		t.handleDateCommand(resp.Date, msg)

	case openai.CommandWeeklyForecast:
		days := t.planner.WeeklyForecast(now, t.opts)
		msg.Text = report.WeeklySummary(days)

	case openai.CommandWhitewaterForecast:
		days := t.planner.WhitewaterForecast(now, t.opts)
		msg.Text = report.WeeklySummary(days)

	case openai.CommandCasualForecast:
		days := t.planner.CasualForecast(now, t.opts, "")
		msg.Text = report.WeeklySummary(days)

	default:
		if resp.UserMessage != "" {
			msg.Text = resp.UserMessage
		} else {
			msg.Text = "I don't understand. Use /help to see available commands."
		}
		return
	}

	if resp.UserMessage != "" {
		msg.Text = resp.UserMessage + "\n\n" + msg.Text
	}
}
