package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"birthday_reminder_bot/internal/app"
	"birthday_reminder_bot/internal/infra/config"
	idb "birthday_reminder_bot/internal/infra/database"
	"birthday_reminder_bot/internal/infra/logger"
	"birthday_reminder_bot/internal/infra/scheduler"
	"birthday_reminder_bot/internal/infra/telegram"

	"gopkg.in/telebot.v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Could not load application configuration: %v", err)
	}

	logger.Init(cfg)
	mainLogger := logger.Get().WithField("component", "main")
	mainLogger.WithField("environment", cfg.Environment).Info("Birthday Reminder Bot starting...")

	// Initialize Database Connection
	db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		mainLogger.Fatalf("FATAL: Could not connect to database: %v", err)
	}
	defer db.Close()
	mainLogger.Info("Database connection established successfully")

	// Initialize Repositories
	groupRepo := idb.NewPostgresGroupBirthdayRepository(db)
	personalRepo := idb.NewPostgresPersonalBirthdayRepository(db)
	mainLogger.Info("Birthday repositories initialized")

	// Initialize Telegram Bot
	pref := telebot.Settings{
		Token:  cfg.TelegramToken,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c telebot.Context) { // Global error handler
			entry := logger.Get().WithField("component", "telebot").WithError(err)
			if c != nil && c.Sender() != nil && c.Chat() != nil {
				entry = entry.WithField("sender_id", c.Sender().ID).WithField("chat_id", c.Chat().ID)
			}
			entry.Error("Unhandled telebot error")
		},
	}
	bot, err := telebot.NewBot(pref)
	if err != nil {
		mainLogger.Fatalf("FATAL: Could not create Telegram bot: %v", err)
	}
	tgClient := telegram.NewTelebotAdapter(bot)

	// Initialize Services
	audience := app.NewAudienceRegistry()
	birthdayService := app.NewBirthdayService(groupRepo, personalRepo)
	reminderService := app.NewReminderService(groupRepo, personalRepo, tgClient,
		logger.Get().WithField("component", "reminder_service"))
	broadcastService := app.NewBroadcastService(audience, tgClient,
		logger.Get().WithField("component", "broadcast_service"), cfg.OwnerTelegramID)
	mainLogger.Info("Application services initialized")

	// Initialize ReminderScheduler
	reminderScheduler := scheduler.NewReminderScheduler(
		reminderService,
		logger.Get().WithField("component", "scheduler"),
		cfg.CronSpecPersonalCheck,
		cfg.CronSpecGroupCheck,
	)
	reminderScheduler.Start()

	// Register Handlers
	handlerCtx := context.Background()
	handlerLogger := logger.Get().WithField("component", "handlers")
	telegram.RegisterBotCommands(bot, cfg, audience, handlerLogger)
	telegram.RegisterBirthdayHandlers(handlerCtx, bot, birthdayService, tgClient, handlerLogger)
	telegram.RegisterOwnerHandlers(handlerCtx, bot, broadcastService, audience, handlerLogger)
	mainLogger.Info("Command handlers registered")

	mainLogger.Info("Application setup complete. Bot and scheduler are starting...")

	// Start bot in a goroutine so it doesn't block graceful shutdown handling
	go bot.Start()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit // Block until a signal is received

	mainLogger.Info("Shutting down application...")
	reminderScheduler.Stop()
	bot.Stop()
	mainLogger.Info("Application shut down gracefully")
}
