package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"aurabot/bot"
	"aurabot/config"
	"aurabot/service"
	"aurabot/storage"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Println("Starting aura bot...")

	// Load configuration
	cfg := config.Get()

	// Initialize storage
	log.Println("Opening data store...")
	store, err := storage.NewStore(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open data store: %w", err)
	}

	// Initialize services
	log.Println("Initializing services...")
	ledger, err := service.NewLedgerService(store)
	if err != nil {
		return fmt.Errorf("failed to initialize ledger: %w", err)
	}
	counts, err := service.NewSenderCountService(store)
	if err != nil {
		return fmt.Errorf("failed to initialize sender counts: %w", err)
	}
	history, err := service.NewHistoryService(store)
	if err != nil {
		return fmt.Errorf("failed to initialize history: %w", err)
	}
	settings, err := service.NewSettingsService(store, cfg.OwnerSeedIDs)
	if err != nil {
		return fmt.Errorf("failed to initialize settings: %w", err)
	}
	locks := service.NewLockRegistry()
	reactions := service.NewReactionService(ledger, counts)
	log.Println("Services initialized successfully")

	// Initialize Discord bot
	log.Println("Initializing Discord bot...")
	botConfig := bot.Config{
		Token:          cfg.DiscordToken,
		Prefix:         cfg.CommandPrefix,
		AuraEmoji:      cfg.AuraEmoji,
		AuraDownEmoji:  cfg.AuraDownEmoji,
		GameTimeout:    time.Duration(cfg.GameTimeoutSeconds) * time.Second,
		SnapshotHour:   cfg.SnapshotHour,
		SnapshotMinute: cfg.SnapshotMinute,
		PostHour:       cfg.PostHour,
		PostMinute:     cfg.PostMinute,
	}
	discordBot, err := bot.New(botConfig, ledger, counts, history, locks, reactions, settings)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	log.Println("Discord bot initialized successfully")

	// Start the daily background loops
	stopSnapshot := discordBot.StartSnapshotWorker(ctx)
	stopLeaderboard := discordBot.StartLeaderboardWorker(ctx)

	// Wait for context cancellation
	log.Printf("Bot is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	// Cleanup resources
	log.Println("Shutting down bot...")
	stopSnapshot()
	stopLeaderboard()

	if err := discordBot.Close(); err != nil {
		log.Printf("Error closing Discord bot: %v", err)
	}

	log.Println("Shutdown completed")
	return nil
}
