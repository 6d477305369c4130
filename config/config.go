package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken  string
	CommandPrefix string

	// Storage configuration
	DataDir string

	// Reaction configuration
	AuraEmoji     string
	AuraDownEmoji string

	// Daily task schedule (local time)
	SnapshotHour   int
	SnapshotMinute int
	PostHour       int
	PostMinute     int

	// Owner IDs seeded into the persisted owner set on first run
	OwnerSeedIDs []string

	// Game configuration
	GameTimeoutSeconds int

	// Environment
	Environment string // "development" or "production"
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		DiscordToken:  os.Getenv("DISCORD_TOKEN"),
		CommandPrefix: "?",

		DataDir: "data",

		AuraEmoji:     "aura",
		AuraDownEmoji: "auradown",

		// Snapshot runs just before the daily post so the ranking compares
		// yesterday's capture against a fresh one
		SnapshotHour:   9,
		SnapshotMinute: 29,
		PostHour:       9,
		PostMinute:     30,

		GameTimeoutSeconds: 60,

		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Override defaults if environment variables are set
	if prefix := os.Getenv("COMMAND_PREFIX"); prefix != "" {
		config.CommandPrefix = prefix
	}
	if dir := os.Getenv("DATA_DIR"); dir != "" {
		config.DataDir = dir
	}
	if emoji := os.Getenv("AURA_EMOJI"); emoji != "" {
		config.AuraEmoji = emoji
	}
	if emoji := os.Getenv("AURA_DOWN_EMOJI"); emoji != "" {
		config.AuraDownEmoji = emoji
	}
	if hour := os.Getenv("SNAPSHOT_HOUR"); hour != "" {
		if parsed, err := strconv.Atoi(hour); err == nil {
			config.SnapshotHour = parsed
		}
	}
	if minute := os.Getenv("SNAPSHOT_MINUTE"); minute != "" {
		if parsed, err := strconv.Atoi(minute); err == nil {
			config.SnapshotMinute = parsed
		}
	}
	if hour := os.Getenv("POST_HOUR"); hour != "" {
		if parsed, err := strconv.Atoi(hour); err == nil {
			config.PostHour = parsed
		}
	}
	if minute := os.Getenv("POST_MINUTE"); minute != "" {
		if parsed, err := strconv.Atoi(minute); err == nil {
			config.PostMinute = parsed
		}
	}
	if timeout := os.Getenv("GAME_TIMEOUT_SECONDS"); timeout != "" {
		if parsed, err := strconv.Atoi(timeout); err == nil && parsed > 0 {
			config.GameTimeoutSeconds = parsed
		}
	}

	// Parse owner seed IDs
	if ownerIDs := os.Getenv("OWNER_SEED_IDS"); ownerIDs != "" {
		idStrings := strings.Split(ownerIDs, ",")
		for _, idStr := range idStrings {
			idStr = strings.TrimSpace(idStr)
			if idStr != "" {
				config.OwnerSeedIDs = append(config.OwnerSeedIDs, idStr)
			}
		}
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DiscordToken == "" {
			return nil, fmt.Errorf("DISCORD_TOKEN is required")
		}
	}

	return config, nil
}
