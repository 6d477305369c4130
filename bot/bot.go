package bot

import (
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"aurabot/service"

	"github.com/bwmarrin/discordgo"
)

// Config holds bot configuration
type Config struct {
	Token         string
	Prefix        string
	AuraEmoji     string
	AuraDownEmoji string
	GameTimeout   time.Duration

	// Daily task schedule (local time)
	SnapshotHour   int
	SnapshotMinute int
	PostHour       int
	PostMinute     int
}

type Bot struct {
	config    Config
	session   *discordgo.Session
	ledger    service.LedgerService
	counts    service.SenderCountService
	history   service.HistoryService
	locks     service.LockRegistry
	reactions service.ReactionService
	settings  service.SettingsService

	// emoji names each reactor has been seen adding, so removals only
	// reverse adds we actually counted
	seenMu        sync.Mutex
	seenReactions map[string][]string

	// pending game choice channels keyed by player ID; the busy lock
	// guarantees at most one per player
	sessionsMu   sync.Mutex
	gameSessions map[string]chan string
}

func New(config Config, ledger service.LedgerService, counts service.SenderCountService, history service.HistoryService, locks service.LockRegistry, reactions service.ReactionService, settings service.SettingsService) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMessageReactions |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsMessageContent

	bot := &Bot{
		config:        config,
		session:       dg,
		ledger:        ledger,
		counts:        counts,
		history:       history,
		locks:         locks,
		reactions:     reactions,
		settings:      settings,
		seenReactions: make(map[string][]string),
		gameSessions:  make(map[string]chan string),
	}

	// Register prefix command handler
	dg.AddHandler(bot.handleMessage)

	// Register reaction handlers
	dg.AddHandler(bot.handleReactionAdd)
	dg.AddHandler(bot.handleReactionRemove)

	// Register game button handler
	dg.AddHandler(bot.handleGameInteraction)

	// Open websocket connection
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	log.Info("Discord session opened")
	return bot, nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

// displayName resolves a user ID to a username. A failed lookup must not
// abort the surrounding operation, so it falls back to the raw ID.
func (b *Bot) displayName(userID string) string {
	user, err := b.session.User(userID)
	if err != nil {
		log.Errorf("Failed to resolve user %s: %v", userID, err)
		return userID
	}
	return user.Username
}

// sendMessage sends a plain channel message, logging send failures
func (b *Bot) sendMessage(channelID, content string) {
	if _, err := b.session.ChannelMessageSend(channelID, content); err != nil {
		log.Errorf("Failed to send message to channel %s: %v", channelID, err)
	}
}
