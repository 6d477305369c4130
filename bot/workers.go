package bot

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"

	"aurabot/service"
)

// nextRunIn returns the duration until the next occurrence of the given
// local wall-clock time. A time already passed today schedules tomorrow.
func nextRunIn(hour, minute int) time.Duration {
	now := time.Now()
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}

// StartSnapshotWorker begins the daily balance snapshot loop. Returns a
// stop function.
func (b *Bot) StartSnapshotWorker(ctx context.Context) func() {
	stopChan := make(chan struct{})
	hour, minute := b.config.SnapshotHour, b.config.SnapshotMinute

	go func() {
		log.Infof("Snapshot worker started, next run at %02d:%02d", hour, minute)

		for {
			waitDuration := nextRunIn(hour, minute)
			log.Infof("Snapshot worker waiting %v until next run", waitDuration)

			select {
			case <-ctx.Done():
				log.Info("Snapshot worker shutting down (context cancelled)...")
				return
			case <-stopChan:
				log.Info("Snapshot worker shutting down (stop requested)...")
				return
			case <-time.After(waitDuration):
				log.Info("Taking daily snapshot...")
				if err := b.history.EnsureToday(); err != nil {
					log.Errorf("Failed to ensure today's history entry: %v", err)
					continue
				}
				if err := b.history.TakeSnapshot(b.ledger.Balances()); err != nil {
					log.Errorf("Failed to take daily snapshot: %v", err)
				}
			}
		}
	}()

	return func() {
		close(stopChan)
	}
}

// StartLeaderboardWorker begins the daily ranking post loop. Returns a
// stop function.
func (b *Bot) StartLeaderboardWorker(ctx context.Context) func() {
	stopChan := make(chan struct{})
	hour, minute := b.config.PostHour, b.config.PostMinute

	go func() {
		log.Infof("Leaderboard worker started, next run at %02d:%02d", hour, minute)

		for {
			waitDuration := nextRunIn(hour, minute)
			log.Infof("Leaderboard worker waiting %v until next run", waitDuration)

			select {
			case <-ctx.Done():
				log.Info("Leaderboard worker shutting down (context cancelled)...")
				return
			case <-stopChan:
				log.Info("Leaderboard worker shutting down (stop requested)...")
				return
			case <-time.After(waitDuration):
				b.postDailyLeaderboard()
			}
		}
	}()

	return func() {
		close(stopChan)
	}
}

// postDailyLeaderboard posts the day-over-day ranking to the configured
// channel, skipping with a warning when the channel is unset
func (b *Bot) postDailyLeaderboard() {
	channelID, ok := b.settings.Channel()
	if !ok {
		log.Warn("Leaderboard channel not set, skipping daily post")
		return
	}

	delta, err := b.history.ComputeDelta()
	if errors.Is(err, service.ErrInsufficientData) {
		b.sendMessage(channelID, "Not enough data for daily leaderboard!")
		return
	}
	if err != nil {
		log.Errorf("Failed to compute daily ranking: %v", err)
		return
	}

	b.sendMessage(channelID, "Today's aura standings:")
	if _, err := b.session.ChannelMessageSendEmbed(channelID, b.buildDailyEmbed(delta)); err != nil {
		log.Errorf("Failed to post daily leaderboard: %v", err)
		return
	}
	log.Info("Daily leaderboard posted")
}
