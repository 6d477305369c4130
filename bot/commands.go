package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"aurabot/bot/common"
	"aurabot/models"
	"aurabot/service"

	"github.com/bwmarrin/discordgo"
)

// handleMessage parses prefix commands out of channel messages
func (b *Bot) handleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	if !strings.HasPrefix(m.Content, b.config.Prefix) {
		return
	}

	fields := strings.Fields(strings.TrimPrefix(m.Content, b.config.Prefix))
	if len(fields) == 0 {
		return
	}
	command := strings.ToLower(fields[0])
	args := fields[1:]

	switch command {
	case "aura":
		b.handleAura(m, args)
	case "lb", "leaderboard":
		b.handleLeaderboard(m)
	case "slb":
		b.handleSenderLeaderboard(m, true)
	case "dslb":
		b.handleSenderLeaderboard(m, false)
	case "give":
		b.handleGive(m, args)
	case "set_aura":
		b.handleSetAura(m, args)
	case "reset_aura":
		b.handleResetAura(m, args)
	case "modify_aura":
		b.handleModifyAura(m, args)
	case "set_channel":
		b.handleSetChannel(m)
	case "owner_add":
		b.handleOwnerAdd(m, args)
	case "daily_leaderboard":
		b.handleDailyCountdown(m)
	case "cf", "coinflip":
		b.handleCoinflip(m, args)
	case "bj", "blackjack":
		b.handleBlackjack(m, args)
	case "help":
		b.handleHelp(m)
	}
}

// parseUserArg resolves a command argument to a user ID, accepting a
// mention or a raw ID
func parseUserArg(m *discordgo.MessageCreate, arg string) (string, bool) {
	if len(m.Mentions) > 0 {
		return m.Mentions[0].ID, true
	}
	id := strings.TrimSuffix(strings.TrimPrefix(strings.TrimPrefix(arg, "<@"), "!"), ">")
	if id == "" {
		return "", false
	}
	if _, err := strconv.ParseUint(id, 10, 64); err != nil {
		return "", false
	}
	return id, true
}

func (b *Bot) handleAura(m *discordgo.MessageCreate, args []string) {
	userID := m.Author.ID
	if len(args) > 0 {
		if id, ok := parseUserArg(m, args[0]); ok {
			userID = id
		}
	}

	balance := b.ledger.GetBalance(userID)
	b.sendMessage(m.ChannelID, fmt.Sprintf("<@%s>'s aura: %s", userID, common.FormatAura(balance)))
	log.Infof("Aura requested for user %s", userID)
}

func (b *Bot) handleLeaderboard(m *discordgo.MessageCreate) {
	entries := b.ledger.Leaderboard()
	if len(entries) == 0 {
		b.sendMessage(m.ChannelID, "No aura yet!")
		return
	}

	embed := b.buildLeaderboardEmbed(entries)
	if _, err := b.session.ChannelMessageSendEmbed(m.ChannelID, embed); err != nil {
		log.Errorf("Failed to send leaderboard: %v", err)
		return
	}
	log.Info("Leaderboard shown")
}

func (b *Bot) handleSenderLeaderboard(m *discordgo.MessageCreate, positive bool) {
	var embed *discordgo.MessageEmbed
	if positive {
		entries := b.counts.Top(models.SenderFieldPos)
		if len(entries) == 0 {
			b.sendMessage(m.ChannelID, "Nobody has given positive aura yet...")
			return
		}
		embed = b.buildSimpLeaderboardEmbed(entries)
	} else {
		entries := b.counts.Top(models.SenderFieldNeg)
		if len(entries) == 0 {
			b.sendMessage(m.ChannelID, "Nobody has given negative aura yet...")
			return
		}
		embed = b.buildNegativeLeaderboardEmbed(entries)
	}

	if _, err := b.session.ChannelMessageSendEmbed(m.ChannelID, embed); err != nil {
		log.Errorf("Failed to send sender leaderboard: %v", err)
	}
}

func (b *Bot) handleGive(m *discordgo.MessageCreate, args []string) {
	if len(args) < 2 {
		b.sendMessage(m.ChannelID, fmt.Sprintf("Usage: %sgive @user amount", b.config.Prefix))
		return
	}

	targetID, ok := parseUserArg(m, args[0])
	if !ok {
		b.sendMessage(m.ChannelID, "Please mention a user to give aura to.")
		return
	}
	amount, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		b.sendMessage(m.ChannelID, "Please enter a valid amount.")
		return
	}

	result, err := b.ledger.Transfer(m.Author.ID, targetID, amount)
	switch {
	case errors.Is(err, service.ErrInvalidAmount):
		b.sendMessage(m.ChannelID, "Please enter a valid amount.")
		return
	case errors.Is(err, service.ErrSelfTransfer):
		b.sendMessage(m.ChannelID, "You can't give aura to yourself!")
		return
	case errors.Is(err, service.ErrInsufficientFunds):
		b.sendMessage(m.ChannelID, fmt.Sprintf("You only have %s aura.", common.FormatAura(b.ledger.GetBalance(m.Author.ID))))
		return
	case err != nil:
		log.Errorf("Transfer failed: %v", err)
		b.sendMessage(m.ChannelID, "Something went wrong. Please try again later.")
		return
	}

	b.sendMessage(m.ChannelID, fmt.Sprintf("✅ Gave **%s** aura to <@%s>. You now have %s aura.",
		common.FormatAura(result.Amount), targetID, common.FormatAura(result.FromBalance)))
}

func (b *Bot) handleSetAura(m *discordgo.MessageCreate, args []string) {
	if !b.settings.IsOwner(m.Author.ID) {
		b.sendMessage(m.ChannelID, "You do not have permission to set the aura.")
		return
	}
	if len(args) < 2 {
		b.sendMessage(m.ChannelID, fmt.Sprintf("Usage: %sset_aura @user amount", b.config.Prefix))
		return
	}

	targetID, ok := parseUserArg(m, args[0])
	if !ok {
		b.sendMessage(m.ChannelID, "Please mention a user.")
		return
	}
	amount, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		b.sendMessage(m.ChannelID, "Please enter a valid amount.")
		return
	}

	if err := b.ledger.SetBalance(targetID, amount); err != nil {
		log.Errorf("Failed to set aura: %v", err)
	}
	b.sendMessage(m.ChannelID, fmt.Sprintf("<@%s>'s aura set to %s!", targetID, common.FormatAura(amount)))
	log.Infof("%s set aura for %s to %d", m.Author.ID, targetID, amount)
}

func (b *Bot) handleResetAura(m *discordgo.MessageCreate, args []string) {
	if !b.settings.IsOwner(m.Author.ID) {
		b.sendMessage(m.ChannelID, "You do not have permission to reset the aura.")
		return
	}
	if len(args) < 1 {
		b.sendMessage(m.ChannelID, fmt.Sprintf("Usage: %sreset_aura @user", b.config.Prefix))
		return
	}

	targetID, ok := parseUserArg(m, args[0])
	if !ok {
		b.sendMessage(m.ChannelID, "Please mention a user.")
		return
	}

	if err := b.ledger.SetBalance(targetID, 0); err != nil {
		log.Errorf("Failed to reset aura: %v", err)
	}
	b.sendMessage(m.ChannelID, fmt.Sprintf("<@%s>'s aura has been reset to 0!", targetID))
	log.Infof("%s reset aura for %s", m.Author.ID, targetID)
}

func (b *Bot) handleModifyAura(m *discordgo.MessageCreate, args []string) {
	if !b.settings.IsOwner(m.Author.ID) {
		b.sendMessage(m.ChannelID, "You do not have permission to modify aura.")
		return
	}
	if len(args) < 2 {
		b.sendMessage(m.ChannelID, fmt.Sprintf("Usage: %smodify_aura @user amount", b.config.Prefix))
		return
	}

	targetID, ok := parseUserArg(m, args[0])
	if !ok {
		b.sendMessage(m.ChannelID, "Please mention a user.")
		return
	}
	amount, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		b.sendMessage(m.ChannelID, "Please enter a valid amount.")
		return
	}

	newBalance, err := b.ledger.AdjustBalance(targetID, amount)
	if err != nil {
		log.Errorf("Failed to modify aura: %v", err)
	}
	if amount > 0 {
		b.sendMessage(m.ChannelID, fmt.Sprintf("<@%s> received +%s aura. Now: %s aura.",
			targetID, common.FormatAura(amount), common.FormatAura(newBalance)))
	} else {
		b.sendMessage(m.ChannelID, fmt.Sprintf("<@%s> lost %s aura. Now: %s aura.",
			targetID, common.FormatAura(-amount), common.FormatAura(newBalance)))
	}
	log.Infof("%s modified aura for %s by %d", m.Author.ID, targetID, amount)
}

func (b *Bot) handleSetChannel(m *discordgo.MessageCreate) {
	if !b.settings.IsOwner(m.Author.ID) {
		b.sendMessage(m.ChannelID, "You do not have permission to set the channel.")
		return
	}

	if err := b.settings.SetChannel(m.ChannelID); err != nil {
		log.Errorf("Failed to set channel: %v", err)
		b.sendMessage(m.ChannelID, "Something went wrong. Please try again later.")
		return
	}
	b.sendMessage(m.ChannelID, fmt.Sprintf("Daily leaderboard channel set to <#%s>", m.ChannelID))
	log.Infof("Daily leaderboard channel set to %s by %s", m.ChannelID, m.Author.ID)
}

func (b *Bot) handleOwnerAdd(m *discordgo.MessageCreate, args []string) {
	if !b.settings.IsOwner(m.Author.ID) {
		b.sendMessage(m.ChannelID, "You do not have permission to add owners.")
		return
	}
	if len(args) < 1 {
		b.sendMessage(m.ChannelID, fmt.Sprintf("Usage: %sowner_add @user", b.config.Prefix))
		return
	}

	targetID, ok := parseUserArg(m, args[0])
	if !ok {
		b.sendMessage(m.ChannelID, "Please mention a user.")
		return
	}

	if err := b.settings.AddOwner(targetID); err != nil {
		log.Errorf("Failed to add owner: %v", err)
		b.sendMessage(m.ChannelID, "Something went wrong. Please try again later.")
		return
	}
	b.sendMessage(m.ChannelID, fmt.Sprintf("<@%s> can now manage aura.", targetID))
}

func (b *Bot) handleDailyCountdown(m *discordgo.MessageCreate) {
	wait := nextRunIn(b.config.PostHour, b.config.PostMinute)
	hours := int(wait.Hours())
	minutes := int(wait.Minutes()) % 60
	seconds := int(wait.Seconds()) % 60
	b.sendMessage(m.ChannelID, fmt.Sprintf("Time Until Daily Leaderboard: %dh %dm %ds", hours, minutes, seconds))
}

func (b *Bot) handleHelp(m *discordgo.MessageCreate) {
	p := b.config.Prefix
	b.sendMessage(m.ChannelID, fmt.Sprintf(`**Aura Bot Commands**

User:
%[1]saura [@user] - check aura
%[1]slb - show leaderboard
%[1]sslb - who gives the most positive aura
%[1]sdslb - who gives the most negative aura
%[1]sgive @user amount - give aura away
%[1]scf amount - coin flip (amount, 'half', or 'all')
%[1]sbj amount - blackjack (amount, 'half', or 'all')
%[1]sdaily_leaderboard - time until the daily post

Admin:
%[1]sset_aura @user amount - set aura
%[1]sreset_aura @user - reset aura
%[1]smodify_aura @user amount - modify aura
%[1]sset_channel - post the daily leaderboard here
%[1]sowner_add @user - add an owner`, p))
}
