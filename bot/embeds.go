package bot

import (
	"fmt"

	"aurabot/bot/common"
	"aurabot/models"

	"github.com/bwmarrin/discordgo"
)

const (
	colorWin     = 0x6dab18
	colorLoss    = 0x992d22
	colorPush    = 0x7289da
	colorRanking = 0x32CD32
	colorNeutral = 0x2b2d31
)

var medalPrefixes = map[int]string{1: "🥇", 2: "🥈", 3: "🥉"}

func rankPrefix(medals map[int]string, rank int) string {
	if prefix, ok := medals[rank]; ok {
		return prefix
	}
	return fmt.Sprintf("%d", rank)
}

// buildLeaderboardEmbed renders the primary aura leaderboard
func (b *Bot) buildLeaderboardEmbed(entries []models.LeaderboardEntry) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "Aura Leaderboard",
		Description: "--------------------------------------",
	}
	for i, entry := range entries {
		rank := i + 1
		name := common.Capitalize(b.displayName(entry.UserID))
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%s > %s", rankPrefix(medalPrefixes, rank), name),
			Value: fmt.Sprintf("Aura: %s", common.FormatAura(entry.Score)),
		})
	}
	return embed
}

// buildSimpLeaderboardEmbed renders the positive-aura-given board
func (b *Bot) buildSimpLeaderboardEmbed(entries []models.LeaderboardEntry) *discordgo.MessageEmbed {
	return b.buildSenderEmbed(
		"Simp Leaderboard",
		"Leaderboard for people who hand out +aura like candy",
		"Positive Aura Given",
		map[int]string{1: "👑", 2: "💎", 3: "🌸"},
		colorRanking,
		entries,
	)
}

// buildNegativeLeaderboardEmbed renders the negative-aura-given board
func (b *Bot) buildNegativeLeaderboardEmbed(entries []models.LeaderboardEntry) *discordgo.MessageEmbed {
	return b.buildSenderEmbed(
		"Negative Aura Leaderboard",
		"Leaderboard for people who need to lay off the -aura button",
		"Negative Aura Given",
		map[int]string{1: "🍆", 2: "🚴", 3: "🤸"},
		colorLoss,
		entries,
	)
}

func (b *Bot) buildSenderEmbed(title, description, label string, medals map[int]string, color int, entries []models.LeaderboardEntry) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       color,
	}
	for i, entry := range entries {
		rank := i + 1
		name := common.Capitalize(b.displayName(entry.UserID))
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%s > %s", rankPrefix(medals, rank), name),
			Value: fmt.Sprintf("%s: %s", label, common.FormatAura(entry.Score)),
		})
	}
	return embed
}

// buildDailyEmbed renders the day-over-day ranking
func (b *Bot) buildDailyEmbed(delta *models.DailyDelta) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "Daily Aura Ranking",
		Description: "--------------------------------------",
		Color:       colorRanking,
		Footer:      &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Updated: %s", delta.Date)},
	}

	for _, entry := range delta.Entries {
		var status string
		switch entry.Change {
		case models.RankNew:
			status = "NEW✚"
		case models.RankUp:
			status = "AURA▲"
		case models.RankDown:
			status = "AURA▼"
		default:
			status = "AURA━"
		}

		var diffText string
		if entry.Diff > 0 {
			diffText = fmt.Sprintf(" (+%d)", entry.Diff)
		} else if entry.Diff < 0 {
			diffText = fmt.Sprintf(" (%d)", entry.Diff)
		}

		name := common.Capitalize(b.displayName(entry.UserID))
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%s > %s %s", rankPrefix(medalPrefixes, entry.Rank), name, status),
			Value: fmt.Sprintf("Aura: %s%s", common.FormatAura(entry.Score), diffText),
		})
	}
	return embed
}
