package bot

import (
	log "github.com/sirupsen/logrus"

	"aurabot/models"

	"github.com/bwmarrin/discordgo"
)

// handleReactionAdd grants or deducts aura when a recognized emoji is
// added to someone else's message
func (b *Bot) handleReactionAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	kind, ok := b.reactionKind(r.Emoji.Name)
	if !ok {
		return
	}

	target, ok := b.reactionTarget(s, r.MessageReaction)
	if !ok {
		return
	}

	b.markSeen(r.UserID, r.Emoji.Name)

	if err := b.reactions.Record(r.UserID, target.ID, kind); err != nil {
		log.Errorf("Failed to record reaction: %v", err)
		return
	}
	log.Infof("%s gave %s aura to %s", r.UserID, kind, target.ID)
}

// handleReactionRemove reverses a previously observed reaction
func (b *Bot) handleReactionRemove(s *discordgo.Session, r *discordgo.MessageReactionRemove) {
	kind, ok := b.reactionKind(r.Emoji.Name)
	if !ok {
		return
	}

	target, ok := b.reactionTarget(s, r.MessageReaction)
	if !ok {
		return
	}

	// Only reverse adds we actually counted
	if !b.clearSeen(r.UserID, r.Emoji.Name) {
		return
	}

	if err := b.reactions.Undo(r.UserID, target.ID, kind); err != nil {
		log.Errorf("Failed to undo reaction: %v", err)
		return
	}
	log.Infof("%s removed %s aura from %s", r.UserID, kind, target.ID)
}

// reactionKind maps an emoji name to a reaction direction
func (b *Bot) reactionKind(emojiName string) (models.ReactionKind, bool) {
	switch emojiName {
	case b.config.AuraEmoji:
		return models.ReactionUp, true
	case b.config.AuraDownEmoji:
		return models.ReactionDown, true
	default:
		return "", false
	}
}

// reactionTarget resolves the author of the reacted-to message, ignoring
// bot reactors, bot authors, and self-reacts
func (b *Bot) reactionTarget(s *discordgo.Session, r *discordgo.MessageReaction) (*discordgo.User, bool) {
	reactor, err := s.User(r.UserID)
	if err != nil {
		log.Errorf("Failed to resolve reactor %s: %v", r.UserID, err)
		return nil, false
	}
	if reactor.Bot {
		return nil, false
	}

	message, err := s.ChannelMessage(r.ChannelID, r.MessageID)
	if err != nil {
		log.Errorf("Failed to fetch message %s: %v", r.MessageID, err)
		return nil, false
	}
	target := message.Author
	if target == nil || target.Bot {
		return nil, false
	}
	if target.ID == r.UserID {
		return nil, false
	}
	return target, true
}

// markSeen records that a reactor added an emoji
func (b *Bot) markSeen(userID, emojiName string) {
	b.seenMu.Lock()
	defer b.seenMu.Unlock()

	for _, seen := range b.seenReactions[userID] {
		if seen == emojiName {
			return
		}
	}
	b.seenReactions[userID] = append(b.seenReactions[userID], emojiName)
}

// clearSeen removes a seen emoji for a reactor, reporting whether it was
// present
func (b *Bot) clearSeen(userID, emojiName string) bool {
	b.seenMu.Lock()
	defer b.seenMu.Unlock()

	seen := b.seenReactions[userID]
	for i, name := range seen {
		if name == emojiName {
			b.seenReactions[userID] = append(seen[:i], seen[i+1:]...)
			return true
		}
	}
	return false
}
