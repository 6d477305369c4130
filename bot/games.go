package bot

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"aurabot/bot/common"
	"aurabot/service"

	"github.com/bwmarrin/discordgo"
)

// registerGameSession creates the choice channel button presses are
// routed to. The busy lock guarantees one session per player.
func (b *Bot) registerGameSession(userID string) chan string {
	b.sessionsMu.Lock()
	defer b.sessionsMu.Unlock()

	ch := make(chan string, 1)
	b.gameSessions[userID] = ch
	return ch
}

func (b *Bot) unregisterGameSession(userID string) {
	b.sessionsMu.Lock()
	defer b.sessionsMu.Unlock()
	delete(b.gameSessions, userID)
}

// deliverGameChoice hands a button press to the waiting game, dropping
// it if no session is waiting (stale button or game already settled)
func (b *Bot) deliverGameChoice(userID, choice string) {
	b.sessionsMu.Lock()
	defer b.sessionsMu.Unlock()

	ch, ok := b.gameSessions[userID]
	if !ok {
		return
	}
	select {
	case ch <- choice:
	default:
	}
}

// handleGameInteraction routes game button presses. Custom IDs are
// "<game>:<choice>:<playerID>".
func (b *Bot) handleGameInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}

	parts := strings.Split(i.MessageComponentData().CustomID, ":")
	if len(parts) != 3 {
		return
	}
	choice, playerID := parts[1], parts[2]

	presserID := interactionUserID(i)
	if presserID != playerID {
		if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: "This isn't your game!",
				Flags:   discordgo.MessageFlagsEphemeral,
			},
		}); err != nil {
			log.Errorf("Failed to send interaction response: %v", err)
		}
		return
	}

	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	}); err != nil {
		log.Errorf("Failed to acknowledge interaction: %v", err)
	}
	b.deliverGameChoice(playerID, choice)
}

func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

// startWager acquires the busy lock and validates the stake argument.
// Returns ok=false with the lock released after answering the user.
func (b *Bot) startWager(m *discordgo.MessageCreate, arg string) (stake int64, ok bool) {
	userID := m.Author.ID
	name := m.Author.Username

	// Atomic check-and-set: a second game command for the same user
	// fails here instead of racing
	if !b.locks.TryAcquire(userID, name) {
		b.sendMessage(m.ChannelID, "Finish your current game first!")
		return 0, false
	}

	stake, err := service.ParseStake(arg, b.ledger.GetBalance(userID))
	if err != nil {
		b.locks.Release(userID, name)
		if errors.Is(err, service.ErrInsufficientFunds) {
			b.sendMessage(m.ChannelID, fmt.Sprintf("You only have %s aura.", common.FormatAura(b.ledger.GetBalance(userID))))
		} else {
			b.sendMessage(m.ChannelID, "Please enter a valid number, 'half', or 'all'.")
		}
		return 0, false
	}
	return stake, true
}

// handleCoinflip runs a coin flip wager. A timeout charges nothing.
func (b *Bot) handleCoinflip(m *discordgo.MessageCreate, args []string) {
	if len(args) < 1 {
		b.sendMessage(m.ChannelID, fmt.Sprintf("Usage: %scf amount", b.config.Prefix))
		return
	}

	userID := m.Author.ID
	name := m.Author.Username

	stake, ok := b.startWager(m, args[0])
	if !ok {
		return
	}
	defer b.locks.Release(userID, name)

	choiceCh := b.registerGameSession(userID)
	defer b.unregisterGameSession(userID)

	msg, err := b.session.ChannelMessageSendComplex(m.ChannelID, &discordgo.MessageSend{
		Content: fmt.Sprintf("**%s** pick Heads or Tails for **%s** aura!", common.Capitalize(name), common.FormatAura(stake)),
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.Button{Label: "Heads", Style: discordgo.PrimaryButton, CustomID: "coinflip:heads:" + userID},
				discordgo.Button{Label: "Tails", Style: discordgo.SecondaryButton, CustomID: "coinflip:tails:" + userID},
			}},
		},
	})
	if err != nil {
		log.Errorf("Failed to start coin flip: %v", err)
		return
	}
	log.Infof("Heads or Tails game started for %s", name)

	// The ledger lock is never held across this wait; only the settle
	// below takes it
	var choice string
	select {
	case choice = <-choiceCh:
	case <-time.After(b.config.GameTimeout):
		content := "Timed out! No aura lost"
		b.finishGameMessage(m.ChannelID, msg.ID, &content, nil)
		return
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	result := service.FlipCoin(rng)
	won := choice == string(result)

	var change int64 = stake
	if !won {
		change = -stake
	}
	newBalance, err := b.ledger.AdjustBalance(userID, change)
	if err != nil {
		log.Errorf("Failed to settle coin flip: %v", err)
	}

	var outcome string
	var color int
	if won {
		outcome = fmt.Sprintf("**YOU WIN!** It was **%s**.\n**✚%s** AURA!", common.Capitalize(string(result)), common.FormatAura(stake))
		color = colorWin
		log.Infof("%s won %d aura", name, stake)
	} else {
		outcome = fmt.Sprintf("**YOU LOSE!** It was **%s**.\n**━%s** AURA.", common.Capitalize(string(result)), common.FormatAura(stake))
		color = colorLoss
		log.Infof("%s lost %d aura", name, stake)
	}

	b.finishGameMessage(m.ChannelID, msg.ID, nil, &discordgo.MessageEmbed{Description: outcome, Color: color})
	b.sendMessage(m.ChannelID, fmt.Sprintf("<@%s> you now have %s aura!", userID, common.FormatAura(newBalance)))
}

// handleBlackjack runs a blackjack wager. A timeout forfeits the stake,
// unlike the coin flip.
func (b *Bot) handleBlackjack(m *discordgo.MessageCreate, args []string) {
	if len(args) < 1 {
		b.sendMessage(m.ChannelID, fmt.Sprintf("Usage: %sbj amount", b.config.Prefix))
		return
	}

	userID := m.Author.ID
	name := m.Author.Username

	stake, ok := b.startWager(m, args[0])
	if !ok {
		return
	}
	defer b.locks.Release(userID, name)

	choiceCh := b.registerGameSession(userID)
	defer b.unregisterGameSession(userID)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	game := service.NewBlackjackGame(rng, stake)

	msg, err := b.session.ChannelMessageSendComplex(m.ChannelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{b.buildBlackjackEmbed(game, false)},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.Button{Label: "Hit", Style: discordgo.DangerButton, CustomID: "blackjack:hit:" + userID},
				discordgo.Button{Label: "Stand", Style: discordgo.SuccessButton, CustomID: "blackjack:stand:" + userID},
			}},
		},
	})
	if err != nil {
		log.Errorf("Failed to start blackjack: %v", err)
		return
	}
	log.Infof("%s started a blackjack game", name)

	for game.PlayerScore() < 21 {
		var choice string
		select {
		case choice = <-choiceCh:
		case <-time.After(b.config.GameTimeout):
			// Walking away forfeits the stake
			newBalance, err := b.ledger.AdjustBalance(userID, -stake)
			if err != nil {
				log.Errorf("Failed to settle blackjack timeout: %v", err)
			}
			content := fmt.Sprintf("**Timed out!** You lost **%s** aura.", common.FormatAura(stake))
			b.finishGameMessage(m.ChannelID, msg.ID, &content, nil)
			b.sendMessage(m.ChannelID, fmt.Sprintf("<@%s> > New Balance: `%s aura`", userID, common.FormatAura(newBalance)))
			log.Infof("%s timed out and lost %d aura", name, stake)
			return
		}

		if choice == "stand" {
			break
		}
		game.Hit()
		if err := b.editGameEmbed(m.ChannelID, msg.ID, b.buildBlackjackEmbed(game, false)); err != nil {
			log.Errorf("Failed to update blackjack message: %v", err)
		}
	}

	game.PlayDealer()
	result, change := game.Resolve()

	newBalance := b.ledger.GetBalance(userID)
	if change != 0 {
		var err error
		newBalance, err = b.ledger.AdjustBalance(userID, change)
		if err != nil {
			log.Errorf("Failed to settle blackjack: %v", err)
		}
	}

	var label string
	var color int
	switch result {
	case service.BlackjackPlayerBust:
		label, color = "BUST", colorLoss
		log.Infof("%s lost %d aura in blackjack", name, stake)
	case service.BlackjackDealerBust:
		label, color = "DEALER BUSTED - YOU WIN!", colorWin
		log.Infof("%s won %d aura in blackjack", name, stake)
	case service.BlackjackPlayerWin:
		label, color = "YOU WIN!", colorWin
		log.Infof("%s won %d aura in blackjack", name, stake)
	case service.BlackjackDealerWin:
		label, color = "DEALER WINS", colorLoss
		log.Infof("%s lost %d aura in blackjack", name, stake)
	default:
		label, color = "PUSH (TIE)", colorPush
		log.Infof("%s tied in blackjack", name)
	}

	final := b.buildBlackjackEmbed(game, true)
	final.Title = fmt.Sprintf("Blackjack - %s", label)
	final.Color = color
	b.finishGameMessage(m.ChannelID, msg.ID, nil, final)
	b.sendMessage(m.ChannelID, fmt.Sprintf("<@%s> > New Balance: `%s aura`", userID, common.FormatAura(newBalance)))
}

// buildBlackjackEmbed renders the table. The dealer's hole card stays
// hidden until reveal.
func (b *Bot) buildBlackjackEmbed(game *service.BlackjackGame, reveal bool) *discordgo.MessageEmbed {
	dealerValue := fmt.Sprintf("[%s ❓]", game.DealerHand[0])
	if reveal {
		dealerValue = fmt.Sprintf("%s\nScore: %d", service.FormatHand(game.DealerHand), game.DealerScore())
	}

	return &discordgo.MessageEmbed{
		Title: "Blackjack",
		Color: colorNeutral,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Your Hand",
				Value:  fmt.Sprintf("%s\nScore: %d", service.FormatHand(game.PlayerHand), game.PlayerScore()),
				Inline: true,
			},
			{
				Name:   "Dealer's Hand",
				Value:  dealerValue,
				Inline: true,
			},
		},
	}
}

// finishGameMessage replaces a game message's content or embed and
// strips its buttons
func (b *Bot) finishGameMessage(channelID, messageID string, content *string, embed *discordgo.MessageEmbed) {
	edit := &discordgo.MessageEdit{
		Channel:    channelID,
		ID:         messageID,
		Components: &[]discordgo.MessageComponent{},
	}
	if content != nil {
		edit.Content = content
		edit.Embeds = &[]*discordgo.MessageEmbed{}
	}
	if embed != nil {
		empty := ""
		edit.Content = &empty
		edit.Embeds = &[]*discordgo.MessageEmbed{embed}
	}
	if _, err := b.session.ChannelMessageEditComplex(edit); err != nil {
		log.Errorf("Failed to edit game message: %v", err)
	}
}

// editGameEmbed updates a game message's embed, keeping its buttons
func (b *Bot) editGameEmbed(channelID, messageID string, embed *discordgo.MessageEmbed) error {
	_, err := b.session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel: channelID,
		ID:      messageID,
		Embeds:  &[]*discordgo.MessageEmbed{embed},
	})
	return err
}
