package service

import (
	"math/rand"
	"strings"
)

// Card is a blackjack card rank. Suits don't matter for scoring.
type Card string

var cardRanks = []Card{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}

// BlackjackResult is the outcome of a finished round
type BlackjackResult string

const (
	BlackjackPlayerBust BlackjackResult = "player_bust"
	BlackjackDealerBust BlackjackResult = "dealer_bust"
	BlackjackPlayerWin  BlackjackResult = "player_win"
	BlackjackDealerWin  BlackjackResult = "dealer_win"
	BlackjackPush       BlackjackResult = "push"
)

// HandScore totals a hand. Face cards count 10; aces count 11, softening
// to 1 one at a time while the hand would bust.
func HandScore(hand []Card) int {
	score := 0
	aces := 0
	for _, card := range hand {
		switch card {
		case "J", "Q", "K":
			score += 10
		case "A":
			aces++
			score += 11
		case "10":
			score += 10
		default:
			score += int(card[0] - '0')
		}
	}
	for score > 21 && aces > 0 {
		score -= 10
		aces--
	}
	return score
}

// FormatHand renders a hand for display, e.g. [A 10 3]
func FormatHand(hand []Card) string {
	parts := make([]string, len(hand))
	for i, card := range hand {
		parts[i] = string(card)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// BlackjackGame holds the state of one round. Cards are drawn with
// replacement from an infinite shoe, matching the odds players expect
// from the bot.
type BlackjackGame struct {
	rng *rand.Rand

	PlayerHand []Card
	DealerHand []Card
	Stake      int64
}

// NewBlackjackGame deals two cards each to the player and the dealer
func NewBlackjackGame(rng *rand.Rand, stake int64) *BlackjackGame {
	g := &BlackjackGame{rng: rng, Stake: stake}
	g.PlayerHand = []Card{g.draw(), g.draw()}
	g.DealerHand = []Card{g.draw(), g.draw()}
	return g
}

func (g *BlackjackGame) draw() Card {
	return cardRanks[g.rng.Intn(len(cardRanks))]
}

// PlayerScore returns the player's current total
func (g *BlackjackGame) PlayerScore() int {
	return HandScore(g.PlayerHand)
}

// DealerScore returns the dealer's current total
func (g *BlackjackGame) DealerScore() int {
	return HandScore(g.DealerHand)
}

// Hit deals the player one card and returns the new score
func (g *BlackjackGame) Hit() int {
	g.PlayerHand = append(g.PlayerHand, g.draw())
	return g.PlayerScore()
}

// PlayDealer runs the dealer's turn: hit until reaching 17. Skipped when
// the player already busted.
func (g *BlackjackGame) PlayDealer() {
	if g.PlayerScore() > 21 {
		return
	}
	for g.DealerScore() < 17 {
		g.DealerHand = append(g.DealerHand, g.draw())
	}
}

// Resolve compares the final hands and returns the outcome and the aura
// change for the player (positive, negative, or zero on a push)
func (g *BlackjackGame) Resolve() (BlackjackResult, int64) {
	playerFinal := g.PlayerScore()
	dealerFinal := g.DealerScore()

	switch {
	case playerFinal > 21:
		return BlackjackPlayerBust, -g.Stake
	case dealerFinal > 21:
		return BlackjackDealerBust, g.Stake
	case playerFinal > dealerFinal:
		return BlackjackPlayerWin, g.Stake
	case playerFinal < dealerFinal:
		return BlackjackDealerWin, -g.Stake
	default:
		return BlackjackPush, 0
	}
}
