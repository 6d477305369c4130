package service

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandScore(t *testing.T) {
	tests := []struct {
		name     string
		hand     []Card
		expected int
	}{
		{"number cards", []Card{"2", "3", "4"}, 9},
		{"face cards", []Card{"J", "Q", "K"}, 30},
		{"ten counts ten", []Card{"10", "7"}, 17},
		{"hard ace", []Card{"A", "K"}, 21},
		{"softened ace", []Card{"A", "K", "K"}, 21},
		{"two aces", []Card{"A", "A"}, 12},
		{"two aces with ten", []Card{"A", "A", "10"}, 12},
		{"all aces soften", []Card{"A", "A", "A", "K"}, 13},
		{"empty hand", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HandScore(tt.hand))
		})
	}
}

func TestFormatHand(t *testing.T) {
	assert.Equal(t, "[A 10 3]", FormatHand([]Card{"A", "10", "3"}))
	assert.Equal(t, "[]", FormatHand(nil))
}

func TestNewBlackjackGame_DealsTwoEach(t *testing.T) {
	game := NewBlackjackGame(rand.New(rand.NewSource(1)), 10)

	assert.Len(t, game.PlayerHand, 2)
	assert.Len(t, game.DealerHand, 2)
	assert.Equal(t, int64(10), game.Stake)
}

func TestBlackjackGame_Hit_AddsCard(t *testing.T) {
	game := NewBlackjackGame(rand.New(rand.NewSource(1)), 10)

	score := game.Hit()
	assert.Len(t, game.PlayerHand, 3)
	assert.Equal(t, game.PlayerScore(), score)
}

func TestBlackjackGame_PlayDealer_HitsToSeventeen(t *testing.T) {
	game := &BlackjackGame{
		rng:        rand.New(rand.NewSource(1)),
		PlayerHand: []Card{"10", "9"},
		DealerHand: []Card{"2", "3"},
		Stake:      10,
	}

	game.PlayDealer()
	assert.GreaterOrEqual(t, game.DealerScore(), 17)
}

func TestBlackjackGame_PlayDealer_StandsOnSeventeen(t *testing.T) {
	game := &BlackjackGame{
		rng:        rand.New(rand.NewSource(1)),
		PlayerHand: []Card{"10", "9"},
		DealerHand: []Card{"10", "7"},
		Stake:      10,
	}

	game.PlayDealer()
	assert.Equal(t, []Card{"10", "7"}, game.DealerHand)
}

func TestBlackjackGame_PlayDealer_SkipsWhenPlayerBusted(t *testing.T) {
	game := &BlackjackGame{
		rng:        rand.New(rand.NewSource(1)),
		PlayerHand: []Card{"10", "9", "5"},
		DealerHand: []Card{"2", "3"},
		Stake:      10,
	}

	// The dealer never draws against a busted player
	game.PlayDealer()
	assert.Equal(t, []Card{"2", "3"}, game.DealerHand)
}

func TestBlackjackGame_Resolve(t *testing.T) {
	tests := []struct {
		name           string
		playerHand     []Card
		dealerHand     []Card
		expectedResult BlackjackResult
		expectedChange int64
	}{
		{"player bust", []Card{"10", "9", "5"}, []Card{"10", "7"}, BlackjackPlayerBust, -10},
		{"dealer bust", []Card{"10", "9"}, []Card{"10", "9", "5"}, BlackjackDealerBust, 10},
		{"player wins", []Card{"10", "9"}, []Card{"10", "7"}, BlackjackPlayerWin, 10},
		{"dealer wins", []Card{"10", "7"}, []Card{"10", "9"}, BlackjackDealerWin, -10},
		{"push", []Card{"10", "8"}, []Card{"9", "9"}, BlackjackPush, 0},
		{"both bust pays the dealer", []Card{"10", "9", "5"}, []Card{"10", "9", "5"}, BlackjackPlayerBust, -10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game := &BlackjackGame{
				PlayerHand: tt.playerHand,
				DealerHand: tt.dealerHand,
				Stake:      10,
			}

			result, change := game.Resolve()
			assert.Equal(t, tt.expectedResult, result)
			assert.Equal(t, tt.expectedChange, change)
		})
	}
}

func TestBlackjackGame_FullRoundIsDeterministicPerSeed(t *testing.T) {
	first := NewBlackjackGame(rand.New(rand.NewSource(42)), 5)
	second := NewBlackjackGame(rand.New(rand.NewSource(42)), 5)

	require.Equal(t, first.PlayerHand, second.PlayerHand)
	require.Equal(t, first.DealerHand, second.DealerHand)
}
