package service

import "math/rand"

// CoinSide is the face of a flipped coin
type CoinSide string

const (
	Heads CoinSide = "heads"
	Tails CoinSide = "tails"
)

// FlipCoin rolls 1-100 and maps even to heads, odd to tails
func FlipCoin(rng *rand.Rand) CoinSide {
	if (rng.Intn(100)+1)%2 == 0 {
		return Heads
	}
	return Tails
}
