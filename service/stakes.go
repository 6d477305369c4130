package service

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseStake resolves a wager argument against the user's current
// balance. Accepts a plain integer, "all", or "half". The stake must be
// positive and covered by the balance; this is the spending floor that
// reaction and admin adjustments deliberately don't have.
func ParseStake(arg string, balance int64) (int64, error) {
	var stake int64
	switch strings.ToLower(arg) {
	case "all":
		stake = balance
	case "half":
		stake = balance / 2
	default:
		parsed, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return 0, ErrInvalidAmount
		}
		stake = parsed
	}

	if stake <= 0 {
		return 0, ErrInvalidAmount
	}
	if stake > balance {
		return 0, fmt.Errorf("%w: have %d, need %d", ErrInsufficientFunds, balance, stake)
	}
	return stake, nil
}
