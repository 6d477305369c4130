package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStake(t *testing.T) {
	tests := []struct {
		name     string
		arg      string
		balance  int64
		expected int64
		wantErr  error
	}{
		{"plain integer", "25", 100, 25, nil},
		{"exact balance", "100", 100, 100, nil},
		{"all", "all", 80, 80, nil},
		{"all is case insensitive", "ALL", 80, 80, nil},
		{"half", "half", 81, 40, nil},
		{"over balance", "150", 100, 0, ErrInsufficientFunds},
		{"zero", "0", 100, 0, ErrInvalidAmount},
		{"negative", "-5", 100, 0, ErrInvalidAmount},
		{"not a number", "everything", 100, 0, ErrInvalidAmount},
		{"all of nothing", "all", 0, 0, ErrInvalidAmount},
		{"half of one rounds to nothing", "half", 1, 0, ErrInvalidAmount},
		{"all of a debt", "all", -10, 0, ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stake, err := ParseStake(tt.arg, tt.balance)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, stake)
		})
	}
}
