package models

// SenderField selects which per-sender counter an adjustment targets
type SenderField string

const (
	// SenderFieldPos counts positive aura given
	SenderFieldPos SenderField = "POS"
	// SenderFieldNeg counts negative aura given
	SenderFieldNeg SenderField = "NEG"
)

// SenderCounts tracks how much aura a user has handed out.
// Both counters clamp at zero.
type SenderCounts struct {
	Pos int64 `json:"POS"`
	Neg int64 `json:"NEG"`
}

// Get returns the counter for a field
func (c *SenderCounts) Get(field SenderField) int64 {
	if field == SenderFieldNeg {
		return c.Neg
	}
	return c.Pos
}

// Set overwrites the counter for a field
func (c *SenderCounts) Set(field SenderField, value int64) {
	if field == SenderFieldNeg {
		c.Neg = value
		return
	}
	c.Pos = value
}
