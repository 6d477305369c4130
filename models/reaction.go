package models

// ReactionKind is the direction of an aura reaction
type ReactionKind string

const (
	// ReactionUp grants the message author +1 aura
	ReactionUp ReactionKind = "up"
	// ReactionDown costs the message author 1 aura
	ReactionDown ReactionKind = "down"
)
