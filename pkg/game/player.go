package game

import (
	"slices"

	"github.com/cbodonnell/liarsdice/pkg/dice"
	"github.com/google/uuid"
)

// Player is the per-participant state of a game.
type Player struct {
	ID   uuid.UUID
	Dice []dice.Die
	// LastCall is the call the player made in the current round, if any.
	LastCall *Call
}

func (p *Player) copy() Player {
	return Player{
		ID:       p.ID,
		Dice:     slices.Clone(p.Dice),
		LastCall: copyCall(p.LastCall),
	}
}

// PreviousCall is one player's entry in the round history.
type PreviousCall struct {
	PlayerID  uuid.UUID `json:"playerID"`
	DiceCount int       `json:"diceCount"`
	LastCall  *Call     `json:"lastCall"`
}

func copyCall(c *Call) *Call {
	if c == nil {
		return nil
	}
	call := *c
	return &call
}
