package game

import (
	"fmt"

	"github.com/google/uuid"
)

type PhaseKind int

const (
	// PhaseStart means no game is in progress yet.
	PhaseStart PhaseKind = iota
	// PhasePlayerTurn means Player must make a call.
	PhasePlayerTurn
	// PhaseGameComplete means Player is the only one left holding dice.
	PhaseGameComplete
)

func (k PhaseKind) String() string {
	switch k {
	case PhaseStart:
		return "start"
	case PhasePlayerTurn:
		return "player_turn"
	case PhaseGameComplete:
		return "game_complete"
	default:
		return "unknown"
	}
}

func (k PhaseKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *PhaseKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "start":
		*k = PhaseStart
	case "player_turn":
		*k = PhasePlayerTurn
	case "game_complete":
		*k = PhaseGameComplete
	default:
		return fmt.Errorf("unknown phase %q", text)
	}
	return nil
}

type Phase struct {
	Kind PhaseKind `json:"kind"`
	// Player is the player to act during PhasePlayerTurn and the winner
	// during PhaseGameComplete. It is uuid.Nil during PhaseStart.
	Player uuid.UUID `json:"player"`
}

// Phase classifies the current state of the game. It is re-derived on every
// call and panics if no player holds any dice once a game has started.
func (g *Game) Phase() Phase {
	if !g.hasCurrent {
		return Phase{Kind: PhaseStart}
	}

	var holders []uuid.UUID
	for _, id := range g.originalOrder {
		if len(g.players[id].Dice) > 0 {
			holders = append(holders, id)
		}
	}

	switch len(holders) {
	case 0:
		panic("game: no player holds any dice")
	case 1:
		return Phase{Kind: PhaseGameComplete, Player: holders[0]}
	default:
		return Phase{Kind: PhasePlayerTurn, Player: g.currentPlayer}
	}
}

func (g *Game) requirePhase(op string, allowed ...PhaseKind) (Phase, error) {
	phase := g.Phase()
	for _, kind := range allowed {
		if phase.Kind == kind {
			return phase, nil
		}
	}
	return phase, fmt.Errorf("%w: %s during %s", ErrWrongPhase, op, phase.Kind)
}
