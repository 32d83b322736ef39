package game

import (
	"fmt"

	"github.com/cbodonnell/liarsdice/pkg/dice"
	"github.com/google/uuid"
)

// ProposedCall is a call that passed validation but has not been applied.
// It holds only data, so it can be handed to a UI and confirmed later.
type ProposedCall struct {
	call     Call
	player   uuid.UUID
	sequence uint64
}

func (p ProposedCall) Call() Call {
	return p.call
}

// Player returns the player the call was proposed for.
func (p ProposedCall) Player() uuid.UUID {
	return p.player
}

// Outcome describes how a challenge was resolved.
type Outcome struct {
	// Call is the challenge that was made.
	Call Call
	// Caller is the challenging player.
	Caller uuid.UUID
	// Challenged is the player whose claim was challenged.
	Challenged uuid.UUID
	// Claim is the increase that was open when the challenge was made.
	Claim Call
	// PlayerDice holds every player's dice at the time of the challenge,
	// before any were removed.
	PlayerDice  map[uuid.UUID][]dice.Die
	Tally       dice.Tally
	ActualCount int
	CorrectCall bool
	// Losers lists the players who lost a die, in the order they lost it.
	Losers []uuid.UUID
	// Eliminated lists the losers who ran out of dice.
	Eliminated []uuid.UUID
}

// ProposeChoice validates call for the current player without applying it.
// Only valid in PhasePlayerTurn.
func (g *Game) ProposeChoice(call Call) (ProposedCall, error) {
	phase, err := g.requirePhase("propose choice", PhasePlayerTurn)
	if err != nil {
		return ProposedCall{}, err
	}
	if err := g.validate(call); err != nil {
		return ProposedCall{}, err
	}

	g.logger.Trace("Player %s proposed %s", phase.Player, call)
	return ProposedCall{
		call:     call,
		player:   phase.Player,
		sequence: g.sequence,
	}, nil
}

// Confirm applies a proposed call. An increase passes the turn and returns a
// nil outcome. A challenge is resolved, dice are removed, a new round is
// rolled and the outcome returned.
//
// Confirm returns ErrStaleProposal if the game changed since the call was
// proposed, which also makes each proposal usable only once.
func (g *Game) Confirm(p ProposedCall) (*Outcome, error) {
	phase, err := g.requirePhase("confirm choice", PhasePlayerTurn)
	if err != nil {
		return nil, err
	}
	if p.sequence != g.sequence || p.player != phase.Player {
		return nil, ErrStaleProposal
	}
	if err := g.validate(p.call); err != nil {
		return nil, err
	}

	if p.call.Kind == CallIncrease {
		call := p.call
		g.players[g.currentPlayer].LastCall = &call
		g.rotateToNext()
		g.logger.Debug("Player %s called %s", p.player, call)
		return nil, nil
	}

	return g.resolveChallenge(p.call), nil
}

// validate checks call against the call currently open in the round.
func (g *Game) validate(call Call) error {
	if err := call.check(); err != nil {
		return err
	}

	open := g.openCall()
	if open.LastCall == nil {
		if call.Kind != CallIncrease {
			return ErrFirstCallMustBeIncrease
		}
		return nil
	}
	if open.LastCall.Kind != CallIncrease {
		panic(fmt.Sprintf("game: open call by %s is %s, not an increase", open.PlayerID, open.LastCall.Kind))
	}

	if call.Kind == CallIncrease && call.Count <= open.LastCall.Count {
		return fmt.Errorf("%w: %d after %d", ErrCountMustIncrease, call.Count, open.LastCall.Count)
	}
	return nil
}

// openCall returns the most recent entry of the round history.
func (g *Game) openCall() PreviousCall {
	calls := g.PreviousCalls()
	if len(calls) == 0 {
		panic("game: no round in progress")
	}
	return calls[0]
}

func (g *Game) resolveChallenge(call Call) *Outcome {
	open := g.openCall()
	if open.LastCall == nil || open.LastCall.Kind != CallIncrease {
		panic("game: challenge without an open increase")
	}
	claim := *open.LastCall

	playerDice := g.PlayerDice()
	groups := make([][]dice.Die, 0, len(playerDice))
	for _, held := range playerDice {
		groups = append(groups, held)
	}
	tally := dice.NewTally(groups...)

	challenger := g.currentPlayer
	outcome := &Outcome{
		Call:        call,
		Caller:      challenger,
		Challenged:  open.PlayerID,
		Claim:       claim,
		PlayerDice:  playerDice,
		Tally:       tally,
		ActualCount: tally[claim.Value],
	}

	switch call.Kind {
	case CallBullshit:
		outcome.CorrectCall = outcome.ActualCount < claim.Count
		pos := g.positionOf(challenger)
		if outcome.CorrectCall {
			g.takeDie(outcome, open.PlayerID)
		} else {
			g.takeDie(outcome, challenger)
		}
		g.resolvePlayerAfterRemoval(pos)
	case CallSpotOn:
		outcome.CorrectCall = outcome.ActualCount == claim.Count
		if outcome.CorrectCall {
			// The challenger keeps the turn.
			for _, id := range g.ActivePlayers() {
				if id != challenger {
					g.takeDie(outcome, id)
				}
			}
		} else {
			pos := g.positionOf(challenger)
			g.takeDie(outcome, challenger)
			g.resolvePlayerAfterRemoval(pos)
		}
	default:
		panic(fmt.Sprintf("game: %s is not a challenge", call.Kind))
	}

	g.startNextRound()
	g.logger.Debug("Player %s called %s on %s by %s: %d found, correct=%t, losers=%v",
		challenger, call.Kind, claim, open.PlayerID, outcome.ActualCount, outcome.CorrectCall, outcome.Losers)
	return outcome
}

func (g *Game) takeDie(outcome *Outcome, id uuid.UUID) {
	outcome.Losers = append(outcome.Losers, id)
	if g.removeDieFromPlayer(id) {
		outcome.Eliminated = append(outcome.Eliminated, id)
	}
}
