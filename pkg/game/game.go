// Package game implements the Liar's Dice rule engine: turn order, call
// escalation, challenge resolution, elimination and win detection.
//
// A Game is owned by a single caller and is not safe for concurrent use.
// Every operation first classifies the current phase and rejects calls that
// are not valid for it with ErrWrongPhase.
//
// # Determinism
//
// All randomness comes from the Source the game is constructed with. Given
// the same seed, construction options and sequence of operations, a game
// reproduces every roll, starting player and outcome. Draws happen in the
// following order:
//
//   - New rolls StartingDice dice per player in construction order and
//     discards them.
//   - InitialiseGame and ReturnAllDiceForNewGame roll StartingDice dice per
//     player in ascending id order, then draw the starting player.
//   - StartNextRound, and every resolved challenge, rerolls each die of each
//     active player in roster order.
package game

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/cbodonnell/liarsdice/pkg/dice"
	"github.com/cbodonnell/liarsdice/pkg/log"
	"github.com/google/uuid"
)

type Game struct {
	src          dice.Source
	startingDice int
	// originalOrder is the roster in construction order.
	originalOrder []uuid.UUID
	// activePlayers is the turn rotation order of players still holding dice.
	activePlayers []uuid.UUID
	currentPlayer uuid.UUID
	hasCurrent    bool
	players       map[uuid.UUID]*Player
	// sequence changes on every mutation so that a ProposedCall can detect
	// that the game moved on since it was validated.
	sequence uint64
	logger   *log.Logger
}

// NewGameOptions contains options for creating a new Game.
type NewGameOptions struct {
	// Seed seeds the ChaCha12 source when Source is nil.
	Seed         uint64
	StartingDice int
	PlayerIDs    []uuid.UUID
	Source       dice.Source
	Logger       *log.Logger
}

// New creates a game in the start phase. Players hold no dice until
// InitialiseGame is called.
func New(opts NewGameOptions) (*Game, error) {
	if opts.StartingDice <= 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, ErrNoStartingDice)
	}
	if len(opts.PlayerIDs) < 2 {
		return nil, fmt.Errorf("%w: %w: got %d", ErrInvalidConfig, ErrTooFewPlayers, len(opts.PlayerIDs))
	}

	players := make(map[uuid.UUID]*Player, len(opts.PlayerIDs))
	for _, id := range opts.PlayerIDs {
		if _, ok := players[id]; ok {
			return nil, fmt.Errorf("%w: %w: %s", ErrInvalidConfig, ErrDuplicatePlayer, id)
		}
		players[id] = &Player{ID: id}
	}

	src := opts.Source
	if src == nil {
		src = dice.NewChaCha12(opts.Seed)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	for range opts.PlayerIDs {
		dice.RollN(src, opts.StartingDice)
	}

	return &Game{
		src:           src,
		startingDice:  opts.StartingDice,
		originalOrder: slices.Clone(opts.PlayerIDs),
		players:       players,
		logger:        logger.With("component", "game"),
	}, nil
}

// MustNew is like New but panics on an invalid configuration.
func MustNew(opts NewGameOptions) *Game {
	g, err := New(opts)
	if err != nil {
		panic(fmt.Sprintf("game: %v", err))
	}
	return g
}

// InitialiseGame deals every player a full hand and picks a random starting
// player. Only valid in PhaseStart. The rotation order is ascending id order.
func (g *Game) InitialiseGame() error {
	if _, err := g.requirePhase("initialise game", PhaseStart); err != nil {
		return err
	}

	sorted := g.sortedIDs()
	g.dealAll(sorted)
	g.activePlayers = sorted
	g.pickStartingPlayer()
	g.logger.Debug("Game initialised with %d players, %s starts", len(g.activePlayers), g.currentPlayer)
	return nil
}

// ReturnAllDiceForNewGame gives every player back a full hand, restores the
// original rotation order and picks a new random starting player. Valid in
// PhaseStart and PhaseGameComplete.
func (g *Game) ReturnAllDiceForNewGame() error {
	if _, err := g.requirePhase("return all dice", PhaseStart, PhaseGameComplete); err != nil {
		return err
	}

	g.dealAll(g.sortedIDs())
	g.activePlayers = slices.Clone(g.originalOrder)
	g.pickStartingPlayer()
	g.logger.Debug("New game dealt, %s starts", g.currentPlayer)
	return nil
}

// StartNextRound rerolls the dice of every active player and clears their
// calls. Roster membership and the current player are unchanged.
func (g *Game) StartNextRound() error {
	if _, err := g.requirePhase("start next round", PhasePlayerTurn); err != nil {
		return err
	}
	g.startNextRound()
	return nil
}

func (g *Game) startNextRound() {
	for _, id := range g.activePlayers {
		player := g.players[id]
		for i := range player.Dice {
			player.Dice[i] = dice.Roll(g.src)
		}
		player.LastCall = nil
	}
	g.sequence++
}

func (g *Game) dealAll(order []uuid.UUID) {
	for _, id := range order {
		player := g.players[id]
		player.Dice = dice.RollN(g.src, g.startingDice)
		player.LastCall = nil
	}
}

func (g *Game) pickStartingPlayer() {
	g.currentPlayer = g.activePlayers[dice.Intn(g.src, len(g.activePlayers))]
	g.hasCurrent = true
	g.sequence++
}

// PreviousCalls returns an entry for every active player ordered by recency,
// ending with the current player. The first entry holds the call that is
// open for challenge, or a nil LastCall if nobody has called this round.
// It returns nil before the game has started.
func (g *Game) PreviousCalls() []PreviousCall {
	if !g.hasCurrent {
		return nil
	}

	// Turns move forward through the roster, so recency runs backwards.
	reversed := slices.Clone(g.activePlayers)
	slices.Reverse(reversed)
	current := slices.Index(reversed, g.currentPlayer)
	if current < 0 {
		panic(fmt.Sprintf("game: current player %s is not active", g.currentPlayer))
	}
	ordered := make([]uuid.UUID, 0, len(reversed))
	ordered = append(ordered, reversed[current+1:]...)
	ordered = append(ordered, reversed[:current+1]...)

	calls := make([]PreviousCall, 0, len(ordered))
	for _, id := range ordered {
		player := g.players[id]
		calls = append(calls, PreviousCall{
			PlayerID:  id,
			DiceCount: len(player.Dice),
			LastCall:  copyCall(player.LastCall),
		})
	}
	return calls
}

// PlayerDice returns a copy of every player's dice, including players who
// have been eliminated.
func (g *Game) PlayerDice() map[uuid.UUID][]dice.Die {
	snapshot := make(map[uuid.UUID][]dice.Die, len(g.players))
	for id, player := range g.players {
		snapshot[id] = slices.Clone(player.Dice)
	}
	return snapshot
}

// Player returns a copy of the player record for id.
func (g *Game) Player(id uuid.UUID) (Player, bool) {
	player, ok := g.players[id]
	if !ok {
		return Player{}, false
	}
	return player.copy(), true
}

// Players returns the roster in construction order.
func (g *Game) Players() []uuid.UUID {
	return slices.Clone(g.originalOrder)
}

// ActivePlayers returns the players still holding dice in rotation order.
func (g *Game) ActivePlayers() []uuid.UUID {
	return slices.Clone(g.activePlayers)
}

// CurrentPlayer returns the player whose turn it is, if a game has started.
func (g *Game) CurrentPlayer() (uuid.UUID, bool) {
	return g.currentPlayer, g.hasCurrent
}

func (g *Game) StartingDice() int {
	return g.startingDice
}

// removeDieFromPlayer drops one die from the player and takes them out of the
// rotation when they run out. It reports whether the player was eliminated.
func (g *Game) removeDieFromPlayer(id uuid.UUID) bool {
	player, ok := g.players[id]
	if !ok || len(player.Dice) == 0 {
		panic(fmt.Sprintf("game: cannot remove a die from player %s", id))
	}
	player.Dice = player.Dice[:len(player.Dice)-1]
	g.sequence++
	if len(player.Dice) > 0 {
		return false
	}
	if i := slices.Index(g.activePlayers, id); i >= 0 {
		g.activePlayers = slices.Delete(g.activePlayers, i, i+1)
	}
	g.logger.Debug("Player %s eliminated", id)
	return true
}

// rotateToNext passes the turn to the next player in rotation order.
func (g *Game) rotateToNext() {
	i := slices.Index(g.activePlayers, g.currentPlayer)
	if i < 0 {
		panic(fmt.Sprintf("game: current player %s is not active", g.currentPlayer))
	}
	g.currentPlayer = g.activePlayers[(i+1)%len(g.activePlayers)]
	g.sequence++
}

// rosterPosition is a player's place in the rotation captured before dice are
// removed.
type rosterPosition struct {
	index    int
	playerID uuid.UUID
}

func (g *Game) positionOf(id uuid.UUID) rosterPosition {
	i := slices.Index(g.activePlayers, id)
	if i < 0 {
		panic(fmt.Sprintf("game: player %s is not active", id))
	}
	return rosterPosition{index: i, playerID: id}
}

// resolvePlayerAfterRemoval hands the turn back to the pivot player if they
// are still active, otherwise to whoever now occupies the pivot's old index.
// When several players drop out at once this can skip a player; that is
// accepted.
func (g *Game) resolvePlayerAfterRemoval(pos rosterPosition) {
	if slices.Contains(g.activePlayers, pos.playerID) {
		g.currentPlayer = pos.playerID
	} else {
		g.currentPlayer = g.activePlayers[pos.index%len(g.activePlayers)]
	}
	g.sequence++
}

func (g *Game) sortedIDs() []uuid.UUID {
	ids := slices.Clone(g.originalOrder)
	slices.SortFunc(ids, func(a, b uuid.UUID) int {
		return bytes.Compare(a[:], b[:])
	})
	return ids
}
