// Package table drives a single game on behalf of its players: it checks
// whose turn it is, proposes and confirms calls in one step, and publishes
// what happened as events for observers.
package table

import (
	"errors"
	"fmt"
	"sync"

	"github.com/cbodonnell/liarsdice/pkg/dice"
	"github.com/cbodonnell/liarsdice/pkg/game"
	"github.com/cbodonnell/liarsdice/pkg/log"
	"github.com/cbodonnell/liarsdice/pkg/messages"
	"github.com/cbodonnell/liarsdice/pkg/queue"
	"github.com/google/uuid"
)

var (
	ErrNotYourTurn   = errors.New("not this player's turn")
	ErrUnknownPlayer = errors.New("player is not seated at this table")
)

type Table struct {
	lock     sync.Mutex
	game     *game.Game
	events   queue.Queue[messages.Event]
	sequence uint64
	logger   *log.Logger
}

// NewTableOptions contains options for creating a new Table.
type NewTableOptions struct {
	Game   *game.Game
	Events queue.Queue[messages.Event]
	Logger *log.Logger
}

func NewTable(opts NewTableOptions) *Table {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Table{
		game:   opts.Game,
		events: opts.Events,
		logger: logger.With("component", "table"),
	}
}

// Snapshot is a read-only view of the table.
type Snapshot struct {
	Phase         game.Phase               `json:"phase"`
	ActivePlayers []uuid.UUID              `json:"activePlayers"`
	PreviousCalls []game.PreviousCall      `json:"previousCalls"`
	PlayerDice    map[uuid.UUID][]dice.Die `json:"playerDice"`
}

// Start deals a game. From the start phase it initialises the game; after a
// game is complete it returns everyone's dice for a new one.
func (t *Table) Start() error {
	t.lock.Lock()
	defer t.lock.Unlock()

	var err error
	switch phase := t.game.Phase(); phase.Kind {
	case game.PhaseStart:
		err = t.game.InitialiseGame()
	case game.PhaseGameComplete:
		err = t.game.ReturnAllDiceForNewGame()
	default:
		err = fmt.Errorf("%w: game already in progress", game.ErrWrongPhase)
	}
	if err != nil {
		return err
	}

	current, _ := t.game.CurrentPlayer()
	counts := make(map[uuid.UUID]int)
	for id, held := range t.game.PlayerDice() {
		counts[id] = len(held)
	}
	t.publish(messages.EventTypeGameStarted, &messages.GameStarted{
		Players:        t.game.ActivePlayers(),
		StartingPlayer: current,
		DiceCounts:     counts,
	})
	t.logger.Info("Game started, %s to call first", current)
	return nil
}

// Act makes a call on behalf of playerID. It returns the challenge outcome,
// or nil for an increase.
func (t *Table) Act(playerID uuid.UUID, call game.Call) (*game.Outcome, error) {
	t.lock.Lock()
	defer t.lock.Unlock()

	if _, ok := t.game.Player(playerID); !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlayer, playerID)
	}
	if phase := t.game.Phase(); phase.Kind == game.PhasePlayerTurn && phase.Player != playerID {
		return nil, fmt.Errorf("%w: waiting on %s", ErrNotYourTurn, phase.Player)
	}

	proposed, err := t.game.ProposeChoice(call)
	if err != nil {
		return nil, err
	}
	outcome, err := t.game.Confirm(proposed)
	if err != nil {
		return nil, err
	}

	t.publish(messages.EventTypeCallMade, &messages.CallMade{PlayerID: playerID, Call: call})
	if outcome == nil {
		return nil, nil
	}

	t.publish(messages.EventTypeChallengeResolved, messages.ChallengeResolvedFromOutcome(outcome))
	for _, id := range outcome.Eliminated {
		t.publish(messages.EventTypePlayerEliminated, &messages.PlayerEliminated{PlayerID: id})
	}
	if phase := t.game.Phase(); phase.Kind == game.PhaseGameComplete {
		t.publish(messages.EventTypeGameWon, &messages.GameWon{WinnerID: phase.Player})
		t.logger.Info("Player %s won the game", phase.Player)
	}
	return outcome, nil
}

// CurrentPlayer returns the player expected to act, if any.
func (t *Table) CurrentPlayer() (uuid.UUID, bool) {
	t.lock.Lock()
	defer t.lock.Unlock()

	phase := t.game.Phase()
	if phase.Kind != game.PhasePlayerTurn {
		return uuid.Nil, false
	}
	return phase.Player, true
}

func (t *Table) Snapshot() Snapshot {
	t.lock.Lock()
	defer t.lock.Unlock()

	return Snapshot{
		Phase:         t.game.Phase(),
		ActivePlayers: t.game.ActivePlayers(),
		PreviousCalls: t.game.PreviousCalls(),
		PlayerDice:    t.game.PlayerDice(),
	}
}

// Events drains the events published since the last call.
func (t *Table) Events() []messages.Event {
	return t.events.ReadAllMessages()
}

// publish enqueues an event. A full or failing queue never fails the game
// action that produced the event.
func (t *Table) publish(eventType messages.EventType, payload interface{}) {
	t.sequence++
	event, err := messages.NewEvent(t.sequence, eventType, payload)
	if err != nil {
		t.logger.Error("Failed to create %s event: %v", eventType, err)
		return
	}
	if err := t.events.Enqueue(event); err != nil {
		t.logger.Warn("Dropped %s event %d: %v", eventType, event.Sequence, err)
	}
}
