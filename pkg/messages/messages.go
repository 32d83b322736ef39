package messages

import (
	"encoding/json"
	"fmt"

	"github.com/cbodonnell/liarsdice/pkg/dice"
	"github.com/cbodonnell/liarsdice/pkg/game"
	"github.com/google/uuid"
)

type EventType string

// Event types
const (
	EventTypeGameStarted       EventType = "game_started"
	EventTypeCallMade          EventType = "call_made"
	EventTypeChallengeResolved EventType = "challenge_resolved"
	EventTypePlayerEliminated  EventType = "player_eliminated"
	EventTypeGameWon           EventType = "game_won"
)

// Event represents a generic table event for serialization/deserialization
type Event struct {
	Sequence uint64          `json:"sequence"`
	Type     EventType       `json:"type"`
	Payload  json.RawMessage `json:"payload"`
}

// NewEvent marshals payload into a new event.
func NewEvent(sequence uint64, eventType EventType, payload interface{}) (Event, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("failed to marshal %s payload: %v", eventType, err)
	}
	return Event{
		Sequence: sequence,
		Type:     eventType,
		Payload:  b,
	}, nil
}

// Decode unmarshals the event payload into v.
func (e Event) Decode(v interface{}) error {
	if err := json.Unmarshal(e.Payload, v); err != nil {
		return fmt.Errorf("failed to unmarshal %s payload: %v", e.Type, err)
	}
	return nil
}

type GameStarted struct {
	Players        []uuid.UUID       `json:"players"`
	StartingPlayer uuid.UUID         `json:"startingPlayer"`
	DiceCounts     map[uuid.UUID]int `json:"diceCounts"`
}

type CallMade struct {
	PlayerID uuid.UUID `json:"playerID"`
	Call     game.Call `json:"call"`
}

type ChallengeResolved struct {
	Caller      uuid.UUID                `json:"caller"`
	Challenged  uuid.UUID                `json:"challenged"`
	Call        game.Call                `json:"call"`
	Claim       game.Call                `json:"claim"`
	PlayerDice  map[uuid.UUID][]dice.Die `json:"playerDice"`
	Tally       dice.Tally               `json:"tally"`
	ActualCount int                      `json:"actualCount"`
	CorrectCall bool                     `json:"correctCall"`
	Losers      []uuid.UUID              `json:"losers"`
}

type PlayerEliminated struct {
	PlayerID uuid.UUID `json:"playerID"`
}

type GameWon struct {
	WinnerID uuid.UUID `json:"winnerID"`
}

// ChallengeResolvedFromOutcome converts a game outcome into its event payload.
func ChallengeResolvedFromOutcome(outcome *game.Outcome) *ChallengeResolved {
	return &ChallengeResolved{
		Caller:      outcome.Caller,
		Challenged:  outcome.Challenged,
		Call:        outcome.Call,
		Claim:       outcome.Claim,
		PlayerDice:  outcome.PlayerDice,
		Tally:       outcome.Tally,
		ActualCount: outcome.ActualCount,
		CorrectCall: outcome.CorrectCall,
		Losers:      outcome.Losers,
	}
}
