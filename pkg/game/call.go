package game

import (
	"fmt"

	"github.com/cbodonnell/liarsdice/pkg/dice"
)

type CallKind int

const (
	CallUnknown CallKind = iota
	// CallIncrease claims at least Count dice across the table show Value.
	CallIncrease
	// CallBullshit challenges the open claim as false.
	CallBullshit
	// CallSpotOn challenges the open claim as exact.
	CallSpotOn
)

func (k CallKind) String() string {
	switch k {
	case CallIncrease:
		return "increase"
	case CallBullshit:
		return "bullshit"
	case CallSpotOn:
		return "spot_on"
	default:
		return "unknown"
	}
}

func (k CallKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *CallKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "increase":
		*k = CallIncrease
	case "bullshit":
		*k = CallBullshit
	case "spot_on":
		*k = CallSpotOn
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCall, text)
	}
	return nil
}

// Call is a player's declaration during a round. Count and Value are only
// meaningful for CallIncrease.
type Call struct {
	Kind  CallKind `json:"kind"`
	Count int      `json:"count,omitempty"`
	Value dice.Die `json:"value,omitempty"`
}

func Increase(count int, value dice.Die) Call {
	return Call{Kind: CallIncrease, Count: count, Value: value}
}

func Bullshit() Call {
	return Call{Kind: CallBullshit}
}

func SpotOn() Call {
	return Call{Kind: CallSpotOn}
}

// IsChallenge reports whether the call ends the round.
func (c Call) IsChallenge() bool {
	return c.Kind == CallBullshit || c.Kind == CallSpotOn
}

func (c Call) String() string {
	if c.Kind == CallIncrease {
		return fmt.Sprintf("%d x %s", c.Count, c.Value)
	}
	return c.Kind.String()
}

// check rejects calls that are malformed regardless of round state.
func (c Call) check() error {
	switch c.Kind {
	case CallIncrease:
		if c.Count < 1 {
			return ErrInvalidCount
		}
		if !c.Value.Valid() {
			return ErrInvalidFace
		}
		return nil
	case CallBullshit, CallSpotOn:
		return nil
	default:
		return ErrUnknownCall
	}
}
