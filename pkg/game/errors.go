package game

import "errors"

// Construction errors. New wraps each of these in ErrInvalidConfig.
var (
	ErrInvalidConfig   = errors.New("invalid game configuration")
	ErrNoStartingDice  = errors.New("starting dice must be positive")
	ErrTooFewPlayers   = errors.New("at least two players are required")
	ErrDuplicatePlayer = errors.New("player ids must be unique")
)

// Call validation errors. These leave the game untouched so the acting
// player can be asked again.
var (
	ErrFirstCallMustBeIncrease = errors.New("first call must be an increase")
	ErrCountMustIncrease       = errors.New("new count must be higher than previous")
	ErrInvalidCount            = errors.New("call count must be positive")
	ErrInvalidFace             = errors.New("call value must be a face from 1 to 6")
	ErrUnknownCall             = errors.New("unknown call kind")
)

var (
	ErrWrongPhase    = errors.New("operation not valid in current phase")
	ErrStaleProposal = errors.New("proposed call no longer matches game state")
)
