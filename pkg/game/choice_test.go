package game

import (
	"testing"

	"github.com/cbodonnell/liarsdice/pkg/dice"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// play proposes and confirms a call for the current player.
func play(t *testing.T, g *Game, call Call) *Outcome {
	t.Helper()
	proposed, err := g.ProposeChoice(call)
	require.NoError(t, err)
	outcome, err := g.Confirm(proposed)
	require.NoError(t, err)
	return outcome
}

func TestProposeChoice_FirstCall(t *testing.T) {
	tests := []struct {
		name    string
		call    Call
		wantErr error
	}{
		{name: "increase", call: Increase(1, 2)},
		{name: "bullshit", call: Bullshit(), wantErr: ErrFirstCallMustBeIncrease},
		{name: "spot on", call: SpotOn(), wantErr: ErrFirstCallMustBeIncrease},
		{name: "zero count", call: Increase(0, 2), wantErr: ErrInvalidCount},
		{name: "face too low", call: Increase(1, 0), wantErr: ErrInvalidFace},
		{name: "face too high", call: Increase(1, 7), wantErr: ErrInvalidFace},
		{name: "unknown kind", call: Call{}, wantErr: ErrUnknownCall},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newReferenceGame(t)

			proposed, err := g.ProposeChoice(tt.call)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.call, proposed.Call())
			assert.Equal(t, playerE, proposed.Player())
		})
	}
}

func TestProposeChoice_AfterIncrease(t *testing.T) {
	tests := []struct {
		name    string
		call    Call
		wantErr error
	}{
		{name: "higher count same face", call: Increase(4, 4)},
		{name: "higher count other face", call: Increase(4, 1)},
		{name: "equal count same face", call: Increase(3, 4), wantErr: ErrCountMustIncrease},
		{name: "equal count higher face", call: Increase(3, 6), wantErr: ErrCountMustIncrease},
		{name: "lower count", call: Increase(2, 6), wantErr: ErrCountMustIncrease},
		{name: "bullshit", call: Bullshit()},
		{name: "spot on", call: SpotOn()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newReferenceGame(t)
			play(t, g, Increase(3, 4))

			_, err := g.ProposeChoice(tt.call)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProposeChoice_PanicsOnClosedRound(t *testing.T) {
	g := newReferenceGame(t)
	closed := Bullshit()
	g.players[playerT].LastCall = &closed

	assert.Panics(t, func() { g.ProposeChoice(Increase(5, 5)) })
}

func TestConfirm_Increase(t *testing.T) {
	g := newReferenceGame(t)
	before := g.PlayerDice()

	outcome := play(t, g, Increase(3, 4))

	assert.Nil(t, outcome)
	assert.Equal(t, before, g.PlayerDice())
	assert.Equal(t, Phase{Kind: PhasePlayerTurn, Player: playerS}, g.Phase())
	claim := Increase(3, 4)
	assert.Equal(t, []PreviousCall{
		{PlayerID: playerE, DiceCount: 3, LastCall: &claim},
		{PlayerID: playerT, DiceCount: 3},
		{PlayerID: playerS, DiceCount: 3},
	}, g.PreviousCalls())
}

func TestConfirm_StaleProposals(t *testing.T) {
	g := newReferenceGame(t)

	first, err := g.ProposeChoice(Increase(2, 2))
	require.NoError(t, err)
	second, err := g.ProposeChoice(Increase(3, 3))
	require.NoError(t, err)

	_, err = g.Confirm(first)
	require.NoError(t, err)

	_, err = g.Confirm(first)
	assert.ErrorIs(t, err, ErrStaleProposal)
	_, err = g.Confirm(second)
	assert.ErrorIs(t, err, ErrStaleProposal)

	_, err = g.Confirm(ProposedCall{})
	assert.ErrorIs(t, err, ErrStaleProposal)
}

func TestConfirm_ReferenceBullshit(t *testing.T) {
	g := newReferenceGame(t)
	play(t, g, Increase(3, 4))

	outcome := play(t, g, Bullshit())
	require.NotNil(t, outcome)

	assert.False(t, outcome.CorrectCall)
	assert.Equal(t, 3, outcome.ActualCount)
	assert.Equal(t, playerS, outcome.Caller)
	assert.Equal(t, playerE, outcome.Challenged)
	assert.Equal(t, Increase(3, 4), outcome.Claim)
	assert.Equal(t, dice.Tally{1: 1, 2: 1, 3: 0, 4: 3, 5: 2, 6: 2}, outcome.Tally)
	assert.Equal(t, map[uuid.UUID][]dice.Die{
		playerE: {1, 5, 4},
		playerS: {4, 5, 6},
		playerT: {4, 2, 6},
	}, outcome.PlayerDice)
	assert.Equal(t, []uuid.UUID{playerS}, outcome.Losers)
	assert.Empty(t, outcome.Eliminated)

	assert.Equal(t, map[uuid.UUID][]dice.Die{
		playerE: {6, 4, 1},
		playerS: {4, 6},
		playerT: {2, 3, 6},
	}, g.PlayerDice())
	assert.Equal(t, Phase{Kind: PhasePlayerTurn, Player: playerS}, g.Phase())
	assert.Equal(t, []PreviousCall{
		{PlayerID: playerE, DiceCount: 3},
		{PlayerID: playerT, DiceCount: 3},
		{PlayerID: playerS, DiceCount: 2},
	}, g.PreviousCalls())
}

func TestConfirm_ReferenceSpotOn(t *testing.T) {
	g := newReferenceGame(t)
	play(t, g, Increase(3, 4))

	outcome := play(t, g, SpotOn())
	require.NotNil(t, outcome)

	assert.True(t, outcome.CorrectCall)
	assert.Equal(t, []uuid.UUID{playerT, playerE}, outcome.Losers)
	assert.Equal(t, map[uuid.UUID][]dice.Die{
		playerE: {6, 4},
		playerS: {4, 6, 2},
		playerT: {3, 6},
	}, g.PlayerDice())
	assert.Equal(t, Phase{Kind: PhasePlayerTurn, Player: playerS}, g.Phase())
}

// threeFours holds exactly three dice showing 4 across the table.
var threeFours = map[uuid.UUID][]dice.Die{
	playerE: {4, 4, 1},
	playerS: {4, 2, 3},
	playerT: {5, 6, 6},
}

func TestConfirm_ChallengeResolution(t *testing.T) {
	tests := []struct {
		name        string
		claimCount  int
		challenge   Call
		wantCorrect bool
		wantLosers  []uuid.UUID
		wantNext    uuid.UUID
	}{
		{name: "bullshit on exact claim", claimCount: 3, challenge: Bullshit(), wantCorrect: false, wantLosers: []uuid.UUID{playerS}, wantNext: playerS},
		{name: "bullshit on overclaim", claimCount: 4, challenge: Bullshit(), wantCorrect: true, wantLosers: []uuid.UUID{playerE}, wantNext: playerS},
		{name: "bullshit on underclaim", claimCount: 2, challenge: Bullshit(), wantCorrect: false, wantLosers: []uuid.UUID{playerS}, wantNext: playerS},
		{name: "spot on exact claim", claimCount: 3, challenge: SpotOn(), wantCorrect: true, wantLosers: []uuid.UUID{playerT, playerE}, wantNext: playerS},
		{name: "spot on overclaim", claimCount: 4, challenge: SpotOn(), wantCorrect: false, wantLosers: []uuid.UUID{playerS}, wantNext: playerS},
		{name: "spot on underclaim", claimCount: 2, challenge: SpotOn(), wantCorrect: false, wantLosers: []uuid.UUID{playerS}, wantNext: playerS},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newReferenceGame(t)
			play(t, g, Increase(tt.claimCount, 4))
			setDice(g, threeFours)

			outcome := play(t, g, tt.challenge)
			require.NotNil(t, outcome)

			assert.Equal(t, 3, outcome.ActualCount)
			assert.Equal(t, tt.wantCorrect, outcome.CorrectCall)
			assert.Equal(t, tt.wantLosers, outcome.Losers)
			assert.Equal(t, threeFours, outcome.PlayerDice)
			assert.Equal(t, 9-len(tt.wantLosers), sumDice(g))
			assert.Equal(t, Phase{Kind: PhasePlayerTurn, Player: tt.wantNext}, g.Phase())
			for _, call := range g.PreviousCalls() {
				assert.Nil(t, call.LastCall)
			}
		})
	}
}

func TestConfirm_ChallengerEliminated(t *testing.T) {
	g := newReferenceGame(t)
	play(t, g, Increase(3, 4))
	setDice(g, map[uuid.UUID][]dice.Die{
		playerE: {4, 4, 4},
		playerS: {2},
		playerT: {5, 6},
	})

	outcome := play(t, g, Bullshit())

	assert.False(t, outcome.CorrectCall)
	assert.Equal(t, []uuid.UUID{playerS}, outcome.Eliminated)
	assert.Equal(t, []uuid.UUID{playerT, playerE}, g.ActivePlayers())
	// S sat at index 0, which T now occupies.
	assert.Equal(t, Phase{Kind: PhasePlayerTurn, Player: playerT}, g.Phase())
	assert.Equal(t, []PreviousCall{
		{PlayerID: playerE, DiceCount: 3},
		{PlayerID: playerT, DiceCount: 2},
	}, g.PreviousCalls())
}

func TestConfirm_SpotOnEndsGame(t *testing.T) {
	g := newReferenceGame(t)
	play(t, g, Increase(2, 6))
	setDice(g, map[uuid.UUID][]dice.Die{
		playerE: {6},
		playerS: {6, 1},
		playerT: {3},
	})

	outcome := play(t, g, SpotOn())

	assert.True(t, outcome.CorrectCall)
	assert.ElementsMatch(t, []uuid.UUID{playerT, playerE}, outcome.Eliminated)
	assert.Equal(t, Phase{Kind: PhaseGameComplete, Player: playerS}, g.Phase())
}

// transcript plays a game to completion with a fixed strategy and records
// everything observable along the way.
func transcript(t *testing.T, seed uint64) []interface{} {
	g := newTestGame(t, seed, 2, playerE, playerS, playerT)
	require.NoError(t, g.InitialiseGame())

	var events []interface{}
	for g.Phase().Kind == PhasePlayerTurn {
		open := g.PreviousCalls()[0].LastCall
		var call Call
		switch {
		case open == nil:
			call = Increase(1, 6)
		case open.Count < 3:
			call = Increase(open.Count+1, dice.Die(open.Count+1))
		case len(g.PlayerDice()[g.Phase().Player])%2 == 0:
			call = Bullshit()
		default:
			call = SpotOn()
		}
		events = append(events, g.Phase(), call, play(t, g, call), g.PlayerDice())
	}
	return append(events, g.Phase(), g.ActivePlayers())
}

func TestDeterminism(t *testing.T) {
	for _, seed := range []uint64{1, 2, 123} {
		first := transcript(t, seed)
		second := transcript(t, seed)
		assert.Equal(t, first, second)

		final := first[len(first)-2].(Phase)
		assert.Equal(t, PhaseGameComplete, final.Kind)
	}
}
