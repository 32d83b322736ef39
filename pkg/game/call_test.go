package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCall_JSON(t *testing.T) {
	b, err := json.Marshal([]Call{Increase(3, 4), SpotOn()})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"kind":"increase","count":3,"value":4},{"kind":"spot_on"}]`, string(b))

	var decoded []Call
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, []Call{Increase(3, 4), SpotOn()}, decoded)

	var bad Call
	err = json.Unmarshal([]byte(`{"kind":"raise"}`), &bad)
	assert.Error(t, err)
}

func TestCall_String(t *testing.T) {
	assert.Equal(t, "3 x 4", Increase(3, 4).String())
	assert.Equal(t, "bullshit", Bullshit().String())
	assert.True(t, SpotOn().IsChallenge())
	assert.False(t, Increase(1, 1).IsChallenge())
}

func TestPhaseKind_Text(t *testing.T) {
	var kind PhaseKind
	require.NoError(t, kind.UnmarshalText([]byte("game_complete")))
	assert.Equal(t, PhaseGameComplete, kind)
	assert.Error(t, kind.UnmarshalText([]byte("lobby")))
}
