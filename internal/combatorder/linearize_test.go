package combatorder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-phases/internal/combatorder"
)

func turnIDs(turns []combatorder.TurnEntry) []string {
	ids := make([]string, len(turns))
	for i, turn := range turns {
		ids[i] = turn.Combatant.ID
	}
	return ids
}

func turnSegments(turns []combatorder.TurnEntry) []int {
	segs := make([]int, len(turns))
	for i, turn := range turns {
		segs[i] = turn.Segment
	}
	return segs
}

func newLinearizeOrder(t *testing.T) *combatorder.CombatOrder {
	t.Helper()
	order, err := combatorder.New(&combatorder.Config{
		TieBreaker: noTies(t),
		Combatants: []combatorder.Descriptor{
			{ID: "fast", ActorID: "fast", Dexterity: 20, Phases: []int{3, 6, 9, 12}},
			{ID: "slow", ActorID: "slow", Dexterity: 11, Phases: []int{6, 12}},
			{ID: "idle", ActorID: "idle", Dexterity: 30, Phases: nil},
		},
	})
	require.NoError(t, err)
	return order
}

func TestLinearize_RoundOne(t *testing.T) {
	order := newLinearizeOrder(t)
	chart := order.CalculatePhaseChart(combatorder.ChartInput{})

	turns := combatorder.Linearize(chart, 1)

	assert.Equal(t, []string{"fast", "slow"}, turnIDs(turns))
	assert.Equal(t, []int{12, 12}, turnSegments(turns))
}

func TestLinearize_LaterRounds(t *testing.T) {
	order := newLinearizeOrder(t)
	chart := order.CalculatePhaseChart(combatorder.ChartInput{})

	turns := combatorder.Linearize(chart, 2)

	assert.Equal(t, []string{"fast", "fast", "slow", "fast", "fast", "slow"}, turnIDs(turns))
	assert.Equal(t, []int{3, 6, 6, 9, 12, 12}, turnSegments(turns))
	assert.Equal(t, 20, turns[0].Dexterity)
	assert.Len(t, turns, chart.Len())

	// Same input, same output, chart untouched
	assert.Equal(t, turns, combatorder.Linearize(chart, 2))
	assert.Len(t, chart.Segment(6), 2)
}

func TestLinearize_NilChart(t *testing.T) {
	assert.Empty(t, combatorder.Linearize(nil, 2))
}

func TestStartSegment(t *testing.T) {
	assert.Equal(t, 12, combatorder.StartSegment(1))
	assert.Equal(t, 1, combatorder.StartSegment(2))
	assert.Equal(t, 1, combatorder.StartSegment(7))
}
