package combatorder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-phases/internal/combatorder"
	"github.com/KirkDiggler/rpg-phases/internal/errors"
)

func TestPhasesForSpeed(t *testing.T) {
	testCases := []struct {
		speed    int
		expected []int
	}{
		{0, []int{}},
		{1, []int{7}},
		{2, []int{6, 12}},
		{3, []int{4, 8, 12}},
		{4, []int{3, 6, 9, 12}},
		{5, []int{3, 5, 8, 10, 12}},
		{6, []int{2, 4, 6, 8, 10, 12}},
		{7, []int{2, 4, 6, 7, 9, 11, 12}},
		{8, []int{2, 3, 5, 6, 8, 9, 11, 12}},
		{9, []int{2, 3, 4, 6, 7, 8, 10, 11, 12}},
		{10, []int{2, 3, 4, 5, 6, 8, 9, 10, 11, 12}},
		{11, []int{2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}},
		{12, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}},
		{15, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}},
	}

	for _, tc := range testCases {
		phases, err := combatorder.PhasesForSpeed(tc.speed)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, phases, "speed %d", tc.speed)
		assert.Len(t, phases, min(tc.speed, combatorder.SegmentsPerTurn))
	}
}

func TestPhasesForSpeed_ReturnsCopy(t *testing.T) {
	phases, err := combatorder.PhasesForSpeed(3)
	require.NoError(t, err)
	phases[0] = 1

	again, err := combatorder.PhasesForSpeed(3)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 8, 12}, again)
}

func TestPhasesForSpeed_Negative(t *testing.T) {
	_, err := combatorder.PhasesForSpeed(-1)
	assert.True(t, errors.IsInvalidArgument(err))
}
