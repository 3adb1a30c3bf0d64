package combatorder

import "github.com/KirkDiggler/rpg-phases/internal/errors"

// SegmentsPerTurn is the number of segments in a round
const SegmentsPerTurn = 12

// speedChart lists the segments each Speed acts in, indexed by Speed
var speedChart = [SegmentsPerTurn + 1][]int{
	0:  {},
	1:  {7},
	2:  {6, 12},
	3:  {4, 8, 12},
	4:  {3, 6, 9, 12},
	5:  {3, 5, 8, 10, 12},
	6:  {2, 4, 6, 8, 10, 12},
	7:  {2, 4, 6, 7, 9, 11, 12},
	8:  {2, 3, 5, 6, 8, 9, 11, 12},
	9:  {2, 3, 4, 6, 7, 8, 10, 11, 12},
	10: {2, 3, 4, 5, 6, 8, 9, 10, 11, 12},
	11: {2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12},
	12: {1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12},
}

// PhasesForSpeed returns the segments a combatant with the given Speed acts
// in. Speeds above 12 act every segment.
func PhasesForSpeed(speed int) ([]int, error) {
	if speed < 0 {
		return nil, errors.InvalidArgumentf("speed must not be negative, got %d", speed)
	}
	if speed > SegmentsPerTurn {
		speed = SegmentsPerTurn
	}

	row := speedChart[speed]
	out := make([]int, len(row))
	copy(out, row)
	return out, nil
}
