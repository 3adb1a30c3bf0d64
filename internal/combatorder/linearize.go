package combatorder

// TurnEntry is one turn of a linearized round
type TurnEntry struct {
	Combatant *Combatant
	Segment   int
	Dexterity int
}

// StartSegment returns the first segment played in round. Round 1 only has
// segment 12.
func StartSegment(round int) int {
	if round == 1 {
		return SegmentsPerTurn
	}
	return 1
}

// Linearize flattens chart into the turn sequence for round. The chart is
// not modified.
func Linearize(chart *PhaseChart, round int) []TurnEntry {
	if chart == nil {
		return nil
	}

	turns := make([]TurnEntry, 0, chart.Len())
	for seg := StartSegment(round); seg <= SegmentsPerTurn; seg++ {
		for _, c := range chart.segments[seg] {
			turns = append(turns, TurnEntry{
				Combatant: c,
				Segment:   seg,
				Dexterity: c.Dexterity,
			})
		}
	}
	return turns
}
