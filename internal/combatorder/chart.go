package combatorder

import "slices"

// PhaseChart maps each segment of a round to the combatants acting in it,
// ordered by Dexterity then Initiative.
type PhaseChart struct {
	segments [SegmentsPerTurn + 1][]*Combatant
}

// ChartInput controls a phase chart calculation
type ChartInput struct {
	// CurrentSegment is the segment being acted on, nil between turns. A
	// folded Speed change keeps the actor's old phase in this segment.
	CurrentSegment *int
	// SpdChanged forces a rebuild that folds pending Speed changes in
	SpdChanged bool
}

// Segment returns the combatants acting in segment, in order.
// Out of range segments are empty.
func (p *PhaseChart) Segment(segment int) []*Combatant {
	if segment < 1 || segment > SegmentsPerTurn {
		return nil
	}
	return slices.Clone(p.segments[segment])
}

// Len returns the number of scheduled (combatant, segment) pairs
func (p *PhaseChart) Len() int {
	n := 0
	for seg := 1; seg <= SegmentsPerTurn; seg++ {
		n += len(p.segments[seg])
	}
	return n
}

// add appends c to segment and returns the entrant placed before it, if any
func (p *PhaseChart) add(segment int, c *Combatant) *Combatant {
	var prev *Combatant
	if n := len(p.segments[segment]); n > 0 {
		prev = p.segments[segment][n-1]
	}
	p.segments[segment] = append(p.segments[segment], c)
	return prev
}

// sort reorders every segment in place
func (p *PhaseChart) sort() {
	for seg := 1; seg <= SegmentsPerTurn; seg++ {
		slices.SortStableFunc(p.segments[seg], compareCombatants)
	}
}

// buildPhaseChart places every combatant of the roster into the segments it
// acts in this round and records Dexterity ties between neighbours.
//
// When a Speed change is folded in with a segment in progress, the combatant
// drops its earlier old phases, keeps an old phase in the segment in progress
// and only picks up new phases that are after that segment and not earlier
// than the next phase it would have had under the old schedule. Committed
// changes keep applying the same cut until the round ends. A change that is
// recorded but not folded in yet leaves the actor on its old schedule.
func buildPhaseChart(roster []*Combatant, in ChartInput, changes map[string]*SpeedChange, ties *tieSet) *PhaseChart {
	sorted := slices.Clone(roster)
	slices.SortStableFunc(sorted, compareCombatants)

	chart := &PhaseChart{}
	for _, c := range sorted {
		phases := c.Phases
		switch change := changes[c.ActorID]; {
		case change == nil:
		case change.Committed:
			phases = scheduleAfterCut(c.Phases, change.Old, change.AppliedAt)
		case in.SpdChanged:
			phases = scheduleAfterCut(change.New, change.Old, in.CurrentSegment)
			change.AppliedAt = cloneSegment(in.CurrentSegment)
			change.Folded = true
		default:
			// Not folded yet, the actor keeps the schedule it had
			phases = change.Old
		}

		for _, seg := range phases {
			if prev := chart.add(seg, c); prev != nil && prev.Dexterity == c.Dexterity {
				ties.add(prev)
				ties.add(c)
			}
		}
	}

	return chart
}

// scheduleAfterCut returns the segments an actor acts in when its schedule
// switches from old to phases with segment cut in progress. Old phases before
// the cut are gone, an old phase at the cut stays, and new phases start after
// the cut but no earlier than the next old phase. A nil cut means the switch
// happened between rounds.
func scheduleAfterCut(phases, old []int, cut *int) []int {
	if cut == nil {
		return phases
	}

	nextOldPhase := 0
	for _, seg := range old {
		if seg > *cut {
			nextOldPhase = seg
			break
		}
	}

	var out []int
	if slices.Contains(old, *cut) {
		out = append(out, *cut)
	}
	for _, seg := range phases {
		if seg > *cut && seg >= nextOldPhase {
			out = append(out, seg)
		}
	}
	return out
}

func cloneSegment(seg *int) *int {
	if seg == nil {
		return nil
	}
	v := *seg
	return &v
}
