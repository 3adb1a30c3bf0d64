package tracker

import (
	"context"

	"github.com/KirkDiggler/rpg-phases/internal/combatorder"
	"github.com/KirkDiggler/rpg-phases/internal/errors"
)

// Snapshot is the persistable state of a tracker
type Snapshot struct {
	Round        int                                `json:"round"`
	Turn         *int                               `json:"turn,omitempty"`
	Segment      *int                               `json:"segment,omitempty"`
	Combatants   []combatorder.Descriptor           `json:"combatants"`
	SpeedChanges map[string]combatorder.SpeedChange `json:"speed_changes,omitempty"`
}

// Snapshot captures the tracker and its roster
func (t *Tracker) Snapshot() *Snapshot {
	roster := t.order.Combatants()
	snap := &Snapshot{
		Round:        t.round,
		Combatants:   make([]combatorder.Descriptor, len(roster)),
		SpeedChanges: t.order.SpeedChanges(),
	}
	for i, c := range roster {
		snap.Combatants[i] = c.Descriptor()
	}

	if entry := t.currentEntry(); entry != nil {
		turn, seg := *t.turn, entry.Segment
		snap.Turn = &turn
		snap.Segment = &seg
	}
	return snap
}

// Restore rebuilds a tracker from a snapshot
func Restore(ctx context.Context, snap *Snapshot, tieBreaker combatorder.TieBreaker) (*Tracker, error) {
	if snap == nil {
		return nil, errors.InvalidArgument("snapshot is required")
	}

	order, err := combatorder.New(&combatorder.Config{
		TieBreaker:   tieBreaker,
		Combatants:   snap.Combatants,
		SpeedChanges: snap.SpeedChanges,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to restore combat order")
	}

	t, err := New(&Config{Order: order})
	if err != nil {
		return nil, err
	}
	if snap.Round == 0 {
		return t, nil
	}

	t.round = snap.Round
	if snap.Turn != nil {
		turn := *snap.Turn
		t.turn = &turn
	}
	if err := t.rebuild(ctx, snap.Segment); err != nil {
		return nil, err
	}
	return t, nil
}
