// Package tracker walks an encounter through its turns. It keeps the round
// number and the current turn, rebuilding the linearized turn sequence from
// the combat order whenever something changes.
package tracker

import (
	"context"
	"log/slog"
	"slices"

	"github.com/KirkDiggler/rpg-phases/internal/combatorder"
	"github.com/KirkDiggler/rpg-phases/internal/errors"
)

// Current describes the turn in progress
type Current struct {
	Round       int
	Turn        int
	CombatantID string
	ActorID     string
	Segment     int
	Dexterity   int
}

// Config holds the dependencies for a Tracker
type Config struct {
	Order *combatorder.CombatOrder
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Order == nil {
		vb.RequiredField("Order")
	}

	return vb.Build()
}

// Tracker owns the turn position of one encounter. Like the combat order it
// wraps, it is not safe for concurrent use.
type Tracker struct {
	order *combatorder.CombatOrder
	round int
	turn  *int
	turns []combatorder.TurnEntry
}

// New creates a tracker that has not started yet
func New(cfg *Config) (*Tracker, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Tracker{order: cfg.Order}, nil
}

// Start begins round 1
func (t *Tracker) Start(ctx context.Context) error {
	if t.Started() {
		return errors.FailedPrecondition("combat already started")
	}

	t.round = 1
	t.turn = nil
	return t.rebuild(ctx, nil)
}

// Started reports whether Start has been called
func (t *Tracker) Started() bool {
	return t.round > 0
}

// Round returns the current round, 0 before Start
func (t *Tracker) Round() int {
	return t.round
}

// Order returns the underlying combat order
func (t *Tracker) Order() *combatorder.CombatOrder {
	return t.order
}

// Turns returns the linearized turns of the current round
func (t *Tracker) Turns() []combatorder.TurnEntry {
	return slices.Clone(t.turns)
}

// Current returns the turn in progress, nil when nobody can act
func (t *Tracker) Current() *Current {
	entry := t.currentEntry()
	if entry == nil {
		return nil
	}

	return &Current{
		Round:       t.round,
		Turn:        *t.turn,
		CombatantID: entry.Combatant.ID,
		ActorID:     entry.Combatant.ActorID,
		Segment:     entry.Segment,
		Dexterity:   entry.Dexterity,
	}
}

// Rebuild recalculates the turn sequence around the current turn
func (t *Tracker) Rebuild(ctx context.Context) error {
	if !t.Started() {
		return nil
	}

	var segment *int
	if entry := t.currentEntry(); entry != nil {
		seg := entry.Segment
		segment = &seg
	}
	return t.rebuild(ctx, segment)
}

// NextTurn advances one turn, moving to the next round after the last turn
func (t *Tracker) NextTurn(ctx context.Context) error {
	if !t.Started() {
		return errors.FailedPrecondition("combat has not started")
	}

	if t.turn != nil && *t.turn+1 < len(t.turns) {
		next := *t.turn + 1
		t.turn = &next
		return t.Rebuild(ctx)
	}

	t.round++
	t.turn = nil
	t.order.StartRound()

	slog.Debug("Round advanced",
		"round", t.round,
	)

	return t.rebuild(ctx, nil)
}

// PreviousTurn steps back one turn, into the previous round if needed
func (t *Tracker) PreviousTurn(ctx context.Context) error {
	if !t.Started() {
		return errors.FailedPrecondition("combat has not started")
	}

	if t.turn != nil && *t.turn > 0 {
		prev := *t.turn - 1
		t.turn = &prev
		return t.Rebuild(ctx)
	}

	if t.round <= 1 {
		return errors.FailedPrecondition("already at the first turn of combat")
	}

	t.round--
	t.turn = nil
	if err := t.rebuild(ctx, nil); err != nil {
		return err
	}
	if len(t.turns) > 0 {
		last := len(t.turns) - 1
		t.turn = &last
	}
	return nil
}

// MoveToPhase steps through turns until the actor's turn in segment is
// current. It steps backwards when the target is earlier in this round and
// forwards otherwise.
func (t *Tracker) MoveToPhase(ctx context.Context, segment int, actorID string) error {
	if t.currentEntry() == nil {
		return errors.FailedPrecondition("no turn in progress")
	}

	target := slices.IndexFunc(t.turns, func(e combatorder.TurnEntry) bool {
		return e.Segment == segment && e.Combatant.ActorID == actorID
	})
	forward := target < 0 || target > *t.turn

	maxSteps := 2 * (len(t.turns) + 1)
	for step := 0; step < maxSteps && !t.isAt(segment, actorID); step++ {
		var err error
		if forward {
			err = t.NextTurn(ctx)
		} else {
			err = t.PreviousTurn(ctx)
		}
		if err != nil {
			return errors.Wrap(err, "failed to move to phase")
		}
	}

	if !t.isAt(segment, actorID) {
		cur := t.Current()
		landed := "none"
		if cur != nil {
			landed = cur.ActorID
		}
		return errors.FailedPreconditionf("could not reach segment %d for actor %s", segment, actorID).
			WithMeta("landed_actor_id", landed)
	}
	return nil
}

// AddCombatant adds a combatant and rebuilds the turn sequence
func (t *Tracker) AddCombatant(ctx context.Context, d combatorder.Descriptor) error {
	if err := t.order.AddCombatant(d); err != nil {
		return err
	}
	return t.Rebuild(ctx)
}

// RemoveCombatant removes a combatant and rebuilds the turn sequence
func (t *Tracker) RemoveCombatant(ctx context.Context, id string) error {
	if err := t.order.RemoveCombatant(id); err != nil {
		return err
	}
	return t.Rebuild(ctx)
}

// ChangeDexterity updates a combatant's Dexterity and re-sorts the turns
func (t *Tracker) ChangeDexterity(ctx context.Context, id string, dexterity int) error {
	if err := t.order.ChangeDexterity(id, dexterity); err != nil {
		return err
	}
	return t.Rebuild(ctx)
}

// ChangeSpeed records a new Speed for the combatant's actor. It applies from
// the next unresolved segment.
func (t *Tracker) ChangeSpeed(ctx context.Context, id string, speed int) error {
	if err := t.order.ChangeSpeed(id, speed, nil); err != nil {
		return err
	}
	return t.Rebuild(ctx)
}

// UpdateInitiative sets a combatant's Initiative and rebuilds the turns
func (t *Tracker) UpdateInitiative(ctx context.Context, id string, initiative int) error {
	if err := t.order.UpdateInitiative(id, initiative); err != nil {
		return err
	}
	return t.Rebuild(ctx)
}

func (t *Tracker) rebuild(ctx context.Context, segment *int) error {
	var anchorID string
	anchorSegment := 0
	if entry := t.currentEntry(); entry != nil {
		anchorID = entry.Combatant.ID
		anchorSegment = entry.Segment
	}

	err := t.order.CalculatePhaseOrder(ctx, combatorder.ChartInput{
		CurrentSegment: segment,
		SpdChanged:     t.order.HasPendingSpeedChanges(),
	})
	if err != nil {
		return errors.Wrap(err, "failed to calculate phase order")
	}
	t.order.ConsumeDexterityChanges()

	chart, err := t.order.PhaseChart()
	if err != nil {
		return err
	}
	t.turns = combatorder.Linearize(chart, t.round)

	// Follow the current turn if it survived, otherwise clamp
	if anchorID != "" {
		idx := slices.IndexFunc(t.turns, func(e combatorder.TurnEntry) bool {
			return e.Combatant.ID == anchorID && e.Segment == anchorSegment
		})
		if idx >= 0 {
			t.turn = &idx
			return nil
		}
	}
	t.clampTurn()
	return nil
}

func (t *Tracker) clampTurn() {
	switch {
	case len(t.turns) == 0:
		t.turn = nil
	case t.turn == nil:
		first := 0
		t.turn = &first
	case *t.turn > len(t.turns)-1:
		last := len(t.turns) - 1
		t.turn = &last
	}
}

func (t *Tracker) currentEntry() *combatorder.TurnEntry {
	if t.turn == nil || *t.turn < 0 || *t.turn >= len(t.turns) {
		return nil
	}
	return &t.turns[*t.turn]
}

func (t *Tracker) isAt(segment int, actorID string) bool {
	entry := t.currentEntry()
	return entry != nil && entry.Segment == segment && entry.Combatant.ActorID == actorID
}
