// Package combatorder computes Hero System segmented turn order.
//
// A round has twelve segments. Each combatant acts in the segments its Speed
// gives it and, within a segment, combatants go in Dexterity order with
// Initiative breaking ties. CombatOrder owns the roster, builds the phase
// chart, drives tie breaking and defers Speed changes so that segments that
// already happened are never rewritten.
//
// CombatOrder is not safe for concurrent use; an encounter has one owner.
package combatorder

import (
	"context"
	"slices"

	"github.com/KirkDiggler/rpg-phases/internal/errors"
)

// State is the coarse state of a CombatOrder
type State int

// States of a CombatOrder
const (
	StateUninitialized State = iota
	StateSettled
	StatePendingSpeedChange
	StateAwaitingTieBreak
)

// String returns the state name
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateSettled:
		return "settled"
	case StatePendingSpeedChange:
		return "pending_speed_change"
	case StateAwaitingTieBreak:
		return "awaiting_tie_break"
	default:
		return "unknown"
	}
}

// SpeedChange is a Speed change recorded for an actor. It is pending until
// committed to the roster. A change committed in the middle of a round is
// kept until StartRound so later rebuilds in that round still skip the
// segments it cut.
type SpeedChange struct {
	Speed int   `json:"speed"`
	Old   []int `json:"old"`
	New   []int `json:"new"`

	// AppliedAt is the segment in progress when a chart first used the change
	AppliedAt *int `json:"applied_at,omitempty"`
	// Folded is set once a chart has been built from the change
	Folded bool `json:"folded,omitempty"`
	// Committed is set once the roster carries the new phases
	Committed bool `json:"committed,omitempty"`
}

func (c SpeedChange) clone() *SpeedChange {
	c.Old = slices.Clone(c.Old)
	c.New = slices.Clone(c.New)
	c.AppliedAt = cloneSegment(c.AppliedAt)
	return &c
}

// Config holds the dependencies for a CombatOrder
type Config struct {
	TieBreaker TieBreaker

	// Combatants seeds the roster
	Combatants []Descriptor

	// SpeedChanges restores recorded changes keyed by actor ID
	SpeedChanges map[string]SpeedChange
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.TieBreaker == nil {
		vb.RequiredField("TieBreaker")
	}
	for actorID, change := range c.SpeedChanges {
		errors.ValidateRequired("SpeedChanges.ActorID", actorID, vb)
		validatePhases(change.Old, vb)
		validatePhases(change.New, vb)
	}

	return vb.Build()
}

// CombatOrder is the combat order engine for one encounter
type CombatOrder struct {
	tieBreaker TieBreaker

	roster []*Combatant
	byID   map[string]*Combatant

	changes map[string]*SpeedChange
	ties    *tieSet

	chart      *PhaseChart
	dirty      bool
	dexChanged bool
}

// New creates a CombatOrder with the provided dependencies
func New(cfg *Config) (*CombatOrder, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	o := &CombatOrder{
		tieBreaker: cfg.TieBreaker,
		byID:       make(map[string]*Combatant),
		changes:    make(map[string]*SpeedChange),
		ties:       newTieSet(),
		dirty:      true,
	}

	for _, d := range cfg.Combatants {
		if err := o.AddCombatant(d); err != nil {
			return nil, errors.Wrapf(err, "failed to add combatant %s", d.ID)
		}
	}
	for actorID, change := range cfg.SpeedChanges {
		restored := change.clone()
		restored.Old = normalizePhases(change.Old)
		restored.New = normalizePhases(change.New)
		o.changes[actorID] = restored
	}

	return o, nil
}

// AddCombatant adds a combatant to the roster
func (o *CombatOrder) AddCombatant(d Descriptor) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if _, exists := o.byID[d.ID]; exists {
		return errors.AlreadyExistsf("combatant %s already exists", d.ID)
	}

	c := newCombatant(d)
	o.roster = append(o.roster, c)
	o.byID[c.ID] = c
	o.dirty = true
	return nil
}

// RemoveCombatant removes a combatant from the roster
func (o *CombatOrder) RemoveCombatant(id string) error {
	c, err := o.Combatant(id)
	if err != nil {
		return err
	}

	o.roster = slices.DeleteFunc(o.roster, func(rc *Combatant) bool { return rc.ID == id })
	delete(o.byID, id)
	o.ties.remove(id)

	if !o.hasActor(c.ActorID) {
		delete(o.changes, c.ActorID)
	}

	o.dirty = true
	return nil
}

// UpdateInitiative sets the Initiative of a combatant
func (o *CombatOrder) UpdateInitiative(id string, value int) error {
	c, err := o.Combatant(id)
	if err != nil {
		return err
	}

	c.SetInitiative(value)
	o.dirty = true
	return nil
}

// ChangeDexterity sets the Dexterity of a combatant
func (o *CombatOrder) ChangeDexterity(id string, dexterity int) error {
	c, err := o.Combatant(id)
	if err != nil {
		return err
	}

	c.Dexterity = dexterity
	o.dirty = true
	o.dexChanged = true
	return nil
}

// ChangeSpeed records a Speed change for the combatant's actor. The roster
// keeps the old phases until a chart calculated with SpdChanged folds the
// change in. A nil phases slice is looked up from the Speed Chart.
func (o *CombatOrder) ChangeSpeed(id string, speed int, phases []int) error {
	c, err := o.Combatant(id)
	if err != nil {
		return err
	}

	if phases == nil {
		if phases, err = PhasesForSpeed(speed); err != nil {
			return err
		}
	}
	vb := errors.NewValidationBuilder()
	validatePhases(phases, vb)
	if err := vb.Build(); err != nil {
		return err
	}

	old := slices.Clone(c.Phases)
	if existing, ok := o.changes[c.ActorID]; ok {
		if existing.Committed {
			// Start from what the actor has left this round so the earlier
			// cut still holds until this change is folded in
			old = scheduleAfterCut(existing.New, existing.Old, existing.AppliedAt)
		} else {
			old = existing.Old
		}
	}

	o.changes[c.ActorID] = &SpeedChange{
		Speed: speed,
		Old:   old,
		New:   normalizePhases(phases),
	}
	return nil
}

// CalculatePhaseChart returns the phase chart for the current round. The
// cached chart is returned unchanged when nothing changed since it was built
// and SpdChanged is false.
func (o *CombatOrder) CalculatePhaseChart(in ChartInput) *PhaseChart {
	if o.chart != nil && !o.dirty && !in.SpdChanged {
		return o.chart
	}

	o.ties.clear()
	o.chart = buildPhaseChart(o.roster, in, o.changes, o.ties)
	o.dirty = false

	// Ties hold the pending changes back until ResolveTies succeeds
	if in.SpdChanged && o.ties.len() == 0 {
		o.commitFolded()
	}

	return o.chart
}

// CalculatePhaseOrder calculates the chart, resolves new ties and re-sorts
// each segment so freshly rolled Initiative takes effect. Read the result
// with PhaseChart.
func (o *CombatOrder) CalculatePhaseOrder(ctx context.Context, in ChartInput) error {
	chart := o.CalculatePhaseChart(in)

	if err := o.ResolveTies(ctx); err != nil {
		return err
	}

	chart.sort()
	return nil
}

// PhaseChart returns the last calculated chart
func (o *CombatOrder) PhaseChart() (*PhaseChart, error) {
	if o.chart == nil {
		return nil, errors.FailedPrecondition("phase chart has not been calculated")
	}
	return o.chart, nil
}

// Combatant returns the combatant with the given ID
func (o *CombatOrder) Combatant(id string) (*Combatant, error) {
	c, ok := o.byID[id]
	if !ok {
		return nil, errors.NotFoundf("combatant %s not found", id).WithMeta("combatant_id", id)
	}
	return c, nil
}

// Combatants returns the roster in the order combatants joined
func (o *CombatOrder) Combatants() []*Combatant {
	return slices.Clone(o.roster)
}

// Ties returns the combatants currently known to be tied
func (o *CombatOrder) Ties() []*Combatant {
	return slices.Clone(o.ties.order)
}

// HasPendingSpeedChanges reports whether any Speed change is uncommitted
func (o *CombatOrder) HasPendingSpeedChanges() bool {
	for _, change := range o.changes {
		if !change.Committed {
			return true
		}
	}
	return false
}

// SpeedChanges returns a copy of every recorded Speed change keyed by actor
// ID, committed ones included
func (o *CombatOrder) SpeedChanges() map[string]SpeedChange {
	out := make(map[string]SpeedChange, len(o.changes))
	for actorID, change := range o.changes {
		out[actorID] = *change.clone()
	}
	return out
}

// StartRound forgets Speed changes committed during the previous round and
// bases changes still pending on the full roster schedule. Call it when the
// round number advances.
func (o *CombatOrder) StartRound() {
	for actorID, change := range o.changes {
		if change.Committed {
			delete(o.changes, actorID)
			o.dirty = true
			continue
		}

		i := slices.IndexFunc(o.roster, func(c *Combatant) bool { return c.ActorID == actorID })
		if i < 0 {
			continue
		}
		change.Old = slices.Clone(o.roster[i].Phases)
		change.AppliedAt = nil
		change.Folded = false
		o.dirty = true
	}
}

// HasDexterityChanges reports whether Dexterity changed since the flag was
// last consumed
func (o *CombatOrder) HasDexterityChanges() bool {
	return o.dexChanged
}

// ConsumeDexterityChanges returns and resets the Dexterity changed flag
func (o *CombatOrder) ConsumeDexterityChanges() bool {
	changed := o.dexChanged
	o.dexChanged = false
	return changed
}

// State returns the current state of the engine
func (o *CombatOrder) State() State {
	switch {
	case o.chart == nil:
		return StateUninitialized
	case o.ties.len() > 0:
		return StateAwaitingTieBreak
	case o.HasPendingSpeedChanges():
		return StatePendingSpeedChange
	default:
		return StateSettled
	}
}

// commitFolded moves every Speed change that a chart has already used onto
// the roster
func (o *CombatOrder) commitFolded() {
	for actorID, change := range o.changes {
		if !change.Folded || change.Committed {
			continue
		}
		for _, c := range o.roster {
			if c.ActorID == actorID {
				c.Phases = slices.Clone(change.New)
			}
		}
		if change.AppliedAt == nil {
			delete(o.changes, actorID)
			continue
		}
		change.Committed = true
	}
}

func (o *CombatOrder) hasActor(actorID string) bool {
	return slices.ContainsFunc(o.roster, func(c *Combatant) bool { return c.ActorID == actorID })
}
