package combatorder

import (
	"slices"

	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/rpg-phases/internal/errors"
)

// EntityType is reported by Combatant.GetType
const EntityType = "combatant"

// Descriptor describes a combatant joining the encounter
type Descriptor struct {
	ID         string `json:"id"`
	ActorID    string `json:"actor_id"`
	Dexterity  int    `json:"dexterity"`
	Initiative *int   `json:"initiative,omitempty"`
	Phases     []int  `json:"phases"`
}

// Validate checks the descriptor before it becomes a snapshot
func (d *Descriptor) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("ID", d.ID, vb)
	errors.ValidateRequired("ActorID", d.ActorID, vb)
	validatePhases(d.Phases, vb)

	return vb.Build()
}

// Combatant is the engine's view of one participant. ID is unique per
// encounter; ActorID names the character sheet it was created from, so two
// combatants may share an ActorID.
type Combatant struct {
	ID        string
	ActorID   string
	Dexterity int
	// Initiative is nil until a tie-break assigns it. It only orders
	// combatants with equal Dexterity.
	Initiative *int
	Phases     []int
}

var _ core.Entity = (*Combatant)(nil)

func newCombatant(d Descriptor) *Combatant {
	c := &Combatant{
		ID:        d.ID,
		ActorID:   d.ActorID,
		Dexterity: d.Dexterity,
		Phases:    normalizePhases(d.Phases),
	}
	if d.Initiative != nil {
		c.SetInitiative(*d.Initiative)
	}
	return c
}

// GetID returns the combatant ID
func (c *Combatant) GetID() string {
	return c.ID
}

// GetType returns EntityType
func (c *Combatant) GetType() string {
	return EntityType
}

// SetInitiative stores a copy of v
func (c *Combatant) SetInitiative(v int) {
	c.Initiative = &v
}

// Descriptor returns a descriptor that recreates the combatant
func (c *Combatant) Descriptor() Descriptor {
	d := Descriptor{
		ID:        c.ID,
		ActorID:   c.ActorID,
		Dexterity: c.Dexterity,
		Phases:    slices.Clone(c.Phases),
	}
	if c.Initiative != nil {
		v := *c.Initiative
		d.Initiative = &v
	}
	return d
}

// ActsIn reports whether segment is one of the combatant's phases
func (c *Combatant) ActsIn(segment int) bool {
	return slices.Contains(c.Phases, segment)
}

// compareCombatants orders by Dexterity then Initiative, both descending.
// A nil Initiative sorts below any value.
func compareCombatants(a, b *Combatant) int {
	if a.Dexterity != b.Dexterity {
		return b.Dexterity - a.Dexterity
	}
	switch {
	case a.Initiative == nil && b.Initiative == nil:
		return 0
	case a.Initiative == nil:
		return 1
	case b.Initiative == nil:
		return -1
	}
	return *b.Initiative - *a.Initiative
}

func validatePhases(phases []int, vb *errors.ValidationBuilder) {
	for _, p := range phases {
		if p < 1 || p > SegmentsPerTurn {
			vb.Fieldf("Phases", "segment %d must be between 1 and %d", p, SegmentsPerTurn)
		}
	}
}

// normalizePhases returns a sorted copy without duplicates
func normalizePhases(phases []int) []int {
	out := slices.Clone(phases)
	slices.Sort(out)
	return slices.Compact(out)
}
