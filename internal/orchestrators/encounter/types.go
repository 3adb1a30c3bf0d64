package encounter

import (
	"github.com/KirkDiggler/rpg-phases/internal/tracker"
)

// CombatantInput describes a combatant joining an encounter. Phases are
// looked up from the Speed Chart when left empty.
type CombatantInput struct {
	ID         string
	ActorID    string
	Dexterity  int
	Speed      int
	Phases     []int
	Initiative *int
}

// Turn is one entry of the linearized turn order
type Turn struct {
	CombatantID string
	ActorID     string
	Segment     int
	Dexterity   int
	Initiative  *int
}

// TurnOrder is the view of an encounter returned by every operation
type TurnOrder struct {
	EncounterID string
	Round       int
	Current     *tracker.Current
	Turns       []Turn
	// State of the underlying combat order
	State string
}

// StartEncounterInput defines the request for starting an encounter
type StartEncounterInput struct {
	Name       string
	Combatants []CombatantInput
}

// StartEncounterOutput defines the response for starting an encounter
type StartEncounterOutput struct {
	EncounterID string
	Order       *TurnOrder
}

// AddCombatantInput defines the request for adding a combatant
type AddCombatantInput struct {
	EncounterID string
	Combatant   CombatantInput
}

// AddCombatantOutput defines the response for adding a combatant
type AddCombatantOutput struct {
	Order *TurnOrder
}

// RemoveCombatantInput defines the request for removing a combatant
type RemoveCombatantInput struct {
	EncounterID string
	CombatantID string
}

// RemoveCombatantOutput defines the response for removing a combatant
type RemoveCombatantOutput struct {
	Order *TurnOrder
}

// ChangeDexterityInput defines the request for changing Dexterity
type ChangeDexterityInput struct {
	EncounterID string
	CombatantID string
	Dexterity   int
}

// ChangeDexterityOutput defines the response for changing Dexterity
type ChangeDexterityOutput struct {
	Order *TurnOrder
}

// ChangeSpeedInput defines the request for changing Speed
type ChangeSpeedInput struct {
	EncounterID string
	CombatantID string
	Speed       int
}

// ChangeSpeedOutput defines the response for changing Speed
type ChangeSpeedOutput struct {
	Order *TurnOrder
}

// NextTurnInput defines the request for advancing a turn
type NextTurnInput struct {
	EncounterID string
}

// NextTurnOutput defines the response for advancing a turn
type NextTurnOutput struct {
	Order *TurnOrder
}

// PreviousTurnInput defines the request for stepping back a turn
type PreviousTurnInput struct {
	EncounterID string
}

// PreviousTurnOutput defines the response for stepping back a turn
type PreviousTurnOutput struct {
	Order *TurnOrder
}

// MoveToPhaseInput defines the request for jumping to an actor's phase
type MoveToPhaseInput struct {
	EncounterID string
	Segment     int
	ActorID     string
}

// MoveToPhaseOutput defines the response for jumping to an actor's phase
type MoveToPhaseOutput struct {
	Order *TurnOrder
}

// GetTurnOrderInput defines the request for reading the turn order
type GetTurnOrderInput struct {
	EncounterID string
}

// GetTurnOrderOutput defines the response for reading the turn order
type GetTurnOrderOutput struct {
	Order *TurnOrder
}

// EndEncounterInput defines the request for ending an encounter
type EndEncounterInput struct {
	EncounterID string
}

// EndEncounterOutput defines the response for ending an encounter
type EndEncounterOutput struct {
	RollsDeleted int32
}
