package dice

import (
	"github.com/KirkDiggler/rpg-phases/internal/combatorder"
	dicesession "github.com/KirkDiggler/rpg-phases/internal/repositories/dice_session"
)

// RollInitiativeInput defines the request for rolling tie-break Initiative
type RollInitiativeInput struct {
	EncounterID string
	Combatants  []*combatorder.Combatant
}

// RollInitiativeOutput defines the response for rolling tie-break Initiative
type RollInitiativeOutput struct {
	// Initiative keyed by combatant ID
	Initiative map[string]int
	Rolls      []*dicesession.DiceRoll
	// SessionRolls is how many rolls the encounter's log holds now
	SessionRolls int
}

// GetRollSessionInput defines the request for getting an encounter's rolls
type GetRollSessionInput struct {
	EncounterID string
}

// GetRollSessionOutput defines the response for getting an encounter's rolls
type GetRollSessionOutput struct {
	Session *dicesession.DiceSession
}

// ClearRollSessionInput defines the request for clearing an encounter's rolls
type ClearRollSessionInput struct {
	EncounterID string
}

// ClearRollSessionOutput defines the response for clearing an encounter's rolls
type ClearRollSessionOutput struct {
	RollsDeleted int32
}
