package testutils

import (
	"sync"

	"github.com/KirkDiggler/rpg-phases/internal/combatorder"
)

// Fixture combatant IDs
const (
	HeroID     = "hero"
	SidekickID = "sidekick"
	VillainID  = "villain"

	// HeroActorID owns the hero combatant
	HeroActorID = "actor-hero"
)

// CreateTestCombatant builds a descriptor whose phases come from the Speed
// Chart. It panics on a negative speed.
func CreateTestCombatant(id, actorID string, dexterity, speed int) combatorder.Descriptor {
	phases, err := combatorder.PhasesForSpeed(speed)
	if err != nil {
		panic(err)
	}

	return combatorder.Descriptor{
		ID:        id,
		ActorID:   actorID,
		Dexterity: dexterity,
		Phases:    phases,
	}
}

// CreateTestRoster returns three combatants: hero and sidekick share
// Dexterity 18 at Speed 4, the villain is Dexterity 14 at Speed 3
func CreateTestRoster() []combatorder.Descriptor {
	return []combatorder.Descriptor{
		CreateTestCombatant(HeroID, HeroActorID, 18, 4),
		CreateTestCombatant(SidekickID, "actor-sidekick", 18, 4),
		CreateTestCombatant(VillainID, "actor-villain", 14, 3),
	}
}

// ScriptedRoller is a dice.Roller that returns scripted die faces in order
// and then repeats the last one
type ScriptedRoller struct {
	mu    sync.Mutex
	faces []int
	calls int
	Err   error
}

// NewScriptedRoller creates a roller returning faces in order
func NewScriptedRoller(faces ...int) *ScriptedRoller {
	return &ScriptedRoller{faces: faces}
}

// Roll returns the next scripted face
func (r *ScriptedRoller) Roll(_ int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return 0, r.Err
	}
	return r.next(), nil
}

// RollN returns the next count scripted faces
func (r *ScriptedRoller) RollN(count, _ int) ([]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}
	out := make([]int, count)
	for i := range out {
		out[i] = r.next()
	}
	return out, nil
}

// Calls returns how many faces have been handed out
func (r *ScriptedRoller) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func (r *ScriptedRoller) next() int {
	r.calls++
	if len(r.faces) == 0 {
		return 1
	}
	if r.calls > len(r.faces) {
		return r.faces[len(r.faces)-1]
	}
	return r.faces[r.calls-1]
}
