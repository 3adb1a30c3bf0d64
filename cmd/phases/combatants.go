package main

import (
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-phases/internal/errors"
	"github.com/KirkDiggler/rpg-phases/internal/orchestrators/encounter"
)

// parseCombatant reads id:dex:spd[:init]. The combatant is its own actor.
func parseCombatant(s string) (encounter.CombatantInput, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 3 || len(parts) > 4 {
		return encounter.CombatantInput{}, errors.InvalidArgumentf("combatant %q: expected id:dex:spd[:init]", s)
	}

	id := strings.TrimSpace(parts[0])
	if id == "" {
		return encounter.CombatantInput{}, errors.InvalidArgumentf("combatant %q: id is required", s)
	}

	nums := make([]int, len(parts)-1)
	for i, p := range parts[1:] {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return encounter.CombatantInput{}, errors.InvalidArgumentf("combatant %q: %q is not a number", s, p)
		}
		nums[i] = n
	}

	c := encounter.CombatantInput{
		ID:        id,
		ActorID:   id,
		Dexterity: nums[0],
		Speed:     nums[1],
	}
	if len(nums) == 3 {
		initiative := nums[2]
		c.Initiative = &initiative
	}
	return c, nil
}

func parseCombatants(specs []string) ([]encounter.CombatantInput, error) {
	if len(specs) == 0 {
		return nil, errors.InvalidArgument("at least one --combatant is required")
	}

	out := make([]encounter.CombatantInput, 0, len(specs))
	for _, s := range specs {
		c, err := parseCombatant(s)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// speedChange is a Speed change applied before a given turn of a simulation
type speedChange struct {
	CombatantID string
	Speed       int
	AtTurn      int
}

// parseSpeedChange reads id:spd@turn
func parseSpeedChange(s string) (speedChange, error) {
	head, turn, ok := strings.Cut(s, "@")
	if !ok {
		return speedChange{}, errors.InvalidArgumentf("speed change %q: expected id:spd@turn", s)
	}
	id, spd, ok := strings.Cut(head, ":")
	if !ok || id == "" {
		return speedChange{}, errors.InvalidArgumentf("speed change %q: expected id:spd@turn", s)
	}

	speed, err := strconv.Atoi(spd)
	if err != nil {
		return speedChange{}, errors.InvalidArgumentf("speed change %q: bad speed", s)
	}
	at, err := strconv.Atoi(turn)
	if err != nil || at < 1 {
		return speedChange{}, errors.InvalidArgumentf("speed change %q: turn must be a positive number", s)
	}

	return speedChange{CombatantID: id, Speed: speed, AtTurn: at}, nil
}
