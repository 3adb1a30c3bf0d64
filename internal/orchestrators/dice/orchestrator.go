// Package dice rolls the Initiative used to break Dexterity ties and keeps a
// session of every roll made for an encounter
package dice

//go:generate mockgen -destination=mock/mock_service.go -package=dicemock github.com/KirkDiggler/rpg-phases/internal/orchestrators/dice Service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-phases/internal/combatorder"
	"github.com/KirkDiggler/rpg-phases/internal/errors"
	"github.com/KirkDiggler/rpg-phases/internal/pkg/idgen"
	dicesession "github.com/KirkDiggler/rpg-phases/internal/repositories/dice_session"
)

const (
	// ContextInitiativeTies groups the tie-break rolls of an encounter
	ContextInitiativeTies = "initiative_ties"

	// InitiativeNotation is rolled once per tied combatant
	InitiativeNotation = "3d6"

	initiativeDice  = 3
	initiativeSides = 6
)

// Service defines the interface for dice operations
type Service interface {
	RollInitiative(ctx context.Context, input *RollInitiativeInput) (*RollInitiativeOutput, error)
	GetRollSession(ctx context.Context, input *GetRollSessionInput) (*GetRollSessionOutput, error)
	ClearRollSession(ctx context.Context, input *ClearRollSessionInput) (*ClearRollSessionOutput, error)

	// TieBreaker binds RollInitiative to one encounter
	TieBreaker(encounterID string) combatorder.TieBreaker
}

// Config holds the dependencies for the dice orchestrator
type Config struct {
	DiceSessionRepo dicesession.Repository
	IDGenerator     idgen.Generator

	// Roller defaults to the toolkit's crypto roller
	Roller dice.Roller

	// SessionTTL defaults to dicesession.DefaultTTL
	SessionTTL time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.DiceSessionRepo == nil {
		vb.RequiredField("DiceSessionRepo")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.SessionTTL < 0 {
		vb.InvalidField("SessionTTL", "must not be negative")
	}

	return vb.Build()
}

type orchestrator struct {
	diceSessionRepo dicesession.Repository
	idGen           idgen.Generator
	roller          dice.Roller
	sessionTTL      time.Duration
}

// NewOrchestrator creates a new dice orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	roller := cfg.Roller
	if roller == nil {
		roller = dice.DefaultRoller
	}
	ttl := cfg.SessionTTL
	if ttl == 0 {
		ttl = dicesession.DefaultTTL
	}

	return &orchestrator{
		diceSessionRepo: cfg.DiceSessionRepo,
		idGen:           cfg.IDGenerator,
		roller:          roller,
		sessionTTL:      ttl,
	}, nil
}

// RollInitiative rolls 3d6 for each combatant and records the rolls in the
// encounter's session. The total becomes the combatant's Initiative.
func (o *orchestrator) RollInitiative(ctx context.Context, input *RollInitiativeInput) (*RollInitiativeOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.EncounterID == "" {
		return nil, errors.InvalidArgument("encounter ID is required")
	}

	output := &RollInitiativeOutput{
		Initiative: make(map[string]int, len(input.Combatants)),
	}
	if len(input.Combatants) == 0 {
		return output, nil
	}

	for _, c := range input.Combatants {
		if err := ctx.Err(); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeCanceled, "initiative roll canceled")
		}

		faces, err := o.roller.RollN(initiativeDice, initiativeSides)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to roll initiative for %s", c.ID)
		}

		roll := &dicesession.DiceRoll{
			RollID:      o.idGen.Generate(),
			CombatantID: c.ID,
			Notation:    InitiativeNotation,
			Dice:        make([]int32, len(faces)),
			Description: fmt.Sprintf("initiative tie at Dexterity %d", c.Dexterity),
		}
		total := 0
		for i, face := range faces {
			total += face
			// nolint:gosec // die faces are tiny
			roll.Dice[i] = int32(face)
		}
		// nolint:gosec // 3d6 total
		roll.Total = int32(total)

		output.Initiative[c.ID] = total
		output.Rolls = append(output.Rolls, roll)
	}

	count, err := o.appendRolls(ctx, input.EncounterID, output.Rolls)
	if err != nil {
		return nil, err
	}
	output.SessionRolls = count

	slog.Info("Initiative ties rolled",
		"encounter_id", input.EncounterID,
		"combatants", len(input.Combatants),
		"session_rolls", count,
	)

	return output, nil
}

// appendRolls adds rolls to the encounter's log and returns its new length
func (o *orchestrator) appendRolls(ctx context.Context, encounterID string, rolls []*dicesession.DiceRoll) (int, error) {
	values := make([]dicesession.DiceRoll, len(rolls))
	for i, roll := range rolls {
		values[i] = *roll
	}

	out, err := o.diceSessionRepo.Append(ctx, dicesession.AppendInput{
		EntityID: encounterID,
		Context:  ContextInitiativeTies,
		Rolls:    values,
		TTL:      o.sessionTTL,
	})
	if err != nil {
		return 0, errors.Wrap(err, "failed to record initiative rolls")
	}
	return out.RollCount, nil
}

// GetRollSession retrieves the tie-break rolls of an encounter
func (o *orchestrator) GetRollSession(ctx context.Context, input *GetRollSessionInput) (*GetRollSessionOutput, error) {
	if input == nil || input.EncounterID == "" {
		return nil, errors.InvalidArgument("encounter ID is required")
	}

	getOutput, err := o.diceSessionRepo.Get(ctx, dicesession.GetInput{
		EntityID: input.EncounterID,
		Context:  ContextInitiativeTies,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get dice session")
	}

	return &GetRollSessionOutput{
		Session: getOutput.Session,
	}, nil
}

// ClearRollSession removes the tie-break rolls of an encounter
func (o *orchestrator) ClearRollSession(ctx context.Context, input *ClearRollSessionInput) (*ClearRollSessionOutput, error) {
	if input == nil || input.EncounterID == "" {
		return nil, errors.InvalidArgument("encounter ID is required")
	}

	deleteOutput, err := o.diceSessionRepo.Delete(ctx, dicesession.DeleteInput{
		EntityID: input.EncounterID,
		Context:  ContextInitiativeTies,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to delete dice session")
	}

	slog.Info("Dice session cleared",
		"encounter_id", input.EncounterID,
		"rolls_deleted", deleteOutput.RollsDeleted,
	)

	return &ClearRollSessionOutput{
		RollsDeleted: deleteOutput.RollsDeleted,
	}, nil
}

// TieBreaker returns a combatorder.TieBreaker that rolls for encounterID
func (o *orchestrator) TieBreaker(encounterID string) combatorder.TieBreaker {
	return combatorder.TieBreakerFunc(func(ctx context.Context, tied []*combatorder.Combatant) (map[string]int, error) {
		out, err := o.RollInitiative(ctx, &RollInitiativeInput{
			EncounterID: encounterID,
			Combatants:  tied,
		})
		if err != nil {
			return nil, err
		}
		return out.Initiative, nil
	})
}
