// Package encounter hosts Hero System encounters: it owns one turn tracker
// per encounter, persists every change and serializes access per encounter.
package encounter

//go:generate mockgen -destination=mock/mock_service.go -package=encountermock github.com/KirkDiggler/rpg-phases/internal/orchestrators/encounter Service

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/KirkDiggler/rpg-phases/internal/combatorder"
	"github.com/KirkDiggler/rpg-phases/internal/errors"
	"github.com/KirkDiggler/rpg-phases/internal/orchestrators/dice"
	"github.com/KirkDiggler/rpg-phases/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-phases/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-phases/internal/repositories/encounters"
	"github.com/KirkDiggler/rpg-phases/internal/tracker"
)

// Service defines the interface for encounter operations
type Service interface {
	StartEncounter(ctx context.Context, input *StartEncounterInput) (*StartEncounterOutput, error)
	AddCombatant(ctx context.Context, input *AddCombatantInput) (*AddCombatantOutput, error)
	RemoveCombatant(ctx context.Context, input *RemoveCombatantInput) (*RemoveCombatantOutput, error)
	ChangeDexterity(ctx context.Context, input *ChangeDexterityInput) (*ChangeDexterityOutput, error)
	ChangeSpeed(ctx context.Context, input *ChangeSpeedInput) (*ChangeSpeedOutput, error)

	NextTurn(ctx context.Context, input *NextTurnInput) (*NextTurnOutput, error)
	PreviousTurn(ctx context.Context, input *PreviousTurnInput) (*PreviousTurnOutput, error)
	MoveToPhase(ctx context.Context, input *MoveToPhaseInput) (*MoveToPhaseOutput, error)

	GetTurnOrder(ctx context.Context, input *GetTurnOrderInput) (*GetTurnOrderOutput, error)
	EndEncounter(ctx context.Context, input *EndEncounterInput) (*EndEncounterOutput, error)
}

// Config holds the dependencies for the encounter orchestrator
type Config struct {
	IDGenerator idgen.Generator
	Repository  encounters.Repository
	DiceService dice.Service
	Clock       clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Repository == nil {
		vb.RequiredField("Repository")
	}
	if c.DiceService == nil {
		vb.RequiredField("DiceService")
	}

	return vb.Build()
}

type orchestrator struct {
	idGen idgen.Generator
	repo  encounters.Repository
	dice  dice.Service
	clock clock.Clock

	mu         sync.RWMutex
	encounters map[string]*encounterState
}

// encounterState is a live encounter; mu serializes every use of tracker
type encounterState struct {
	mu      sync.Mutex
	tracker *tracker.Tracker
}

// NewOrchestrator creates a new encounter orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &orchestrator{
		idGen:      cfg.IDGenerator,
		repo:       cfg.Repository,
		dice:       cfg.DiceService,
		clock:      c,
		encounters: make(map[string]*encounterState),
	}, nil
}

// StartEncounter creates an encounter and begins round 1
func (o *orchestrator) StartEncounter(ctx context.Context, input *StartEncounterInput) (*StartEncounterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	descriptors := make([]combatorder.Descriptor, 0, len(input.Combatants))
	for _, c := range input.Combatants {
		d, err := toDescriptor(c)
		if err != nil {
			return nil, err
		}
		descriptors = append(descriptors, d)
	}

	encounterID := o.idGen.Generate()

	order, err := combatorder.New(&combatorder.Config{
		TieBreaker: o.dice.TieBreaker(encounterID),
		Combatants: descriptors,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to build combat order")
	}
	t, err := tracker.New(&tracker.Config{Order: order})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create tracker")
	}
	if err := t.Start(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to start combat")
	}

	now := o.clock.Now()
	_, err = o.repo.Save(ctx, &encounters.SaveInput{Data: &encounters.EncounterData{
		ID:        encounterID,
		Name:      input.Name,
		CreatedAt: now,
		UpdatedAt: now,
		Tracker:   t.Snapshot(),
	}})
	if err != nil {
		return nil, errors.Wrap(err, "failed to save encounter")
	}

	o.mu.Lock()
	o.encounters[encounterID] = &encounterState{tracker: t}
	o.mu.Unlock()

	slog.Info("Encounter started",
		"encounter_id", encounterID,
		"name", input.Name,
		"combatant_count", len(descriptors),
	)

	return &StartEncounterOutput{
		EncounterID: encounterID,
		Order:       toTurnOrder(encounterID, t),
	}, nil
}

// AddCombatant adds a combatant to a running encounter
func (o *orchestrator) AddCombatant(ctx context.Context, input *AddCombatantInput) (*AddCombatantOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	d, err := toDescriptor(input.Combatant)
	if err != nil {
		return nil, err
	}

	order, err := o.mutate(ctx, input.EncounterID, func(t *tracker.Tracker) error {
		return t.AddCombatant(ctx, d)
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to add combatant %s", d.ID)
	}

	slog.Info("Combatant added",
		"encounter_id", input.EncounterID,
		"combatant_id", d.ID,
		"actor_id", d.ActorID,
	)

	return &AddCombatantOutput{Order: order}, nil
}

// RemoveCombatant removes a combatant from a running encounter
func (o *orchestrator) RemoveCombatant(ctx context.Context, input *RemoveCombatantInput) (*RemoveCombatantOutput, error) {
	if input == nil || input.CombatantID == "" {
		return nil, errors.InvalidArgument("combatant ID is required")
	}

	order, err := o.mutate(ctx, input.EncounterID, func(t *tracker.Tracker) error {
		return t.RemoveCombatant(ctx, input.CombatantID)
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to remove combatant %s", input.CombatantID)
	}

	slog.Info("Combatant removed",
		"encounter_id", input.EncounterID,
		"combatant_id", input.CombatantID,
	)

	return &RemoveCombatantOutput{Order: order}, nil
}

// ChangeDexterity updates a combatant's Dexterity
func (o *orchestrator) ChangeDexterity(ctx context.Context, input *ChangeDexterityInput) (*ChangeDexterityOutput, error) {
	if input == nil || input.CombatantID == "" {
		return nil, errors.InvalidArgument("combatant ID is required")
	}

	order, err := o.mutate(ctx, input.EncounterID, func(t *tracker.Tracker) error {
		return t.ChangeDexterity(ctx, input.CombatantID, input.Dexterity)
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to change dexterity of %s", input.CombatantID)
	}

	return &ChangeDexterityOutput{Order: order}, nil
}

// ChangeSpeed updates the Speed of a combatant's actor from the next
// unresolved segment on
func (o *orchestrator) ChangeSpeed(ctx context.Context, input *ChangeSpeedInput) (*ChangeSpeedOutput, error) {
	if input == nil || input.CombatantID == "" {
		return nil, errors.InvalidArgument("combatant ID is required")
	}

	order, err := o.mutate(ctx, input.EncounterID, func(t *tracker.Tracker) error {
		return t.ChangeSpeed(ctx, input.CombatantID, input.Speed)
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to change speed of %s", input.CombatantID)
	}

	slog.Info("Speed changed",
		"encounter_id", input.EncounterID,
		"combatant_id", input.CombatantID,
		"speed", input.Speed,
	)

	return &ChangeSpeedOutput{Order: order}, nil
}

// NextTurn advances to the next turn in the encounter
func (o *orchestrator) NextTurn(ctx context.Context, input *NextTurnInput) (*NextTurnOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	order, err := o.mutate(ctx, input.EncounterID, func(t *tracker.Tracker) error {
		return t.NextTurn(ctx)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to advance turn")
	}

	logTurn("Advanced turn", order)
	return &NextTurnOutput{Order: order}, nil
}

// PreviousTurn steps back one turn in the encounter
func (o *orchestrator) PreviousTurn(ctx context.Context, input *PreviousTurnInput) (*PreviousTurnOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	order, err := o.mutate(ctx, input.EncounterID, func(t *tracker.Tracker) error {
		return t.PreviousTurn(ctx)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to step back a turn")
	}

	logTurn("Stepped back a turn", order)
	return &PreviousTurnOutput{Order: order}, nil
}

// MoveToPhase steps to the given actor's phase in segment
func (o *orchestrator) MoveToPhase(ctx context.Context, input *MoveToPhaseInput) (*MoveToPhaseOutput, error) {
	if input == nil || input.ActorID == "" {
		return nil, errors.InvalidArgument("actor ID is required")
	}
	if input.Segment < 1 || input.Segment > combatorder.SegmentsPerTurn {
		return nil, errors.InvalidArgumentf("segment %d is outside 1..%d", input.Segment, combatorder.SegmentsPerTurn)
	}

	order, err := o.mutate(ctx, input.EncounterID, func(t *tracker.Tracker) error {
		return t.MoveToPhase(ctx, input.Segment, input.ActorID)
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to move to segment %d", input.Segment)
	}

	logTurn("Moved to phase", order)
	return &MoveToPhaseOutput{Order: order}, nil
}

// GetTurnOrder returns the current turn order
func (o *orchestrator) GetTurnOrder(ctx context.Context, input *GetTurnOrderInput) (*GetTurnOrderOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	state, err := o.load(ctx, input.EncounterID)
	if err != nil {
		return nil, err
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	return &GetTurnOrderOutput{Order: toTurnOrder(input.EncounterID, state.tracker)}, nil
}

// EndEncounter deletes the encounter and its tie-break rolls
func (o *orchestrator) EndEncounter(ctx context.Context, input *EndEncounterInput) (*EndEncounterOutput, error) {
	if input == nil || input.EncounterID == "" {
		return nil, errors.InvalidArgument("encounter ID is required")
	}

	o.mu.Lock()
	delete(o.encounters, input.EncounterID)
	o.mu.Unlock()

	if _, err := o.repo.Delete(ctx, &encounters.DeleteInput{EncounterID: input.EncounterID}); err != nil {
		return nil, errors.Wrap(err, "failed to delete encounter")
	}

	cleared, err := o.dice.ClearRollSession(ctx, &dice.ClearRollSessionInput{EncounterID: input.EncounterID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to clear tie-break rolls")
	}

	slog.Info("Encounter ended",
		"encounter_id", input.EncounterID,
		"rolls_deleted", cleared.RollsDeleted,
	)

	return &EndEncounterOutput{RollsDeleted: cleared.RollsDeleted}, nil
}

// mutate runs fn against the encounter's tracker and persists the result.
// When fn or the save fails the live tracker is dropped so the next call
// restores the last saved state.
func (o *orchestrator) mutate(ctx context.Context, encounterID string, fn func(t *tracker.Tracker) error) (*TurnOrder, error) {
	state, err := o.load(ctx, encounterID)
	if err != nil {
		return nil, err
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	if err := fn(state.tracker); err != nil {
		o.evict(encounterID, state, err)
		return nil, err
	}

	_, err = o.repo.Update(ctx, &encounters.UpdateInput{
		EncounterID: encounterID,
		Tracker:     state.tracker.Snapshot(),
		UpdatedAt:   o.clock.Now(),
	})
	if err != nil {
		o.evict(encounterID, state, err)
		return nil, errors.Wrap(err, "failed to save encounter")
	}

	return toTurnOrder(encounterID, state.tracker), nil
}

// load returns the live encounter, restoring it from the repository when it
// is not in memory
func (o *orchestrator) load(ctx context.Context, encounterID string) (*encounterState, error) {
	if encounterID == "" {
		return nil, errors.InvalidArgument("encounter ID is required")
	}

	o.mu.RLock()
	state, exists := o.encounters[encounterID]
	o.mu.RUnlock()
	if exists {
		return state, nil
	}

	out, err := o.repo.Get(ctx, &encounters.GetInput{EncounterID: encounterID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load encounter")
	}

	t, err := tracker.Restore(ctx, out.Data.Tracker, o.dice.TieBreaker(encounterID))
	if err != nil {
		return nil, errors.Wrap(err, "failed to restore encounter")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	// Another request may have restored it first
	if state, exists := o.encounters[encounterID]; exists {
		return state, nil
	}
	state = &encounterState{tracker: t}
	o.encounters[encounterID] = state

	slog.Debug("Encounter restored",
		"encounter_id", encounterID,
		"round", t.Round(),
	)

	return state, nil
}

func (o *orchestrator) evict(encounterID string, state *encounterState, cause error) {
	o.mu.Lock()
	if o.encounters[encounterID] == state {
		delete(o.encounters, encounterID)
	}
	o.mu.Unlock()

	slog.Warn("Encounter change rolled back",
		"encounter_id", encounterID,
		"error", cause,
	)
}

func toDescriptor(c CombatantInput) (combatorder.Descriptor, error) {
	phases := slices.Clone(c.Phases)
	if len(phases) == 0 {
		var err error
		if phases, err = combatorder.PhasesForSpeed(c.Speed); err != nil {
			return combatorder.Descriptor{}, errors.Wrapf(err, "invalid speed for combatant %s", c.ID)
		}
	}

	return combatorder.Descriptor{
		ID:         c.ID,
		ActorID:    c.ActorID,
		Dexterity:  c.Dexterity,
		Initiative: c.Initiative,
		Phases:     phases,
	}, nil
}

func toTurnOrder(encounterID string, t *tracker.Tracker) *TurnOrder {
	entries := t.Turns()
	turns := make([]Turn, len(entries))
	for i, e := range entries {
		turns[i] = Turn{
			CombatantID: e.Combatant.ID,
			ActorID:     e.Combatant.ActorID,
			Segment:     e.Segment,
			Dexterity:   e.Dexterity,
		}
		if e.Combatant.Initiative != nil {
			v := *e.Combatant.Initiative
			turns[i].Initiative = &v
		}
	}

	return &TurnOrder{
		EncounterID: encounterID,
		Round:       t.Round(),
		Current:     t.Current(),
		Turns:       turns,
		State:       t.Order().State().String(),
	}
}

func logTurn(msg string, order *TurnOrder) {
	args := []any{
		"encounter_id", order.EncounterID,
		"round", order.Round,
	}
	if order.Current != nil {
		args = append(args,
			"combatant_id", order.Current.CombatantID,
			"segment", order.Current.Segment,
		)
	}
	slog.Info(msg, args...)
}
