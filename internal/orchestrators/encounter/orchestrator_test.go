package encounter_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-phases/internal/errors"
	"github.com/KirkDiggler/rpg-phases/internal/orchestrators/dice"
	"github.com/KirkDiggler/rpg-phases/internal/orchestrators/encounter"
	"github.com/KirkDiggler/rpg-phases/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-phases/internal/pkg/idgen"
	dicesession "github.com/KirkDiggler/rpg-phases/internal/repositories/dice_session"
	"github.com/KirkDiggler/rpg-phases/internal/repositories/encounters"
	encountermock "github.com/KirkDiggler/rpg-phases/internal/repositories/encounters/mock"
	"github.com/KirkDiggler/rpg-phases/internal/testutils"
)

type turnKey struct {
	ID      string
	Segment int
}

func keys(order *encounter.TurnOrder) []turnKey {
	out := make([]turnKey, len(order.Turns))
	for i, turn := range order.Turns {
		out[i] = turnKey{ID: turn.CombatantID, Segment: turn.Segment}
	}
	return out
}

func current(order *encounter.TurnOrder) turnKey {
	if order.Current == nil {
		return turnKey{}
	}
	return turnKey{ID: order.Current.CombatantID, Segment: order.Current.Segment}
}

type OrchestratorTestSuite struct {
	suite.Suite
	ctx          context.Context
	clock        *clock.Fixed
	repo         *encounters.InMemoryRepository
	sessions     *dicesession.InMemoryRepository
	diceService  dice.Service
	orchestrator encounter.Service
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = &clock.Fixed{At: time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)}
	s.repo = encounters.NewInMemory()
	s.sessions = dicesession.NewInMemoryRepository(s.clock)

	// hero rolls 3, sidekick rolls 18
	var err error
	s.diceService, err = dice.NewOrchestrator(&dice.Config{
		DiceSessionRepo: s.sessions,
		IDGenerator:     idgen.NewSequential("roll"),
		Roller:          testutils.NewScriptedRoller(1, 1, 1, 6, 6, 6),
	})
	s.Require().NoError(err)

	s.orchestrator = s.newOrchestrator(s.repo)
}

func (s *OrchestratorTestSuite) newOrchestrator(repo encounters.Repository) encounter.Service {
	o, err := encounter.NewOrchestrator(&encounter.Config{
		IDGenerator: idgen.NewSequential("enc"),
		Repository:  repo,
		DiceService: s.diceService,
		Clock:       s.clock,
	})
	s.Require().NoError(err)
	return o
}

func (s *OrchestratorTestSuite) roster() []encounter.CombatantInput {
	return []encounter.CombatantInput{
		{ID: testutils.HeroID, ActorID: testutils.HeroActorID, Dexterity: 18, Speed: 4},
		{ID: testutils.SidekickID, ActorID: "actor-sidekick", Dexterity: 18, Speed: 4},
		{ID: testutils.VillainID, ActorID: "actor-villain", Dexterity: 14, Speed: 3},
	}
}

func (s *OrchestratorTestSuite) start() string {
	out, err := s.orchestrator.StartEncounter(s.ctx, &encounter.StartEncounterInput{
		Name:       "Warehouse ambush",
		Combatants: s.roster(),
	})
	s.Require().NoError(err)
	return out.EncounterID
}

func (s *OrchestratorTestSuite) TestNewOrchestrator_Validation() {
	_, err := encounter.NewOrchestrator(&encounter.Config{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "Repository")
	s.Contains(err.Error(), "DiceService")
}

func (s *OrchestratorTestSuite) TestStartEncounter() {
	out, err := s.orchestrator.StartEncounter(s.ctx, &encounter.StartEncounterInput{
		Name:       "Warehouse ambush",
		Combatants: s.roster(),
	})
	s.Require().NoError(err)

	s.Equal("enc_1", out.EncounterID)
	s.Equal(1, out.Order.Round)
	s.Equal("settled", out.Order.State)
	s.Equal([]turnKey{{"sidekick", 12}, {"hero", 12}, {"villain", 12}}, keys(out.Order))
	s.Equal(turnKey{"sidekick", 12}, current(out.Order))
	s.Equal(18, *out.Order.Turns[0].Initiative)
	s.Nil(out.Order.Turns[2].Initiative)

	saved, err := s.repo.Get(s.ctx, &encounters.GetInput{EncounterID: "enc_1"})
	s.Require().NoError(err)
	s.Equal("Warehouse ambush", saved.Data.Name)
	s.Equal(1, saved.Data.Tracker.Round)

	rolls, err := s.diceService.GetRollSession(s.ctx, &dice.GetRollSessionInput{EncounterID: "enc_1"})
	s.Require().NoError(err)
	s.Len(rolls.Session.Rolls, 2)
}

func (s *OrchestratorTestSuite) TestStartEncounter_InvalidCombatant() {
	_, err := s.orchestrator.StartEncounter(s.ctx, &encounter.StartEncounterInput{
		Combatants: []encounter.CombatantInput{{ID: "x", ActorID: "a", Speed: -1}},
	})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.orchestrator.StartEncounter(s.ctx, &encounter.StartEncounterInput{
		Combatants: []encounter.CombatantInput{{ID: "x", Speed: 2}},
	})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestNextTurn_IntoRoundTwo() {
	id := s.start()

	var out *encounter.NextTurnOutput
	var err error
	for range 3 {
		out, err = s.orchestrator.NextTurn(s.ctx, &encounter.NextTurnInput{EncounterID: id})
		s.Require().NoError(err)
	}

	s.Equal(2, out.Order.Round)
	s.Equal([]turnKey{
		{"sidekick", 3}, {"hero", 3}, {"villain", 4},
		{"sidekick", 6}, {"hero", 6}, {"villain", 8},
		{"sidekick", 9}, {"hero", 9},
		{"sidekick", 12}, {"hero", 12}, {"villain", 12},
	}, keys(out.Order))
	s.Equal(turnKey{"sidekick", 3}, current(out.Order))

	prev, err := s.orchestrator.PreviousTurn(s.ctx, &encounter.PreviousTurnInput{EncounterID: id})
	s.Require().NoError(err)
	s.Equal(1, prev.Order.Round)
	s.Equal(turnKey{"villain", 12}, current(prev.Order))
}

func (s *OrchestratorTestSuite) TestChangeSpeed_MidRound() {
	id := s.start()

	_, err := s.orchestrator.MoveToPhase(s.ctx, &encounter.MoveToPhaseInput{
		EncounterID: id,
		Segment:     4,
		ActorID:     "actor-villain",
	})
	s.Require().NoError(err)

	out, err := s.orchestrator.ChangeSpeed(s.ctx, &encounter.ChangeSpeedInput{
		EncounterID: id,
		CombatantID: testutils.HeroID,
		Speed:       6,
	})
	s.Require().NoError(err)

	// hero's segment 3 phase is behind the cut and drops out of the list
	s.Equal([]turnKey{
		{"sidekick", 3}, {"villain", 4},
		{"sidekick", 6}, {"hero", 6}, {"hero", 8}, {"villain", 8},
		{"sidekick", 9}, {"hero", 10},
		{"sidekick", 12}, {"hero", 12}, {"villain", 12},
	}, keys(out.Order))
	s.Equal(turnKey{"villain", 4}, current(out.Order))
	s.Equal("settled", out.Order.State)

	saved, err := s.repo.Get(s.ctx, &encounters.GetInput{EncounterID: id})
	s.Require().NoError(err)
	change, ok := saved.Data.Tracker.SpeedChanges[testutils.HeroActorID]
	s.Require().True(ok)
	s.True(change.Committed)
	s.Equal(4, *change.AppliedAt)
}

func (s *OrchestratorTestSuite) TestRestoreFromRepository() {
	id := s.start()
	_, err := s.orchestrator.MoveToPhase(s.ctx, &encounter.MoveToPhaseInput{EncounterID: id, Segment: 6, ActorID: testutils.HeroActorID})
	s.Require().NoError(err)
	_, err = s.orchestrator.ChangeSpeed(s.ctx, &encounter.ChangeSpeedInput{EncounterID: id, CombatantID: testutils.VillainID, Speed: 6})
	s.Require().NoError(err)

	want, err := s.orchestrator.GetTurnOrder(s.ctx, &encounter.GetTurnOrderInput{EncounterID: id})
	s.Require().NoError(err)

	// A fresh process only has the repository
	restored := s.newOrchestrator(s.repo)
	got, err := restored.GetTurnOrder(s.ctx, &encounter.GetTurnOrderInput{EncounterID: id})
	s.Require().NoError(err)

	s.Equal(want.Order, got.Order)

	next, err := restored.NextTurn(s.ctx, &encounter.NextTurnInput{EncounterID: id})
	s.Require().NoError(err)
	s.Equal(turnKey{"villain", 8}, current(next.Order))
}

func (s *OrchestratorTestSuite) TestAddAndRemoveCombatant() {
	id := s.start()

	added, err := s.orchestrator.AddCombatant(s.ctx, &encounter.AddCombatantInput{
		EncounterID: id,
		Combatant:   encounter.CombatantInput{ID: "brute", ActorID: "actor-brute", Dexterity: 10, Phases: []int{12}},
	})
	s.Require().NoError(err)
	s.Equal([]turnKey{{"sidekick", 12}, {"hero", 12}, {"villain", 12}, {"brute", 12}}, keys(added.Order))

	_, err = s.orchestrator.AddCombatant(s.ctx, &encounter.AddCombatantInput{
		EncounterID: id,
		Combatant:   encounter.CombatantInput{ID: "brute", ActorID: "actor-brute", Dexterity: 10, Speed: 2},
	})
	s.True(errors.IsAlreadyExists(err))

	removed, err := s.orchestrator.RemoveCombatant(s.ctx, &encounter.RemoveCombatantInput{
		EncounterID: id,
		CombatantID: "sidekick",
	})
	s.Require().NoError(err)
	s.Equal([]turnKey{{"hero", 12}, {"villain", 12}, {"brute", 12}}, keys(removed.Order))
	s.Equal(turnKey{"hero", 12}, current(removed.Order))

	_, err = s.orchestrator.RemoveCombatant(s.ctx, &encounter.RemoveCombatantInput{
		EncounterID: id,
		CombatantID: "sidekick",
	})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestChangeDexterity() {
	id := s.start()

	out, err := s.orchestrator.ChangeDexterity(s.ctx, &encounter.ChangeDexterityInput{
		EncounterID: id,
		CombatantID: testutils.VillainID,
		Dexterity:   20,
	})
	s.Require().NoError(err)
	s.Equal([]turnKey{{"villain", 12}, {"sidekick", 12}, {"hero", 12}}, keys(out.Order))
	s.Equal(turnKey{"sidekick", 12}, current(out.Order))
}

func (s *OrchestratorTestSuite) TestMoveToPhase_Errors() {
	id := s.start()

	_, err := s.orchestrator.MoveToPhase(s.ctx, &encounter.MoveToPhaseInput{EncounterID: id, Segment: 13, ActorID: "actor-villain"})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.orchestrator.MoveToPhase(s.ctx, &encounter.MoveToPhaseInput{EncounterID: id, Segment: 5, ActorID: "actor-villain"})
	s.True(errors.IsFailedPrecondition(err))
}

func (s *OrchestratorTestSuite) TestUnknownEncounter() {
	_, err := s.orchestrator.NextTurn(s.ctx, &encounter.NextTurnInput{EncounterID: "enc_404"})
	s.True(errors.IsNotFound(err))

	_, err = s.orchestrator.GetTurnOrder(s.ctx, &encounter.GetTurnOrderInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestEndEncounter() {
	id := s.start()

	out, err := s.orchestrator.EndEncounter(s.ctx, &encounter.EndEncounterInput{EncounterID: id})
	s.Require().NoError(err)
	s.Equal(int32(2), out.RollsDeleted)

	_, err = s.orchestrator.GetTurnOrder(s.ctx, &encounter.GetTurnOrderInput{EncounterID: id})
	s.True(errors.IsNotFound(err))

	_, err = s.orchestrator.EndEncounter(s.ctx, &encounter.EndEncounterInput{EncounterID: id})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestFailedSaveRollsBack() {
	ctrl := gomock.NewController(s.T())
	repo := encountermock.NewMockRepository(ctrl)
	o := s.newOrchestrator(repo)

	var saved *encounters.EncounterData
	repo.EXPECT().Save(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *encounters.SaveInput) (*encounters.SaveOutput, error) {
			saved = input.Data
			return &encounters.SaveOutput{Success: true}, nil
		})
	repo.EXPECT().Update(s.ctx, gomock.Any()).
		Return(nil, errors.New(errors.CodeUnavailable, "redis down"))
	repo.EXPECT().Get(s.ctx, &encounters.GetInput{EncounterID: "enc_1"}).
		DoAndReturn(func(_ context.Context, _ *encounters.GetInput) (*encounters.GetOutput, error) {
			return &encounters.GetOutput{Data: saved}, nil
		})

	_, err := o.StartEncounter(s.ctx, &encounter.StartEncounterInput{Combatants: s.roster()})
	s.Require().NoError(err)

	_, err = o.NextTurn(s.ctx, &encounter.NextTurnInput{EncounterID: "enc_1"})
	s.Require().Error(err)
	s.Equal(errors.CodeUnavailable, errors.GetCode(err))

	// The unsaved turn is gone; the saved state is restored
	out, err := o.GetTurnOrder(s.ctx, &encounter.GetTurnOrderInput{EncounterID: "enc_1"})
	s.Require().NoError(err)
	s.Equal(turnKey{"sidekick", 12}, current(out.Order))
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}
