package tracker_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-phases/internal/combatorder"
	"github.com/KirkDiggler/rpg-phases/internal/errors"
	"github.com/KirkDiggler/rpg-phases/internal/tracker"
)

type turnKey struct {
	ID      string
	Segment int
}

func keys(turns []combatorder.TurnEntry) []turnKey {
	out := make([]turnKey, len(turns))
	for i, turn := range turns {
		out[i] = turnKey{ID: turn.Combatant.ID, Segment: turn.Segment}
	}
	return out
}

type TrackerTestSuite struct {
	suite.Suite
	ctx        context.Context
	tieRolls   map[string]int
	tieCalls   int
	tieBreaker combatorder.TieBreaker
	tracker    *tracker.Tracker
}

func (s *TrackerTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.tieRolls = map[string]int{}
	s.tieCalls = 0
	s.tieBreaker = combatorder.TieBreakerFunc(func(_ context.Context, tied []*combatorder.Combatant) (map[string]int, error) {
		s.tieCalls++
		out := make(map[string]int, len(tied))
		for _, c := range tied {
			out[c.ID] = s.tieRolls[c.ID]
		}
		return out, nil
	})
}

// newTracker builds the A/B/C encounter: A and B are Speed 3 with Dexterity
// 12, C is Speed 2 with Dexterity 8.
func (s *TrackerTestSuite) newTracker(extra ...combatorder.Descriptor) {
	order, err := combatorder.New(&combatorder.Config{
		TieBreaker: s.tieBreaker,
		Combatants: append([]combatorder.Descriptor{
			{ID: "A", ActorID: "actor-a", Dexterity: 12, Phases: []int{4, 8, 12}},
			{ID: "B", ActorID: "actor-b", Dexterity: 12, Phases: []int{4, 8, 12}},
			{ID: "C", ActorID: "actor-c", Dexterity: 8, Phases: []int{6, 12}},
		}, extra...),
	})
	s.Require().NoError(err)

	s.tracker, err = tracker.New(&tracker.Config{Order: order})
	s.Require().NoError(err)
	s.tieRolls["A"] = 3
	s.tieRolls["B"] = 5
}

func (s *TrackerTestSuite) TestNew_RequiresOrder() {
	_, err := tracker.New(&tracker.Config{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *TrackerTestSuite) TestStart_RoundOneIsSegmentTwelve() {
	s.newTracker()
	s.Nil(s.tracker.Current())

	s.Require().NoError(s.tracker.Start(s.ctx))

	s.Equal(1, s.tieCalls)
	s.Equal([]turnKey{{"B", 12}, {"A", 12}, {"C", 12}}, keys(s.tracker.Turns()))
	s.Equal(&tracker.Current{
		Round:       1,
		Turn:        0,
		CombatantID: "B",
		ActorID:     "actor-b",
		Segment:     12,
		Dexterity:   12,
	}, s.tracker.Current())

	s.True(errors.IsFailedPrecondition(s.tracker.Start(s.ctx)))
}

func (s *TrackerTestSuite) TestNextTurn_AdvancesRounds() {
	s.newTracker()
	s.True(errors.IsFailedPrecondition(s.tracker.NextTurn(s.ctx)))
	s.Require().NoError(s.tracker.Start(s.ctx))

	for range 3 {
		s.Require().NoError(s.tracker.NextTurn(s.ctx))
	}

	s.Equal(2, s.tracker.Round())
	s.Equal([]turnKey{
		{"B", 4}, {"A", 4}, {"C", 6}, {"B", 8}, {"A", 8}, {"B", 12}, {"A", 12}, {"C", 12},
	}, keys(s.tracker.Turns()))

	current := s.tracker.Current()
	s.Require().NotNil(current)
	s.Equal("B", current.CombatantID)
	s.Equal(4, current.Segment)

	// Initiative survives the round change, no new roll
	s.Equal(1, s.tieCalls)
}

func (s *TrackerTestSuite) TestPreviousTurn() {
	s.newTracker()
	s.Require().NoError(s.tracker.Start(s.ctx))
	s.True(errors.IsFailedPrecondition(s.tracker.PreviousTurn(s.ctx)))

	s.Require().NoError(s.tracker.MoveToPhase(s.ctx, 4, "actor-b"))
	s.Equal(2, s.tracker.Round())

	s.Require().NoError(s.tracker.PreviousTurn(s.ctx))

	current := s.tracker.Current()
	s.Equal(1, current.Round)
	s.Equal(2, current.Turn)
	s.Equal("C", current.CombatantID)
}

func (s *TrackerTestSuite) TestMoveToPhase() {
	s.newTracker()
	s.Require().NoError(s.tracker.Start(s.ctx))
	s.Require().NoError(s.tracker.NextTurn(s.ctx))
	s.Require().NoError(s.tracker.NextTurn(s.ctx))
	s.Require().NoError(s.tracker.NextTurn(s.ctx))

	s.Require().NoError(s.tracker.MoveToPhase(s.ctx, 12, "actor-c"))
	s.Equal(turnKey{"C", 12}, turnKey{s.tracker.Current().CombatantID, s.tracker.Current().Segment})
	s.Equal(7, s.tracker.Current().Turn)

	s.Require().NoError(s.tracker.MoveToPhase(s.ctx, 8, "actor-a"))
	s.Equal(4, s.tracker.Current().Turn)
	s.Equal(2, s.tracker.Round())
}

func (s *TrackerTestSuite) TestMoveToPhase_Unreachable() {
	s.newTracker()
	s.Require().NoError(s.tracker.Start(s.ctx))

	err := s.tracker.MoveToPhase(s.ctx, 5, "actor-c")
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))
}

func (s *TrackerTestSuite) TestRemoveCombatant_ClampsTurn() {
	s.newTracker()
	s.Require().NoError(s.tracker.Start(s.ctx))
	s.Require().NoError(s.tracker.NextTurn(s.ctx))
	s.Require().NoError(s.tracker.NextTurn(s.ctx))
	s.Equal(2, s.tracker.Current().Turn)

	s.Require().NoError(s.tracker.RemoveCombatant(s.ctx, "C"))

	s.Len(s.tracker.Turns(), 2)
	s.Equal(1, s.tracker.Current().Turn)
	s.Equal("A", s.tracker.Current().CombatantID)

	s.Require().NoError(s.tracker.RemoveCombatant(s.ctx, "A"))
	s.Require().NoError(s.tracker.RemoveCombatant(s.ctx, "B"))
	s.Empty(s.tracker.Turns())
	s.Nil(s.tracker.Current())

	s.True(errors.IsNotFound(s.tracker.RemoveCombatant(s.ctx, "B")))
}

func (s *TrackerTestSuite) TestAddCombatant_KeepsCurrentTurn() {
	s.newTracker()
	s.Require().NoError(s.tracker.Start(s.ctx))
	s.Require().NoError(s.tracker.NextTurn(s.ctx))

	s.Require().NoError(s.tracker.AddCombatant(s.ctx, combatorder.Descriptor{
		ID: "D", ActorID: "actor-d", Dexterity: 20, Phases: []int{12},
	}))

	s.Equal([]turnKey{{"D", 12}, {"B", 12}, {"A", 12}, {"C", 12}}, keys(s.tracker.Turns()))
	s.Equal("A", s.tracker.Current().CombatantID)
	s.Equal(2, s.tracker.Current().Turn)
}

func (s *TrackerTestSuite) TestChangeDexterity_Resorts() {
	s.newTracker()
	s.Require().NoError(s.tracker.Start(s.ctx))

	s.Require().NoError(s.tracker.ChangeDexterity(s.ctx, "C", 15))

	s.Equal([]turnKey{{"C", 12}, {"B", 12}, {"A", 12}}, keys(s.tracker.Turns()))
	s.Equal("B", s.tracker.Current().CombatantID)
	s.False(s.tracker.Order().HasDexterityChanges())
}

func (s *TrackerTestSuite) TestChangeSpeed_MidRound() {
	s.newTracker(combatorder.Descriptor{
		ID: "S", ActorID: "actor-s", Dexterity: 20, Phases: []int{3, 5, 8, 10, 12},
	})
	s.Require().NoError(s.tracker.Start(s.ctx))
	s.Require().NoError(s.tracker.MoveToPhase(s.ctx, 5, "actor-s"))

	s.Require().NoError(s.tracker.ChangeSpeed(s.ctx, "C", 4))

	s.False(s.tracker.Order().HasPendingSpeedChanges())
	s.Equal([]turnKey{
		{"S", 3}, {"B", 4}, {"A", 4}, {"S", 5}, {"C", 6}, {"S", 8}, {"B", 8}, {"A", 8},
		{"C", 9}, {"S", 10}, {"S", 12}, {"B", 12}, {"A", 12}, {"C", 12},
	}, keys(s.tracker.Turns()))
	s.Equal(turnKey{"S", 5}, turnKey{s.tracker.Current().CombatantID, s.tracker.Current().Segment})

	s.Require().NoError(s.tracker.MoveToPhase(s.ctx, 12, "actor-c"))
	s.Require().NoError(s.tracker.NextTurn(s.ctx))

	s.Equal(3, s.tracker.Round())
	c, err := s.tracker.Order().Combatant("C")
	s.Require().NoError(err)
	s.Equal([]int{3, 6, 9, 12}, c.Phases)
	s.Contains(keys(s.tracker.Turns()), turnKey{"C", 3})
}

func (s *TrackerTestSuite) TestChangeSpeed_InvalidSpeed() {
	s.newTracker()
	s.Require().NoError(s.tracker.Start(s.ctx))

	s.True(errors.IsInvalidArgument(s.tracker.ChangeSpeed(s.ctx, "C", -2)))
}

func (s *TrackerTestSuite) TestUpdateInitiative() {
	s.newTracker()
	s.Require().NoError(s.tracker.Start(s.ctx))

	s.Require().NoError(s.tracker.UpdateInitiative(s.ctx, "A", 9))

	s.Equal([]turnKey{{"A", 12}, {"B", 12}, {"C", 12}}, keys(s.tracker.Turns()))
}

func (s *TrackerTestSuite) TestSnapshotRestore() {
	s.newTracker()
	s.Require().NoError(s.tracker.Start(s.ctx))
	s.Require().NoError(s.tracker.MoveToPhase(s.ctx, 8, "actor-a"))

	raw, err := json.Marshal(s.tracker.Snapshot())
	s.Require().NoError(err)

	var snap tracker.Snapshot
	s.Require().NoError(json.Unmarshal(raw, &snap))

	restored, err := tracker.Restore(s.ctx, &snap, s.tieBreaker)
	s.Require().NoError(err)

	s.Equal(s.tracker.Current(), restored.Current())
	s.Equal(keys(s.tracker.Turns()), keys(restored.Turns()))
}

func (s *TrackerTestSuite) TestRestore_NotStarted() {
	restored, err := tracker.Restore(s.ctx, &tracker.Snapshot{}, s.tieBreaker)
	s.Require().NoError(err)
	s.False(restored.Started())

	_, err = tracker.Restore(s.ctx, nil, s.tieBreaker)
	s.True(errors.IsInvalidArgument(err))
}

func TestTrackerSuite(t *testing.T) {
	suite.Run(t, new(TrackerTestSuite))
}
