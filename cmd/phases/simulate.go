package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-phases/internal/config"
	"github.com/KirkDiggler/rpg-phases/internal/errors"
	"github.com/KirkDiggler/rpg-phases/internal/orchestrators/dice"
	"github.com/KirkDiggler/rpg-phases/internal/orchestrators/encounter"
	"github.com/KirkDiggler/rpg-phases/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-phases/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-phases/internal/redis"
	dicesession "github.com/KirkDiggler/rpg-phases/internal/repositories/dice_session"
	"github.com/KirkDiggler/rpg-phases/internal/repositories/encounters"
)

var (
	simulateCombatants []string
	simulateChanges    []string
	simulateTurns      int
	simulateKeep       bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run an encounter through a number of turns",
	Long: `simulate starts an encounter, advances it turn by turn and prints who acts.
State is stored in Redis when PHASES_REDIS_ENDPOINT is set, in memory otherwise.`,
	Example: `  phases simulate --combatant hero:18:4 --combatant thug:14:3 --turns 12 --change hero:6@5`,
	Args:    cobra.NoArgs,
	RunE:    runSimulate,
}

func init() {
	simulateCmd.Flags().StringArrayVar(&simulateCombatants, "combatant", nil, "combatant as id:dex:spd[:init] (repeatable)")
	simulateCmd.Flags().StringArrayVar(&simulateChanges, "change", nil, "speed change as id:spd@turn, applied before that turn (repeatable)")
	simulateCmd.Flags().IntVar(&simulateTurns, "turns", 10, "number of turns to advance")
	simulateCmd.Flags().BoolVar(&simulateKeep, "keep", false, "keep the encounter in storage when done")
}

// deps are the services a simulation runs against
type deps struct {
	encounters encounter.Service
	close      func() error
}

func buildDeps(c *config.Config) (*deps, error) {
	var (
		encounterRepo encounters.Repository  = encounters.NewInMemory()
		sessionRepo   dicesession.Repository = dicesession.NewInMemoryRepository(nil)
		closeFn                              = func() error { return nil }
	)

	if c.UseRedis() {
		client, err := redis.NewClient(c.RedisEndpoint, c.RedisOptions())
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to create redis client")
		}
		closeFn = client.Close

		encounterRepo, err = encounters.NewRedis(&encounters.RedisConfig{Client: client, TTL: c.EncounterTTL})
		if err != nil {
			return nil, err
		}
		sessionRepo, err = dicesession.NewRedisRepository(&dicesession.Config{Client: client, Clock: clock.New()})
		if err != nil {
			return nil, err
		}
		slog.Debug("Using redis storage", "endpoint", c.RedisEndpoint)
	}

	diceService, err := dice.NewOrchestrator(&dice.Config{
		DiceSessionRepo: sessionRepo,
		IDGenerator:     idgen.NewUUID("roll"),
		SessionTTL:      c.DiceSessionTTL,
	})
	if err != nil {
		return nil, err
	}

	svc, err := encounter.NewOrchestrator(&encounter.Config{
		IDGenerator: idgen.NewUUID("enc"),
		Repository:  encounterRepo,
		DiceService: diceService,
	})
	if err != nil {
		return nil, err
	}

	return &deps{encounters: svc, close: closeFn}, nil
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	if simulateTurns < 0 {
		return errors.InvalidArgument("turns must not be negative")
	}
	inputs, err := parseCombatants(simulateCombatants)
	if err != nil {
		return err
	}
	changes := make(map[int][]speedChange)
	for _, s := range simulateChanges {
		change, err := parseSpeedChange(s)
		if err != nil {
			return err
		}
		changes[change.AtTurn] = append(changes[change.AtTurn], change)
	}

	d, err := buildDeps(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = d.close() }()

	return simulate(cmd, d.encounters, inputs, changes, simulateTurns, simulateKeep)
}

func simulate(
	cmd *cobra.Command,
	svc encounter.Service,
	inputs []encounter.CombatantInput,
	changes map[int][]speedChange,
	turns int,
	keep bool,
) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	started, err := svc.StartEncounter(ctx, &encounter.StartEncounterInput{
		Name:       "simulation",
		Combatants: inputs,
	})
	if err != nil {
		return err
	}
	id := started.EncounterID
	printCurrent(cmd, 0, started.Order)

	for turn := 1; turn <= turns; turn++ {
		for _, change := range changes[turn] {
			if _, err := svc.ChangeSpeed(ctx, &encounter.ChangeSpeedInput{
				EncounterID: id,
				CombatantID: change.CombatantID,
				Speed:       change.Speed,
			}); err != nil {
				return err
			}
			fmt.Fprintf(out, "         %s changes to SPD %d\n", change.CombatantID, change.Speed)
		}

		next, err := svc.NextTurn(ctx, &encounter.NextTurnInput{EncounterID: id})
		if err != nil {
			return err
		}
		printCurrent(cmd, turn, next.Order)
	}

	if keep {
		fmt.Fprintf(out, "encounter %s kept\n", id)
		return nil
	}
	return endEncounter(ctx, svc, id)
}

func endEncounter(ctx context.Context, svc encounter.Service, id string) error {
	_, err := svc.EndEncounter(ctx, &encounter.EndEncounterInput{EncounterID: id})
	return err
}

func printCurrent(cmd *cobra.Command, turn int, order *encounter.TurnOrder) {
	out := cmd.OutOrStdout()
	if order.Current == nil {
		fmt.Fprintf(out, "turn %3d  round %d  nobody can act\n", turn, order.Round)
		return
	}
	fmt.Fprintf(out, "turn %3d  round %d  segment %2d  %s (DEX %d)\n",
		turn, order.Round, order.Current.Segment, order.Current.CombatantID, order.Current.Dexterity)
}
