package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-phases/internal/combatorder"
	"github.com/KirkDiggler/rpg-phases/internal/errors"
	"github.com/KirkDiggler/rpg-phases/internal/orchestrators/dice"
	"github.com/KirkDiggler/rpg-phases/internal/pkg/idgen"
	dicesession "github.com/KirkDiggler/rpg-phases/internal/repositories/dice_session"
)

var (
	orderCombatants []string
	orderRound      int
)

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Print the turn order of one round",
	Long: `order computes the phase chart for the given combatants, rolls 3d6 to break
Dexterity ties and prints the turns of the round in order.`,
	Example: `  phases order --combatant hero:18:4 --combatant thug:18:3 --round 2`,
	Args:    cobra.NoArgs,
	RunE:    runOrder,
}

func init() {
	orderCmd.Flags().StringArrayVar(&orderCombatants, "combatant", nil, "combatant as id:dex:spd[:init] (repeatable)")
	orderCmd.Flags().IntVar(&orderRound, "round", 2, "round number; round 1 only has segment 12")
}

func runOrder(cmd *cobra.Command, _ []string) error {
	if orderRound < 1 {
		return errors.InvalidArgument("round must be at least 1")
	}
	inputs, err := parseCombatants(orderCombatants)
	if err != nil {
		return err
	}

	diceService, err := dice.NewOrchestrator(&dice.Config{
		DiceSessionRepo: dicesession.NewInMemoryRepository(nil),
		IDGenerator:     idgen.NewSequential("roll"),
	})
	if err != nil {
		return err
	}

	descriptors := make([]combatorder.Descriptor, len(inputs))
	for i, in := range inputs {
		phases, err := combatorder.PhasesForSpeed(in.Speed)
		if err != nil {
			return errors.Wrapf(err, "combatant %s", in.ID)
		}
		descriptors[i] = combatorder.Descriptor{
			ID:         in.ID,
			ActorID:    in.ActorID,
			Dexterity:  in.Dexterity,
			Initiative: in.Initiative,
			Phases:     phases,
		}
	}

	order, err := combatorder.New(&combatorder.Config{
		TieBreaker: diceService.TieBreaker("cli"),
		Combatants: descriptors,
	})
	if err != nil {
		return err
	}
	if err := order.CalculatePhaseOrder(cmd.Context(), combatorder.ChartInput{}); err != nil {
		return err
	}
	chart, err := order.PhaseChart()
	if err != nil {
		return err
	}

	return printTurns(cmd, combatorder.Linearize(chart, orderRound))
}

func printTurns(cmd *cobra.Command, turns []combatorder.TurnEntry) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tSEG\tCOMBATANT\tDEX\tINIT")
	for i, turn := range turns {
		initiative := "-"
		if turn.Combatant.Initiative != nil {
			initiative = fmt.Sprint(*turn.Combatant.Initiative)
		}
		fmt.Fprintf(w, "%d\t%d\t%s\t%d\t%s\n", i+1, turn.Segment, turn.Combatant.ID, turn.Dexterity, initiative)
	}
	return w.Flush()
}
