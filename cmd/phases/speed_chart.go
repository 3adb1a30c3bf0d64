package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-phases/internal/combatorder"
)

var speedChartCmd = &cobra.Command{
	Use:   "speed-chart",
	Short: "Print the Speed Chart",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SPD\tSEGMENTS")
		for speed := 0; speed <= combatorder.SegmentsPerTurn; speed++ {
			phases, err := combatorder.PhasesForSpeed(speed)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%d\t%s\n", speed, joinInts(phases))
		}
		return w.Flush()
	},
}

func joinInts(values []int) string {
	if len(values) == 0 {
		return "-"
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, " ")
}
