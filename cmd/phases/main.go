// Package main is the entry point for the phases CLI
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/KirkDiggler/rpg-phases/internal/config"
	"github.com/KirkDiggler/rpg-phases/internal/errors"
)

var (
	logLevel string
	cfg      *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "phases",
	Short: "Hero System segmented combat order",
	Long: `phases computes Hero System 6E turn order: who acts in each of the twelve
segments of a round, in Dexterity order, with dice breaking ties.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error to the number of its gRPC status code so scripts
// can tell bad input from storage failures.
func exitCode(err error) int {
	var typed *errors.Error
	if !errors.As(err, &typed) {
		// cobra usage errors and the like
		return 1
	}
	switch code := status.Code(errors.ToGRPCError(err)); code {
	case codes.OK, codes.Unknown:
		return 1
	default:
		return int(code)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (overrides PHASES_LOG_LEVEL)")

	rootCmd.AddCommand(speedChartCmd)
	rootCmd.AddCommand(orderCmd)
	rootCmd.AddCommand(simulateCmd)
}

func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load()
	if err != nil {
		return err
	}
	if logLevel != "" {
		loaded.LogLevel = logLevel
		if err := loaded.Validate(); err != nil {
			return err
		}
	}
	cfg = loaded

	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.SlogLevel()})
	slog.SetDefault(slog.New(handler))
	return nil
}
