package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/groblegark/gatewarden/internal/model"
	"github.com/groblegark/gatewarden/internal/ui"
)

var statusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Show server health and gate statistics",
	GroupID: "system",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		health, err := gateClient.Health(ctx)
		if err != nil {
			return fmt.Errorf("server unreachable at %s: %w", httpURL, err)
		}
		stats, err := gateClient.Stats(ctx)
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(map[string]any{"health": health, "stats": stats})
			return nil
		}
		fmt.Printf("Server:     %s (%s)\n", httpURL, ui.RenderPass(health))
		fmt.Printf("Open gates: %d\n", stats.Gates)
		fmt.Printf("  pending:   %d\n", stats.ByPhase[model.PhasePending.String()])
		fmt.Printf("  answering: %d\n", stats.ByPhase[model.PhaseAnswering.String()])
		fmt.Printf("Timers:     %d\n", stats.Timers)
		fmt.Printf("Questions:  %d\n", stats.Questions)
		return nil
	},
}
