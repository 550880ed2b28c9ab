package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/groblegark/gatewarden/internal/ui"
)

var resolveDeny bool

var resolveCmd = &cobra.Command{
	Use:     "resolve <group> <member>",
	Short:   "Manually close a gate (approve by default)",
	GroupID: "gates",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := parseKeyArgs(args)
		if err != nil {
			return err
		}
		if err := gateClient.ResolveGate(context.Background(), key, !resolveDeny); err != nil {
			return err
		}
		if resolveDeny {
			fmt.Printf("%s %s\n", key, ui.RenderRemove("removed"))
		} else {
			fmt.Printf("%s %s\n", key, ui.RenderPass("approved"))
		}
		return nil
	},
}

func init() {
	resolveCmd.Flags().BoolVar(&resolveDeny, "deny", false, "remove the member instead of approving")
}
