package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/groblegark/gatewarden/internal/ui"
)

var kickCmd = &cobra.Command{
	Use:     "kick <group> <member>",
	Short:   "Remove a gated member from the group",
	GroupID: "gates",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := parseKeyArgs(args)
		if err != nil {
			return err
		}
		if err := gateClient.KickGate(context.Background(), key); err != nil {
			return err
		}
		fmt.Printf("%s %s\n", key, ui.RenderRemove("removed"))
		return nil
	},
}
