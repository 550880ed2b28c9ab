package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var gatesCmd = &cobra.Command{
	Use:     "gates",
	Short:   "Inspect open gates",
	GroupID: "gates",
}

var gatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all open gates",
	RunE: func(cmd *cobra.Command, args []string) error {
		recs, err := gateClient.ListGates(context.Background())
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(recs)
			return nil
		}
		printRecordListTable(recs)
		return nil
	},
}

var gatesShowCmd = &cobra.Command{
	Use:   "show <group> <member>",
	Short: "Show one member's gate",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := parseKeyArgs(args)
		if err != nil {
			return err
		}
		rec, err := gateClient.GetGate(context.Background(), key)
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(rec)
			return nil
		}
		printRecordTable(rec)
		return nil
	},
}

var gatesEventsCmd = &cobra.Command{
	Use:   "events <group> <member>",
	Short: "Show a gate's audit trail",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := parseKeyArgs(args)
		if err != nil {
			return err
		}
		evs, err := gateClient.GetGateEvents(context.Background(), key)
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(evs)
			return nil
		}
		if len(evs) == 0 {
			fmt.Printf("No events recorded for %s\n", key)
			return nil
		}
		printEventListTable(evs)
		return nil
	},
}

func init() {
	gatesCmd.AddCommand(gatesListCmd)
	gatesCmd.AddCommand(gatesShowCmd)
	gatesCmd.AddCommand(gatesEventsCmd)
}
