package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/groblegark/gatewarden/internal/client"
	"github.com/groblegark/gatewarden/internal/ui"
)

// simulate feeds join/message events through the HTTP ingest endpoints,
// the same path a chat platform adapter uses. Handy for exercising the
// gate without a live Telegram group.
var simulateCmd = &cobra.Command{
	Use:     "simulate",
	Short:   "Inject join/message events over the ingest API",
	GroupID: "gates",
}

var simulateJoinCmd = &cobra.Command{
	Use:   "join <group> <member>",
	Short: "Report a member joining a group",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := parseKeyArgs(args)
		if err != nil {
			return err
		}
		rec, err := gateClient.ReportJoin(context.Background(), key)
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

var simulateMessageCmd = &cobra.Command{
	Use:   "message <group> <member> <text>...",
	Short: "Report a message from a member (judged as an answer when gated)",
	Args:  cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := parseKeyArgs(args[:2])
		if err != nil {
			return err
		}
		text := strings.Join(args[2:], " ")
		if err := gateClient.ReportMessage(context.Background(), key, text); err != nil {
			return err
		}
		// The engine resolves gates inline, so the record's fate shows up
		// immediately.
		if _, err := gateClient.GetGate(context.Background(), key); err != nil {
			var apiErr *client.APIError
			if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
				fmt.Printf("%s %s\n", key, ui.RenderMuted("gate closed"))
				return nil
			}
			return err
		}
		fmt.Printf("%s %s\n", key, ui.RenderMuted("still gated"))
		return nil
	},
}

func init() {
	simulateCmd.AddCommand(simulateJoinCmd)
	simulateCmd.AddCommand(simulateMessageCmd)
}
