package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/groblegark/gatewarden/internal/events"
)

var watchNATSURL string

var watchCmd = &cobra.Command{
	Use:     "watch",
	Short:   "Tail gate events from the event bus",
	GroupID: "gates",
	RunE: func(cmd *cobra.Command, args []string) error {
		if watchNATSURL == "" {
			return fmt.Errorf("no NATS URL: set GATEWARDEN_NATS_URL or --nats-url")
		}

		sub, err := events.NewNATSSubscriber(watchNATSURL)
		if err != nil {
			return fmt.Errorf("connect to NATS: %w", err)
		}
		defer sub.Close()

		// Wildcard over every gatewarden topic.
		ch, cancel, err := sub.Subscribe("gatewarden.>")
		if err != nil {
			return err
		}
		defer cancel()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		fmt.Fprintf(os.Stderr, "Watching %s (ctrl-c to stop)\n", watchNATSURL)
		for {
			select {
			case <-ctx.Done():
				return nil
			case data, ok := <-ch:
				if !ok {
					return nil
				}
				printWatchEvent(data)
			}
		}
	},
}

// printWatchEvent renders one raw event payload as a log line.
func printWatchEvent(data []byte) {
	if jsonOutput {
		fmt.Println(string(data))
		return
	}
	var ev struct {
		Key struct {
			GroupID  int64 `json:"group_id"`
			MemberID int64 `json:"member_id"`
		} `json:"key"`
		Reason string `json:"reason"`
	}
	_ = json.Unmarshal(data, &ev)
	ts := time.Now().Format("15:04:05")
	if ev.Reason != "" {
		fmt.Printf("%s  %d/%d  %s\n", ts, ev.Key.GroupID, ev.Key.MemberID, ev.Reason)
		return
	}
	fmt.Printf("%s  %s\n", ts, string(data))
}

func init() {
	watchCmd.Flags().StringVar(&watchNATSURL, "nats-url", os.Getenv("GATEWARDEN_NATS_URL"), "NATS server URL")
}
