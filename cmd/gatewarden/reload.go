package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var reloadCmd = &cobra.Command{
	Use:     "reload",
	Short:   "Reload the server's question bank from its source",
	GroupID: "system",
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := gateClient.ReloadQuestions(context.Background())
		if err != nil {
			return err
		}
		fmt.Printf("Question bank reloaded: %d question(s)\n", n)
		return nil
	},
}
