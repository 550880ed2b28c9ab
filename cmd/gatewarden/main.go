package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/groblegark/gatewarden/internal/client"
	"github.com/groblegark/gatewarden/internal/ui"
)

var (
	httpURL    string
	authToken  string
	jsonOutput bool

	gateClient client.GateClient
)

func defaultHTTPURL() string {
	if s := os.Getenv("GATEWARDEN_HTTP_URL"); s != "" {
		return s
	}
	return "http://localhost:8080"
}

var rootCmd = &cobra.Command{
	Use:   "gatewarden <command>",
	Short: "Admission gate for chat groups",
	Long: `gatewarden restricts new group members until they answer a knowledge
check question, and removes the ones who can't.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !ui.ShouldUseColor() {
			ui.ForceNoColor()
		}
		gateClient = client.NewHTTPClient(httpURL, authToken)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if gateClient != nil {
			gateClient.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&httpURL, "http-url", defaultHTTPURL(), "server URL")
	rootCmd.PersistentFlags().StringVar(&authToken, "token", os.Getenv("GATEWARDEN_AUTH_TOKEN"), "bearer token for the server API")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")

	rootCmd.AddGroup(
		&cobra.Group{ID: "gates", Title: "Gates:"},
		&cobra.Group{ID: "system", Title: "System:"},
	)
	cobra.EnableCommandSorting = false

	// Gates
	rootCmd.AddCommand(gatesCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(kickCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(simulateCmd)

	// System
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(reloadCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
