package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/groblegark/onboard/internal/client"
	"github.com/groblegark/onboard/internal/ui"
)

var (
	serverURL  string
	authToken  string
	jsonOutput bool
	noColor    bool

	api client.OnboardClient
)

func defaultServer() string {
	if s := os.Getenv("ONBOARD_SERVER"); s != "" {
		return s
	}
	return "http://localhost:3000"
}

var rootCmd = &cobra.Command{
	Use:   "ob",
	Short: "CLI client and server for the onboard service",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if noColor || !ui.ShouldUseColor() {
			ui.ForceNoColor()
		}
		api = client.NewHTTPClient(serverURL, authToken)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if api != nil {
			api.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", defaultServer(), "onboard server base URL")
	rootCmd.PersistentFlags().StringVar(&authToken, "token", os.Getenv("ONBOARD_AUTH_TOKEN"), "bearer token for admin routes")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(stateCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
