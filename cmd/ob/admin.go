package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var resetForce bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all clients and state (requires admin routes on the server)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetForce {
			fmt.Printf("This deletes every client and all checklist state on %s. Continue? [y/N] ", serverURL)
			line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			if answer := strings.ToLower(strings.TrimSpace(line)); answer != "y" && answer != "yes" {
				fmt.Println("Aborted")
				return nil
			}
		}

		if err := api.ResetAll(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("All clients and state deleted")
		return nil
	},
}

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download a NDJSON snapshot of all clients and state",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := api.Export(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if exportOut == "" || exportOut == "-" {
			os.Stdout.Write(data)
			return nil
		}
		if err := os.WriteFile(exportOut, data, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %d bytes to %s\n", len(data), exportOut)
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVarP(&resetForce, "force", "f", false, "skip the confirmation prompt")
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "write the snapshot to a file instead of stdout")
}
