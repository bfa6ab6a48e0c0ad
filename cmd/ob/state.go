package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/groblegark/onboard/internal/model"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Read or replace a client's checklist state",
}

var stateShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a client's checklist state",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		state, err := api.GetState(context.Background(), args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			fmt.Println(string(state))
			return nil
		}
		printState(args[0], state)
		return nil
	},
}

var stateSetCmd = &cobra.Command{
	Use:   "set <id> [json]",
	Short: "Replace a client's checklist state (reads stdin when json is \"-\" or omitted)",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := stateArg(args)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if err := api.PutState(context.Background(), args[0], raw); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Updated state for %s\n", args[0])
		return nil
	},
}

// stateArg resolves the state payload from the command line or stdin and
// rejects anything that is not a JSON object before it goes on the wire.
func stateArg(args []string) (model.State, error) {
	var raw []byte
	if len(args) < 2 || args[1] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		raw = data
	} else {
		raw = []byte(args[1])
	}

	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return nil, fmt.Errorf("state must be a JSON object")
	}
	return model.State(raw), nil
}

func init() {
	stateCmd.AddCommand(stateShowCmd)
	stateCmd.AddCommand(stateSetCmd)
}
