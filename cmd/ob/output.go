package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/groblegark/onboard/internal/model"
	"github.com/groblegark/onboard/internal/ui"
)

func printClientJSON(client *model.Client) {
	data, err := json.MarshalIndent(client, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func printClient(client *model.Client) {
	fmt.Printf("ID:   %s\n", ui.RenderAccent(client.ID))
	fmt.Printf("Name: %s\n", client.Name)
}

func printClientListJSON(clients []*model.Client) {
	if clients == nil {
		clients = []*model.Client{}
	}
	data, err := json.MarshalIndent(clients, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func printClientListTable(clients []*model.Client) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME")
	for _, c := range clients {
		fmt.Fprintf(w, "%s\t%s\n", ui.RenderAccent(c.ID), c.Name)
	}
	w.Flush()
	fmt.Printf("\n%d clients\n", len(clients))
}

// printState renders checklist state as a sorted key list with completed
// boolean items marked, falling back to raw JSON for non-flat objects.
func printState(id string, state model.State) {
	var items map[string]any
	if err := json.Unmarshal(state, &items); err != nil || items == nil {
		fmt.Println(string(state))
		return
	}

	fmt.Printf("Client: %s\n", ui.RenderAccent(id))
	if len(items) == 0 {
		fmt.Println(ui.RenderMuted("(no checklist state)"))
		return
	}

	keys := make([]string, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		switch v := items[k].(type) {
		case bool:
			if v {
				fmt.Printf("  %s %s\n", ui.RenderDone("[x]"), k)
			} else {
				fmt.Printf("  [ ] %s\n", k)
			}
		default:
			raw, _ := json.Marshal(v)
			fmt.Printf("  %s = %s\n", k, ui.RenderMuted(string(raw)))
		}
	}
}
