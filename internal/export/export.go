// Package export writes point-in-time snapshots of all clients and their
// checklist state as JSONL, either to an io.Writer or to an S3 bucket.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/groblegark/onboard/internal/model"
	"github.com/groblegark/onboard/internal/store"
)

// header is the first JSONL record written by SnapshotJSONL.
type header struct {
	Version     string    `json:"version"`
	Type        string    `json:"type"`
	Timestamp   time.Time `json:"timestamp"`
	ClientCount int       `json:"client_count"`
}

// record wraps a single JSONL line with a type discriminator.
type record struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// clientSnapshot is one exported client with its embedded state.
type clientSnapshot struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	State model.State `json:"state"`
}

// SnapshotJSONL writes all clients and their state from the store as JSONL to
// w: a header record followed by one client record per line, ordered the way
// ListClients orders them (ascending by name).
func SnapshotJSONL(ctx context.Context, s store.Store, w io.Writer) error {
	clients, err := s.ListClients(ctx)
	if err != nil {
		return fmt.Errorf("list clients: %w", err)
	}

	enc := json.NewEncoder(w)
	if err := enc.Encode(header{
		Version:     "1",
		Type:        "header",
		Timestamp:   time.Now().UTC(),
		ClientCount: len(clients),
	}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, c := range clients {
		state, err := s.GetState(ctx, c.ID)
		if err != nil {
			return fmt.Errorf("get state for %s: %w", c.ID, err)
		}
		if err := enc.Encode(record{
			Type: "client",
			Data: clientSnapshot{ID: c.ID, Name: c.Name, State: state},
		}); err != nil {
			return fmt.Errorf("write client %s: %w", c.ID, err)
		}
	}

	return nil
}
