package store

import (
	"context"
	"errors"

	"github.com/groblegark/onboard/internal/model"
)

// ErrNotFound is returned when an operation targets a client id that does not
// exist. Reads of state are the exception: unknown ids read as empty state.
var ErrNotFound = errors.New("not found")

// Store defines the persistence interface for clients and their checklist
// state. The postgres and memory backends are interchangeable implementations
// of this contract.
type Store interface {
	// ListClients returns all clients sorted ascending by name.
	ListClients(ctx context.Context) ([]*model.Client, error)

	// UpsertClient inserts the client or, when the id already exists,
	// overwrites its name. It also ensures an empty state row exists for the
	// id without touching any state already stored.
	UpsertClient(ctx context.Context, client *model.Client) error

	// EnsureClient creates the client with name = id when the id does not
	// exist, including its empty state row. Existing clients are left
	// untouched. Idempotent, so concurrent callers racing on a new id are
	// benign.
	EnsureClient(ctx context.Context, id string) error

	// RenameClient updates the display name only. Returns ErrNotFound when
	// the id does not exist.
	RenameClient(ctx context.Context, id, name string) (*model.Client, error)

	// DeleteClient removes the client and, transitively, its state row.
	// Returns ErrNotFound when the id does not exist.
	DeleteClient(ctx context.Context, id string) error

	// GetState returns the stored state for id, or the empty object when no
	// client or state row exists.
	GetState(ctx context.Context, id string) (model.State, error)

	// PutState replaces the whole state object for id. The caller is expected
	// to have ensured the client row exists via EnsureClient first; the two
	// calls are deliberately not wrapped in a transaction (last commit wins
	// between concurrent writers).
	PutState(ctx context.Context, id string, state model.State) error

	// ResetAll wipes every client and state row.
	ResetAll(ctx context.Context) error

	// Lifecycle
	Close() error
}
