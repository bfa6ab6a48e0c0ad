// Package client provides a transport-agnostic interface for the onboard
// service and an HTTP/JSON implementation that talks to the REST API.
package client

import (
	"context"

	"github.com/groblegark/onboard/internal/model"
)

// OnboardClient is the interface that all ob CLI commands use to communicate
// with the onboard server. It is implemented by HTTPClient.
type OnboardClient interface {
	// Client CRUD
	ListClients(ctx context.Context) ([]*model.Client, error)
	CreateClient(ctx context.Context, name string) (*model.Client, error)
	RenameClient(ctx context.Context, id, name string) (*model.Client, error)
	DeleteClient(ctx context.Context, id string) error

	// Checklist state
	GetState(ctx context.Context, id string) (model.State, error)
	PutState(ctx context.Context, id string, state model.State) error

	// Admin
	ResetAll(ctx context.Context) error
	Export(ctx context.Context) ([]byte, error)

	// Health
	Health(ctx context.Context) (bool, error)

	// Lifecycle
	Close() error
}
