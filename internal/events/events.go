// Package events defines the event topics and payloads published by the
// server, plus the Publisher interface with NATS and no-op implementations.
package events

import (
	"context"

	"github.com/groblegark/onboard/internal/model"
)

// Event topic constants
const (
	TopicClientCreated = "onboard.client.created"
	TopicClientRenamed = "onboard.client.renamed"
	TopicClientDeleted = "onboard.client.deleted"
	TopicStateUpdated  = "onboard.state.updated"
)

// Event types

type ClientCreated struct {
	Client *model.Client `json:"client"`
}

type ClientRenamed struct {
	Client *model.Client `json:"client"`
}

type ClientDeleted struct {
	ClientID string `json:"client_id"`
}

type StateUpdated struct {
	ClientID string      `json:"client_id"`
	State    model.State `json:"state"`
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
