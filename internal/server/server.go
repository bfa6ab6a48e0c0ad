// Package server implements the HTTP API and static frontend serving.
package server

import (
	"context"
	"log/slog"

	"github.com/groblegark/onboard/internal/events"
	"github.com/groblegark/onboard/internal/store"
)

// Exporter uploads a finished snapshot to its destination. Nil when no
// destination is configured; the export route then only streams the snapshot
// to the caller.
type Exporter interface {
	Write(ctx context.Context, data []byte) error
}

// Server holds the dependencies shared by all HTTP handlers. Handlers are
// stateless: each request performs at most one logical store operation.
type Server struct {
	store     store.Store
	publisher events.Publisher
	exporter  Exporter
}

// Option configures optional Server dependencies.
type Option func(*Server)

// WithExporter sets the snapshot upload destination for the export route.
func WithExporter(e Exporter) Option {
	return func(s *Server) { s.exporter = e }
}

// New returns a Server backed by the given store and publisher.
func New(st store.Store, p events.Publisher, opts ...Option) *Server {
	s := &Server{store: st, publisher: p}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// publish emits an event best-effort. Failures are logged and never surfaced
// to the request that triggered them.
func (s *Server) publish(ctx context.Context, topic string, event any) {
	if err := s.publisher.Publish(ctx, topic, event); err != nil {
		slog.Warn("failed to publish event", "topic", topic, "error", err)
	}
}

// inputError indicates invalid user input. The transport layer maps it to 400.
type inputError string

func (e inputError) Error() string { return string(e) }
