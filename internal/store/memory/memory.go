// Package memory implements the store.Store interface with an in-process map.
// Nothing survives a restart; the API contract is otherwise identical to the
// postgres backend.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/groblegark/onboard/internal/model"
	"github.com/groblegark/onboard/internal/store"
)

// MemoryStore implements store.Store with mutex-guarded maps.
type MemoryStore struct {
	mu      sync.RWMutex
	clients map[string]*model.Client
	states  map[string]model.State
}

// Compile-time check that MemoryStore implements store.Store.
var _ store.Store = (*MemoryStore)(nil)

// New returns an empty in-memory store.
func New() *MemoryStore {
	return &MemoryStore{
		clients: make(map[string]*model.Client),
		states:  make(map[string]model.State),
	}
}

func (s *MemoryStore) ListClients(_ context.Context) ([]*model.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	clients := make([]*model.Client, 0, len(s.clients))
	for _, c := range s.clients {
		clone := *c
		clients = append(clients, &clone)
	}
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].Name < clients[j].Name
	})
	return clients, nil
}

func (s *MemoryStore) UpsertClient(_ context.Context, c *model.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *c
	s.clients[c.ID] = &clone
	if _, ok := s.states[c.ID]; !ok {
		s.states[c.ID] = cloneState(model.EmptyState)
	}
	return nil
}

func (s *MemoryStore) EnsureClient(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.clients[id]; !ok {
		s.clients[id] = &model.Client{ID: id, Name: id}
	}
	if _, ok := s.states[id]; !ok {
		s.states[id] = cloneState(model.EmptyState)
	}
	return nil
}

func (s *MemoryStore) RenameClient(_ context.Context, id, name string) (*model.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.clients[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	c.Name = name
	clone := *c
	return &clone, nil
}

func (s *MemoryStore) DeleteClient(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.clients[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.clients, id)
	delete(s.states, id)
	return nil
}

func (s *MemoryStore) GetState(_ context.Context, id string) (model.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.states[id]
	if !ok {
		return cloneState(model.EmptyState), nil
	}
	return cloneState(state), nil
}

func (s *MemoryStore) PutState(_ context.Context, id string, state model.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.states[id] = cloneState(state)
	return nil
}

func (s *MemoryStore) ResetAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clients = make(map[string]*model.Client)
	s.states = make(map[string]model.State)
	return nil
}

// Close is a no-op; there is no connection to release.
func (s *MemoryStore) Close() error { return nil }

// cloneState copies the raw bytes so callers cannot mutate stored state.
func cloneState(state model.State) model.State {
	clone := make(model.State, len(state))
	copy(clone, state)
	return clone
}
