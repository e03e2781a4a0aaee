package session

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/medchain/portal/internal/tokenstore"
)

// Registry hands out one Manager per portal client. Managers are created
// lazily on first sight of a client id and kept for the life of the process;
// their durable state lives in the token store.
type Registry struct {
	store    tokenstore.Store
	upstream Verifier
	logger   *zap.Logger

	mu       sync.Mutex
	managers map[string]*Manager
}

// NewRegistry builds an empty registry.
func NewRegistry(store tokenstore.Store, upstream Verifier, logger *zap.Logger) *Registry {
	return &Registry{
		store:    store,
		upstream: upstream,
		logger:   logger,
		managers: make(map[string]*Manager),
	}
}

// Manager returns the session manager for the client, creating it on demand.
func (r *Registry) Manager(clientID string) *Manager {
	r.mu.Lock()
	defer r.mu.Unlock()
	mgr, ok := r.managers[clientID]
	if !ok {
		mgr = NewManager(clientID, r.store, r.upstream, r.logger)
		r.managers[clientID] = mgr
	}
	return mgr
}

// NewClientID mints an opaque id for a browser that arrived without one.
func (r *Registry) NewClientID() string {
	return uuid.NewString()
}
