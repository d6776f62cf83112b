package session

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/intern-dashboard/internal/events"
	"github.com/spec-kit/intern-dashboard/internal/observability"
)

// ManagerConfig configures a Manager.
type ManagerConfig struct {
	StorageKey     string
	IdleTTL        time.Duration
	HydrateTimeout time.Duration
}

type entry struct {
	store    *Store
	lastSeen time.Time
}

// Manager owns the store of every live browser session.
type Manager struct {
	cfg        ManagerConfig
	persister  Persister
	sealer     *Sealer
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
	now        func() time.Time

	mu     sync.Mutex
	stores map[string]*entry
}

// NewManager wires a manager. persister may be nil for process-local sessions.
func NewManager(cfg ManagerConfig, persister Persister, sealer *Sealer, dispatcher events.Dispatcher, logger *zap.Logger, metrics *observability.Metrics) *Manager {
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = time.Hour
	}
	if cfg.HydrateTimeout <= 0 {
		cfg.HydrateTimeout = 5 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		cfg:        cfg,
		persister:  persister,
		sealer:     sealer,
		dispatcher: dispatcher,
		logger:     logger,
		metrics:    metrics,
		now:        time.Now,
		stores:     make(map[string]*entry),
	}
}

// Acquire returns the store for sessionID, creating it and starting its
// hydration in the background on first sight.
func (m *Manager) Acquire(sessionID string) *Store {
	m.mu.Lock()
	if e, ok := m.stores[sessionID]; ok {
		e.lastSeen = m.now()
		m.mu.Unlock()
		return e.store
	}

	store := NewStore(StoreOptions{
		SessionID:  sessionID,
		StorageKey: m.cfg.StorageKey,
		Persister:  m.persister,
		Sealer:     m.sealer,
		Dispatcher: m.dispatcher,
		Logger:     m.logger,
	})
	m.stores[sessionID] = &entry{store: store, lastSeen: m.now()}
	count := len(m.stores)
	m.mu.Unlock()

	m.metrics.SetActiveSessions(count)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), m.cfg.HydrateTimeout)
		defer cancel()
		store.Hydrate(ctx)
	}()
	return store
}

// Release forgets the store of sessionID. Its persisted credential, if any,
// is left alone.
func (m *Manager) Release(sessionID string) {
	m.mu.Lock()
	delete(m.stores, sessionID)
	count := len(m.stores)
	m.mu.Unlock()
	m.metrics.SetActiveSessions(count)
}

// Sweep drops stores idle for longer than the configured TTL. The persisted
// credential is kept, so a returning browser hydrates again.
func (m *Manager) Sweep(ctx context.Context) int {
	cutoff := m.now().Add(-m.cfg.IdleTTL)

	m.mu.Lock()
	var evicted []string
	for id, e := range m.stores {
		if e.lastSeen.Before(cutoff) {
			delete(m.stores, id)
			evicted = append(evicted, id)
		}
	}
	count := len(m.stores)
	m.mu.Unlock()

	m.metrics.SetActiveSessions(count)
	if m.dispatcher != nil {
		for _, id := range evicted {
			_ = m.dispatcher.Publish(ctx, events.Event{Type: events.EventSessionEvicted, SessionID: id, Timestamp: m.now().UTC()})
		}
	}
	return len(evicted)
}

// Len reports the number of stores in memory.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.stores)
}
