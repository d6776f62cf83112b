// Package session holds the credential of each browser session.
//
// A Store is created per session id by a Manager, starts hydrating from the
// persisted copy straight away, and reports Ready exactly once that load has
// finished, whether or not it found anything. Nothing may decide about
// authorization before Ready.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/intern-dashboard/internal/events"
)

// Persister keeps the credential across restarts.
type Persister interface {
	Load(ctx context.Context, key string) (string, bool, error)
	Save(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Snapshot is a consistent read of a store.
type Snapshot struct {
	SessionID  string
	Credential string
	Ready      bool
}

// Authenticated reports whether a credential is present.
func (s Snapshot) Authenticated() bool {
	return s.Credential != ""
}

// Listener observes store changes.
type Listener func(Snapshot)

// Store is the credential store of one browser session.
type Store struct {
	id         string
	key        string
	persister  Persister
	sealer     *Sealer
	dispatcher events.Dispatcher
	logger     *zap.Logger
	ioTimeout  time.Duration

	mu         sync.RWMutex
	credential string
	written    bool
	ready      bool
	listeners  map[int]Listener
	nextID     int

	readyCh     chan struct{}
	hydrateOnce sync.Once
}

// StoreOptions configures NewStore.
type StoreOptions struct {
	SessionID  string
	StorageKey string
	Persister  Persister
	Sealer     *Sealer
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	IOTimeout  time.Duration
}

// NewStore builds a store that is not yet hydrated. Call Hydrate once.
func NewStore(opts StoreOptions) *Store {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.IOTimeout <= 0 {
		opts.IOTimeout = 2 * time.Second
	}
	return &Store{
		id:         opts.SessionID,
		key:        opts.StorageKey + ":" + opts.SessionID,
		persister:  opts.Persister,
		sealer:     opts.Sealer,
		dispatcher: opts.Dispatcher,
		logger:     opts.Logger.With(zap.String("session_id", opts.SessionID)),
		ioTimeout:  opts.IOTimeout,
		listeners:  make(map[int]Listener),
		readyCh:    make(chan struct{}),
	}
}

// ID returns the browser session id.
func (s *Store) ID() string {
	return s.id
}

// Hydrate loads the persisted credential and marks the store ready. Only the
// first call does anything; later calls return immediately.
func (s *Store) Hydrate(ctx context.Context) {
	s.hydrateOnce.Do(func() {
		loaded, loadErr := s.load(ctx)

		s.mu.Lock()
		if !s.written {
			s.credential = loaded
		}
		s.ready = true
		snap := s.snapshotLocked()
		listeners := s.listenersLocked()
		s.mu.Unlock()

		close(s.readyCh)

		payload := events.HydratedPayload{HasCredential: snap.Credential != ""}
		if loadErr != nil {
			payload.LoadError = loadErr.Error()
		}
		s.publish(ctx, events.EventSessionHydrated, payload)
		notify(listeners, snap)
	})
}

func (s *Store) load(ctx context.Context) (string, error) {
	if s.persister == nil {
		return "", nil
	}
	ctx, cancel := context.WithTimeout(ctx, s.ioTimeout)
	defer cancel()

	raw, ok, err := s.persister.Load(ctx, s.key)
	if err != nil {
		s.logger.Warn("credential hydration failed, continuing signed out", zap.Error(err))
		return "", err
	}
	if !ok {
		return "", nil
	}
	token, err := s.sealer.Open(raw)
	if err != nil {
		s.logger.Warn("persisted credential unreadable, discarding", zap.Error(err))
		return "", err
	}
	return token, nil
}

// SetCredential stores token and marks the session authenticated.
func (s *Store) SetCredential(ctx context.Context, token string, payload events.LoggedInPayload) {
	s.mu.Lock()
	s.credential = token
	s.written = true
	snap := s.snapshotLocked()
	listeners := s.listenersLocked()
	s.mu.Unlock()

	s.persist(ctx, token)
	s.publish(ctx, events.EventSessionLoggedIn, payload)
	notify(listeners, snap)
}

// Logout clears the credential.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	s.credential = ""
	s.written = true
	snap := s.snapshotLocked()
	listeners := s.listenersLocked()
	s.mu.Unlock()

	s.persist(ctx, "")
	s.publish(ctx, events.EventSessionLoggedOut, nil)
	notify(listeners, snap)
}

// Credential returns the current credential, empty when signed out.
func (s *Store) Credential() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.credential
}

// Ready reports whether hydration has completed.
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// WaitReady blocks until hydration completes or ctx ends, and reports readiness.
func (s *Store) WaitReady(ctx context.Context) bool {
	select {
	case <-s.readyCh:
		return true
	case <-ctx.Done():
		return s.Ready()
	}
}

// Snapshot returns credential and readiness read together.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Subscribe registers l for every later change and returns a function removing it.
func (s *Store) Subscribe(l Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{SessionID: s.id, Credential: s.credential, Ready: s.ready}
}

func (s *Store) listenersLocked() []Listener {
	out := make([]Listener, 0, len(s.listeners))
	for i := 0; i < s.nextID; i++ {
		if l, ok := s.listeners[i]; ok {
			out = append(out, l)
		}
	}
	return out
}

func (s *Store) persist(ctx context.Context, token string) {
	if s.persister == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.ioTimeout)
	defer cancel()

	var err error
	if token == "" {
		err = s.persister.Delete(ctx, s.key)
	} else {
		var sealed string
		sealed, err = s.sealer.Seal(token)
		if err == nil {
			err = s.persister.Save(ctx, s.key, sealed)
		}
	}
	if err != nil {
		s.logger.Warn("credential persistence failed", zap.Error(err))
	}
}

func (s *Store) publish(ctx context.Context, t events.EventType, payload any) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      t,
		SessionID: s.id,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	})
}

func notify(listeners []Listener, snap Snapshot) {
	for _, l := range listeners {
		l(snap)
	}
}
