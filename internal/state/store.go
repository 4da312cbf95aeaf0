package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/BruksfildServices01/braids-scheduler/internal/infra/storage"
)

// ErrPersistence marks a failure of the persistence port. The in-memory
// state is rolled back whenever it is returned from Update.
var ErrPersistence = errors.New("persistence_failed")

const (
	RecordClients      = "clients"
	RecordAppointments = "appointments"
	RecordReports      = "reports"
	RecordFinances     = "finances"
	RecordKanban       = "kanban"
	RecordSettings     = "settings"
	RecordAuth         = "auth"
)

// SharedLockKey names the store-wide lock taken by every Update when the
// storage is shared between instances.
const SharedLockKey = "state"

// Mutex is a lock that other processes see too (see slotlock.Redis).
type Mutex interface {
	Lock(ctx context.Context, key string) (func(), error)
}

// Store owns the State of the process. It is read under a shared lock and
// mutated by one writer at a time; every successful mutation is flushed to
// storage before the lock is released.
//
// With a shared Mutex the storage is the source of truth: Update reloads
// every record under the store-wide lock before running fn, and View
// reloads before reading.
type Store struct {
	mu      sync.RWMutex
	storage storage.Storage
	prefix  string
	shared  Mutex

	state State
	auth  bool
}

type Option func(*Store)

// WithSharedLock is for several instances writing to the same storage.
func WithSharedLock(m Mutex) Option {
	return func(s *Store) {
		s.shared = m
	}
}

func NewStore(st storage.Storage, prefix string, opts ...Option) *Store {
	s := &Store{
		storage: st,
		prefix:  prefix,
		state:   Empty(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) key(record string) string {
	return s.prefix + record
}

// Hydrate loads every record, falling back to the matching part of defaults
// for records that were never stored.
func (s *Store) Hydrate(ctx context.Context, defaults State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.readLocked(ctx, defaults)
}

// readLocked replaces the in-memory state with the stored records. Records
// never stored take their value from base.
func (s *Store) readLocked(ctx context.Context, base State) error {
	st := base.clone()

	if err := load(ctx, s, RecordClients, &st.Clients); err != nil {
		return err
	}
	if err := load(ctx, s, RecordAppointments, &st.Appointments); err != nil {
		return err
	}
	if err := load(ctx, s, RecordReports, &st.SessionReports); err != nil {
		return err
	}
	if err := load(ctx, s, RecordFinances, &st.Finances); err != nil {
		return err
	}
	if err := load(ctx, s, RecordKanban, &st.KanbanTasks); err != nil {
		return err
	}
	if err := load(ctx, s, RecordSettings, &st.Settings); err != nil {
		return err
	}

	auth, err := s.readAuth(ctx)
	if err != nil {
		return err
	}

	s.state = st
	s.auth = auth
	return nil
}

func (s *Store) readAuth(ctx context.Context) (bool, error) {
	b, err := s.storage.Get(ctx, s.key(RecordAuth))
	switch {
	case err == nil:
		return string(b) == "true", nil
	case errors.Is(err, storage.ErrNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %s: %v", ErrPersistence, RecordAuth, err)
	}
}

// load leaves dst untouched when the record was never stored.
func load[T any](ctx context.Context, s *Store, record string, dst *T) error {
	b, err := s.storage.Get(ctx, s.key(record))
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPersistence, record, err)
	}

	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("%w: %s: decode: %v", ErrPersistence, record, err)
	}
	*dst = v
	return nil
}

// View runs fn with the current state under a read lock. fn must not mutate
// st nor keep references to its slices after returning.
func (s *Store) View(ctx context.Context, fn func(st *State) error) error {
	if s.shared == nil {
		s.mu.RLock()
		defer s.mu.RUnlock()

		return fn(&s.state)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.readLocked(ctx, s.state); err != nil {
		return err
	}
	return fn(&s.state)
}

// Snapshot returns a copy of the whole state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.clone()
}

// Update applies fn and flushes the result. If fn fails or the flush fails,
// the state is restored to what it was before the call.
func (s *Store) Update(ctx context.Context, fn func(st *State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.shared != nil {
		unlock, err := s.shared.Lock(ctx, SharedLockKey)
		if err != nil {
			return fmt.Errorf("%w: lock: %v", ErrPersistence, err)
		}
		defer unlock()

		if err := s.readLocked(ctx, s.state); err != nil {
			return err
		}
	}

	before := s.state.clone()

	if err := fn(&s.state); err != nil {
		s.state = before
		return err
	}

	if err := s.flushLocked(ctx, &s.state); err != nil {
		s.state = before
		// put back whatever records were already overwritten
		if rerr := s.flushLocked(context.WithoutCancel(ctx), &s.state); rerr != nil {
			log.Printf("state: restoring storage after failed flush: %v", rerr)
		}
		return err
	}

	return nil
}

func (s *Store) flushLocked(ctx context.Context, st *State) error {
	records := []struct {
		name  string
		value any
	}{
		{RecordClients, orEmpty(st.Clients)},
		{RecordAppointments, orEmpty(st.Appointments)},
		{RecordReports, orEmpty(st.SessionReports)},
		{RecordFinances, orEmpty(st.Finances)},
		{RecordKanban, orEmpty(st.KanbanTasks)},
		{RecordSettings, st.Settings},
	}

	for _, r := range records {
		b, err := json.Marshal(r.value)
		if err != nil {
			return fmt.Errorf("%w: %s: encode: %v", ErrPersistence, r.name, err)
		}
		if err := s.storage.Set(ctx, s.key(r.name), b); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrPersistence, r.name, err)
		}
	}
	return nil
}

func orEmpty[T any](v []T) []T {
	if v == nil {
		return []T{}
	}
	return v
}

func (s *Store) Authenticated() bool {
	if s.shared == nil {
		s.mu.RLock()
		defer s.mu.RUnlock()

		return s.auth
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	auth, err := s.readAuth(context.Background())
	if err != nil {
		log.Printf("state: reading auth flag: %v", err)
		return false
	}
	s.auth = auth
	return auth
}

// SetAuthenticated persists the shared admin flag; logging out clears it.
func (s *Store) SetAuthenticated(ctx context.Context, v bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	if v {
		err = s.storage.Set(ctx, s.key(RecordAuth), []byte("true"))
	} else {
		err = s.storage.Clear(ctx, s.key(RecordAuth))
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPersistence, RecordAuth, err)
	}

	s.auth = v
	return nil
}
