package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Store is the in-memory view of the response cache. It is created once per
// process, loaded from its backend, and rewritten in full on every Put.
type Store struct {
	backend Backend
	entries map[string]Entry
	logger  zerolog.Logger

	// now is a hook for expiry tests
	now func() time.Time
}

// NewStore creates an empty store on top of backend. Call Load before use.
func NewStore(backend Backend, logger zerolog.Logger) *Store {
	if backend == nil {
		panic("cache backend cannot be nil")
	}
	return &Store{
		backend: backend,
		entries: make(map[string]Entry),
		logger:  logger,
		now:     time.Now,
	}
}

// Load reads the persisted snapshot and drops every entry that has aged past
// the expiry threshold. Load never fails: a missing, unreadable, or corrupt
// snapshot means a cold start, not an error. The cache is an optimization.
func (s *Store) Load(ctx context.Context) {
	s.entries = make(map[string]Entry)

	data, err := s.backend.ReadAll(ctx)
	if err != nil {
		if !errors.Is(err, ErrNoSnapshot) {
			CacheErrors.WithLabelValues("load").Inc()
			s.logger.Debug().Err(err).Msg("Cache snapshot unreadable, starting cold")
		}
		return
	}

	var snapshot map[string]Entry
	if err := json.Unmarshal(data, &snapshot); err != nil {
		CacheErrors.WithLabelValues("load").Inc()
		s.logger.Debug().Err(err).Msg("Cache snapshot corrupt, starting cold")
		return
	}

	today := DayOrdinal(s.now())
	dropped := 0
	for key, entry := range snapshot {
		if entry.Expired(today) {
			dropped++
			continue
		}
		s.entries[key] = entry
	}

	if dropped > 0 {
		s.logger.Debug().
			Int("dropped", dropped).
			Int("kept", len(s.entries)).
			Msg("Dropped expired cache entries")
	}
}

// Get returns the cached body for key. Pure in-memory read; expiry is
// checked at Load, never here.
func (s *Store) Get(key Key) (string, bool) {
	entry, ok := s.entries[key.String()]
	if !ok {
		CacheMisses.Inc()
		return "", false
	}
	CacheHits.Inc()
	return entry.Body, true
}

// Contains reports whether key is present in the in-memory store.
func (s *Store) Contains(key Key) bool {
	_, ok := s.entries[key.String()]
	return ok
}

// Len returns the number of entries currently held.
func (s *Store) Len() int {
	return len(s.entries)
}

// Put inserts or overwrites the entry for key with today's fetch day, then
// persists the entire store. A persistence failure propagates to the caller
// but leaves the in-memory entry in place, so the fresh data is still
// served for the rest of the process.
func (s *Store) Put(ctx context.Context, key Key, body string) error {
	s.entries[key.String()] = Entry{Day: DayOrdinal(s.now()), Body: body}
	return s.sync(ctx)
}

// sync rewrites the full snapshot. Every single write replaces the whole
// blob; a known scalability ceiling traded for a trivially correct format.
func (s *Store) sync(ctx context.Context) error {
	data, err := json.Marshal(s.entries)
	if err != nil {
		CacheErrors.WithLabelValues("sync").Inc()
		return fmt.Errorf("encode cache snapshot: %w", err)
	}
	if err := s.backend.WriteAll(ctx, data); err != nil {
		CacheErrors.WithLabelValues("sync").Inc()
		return err
	}
	CacheSnapshotBytes.Set(float64(len(data)))
	return nil
}
