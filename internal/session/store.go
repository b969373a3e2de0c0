package session

import (
	"RecoViewer/entity"
	"RecoViewer/internal/lib/sl"
	"RecoViewer/internal/metrics"
	"encoding/json"
	"log/slog"
	"sync"
	"time"
)

// State is what one viewer session holds between actions. Products is nil
// until a fetch succeeds; Enriched is nil until an enrichment succeeds.
// Generation is bumped by every Begin; writes carrying an older generation
// are dropped.
type State struct {
	GroupID     string
	Products    []entity.ProductRecord
	Enriched    []entity.ProductRecord
	Request     *entity.RequestDebug
	RawResponse json.RawMessage
	Flash       *entity.Flash
	Generation  uint64
	touched     time.Time
}

// Displayed prefers the enriched sequence when one exists.
func (s State) Displayed() []entity.ProductRecord {
	if s.Enriched != nil {
		return s.Enriched
	}
	return s.Products
}

type Store struct {
	mu       sync.Mutex
	sessions map[string]*State
	ttl      time.Duration
	now      func() time.Time
	log      *slog.Logger
}

func NewStore(ttl time.Duration, log *slog.Logger) *Store {
	return &Store{
		sessions: make(map[string]*State),
		ttl:      ttl,
		now:      time.Now,
		log:      log.With(sl.Module("session store")),
	}
}

func (s *Store) get(id string) *State {
	state, ok := s.sessions[id]
	if !ok {
		state = &State{}
		s.sessions[id] = state
		metrics.ActiveSessions.Set(float64(len(s.sessions)))
	}
	state.touched = s.now()
	return state
}

// Snapshot returns a copy of the session state; slices are shared but never
// mutated in place.
func (s *Store) Snapshot(id string) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.get(id)
}

// Begin clears all product state ahead of a new fetch and returns the
// generation the fetch must write under.
func (s *Store) Begin(id, groupID string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.get(id)
	state.Generation++
	state.GroupID = groupID
	state.Products = nil
	state.Enriched = nil
	state.Request = nil
	state.RawResponse = nil
	return state.Generation
}

// current returns the session state when gen is still its generation.
func (s *Store) current(id string, gen uint64) (*State, bool) {
	state := s.get(id)
	if state.Generation != gen {
		s.log.With(
			slog.String("session", id),
			slog.Uint64("generation", gen),
			slog.Uint64("current", state.Generation),
		).Debug("stale write dropped")
		return nil, false
	}
	return state, true
}

func (s *Store) SetDebug(id string, gen uint64, request *entity.RequestDebug, rawResponse json.RawMessage) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.current(id, gen)
	if !ok {
		return false
	}
	state.Request = request
	state.RawResponse = rawResponse
	return true
}

func (s *Store) SetProducts(id string, gen uint64, products []entity.ProductRecord) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.current(id, gen)
	if !ok {
		return false
	}
	state.Products = products
	return true
}

// Products returns the fetched sequence without creating one, along with the
// generation it belongs to; ok is false when no fetch has succeeded in this
// session.
func (s *Store) Products(id string) ([]entity.ProductRecord, uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.get(id)
	return state.Products, state.Generation, state.Products != nil
}

// SetEnriched stores the annotated sequence unless a fetch began after the
// products were read.
func (s *Store) SetEnriched(id string, gen uint64, enriched []entity.ProductRecord) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.current(id, gen)
	if !ok {
		return false
	}
	state.Enriched = enriched
	return true
}

func (s *Store) SetFlash(id string, level entity.FlashLevel, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.get(id).Flash = &entity.Flash{Level: level, Message: message}
}

// PopFlash returns and clears the pending message.
func (s *Store) PopFlash(id string) *entity.Flash {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.get(id)
	flash := state.Flash
	state.Flash = nil
	return flash
}

// Evict drops sessions idle for longer than the TTL and returns how many went.
func (s *Store) Evict() int {
	if s.ttl <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	deadline := s.now().Add(-s.ttl)
	evicted := 0
	for id, state := range s.sessions {
		if state.touched.Before(deadline) {
			delete(s.sessions, id)
			evicted++
		}
	}
	metrics.ActiveSessions.Set(float64(len(s.sessions)))
	return evicted
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Janitor evicts idle sessions every interval until stop is closed.
func (s *Store) Janitor(interval time.Duration, stop <-chan struct{}) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if n := s.Evict(); n > 0 {
				s.log.With(
					slog.Int("evicted", n),
					slog.Int("remaining", s.Len()),
				).Debug("idle sessions evicted")
			}
		case <-stop:
			return
		}
	}
}
