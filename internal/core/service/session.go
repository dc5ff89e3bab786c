package service

import (
	"sync"

	"github.com/fieldtrack/dashboard-api/internal/core/domain"
)

// Session owns the access profile of one logical user session. The profile
// is written through a single path (Set) and observed either by polling
// Current or by subscribing; Subscribe delivers the current state
// immediately and every subsequent change until unsubscribed.
type Session struct {
	mu      sync.Mutex
	profile *domain.User
	subs    map[int]func(*domain.User)
	nextID  int
	closed  bool
}

func NewSession(initial *domain.User) *Session {
	return &Session{
		profile: initial,
		subs:    make(map[int]func(*domain.User)),
	}
}

// Current returns the profile as of the last Set.
func (s *Session) Current() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// Set replaces the profile and notifies every subscriber. No-op after Close.
func (s *Session) Set(profile *domain.User) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.profile = profile
	fns := make([]func(*domain.User), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(profile)
	}
}

// Subscribe registers fn and invokes it immediately with the current state.
// The returned unsubscribe handle is idempotent.
func (s *Session) Subscribe(fn func(*domain.User)) (unsubscribe func()) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return func() {}
	}
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	current := s.profile
	s.mu.Unlock()

	fn(current)

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Close tears the session down: all subscriptions are dropped and further
// Set calls are ignored. Safe to call more than once.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.subs = make(map[int]func(*domain.User))
	s.profile = nil
}
