// Package session enforces the ordering rules around service calls:
// the auth token resolves once before any sync, stale responses are
// discarded by sequence number, and only one push runs at a time.
package session

import (
	"context"
	"errors"
	"sync"

	"budgetdeck/internal/budgetapi"
)

var (
	// ErrSignedOut means the token resolved to absent; every service
	// operation must be refused and the user sent to sign in.
	ErrSignedOut = errors.New("session: signed out")
	// ErrPushInFlight means a push from a previous save action has not
	// settled yet.
	ErrPushInFlight = errors.New("session: a push is already in flight")
)

// Session holds the resolved auth state for one program lifetime. The
// token is fetched once and immutable afterwards.
type Session struct {
	source   budgetapi.TokenSource
	redirect func()

	mu         sync.Mutex
	started    bool
	token      string
	startErr   error
	redirected bool
	seq        uint64
	pushing    bool
}

// New creates a session over the token source. redirect is invoked at
// most once, when the token resolves to absent; it stands in for the
// sign-in navigation and may be nil.
func New(source budgetapi.TokenSource, redirect func()) *Session {
	return &Session{source: source, redirect: redirect}
}

// Start resolves the token. It is idempotent: later calls return the
// first outcome without consulting the source again. An absent token
// triggers the redirect exactly once and yields ErrSignedOut.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return s.startErr
	}
	s.started = true

	tok, err := s.source.Token(ctx)
	switch {
	case errors.Is(err, budgetapi.ErrNoToken):
		s.startErr = ErrSignedOut
		if !s.redirected && s.redirect != nil {
			s.redirected = true
			s.redirect()
		}
	case err != nil:
		s.startErr = err
	default:
		s.token = tok
	}
	return s.startErr
}

// Token returns the resolved token. Calling it before a successful
// Start is a signed-out condition, not a trigger for a lazy fetch.
func (s *Session) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started || s.startErr != nil || s.token == "" {
		return "", ErrSignedOut
	}
	return s.token, nil
}

// Next issues a new request sequence number. Tag every outbound fetch
// with it and check Current when the response lands.
func (s *Session) Next() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return s.seq
}

// Current reports whether seq is still the latest issued sequence. A
// false result means the user moved on and the response must be
// discarded, not applied.
func (s *Session) Current(seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return seq == s.seq
}

// BeginPush acquires the pending-push flag for a save action. It must
// be held until the push settles; table state must not be serialized
// again while it is held.
func (s *Session) BeginPush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pushing {
		return ErrPushInFlight
	}
	s.pushing = true
	return nil
}

// EndPush releases the pending-push flag. Called on both success and
// failure.
func (s *Session) EndPush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pushing = false
}

// Pushing reports whether a push is currently in flight, so the UI can
// disable its save control.
func (s *Session) Pushing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pushing
}
