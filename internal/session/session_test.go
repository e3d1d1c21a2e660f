package session

import (
	"context"
	"errors"
	"testing"

	"budgetdeck/internal/budgetapi"
)

func TestStartWithToken(t *testing.T) {
	s := New(budgetapi.StaticToken("tok-123"), nil)

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	tok, err := s.Token()
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	if tok != "tok-123" {
		t.Fatalf("token = %q", tok)
	}
}

func TestAbsentTokenRedirectsOnce(t *testing.T) {
	redirects := 0
	s := New(budgetapi.StaticToken(""), func() { redirects++ })

	if err := s.Start(context.Background()); !errors.Is(err, ErrSignedOut) {
		t.Fatalf("Start error = %v, want ErrSignedOut", err)
	}
	// Repeat starts must not re-resolve or re-redirect.
	if err := s.Start(context.Background()); !errors.Is(err, ErrSignedOut) {
		t.Fatalf("second Start error = %v, want ErrSignedOut", err)
	}
	if redirects != 1 {
		t.Fatalf("redirects = %d, want exactly 1", redirects)
	}

	// No token means no service call may be built.
	if _, err := s.Token(); !errors.Is(err, ErrSignedOut) {
		t.Fatalf("Token error = %v, want ErrSignedOut", err)
	}
}

func TestTokenBeforeStart(t *testing.T) {
	s := New(budgetapi.StaticToken("tok"), nil)
	if _, err := s.Token(); !errors.Is(err, ErrSignedOut) {
		t.Fatalf("Token before Start = %v, want ErrSignedOut", err)
	}
}

func TestStaleResponseGuard(t *testing.T) {
	s := New(budgetapi.StaticToken("tok"), nil)

	first := s.Next()
	second := s.Next()

	if s.Current(first) {
		t.Error("first sequence should be stale after a newer fetch")
	}
	if !s.Current(second) {
		t.Error("latest sequence should be current")
	}
	if s.Current(0) {
		t.Error("zero sequence should never be current")
	}
}

func TestPushMutualExclusion(t *testing.T) {
	s := New(budgetapi.StaticToken("tok"), nil)

	if err := s.BeginPush(); err != nil {
		t.Fatalf("BeginPush: %v", err)
	}
	if !s.Pushing() {
		t.Fatal("Pushing() = false while held")
	}
	if err := s.BeginPush(); !errors.Is(err, ErrPushInFlight) {
		t.Fatalf("second BeginPush = %v, want ErrPushInFlight", err)
	}

	// Released on settlement regardless of outcome.
	s.EndPush()
	if s.Pushing() {
		t.Fatal("Pushing() = true after release")
	}
	if err := s.BeginPush(); err != nil {
		t.Fatalf("BeginPush after release: %v", err)
	}
}
