package budgetapi

import (
	"context"
	"errors"
	"strings"
)

// ErrNoToken indicates the session has no auth token; the caller must
// send the user to sign in and attempt no service calls.
var ErrNoToken = errors.New("budgetapi: no auth token")

// TokenSource yields the session auth token. It resolves once per
// session; implementations must be safe to call before any other
// service operation.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenSource for a token known up front (config file
// or environment). The empty string means signed out.
type StaticToken string

// Token returns the token, or ErrNoToken when blank.
func (s StaticToken) Token(_ context.Context) (string, error) {
	tok := strings.TrimSpace(string(s))
	if tok == "" {
		return "", ErrNoToken
	}
	return tok, nil
}
