package transport

import (
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
)

// Authenticator applies authentication to outgoing requests.
type Authenticator interface {
	Apply(req *http.Request) error
}

// NoAuth applies no authentication.
type NoAuth struct{}

// Apply implements the Authenticator interface for NoAuth.
func (NoAuth) Apply(_ *http.Request) error {
	return nil
}

// TokenAuth sets a bearer token obtained from Source on every request.
// Wrap Source in oauth2.ReuseTokenSource to avoid minting a token per call.
type TokenAuth struct {
	Source oauth2.TokenSource
}

// Apply implements the Authenticator interface for TokenAuth.
func (a *TokenAuth) Apply(req *http.Request) error {
	tok, err := a.Source.Token()
	if err != nil {
		return fmt.Errorf("failed to obtain access token: %w", err)
	}
	tok.SetAuthHeader(req)
	return nil
}
