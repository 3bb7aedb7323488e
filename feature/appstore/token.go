package appstore

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

const (
	tokenAudience = "appstoreconnect-v1"
	tokenLifetime = 20 * time.Minute
)

// jwtSource mints ES256 tokens for the App Store Connect API.
type jwtSource struct {
	issuerID string
	keyID    string
	signer   any
	now      func() time.Time

	mu sync.Mutex
}

// NewTokenSource returns a cached token source signing with the configured key.
func NewTokenSource(cfg Config) (oauth2.TokenSource, error) {
	pem := []byte(cfg.PrivateKey)
	if len(pem) == 0 {
		data, err := os.ReadFile(cfg.PrivateKeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read private key: %w", err)
		}
		pem = data
	}

	key, err := jwt.ParseECPrivateKeyFromPEM(pem)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	src := &jwtSource{issuerID: cfg.IssuerID, keyID: cfg.KeyID, signer: key, now: time.Now}
	return oauth2.ReuseTokenSource(nil, src), nil
}

// Token implements oauth2.TokenSource.
func (s *jwtSource) Token() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	exp := now.Add(tokenLifetime)
	// The audience must be a plain string, not the one-element array RegisteredClaims emits
	claims := jwt.MapClaims{
		"iss": s.issuerID,
		"iat": now.Unix(),
		"exp": exp.Unix(),
		"aud": tokenAudience,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodES256, claims)
	token.Header["kid"] = s.keyID

	signed, err := token.SignedString(s.signer)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	// Refresh a minute early so a token never expires mid-request
	return &oauth2.Token{AccessToken: signed, TokenType: "Bearer", Expiry: exp.Add(-time.Minute)}, nil
}
