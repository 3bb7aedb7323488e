package play

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Scope is the OAuth scope of the Play Developer API.
const Scope = "https://www.googleapis.com/auth/androidpublisher"

// NewTokenSource builds a token source from the configured service account key.
func NewTokenSource(ctx context.Context, cfg Config) (oauth2.TokenSource, error) {
	data := []byte(cfg.ServiceAccountJSON)
	if len(data) == 0 {
		raw, err := os.ReadFile(cfg.ServiceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read service account key: %w", err)
		}
		data = raw
	}

	creds, err := google.CredentialsFromJSON(ctx, data, Scope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account key: %w", err)
	}
	return creds.TokenSource, nil
}
