// Package transport is the JSON-over-HTTP client shared by the store backends.
//
// A Client is bound to one backend base URL and an Authenticator. Calls made
// with Do are retried with exponential backoff on network errors, 429 and 5xx
// responses. DoOnce makes a single attempt and is meant for non-idempotent
// calls such as creating a resource or committing an edit. Any other non-2xx response fails immediately as a
// *reconcile.RemoteAPIFailure carrying the status, the backend's structured
// error code and a truncated copy of the body.
//
// # Authentication
//
// Both backends mint short-lived bearer tokens, so authentication is expressed
// as an oauth2.TokenSource wrapped in TokenAuth. App Store Connect signs its
// own JWTs; Google Play uses a service-account token source.
//
// # Usage
//
//	c := transport.New("play", baseURL, &transport.TokenAuth{Source: ts},
//		transport.WithLogger(log),
//		transport.WithErrorCoder(googleErrorCode),
//	)
//	var out editResponse
//	err := c.Do(ctx, http.MethodPost, "/applications/com.example/edits", nil, nil, &out)
package transport
