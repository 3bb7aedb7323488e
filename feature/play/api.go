package play

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"storelisting/core/jsonx"
	"storelisting/core/reconcile"
	"storelisting/core/transport"
)

// Details is the app-level contact information of a package.
type Details struct {
	DefaultLanguage string `json:"defaultLanguage,omitempty"`
	ContactEmail    string `json:"contactEmail,omitempty"`
	ContactPhone    string `json:"contactPhone,omitempty"`
	ContactWebsite  string `json:"contactWebsite,omitempty"`
}

type edit struct {
	ID string `json:"id"`
}

type listingsResponse struct {
	Listings []map[string]any `json:"listings"`
}

type errorDocument struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
		Errors  []struct {
			Reason string `json:"reason"`
		} `json:"errors"`
	} `json:"error"`
}

// API is a thin androidpublisher v3 client over the shared transport.
type API struct {
	client *transport.Client
}

// NewAPI wraps a transport client.
func NewAPI(client *transport.Client) *API {
	return &API{client: client}
}

// NewClient creates the transport client for the Play Developer API, reading structured
// error codes from failure bodies.
func NewClient(baseURL string, auth transport.Authenticator, opts ...transport.Option) *transport.Client {
	opts = append([]transport.Option{transport.WithErrorCoder(errorCode)}, opts...)
	return transport.New("play", baseURL, auth, opts...)
}

// errorCode returns the first error reason, else the canonical status.
func errorCode(body []byte) string {
	var doc errorDocument
	if err := jsonx.Unmarshal(body, &doc); err != nil {
		return ""
	}
	for _, e := range doc.Error.Errors {
		if e.Reason != "" {
			return e.Reason
		}
	}
	return doc.Error.Status
}

// isDuplicate reports whether a listing CREATE hit an existing listing.
func isDuplicate(err error) bool {
	var failure *reconcile.RemoteAPIFailure
	if !errors.As(err, &failure) {
		return false
	}
	return failure.Status == http.StatusConflict ||
		failure.Code == "alreadyExists" ||
		failure.Code == "ALREADY_EXISTS"
}

func appPath(pkg string) string {
	return "/applications/" + url.PathEscape(pkg)
}

func editPath(pkg, editID string) string {
	return appPath(pkg) + "/edits/" + url.PathEscape(editID)
}

// OpenEdit creates an edit. An unknown package is a NotFoundFailure. It is
// never retried: a second POST would leave the first edit open server-side.
func (a *API) OpenEdit(ctx context.Context, pkg string) (string, error) {
	var out edit
	if err := a.client.DoOnce(ctx, http.MethodPost, appPath(pkg)+"/edits", nil, struct{}{}, &out); err != nil {
		if errors.Is(err, reconcile.ErrNotFound) {
			return "", &reconcile.NotFoundFailure{Resource: "app", ID: pkg}
		}
		return "", err
	}
	return out.ID, nil
}

// CommitEdit commits an edit, publishing its changes for review. It is never
// retried since a commit that landed makes the edit id unknown.
func (a *API) CommitEdit(ctx context.Context, pkg, editID string) error {
	return a.client.DoOnce(ctx, http.MethodPost, editPath(pkg, editID)+":commit", nil, nil, nil)
}

// DeleteEdit discards an edit.
func (a *API) DeleteEdit(ctx context.Context, pkg, editID string) error {
	return a.client.Do(ctx, http.MethodDelete, editPath(pkg, editID), nil, nil, nil)
}

// GetDetails reads the package's contact details within an edit.
func (a *API) GetDetails(ctx context.Context, pkg, editID string) (*Details, error) {
	var out Details
	if err := a.client.Do(ctx, http.MethodGet, editPath(pkg, editID)+"/details", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListListings returns every store listing of the edit.
func (a *API) ListListings(ctx context.Context, pkg, editID string) ([]reconcile.RemoteItem, error) {
	var out listingsResponse
	if err := a.client.Do(ctx, http.MethodGet, editPath(pkg, editID)+"/listings", nil, nil, &out); err != nil {
		return nil, err
	}
	items := make([]reconcile.RemoteItem, 0, len(out.Listings))
	for _, l := range out.Listings {
		items = append(items, toItem(l))
	}
	return items, nil
}

// GetListing returns the listing for language, or nil when there is none.
func (a *API) GetListing(ctx context.Context, pkg, editID, language string) (*reconcile.RemoteItem, error) {
	var out map[string]any
	err := a.client.Do(ctx, http.MethodGet, listingPath(pkg, editID, language), nil, nil, &out)
	if err != nil {
		if errors.Is(err, reconcile.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	item := toItem(out)
	return &item, nil
}

// PutListing creates (or replaces) the listing for language.
func (a *API) PutListing(ctx context.Context, pkg, editID, language string, patch reconcile.Patch) error {
	body := listingBody(patch)
	body["language"] = language
	return a.client.Do(ctx, http.MethodPut, listingPath(pkg, editID, language), nil, body, nil)
}

// PatchListing updates only the fields present in patch.
func (a *API) PatchListing(ctx context.Context, pkg, editID, language string, patch reconcile.Patch) error {
	return a.client.Do(ctx, http.MethodPatch, listingPath(pkg, editID, language), nil, listingBody(patch), nil)
}

func listingPath(pkg, editID, language string) string {
	return editPath(pkg, editID) + "/listings/" + url.PathEscape(language)
}

func listingBody(patch reconcile.Patch) map[string]string {
	body := make(map[string]string, len(patch)+1)
	for f, v := range patch {
		body[string(f)] = v
	}
	return body
}

// toItem converts a listing resource. Listings are identified by language.
func toItem(l map[string]any) reconcile.RemoteItem {
	language, _ := l["language"].(string)
	item := reconcile.RemoteItem{Locale: language, ID: language, Attributes: make(map[reconcile.Field]string)}
	for _, f := range listingFields {
		if v, ok := l[string(f)].(string); ok {
			item.Attributes[f] = v
		}
	}
	return item
}
