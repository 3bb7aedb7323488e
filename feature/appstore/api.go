package appstore

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"storelisting/core/jsonx"
	"storelisting/core/reconcile"
	"storelisting/core/transport"
)

// pageLimit is the largest page App Store Connect serves.
const pageLimit = "200"

// resource is a JSON:API resource object.
type resource struct {
	Type          string                  `json:"type"`
	ID            string                  `json:"id,omitempty"`
	Attributes    map[string]any          `json:"attributes,omitempty"`
	Relationships map[string]relationship `json:"relationships,omitempty"`
}

type relationship struct {
	Data resourceRef `json:"data"`
}

type resourceRef struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

type document struct {
	Data resource `json:"data"`
}

type listDocument struct {
	Data []resource `json:"data"`
}

type errorDocument struct {
	Errors []struct {
		Status string `json:"status"`
		Code   string `json:"code"`
		Title  string `json:"title"`
		Detail string `json:"detail"`
	} `json:"errors"`
}

// App is the application identity shown in snapshots.
type App struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	BundleID      string `json:"bundleId"`
	SKU           string `json:"sku,omitempty"`
	PrimaryLocale string `json:"primaryLocale"`
}

// API is a thin App Store Connect client over the shared transport.
type API struct {
	client   *transport.Client
	platform string
}

// NewAPI wraps a transport client. platform filters version listings.
func NewAPI(client *transport.Client, platform string) *API {
	return &API{client: client, platform: platform}
}

// NewClient creates the transport client for App Store Connect, reading structured
// error codes from failure bodies.
func NewClient(baseURL string, auth transport.Authenticator, opts ...transport.Option) *transport.Client {
	opts = append([]transport.Option{transport.WithErrorCoder(errorCode)}, opts...)
	return transport.New("appstore", baseURL, auth, opts...)
}

// errorCode prefers a code naming a duplicate, else the first code in the body.
func errorCode(body []byte) string {
	var doc errorDocument
	if err := jsonx.Unmarshal(body, &doc); err != nil {
		return ""
	}
	first := ""
	for _, e := range doc.Errors {
		if strings.Contains(e.Code, "DUPLICATE") {
			return e.Code
		}
		if first == "" {
			first = e.Code
		}
	}
	return first
}

// isDuplicate reports whether a CREATE failed because the locale already exists.
// The structured 409 code is authoritative; the message match only covers
// responses that carry no usable code.
func isDuplicate(err error) bool {
	var failure *reconcile.RemoteAPIFailure
	if !errors.As(err, &failure) {
		return false
	}
	if failure.Status == http.StatusConflict && strings.Contains(failure.Code, "DUPLICATE") {
		return true
	}
	return strings.Contains(strings.ToLower(failure.Body), "already exists")
}

// GetApp fetches the app identity. A missing app is a NotFoundFailure.
func (a *API) GetApp(ctx context.Context, appID string) (*App, error) {
	var doc document
	err := a.client.Do(ctx, http.MethodGet, "/v1/apps/"+url.PathEscape(appID), nil, nil, &doc)
	if err != nil {
		if errors.Is(err, reconcile.ErrNotFound) {
			return nil, &reconcile.NotFoundFailure{Resource: "app", ID: appID}
		}
		return nil, err
	}
	return &App{
		ID:            doc.Data.ID,
		Name:          str(doc.Data.Attributes, "name"),
		BundleID:      str(doc.Data.Attributes, "bundleId"),
		SKU:           str(doc.Data.Attributes, "sku"),
		PrimaryLocale: str(doc.Data.Attributes, "primaryLocale"),
	}, nil
}

// ListAppInfos returns the app's infos, newest first.
func (a *API) ListAppInfos(ctx context.Context, appID string) ([]reconcile.Version, error) {
	var doc listDocument
	q := url.Values{"limit": {pageLimit}}
	if err := a.client.Do(ctx, http.MethodGet, "/v1/apps/"+url.PathEscape(appID)+"/appInfos", q, nil, &doc); err != nil {
		return nil, err
	}
	versions := make([]reconcile.Version, 0, len(doc.Data))
	for _, r := range doc.Data {
		state := infoState(str(r.Attributes, "appStoreState"), str(r.Attributes, "state"))
		versions = append(versions, reconcile.Version{ID: r.ID, State: state})
	}
	return versions, nil
}

// ListVersions returns the app's store versions for the configured platform, newest first.
func (a *API) ListVersions(ctx context.Context, appID string) ([]reconcile.Version, error) {
	var doc listDocument
	q := url.Values{"limit": {pageLimit}}
	if a.platform != "" {
		q.Set("filter[platform]", a.platform)
	}
	if err := a.client.Do(ctx, http.MethodGet, "/v1/apps/"+url.PathEscape(appID)+"/appStoreVersions", q, nil, &doc); err != nil {
		return nil, err
	}
	versions := make([]reconcile.Version, 0, len(doc.Data))
	for _, r := range doc.Data {
		v := reconcile.Version{
			ID:    r.ID,
			Label: str(r.Attributes, "versionString"),
			State: str(r.Attributes, "appStoreState"),
		}
		if created, err := time.Parse(time.RFC3339, str(r.Attributes, "createdDate")); err == nil {
			v.CreatedDate = created
		}
		versions = append(versions, v)
	}
	sort.SliceStable(versions, func(i, j int) bool {
		return versions[i].CreatedDate.After(versions[j].CreatedDate)
	})
	return versions, nil
}

// kind describes one localization collection endpoint.
type kind struct {
	name      string // JSON:API type and path segment
	ownerType string // owner JSON:API type
	ownerRel  string // relationship name on create
	fields    []reconcile.Field
}

var (
	appInfoLocalizations = kind{
		name:      "appInfoLocalizations",
		ownerType: "appInfos",
		ownerRel:  "appInfo",
		fields:    appInfoFields,
	}
	versionLocalizations = kind{
		name:      "appStoreVersionLocalizations",
		ownerType: "appStoreVersions",
		ownerRel:  "appStoreVersion",
		fields:    versionFields,
	}
)

// ListLocalizations lists the localizations of ownerID. A non-empty locale
// narrows the listing to that locale.
func (a *API) ListLocalizations(ctx context.Context, k kind, ownerID, locale string) ([]reconcile.RemoteItem, error) {
	q := url.Values{"limit": {pageLimit}}
	if locale != "" {
		q.Set("filter[locale]", locale)
	}
	var doc listDocument
	path := "/v1/" + k.ownerType + "/" + url.PathEscape(ownerID) + "/" + k.name
	if err := a.client.Do(ctx, http.MethodGet, path, q, nil, &doc); err != nil {
		return nil, err
	}

	items := make([]reconcile.RemoteItem, 0, len(doc.Data))
	for _, r := range doc.Data {
		item := reconcile.RemoteItem{
			Locale:     str(r.Attributes, "locale"),
			ID:         r.ID,
			Attributes: make(map[reconcile.Field]string),
		}
		// Unset attributes come back as null and stay absent
		for _, f := range k.fields {
			if v, ok := r.Attributes[string(f)].(string); ok {
				item.Attributes[f] = v
			}
		}
		items = append(items, item)
	}
	return items, nil
}

// CreateLocalization creates the locale's localization under ownerID.
func (a *API) CreateLocalization(ctx context.Context, k kind, ownerID, locale string, patch reconcile.Patch) (string, error) {
	attrs := attributes(patch)
	attrs["locale"] = locale
	body := document{Data: resource{
		Type:       k.name,
		Attributes: attrs,
		Relationships: map[string]relationship{
			k.ownerRel: {Data: resourceRef{Type: k.ownerType, ID: ownerID}},
		},
	}}

	// A retried POST that had already landed would come back as a duplicate
	var out document
	if err := a.client.DoOnce(ctx, http.MethodPost, "/v1/"+k.name, nil, body, &out); err != nil {
		return "", err
	}
	return out.Data.ID, nil
}

// UpdateLocalization patches the localization with the given id.
func (a *API) UpdateLocalization(ctx context.Context, k kind, id string, patch reconcile.Patch) error {
	body := document{Data: resource{Type: k.name, ID: id, Attributes: attributes(patch)}}
	return a.client.Do(ctx, http.MethodPatch, "/v1/"+k.name+"/"+url.PathEscape(id), nil, body, nil)
}

func attributes(patch reconcile.Patch) map[string]any {
	attrs := make(map[string]any, len(patch)+1)
	for f, v := range patch {
		attrs[string(f)] = v
	}
	return attrs
}

func str(attrs map[string]any, key string) string {
	s, _ := attrs[key].(string)
	return s
}
