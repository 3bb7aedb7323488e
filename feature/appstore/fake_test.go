package appstore_test

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	"storelisting/core/jsonx"
	"storelisting/core/reconcile"
	"storelisting/core/transport"
	"storelisting/feature/appstore"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

type fakeOwner struct {
	ID      string
	Version string
	State   string
	Created string
	// InfoState is sent as the newer "state" attribute instead of appStoreState.
	InfoState string
}

type fakeLoc struct {
	ID     string
	Kind   string
	Owner  string
	Locale string
	Attrs  map[string]any
	// Hidden items exist but are left out of unfiltered listings.
	Hidden bool
}

// fakeASC is an in-memory App Store Connect API.
type fakeASC struct {
	mu       sync.Mutex
	apps     map[string]bool
	infos    []fakeOwner
	versions []fakeOwner
	locs     []*fakeLoc
	nextID   int
	requests []string
	bodies   map[string]map[string]any
	failWith map[string]int // "METHOD locale" -> status
	// lostCreate applies a locale's POST, then answers 503.
	lostCreate map[string]bool
}

func newFakeASC() *fakeASC {
	return &fakeASC{
		apps:       map[string]bool{"123": true},
		bodies:     make(map[string]map[string]any),
		failWith:   make(map[string]int),
		lostCreate: make(map[string]bool),
	}
}

func (f *fakeASC) addLoc(kind, owner, locale string, hidden bool, kv ...string) {
	f.nextID++
	attrs := map[string]any{"locale": locale}
	for i := 0; i+1 < len(kv); i += 2 {
		attrs[kv[i]] = kv[i+1]
	}
	f.locs = append(f.locs, &fakeLoc{
		ID:     fmt.Sprintf("%s-%d", kind, f.nextID),
		Kind:   kind,
		Owner:  owner,
		Locale: locale,
		Attrs:  attrs,
		Hidden: hidden,
	})
}

func (f *fakeASC) find(kind, owner, locale string) *fakeLoc {
	for _, l := range f.locs {
		if l.Kind == kind && l.Owner == owner && l.Locale == locale {
			return l
		}
	}
	return nil
}

func (f *fakeASC) mutations() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, r := range f.requests {
		if !strings.HasPrefix(r, "GET ") {
			out = append(out, r)
		}
	}
	return out
}

func (f *fakeASC) writeError(w http.ResponseWriter, status int, code, detail string) {
	w.WriteHeader(status)
	_ = jsonx.NewEncoder(w).Encode(map[string]any{
		"errors": []map[string]string{{"status": fmt.Sprint(status), "code": code, "detail": detail}},
	})
}

func (f *fakeASC) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, r.Method+" "+r.URL.Path)

	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/v1/"), "/")
	switch {
	case r.Method == http.MethodGet && parts[0] == "apps" && len(parts) == 2:
		if !f.apps[parts[1]] {
			f.writeError(w, http.StatusNotFound, "NOT_FOUND", "no app")
			return
		}
		_ = jsonx.NewEncoder(w).Encode(map[string]any{"data": map[string]any{
			"type": "apps", "id": parts[1],
			"attributes": map[string]any{"name": "Demo", "bundleId": "com.example.demo", "sku": "DEMO", "primaryLocale": "en-US"},
		}})

	case r.Method == http.MethodGet && parts[0] == "apps" && len(parts) == 3:
		if !f.apps[parts[1]] {
			f.writeError(w, http.StatusNotFound, "NOT_FOUND", "no app")
			return
		}
		owners, typ := f.infos, "appInfos"
		if parts[2] == "appStoreVersions" {
			owners, typ = f.versions, "appStoreVersions"
		}
		data := []map[string]any{}
		for _, o := range owners {
			attrs := map[string]any{"versionString": o.Version, "createdDate": o.Created}
			if o.InfoState != "" {
				attrs["state"] = o.InfoState
			} else {
				attrs["appStoreState"] = o.State
			}
			data = append(data, map[string]any{"type": typ, "id": o.ID, "attributes": attrs})
		}
		_ = jsonx.NewEncoder(w).Encode(map[string]any{"data": data})

	case r.Method == http.MethodGet && len(parts) == 3:
		owner, kind := parts[1], parts[2]
		filter := r.URL.Query().Get("filter[locale]")
		data := []map[string]any{}
		for _, l := range f.locs {
			if l.Kind != kind || l.Owner != owner {
				continue
			}
			if filter != "" && l.Locale != filter {
				continue
			}
			if filter == "" && l.Hidden {
				continue
			}
			data = append(data, map[string]any{"type": kind, "id": l.ID, "attributes": l.Attrs})
		}
		_ = jsonx.NewEncoder(w).Encode(map[string]any{"data": data})

	case r.Method == http.MethodPost && len(parts) == 1:
		var body struct {
			Data struct {
				Attributes    map[string]any `json:"attributes"`
				Relationships map[string]struct {
					Data struct {
						ID string `json:"id"`
					} `json:"data"`
				} `json:"relationships"`
			} `json:"data"`
		}
		raw, _ := io.ReadAll(r.Body)
		_ = jsonx.Unmarshal(raw, &body)
		var owner string
		for _, rel := range body.Data.Relationships {
			owner = rel.Data.ID
		}
		locale, _ := body.Data.Attributes["locale"].(string)
		f.bodies["POST "+locale] = body.Data.Attributes
		if status := f.failWith["POST "+locale]; status != 0 {
			f.writeError(w, status, "UNEXPECTED_ERROR", "boom")
			return
		}
		if f.find(parts[0], owner, locale) != nil {
			f.writeError(w, http.StatusConflict, "ENTITY_ERROR.ATTRIBUTE.INVALID.DUPLICATE", "localization already exists")
			return
		}
		f.nextID++
		l := &fakeLoc{ID: fmt.Sprintf("%s-%d", parts[0], f.nextID), Kind: parts[0], Owner: owner, Locale: locale, Attrs: body.Data.Attributes}
		f.locs = append(f.locs, l)
		if f.lostCreate[locale] {
			f.writeError(w, http.StatusServiceUnavailable, "UNEXPECTED_ERROR", "upstream unavailable")
			return
		}
		w.WriteHeader(http.StatusCreated)
		_ = jsonx.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"type": parts[0], "id": l.ID}})

	case r.Method == http.MethodPatch && len(parts) == 2:
		var body struct {
			Data struct {
				Attributes map[string]any `json:"attributes"`
			} `json:"data"`
		}
		raw, _ := io.ReadAll(r.Body)
		_ = jsonx.Unmarshal(raw, &body)
		for _, l := range f.locs {
			if l.ID != parts[1] {
				continue
			}
			f.bodies["PATCH "+l.Locale] = body.Data.Attributes
			if status := f.failWith["PATCH "+l.Locale]; status != 0 {
				f.writeError(w, status, "UNEXPECTED_ERROR", "boom")
				return
			}
			for k, v := range body.Data.Attributes {
				l.Attrs[k] = v
			}
			l.Hidden = false
			_ = jsonx.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"type": parts[0], "id": l.ID}})
			return
		}
		f.writeError(w, http.StatusNotFound, "NOT_FOUND", "no localization")

	default:
		f.writeError(w, http.StatusNotFound, "NOT_FOUND", r.URL.Path)
	}
}

func (f *fakeASC) localesOf(kind string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, l := range f.locs {
		if l.Kind == kind {
			out = append(out, l.Locale)
		}
	}
	sort.Strings(out)
	return out
}

func newTestService(t *testing.T, fake *fakeASC) *appstore.Service {
	t.Helper()
	return newRecordingService(t, fake, nil)
}

func newRecordingService(t *testing.T, fake *fakeASC, recorder reconcile.RunRecorder) *appstore.Service {
	t.Helper()
	return newServiceWithBackOff(t, fake, recorder, func() backoff.BackOff { return &backoff.StopBackOff{} })
}

// newRetryingService retries transient failures without waiting.
func newRetryingService(t *testing.T, fake *fakeASC) *appstore.Service {
	t.Helper()
	return newServiceWithBackOff(t, fake, nil, func() backoff.BackOff {
		return backoff.WithMaxRetries(&backoff.ZeroBackOff{}, 3)
	})
}

func newServiceWithBackOff(t *testing.T, fake *fakeASC, recorder reconcile.RunRecorder, policy func() backoff.BackOff) *appstore.Service {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client := appstore.NewClient(srv.URL, nil, transport.WithBackOff(policy))
	return appstore.NewService(appstore.NewAPI(client, "IOS"), appstore.DefaultLimits, recorder, zap.NewNop())
}
