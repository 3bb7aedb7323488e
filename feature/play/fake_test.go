package play_test

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
	"storelisting/feature/play"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

type fakeEdit struct {
	pkg      string
	listings map[string]map[string]any
}

// fakePlay is an in-memory Play Developer API with edit semantics: listing
// writes land in the edit and become visible only on commit.
type fakePlay struct {
	mu       sync.Mutex
	details  map[string]map[string]any
	listings map[string]map[string]map[string]any
	edits    map[string]*fakeEdit
	nextID   int
	requests []string
	bodies   map[string]map[string]any
	failWith map[string]int // "METHOD language" -> status
	// hidden languages are left out of listing lists but exist.
	hidden       map[string]bool
	failCommit   bool
	deletedEdits []string
	// lostOpen and lostCommit apply the next open or commit, then answer 503.
	lostOpen   bool
	lostCommit bool
}

func newFakePlay() *fakePlay {
	return &fakePlay{
		details:  map[string]map[string]any{"com.example.demo": {"defaultLanguage": "en-US", "contactEmail": "dev@example.com"}},
		listings: map[string]map[string]map[string]any{"com.example.demo": {}},
		edits:    make(map[string]*fakeEdit),
		bodies:   make(map[string]map[string]any),
		failWith: make(map[string]int),
		hidden:   make(map[string]bool),
	}
}

func (f *fakePlay) addListing(language string, kv ...string) {
	l := map[string]any{"language": language}
	for i := 0; i+1 < len(kv); i += 2 {
		l[kv[i]] = kv[i+1]
	}
	f.listings["com.example.demo"][language] = l
}

func (f *fakePlay) listing(language string) map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listings["com.example.demo"][language]
}

func (f *fakePlay) mutations() []string {
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

func (f *fakePlay) openEdits() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]string, 0, len(f.edits))
	for id := range f.edits {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (f *fakePlay) writeError(w http.ResponseWriter, status int, reason string) {
	w.WriteHeader(status)
	_ = jsonx.NewEncoder(w).Encode(map[string]any{"error": map[string]any{
		"code":    status,
		"message": reason,
		"errors":  []map[string]string{{"reason": reason}},
	}})
}

func (f *fakePlay) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := strings.TrimPrefix(r.URL.Path, "/applications/")
	parts := strings.Split(path, "/")
	pkg := parts[0]
	f.requests = append(f.requests, r.Method+" "+strings.Join(parts[1:], "/"))

	current, ok := f.listings[pkg]
	if !ok {
		f.writeError(w, http.StatusNotFound, "applicationNotFound")
		return
	}

	if len(parts) == 2 && r.Method == http.MethodPost {
		f.nextID++
		id := fmt.Sprintf("edit-%d", f.nextID)
		copied := make(map[string]map[string]any, len(current))
		for lang, l := range current {
			c := make(map[string]any, len(l))
			for k, v := range l {
				c[k] = v
			}
			copied[lang] = c
		}
		f.edits[id] = &fakeEdit{pkg: pkg, listings: copied}
		if f.lostOpen {
			f.lostOpen = false
			f.writeError(w, http.StatusServiceUnavailable, "backendError")
			return
		}
		_ = jsonx.NewEncoder(w).Encode(map[string]any{"id": id, "expiryTimeSeconds": "1800"})
		return
	}

	if len(parts) < 3 {
		f.writeError(w, http.StatusNotFound, "notFound")
		return
	}

	editID, commit := strings.CutSuffix(parts[2], ":commit")
	e, ok := f.edits[editID]
	if !ok {
		f.writeError(w, http.StatusNotFound, "editNotFound")
		return
	}

	switch {
	case commit && r.Method == http.MethodPost:
		if f.failCommit {
			f.writeError(w, http.StatusBadRequest, "editCommitFailed")
			return
		}
		f.listings[pkg] = e.listings
		delete(f.edits, editID)
		if f.lostCommit {
			f.lostCommit = false
			f.writeError(w, http.StatusServiceUnavailable, "backendError")
			return
		}
		_ = jsonx.NewEncoder(w).Encode(map[string]any{"id": editID})

	case len(parts) == 3 && r.Method == http.MethodDelete:
		delete(f.edits, editID)
		f.deletedEdits = append(f.deletedEdits, editID)
		w.WriteHeader(http.StatusNoContent)

	case len(parts) == 4 && parts[3] == "details" && r.Method == http.MethodGet:
		_ = jsonx.NewEncoder(w).Encode(f.details[pkg])

	case len(parts) == 4 && parts[3] == "listings" && r.Method == http.MethodGet:
		out := []map[string]any{}
		for lang, l := range e.listings {
			if !f.hidden[lang] {
				out = append(out, l)
			}
		}
		_ = jsonx.NewEncoder(w).Encode(map[string]any{"kind": "androidpublisher#listingsListResponse", "listings": out})

	case len(parts) == 5 && parts[3] == "listings":
		f.serveListing(w, r, e, parts[4])

	default:
		f.writeError(w, http.StatusNotFound, "notFound")
	}
}

func (f *fakePlay) serveListing(w http.ResponseWriter, r *http.Request, e *fakeEdit, lang string) {
	existing := e.listings[lang]

	if r.Method == http.MethodGet {
		if existing == nil {
			f.writeError(w, http.StatusNotFound, "notFound")
			return
		}
		_ = jsonx.NewEncoder(w).Encode(existing)
		return
	}

	var body map[string]any
	raw, _ := io.ReadAll(r.Body)
	_ = jsonx.Unmarshal(raw, &body)
	f.bodies[r.Method+" "+lang] = body
	if status := f.failWith[r.Method+" "+lang]; status != 0 {
		f.writeError(w, status, "backendError")
		return
	}

	switch r.Method {
	case http.MethodPut:
		if existing != nil && f.hidden[lang] {
			f.writeError(w, http.StatusConflict, "alreadyExists")
			return
		}
		body["language"] = lang
		e.listings[lang] = body
	case http.MethodPatch:
		if existing == nil {
			f.writeError(w, http.StatusNotFound, "notFound")
			return
		}
		for k, v := range body {
			existing[k] = v
		}
		f.hidden[lang] = false
	}
	_ = jsonx.NewEncoder(w).Encode(e.listings[lang])
}

func newTestService(t *testing.T, fake *fakePlay) *play.Service {
	t.Helper()
	return newRecordingService(t, fake, nil)
}

func newRecordingService(t *testing.T, fake *fakePlay, recorder reconcile.RunRecorder) *play.Service {
	t.Helper()
	return newServiceWithBackOff(t, fake, recorder, func() backoff.BackOff { return &backoff.StopBackOff{} })
}

// newRetryingService retries transient failures without waiting.
func newRetryingService(t *testing.T, fake *fakePlay) *play.Service {
	t.Helper()
	return newServiceWithBackOff(t, fake, nil, func() backoff.BackOff {
		return backoff.WithMaxRetries(&backoff.ZeroBackOff{}, 3)
	})
}

func newServiceWithBackOff(t *testing.T, fake *fakePlay, recorder reconcile.RunRecorder, policy func() backoff.BackOff) *play.Service {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client := play.NewClient(srv.URL, nil, transport.WithBackOff(policy))
	return play.NewService(play.NewAPI(client), play.DefaultLimits, recorder, zap.NewNop())
}
