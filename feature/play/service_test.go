package play_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"storelisting/core/reconcile"
	"storelisting/core/transport"
	"storelisting/feature/play"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededPlay() *fakePlay {
	f := newFakePlay()
	f.addListing("en-US", "title", "Demo", "shortDescription", "Short", "fullDescription", "Full")
	f.addListing("fr-FR", "title", "Démo", "fullDescription", "Complet")
	return f
}

func TestGetMetadata_ReadsInsideDiscardedEdit(t *testing.T) {
	f := seededPlay()
	svc := newTestService(t, f)

	snap, err := svc.GetMetadata(context.Background(), "com.example.demo", nil)
	require.NoError(t, err)

	assert.Equal(t, "com.example.demo", snap.PackageName)
	assert.Equal(t, "en-US", snap.Details.DefaultLanguage)
	assert.Equal(t, "dev@example.com", snap.Details.ContactEmail)
	require.Len(t, snap.Listings, 2)
	assert.Equal(t, map[string]string{"language": "en-US", "title": "Demo", "shortDescription": "Short", "fullDescription": "Full"}, snap.Listings[0])
	assert.Equal(t, map[string]string{"language": "fr-FR", "title": "Démo", "fullDescription": "Complet"}, snap.Listings[1])

	assert.Equal(t, []string{"POST edits", "DELETE edits/edit-1"}, f.mutations())
}

func TestGetMetadata_LocaleFilter(t *testing.T) {
	f := seededPlay()
	svc := newTestService(t, f)

	snap, err := svc.GetMetadata(context.Background(), "com.example.demo", []string{"fr-FR"})
	require.NoError(t, err)
	require.Len(t, snap.Listings, 1)
	assert.Equal(t, "Démo", snap.Listings[0]["title"])

	_, err = svc.GetMetadata(context.Background(), "com.example.demo", []string{"it-IT"})
	var nf *reconcile.NotFoundFailure
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, []string{"en-US", "fr-FR"}, nf.Available)
	// The edit is discarded on the error path too
	assert.Len(t, f.deletedEdits, 2)
}

func TestGetMetadata_UnknownPackage(t *testing.T) {
	f := seededPlay()
	svc := newTestService(t, f)

	_, err := svc.GetMetadata(context.Background(), "com.example.missing", nil)
	var nf *reconcile.NotFoundFailure
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "app", nf.Resource)
	assert.Empty(t, f.deletedEdits)
}

func TestSetMetadata_CommitsUpdateAndCreate(t *testing.T) {
	f := seededPlay()
	svc := newTestService(t, f)

	fr := reconcile.NewRecord("fr-FR")
	fr.Set(play.FieldShortDescription, "Court")
	de := reconcile.NewRecord("de-DE")
	de.Set(play.FieldTitle, "Demo DE")

	summary, err := svc.SetMetadata(context.Background(), "com.example.demo", []reconcile.Record{fr, de}, false)
	require.NoError(t, err)

	assert.True(t, summary.Committed)
	assert.Equal(t, []string{"de-DE"}, summary.CreatedLocales())
	assert.Equal(t, []string{"fr-FR"}, summary.UpdatedLocales())

	assert.Equal(t, map[string]any{"shortDescription": "Court"}, f.bodies["PATCH fr-FR"])
	assert.Equal(t, map[string]any{"language": "de-DE", "title": "Demo DE"}, f.bodies["PUT de-DE"])

	// Committed and visible; untouched fields survive the patch
	assert.Equal(t, "Court", f.listing("fr-FR")["shortDescription"])
	assert.Equal(t, "Complet", f.listing("fr-FR")["fullDescription"])
	assert.Equal(t, "Demo DE", f.listing("de-DE")["title"])
	assert.Contains(t, f.mutations(), "POST edits/edit-1:commit")
	assert.Empty(t, f.deletedEdits)
}

// TestSetMetadata_FailureDiscardsEdit tests that a failing locale leaves the live listing untouched.
func TestSetMetadata_FailureDiscardsEdit(t *testing.T) {
	f := seededPlay()
	f.failWith["PUT it-IT"] = 400
	svc := newTestService(t, f)

	var records []reconcile.Record
	for _, code := range []string{"de-DE", "en-US", "it-IT", "ja-JP", "ko-KR"} {
		r := reconcile.NewRecord(code)
		r.Set(play.FieldTitle, "T "+code)
		records = append(records, r)
	}

	summary, err := svc.SetMetadata(context.Background(), "com.example.demo", records, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, reconcile.ErrRemote))

	assert.True(t, summary.RolledBack)
	assert.False(t, summary.Committed)
	assert.Empty(t, summary.Created)
	assert.Empty(t, summary.Updated)
	require.NotNil(t, summary.Failed)
	assert.Equal(t, "it-IT", summary.Failed.Locale)

	assert.Equal(t, []string{"edit-1"}, f.deletedEdits)
	assert.Nil(t, f.listing("de-DE"))
	assert.Equal(t, "Demo", f.listing("en-US")["title"])
	for _, m := range f.mutations() {
		assert.NotContains(t, m, "ja-JP")
		assert.NotContains(t, m, ":commit")
	}
}

func TestSetMetadata_CommitFailureIsNotDiscarded(t *testing.T) {
	f := seededPlay()
	f.failCommit = true
	svc := newTestService(t, f)

	r := reconcile.NewRecord("en-US")
	r.Set(play.FieldTitle, "New")

	summary, err := svc.SetMetadata(context.Background(), "com.example.demo", []reconcile.Record{r}, false)
	require.Error(t, err)
	assert.True(t, summary.RolledBack)
	assert.Empty(t, f.deletedEdits)
	assert.Equal(t, "Demo", f.listing("en-US")["title"])
}

// TestSetMetadata_CommitResponseLost tests that a commit applied server-side
// but answered with a 503 is sent once and reported as unknown, not rolled back.
func TestSetMetadata_CommitResponseLost(t *testing.T) {
	f := seededPlay()
	f.lostCommit = true
	svc := newRetryingService(t, f)

	r := reconcile.NewRecord("en-US")
	r.Set(play.FieldTitle, "New")

	summary, err := svc.SetMetadata(context.Background(), "com.example.demo", []reconcile.Record{r}, false)
	require.Error(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, transport.StatusOf(err))
	assert.NotContains(t, err.Error(), "editNotFound")

	assert.Equal(t, []string{"POST edits", "PATCH edits/edit-1/listings/en-US", "POST edits/edit-1:commit"}, f.mutations())
	assert.False(t, summary.Committed)
	assert.False(t, summary.RolledBack)
	assert.True(t, summary.CommitUnknown)
	assert.Equal(t, []string{"en-US"}, summary.UpdatedLocales())
	assert.Equal(t, "New", f.listing("en-US")["title"])
}

// TestGetMetadata_OpenResponseLost tests that a lost open response never opens a second edit.
func TestGetMetadata_OpenResponseLost(t *testing.T) {
	f := seededPlay()
	f.lostOpen = true
	svc := newRetryingService(t, f)

	_, err := svc.GetMetadata(context.Background(), "com.example.demo", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, reconcile.ErrRemote))

	assert.Equal(t, []string{"POST edits"}, f.mutations())
	assert.Equal(t, []string{"edit-1"}, f.openEdits())
}

// TestSetMetadata_RetriesIdempotentCalls tests that listing writes still retry.
func TestSetMetadata_RetriesIdempotentCalls(t *testing.T) {
	f := seededPlay()
	f.failWith["PATCH en-US"] = http.StatusServiceUnavailable
	svc := newRetryingService(t, f)

	r := reconcile.NewRecord("en-US")
	r.Set(play.FieldTitle, "New")

	_, err := svc.SetMetadata(context.Background(), "com.example.demo", []reconcile.Record{r}, false)
	require.Error(t, err)

	patches := 0
	for _, m := range f.mutations() {
		if m == "PATCH edits/edit-1/listings/en-US" {
			patches++
		}
	}
	assert.Equal(t, 4, patches)
	assert.Equal(t, []string{"edit-1"}, f.deletedEdits)
}

func TestSetMetadata_DuplicateRecovery(t *testing.T) {
	f := seededPlay()
	f.addListing("ja-JP", "title", "古い")
	f.hidden["ja-JP"] = true
	svc := newTestService(t, f)

	r := reconcile.NewRecord("ja-JP")
	r.Set(play.FieldTitle, "新しい")

	summary, err := svc.SetMetadata(context.Background(), "com.example.demo", []reconcile.Record{r}, false)
	require.NoError(t, err)
	require.Len(t, summary.Updated, 1)
	assert.True(t, summary.Updated[0].Recovered)
	assert.Equal(t, "新しい", f.listing("ja-JP")["title"])
}

func TestSetMetadata_DryRun(t *testing.T) {
	f := seededPlay()
	svc := newTestService(t, f)

	r := reconcile.NewRecord("es-ES")
	r.Set(play.FieldTitle, "Demo")

	summary, err := svc.SetMetadata(context.Background(), "com.example.demo", []reconcile.Record{r}, true)
	require.NoError(t, err)
	assert.False(t, summary.Committed)
	require.Len(t, summary.Planned, 1)
	assert.Equal(t, reconcile.ActionCreate, summary.Planned[0].Action)
	assert.Equal(t, []string{"POST edits", "DELETE edits/edit-1"}, f.mutations())
}

func TestSetMetadata_ValidationGate(t *testing.T) {
	f := seededPlay()
	svc := newTestService(t, f)

	r := reconcile.NewRecord("en-US")
	r.Set(play.FieldTitle, strings.Repeat("é", 31))
	r.Set(play.FieldShortDescription, strings.Repeat("s", 81))

	_, err := svc.SetMetadata(context.Background(), "com.example.demo", []reconcile.Record{r}, false)
	var vf *reconcile.ValidationFailure
	require.True(t, errors.As(err, &vf))
	assert.Len(t, vf.Violations, 2)
	assert.Empty(t, f.requests)
}

type captureRecorder struct {
	reports []reconcile.RunReport
}

func (c *captureRecorder) RecordRun(_ context.Context, r reconcile.RunReport) error {
	c.reports = append(c.reports, r)
	return nil
}

func TestSetMetadata_RecordsRun(t *testing.T) {
	rec := &captureRecorder{}
	f := seededPlay()
	f.failWith["PATCH en-US"] = 400
	svc := newRecordingService(t, f, rec)

	r := reconcile.NewRecord("en-US")
	r.Set(play.FieldVideo, "https://example.com/v")
	_, err := svc.SetMetadata(context.Background(), "com.example.demo", []reconcile.Record{r}, false)
	require.Error(t, err)

	require.Len(t, rec.reports, 1)
	assert.Equal(t, "play", rec.reports[0].Backend)
	assert.Equal(t, "com.example.demo", rec.reports[0].AppID)
	assert.Error(t, rec.reports[0].Err)
	assert.True(t, rec.reports[0].Summary.RolledBack)
}
