package play

import (
	"context"

	"storelisting/core/reconcile"
)

// edits adapts the Play edits API to reconcile.SessionBackend.
type edits struct {
	api *API
	pkg string
}

func (e *edits) Open(ctx context.Context) (string, error) {
	return e.api.OpenEdit(ctx, e.pkg)
}

func (e *edits) Commit(ctx context.Context, id string) error {
	return e.api.CommitEdit(ctx, e.pkg, id)
}

func (e *edits) Discard(ctx context.Context, id string) error {
	return e.api.DeleteEdit(ctx, e.pkg, id)
}

// listings is the store listing collection of one edit.
type listings struct {
	api    *API
	pkg    string
	editID string
}

func (l *listings) Name() string              { return "listings" }
func (l *listings) Fields() []reconcile.Field { return listingFields }

func (l *listings) List(ctx context.Context) ([]reconcile.RemoteItem, error) {
	return l.api.ListListings(ctx, l.pkg, l.editID)
}

func (l *listings) Find(ctx context.Context, language string) ([]reconcile.RemoteItem, error) {
	item, err := l.api.GetListing(ctx, l.pkg, l.editID, language)
	if err != nil || item == nil {
		return nil, err
	}
	return []reconcile.RemoteItem{*item}, nil
}

func (l *listings) Create(ctx context.Context, language string, patch reconcile.Patch) (string, error) {
	if err := l.api.PutListing(ctx, l.pkg, l.editID, language, patch); err != nil {
		return "", err
	}
	return language, nil
}

func (l *listings) Update(ctx context.Context, language string, patch reconcile.Patch) error {
	return l.api.PatchListing(ctx, l.pkg, l.editID, language, patch)
}

func (l *listings) IsDuplicate(err error) bool {
	return isDuplicate(err)
}

// target reconciles the listings of one package inside an edit.
type target struct {
	api *API
	pkg string
}

func (t *target) Name() string { return "play" }

func (t *target) Sessions() reconcile.SessionBackend {
	return &edits{api: t.api, pkg: t.pkg}
}

func (t *target) Collections(_ context.Context, editID string) ([]reconcile.Collection, error) {
	return []reconcile.Collection{&listings{api: t.api, pkg: t.pkg, editID: editID}}, nil
}
