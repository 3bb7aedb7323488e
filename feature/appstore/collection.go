package appstore

import (
	"context"

	"storelisting/core/reconcile"
)

// localizations is one localization collection bound to its owner.
type localizations struct {
	api     *API
	kind    kind
	ownerID string
}

func (l *localizations) Name() string              { return l.kind.name }
func (l *localizations) Fields() []reconcile.Field { return l.kind.fields }

func (l *localizations) List(ctx context.Context) ([]reconcile.RemoteItem, error) {
	return l.api.ListLocalizations(ctx, l.kind, l.ownerID, "")
}

func (l *localizations) Find(ctx context.Context, locale string) ([]reconcile.RemoteItem, error) {
	return l.api.ListLocalizations(ctx, l.kind, l.ownerID, locale)
}

func (l *localizations) Create(ctx context.Context, locale string, patch reconcile.Patch) (string, error) {
	return l.api.CreateLocalization(ctx, l.kind, l.ownerID, locale, patch)
}

func (l *localizations) Update(ctx context.Context, id string, patch reconcile.Patch) error {
	return l.api.UpdateLocalization(ctx, l.kind, id, patch)
}

func (l *localizations) IsDuplicate(err error) bool {
	return isDuplicate(err)
}

// target locates the editable app info and version of one app. Collections
// whose fields the desired records never set are skipped along with their
// editability precondition.
type target struct {
	api   *API
	appID string
	used  map[reconcile.Field]bool
}

func newTarget(api *API, appID string, records []reconcile.Record) *target {
	used := make(map[reconcile.Field]bool)
	for _, r := range records {
		for f := range r.Fields {
			used[f] = true
		}
	}
	return &target{api: api, appID: appID, used: used}
}

func (t *target) Name() string { return "appstore" }

func (t *target) uses(fields []reconcile.Field) bool {
	for _, f := range fields {
		if t.used[f] {
			return true
		}
	}
	return false
}

// Collections implements reconcile.Target. App Store Connect has no sessions,
// so sessionID is always empty.
func (t *target) Collections(ctx context.Context, _ string) ([]reconcile.Collection, error) {
	if _, err := t.api.GetApp(ctx, t.appID); err != nil {
		return nil, err
	}

	var out []reconcile.Collection

	if t.uses(appInfoFields) {
		infos, err := t.api.ListAppInfos(ctx, t.appID)
		if err != nil {
			return nil, err
		}
		info, err := States.Select(infos).RequireEditable(t.Name(), "app info")
		if err != nil {
			return nil, err
		}
		out = append(out, &localizations{api: t.api, kind: appInfoLocalizations, ownerID: info.ID})
	}

	if t.uses(versionFields) {
		versions, err := t.api.ListVersions(ctx, t.appID)
		if err != nil {
			return nil, err
		}
		version, err := States.Select(versions).RequireEditable(t.Name(), "app store version")
		if err != nil {
			return nil, err
		}
		out = append(out, &localizations{api: t.api, kind: versionLocalizations, ownerID: version.ID})
	}

	return out, nil
}
