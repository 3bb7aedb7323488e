package appstore

import (
	"context"
	"strings"
	"time"

	"storelisting/core/logger"
	"storelisting/core/reconcile"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service reads and reconciles App Store Connect localizations.
type Service struct {
	api       *API
	validator reconcile.Validator
	recorder  reconcile.RunRecorder
	logger    *zap.Logger
}

// NewService creates a new App Store service. recorder may be nil.
func NewService(api *API, limits Limits, recorder reconcile.RunRecorder, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{api: api, validator: limits.Validator(), recorder: recorder, logger: logger}
}

// GetMetadata reads the app's localizations from the preferred version
// category, falling back to the other one. A non-empty locales list narrows
// the result; a requested locale that does not exist is a NotFoundFailure.
func (s *Service) GetMetadata(ctx context.Context, appID string, from reconcile.Preference, locales []string) (*Snapshot, error) {
	app, err := s.api.GetApp(ctx, appID)
	if err != nil {
		return nil, err
	}

	infos, err := s.api.ListAppInfos(ctx, appID)
	if err != nil {
		return nil, err
	}
	versions, err := s.api.ListVersions(ctx, appID)
	if err != nil {
		return nil, err
	}

	info := States.Select(infos).Prefer(from)
	version := States.Select(versions).Prefer(from)

	var collections []reconcile.Collection
	if info != nil {
		collections = append(collections, &localizations{api: s.api, kind: appInfoLocalizations, ownerID: info.ID})
	}
	if version != nil {
		collections = append(collections, &localizations{api: s.api, kind: versionLocalizations, ownerID: version.ID})
	}

	records, err := reconcile.ReadRecords(ctx, collections...)
	if err != nil {
		return nil, err
	}

	kept, missing := reconcile.FilterLocales(records, locales)
	if len(missing) > 0 {
		return nil, &reconcile.NotFoundFailure{
			Resource:  "locale",
			ID:        strings.Join(missing, ","),
			Available: reconcile.Locales(records),
		}
	}

	return &Snapshot{
		App:           *app,
		AppInfo:       summarize(info),
		Version:       summarize(version),
		Localizations: Schema.EncodeRecords(kept),
	}, nil
}

// SetMetadata reconciles records against the app's editable app info and
// version. Each mutation is durable on its own: on failure the summary lists
// what was already applied.
func (s *Service) SetMetadata(ctx context.Context, appID string, records []reconcile.Record, dryRun bool) (*reconcile.Summary, error) {
	runID := uuid.NewString()
	log := logger.WithRun(s.logger, runID, "appstore").With(zap.String("app_id", appID))
	started := time.Now()

	r := &reconcile.Reconciler{Validator: s.validator, Logger: log, DryRun: dryRun}
	summary, err := r.Run(ctx, newTarget(s.api, appID, records), records)

	reconcile.RecordRun(ctx, s.recorder, log, reconcile.RunReport{
		ID:         runID,
		Backend:    "appstore",
		AppID:      appID,
		DryRun:     dryRun,
		StartedAt:  started,
		FinishedAt: time.Now(),
		Summary:    summary,
		Err:        err,
	})

	if err != nil {
		log.Error("Metadata update failed", zap.Error(err))
		return summary, err
	}
	log.Info("Metadata updated",
		zap.Strings("created", summary.CreatedLocales()),
		zap.Strings("updated", summary.UpdatedLocales()),
		zap.Int("planned", len(summary.Planned)),
	)
	return summary, nil
}
