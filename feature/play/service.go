package play

import (
	"context"
	"strings"
	"time"

	"storelisting/core/logger"
	"storelisting/core/reconcile"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service reads and reconciles Google Play store listings.
type Service struct {
	api       *API
	validator reconcile.Validator
	recorder  reconcile.RunRecorder
	logger    *zap.Logger
}

// NewService creates a new Play service. recorder may be nil.
func NewService(api *API, limits Limits, recorder reconcile.RunRecorder, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{api: api, validator: limits.Validator(), recorder: recorder, logger: logger}
}

// GetMetadata reads the package's details and listings inside a throwaway
// edit, which is always discarded.
func (s *Service) GetMetadata(ctx context.Context, pkg string, locales []string) (*Snapshot, error) {
	snapshot := &Snapshot{PackageName: pkg}
	sessions := &edits{api: s.api, pkg: pkg}

	err := reconcile.WithSession(ctx, sessions, s.logger, false, func(ctx context.Context, editID string) error {
		details, err := s.api.GetDetails(ctx, pkg, editID)
		if err != nil {
			return err
		}
		snapshot.Details = details

		records, err := reconcile.ReadRecords(ctx, &listings{api: s.api, pkg: pkg, editID: editID})
		if err != nil {
			return err
		}

		kept, missing := reconcile.FilterLocales(records, locales)
		if len(missing) > 0 {
			return &reconcile.NotFoundFailure{
				Resource:  "locale",
				ID:        strings.Join(missing, ","),
				Available: reconcile.Locales(records),
			}
		}
		snapshot.Listings = Schema.EncodeRecords(kept)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

// SetMetadata reconciles records against the package's listings inside one
// edit. The edit is committed only when every mutation succeeds; otherwise
// it is discarded and nothing becomes visible.
func (s *Service) SetMetadata(ctx context.Context, pkg string, records []reconcile.Record, dryRun bool) (*reconcile.Summary, error) {
	runID := uuid.NewString()
	log := logger.WithRun(s.logger, runID, "play").With(zap.String("package", pkg))
	started := time.Now()

	r := &reconcile.Reconciler{Validator: s.validator, Logger: log, DryRun: dryRun}
	summary, err := r.Run(ctx, &target{api: s.api, pkg: pkg}, records)

	reconcile.RecordRun(ctx, s.recorder, log, reconcile.RunReport{
		ID:         runID,
		Backend:    "play",
		AppID:      pkg,
		DryRun:     dryRun,
		StartedAt:  started,
		FinishedAt: time.Now(),
		Summary:    summary,
		Err:        err,
	})

	if err != nil {
		log.Error("Listing update failed", zap.Error(err))
		return summary, err
	}
	log.Info("Listings updated",
		zap.Strings("created", summary.CreatedLocales()),
		zap.Strings("updated", summary.UpdatedLocales()),
		zap.Int("planned", len(summary.Planned)),
		zap.Bool("committed", summary.Committed),
	)
	return summary, nil
}
