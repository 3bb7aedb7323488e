package journal

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"storelisting/core/database"
	"storelisting/core/reconcile"
	"storelisting/feature/journal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// DefaultLimit caps Recent when no limit is given.
const DefaultLimit = 20

// Repository persists reconciliation runs.
type Repository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewRepository creates a repository on db.
func NewRepository(db *gorm.DB, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{db: db, logger: logger}
}

// Migrate creates or updates the journal tables.
func (r *Repository) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&models.Run{}, &models.Outcome{}); err != nil {
		return fmt.Errorf("failed to migrate journal tables: %w", err)
	}
	return nil
}

// Check verifies that the journal tables carry every column the models need.
func (r *Repository) Check(ctx context.Context) error {
	db := r.db.WithContext(ctx)
	for _, model := range []any{&models.Run{}, &models.Outcome{}} {
		s, err := schema.Parse(model, &sync.Map{}, db.NamingStrategy)
		if err != nil {
			return fmt.Errorf("failed to parse journal model: %w", err)
		}
		missing, err := database.MissingColumns(db, s.Table, s.DBNames)
		if err != nil {
			return err
		}
		if len(missing) > 0 {
			return fmt.Errorf("table %s is missing columns: %s", s.Table, strings.Join(missing, ", "))
		}
	}
	return nil
}

// RecordRun implements reconcile.RunRecorder.
func (r *Repository) RecordRun(ctx context.Context, report reconcile.RunReport) error {
	run := toRun(report)
	if err := r.db.WithContext(ctx).Create(&run).Error; err != nil {
		return fmt.Errorf("failed to record run %s: %w", run.ID, err)
	}
	r.logger.Debug("Run recorded", zap.String("run_id", run.ID), zap.Int("outcomes", len(run.Outcomes)))
	return nil
}

// Recent returns the latest runs with their outcomes, newest first. An empty
// backend matches every backend.
func (r *Repository) Recent(ctx context.Context, backend string, limit int) ([]models.Run, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	q := r.db.WithContext(ctx).Preload("Outcomes").Order("started_at DESC").Limit(limit)
	if backend != "" {
		q = q.Where("backend = ?", backend)
	}

	var runs []models.Run
	if err := q.Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

func toRun(report reconcile.RunReport) models.Run {
	run := models.Run{
		ID:         report.ID,
		Backend:    report.Backend,
		AppID:      report.AppID,
		DryRun:     report.DryRun,
		StartedAt:  report.StartedAt.UTC(),
		FinishedAt: report.FinishedAt.UTC(),
	}
	if report.Err != nil {
		run.Error = report.Err.Error()
	}

	s := report.Summary
	if s == nil {
		return run
	}
	run.Committed = s.Committed
	run.RolledBack = s.RolledBack
	run.CommitUnknown = s.CommitUnknown

	for _, res := range s.Created {
		run.Outcomes = append(run.Outcomes, models.Outcome{Collection: res.Collection, Locale: res.Locale, Result: models.ResultCreated})
	}
	for _, res := range s.Updated {
		run.Outcomes = append(run.Outcomes, models.Outcome{Collection: res.Collection, Locale: res.Locale, Result: models.ResultUpdated, Recovered: res.Recovered})
	}
	for _, ch := range s.Planned {
		run.Outcomes = append(run.Outcomes, models.Outcome{Collection: ch.Collection, Locale: ch.Locale, Result: models.ResultPlanned})
	}
	if f := s.Failed; f != nil {
		run.Outcomes = append(run.Outcomes, models.Outcome{Collection: f.Collection, Locale: f.Locale, Result: models.ResultFailed, Error: f.Error})
	}
	return run
}
