package reconcile

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// RunReport describes one finished set-metadata pass.
type RunReport struct {
	ID         string
	Backend    string
	AppID      string
	DryRun     bool
	StartedAt  time.Time
	FinishedAt time.Time
	Summary    *Summary
	Err        error
}

// RunRecorder persists run reports for later remediation.
type RunRecorder interface {
	RecordRun(ctx context.Context, report RunReport) error
}

// RecordRun hands report to recorder when one is configured. A recording
// failure is logged and never changes the run's own result.
func RecordRun(ctx context.Context, recorder RunRecorder, logger *zap.Logger, report RunReport) {
	if recorder == nil {
		return
	}
	if err := recorder.RecordRun(context.WithoutCancel(ctx), report); err != nil && logger != nil {
		logger.Warn("Failed to record run in journal", zap.String("run_id", report.ID), zap.Error(err))
	}
}
