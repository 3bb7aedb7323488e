package reconcile

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Target is one backend's side of a reconciliation pass.
type Target interface {
	// Name returns the backend name used in summaries and errors.
	Name() string

	// Collections fetches whatever the backend needs to locate its writable
	// collections and returns them in the order they should be applied.
	// sessionID is empty for backends without sessions.
	Collections(ctx context.Context, sessionID string) ([]Collection, error)
}

// SessionTarget is a Target whose mutations are grouped in an edit session.
type SessionTarget interface {
	Target
	Sessions() SessionBackend
}

// Reconciler runs reconciliation passes. It holds no state between runs.
type Reconciler struct {
	Validator Validator
	Logger    *zap.Logger

	// DryRun classifies without mutating. Sessions are still opened (reads
	// need them) and always discarded.
	DryRun bool
}

// Run reconciles desired against target. The returned Summary is never nil and
// describes what was applied even when err is non-nil.
func (r *Reconciler) Run(ctx context.Context, target Target, desired []Record) (*Summary, error) {
	log := r.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("backend", target.Name()))

	summary := &Summary{Backend: target.Name(), DryRun: r.DryRun}

	// Step 1: Validate everything before the first network call
	if err := r.Validator.Validate(desired); err != nil {
		return summary, err
	}

	records := make([]Record, 0, len(desired))
	for _, rec := range desired {
		records = append(records, rec.Clone())
	}
	SortRecords(records)

	// Step 2: Session backends get the whole pass inside one session
	if st, ok := target.(SessionTarget); ok {
		err := WithSession(ctx, st.Sessions(), log, !r.DryRun, func(ctx context.Context, sessionID string) error {
			return r.apply(ctx, log, target, sessionID, records, summary)
		})
		if err != nil {
			var cf *CommitFailure
			if errors.As(err, &cf) && !cf.Rejected() {
				summary.CommitUnknown = true
				log.Error("Edit session commit outcome unknown", zap.String("session_id", cf.SessionID), zap.Error(err))
				return summary, err
			}
			summary.rollback()
			return summary, err
		}
		summary.Committed = !r.DryRun
		return summary, nil
	}

	// No session: every call is durable on its own, nothing to roll back
	err := r.apply(ctx, log, target, "", records, summary)
	return summary, err
}

// apply fetches existing state per collection, classifies and applies changes in order.
func (r *Reconciler) apply(ctx context.Context, log *zap.Logger, target Target, sessionID string, records []Record, summary *Summary) error {
	collections, err := target.Collections(ctx, sessionID)
	if err != nil {
		return err
	}

	for _, c := range collections {
		existing, err := c.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list %s: %w", c.Name(), err)
		}

		changes := Classify(c.Name(), records, existing, c.Fields())
		log.Debug("Classified changes",
			zap.String("collection", c.Name()),
			zap.Int("existing", len(existing)),
			zap.Int("changes", len(changes)),
		)

		for _, ch := range changes {
			if r.DryRun {
				summary.Planned = append(summary.Planned, ch)
				continue
			}

			out := Apply(ctx, c, ch)
			summary.add(out)
			if out.Err != nil {
				log.Error("Locale mutation failed",
					zap.String("collection", c.Name()),
					zap.String("locale", ch.Locale),
					zap.String("action", string(ch.Action)),
					zap.Error(out.Err),
				)
				return fmt.Errorf("%s %s %s: %w", c.Name(), ch.Action, ch.Locale, out.Err)
			}
			log.Info("Locale applied",
				zap.String("collection", c.Name()),
				zap.String("locale", ch.Locale),
				zap.String("outcome", out.Kind.String()),
			)
		}
	}
	return nil
}
