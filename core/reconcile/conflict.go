package reconcile

import (
	"context"
	"fmt"
)

// OutcomeKind is the result variant of applying one change.
type OutcomeKind int

const (
	// OutcomeFailed means the change was not applied; Outcome.Err says why.
	OutcomeFailed OutcomeKind = iota
	// OutcomeCreated means a new remote record was created.
	OutcomeCreated
	// OutcomeUpdated means an existing record was patched.
	OutcomeUpdated
	// OutcomeUpdatedAfterConflict means CREATE hit a duplicate and the
	// existing record was patched instead.
	OutcomeUpdatedAfterConflict
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeCreated:
		return "created"
	case OutcomeUpdated:
		return "updated"
	case OutcomeUpdatedAfterConflict:
		return "updated_after_conflict"
	default:
		return "failed"
	}
}

// Outcome is the result of applying one change.
type Outcome struct {
	Change Change
	Kind   OutcomeKind
	// ID is the remote identifier the change ended up on.
	ID  string
	Err error
}

// Apply executes a single change against its collection. CREATEs go through
// duplicate recovery; UPDATEs are sent as-is.
func Apply(ctx context.Context, c Collection, ch Change) Outcome {
	if ch.Action == ActionUpdate {
		if err := c.Update(ctx, ch.TargetID, ch.Patch); err != nil {
			return Outcome{Change: ch, Kind: OutcomeFailed, ID: ch.TargetID, Err: err}
		}
		return Outcome{Change: ch, Kind: OutcomeUpdated, ID: ch.TargetID}
	}
	return CreateOrRecover(ctx, c, ch)
}

// CreateOrRecover attempts a CREATE. When the backend rejects it as a
// duplicate, the locale is re-queried and the patch is applied as an UPDATE to
// the single match. Any other CREATE error is returned untouched. If the
// re-query does not yield exactly one match the original error is surfaced
// wrapped in a DuplicateConflict.
func CreateOrRecover(ctx context.Context, c Collection, ch Change) Outcome {
	id, err := c.Create(ctx, ch.Locale, ch.Patch)
	if err == nil {
		return Outcome{Change: ch, Kind: OutcomeCreated, ID: id}
	}
	if !c.IsDuplicate(err) {
		return Outcome{Change: ch, Kind: OutcomeFailed, Err: err}
	}

	matches, ferr := c.Find(ctx, ch.Locale)
	if ferr != nil {
		return Outcome{Change: ch, Kind: OutcomeFailed, Err: &DuplicateConflict{
			Collection: c.Name(),
			Locale:     ch.Locale,
			Reason:     fmt.Sprintf("re-query failed: %v", ferr),
			Err:        err,
		}}
	}
	if len(matches) != 1 {
		return Outcome{Change: ch, Kind: OutcomeFailed, Err: &DuplicateConflict{
			Collection: c.Name(),
			Locale:     ch.Locale,
			Reason:     fmt.Sprintf("re-query returned %d matches, want 1", len(matches)),
			Err:        err,
		}}
	}

	target := matches[0].ID
	if uerr := c.Update(ctx, target, ch.Patch); uerr != nil {
		return Outcome{Change: ch, Kind: OutcomeFailed, ID: target, Err: uerr}
	}
	return Outcome{Change: ch, Kind: OutcomeUpdatedAfterConflict, ID: target}
}
