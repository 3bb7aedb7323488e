package reconcile

import "context"

// Collection is one remote resource collection holding a subset of each
// locale's fields. It is bound to its owner (app info, version, edit) when
// constructed, so no owner id travels through these calls.
type Collection interface {
	// Name returns the collection name used in summaries and logs.
	Name() string

	// Fields returns the attribute subset this collection owns.
	Fields() []Field

	// List returns every existing item.
	List(ctx context.Context) ([]RemoteItem, error)

	// Find re-queries the collection filtered to a single locale.
	Find(ctx context.Context, locale string) ([]RemoteItem, error)

	// Create creates the item for locale and returns its identifier.
	Create(ctx context.Context, locale string, patch Patch) (string, error)

	// Update applies patch to the item with the given identifier using
	// partial-update semantics.
	Update(ctx context.Context, id string, patch Patch) error

	// IsDuplicate reports whether err from Create means the locale already exists.
	IsDuplicate(err error) bool
}

// ReadRecords lists every collection once and merges the results.
func ReadRecords(ctx context.Context, collections ...Collection) ([]Record, error) {
	sets := make([][]RemoteItem, 0, len(collections))
	for _, c := range collections {
		items, err := c.List(ctx)
		if err != nil {
			return nil, err
		}
		sets = append(sets, items)
	}
	return MergeRecords(sets...), nil
}
