package reconcile

// Action is the kind of mutation planned for one locale in one collection.
type Action string

const (
	// ActionCreate creates a new remote record for the locale.
	ActionCreate Action = "create"
	// ActionUpdate patches the existing remote record.
	ActionUpdate Action = "update"
)

// Patch is the set of attributes to send. Only fields explicitly set on the
// desired record appear in it.
type Patch map[Field]string

// Change is one planned mutation.
type Change struct {
	Collection string `json:"collection"`
	Locale     string `json:"locale"`
	Action     Action `json:"action"`

	// TargetID is the remote identifier to patch. Only set for ActionUpdate.
	TargetID string `json:"targetId,omitempty"`

	// Patch excludes the locale itself; Collection.Create receives it separately.
	Patch Patch `json:"patch"`
}

// Classify decides CREATE vs UPDATE for every desired record against the
// existing items of one collection. fields is the attribute subset the
// collection owns. Records that set none of those fields produce no change.
// The output follows the order of desired.
func Classify(collection string, desired []Record, existing []RemoteItem, fields []Field) []Change {
	ids := make(map[string]string, len(existing))
	for _, item := range existing {
		ids[item.Locale] = item.ID
	}

	var changes []Change
	for _, rec := range desired {
		patch := buildPatch(rec, fields)
		if len(patch) == 0 {
			continue
		}

		ch := Change{Collection: collection, Locale: rec.Locale, Patch: patch}
		if id, ok := ids[rec.Locale]; ok {
			ch.Action = ActionUpdate
			ch.TargetID = id
		} else {
			ch.Action = ActionCreate
		}
		changes = append(changes, ch)
	}
	return changes
}

// buildPatch copies the owned fields the record explicitly sets, empty strings included.
func buildPatch(rec Record, fields []Field) Patch {
	patch := make(Patch)
	for _, f := range fields {
		if v, ok := rec.Get(f); ok {
			patch[f] = v
		}
	}
	return patch
}
