package reconcile

import (
	"fmt"
	"time"
)

// Version is a version-like resource tagged with a lifecycle state.
type Version struct {
	ID          string    `json:"id"`
	Label       string    `json:"label,omitempty"`
	State       string    `json:"state"`
	CreatedDate time.Time `json:"createdDate,omitempty"`
}

// Preference picks which category a read should use.
type Preference string

const (
	// PreferLive reads the publicly released version.
	PreferLive Preference = "live"
	// PreferEditable reads the in-progress version.
	PreferEditable Preference = "editable"
)

// ParsePreference parses "live" or "editable".
func ParsePreference(s string) (Preference, error) {
	switch Preference(s) {
	case PreferLive, PreferEditable:
		return Preference(s), nil
	default:
		return "", fmt.Errorf("invalid version preference %q (want %q or %q)", s, PreferLive, PreferEditable)
	}
}

// StateSet is a backend's lifecycle vocabulary: one released state and the set
// of open, draft-like states.
type StateSet struct {
	Live     string
	Editable []string
}

// IsLive reports whether state is the released state.
func (s StateSet) IsLive(state string) bool {
	return state == s.Live
}

// IsEditable reports whether state is one of the open states.
func (s StateSet) IsEditable(state string) bool {
	for _, e := range s.Editable {
		if e == state {
			return true
		}
	}
	return false
}

// Selection is the outcome of partitioning versions by category.
type Selection struct {
	Live     *Version
	Editable *Version
}

// Select partitions versions and keeps the first match of each category.
// Versions are expected newest-first; Select does not sort them.
func (s StateSet) Select(versions []Version) Selection {
	var sel Selection
	for i := range versions {
		v := versions[i]
		switch {
		case sel.Live == nil && s.IsLive(v.State):
			sel.Live = &v
		case sel.Editable == nil && s.IsEditable(v.State):
			sel.Editable = &v
		}
	}
	return sel
}

// Prefer returns the preferred category, falling back to the other one.
// It returns nil only when both are empty.
func (s Selection) Prefer(p Preference) *Version {
	if p == PreferEditable {
		if s.Editable != nil {
			return s.Editable
		}
		return s.Live
	}
	if s.Live != nil {
		return s.Live
	}
	return s.Editable
}

// RequireEditable returns the editable version or a PreconditionFailure.
// Mutations never fall back to the live version.
func (s Selection) RequireEditable(backend, resource string) (*Version, error) {
	if s.Editable == nil {
		reason := "none exists"
		if s.Live != nil {
			reason = fmt.Sprintf("only the live %s %s exists and it cannot be modified", resource, s.Live.ID)
		}
		return nil, &PreconditionFailure{Backend: backend, Resource: "editable " + resource, Reason: reason}
	}
	return s.Editable, nil
}
