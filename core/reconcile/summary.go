package reconcile

import "sort"

// LocaleResult is one applied change as shown to the caller.
type LocaleResult struct {
	Collection string `json:"collection"`
	Locale     string `json:"locale"`
	ID         string `json:"id,omitempty"`
	// Recovered is set when a CREATE hit a duplicate and became an UPDATE.
	Recovered bool `json:"recovered,omitempty"`
}

// LocaleFailure is the change that stopped the pass.
type LocaleFailure struct {
	Collection string `json:"collection"`
	Locale     string `json:"locale"`
	Action     Action `json:"action"`
	Error      string `json:"error"`
}

// Summary is the caller-visible result of a reconciliation pass.
type Summary struct {
	Backend string `json:"backend"`
	DryRun  bool   `json:"dryRun"`

	Created []LocaleResult `json:"created"`
	Updated []LocaleResult `json:"updated"`

	// Planned holds the classified changes of a dry run.
	Planned []Change `json:"planned,omitempty"`

	Failed *LocaleFailure `json:"failed,omitempty"`

	// Committed is set when a session backend committed the pass.
	Committed bool `json:"committed,omitempty"`

	// RolledBack is set when a session backend discarded the pass. Created and
	// Updated are emptied since none of it became visible.
	RolledBack bool `json:"rolledBack,omitempty"`

	// CommitUnknown is set when the commit call failed without a definite
	// answer. Created and Updated are kept: they are live if the commit landed.
	CommitUnknown bool `json:"commitUnknown,omitempty"`
}

func (s *Summary) add(out Outcome) {
	res := LocaleResult{Collection: out.Change.Collection, Locale: out.Change.Locale, ID: out.ID}
	switch out.Kind {
	case OutcomeCreated:
		s.Created = append(s.Created, res)
	case OutcomeUpdated:
		s.Updated = append(s.Updated, res)
	case OutcomeUpdatedAfterConflict:
		res.Recovered = true
		s.Updated = append(s.Updated, res)
	default:
		msg := ""
		if out.Err != nil {
			msg = out.Err.Error()
		}
		s.Failed = &LocaleFailure{
			Collection: out.Change.Collection,
			Locale:     out.Change.Locale,
			Action:     out.Change.Action,
			Error:      msg,
		}
	}
}

func (s *Summary) rollback() {
	s.Created = nil
	s.Updated = nil
	s.RolledBack = true
}

// CreatedLocales returns the distinct locales that were created in any collection.
func (s *Summary) CreatedLocales() []string {
	return distinctLocales(s.Created)
}

// UpdatedLocales returns the distinct locales that were updated in any collection.
func (s *Summary) UpdatedLocales() []string {
	return distinctLocales(s.Updated)
}

func distinctLocales(results []LocaleResult) []string {
	seen := make(map[string]struct{}, len(results))
	out := make([]string, 0, len(results))
	for _, r := range results {
		if _, ok := seen[r.Locale]; ok {
			continue
		}
		seen[r.Locale] = struct{}{}
		out = append(out, r.Locale)
	}
	sort.Strings(out)
	return out
}
