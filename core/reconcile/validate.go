package reconcile

import (
	"sort"
	"unicode/utf8"

	"storelisting/core/locale"
)

// Limits maps a field to its maximum length in characters. Zero or missing means unlimited.
type Limits map[Field]int

// Validator checks desired records before anything is sent to a backend.
type Validator struct {
	Limits Limits
}

// Validate collects every violation across all records and returns a
// *ValidationFailure when there is at least one. It never stops at the first problem.
func (v Validator) Validate(records []Record) error {
	var violations []Violation

	fields := make([]Field, 0, len(v.Limits))
	for f := range v.Limits {
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })

	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		if err := locale.Validate(r.Locale); err != nil {
			violations = append(violations, Violation{Locale: r.Locale, Field: "locale", Reason: err.Error()})
		}
		if _, dup := seen[r.Locale]; dup {
			violations = append(violations, Violation{Locale: r.Locale, Field: "locale", Reason: "locale appears more than once"})
		}
		seen[r.Locale] = struct{}{}

		for _, f := range fields {
			limit := v.Limits[f]
			if limit <= 0 {
				continue
			}
			value, ok := r.Get(f)
			if !ok {
				continue
			}
			if n := utf8.RuneCountInString(value); n > limit {
				violations = append(violations, Violation{Locale: r.Locale, Field: f, Length: n, Limit: limit})
			}
		}
	}

	if len(violations) > 0 {
		return &ValidationFailure{Violations: violations}
	}
	return nil
}
