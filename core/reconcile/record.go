package reconcile

import "sort"

// Field names one localized text attribute (e.g. "name", "keywords").
type Field string

// Record is the unified per-locale unit.
// A field absent from Fields means "leave it alone"; a field present with an
// empty string means "clear it".
type Record struct {
	// Locale is the language/region identifier, unique within a record set.
	Locale string

	// Fields holds the explicitly set attributes.
	Fields map[Field]string
}

// NewRecord returns an empty record for locale.
func NewRecord(locale string) Record {
	return Record{Locale: locale, Fields: make(map[Field]string)}
}

// Get returns the value of f and whether the record sets it at all.
func (r Record) Get(f Field) (string, bool) {
	v, ok := r.Fields[f]
	return v, ok
}

// Set sets f to v, allocating the field map if needed.
func (r *Record) Set(f Field, v string) {
	if r.Fields == nil {
		r.Fields = make(map[Field]string)
	}
	r.Fields[f] = v
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	c := NewRecord(r.Locale)
	for f, v := range r.Fields {
		c.Fields[f] = v
	}
	return c
}

// RemoteItem is one item of a remote collection: a locale, the backend's
// identifier for it, and the attribute subset the collection holds.
type RemoteItem struct {
	Locale     string
	ID         string
	Attributes map[Field]string
}

// SortRecords orders records by locale using plain byte ordering.
func SortRecords(records []Record) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].Locale < records[j].Locale
	})
}

// Locales returns the locale of every record, in record order.
func Locales(records []Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Locale)
	}
	return out
}

// FilterLocales keeps the records whose locale is listed in want. An empty
// want keeps everything. Locales in want that match nothing are returned as missing.
func FilterLocales(records []Record, want []string) (kept []Record, missing []string) {
	if len(want) == 0 {
		return records, nil
	}
	index := make(map[string]Record, len(records))
	for _, r := range records {
		index[r.Locale] = r
	}
	for _, code := range want {
		r, ok := index[code]
		if !ok {
			missing = append(missing, code)
			continue
		}
		kept = append(kept, r)
	}
	SortRecords(kept)
	return kept, missing
}
