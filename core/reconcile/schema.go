package reconcile

import (
	"encoding/json"
	"fmt"
	"sort"

	"storelisting/core/jsonx"
)

// Schema describes how one backend spells records in its JSON documents: the
// key holding the locale and the recognized text fields.
type Schema struct {
	LocaleKey string
	Fields    []Field
}

func (s Schema) known(key string) bool {
	for _, f := range s.Fields {
		if string(f) == key {
			return true
		}
	}
	return false
}

// DecodeRecord decodes one JSON object into a Record. Keys that are absent or
// null stay absent; keys present with "" are kept as empty. Unknown keys and
// non-string values are errors.
func (s Schema) DecodeRecord(data []byte) (Record, error) {
	var raw map[string]json.RawMessage
	if err := jsonx.Unmarshal(data, &raw); err != nil {
		return Record{}, fmt.Errorf("failed to parse localization: %w", err)
	}

	var code string
	if v, ok := raw[s.LocaleKey]; ok {
		if err := jsonx.Unmarshal(v, &code); err != nil {
			return Record{}, fmt.Errorf("%s must be a string: %w", s.LocaleKey, err)
		}
	}
	if code == "" {
		return Record{}, fmt.Errorf("localization is missing %q", s.LocaleKey)
	}

	// Sorted so the first reported problem does not depend on map order
	keys := make([]string, 0, len(raw))
	for key := range raw {
		if key != s.LocaleKey {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	rec := NewRecord(code)
	for _, key := range keys {
		v := raw[key]
		if !s.known(key) {
			return Record{}, fmt.Errorf("%s: unknown field %q", code, key)
		}
		if string(v) == "null" {
			continue
		}
		var value string
		if err := jsonx.Unmarshal(v, &value); err != nil {
			return Record{}, fmt.Errorf("%s: field %q must be a string: %w", code, key, err)
		}
		rec.Set(Field(key), value)
	}
	return rec, nil
}

// DecodeRecords decodes a list of JSON objects, in order.
func (s Schema) DecodeRecords(items []json.RawMessage) ([]Record, error) {
	records := make([]Record, 0, len(items))
	for i, item := range items {
		rec, err := s.DecodeRecord(item)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// EncodeRecords renders records as JSON-ready objects carrying the locale key
// plus every field the record sets.
func (s Schema) EncodeRecords(records []Record) []map[string]string {
	out := make([]map[string]string, 0, len(records))
	for _, r := range records {
		obj := make(map[string]string, len(r.Fields)+1)
		for f, v := range r.Fields {
			obj[string(f)] = v
		}
		obj[s.LocaleKey] = r.Locale
		out = append(out, obj)
	}
	return out
}
