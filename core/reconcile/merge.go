package reconcile

// MergeRecords overlays items from several remote collections into one record
// per locale present in any of them. When two collections carry the same field
// name the later collection wins. The result is sorted by locale.
func MergeRecords(sets ...[]RemoteItem) []Record {
	byLocale := make(map[string]Record)

	for _, set := range sets {
		for _, item := range set {
			rec, ok := byLocale[item.Locale]
			if !ok {
				rec = NewRecord(item.Locale)
			}
			for f, v := range item.Attributes {
				rec.Fields[f] = v
			}
			byLocale[item.Locale] = rec
		}
	}

	records := make([]Record, 0, len(byLocale))
	for _, rec := range byLocale {
		records = append(records, rec)
	}

	// Map iteration order is random; the output order comes from this sort only.
	SortRecords(records)
	return records
}
