package schedule

// Merge reconciles the baseline with the user's custom records. Records are keyed
// by id and later records win: a custom record replaces the baseline record with
// the same id as a whole and keeps the baseline record's position. Custom-only
// records follow the baseline in order of first appearance.
//
// Merge is pure; neither input is modified.
func Merge(baseline, custom []Event) []Event {
	merged := make([]Event, 0, len(baseline)+len(custom))
	slot := make(map[string]int, len(baseline)+len(custom))

	put := func(e Event) {
		if i, ok := slot[e.Id]; ok {
			merged[i] = e
			return
		}
		slot[e.Id] = len(merged)
		merged = append(merged, e)
	}
	for _, e := range baseline {
		put(e)
	}
	for _, e := range custom {
		put(e)
	}
	return merged
}
