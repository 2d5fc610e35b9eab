package domain

import "sort"

// TimeOfDay is the slot label of an activity. The labels have a fixed total
// order used for display: morning < afternoon < evening < other.
type TimeOfDay string

const (
	Morning   TimeOfDay = "morning"
	Afternoon TimeOfDay = "afternoon"
	Evening   TimeOfDay = "evening"
	OtherTime TimeOfDay = "other"
)

// ParseTimeOfDay maps a stored label onto the enum. Unknown or empty labels
// collapse to OtherTime rather than failing: the store is schemaless and
// existing records may carry free-form labels.
func ParseTimeOfDay(s string) TimeOfDay {
	switch TimeOfDay(s) {
	case Morning, Afternoon, Evening, OtherTime:
		return TimeOfDay(s)
	default:
		return OtherTime
	}
}

// Rank returns the position of t in the fixed display order.
// Unranked labels sort last, together with OtherTime.
func (t TimeOfDay) Rank() int {
	switch t {
	case Morning:
		return 0
	case Afternoon:
		return 1
	case Evening:
		return 2
	default:
		return 3
	}
}

// SortActivitiesForDisplay returns a copy of activities ordered by time of
// day. This is strictly a read-side concern: storage order is insertion
// order, and positional operations (activity deletion) address storage
// order, never the displayed order. Callers that show the sorted view and
// then delete by displayed position will delete the wrong element.
func SortActivitiesForDisplay(activities []Activity) []Activity {
	out := make([]Activity, len(activities))
	copy(out, activities)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TimeOfDay.Rank() < out[j].TimeOfDay.Rank()
	})
	return out
}
