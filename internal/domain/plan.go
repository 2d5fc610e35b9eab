// Package domain contains the core data types for the trip planner backend.
// This package has zero external dependencies and is imported by every other
// internal package (repo, service, handler).
package domain

import "time"

// Plan is one saved trip itinerary. It lives in the remote tree under
// plans/{ownerID}/{planID}. OwnerID names the account whose subtree physically
// stores the plan (the root owner); both identifiers are path segments, not
// part of the stored value, and are populated on fetch.
type Plan struct {
	PlanID      string
	OwnerID     string
	Destination string
	Itinerary   Itinerary
	// Owners lists accounts granted edit rights beyond the root owner.
	// Membership is set-like: AddOwner never stores a duplicate.
	Owners []string
	Photos []string
}

// IsCoOwner reports whether uid appears in the plan's Owners list.
func (p Plan) IsCoOwner(uid string) bool {
	for _, o := range p.Owners {
		if o == uid {
			return true
		}
	}
	return false
}

// Itinerary is the ordered day-by-day schedule of a plan.
// StartDate and EndDate are day-granularity calendar dates; the zero value
// means "not set". Whenever Days is non-empty and StartDate is set,
// EndDate == StartDate + (len(Days)-1) days.
type Itinerary struct {
	Destination    string
	StartDate      time.Time
	EndDate        time.Time
	Days           []Day
	Specialties    []string
	Transportation []string
}

// RecomputeEndDate restores the date invariant after a day-count change.
// StartDate never moves; only the trailing edge follows the day count.
// With no days left, both dates are cleared.
func (it *Itinerary) RecomputeEndDate() {
	if len(it.Days) == 0 {
		it.StartDate = time.Time{}
		it.EndDate = time.Time{}
		return
	}
	if it.StartDate.IsZero() {
		return
	}
	it.EndDate = it.StartDate.AddDate(0, 0, len(it.Days)-1)
}

// Day groups the activities of one calendar day of the trip. A day has no
// identity of its own: its index in Itinerary.Days is the day-of-trip minus
// one, so removing a day re-indexes every later day. A day with zero
// activities is treated as non-existent and must be pruned by its mutator.
type Day struct {
	Activities []Activity
}

// Activity is one scheduled action within a day. Activities carry no id; they
// are identified only by position within the day's activity list, in storage
// (insertion) order.
type Activity struct {
	Description    string
	Location       string
	TimeOfDay      TimeOfDay
	Transportation string
}
