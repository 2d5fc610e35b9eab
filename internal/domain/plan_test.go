package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hmdang/tripplanner/backend/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysOf(n int) []domain.Day {
	days := make([]domain.Day, n)
	for i := range days {
		days[i] = domain.Day{Activities: []domain.Activity{{Description: "see something"}}}
	}
	return days
}

func TestItinerary_RecomputeEndDate(t *testing.T) {
	it := domain.Itinerary{
		StartDate: date(2025, 4, 22),
		EndDate:   date(2025, 4, 24),
		Days:      daysOf(3),
	}

	// Removing the middle day moves only the trailing edge.
	it.Days = append(it.Days[:1], it.Days[2:]...)
	it.RecomputeEndDate()

	assert.Equal(t, date(2025, 4, 22), it.StartDate, "start date never moves")
	assert.Equal(t, date(2025, 4, 23), it.EndDate)
}

func TestItinerary_RecomputeEndDate_SingleDay(t *testing.T) {
	it := domain.Itinerary{
		StartDate: date(2025, 4, 22),
		Days:      daysOf(1),
	}

	it.RecomputeEndDate()

	// A one-day trip starts and ends on the same day.
	assert.Equal(t, it.StartDate, it.EndDate)
}

func TestItinerary_RecomputeEndDate_NoDays(t *testing.T) {
	it := domain.Itinerary{
		StartDate: date(2025, 4, 22),
		EndDate:   date(2025, 4, 24),
	}

	it.RecomputeEndDate()

	assert.True(t, it.StartDate.IsZero(), "no days left should clear the start date")
	assert.True(t, it.EndDate.IsZero(), "no days left should clear the end date")
}

func TestItinerary_RecomputeEndDate_NoStartDate(t *testing.T) {
	it := domain.Itinerary{Days: daysOf(4)}

	it.RecomputeEndDate()

	// With no start date there is nothing to anchor the end date to.
	assert.True(t, it.EndDate.IsZero())
}

func TestPlan_IsCoOwner(t *testing.T) {
	p := domain.Plan{OwnerID: "root", Owners: []string{"alice", "bob"}}

	assert.True(t, p.IsCoOwner("alice"))
	assert.True(t, p.IsCoOwner("bob"))
	assert.False(t, p.IsCoOwner("root"), "root owner is not in the owners list")
	assert.False(t, p.IsCoOwner("mallory"))
	assert.False(t, p.IsCoOwner(""))
}
