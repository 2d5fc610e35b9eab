package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hmdang/tripplanner/backend/internal/domain"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in   string
		want domain.TimeOfDay
	}{
		{"morning", domain.Morning},
		{"afternoon", domain.Afternoon},
		{"evening", domain.Evening},
		{"other", domain.OtherTime},
		// Unknown and empty labels collapse to "other" rather than failing:
		// the store is schemaless and old records carry free-form labels.
		{"", domain.OtherTime},
		{"Morning", domain.OtherTime},
		{"night", domain.OtherTime},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, domain.ParseTimeOfDay(tt.in), "ParseTimeOfDay(%q)", tt.in)
	}
}

func TestSortActivitiesForDisplay(t *testing.T) {
	in := []domain.Activity{
		{Description: "dinner", TimeOfDay: domain.Evening},
		{Description: "hike", TimeOfDay: domain.Morning},
		{Description: "museum", TimeOfDay: domain.Afternoon},
		{Description: "packing", TimeOfDay: domain.OtherTime},
	}

	got := domain.SortActivitiesForDisplay(in)

	assert.Equal(t, "hike", got[0].Description)
	assert.Equal(t, "museum", got[1].Description)
	assert.Equal(t, "dinner", got[2].Description)
	assert.Equal(t, "packing", got[3].Description)

	// The input slice must be untouched: storage order is what positional
	// deletion addresses, so the sort works on a copy.
	assert.Equal(t, "dinner", in[0].Description)
}

func TestSortActivitiesForDisplay_Stable(t *testing.T) {
	in := []domain.Activity{
		{Description: "first breakfast", TimeOfDay: domain.Morning},
		{Description: "second breakfast", TimeOfDay: domain.Morning},
	}

	got := domain.SortActivitiesForDisplay(in)

	// Equal ranks keep insertion order.
	assert.Equal(t, "first breakfast", got[0].Description)
	assert.Equal(t, "second breakfast", got[1].Description)
}
