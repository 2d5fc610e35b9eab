package handler

import (
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/hmdang/tripplanner/backend/internal/domain"
)

// PlanPayload is the wire shape of a plan in requests and responses.
// PlanID and OwnerID are set on responses only; request bodies carry neither
// (both are path parameters).
type PlanPayload struct {
	PlanID      string           `json:"plan_id,omitempty"`
	OwnerID     string           `json:"owner_id,omitempty"`
	Destination string           `json:"destination"`
	Itinerary   ItineraryPayload `json:"itinerary"`
	Owners      []string         `json:"owners,omitempty"`
	Photos      []string         `json:"photos,omitempty"`
}

// ItineraryPayload mirrors domain.Itinerary. Dates are day-granularity
// "2006-01-02" strings; absent means not set.
type ItineraryPayload struct {
	Destination    string              `json:"destination,omitempty"`
	StartDate      *openapi_types.Date `json:"start_date,omitempty"`
	EndDate        *openapi_types.Date `json:"end_date,omitempty"`
	Days           []DayPayload        `json:"days"`
	Specialties    []string            `json:"specialties,omitempty"`
	Transportation []string            `json:"transportation,omitempty"`
}

// DayPayload mirrors domain.Day.
type DayPayload struct {
	Activities []ActivityPayload `json:"activities"`
}

// ActivityPayload mirrors domain.Activity. Activities in responses keep
// storage order; sorting by time of day is the client's display concern.
type ActivityPayload struct {
	Description    string `json:"description,omitempty"`
	Location       string `json:"location,omitempty"`
	TimeOfDay      string `json:"time_of_day,omitempty"`
	Transportation string `json:"transportation,omitempty"`
}

// --- request → domain -------------------------------------------------------

func payloadToPlan(p PlanPayload) domain.Plan {
	return domain.Plan{
		Destination: p.Destination,
		Itinerary:   payloadToItinerary(p.Itinerary),
		Owners:      p.Owners,
		Photos:      p.Photos,
	}
}

func payloadToItinerary(p ItineraryPayload) domain.Itinerary {
	it := domain.Itinerary{
		Destination:    p.Destination,
		Specialties:    p.Specialties,
		Transportation: p.Transportation,
	}
	if p.StartDate != nil {
		it.StartDate = p.StartDate.Time
	}
	if p.EndDate != nil {
		it.EndDate = p.EndDate.Time
	}
	if len(p.Days) > 0 {
		it.Days = make([]domain.Day, len(p.Days))
		for i, d := range p.Days {
			it.Days[i] = payloadToDay(d)
		}
	}
	return it
}

func payloadToDay(p DayPayload) domain.Day {
	day := domain.Day{}
	if len(p.Activities) > 0 {
		day.Activities = make([]domain.Activity, len(p.Activities))
		for i, a := range p.Activities {
			day.Activities[i] = domain.Activity{
				Description:    a.Description,
				Location:       a.Location,
				TimeOfDay:      domain.ParseTimeOfDay(a.TimeOfDay),
				Transportation: a.Transportation,
			}
		}
	}
	return day
}

// --- domain → response ------------------------------------------------------

func planToPayload(p domain.Plan) PlanPayload {
	return PlanPayload{
		PlanID:      p.PlanID,
		OwnerID:     p.OwnerID,
		Destination: p.Destination,
		Itinerary:   itineraryToPayload(p.Itinerary),
		Owners:      p.Owners,
		Photos:      p.Photos,
	}
}

func itineraryToPayload(it domain.Itinerary) ItineraryPayload {
	p := ItineraryPayload{
		Destination:    it.Destination,
		Days:           make([]DayPayload, len(it.Days)),
		Specialties:    it.Specialties,
		Transportation: it.Transportation,
	}
	if !it.StartDate.IsZero() {
		p.StartDate = &openapi_types.Date{Time: it.StartDate}
	}
	if !it.EndDate.IsZero() {
		p.EndDate = &openapi_types.Date{Time: it.EndDate}
	}
	for i, d := range it.Days {
		p.Days[i] = dayToPayload(d)
	}
	return p
}

func dayToPayload(d domain.Day) DayPayload {
	p := DayPayload{Activities: make([]ActivityPayload, len(d.Activities))}
	for i, a := range d.Activities {
		p.Activities[i] = ActivityPayload{
			Description:    a.Description,
			Location:       a.Location,
			TimeOfDay:      string(a.TimeOfDay),
			Transportation: a.Transportation,
		}
	}
	return p
}
