package repo

import (
	"fmt"
	"time"

	"github.com/hmdang/tripplanner/backend/internal/domain"
)

// wireDateFormat is the date layout written to the store. Day granularity,
// no time of day.
const wireDateFormat = "2006-01-02"

// legacyDateFormat is accepted on read only. Older records were written
// day-first without zero padding ("22/4/2025"); everything decoded here is
// re-encoded in wireDateFormat on the next write.
const legacyDateFormat = "2/1/2006"

// --- encode -----------------------------------------------------------------

// encodePlan renders a plan as the wire map stored at plans/{owner}/{plan}.
// Zero-valued fields encode as empty and are pruned by the tree layer, which
// keeps the stored shape identical to what the schemaless store accumulated
// historically.
func encodePlan(p domain.Plan) map[string]any {
	return map[string]any{
		"destination": p.Destination,
		"itinerary":   encodeItinerary(p.Itinerary),
		"owners":      p.Owners,
		"photos":      p.Photos,
	}
}

func encodeItinerary(it domain.Itinerary) map[string]any {
	days := make([]any, len(it.Days))
	for i, d := range it.Days {
		days[i] = encodeDay(d)
	}
	return map[string]any{
		"destination":    it.Destination,
		"startDate":      formatWireDate(it.StartDate),
		"endDate":        formatWireDate(it.EndDate),
		"itinerary":      days,
		"specialties":    it.Specialties,
		"transportation": it.Transportation,
	}
}

func encodeDay(d domain.Day) map[string]any {
	activities := make([]any, len(d.Activities))
	for i, a := range d.Activities {
		activities[i] = encodeActivity(a)
	}
	return map[string]any{"activities": activities}
}

func encodeActivity(a domain.Activity) map[string]any {
	return map[string]any{
		"description":    a.Description,
		"location":       a.Location,
		"timeOfDay":      string(domain.ParseTimeOfDay(string(a.TimeOfDay))),
		"transportation": a.Transportation,
	}
}

func formatWireDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(wireDateFormat)
}

// --- decode -----------------------------------------------------------------

// decodePlan converts the wire value of a plan node back into a domain.Plan.
// Missing optional fields decode to zero values; a value that is not a map
// at all is a decoding failure.
func decodePlan(v any) (domain.Plan, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return domain.Plan{}, fmt.Errorf("plan node is %T, want map", v)
	}
	it, err := decodeItinerary(m["itinerary"])
	if err != nil {
		return domain.Plan{}, err
	}
	return domain.Plan{
		Destination: asString(m["destination"]),
		Itinerary:   it,
		Owners:      asStringList(m["owners"]),
		Photos:      asStringList(m["photos"]),
	}, nil
}

// decodeItinerary tolerates an absent itinerary node (a plan saved before
// any schedule was generated decodes to an empty itinerary).
func decodeItinerary(v any) (domain.Itinerary, error) {
	if v == nil {
		return domain.Itinerary{}, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return domain.Itinerary{}, fmt.Errorf("itinerary node is %T, want map", v)
	}

	start, err := parseWireDate(asString(m["startDate"]))
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("startDate: %w", err)
	}
	end, err := parseWireDate(asString(m["endDate"]))
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("endDate: %w", err)
	}

	var days []domain.Day
	if list, ok := m["itinerary"].([]any); ok {
		days = make([]domain.Day, 0, len(list))
		for i, dv := range list {
			d, err := decodeDay(dv)
			if err != nil {
				return domain.Itinerary{}, fmt.Errorf("day %d: %w", i, err)
			}
			days = append(days, d)
		}
	}

	return domain.Itinerary{
		Destination:    asString(m["destination"]),
		StartDate:      start,
		EndDate:        end,
		Days:           days,
		Specialties:    asStringList(m["specialties"]),
		Transportation: asStringList(m["transportation"]),
	}, nil
}

func decodeDay(v any) (domain.Day, error) {
	if v == nil {
		return domain.Day{}, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return domain.Day{}, fmt.Errorf("day node is %T, want map", v)
	}
	var activities []domain.Activity
	if list, ok := m["activities"].([]any); ok {
		activities = make([]domain.Activity, 0, len(list))
		for i, av := range list {
			a, err := decodeActivity(av)
			if err != nil {
				return domain.Day{}, fmt.Errorf("activity %d: %w", i, err)
			}
			activities = append(activities, a)
		}
	}
	return domain.Day{Activities: activities}, nil
}

func decodeActivity(v any) (domain.Activity, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return domain.Activity{}, fmt.Errorf("activity node is %T, want map", v)
	}
	return domain.Activity{
		Description:    asString(m["description"]),
		Location:       asString(m["location"]),
		TimeOfDay:      domain.ParseTimeOfDay(asString(m["timeOfDay"])),
		Transportation: asString(m["transportation"]),
	}, nil
}

// parseWireDate accepts the canonical layout first and the legacy day-first
// layout second. The empty string is "not set".
func parseWireDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(wireDateFormat, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(legacyDateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unparseable date %q", s)
	}
	return t, nil
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asStringList(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
