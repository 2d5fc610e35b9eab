package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hmdang/tripplanner/backend/internal/domain"
)

// ListPlans handles GET /plans/{ownerID}.
// An absent owner subtree and an empty plan list are presented identically
// as an empty array; only the service layer distinguishes them.
func (s *Server) ListPlans(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerID")

	plans, err := s.plans.FetchAllPlans(r.Context(), ownerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusOK, map[string]any{"data": []PlanPayload{}})
			return
		}
		writeError(w, r, err)
		return
	}

	data := make([]PlanPayload, len(plans))
	for i, p := range plans {
		data[i] = planToPayload(p)
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": data})
}

// CreatePlan handles POST /plans/{ownerID}.
// The body is a full plan; the response carries the store-generated id.
func (s *Server) CreatePlan(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerID")

	var body PlanPayload
	if err := decodeJSON(r, &body); err != nil {
		requestError(w, "malformed request body")
		return
	}

	planID, err := s.plans.SavePlan(r.Context(), ownerID, payloadToPlan(body))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"plan_id": planID})
}

// GetPlan handles GET /plans/{ownerID}/{planID}.
func (s *Server) GetPlan(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerID")
	planID := chi.URLParam(r, "planID")

	plan, err := s.plans.FetchPlan(r.Context(), ownerID, planID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, planToPayload(plan))
}

// ReplacePlan handles PUT /plans/{ownerID}/{planID}.
// Last writer wins; the response is the plan re-fetched after the write so
// the client refreshes from what actually landed.
func (s *Server) ReplacePlan(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerID")
	planID := chi.URLParam(r, "planID")

	actingUserID, viaShareLink := identity(r)
	if err := s.access.RequireEdit(r.Context(), ownerID, planID, actingUserID, viaShareLink); err != nil {
		writeError(w, r, err)
		return
	}

	var body PlanPayload
	if err := decodeJSON(r, &body); err != nil {
		requestError(w, "malformed request body")
		return
	}

	if err := s.plans.ReplacePlan(r.Context(), ownerID, planID, payloadToPlan(body)); err != nil {
		writeError(w, r, err)
		return
	}

	plan, err := s.plans.FetchPlan(r.Context(), ownerID, planID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, planToPayload(plan))
}

// DeletePlan handles DELETE /plans/{ownerID}/{planID}.
func (s *Server) DeletePlan(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerID")
	planID := chi.URLParam(r, "planID")

	actingUserID, viaShareLink := identity(r)
	if err := s.access.RequireEdit(r.Context(), ownerID, planID, actingUserID, viaShareLink); err != nil {
		writeError(w, r, err)
		return
	}

	if err := s.plans.DeletePlan(r.Context(), ownerID, planID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddDay handles POST /plans/{ownerID}/{planID}/days.
// Returns the new day's index so the client can navigate straight into it.
func (s *Server) AddDay(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerID")
	planID := chi.URLParam(r, "planID")

	actingUserID, viaShareLink := identity(r)
	if err := s.access.RequireEdit(r.Context(), ownerID, planID, actingUserID, viaShareLink); err != nil {
		writeError(w, r, err)
		return
	}

	dayIndex, err := s.plans.AddDay(r.Context(), ownerID, planID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int{"day_index": dayIndex})
}

// UpdateDay handles PUT /plans/{ownerID}/{planID}/days/{dayIndex}.
func (s *Server) UpdateDay(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerID")
	planID := chi.URLParam(r, "planID")

	dayIndex, err := strconv.Atoi(chi.URLParam(r, "dayIndex"))
	if err != nil {
		requestError(w, "day index must be an integer")
		return
	}

	actingUserID, viaShareLink := identity(r)
	if err := s.access.RequireEdit(r.Context(), ownerID, planID, actingUserID, viaShareLink); err != nil {
		writeError(w, r, err)
		return
	}

	var body DayPayload
	if err := decodeJSON(r, &body); err != nil {
		requestError(w, "malformed request body")
		return
	}

	if err := s.plans.UpdateDay(r.Context(), ownerID, planID, dayIndex, payloadToDay(body)); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteDay handles DELETE /plans/{ownerID}/{planID}/days/{dayIndex}.
// Deleting the last remaining day removes the whole plan; that cascade is a
// distinguished success ("plan_deleted": true, no plan body) so the client
// navigates away instead of hitting a 404 on refresh. Otherwise the response
// includes the plan re-fetched after the write.
func (s *Server) DeleteDay(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerID")
	planID := chi.URLParam(r, "planID")

	dayIndex, err := strconv.Atoi(chi.URLParam(r, "dayIndex"))
	if err != nil {
		requestError(w, "day index must be an integer")
		return
	}

	actingUserID, viaShareLink := identity(r)
	if err := s.access.RequireEdit(r.Context(), ownerID, planID, actingUserID, viaShareLink); err != nil {
		writeError(w, r, err)
		return
	}

	outcome, err := s.plans.DeleteDay(r.Context(), ownerID, planID, dayIndex)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if outcome.PlanDeleted {
		writeJSON(w, http.StatusOK, map[string]any{"plan_deleted": true})
		return
	}

	plan, err := s.plans.FetchPlan(r.Context(), ownerID, planID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"plan_deleted": false, "plan": planToPayload(plan)})
}

// DeleteActivity handles
// DELETE /plans/{ownerID}/{planID}/days/{dayIndex}/activities/{activityIndex}.
// The activity index addresses storage order, not the time-of-day-sorted
// order a client may be displaying.
func (s *Server) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerID")
	planID := chi.URLParam(r, "planID")

	dayIndex, err := strconv.Atoi(chi.URLParam(r, "dayIndex"))
	if err != nil {
		requestError(w, "day index must be an integer")
		return
	}
	activityIndex, err := strconv.Atoi(chi.URLParam(r, "activityIndex"))
	if err != nil {
		requestError(w, "activity index must be an integer")
		return
	}

	actingUserID, viaShareLink := identity(r)
	if err := s.access.RequireEdit(r.Context(), ownerID, planID, actingUserID, viaShareLink); err != nil {
		writeError(w, r, err)
		return
	}

	outcome, err := s.plans.DeleteActivity(r.Context(), ownerID, planID, dayIndex, activityIndex)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if outcome.PlanDeleted {
		writeJSON(w, http.StatusOK, map[string]any{"day_deleted": true, "plan_deleted": true})
		return
	}

	plan, err := s.plans.FetchPlan(r.Context(), ownerID, planID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"day_deleted":  outcome.DayDeleted,
		"plan_deleted": false,
		"plan":         planToPayload(plan),
	})
}

// AddOwner handles POST /plans/{ownerID}/{planID}/owners.
func (s *Server) AddOwner(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerID")
	planID := chi.URLParam(r, "planID")

	actingUserID, viaShareLink := identity(r)
	if err := s.access.RequireEdit(r.Context(), ownerID, planID, actingUserID, viaShareLink); err != nil {
		writeError(w, r, err)
		return
	}

	var body struct {
		OwnerID string `json:"owner_id"`
	}
	if err := decodeJSON(r, &body); err != nil {
		requestError(w, "malformed request body")
		return
	}

	plan, err := s.access.AddOwner(r.Context(), ownerID, planID, body.OwnerID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, planToPayload(plan))
}

// ResolvePlanOwner handles GET /plan-owner/{planID}: the reverse lookup from
// a bare plan id (e.g. out of a scanned share code) to the owner whose
// subtree stores it.
func (s *Server) ResolvePlanOwner(w http.ResponseWriter, r *http.Request) {
	planID := chi.URLParam(r, "planID")

	ownerID, err := s.plans.ResolveOwner(r.Context(), planID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"owner_id": ownerID})
}
