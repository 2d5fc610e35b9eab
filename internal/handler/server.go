// Package handler implements the HTTP surface for the trip planner backend.
// All handlers are methods on Server and are split into domain-specific files
// (plan.go, share.go, health.go) sharing the same struct so they can access
// its dependencies. The HTTP layer adds no business logic: it decodes
// payloads, threads the acting identity, sequences facade calls, and maps
// typed errors onto status codes.
package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hmdang/tripplanner/backend/internal/domain"
	"github.com/hmdang/tripplanner/backend/internal/service"
)

// PlanServicer defines the engine operations the plan handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the store or service layer.
type PlanServicer interface {
	FetchPlan(ctx context.Context, ownerID, planID string) (domain.Plan, error)
	FetchAllPlans(ctx context.Context, ownerID string) ([]domain.Plan, error)
	SavePlan(ctx context.Context, ownerID string, plan domain.Plan) (string, error)
	ReplacePlan(ctx context.Context, ownerID, planID string, plan domain.Plan) error
	DeletePlan(ctx context.Context, ownerID, planID string) error
	ResolveOwner(ctx context.Context, planID string) (string, error)
	AddDay(ctx context.Context, ownerID, planID string) (int, error)
	UpdateDay(ctx context.Context, ownerID, planID string, dayIndex int, day domain.Day) error
	DeleteDay(ctx context.Context, ownerID, planID string, dayIndex int) (service.DayDeleteOutcome, error)
	DeleteActivity(ctx context.Context, ownerID, planID string, dayIndex, activityIndex int) (service.ActivityDeleteOutcome, error)
}

// AccessServicer defines the access-resolver operations the handlers depend on.
type AccessServicer interface {
	RequireEdit(ctx context.Context, ownerID, planID, actingUserID string, arrivedViaShareLink bool) error
	AddOwner(ctx context.Context, ownerID, planID, newOwnerID string) (domain.Plan, error)
}

// ShareServicer defines the share-link operations the handlers depend on.
type ShareServicer interface {
	EncodeShareLink(planID, ownerID string) string
	DecodeShareToken(uri string) (planID, ownerID string, err error)
	ShareQR(planID, ownerID string) ([]byte, error)
}

// Server holds the handler dependencies for all API endpoints.
type Server struct {
	plans  PlanServicer
	access AccessServicer
	share  ShareServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(plans PlanServicer, access AccessServicer, share ShareServicer) *Server {
	return &Server{plans: plans, access: access, share: share}
}

// Routes registers every endpoint on a fresh chi router. Mount the result
// under / in main after the global middleware stack.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)

	r.Route("/plans/{ownerID}", func(r chi.Router) {
		r.Get("/", s.ListPlans)
		r.Post("/", s.CreatePlan)

		r.Route("/{planID}", func(r chi.Router) {
			r.Get("/", s.GetPlan)
			r.Put("/", s.ReplacePlan)
			r.Delete("/", s.DeletePlan)

			r.Post("/days", s.AddDay)
			r.Put("/days/{dayIndex}", s.UpdateDay)
			r.Delete("/days/{dayIndex}", s.DeleteDay)
			r.Delete("/days/{dayIndex}/activities/{activityIndex}", s.DeleteActivity)

			r.Post("/owners", s.AddOwner)

			r.Get("/share", s.GetShareLink)
			r.Get("/share/qr", s.GetShareQR)
		})
	})

	r.Get("/plan-owner/{planID}", s.ResolvePlanOwner)
	r.Post("/share/decode", s.DecodeShareToken)

	return r
}

// identity extracts the acting identity from request headers. Authentication
// itself is out of scope for this service; an upstream gateway is trusted to
// set X-User-ID, and clients that landed on a plan through a share link
// declare it with X-Via-Share-Link so the access resolver can keep them
// read-only. Neither value is ever read from ambient server state.
func identity(r *http.Request) (actingUserID string, viaShareLink bool) {
	return r.Header.Get("X-User-ID"), r.Header.Get("X-Via-Share-Link") == "true"
}

// writeJSON writes v as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON decodes the request body into dst, rejecting unknown fields.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
