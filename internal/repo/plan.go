// Package repo contains all remote-tree access logic for the trip planner
// backend. Operations map between wire values and domain types via the codec;
// no business logic lives here — only paths, tree calls, and type mapping.
package repo

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/hmdang/tripplanner/backend/internal/domain"
	"github.com/hmdang/tripplanner/backend/internal/tree"
)

// plansRoot is the top-level node holding one subtree per owner account.
const plansRoot = "plans"

// PlanRepo defines the persistence operations for Plans.
// The service layer depends on this interface, not the tree-backed
// implementation, which allows the engine to be unit-tested with a mock.
//
// Every operation is a single read or a single subtree overwrite; the store
// offers no transactions, so read-modify-write sequences composed from these
// calls can race (last writer wins).
type PlanRepo interface {
	// FetchPlan reads the full plan subtree.
	// Returns domain.ErrNotFound if the path does not exist and
	// domain.ErrStore on transport or decoding failure.
	FetchPlan(ctx context.Context, ownerID, planID string) (domain.Plan, error)

	// FetchAllPlans reads every plan under an owner, in store child order.
	// Returns domain.ErrNotFound when the owner subtree is absent — against a
	// schemaless store "no plans" and "plans node missing" are the same
	// stored state, and both surface as this signal.
	FetchAllPlans(ctx context.Context, ownerID string) ([]domain.Plan, error)

	// SavePlan persists a new plan under a store-generated key and returns
	// that key.
	SavePlan(ctx context.Context, ownerID string, plan domain.Plan) (string, error)

	// ReplacePlan unconditionally overwrites the plan subtree.
	// No merge semantics — last writer wins.
	ReplacePlan(ctx context.Context, ownerID, planID string, plan domain.Plan) error

	// DeletePlan removes the plan subtree entirely.
	DeletePlan(ctx context.Context, ownerID, planID string) error

	// FetchItinerary reads only the itinerary node of a plan.
	// Returns domain.ErrNotFound if the plan has no itinerary.
	FetchItinerary(ctx context.Context, ownerID, planID string) (domain.Itinerary, error)

	// WriteItinerary overwrites only the itinerary node of a plan.
	WriteItinerary(ctx context.Context, ownerID, planID string, it domain.Itinerary) error

	// FetchDay reads a single day node.
	// Returns domain.ErrNotFound if the day does not exist.
	FetchDay(ctx context.Context, ownerID, planID string, dayIndex int) (domain.Day, error)

	// WriteDay overwrites a single day node, leaving the rest of the
	// itinerary untouched.
	WriteDay(ctx context.Context, ownerID, planID string, dayIndex int, day domain.Day) error

	// ResolveOwnerOfPlan scans the top-level owner collection for the first
	// owner whose subtree contains planID as a child key. O(number of
	// owners) by design — the store keeps no reverse index.
	// Returns domain.ErrNotFound when no owner holds the plan.
	ResolveOwnerOfPlan(ctx context.Context, planID string) (string, error)
}

// treePlanRepo is the remote-tree implementation of PlanRepo.
type treePlanRepo struct {
	tree tree.Client
}

// NewPlanRepo constructs a PlanRepo backed by the provided tree client.
// In production pass the Postgres-backed client; in tests pass tree.NewMemory().
func NewPlanRepo(client tree.Client) PlanRepo {
	return &treePlanRepo{tree: client}
}

func planPath(ownerID, planID string) tree.Path {
	return tree.NewPath(plansRoot, ownerID, planID)
}

// itineraryPath addresses the itinerary node; the day list lives under a
// second "itinerary" segment (plans/{o}/{p}/itinerary/itinerary/{i}). The
// doubled segment is the store's historical layout and is load-bearing for
// existing data.
func itineraryPath(ownerID, planID string) tree.Path {
	return planPath(ownerID, planID).Child("itinerary")
}

func dayPath(ownerID, planID string, dayIndex int) tree.Path {
	return itineraryPath(ownerID, planID).Child("itinerary", strconv.Itoa(dayIndex))
}

func (r *treePlanRepo) FetchPlan(ctx context.Context, ownerID, planID string) (domain.Plan, error) {
	v, ok, err := r.tree.Read(ctx, planPath(ownerID, planID))
	if err != nil {
		return domain.Plan{}, fmt.Errorf("repo.PlanRepo.FetchPlan: %w: %w", domain.ErrStore, err)
	}
	if !ok {
		return domain.Plan{}, fmt.Errorf("repo.PlanRepo.FetchPlan: %w", domain.ErrNotFound)
	}
	plan, err := decodePlan(v)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("repo.PlanRepo.FetchPlan: %w: %w", domain.ErrStore, err)
	}
	plan.PlanID = planID
	plan.OwnerID = ownerID
	return plan, nil
}

func (r *treePlanRepo) FetchAllPlans(ctx context.Context, ownerID string) ([]domain.Plan, error) {
	ownerPath := tree.NewPath(plansRoot, ownerID)
	planIDs, err := r.tree.Children(ctx, ownerPath)
	if err != nil {
		return nil, fmt.Errorf("repo.PlanRepo.FetchAllPlans: %w: %w", domain.ErrStore, err)
	}
	if len(planIDs) == 0 {
		return nil, fmt.Errorf("repo.PlanRepo.FetchAllPlans: %w", domain.ErrNotFound)
	}

	plans := make([]domain.Plan, 0, len(planIDs))
	for _, planID := range planIDs {
		plan, err := r.FetchPlan(ctx, ownerID, planID)
		if err != nil {
			return nil, fmt.Errorf("repo.PlanRepo.FetchAllPlans: plan %s: %w", planID, err)
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

func (r *treePlanRepo) SavePlan(ctx context.Context, ownerID string, plan domain.Plan) (string, error) {
	planID := uuid.NewString()
	if err := r.tree.Write(ctx, planPath(ownerID, planID), encodePlan(plan)); err != nil {
		return "", fmt.Errorf("repo.PlanRepo.SavePlan: %w: %w", domain.ErrStore, err)
	}
	return planID, nil
}

func (r *treePlanRepo) ReplacePlan(ctx context.Context, ownerID, planID string, plan domain.Plan) error {
	if err := r.tree.Write(ctx, planPath(ownerID, planID), encodePlan(plan)); err != nil {
		return fmt.Errorf("repo.PlanRepo.ReplacePlan: %w: %w", domain.ErrStore, err)
	}
	return nil
}

func (r *treePlanRepo) DeletePlan(ctx context.Context, ownerID, planID string) error {
	if err := r.tree.Remove(ctx, planPath(ownerID, planID)); err != nil {
		return fmt.Errorf("repo.PlanRepo.DeletePlan: %w: %w", domain.ErrStore, err)
	}
	return nil
}

func (r *treePlanRepo) FetchItinerary(ctx context.Context, ownerID, planID string) (domain.Itinerary, error) {
	v, ok, err := r.tree.Read(ctx, itineraryPath(ownerID, planID))
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.PlanRepo.FetchItinerary: %w: %w", domain.ErrStore, err)
	}
	if !ok {
		return domain.Itinerary{}, fmt.Errorf("repo.PlanRepo.FetchItinerary: %w", domain.ErrNotFound)
	}
	it, err := decodeItinerary(v)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.PlanRepo.FetchItinerary: %w: %w", domain.ErrStore, err)
	}
	return it, nil
}

func (r *treePlanRepo) WriteItinerary(ctx context.Context, ownerID, planID string, it domain.Itinerary) error {
	if err := r.tree.Write(ctx, itineraryPath(ownerID, planID), encodeItinerary(it)); err != nil {
		return fmt.Errorf("repo.PlanRepo.WriteItinerary: %w: %w", domain.ErrStore, err)
	}
	return nil
}

func (r *treePlanRepo) FetchDay(ctx context.Context, ownerID, planID string, dayIndex int) (domain.Day, error) {
	v, ok, err := r.tree.Read(ctx, dayPath(ownerID, planID, dayIndex))
	if err != nil {
		return domain.Day{}, fmt.Errorf("repo.PlanRepo.FetchDay: %w: %w", domain.ErrStore, err)
	}
	if !ok {
		return domain.Day{}, fmt.Errorf("repo.PlanRepo.FetchDay: %w", domain.ErrNotFound)
	}
	day, err := decodeDay(v)
	if err != nil {
		return domain.Day{}, fmt.Errorf("repo.PlanRepo.FetchDay: %w: %w", domain.ErrStore, err)
	}
	return day, nil
}

func (r *treePlanRepo) WriteDay(ctx context.Context, ownerID, planID string, dayIndex int, day domain.Day) error {
	if err := r.tree.Write(ctx, dayPath(ownerID, planID, dayIndex), encodeDay(day)); err != nil {
		return fmt.Errorf("repo.PlanRepo.WriteDay: %w: %w", domain.ErrStore, err)
	}
	return nil
}

func (r *treePlanRepo) ResolveOwnerOfPlan(ctx context.Context, planID string) (string, error) {
	owners, err := r.tree.Children(ctx, tree.NewPath(plansRoot))
	if err != nil {
		return "", fmt.Errorf("repo.PlanRepo.ResolveOwnerOfPlan: %w: %w", domain.ErrStore, err)
	}
	for _, ownerID := range owners {
		ok, err := r.tree.Exists(ctx, planPath(ownerID, planID))
		if err != nil {
			return "", fmt.Errorf("repo.PlanRepo.ResolveOwnerOfPlan: %w: %w", domain.ErrStore, err)
		}
		if ok {
			return ownerID, nil
		}
	}
	return "", fmt.Errorf("repo.PlanRepo.ResolveOwnerOfPlan: %w", domain.ErrNotFound)
}
