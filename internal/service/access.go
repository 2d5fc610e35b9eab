package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/hmdang/tripplanner/backend/internal/domain"
	"github.com/hmdang/tripplanner/backend/internal/repo"
)

// AccessService decides whether an acting identity may mutate a plan and
// manages the plan's owners list. Share-link arrival state is always an
// explicit parameter here — the resolver never reads ambient session state.
type AccessService struct {
	plans repo.PlanRepo
}

// NewAccessService constructs an AccessService backed by the provided PlanRepo.
func NewAccessService(plans repo.PlanRepo) *AccessService {
	return &AccessService{plans: plans}
}

// CanEdit reports whether actingUserID may mutate the plan: the acting user
// must be the root owner or a member of the owners list, and must not have
// arrived purely via a passive share link. A share-link visitor is read-only
// until explicitly promoted through AddOwner, even if they would otherwise
// qualify.
func (s *AccessService) CanEdit(plan domain.Plan, actingUserID string, arrivedViaShareLink bool) bool {
	if arrivedViaShareLink {
		return false
	}
	if actingUserID == "" {
		return false
	}
	return actingUserID == plan.OwnerID || plan.IsCoOwner(actingUserID)
}

// RequireEdit fetches the plan and vetoes the mutation with
// domain.ErrPermissionDenied when CanEdit does not hold.
func (s *AccessService) RequireEdit(ctx context.Context, ownerID, planID, actingUserID string, arrivedViaShareLink bool) error {
	plan, err := s.plans.FetchPlan(ctx, ownerID, planID)
	if err != nil {
		return fmt.Errorf("service.AccessService.RequireEdit: %w", err)
	}
	if !s.CanEdit(plan, actingUserID, arrivedViaShareLink) {
		return fmt.Errorf("service.AccessService.RequireEdit: user %s: %w", actingUserID, domain.ErrPermissionDenied)
	}
	return nil
}

// AddOwner grants newOwnerID edit rights on the plan via a read-modify-write
// of the owners list. Idempotent: adding an id that is already present
// changes nothing and skips the write. Returns the plan as it stands after
// the call.
func (s *AccessService) AddOwner(ctx context.Context, ownerID, planID, newOwnerID string) (domain.Plan, error) {
	if strings.TrimSpace(newOwnerID) == "" {
		return domain.Plan{}, fmt.Errorf("service.AccessService.AddOwner: %w: owner id is required", domain.ErrValidation)
	}

	plan, err := s.plans.FetchPlan(ctx, ownerID, planID)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("service.AccessService.AddOwner: %w", err)
	}
	if plan.IsCoOwner(newOwnerID) {
		return plan, nil
	}

	plan.Owners = append(plan.Owners, newOwnerID)
	if err := s.plans.ReplacePlan(ctx, ownerID, planID, plan); err != nil {
		return domain.Plan{}, fmt.Errorf("service.AccessService.AddOwner: %w", err)
	}
	return plan, nil
}
