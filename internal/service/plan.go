// Package service contains the business logic for the trip planner backend:
// the itinerary consistency engine, the access resolver, and share-link
// handling. Services validate inputs, enforce the date/ordering invariants,
// and orchestrate repo calls. No tree paths live here — services depend on
// repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/hmdang/tripplanner/backend/internal/domain"
	"github.com/hmdang/tripplanner/backend/internal/repo"
)

// DayDeleteOutcome is the result of a successful DeleteDay. PlanDeleted is
// true when removing the day emptied the itinerary and the whole plan was
// deleted as a consequence — a distinguished success, not an error, so the
// caller can navigate away instead of re-displaying a deleted plan.
type DayDeleteOutcome struct {
	PlanDeleted bool
}

// ActivityDeleteOutcome is the result of a successful DeleteActivity.
// DayDeleted is true when removing the activity emptied the day; PlanDeleted
// additionally holds when that day was the last one in the plan.
type ActivityDeleteOutcome struct {
	DayDeleted  bool
	PlanDeleted bool
}

// PlanService implements the itinerary consistency engine: plan CRUD plus
// the day- and activity-level mutations with cascading date and index
// recalculation.
//
// Every read-modify-write here is a sequential, non-atomic chain against a
// store with no transactions: two callers mutating the same plan
// concurrently can race, and the later write overwrites the earlier one's
// effect. That lost-update hazard is accepted and documented, not solved;
// the HTTP layer's re-fetch-after-write pattern lets readers self-heal on
// the next read. No operation retries; every failure surfaces as a typed
// error.
type PlanService struct {
	plans repo.PlanRepo
}

// NewPlanService constructs a PlanService backed by the provided PlanRepo.
func NewPlanService(plans repo.PlanRepo) *PlanService {
	return &PlanService{plans: plans}
}

// FetchPlan returns a single plan by owner and id.
func (s *PlanService) FetchPlan(ctx context.Context, ownerID, planID string) (domain.Plan, error) {
	plan, err := s.plans.FetchPlan(ctx, ownerID, planID)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("service.PlanService.FetchPlan: %w", err)
	}
	return plan, nil
}

// FetchAllPlans returns every plan under an owner.
// An absent owner subtree surfaces as domain.ErrNotFound, distinguished from
// a decoding or transport failure.
func (s *PlanService) FetchAllPlans(ctx context.Context, ownerID string) ([]domain.Plan, error) {
	plans, err := s.plans.FetchAllPlans(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("service.PlanService.FetchAllPlans: %w", err)
	}
	return plans, nil
}

// SavePlan validates and persists a new plan, returning its store-generated id.
func (s *PlanService) SavePlan(ctx context.Context, ownerID string, plan domain.Plan) (string, error) {
	if err := validatePlan(plan); err != nil {
		return "", err
	}
	planID, err := s.plans.SavePlan(ctx, ownerID, plan)
	if err != nil {
		return "", fmt.Errorf("service.PlanService.SavePlan: %w", err)
	}
	return planID, nil
}

// ReplacePlan unconditionally overwrites a plan after a multi-step derived
// recomputation (e.g. a regenerated schedule for edited dates). The caller
// must have read-then-modified the full plan; there are no merge semantics.
func (s *PlanService) ReplacePlan(ctx context.Context, ownerID, planID string, plan domain.Plan) error {
	if err := validatePlan(plan); err != nil {
		return err
	}
	if err := s.plans.ReplacePlan(ctx, ownerID, planID, plan); err != nil {
		return fmt.Errorf("service.PlanService.ReplacePlan: %w", err)
	}
	return nil
}

// DeletePlan removes the plan subtree entirely. Ownership grants recorded in
// other plans' owners lists are not cleaned up — an accepted limitation.
func (s *PlanService) DeletePlan(ctx context.Context, ownerID, planID string) error {
	if err := s.plans.DeletePlan(ctx, ownerID, planID); err != nil {
		return fmt.Errorf("service.PlanService.DeletePlan: %w", err)
	}
	return nil
}

// ResolveOwner finds which owner a shared plan id belongs to, given only the
// id. Linear in the number of owners; see PlanRepo.ResolveOwnerOfPlan.
func (s *PlanService) ResolveOwner(ctx context.Context, planID string) (string, error) {
	ownerID, err := s.plans.ResolveOwnerOfPlan(ctx, planID)
	if err != nil {
		return "", fmt.Errorf("service.PlanService.ResolveOwner: %w", err)
	}
	return ownerID, nil
}

// AddDay appends one empty day to the itinerary and returns the new day's
// index so the caller can navigate the user straight into editing it.
// When a start date is set, the end date follows the new day count.
func (s *PlanService) AddDay(ctx context.Context, ownerID, planID string) (int, error) {
	it, err := s.plans.FetchItinerary(ctx, ownerID, planID)
	if err != nil {
		return 0, fmt.Errorf("service.PlanService.AddDay: %w", err)
	}

	newDayIndex := len(it.Days)
	it.Days = append(it.Days, domain.Day{})
	it.RecomputeEndDate()

	if err := s.plans.WriteItinerary(ctx, ownerID, planID, it); err != nil {
		return 0, fmt.Errorf("service.PlanService.AddDay: %w", err)
	}
	return newDayIndex, nil
}

// UpdateDay overwrites exactly the day at dayIndex with a targeted sub-path
// write. The day count is unchanged, so no date recomputation happens.
// No bounds check: the day appended by AddDay has no content yet and is
// therefore invisible to a read until this call fills it in, so the index
// AddDay returned must stay writable. A negative index is still rejected.
// An empty day is rejected: a day with zero activities must not persist, and
// emptying one is DeleteDay's job, not UpdateDay's.
func (s *PlanService) UpdateDay(ctx context.Context, ownerID, planID string, dayIndex int, day domain.Day) error {
	if len(day.Activities) == 0 {
		return fmt.Errorf("service.PlanService.UpdateDay: %w: day must have at least one activity", domain.ErrValidation)
	}
	if dayIndex < 0 {
		return fmt.Errorf("service.PlanService.UpdateDay: day %d: %w", dayIndex, domain.ErrInvalidIndex)
	}

	if err := s.plans.WriteDay(ctx, ownerID, planID, dayIndex, day); err != nil {
		return fmt.Errorf("service.PlanService.UpdateDay: %w", err)
	}
	return nil
}

// DeleteDay removes the day at dayIndex, re-indexing every subsequent day
// down by one, and moves the end date to match the new day count. Removing
// the last remaining day deletes the entire plan; the outcome flags that so
// callers can distinguish "day gone" from "plan gone".
func (s *PlanService) DeleteDay(ctx context.Context, ownerID, planID string, dayIndex int) (DayDeleteOutcome, error) {
	it, err := s.plans.FetchItinerary(ctx, ownerID, planID)
	if err != nil {
		return DayDeleteOutcome{}, fmt.Errorf("service.PlanService.DeleteDay: %w", err)
	}
	if dayIndex < 0 || dayIndex >= len(it.Days) {
		return DayDeleteOutcome{}, fmt.Errorf("service.PlanService.DeleteDay: day %d: %w", dayIndex, domain.ErrInvalidIndex)
	}

	it.Days = append(it.Days[:dayIndex], it.Days[dayIndex+1:]...)

	if len(it.Days) == 0 {
		// Empty containers must not persist: the last day going away takes
		// the whole plan with it.
		if err := s.plans.DeletePlan(ctx, ownerID, planID); err != nil {
			return DayDeleteOutcome{}, fmt.Errorf("service.PlanService.DeleteDay: %w", err)
		}
		return DayDeleteOutcome{PlanDeleted: true}, nil
	}

	it.RecomputeEndDate()
	if err := s.plans.WriteItinerary(ctx, ownerID, planID, it); err != nil {
		return DayDeleteOutcome{}, fmt.Errorf("service.PlanService.DeleteDay: %w", err)
	}
	return DayDeleteOutcome{}, nil
}

// DeleteActivity removes the activity at activityIndex from the day at
// dayIndex. Deletion is positional against storage (insertion) order — NOT
// against the time-of-day-sorted order the UI displays. If the day is left
// empty it is removed via the DeleteDay path, so the cascade (re-indexing,
// date recomputation, whole-plan deletion) cannot diverge between the two
// operations.
func (s *PlanService) DeleteActivity(ctx context.Context, ownerID, planID string, dayIndex, activityIndex int) (ActivityDeleteOutcome, error) {
	day, err := s.plans.FetchDay(ctx, ownerID, planID, dayIndex)
	if err != nil {
		return ActivityDeleteOutcome{}, fmt.Errorf("service.PlanService.DeleteActivity: %w", err)
	}
	if len(day.Activities) == 0 {
		return ActivityDeleteOutcome{}, fmt.Errorf("service.PlanService.DeleteActivity: day has no activities: %w", domain.ErrNotFound)
	}
	if activityIndex < 0 || activityIndex >= len(day.Activities) {
		return ActivityDeleteOutcome{}, fmt.Errorf("service.PlanService.DeleteActivity: activity %d: %w", activityIndex, domain.ErrInvalidIndex)
	}

	day.Activities = append(day.Activities[:activityIndex], day.Activities[activityIndex+1:]...)

	if len(day.Activities) == 0 {
		out, err := s.DeleteDay(ctx, ownerID, planID, dayIndex)
		if err != nil {
			return ActivityDeleteOutcome{}, fmt.Errorf("service.PlanService.DeleteActivity: %w", err)
		}
		return ActivityDeleteOutcome{DayDeleted: true, PlanDeleted: out.PlanDeleted}, nil
	}

	if err := s.plans.WriteDay(ctx, ownerID, planID, dayIndex, day); err != nil {
		return ActivityDeleteOutcome{}, fmt.Errorf("service.PlanService.DeleteActivity: %w", err)
	}
	return ActivityDeleteOutcome{}, nil
}

// validatePlan enforces business rules common to SavePlan and ReplacePlan.
func validatePlan(plan domain.Plan) error {
	if strings.TrimSpace(plan.Destination) == "" {
		return fmt.Errorf("%w: destination is required", domain.ErrValidation)
	}
	return nil
}
