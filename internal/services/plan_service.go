package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/leandrotelles/nutricoach-bot/internal/domain"
	"github.com/leandrotelles/nutricoach-bot/internal/logger"
	"github.com/leandrotelles/nutricoach-bot/internal/storage"
)

// PlanService holds the last-generated plan. The plan is replaced
// wholesale on each generation and never edited by views.
type PlanService struct {
	store  storage.Store
	userID int64
	plan   *domain.Plan
}

// NewPlanService hydrates the stored plan if present. A corrupt entry
// is treated as no plan.
func NewPlanService(ctx context.Context, store storage.Store, userID int64) *PlanService {
	s := &PlanService{store: store, userID: userID}

	data, err := store.Get(ctx, storage.PlanKey(userID))
	if err != nil {
		return s
	}

	var plan domain.Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		logger.Warn("Failed to parse saved plan, ignoring it", "user_id", userID, "error", err)
		return s
	}
	s.plan = &plan
	return s
}

// Plan returns the current plan, or nil when none was generated.
func (s *PlanService) Plan() *domain.Plan {
	return s.plan
}

// Save replaces the plan and persists it immediately.
func (s *PlanService) Save(ctx context.Context, plan *domain.Plan) error {
	data, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to serialize plan: %w", err)
	}
	if err := s.store.Set(ctx, storage.PlanKey(s.userID), data); err != nil {
		return fmt.Errorf("failed to save plan: %w", err)
	}
	s.plan = plan
	return nil
}

// Clear discards the plan and removes the stored entry.
func (s *PlanService) Clear(ctx context.Context) error {
	s.plan = nil
	if err := s.store.Remove(ctx, storage.PlanKey(s.userID)); err != nil {
		return fmt.Errorf("failed to remove plan: %w", err)
	}
	return nil
}
