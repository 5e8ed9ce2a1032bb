package service

import (
	"context"
	"fmt"
	"log/slog"

	"funil.app/crm/internal/model"
	"funil.app/crm/internal/pipeline"
	"funil.app/crm/internal/store"
)

type PromotionResult struct {
	PromotedCount int          `json:"promoted_count"`
	Leads         []model.Lead `json:"leads"`
	// QueuedGenerations counts the auto-generation tasks enqueued for
	// campaigns triggered by the promotion stage.
	QueuedGenerations int `json:"queued_generations"`
}

type PromotionService interface {
	ListEligible(ctx context.Context, workspaceID, userID int64) ([]model.Lead, error)
	// PromoteEligible moves every eligible base lead to the first
	// configurable stage. Eligibility is re-evaluated on fresh data and the
	// update only touches leads still in the base stage. Per-stage required
	// fields are not checked on this path.
	PromoteEligible(ctx context.Context, workspaceID, actorID int64) (*PromotionResult, error)
}

type promotionService struct {
	authz   Authorizer
	leads   store.LeadStore
	logs    store.WorkspaceEventLogStore
	trigger campaignTrigger
}

func NewPromotionService(authz Authorizer, leads store.LeadStore, campaigns store.CampaignStore, logs store.WorkspaceEventLogStore, enqueuer TaskEnqueuer) PromotionService {
	return &promotionService{
		authz:   authz,
		leads:   leads,
		logs:    logs,
		trigger: campaignTrigger{campaigns: campaigns, enqueuer: enqueuer},
	}
}

func (s *promotionService) eligible(ctx context.Context, workspaceID int64) ([]model.Lead, error) {
	base, err := s.leads.ListActiveByStage(ctx, workspaceID, model.StageBase)
	if err != nil {
		return nil, storeErr("listing base leads", err)
	}
	return pipeline.FindEligibleForPromotion(base), nil
}

func (s *promotionService) ListEligible(ctx context.Context, workspaceID, userID int64) ([]model.Lead, error) {
	if _, err := authorize(ctx, s.authz, workspaceID, userID, model.Role.HasAccess); err != nil {
		return nil, err
	}
	return s.eligible(ctx, workspaceID)
}

func (s *promotionService) PromoteEligible(ctx context.Context, workspaceID, actorID int64) (*PromotionResult, error) {
	if _, err := authorize(ctx, s.authz, workspaceID, actorID, model.Role.HasAccess); err != nil {
		return nil, err
	}

	eligible, err := s.eligible(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if len(eligible) == 0 {
		return &PromotionResult{Leads: []model.Lead{}}, nil
	}

	ids := make([]int64, 0, len(eligible))
	for _, l := range eligible {
		ids = append(ids, l.ID)
	}

	promoted, err := s.leads.Promote(ctx, workspaceID, ids, model.StageBase, pipeline.PromotionTarget)
	if err != nil {
		return nil, fmt.Errorf("promoting leads: %w", err)
	}

	promotedIDs := make([]int64, 0, len(promoted))
	for _, l := range promoted {
		promotedIDs = append(promotedIDs, l.ID)
	}
	recordEvent(ctx, s.logs, newEvent(workspaceID, actorID, model.WorkspaceEventTypeLeadsPromoted, map[string]any{
		"count":    len(promoted),
		"lead_ids": promotedIDs,
		"to":       pipeline.PromotionTarget,
	}))
	slog.InfoContext(ctx, "leads promoted",
		"workspace_id", workspaceID,
		"eligible", len(eligible),
		"promoted", len(promoted))

	queued := s.trigger.fire(ctx, workspaceID, actorID, pipeline.PromotionTarget, promoted)

	return &PromotionResult{
		PromotedCount:     len(promoted),
		Leads:             promoted,
		QueuedGenerations: queued,
	}, nil
}
