package service

import (
	"context"
	"log/slog"

	"funil.app/crm/common/logger"
	"funil.app/crm/internal/model"
	"funil.app/crm/internal/queue"
	"funil.app/crm/internal/store"
)

// TaskEnqueuer hands background work to the worker.
type TaskEnqueuer interface {
	Enqueue(ctx context.Context, task queue.Task) error
}

// campaignTrigger queues message generation for leads entering a stage that
// an active campaign is triggered by. A lead already assigned to a campaign
// only fires that campaign. Everything here is best effort: failures are
// logged and never reach the stage change that caused them.
type campaignTrigger struct {
	campaigns store.CampaignStore
	enqueuer  TaskEnqueuer
}

func (t campaignTrigger) fire(ctx context.Context, workspaceID, senderID int64, stage model.StageSlug, leads []model.Lead) int {
	if t.enqueuer == nil || len(leads) == 0 {
		return 0
	}

	campaigns, err := t.campaigns.ListActiveByTrigger(ctx, workspaceID, stage)
	if err != nil {
		slog.WarnContext(ctx, "failed to list triggered campaigns",
			"error", err,
			"workspace_id", workspaceID,
			"stage", stage)
		return 0
	}
	if len(campaigns) == 0 {
		return 0
	}

	var traceID *string
	if id := logger.TraceIDFromContext(ctx); id != "" {
		traceID = &id
	}

	queued := 0
	for _, lead := range leads {
		for _, c := range campaigns {
			if lead.CampaignID != nil && *lead.CampaignID != c.ID {
				continue
			}
			err := t.enqueuer.Enqueue(ctx, queue.Task{
				TaskType:    queue.TaskTypeGenerateMessages,
				WorkspaceID: workspaceID,
				LeadID:      lead.ID,
				CampaignID:  c.ID,
				SenderID:    senderID,
				TraceID:     traceID,
			})
			if err != nil {
				slog.WarnContext(ctx, "failed to enqueue message generation",
					"error", err,
					"lead_id", lead.ID,
					"campaign_id", c.ID)
				continue
			}
			queued++
		}
	}
	return queued
}
