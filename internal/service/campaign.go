package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"funil.app/crm/common/id"
	"funil.app/crm/internal/model"
	"funil.app/crm/internal/pipeline"
	"funil.app/crm/internal/store"
)

// CampaignInput is a partial campaign. An empty TriggerStage clears the
// trigger.
type CampaignInput struct {
	Name           *string
	Context        *string
	VoiceTone      *model.VoiceTone
	AIInstructions *string
	Status         *model.CampaignStatus
	TriggerStage   *model.StageSlug
}

type CampaignService interface {
	Create(ctx context.Context, workspaceID, actorID int64, in CampaignInput) (*model.Campaign, error)
	Get(ctx context.Context, workspaceID, userID, campaignID int64) (*model.Campaign, error)
	List(ctx context.Context, workspaceID, userID int64) ([]model.Campaign, error)
	Update(ctx context.Context, workspaceID, actorID, campaignID int64, in CampaignInput) (*model.Campaign, error)
}

type campaignService struct {
	authz     Authorizer
	campaigns store.CampaignStore
}

func NewCampaignService(authz Authorizer, campaigns store.CampaignStore) CampaignService {
	return &campaignService{authz: authz, campaigns: campaigns}
}

func (s *campaignService) Create(ctx context.Context, workspaceID, actorID int64, in CampaignInput) (*model.Campaign, error) {
	if _, err := authorize(ctx, s.authz, workspaceID, actorID, model.Role.HasAccess); err != nil {
		return nil, err
	}

	c := &model.Campaign{
		ID:          id.New(),
		WorkspaceID: workspaceID,
		VoiceTone:   model.VoiceToneNeutral,
		Status:      model.CampaignStatusActive,
		CreatedBy:   actorID,
	}
	if err := applyCampaignInput(c, in); err != nil {
		return nil, err
	}

	if err := s.campaigns.Create(ctx, c); err != nil {
		return nil, storeErr("creating campaign", err)
	}

	slog.InfoContext(ctx, "campaign created",
		"workspace_id", workspaceID,
		"campaign_id", c.ID)
	return c, nil
}

func (s *campaignService) Get(ctx context.Context, workspaceID, userID, campaignID int64) (*model.Campaign, error) {
	if _, err := authorize(ctx, s.authz, workspaceID, userID, model.Role.HasAccess); err != nil {
		return nil, err
	}
	return s.get(ctx, workspaceID, campaignID)
}

func (s *campaignService) get(ctx context.Context, workspaceID, campaignID int64) (*model.Campaign, error) {
	c, err := s.campaigns.GetByID(ctx, campaignID)
	if err != nil {
		return nil, storeErr("getting campaign", err)
	}
	if c.WorkspaceID != workspaceID {
		return nil, ErrNotFound
	}
	return c, nil
}

func (s *campaignService) List(ctx context.Context, workspaceID, userID int64) ([]model.Campaign, error) {
	if _, err := authorize(ctx, s.authz, workspaceID, userID, model.Role.HasAccess); err != nil {
		return nil, err
	}
	list, err := s.campaigns.List(ctx, workspaceID)
	if err != nil {
		return nil, storeErr("listing campaigns", err)
	}
	return list, nil
}

func (s *campaignService) Update(ctx context.Context, workspaceID, actorID, campaignID int64, in CampaignInput) (*model.Campaign, error) {
	if _, err := authorize(ctx, s.authz, workspaceID, actorID, model.Role.HasAccess); err != nil {
		return nil, err
	}
	c, err := s.get(ctx, workspaceID, campaignID)
	if err != nil {
		return nil, err
	}
	if err := applyCampaignInput(c, in); err != nil {
		return nil, err
	}
	if err := s.campaigns.Update(ctx, c); err != nil {
		return nil, storeErr("updating campaign", err)
	}
	return c, nil
}

func applyCampaignInput(c *model.Campaign, in CampaignInput) error {
	if in.Name != nil {
		c.Name = strings.TrimSpace(*in.Name)
	}
	if c.Name == "" {
		return invalidInput("campaign name is required")
	}
	if in.Context != nil {
		c.Context = strings.TrimSpace(*in.Context)
	}
	if in.AIInstructions != nil {
		c.AIInstructions = strings.TrimSpace(*in.AIInstructions)
	}
	if in.VoiceTone != nil {
		if !in.VoiceTone.Valid() {
			return invalidInput("unknown voice tone %q", *in.VoiceTone)
		}
		c.VoiceTone = *in.VoiceTone
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return invalidInput("unknown campaign status %q", *in.Status)
		}
		c.Status = *in.Status
	}
	if in.TriggerStage != nil {
		switch stage := *in.TriggerStage; {
		case stage == "":
			c.TriggerStage = nil
		case !pipeline.IsKnown(stage):
			return fmt.Errorf("%w: %q", ErrInvalidStage, stage)
		default:
			c.TriggerStage = &stage
		}
	}
	return nil
}
