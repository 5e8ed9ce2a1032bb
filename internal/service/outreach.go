package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"funil.app/crm/common/logger"
	"funil.app/crm/internal/model"
	"funil.app/crm/internal/outreach"
	"funil.app/crm/internal/store"
)

type GenerateResult struct {
	Batch *model.SuggestionBatch `json:"batch"`
	// Failures lists channels that failed while others succeeded.
	Failures []outreach.ChannelError `json:"failures,omitempty"`
}

type OutreachService interface {
	Generate(ctx context.Context, workspaceID, actorID, leadID, campaignID int64, channels []model.Channel, variations int) (*GenerateResult, error)
	// GenerateAutoMessagesForLead is the worker path. It returns
	// ErrTriggerMismatch when the campaign is not active or its trigger
	// stage no longer matches the lead.
	GenerateAutoMessagesForLead(ctx context.Context, leadID, campaignID, senderID int64) (*GenerateResult, error)
	GetSuggestions(ctx context.Context, workspaceID, userID, leadID int64) ([]model.SuggestionBatch, error)
	MarkSuggestionsViewed(ctx context.Context, workspaceID, userID, leadID, campaignID int64) error
}

type outreachService struct {
	authz             Authorizer
	leads             store.LeadStore
	campaigns         store.CampaignStore
	customFields      store.CustomFieldStore
	users             store.UserStore
	workspaces        store.WorkspaceStore
	suggestions       store.SuggestionStore
	generator         outreach.Generator
	defaultVariations int
}

func NewOutreachService(
	authz Authorizer,
	leads store.LeadStore,
	campaigns store.CampaignStore,
	customFields store.CustomFieldStore,
	users store.UserStore,
	workspaces store.WorkspaceStore,
	suggestions store.SuggestionStore,
	generator outreach.Generator,
	defaultVariations int,
) OutreachService {
	if defaultVariations <= 0 {
		defaultVariations = outreach.DefaultVariations
	}
	return &outreachService{
		authz:             authz,
		leads:             leads,
		campaigns:         campaigns,
		customFields:      customFields,
		users:             users,
		workspaces:        workspaces,
		suggestions:       suggestions,
		generator:         generator,
		defaultVariations: defaultVariations,
	}
}

func (s *outreachService) Generate(ctx context.Context, workspaceID, actorID, leadID, campaignID int64, channels []model.Channel, variations int) (*GenerateResult, error) {
	if _, err := authorize(ctx, s.authz, workspaceID, actorID, model.Role.HasAccess); err != nil {
		return nil, err
	}

	lead, err := s.leads.GetByID(ctx, leadID)
	if err != nil {
		return nil, storeErr("getting lead", err)
	}
	campaign, err := s.campaigns.GetByID(ctx, campaignID)
	if err != nil {
		return nil, storeErr("getting campaign", err)
	}
	if lead.WorkspaceID != workspaceID || campaign.WorkspaceID != workspaceID {
		return nil, ErrNotFound
	}

	if len(channels) == 0 {
		channels = []model.Channel{model.ChannelWhatsApp, model.ChannelEmail}
	}
	if variations <= 0 {
		variations = s.defaultVariations
	}
	return s.generate(ctx, lead, campaign, actorID, channels, variations)
}

func (s *outreachService) GenerateAutoMessagesForLead(ctx context.Context, leadID, campaignID, senderID int64) (*GenerateResult, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{LeadID: &leadID, CampaignID: &campaignID})

	lead, err := s.leads.GetByID(ctx, leadID)
	if err != nil {
		return nil, storeErr("getting lead", err)
	}
	campaign, err := s.campaigns.GetByID(ctx, campaignID)
	if err != nil {
		return nil, storeErr("getting campaign", err)
	}

	switch {
	case lead.WorkspaceID != campaign.WorkspaceID:
		return nil, fmt.Errorf("%w: campaign belongs to another workspace", ErrTriggerMismatch)
	case lead.IsArchived():
		return nil, fmt.Errorf("%w: lead is archived", ErrTriggerMismatch)
	case !campaign.Triggers(lead.Stage):
		return nil, fmt.Errorf("%w: campaign status %s, lead stage %s", ErrTriggerMismatch, campaign.Status, lead.Stage)
	}

	return s.generate(ctx, lead, campaign, senderID,
		[]model.Channel{model.ChannelWhatsApp, model.ChannelEmail}, s.defaultVariations)
}

// generate runs the orchestrator and overwrites the (lead, campaign) batch.
// A cancelled ctx persists nothing.
func (s *outreachService) generate(ctx context.Context, lead *model.Lead, campaign *model.Campaign, senderID int64, channels []model.Channel, variations int) (*GenerateResult, error) {
	if s.generator == nil {
		return nil, fmt.Errorf("%w: message generation is not configured", ErrExternalService)
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		WorkspaceID: &lead.WorkspaceID,
		LeadID:      &lead.ID,
		CampaignID:  &campaign.ID,
	})

	custom, err := s.customFields.List(ctx, lead.WorkspaceID)
	if err != nil {
		return nil, storeErr("listing custom fields", err)
	}

	res, err := s.generator.Generate(ctx, outreach.GenerateRequest{
		Campaign:     campaign,
		Lead:         lead,
		CustomFields: custom,
		Channels:     channels,
		Variations:   variations,
		Sender:       s.sender(ctx, lead.WorkspaceID, senderID),
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if errors.Is(err, outreach.ErrNoChannels) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		slog.ErrorContext(ctx, "message generation failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrExternalService, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	batch := &model.SuggestionBatch{
		LeadID:      lead.ID,
		CampaignID:  campaign.ID,
		WorkspaceID: lead.WorkspaceID,
		Suggestions: res.Suggestions,
	}
	if err := s.suggestions.Upsert(ctx, batch); err != nil {
		return nil, storeErr("saving suggestions", err)
	}

	slog.InfoContext(ctx, "suggestions saved",
		"count", len(batch.Suggestions),
		"failed_channels", len(res.Failures))

	return &GenerateResult{Batch: batch, Failures: res.Failures}, nil
}

// sender builds the signature identity. A missing profile degrades to an
// empty sender; placeholders for absent values are dropped.
func (s *outreachService) sender(ctx context.Context, workspaceID, userID int64) outreach.Sender {
	var out outreach.Sender
	if ws, err := s.workspaces.GetByID(ctx, workspaceID); err == nil {
		out.Company = ws.Name
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		slog.WarnContext(ctx, "sender profile unavailable", "error", err, "user_id", userID)
		return out
	}
	out.Name = u.Name
	out.Email = u.Email
	if u.Position != nil {
		out.Position = *u.Position
	}
	if u.Phone != nil {
		out.Phone = *u.Phone
	}
	return out
}

func (s *outreachService) GetSuggestions(ctx context.Context, workspaceID, userID, leadID int64) ([]model.SuggestionBatch, error) {
	if _, err := authorize(ctx, s.authz, workspaceID, userID, model.Role.HasAccess); err != nil {
		return nil, err
	}
	lead, err := s.leads.GetByID(ctx, leadID)
	if err != nil {
		return nil, storeErr("getting lead", err)
	}
	if lead.WorkspaceID != workspaceID {
		return nil, ErrNotFound
	}
	batches, err := s.suggestions.ListForLead(ctx, leadID)
	if err != nil {
		return nil, storeErr("listing suggestions", err)
	}
	return batches, nil
}

func (s *outreachService) MarkSuggestionsViewed(ctx context.Context, workspaceID, userID, leadID, campaignID int64) error {
	if _, err := authorize(ctx, s.authz, workspaceID, userID, model.Role.HasAccess); err != nil {
		return err
	}
	batch, err := s.suggestions.Get(ctx, leadID, campaignID)
	if err != nil {
		return storeErr("getting suggestions", err)
	}
	if batch.WorkspaceID != workspaceID {
		return ErrNotFound
	}
	if err := s.suggestions.MarkViewed(ctx, leadID, campaignID); err != nil {
		return storeErr("marking suggestions viewed", err)
	}
	return nil
}
