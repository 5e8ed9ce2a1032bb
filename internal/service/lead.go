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

// LeadInput is a partial lead. Nil fields are left unchanged; a nil entry in
// CustomValues clears that custom field.
type LeadInput struct {
	Name     *string
	Email    *string
	Phone    *string
	Position *string
	Company  *string
	Segment  *string
	Revenue  *string
	LinkedIn *string
	Notes    *string

	Stage          *model.StageSlug
	CampaignID     *int64
	ClearCampaign  bool
	ResponsibleIDs []int64
	CustomValues   map[string]any
}

type LeadService interface {
	Create(ctx context.Context, workspaceID, actorID int64, in LeadInput) (*model.Lead, error)
	Get(ctx context.Context, workspaceID, userID, leadID int64) (*model.Lead, error)
	List(ctx context.Context, workspaceID, userID int64, archived bool) ([]model.Lead, error)
	// Update validates the target stage's required fields against the
	// updated lead whenever the stage changes. Nothing is written on failure.
	Update(ctx context.Context, workspaceID, actorID, leadID int64, in LeadInput) (*model.Lead, error)
	ChangeStage(ctx context.Context, workspaceID, actorID, leadID int64, stage model.StageSlug) (*model.Lead, error)
	Archive(ctx context.Context, workspaceID, actorID, leadID int64) (*model.Lead, error)
	Restore(ctx context.Context, workspaceID, actorID, leadID int64) (*model.Lead, error)
}

type leadService struct {
	authz        Authorizer
	leads        store.LeadStore
	campaigns    store.CampaignStore
	customFields store.CustomFieldStore
	pipelines    store.PipelineStore
	logs         store.WorkspaceEventLogStore
	trigger      campaignTrigger
}

func NewLeadService(
	authz Authorizer,
	leads store.LeadStore,
	campaigns store.CampaignStore,
	customFields store.CustomFieldStore,
	pipelines store.PipelineStore,
	logs store.WorkspaceEventLogStore,
	enqueuer TaskEnqueuer,
) LeadService {
	return &leadService{
		authz:        authz,
		leads:        leads,
		campaigns:    campaigns,
		customFields: customFields,
		pipelines:    pipelines,
		logs:         logs,
		trigger:      campaignTrigger{campaigns: campaigns, enqueuer: enqueuer},
	}
}

func (s *leadService) Create(ctx context.Context, workspaceID, actorID int64, in LeadInput) (*model.Lead, error) {
	if _, err := authorize(ctx, s.authz, workspaceID, actorID, model.Role.HasAccess); err != nil {
		return nil, err
	}

	lead := &model.Lead{
		ID:             id.New(),
		WorkspaceID:    workspaceID,
		Stage:          model.StageBase,
		ResponsibleIDs: []int64{},
		CustomValues:   map[string]any{},
	}
	applyLeadInput(lead, in)

	custom, err := s.checkLead(ctx, lead, in)
	if err != nil {
		return nil, err
	}
	if lead.Stage != model.StageBase {
		if err := s.validateStage(ctx, lead, lead.Stage, custom); err != nil {
			return nil, err
		}
	}

	if err := s.leads.Create(ctx, lead); err != nil {
		return nil, storeErr("creating lead", err)
	}

	slog.InfoContext(ctx, "lead created",
		"workspace_id", workspaceID,
		"lead_id", lead.ID,
		"stage", lead.Stage)

	if lead.Stage != model.StageBase {
		s.trigger.fire(ctx, workspaceID, actorID, lead.Stage, []model.Lead{*lead})
	}
	return lead, nil
}

func (s *leadService) Get(ctx context.Context, workspaceID, userID, leadID int64) (*model.Lead, error) {
	if _, err := authorize(ctx, s.authz, workspaceID, userID, model.Role.HasAccess); err != nil {
		return nil, err
	}
	return s.getLead(ctx, workspaceID, leadID)
}

func (s *leadService) getLead(ctx context.Context, workspaceID, leadID int64) (*model.Lead, error) {
	lead, err := s.leads.GetByID(ctx, leadID)
	if err != nil {
		return nil, storeErr("getting lead", err)
	}
	if lead.WorkspaceID != workspaceID {
		return nil, ErrNotFound
	}
	return lead, nil
}

func (s *leadService) List(ctx context.Context, workspaceID, userID int64, archived bool) ([]model.Lead, error) {
	if _, err := authorize(ctx, s.authz, workspaceID, userID, model.Role.HasAccess); err != nil {
		return nil, err
	}
	var (
		leads []model.Lead
		err   error
	)
	if archived {
		leads, err = s.leads.ListArchived(ctx, workspaceID)
	} else {
		leads, err = s.leads.ListActive(ctx, workspaceID)
	}
	if err != nil {
		return nil, storeErr("listing leads", err)
	}
	return leads, nil
}

func (s *leadService) Update(ctx context.Context, workspaceID, actorID, leadID int64, in LeadInput) (*model.Lead, error) {
	if _, err := authorize(ctx, s.authz, workspaceID, actorID, model.Role.HasAccess); err != nil {
		return nil, err
	}
	lead, err := s.getLead(ctx, workspaceID, leadID)
	if err != nil {
		return nil, err
	}

	from := lead.Stage
	applyLeadInput(lead, in)

	custom, err := s.checkLead(ctx, lead, in)
	if err != nil {
		return nil, err
	}
	if lead.Stage != from {
		if err := s.validateStage(ctx, lead, lead.Stage, custom); err != nil {
			return nil, err
		}
	}

	if err := s.leads.Update(ctx, lead); err != nil {
		return nil, storeErr("updating lead", err)
	}

	if lead.Stage != from {
		s.afterStageChange(ctx, actorID, lead, from)
	}
	return lead, nil
}

func (s *leadService) ChangeStage(ctx context.Context, workspaceID, actorID, leadID int64, stage model.StageSlug) (*model.Lead, error) {
	if _, err := authorize(ctx, s.authz, workspaceID, actorID, model.Role.HasAccess); err != nil {
		return nil, err
	}
	if !pipeline.IsKnown(stage) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStage, stage)
	}
	lead, err := s.getLead(ctx, workspaceID, leadID)
	if err != nil {
		return nil, err
	}
	if lead.Stage == stage {
		return lead, nil
	}

	custom, err := s.customFields.List(ctx, workspaceID)
	if err != nil {
		return nil, storeErr("listing custom fields", err)
	}
	if err := s.validateStage(ctx, lead, stage, custom); err != nil {
		return nil, err
	}

	from := lead.Stage
	updated, err := s.leads.UpdateStage(ctx, lead.ID, stage)
	if err != nil {
		return nil, storeErr("updating lead stage", err)
	}

	s.afterStageChange(ctx, actorID, updated, from)
	return updated, nil
}

func (s *leadService) afterStageChange(ctx context.Context, actorID int64, lead *model.Lead, from model.StageSlug) {
	recordEvent(ctx, s.logs, newEvent(lead.WorkspaceID, actorID, model.WorkspaceEventTypeLeadStageChanged, map[string]any{
		"lead_id": lead.ID,
		"from":    from,
		"to":      lead.Stage,
	}))
	slog.InfoContext(ctx, "lead stage changed",
		"lead_id", lead.ID,
		"from", from,
		"to", lead.Stage)

	if !lead.IsArchived() {
		s.trigger.fire(ctx, lead.WorkspaceID, actorID, lead.Stage, []model.Lead{*lead})
	}
}

// validateStage runs the required-field check for target against the
// workspace's current pipeline configuration.
func (s *leadService) validateStage(ctx context.Context, lead *model.Lead, target model.StageSlug, custom []model.CustomField) error {
	cfg, err := loadPipelineConfig(ctx, s.pipelines, lead.WorkspaceID)
	if err != nil {
		return err
	}
	if errs := pipeline.Validate(lead, target, cfg, custom); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

// checkLead validates everything about lead except stage requirements and
// returns the workspace's custom fields for the stage check.
func (s *leadService) checkLead(ctx context.Context, lead *model.Lead, in LeadInput) ([]model.CustomField, error) {
	if strings.TrimSpace(lead.Name) == "" {
		return nil, &ValidationError{Fields: []pipeline.FieldError{{Field: pipeline.FieldNome, Message: "Nome é obrigatório"}}}
	}
	if !pipeline.IsKnown(lead.Stage) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStage, lead.Stage)
	}

	if in.CampaignID != nil && !in.ClearCampaign {
		c, err := s.campaigns.GetByID(ctx, *in.CampaignID)
		if err != nil {
			return nil, storeErr("getting campaign", err)
		}
		if c.WorkspaceID != lead.WorkspaceID {
			return nil, fmt.Errorf("campaign %d: %w", *in.CampaignID, ErrNotFound)
		}
	}

	for _, uid := range in.ResponsibleIDs {
		ok, err := s.authz.HasAccess(ctx, lead.WorkspaceID, uid)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, invalidInput("responsible user %d is not a workspace member", uid)
		}
	}

	custom, err := s.customFields.List(ctx, lead.WorkspaceID)
	if err != nil {
		return nil, storeErr("listing custom fields", err)
	}
	keys := make([]string, 0, len(in.CustomValues))
	for k := range in.CustomValues {
		keys = append(keys, k)
	}
	if unknown := unknownCustomKeys(keys, custom); len(unknown) > 0 {
		verr := &ValidationError{}
		for _, k := range unknown {
			verr.Fields = append(verr.Fields, pipeline.FieldError{Field: k, Message: "campo desconhecido"})
		}
		return nil, verr
	}
	return custom, nil
}

func unknownCustomKeys(keys []string, custom []model.CustomField) []string {
	known := make(map[string]bool, len(custom))
	for _, cf := range custom {
		known[pipeline.CustomFieldKey(cf.ID)] = true
	}
	var unknown []string
	for _, k := range keys {
		if !known[k] {
			unknown = append(unknown, k)
		}
	}
	return unknown
}

func applyLeadInput(lead *model.Lead, in LeadInput) {
	setString := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	setString(&lead.Name, in.Name)
	setString(&lead.Email, in.Email)
	setString(&lead.Phone, in.Phone)
	setString(&lead.Position, in.Position)
	setString(&lead.Company, in.Company)

	setOptional := func(dst **string, v *string) {
		if v == nil {
			return
		}
		t := strings.TrimSpace(*v)
		if t == "" {
			*dst = nil
			return
		}
		*dst = &t
	}
	setOptional(&lead.Segment, in.Segment)
	setOptional(&lead.Revenue, in.Revenue)
	setOptional(&lead.LinkedIn, in.LinkedIn)
	setOptional(&lead.Notes, in.Notes)

	if in.Stage != nil {
		lead.Stage = *in.Stage
	}
	switch {
	case in.ClearCampaign:
		lead.CampaignID = nil
	case in.CampaignID != nil:
		c := *in.CampaignID
		lead.CampaignID = &c
	}
	if in.ResponsibleIDs != nil {
		lead.ResponsibleIDs = append([]int64{}, in.ResponsibleIDs...)
	}
	if lead.CustomValues == nil {
		lead.CustomValues = map[string]any{}
	}
	for k, v := range in.CustomValues {
		if v == nil {
			delete(lead.CustomValues, k)
			continue
		}
		lead.CustomValues[k] = v
	}
}

func (s *leadService) Archive(ctx context.Context, workspaceID, actorID, leadID int64) (*model.Lead, error) {
	if _, err := authorize(ctx, s.authz, workspaceID, actorID, model.Role.HasAccess); err != nil {
		return nil, err
	}
	lead, err := s.getLead(ctx, workspaceID, leadID)
	if err != nil {
		return nil, err
	}
	if lead.IsArchived() {
		return lead, nil
	}
	archived, err := s.leads.Archive(ctx, leadID)
	if err != nil {
		return nil, storeErr("archiving lead", err)
	}
	return archived, nil
}

func (s *leadService) Restore(ctx context.Context, workspaceID, actorID, leadID int64) (*model.Lead, error) {
	if _, err := authorize(ctx, s.authz, workspaceID, actorID, model.Role.HasAccess); err != nil {
		return nil, err
	}
	lead, err := s.getLead(ctx, workspaceID, leadID)
	if err != nil {
		return nil, err
	}
	if !lead.IsArchived() {
		return lead, nil
	}
	restored, err := s.leads.Restore(ctx, leadID)
	if err != nil {
		return nil, storeErr("restoring lead", err)
	}
	return restored, nil
}
