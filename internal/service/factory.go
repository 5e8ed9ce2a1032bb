package service

import (
	"funil.app/crm/core/config"
	"funil.app/crm/internal/outreach"
	"funil.app/crm/internal/store"
)

// Externals are the collaborators outside the database. Any of them may be
// nil when the corresponding integration is not configured.
type Externals struct {
	Mailer    InviteMailer
	Uploader  AssetUploader
	Enqueuer  TaskEnqueuer
	Generator outreach.Generator
}

type Services struct {
	stores   *store.Stores
	txRunner TxRunner
	cfg      config.Config
	ext      Externals
}

func NewServices(stores *store.Stores, txRunner TxRunner, cfg config.Config, ext Externals) *Services {
	return &Services{
		stores:   stores,
		txRunner: txRunner,
		cfg:      cfg,
		ext:      ext,
	}
}

func (s *Services) Authorizer() Authorizer {
	return NewAuthorizer(s.stores.Workspaces(), s.stores.Members())
}

func (s *Services) Auth() AuthService {
	return NewAuthService(
		s.stores.Users(),
		s.stores.Sessions(),
		s.stores.Workspaces(),
		s.Authorizer(),
		s.cfg.WorkOS,
	)
}

func (s *Services) Users() UserService {
	return NewUserService(s.stores.Users(), s.ext.Uploader, s.cfg.Storage.AvatarBucket)
}

func (s *Services) Workspaces() WorkspaceService {
	return NewWorkspaceService(
		s.Authorizer(),
		s.stores.Workspaces(),
		s.stores.Members(),
		s.stores.Users(),
		s.stores.WorkspaceEventLogs(),
		s.txRunner,
		s.ext.Uploader,
		s.cfg.Storage.LogoBucket,
	)
}

func (s *Services) Invitations() InvitationService {
	return NewInvitationService(
		s.Authorizer(),
		s.stores.Invitations(),
		s.stores.Workspaces(),
		s.stores.Users(),
		s.stores.WorkspaceEventLogs(),
		s.txRunner,
		s.ext.Mailer,
		s.cfg.SiteBaseURL,
	)
}

func (s *Services) Onboarding() OnboardingService {
	return NewOnboardingService(s.Workspaces(), s.Invitations())
}

func (s *Services) History() HistoryService {
	return NewHistoryService(s.Authorizer(), s.stores.WorkspaceEventLogs())
}

func (s *Services) Pipelines() PipelineService {
	return NewPipelineService(s.Authorizer(), s.stores.Pipelines(), s.stores.CustomFields(), s.txRunner)
}

func (s *Services) CustomFields() CustomFieldService {
	return NewCustomFieldService(s.Authorizer(), s.stores.CustomFields(), s.txRunner)
}

func (s *Services) Leads() LeadService {
	return NewLeadService(
		s.Authorizer(),
		s.stores.Leads(),
		s.stores.Campaigns(),
		s.stores.CustomFields(),
		s.stores.Pipelines(),
		s.stores.WorkspaceEventLogs(),
		s.ext.Enqueuer,
	)
}

func (s *Services) Promotions() PromotionService {
	return NewPromotionService(
		s.Authorizer(),
		s.stores.Leads(),
		s.stores.Campaigns(),
		s.stores.WorkspaceEventLogs(),
		s.ext.Enqueuer,
	)
}

func (s *Services) Campaigns() CampaignService {
	return NewCampaignService(s.Authorizer(), s.stores.Campaigns())
}

func (s *Services) Outreach() OutreachService {
	return NewOutreachService(
		s.Authorizer(),
		s.stores.Leads(),
		s.stores.Campaigns(),
		s.stores.CustomFields(),
		s.stores.Users(),
		s.stores.Workspaces(),
		s.stores.Suggestions(),
		s.ext.Generator,
		s.cfg.Outreach.DefaultVariations,
	)
}
