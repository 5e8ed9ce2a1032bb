package store

import (
	"funil.app/crm/core/db/sqlc"
)

type Stores struct {
	queries *sqlc.Queries
}

func NewStores(queries *sqlc.Queries) *Stores {
	return &Stores{queries: queries}
}

func (s *Stores) Users() UserStore {
	return newUserStore(s.queries)
}

func (s *Stores) Sessions() SessionStore {
	return newSessionStore(s.queries)
}

func (s *Stores) Workspaces() WorkspaceStore {
	return newWorkspaceStore(s.queries)
}

func (s *Stores) Members() MemberStore {
	return newMemberStore(s.queries)
}

func (s *Stores) Invitations() InvitationStore {
	return newInvitationStore(s.queries)
}

func (s *Stores) Pipelines() PipelineStore {
	return newPipelineStore(s.queries)
}

func (s *Stores) CustomFields() CustomFieldStore {
	return newCustomFieldStore(s.queries)
}

func (s *Stores) Leads() LeadStore {
	return newLeadStore(s.queries)
}

func (s *Stores) Campaigns() CampaignStore {
	return newCampaignStore(s.queries)
}

func (s *Stores) Suggestions() SuggestionStore {
	return newSuggestionStore(s.queries)
}

func (s *Stores) WorkspaceEventLogs() WorkspaceEventLogStore {
	return newWorkspaceEventLogStore(s.queries)
}
