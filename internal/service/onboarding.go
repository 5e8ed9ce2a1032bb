package service

import (
	"context"

	"funil.app/crm/internal/model"
)

type OnboardingStep string

const (
	OnboardingDashboard       OnboardingStep = "dashboard"
	OnboardingAcceptInvite    OnboardingStep = "accept_invite"
	OnboardingInvites         OnboardingStep = "invites"
	OnboardingCreateWorkspace OnboardingStep = "create_workspace"
)

type OnboardingDecision struct {
	Step        OnboardingStep     `json:"step"`
	WorkspaceID *int64             `json:"workspace_id,omitempty"`
	InviteToken string             `json:"invite_token,omitempty"`
	Invites     []model.Invitation `json:"invites,omitempty"`
}

// OnboardingService decides where a freshly signed-in user lands.
//
// Membership wins over invites: a user with any workspace goes to the
// dashboard of the oldest one. Without workspaces, a single pending invite
// goes straight to its acceptance page, several go to the invite list, and
// none to workspace creation.
type OnboardingService interface {
	Decide(ctx context.Context, user *model.User) (*OnboardingDecision, error)
}

type onboardingService struct {
	workspaces WorkspaceService
	invites    InvitationService
}

func NewOnboardingService(workspaces WorkspaceService, invites InvitationService) OnboardingService {
	return &onboardingService{workspaces: workspaces, invites: invites}
}

func (s *onboardingService) Decide(ctx context.Context, user *model.User) (*OnboardingDecision, error) {
	list, err := s.workspaces.ListForUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if len(list) > 0 {
		first := oldestWorkspace(list)
		return &OnboardingDecision{Step: OnboardingDashboard, WorkspaceID: &first.ID}, nil
	}

	pending, err := s.invites.ListPendingForUser(ctx, user)
	if err != nil {
		return nil, err
	}
	switch len(pending) {
	case 0:
		return &OnboardingDecision{Step: OnboardingCreateWorkspace}, nil
	case 1:
		return &OnboardingDecision{Step: OnboardingAcceptInvite, InviteToken: pending[0].Token, Invites: pending}, nil
	default:
		return &OnboardingDecision{Step: OnboardingInvites, Invites: pending}, nil
	}
}

func oldestWorkspace(list []model.Workspace) model.Workspace {
	first := list[0]
	for _, ws := range list[1:] {
		if ws.CreatedAt.Before(first.CreatedAt) || (ws.CreatedAt.Equal(first.CreatedAt) && ws.ID < first.ID) {
			first = ws
		}
	}
	return first
}
