package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"funil.app/crm/common/id"
	"funil.app/crm/internal/mailer"
	"funil.app/crm/internal/model"
	"funil.app/crm/internal/store"
)

const (
	InviteTokenLength = 32
	InviteExpiryDays  = 7
)

// InviteMailer delivers the invitation email.
type InviteMailer interface {
	SendInvite(ctx context.Context, msg mailer.Invite) error
}

type InviteResult struct {
	Invitation *model.Invitation
	AcceptURL  string
	// Warnings is set when the invite was stored but the email could not be
	// delivered.
	Warnings []string
}

type AcceptResult struct {
	Invitation  *model.Invitation
	WorkspaceID int64 // becomes the caller's current workspace
	Role        model.Role
}

type InvitationService interface {
	Invite(ctx context.Context, workspaceID, inviterID int64, email string, role model.Role) (*InviteResult, error)
	// Preview returns a still-valid invite and its workspace for the accept
	// page.
	Preview(ctx context.Context, token string) (*model.Invitation, *model.Workspace, error)
	Accept(ctx context.Context, token string, user *model.User) (*AcceptResult, error)
	Reject(ctx context.Context, token string, user *model.User) (*model.Invitation, error)
	Cancel(ctx context.Context, workspaceID, actorID, inviteID int64) (*model.Invitation, error)
	Resend(ctx context.Context, workspaceID, actorID, inviteID int64) (*InviteResult, error)
	List(ctx context.Context, workspaceID, actorID int64) ([]model.Invitation, error)
	// ListPendingForUser returns pending, unexpired invites addressed to the
	// user's email.
	ListPendingForUser(ctx context.Context, user *model.User) ([]model.Invitation, error)
}

type invitationService struct {
	authz       Authorizer
	invites     store.InvitationStore
	workspaces  store.WorkspaceStore
	users       store.UserStore
	logs        store.WorkspaceEventLogStore
	txRunner    TxRunner
	mailer      InviteMailer
	siteBaseURL string
	now         func() time.Time
}

func NewInvitationService(
	authz Authorizer,
	invites store.InvitationStore,
	workspaces store.WorkspaceStore,
	users store.UserStore,
	logs store.WorkspaceEventLogStore,
	txRunner TxRunner,
	mailer InviteMailer,
	siteBaseURL string,
) InvitationService {
	return &invitationService{
		authz:       authz,
		invites:     invites,
		workspaces:  workspaces,
		users:       users,
		logs:        logs,
		txRunner:    txRunner,
		mailer:      mailer,
		siteBaseURL: strings.TrimRight(siteBaseURL, "/"),
		now:         time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *invitationService) acceptURL(token string) string {
	return fmt.Sprintf("%s/invites/accept/%s", s.siteBaseURL, token)
}

func (s *invitationService) Invite(ctx context.Context, workspaceID, inviterID int64, email string, role model.Role) (*InviteResult, error) {
	if _, err := authorize(ctx, s.authz, workspaceID, inviterID, model.Role.CanManageMembers); err != nil {
		return nil, err
	}
	if role != model.RoleAdmin && role != model.RoleMember {
		return nil, ErrInvalidRole
	}

	email = normalizeEmail(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, invalidInput("invalid email %q", email)
	}

	if err := s.ensureNotMember(ctx, workspaceID, email); err != nil {
		return nil, err
	}

	existing, err := s.invites.GetPendingByWorkspaceAndEmail(ctx, workspaceID, email)
	switch {
	case err == nil && existing.IsExpiredAt(s.now()):
		s.expire(ctx, existing)
	case err == nil:
		return nil, fmt.Errorf("pending invitation exists for %s: %w", email, ErrConflict)
	case !errors.Is(err, store.ErrNotFound):
		return nil, storeErr("checking pending invitations", err)
	}

	token, err := generateSecureToken(InviteTokenLength)
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}

	inv := &model.Invitation{
		ID:          id.New(),
		WorkspaceID: workspaceID,
		Email:       email,
		Role:        role,
		InvitedBy:   inviterID,
		Token:       token,
		Status:      model.InvitationStatusPending,
		ExpiresAt:   s.now().Add(InviteExpiryDays * 24 * time.Hour),
	}
	if err := s.invites.Create(ctx, inv); err != nil {
		return nil, storeErr("creating invitation", err)
	}

	recordEvent(ctx, s.logs, newEvent(workspaceID, inviterID, model.WorkspaceEventTypeMemberInvited, map[string]any{
		"invitation_id": inv.ID,
		"email":         email,
		"role":          role,
	}))
	slog.InfoContext(ctx, "invitation created",
		"invitation_id", inv.ID,
		"workspace_id", workspaceID,
		"expires_at", inv.ExpiresAt)

	return s.deliver(ctx, inv), nil
}

func (s *invitationService) ensureNotMember(ctx context.Context, workspaceID int64, email string) error {
	u, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return storeErr("looking up invitee", err)
	}
	role, err := s.authz.ResolveRole(ctx, workspaceID, u.ID)
	if err != nil {
		return err
	}
	if role.HasAccess() {
		return fmt.Errorf("%s is already a member: %w", email, ErrConflict)
	}
	return nil
}

// deliver sends the invite email. Delivery problems become warnings; the
// invite is already stored and can be resent.
func (s *invitationService) deliver(ctx context.Context, inv *model.Invitation) *InviteResult {
	res := &InviteResult{Invitation: inv, AcceptURL: s.acceptURL(inv.Token)}

	if s.mailer == nil {
		res.Warnings = append(res.Warnings, "email delivery is disabled; share the invite link manually")
		return res
	}

	msg := mailer.Invite{
		To:        inv.Email,
		Role:      inv.Role,
		AcceptURL: res.AcceptURL,
		ExpiresAt: inv.ExpiresAt,
	}
	if ws, err := s.workspaces.GetByID(ctx, inv.WorkspaceID); err == nil {
		msg.WorkspaceName = ws.Name
	}
	if u, err := s.users.GetByID(ctx, inv.InvitedBy); err == nil {
		msg.InviterName = u.Name
	}

	if err := s.mailer.SendInvite(ctx, msg); err != nil {
		slog.WarnContext(ctx, "invitation email failed",
			"error", err,
			"invitation_id", inv.ID)
		res.Warnings = append(res.Warnings, "invitation saved but the email could not be sent")
	}
	return res
}

// checkUsable applies the lookup order every token operation shares: expiry
// is computed from ExpiresAt before the stored status is considered.
func (s *invitationService) checkUsable(ctx context.Context, inv *model.Invitation) error {
	if inv.IsExpiredAt(s.now()) {
		if inv.Status == model.InvitationStatusPending {
			s.expire(ctx, inv)
		}
		return ErrExpired
	}
	if inv.Status != model.InvitationStatusPending {
		return ErrAlreadyProcessed
	}
	return nil
}

// expire records a lazily detected expiry. Losing a race with another
// transition is fine.
func (s *invitationService) expire(ctx context.Context, inv *model.Invitation) {
	if _, err := s.invites.Transition(ctx, inv.ID, model.InvitationStatusExpired, nil, nil); err != nil && !errors.Is(err, store.ErrNotFound) {
		slog.WarnContext(ctx, "failed to mark invitation expired",
			"error", err,
			"invitation_id", inv.ID)
	}
}

func (s *invitationService) getByToken(ctx context.Context, token string) (*model.Invitation, error) {
	if token == "" {
		return nil, ErrNotFound
	}
	inv, err := s.invites.GetByToken(ctx, token)
	if err != nil {
		return nil, storeErr("getting invitation", err)
	}
	return inv, nil
}

func (s *invitationService) Preview(ctx context.Context, token string) (*model.Invitation, *model.Workspace, error) {
	inv, err := s.getByToken(ctx, token)
	if err != nil {
		return nil, nil, err
	}
	if err := s.checkUsable(ctx, inv); err != nil {
		return nil, nil, err
	}
	ws, err := s.workspaces.GetByID(ctx, inv.WorkspaceID)
	if err != nil {
		return nil, nil, storeErr("getting workspace", err)
	}
	return inv, ws, nil
}

func (s *invitationService) Accept(ctx context.Context, token string, user *model.User) (*AcceptResult, error) {
	inv, err := s.getByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := s.checkUsable(ctx, inv); err != nil {
		return nil, err
	}
	if !strings.EqualFold(inv.Email, user.Email) {
		slog.WarnContext(ctx, "email mismatch on invitation acceptance",
			"invitation_id", inv.ID,
			"user_id", user.ID)
		return nil, ErrEmailMismatch
	}

	now := s.now()
	var accepted *model.Invitation
	err = s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		var err error
		accepted, err = sp.Invitations().Transition(ctx, inv.ID, model.InvitationStatusAccepted, &now, &user.ID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrAlreadyProcessed
		}
		if err != nil {
			return storeErr("accepting invitation", err)
		}

		ws, err := sp.Workspaces().GetByID(ctx, inv.WorkspaceID)
		if err != nil {
			return storeErr("getting workspace", err)
		}
		if ws.OwnerID != user.ID {
			if _, err := sp.Members().Upsert(ctx, inv.WorkspaceID, user.ID, inv.Role); err != nil {
				return storeErr("adding member", err)
			}
		}

		return sp.WorkspaceEventLogs().Create(ctx, newEvent(inv.WorkspaceID, user.ID, model.WorkspaceEventTypeInviteAccepted, map[string]any{
			"invitation_id": inv.ID,
			"role":          inv.Role,
		}))
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "invitation accepted",
		"invitation_id", inv.ID,
		"workspace_id", inv.WorkspaceID,
		"user_id", user.ID)

	return &AcceptResult{Invitation: accepted, WorkspaceID: inv.WorkspaceID, Role: inv.Role}, nil
}

func (s *invitationService) Reject(ctx context.Context, token string, user *model.User) (*model.Invitation, error) {
	inv, err := s.getByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := s.checkUsable(ctx, inv); err != nil {
		return nil, err
	}
	if !strings.EqualFold(inv.Email, user.Email) {
		return nil, ErrEmailMismatch
	}

	rejected, err := s.invites.Transition(ctx, inv.ID, model.InvitationStatusCancelled, nil, nil)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrAlreadyProcessed
	}
	if err != nil {
		return nil, storeErr("rejecting invitation", err)
	}

	recordEvent(ctx, s.logs, newEvent(inv.WorkspaceID, user.ID, model.WorkspaceEventTypeInviteRejected, map[string]any{
		"invitation_id": inv.ID,
	}))
	return rejected, nil
}

func (s *invitationService) workspaceInvite(ctx context.Context, workspaceID, actorID, inviteID int64) (*model.Invitation, error) {
	if _, err := authorize(ctx, s.authz, workspaceID, actorID, model.Role.CanManageMembers); err != nil {
		return nil, err
	}
	inv, err := s.invites.GetByID(ctx, inviteID)
	if err != nil {
		return nil, storeErr("getting invitation", err)
	}
	if inv.WorkspaceID != workspaceID {
		return nil, ErrNotFound
	}
	return inv, nil
}

func (s *invitationService) Cancel(ctx context.Context, workspaceID, actorID, inviteID int64) (*model.Invitation, error) {
	inv, err := s.workspaceInvite(ctx, workspaceID, actorID, inviteID)
	if err != nil {
		return nil, err
	}
	if inv.Status != model.InvitationStatusPending {
		return nil, ErrAlreadyProcessed
	}

	cancelled, err := s.invites.Transition(ctx, inv.ID, model.InvitationStatusCancelled, nil, nil)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrAlreadyProcessed
	}
	if err != nil {
		return nil, storeErr("cancelling invitation", err)
	}

	recordEvent(ctx, s.logs, newEvent(workspaceID, actorID, model.WorkspaceEventTypeInviteCancelled, map[string]any{
		"invitation_id": inv.ID,
		"email":         inv.Email,
	}))
	return cancelled, nil
}

func (s *invitationService) Resend(ctx context.Context, workspaceID, actorID, inviteID int64) (*InviteResult, error) {
	inv, err := s.workspaceInvite(ctx, workspaceID, actorID, inviteID)
	if err != nil {
		return nil, err
	}
	if err := s.checkUsable(ctx, inv); err != nil {
		return nil, err
	}
	return s.deliver(ctx, inv), nil
}

func (s *invitationService) List(ctx context.Context, workspaceID, actorID int64) ([]model.Invitation, error) {
	if _, err := authorize(ctx, s.authz, workspaceID, actorID, model.Role.CanManageMembers); err != nil {
		return nil, err
	}
	list, err := s.invites.ListPendingByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, storeErr("listing invitations", err)
	}
	return filterValid(list, s.now()), nil
}

func (s *invitationService) ListPendingForUser(ctx context.Context, user *model.User) ([]model.Invitation, error) {
	list, err := s.invites.ListPendingByEmail(ctx, normalizeEmail(user.Email))
	if err != nil {
		return nil, storeErr("listing invitations", err)
	}
	return filterValid(list, s.now()), nil
}

func filterValid(list []model.Invitation, now time.Time) []model.Invitation {
	out := make([]model.Invitation, 0, len(list))
	for _, inv := range list {
		if inv.IsValidAt(now) {
			out = append(out, inv)
		}
	}
	return out
}

func generateSecureToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(bytes), nil
}
