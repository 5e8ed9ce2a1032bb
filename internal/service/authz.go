package service

import (
	"context"
	"errors"
	"fmt"

	"funil.app/crm/internal/model"
	"funil.app/crm/internal/store"
)

// Authorizer resolves a user's role in a workspace. Unknown workspaces and
// users resolve to RoleNone; only storage failures are errors.
type Authorizer interface {
	ResolveRole(ctx context.Context, workspaceID, userID int64) (model.Role, error)
	HasAccess(ctx context.Context, workspaceID, userID int64) (bool, error)
}

type authorizer struct {
	workspaces store.WorkspaceStore
	members    store.MemberStore
}

func NewAuthorizer(workspaces store.WorkspaceStore, members store.MemberStore) Authorizer {
	return &authorizer{workspaces: workspaces, members: members}
}

func (a *authorizer) ResolveRole(ctx context.Context, workspaceID, userID int64) (model.Role, error) {
	ws, err := a.workspaces.GetByID(ctx, workspaceID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return model.RoleNone, nil
		}
		return model.RoleNone, fmt.Errorf("getting workspace: %w", err)
	}
	if ws.OwnerID == userID {
		return model.RoleOwner, nil
	}

	m, err := a.members.Get(ctx, workspaceID, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return model.RoleNone, nil
		}
		return model.RoleNone, fmt.Errorf("getting membership: %w", err)
	}
	return m.Role, nil
}

func (a *authorizer) HasAccess(ctx context.Context, workspaceID, userID int64) (bool, error) {
	role, err := a.ResolveRole(ctx, workspaceID, userID)
	if err != nil {
		return false, err
	}
	return role.HasAccess(), nil
}

// authorize fails with ErrForbidden unless allowed accepts the caller's role.
//
//	role, err := authorize(ctx, s.authz, wsID, userID, model.Role.CanManageMembers)
func authorize(ctx context.Context, a Authorizer, workspaceID, userID int64, allowed func(model.Role) bool) (model.Role, error) {
	role, err := a.ResolveRole(ctx, workspaceID, userID)
	if err != nil {
		return model.RoleNone, err
	}
	if !allowed(role) {
		return role, ErrForbidden
	}
	return role, nil
}
