package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"funil.app/crm/common"
	"funil.app/crm/common/id"
	"funil.app/crm/internal/model"
	"funil.app/crm/internal/store"
)

const maxSlugAttempts = 50

// Upload is a file sent along with a profile or workspace edit.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// AssetUploader stores a public asset and returns its URL.
type AssetUploader interface {
	Upload(ctx context.Context, bucket, objectPath string, data []byte, contentType string) (string, error)
}

type WorkspaceUpdate struct {
	Name *string
	Logo *Upload
}

type WorkspaceService interface {
	Create(ctx context.Context, ownerID int64, name string) (*model.Workspace, error)
	Get(ctx context.Context, workspaceID, userID int64) (*model.Workspace, model.Role, error)
	// Update applies name and logo changes. A failed logo upload leaves the
	// rest of the update in place and is reported as a warning.
	Update(ctx context.Context, workspaceID, actorID int64, in WorkspaceUpdate) (*model.Workspace, []string, error)
	ListForUser(ctx context.Context, userID int64) ([]model.Workspace, error)
	// ListMembers returns the owner first, then admin and member rows.
	ListMembers(ctx context.Context, workspaceID, userID int64) ([]model.WorkspaceMember, error)
	ChangeRole(ctx context.Context, workspaceID, actorID, targetID int64, role model.Role) (*model.WorkspaceMember, error)
	TransferOwnership(ctx context.Context, workspaceID, actorID, newOwnerID int64) (*model.Workspace, error)
	RemoveMember(ctx context.Context, workspaceID, actorID, targetID int64) error
	Leave(ctx context.Context, workspaceID, userID int64) error
}

type workspaceService struct {
	authz      Authorizer
	workspaces store.WorkspaceStore
	members    store.MemberStore
	users      store.UserStore
	logs       store.WorkspaceEventLogStore
	txRunner   TxRunner
	uploader   AssetUploader
	logoBucket string
}

func NewWorkspaceService(
	authz Authorizer,
	workspaces store.WorkspaceStore,
	members store.MemberStore,
	users store.UserStore,
	logs store.WorkspaceEventLogStore,
	txRunner TxRunner,
	uploader AssetUploader,
	logoBucket string,
) WorkspaceService {
	return &workspaceService{
		authz:      authz,
		workspaces: workspaces,
		members:    members,
		users:      users,
		logs:       logs,
		txRunner:   txRunner,
		uploader:   uploader,
		logoBucket: logoBucket,
	}
}

// Create inserts the workspace under the first free slug. Uniqueness is
// enforced by the slugs index, so two concurrent creations of "Acme" end up
// as acme and acme-1.
func (s *workspaceService) Create(ctx context.Context, ownerID int64, name string) (*model.Workspace, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalidInput("workspace name is required")
	}

	base, err := common.Slugify(name, "workspace")
	if err != nil {
		return nil, invalidInput("workspace name has no usable characters")
	}

	for n := 0; n < maxSlugAttempts; n++ {
		ws := &model.Workspace{
			ID:      id.New(),
			OwnerID: ownerID,
			Name:    name,
			Slug:    common.WithSuffix(base, n),
		}
		err := s.workspaces.Create(ctx, ws)
		if errors.Is(err, store.ErrConflict) {
			continue
		}
		if err != nil {
			slog.ErrorContext(ctx, "failed to create workspace",
				"error", err,
				"owner_id", ownerID)
			return nil, fmt.Errorf("creating workspace: %w", err)
		}

		recordEvent(ctx, s.logs, newEvent(ws.ID, ownerID, model.WorkspaceEventTypeCreated, map[string]any{
			"name": ws.Name,
			"slug": ws.Slug,
		}))
		slog.InfoContext(ctx, "workspace created",
			"workspace_id", ws.ID,
			"slug", ws.Slug,
			"owner_id", ownerID)
		return ws, nil
	}

	return nil, fmt.Errorf("no free slug for %q: %w", base, ErrConflict)
}

func (s *workspaceService) Get(ctx context.Context, workspaceID, userID int64) (*model.Workspace, model.Role, error) {
	role, err := authorize(ctx, s.authz, workspaceID, userID, model.Role.HasAccess)
	if err != nil {
		return nil, role, err
	}
	ws, err := s.workspaces.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, role, storeErr("getting workspace", err)
	}
	return ws, role, nil
}

func (s *workspaceService) Update(ctx context.Context, workspaceID, actorID int64, in WorkspaceUpdate) (*model.Workspace, []string, error) {
	if _, err := authorize(ctx, s.authz, workspaceID, actorID, model.Role.CanEditWorkspace); err != nil {
		return nil, nil, err
	}
	ws, err := s.workspaces.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, nil, storeErr("getting workspace", err)
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, nil, invalidInput("workspace name is required")
		}
		ws.Name = name
	}

	var warnings []string
	if in.Logo != nil {
		url, err := s.uploadLogo(ctx, ws.ID, in.Logo)
		if err != nil {
			slog.WarnContext(ctx, "workspace logo upload failed",
				"error", err,
				"workspace_id", ws.ID)
			warnings = append(warnings, "logo upload failed; the other changes were saved")
		} else {
			ws.LogoURL = &url
		}
	}

	if err := s.workspaces.Update(ctx, ws); err != nil {
		return nil, nil, storeErr("updating workspace", err)
	}

	recordEvent(ctx, s.logs, newEvent(ws.ID, actorID, model.WorkspaceEventTypeUpdated, map[string]any{
		"name": ws.Name,
	}))
	return ws, warnings, nil
}

func (s *workspaceService) uploadLogo(ctx context.Context, workspaceID int64, logo *Upload) (string, error) {
	if s.uploader == nil {
		return "", fmt.Errorf("storage disabled: %w", ErrExternalService)
	}
	objectPath := fmt.Sprintf("%d/logo%s", workspaceID, path.Ext(logo.Filename))
	url, err := s.uploader.Upload(ctx, s.logoBucket, objectPath, logo.Data, logo.ContentType)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrExternalService, err)
	}
	return url, nil
}

func (s *workspaceService) ListForUser(ctx context.Context, userID int64) ([]model.Workspace, error) {
	list, err := s.workspaces.ListForUser(ctx, userID)
	if err != nil {
		return nil, storeErr("listing workspaces", err)
	}
	return list, nil
}

func (s *workspaceService) ListMembers(ctx context.Context, workspaceID, userID int64) ([]model.WorkspaceMember, error) {
	if _, err := authorize(ctx, s.authz, workspaceID, userID, model.Role.HasAccess); err != nil {
		return nil, err
	}
	ws, err := s.workspaces.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, storeErr("getting workspace", err)
	}
	rows, err := s.members.List(ctx, workspaceID)
	if err != nil {
		return nil, storeErr("listing members", err)
	}

	owner := model.WorkspaceMember{
		WorkspaceID: ws.ID,
		UserID:      ws.OwnerID,
		Role:        model.RoleOwner,
		CreatedAt:   ws.CreatedAt,
		UpdatedAt:   ws.UpdatedAt,
	}
	if u, err := s.users.GetByID(ctx, ws.OwnerID); err == nil {
		owner.UserName = u.Name
		owner.UserEmail = u.Email
		owner.UserAvatarURL = u.AvatarURL
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, storeErr("getting owner", err)
	}

	out := make([]model.WorkspaceMember, 0, len(rows)+1)
	out = append(out, owner)
	for _, m := range rows {
		// a stale owner row is shadowed by OwnerID
		if m.UserID == ws.OwnerID {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (s *workspaceService) ChangeRole(ctx context.Context, workspaceID, actorID, targetID int64, role model.Role) (*model.WorkspaceMember, error) {
	if _, err := authorize(ctx, s.authz, workspaceID, actorID, model.Role.CanManageMembers); err != nil {
		return nil, err
	}
	if role != model.RoleAdmin && role != model.RoleMember {
		return nil, ErrInvalidRole
	}

	ws, err := s.workspaces.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, storeErr("getting workspace", err)
	}
	if targetID == ws.OwnerID {
		return nil, ErrForbidden
	}

	current, err := s.members.Get(ctx, workspaceID, targetID)
	if err != nil {
		return nil, storeErr("getting membership", err)
	}
	if current.Role == role {
		return current, nil
	}

	updated, err := s.members.Upsert(ctx, workspaceID, targetID, role)
	if err != nil {
		return nil, storeErr("updating membership", err)
	}

	recordEvent(ctx, s.logs, newEvent(workspaceID, actorID, model.WorkspaceEventTypeMemberRoleChanged, map[string]any{
		"user_id":  targetID,
		"old_role": current.Role,
		"new_role": role,
	}))
	slog.InfoContext(ctx, "member role changed",
		"workspace_id", workspaceID,
		"user_id", targetID,
		"role", role)
	return updated, nil
}

// TransferOwnership swaps the owner in one transaction: OwnerID moves to the
// new owner, the former owner becomes an admin, and the new owner's
// membership row is dropped.
func (s *workspaceService) TransferOwnership(ctx context.Context, workspaceID, actorID, newOwnerID int64) (*model.Workspace, error) {
	ws, err := s.workspaces.GetByID(ctx, workspaceID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrForbidden
		}
		return nil, storeErr("getting workspace", err)
	}
	if ws.OwnerID != actorID {
		return nil, ErrForbidden
	}
	if newOwnerID == actorID {
		return nil, invalidInput("user already owns the workspace")
	}

	var updated *model.Workspace
	err = s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		if _, err := sp.Members().Get(ctx, workspaceID, newOwnerID); err != nil {
			return storeErr("getting new owner membership", err)
		}

		var err error
		updated, err = sp.Workspaces().SetOwner(ctx, workspaceID, actorID, newOwnerID)
		if errors.Is(err, store.ErrNotFound) {
			// a concurrent transfer already moved ownership away from actorID
			return ErrForbidden
		}
		if err != nil {
			return storeErr("setting owner", err)
		}
		if _, err := sp.Members().Upsert(ctx, workspaceID, actorID, model.RoleAdmin); err != nil {
			return storeErr("demoting former owner", err)
		}
		if err := sp.Members().Delete(ctx, workspaceID, newOwnerID); err != nil {
			return storeErr("removing new owner membership", err)
		}
		return sp.WorkspaceEventLogs().Create(ctx, newEvent(workspaceID, actorID, model.WorkspaceEventTypeOwnershipTransferred, map[string]any{
			"from_user_id": actorID,
			"to_user_id":   newOwnerID,
		}))
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "workspace ownership transferred",
		"workspace_id", workspaceID,
		"from_user_id", actorID,
		"to_user_id", newOwnerID)
	return updated, nil
}

func (s *workspaceService) RemoveMember(ctx context.Context, workspaceID, actorID, targetID int64) error {
	if _, err := authorize(ctx, s.authz, workspaceID, actorID, model.Role.CanManageMembers); err != nil {
		return err
	}
	ws, err := s.workspaces.GetByID(ctx, workspaceID)
	if err != nil {
		return storeErr("getting workspace", err)
	}
	if targetID == ws.OwnerID {
		return ErrForbidden
	}

	if err := s.members.Delete(ctx, workspaceID, targetID); err != nil {
		return storeErr("removing member", err)
	}

	recordEvent(ctx, s.logs, newEvent(workspaceID, actorID, model.WorkspaceEventTypeMemberRemoved, map[string]any{
		"user_id": targetID,
	}))
	slog.InfoContext(ctx, "member removed",
		"workspace_id", workspaceID,
		"user_id", targetID)
	return nil
}

// Leave removes the caller's own membership. The owner must transfer
// ownership first.
func (s *workspaceService) Leave(ctx context.Context, workspaceID, userID int64) error {
	ws, err := s.workspaces.GetByID(ctx, workspaceID)
	if err != nil {
		return storeErr("getting workspace", err)
	}
	if ws.OwnerID == userID {
		return ErrForbidden
	}

	if err := s.members.Delete(ctx, workspaceID, userID); err != nil {
		return storeErr("leaving workspace", err)
	}

	recordEvent(ctx, s.logs, newEvent(workspaceID, userID, model.WorkspaceEventTypeMemberLeft, nil))
	return nil
}
