package store

import (
	"context"
	"errors"
	"time"

	"funil.app/crm/internal/model"
)

var (
	// ErrNotFound is returned when a requested entity does not exist
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a write hits a unique constraint
	ErrConflict = errors.New("conflict")
)

type UserStore interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	UpsertByWorkOSID(ctx context.Context, user *model.User) error
	UpdateProfile(ctx context.Context, id int64, name string, position, phone *string) (*model.User, error)
	SetAvatar(ctx context.Context, id int64, avatarURL *string) (*model.User, error)
}

type SessionStore interface {
	GetByID(ctx context.Context, id int64) (*model.Session, error)
	GetValid(ctx context.Context, id int64) (*model.Session, error) // checks expiry
	Create(ctx context.Context, session *model.Session) error
	SetWorkspace(ctx context.Context, id int64, workspaceID *int64) error
	Delete(ctx context.Context, id int64) error
}

type WorkspaceStore interface {
	GetByID(ctx context.Context, id int64) (*model.Workspace, error)
	GetBySlug(ctx context.Context, slug string) (*model.Workspace, error)
	Create(ctx context.Context, ws *model.Workspace) error // ErrConflict on slug
	Update(ctx context.Context, ws *model.Workspace) error
	SetOwner(ctx context.Context, id, expectedOwnerID, ownerID int64) (*model.Workspace, error)
	ListForUser(ctx context.Context, userID int64) ([]model.Workspace, error)
}

type MemberStore interface {
	Get(ctx context.Context, workspaceID, userID int64) (*model.WorkspaceMember, error)
	Upsert(ctx context.Context, workspaceID, userID int64, role model.Role) (*model.WorkspaceMember, error)
	Delete(ctx context.Context, workspaceID, userID int64) error
	List(ctx context.Context, workspaceID int64) ([]model.WorkspaceMember, error)
}

type InvitationStore interface {
	Create(ctx context.Context, inv *model.Invitation) error
	GetByID(ctx context.Context, id int64) (*model.Invitation, error)
	GetByToken(ctx context.Context, token string) (*model.Invitation, error)
	GetPendingByWorkspaceAndEmail(ctx context.Context, workspaceID int64, email string) (*model.Invitation, error)
	// Transition moves a pending invite to status. ErrNotFound means the
	// invite was no longer pending.
	Transition(ctx context.Context, id int64, status model.InvitationStatus, acceptedAt *time.Time, acceptedBy *int64) (*model.Invitation, error)
	ListPendingByWorkspace(ctx context.Context, workspaceID int64) ([]model.Invitation, error)
	ListPendingByEmail(ctx context.Context, email string) ([]model.Invitation, error)
}

type PipelineStore interface {
	// Ensure creates the workspace's pipeline row if missing. Safe under
	// concurrent callers.
	Ensure(ctx context.Context, workspaceID int64) error
	ListStages(ctx context.Context, workspaceID int64) ([]model.StageConfig, error)
	UpsertStage(ctx context.Context, workspaceID int64, stage model.StageSlug, requiredFields []string) (*model.StageConfig, error)
	DeleteStagesExcept(ctx context.Context, workspaceID int64, keep []model.StageSlug) error
	Touch(ctx context.Context, workspaceID int64) error
}

type CustomFieldStore interface {
	Create(ctx context.Context, field *model.CustomField) error
	GetByID(ctx context.Context, id int64) (*model.CustomField, error)
	List(ctx context.Context, workspaceID int64) ([]model.CustomField, error)
	Update(ctx context.Context, field *model.CustomField) error
	Delete(ctx context.Context, id int64) error
}

type LeadStore interface {
	Create(ctx context.Context, lead *model.Lead) error
	GetByID(ctx context.Context, id int64) (*model.Lead, error)
	ListActive(ctx context.Context, workspaceID int64) ([]model.Lead, error)
	ListArchived(ctx context.Context, workspaceID int64) ([]model.Lead, error)
	ListActiveByStage(ctx context.Context, workspaceID int64, stage model.StageSlug) ([]model.Lead, error)
	Update(ctx context.Context, lead *model.Lead) error
	UpdateStage(ctx context.Context, id int64, stage model.StageSlug) (*model.Lead, error)
	// Promote moves the given leads from one stage to another, skipping any
	// that already left from. Returns the leads actually moved.
	Promote(ctx context.Context, workspaceID int64, ids []int64, from, to model.StageSlug) ([]model.Lead, error)
	Archive(ctx context.Context, id int64) (*model.Lead, error)
	Restore(ctx context.Context, id int64) (*model.Lead, error)
}

type CampaignStore interface {
	Create(ctx context.Context, campaign *model.Campaign) error
	GetByID(ctx context.Context, id int64) (*model.Campaign, error)
	List(ctx context.Context, workspaceID int64) ([]model.Campaign, error)
	Update(ctx context.Context, campaign *model.Campaign) error
	ListActiveByTrigger(ctx context.Context, workspaceID int64, stage model.StageSlug) ([]model.Campaign, error)
}

type SuggestionStore interface {
	Upsert(ctx context.Context, batch *model.SuggestionBatch) error
	Get(ctx context.Context, leadID, campaignID int64) (*model.SuggestionBatch, error)
	ListForLead(ctx context.Context, leadID int64) ([]model.SuggestionBatch, error)
	MarkViewed(ctx context.Context, leadID, campaignID int64) error
}

type WorkspaceEventLogStore interface {
	Create(ctx context.Context, log *model.WorkspaceEventLog) error
	ListByWorkspace(ctx context.Context, workspaceID int64, limit int32) ([]model.WorkspaceEventLog, error)
}
