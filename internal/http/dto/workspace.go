package dto

import "funil.app/crm/internal/model"

type CreateWorkspaceRequest struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
}

type UpdateWorkspaceRequest struct {
	Name *string `json:"name,omitempty" binding:"omitempty,min=1,max=255"`
}

type WorkspaceResponse struct {
	Workspace *model.Workspace `json:"workspace"`
	Role      model.Role       `json:"role,omitempty"`
	Warnings  []string         `json:"warnings,omitempty"`
}

type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

type TransferOwnershipRequest struct {
	UserID int64 `json:"user_id" binding:"required"`
}
