package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"funil.app/crm/internal/http/dto"
	"funil.app/crm/internal/model"
	"funil.app/crm/internal/service"
	"github.com/gin-gonic/gin"
)

type WorkspaceHandler struct {
	workspaces service.WorkspaceService
	history    service.HistoryService
}

func NewWorkspaceHandler(workspaces service.WorkspaceService, history service.HistoryService) *WorkspaceHandler {
	return &WorkspaceHandler{workspaces: workspaces, history: history}
}

func (h *WorkspaceHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		badRequest(c, "name is required")
		return
	}

	ws, err := h.workspaces.Create(ctx, currentUser(c).ID, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.WorkspaceResponse{Workspace: ws, Role: model.RoleOwner})
}

func (h *WorkspaceHandler) List(c *gin.Context) {
	list, err := h.workspaces.ListForUser(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	if list == nil {
		list = []model.Workspace{}
	}
	c.JSON(http.StatusOK, gin.H{"workspaces": list})
}

func (h *WorkspaceHandler) Get(c *gin.Context) {
	wsID, ok := workspaceID(c)
	if !ok {
		return
	}

	ws, role, err := h.workspaces.Get(c.Request.Context(), wsID, currentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.WorkspaceResponse{Workspace: ws, Role: role})
}

func (h *WorkspaceHandler) Update(c *gin.Context) {
	wsID, ok := workspaceID(c)
	if !ok {
		return
	}

	var req dto.UpdateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	h.update(c, wsID, service.WorkspaceUpdate{Name: req.Name})
}

// UploadLogo takes a multipart "logo" file.
func (h *WorkspaceHandler) UploadLogo(c *gin.Context) {
	wsID, ok := workspaceID(c)
	if !ok {
		return
	}
	upload, ok := formUpload(c, "logo")
	if !ok {
		return
	}

	h.update(c, wsID, service.WorkspaceUpdate{Logo: upload})
}

func (h *WorkspaceHandler) update(c *gin.Context, wsID int64, in service.WorkspaceUpdate) {
	ws, warnings, err := h.workspaces.Update(c.Request.Context(), wsID, currentUser(c).ID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.WorkspaceResponse{Workspace: ws, Warnings: warnings})
}

func (h *WorkspaceHandler) Members(c *gin.Context) {
	wsID, ok := workspaceID(c)
	if !ok {
		return
	}

	members, err := h.workspaces.ListMembers(c.Request.Context(), wsID, currentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": members})
}

func (h *WorkspaceHandler) ChangeRole(c *gin.Context) {
	wsID, ok := workspaceID(c)
	if !ok {
		return
	}
	targetID, ok := pathID(c, "userID")
	if !ok {
		return
	}

	var req dto.ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "role is required")
		return
	}

	member, err := h.workspaces.ChangeRole(c.Request.Context(), wsID, currentUser(c).ID, targetID, model.Role(req.Role))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

func (h *WorkspaceHandler) RemoveMember(c *gin.Context) {
	wsID, ok := workspaceID(c)
	if !ok {
		return
	}
	targetID, ok := pathID(c, "userID")
	if !ok {
		return
	}

	if err := h.workspaces.RemoveMember(c.Request.Context(), wsID, currentUser(c).ID, targetID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *WorkspaceHandler) TransferOwnership(c *gin.Context) {
	wsID, ok := workspaceID(c)
	if !ok {
		return
	}

	var req dto.TransferOwnershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "user_id is required")
		return
	}

	ws, err := h.workspaces.TransferOwnership(c.Request.Context(), wsID, currentUser(c).ID, req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.WorkspaceResponse{Workspace: ws, Role: model.RoleAdmin})
}

func (h *WorkspaceHandler) Leave(c *gin.Context) {
	wsID, ok := workspaceID(c)
	if !ok {
		return
	}

	if err := h.workspaces.Leave(c.Request.Context(), wsID, currentUser(c).ID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// History accepts an optional ?limit; the service clamps it.
func (h *WorkspaceHandler) History(c *gin.Context) {
	wsID, ok := workspaceID(c)
	if !ok {
		return
	}

	var limit int32
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			badRequest(c, "invalid limit")
			return
		}
		limit = int32(v)
	}

	events, err := h.history.List(c.Request.Context(), wsID, currentUser(c).ID, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	if events == nil {
		events = []model.WorkspaceEventLog{}
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}
