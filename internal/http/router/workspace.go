package router

import (
	"funil.app/crm/internal/http/handler"
	"github.com/gin-gonic/gin"
)

func WorkspaceRouter(rg *gin.RouterGroup, h *handler.WorkspaceHandler) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/:workspaceID", h.Get)
	rg.PATCH("/:workspaceID", h.Update)
	rg.POST("/:workspaceID/logo", h.UploadLogo)
	rg.GET("/:workspaceID/members", h.Members)
	rg.PATCH("/:workspaceID/members/:userID", h.ChangeRole)
	rg.DELETE("/:workspaceID/members/:userID", h.RemoveMember)
	rg.POST("/:workspaceID/transfer-ownership", h.TransferOwnership)
	rg.POST("/:workspaceID/leave", h.Leave)
	rg.GET("/:workspaceID/history", h.History)
}
