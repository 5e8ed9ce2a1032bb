package router

import (
	"funil.app/crm/internal/http/handler"
	"github.com/gin-gonic/gin"
)

// InvitationRouter serves the workspace-scoped invite management routes.
func InvitationRouter(rg *gin.RouterGroup, h *handler.InvitationHandler) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.POST("/:inviteID/cancel", h.Cancel)
	rg.POST("/:inviteID/resend", h.Resend)
}

// InviteTokenRouter serves the invitee's side. The preview route is public
// and registered separately.
func InviteTokenRouter(rg *gin.RouterGroup, h *handler.InvitationHandler) {
	rg.POST("/accept", h.Accept)
	rg.POST("/reject", h.Reject)
}
