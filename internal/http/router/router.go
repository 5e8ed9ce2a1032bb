package router

import (
	"funil.app/crm/internal/http/handler"
	"funil.app/crm/internal/http/middleware"
	"funil.app/crm/internal/service"
	"github.com/gin-gonic/gin"
)

type RouterConfig struct {
	IsProduction bool
}

func SetupRoutes(router *gin.Engine, services *service.Services, cfg RouterConfig) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	authService := services.Auth()
	requireAuth := middleware.RequireAuth(authService)

	authHandler := handler.NewAuthHandler(authService, services.Invitations(), cfg.IsProduction)
	AuthRouter(router.Group("/auth"), requireAuth, authHandler)

	v1 := router.Group("/api/v1")

	invitationHandler := handler.NewInvitationHandler(services.Invitations())
	v1.GET("/invites/:token", invitationHandler.Preview)

	authed := v1.Group("")
	authed.Use(requireAuth)
	{
		userHandler := handler.NewUserHandler(services.Users(), services.Invitations(), services.Onboarding())
		UserRouter(authed.Group("/me"), userHandler)

		InviteTokenRouter(authed.Group("/invites/:token"), invitationHandler)

		workspaces := authed.Group("/workspaces")
		workspaceHandler := handler.NewWorkspaceHandler(services.Workspaces(), services.History())
		WorkspaceRouter(workspaces, workspaceHandler)

		scoped := workspaces.Group("/:workspaceID")
		InvitationRouter(scoped.Group("/invites"), invitationHandler)
		PipelineRouter(scoped, handler.NewPipelineHandler(services.Pipelines(), services.CustomFields()))
		LeadRouter(scoped.Group("/leads"),
			handler.NewLeadHandler(services.Leads(), services.Promotions()),
			handler.NewOutreachHandler(services.Outreach()),
		)
		CampaignRouter(scoped.Group("/campaigns"), handler.NewCampaignHandler(services.Campaigns()))
	}
}
