package router

import (
	"funil.app/crm/internal/http/handler"
	"github.com/gin-gonic/gin"
)

func AuthRouter(rg *gin.RouterGroup, requireAuth gin.HandlerFunc, h *handler.AuthHandler) {
	rg.GET("/url", h.GetAuthURL)
	rg.POST("/exchange", h.Exchange)
	rg.POST("/logout", h.Logout)

	session := rg.Group("/session", requireAuth)
	{
		session.GET("", h.Session)
		session.PUT("/workspace", h.SelectWorkspace)
	}
}
