package routes

import (
	"github.com/amar-295/changelog-hub/internal/handlers"
	"github.com/amar-295/changelog-hub/internal/middleware"
	"github.com/gin-gonic/gin"
)

func RegisterWorkspaceRoutes(r gin.IRouter) {
	workspace := r.Group("/workspace")
	workspace.Use(middleware.AuthMiddleware())
	{
		workspace.GET("", handlers.GetWorkspace)
		workspace.PATCH("", handlers.UpdateWorkspace)
	}
}
