package routes

import (
	"github.com/amar-295/changelog-hub/internal/handlers"
	"github.com/amar-295/changelog-hub/internal/middleware"
	"github.com/gin-gonic/gin"
)

func RegisterReleaseRoutes(r gin.IRouter) {
	releases := r.Group("/releases")
	releases.Use(middleware.AuthMiddleware())
	{
		releases.POST("", handlers.CreateRelease)
		releases.GET("", handlers.ListReleases)
		releases.GET("/:id", handlers.GetRelease)
		releases.PATCH("/:id", handlers.UpdateRelease)
		releases.DELETE("/:id", handlers.DeleteRelease)

		// Lifecycle transitions; status never changes through PATCH
		releases.POST("/:id/publish", handlers.PublishRelease)
		releases.POST("/:id/unpublish", handlers.UnpublishRelease)
		releases.POST("/:id/archive", handlers.ArchiveRelease)
		releases.POST("/:id/unarchive", handlers.UnarchiveRelease)
	}
}
