package routes

import (
	"github.com/amar-295/changelog-hub/internal/handlers"
	"github.com/amar-295/changelog-hub/internal/middleware"
	"github.com/gin-gonic/gin"
)

// RegisterPublicRoutes configures the unauthenticated changelog pages
// served per workspace subdomain.
func RegisterPublicRoutes(r gin.IRouter) {
	public := r.Group("/public")
	public.Use(middleware.PublicRateLimit())
	{
		public.GET("/:subdomain/releases", handlers.GetPublicReleases)
		public.GET("/:subdomain/releases/:slug", handlers.GetPublicRelease)
	}
}
