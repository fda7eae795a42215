package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dishahq/disha/internal/middleware"
	"github.com/dishahq/disha/internal/service"
)

type RouterDeps struct {
	Auth      *AuthHandler
	Listings  *ListingHandler
	Recommend *RecommendHandler
	Admin     *AdminHandler
	JWTSecret []byte
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.GET("/", deps.Listings.Status)
	api.POST("/auth/login", deps.Auth.Login)

	api.GET("/internships", deps.Listings.List)
	api.GET("/internships/:id", deps.Listings.Get)
	api.POST("/recommend", middleware.RateLimit(time.Second), deps.Recommend.Recommend)

	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.JWTAuth(deps.JWTSecret), middleware.RequireRole(service.RoleAdmin))
	adminGroup.POST("/catalog/refresh", deps.Admin.RefreshCatalog)
	adminGroup.POST("/catalog/import", deps.Admin.ImportCatalog)
	adminGroup.POST("/embeddings/sync", deps.Admin.SyncEmbeddings)
}
