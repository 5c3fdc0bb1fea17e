package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"findahand_backend/internal/config"
	"findahand_backend/internal/handlers"
)

// RegisterRoutes registers all HTTP routes.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	authMW gin.HandlerFunc,
	cfg *config.Config,
) {
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Locally stored uploads are served straight from disk. S3-backed
	// deployments return absolute URLs instead, so no static route is
	// needed there.
	if cfg.Storage.Type == "local" || cfg.Storage.Type == "" {
		ginRouter.Static(cfg.Storage.BaseURL, cfg.Storage.BasePath)
	}

	api := ginRouter.Group("/api")
	{
		appHandlers.UserHandler.RegisterRoutes(api, authMW)
		appHandlers.HandymanHandler.RegisterRoutes(api, authMW)
		appHandlers.BookingHandler.RegisterRoutes(api, authMW)
		appHandlers.ReviewHandler.RegisterRoutes(api, authMW)
	}
}
