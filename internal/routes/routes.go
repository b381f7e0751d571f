package routes

import (
	"vibenet_backend/internal/handlers"
	"vibenet_backend/internal/logger"

	_ "vibenet_backend/docs"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Options carries what RegisterRoutes needs besides the handlers.
type Options struct {
	// AccessGate guards every user endpoint except register and OTP.
	AccessGate gin.HandlerFunc
	// StaticDir, when set, is served under /static/{container} so local
	// storage URLs resolve.
	StaticDir       string
	StaticContainer string
}

// RegisterRoutes registers every HTTP route.
func RegisterRoutes(router *gin.Engine, appHandlers *handlers.AppHandlers, opts Options) {
	router.GET("/health", appHandlers.HealthHandler.Health)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if opts.StaticDir != "" {
		router.Static("/static/"+opts.StaticContainer, opts.StaticDir)
		logger.Info("Serving local uploads", "dir", opts.StaticDir)
	}

	users := router.Group("/api/users")
	appHandlers.AccountHandler.RegisterRoutes(users)

	gated := users.Group("")
	if opts.AccessGate != nil {
		gated.Use(opts.AccessGate)
	}
	appHandlers.UserHandler.RegisterRoutes(gated)
}
