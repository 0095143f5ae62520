package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/yungbote/readnest-backend/internal/http/handlers"
	"github.com/yungbote/readnest-backend/internal/http/middleware"
	"github.com/yungbote/readnest-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	AuthHandler    *handlers.AuthHandler
	BookHandler    *handlers.BookHandler
	UserHandler    *handlers.UserHandler
	AuthMiddleware *middleware.AuthMiddleware
	AllowOrigins   []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.AttachTraceContext())
	router.Use(otelgin.Middleware("readnest-backend"))
	router.Use(middleware.RequestLogger(cfg.Log))

	allowOrigins := cfg.AllowOrigins
	if len(allowOrigins) == 0 {
		allowOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/register", cfg.AuthHandler.Register)
	router.POST("/login", cfg.AuthHandler.Login)
	router.GET("/", cfg.BookHandler.List)
	router.GET("/book/:id", cfg.BookHandler.Detail)

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	protected.POST("/logout", cfg.AuthHandler.Logout)
	protected.POST("/book/:id/like", cfg.BookHandler.Like)
	protected.GET("/user/:idOrUsername", cfg.UserHandler.Get)
	protected.GET("/user/:idOrUsername/bookshelf", cfg.UserHandler.Bookshelf)
	protected.DELETE("/user/:idOrUsername", cfg.UserHandler.Delete)

	return router
}
