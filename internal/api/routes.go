package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"superservice-backend/internal/config"
	"superservice-backend/internal/core"
	"superservice-backend/internal/middleware"
)

const echoPath = "/echo"

// Dependencies are the shared, process-wide instances the routes use.
type Dependencies struct {
	Profiles  core.ProfileService
	Heartbeat core.HeartbeatService
	// Verifier enables the authenticated /v1 routes when non-nil.
	Verifier middleware.TokenVerifier
	// Gatherer enables /metrics when non-nil.
	Gatherer prometheus.Gatherer
}

// SetupRoutes configures all the application routes with their handlers and
// middleware. Global middleware (logging, recovery) is expected to be applied
// to the router before this is called.
func SetupRoutes(router *gin.Engine, appConfig *config.Config, logger *zap.Logger, deps Dependencies) {
	echoHandler := NewEchoHandler(logger, appConfig.MaxBodyBytes)
	eventHandler := NewEventHandler(deps.Profiles, deps.Heartbeat, logger)

	// POST /api/echo; every method lands on the handler so it can answer 405.
	publicCORS := middleware.PublicCORS()
	publicGroup := router.Group("/api", publicCORS)
	publicGroup.Any(echoPath, echoHandler.Echo)

	// Any only covers gin's nine standard methods. Others (PROPFIND, LOCK, ...)
	// fall through to NoRoute and must still get CORS headers and a 405.
	router.NoRoute(func(c *gin.Context) {
		if c.Request.URL.Path != "/api"+echoPath {
			return
		}
		publicCORS(c)
		if !c.IsAborted() {
			echoHandler.Echo(c)
		}
	})

	// Push targets for platform triggers.
	router.POST("/events/users.created", eventHandler.UserCreated)
	router.POST("/tasks/heartbeat", eventHandler.Heartbeat)

	if deps.Verifier != nil {
		authMW := middleware.NewAuthMiddleware(deps.Verifier, logger)
		userHandler := NewUserHandler(deps.Profiles, logger)

		v1 := router.Group("/v1")
		if appConfig.ClientURL != "" {
			v1.Use(middleware.ClientCORS(appConfig.ClientURL))
		}
		v1.GET("/users/me", authMW.VerifyToken(), userHandler.GetCurrentUserProfile)
	} else {
		logger.Warn("Authenticated routes SKIPPED: no Firebase Auth client available.")
	}

	if deps.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})

	logger.Info("API routes configured.")
}

// NewEchoEngine returns an engine that serves the echo contract on every
// path. It backs the "api" function entry point.
func NewEchoEngine(logger *zap.Logger, maxBodyBytes int64) *gin.Engine {
	engine := gin.New()
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.RecoveryMiddleware(logger))
	engine.Use(middleware.PublicCORS())
	engine.NoRoute(NewEchoHandler(logger, maxBodyBytes).Echo)
	return engine
}
