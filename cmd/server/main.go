package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"superservice-backend/internal/api"
	"superservice-backend/internal/app"
	"superservice-backend/internal/config"
	"superservice-backend/internal/logger"
	"superservice-backend/internal/metrics"
	"superservice-backend/internal/middleware"
	"superservice-backend/internal/schedule"
)

func main() {
	// --- 1. Load .env (local development only) ---
	// In production variables are set directly on the service.
	if os.Getenv("GIN_MODE") != "release" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Println("Warning: Error loading .env file:", err)
		}
	}

	// --- 2. Load Application Configuration ---
	appConfig, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("CRITICAL_ERROR: Failed to load application configuration: %v", err)
	}

	// --- 3. Initialize Logger (Zap) ---
	zapLogger, err := logger.New(appConfig.IsRelease(), appConfig.LogLevel)
	if err != nil {
		log.Fatalf("CRITICAL_ERROR: Failed to initialize Zap logger: %v", err)
	}
	defer zapLogger.Sync() // Flushes buffered entries on exit.
	zapLogger.Info("Application configuration loaded.", zap.String("profileStore", appConfig.ProfileStore))

	// --- 4. Initialize document store, Auth client and services ---
	initCtx, cancelInitCtx := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelInitCtx()
	application, err := app.New(initCtx, appConfig, zapLogger)
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to initialize document store and services", zap.Error(err))
	}
	defer application.Close()

	// --- 5. Metrics registry ---
	registry := prometheus.NewRegistry()
	metrics.RegisterCollectors(registry)

	// --- 6. Setup Gin HTTP Engine ---
	if appConfig.IsRelease() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()

	// --- 7. Apply Global Middleware (order matters) ---
	router.Use(middleware.RequestLogger(zapLogger))     // Log every request; should be early.
	router.Use(middleware.RecoveryMiddleware(zapLogger)) // After the logger so panics are logged with the request.

	// --- 8. Setup API Routes ---
	deps := api.Dependencies{
		Profiles:  application.Profiles,
		Heartbeat: application.Heartbeat,
		Gatherer:  registry,
	}
	if application.AuthClient != nil { // nil with the memory store; /v1 routes are skipped then.
		deps.Verifier = application.AuthClient
	}
	api.SetupRoutes(router, appConfig, zapLogger, deps)

	// --- 9. Heartbeat subscriber (optional) ---
	runCtx, stopRun := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopRun()

	if appConfig.HeartbeatSubscription != "" {
		psClient, subscription, err := schedule.NewSubscription(runCtx, appConfig.FirebaseProjectID, appConfig.HeartbeatSubscription)
		if err != nil {
			zapLogger.Fatal("CRITICAL_ERROR: Failed to open heartbeat subscription", zap.Error(err))
		}
		defer psClient.Close()

		subscriber := schedule.NewSubscriber(subscription, application.Heartbeat, zapLogger)
		go func() {
			zapLogger.Info("Heartbeat subscriber started", zap.String("subscription", appConfig.HeartbeatSubscription))
			if err := subscriber.Run(runCtx); err != nil {
				zapLogger.Error("Heartbeat subscriber stopped", zap.Error(err))
			}
		}()
	}

	// --- 10. Start HTTP Server ---
	serverAddr := fmt.Sprintf(":%s", appConfig.Port)
	httpServer := &http.Server{
		Addr:              serverAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	zapLogger.Info("Starting HTTP server...", zap.String("address", serverAddr), zap.String("ginMode", gin.Mode()))
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// --- 11. Graceful Shutdown ---
	<-runCtx.Done()
	zapLogger.Info("Received shutdown signal")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	zapLogger.Info("Server exiting gracefully.")
}
