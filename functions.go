// Package superservice holds the function entry points. Each instance builds
// its clients on first use and shares them across invocations. The document
// store is only opened by the user-creation trigger.
package superservice

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	"github.com/cloudevents/sdk-go/v2/event"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"superservice-backend/internal/api"
	"superservice-backend/internal/app"
	"superservice-backend/internal/config"
	"superservice-backend/internal/core"
	"superservice-backend/internal/logger"
	"superservice-backend/internal/models"
)

// AuthEvent is the user-creation trigger payload.
type AuthEvent = models.AuthEvent

// PubSubMessage is the scheduler tick payload.
type PubSubMessage = models.PubSubMessage

func init() {
	functions.HTTP("api", API)
	functions.CloudEvent("onAuthCreate", onAuthCreateEvent)
	functions.CloudEvent("heartbeat", heartbeatEvent)
}

// runtime is what every entry point needs. Building it opens no clients.
type runtime struct {
	config    *config.Config
	logger    *zap.Logger
	echo      http.Handler
	heartbeat core.HeartbeatService
}

var (
	runtimeOnce sync.Once
	shared      *runtime
	sharedErr   error

	appOnce   sync.Once
	sharedApp *app.App
	appErr    error
)

func loadRuntime() (*runtime, error) {
	runtimeOnce.Do(func() {
		cfg, err := config.LoadConfig()
		if err != nil {
			sharedErr = fmt.Errorf("load config: %w", err)
			return
		}
		zapLogger, err := logger.New(cfg.IsRelease(), cfg.LogLevel)
		if err != nil {
			sharedErr = fmt.Errorf("init logger: %w", err)
			return
		}
		shared = newRuntime(cfg, zapLogger)
	})
	return shared, sharedErr
}

func newRuntime(cfg *config.Config, zapLogger *zap.Logger) *runtime {
	gin.SetMode(gin.ReleaseMode)
	return &runtime{
		config:    cfg,
		logger:    zapLogger,
		echo:      api.NewEchoEngine(zapLogger, cfg.MaxBodyBytes),
		heartbeat: core.NewHeartbeatService(zapLogger),
	}
}

// loadApp opens the document store on first use.
func loadApp(rt *runtime) (*app.App, error) {
	appOnce.Do(func() {
		a, err := app.New(context.Background(), rt.config, rt.logger)
		if err != nil {
			appErr = fmt.Errorf("init app: %w", err)
			return
		}
		sharedApp = a
	})
	return sharedApp, appErr
}

// API serves the echo endpoint on every path.
func API(w http.ResponseWriter, r *http.Request) {
	rt, err := loadRuntime()
	if err != nil {
		zap.L().Error("Function runtime unavailable", zap.Error(err))
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Internal Server Error"}`))
		return
	}
	rt.echo.ServeHTTP(w, r)
}

// OnAuthCreate writes the profile document for a newly created user. A
// returned error makes the platform retry the event.
//
// Deployed by name it runs as a background function; the "onAuthCreate"
// CloudEvent registration decodes the event data and calls it.
func OnAuthCreate(ctx context.Context, e AuthEvent) error {
	rt, err := loadRuntime()
	if err != nil {
		return err
	}
	a, err := loadApp(rt)
	if err != nil {
		rt.logger.Error("Document store unavailable", zap.Error(err))
		return err
	}
	if _, err := a.Profiles.HandleUserCreated(ctx, e); err != nil {
		rt.logger.Error("Failed to write user profile", zap.String("uid", e.UID), zap.Error(err))
		return err
	}
	return nil
}

// Heartbeat logs one liveness line per scheduler tick.
//
// Deployed by name it runs as a background function; the "heartbeat"
// CloudEvent registration unwraps the Pub/Sub message and calls it.
func Heartbeat(ctx context.Context, _ PubSubMessage) error {
	rt, err := loadRuntime()
	if err != nil {
		return err
	}
	return rt.heartbeat.Beat(ctx, "schedule")
}

// pubSubEventData is the data of a Pub/Sub CloudEvent.
type pubSubEventData struct {
	Message      PubSubMessage `json:"message"`
	Subscription string        `json:"subscription"`
}

func onAuthCreateEvent(ctx context.Context, e event.Event) error {
	authEvent, err := models.DecodeAuthEvent(e.Data())
	if err != nil {
		return fmt.Errorf("decode %s event %s: %w", e.Type(), e.ID(), err)
	}
	return OnAuthCreate(ctx, authEvent)
}

func heartbeatEvent(ctx context.Context, e event.Event) error {
	var data pubSubEventData
	if err := e.DataAs(&data); err != nil {
		return fmt.Errorf("decode %s event %s: %w", e.Type(), e.ID(), err)
	}
	return Heartbeat(ctx, data.Message)
}
