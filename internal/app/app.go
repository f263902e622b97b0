// Package app constructs the process-wide clients and services shared by the
// HTTP server and the function entry points.
package app

import (
	"context"
	"errors"
	"fmt"

	"firebase.google.com/go/v4/auth"
	"go.uber.org/zap"

	"superservice-backend/internal/config"
	"superservice-backend/internal/core"
	"superservice-backend/internal/db"
)

// App holds the shared instances. All of them are safe for concurrent use.
type App struct {
	Config     *config.Config
	Logger     *zap.Logger
	Profiles   core.ProfileService
	Heartbeat  core.HeartbeatService
	AuthClient *auth.Client // nil when the memory store is used

	closers []func() error
}

// New builds the document store client and the services on top of it.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if cfg == nil {
		return nil, errors.New("app.New: config cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &App{Config: cfg, Logger: logger}

	var repo db.ProfileRepository
	switch cfg.ProfileStore {
	case config.StoreMemory:
		logger.Warn("Using in-memory profile store; profiles are lost on restart.")
		repo = db.NewMemoryProfileRepository()
	default:
		fbApp, err := db.NewFirebaseApp(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		fsClient, err := fbApp.Firestore(ctx)
		if err != nil {
			return nil, fmt.Errorf("app.Firestore: %w", err)
		}
		a.closers = append(a.closers, fsClient.Close)

		authClient, err := fbApp.Auth(ctx)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("app.Auth: %w", err)
		}
		a.AuthClient = authClient

		repo, err = db.NewFirestoreProfileRepository(fsClient, cfg.UsersCollection)
		if err != nil {
			a.Close()
			return nil, err
		}
		logger.Info("Firestore and Firebase Auth clients initialized.", zap.String("collection", cfg.UsersCollection))
	}

	a.Profiles = core.NewProfileService(repo, logger)
	a.Heartbeat = core.NewHeartbeatService(logger)
	return a, nil
}

// Close releases the store clients.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
