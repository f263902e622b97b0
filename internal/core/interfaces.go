package core

import (
	"context"

	"superservice-backend/internal/models"
)

// ProfileService defines the user-profile operations.
type ProfileService interface {
	// HandleUserCreated creates the profile for a new user or merges the
	// supplied fields into an existing one. Returns whether it was created.
	HandleUserCreated(ctx context.Context, event models.AuthEvent) (bool, error)
	GetByID(ctx context.Context, uid string) (*models.UserProfile, error)
}

// HeartbeatService emits the scheduled liveness log line.
type HeartbeatService interface {
	Beat(ctx context.Context, trigger string) error
}
