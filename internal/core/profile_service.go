package core

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"superservice-backend/internal/db"
	"superservice-backend/internal/metrics"
	"superservice-backend/internal/models"
)

var (
	// ErrUserNotFound is returned when a profile does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidEvent is returned for trigger payloads without a UID.
	ErrInvalidEvent = errors.New("invalid user event")
)

// profileService implements the ProfileService interface.
type profileService struct {
	repo   db.ProfileRepository
	logger *zap.Logger
}

// NewProfileService creates a new ProfileService instance.
func NewProfileService(repo db.ProfileRepository, logger *zap.Logger) ProfileService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &profileService{repo: repo, logger: logger}
}

// HandleUserCreated tries to create the profile with defaults first. If the
// document already exists the optional fields that were supplied are merged
// instead, so plan and createdAt survive redelivery of the same event.
func (s *profileService) HandleUserCreated(ctx context.Context, event models.AuthEvent) (bool, error) {
	if event.UID == "" {
		return false, fmt.Errorf("%w: uid is required", ErrInvalidEvent)
	}

	update := event.ProfileUpdate()
	profile := &models.UserProfile{
		UID:         event.UID,
		Email:       update.Email,
		DisplayName: update.DisplayName,
		PhotoURL:    update.PhotoURL,
		Plan:        models.DefaultPlan,
	}

	err := s.repo.Create(ctx, profile)
	if err == nil {
		metrics.ProfileWrites.WithLabelValues("created").Inc()
		s.logger.Info("User profile created", zap.String("uid", event.UID))
		return true, nil
	}
	if !errors.Is(err, db.ErrAlreadyExists) {
		metrics.ProfileWrites.WithLabelValues("error").Inc()
		return false, fmt.Errorf("failed to create profile for user '%s': %w", event.UID, err)
	}

	if err := s.repo.Merge(ctx, event.UID, update); err != nil {
		metrics.ProfileWrites.WithLabelValues("error").Inc()
		return false, fmt.Errorf("failed to merge profile for user '%s': %w", event.UID, err)
	}
	metrics.ProfileWrites.WithLabelValues("merged").Inc()
	s.logger.Info("User profile already existed, merged supplied fields", zap.String("uid", event.UID))
	return false, nil
}

// GetByID retrieves a profile by UID.
func (s *profileService) GetByID(ctx context.Context, uid string) (*models.UserProfile, error) {
	profile, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: user with ID '%s'", ErrUserNotFound, uid)
		}
		return nil, fmt.Errorf("failed to get profile '%s' from repository: %w", uid, err)
	}
	return profile, nil
}
