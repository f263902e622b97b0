package db

import (
	"context"
	"errors"

	"superservice-backend/internal/models"
)

var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrAlreadyExists is returned by Create when the document exists.
	ErrAlreadyExists = errors.New("document already exists")
)

// ProfileRepository defines the storage operations for user profiles.
// Implementations must be safe for concurrent use.
type ProfileRepository interface {
	// Create writes a new profile document. A zero CreatedAt is replaced by
	// the store's clock. Returns ErrAlreadyExists if the document exists.
	Create(ctx context.Context, profile *models.UserProfile) error
	// Merge overwrites only the supplied fields of the document, creating
	// it when missing.
	Merge(ctx context.Context, uid string, update models.ProfileUpdate) error
	// GetByID returns ErrNotFound if the document does not exist.
	GetByID(ctx context.Context, uid string) (*models.UserProfile, error)
}
