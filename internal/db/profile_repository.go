package db

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"superservice-backend/internal/models"
)

// firestoreProfileRepository implements ProfileRepository using Firestore.
type firestoreProfileRepository struct {
	client     *firestore.Client
	collection string
}

// NewFirestoreProfileRepository returns a repository writing to the given
// collection. The client is shared and safe for concurrent use.
func NewFirestoreProfileRepository(client *firestore.Client, collection string) (ProfileRepository, error) {
	if client == nil {
		return nil, errors.New("firestore client is not initialized for ProfileRepository")
	}
	if collection == "" {
		return nil, errors.New("collection name cannot be empty")
	}
	return &firestoreProfileRepository{client: client, collection: collection}, nil
}

// Create adds the profile document with the UID as document ID. CreatedAt
// is filled server-side through the serverTimestamp tag.
func (r *firestoreProfileRepository) Create(ctx context.Context, profile *models.UserProfile) error {
	if profile.UID == "" {
		return errors.New("profile UID cannot be empty for Create operation")
	}
	_, err := r.client.Collection(r.collection).Doc(profile.UID).Create(ctx, profile)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return fmt.Errorf("profile '%s': %w", profile.UID, ErrAlreadyExists)
		}
		return fmt.Errorf("failed to create profile '%s': %w", profile.UID, err)
	}
	return nil
}

// Merge writes only the supplied fields with Set and MergeAll.
func (r *firestoreProfileRepository) Merge(ctx context.Context, uid string, update models.ProfileUpdate) error {
	if uid == "" {
		return errors.New("profile UID cannot be empty for Merge operation")
	}
	if update.IsEmpty() {
		return nil
	}
	_, err := r.client.Collection(r.collection).Doc(uid).Set(ctx, update.Fields(), firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to merge profile '%s': %w", uid, err)
	}
	return nil
}

// GetByID retrieves a profile document by UID.
func (r *firestoreProfileRepository) GetByID(ctx context.Context, uid string) (*models.UserProfile, error) {
	if uid == "" {
		return nil, errors.New("profile UID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(r.collection).Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("profile '%s': %w", uid, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get profile '%s': %w", uid, err)
	}

	var profile models.UserProfile
	if err := docSnap.DataTo(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile '%s': %w", uid, err)
	}
	profile.UID = docSnap.Ref.ID
	return &profile, nil
}
