package db

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"superservice-backend/internal/models"
)

// MemoryProfileRepository is an in-process ProfileRepository with the same
// create and merge semantics as the Firestore implementation.
type MemoryProfileRepository struct {
	mu       sync.Mutex
	profiles map[string]models.UserProfile
	writes   int
	now      func() time.Time
}

// NewMemoryProfileRepository returns an empty repository using the wall clock.
func NewMemoryProfileRepository() *MemoryProfileRepository {
	return &MemoryProfileRepository{
		profiles: make(map[string]models.UserProfile),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the clock used for server-assigned timestamps.
func (r *MemoryProfileRepository) WithClock(now func() time.Time) *MemoryProfileRepository {
	r.now = now
	return r
}

func (r *MemoryProfileRepository) Create(ctx context.Context, profile *models.UserProfile) error {
	if profile.UID == "" {
		return errors.New("profile UID cannot be empty for Create operation")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[profile.UID]; ok {
		return fmt.Errorf("profile '%s': %w", profile.UID, ErrAlreadyExists)
	}
	stored := copyProfile(*profile)
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = r.now()
	}
	r.profiles[profile.UID] = stored
	r.writes++
	return nil
}

func (r *MemoryProfileRepository) Merge(ctx context.Context, uid string, update models.ProfileUpdate) error {
	if uid == "" {
		return errors.New("profile UID cannot be empty for Merge operation")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if update.IsEmpty() {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.profiles[uid]
	if !ok {
		stored = models.UserProfile{UID: uid}
	}
	if update.Email != nil {
		stored.Email = cloneString(update.Email)
	}
	if update.DisplayName != nil {
		stored.DisplayName = cloneString(update.DisplayName)
	}
	if update.PhotoURL != nil {
		stored.PhotoURL = cloneString(update.PhotoURL)
	}
	r.profiles[uid] = stored
	r.writes++
	return nil
}

func (r *MemoryProfileRepository) GetByID(ctx context.Context, uid string) (*models.UserProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.profiles[uid]
	if !ok {
		return nil, fmt.Errorf("profile '%s': %w", uid, ErrNotFound)
	}
	profile := copyProfile(stored)
	return &profile, nil
}

// Writes returns the number of successful writes.
func (r *MemoryProfileRepository) Writes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writes
}

func copyProfile(p models.UserProfile) models.UserProfile {
	p.Email = cloneString(p.Email)
	p.DisplayName = cloneString(p.DisplayName)
	p.PhotoURL = cloneString(p.PhotoURL)
	return p
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
