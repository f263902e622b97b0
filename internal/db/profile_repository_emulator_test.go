package db

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"superservice-backend/internal/models"
)

// Runs against the Firestore emulator only:
//
//	gcloud emulators firestore start --host-port=localhost:8681
//	FIRESTORE_EMULATOR_HOST=localhost:8681 go test ./internal/db/...
func newEmulatorRepository(t *testing.T) ProfileRepository {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set; skipping Firestore emulator test")
	}

	ctx := context.Background()
	client, err := firestore.NewClient(ctx, "demo-superservice")
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	collection := fmt.Sprintf("users_test_%d", time.Now().UnixNano())
	repo, err := NewFirestoreProfileRepository(client, collection)
	require.NoError(t, err)
	return repo
}

func TestFirestoreProfileRepository_CreateMergeGet(t *testing.T) {
	repo := newEmulatorRepository(t)
	ctx := context.Background()

	email := "a@b.com"
	require.NoError(t, repo.Create(ctx, &models.UserProfile{UID: "u1", Email: &email, Plan: models.DefaultPlan}))

	got, err := repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UID)
	assert.False(t, got.CreatedAt.IsZero(), "createdAt is assigned by the server")
	assert.Equal(t, "a@b.com", *got.Email)
	assert.Nil(t, got.DisplayName)
	assert.Nil(t, got.PhotoURL)
	assert.Equal(t, "free", got.Plan)

	err = repo.Create(ctx, &models.UserProfile{UID: "u1", Plan: "pro"})
	assert.True(t, errors.Is(err, ErrAlreadyExists))

	newEmail := "c@d.com"
	require.NoError(t, repo.Merge(ctx, "u1", models.ProfileUpdate{Email: &newEmail}))

	merged, err := repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "c@d.com", *merged.Email)
	assert.Equal(t, "free", merged.Plan)
	assert.True(t, got.CreatedAt.Equal(merged.CreatedAt))

	_, err = repo.GetByID(ctx, "missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}
