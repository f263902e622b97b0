package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"superservice-backend/internal/config"
	"superservice-backend/internal/models"
)

func TestNew_MemoryStore(t *testing.T) {
	cfg := &config.Config{ProfileStore: config.StoreMemory, UsersCollection: "users", MaxBodyBytes: 1024}
	a, err := New(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer a.Close()

	assert.Nil(t, a.AuthClient)
	created, err := a.Profiles.HandleUserCreated(context.Background(), models.AuthEvent{UID: "u1"})
	require.NoError(t, err)
	assert.True(t, created)
	require.NoError(t, a.Heartbeat.Beat(context.Background(), "test"))
}

func TestNew_NilConfig(t *testing.T) {
	_, err := New(context.Background(), nil, nil)
	require.Error(t, err)
}
