package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range append(append(keys, projectEnvVars...), "CONFIG_FILE") {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("PROFILE_STORE", "memory")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "debug", cfg.GinMode)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, StoreMemory, cfg.ProfileStore)
	assert.Equal(t, "users", cfg.UsersCollection)
	assert.Equal(t, int64(100*1024), cfg.MaxBodyBytes)
	assert.False(t, cfg.IsRelease())
}

func TestLoadConfig_FirestoreWithoutProject(t *testing.T) {
	clearEnv(t)

	// The project is detected from credentials later, so config alone loads.
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, StoreFirestore, cfg.ProfileStore)
	assert.Empty(t, cfg.FirebaseProjectID)

	t.Setenv("FIREBASE_PROJECT_ID", "demo-superservice")
	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "demo-superservice", cfg.FirebaseProjectID)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PROFILE_STORE", "Memory")
	t.Setenv("PORT", "9090")
	t.Setenv("GIN_MODE", "release")
	t.Setenv("USERS_COLLECTION", "profiles")
	t.Setenv("HEARTBEAT_SUBSCRIPTION", "heartbeat-sub")
	t.Setenv("FIREBASE_PROJECT_ID", "demo-superservice")
	t.Setenv("MAX_BODY_BYTES", "2048")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.IsRelease())
	assert.Equal(t, StoreMemory, cfg.ProfileStore)
	assert.Equal(t, "profiles", cfg.UsersCollection)
	assert.Equal(t, "heartbeat-sub", cfg.HeartbeatSubscription)
	assert.Equal(t, int64(2048), cfg.MaxBodyBytes)
}

func TestLoadConfig_SubscriptionWithoutProject(t *testing.T) {
	clearEnv(t)
	t.Setenv("PROFILE_STORE", "memory")
	t.Setenv("HEARTBEAT_SUBSCRIPTION", "heartbeat-sub")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "heartbeat-sub", cfg.HeartbeatSubscription)
	assert.Empty(t, cfg.FirebaseProjectID)
}

func TestLoadConfig_ProjectFromRuntime(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_CLOUD_PROJECT", "runtime-project")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "runtime-project", cfg.FirebaseProjectID)

	t.Setenv("FIREBASE_PROJECT_ID", "explicit-project")
	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "explicit-project", cfg.FirebaseProjectID)

	t.Setenv("FIREBASE_PROJECT_ID", "")
	os.Unsetenv("FIREBASE_PROJECT_ID")
	os.Unsetenv("GOOGLE_CLOUD_PROJECT")
	t.Setenv("GCLOUD_PROJECT", "legacy-project")
	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "legacy-project", cfg.FirebaseProjectID)
}

func TestLoadConfig_UnknownStore(t *testing.T) {
	clearEnv(t)
	t.Setenv("PROFILE_STORE", "postgres")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PROFILE_STORE")
}

func TestLoadConfig_ConfigFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "superservice.yaml")
	require.NoError(t, os.WriteFile(path, []byte("PROFILE_STORE: memory\nPORT: \"7070\"\nCLIENT_URL: https://app.example.com\n"), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "6060")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, StoreMemory, cfg.ProfileStore)
	assert.Equal(t, "https://app.example.com", cfg.ClientURL)
	assert.Equal(t, "6060", cfg.Port, "environment wins over the config file")
}
