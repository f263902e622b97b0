package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestHeartbeat_LogsOnce(t *testing.T) {
	obsCore, logs := observer.New(zapcore.DebugLevel)
	svc := NewHeartbeatService(zap.New(obsCore))

	require.NoError(t, svc.Beat(context.Background(), "test"))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "superservice heartbeat", entries[0].Message)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "test", entries[0].ContextMap()["trigger"])
}
