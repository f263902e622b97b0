package core

import (
	"context"

	"go.uber.org/zap"

	"superservice-backend/internal/metrics"
)

// HeartbeatMessage is the line logged on every scheduler tick.
const HeartbeatMessage = "superservice heartbeat"

type heartbeatService struct {
	logger *zap.Logger
}

// NewHeartbeatService creates a HeartbeatService that logs through logger.
func NewHeartbeatService(logger *zap.Logger) HeartbeatService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &heartbeatService{logger: logger}
}

// Beat logs exactly one line. It never touches the document store.
func (s *heartbeatService) Beat(ctx context.Context, trigger string) error {
	s.logger.Info(HeartbeatMessage, zap.String("trigger", trigger))
	metrics.Heartbeats.WithLabelValues(trigger).Inc()
	return nil
}
