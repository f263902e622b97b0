// Package schedule receives scheduler ticks published to a Pub/Sub topic and
// turns each of them into one heartbeat.
package schedule

import (
	"context"
	"fmt"

	"cloud.google.com/go/pubsub"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"superservice-backend/internal/core"
)

// Receiver wraps pubsub.Subscription's Receive method.
type Receiver interface {
	Receive(ctx context.Context, f func(context.Context, *pubsub.Message)) error
}

var _ Receiver = &pubsub.Subscription{}

// Subscriber runs the heartbeat for every message received.
type Subscriber struct {
	receiver  Receiver
	heartbeat core.HeartbeatService
	logger    *zap.Logger
}

// NewSubscriber creates a Subscriber.
func NewSubscriber(receiver Receiver, heartbeat core.HeartbeatService, logger *zap.Logger) *Subscriber {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Subscriber{receiver: receiver, heartbeat: heartbeat, logger: logger}
}

// NewSubscription opens a Pub/Sub client and returns the named subscription.
// An empty projectID is detected from the credentials. The caller owns the
// client and must close it.
func NewSubscription(ctx context.Context, projectID, subscriptionID string, opts ...option.ClientOption) (*pubsub.Client, *pubsub.Subscription, error) {
	if projectID == "" {
		projectID = pubsub.DetectProjectID
	}
	client, err := pubsub.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("pubsub.NewClient: %w", err)
	}
	return client, client.Subscription(subscriptionID), nil
}

// Run blocks until ctx is cancelled or the subscription fails. Each message
// is acked after a successful heartbeat and nacked otherwise; redelivery is
// left to Pub/Sub.
func (s *Subscriber) Run(ctx context.Context) error {
	err := s.receiver.Receive(ctx, func(ctx context.Context, m *pubsub.Message) {
		if err := s.heartbeat.Beat(ctx, "pubsub"); err != nil {
			s.logger.Error("Heartbeat from Pub/Sub tick failed", zap.String("message_id", m.ID), zap.Error(err))
			m.Nack()
			return
		}
		m.Ack()
	})
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("heartbeat subscription: %w", err)
	}
	return nil
}
