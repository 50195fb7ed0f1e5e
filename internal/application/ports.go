package application

import (
	"context"

	"github.com/shareit/service-shareit/internal/platform/kafka"
)

// Transactor runs fn as one atomic unit of work.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher delivers CloudEvents to a topic.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic string, event kafka.CloudEvent) error
}
