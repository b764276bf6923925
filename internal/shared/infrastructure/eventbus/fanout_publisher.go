package eventbus

import (
	"context"
	"errors"
	"log/slog"
)

// FanoutPublisher publishes each message to every inner publisher. A
// failing publisher does not stop delivery to the others; the first error
// is returned after all have been tried.
type FanoutPublisher struct {
	publishers []Publisher
	logger     *slog.Logger
}

// NewFanoutPublisher creates a publisher that fans out to all inner
// publishers.
func NewFanoutPublisher(logger *slog.Logger, publishers ...Publisher) *FanoutPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &FanoutPublisher{publishers: publishers, logger: logger}
}

// Publish sends the message to every inner publisher.
func (p *FanoutPublisher) Publish(ctx context.Context, routingKey string, payload []byte) error {
	var errs []error
	for _, inner := range p.publishers {
		if err := inner.Publish(ctx, routingKey, payload); err != nil {
			p.logger.Warn("fanout publish failed",
				"routing_key", routingKey,
				"error", err,
			)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes every inner publisher.
func (p *FanoutPublisher) Close() error {
	var errs []error
	for _, inner := range p.publishers {
		if err := inner.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
