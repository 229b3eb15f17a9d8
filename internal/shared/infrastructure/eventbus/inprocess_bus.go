package eventbus

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/felixgeelhaar/eventboard/internal/shared/domain"
)

// InProcessEventBus delivers events synchronously to consumers in the same
// process. It stands in for RabbitMQ when no broker is configured, using the
// same topic patterns so consumers work unchanged on either.
type InProcessEventBus struct {
	registry *ConsumerRegistry
	logger   *slog.Logger

	// Dispatch is serialized so consumers see events in publish order.
	mu sync.Mutex
}

// NewInProcessEventBus creates a bus with an empty registry.
func NewInProcessEventBus(logger *slog.Logger) *InProcessEventBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &InProcessEventBus{
		registry: NewConsumerRegistry(logger),
		logger:   logger,
	}
}

// RegisterConsumer binds consumer to its event type patterns.
func (b *InProcessEventBus) RegisterConsumer(consumer EventConsumer) {
	b.registry.Register(consumer)
}

// Publish decodes a wire envelope and dispatches it before returning.
// Malformed payloads and consumer failures are logged, never returned, so a
// broken consumer cannot fail the write that produced the event.
func (b *InProcessEventBus) Publish(ctx context.Context, routingKey string, payload []byte) error {
	event, err := DecodeEnvelope(routingKey, payload)
	if err != nil {
		b.logger.Error("dropping malformed event", "error", err)
		return nil
	}
	b.dispatch(ctx, event)
	return nil
}

// PublishDomainEvent dispatches a domain event without a wire round trip.
func (b *InProcessEventBus) PublishDomainEvent(ctx context.Context, event domain.DomainEvent) error {
	envelope, err := NewConsumedEvent(event)
	if err != nil {
		return err
	}
	b.dispatch(ctx, envelope)
	return nil
}

func (b *InProcessEventBus) dispatch(ctx context.Context, event *ConsumedEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	start := time.Now()
	err := b.registry.Dispatch(ctx, event)
	attrs := []any{
		"routing_key", event.RoutingKey,
		"event_id", event.EventID,
		"duration_ms", time.Since(start).Milliseconds(),
	}
	if err != nil {
		b.logger.Error("event dispatch failed", append(attrs, "error", err)...)
		return
	}
	b.logger.Debug("event dispatched", attrs...)
}

// Close is a no-op; it satisfies Publisher.
func (b *InProcessEventBus) Close() error {
	return nil
}

// Registry exposes the bindings registered on the bus.
func (b *InProcessEventBus) Registry() *ConsumerRegistry {
	return b.registry
}
