package eventbus

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
)

// ConsumerRegistry routes consumed events to consumers by binding pattern.
// Patterns follow AMQP topic rules so the same EventTypes work for the
// in-process bus and for RabbitMQ queue bindings: words are separated by
// dots, "*" matches exactly one word and "#" matches zero or more.
type ConsumerRegistry struct {
	mu       sync.RWMutex
	bindings []binding
	logger   *slog.Logger
}

type binding struct {
	pattern  []string
	consumer EventConsumer
}

// NewConsumerRegistry creates an empty registry.
func NewConsumerRegistry(logger *slog.Logger) *ConsumerRegistry {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConsumerRegistry{logger: logger}
}

// Register binds consumer to each of its event type patterns.
func (r *ConsumerRegistry) Register(consumer EventConsumer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, pattern := range consumer.EventTypes() {
		r.bindings = append(r.bindings, binding{
			pattern:  strings.Split(pattern, "."),
			consumer: consumer,
		})
		r.logger.Debug("bound consumer", "pattern", pattern)
	}
}

// GetConsumers returns the consumers bound to routingKey, each once, in
// registration order.
func (r *ConsumerRegistry) GetConsumers(routingKey string) []EventConsumer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	words := strings.Split(routingKey, ".")
	var matched []EventConsumer
	seen := make(map[EventConsumer]bool)
	for _, b := range r.bindings {
		if seen[b.consumer] || !topicMatch(b.pattern, words) {
			continue
		}
		seen[b.consumer] = true
		matched = append(matched, b.consumer)
	}
	return matched
}

// Dispatch hands event to every matching consumer. A failing consumer does
// not stop the others; all failures are returned joined.
func (r *ConsumerRegistry) Dispatch(ctx context.Context, event *ConsumedEvent) error {
	consumers := r.GetConsumers(event.RoutingKey)
	if len(consumers) == 0 {
		r.logger.Debug("no consumers for event", "routing_key", event.RoutingKey)
		return nil
	}

	var errs []error
	for _, consumer := range consumers {
		if err := consumer.Handle(ctx, event); err != nil {
			r.logger.Error("consumer failed to handle event",
				"routing_key", event.RoutingKey,
				"event_id", event.EventID,
				"error", err,
			)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// BindingCount returns the number of pattern bindings.
func (r *ConsumerRegistry) BindingCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.bindings)
}

func topicMatch(pattern, words []string) bool {
	if len(pattern) == 0 {
		return len(words) == 0
	}
	switch pattern[0] {
	case "#":
		for i := 0; i <= len(words); i++ {
			if topicMatch(pattern[1:], words[i:]) {
				return true
			}
		}
		return false
	case "*":
		return len(words) > 0 && topicMatch(pattern[1:], words[1:])
	default:
		return len(words) > 0 && pattern[0] == words[0] && topicMatch(pattern[1:], words[1:])
	}
}
