package eventbus

import (
	"encoding/json"
	"fmt"

	"github.com/felixgeelhaar/eventboard/internal/shared/domain"
	"github.com/google/uuid"
)

// NewConsumedEvent wraps a domain event in a bus envelope. The event's own
// exported fields become the payload.
func NewConsumedEvent(event domain.DomainEvent) (*ConsumedEvent, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}

	meta := event.Metadata()
	envelope := &ConsumedEvent{
		EventID:       event.EventID(),
		AggregateID:   event.AggregateID(),
		AggregateType: event.AggregateType(),
		RoutingKey:    event.RoutingKey(),
		OccurredAt:    event.OccurredAt(),
		Payload:       payload,
		Metadata: EventMetadata{
			Actor: meta.Actor,
		},
	}
	if meta.CorrelationID != uuid.Nil {
		envelope.Metadata.CorrelationID = meta.CorrelationID.String()
	}
	return envelope, nil
}

// MarshalDomainEvent returns the wire form of a domain event.
func MarshalDomainEvent(event domain.DomainEvent) ([]byte, error) {
	envelope, err := NewConsumedEvent(event)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope)
}

// DecodeEnvelope parses a wire event. The transport's routing key fills in
// an envelope that omitted its own.
func DecodeEnvelope(routingKey string, body []byte) (*ConsumedEvent, error) {
	event := &ConsumedEvent{}
	if err := json.Unmarshal(body, event); err != nil {
		return nil, fmt.Errorf("decode %s envelope: %w", routingKey, err)
	}
	if event.RoutingKey == "" {
		event.RoutingKey = routingKey
	}
	return event, nil
}
