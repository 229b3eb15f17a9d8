package domain_test

import (
	"testing"
	"time"

	"github.com/felixgeelhaar/eventboard/internal/shared/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewBaseEvent(t *testing.T) {
	occurred := time.Date(2026, 3, 14, 9, 30, 0, 0, time.FixedZone("CET", 3600))

	event := domain.NewBaseEvent("task-1", "Task", "dashboard.task.created", occurred)

	assert.NotEqual(t, uuid.Nil, event.EventID())
	assert.Equal(t, "task-1", event.AggregateID())
	assert.Equal(t, "Task", event.AggregateType())
	assert.Equal(t, "dashboard.task.created", event.RoutingKey())
	assert.Equal(t, occurred.UTC(), event.OccurredAt())
	assert.Equal(t, time.UTC, event.OccurredAt().Location())
}

func TestBaseEvent_WithMetadata(t *testing.T) {
	correlationID := uuid.New()

	event := domain.NewBaseEvent("task-1", "Task", "dashboard.task.created", time.Now())
	event.SetMetadata(domain.EventMetadata{
		CorrelationID: correlationID,
		Actor:         "Ayla Demir",
	})

	assert.Equal(t, correlationID, event.Metadata().CorrelationID)
	assert.Equal(t, "Ayla Demir", event.Metadata().Actor)
}
