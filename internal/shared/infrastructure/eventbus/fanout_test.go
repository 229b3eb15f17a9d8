package eventbus_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/eventboard/internal/shared/domain"
	"github.com/felixgeelhaar/eventboard/internal/shared/infrastructure/eventbus"
)

type stubPublisher struct {
	calls int
	err   error
}

func (s *stubPublisher) PublishDomainEvent(context.Context, domain.DomainEvent) error {
	s.calls++
	return s.err
}

func TestFanoutPublisher_ReachesEveryPublisher(t *testing.T) {
	failing := &stubPublisher{err: errors.New("broker down")}
	healthy := &stubPublisher{}
	fanout := eventbus.NewFanoutPublisher(failing, nil, healthy)

	err := fanout.PublishDomainEvent(context.Background(), newSampleEvent())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 1, healthy.calls)
}

func TestFanoutPublisher_Empty(t *testing.T) {
	assert.NoError(t, eventbus.NewFanoutPublisher().PublishDomainEvent(context.Background(), newSampleEvent()))
}
