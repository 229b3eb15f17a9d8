package eventbus

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/eventboard/internal/shared/domain"
)

// DomainEventPublisher publishes domain events directly.
type DomainEventPublisher interface {
	PublishDomainEvent(ctx context.Context, event domain.DomainEvent) error
}

// FanoutPublisher sends every event to each publisher in turn. A failing
// publisher does not stop the others.
type FanoutPublisher struct {
	publishers []DomainEventPublisher
}

// NewFanoutPublisher skips nil publishers.
func NewFanoutPublisher(publishers ...DomainEventPublisher) *FanoutPublisher {
	f := &FanoutPublisher{}
	for _, p := range publishers {
		if p != nil {
			f.publishers = append(f.publishers, p)
		}
	}
	return f
}

// PublishDomainEvent returns the joined errors of all failing publishers.
func (f *FanoutPublisher) PublishDomainEvent(ctx context.Context, event domain.DomainEvent) error {
	var errs []error
	for _, p := range f.publishers {
		if err := p.PublishDomainEvent(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
