package application

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/eventboard/internal/dashboard/domain"
	sharedDomain "github.com/felixgeelhaar/eventboard/internal/shared/domain"
)

// HydrationSource says where a collection's startup data came from.
type HydrationSource string

const (
	SourceGateway HydrationSource = "gateway"
	SourceSeed    HydrationSource = "seed"
)

// HydrationReport lists the source of every collection after Hydrate.
type HydrationReport struct {
	Sources map[string]HydrationSource `json:"sources"`
}

// FromSeed reports whether any collection fell back to seed data.
func (r HydrationReport) FromSeed() bool {
	for _, src := range r.Sources {
		if src == SourceSeed {
			return true
		}
	}
	return false
}

// Hydrate loads every collection from the gateway, replacing the stores.
// A collection that cannot be read is filled from the seed data instead.
// It may be called again to reload from the gateway.
func (c *Coordinator) Hydrate(ctx context.Context) HydrationReport {
	g := c.gateway
	report := HydrationReport{Sources: make(map[string]HydrationSource, 6)}

	tasks := load(ctx, c, report, "tasks", collectionOf(g, domain.Gateway.Tasks), c.seed.Tasks)
	categories := load(ctx, c, report, "categories", collectionOf(g, domain.Gateway.Categories), c.seed.Categories)
	users := load(ctx, c, report, "users", collectionOf(g, domain.Gateway.Users), c.seed.Users)
	sessions := load(ctx, c, report, "sessions", collectionOf(g, domain.Gateway.Sessions), c.seed.Sessions)
	attendees := load(ctx, c, report, "attendees", collectionOf(g, domain.Gateway.Attendees), c.seed.Attendees)
	photos := load(ctx, c, report, "photos", collectionOf(g, domain.Gateway.Photos), c.seed.Photos)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.tasks.Load(tasks)
	c.categories.Load(categories)
	c.users.Load(users)
	c.sessions.Load(sessions)
	c.attendees.Load(attendees)
	c.photos.Load(photos)

	c.logger.InfoContext(ctx, "dashboard hydrated",
		"tasks", len(tasks),
		"categories", len(categories),
		"users", len(users),
		"from_seed", report.FromSeed(),
	)
	return report
}

func collectionOf[T any](g domain.Gateway, pick func(domain.Gateway) domain.Collection[T]) domain.Collection[T] {
	if g == nil {
		return nil
	}
	return pick(g)
}

func load[T any](ctx context.Context, c *Coordinator, report HydrationReport, name string, coll domain.Collection[T], seed []T) []T {
	if coll == nil {
		report.Sources[name] = SourceSeed
		return seed
	}

	values, err := coll.SelectAll(ctx)
	if err != nil {
		c.logger.WarnContext(ctx, "hydration failed, using seed data",
			"collection", name,
			"error", fmt.Errorf("%w: %w", sharedDomain.ErrPersistence, err),
		)
		report.Sources[name] = SourceSeed
		return seed
	}

	report.Sources[name] = SourceGateway
	return values
}
