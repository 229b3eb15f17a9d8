package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/felixgeelhaar/eventboard/internal/dashboard/application"
	"github.com/felixgeelhaar/eventboard/internal/dashboard/application/subscribers"
	"github.com/felixgeelhaar/eventboard/internal/dashboard/domain"
	"github.com/felixgeelhaar/eventboard/internal/dashboard/domain/progress"
	"github.com/felixgeelhaar/eventboard/internal/dashboard/infrastructure/caldav"
	"github.com/felixgeelhaar/eventboard/internal/dashboard/infrastructure/persistence"
	"github.com/felixgeelhaar/eventboard/internal/dashboard/infrastructure/seed"
	"github.com/felixgeelhaar/eventboard/internal/dashboard/infrastructure/session"
	"github.com/felixgeelhaar/eventboard/internal/dashboard/infrastructure/textgen"
	"github.com/felixgeelhaar/eventboard/internal/shared/infrastructure/crypto"
	"github.com/felixgeelhaar/eventboard/internal/shared/infrastructure/database"
	_ "github.com/felixgeelhaar/eventboard/internal/shared/infrastructure/database/postgres" // Register PostgreSQL driver
	_ "github.com/felixgeelhaar/eventboard/internal/shared/infrastructure/database/sqlite"   // Register SQLite driver
	"github.com/felixgeelhaar/eventboard/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/eventboard/internal/shared/infrastructure/migrations"
	"github.com/felixgeelhaar/eventboard/pkg/config"
	"github.com/felixgeelhaar/eventboard/pkg/observability"
)

// Container holds all application dependencies.
type Container struct {
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *observability.InMemoryMetrics

	// Database
	DBConn   database.Connection
	DBDriver database.Driver
	Gateway  *persistence.Gateway

	// Redis, only when REDIS_URL is set and reachable
	RedisClient *redis.Client

	// Events
	Bus             *eventbus.InProcessEventBus
	RabbitPublisher *eventbus.RabbitMQPublisher
	ActivityFeed    *subscribers.ActivityFeed

	// Dashboard services
	Coordinator *application.Coordinator
	Session     *application.SessionContext
	Insights    *application.InsightsService
	TextGen     *textgen.Client
	Exporter    *caldav.Exporter

	Health    *observability.HealthRegistry
	Hydration application.HydrationReport
}

// NewContainer connects every backing service named by cfg, hydrates the
// dashboard and restores the saved session. Only the database is required;
// Redis, RabbitMQ, text generation and CalDAV degrade with a warning in
// development.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	c := &Container{
		Config:  cfg,
		Logger:  logger,
		Metrics: observability.NewInMemoryMetrics(),
		Health:  observability.NewHealthRegistry(),
	}

	if err := c.initDatabase(ctx); err != nil {
		return nil, err
	}
	if err := c.initRedis(ctx); err != nil {
		c.Close(ctx)
		return nil, err
	}
	if err := c.initEvents(); err != nil {
		c.Close(ctx)
		return nil, err
	}
	if err := c.initDashboard(ctx); err != nil {
		c.Close(ctx)
		return nil, err
	}
	if err := c.initSession(ctx); err != nil {
		c.Close(ctx)
		return nil, err
	}
	c.initIntegrations()

	return c, nil
}

func (c *Container) initDatabase(ctx context.Context) error {
	conn, err := database.NewConnection(ctx, database.Config{
		Driver:     database.Driver(c.Config.DatabaseDriver),
		URL:        c.Config.DatabaseURL,
		Schema:     c.Config.PostgresSchema,
		SQLitePath: c.Config.SQLitePath,
		MaxConns:   c.Config.DatabaseMaxConns,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	c.Logger.Info("running migrations", "driver", conn.Driver())
	if err := migrations.Run(ctx, conn, c.Config.PostgresSchema); err != nil {
		_ = conn.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	c.DBConn = conn
	c.DBDriver = conn.Driver()
	c.Gateway = persistence.NewGateway(conn)
	c.Health.Register("database", observability.PingChecker("database", true, conn.Ping))
	c.Logger.Info("connected to database", "driver", c.DBDriver)
	return nil
}

func (c *Container) initRedis(ctx context.Context) error {
	if c.Config.RedisURL == "" {
		return nil
	}

	opt, err := redis.ParseURL(c.Config.RedisURL)
	if err != nil {
		if !c.Config.IsDevelopment() {
			return fmt.Errorf("failed to parse Redis URL: %w", err)
		}
		c.Logger.Warn("invalid Redis URL, session will use a local file", "error", err)
		return nil
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		if !c.Config.IsDevelopment() {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		c.Logger.Warn("Redis not available, session will use a local file", "error", err)
		return nil
	}

	c.RedisClient = client
	c.Health.Register("redis", observability.PingChecker("redis", false, func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}))
	c.Logger.Info("connected to Redis")
	return nil
}

func (c *Container) initEvents() error {
	c.Bus = eventbus.NewInProcessEventBus(c.Logger)
	c.ActivityFeed = subscribers.NewActivityFeed(subscribers.DefaultActivityCapacity, c.Logger)
	c.Bus.RegisterConsumer(c.ActivityFeed)

	if c.Config.EventBus != config.EventBusRabbitMQ {
		return nil
	}

	pub, err := eventbus.NewRabbitMQPublisher(c.Config.RabbitMQURL, c.Logger)
	if err != nil {
		if !c.Config.IsDevelopment() {
			return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
		c.Logger.Warn("RabbitMQ not available, events stay in process", "error", err)
		return nil
	}
	c.RabbitPublisher = pub
	c.Logger.Info("connected to RabbitMQ", "exchange", eventbus.ExchangeName)
	return nil
}

func (c *Container) publisher() application.EventPublisher {
	if c.RabbitPublisher != nil {
		return eventbus.NewFanoutPublisher(c.Bus, c.RabbitPublisher)
	}
	return c.Bus
}

func (c *Container) initDashboard(ctx context.Context) error {
	ds, err := seed.Default()
	if err != nil {
		return fmt.Errorf("failed to load seed data: %w", err)
	}

	coord, err := application.NewCoordinator(application.Config{
		Gateway:      c.Gateway,
		Publisher:    c.publisher(),
		Seed:         ds,
		Weights:      phaseWeights(c.Config),
		QueueSize:    c.Config.WriteQueueSize,
		WriteTimeout: c.Config.WriteTimeout,
		Metrics:      c.Metrics,
		Logger:       c.Logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create coordinator: %w", err)
	}

	c.Coordinator = coord
	c.Hydration = coord.Hydrate(ctx)
	if c.Hydration.Sources["users"] == application.SourceGateway && len(coord.Users()) == 0 {
		c.Logger.Info("database has no users, writing built-in seed data")
		if _, err := c.SeedDatabase(ctx, &ds); err != nil {
			return fmt.Errorf("failed to seed empty database: %w", err)
		}
	}
	if c.Hydration.FromSeed() {
		c.Logger.Warn("dashboard is running on built-in seed data for some collections",
			"sources", c.Hydration.Sources)
	}
	return nil
}

func (c *Container) initSession(ctx context.Context) error {
	var sealer crypto.Sealer
	if c.Config.SessionEncryptionKey != "" {
		s, err := crypto.NewAESGCMFromBase64Key(c.Config.SessionEncryptionKey)
		if err != nil {
			return fmt.Errorf("invalid session encryption key: %w", err)
		}
		sealer = s
	}

	var store application.SessionStore
	if c.RedisClient != nil {
		store = session.NewRedisStore(c.RedisClient, c.Config.SessionKey, 0, sealer)
	} else {
		store = session.NewFileStore(c.Config.SessionFile, sealer)
	}

	c.Session = application.NewSessionContext(store, c.Logger)
	c.Session.Restore(ctx)
	return nil
}

func (c *Container) initIntegrations() {
	var generator application.TextGenerator
	if c.Config.TextGenEnabled() {
		client, err := textgen.New(textgen.Config{
			BaseURL: c.Config.TextGenURL,
			Token:   c.Config.TextGenToken,
			Model:   c.Config.TextGenModel,
			Timeout: c.Config.TextGenTimeout,
		}, c.Logger)
		if err != nil {
			c.Logger.Warn("text generation disabled", "error", err)
		} else {
			c.TextGen = client
			generator = client
		}
	}
	c.Insights = application.NewInsightsService(c.Coordinator, generator, c.Logger)

	if c.Config.CalDAVEnabled() {
		exp, err := caldav.NewExporter(caldav.Config{
			URL:          c.Config.CalDAVURL,
			Username:     c.Config.CalDAVUsername,
			Password:     c.Config.CalDAVPassword,
			CalendarPath: c.Config.CalDAVCalendarPath,
		}, c.Logger)
		if err != nil {
			c.Logger.Warn("schedule export disabled", "error", err)
		} else {
			c.Exporter = exp.WithDeleteMissing(true)
		}
	}
}

// SeedDatabase writes ds (the built-in dataset when ds is nil) into the
// database in one transaction and reloads the dashboard from it.
func (c *Container) SeedDatabase(ctx context.Context, ds *domain.Dataset) (seed.Counts, error) {
	data := seed.MustDefault()
	if ds != nil {
		data = *ds
	}

	counts, err := seed.Apply(ctx, database.NewUnitOfWork(c.DBConn), c.Gateway, data, c.Logger)
	if err != nil {
		return nil, err
	}
	c.Hydration = c.Coordinator.Hydrate(ctx)
	return counts, nil
}

// Close drains pending writes and releases every connection.
func (c *Container) Close(ctx context.Context) {
	if c.Coordinator != nil {
		if err := c.Coordinator.Close(ctx); err != nil {
			c.Logger.Warn("pending writes were not flushed", "error", err)
		}
		stats := c.Coordinator.WriteStats()
		c.Logger.Debug("write-behind queue closed",
			"succeeded", stats.Succeeded,
			"failed", stats.Failed,
			"dropped", stats.Dropped,
		)
	}

	var errs []error
	if c.RabbitPublisher != nil {
		errs = append(errs, c.RabbitPublisher.Close())
	}
	if c.Bus != nil {
		errs = append(errs, c.Bus.Close())
	}
	if c.RedisClient != nil {
		errs = append(errs, c.RedisClient.Close())
	}
	if c.DBConn != nil {
		errs = append(errs, c.DBConn.Close())
	}
	if err := errors.Join(errs...); err != nil {
		c.Logger.Warn("error closing resources", "error", err)
	}
}

func phaseWeights(cfg *config.Config) progress.PhaseWeights {
	return progress.PhaseWeights{
		domain.PhasePreEvent:    cfg.PhaseWeightPreEvent,
		domain.PhaseDuringEvent: cfg.PhaseWeightDuringEvent,
		domain.PhasePostEvent:   cfg.PhaseWeightPostEvent,
	}
}
