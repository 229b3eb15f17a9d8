// Package application coordinates the dashboard's stores, lifecycle rules and
// collaborators.
package application

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/felixgeelhaar/eventboard/internal/dashboard/domain"
	"github.com/felixgeelhaar/eventboard/internal/dashboard/domain/progress"
	"github.com/felixgeelhaar/eventboard/internal/dashboard/store"
	sharedApplication "github.com/felixgeelhaar/eventboard/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/eventboard/internal/shared/domain"
	"github.com/felixgeelhaar/eventboard/pkg/observability"
)

// Config configures a Coordinator. Only Weights is required to be valid.
type Config struct {
	Gateway   domain.Gateway
	Publisher EventPublisher
	Seed      domain.Dataset
	Weights   progress.PhaseWeights
	QueueSize int
	// WriteTimeout bounds each gateway write; zero means DefaultWriteTimeout.
	WriteTimeout time.Duration
	Now          func() time.Time
	Metrics      observability.Metrics
	Logger       *slog.Logger
}

// Coordinator owns the in-memory stores. Reads derive category state on
// every call; mutations run the lifecycle rules, update the stores and queue
// the write to the gateway.
type Coordinator struct {
	mu         sync.RWMutex
	tasks      *store.TaskStore
	categories *store.CategoryStore
	users      *store.Collection[domain.User]
	sessions   *store.Collection[domain.Session]
	attendees  *store.Collection[domain.Attendee]
	photos     *store.Collection[domain.Photo]

	gateway domain.Gateway
	seed    domain.Dataset
	weights progress.PhaseWeights
	writer  *writeBehind
	now     func() time.Time
	logger  *slog.Logger
}

// NewCoordinator validates the phase weights and starts the write-behind queue.
func NewCoordinator(cfg Config) (*Coordinator, error) {
	if cfg.Weights == nil {
		cfg.Weights = progress.DefaultPhaseWeights()
	}
	if err := cfg.Weights.Validate(); err != nil {
		return nil, err
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Metrics == nil {
		cfg.Metrics = observability.NoopMetrics{}
	}

	return &Coordinator{
		tasks:      store.NewTaskStore(),
		categories: store.NewCategoryStore(),
		users:      store.NewCollection(func(u domain.User) string { return u.ID }),
		sessions:   store.NewCollection(func(s domain.Session) string { return s.ID }),
		attendees:  store.NewCollection(func(a domain.Attendee) string { return a.ID }),
		photos:     store.NewCollection(func(p domain.Photo) string { return p.ID }),
		gateway:    cfg.Gateway,
		seed:       cfg.Seed,
		weights:    cfg.Weights,
		writer:     newWriteBehind(cfg.QueueSize, cfg.WriteTimeout, cfg.Publisher, cfg.Metrics, cfg.Logger),
		now:        cfg.Now,
		logger:     cfg.Logger,
	}, nil
}

// DashboardState is the derived view of the whole event.
type DashboardState struct {
	Categories      []domain.Category `json:"categories"`
	Phases          []PhaseSummary    `json:"phases"`
	OverallProgress int               `json:"overall_progress"`
	TaskCount       int               `json:"task_count"`
	CompletedTasks  int               `json:"completed_tasks"`
	BlockedTasks    int               `json:"blocked_tasks"`
}

// PhaseSummary is one phase's share of the overall progress.
type PhaseSummary struct {
	Phase      domain.Phase `json:"phase"`
	Progress   float64      `json:"progress"`
	Weight     float64      `json:"weight"`
	Categories int          `json:"categories"`
}

// DerivedState recomputes every category and the overall progress.
func (c *Coordinator) DerivedState() DashboardState {
	c.mu.RLock()
	defer c.mu.RUnlock()

	tasks := c.tasks.All()
	categories := progress.DeriveCategories(c.categories.All(), tasks)
	means := progress.PhaseProgress(categories)

	state := DashboardState{
		Categories:      categories,
		OverallProgress: progress.OverallProgress(categories, c.weights),
		TaskCount:       len(tasks),
	}
	for _, phase := range domain.Phases() {
		summary := PhaseSummary{Phase: phase, Progress: means[phase], Weight: c.weights[phase]}
		for _, cat := range categories {
			if cat.Phase == phase {
				summary.Categories++
			}
		}
		state.Phases = append(state.Phases, summary)
	}
	for _, t := range tasks {
		switch t.Status {
		case domain.StatusCompleted:
			state.CompletedTasks++
		case domain.StatusBlocked:
			state.BlockedTasks++
		}
	}
	return state
}

// Categories returns every category with its derived progress and status.
func (c *Coordinator) Categories() []domain.Category {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return progress.DeriveCategories(c.categories.All(), c.tasks.All())
}

// Category returns one derived category.
func (c *Coordinator) Category(id string) (domain.Category, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cat, ok := c.categories.Get(id)
	if !ok {
		return domain.Category{}, domain.ErrCategoryNotFound
	}
	return progress.DeriveCategory(cat, c.tasks.ByCategory(id)), nil
}

// Tasks returns the tasks of one category, or all tasks when categoryID is empty.
func (c *Coordinator) Tasks(categoryID string) []domain.Task {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if categoryID == "" {
		return c.tasks.All()
	}
	return c.tasks.ByCategory(categoryID)
}

// Snapshot returns the derived categories and every task from one
// consistent view of the stores.
func (c *Coordinator) Snapshot() ([]domain.Category, []domain.Task) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	tasks := c.tasks.All()
	return progress.DeriveCategories(c.categories.All(), tasks), tasks
}

// Task looks up one task.
func (c *Coordinator) Task(id string) (domain.Task, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	t, ok := c.tasks.Get(id)
	if !ok {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	return t, nil
}

// Users returns the team members.
func (c *Coordinator) Users() []domain.User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.users.All()
}

// Authenticate finds the user owning the email and access code.
func (c *Coordinator) Authenticate(email, accessCode string) (domain.User, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, u := range c.users.All() {
		if u.MatchesCredentials(email, accessCode) {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrInvalidCredentials
}

// CreateTask adds a not-started task to an existing category.
func (c *Coordinator) CreateTask(ctx context.Context, actor domain.User, categoryID string, fields domain.TaskFields) (domain.Task, error) {
	if err := requireActor(actor); err != nil {
		return domain.Task{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	t, err := domain.NewTask(categoryID, fields, actor.Name, now)
	if err != nil {
		return domain.Task{}, err
	}
	if !c.categories.Exists(t.CategoryID) {
		return domain.Task{}, domain.ErrUnknownCategory
	}

	c.tasks.Put(t)

	event := domain.NewTaskCreated(t, now)
	c.enqueueTask(actor, "insert", t, func(ctx context.Context) error {
		return c.gateway.Tasks().Insert(ctx, t)
	}, &event)

	c.logger.InfoContext(ctx, "task created",
		"task_id", t.ID,
		"category_id", t.CategoryID,
		"actor", actor.Name,
	)
	return t, nil
}

// QuickProgressUpdate advances a task by one quick step.
func (c *Coordinator) QuickProgressUpdate(ctx context.Context, actor domain.User, taskID string) (domain.Task, error) {
	if err := requireActor(actor); err != nil {
		return domain.Task{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	current, ok := c.tasks.Get(taskID)
	if !ok {
		return domain.Task{}, domain.ErrTaskNotFound
	}

	now := c.now()
	next := current.ApplyQuickProgressUpdate(actor.Name, now)
	c.tasks.Put(next)

	event := domain.NewTaskProgressed(next, now)
	c.enqueueTask(actor, "upsert", next, func(ctx context.Context) error {
		return c.gateway.Tasks().Upsert(ctx, next)
	}, &event)

	c.logger.InfoContext(ctx, "task progressed",
		"task_id", next.ID,
		"progress_before", current.Progress,
		"progress_after", next.Progress,
		"status", next.Status,
		"actor", actor.Name,
	)
	return next, nil
}

// ChangeTaskStatus sets a task's status by hand.
func (c *Coordinator) ChangeTaskStatus(ctx context.Context, actor domain.User, taskID string, status domain.Status) (domain.Task, error) {
	if err := requireActor(actor); err != nil {
		return domain.Task{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	current, ok := c.tasks.Get(taskID)
	if !ok {
		return domain.Task{}, domain.ErrTaskNotFound
	}

	now := c.now()
	next, err := current.ChangeStatus(status, actor.Name, now)
	if err != nil {
		return domain.Task{}, err
	}
	c.tasks.Put(next)

	event := domain.NewTaskStatusChanged(next, current.Status, now)
	c.enqueueTask(actor, "upsert", next, func(ctx context.Context) error {
		return c.gateway.Tasks().Upsert(ctx, next)
	}, &event)

	c.logger.InfoContext(ctx, "task status changed",
		"task_id", next.ID,
		"from", current.Status,
		"to", next.Status,
		"actor", actor.Name,
	)
	return next, nil
}

// EditTask replaces a task's descriptive fields.
func (c *Coordinator) EditTask(ctx context.Context, actor domain.User, taskID string, fields domain.TaskFields) (domain.Task, error) {
	if err := requireActor(actor); err != nil {
		return domain.Task{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	current, ok := c.tasks.Get(taskID)
	if !ok {
		return domain.Task{}, domain.ErrTaskNotFound
	}

	now := c.now()
	next := current.Edit(fields, actor.Name, now)
	c.tasks.Put(next)

	event := domain.NewTaskEdited(next, now)
	c.enqueueTask(actor, "upsert", next, func(ctx context.Context) error {
		return c.gateway.Tasks().Upsert(ctx, next)
	}, &event)

	c.logger.InfoContext(ctx, "task edited", "task_id", next.ID, "actor", actor.Name)
	return next, nil
}

// DeleteTask hard-deletes a task. Only a super-admin may delete.
func (c *Coordinator) DeleteTask(ctx context.Context, actor domain.User, taskID string) error {
	if err := domain.RequireSuperAdmin(actor); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	removed, ok := c.tasks.Remove(taskID)
	if !ok {
		return domain.ErrTaskNotFound
	}

	event := domain.NewTaskDeleted(removed, c.now())
	c.enqueueTask(actor, "delete", removed, func(ctx context.Context) error {
		return c.gateway.Tasks().Delete(ctx, removed.ID)
	}, &event)

	c.logger.InfoContext(ctx, "task deleted", "task_id", removed.ID, "actor", actor.Name)
	return nil
}

// WriteStats reports the state of the persistence queue.
func (c *Coordinator) WriteStats() WriteStats {
	return c.writer.stats()
}

// Close stops accepting persistence jobs and waits for the queued ones.
func (c *Coordinator) Close(ctx context.Context) error {
	c.mu.Lock()
	c.writer.stop()
	c.mu.Unlock()
	return c.writer.wait(ctx)
}

// enqueueTask queues a task write with its event. Callers hold c.mu.
func (c *Coordinator) enqueueTask(actor domain.User, operation string, t domain.Task, write func(context.Context) error, event sharedDomain.DomainEvent) {
	sharedApplication.ApplyEventMetadata([]sharedDomain.DomainEvent{event}, sharedApplication.NewEventMetadata(actor.Name))
	c.writer.enqueue(writeJob{
		operation:  operation,
		collection: "tasks",
		id:         t.ID,
		write:      c.gatewayWrite(write),
		event:      event,
	})
}

// gatewayWrite drops the write when no gateway is configured.
func (c *Coordinator) gatewayWrite(write func(context.Context) error) func(context.Context) error {
	if c.gateway == nil {
		return nil
	}
	return write
}

func requireActor(actor domain.User) error {
	if actor.Name == "" {
		return domain.ErrMissingActor
	}
	return nil
}
