package application_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/felixgeelhaar/eventboard/internal/dashboard/application"
	"github.com/felixgeelhaar/eventboard/internal/dashboard/domain"
	"github.com/felixgeelhaar/eventboard/internal/dashboard/domain/progress"
	sharedDomain "github.com/felixgeelhaar/eventboard/internal/shared/domain"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 5, 4, 14, 30, 0, 0, time.UTC)

var (
	superAdmin = domain.User{ID: "usr-001", Name: "Ayla", Email: "ayla@example.com", Role: domain.RoleSuperAdmin, AccessCode: "1111"}
	admin      = domain.User{ID: "usr-002", Name: "Jon", Email: "jon@example.com", Role: domain.RoleAdmin, AccessCode: "2222"}
	member     = domain.User{ID: "usr-003", Name: "Mira", Email: "mira@example.com", Role: domain.RoleMember, AccessCode: "3333"}
)

func seedData() domain.Dataset {
	return domain.Dataset{
		Categories: []domain.Category{
			{ID: "cat-001", Name: "Venue", Phase: domain.PhasePreEvent, Status: domain.StatusNotStarted, Priority: domain.PriorityHigh},
			{ID: "cat-002", Name: "Stage", Phase: domain.PhaseDuringEvent, Status: domain.StatusNotStarted, Priority: domain.PriorityMedium},
		},
		Users: []domain.User{superAdmin, admin, member},
	}
}

type mockCollection[T any] struct {
	mock.Mock
}

func (m *mockCollection[T]) SelectAll(ctx context.Context) ([]T, error) {
	args := m.Called(ctx)
	values, _ := args.Get(0).([]T)
	return values, args.Error(1)
}

func (m *mockCollection[T]) Insert(ctx context.Context, value T) error {
	return m.Called(ctx, value).Error(0)
}

func (m *mockCollection[T]) Upsert(ctx context.Context, value T) error {
	return m.Called(ctx, value).Error(0)
}

func (m *mockCollection[T]) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockGateway struct {
	tasks      *mockCollection[domain.Task]
	categories *mockCollection[domain.Category]
	users      *mockCollection[domain.User]
	sessions   *mockCollection[domain.Session]
	attendees  *mockCollection[domain.Attendee]
	photos     *mockCollection[domain.Photo]
}

func newMockGateway() *mockGateway {
	return &mockGateway{
		tasks:      &mockCollection[domain.Task]{},
		categories: &mockCollection[domain.Category]{},
		users:      &mockCollection[domain.User]{},
		sessions:   &mockCollection[domain.Session]{},
		attendees:  &mockCollection[domain.Attendee]{},
		photos:     &mockCollection[domain.Photo]{},
	}
}

func (g *mockGateway) Tasks() domain.Collection[domain.Task]          { return g.tasks }
func (g *mockGateway) Categories() domain.Collection[domain.Category] { return g.categories }
func (g *mockGateway) Users() domain.Collection[domain.User]          { return g.users }
func (g *mockGateway) Sessions() domain.Collection[domain.Session]    { return g.sessions }
func (g *mockGateway) Attendees() domain.Collection[domain.Attendee]  { return g.attendees }
func (g *mockGateway) Photos() domain.Collection[domain.Photo]        { return g.photos }

func (g *mockGateway) assertExpectations(t *testing.T) {
	t.Helper()
	g.tasks.AssertExpectations(t)
	g.categories.AssertExpectations(t)
	g.users.AssertExpectations(t)
	g.sessions.AssertExpectations(t)
	g.attendees.AssertExpectations(t)
	g.photos.AssertExpectations(t)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []sharedDomain.DomainEvent
}

func (p *recordingPublisher) PublishDomainEvent(_ context.Context, event sharedDomain.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) routingKeys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	keys := make([]string, 0, len(p.events))
	for _, e := range p.events {
		keys = append(keys, e.RoutingKey())
	}
	return keys
}

type fixture struct {
	coordinator *application.Coordinator
	gateway     *mockGateway
	publisher   *recordingPublisher
}

// newFixture builds a coordinator hydrated with seedData. When withGateway is
// set the same data is served by a mock gateway that then receives the writes.
func newFixture(t *testing.T, withGateway bool, opts ...func(*application.Config)) *fixture {
	t.Helper()

	f := &fixture{publisher: &recordingPublisher{}}
	cfg := application.Config{
		Publisher: f.publisher,
		Seed:      seedData(),
		Weights:   progress.DefaultPhaseWeights(),
		Now:       func() time.Time { return fixedNow },
	}
	if withGateway {
		f.gateway = newMockGateway()
		f.gateway.serve(seedData())
		cfg.Gateway = f.gateway
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	coordinator, err := application.NewCoordinator(cfg)
	require.NoError(t, err)
	coordinator.Hydrate(context.Background())

	f.coordinator = coordinator
	t.Cleanup(func() { _ = coordinator.Close(context.Background()) })
	return f
}

func (g *mockGateway) serve(data domain.Dataset) {
	g.tasks.On("SelectAll", mock.Anything).Return(data.Tasks, nil).Once()
	g.categories.On("SelectAll", mock.Anything).Return(data.Categories, nil).Once()
	g.users.On("SelectAll", mock.Anything).Return(data.Users, nil).Once()
	g.sessions.On("SelectAll", mock.Anything).Return(data.Sessions, nil).Once()
	g.attendees.On("SelectAll", mock.Anything).Return(data.Attendees, nil).Once()
	g.photos.On("SelectAll", mock.Anything).Return(data.Photos, nil).Once()
}

// drain waits for every queued write to finish.
func (f *fixture) drain(t *testing.T) {
	t.Helper()
	require.NoError(t, f.coordinator.Close(context.Background()))
}
