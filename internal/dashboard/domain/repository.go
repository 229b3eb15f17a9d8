package domain

import "context"

// Collection is the persistence contract for one collection of the external
// store. Upsert inserts or replaces by id.
type Collection[T any] interface {
	SelectAll(ctx context.Context) ([]T, error)
	Insert(ctx context.Context, value T) error
	Upsert(ctx context.Context, value T) error
	Delete(ctx context.Context, id string) error
}

// Gateway exposes every persisted collection of the dashboard.
type Gateway interface {
	Tasks() Collection[Task]
	Categories() Collection[Category]
	Users() Collection[User]
	Sessions() Collection[Session]
	Attendees() Collection[Attendee]
	Photos() Collection[Photo]
}

// Dataset is a full copy of every collection, used for seed data.
type Dataset struct {
	Tasks      []Task
	Categories []Category
	Users      []User
	Sessions   []Session
	Attendees  []Attendee
	Photos     []Photo
}
