package store

import "github.com/felixgeelhaar/eventboard/internal/dashboard/domain"

// TaskStore is the canonical set of tasks.
type TaskStore struct {
	tasks ordered[domain.Task]
}

// NewTaskStore creates an empty task store.
func NewTaskStore() *TaskStore {
	return &TaskStore{tasks: newOrdered(func(t domain.Task) string { return t.ID })}
}

// Tasks go in and come out as clones so no caller can reach the stored
// assignee list or audit history.

// Load replaces the whole collection, e.g. after hydration.
func (s *TaskStore) Load(tasks []domain.Task) {
	s.tasks.replaceAll(nil)
	for _, t := range tasks {
		s.tasks.put(t.Clone())
	}
}

// Put inserts or replaces a task by id.
func (s *TaskStore) Put(t domain.Task) { s.tasks.put(t.Clone()) }

// Get looks up a task by id.
func (s *TaskStore) Get(id string) (domain.Task, bool) {
	t, ok := s.tasks.get(id)
	if !ok {
		return domain.Task{}, false
	}
	return t.Clone(), true
}

// Remove hard-deletes a task and returns it.
func (s *TaskStore) Remove(id string) (domain.Task, bool) { return s.tasks.remove(id) }

// All returns every task in insertion order.
func (s *TaskStore) All() []domain.Task {
	out := make([]domain.Task, 0, s.tasks.len())
	for _, t := range s.tasks.items {
		out = append(out, t.Clone())
	}
	return out
}

// Len returns the number of tasks.
func (s *TaskStore) Len() int { return s.tasks.len() }

// ByCategory returns the tasks referencing categoryID.
func (s *TaskStore) ByCategory(categoryID string) []domain.Task {
	var out []domain.Task
	for _, t := range s.tasks.items {
		if t.CategoryID == categoryID {
			out = append(out, t.Clone())
		}
	}
	return out
}
