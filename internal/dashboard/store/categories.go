package store

import "github.com/felixgeelhaar/eventboard/internal/dashboard/domain"

// CategoryStore holds the categories as created, never their derived values.
type CategoryStore struct {
	categories ordered[domain.Category]
}

// NewCategoryStore creates an empty category store.
func NewCategoryStore() *CategoryStore {
	return &CategoryStore{categories: newOrdered(func(c domain.Category) string { return c.ID })}
}

// Load replaces the whole collection.
func (s *CategoryStore) Load(categories []domain.Category) { s.categories.replaceAll(categories) }

// Put inserts or replaces a category by id.
func (s *CategoryStore) Put(c domain.Category) { s.categories.put(c) }

// Get looks up a category by id.
func (s *CategoryStore) Get(id string) (domain.Category, bool) { return s.categories.get(id) }

// Exists reports whether a category with id is known.
func (s *CategoryStore) Exists(id string) bool {
	_, ok := s.categories.get(id)
	return ok
}

// All returns every category in insertion order.
func (s *CategoryStore) All() []domain.Category { return s.categories.all() }

// Len returns the number of categories.
func (s *CategoryStore) Len() int { return s.categories.len() }
