package store

// Collection is an ordered id-keyed store for the supporting collections
// (schedule, attendees, gallery, users).
type Collection[T any] struct {
	items ordered[T]
}

// NewCollection creates an empty collection keyed by idOf.
func NewCollection[T any](idOf func(T) string) *Collection[T] {
	return &Collection[T]{items: newOrdered(idOf)}
}

func (c *Collection[T]) Load(values []T)            { c.items.replaceAll(values) }
func (c *Collection[T]) Put(v T)                    { c.items.put(v) }
func (c *Collection[T]) Get(id string) (T, bool)    { return c.items.get(id) }
func (c *Collection[T]) Remove(id string) (T, bool) { return c.items.remove(id) }
func (c *Collection[T]) All() []T                   { return c.items.all() }
func (c *Collection[T]) Len() int                   { return c.items.len() }
