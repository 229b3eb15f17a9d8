// Package store holds the in-memory canonical collections of the dashboard.
//
// Stores are not safe for concurrent use; the coordinator serializes access.
package store

// ordered keeps values in insertion order with O(1) lookup by id.
type ordered[T any] struct {
	idOf  func(T) string
	items []T
	index map[string]int
}

func newOrdered[T any](idOf func(T) string) ordered[T] {
	return ordered[T]{idOf: idOf, index: make(map[string]int)}
}

func (o *ordered[T]) replaceAll(values []T) {
	o.items = make([]T, 0, len(values))
	o.index = make(map[string]int, len(values))
	for _, v := range values {
		o.put(v)
	}
}

// put inserts v or replaces the value with the same id in place.
func (o *ordered[T]) put(v T) {
	id := o.idOf(v)
	if i, ok := o.index[id]; ok {
		o.items[i] = v
		return
	}
	o.index[id] = len(o.items)
	o.items = append(o.items, v)
}

func (o *ordered[T]) get(id string) (T, bool) {
	i, ok := o.index[id]
	if !ok {
		var zero T
		return zero, false
	}
	return o.items[i], true
}

func (o *ordered[T]) remove(id string) (T, bool) {
	i, ok := o.index[id]
	if !ok {
		var zero T
		return zero, false
	}
	removed := o.items[i]
	o.items = append(o.items[:i:i], o.items[i+1:]...)
	delete(o.index, id)
	for j := i; j < len(o.items); j++ {
		o.index[o.idOf(o.items[j])] = j
	}
	return removed, true
}

func (o *ordered[T]) all() []T {
	return append([]T(nil), o.items...)
}

func (o *ordered[T]) len() int {
	return len(o.items)
}
