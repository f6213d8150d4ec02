package entities

import "encoding/json"

// KeyFunc turns a raw name into an identity key
type KeyFunc func(string) string

// Registry is a lookup-by-identity collection that remembers first-seen order.
// It is filled once by a builder and read-only afterwards.
type Registry[T any] struct {
	keyFn KeyFunc
	order []string
	items map[string]*T
}

// NewRegistry creates an empty registry whose lookups normalize with keyFn
func NewRegistry[T any](keyFn KeyFunc) *Registry[T] {
	if keyFn == nil {
		keyFn = func(s string) string { return s }
	}
	return &Registry[T]{
		keyFn: keyFn,
		items: make(map[string]*T),
	}
}

// Key normalizes name with the registry's identity rule
func (r *Registry[T]) Key(name string) string {
	return r.keyFn(name)
}

// Upsert returns the entry for name, creating it with create(key) on first sight
func (r *Registry[T]) Upsert(name string, create func(key string) *T) *T {
	key := r.keyFn(name)
	if item, ok := r.items[key]; ok {
		return item
	}
	item := create(key)
	r.items[key] = item
	r.order = append(r.order, key)
	return item
}

// Get looks an entry up by any spelling that normalizes to its key
func (r *Registry[T]) Get(name string) (*T, bool) {
	if r == nil {
		return nil, false
	}
	item, ok := r.items[r.keyFn(name)]
	return item, ok
}

// All returns entries in first-seen order
func (r *Registry[T]) All() []*T {
	if r == nil {
		return nil
	}
	out := make([]*T, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.items[key])
	}
	return out
}

// Keys returns identity keys in first-seen order
func (r *Registry[T]) Keys() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.order...)
}

// Len returns the number of entries
func (r *Registry[T]) Len() int {
	if r == nil {
		return 0
	}
	return len(r.order)
}

// MarshalJSON encodes the entries as an ordered list
func (r *Registry[T]) MarshalJSON() ([]byte, error) {
	all := r.All()
	if all == nil {
		all = []*T{}
	}
	return json.Marshal(all)
}
