// Package app holds the client-side state managers: the authentication
// session, and the project and task collections synchronized with the
// remote gateway.
package app

import "sync"

// resource is the collection state shared by the project and task managers:
// the loaded items, the in-flight flag, and the list-level error message.
// It is the only writer of its own fields; consumers read through copying
// accessors and mutate only via the owning manager's operations.
type resource[T any] struct {
	mu      sync.Mutex
	id      func(T) string
	items   []T
	loading bool
	errMsg  string
}

func newResource[T any](id func(T) string) *resource[T] {
	return &resource[T]{id: id}
}

// snapshot returns a copy of the loaded items in collection order.
func (r *resource[T]) snapshot() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]T, len(r.items))
	copy(out, r.items)
	return out
}

func (r *resource[T]) isLoading() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loading
}

func (r *resource[T]) errString() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.errMsg
}

// reset returns the collection to its initial empty state.
func (r *resource[T]) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = nil
	r.loading = false
	r.errMsg = ""
}

// beginLoad marks a fetch as in flight and clears any stale error.
func (r *resource[T]) beginLoad() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loading = true
	r.errMsg = ""
}

// setLoading flips only the in-flight flag; write operations use it so the
// list-level error stays untouched.
func (r *resource[T]) setLoading(v bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loading = v
}

// replaceAll swaps in a freshly fetched collection and ends the load.
func (r *resource[T]) replaceAll(items []T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = items
	r.loading = false
	r.errMsg = ""
}

// failLoad records a fetch failure. keepItems preserves the previously
// loaded collection; otherwise the collection empties.
func (r *resource[T]) failLoad(msg string, keepItems bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !keepItems {
		r.items = nil
	}
	r.loading = false
	r.errMsg = msg
}

// prepend inserts item at the head of the collection (newest first).
func (r *resource[T]) prepend(item T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append([]T{item}, r.items...)
}

// append adds item at the tail of the collection.
func (r *resource[T]) append(item T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, item)
}

// replaceByID swaps the item with the same identity in place, preserving
// order. Items without a match are left alone.
func (r *resource[T]) replaceByID(item T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	want := r.id(item)
	for i := range r.items {
		if r.id(r.items[i]) == want {
			r.items[i] = item
			return
		}
	}
}

// removeByID drops the item with the given identity, if present.
func (r *resource[T]) removeByID(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.id(r.items[i]) == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return
		}
	}
}
