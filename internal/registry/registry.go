// Package registry tracks the type tags discovered while reading logs.
//
// Tags are kept in first-seen order and that order is the sort priority used
// by type sorting: the first tag ever registered has priority 0. A single
// Registry is shared by every open log, so a tag first seen in one file keeps
// its priority when a later file is opened.
package registry

import "sync"

// NotFound is returned by PriorityOf for tags that were never registered.
const NotFound = -1

// Registry is an append-only ordered set of type tags. The zero value is ready
// to use.
type Registry struct {
	mu    sync.RWMutex
	order []string
	index map[string]int
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{}
}

// Register appends tag if it has not been seen before. Registering a known tag
// is a no-op. The empty string is a valid tag.
func (r *Registry) Register(tag string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.index == nil {
		r.index = make(map[string]int)
	}
	if _, ok := r.index[tag]; ok {
		return
	}
	r.index[tag] = len(r.order)
	r.order = append(r.order, tag)
}

// PriorityOf returns the insertion index of tag, or NotFound.
func (r *Registry) PriorityOf(tag string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if idx, ok := r.index[tag]; ok {
		return idx
	}
	return NotFound
}

// Types returns a copy of the registered tags in priority order.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.order) == 0 {
		return nil
	}
	dup := make([]string, len(r.order))
	copy(dup, r.order)
	return dup
}

// Len returns the number of registered tags.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
