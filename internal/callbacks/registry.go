// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package callbacks

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultTTL is applied when Register is called with a negative ttl.
const DefaultTTL = 5 * time.Minute

// Registry maps a key to a handler that expires after its TTL. Each
// insertion schedules its own eviction; a newer registration under the same
// key is never removed by the eviction of an older one.
//
// A Registry is owned by one client instance and is safe for concurrent use.
type Registry[T any] struct {
	mu      sync.Mutex
	clock   clockwork.Clock
	entries map[string]*entry[T]
	nextGen uint64
}

type entry[T any] struct {
	handler func(T)
	gen     uint64
	timer   clockwork.Timer
}

// Option configures a Registry.
type Option func(*options)

type options struct {
	clock clockwork.Clock
}

// WithClock overrides the clock that schedules evictions.
func WithClock(clock clockwork.Clock) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// New returns an empty Registry.
func New[T any](opts ...Option) *Registry[T] {
	o := options{clock: clockwork.NewRealClock()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Registry[T]{
		clock:   o.clock,
		entries: make(map[string]*entry[T]),
	}
}

// Register stores handler under key, replacing any previous handler, and
// schedules its eviction after ttl. A negative ttl selects DefaultTTL; a
// zero ttl evicts immediately.
func (r *Registry[T]) Register(key string, handler func(T), ttl time.Duration) {
	if ttl < 0 {
		ttl = DefaultTTL
	}

	r.mu.Lock()
	if prev, ok := r.entries[key]; ok && prev.timer != nil {
		prev.timer.Stop()
	}
	r.nextGen++
	e := &entry[T]{handler: handler, gen: r.nextGen}
	r.entries[key] = e
	r.mu.Unlock()

	// scheduled outside the lock: a clock may run the callback synchronously
	gen := e.gen
	timer := r.clock.AfterFunc(ttl, func() { r.evict(key, gen) })

	r.mu.Lock()
	if cur, ok := r.entries[key]; ok && cur == e {
		e.timer = timer
	} else {
		timer.Stop()
	}
	r.mu.Unlock()
}

// Resolve returns the live handler registered under key.
func (r *Registry[T]) Resolve(key string) (func(T), bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[key]
	if !ok {
		return nil, false
	}
	return e.handler, true
}

// Remove drops the handler registered under key and cancels its eviction.
// It reports whether a handler was present.
func (r *Registry[T]) Remove(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.takeLocked(key) != nil
}

// Invoke removes the handler registered under key and calls it with v. The
// handler runs at most once and outside the registry lock.
func (r *Registry[T]) Invoke(key string, v T) bool {
	r.mu.Lock()
	e := r.takeLocked(key)
	r.mu.Unlock()

	if e == nil {
		return false
	}
	e.handler(v)
	return true
}

// Len reports the number of live handlers.
func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func (r *Registry[T]) takeLocked(key string) *entry[T] {
	e, ok := r.entries[key]
	if !ok {
		return nil
	}
	delete(r.entries, key)
	if e.timer != nil {
		e.timer.Stop()
	}
	return e
}

func (r *Registry[T]) evict(key string, gen uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.entries[key]; ok && e.gen == gen {
		delete(r.entries, key)
	}
}
