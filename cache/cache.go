package cache

import (
	"context"
	"strings"
	"sync"
)

// Store is a keyed cache of server-fetched collections and entities. Every
// mutating domain operation marks the keys it affected stale; readers go
// through GetOrFetch and get either the cached value or a fresh fetch.
// Concurrent readers of the same missing key share a single in-flight fetch.
type Store struct {
	mu      sync.Mutex
	entries map[string]*entry
	subs    map[string][]chan struct{}
}

type entry struct {
	value    any
	valid    bool
	gen      uint64 // bumped by Invalidate so a racing fetch can't resurrect stale data
	inflight *flight
}

type flight struct {
	done  chan struct{}
	value any
	err   error
}

func NewStore() *Store {
	return &Store{
		entries: make(map[string]*entry),
		subs:    make(map[string][]chan struct{}),
	}
}

// Key builds a composite cache key from a resource and its scope parts,
// e.g. Key("posts", "author", "12") -> "posts:author:12".
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}

// GetOrFetch returns the cached value for key if present and fresh.
// Otherwise it invokes fetch, stores the result, and returns it. If another
// fetch for the same key is already in flight the caller waits for that one
// instead of issuing a duplicate request.
func (s *Store) GetOrFetch(ctx context.Context, key string, fetch func(context.Context) (any, error)) (any, error) {
	s.mu.Lock()
	e, ok := s.entries[key]
	if !ok {
		e = &entry{}
		s.entries[key] = e
	}
	if e.valid {
		v := e.value
		s.mu.Unlock()
		return v, nil
	}
	if e.inflight != nil {
		f := e.inflight
		s.mu.Unlock()
		select {
		case <-f.done:
			return f.value, f.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f := &flight{done: make(chan struct{})}
	e.inflight = f
	gen := e.gen
	s.mu.Unlock()

	value, err := fetch(ctx)

	s.mu.Lock()
	f.value, f.err = value, err
	if e.inflight == f {
		e.inflight = nil
	}
	if err == nil && e.gen == gen {
		e.value = value
		e.valid = true
	}
	s.mu.Unlock()
	close(f.done)

	return value, err
}

// Invalidate marks the given keys stale and notifies subscribers. The next
// GetOrFetch on each key re-fetches.
func (s *Store) Invalidate(keys ...string) {
	s.mu.Lock()
	var notify []chan struct{}
	for _, key := range keys {
		if e, ok := s.entries[key]; ok {
			e.valid = false
			e.gen++
		}
		notify = append(notify, s.subs[key]...)
	}
	s.mu.Unlock()

	for _, ch := range notify {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Subscribe returns a channel that receives a tick whenever key is
// invalidated, plus a cancel func that must be called when the subscriber
// goes away. Notifications are best-effort coalescing: a slow subscriber
// sees at least one tick, not necessarily one per invalidation.
func (s *Store) Subscribe(key string) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	s.subs[key] = append(s.subs[key], ch)
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		subs := s.subs[key]
		for i, c := range subs {
			if c == ch {
				s.subs[key] = append(subs[:i], subs[i+1:]...)
				break
			}
		}
		if len(s.subs[key]) == 0 {
			delete(s.subs, key)
		}
	}
	return ch, cancel
}

// Fetch is the typed front door to GetOrFetch.
func Fetch[T any](ctx context.Context, s *Store, key string, fetch func(context.Context) (T, error)) (T, error) {
	v, err := s.GetOrFetch(ctx, key, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		var zero T
		return zero, nil
	}
	return t, nil
}
