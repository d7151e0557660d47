package collection

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/hupe1980/pointstore/model"
	"golang.org/x/sync/semaphore"
)

// maxReaders is the weight taken by an exclusive lock holder.
const maxReaders = 1 << 30

type entry struct {
	coll *Collection
	// lock is a cancellable read/write lock: readers take weight 1, writers
	// take maxReaders. Waiters are served in FIFO order, so a pending writer
	// is not starved by new readers.
	lock    *semaphore.Weighted
	dropped atomic.Bool
}

// Registry maps collection names to collections.
// It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*entry)}
}

// Create builds a new collection and registers it under name.
func (r *Registry) Create(name string, cfg Config, optFns ...Option) (*Collection, error) {
	c, err := New(name, cfg, optFns...)
	if err != nil {
		return nil, err
	}
	if err := r.Register(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Register adds an existing collection under its name.
func (r *Registry) Register(c *Collection) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[c.name]; ok {
		return fmt.Errorf("%w: %s", ErrCollectionExists, c.name)
	}
	r.entries[c.name] = &entry{coll: c, lock: semaphore.NewWeighted(maxReaders)}
	return nil
}

// Names returns the registered collection names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (r *Registry) get(name string) *entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.entries[name]
}

// Acquire returns a read-locked handle to the named collection.
//
// It returns false if no such collection exists, the collection was dropped
// while waiting, or ctx was canceled while waiting for the lock. The caller
// must Release the guard.
func (r *Registry) Acquire(ctx context.Context, name string) (*ReadGuard, bool) {
	e := r.get(name)
	if e == nil {
		return nil, false
	}
	if err := e.lock.Acquire(ctx, 1); err != nil {
		return nil, false
	}
	if e.dropped.Load() {
		e.lock.Release(1)
		return nil, false
	}
	return &ReadGuard{coll: e.coll, lock: e.lock}, true
}

// Drop removes the named collection. It waits until all outstanding read
// guards are released, or ctx is canceled.
func (r *Registry) Drop(ctx context.Context, name string) error {
	e := r.get(name)
	if e == nil {
		return fmt.Errorf("%w: %s", ErrCollectionNotFound, name)
	}
	if err := e.lock.Acquire(ctx, maxReaders); err != nil {
		return err
	}
	defer e.lock.Release(maxReaders)

	if e.dropped.Swap(true) {
		return fmt.Errorf("%w: %s", ErrCollectionNotFound, name)
	}

	r.mu.Lock()
	if r.entries[name] == e {
		delete(r.entries, name)
	}
	r.mu.Unlock()

	e.coll.opts.logger.InfoContext(ctx, "collection dropped", "collection", name)
	return nil
}

// ReadGuard is a shared read lock on a collection.
type ReadGuard struct {
	coll *Collection
	lock *semaphore.Weighted
	once sync.Once
}

// Collection returns the guarded collection. It must not be used after
// Release.
func (g *ReadGuard) Collection() *Collection { return g.coll }

// Retrieve reads from the guarded collection.
func (g *ReadGuard) Retrieve(ctx context.Context, req model.PointRequest, consistency *model.ReadConsistency, shard *model.ShardID) ([]model.Record, error) {
	return g.coll.Retrieve(ctx, req, consistency, shard)
}

// Release gives up the read lock. It is safe to call more than once.
func (g *ReadGuard) Release() {
	g.once.Do(func() { g.lock.Release(1) })
}
