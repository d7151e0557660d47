package resource

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds resource limits.
type Config struct {
	// MaxConcurrentLookups bounds the number of lookups in flight.
	// If 0, unlimited.
	MaxConcurrentLookups int64

	// IDsPerSecond is the sustained rate of identifiers admitted for retrieval.
	// If 0, unlimited.
	IDsPerSecond int

	// IDBurst is the token bucket size. Defaults to IDsPerSecond.
	IDBurst int
}

// Controller manages lookup admission.
// A nil *Controller admits everything.
type Controller struct {
	cfg Config

	lookupSem *semaphore.Weighted // nil if unlimited
	inFlight  atomic.Int64

	idLimiter *rate.Limiter // nil if unlimited
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	c := &Controller{cfg: cfg}

	if cfg.MaxConcurrentLookups > 0 {
		c.lookupSem = semaphore.NewWeighted(cfg.MaxConcurrentLookups)
	}

	if cfg.IDsPerSecond > 0 {
		burst := cfg.IDBurst
		if burst <= 0 {
			burst = cfg.IDsPerSecond
		}
		c.idLimiter = rate.NewLimiter(rate.Limit(cfg.IDsPerSecond), burst)
	}

	return c
}

// AcquireLookup reserves a lookup slot, blocking until one is free or ctx
// is canceled.
func (c *Controller) AcquireLookup(ctx context.Context) error {
	if c == nil {
		return nil
	}
	if c.lookupSem != nil {
		if err := c.lookupSem.Acquire(ctx, 1); err != nil {
			return err
		}
	}
	c.inFlight.Add(1)
	return nil
}

// ReleaseLookup releases a slot obtained with AcquireLookup.
func (c *Controller) ReleaseLookup() {
	if c == nil {
		return
	}
	c.inFlight.Add(-1)
	if c.lookupSem != nil {
		c.lookupSem.Release(1)
	}
}

// InFlight returns the number of lookups currently admitted.
func (c *Controller) InFlight() int64 {
	if c == nil {
		return 0
	}
	return c.inFlight.Load()
}

// WaitIDs waits until the rate limit admits n identifiers.
// Requests larger than the burst are admitted in burst-sized chunks.
func (c *Controller) WaitIDs(ctx context.Context, n int) error {
	if c == nil || c.idLimiter == nil || n <= 0 {
		return nil
	}
	burst := c.idLimiter.Burst()
	for n > 0 {
		step := min(n, burst)
		if err := c.idLimiter.WaitN(ctx, step); err != nil {
			return err
		}
		n -= step
	}
	return nil
}
