package resource

import (
	"context"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds resource limits. A zero field disables that limit.
type Config struct {
	// MemoryLimitBytes caps the bytes held by kernel caches at once.
	MemoryLimitBytes int64

	// IOLimitBytesPerSec caps snapshot and artifact write throughput.
	IOLimitBytesPerSec int64
}

// Controller shares memory and IO budgets between training runs.
type Controller struct {
	mem *semaphore.Weighted
	io  *rate.Limiter
}

// NewController creates a controller enforcing cfg.
func NewController(cfg Config) *Controller {
	c := &Controller{}
	if cfg.MemoryLimitBytes > 0 {
		c.mem = semaphore.NewWeighted(cfg.MemoryLimitBytes)
	}
	if cfg.IOLimitBytesPerSec > 0 {
		c.io = rate.NewLimiter(rate.Limit(cfg.IOLimitBytesPerSec), int(cfg.IOLimitBytesPerSec))
	}
	return c
}

// TryAcquireMemory reserves bytes without blocking. It reports false when the
// reservation would exceed the limit; the caller decides how to degrade.
func (c *Controller) TryAcquireMemory(bytes int64) bool {
	if c == nil || c.mem == nil || bytes <= 0 {
		return true
	}
	return c.mem.TryAcquire(bytes)
}

// ReleaseMemory returns bytes reserved by TryAcquireMemory.
func (c *Controller) ReleaseMemory(bytes int64) {
	if c == nil || c.mem == nil || bytes <= 0 {
		return
	}
	c.mem.Release(bytes)
}

// AcquireIO blocks until bytes may be written or ctx is done. Requests larger
// than one second of budget are taken in burst-sized steps.
func (c *Controller) AcquireIO(ctx context.Context, bytes int) error {
	if c == nil || c.io == nil {
		return nil
	}
	burst := c.io.Burst()
	for bytes > 0 {
		n := min(bytes, burst)
		if err := c.io.WaitN(ctx, n); err != nil {
			return err
		}
		bytes -= n
	}
	return nil
}
