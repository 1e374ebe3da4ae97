package counter

import "sync"

// Counter allocates monotonically increasing ids starting at 1.
type Counter struct {
	count uint64
	mu    sync.Mutex
}

func NewCounter() *Counter {
	return &Counter{}
}

// NewCounterAt seeds the counter so the next allocation is last+1.
func NewCounterAt(last uint64) *Counter {
	return &Counter{count: last}
}

func (c *Counter) Next() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.count++
	return c.count
}

func (c *Counter) Count() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}
