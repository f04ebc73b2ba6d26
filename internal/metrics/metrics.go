package metrics

import "sync"

// Counters is an in-memory counter registry. Increments never block and
// never fail, so emission can be fire-and-forget from the engine's point of
// view.
type Counters struct {
	mu     sync.Mutex
	counts map[string]int64
}

func NewCounters() *Counters {
	return &Counters{counts: make(map[string]int64)}
}

func (c *Counters) EmitMetric(name string, delta int) {
	c.mu.Lock()
	c.counts[name] += int64(delta)
	c.mu.Unlock()
}

// Snapshot returns a copy of all counters.
func (c *Counters) Snapshot() map[string]int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]int64, len(c.counts))
	for k, v := range c.counts {
		out[k] = v
	}
	return out
}

// Noop discards all emissions.
type Noop struct{}

func (Noop) EmitMetric(name string, delta int) {}
