package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Add(n uint64) {
	atomic.AddUint64(&c.value, n)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// Store aggregates the counters the storefront cares about. A single
// instance is created in main and shared by services and middleware.
type Store struct {
	Requests        Counter
	OrdersPlaced    Counter
	OrdersCancelled Counter
	UsersRegistered Counter
}

func NewStore() *Store {
	return &Store{}
}

// Snapshot returns current counter values for the health endpoint.
func (s *Store) Snapshot() map[string]uint64 {
	return map[string]uint64{
		"requests":         s.Requests.Load(),
		"orders_placed":    s.OrdersPlaced.Load(),
		"orders_cancelled": s.OrdersCancelled.Load(),
		"users_registered": s.UsersRegistered.Load(),
	}
}
