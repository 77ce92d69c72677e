package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value atomic.Uint64
}

func (c *Counter) Inc() {
	c.value.Add(1)
}

func (c *Counter) Load() uint64 {
	return c.value.Load()
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

// Checkout counts checkout attempts by outcome for the lifetime of the process.
type Checkout struct {
	Completed Counter
	Failed    Counter

	lastNanos atomic.Int64
}

// Observe records one checkout attempt and how long it took.
func (c *Checkout) Observe(err error, d time.Duration) {
	if err != nil {
		c.Failed.Inc()
	} else {
		c.Completed.Inc()
	}
	c.lastNanos.Store(int64(d))
}

func (c *Checkout) LastDuration() time.Duration {
	return time.Duration(c.lastNanos.Load())
}

type CheckoutSnapshot struct {
	Completed      uint64  `json:"completed"`
	Failed         uint64  `json:"failed"`
	LastDurationMs float64 `json:"lastDurationMs"`
}

func (c *Checkout) Snapshot() CheckoutSnapshot {
	return CheckoutSnapshot{
		Completed:      c.Completed.Load(),
		Failed:         c.Failed.Load(),
		LastDurationMs: float64(c.LastDuration()) / float64(time.Millisecond),
	}
}
