package snow

import "sync/atomic"

// Barrier is a one-shot completion latch: onComplete fires once, when the
// number of arrivals reaches the expected total. Counting and firing are
// atomic so arrivals may come from several goroutines.
type Barrier struct {
	total      atomic.Int64
	arrived    atomic.Int64
	fired      atomic.Bool
	onComplete func()
}

// NewBarrier returns a barrier waiting for total arrivals. It does not fire
// on its own when total is zero; call Check for that.
func NewBarrier(total int, onComplete func()) *Barrier {
	b := &Barrier{onComplete: onComplete}
	b.total.Store(int64(total))
	return b
}

// Arrive records one completion and reports whether it was the final one.
func (b *Barrier) Arrive() bool {
	if b.fired.Load() {
		return false
	}
	n := b.arrived.Add(1)
	if n < b.total.Load() {
		return false
	}
	return b.fire()
}

// Add raises the expected total, for units that join an in-progress barrier.
func (b *Barrier) Add(n int) {
	b.total.Add(int64(n))
}

// Check fires the barrier if the arrivals already cover the total, which is
// how an empty barrier completes.
func (b *Barrier) Check() bool {
	if b.arrived.Load() < b.total.Load() {
		return false
	}
	return b.fire()
}

// Cancel disarms the barrier; later arrivals are ignored.
func (b *Barrier) Cancel() {
	b.fired.Store(true)
}

func (b *Barrier) fire() bool {
	if !b.fired.CompareAndSwap(false, true) {
		return false
	}
	if b.onComplete != nil {
		b.onComplete()
	}
	return true
}

// Arrived returns the number of recorded arrivals.
func (b *Barrier) Arrived() int { return int(b.arrived.Load()) }

// Total returns the expected number of arrivals.
func (b *Barrier) Total() int { return int(b.total.Load()) }

// Done reports whether the barrier has fired or been cancelled.
func (b *Barrier) Done() bool { return b.fired.Load() }
