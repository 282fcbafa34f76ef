package progress

import (
	"context"
	"iter"
	"sync"
)

// Relay is an unbounded FIFO of percentage samples in [0,100].
// Push never blocks; consumers dequeue without blocking.
type Relay struct {
	mu     sync.Mutex
	items  []float64
	notify chan struct{}
}

// NewRelay creates an empty relay
func NewRelay() *Relay {
	return &Relay{notify: make(chan struct{}, 1)}
}

// PercentFromRemaining converts a chunk callback into a percentage:
// (total - remaining) / total * 100, clamped to [0,100]. Unknown totals yield 0.
func PercentFromRemaining(bytesRemaining, totalSize int64) float64 {
	if totalSize <= 0 {
		return 0
	}
	p := float64(totalSize-bytesRemaining) / float64(totalSize) * 100
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}

// Push enqueues a sample
func (r *Relay) Push(percent float64) {
	r.mu.Lock()
	r.items = append(r.items, percent)
	r.mu.Unlock()

	select {
	case r.notify <- struct{}{}:
	default:
	}
}

// TryPop dequeues the oldest sample, reporting false when the relay is empty
func (r *Relay) TryPop() (float64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.items) == 0 {
		return 0, false
	}
	p := r.items[0]
	r.items = r.items[1:]
	if len(r.items) == 0 {
		r.items = nil
	}
	return p, true
}

// DrainLatest empties the relay and returns the most recently pushed sample.
// Older samples are stale by the time the consumer runs and are discarded.
func (r *Relay) DrainLatest() (float64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.items) == 0 {
		return 0, false
	}
	p := r.items[len(r.items)-1]
	r.items = nil
	return p, true
}

// Len returns the number of queued samples
func (r *Relay) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// Reset discards all queued samples
func (r *Relay) Reset() {
	r.mu.Lock()
	r.items = nil
	r.mu.Unlock()
}

// Samples exposes the relay as a lazy sequence consumed at the caller's pace.
// The sequence waits for new samples until ctx is done, then yields whatever
// is still queued and ends.
func (r *Relay) Samples(ctx context.Context) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		for {
			for {
				p, ok := r.TryPop()
				if !ok {
					break
				}
				if !yield(p) {
					return
				}
			}

			select {
			case <-r.notify:
			case <-ctx.Done():
				for {
					p, ok := r.TryPop()
					if !ok || !yield(p) {
						return
					}
				}
			}
		}
	}
}
