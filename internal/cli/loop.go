package cli

import (
	"context"
	"sync"
)

// Loop is the terminal's foreground: functions dispatched from background
// goroutines run one at a time on the goroutine calling Run.
type Loop struct {
	tasks chan func()
	done  chan struct{}
	once  sync.Once
}

// NewLoop creates a stopped-until-run loop
func NewLoop() *Loop {
	return &Loop{
		tasks: make(chan func()),
		done:  make(chan struct{}),
	}
}

// Dispatch hands fn to the loop. It blocks until the loop accepts fn and
// drops it once the loop has stopped.
func (l *Loop) Dispatch(fn func()) {
	select {
	case l.tasks <- fn:
	case <-l.done:
	}
}

// Run executes dispatched functions until Stop is called or ctx is done
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			l.Stop()
			return ctx.Err()
		case <-l.done:
			return nil
		case fn := <-l.tasks:
			fn()
		}
	}
}

// Stop ends Run after the current function returns. Safe to call repeatedly.
func (l *Loop) Stop() {
	l.once.Do(func() { close(l.done) })
}

// Done is closed once the loop has stopped
func (l *Loop) Done() <-chan struct{} {
	return l.done
}
