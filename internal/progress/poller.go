package progress

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultPollInterval is how often the foreground drains the relay
const DefaultPollInterval = 100 * time.Millisecond

// Display is the foreground-owned progress indicator
type Display interface {
	SetProgress(percent float64)
	SetStatus(text string)
}

// Source exposes the state of the current session to the poller
type Source interface {
	Relay() *Relay
	TotalSize() int64
	StartedAt() time.Time
}

// Dispatcher runs fn on the foreground context
type Dispatcher func(fn func())

// Poller periodically moves the latest sample from the relay onto the display
type Poller struct {
	source   Source
	display  Display
	clock    clockwork.Clock
	dispatch Dispatcher
}

// NewPoller creates a poller. A nil dispatch runs ticks on the Run goroutine.
func NewPoller(source Source, display Display, clock clockwork.Clock, dispatch Dispatcher) *Poller {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}
	return &Poller{
		source:   source,
		display:  display,
		clock:    clock,
		dispatch: dispatch,
	}
}

// Tick performs one poll. It must run on the foreground context.
// Returns false when no sample was queued.
func (p *Poller) Tick() bool {
	percent, ok := p.source.Relay().DrainLatest()
	if !ok {
		return false
	}

	p.display.SetProgress(percent)

	var elapsed time.Duration
	if started := p.source.StartedAt(); !started.IsZero() {
		elapsed = p.clock.Since(started)
	}

	if remaining, known := Estimate(percent, p.source.TotalSize(), elapsed); known {
		p.display.SetStatus(FormatRemaining(remaining))
	} else {
		p.display.SetStatus(CalculatingText)
	}
	return true
}

// Run schedules Tick every interval until ctx is done. It keeps running
// between downloads; an empty relay makes the tick a no-op.
func (p *Poller) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ticker := p.clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			p.dispatch(func() { p.Tick() })
		}
	}
}
