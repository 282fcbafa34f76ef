package progress

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDisplay struct {
	mu       sync.Mutex
	progress []float64
	status   []string
	updated  chan struct{}
}

func newFakeDisplay() *fakeDisplay {
	return &fakeDisplay{updated: make(chan struct{}, 16)}
}

func (d *fakeDisplay) SetProgress(p float64) {
	d.mu.Lock()
	d.progress = append(d.progress, p)
	d.mu.Unlock()
}

func (d *fakeDisplay) SetStatus(s string) {
	d.mu.Lock()
	d.status = append(d.status, s)
	d.mu.Unlock()
	d.updated <- struct{}{}
}

func (d *fakeDisplay) lastStatus() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.status) == 0 {
		return ""
	}
	return d.status[len(d.status)-1]
}

type fakeSource struct {
	relay   *Relay
	total   int64
	started time.Time
}

func (s *fakeSource) Relay() *Relay        { return s.relay }
func (s *fakeSource) TotalSize() int64     { return s.total }
func (s *fakeSource) StartedAt() time.Time { return s.started }

func TestEstimate(t *testing.T) {
	tests := []struct {
		name     string
		percent  float64
		total    int64
		elapsed  time.Duration
		known    bool
		expected time.Duration
	}{
		{"no elapsed", 50, 1000, 0, false, 0},
		{"negative elapsed", 50, 1000, -time.Second, false, 0},
		{"nothing downloaded", 0, 1000, 10 * time.Second, false, 0},
		{"unknown total", 50, 0, 10 * time.Second, false, 0},
		{"half in ten seconds", 50, 1000, 10 * time.Second, true, 10 * time.Second},
		{"quarter in thirty seconds", 25, 4000, 30 * time.Second, true, 90 * time.Second},
		{"done", 100, 1000, 10 * time.Second, true, 0},
		{"floored", 30, 1000, 10 * time.Second, true, 23 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, known := Estimate(tt.percent, tt.total, tt.elapsed)
			assert.Equal(t, tt.known, known)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestEstimate_MatchesFormula(t *testing.T) {
	total := int64(73_400_320)
	for _, pct := range []float64{1, 12.5, 33.3, 64, 99.9} {
		elapsed := 17 * time.Second
		downloaded := pct / 100 * float64(total)
		want := math.Floor((float64(total) - downloaded) / (downloaded / elapsed.Seconds()))

		got, known := Estimate(pct, total, elapsed)
		require.True(t, known)
		assert.Equal(t, time.Duration(want)*time.Second, got, "percent %v", pct)
	}
}

func TestFormatRemaining(t *testing.T) {
	assert.Equal(t, "Time Remaining: 0 minutes 0 seconds", FormatRemaining(0))
	assert.Equal(t, "Time Remaining: 0 minutes 59 seconds", FormatRemaining(59*time.Second))
	assert.Equal(t, "Time Remaining: 1 minutes 30 seconds", FormatRemaining(90*time.Second))
	assert.Equal(t, "Time Remaining: 61 minutes 1 seconds", FormatRemaining(3661*time.Second))
}

func TestPoller_TickEmpty(t *testing.T) {
	display := newFakeDisplay()
	src := &fakeSource{relay: NewRelay(), total: 1000}
	p := NewPoller(src, display, clockwork.NewFakeClock(), nil)

	assert.False(t, p.Tick())
	assert.Empty(t, display.progress)
	assert.Empty(t, display.status)
}

func TestPoller_TickEstimates(t *testing.T) {
	clock := clockwork.NewFakeClock()
	display := newFakeDisplay()
	src := &fakeSource{relay: NewRelay(), total: 1000, started: clock.Now()}
	p := NewPoller(src, display, clock, nil)

	clock.Advance(10 * time.Second)
	src.relay.Push(20)
	src.relay.Push(50)

	require.True(t, p.Tick())
	assert.Equal(t, []float64{50}, display.progress, "only the latest sample is shown")
	assert.Equal(t, "Time Remaining: 0 minutes 10 seconds", display.lastStatus())
	assert.Equal(t, 0, src.relay.Len())
}

func TestPoller_TickCalculating(t *testing.T) {
	clock := clockwork.NewFakeClock()
	display := newFakeDisplay()
	src := &fakeSource{relay: NewRelay(), total: 1000, started: clock.Now()}
	p := NewPoller(src, display, clock, nil)

	// No time has passed yet
	src.relay.Push(10)
	require.True(t, p.Tick())
	assert.Equal(t, CalculatingText, display.lastStatus())

	// First chunk reports zero bytes
	clock.Advance(time.Second)
	src.relay.Push(0)
	require.True(t, p.Tick())
	assert.Equal(t, CalculatingText, display.lastStatus())
}

func TestPoller_Run(t *testing.T) {
	clock := clockwork.NewFakeClock()
	display := newFakeDisplay()
	src := &fakeSource{relay: NewRelay(), total: 1000, started: clock.Now()}

	var dispatched int
	var mu sync.Mutex
	dispatch := func(fn func()) {
		mu.Lock()
		dispatched++
		mu.Unlock()
		fn()
	}
	p := NewPoller(src, display, clock, dispatch)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan struct{})
	go func() {
		p.Run(ctx, DefaultPollInterval)
		close(done)
	}()

	require.NoError(t, clock.BlockUntilContext(ctx, 1))

	// Empty ticks keep rescheduling without touching the display
	clock.Advance(DefaultPollInterval)
	clock.Advance(DefaultPollInterval)

	src.relay.Push(25)
	clock.Advance(DefaultPollInterval)

	select {
	case <-display.updated:
	case <-ctx.Done():
		t.Fatal("display was never updated")
	}
	assert.Equal(t, "Time Remaining: 0 minutes 0 seconds", display.lastStatus())

	cancel()
	<-done

	mu.Lock()
	defer mu.Unlock()
	assert.GreaterOrEqual(t, dispatched, 1)
}
