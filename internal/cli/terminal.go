package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/ytget/yt-cropper/internal/model"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("37"))            // dark green
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))             // red
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))            // cyan
	detailStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))           // light grey
	barStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))            // blue
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69")) // purple
)

// Progress line layout
const (
	BarWidth  = 30
	BarFilled = "█"
	BarEmpty  = "░"
	SymPass   = "✓"
	SymFail   = "✗"
	SymArrow  = "→"
)

// Terminal renders a session on a terminal: a single rewritten progress line
// and a final outcome line. In plain mode every update is its own line.
type Terminal struct {
	out   io.Writer
	plain bool

	mu      sync.Mutex
	percent float64
	status  string
	drawn   bool
	err     error
	onDone  func()
}

// NewTerminal creates a terminal display writing to out
func NewTerminal(out io.Writer, plain bool) *Terminal {
	return &Terminal{out: out, plain: plain}
}

// OnDone registers fn to run after the outcome has been printed
func (t *Terminal) OnDone(fn func()) {
	t.mu.Lock()
	t.onDone = fn
	t.mu.Unlock()
}

// Err returns the failure notified last, nil after a success
func (t *Terminal) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// SetProgress implements progress.Display
func (t *Terminal) SetProgress(percent float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.percent = percent
	t.render()
}

// SetStatus implements progress.Display
func (t *Terminal) SetStatus(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.status = text
	if !t.plain {
		t.render()
	}
}

// SetEnabled implements session.Control. Disabling marks the start of a
// request; enabling closes the progress line.
func (t *Terminal) SetEnabled(enabled bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if enabled {
		t.endLine()
		return
	}
	t.percent = 0
	t.status = ""
	t.drawn = false
}

// NotifySuccess implements session.Notifier
func (t *Terminal) NotifySuccess(message string, result model.Result) {
	t.mu.Lock()
	t.endLine()
	t.err = nil
	fmt.Fprintln(t.out, successStyle.Render(SymPass+" "+message))
	fmt.Fprintln(t.out, detailStyle.Render("  "+SymArrow+" "+result.OutputPath))
	if d := result.Duration(); d > 0 {
		fmt.Fprintln(t.out, detailStyle.Render(fmt.Sprintf("  took %s", d.Round(10*time.Millisecond))))
	}
	done := t.onDone
	t.mu.Unlock()

	if done != nil {
		done()
	}
}

// NotifyError implements session.Notifier
func (t *Terminal) NotifyError(err error) {
	t.mu.Lock()
	t.endLine()
	t.err = err
	fmt.Fprintln(t.out, errorStyle.Render(SymFail+" "+err.Error()))
	done := t.onDone
	t.mu.Unlock()

	if done != nil {
		done()
	}
}

// PrintHeader prints the request summary before the download starts
func (t *Terminal) PrintHeader(req model.DownloadRequest) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.out, headerStyle.Render("yt-cropper"))
	fmt.Fprintln(t.out, infoStyle.Render(fmt.Sprintf("%s [%ds - %ds] %s %s",
		req.URL, req.StartSeconds, req.EndSeconds, SymArrow, req.OutputPath())))
}

func (t *Terminal) render() {
	if t.plain {
		fmt.Fprintf(t.out, "%.1f%%\n", t.percent)
		return
	}
	line := fmt.Sprintf("\r%s %5.1f%% %s", renderBar(t.percent), t.percent, t.status)
	fmt.Fprint(t.out, line+"\x1b[K")
	t.drawn = true
}

func (t *Terminal) endLine() {
	if t.drawn {
		fmt.Fprintln(t.out)
		t.drawn = false
	}
}

// renderBar draws a BarWidth-wide bar for percent in [0,100]
func renderBar(percent float64) string {
	filled := int(percent / 100 * BarWidth)
	filled = max(0, min(BarWidth, filled))
	return barStyle.Render(strings.Repeat(BarFilled, filled)) + strings.Repeat(BarEmpty, BarWidth-filled)
}
