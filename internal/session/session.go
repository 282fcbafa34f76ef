// Package session runs one download-and-crop request at a time and hands
// progress and the final outcome back to the foreground.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/ytget/yt-cropper/internal/crop"
	"github.com/ytget/yt-cropper/internal/download"
	"github.com/ytget/yt-cropper/internal/logging"
	"github.com/ytget/yt-cropper/internal/model"
	"github.com/ytget/yt-cropper/internal/platform"
	"github.com/ytget/yt-cropper/internal/progress"
)

// SuccessMessage is shown when the clip has been written
const SuccessMessage = "Video successfully downloaded and cropped"

// ErrBusy is returned by Start while a request is in flight
var ErrBusy = errors.New("a download is already in progress")

// Control is the trigger the user starts a request with
type Control interface {
	SetEnabled(enabled bool)
}

// Notifier shows the outcome of a request to the user
type Notifier interface {
	NotifySuccess(message string, result model.Result)
	NotifyError(err error)
}

// Options configures a Session
type Options struct {
	Downloader download.Downloader
	Cropper    crop.Cropper
	Display    progress.Display
	Control    Control
	Notifier   Notifier

	// Dispatch runs a function on the foreground. Nil runs it inline.
	Dispatch progress.Dispatcher
	// Clock defaults to the real clock.
	Clock clockwork.Clock
	// Context is cancelled when the application exits.
	Context context.Context

	// OnStateChange observes every transition. Download and crop transitions
	// fire on the background goroutine.
	OnStateChange func(state model.State)
}

// Session owns the relay, stream handle and clock of the current request
type Session struct {
	downloader download.Downloader
	cropper    crop.Cropper
	display    progress.Display
	control    Control
	notifier   Notifier
	dispatch   progress.Dispatcher
	clock      clockwork.Clock
	ctx        context.Context
	onChange   func(model.State)

	relay *progress.Relay
	log   zerolog.Logger
	wg    sync.WaitGroup

	mu        sync.Mutex
	state     model.State
	stream    *download.Stream
	startedAt time.Time
	result    model.Result
}

// New creates an idle session
func New(opts Options) *Session {
	s := &Session{
		downloader: opts.Downloader,
		cropper:    opts.Cropper,
		display:    opts.Display,
		control:    opts.Control,
		notifier:   opts.Notifier,
		dispatch:   opts.Dispatch,
		clock:      opts.Clock,
		ctx:        opts.Context,
		onChange:   opts.OnStateChange,
		relay:      progress.NewRelay(),
		log:        logging.Get("session"),
		state:      model.StateIdle,
	}
	if s.dispatch == nil {
		s.dispatch = func(fn func()) { fn() }
	}
	if s.clock == nil {
		s.clock = clockwork.NewRealClock()
	}
	if s.ctx == nil {
		s.ctx = context.Background()
	}
	return s
}

// NewPoller creates a poller reading this session onto its display
func (s *Session) NewPoller() *progress.Poller {
	return progress.NewPoller(s, s.display, s.clock, s.dispatch)
}

// Start validates in and launches the background download. It must be called
// on the foreground. Validation failures are notified and returned without
// starting any background work.
func (s *Session) Start(in model.Input) error {
	s.mu.Lock()
	if s.state.IsActive() {
		s.mu.Unlock()
		return ErrBusy
	}
	s.state = model.StateValidating
	s.mu.Unlock()
	s.emit(model.StateValidating)

	req, err := validate(in)
	if err != nil {
		s.log.Warn().Err(err).Str("kind", string(model.KindOf(err))).Msg("Input rejected")
		s.mu.Lock()
		s.result = model.Result{State: model.StateFailed, LastError: err.Error()}
		s.mu.Unlock()
		s.setState(model.StateFailed)
		s.notifier.NotifyError(err)
		s.setState(model.StateIdle)
		return err
	}

	s.control.SetEnabled(false)
	s.display.SetProgress(0)

	stream := download.NewStream(req.URL)
	s.relay.Reset()

	now := s.clock.Now()
	id := newSessionID()
	s.mu.Lock()
	s.stream = stream
	s.startedAt = now
	s.result = model.Result{
		ID:         id,
		Request:    req,
		State:      model.StateDownloading,
		OutputPath: req.OutputPath(),
		StartedAt:  now,
	}
	s.mu.Unlock()

	log := s.log.With().Str("session", id).Logger()
	log.Info().
		Str("url", req.URL).
		Int("start", req.StartSeconds).
		Int("end", req.EndSeconds).
		Str("output", req.OutputPath()).
		Msg("Request accepted")

	s.setState(model.StateDownloading)
	s.wg.Add(1)
	go s.run(req, stream, log)
	return nil
}

// run performs download then crop on the background goroutine
func (s *Session) run(req model.DownloadRequest, stream *download.Stream, log zerolog.Logger) {
	defer s.wg.Done()

	var runErr error
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("Background task panicked")
			runErr = fmt.Errorf("unexpected failure: %v", r)
		}
		final := runErr
		s.dispatch(func() { s.finish(final, log) })
	}()

	path, err := s.downloader.Download(s.ctx, stream, req.OutputDirectory, func(bytesRemaining, totalSize int64) {
		s.relay.Push(progress.PercentFromRemaining(bytesRemaining, totalSize))
	})
	if err != nil {
		if model.KindOf(err) == model.KindUnknown {
			err = &model.DownloadError{Err: err}
		}
		runErr = err
		return
	}

	s.mu.Lock()
	s.result.SourcePath = path
	s.mu.Unlock()
	s.setState(model.StateCropping)

	err = s.cropper.CropVideo(s.ctx, path, float64(req.StartSeconds), float64(req.EndSeconds), req.OutputPath())
	if err != nil {
		if model.KindOf(err) == model.KindUnknown {
			err = &model.CropError{Err: err}
		}
		runErr = err
	}
}

// finish hands the outcome to the user on the foreground
func (s *Session) finish(err error, log zerolog.Logger) {
	defer s.control.SetEnabled(true)

	s.mu.Lock()
	s.result.FinishedAt = s.clock.Now()
	if err != nil {
		s.result.LastError = err.Error()
		s.result.State = model.StateFailed
	} else {
		s.result.State = model.StateSucceeded
	}
	result := s.result
	s.mu.Unlock()

	if err != nil {
		log.Error().Err(err).Str("kind", string(model.KindOf(err))).Dur("took", result.Duration()).Msg("Request failed")
		s.setState(model.StateFailed)
		s.notifier.NotifyError(err)
	} else {
		log.Info().Str("output", result.OutputPath).Dur("took", result.Duration()).Msg("Request completed")
		s.setState(model.StateSucceeded)
		s.notifier.NotifySuccess(SuccessMessage, result)
	}
	s.setState(model.StateIdle)
}

// Wait blocks until the background goroutine of the current request returns
func (s *Session) Wait() {
	s.wg.Wait()
}

// State returns the current state
func (s *Session) State() model.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Result returns the outcome of the most recent request
func (s *Session) Result() model.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Relay returns the progress relay shared with the background goroutine
func (s *Session) Relay() *progress.Relay {
	return s.relay
}

// TotalSize returns the size of the stream being downloaded, 0 while unknown
func (s *Session) TotalSize() int64 {
	s.mu.Lock()
	stream := s.stream
	s.mu.Unlock()
	return stream.TotalSize()
}

// StartedAt returns when the current download began
func (s *Session) StartedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startedAt
}

func (s *Session) setState(next model.State) {
	s.mu.Lock()
	prev := s.state
	s.state = next
	s.mu.Unlock()

	if !prev.CanTransition(next) {
		s.log.Warn().Str("from", prev.String()).Str("to", next.String()).Msg("Unexpected state transition")
	}
	s.emit(next)
}

func (s *Session) emit(state model.State) {
	s.log.Debug().Str("state", state.String()).Msg("State changed")
	if s.onChange != nil {
		s.onChange(state)
	}
}

// validate checks the URL and parses the times of in
func validate(in model.Input) (model.DownloadRequest, error) {
	url := strings.TrimSpace(in.URL)
	if !platform.IsValidURL(url) {
		return model.DownloadRequest{}, model.NewInvalidURLInput(url)
	}
	return model.ParseRequest(in)
}

// newSessionID generates a time-ordered id for log correlation
func newSessionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
