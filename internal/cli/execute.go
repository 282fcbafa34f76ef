package cli

import (
	"context"
	"errors"
	"io"

	"github.com/jonboulle/clockwork"

	"github.com/ytget/yt-cropper/internal/crop"
	"github.com/ytget/yt-cropper/internal/download"
	"github.com/ytget/yt-cropper/internal/model"
	"github.com/ytget/yt-cropper/internal/progress"
	"github.com/ytget/yt-cropper/internal/session"
)

// ErrReported marks failures that were already printed to the terminal
var ErrReported = errors.New("failure already reported")

type reportedError struct{ error }

func (e reportedError) Is(target error) bool { return target == ErrReported }

func (e reportedError) Unwrap() error { return e.error }

// ExecConfig configures one terminal run
type ExecConfig struct {
	Input      model.Input
	Downloader download.Downloader
	Cropper    crop.Cropper
	Out        io.Writer
	// Plain prints every progress sample on its own line instead of a bar.
	Plain bool
	Clock clockwork.Clock
}

// Execute runs one download-and-crop request with the calling goroutine as
// the foreground and returns once the outcome has been printed.
func Execute(ctx context.Context, cfg ExecConfig) (model.Result, error) {
	loop := NewLoop()
	term := NewTerminal(cfg.Out, cfg.Plain)
	term.OnDone(loop.Stop)

	s := session.New(session.Options{
		Downloader: cfg.Downloader,
		Cropper:    cfg.Cropper,
		Display:    term,
		Control:    term,
		Notifier:   term,
		Dispatch:   loop.Dispatch,
		Clock:      cfg.Clock,
		Context:    ctx,
	})

	if err := s.Start(cfg.Input); err != nil {
		return s.Result(), reportedError{err}
	}
	term.PrintHeader(s.Result().Request)

	pollCtx, stopPolling := context.WithCancel(ctx)
	defer stopPolling()
	if cfg.Plain {
		go func() {
			for p := range s.Relay().Samples(pollCtx) {
				loop.Dispatch(func() { term.SetProgress(p) })
			}
		}()
	} else {
		go s.NewPoller().Run(pollCtx, progress.DefaultPollInterval)
	}

	runErr := loop.Run(ctx)
	stopPolling()
	s.Wait()

	if runErr != nil {
		return s.Result(), runErr
	}
	if err := term.Err(); err != nil {
		return s.Result(), reportedError{err}
	}
	return s.Result(), nil
}
