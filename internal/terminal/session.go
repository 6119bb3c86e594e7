// Package terminal owns the raw-mode terminal session used by the picker:
// entering and leaving raw mode, the ANSI output protocol, and key decoding.
package terminal

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"golang.org/x/term"
)

// Controller switches terminal attributes. The default implementation is
// golang.org/x/term; tests substitute a fake.
type Controller interface {
	MakeRaw(fd int) (*term.State, error)
	Restore(fd int, state *term.State) error
}

type xterm struct{}

func (xterm) MakeRaw(fd int) (*term.State, error)     { return term.MakeRaw(fd) }
func (xterm) Restore(fd int, state *term.State) error { return term.Restore(fd, state) }

// Error reports a failed terminal attribute operation.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

// Session is a scoped raw-mode acquisition. The attributes captured when the
// session opens are restored exactly once by Close, whichever exit path runs
// it first.
type Session struct {
	fd    int
	out   io.Writer
	ctl   Controller
	saved *term.State

	once     sync.Once
	closeErr error
}

// IsTerminal reports whether fd refers to a terminal.
func IsTerminal(fd int) bool { return term.IsTerminal(fd) }

// Open puts the terminal behind fd into raw mode and hides the cursor.
func Open(fd int, out io.Writer) (*Session, error) {
	return OpenWith(xterm{}, fd, out)
}

// OpenWith is Open with an explicit Controller.
func OpenWith(ctl Controller, fd int, out io.Writer) (*Session, error) {
	saved, err := ctl.MakeRaw(fd)
	if err != nil {
		return nil, &Error{Op: "enable raw mode", Err: err}
	}
	s := &Session{fd: fd, out: out, ctl: ctl, saved: saved}
	if _, err := io.WriteString(out, HideCursor); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("hide cursor: %w", err)
	}
	return s, nil
}

// Close restores the saved attributes and shows the cursor again.
// Subsequent calls return the result of the first.
func (s *Session) Close() error {
	s.once.Do(func() {
		if err := s.ctl.Restore(s.fd, s.saved); err != nil {
			s.closeErr = &Error{Op: "restore terminal", Err: err}
		}
		_, _ = io.WriteString(s.out, ShowCursor)
	})
	return s.closeErr
}

// CloseOnSignal releases the session and calls exit(1) if the process
// receives an interrupt, hangup or termination signal before stop is called.
func (s *Session) CloseOnSignal(exit func(code int)) (stop func()) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	done := make(chan struct{})
	go func() {
		select {
		case <-sigs:
			_ = s.Close()
			exit(1)
		case <-done:
		}
	}()
	var stopOnce sync.Once
	return func() {
		stopOnce.Do(func() {
			signal.Stop(sigs)
			close(done)
		})
	}
}
