// Package ptyrec spawns a command under a cross-platform pseudo-terminal,
// forwards the controlling console's I/O to it in real time, and times the
// exchange into a recording.Session (spec section 4.3, PtyRecorder).
package ptyrec

import (
	"context"
	"io"
	"os"
	"runtime"
	"strconv"
	"sync"
	"time"

	gopty "github.com/aymanbagabas/go-pty"
	"github.com/charmbracelet/colorprofile"
	xterm "github.com/charmbracelet/x/term"
	"github.com/muesli/cancelreader"
	"github.com/pkg/errors"

	"github.com/arika0093/console2svg/internal/recording"
	"github.com/arika0093/console2svg/internal/replay"
)

// Unavailable wraps an error from the platform PTY backend (e.g. a missing
// shared library). Recorder recovers from it locally by falling back to a
// plain subprocess; callers should not need to inspect it, but it is kept
// typed for tests and logging.
type Unavailable struct{ Cause error }

func (e *Unavailable) Error() string { return "ptyrec: pty backend unavailable: " + e.Cause.Error() }
func (e *Unavailable) Unwrap() error { return e.Cause }

// Options configures one recording.
type Options struct {
	ForwardIO      bool
	ReplayInput    *replay.Stream // nil: read the controlling console instead
	SaveReplayPath string         // when set, decoded input events are collected for the caller to persist
	Stdin          io.Reader      // overrides the controlling console's stdin (tests, non-TTY use)
	Stdout         io.Writer      // overrides the controlling console's stdout
	Deadline       time.Duration  // 0: no deadline
}

// Recorder drives one PTY-backed command recording.
type Recorder struct {
	Now func() time.Time // overridable for deterministic tests; defaults to time.Now

	// UsedFallback is set by Record once it returns, reporting whether the
	// plain-subprocess fallback ran instead of a real PTY (spec section
	// 4.3 step 6). Callers that care (internal/config's health tracking)
	// read it right after Record returns.
	UsedFallback bool
}

// Record spawns command under a cols x rows PTY and records its output
// (and, if forwarding, the console's input) into a Session until the first
// of {output EOF, child exit, ctx cancellation or deadline}. The end of
// opts.ReplayInput does not stop the recording; a replay time limit is
// applied only through ctx.
func (r *Recorder) Record(ctx context.Context, command []string, cols, rows int, opts Options) (*recording.Session, []replay.InputEvent, error) {
	now := r.Now
	if now == nil {
		now = time.Now
	}
	start := now()
	sess := recording.NewSession(cols, rows, start.Unix())

	p, err := gopty.New()
	if err != nil {
		r.UsedFallback = true
		return r.recordFallback(ctx, command, sess, start, now, opts, &Unavailable{Cause: err})
	}
	defer p.Close()

	if err := p.Resize(cols, rows); err != nil {
		return sess, nil, errors.Wrap(err, "ptyrec: resize pty")
	}

	env := append(os.Environ(),
		"COLUMNS="+strconv.Itoa(cols), "LINES="+strconv.Itoa(rows), "TERM=xterm-256color",
	)
	env = forceColorEnv(env)

	cmd := p.Command(command[0], command[1:]...)
	cmd.Env = env
	if err := cmd.Start(); err != nil {
		return sess, nil, errors.Wrap(err, "ptyrec: spawn command")
	}

	var restoreRaw func()
	if opts.ForwardIO && opts.ReplayInput == nil && runtime.GOOS != "js" {
		restoreRaw = makeRawBestEffort()
	}
	if restoreRaw != nil {
		defer restoreRaw()
	}

	if restoreEcho := disableSlaveEcho(p.Name()); restoreEcho != nil {
		defer restoreEcho()
	}

	innerCtx, cancel := context.WithCancel(ctx)
	if opts.Deadline > 0 {
		var dcancel context.CancelFunc
		innerCtx, dcancel = context.WithTimeout(innerCtx, opts.Deadline)
		defer dcancel()
	}
	defer cancel()

	var wg sync.WaitGroup
	outputDone := make(chan struct{})
	var replayEvents []replay.InputEvent
	var replayMu sync.Mutex

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(outputDone)
		runOutputPump(innerCtx, p, sess, start, now, opts)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		runInputPump(innerCtx, p, start, now, opts, func(evs []replay.InputEvent) {
			replayMu.Lock()
			replayEvents = append(replayEvents, evs...)
			replayMu.Unlock()
		})
	}()

	exitDone := make(chan error, 1)
	go func() {
		exitDone <- waitWithPolling(innerCtx, cmd)
	}()

	select {
	case <-outputDone:
	case <-exitDone:
	case <-innerCtx.Done():
	}
	cancel()

	shieldTimer := time.NewTimer(200 * time.Millisecond)
	defer shieldTimer.Stop()
	joined := make(chan struct{})
	go func() { wg.Wait(); close(joined) }()
	select {
	case <-joined:
	case <-shieldTimer.C:
	}

	replayMu.Lock()
	out := append([]replay.InputEvent(nil), replayEvents...)
	replayMu.Unlock()
	return sess, out, nil
}

func runOutputPump(ctx context.Context, p gopty.Pty, sess *recording.Session, start time.Time, now func() time.Time, opts Options) {
	buf := make([]byte, 32*1024)
	for {
		if ctx.Err() != nil {
			return
		}
		n, err := p.Read(buf)
		if n > 0 {
			elapsed := now().Sub(start).Seconds()
			if elapsed < sess.LastTime() {
				elapsed = sess.LastTime()
			}
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			sess.Append(recording.Event{Time: elapsed, Type: recording.EventOutput, Data: string(chunk)})
			if opts.ForwardIO && opts.Stdout != nil {
				opts.Stdout.Write(chunk)
			}
		}
		if err != nil {
			// A closed PTY slave (Unix EIO) after the child exits is the
			// normal termination signal, not a failure.
			return
		}
	}
}

func runInputPump(ctx context.Context, p gopty.Pty, start time.Time, now func() time.Time, opts Options, onReplayEvents func([]replay.InputEvent)) {
	var src io.Reader
	switch {
	case opts.ReplayInput != nil:
		src = opts.ReplayInput
	case opts.Stdin != nil:
		src = opts.Stdin
	default:
		src = os.Stdin
	}

	cr, err := cancelreader.NewReader(src)
	if err != nil {
		cr = nil
	}
	if cr != nil {
		go func() {
			<-ctx.Done()
			cr.Cancel()
		}()
		defer cr.Close()
	}

	var decodeRemainder []byte
	buf := make([]byte, 4096)
	for {
		if ctx.Err() != nil {
			return
		}
		var n int
		var rerr error
		if cr != nil {
			n, rerr = cr.Read(buf)
		} else {
			n, rerr = src.Read(buf)
		}
		if n > 0 {
			chunk := buf[:n]
			p.Write(chunk)
			if opts.SaveReplayPath != "" {
				data := append(decodeRemainder, chunk...)
				t := now().Sub(start).Seconds()
				events, remainder := replay.ParseInputTextPartial(data, t)
				decodeRemainder = append([]byte(nil), remainder...)
				if len(events) > 0 {
					onReplayEvents(events)
				}
			}
		}
		if rerr != nil {
			return
		}
	}
}

func waitWithPolling(ctx context.Context, cmd *gopty.Cmd) error {
	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case err := <-done:
			return err
		case <-ticker.C:
			if ctx.Err() != nil {
				return ctx.Err()
			}
		}
	}
}

func makeRawBestEffort() func() {
	fd := int(os.Stdin.Fd())
	if !xterm.IsTerminal(fd) {
		return nil
	}
	state, err := xterm.MakeRaw(fd)
	if err != nil {
		return nil
	}
	return func() { xterm.Restore(fd, state) }
}

// forceColorEnv appends NO_COLOR/FORCE_COLOR/COLORTERM overrides when our
// own stdout's detected color profile supports it, so a child that checks
// its own output stream (rather than trusting the PTY) still renders color
// (spec section 6: "NO_COLOR/FORCE_COLOR/COLORTERM may be forced on").
func forceColorEnv(env []string) []string {
	profile := colorprofile.Detect(os.Stdout, os.Environ())
	if profile > colorprofile.Ascii {
		env = append(env, "COLORTERM=truecolor", "FORCE_COLOR=1")
	}
	return env
}

// recordFallback runs command as a plain subprocess with redirected
// stdin/stdout when the PTY backend itself could not be created (spec
// section 4.3 step 6: PtyUnavailable recovers locally, no TTY support).
func (r Recorder) recordFallback(ctx context.Context, command []string, sess *recording.Session, start time.Time, now func() time.Time, opts Options, cause error) (*recording.Session, []replay.InputEvent, error) {
	return fallbackRecord(ctx, command, sess, start, now, opts, cause)
}
