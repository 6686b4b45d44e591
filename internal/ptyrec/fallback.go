package ptyrec

import (
	"context"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/pkg/errors"

	"github.com/arika0093/console2svg/internal/recording"
	"github.com/arika0093/console2svg/internal/replay"
)

// fallbackRecord runs command as a plain subprocess with redirected
// stdin/stdout/stderr merged onto a pipe. It provides no TTY: no raw input
// mode, no curses support, but it preserves the Record interface so a
// caller never has to special-case PtyUnavailable (spec section 4.3 step 6
// / section 7: "Recovered locally... not surfaced").
func fallbackRecord(ctx context.Context, command []string, sess *recording.Session, start time.Time, now func() time.Time, opts Options, cause error) (*recording.Session, []replay.InputEvent, error) {
	cmd := exec.CommandContext(ctx, command[0], command[1:]...)
	cmd.Env = forceColorEnv(os.Environ())

	outR, outW := io.Pipe()
	cmd.Stdout = outW
	cmd.Stderr = outW
	if opts.Stdin != nil {
		cmd.Stdin = opts.Stdin
	} else {
		cmd.Stdin = os.Stdin
	}

	if err := cmd.Start(); err != nil {
		return sess, nil, errors.Wrapf(err, "ptyrec: fallback spawn after pty unavailable (%v)", cause)
	}

	go func() {
		cmd.Wait()
		outW.Close()
	}()

	buf := make([]byte, 32*1024)
	for {
		n, err := outR.Read(buf)
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
			break
		}
	}
	return sess, nil, nil
}
