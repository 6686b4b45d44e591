//go:build darwin || freebsd || netbsd || openbsd

package ptyrec

import (
	"os"

	"golang.org/x/sys/unix"
)

// disableSlaveEcho clears ECHO on the PTY slave at name, so the slave's own
// line discipline doesn't echo forwarded keystrokes a second time on top of
// whatever the child writes back (spec section 4.3 step 3). It returns a
// restore func, or nil if the slave could not be reconfigured.
func disableSlaveEcho(name string) func() {
	if name == "" {
		return nil
	}
	f, err := os.OpenFile(name, os.O_RDWR, 0)
	if err != nil {
		return nil
	}

	orig, err := unix.IoctlGetTermios(int(f.Fd()), unix.TIOCGETA)
	if err != nil {
		f.Close()
		return nil
	}
	raw := *orig
	raw.Lflag &^= unix.ECHO
	if err := unix.IoctlSetTermios(int(f.Fd()), unix.TIOCSETA, &raw); err != nil {
		f.Close()
		return nil
	}
	return func() {
		unix.IoctlSetTermios(int(f.Fd()), unix.TIOCSETA, orig)
		f.Close()
	}
}
