package logging

import (
	"bytes"
	"log"
	"strings"
	"testing"
	"time"
)

func captureLog(t *testing.T, fn func()) string {
	t.Helper()
	var buf bytes.Buffer
	orig := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(orig)
	fn()
	return buf.String()
}

func TestInfo_WritesFormattedLine(t *testing.T) {
	out := captureLog(t, func() { Info("recording %s", "bash") })
	if !strings.Contains(out, "recording bash") {
		t.Errorf("output = %q, want it to contain 'recording bash'", out)
	}
}

func TestWarn_PrefixesWarning(t *testing.T) {
	out := captureLog(t, func() { Warn("pty backend missing") })
	if !strings.Contains(out, "warning:") || !strings.Contains(out, "pty backend missing") {
		t.Errorf("output = %q, want a warning-prefixed message", out)
	}
}

func TestError_PrefixesError(t *testing.T) {
	out := captureLog(t, func() { Error("spawn failed: %v", "boom") })
	if !strings.Contains(out, "error:") || !strings.Contains(out, "boom") {
		t.Errorf("output = %q, want an error-prefixed message", out)
	}
}

func TestPartial_AnnouncesPath(t *testing.T) {
	out := captureLog(t, func() { Partial("out.svg") })
	if !strings.Contains(out, "Generated (partial): out.svg") {
		t.Errorf("output = %q, want the partial-output notice", out)
	}
}

func TestDone_IncludesElapsedAndSize(t *testing.T) {
	out := captureLog(t, func() { Done("out.svg", 1500*time.Millisecond, 2048) })
	if !strings.Contains(out, "out.svg") || !strings.Contains(out, "1.5s") {
		t.Errorf("output = %q, want path and elapsed duration", out)
	}
	if !strings.Contains(out, "kB") && !strings.Contains(out, "KB") {
		t.Errorf("output = %q, want a humanized byte size", out)
	}
}
