package ptyrec

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/arika0093/console2svg/internal/recording"
)

func TestFallbackRecordCapturesOutput(t *testing.T) {
	sess := recording.NewSession(80, 24, 1700000000)
	start := time.Unix(1700000000, 0)
	now := func() time.Time { return start.Add(10 * time.Millisecond) }

	_, _, err := fallbackRecord(context.Background(), []string{"sh", "-c", "echo hello"}, sess, start, now, Options{}, errors.New("no pty backend"))
	if err != nil {
		t.Fatalf("fallbackRecord: %v", err)
	}
	var all strings.Builder
	for _, e := range sess.Events() {
		all.WriteString(e.Data)
	}
	if !strings.Contains(all.String(), "hello") {
		t.Fatalf("captured output = %q, want it to contain %q", all.String(), "hello")
	}
}

func TestFallbackRecordSurfacesSpawnErrors(t *testing.T) {
	sess := recording.NewSession(80, 24, 1700000000)
	start := time.Unix(1700000000, 0)
	_, _, err := fallbackRecord(context.Background(), []string{"/nonexistent/binary-xyz"}, sess, start, func() time.Time { return start }, Options{}, errors.New("no pty backend"))
	if err == nil {
		t.Fatalf("expected a spawn error for a nonexistent binary")
	}
}
