package convert

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arika0093/console2svg/internal/config"
)

func TestRun_RejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Command = nil
	_, err := Run(context.Background(), cfg)
	if err == nil {
		t.Fatal("expected a KindConfig error for a missing command")
	}
	var cerr *Error
	if !errorsAs(err, &cerr) || cerr.Kind != KindConfig {
		t.Fatalf("err = %v, want a *Error with Kind=KindConfig", err)
	}
}

func TestRun_PipeModeProducesSvg(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.svg")

	cfg := config.DefaultConfig()
	cfg.Mode = config.InputPipe
	cfg.Output = out

	withStdin(t, "hello\r\n", func() {
		res, err := Run(context.Background(), cfg)
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if res.Partial {
			t.Error("pipe-mode conversion should not be partial")
		}
	})

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Errorf("output svg missing recorded text, got %q", string(data))
	}
}

func TestRun_CastModeMissingFile(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Mode = config.InputCast
	cfg.CastPath = "/nonexistent/session.cast"
	_, err := Run(context.Background(), cfg)
	if err == nil {
		t.Fatal("expected an error for a missing cast file")
	}
	var cerr *Error
	if !errorsAs(err, &cerr) || cerr.Kind != KindInputSource {
		t.Fatalf("err = %v, want a *Error with Kind=KindInputSource", err)
	}
}

func TestRun_CastModeMalformedFile(t *testing.T) {
	dir := t.TempDir()
	cast := filepath.Join(dir, "bad.cast")
	if err := os.WriteFile(cast, []byte("not json\n"), 0644); err != nil {
		t.Fatalf("writing cast file: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.Mode = config.InputCast
	cfg.CastPath = cast
	_, err := Run(context.Background(), cfg)
	if err == nil {
		t.Fatal("expected an error for a malformed cast file")
	}
	var cerr *Error
	if !errorsAs(err, &cerr) || cerr.Kind != KindCastFormat {
		t.Fatalf("err = %v, want a *Error with Kind=KindCastFormat", err)
	}
}

func TestRun_CastModeValidFileProducesSvg(t *testing.T) {
	dir := t.TempDir()
	cast := filepath.Join(dir, "ok.cast")
	body := `{"version":2,"width":10,"height":2,"timestamp":1700000000}
[0.0,"o","hi"]
`
	if err := os.WriteFile(cast, []byte(body), 0644); err != nil {
		t.Fatalf("writing cast file: %v", err)
	}

	out := filepath.Join(dir, "out.svg")
	cfg := config.DefaultConfig()
	cfg.Mode = config.InputCast
	cfg.CastPath = cast
	cfg.Output = out

	res, err := Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Events != 1 {
		t.Errorf("Events = %d, want 1", res.Events)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !strings.Contains(string(data), "hi") {
		t.Errorf("output svg missing recorded text, got %q", string(data))
	}
}

func TestRecordCommand_ReplayOverrunSurfacesReplayTimeout(t *testing.T) {
	dir := t.TempDir()
	replayPath := filepath.Join(dir, "replay.json")
	// A replay file declaring a near-zero totalDuration, so the command's
	// actual runtime blows past totalDuration+1s (spec section 4.3/5/7).
	body := `{"version":"1","totalDuration":0,"replay":[{"time":0,"key":"a","type":"keydown"}]}`
	if err := os.WriteFile(replayPath, []byte(body), 0644); err != nil {
		t.Fatalf("writing replay file: %v", err)
	}

	out := filepath.Join(dir, "out.svg")
	cfg := config.DefaultConfig()
	cfg.Command = []string{"sh", "-c", "sleep 3; printf hi"}
	cfg.Output = out
	cfg.ReplayInputPath = replayPath

	t.Setenv("HOME", t.TempDir())
	res, err := Run(context.Background(), cfg)
	if err == nil {
		t.Fatal("expected a KindReplayTimeout error")
	}
	var cerr *Error
	if !errorsAs(err, &cerr) || cerr.Kind != KindReplayTimeout {
		t.Fatalf("err = %v, want a *Error with Kind=KindReplayTimeout", err)
	}
	if res == nil || !res.Partial {
		t.Fatal("expected a partial Result even though the replay timed out")
	}
	if _, statErr := os.Stat(out); statErr != nil {
		t.Errorf("expected output to still be written: %v", statErr)
	}
}

func TestRun_CommandModeProducesSvg(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.svg")

	cfg := config.DefaultConfig()
	cfg.Command = []string{"sh", "-c", "printf hi"}
	cfg.Output = out

	t.Setenv("HOME", t.TempDir())
	res, err := Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Partial {
		t.Error("an uninterrupted command recording should not be partial")
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !strings.Contains(string(data), "hi") {
		t.Errorf("output svg missing recorded text, got %q", string(data))
	}
}

// withStdin temporarily redirects os.Stdin to a pipe fed with body, for
// exercising PipeRecorder through Run.
func withStdin(t *testing.T, body string, fn func()) {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	orig := os.Stdin
	os.Stdin = r
	defer func() { os.Stdin = orig }()

	go func() {
		var buf bytes.Buffer
		buf.WriteString(body)
		w.Write(buf.Bytes())
		w.Close()
	}()

	fn()
}

func errorsAs(err error, target **Error) bool {
	e, ok := err.(*Error)
	if !ok {
		return false
	}
	*target = e
	return true
}
