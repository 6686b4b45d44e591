package convert

import (
	"context"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/arika0093/console2svg/internal/chrome"
	"github.com/arika0093/console2svg/internal/config"
	"github.com/arika0093/console2svg/internal/logging"
	"github.com/arika0093/console2svg/internal/ptyrec"
	"github.com/arika0093/console2svg/internal/recording"
	"github.com/arika0093/console2svg/internal/replay"
	"github.com/arika0093/console2svg/internal/svgrender"
)

// Result summarizes one completed (possibly partial) conversion.
type Result struct {
	Path    string
	Partial bool
	Events  int
}

// Run executes one end-to-end conversion: acquire a recording.Session per
// cfg.Mode, then render and write it to cfg.Output.
//
// acquireSession can fail in a way that still leaves a usable session (a
// replay that overran its recorded duration, spec section 4.3/5/7): Run
// still renders and writes that session, returning both the Result and the
// error so the caller gets a correct exit code without losing the output.
func Run(ctx context.Context, cfg config.Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, &Error{Kind: KindConfig, Err: err}
	}

	sess, partial, acqErr := acquireSession(ctx, cfg)
	if sess == nil {
		return nil, acqErr
	}

	renderOpts := svgrender.Options{
		ThemeName:  cfg.ThemeName,
		ChromeName: cfg.ChromeName,
		Background: chrome.ParseBackground(cfg.Background),
		Padding:    cfg.Padding,
		FontFamily: cfg.FontFamily,
		Opacity:    cfg.Opacity,
		Crop:       cfg.Crop(),
		MinRows:    cfg.MinRows,
		FrameIndex: cfg.FrameIndex,
		FPS:        cfg.FPS,
		Loop:       cfg.Loop,
		Sleep:      cfg.Sleep,
		FadeOut:    cfg.FadeOut,
	}

	var svg string
	if cfg.Animated {
		svg = svgrender.Animated{}.Render(sess, renderOpts)
	} else {
		svg = svgrender.Static{}.Render(sess, renderOpts)
	}

	if err := os.WriteFile(cfg.Output, []byte(svg), 0644); err != nil {
		return nil, &Error{Kind: KindInputSource, Err: errors.Wrapf(err, "convert: write %s", cfg.Output)}
	}

	if partial {
		logging.Partial(cfg.Output)
	}

	res := &Result{Path: cfg.Output, Partial: partial, Events: len(sess.Events())}
	return res, acqErr
}

// acquireSession dispatches on cfg.Mode to produce a recording.Session,
// reporting whether the result is partial (cut short by cancellation or a
// replay deadline) rather than a hard failure.
func acquireSession(ctx context.Context, cfg config.Config) (*recording.Session, bool, error) {
	switch cfg.Mode {
	case config.InputCast:
		return loadCast(cfg.CastPath)
	case config.InputPipe:
		return recordPipe(cfg)
	default:
		return recordCommand(ctx, cfg)
	}
}

func loadCast(path string) (*recording.Session, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, false, &Error{Kind: KindInputSource, Err: errors.Wrapf(err, "convert: open cast file %s", path)}
	}
	defer f.Close()

	sess, err := recording.CastCodec{}.Read(f)
	if err != nil {
		return nil, false, &Error{Kind: KindCastFormat, Err: err}
	}
	return sess, false, nil
}

func recordPipe(cfg config.Config) (*recording.Session, bool, error) {
	sess, err := recording.PipeRecorder{}.Record(os.Stdin, cfg.Cols, cfg.Rows)
	if err != nil {
		return nil, false, &Error{Kind: KindInputSource, Err: err}
	}
	return sess, false, nil
}

// recordCommand spawns cfg.Command under a PTY, optionally replaying a
// previously-saved input stream, and tracks PTY-backend health across runs
// (spec section 4.3 step 6 / section 7).
//
// When replaying, the replay file's own totalDuration bounds the recording:
// wall-clock running more than one second past it trips KindReplayTimeout
// (spec section 4.3/5/7) rather than the plain cancellation/deadline paths.
func recordCommand(ctx context.Context, cfg config.Config) (*recording.Session, bool, error) {
	health := config.LoadHealth()

	opts := ptyrec.Options{ForwardIO: true, Stdout: os.Stdout}
	if cfg.SaveReplayPath != "" {
		opts.SaveReplayPath = cfg.SaveReplayPath
	}

	replayTimeout := -1.0 // totalDuration + 1s grace; -1 means no replay is active
	if cfg.ReplayInputPath != "" {
		if events, totalDuration, err := loadReplayEvents(cfg.ReplayInputPath); err == nil {
			opts.ReplayInput = replay.NewStream(events)
			replayTimeout = totalDuration + 1
		} else {
			logging.Warn("could not load replay input from %s: %v", cfg.ReplayInputPath, err)
		}
	}

	effectiveDeadline := cfg.Deadline
	if replayTimeout >= 0 && (effectiveDeadline <= 0 || replayTimeout < effectiveDeadline) {
		effectiveDeadline = replayTimeout
	}

	runCtx := ctx
	var cancel context.CancelFunc
	if effectiveDeadline > 0 {
		runCtx, cancel = context.WithTimeout(ctx, time.Duration(effectiveDeadline*float64(time.Second)))
		defer cancel()
	}

	start := time.Now()
	rec := &ptyrec.Recorder{}
	sess, events, err := rec.Record(runCtx, cfg.Command, cfg.Cols, cfg.Rows, opts)
	elapsed := time.Since(start).Seconds()

	config.MarkAttempt(&health, !rec.UsedFallback)
	if config.HasRepeatedFallbacks(&health) && !health.SuggestionLatched {
		config.LatchSuggestion(&health)
		logging.Warn("the PTY backend keeps failing on this host; recording through a plain subprocess (no raw-mode input, no resize)")
	}
	if config.ShouldClearSuggestion(&health) {
		config.ClearSuggestion(&health)
	}
	_ = config.SaveHealth(health)

	if err != nil {
		return nil, false, &Error{Kind: KindPtyRuntime, Err: err}
	}

	if cfg.SaveReplayPath != "" && len(events) > 0 {
		if err := saveReplayEvents(cfg.SaveReplayPath, events); err != nil {
			logging.Warn("could not save replay input to %s: %v", cfg.SaveReplayPath, err)
		}
	}

	switch {
	case replayTimeout >= 0 && elapsed >= replayTimeout:
		err := errors.Errorf("convert: replay ran %.2fs past its recorded %.2fs duration", elapsed, replayTimeout-1)
		return sess, true, &Error{Kind: KindReplayTimeout, Err: err}
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		return sess, true, nil
	case ctx.Err() != nil:
		return sess, true, nil
	default:
		return sess, false, nil
	}
}

func saveReplayEvents(path string, events []replay.InputEvent) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return replay.WriteFile(f, events, time.Now())
}

func loadReplayEvents(path string) ([]replay.InputEvent, float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()
	return replay.ReadFile(f)
}
