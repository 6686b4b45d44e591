// Command console2svg records a terminal session — a live command, a piped
// stream, or a pre-recorded asciicast v2 file — and renders it to a static
// or animated SVG.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/arika0093/console2svg/internal/config"
	"github.com/arika0093/console2svg/internal/convert"
	"github.com/arika0093/console2svg/internal/logging"
)

func main() {
	logging.Init()
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		castPath        string
		pipeMode        bool
		output          string
		animated        bool
		cols, rows      int
		themeName       string
		chromeName      string
		background      string
		padding         float64
		fontFamily      string
		opacity         float64
		cropTop         string
		cropBottom      string
		cropLeft        string
		cropRight       string
		minRows         int
		fps             float64
		loop            bool
		sleep           float64
		fadeOut         float64
		frame           int
		saveReplayPath  string
		replayInputPath string
		deadline        float64
		again           bool
	)

	root := &cobra.Command{
		Use:   "console2svg [flags] -- command [args...]",
		Short: "console2svg — render a terminal session to SVG",
		Long:  "Records a terminal session (a live command, piped stdin, or a replayed asciicast file) and renders it to a static or animated SVG.",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadOverrides(config.DefaultConfig())

			if again {
				if lr := config.LoadLastRun(); lr != nil {
					cfg = lr.ApplyTo(cfg)
				} else {
					logging.Warn("--again requested but no previous run was recorded; using defaults")
				}
			}

			switch {
			case castPath != "":
				cfg.Mode = config.InputCast
				cfg.CastPath = castPath
			case pipeMode:
				cfg.Mode = config.InputPipe
			case len(args) > 0:
				cfg.Mode = config.InputCommand
				cfg.Command = args
			}

			if cmd.Flags().Changed("output") {
				cfg.Output = output
			}
			if cmd.Flags().Changed("animated") {
				cfg.Animated = animated
			}
			if cmd.Flags().Changed("cols") {
				cfg.Cols = cols
			}
			if cmd.Flags().Changed("rows") {
				cfg.Rows = rows
			}
			if cmd.Flags().Changed("theme") {
				cfg.ThemeName = themeName
			}
			if cmd.Flags().Changed("chrome") {
				cfg.ChromeName = chromeName
			}
			if cmd.Flags().Changed("background") {
				cfg.Background = background
			}
			if cmd.Flags().Changed("padding") {
				cfg.Padding = padding
			}
			if cmd.Flags().Changed("font-family") {
				cfg.FontFamily = fontFamily
			}
			if cmd.Flags().Changed("opacity") {
				cfg.Opacity = opacity
			}
			cfg.CropTop = cropTop
			cfg.CropBottom = cropBottom
			cfg.CropLeft = cropLeft
			cfg.CropRight = cropRight
			if cmd.Flags().Changed("min-rows") {
				cfg.MinRows = minRows
			}
			if cmd.Flags().Changed("fps") {
				cfg.FPS = fps
			}
			if cmd.Flags().Changed("loop") {
				cfg.Loop = loop
			}
			if cmd.Flags().Changed("sleep") {
				cfg.Sleep = sleep
			}
			if cmd.Flags().Changed("fade-out") {
				cfg.FadeOut = fadeOut
			}
			if cmd.Flags().Changed("frame") {
				cfg.FrameIndex = &frame
			}
			cfg.SaveReplayPath = saveReplayPath
			cfg.ReplayInputPath = replayInputPath
			cfg.Deadline = deadline

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			start := time.Now()
			res, err := convert.Run(ctx, cfg)
			if err != nil {
				var cerr *convert.Error
				if errors.As(err, &cerr) {
					logging.Error("%v", cerr)
					if res != nil {
						// e.g. KindReplayTimeout: output was still
						// rendered and written, but this is exit 1.
						_ = config.SaveLastRun(cfg)
					}
					os.Exit(cerr.Kind.ExitCode())
				}
				logging.Error("%v", err)
				os.Exit(1)
			}

			_ = config.SaveLastRun(cfg)

			info, statErr := os.Stat(res.Path)
			var size int64
			if statErr == nil {
				size = info.Size()
			}
			if !res.Partial {
				logging.Done(res.Path, time.Since(start), size)
			}
			return nil
		},
	}

	flags := root.Flags()
	flags.StringVar(&castPath, "cast", "", "render a previously recorded asciicast v2 file instead of spawning a command")
	flags.BoolVar(&pipeMode, "pipe", false, "record whatever arrives on stdin until EOF, timestamping each read")
	flags.StringVarP(&output, "output", "o", "out.svg", "output SVG path")
	flags.BoolVar(&animated, "animated", false, "render an animated SVG instead of a single static frame")
	flags.IntVar(&cols, "cols", 80, "terminal width in columns")
	flags.IntVar(&rows, "rows", 24, "terminal height in rows")
	flags.StringVar(&themeName, "theme", "dark", "color theme name")
	flags.StringVar(&chromeName, "chrome", "none", "window chrome: none, macos, windows")
	flags.StringVar(&background, "background", "", "desktop background: #RRGGBB, \"#RRGGBB,#RRGGBB\", or an image path/URL")
	flags.Float64Var(&padding, "padding", 0, "padding in pixels around the cropped terminal content")
	flags.StringVar(&fontFamily, "font-family", "", "CSS font-family for cell text")
	flags.Float64Var(&opacity, "opacity", 1, "opacity of the rendered terminal content (0..1)")
	flags.StringVar(&cropTop, "crop-top", "", "rows to crop from the top: a count, or a text pattern with an optional :+N/:-N offset")
	flags.StringVar(&cropBottom, "crop-bottom", "", "rows to crop from the bottom")
	flags.StringVar(&cropLeft, "crop-left", "", "columns to crop from the left")
	flags.StringVar(&cropRight, "crop-right", "", "columns to crop from the right")
	flags.IntVar(&minRows, "min-rows", 0, "minimum rows to keep after cropping")
	flags.Float64Var(&fps, "fps", 10, "animation frame rate (animated output only)")
	flags.BoolVar(&loop, "loop", false, "loop the animation (animated output only)")
	flags.Float64Var(&sleep, "sleep", 1, "seconds to hold the final frame before looping or ending")
	flags.Float64Var(&fadeOut, "fade-out", 0, "seconds to fade out the final frame")
	flags.IntVar(&frame, "frame", 0, "render a single event index instead of the last (static output only)")
	flags.StringVar(&saveReplayPath, "save-input", "", "save recorded keystrokes to this path for later replay")
	flags.StringVar(&replayInputPath, "replay-input", "", "replay a previously saved keystroke file instead of reading the terminal live")
	flags.Float64Var(&deadline, "deadline", 0, "stop recording after this many seconds and render whatever was captured (0 disables)")
	flags.BoolVar(&again, "again", false, "recall the flags from the last run instead of specifying them again")

	root.AddCommand(versionCmd())
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print console2svg's version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("console2svg (dev build)")
			return nil
		},
	}
}
