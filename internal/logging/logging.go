// Package logging provides console2svg's stderr output: plain progress
// lines via the standard log package (the teacher's own log.Println
// convention in main.go), plus the colored warnings and the
// "Generated (partial): <path>" notice spec section 6/7 requires, styled
// with lipgloss the way the teacher styles its TUI chrome.
package logging

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	colorable "github.com/mattn/go-colorable"
	isatty "github.com/mattn/go-isatty"
)

var (
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true)
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
	partialStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#06B6D4"))
)

var colorEnabled = true

func init() {
	Init()
}

// Init wires stderr for colored output: go-colorable unwraps Windows'
// console so ANSI escapes render instead of printing literally, and
// go-isatty disables the lipgloss styling entirely when stderr isn't a
// terminal (piped to a file, captured by CI), so redirected logs stay
// plain text instead of carrying raw escape codes.
func Init() {
	log.SetOutput(colorable.NewColorable(os.Stderr))
	log.SetFlags(0)
	colorEnabled = isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
}

func style(s lipgloss.Style, text string) string {
	if !colorEnabled {
		return text
	}
	return s.Render(text)
}

// Info logs a plain progress line, e.g. "recording: spawned `bash -lc ls`".
func Info(format string, args ...any) {
	log.Printf(format, args...)
}

// Warn logs a non-fatal warning in amber, e.g. a repeated PtyUnavailable hint.
func Warn(format string, args ...any) {
	log.Println(style(warnStyle, "warning: "+fmt.Sprintf(format, args...)))
}

// Error logs a failure in red before the process exits non-zero.
func Error(format string, args ...any) {
	log.Println(style(errStyle, "error: "+fmt.Sprintf(format, args...)))
}

// Partial announces that conversion stopped early but still produced
// usable output (spec section 7: ReplayTimeout exits 1, Cancellation
// exits 0; both still render).
func Partial(path string) {
	log.Println(style(partialStyle, fmt.Sprintf("Generated (partial): %s", path)))
}

// Done announces a completed conversion: elapsed wall time and the output
// file's size, the latter formatted with humanize.Bytes for a human-facing
// size instead of a raw byte count.
func Done(path string, elapsed time.Duration, sizeBytes int64) {
	log.Printf("Generated: %s (%s, %s)", path, elapsed.Round(time.Millisecond), humanize.Bytes(uint64(sizeBytes)))
}
