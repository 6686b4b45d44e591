// Package config – last-run recall.
//
// Saves the options of the most recent conversion so a user can repeat it
// without retyping every flag (cmd/console2svg's --again flag), the same
// way the teacher persists the user's tab/pane layout between runs.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// LastRun is the subset of Config worth recalling across invocations.
type LastRun struct {
	Mode       InputMode `json:"mode"`
	Command    []string  `json:"command,omitempty"`
	CastPath   string    `json:"cast_path,omitempty"`
	Output     string    `json:"output"`
	Animated   bool      `json:"animated"`
	Cols       int       `json:"cols"`
	Rows       int       `json:"rows"`
	ThemeName  string    `json:"theme"`
	ChromeName string    `json:"chrome"`
	Background string    `json:"background,omitempty"`
	Padding    float64   `json:"padding"`
	FPS        float64   `json:"fps"`
	Loop       bool      `json:"loop"`
}

// lastRunPath returns the path to ~/.console2svg-last.json.
func lastRunPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".console2svg-last.json")
}

// SaveLastRun persists cfg's recallable fields to disk.
func SaveLastRun(cfg Config) error {
	p := lastRunPath()
	if p == "" {
		return nil
	}
	lr := LastRun{
		Mode: cfg.Mode, Command: cfg.Command, CastPath: cfg.CastPath,
		Output: cfg.Output, Animated: cfg.Animated, Cols: cfg.Cols, Rows: cfg.Rows,
		ThemeName: cfg.ThemeName, ChromeName: cfg.ChromeName, Background: cfg.Background,
		Padding: cfg.Padding, FPS: cfg.FPS, Loop: cfg.Loop,
	}
	data, err := json.MarshalIndent(lr, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, data, 0644)
}

// LoadLastRun reads a previously saved LastRun, or nil if none exists or
// it cannot be parsed.
func LoadLastRun() *LastRun {
	p := lastRunPath()
	if p == "" {
		return nil
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return nil
	}
	var lr LastRun
	if err := json.Unmarshal(data, &lr); err != nil {
		return nil
	}
	if lr.Output == "" {
		return nil
	}
	return &lr
}

// ApplyTo overwrites the recallable fields of cfg with lr's values,
// leaving crop/font/frame-index/replay-path settings from cfg untouched.
func (lr LastRun) ApplyTo(cfg Config) Config {
	cfg.Mode = lr.Mode
	cfg.Command = lr.Command
	cfg.CastPath = lr.CastPath
	cfg.Output = lr.Output
	cfg.Animated = lr.Animated
	cfg.Cols = lr.Cols
	cfg.Rows = lr.Rows
	cfg.ThemeName = lr.ThemeName
	cfg.ChromeName = lr.ChromeName
	cfg.Background = lr.Background
	cfg.Padding = lr.Padding
	cfg.FPS = lr.FPS
	cfg.Loop = lr.Loop
	return cfg
}

// ClearLastRun removes the last-run file from disk.
func ClearLastRun() {
	p := lastRunPath()
	if p != "" {
		os.Remove(p)
	}
}
