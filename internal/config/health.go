// Package config – health tracking for the PTY backend.
//
// Tracks the last N Record attempts to detect a host where the PTY backend
// (go-pty) keeps failing and console2svg keeps recording through the
// fallback subprocess path (spec section 4.3 step 6 / section 7,
// PtyUnavailable). When 2 consecutive attempts fell back, the CLI suggests
// the user check their platform's PTY prerequisites instead of repeating
// the same warning every run. The suggestion auto-clears itself after 3
// consecutive attempts that used a real PTY.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// HealthState tracks PTY-attempt history and whether the "check your PTY
// backend" suggestion is currently latched on.
type HealthState struct {
	// Attempts records the last few Record attempts (true=real PTY, false=fell back).
	Attempts []bool `json:"attempts"`
	// SuggestionLatched is true once repeated fallbacks triggered the hint.
	SuggestionLatched bool `json:"suggestion_latched"`
	// CleanSinceLatch counts real-PTY attempts since the hint was latched.
	CleanSinceLatch int `json:"clean_since_latch"`
}

const maxAttemptHistory = 5

// healthPath returns the path to ~/.console2svg-health.json.
func healthPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".console2svg-health.json")
}

// LoadHealth reads the health state from disk, or a zero-value state if
// none exists yet.
func LoadHealth() HealthState {
	p := healthPath()
	if p == "" {
		return HealthState{}
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return HealthState{}
	}
	var h HealthState
	if err := json.Unmarshal(data, &h); err != nil {
		return HealthState{}
	}
	return h
}

// SaveHealth writes the health state to disk.
func SaveHealth(h HealthState) error {
	p := healthPath()
	if p == "" {
		return nil
	}
	data, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, data, 0644)
}

// MarkAttempt records whether this run recorded through a real PTY (true)
// or fell back to a plain subprocess (false). Call once Record returns.
func MarkAttempt(h *HealthState, usedRealPty bool) {
	h.Attempts = append(h.Attempts, usedRealPty)
	if len(h.Attempts) > maxAttemptHistory {
		h.Attempts = h.Attempts[len(h.Attempts)-maxAttemptHistory:]
	}
	if usedRealPty && h.SuggestionLatched {
		h.CleanSinceLatch++
	}
}

// HasRepeatedFallbacks reports whether the last 2 attempts both fell back
// to the plain subprocess recorder.
func HasRepeatedFallbacks(h *HealthState) bool {
	n := len(h.Attempts)
	if n < 2 {
		return false
	}
	return !h.Attempts[n-1] && !h.Attempts[n-2]
}

// ShouldClearSuggestion reports whether the latched PTY hint should stop
// being shown (3 consecutive real-PTY attempts since it latched).
func ShouldClearSuggestion(h *HealthState) bool {
	return h.SuggestionLatched && h.CleanSinceLatch >= 3
}

// LatchSuggestion marks the PTY-backend hint as active and resets its
// clean-attempt counter.
func LatchSuggestion(h *HealthState) {
	h.SuggestionLatched = true
	h.CleanSinceLatch = 0
}

// ClearSuggestion turns the latched hint off.
func ClearSuggestion(h *HealthState) {
	h.SuggestionLatched = false
	h.CleanSinceLatch = 0
}
