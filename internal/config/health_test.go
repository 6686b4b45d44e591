package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestMarkAttempt_AppendsEntry(t *testing.T) {
	h := HealthState{}
	MarkAttempt(&h, true)

	if len(h.Attempts) != 1 {
		t.Fatalf("Attempts length = %d, want 1", len(h.Attempts))
	}
	if h.Attempts[0] != true {
		t.Error("MarkAttempt(true) should record a real-PTY entry")
	}
}

func TestMarkAttempt_CapsHistory(t *testing.T) {
	h := HealthState{Attempts: []bool{true, true, true, true, true}}
	MarkAttempt(&h, false)

	if len(h.Attempts) != maxAttemptHistory {
		t.Errorf("Attempts length = %d, want %d", len(h.Attempts), maxAttemptHistory)
	}
	if h.Attempts[len(h.Attempts)-1] != false {
		t.Error("Last entry should be the fallback attempt just recorded")
	}
}

func TestMarkAttempt_IncrementsCleanCounterOnlyWhenLatched(t *testing.T) {
	h := HealthState{SuggestionLatched: true, CleanSinceLatch: 1}
	MarkAttempt(&h, true)
	if h.CleanSinceLatch != 2 {
		t.Errorf("CleanSinceLatch = %d, want 2", h.CleanSinceLatch)
	}

	h2 := HealthState{SuggestionLatched: false}
	MarkAttempt(&h2, true)
	if h2.CleanSinceLatch != 0 {
		t.Errorf("CleanSinceLatch = %d, want 0 (not latched)", h2.CleanSinceLatch)
	}
}

func TestHasRepeatedFallbacks_TwoInARow(t *testing.T) {
	h := HealthState{Attempts: []bool{true, false, false}}
	if !HasRepeatedFallbacks(&h) {
		t.Error("should detect 2 consecutive fallback attempts")
	}
}

func TestHasRepeatedFallbacks_OnlyOneFallback(t *testing.T) {
	h := HealthState{Attempts: []bool{false, true, false}}
	if HasRepeatedFallbacks(&h) {
		t.Error("should not trigger on a single fallback sandwiched between real attempts")
	}
}

func TestHasRepeatedFallbacks_TooFewAttempts(t *testing.T) {
	h := HealthState{Attempts: []bool{false}}
	if HasRepeatedFallbacks(&h) {
		t.Error("should not trigger with only 1 attempt recorded")
	}
}

func TestShouldClearSuggestion(t *testing.T) {
	tests := []struct {
		name    string
		latched bool
		clean   int
		want    bool
	}{
		{"not latched", false, 5, false},
		{"latched, 2 clean", true, 2, false},
		{"latched, 3 clean", true, 3, true},
		{"latched, 5 clean", true, 5, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := HealthState{SuggestionLatched: tt.latched, CleanSinceLatch: tt.clean}
			if got := ShouldClearSuggestion(&h); got != tt.want {
				t.Errorf("ShouldClearSuggestion() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLatchAndClearSuggestion(t *testing.T) {
	h := HealthState{CleanSinceLatch: 5}
	LatchSuggestion(&h)
	if !h.SuggestionLatched || h.CleanSinceLatch != 0 {
		t.Errorf("after LatchSuggestion: latched=%v clean=%d, want true/0", h.SuggestionLatched, h.CleanSinceLatch)
	}

	ClearSuggestion(&h)
	if h.SuggestionLatched || h.CleanSinceLatch != 0 {
		t.Errorf("after ClearSuggestion: latched=%v clean=%d, want false/0", h.SuggestionLatched, h.CleanSinceLatch)
	}
}

func TestHealthState_JSONRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "health.json")

	original := HealthState{
		Attempts:          []bool{true, false, true},
		SuggestionLatched: true,
		CleanSinceLatch:   2,
	}
	data, err := json.MarshalIndent(original, "", "  ")
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	readData, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	var loaded HealthState
	if err := json.Unmarshal(readData, &loaded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if len(loaded.Attempts) != 3 {
		t.Errorf("Attempts length = %d, want 3", len(loaded.Attempts))
	}
	if !loaded.SuggestionLatched || loaded.CleanSinceLatch != 2 {
		t.Errorf("loaded = %+v, want latched/2", loaded)
	}
}

func TestFullLifecycle(t *testing.T) {
	h := HealthState{}

	MarkAttempt(&h, false)
	MarkAttempt(&h, false)
	if !HasRepeatedFallbacks(&h) {
		t.Fatal("should detect repeated fallbacks after 2 in a row")
	}

	LatchSuggestion(&h)

	MarkAttempt(&h, true)
	if h.CleanSinceLatch != 1 {
		t.Errorf("CleanSinceLatch = %d, want 1", h.CleanSinceLatch)
	}
	MarkAttempt(&h, true)
	if ShouldClearSuggestion(&h) {
		t.Error("should not clear after only 2 clean attempts")
	}
	MarkAttempt(&h, true)
	if !ShouldClearSuggestion(&h) {
		t.Error("should clear after 3 clean attempts")
	}

	ClearSuggestion(&h)
	if h.SuggestionLatched {
		t.Error("SuggestionLatched should be false after ClearSuggestion")
	}
}
