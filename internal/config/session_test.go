package config

import "testing"

func TestSaveAndLoadLastRun_RoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.Command = []string{"bash", "-lc", "ls"}
	cfg.Output = "demo.svg"
	cfg.ThemeName = "dracula"
	cfg.Animated = true
	cfg.FPS = 30

	if err := SaveLastRun(cfg); err != nil {
		t.Fatalf("SaveLastRun: %v", err)
	}

	lr := LoadLastRun()
	if lr == nil {
		t.Fatal("LoadLastRun returned nil after a save")
	}
	if lr.Output != "demo.svg" || lr.ThemeName != "dracula" || lr.FPS != 30 {
		t.Errorf("loaded = %+v, want output=demo.svg theme=dracula fps=30", lr)
	}
}

func TestLoadLastRun_NoFileReturnsNil(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	if lr := LoadLastRun(); lr != nil {
		t.Errorf("LoadLastRun with no prior save = %+v, want nil", lr)
	}
}

func TestApplyTo_OverwritesRecallableFieldsOnly(t *testing.T) {
	lr := LastRun{
		Mode: InputCommand, Command: []string{"bash"}, Output: "a.svg",
		ThemeName: "light", ChromeName: "macos", FPS: 15,
	}
	cfg := DefaultConfig()
	cfg.CropTop = "2px" // untouched field, should survive ApplyTo

	merged := lr.ApplyTo(cfg)
	if merged.Output != "a.svg" || merged.ThemeName != "light" || merged.ChromeName != "macos" {
		t.Errorf("merged recallable fields = %+v, want a.svg/light/macos", merged)
	}
	if merged.CropTop != "2px" {
		t.Errorf("CropTop = %q, want untouched '2px'", merged.CropTop)
	}
}

func TestClearLastRun_RemovesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg := DefaultConfig()
	cfg.Command = []string{"bash"}
	cfg.Output = "x.svg"
	if err := SaveLastRun(cfg); err != nil {
		t.Fatalf("SaveLastRun: %v", err)
	}
	ClearLastRun()
	if lr := LoadLastRun(); lr != nil {
		t.Errorf("LoadLastRun after ClearLastRun = %+v, want nil", lr)
	}
}
