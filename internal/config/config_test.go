package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"livefeed/internal/window"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("LIVEFEED_DATA_DIR", "")
	t.Setenv("LIVEFEED_LOG_PATH", "")
	t.Setenv("LIVEFEED_BUFFER_MAX", "")
	t.Setenv("LIVEFEED_TRANSCRIBE", "")
}

func TestDefault_Values(t *testing.T) {
	cfg := Default()
	if cfg.BufferMax != 50 {
		t.Fatalf("BufferMax = %d, want 50", cfg.BufferMax)
	}
	if cfg.NameColumnWidth != 11 {
		t.Fatalf("NameColumnWidth = %d, want 11", cfg.NameColumnWidth)
	}
	if cfg.MinWidth != 30 {
		t.Fatalf("MinWidth = %d, want 30", cfg.MinWidth)
	}
	if cfg.PollInterval() != 150*time.Millisecond {
		t.Fatalf("PollInterval = %v, want 150ms", cfg.PollInterval())
	}
	if cfg.StatusTTL() != 5*time.Second {
		t.Fatalf("StatusTTL = %v, want 5s", cfg.StatusTTL())
	}
	if cfg.Simulate.Chatters != 5 || cfg.Simulate.DelayLowerMS != 150 || cfg.Simulate.DelayUpperMS != 1500 {
		t.Fatalf("unexpected simulate defaults: %+v", cfg.Simulate)
	}
}

func TestLoad_MissingFile_UsesDefaults(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Source != path {
		t.Fatalf("cfg.Source = %q, want %q", cfg.Source, path)
	}
	if cfg.BufferMax != 50 {
		t.Fatalf("cfg.BufferMax = %d, want 50", cfg.BufferMax)
	}
}

func TestLoad_FromTOML(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
buffer_max = 20
name_column_width = 40
show_timestamps = true
link_limit = 100

[simulate]
chatters = 2
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BufferMax != 20 {
		t.Fatalf("BufferMax = %d, want 20", cfg.BufferMax)
	}
	if cfg.NameColumnWidth != window.MaxColumnWidth {
		t.Fatalf("NameColumnWidth = %d, want clamp to %d", cfg.NameColumnWidth, window.MaxColumnWidth)
	}
	if !cfg.ShowTimestamps {
		t.Fatalf("ShowTimestamps = false, want true")
	}
	if cfg.LinkLimit != 100 {
		t.Fatalf("LinkLimit = %d, want 100", cfg.LinkLimit)
	}
	if cfg.Simulate.Chatters != 2 {
		t.Fatalf("Simulate.Chatters = %d, want 2", cfg.Simulate.Chatters)
	}
	if cfg.Simulate.LengthUpper != 300 {
		t.Fatalf("Simulate.LengthUpper = %d, want default 300", cfg.Simulate.LengthUpper)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("LIVEFEED_DATA_DIR", dir)
	t.Setenv("LIVEFEED_BUFFER_MAX", "7")
	t.Setenv("LIVEFEED_TRANSCRIBE", "true")

	cfg, err := Load(filepath.Join(dir, "missing.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataDir != dir {
		t.Fatalf("DataDir = %q, want %q", cfg.DataDir, dir)
	}
	if cfg.BufferMax != 7 {
		t.Fatalf("BufferMax = %d, want 7", cfg.BufferMax)
	}
	if !cfg.Transcribe {
		t.Fatalf("Transcribe = false, want true")
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("buffer_max = ["), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestApplyKVOverrides(t *testing.T) {
	cases := []struct {
		name      string
		overrides []string
		check     func(Config) bool
	}{
		{"buffer", []string{"buffer_max=9"}, func(c Config) bool { return c.BufferMax == 9 }},
		{"column clamp", []string{"name_column_width=1"}, func(c Config) bool { return c.NameColumnWidth == window.MinColumnWidth }},
		{"min width floor", []string{"min_width=0"}, func(c Config) bool { return c.MinWidth == 1 }},
		{"timestamps", []string{"show_timestamps=true"}, func(c Config) bool { return c.ShowTimestamps }},
		{"nested", []string{"simulate.chatters=3"}, func(c Config) bool { return c.Simulate.Chatters == 3 }},
		{"bad value ignored", []string{"buffer_max=abc"}, func(c Config) bool { return c.BufferMax == 50 }},
		{"missing equals ignored", []string{"buffer_max"}, func(c Config) bool { return c.BufferMax == 50 }},
		{"unknown key ignored", []string{"nope=1"}, func(c Config) bool { return c == Default() }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ApplyKVOverrides(Default(), tc.overrides)
			if !tc.check(got) {
				t.Fatalf("unexpected config after %v: %+v", tc.overrides, got)
			}
		})
	}
}

func TestValidate_SimulateBounds(t *testing.T) {
	cfg := Default()
	cfg.Simulate.DelayLowerMS = 500
	cfg.Simulate.DelayUpperMS = 100
	cfg.Simulate.LengthLower = 0
	cfg.Simulate.LengthUpper = 0

	got := cfg.Validate()
	if got.Simulate.DelayUpperMS <= got.Simulate.DelayLowerMS {
		t.Fatalf("delay range not fixed: %+v", got.Simulate)
	}
	if got.Simulate.LengthLower != 1 || got.Simulate.LengthUpper != 2 {
		t.Fatalf("length range not fixed: %+v", got.Simulate)
	}
}

func TestSave_RoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "sub", "config.toml")

	cfg := Default()
	cfg.BufferMax = 33
	cfg.ShowTimestamps = true
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.BufferMax != 33 || !loaded.ShowTimestamps {
		t.Fatalf("unexpected loaded config: %+v", loaded)
	}
}
