package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap/zapcore"

	"github.com/b97tsk/cco/internal/config"
)

func TestDecode(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := config.Decode("")
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(config.Default(), cfg); diff != "" {
			t.Fatalf("config mismatch (-want +got):\n%s", diff)
		}
	})
	t.Run("Override", func(t *testing.T) {
		cfg, err := config.Decode(`
depth = 4
log_level = "debug"
tick = "5ms"
workers = 2
producers = 3
items = 7
trace = "out.trace"
`)
		if err != nil {
			t.Fatal(err)
		}
		want := config.Config{
			Depth:     4,
			LogLevel:  zapcore.DebugLevel,
			Tick:      5 * time.Millisecond,
			Workers:   2,
			Producers: 3,
			Items:     7,
			Trace:     "out.trace",
		}
		if diff := cmp.Diff(want, cfg); diff != "" {
			t.Fatalf("config mismatch (-want +got):\n%s", diff)
		}
	})
	t.Run("Errors", func(t *testing.T) {
		tests := []struct {
			text string
			want string
		}{
			{`depth = 0`, "depth must be at least 1"},
			{`workers = 0`, "workers must be at least 1"},
			{`items = -1`, "must not be negative"},
			{`tick = "0s"`, "tick must be positive"},
			{`log_level = "loud"`, "log_level"},
			{`colour = "red"`, "unknown key"},
			{`depth = `, "config:"},
		}
		for _, tt := range tests {
			_, err := config.Decode(tt.text)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Decode(%q) = %v, want an error containing %q", tt.text, err, tt.want)
			}
		}
	})
}

func TestLoad(t *testing.T) {
	name := filepath.Join(t.TempDir(), "cco.toml")
	if err := os.WriteFile(name, []byte("depth = 8\nitems = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(name)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Depth != 8 || cfg.Items != 1 || cfg.Workers != config.Default().Workers {
		t.Fatalf("got %+v", cfg)
	}

	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("Load should fail on a missing file.")
	}
}
