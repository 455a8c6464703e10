package config

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestDefault_Validates(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if cfg.RedrawDelay != DefaultRedrawDelay {
		t.Fatalf("expected redraw delay %v, got %v", DefaultRedrawDelay, cfg.RedrawDelay)
	}
	if cfg.MinWindowWidth != 100 || cfg.MinWindowHeight != 50 {
		t.Fatalf("expected 100x50 minimum, got %dx%d", cfg.MinWindowWidth, cfg.MinWindowHeight)
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{"negative delay", func(c *Config) { c.RedrawDelay = -1 }, "redraw_delay"},
		{"one redraw", func(c *Config) { c.RedrawAttempts = 1 }, "redraw_attempts"},
		{"zero width", func(c *Config) { c.MinWindowWidth = 0 }, "min_window_width"},
		{"zero height", func(c *Config) { c.MinWindowHeight = 0 }, "min_window_height"},
		{"blank title", func(c *Config) { c.TrayTitle = "  " }, "tray_title"},
		{"unknown level", func(c *Config) { c.LogLevel = "verbose" }, "log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Path != tt.path {
				t.Errorf("expected path %q, got %q", tt.path, verr.Path)
			}
		})
	}
}

func TestWithLogLevel(t *testing.T) {
	base := Default()

	debug := base.WithLogLevel(" DEBUG ")
	if debug.LogLevel != "debug" {
		t.Fatalf("expected debug, got %q", debug.LogLevel)
	}
	if base.LogLevel != DefaultLogLevel {
		t.Fatalf("WithLogLevel modified the receiver: %q", base.LogLevel)
	}
	if kept := base.WithLogLevel(""); kept.LogLevel != DefaultLogLevel {
		t.Fatalf("expected empty level to keep %q, got %q", DefaultLogLevel, kept.LogLevel)
	}
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	if err := Default().Print(&buf); err != nil {
		t.Fatalf("print: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"redraw_delay: 50ms",
		"redraw_attempts: 2",
		"min_window_width: 100",
		"min_window_height: 50",
		"log_level: info",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}
