package config

import (
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultRedrawDelay is the pause before each repaint request after a move.
	DefaultRedrawDelay = 50 * time.Millisecond

	// RedrawAttempts is fixed; some applications ignore the first repaint
	// request while their frame is still being recomputed.
	RedrawAttempts = 2

	DefaultMinWindowWidth  = 100
	DefaultMinWindowHeight = 50

	DefaultTrayTitle   = "winomove"
	DefaultTrayTooltip = "winomove: Win+Shift+Left/Right moves the focused window"
	DefaultLogLevel    = "info"
)

// Config holds the compiled-in settings. There is no config file; the
// log level is the only value that can be overridden at runtime.
type Config struct {
	RedrawDelay     time.Duration `yaml:"redraw_delay"`
	RedrawAttempts  int           `yaml:"redraw_attempts"`
	MinWindowWidth  int           `yaml:"min_window_width"`
	MinWindowHeight int           `yaml:"min_window_height"`
	TrayTitle       string        `yaml:"tray_title"`
	TrayTooltip     string        `yaml:"tray_tooltip"`
	LogLevel        string        `yaml:"log_level"`
}

// ValidationError reports an invalid setting.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Default returns the settings winomove runs with.
func Default() *Config {
	return &Config{
		RedrawDelay:     DefaultRedrawDelay,
		RedrawAttempts:  RedrawAttempts,
		MinWindowWidth:  DefaultMinWindowWidth,
		MinWindowHeight: DefaultMinWindowHeight,
		TrayTitle:       DefaultTrayTitle,
		TrayTooltip:     DefaultTrayTooltip,
		LogLevel:        DefaultLogLevel,
	}
}

// WithLogLevel returns a copy of c using level. An empty level keeps the
// current one.
func (c *Config) WithLogLevel(level string) *Config {
	out := *c
	if level = strings.TrimSpace(level); level != "" {
		out.LogLevel = strings.ToLower(level)
	}
	return &out
}

// Validate performs strict validation of the settings.
func (c *Config) Validate() error {
	if c.RedrawDelay < 0 {
		return &ValidationError{Path: "redraw_delay", Err: fmt.Errorf("redraw_delay must be >= 0")}
	}
	if c.RedrawAttempts != RedrawAttempts {
		return &ValidationError{Path: "redraw_attempts", Err: fmt.Errorf("redraw_attempts is fixed at %d", RedrawAttempts)}
	}
	if c.MinWindowWidth < 1 {
		return &ValidationError{Path: "min_window_width", Err: fmt.Errorf("min_window_width must be >= 1")}
	}
	if c.MinWindowHeight < 1 {
		return &ValidationError{Path: "min_window_height", Err: fmt.Errorf("min_window_height must be >= 1")}
	}
	if strings.TrimSpace(c.TrayTitle) == "" {
		return &ValidationError{Path: "tray_title", Err: fmt.Errorf("tray_title is required")}
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warn, error")}
	}
	return nil
}

// Marshal renders the settings as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// Print writes the settings to w as YAML.
func (c *Config) Print(w io.Writer) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
