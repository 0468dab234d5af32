// Package config holds runtime settings: defaults overlaid by an optional TOML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/tilecast/entity"
	"github.com/lixenwraith/tilecast/layout"
	"github.com/lixenwraith/tilecast/vmath"
)

// DefaultSheetURL is the published people sheet
const DefaultSheetURL = "https://docs.google.com/spreadsheets/d/13VCqZ24v847ROei4yRJVfP9-7YH1U67OVNo2ql_3qyM/edit?usp=sharing"

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid config")

// HTTP tunes the sheet fetch
type HTTP struct {
	Retries   int    `toml:"retries"`
	TimeoutMS int    `toml:"timeout_ms"` // 0 waits indefinitely
	UserAgent string `toml:"user_agent"`
}

// Config is the full runtime configuration
type Config struct {
	SheetURL      string  `toml:"sheet_url"`
	FPS           int     `toml:"fps"`
	TransitionMS  int     `toml:"transition_ms"`
	Easing        string  `toml:"easing"`
	DefaultLayout string  `toml:"default_layout"`
	LoadOnStart   bool    `toml:"load_on_start"`
	Mute          bool    `toml:"mute"`
	Volume        float64 `toml:"volume"`

	Tiers  entity.Classifier `toml:"tiers"`
	HTTP   HTTP              `toml:"http"`
	Layout layout.Params     `toml:"layout"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		SheetURL:      DefaultSheetURL,
		FPS:           30,
		TransitionMS:  2000,
		Easing:        "expo_in_out",
		DefaultLayout: string(layout.Table),
		Volume:        0.5,
		Tiers:         entity.DefaultClassifier(),
		HTTP: HTTP{
			Retries:   3,
			UserAgent: "tilecast",
		},
		Layout: layout.DefaultParams(),
	}
}

// Load reads path over the defaults; an empty path returns the defaults
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	return Parse(string(data))
}

// Parse decodes TOML over the defaults and validates the result
// Unknown keys are rejected so typos do not silently fall back to defaults
func Parse(data string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%w: unknown keys %s", ErrInvalid, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges and cross-field constraints
func (c Config) Validate() error {
	switch {
	case c.SheetURL == "":
		return fmt.Errorf("%w: sheet_url is empty", ErrInvalid)
	case c.FPS < 1 || c.FPS > 240:
		return fmt.Errorf("%w: fps must be within 1..240, got %d", ErrInvalid, c.FPS)
	case c.TransitionMS < 0:
		return fmt.Errorf("%w: transition_ms must not be negative", ErrInvalid)
	case c.Volume < 0 || c.Volume > 1:
		return fmt.Errorf("%w: volume must be within 0..1, got %v", ErrInvalid, c.Volume)
	case c.Tiers.MidFrom > c.Tiers.HighFrom:
		return fmt.Errorf("%w: tiers.mid_from %v above tiers.high_from %v", ErrInvalid, c.Tiers.MidFrom, c.Tiers.HighFrom)
	case c.HTTP.Retries < 0:
		return fmt.Errorf("%w: http.retries must not be negative", ErrInvalid)
	case c.HTTP.TimeoutMS < 0:
		return fmt.Errorf("%w: http.timeout_ms must not be negative", ErrInvalid)
	}
	if _, ok := vmath.EasingByName(c.Easing); !ok {
		return fmt.Errorf("%w: unknown easing %q", ErrInvalid, c.Easing)
	}
	if _, err := layout.Parse(c.DefaultLayout); err != nil {
		return fmt.Errorf("%w: default_layout: %w", ErrInvalid, err)
	}
	if err := c.Layout.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// FrameInterval is the render tick period
func (c Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.FPS)
}

// TransitionDuration is the layout switch duration
func (c Config) TransitionDuration() time.Duration {
	return time.Duration(c.TransitionMS) * time.Millisecond
}

// EasingFunc resolves Easing; only meaningful after Validate
func (c Config) EasingFunc() vmath.EasingFunc {
	f, _ := vmath.EasingByName(c.Easing)
	return f
}

// HTTPTimeout is the per-request timeout, 0 for none
func (c Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutMS) * time.Millisecond
}

// StartLayout resolves DefaultLayout; only meaningful after Validate
func (c Config) StartLayout() layout.Name {
	n, _ := layout.Parse(c.DefaultLayout)
	return n
}
