package reels

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the fixed parameters of a machine. It is passed by value to
// NewMachine and never changes afterwards.
type Config struct {
	ReelCount      int     `yaml:"reel_count"`
	VisibleSymbols int     `yaml:"visible_symbols"`
	ReelWidth      float64 `yaml:"reel_width"`
	SymbolSize     float64 `yaml:"symbol_size"`

	// BaseRotations is how many symbol heights every reel travels per spin;
	// reel i travels an extra i*Stagger.
	BaseRotations float64 `yaml:"base_rotations"`
	Stagger       float64 `yaml:"stagger"`

	// DurationScale converts the provider's delay value to milliseconds.
	DurationScale float64 `yaml:"duration_scale"`
	BackOutAmount float64 `yaml:"backout_amount"`
	BlurScale     float64 `yaml:"blur_scale"`

	// Easing names the curve reels settle with; see EasingByName.
	Easing string `yaml:"easing"`

	// FallbackDelay replaces the provider's delay when the request fails.
	// Delays above MaxDelay are treated as failures too.
	FallbackDelay float64       `yaml:"fallback_delay"`
	MaxDelay      float64       `yaml:"max_delay"`
	FetchTimeout  time.Duration `yaml:"fetch_timeout"`
	DelayURL      string        `yaml:"delay_url"`

	ButtonMargin  float64  `yaml:"button_margin"`
	GridLineWidth float64  `yaml:"grid_line_width"`
	SymbolPaths   []string `yaml:"symbol_paths"`
	Background    string   `yaml:"background"`

	// ButtonText is the idle play button label; ButtonUnit follows the
	// millisecond count once a spin has started.
	ButtonText string `yaml:"button_text"`
	ButtonUnit string `yaml:"button_unit"`

	Debug bool `yaml:"debug"`
}

// DefaultConfig returns the stock five-reel, three-row layout.
func DefaultConfig() Config {
	return Config{
		ReelCount:      5,
		VisibleSymbols: 3,
		ReelWidth:      200,
		SymbolSize:     200,
		BaseRotations:  10,
		Stagger:        5,
		DurationScale:  1000,
		BackOutAmount:  0.5,
		BlurScale:      8,
		Easing:         EasingBackOut,
		FallbackDelay:  1,
		MaxDelay:       DefaultMaxDelay,
		FetchTimeout:   5 * time.Second,
		DelayURL:       "https://victoria-soft-test.iceiy.com/server",
		ButtonMargin:   100,
		GridLineWidth:  10,
		SymbolPaths: []string{
			"assets/symbols/icon-kiwi.png",
			"assets/symbols/icon-pear.png",
			"assets/symbols/icon-apple.png",
			"assets/symbols/icon-banana.png",
			"assets/symbols/icon-cherries.png",
			"assets/symbols/icon-strawberry.png",
			"assets/symbols/icon-watermelon.png",
			"assets/symbols/icon-jackpot-machine.png",
		},
		Background: "assets/imgs/background.png",
		ButtonText: "старт",
		ButtonUnit: "мс",
	}
}

// LoadConfig reads a YAML file over DefaultConfig. Keys absent from the file
// keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid field.
func (c Config) Validate() error {
	var errs []error
	if c.ReelCount < 1 {
		errs = append(errs, fmt.Errorf("reel_count must be positive, got %d", c.ReelCount))
	}
	if c.VisibleSymbols < 1 {
		errs = append(errs, fmt.Errorf("visible_symbols must be positive, got %d", c.VisibleSymbols))
	}

	floats := []struct {
		name string
		v    float64
	}{
		{"reel_width", c.ReelWidth},
		{"symbol_size", c.SymbolSize},
		{"base_rotations", c.BaseRotations},
		{"stagger", c.Stagger},
		{"duration_scale", c.DurationScale},
		{"backout_amount", c.BackOutAmount},
		{"blur_scale", c.BlurScale},
		{"fallback_delay", c.FallbackDelay},
		{"max_delay", c.MaxDelay},
		{"button_margin", c.ButtonMargin},
		{"grid_line_width", c.GridLineWidth},
	}
	finite := true
	for _, f := range floats {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			errs = append(errs, fmt.Errorf("%s must be finite, got %g", f.name, f.v))
			finite = false
		}
	}

	if c.SymbolSize <= 0 {
		errs = append(errs, fmt.Errorf("symbol_size must be positive, got %g", c.SymbolSize))
	}
	if c.ReelWidth <= 0 {
		errs = append(errs, fmt.Errorf("reel_width must be positive, got %g", c.ReelWidth))
	}
	if c.BaseRotations <= 0 {
		errs = append(errs, fmt.Errorf("base_rotations must be positive, got %g", c.BaseRotations))
	}
	if c.Stagger < 0 {
		errs = append(errs, fmt.Errorf("stagger must not be negative, got %g", c.Stagger))
	}
	if c.DurationScale <= 0 {
		errs = append(errs, fmt.Errorf("duration_scale must be positive, got %g", c.DurationScale))
	}
	if c.BackOutAmount <= 0 {
		errs = append(errs, fmt.Errorf("backout_amount must be positive, got %g", c.BackOutAmount))
	}
	if c.BlurScale < 0 {
		errs = append(errs, fmt.Errorf("blur_scale must not be negative, got %g", c.BlurScale))
	}
	if c.FallbackDelay <= 0 {
		errs = append(errs, fmt.Errorf("fallback_delay must be positive, got %g", c.FallbackDelay))
	}
	if c.MaxDelay < c.FallbackDelay {
		errs = append(errs, fmt.Errorf("max_delay %g is below fallback_delay %g", c.MaxDelay, c.FallbackDelay))
	}
	if finite && c.DurationScale > 0 && c.MaxDelay*c.DurationScale > maxSpinMillis {
		errs = append(errs, fmt.Errorf("max_delay %g times duration_scale %g overflows a spin duration", c.MaxDelay, c.DurationScale))
	}
	if c.FetchTimeout < 0 {
		errs = append(errs, fmt.Errorf("fetch_timeout must not be negative, got %v", c.FetchTimeout))
	}
	if _, err := EasingByName(c.Easing, c.BackOutAmount); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// maxSpinMillis is the longest spin, in milliseconds, a time.Duration holds.
const maxSpinMillis = float64(math.MaxInt64 / int64(time.Millisecond))

// SpinDuration converts a provider delay value into a tween duration. The
// result is clamped to [0, math.MaxInt64]; NaN yields zero.
func (c Config) SpinDuration(delay float64) time.Duration {
	ms := delay * c.DurationScale
	switch {
	case math.IsNaN(ms) || ms <= 0:
		return 0
	case ms >= maxSpinMillis:
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(ms * float64(time.Millisecond))
}

// CheckDelay reports a provider delay that cannot drive a spin: not finite,
// not positive, or above MaxDelay.
func (c Config) CheckDelay(delay float64) error {
	switch {
	case math.IsNaN(delay) || math.IsInf(delay, 0):
		return fmt.Errorf("delay must be finite, got %g", delay)
	case delay <= 0:
		return fmt.Errorf("delay must be positive, got %g", delay)
	case delay > c.MaxDelay:
		return fmt.Errorf("delay %g exceeds max_delay %g", delay, c.MaxDelay)
	}
	return nil
}

// ButtonLabel returns the play button text for a spin of duration d. A zero
// duration yields the idle label.
func (c Config) ButtonLabel(d time.Duration) string {
	if d <= 0 {
		return c.ButtonText
	}
	ms := float64(d) / float64(time.Millisecond)
	return c.ButtonText + " " + strconv.FormatFloat(ms, 'f', -1, 64) + c.ButtonUnit
}
