package reels

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.ReelCount != 5 || cfg.VisibleSymbols != 3 || cfg.SymbolSize != 200 {
		t.Errorf("unexpected layout %+v", cfg)
	}
	if len(cfg.SymbolPaths) != 8 {
		t.Errorf("symbol paths = %d, want 8", len(cfg.SymbolPaths))
	}
}

func TestSpinDuration(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.SpinDuration(1.0); got != time.Second {
		t.Errorf("SpinDuration(1) = %v, want 1s", got)
	}
	if got := cfg.SpinDuration(2.5); got != 2500*time.Millisecond {
		t.Errorf("SpinDuration(2.5) = %v, want 2.5s", got)
	}
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "machine.yaml")
	data := `
reel_count: 3
stagger: 2.5
fetch_timeout: 750ms
delay_url: http://localhost:8080/server
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.ReelCount != 3 {
		t.Errorf("ReelCount = %d, want 3", cfg.ReelCount)
	}
	if cfg.Stagger != 2.5 {
		t.Errorf("Stagger = %v, want 2.5", cfg.Stagger)
	}
	if cfg.FetchTimeout != 750*time.Millisecond {
		t.Errorf("FetchTimeout = %v, want 750ms", cfg.FetchTimeout)
	}
	if cfg.DelayURL != "http://localhost:8080/server" {
		t.Errorf("DelayURL = %q", cfg.DelayURL)
	}
	// Untouched keys keep defaults.
	if cfg.SymbolSize != 200 || cfg.BlurScale != 8 {
		t.Errorf("defaults lost: size %v blur %v", cfg.SymbolSize, cfg.BlurScale)
	}
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("reel_count: 0\nsymbol_size: -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"reel_count", "symbol_size"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantSub string
	}{
		{"nan duration scale", func(c *Config) { c.DurationScale = math.NaN() }, "duration_scale must be finite"},
		{"infinite blur", func(c *Config) { c.BlurScale = math.Inf(1) }, "blur_scale must be finite"},
		{"nan fallback", func(c *Config) { c.FallbackDelay = math.NaN() }, "fallback_delay must be finite"},
		{"negative rotations", func(c *Config) { c.BaseRotations = -10 }, "base_rotations must be positive"},
		{"zero rotations", func(c *Config) { c.BaseRotations = 0 }, "base_rotations must be positive"},
		{"negative blur", func(c *Config) { c.BlurScale = -1 }, "blur_scale must not be negative"},
		{"negative timeout", func(c *Config) { c.FetchTimeout = -time.Second }, "fetch_timeout"},
		{"max below fallback", func(c *Config) { c.MaxDelay = 0.5 }, "max_delay 0.5 is below"},
		{"max overflows", func(c *Config) { c.MaxDelay = 1e300 }, "overflows"},
		{"unknown easing", func(c *Config) { c.Easing = "wobble" }, "unknown easing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate accepted the config")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("err = %q, want it to mention %q", err, tt.wantSub)
			}
		})
	}
}

func TestLoadConfigRejectsNaN(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nan.yaml")
	if err := os.WriteFile(path, []byte("duration_scale: .nan\nbase_rotations: -3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"duration_scale", "base_rotations"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}

func TestSpinDurationClamps(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.SpinDuration(1e300); got != time.Duration(math.MaxInt64) {
		t.Errorf("SpinDuration(1e300) = %v, want the maximum duration", got)
	}
	if got := cfg.SpinDuration(math.NaN()); got != 0 {
		t.Errorf("SpinDuration(NaN) = %v, want 0", got)
	}
	if got := cfg.SpinDuration(-1); got != 0 {
		t.Errorf("SpinDuration(-1) = %v, want 0", got)
	}
}

func TestCheckDelay(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.CheckDelay(2.5); err != nil {
		t.Errorf("CheckDelay(2.5) = %v", err)
	}
	for _, d := range []float64{0, -1, math.NaN(), math.Inf(1), cfg.MaxDelay + 1} {
		if err := cfg.CheckDelay(d); err == nil {
			t.Errorf("CheckDelay(%v) accepted", d)
		}
	}
}

func TestButtonLabel(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "старт"},
		{time.Second, "старт 1000мс"},
		{1500 * time.Millisecond, "старт 1500мс"},
		{1234500 * time.Microsecond, "старт 1234.5мс"},
	}
	for _, tt := range tests {
		if got := cfg.ButtonLabel(tt.d); got != tt.want {
			t.Errorf("ButtonLabel(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}

	cfg.ButtonText, cfg.ButtonUnit = "spin", "ms"
	if got := cfg.ButtonLabel(2 * time.Second); got != "spin 2000ms" {
		t.Errorf("custom label = %q", got)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadConfigMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("reel_count: [1, 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestNewMachineValidates(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ReelCount = 0
	if _, err := NewMachine(cfg, testTextures(), Options{}); err == nil {
		t.Error("NewMachine accepted zero reels")
	}
	if _, err := NewMachine(DefaultConfig(), nil, Options{}); err == nil {
		t.Error("NewMachine accepted an empty texture set")
	}
}
