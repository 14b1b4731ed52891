// Package cli holds the start-up plumbing shared by the commands: logger
// construction and loading the machine YAML file.
package cli

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/phanxgames/reels"
	"github.com/phanxgames/reels/audio"
)

// NewLogger returns a development logger at debug level when debug is set,
// and a production logger with console encoding otherwise.
func NewLogger(debug bool) (*zap.Logger, error) {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Encoding = "console"
	}
	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return log, nil
}

// Settings is everything a frontend reads from the machine YAML file.
type Settings struct {
	Machine reels.Config
	Audio   audio.Config
}

// LoadSettings reads path, or returns defaults when path is empty. The
// machine keys live at the top level; audio keys sit under "audio".
func LoadSettings(path string) (Settings, error) {
	s := Settings{Machine: reels.DefaultConfig(), Audio: audio.DefaultConfig()}
	if path == "" {
		return s, nil
	}

	cfg, err := reels.LoadConfig(path)
	if err != nil {
		return s, err
	}
	s.Machine = cfg

	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("load settings: %w", err)
	}
	file := struct {
		Audio audio.Config `yaml:"audio"`
	}{Audio: s.Audio}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return s, fmt.Errorf("load settings %s: %w", path, err)
	}
	s.Audio = file.Audio
	if err := s.Audio.Validate(); err != nil {
		return s, fmt.Errorf("load settings %s: audio: %w", path, err)
	}
	return s, nil
}

// Provider returns the delay provider for cfg. An empty DelayURL yields the
// fallback delay for every spin.
func Provider(cfg reels.Config) reels.DurationProvider {
	if cfg.DelayURL == "" {
		return reels.StaticDelay(cfg.FallbackDelay)
	}
	p := reels.NewHTTPDelayProvider(cfg.DelayURL)
	p.MaxDelay = cfg.MaxDelay
	return p
}
