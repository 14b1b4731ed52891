package audio

import (
	"errors"
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/phanxgames/reels"
)

// Config controls the cues. It is embedded under the "audio" key of the
// machine YAML file.
type Config struct {
	Enabled    bool    `yaml:"enabled"`
	SampleRate int     `yaml:"sample_rate"`
	Volume     float64 `yaml:"volume"`
}

// DefaultConfig enables audio at 44.1 kHz and 80% volume.
func DefaultConfig() Config {
	return Config{Enabled: true, SampleRate: 44100, Volume: 0.8}
}

// Validate reports out-of-range settings.
func (c Config) Validate() error {
	var errs []error
	if c.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("sample_rate must be positive, got %d", c.SampleRate))
	}
	if c.Volume < 0 || c.Volume > 1 {
		errs = append(errs, fmt.Errorf("volume must be in [0, 1], got %v", c.Volume))
	}
	return errors.Join(errs...)
}

// Player turns machine events into sounds. It satisfies the frontends'
// event listener interfaces.
type Player struct {
	cfg   Config
	rate  beep.SampleRate
	play  func(beep.Streamer)
	close func()
	log   *zap.Logger
}

// NewPlayer returns a player that hands streamers to play. Tests pass a
// recorder; NewSpeakerPlayer passes speaker.Play.
func NewPlayer(cfg Config, play func(beep.Streamer), log *zap.Logger) *Player {
	if log == nil {
		log = zap.NewNop()
	}
	return &Player{cfg: cfg, rate: beep.SampleRate(cfg.SampleRate), play: play, log: log}
}

// NewSpeakerPlayer initialises the system speaker with a 100ms buffer.
// Callers must call Close when done.
func NewSpeakerPlayer(cfg Config, log *zap.Logger) (*Player, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("audio config: %w", err)
	}
	rate := beep.SampleRate(cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	p := NewPlayer(cfg, func(s beep.Streamer) { speaker.Play(s) }, log)
	p.close = speaker.Close
	return p, nil
}

// HandleEvent plays the cue for e, if any.
func (p *Player) HandleEvent(e reels.Event) {
	if !p.cfg.Enabled || p.play == nil {
		return
	}
	var s beep.Streamer
	switch e.Kind {
	case reels.EventSpinStarted:
		s = Whoosh(p.rate, p.cfg.Volume)
	case reels.EventReelStopped:
		s = Click(p.rate, e.Reel, p.cfg.Volume)
	case reels.EventSpinComplete:
		s = Chime(p.rate, p.cfg.Volume)
	default:
		return
	}
	p.log.Debug("cue", zap.Stringer("event", e.Kind), zap.Int("reel", e.Reel))
	p.play(s)
}

// Close releases the speaker, if this player opened it.
func (p *Player) Close() {
	if p.close != nil {
		p.close()
		p.close = nil
	}
}
