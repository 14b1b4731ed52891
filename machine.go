package reels

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
)

// Options carries the optional collaborators of a Machine. The zero value
// uses the fallback delay for every spin, a no-op logger, and an unseeded
// random source.
type Options struct {
	Provider DurationProvider
	Logger   *zap.Logger
	Rand     *rand.Rand
}

// Machine is a set of reels plus the engine that animates them. Tick is the
// only entry point that mutates reel state and must be called from a single
// goroutine, once per frame.
type Machine struct {
	cfg     Config
	reels   []*Reel
	sched   *Scheduler
	updater *Updater
	spin    *SpinController
	log     *zap.Logger
	out     []Event
}

// NewMachine builds cfg.ReelCount reels filled from textures.
func NewMachine(cfg Config, textures []Texture, opts Options) (*Machine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new machine: %w", err)
	}
	if len(textures) == 0 {
		return nil, errors.New("new machine: no symbol textures")
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	reels := make([]*Reel, cfg.ReelCount)
	for i := range reels {
		reels[i] = NewReel(i, cfg.VisibleSymbols, cfg.SymbolSize, textures, rng)
	}

	sched := NewScheduler()
	sched.SetDebug(cfg.Debug)

	m := &Machine{
		cfg:     cfg,
		reels:   reels,
		sched:   sched,
		updater: NewUpdater(cfg.SymbolSize, cfg.BlurScale, textures, rng),
		spin:    NewSpinController(cfg, reels, sched, opts.Provider, log),
		log:     log,
		out:     make([]Event, 0, 16),
	}
	events := m.spin.events
	m.updater.OnRecycle = func(r *Reel, slot int) {
		events.push(Event{Kind: EventSymbolRecycled, SpinID: m.spin.SpinID(), Reel: r.Index, Slot: slot})
	}
	return m, nil
}

// Tick runs one frame: reel visuals first (using the offsets the previous
// frame left behind), then the spin controller, then tween advancement. The
// returned events cover everything since the previous Tick, including spin
// requests; the slice is reused by the next call.
func (m *Machine) Tick(now time.Duration) []Event {
	var stats frameStats
	var t0 time.Time
	if m.cfg.Debug {
		t0 = time.Now()
	}

	m.updater.Update(m.reels)

	if m.cfg.Debug {
		stats.visualTime = time.Since(t0)
		t0 = time.Now()
	}

	m.spin.Update(now)
	done := m.sched.Advance(now)
	m.spin.HandleCompletions(done)

	if m.cfg.Debug {
		stats.advanceTime = time.Since(t0)
		stats.active = m.sched.Len()
		stats.completed = len(done)
		m.debugLog(stats)
	}

	m.out = append(m.out[:0], m.spin.events.drain()...)
	return m.out
}

// StartSpin begins a spin unless one is already requested or running.
func (m *Machine) StartSpin(ctx context.Context) bool {
	return m.spin.StartSpin(ctx)
}

// Running reports whether a spin is requested or in progress.
func (m *Machine) Running() bool { return m.spin.Running() }

// State returns the spin controller state.
func (m *Machine) State() SpinState { return m.spin.State() }

// LastDelay returns the most recent spin duration in milliseconds.
func (m *Machine) LastDelay() float64 { return m.spin.LastDelay() }

// Reels returns the machine's reels in creation order. Callers may read but
// must not write reel fields.
func (m *Machine) Reels() []*Reel { return m.reels }

// Config returns the machine's configuration.
func (m *Machine) Config() Config { return m.cfg }

// ActiveTweens returns the number of tweens the scheduler is running.
func (m *Machine) ActiveTweens() int { return m.sched.Len() }

// Close abandons any outstanding delay request and drops running tweens.
func (m *Machine) Close() {
	m.spin.Close()
	m.sched.Clear()
}
