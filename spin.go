package reels

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SpinState is the controller's position in its Idle -> Requesting ->
// Spinning -> Idle cycle.
type SpinState uint8

const (
	StateIdle       SpinState = iota // ready to accept a spin
	StateRequesting                  // waiting for the duration provider
	StateSpinning                    // reel tweens are running
)

func (s SpinState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRequesting:
		return "requesting"
	case StateSpinning:
		return "spinning"
	default:
		return "unknown"
	}
}

type delayResult struct {
	delay float64
	err   error
}

// SpinController starts spins and reports when the last reel has stopped.
//
// The delay request runs on its own goroutine; its result is handed back
// through a channel and picked up by Update on the frame loop, so the frame
// loop never blocks and all reel and scheduler writes stay on one goroutine.
type SpinController struct {
	cfg      Config
	reels    []*Reel
	sched    *Scheduler
	provider DurationProvider
	log      *zap.Logger
	events   *eventQueue
	ease     Easing

	state   SpinState
	spinID  string
	result  chan delayResult
	cancel  context.CancelFunc
	handles []Handle
	delay   float64
}

// NewSpinController wires a controller to the reels it drives. A nil
// provider always yields cfg.FallbackDelay.
func NewSpinController(cfg Config, reels []*Reel, sched *Scheduler, provider DurationProvider, log *zap.Logger) *SpinController {
	if provider == nil {
		provider = StaticDelay(cfg.FallbackDelay)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &SpinController{
		cfg:      cfg,
		reels:    reels,
		sched:    sched,
		provider: provider,
		log:      log,
		events:   &eventQueue{},
		ease:     reelEasing(cfg),
		handles:  make([]Handle, 0, len(reels)),
	}
}

// reelEasing resolves cfg.Easing. NewMachine validates the name, so the
// BackOut fallback only serves controllers built from unchecked configs.
func reelEasing(cfg Config) Easing {
	e, err := EasingByName(cfg.Easing, cfg.BackOutAmount)
	if err != nil {
		return BackOut(cfg.BackOutAmount)
	}
	return e
}

// State returns the current state.
func (c *SpinController) State() SpinState { return c.state }

// Running reports whether a spin is requested or in progress.
func (c *SpinController) Running() bool { return c.state != StateIdle }

// SpinID returns the id of the current or most recent spin.
func (c *SpinController) SpinID() string { return c.spinID }

// LastDelay returns the spin duration in milliseconds of the current or most
// recent spin, or zero before the first spin has started.
func (c *SpinController) LastDelay() float64 {
	return c.delay * c.cfg.DurationScale
}

// StartSpin requests a spin. It returns false and does nothing if a spin is
// already requested or running. The delay request is bounded by
// Config.FetchTimeout and by ctx.
func (c *SpinController) StartSpin(ctx context.Context) bool {
	if c.state != StateIdle {
		return false
	}
	c.state = StateRequesting
	c.spinID = uuid.NewString()

	fctx, cancel := ctx, context.CancelFunc(func() {})
	if c.cfg.FetchTimeout > 0 {
		fctx, cancel = context.WithTimeout(ctx, c.cfg.FetchTimeout)
	}
	c.cancel = cancel

	ch := make(chan delayResult, 1)
	c.result = ch
	provider := c.provider
	go func() {
		defer cancel()
		d, err := provider.SpinDelay(fctx)
		ch <- delayResult{delay: d, err: err}
	}()

	c.log.Debug("spin requested", zap.String("spin_id", c.spinID))
	c.events.push(Event{Kind: EventSpinRequested, SpinID: c.spinID})
	return true
}

// Update picks up a resolved delay request and schedules the reel tweens.
// Call once per frame before the scheduler advances.
func (c *SpinController) Update(now time.Duration) {
	if c.state != StateRequesting {
		return
	}
	select {
	case res := <-c.result:
		c.result = nil
		c.cancel = nil
		c.begin(now, res)
	default:
	}
}

func (c *SpinController) begin(now time.Duration, res delayResult) {
	delay := res.delay
	if res.err == nil {
		if err := c.cfg.CheckDelay(delay); err != nil {
			res.err = &DurationFetchError{Err: err}
		}
	}
	if res.err != nil {
		delay = c.cfg.FallbackDelay
		c.log.Warn("spin delay unavailable, using fallback",
			zap.String("spin_id", c.spinID),
			zap.Float64("fallback_delay", delay),
			zap.Error(res.err))
		c.events.push(Event{Kind: EventDelayFallback, SpinID: c.spinID, Delay: delay, Err: res.err})
	}
	c.delay = delay
	duration := c.cfg.SpinDuration(delay)

	c.handles = c.handles[:0]
	for i, r := range c.reels {
		target := r.Offset + c.cfg.BaseRotations + float64(i)*c.cfg.Stagger
		tw := NewTween(&r.Offset, target, now, duration, c.ease)
		tw.Tag = i
		c.handles = append(c.handles, c.sched.Schedule(tw))
	}
	c.state = StateSpinning

	c.log.Info("spin started",
		zap.String("spin_id", c.spinID),
		zap.Float64("delay", delay),
		zap.Duration("duration", duration),
		zap.Int("reels", len(c.reels)))
	c.events.push(Event{Kind: EventSpinStarted, SpinID: c.spinID, Delay: delay, Duration: duration})
}

// HandleCompletions consumes the completions returned by Scheduler.Advance.
// Every reel stop is reported; only the last reel's stop ends the spin.
func (c *SpinController) HandleCompletions(done []Completion) {
	if c.state != StateSpinning {
		return
	}
	last := len(c.handles) - 1
	for _, comp := range done {
		idx := c.handleIndex(comp.Handle)
		if idx < 0 {
			continue
		}
		c.events.push(Event{Kind: EventReelStopped, SpinID: c.spinID, Reel: comp.Tag})
		if idx == last {
			c.finish()
		}
	}
}

func (c *SpinController) handleIndex(h Handle) int {
	for i, own := range c.handles {
		if own == h {
			return i
		}
	}
	return -1
}

func (c *SpinController) finish() {
	c.state = StateIdle
	c.handles = c.handles[:0]
	c.log.Info("spin complete", zap.String("spin_id", c.spinID))
	c.events.push(Event{Kind: EventSpinComplete, SpinID: c.spinID, Delay: c.delay})
}

// Close abandons an outstanding delay request. Scheduled tweens are left to
// the scheduler's owner.
func (c *SpinController) Close() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}
