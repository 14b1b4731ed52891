package reels

import (
	"fmt"
	"time"
)

// Handle identifies a scheduled tween. Zero is never issued.
type Handle uint64

// Tween interpolates a single float64 field from From to To over Duration,
// starting at Start. The scheduler owns the tween from Schedule until the
// frame on which it completes; during that time it is the only writer of
// *Target.
type Tween struct {
	Target   *float64
	From, To float64
	Start    time.Duration
	Duration time.Duration
	Ease     Easing

	// Tag is an opaque caller value copied into the tween's Completion.
	Tag int

	// OnUpdate runs after every write to *Target. OnComplete runs once, after
	// the final write and before the tween is retired. Both may be nil.
	OnUpdate   func(*Tween)
	OnComplete func(*Tween)

	handle   Handle
	progress float64
}

// NewTween builds a tween that animates *target from its current value to
// to, beginning at start. A nil easing means Linear.
func NewTween(target *float64, to float64, start, duration time.Duration, fn Easing) *Tween {
	if fn == nil {
		fn = Linear
	}
	return &Tween{
		Target:   target,
		From:     *target,
		To:       to,
		Start:    start,
		Duration: duration,
		Ease:     fn,
	}
}

// Handle returns the id assigned by Schedule, or zero if never scheduled.
func (tw *Tween) Handle() Handle { return tw.handle }

// Progress returns the normalized (un-eased) progress from the last Advance.
func (tw *Tween) Progress() float64 { return tw.progress }

// Completion reports a tween that reached progress 1 during Advance.
type Completion struct {
	Handle Handle
	Tag    int
}

// Scheduler owns the set of active tweens and advances them once per frame.
//
// There is no locking: Schedule and Advance must be called from the frame
// loop goroutine.
type Scheduler struct {
	active    []*Tween
	pending   []*Tween // scheduled from a callback while advancing
	completed []Completion
	nextID    Handle
	advancing bool
	debug     bool
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{
		active:    make([]*Tween, 0, 8),
		completed: make([]Completion, 0, 8),
	}
}

// SetDebug enables debug assertions. With debug on, scheduling a second
// tween for a field that already has an active tween panics.
func (s *Scheduler) SetDebug(enabled bool) {
	s.debug = enabled
}

// Schedule appends tw to the active set and returns its handle. Tweens are
// advanced in the order they were scheduled.
func (s *Scheduler) Schedule(tw *Tween) Handle {
	if tw.Target == nil {
		panic("reels: Schedule called with nil tween target")
	}
	if tw.Ease == nil {
		tw.Ease = Linear
	}
	if s.debug {
		debugCheckTarget(s.active, tw)
		debugCheckTarget(s.pending, tw)
	}
	s.nextID++
	tw.handle = s.nextID
	tw.progress = 0
	if s.advancing {
		s.pending = append(s.pending, tw)
	} else {
		s.active = append(s.active, tw)
	}
	return tw.handle
}

// Advance moves every active tween to time now. Tweens that reach the end
// are written one final time, fire OnComplete, and are removed. The returned
// slice lists them in scheduling order and is only valid until the next call.
func (s *Scheduler) Advance(now time.Duration) []Completion {
	s.completed = s.completed[:0]
	s.advancing = true

	keep := s.active[:0]
	for _, tw := range s.active {
		p := tweenProgress(tw, now)
		tw.progress = p
		if p == 1 {
			// Curves evaluated in float32 may miss 1 by an ulp.
			*tw.Target = tw.To
		} else {
			*tw.Target = Lerp(tw.From, tw.To, tw.Ease(p))
		}

		if tw.OnUpdate != nil {
			tw.OnUpdate(tw)
		}

		if p == 1 {
			if tw.OnComplete != nil {
				tw.OnComplete(tw)
			}
			s.completed = append(s.completed, Completion{Handle: tw.handle, Tag: tw.Tag})
			continue
		}
		keep = append(keep, tw)
	}

	// Drop references to retired tweens held past the new length.
	for i := len(keep); i < len(s.active); i++ {
		s.active[i] = nil
	}
	s.active = keep
	s.advancing = false

	// Tweens scheduled by callbacks start advancing on the next call.
	if len(s.pending) > 0 {
		s.active = append(s.active, s.pending...)
		for i := range s.pending {
			s.pending[i] = nil
		}
		s.pending = s.pending[:0]
	}

	return s.completed
}

// tweenProgress returns min(1, elapsed/duration). A non-positive duration is
// complete immediately; time before Start counts as zero progress.
func tweenProgress(tw *Tween, now time.Duration) float64 {
	if tw.Duration <= 0 {
		return 1
	}
	elapsed := now - tw.Start
	if elapsed <= 0 {
		return 0
	}
	return min(1, float64(elapsed)/float64(tw.Duration))
}

// Len returns the number of active tweens.
func (s *Scheduler) Len() int { return len(s.active) + len(s.pending) }

// Active reports whether the tween with handle h is still scheduled.
func (s *Scheduler) Active(h Handle) bool {
	for _, tw := range s.active {
		if tw.handle == h {
			return true
		}
	}
	for _, tw := range s.pending {
		if tw.handle == h {
			return true
		}
	}
	return false
}

// Clear drops every active tween without writing to their targets or firing
// callbacks. Used when the machine is torn down.
func (s *Scheduler) Clear() {
	for i := range s.active {
		s.active[i] = nil
	}
	s.active = s.active[:0]
	s.pending = s.pending[:0]
}

// String describes the scheduler for debug output.
func (s *Scheduler) String() string {
	return fmt.Sprintf("Scheduler{active: %d, issued: %d}", len(s.active), s.nextID)
}
