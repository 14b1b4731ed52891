package reels

import "time"

// EventKind identifies a machine event.
type EventKind uint8

const (
	EventSpinRequested EventKind = iota // StartSpin accepted; delay request in flight
	EventDelayFallback                  // delay request failed; FallbackDelay used
	EventSpinStarted                    // reel tweens scheduled
	EventSymbolRecycled                 // a slot wrapped past the top and got a new texture
	EventReelStopped                    // one reel reached its target
	EventSpinComplete                   // the last reel stopped; machine is idle again
)

func (k EventKind) String() string {
	switch k {
	case EventSpinRequested:
		return "spin-requested"
	case EventDelayFallback:
		return "delay-fallback"
	case EventSpinStarted:
		return "spin-started"
	case EventSymbolRecycled:
		return "symbol-recycled"
	case EventReelStopped:
		return "reel-stopped"
	case EventSpinComplete:
		return "spin-complete"
	default:
		return "unknown"
	}
}

// Event is emitted by Machine.Tick. Fields not relevant to Kind are zero.
type Event struct {
	Kind     EventKind
	SpinID   string
	Reel     int
	Slot     int
	Delay    float64
	Duration time.Duration
	Err      error
}

// eventQueue collects events between ticks. The buffer is reused, so a
// drained slice is only valid until the next push.
type eventQueue struct {
	buf []Event
}

func (q *eventQueue) push(e Event) {
	q.buf = append(q.buf, e)
}

func (q *eventQueue) drain() []Event {
	out := q.buf
	q.buf = q.buf[:0]
	return out
}
