package reels

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// frameStats holds per-frame timing. Only populated in debug mode.
type frameStats struct {
	visualTime  time.Duration
	advanceTime time.Duration
	active      int
	completed   int
}

// debugLog reports one frame's timing. Quiet frames with nothing animating
// are skipped so an idle machine does not flood the log.
func (m *Machine) debugLog(stats frameStats) {
	if !m.cfg.Debug || (stats.active == 0 && stats.completed == 0) {
		return
	}
	m.log.Debug("frame",
		zap.Duration("visual", stats.visualTime),
		zap.Duration("advance", stats.advanceTime),
		zap.Int("active_tweens", stats.active),
		zap.Int("completed", stats.completed))
}

// debugCheckTarget panics if an unfinished tween in active already writes to
// tw's target. A tween that has just completed may be replaced from its own
// OnComplete.
func debugCheckTarget(active []*Tween, tw *Tween) {
	for _, other := range active {
		if other == nil || other.progress == 1 {
			continue
		}
		if other.Target == tw.Target {
			panic(fmt.Sprintf("reels debug: tween %d already animates target %p", other.handle, tw.Target))
		}
	}
}
