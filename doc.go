// Package reels is the animation engine of a multi-reel slot machine.
//
// It lays out reels of symbols, spins them on request, and settles them at
// staggered offsets with a back-out snap and velocity-proportional motion
// blur. Drawing is left to a frontend: see package render for Ebitengine and
// package term for a terminal view.
//
// # Quick start
//
//	m, err := reels.NewMachine(reels.DefaultConfig(), textures, reels.Options{
//		Provider: reels.NewHTTPDelayProvider(cfg.DelayURL),
//	})
//	clock := reels.NewWallClock()
//	// each frame:
//	for _, ev := range m.Tick(clock.Now()) {
//		// react to EventReelStopped, EventSpinComplete, ...
//	}
//	// on click:
//	m.StartSpin(ctx)
//
// # Frame order
//
// Every [Machine.Tick] runs the [Updater] first, so the blur it computes is
// the distance each reel moved during the previous frame, and then advances
// the [Scheduler], whose tweens write the offsets the next frame will draw.
//
// # Spins
//
// [SpinController.StartSpin] asks a [DurationProvider] for a delay without
// blocking the frame loop. When the answer arrives, one tween per reel is
// scheduled with target offset + BaseRotations + i*Stagger and duration
// delay*DurationScale milliseconds, eased by [BackOut] unless Config.Easing
// names another curve. The spin ends when the last reel's tween completes. If
// the provider fails or answers with a delay that is not finite or exceeds
// Config.MaxDelay, Config.FallbackDelay is used instead and an
// [EventDelayFallback] is emitted.
//
// # Tweens
//
// The [Scheduler] is a general time-based tweener over float64 fields. Curves
// from [gween] can drive it through [FromGween]; [EasingByName] maps the
// config's easing names onto them.
//
// [gween]: https://github.com/tanema/gween
package reels
