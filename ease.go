package reels

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tanema/gween/ease"
)

// Easing maps normalized progress in [0, 1] to eased progress. The result is
// not clamped: curves may overshoot past either endpoint.
type Easing func(t float64) float64

// Linear is the identity easing.
func Linear(t float64) float64 { return t }

// BackOut returns an easing that overshoots the end value and snaps back.
// Larger amounts overshoot further. BackOut(a)(0) == 0 and BackOut(a)(1) == 1
// for every a.
func BackOut(amount float64) Easing {
	return func(t float64) float64 {
		t--
		return t*t*((amount+1)*t+amount) + 1
	}
}

// FromGween adapts a gween easing curve so it can drive a Tween. gween curves
// work in float32 with (elapsed, begin, change, duration) arguments; the
// adapter evaluates them over a unit range.
func FromGween(fn ease.TweenFunc) Easing {
	return func(t float64) float64 {
		return float64(fn(float32(t), 0, 1, 1))
	}
}

// Lerp interpolates between a and b. t is not clamped.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// EasingBackOut is the default reel easing name.
const EasingBackOut = "backout"

// gweenCurves are the named gween curves a config may pick for the reels.
// Only "out" curves are listed.
var gweenCurves = map[string]ease.TweenFunc{
	"linear":     ease.Linear,
	"outquad":    ease.OutQuad,
	"outcubic":   ease.OutCubic,
	"outquart":   ease.OutQuart,
	"outsine":    ease.OutSine,
	"outexpo":    ease.OutExpo,
	"outcirc":    ease.OutCirc,
	"outbounce":  ease.OutBounce,
	"outelastic": ease.OutElastic,
}

// EasingByName returns the reel easing called name. "backout" (or an empty
// name) is BackOut(amount); the other names are gween curves.
func EasingByName(name string, amount float64) (Easing, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" || key == EasingBackOut {
		return BackOut(amount), nil
	}
	fn, ok := gweenCurves[key]
	if !ok {
		return nil, fmt.Errorf("unknown easing %q (want one of %s)", name, strings.Join(EasingNames(), ", "))
	}
	return FromGween(fn), nil
}

// EasingNames lists the names EasingByName accepts, sorted.
func EasingNames() []string {
	names := make([]string, 0, len(gweenCurves)+1)
	names = append(names, EasingBackOut)
	for n := range gweenCurves {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
