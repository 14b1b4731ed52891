package reels

import (
	"math"
	"strings"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestBackOutEndpoints(t *testing.T) {
	for _, amount := range []float64{0.1, 0.5, 1, 1.70158} {
		f := BackOut(amount)
		if got := f(0); got != 0 {
			t.Errorf("BackOut(%g)(0) = %v, want 0", amount, got)
		}
		if got := f(1); got != 1 {
			t.Errorf("BackOut(%g)(1) = %v, want 1", amount, got)
		}
	}
}

func TestBackOutMatchesFormula(t *testing.T) {
	f := BackOut(0.5)
	for i := 0; i <= 20; i++ {
		x := float64(i) / 20
		tp := x - 1
		want := tp*tp*((0.5+1)*tp+0.5) + 1
		if got := f(x); got != want {
			t.Errorf("BackOut(0.5)(%g) = %v, want %v", x, got, want)
		}
	}
}

func TestBackOutOvershootsBeforeSettling(t *testing.T) {
	f := BackOut(0.5)

	// Early on the curve is still climbing from zero.
	if v := f(0.1); v <= 0 || v >= 1 {
		t.Errorf("f(0.1) = %v, want in (0, 1)", v)
	}

	// Past t = 1 - amount/(amount+1) the curve sits above the end value, so
	// f(t)-1 changes sign on the way to 1.
	below := f(0.5) - 1
	above := f(0.9) - 1
	if below >= 0 {
		t.Errorf("f(0.5)-1 = %v, want negative", below)
	}
	if above <= 0 {
		t.Errorf("f(0.9)-1 = %v, want positive (overshoot)", above)
	}
}

func TestBackOutLargerAmountOvershootsFurther(t *testing.T) {
	small := BackOut(0.5)(0.9)
	large := BackOut(2)(0.9)
	if large <= small {
		t.Errorf("BackOut(2)(0.9) = %v should exceed BackOut(0.5)(0.9) = %v", large, small)
	}
}

func TestFromGweenLinear(t *testing.T) {
	f := FromGween(ease.Linear)
	for _, x := range []float64{0, 0.25, 0.5, 1} {
		if got := f(x); math.Abs(got-x) > 1e-6 {
			t.Errorf("FromGween(Linear)(%g) = %v", x, got)
		}
	}
}

func TestFromGweenOutCubicAheadOfLinear(t *testing.T) {
	f := FromGween(ease.OutCubic)
	if f(0.5) <= 0.5 {
		t.Errorf("OutCubic at midpoint = %v, want > 0.5", f(0.5))
	}
}

func TestEasingByName(t *testing.T) {
	for _, name := range []string{"", "backout", " BackOut "} {
		f, err := EasingByName(name, 0.5)
		if err != nil {
			t.Fatalf("EasingByName(%q): %v", name, err)
		}
		if got, want := f(0.9), BackOut(0.5)(0.9); got != want {
			t.Errorf("EasingByName(%q)(0.9) = %v, want %v", name, got, want)
		}
	}
	for _, name := range EasingNames() {
		f, err := EasingByName(name, 0.5)
		if err != nil {
			t.Errorf("EasingByName(%q): %v", name, err)
			continue
		}
		if got := f(1); math.Abs(got-1) > 1e-5 {
			t.Errorf("%s(1) = %v, want 1", name, got)
		}
	}
	if _, err := EasingByName("wobble", 0.5); err == nil || !strings.Contains(err.Error(), "outcubic") {
		t.Errorf("unknown name error = %v", err)
	}
}

func TestLerpUnclamped(t *testing.T) {
	if got := Lerp(10, 20, 0.5); got != 15 {
		t.Errorf("Lerp(10, 20, 0.5) = %v", got)
	}
	if got := Lerp(10, 20, 1.5); got != 25 {
		t.Errorf("Lerp(10, 20, 1.5) = %v, want 25", got)
	}
	if got := Lerp(10, 20, -0.5); got != 5 {
		t.Errorf("Lerp(10, 20, -0.5) = %v, want 5", got)
	}
}
