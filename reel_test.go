package reels

import (
	"image"
	"math"
	"math/rand/v2"
	"testing"
)

type testTexture struct {
	name string
	w, h int
}

func (t *testTexture) Bounds() image.Rectangle { return image.Rect(0, 0, t.w, t.h) }

func testTextures() []Texture {
	return []Texture{
		&testTexture{"kiwi", 200, 200},
		&testTexture{"pear", 100, 50},
		&testTexture{"apple", 50, 100},
		&testTexture{"banana", 400, 300},
	}
}

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestNewReelLayout(t *testing.T) {
	r := NewReel(2, 3, 200, testTextures(), testRand())

	if r.Index != 2 {
		t.Errorf("Index = %d", r.Index)
	}
	if len(r.Slots) != 4 {
		t.Fatalf("slots = %d, want visible+1 = 4", len(r.Slots))
	}
	if r.Visible() != 3 {
		t.Errorf("Visible = %d", r.Visible())
	}
	for i, s := range r.Slots {
		if s.Y != float64(i)*200 {
			t.Errorf("slot %d Y = %v, want %v", i, s.Y, float64(i)*200)
		}
		if s.Texture == nil {
			t.Errorf("slot %d has no texture", i)
		}
	}
}

func TestSymbolFitPreservesAspect(t *testing.T) {
	tests := []struct {
		tex       *testTexture
		wantScale float64
		wantX     float64
	}{
		{&testTexture{"square", 200, 200}, 1, 0},
		{&testTexture{"wide", 100, 50}, 2, 0},
		{&testTexture{"tall", 50, 100}, 2, 50},
		{&testTexture{"large", 400, 300}, 0.5, 0},
		{&testTexture{"big-tall", 300, 400}, 0.5, 25},
	}
	for _, tt := range tests {
		s := Symbol{Texture: tt.tex}
		s.fit(200)
		if math.Abs(s.Scale-tt.wantScale) > 1e-9 {
			t.Errorf("%s: Scale = %v, want %v", tt.tex.name, s.Scale, tt.wantScale)
		}
		if s.X != tt.wantX {
			t.Errorf("%s: X = %v, want %v", tt.tex.name, s.X, tt.wantX)
		}
	}
}

func TestUpdaterBlurFromVelocity(t *testing.T) {
	u := NewUpdater(200, 8, testTextures(), testRand())
	r := NewReel(0, 3, 200, testTextures(), testRand())
	r.Offset = 2.0
	r.PrevOffset = 2.0
	u.Update([]*Reel{r})

	r.Offset = 2.8
	u.Update([]*Reel{r})

	if math.Abs(r.Blur-6.4) > 1e-9 {
		t.Errorf("Blur = %v, want 6.4", r.Blur)
	}
	if r.PrevOffset != 2.8 {
		t.Errorf("PrevOffset = %v, want 2.8", r.PrevOffset)
	}

	// A reel at rest has no blur.
	u.Update([]*Reel{r})
	if r.Blur != 0 {
		t.Errorf("Blur = %v at rest, want 0", r.Blur)
	}
}

func TestUpdaterSlotPositions(t *testing.T) {
	u := NewUpdater(200, 8, testTextures(), testRand())
	r := NewReel(0, 3, 200, testTextures(), testRand())
	r.Offset = 1.5
	u.Update([]*Reel{r})

	// ((1.5 + idx) mod 4) * 200 - 200
	want := []float64{100, 300, 500, -100}
	for i, w := range want {
		if math.Abs(r.Slots[i].Y-w) > 1e-9 {
			t.Errorf("slot %d Y = %v, want %v", i, r.Slots[i].Y, w)
		}
	}
}

func TestRecycleOncePerWrap(t *testing.T) {
	textures := testTextures()
	u := NewUpdater(200, 8, textures, testRand())
	r := NewReel(0, 3, 200, textures, testRand())

	counts := make([]int, len(r.Slots))
	u.OnRecycle = func(got *Reel, slot int) {
		if got != r {
			t.Error("recycle reported for the wrong reel")
		}
		counts[slot]++
	}

	n := len(r.Slots)
	steps := 10 * n
	for i := 0; i <= steps; i++ {
		r.Offset = float64(i) / 10
		u.Update([]*Reel{r})
	}

	for slot, c := range counts {
		if c != 1 {
			t.Errorf("slot %d recycled %d times over one revolution, want 1", slot, c)
		}
	}
}

func TestRecycleCountOverManyRevolutions(t *testing.T) {
	u := NewUpdater(200, 8, testTextures(), testRand())
	r := NewReel(0, 3, 200, testTextures(), testRand())

	total := 0
	u.OnRecycle = func(*Reel, int) { total++ }

	// Large per-frame steps still cross the top edge once per revolution.
	for i := 0; i <= 123; i++ {
		r.Offset = float64(i) * 0.3
		u.Update([]*Reel{r})
	}
	// 36.9 symbol heights: each of the 4 slots crosses the top 9 times.
	if total != 36 {
		t.Errorf("recycles = %d, want 36", total)
	}
}

func TestRecycleRefitsTexture(t *testing.T) {
	tall := &testTexture{"tall", 50, 100}
	u := NewUpdater(200, 8, []Texture{tall}, testRand())
	r := &Reel{Slots: make([]Symbol, 4)}
	for i := range r.Slots {
		r.Slots[i] = Symbol{Texture: &testTexture{"square", 200, 200}, Scale: 1, Y: float64(i) * 200}
	}

	r.Offset = 0.9
	u.Update([]*Reel{r})
	r.Offset = 1.1 // slot 3 wraps from 580 to -180
	u.Update([]*Reel{r})

	s := r.Slots[3]
	if s.Texture != Texture(tall) {
		t.Fatalf("slot 3 texture not reassigned")
	}
	if s.Scale != 2 || s.X != 50 {
		t.Errorf("slot 3 fit = scale %v x %v, want 2, 50", s.Scale, s.X)
	}
	if r.Slots[0].Texture == Texture(tall) {
		t.Error("slot 0 should not have been recycled")
	}
}

func TestUpdaterSeededIsReproducible(t *testing.T) {
	run := func() []Texture {
		textures := testTextures()
		u := NewUpdater(200, 8, textures, rand.New(rand.NewPCG(7, 7)))
		r := NewReel(0, 3, 200, textures, rand.New(rand.NewPCG(7, 7)))
		for i := 0; i <= 80; i++ {
			r.Offset = float64(i) / 10
			u.Update([]*Reel{r})
		}
		out := make([]Texture, len(r.Slots))
		for i, s := range r.Slots {
			out[i] = s.Texture
		}
		return out
	}
	a, b := run(), run()
	for i := range a {
		if a[i].(*testTexture).name != b[i].(*testTexture).name {
			t.Errorf("slot %d differs between seeded runs", i)
		}
	}
}

func TestWrapNegative(t *testing.T) {
	if got := wrap(-0.5, 4); got != 3.5 {
		t.Errorf("wrap(-0.5, 4) = %v, want 3.5", got)
	}
	if got := wrap(9, 4); got != 1 {
		t.Errorf("wrap(9, 4) = %v, want 1", got)
	}
}

func TestUpdaterZeroAlloc(t *testing.T) {
	u := NewUpdater(200, 8, testTextures(), testRand())
	reels := []*Reel{
		NewReel(0, 3, 200, testTextures(), testRand()),
		NewReel(1, 3, 200, testTextures(), testRand()),
	}
	u.Update(reels)

	result := testing.AllocsPerRun(100, func() {
		u.Update(reels)
	})
	if result > 0 {
		t.Errorf("Updater.Update allocated %f times per run, want 0", result)
	}
}
