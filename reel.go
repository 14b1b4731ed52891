package reels

import (
	"image"
	"math"
	"math/rand/v2"
)

// Texture is an opaque handle to a loaded symbol image. *ebiten.Image
// satisfies it; the core only needs its size to fit the symbol into a slot.
type Texture interface {
	Bounds() image.Rectangle
}

// Symbol is one slot on a reel. Y is recomputed every frame from the reel
// offset; Texture, Scale and X change only when the slot is recycled.
type Symbol struct {
	Texture Texture
	X, Y    float64
	Scale   float64
}

// fit scales the symbol's texture to fit inside a size×size cell, keeping its
// aspect ratio, and centers it horizontally.
func (s *Symbol) fit(size float64) {
	b := s.Texture.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	if w <= 0 || h <= 0 {
		s.Scale = 1
		s.X = 0
		return
	}
	s.Scale = math.Min(size/w, size/h)
	s.X = math.Round((size - w*s.Scale) / 2)
}

// Reel is a single vertically scrolling column of symbols.
//
// Offset is measured in symbol heights and only grows while spinning. The
// slot count is fixed at creation: one more than the visible rows so a
// symbol can scroll in while another scrolls out.
type Reel struct {
	Index      int
	Offset     float64
	PrevOffset float64
	Blur       float64
	Slots      []Symbol
}

// NewReel creates a reel with visible+1 slots stacked from the top, each
// holding a random texture from textures fitted to size.
func NewReel(index, visible int, size float64, textures []Texture, rng *rand.Rand) *Reel {
	r := &Reel{
		Index: index,
		Slots: make([]Symbol, visible+1),
	}
	for i := range r.Slots {
		s := &r.Slots[i]
		s.Texture = pickTexture(textures, rng)
		s.fit(size)
		s.Y = float64(i) * size
	}
	return r
}

// Visible returns the number of rows shown at once.
func (r *Reel) Visible() int { return len(r.Slots) - 1 }

func pickTexture(textures []Texture, rng *rand.Rand) Texture {
	return textures[rng.IntN(len(textures))]
}

// RecycleFunc observes a slot that just wrapped past the top of its reel and
// received a new texture.
type RecycleFunc func(reel *Reel, slot int)

// Updater repositions and recycles reel symbols once per frame and derives
// motion blur from how far each reel moved since the previous frame.
//
// Update must run before the scheduler advances, so the blur reflects the
// movement of the frame that was just completed.
type Updater struct {
	SymbolSize float64
	BlurScale  float64
	Textures   []Texture
	Rand       *rand.Rand

	// OnRecycle is optional.
	OnRecycle RecycleFunc
}

// NewUpdater creates an updater drawing recycled textures from textures.
func NewUpdater(symbolSize, blurScale float64, textures []Texture, rng *rand.Rand) *Updater {
	return &Updater{
		SymbolSize: symbolSize,
		BlurScale:  blurScale,
		Textures:   textures,
		Rand:       rng,
	}
}

// Update runs the per-frame visual pass over every reel.
func (u *Updater) Update(reels []*Reel) {
	for _, r := range reels {
		u.updateReel(r)
	}
}

func (u *Updater) updateReel(r *Reel) {
	size := u.SymbolSize

	delta := r.Offset - r.PrevOffset
	r.Blur = delta * u.BlurScale
	r.PrevOffset = r.Offset

	n := float64(len(r.Slots))
	for i := range r.Slots {
		s := &r.Slots[i]
		prevY := s.Y
		s.Y = wrap(r.Offset+float64(i), n)*size - size

		// Crossing from the bottom of the strip to above the top edge happens
		// exactly once per revolution.
		if s.Y < 0 && prevY > size {
			u.recycle(r, i)
		}
	}
}

func (u *Updater) recycle(r *Reel, slot int) {
	s := &r.Slots[slot]
	s.Texture = pickTexture(u.Textures, u.Rand)
	s.fit(u.SymbolSize)
	if u.OnRecycle != nil {
		u.OnRecycle(r, slot)
	}
}

// wrap returns v modulo n in [0, n).
func wrap(v, n float64) float64 {
	m := math.Mod(v, n)
	if m < 0 {
		m += n
	}
	return m
}
