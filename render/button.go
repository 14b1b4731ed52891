package render

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"golang.org/x/image/font/gofont/gobolditalic"
)

const (
	buttonFontSize  = 36
	buttonOutline   = 5
	pulseScale      = 1.08
	pulseSeconds    = 0.6
	disabledOpacity = 0.6
)

// Button is the play button: a bold italic label with a white outline. While
// the machine is idle it pulses to invite a click.
type Button struct {
	Label string

	face     *text.GoTextFace
	up, down *gween.Tween
	pulse    *gween.Tween
	scale    float64
	alpha    float64

	opts text.DrawOptions
}

// NewButton parses the embedded font and returns an idle button showing
// label.
func NewButton(label string) (*Button, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(gobolditalic.TTF))
	if err != nil {
		return nil, fmt.Errorf("render: parse button font: %w", err)
	}
	b := &Button{
		Label: label,
		face:  &text.GoTextFace{Source: src, Size: buttonFontSize},
		up:    gween.New(1, pulseScale, pulseSeconds, ease.InOutSine),
		down:  gween.New(pulseScale, 1, pulseSeconds, ease.InOutSine),
		scale: 1,
		alpha: 1,
	}
	b.pulse = b.up
	return b, nil
}

// Scale returns the current pulse scale.
func (b *Button) Scale() float64 { return b.scale }

// Alpha returns the current label opacity.
func (b *Button) Alpha() float64 { return b.alpha }

// Update advances the pulse by dt seconds. A spinning machine freezes the
// button at its rest size and dims it.
func (b *Button) Update(dt float32, spinning bool) {
	if spinning {
		b.scale, b.alpha = 1, disabledOpacity
		b.up.Reset()
		b.down.Reset()
		b.pulse = b.up
		return
	}
	b.alpha = 1
	v, done := b.pulse.Update(dt)
	b.scale = float64(v)
	if done {
		b.pulse.Reset()
		if b.pulse == b.up {
			b.pulse = b.down
		} else {
			b.pulse = b.up
		}
	}
}

// Size returns the unscaled label extent in pixels.
func (b *Button) Size() (w, h float64) {
	return text.Measure(b.Label, b.face, b.face.Size)
}

// Contains reports whether the screen point (x, y) hits a label centred at
// (cx, cy).
func (b *Button) Contains(cx, cy float64, x, y int) bool {
	w, h := b.Size()
	w, h = w*b.scale, h*b.scale
	px, py := float64(x), float64(y)
	return px >= cx-w/2 && px <= cx+w/2 && py >= cy-h/2 && py <= cy+h/2
}

// Draw renders the label centred at (cx, cy).
func (b *Button) Draw(dst *ebiten.Image, cx, cy float64) {
	t := float64(buttonOutline)
	offsets := [8][2]float64{
		{-t, 0}, {t, 0}, {0, -t}, {0, t},
		{-t, -t}, {t, -t}, {-t, t}, {t, t},
	}
	for _, off := range offsets {
		b.drawPass(dst, cx+off[0], cy+off[1], color.White)
	}
	b.drawPass(dst, cx, cy, color.Black)
}

func (b *Button) drawPass(dst *ebiten.Image, cx, cy float64, c color.Color) {
	op := &b.opts
	op.GeoM.Reset()
	op.ColorScale.Reset()
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.LineSpacing = b.face.Size
	op.GeoM.Scale(b.scale, b.scale)
	op.GeoM.Translate(cx, cy)
	op.ColorScale.ScaleWithColor(c)
	op.ColorScale.ScaleAlpha(float32(b.alpha))
	text.Draw(dst, b.Label, b.face, op)
}
