package render

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// Kage shaders use //kage:unit pixels as required by Ebitengine.

// verticalBlurShaderSrc averages nine taps spread along the Y axis. Strength
// is the total spread in pixels; taps outside the source read transparent.
const verticalBlurShaderSrc = `//kage:unit pixels
package main

var Strength float

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	sum := vec4(0)
	for i := 0; i < 9; i++ {
		off := (float(i) - 4.0) / 8.0 * Strength
		sum += imageSrc0At(src + vec2(0, off))
	}
	return sum / 9.0
}
`

var verticalBlurShader *ebiten.Shader

func ensureVerticalBlurShader() *ebiten.Shader {
	if verticalBlurShader == nil {
		s, err := ebiten.NewShader([]byte(verticalBlurShaderSrc))
		if err != nil {
			panic(fmt.Sprintf("render: compile vertical blur shader: %v", err))
		}
		verticalBlurShader = s
	}
	return verticalBlurShader
}

// MotionBlur smears a reel column vertically in proportion to its speed.
type MotionBlur struct {
	// Strength is the blur spread in pixels. Values below MinStrength copy
	// src unchanged.
	Strength    float64
	MinStrength float64

	uniforms map[string]any
	shaderOp ebiten.DrawRectShaderOptions
	imgOp    ebiten.DrawImageOptions
}

// NewMotionBlur creates a blur that skips the shader below minStrength pixels.
func NewMotionBlur(minStrength float64) *MotionBlur {
	return &MotionBlur{
		MinStrength: minStrength,
		uniforms:    make(map[string]any, 1),
	}
}

// Active reports whether Apply will run the shader.
func (f *MotionBlur) Active() bool {
	s := f.Strength
	if s < 0 {
		s = -s
	}
	return s >= f.MinStrength && s > 0
}

// Apply renders src into dst with its top-left corner at (x, y).
func (f *MotionBlur) Apply(src, dst *ebiten.Image, x, y float64) {
	if !f.Active() {
		f.imgOp.GeoM.Reset()
		f.imgOp.GeoM.Translate(x, y)
		f.imgOp.ColorScale.Reset()
		dst.DrawImage(src, &f.imgOp)
		return
	}
	strength := f.Strength
	if strength < 0 {
		strength = -strength
	}
	f.uniforms["Strength"] = float32(strength)
	bounds := src.Bounds()
	f.shaderOp.GeoM.Reset()
	f.shaderOp.GeoM.Translate(x, y)
	f.shaderOp.Images[0] = src
	f.shaderOp.Uniforms = f.uniforms
	dst.DrawRectShader(bounds.Dx(), bounds.Dy(), ensureVerticalBlurShader(), &f.shaderOp)
}
