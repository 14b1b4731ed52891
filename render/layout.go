package render

import (
	"image"

	"github.com/phanxgames/reels"
)

// Segment is a grid line in screen pixels.
type Segment struct {
	X0, Y0, X1, Y1 float64
}

// Layout places the machine on a screen of a given size. It is recomputed
// whenever the window is resized.
type Layout struct {
	ScreenW, ScreenH int

	// ReelsX, ReelsY is the top-left corner of the visible reel area.
	ReelsX, ReelsY float64
	ReelsW, ReelsH float64

	// ButtonX, ButtonY is the centre of the play button label.
	ButtonX, ButtonY float64

	Grid []Segment
}

// ComputeLayout centres the reel area on the screen, puts the play button
// ButtonMargin pixels below it, and outlines every column.
func ComputeLayout(cfg reels.Config, screenW, screenH int) Layout {
	l := Layout{
		ScreenW: screenW,
		ScreenH: screenH,
		ReelsW:  cfg.ReelWidth * float64(cfg.ReelCount),
		ReelsH:  cfg.SymbolSize * float64(cfg.VisibleSymbols),
	}
	l.ReelsX = float64(screenW)/2 - l.ReelsW/2
	l.ReelsY = (float64(screenH) - l.ReelsH) / 2

	l.ButtonX = float64(screenW) / 2
	l.ButtonY = l.ReelsY + l.ReelsH + cfg.ButtonMargin

	l.Grid = make([]Segment, 0, cfg.ReelCount+3)
	for i := 0; i <= cfg.ReelCount; i++ {
		x := l.ReelsX + float64(i)*cfg.ReelWidth
		l.Grid = append(l.Grid, Segment{x, l.ReelsY, x, l.ReelsY + l.ReelsH})
	}
	l.Grid = append(l.Grid,
		Segment{l.ReelsX, l.ReelsY, l.ReelsX + l.ReelsW, l.ReelsY},
		Segment{l.ReelsX, l.ReelsY + l.ReelsH, l.ReelsX + l.ReelsW, l.ReelsY + l.ReelsH},
	)
	return l
}

// ReelRect returns the on-screen rectangle of reel i's visible window.
func (l Layout) ReelRect(cfg reels.Config, i int) image.Rectangle {
	x := l.ReelsX + float64(i)*cfg.ReelWidth
	return image.Rect(int(x), int(l.ReelsY), int(x+cfg.ReelWidth), int(l.ReelsY+l.ReelsH))
}
