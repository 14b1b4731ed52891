// Package term renders a reels.Machine in a terminal. Each symbol is a
// single coloured letter centred in a block of cells; fast reels leave a
// dotted streak to stand in for motion blur.
package term

import (
	"context"
	"fmt"
	"image"
	"math"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/phanxgames/reels"
)

// Glyph is a terminal symbol texture. Its bounds are one unit square so the
// engine fits it to a whole slot.
type Glyph struct {
	Name  string
	Rune  rune
	Color tcell.Color
}

// Bounds implements reels.Texture.
func (g *Glyph) Bounds() image.Rectangle { return image.Rect(0, 0, 1, 1) }

// DefaultGlyphs mirrors the eight image symbols.
func DefaultGlyphs() []*Glyph {
	return []*Glyph{
		{"kiwi", 'K', tcell.ColorGreen},
		{"pear", 'P', tcell.ColorYellowGreen},
		{"apple", 'A', tcell.ColorRed},
		{"banana", 'B', tcell.ColorYellow},
		{"cherries", 'C', tcell.ColorDarkRed},
		{"strawberry", 'S', tcell.ColorHotPink},
		{"watermelon", 'W', tcell.ColorLimeGreen},
		{"jackpot", '7', tcell.ColorGold},
	}
}

// Textures converts glyphs to engine textures.
func Textures(glyphs []*Glyph) []reels.Texture {
	out := make([]reels.Texture, len(glyphs))
	for i, g := range glyphs {
		out[i] = g
	}
	return out
}

// Cell geometry of one symbol block, in terminal cells.
const (
	CellW = 7
	CellH = 3

	// streakBlur is the blur above which a reel draws motion streaks.
	streakBlur = 1.0
)

// Renderer draws a machine onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
	cfg    reels.Config
	label  string
}

// NewRenderer draws machines configured by cfg onto screen.
func NewRenderer(screen tcell.Screen, cfg reels.Config) *Renderer {
	return &Renderer{screen: screen, cfg: cfg, label: cfg.ButtonLabel(0)}
}

// Label returns the current play button text.
func (r *Renderer) Label() string { return r.label }

// HandleEvent updates the button label when a spin starts.
func (r *Renderer) HandleEvent(e reels.Event) {
	if e.Kind == reels.EventSpinStarted {
		r.label = r.cfg.ButtonLabel(e.Duration)
	}
}

// Origin returns the top-left cell of the reel area, centred on the screen.
func (r *Renderer) Origin() (x, y int) {
	w, h := r.screen.Size()
	areaW := r.cfg.ReelCount*(CellW+1) + 1
	areaH := r.cfg.VisibleSymbols*CellH + 2
	return (w - areaW) / 2, (h - areaH - 2) / 2
}

// Draw renders the frame. It does not call Show.
func (r *Renderer) Draw(m *reels.Machine) {
	s := r.screen
	s.Clear()
	ox, oy := r.Origin()
	rows := r.cfg.VisibleSymbols * CellH
	border := tcell.StyleDefault.Foreground(tcell.ColorGray)

	for i := 0; i <= r.cfg.ReelCount; i++ {
		x := ox + i*(CellW+1)
		for y := 1; y <= rows; y++ {
			s.SetContent(x, oy+y, '│', nil, border)
		}
	}
	for x := ox; x <= ox+r.cfg.ReelCount*(CellW+1); x++ {
		s.SetContent(x, oy, '─', nil, border)
		s.SetContent(x, oy+rows+1, '─', nil, border)
	}

	for i, reel := range m.Reels() {
		x0 := ox + i*(CellW+1) + 1
		streak := math.Abs(reel.Blur) > streakBlur
		for _, sym := range reel.Slots {
			g, ok := sym.Texture.(*Glyph)
			if !ok {
				continue
			}
			top := int(math.Round(sym.Y / r.cfg.SymbolSize * CellH))
			mid := top + CellH/2
			style := tcell.StyleDefault.Foreground(g.Color).Bold(true)
			if streak {
				style = style.Dim(true)
				for dy := 0; dy < CellH; dy++ {
					if dy != CellH/2 {
						r.put(x0+CellW/2, oy+1+top+dy, rows, '┊', style)
					}
				}
			}
			r.put(x0+CellW/2, oy+1+mid, rows, g.Rune, style)
		}
	}

	btn := []rune("[ " + r.label + " ]")
	bx := ox + (r.cfg.ReelCount*(CellW+1)+1-len(btn))/2
	btnStyle := tcell.StyleDefault.Bold(true).Italic(true)
	if m.Running() {
		btnStyle = btnStyle.Dim(true)
	}
	for i, c := range btn {
		s.SetContent(bx+i, oy+rows+3, c, nil, btnStyle)
	}
}

// put draws c at (x, y) if y falls inside the reel window that starts one
// row below the top border.
func (r *Renderer) put(x, y, rows int, c rune, style tcell.Style) {
	_, oy := r.Origin()
	if y <= oy || y > oy+rows {
		return
	}
	r.screen.SetContent(x, y, c, nil, style)
}

// Listener receives machine events from Run.
type Listener interface {
	HandleEvent(e reels.Event)
}

// Run drives m at roughly 60 frames per second until ctx ends or the user
// presses q, Escape or Ctrl-C. Space or Enter starts a spin.
func Run(ctx context.Context, screen tcell.Screen, m *reels.Machine, clock reels.Clock, log *zap.Logger, listeners ...Listener) error {
	if log == nil {
		log = zap.NewNop()
	}
	r := NewRenderer(screen, m.Config())
	listeners = append([]Listener{r}, listeners...)

	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go screen.ChannelEvents(events, quit)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				switch {
				case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC, ev.Rune() == 'q':
					return nil
				case ev.Key() == tcell.KeyEnter, ev.Rune() == ' ':
					if m.StartSpin(ctx) {
						log.Debug("spin requested from keyboard")
					}
				}
			case *tcell.EventResize:
				screen.Sync()
			}

		case <-ticker.C:
			for _, e := range m.Tick(clock.Now()) {
				for _, l := range listeners {
					l.HandleEvent(e)
				}
			}
			r.Draw(m)
			screen.Show()
		}
	}
}

// Describe returns a one-line summary of the visible symbols, row by row,
// for logs.
func Describe(m *reels.Machine) string {
	cfg := m.Config()
	var b strings.Builder
	for row := 0; row < cfg.VisibleSymbols; row++ {
		if row > 0 {
			b.WriteString(" / ")
		}
		for _, reel := range m.Reels() {
			b.WriteRune(symbolAt(reel, row, cfg.SymbolSize))
		}
	}
	return b.String()
}

func symbolAt(reel *reels.Reel, row int, size float64) rune {
	want := float64(row) * size
	for _, s := range reel.Slots {
		if math.Abs(s.Y-want) < size/2 {
			if g, ok := s.Texture.(*Glyph); ok {
				return g.Rune
			}
			return '?'
		}
	}
	return ' '
}

// String implements fmt.Stringer.
func (g *Glyph) String() string { return fmt.Sprintf("%s(%c)", g.Name, g.Rune) }
