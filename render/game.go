package render

import (
	"context"
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"

	"github.com/phanxgames/reels"
)

// minBlur is the smallest motion blur, in pixels, worth a shader pass.
const minBlur = 0.5

// EventListener receives every machine event once per frame, in order.
type EventListener interface {
	HandleEvent(e reels.Event)
}

// GameOptions configures a Game. Machine, Clock and Assets are required.
type GameOptions struct {
	Machine *reels.Machine
	Clock   reels.Clock
	Assets  *Assets
	Logger  *zap.Logger

	// Script drives the machine without input when set. QuitWhenDone ends
	// the game once the script has finished and its screenshots are saved.
	Script       *reels.Script
	QuitWhenDone bool
	Screenshots  *Screenshots

	Listeners []EventListener
}

// Game adapts a reels.Machine to ebiten.Game.
type Game struct {
	ctx     context.Context
	machine *reels.Machine
	cfg     reels.Config
	clock   reels.Clock
	assets  *Assets
	log     *zap.Logger

	script    *reels.Script
	quitDone  bool
	shots     *Screenshots
	listeners []EventListener

	layout  Layout
	button  *Button
	columns []*ebiten.Image
	blurs   []*MotionBlur
	imgOp   ebiten.DrawImageOptions
}

// NewGame wires a machine to the screen. ctx bounds every spin request.
func NewGame(ctx context.Context, opts GameOptions) (*Game, error) {
	if opts.Machine == nil || opts.Clock == nil || opts.Assets == nil {
		return nil, errors.New("render: machine, clock and assets are required")
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	button, err := NewButton(opts.Machine.Config().ButtonLabel(0))
	if err != nil {
		return nil, err
	}

	cfg := opts.Machine.Config()
	g := &Game{
		ctx:       ctx,
		machine:   opts.Machine,
		cfg:       cfg,
		clock:     opts.Clock,
		assets:    opts.Assets,
		log:       log,
		script:    opts.Script,
		quitDone:  opts.QuitWhenDone,
		shots:     opts.Screenshots,
		listeners: opts.Listeners,
		button:    button,
		columns:   make([]*ebiten.Image, cfg.ReelCount),
		blurs:     make([]*MotionBlur, cfg.ReelCount),
	}
	if g.script != nil && g.shots != nil {
		g.script.Screenshot = g.shots.Queue
	}
	w, h := int(cfg.ReelWidth), int(cfg.SymbolSize*float64(cfg.VisibleSymbols))
	for i := range g.columns {
		g.columns[i] = ebiten.NewImage(w, h)
		g.blurs[i] = NewMotionBlur(minBlur)
	}
	return g, nil
}

// Update handles input, steps the script, and ticks the machine.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if g.playPressed() {
		if g.machine.StartSpin(g.ctx) {
			g.log.Debug("spin requested from input")
		}
	}
	if g.script != nil && !g.script.Done() {
		g.script.Step(g.ctx, g.machine)
	}

	for _, e := range g.machine.Tick(g.clock.Now()) {
		if e.Kind == reels.EventSpinStarted {
			g.button.Label = g.cfg.ButtonLabel(e.Duration)
		}
		for _, l := range g.listeners {
			l.HandleEvent(e)
		}
	}

	g.button.Update(1/float32(ebiten.TPS()), g.machine.Running())

	if g.quitDone && g.script != nil && g.script.Done() && (g.shots == nil || g.shots.Pending() == 0) {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) playPressed() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		return true
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if g.button.Contains(g.layout.ButtonX, g.layout.ButtonY, x, y) {
			return true
		}
	}
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		if g.button.Contains(g.layout.ButtonX, g.layout.ButtonY, x, y) {
			return true
		}
	}
	return false
}

// Draw renders the background, the masked reels, the grid and the button.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	g.drawBackground(screen)

	for i, r := range g.machine.Reels() {
		col := g.columns[i]
		col.Clear()
		for _, s := range r.Slots {
			img, ok := s.Texture.(*ebiten.Image)
			if !ok {
				continue
			}
			op := &g.imgOp
			op.GeoM.Reset()
			op.ColorScale.Reset()
			op.Filter = ebiten.FilterLinear
			op.GeoM.Scale(s.Scale, s.Scale)
			op.GeoM.Translate(s.X, s.Y)
			col.DrawImage(img, op)
		}
		rect := g.layout.ReelRect(g.cfg, i)
		g.blurs[i].Strength = r.Blur
		g.blurs[i].Apply(col, screen, float64(rect.Min.X), float64(rect.Min.Y))
	}

	lw := float32(g.cfg.GridLineWidth)
	for _, s := range g.layout.Grid {
		vector.StrokeLine(screen, float32(s.X0), float32(s.Y0), float32(s.X1), float32(s.Y1), lw, color.Black, true)
	}

	g.button.Draw(screen, g.layout.ButtonX, g.layout.ButtonY)

	if g.cfg.Debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nstate: %s\ntweens: %d",
			ebiten.ActualFPS(), ebiten.ActualTPS(), g.machine.State(), g.machine.ActiveTweens()))
	}

	if g.shots != nil {
		g.shots.Flush(screen)
	}
}

func (g *Game) drawBackground(screen *ebiten.Image) {
	bg := g.assets.Background
	if bg == nil {
		return
	}
	b := bg.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	op := &g.imgOp
	op.GeoM.Reset()
	op.ColorScale.Reset()
	op.Filter = ebiten.FilterLinear
	op.GeoM.Scale(float64(g.layout.ScreenW)/float64(b.Dx()), float64(g.layout.ScreenH)/float64(b.Dy()))
	screen.DrawImage(bg, op)
}

// Layout tracks the window size so the machine stays centred on resize.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.layout.ScreenW || outsideHeight != g.layout.ScreenH {
		g.layout = ComputeLayout(g.cfg, outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// RunConfig sets up the window.
type RunConfig struct {
	Title         string
	Width, Height int
}

// Run opens a resizable window and blocks until the game ends. Closing the
// window or pressing Escape returns nil.
func Run(g *Game, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 1280, 960
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	defer g.machine.Close()

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("render: run game: %w", err)
	}
	return nil
}
