//go:build ebiten

// Package gui draws the board in a window with ebiten, one 20px square per
// cell over a background grid, with the controls in a strip underneath.
package gui

import (
	"context"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/pkg/errors"
	"golang.org/x/image/font/basicfont"

	"github.com/sheikhrachel/gol-board/sim"
	"github.com/sheikhrachel/gol-board/utils"
	"github.com/sheikhrachel/gol-board/view"
)

const (
	controlBarHeight = 48
	buttonPadding    = 8
	buttonHeight     = 20
	buttonGap        = 8
)

var (
	backgroundColor = color.RGBA{R: 250, G: 250, B: 250, A: 255}
	gridColor       = color.RGBA{R: 220, G: 220, B: 220, A: 255}
	cellColor       = color.RGBA{R: 40, G: 40, B: 40, A: 255}
	barColor        = color.RGBA{R: 235, G: 235, B: 240, A: 255}
	buttonColor     = color.RGBA{R: 70, G: 110, B: 180, A: 255}
	labelColor      = color.White
	textColor       = color.RGBA{R: 30, G: 30, B: 40, A: 255}
	errorColor      = color.RGBA{R: 190, G: 40, B: 40, A: 255}
)

type button struct {
	label  string
	rect   view.Rect
	action func()
}

// Game adapts a Loop to the ebiten.Game interface
type Game struct {
	ctx      context.Context
	loop     *sim.Loop
	controls *view.Controls
	layout   view.Layout

	mu   sync.Mutex
	snap sim.Snapshot
}

// New returns a Game drawing loop at the geometry in cfg
func New(ctx context.Context, loop *sim.Loop, cfg utils.Config) *Game {
	g := &Game{
		ctx:      ctx,
		loop:     loop,
		controls: view.NewControls(loop),
		layout:   view.NewLayout(cfg.Width, cfg.Height, cfg.CellSize),
		snap:     loop.Snapshot(),
	}
	loop.SetPublisher(func(s sim.Snapshot) {
		g.mu.Lock()
		g.snap = s
		g.mu.Unlock()
	})
	return g
}

// Run opens the window and blocks until it is closed or ctx is cancelled
func Run(ctx context.Context, loop *sim.Loop, cfg utils.Config) error {
	g := New(ctx, loop, cfg)
	defer loop.SetPublisher(nil)
	defer loop.Stop()

	ebiten.SetWindowTitle("gol-board")
	ebiten.SetWindowSize(cfg.Width, cfg.Height+controlBarHeight)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return errors.Wrap(err, "[gui.Run] game loop failed")
	}
	return nil
}

func (g *Game) snapshot() sim.Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snap
}

// Update handles input. The simulation itself runs on the loop's timer.
func (g *Game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.controls.RunStop()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.controls.Random()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.controls.Clear()
	}
	for _, r := range ebiten.AppendInputChars(nil) {
		g.controls.TypeRune(r)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		g.controls.Backspace()
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		if !g.controls.Click(g.layout, mx, my) {
			for _, b := range g.buttons(g.snapshot()) {
				if b.rect.Contains(mx, my) {
					b.action()
					break
				}
			}
		}
	}
	return nil
}

// buttons lays out the control strip for s
func (g *Game) buttons(s sim.Snapshot) []button {
	face := basicfont.Face7x13
	x := buttonGap
	y := g.layout.Height + buttonGap
	var out []button
	for _, b := range []struct {
		label  string
		action func()
	}{
		{view.RunLabel(s), g.controls.RunStop},
		{view.LabelRandom, g.controls.Random},
		{view.LabelClear, g.controls.Clear},
	} {
		w := text.BoundString(face, b.label).Dx() + 2*buttonPadding
		out = append(out, button{
			label:  b.label,
			rect:   view.Rect{X: x, Y: y, W: w, H: buttonHeight},
			action: b.action,
		})
		x += w + buttonGap
	}
	return out
}

// Draw renders the grid, the live cells and the control strip
func (g *Game) Draw(screen *ebiten.Image) {
	s := g.snapshot()
	w, h := float32(g.layout.Width), float32(g.layout.Height)

	screen.Fill(backgroundColor)
	for x := 0; x <= g.layout.Width; x += g.layout.CellW {
		vector.StrokeLine(screen, float32(x), 0, float32(x), h, 1, gridColor, false)
	}
	for y := 0; y <= g.layout.Height; y += g.layout.CellH {
		vector.StrokeLine(screen, 0, float32(y), w, float32(y), 1, gridColor, false)
	}
	for _, c := range s.Cells {
		r := g.layout.Marker(c)
		vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), cellColor, false)
	}

	vector.DrawFilledRect(screen, 0, h, w, controlBarHeight, barColor, false)
	face := basicfont.Face7x13
	buttons := g.buttons(s)
	for _, b := range buttons {
		vector.DrawFilledRect(screen, float32(b.rect.X), float32(b.rect.Y), float32(b.rect.W), float32(b.rect.H), buttonColor, false)
		text.Draw(screen, b.label, face, b.rect.X+buttonPadding, b.rect.Y+14, labelColor)
	}

	last := buttons[len(buttons)-1].rect
	field := view.FieldPrefix + " [" + g.controls.Field() + "] " + view.FieldSuffix
	fieldColor := color.Color(textColor)
	if g.controls.FieldErr() != nil {
		fieldColor = errorColor
	}
	text.Draw(screen, field, face, last.X+last.W+2*buttonGap, last.Y+14, fieldColor)
	text.Draw(screen, view.StatusLine(s), face, buttonGap, g.layout.Height+controlBarHeight-4, textColor)
}

// Layout returns the logical screen size: the board plus the control strip
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.layout.Width, g.layout.Height + controlBarHeight
}
