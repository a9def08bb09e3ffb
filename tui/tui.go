// Package tui draws the board in a terminal with tcell. Each cell is two
// columns wide so the grid looks roughly square.
package tui

import (
	"context"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/gol-board/sim"
	"github.com/sheikhrachel/gol-board/view"
)

const (
	cellBlock = '█'
	cellWidth = 2

	// board origin inside the border
	originX = 1
	originY = 1
)

// quitRequest is posted to the event queue when the context is cancelled
type quitRequest struct{}

// wake is posted when the loop publishes a snapshot from its timer
type wake struct{}

type button struct {
	rect   view.Rect
	action func()
}

// UI is the terminal frontend for a Loop
type UI struct {
	screen   tcell.Screen
	loop     *sim.Loop
	controls *view.Controls
	layout   view.Layout

	mu     sync.Mutex
	latest sim.Snapshot

	snap    sim.Snapshot
	buttons []button
	pressed tcell.ButtonMask
}

// New returns a UI drawing loop on screen. The screen is initialised by Run.
func New(screen tcell.Screen, loop *sim.Loop) *UI {
	snap := loop.Snapshot()
	return &UI{
		screen:   screen,
		loop:     loop,
		controls: view.NewControls(loop),
		layout: view.Layout{
			Width:  snap.Cols * cellWidth,
			Height: snap.Rows,
			CellW:  cellWidth,
			CellH:  1,
		},
		latest: snap,
		snap:   snap,
	}
}

// Run initialises the screen and handles input until the user quits or ctx is
// cancelled. The loop is stopped on return.
func (u *UI) Run(ctx context.Context) error {
	if err := u.screen.Init(); err != nil {
		return errors.Wrap(err, "[tui.Run] failed to initialise screen")
	}
	defer u.screen.Fini()
	u.screen.EnableMouse()

	u.attach()
	defer u.loop.SetPublisher(nil)
	defer u.loop.Stop()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			u.screen.PostEvent(tcell.NewEventInterrupt(quitRequest{}))
		case <-done:
		}
	}()

	u.refresh()
	for {
		ev := u.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if u.handle(ev) {
			return nil
		}
	}
}

// attach subscribes to the loop. Snapshots are parked in latest and the event
// loop is woken to draw them.
func (u *UI) attach() {
	u.loop.SetPublisher(func(s sim.Snapshot) {
		u.mu.Lock()
		u.latest = s
		u.mu.Unlock()
		// A full queue already holds a wake-up.
		_ = u.screen.PostEvent(tcell.NewEventInterrupt(wake{}))
	})
}

// handle processes one event and reports whether the UI should exit
func (u *UI) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventInterrupt:
		if _, ok := ev.Data().(quitRequest); ok {
			return true
		}
	case *tcell.EventResize:
		u.screen.Sync()
	case *tcell.EventKey:
		if u.key(ev) {
			return true
		}
	case *tcell.EventMouse:
		buttons := ev.Buttons()
		if buttons&tcell.Button1 != 0 && u.pressed&tcell.Button1 == 0 {
			x, y := ev.Position()
			u.click(x, y)
		}
		u.pressed = buttons
	}
	u.refresh()
	return false
}

func (u *UI) key(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyEnter:
		u.controls.RunStop()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		u.controls.Backspace()
	case tcell.KeyRune:
		switch r := ev.Rune(); r {
		case 'q':
			return true
		case ' ':
			u.controls.RunStop()
		case 'r':
			u.controls.Random()
		case 'c':
			u.controls.Clear()
		default:
			u.controls.TypeRune(r)
		}
	}
	return false
}

func (u *UI) click(x, y int) {
	if u.controls.Click(u.layout, x-originX, y-originY) {
		return
	}
	for _, b := range u.buttons {
		if b.rect.Contains(x, y) {
			b.action()
			return
		}
	}
}

// refresh picks up the newest snapshot and redraws
func (u *UI) refresh() {
	u.mu.Lock()
	u.snap = u.latest
	u.mu.Unlock()
	u.draw()
}

func (u *UI) draw() {
	s := u.screen
	s.Clear()
	style := tcell.StyleDefault

	w, h := u.layout.Width, u.layout.Height
	for x := 0; x < w; x++ {
		s.SetContent(originX+x, 0, tcell.RuneHLine, nil, style)
		s.SetContent(originX+x, originY+h, tcell.RuneHLine, nil, style)
	}
	for y := 0; y < h; y++ {
		s.SetContent(0, originY+y, tcell.RuneVLine, nil, style)
		s.SetContent(originX+w, originY+y, tcell.RuneVLine, nil, style)
	}
	s.SetContent(0, 0, tcell.RuneULCorner, nil, style)
	s.SetContent(originX+w, 0, tcell.RuneURCorner, nil, style)
	s.SetContent(0, originY+h, tcell.RuneLLCorner, nil, style)
	s.SetContent(originX+w, originY+h, tcell.RuneLRCorner, nil, style)

	for _, c := range u.snap.Cells {
		for i := 0; i < cellWidth; i++ {
			s.SetContent(originX+c.X*cellWidth+i, originY+c.Y, cellBlock, nil, style)
		}
	}

	statusY := originY + h + 1
	drawText(s, 0, statusY, view.StatusLine(u.snap), style)
	u.drawControls(statusY + 1)

	s.Show()
}

// drawControls lays out the control bar on row y and records the button rects
func (u *UI) drawControls(y int) {
	style := tcell.StyleDefault
	u.buttons = u.buttons[:0]
	x := 0
	for _, b := range []struct {
		label  string
		action func()
	}{
		{view.RunLabel(u.snap), u.controls.RunStop},
		{view.LabelRandom, u.controls.Random},
		{view.LabelClear, u.controls.Clear},
	} {
		text := "[ " + b.label + " ]"
		drawText(u.screen, x, y, text, style.Reverse(true))
		u.buttons = append(u.buttons, button{
			rect:   view.Rect{X: x, Y: y, W: len(text), H: 1},
			action: b.action,
		})
		x += len(text) + 1
	}

	field := view.FieldPrefix + " [" + u.controls.Field() + "] " + view.FieldSuffix
	if u.controls.FieldErr() != nil {
		field += " (invalid)"
	}
	drawText(u.screen, x+1, y, field, style)
}

func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}
