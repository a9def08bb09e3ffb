package view

import (
	"fmt"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/gol-board/sim"
	"github.com/sheikhrachel/gol-board/utils"
)

// Control bar labels
const (
	LabelRun    = "Run"
	LabelStop   = "Stop"
	LabelRandom = "Random"
	LabelClear  = "Clear"

	FieldPrefix = "Update every"
	FieldSuffix = "millisec"
)

// Controls turns frontend input into Loop calls. It keeps the interval field
// text, which may hold input the loop rejected. It is not safe for concurrent
// use; frontends drive it from their event loop.
type Controls struct {
	loop  *sim.Loop
	field string
	err   error
}

// NewControls returns controls for loop with the field showing its interval
func NewControls(loop *sim.Loop) *Controls {
	return &Controls{
		loop:  loop,
		field: strconv.FormatInt(loop.Interval().Milliseconds(), 10),
	}
}

// RunStop starts a stopped loop and stops a running one
func (c *Controls) RunStop() {
	if c.loop.State() == sim.Running {
		c.loop.Stop()
		return
	}
	c.loop.Start()
}

// Random fills the board with random cells
func (c *Controls) Random() {
	c.loop.Randomize()
}

// Clear kills every cell
func (c *Controls) Clear() {
	c.loop.Clear()
}

// Click toggles the cell under (px, py), an offset inside the board drawn
// with layout. Clicks off the board are dropped and reported as false.
func (c *Controls) Click(layout Layout, px, py int) bool {
	cell, ok := layout.CellAt(px, py)
	if !ok {
		return false
	}
	return c.loop.Toggle(cell.X, cell.Y)
}

// SetField replaces the interval field text. Text that parses as a positive
// number of milliseconds becomes the loop interval; anything else is kept in
// the field, reported by FieldErr, and leaves the interval alone.
func (c *Controls) SetField(text string) {
	c.field = text
	var d time.Duration
	if d, c.err = utils.ParseInterval(text); c.err != nil {
		return
	}
	if !c.loop.SetInterval(d) {
		c.err = errors.Errorf("[Controls.SetField] interval %v rejected", d)
	}
}

// TypeRune appends a digit to the interval field. Other runes are ignored.
func (c *Controls) TypeRune(r rune) bool {
	if r < '0' || r > '9' {
		return false
	}
	c.SetField(c.field + string(r))
	return true
}

// Backspace removes the last character of the interval field
func (c *Controls) Backspace() {
	if c.field == "" {
		return
	}
	c.SetField(c.field[:len(c.field)-1])
}

// Field returns the interval field text
func (c *Controls) Field() string {
	return c.field
}

// FieldErr returns why the field text was not applied, or nil
func (c *Controls) FieldErr() error {
	return c.err
}

// RunLabel returns the caption of the Run/Stop button for s
func RunLabel(s sim.Snapshot) string {
	if s.Running() {
		return LabelStop
	}
	return LabelRun
}

// StatusLine summarises a snapshot in one line
func StatusLine(s sim.Snapshot) string {
	return fmt.Sprintf("Gen: %d | Living: %d | Status: %s | %.1f gen/sec | Avg Pop: %.1f",
		s.Generation, s.Population, s.Status, s.GenerationsPerSecond, s.AveragePopulation)
}
