package model

import (
	"crypto/md5"
	"fmt"
	"math/rand/v2"

	"github.com/sheikhrachel/gol-board/rules"
)

// Cell is a board coordinate. It doubles as the key a view renders a marker under.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// neighbourOffsets lists the Moore neighbourhood as (dx, dy) pairs
var neighbourOffsets = [rules.MooreNeighbours]Cell{
	{X: -1, Y: -1}, {X: 0, Y: -1}, {X: 1, Y: -1},
	{X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
	{X: -1, Y: 1}, {X: -1, Y: 0},
}

// Board is a fixed-size Game of Life grid. Cells are stored row-major as
// cells[y][x] and nothing outside [0,cols)x[0,rows) exists: edges do not wrap.
type Board struct {
	rows  int
	cols  int
	cells [][]bool
}

// MakeEmpty returns an all-dead board with the given dimensions
func MakeEmpty(rows, cols int) *Board {
	rows, cols = max(0, rows), max(0, cols)
	cells := make([][]bool, rows)
	for y := range cells {
		cells[y] = make([]bool, cols)
	}
	return &Board{
		rows:  rows,
		cols:  cols,
		cells: cells,
	}
}

// Rows returns the number of rows on the board
func (b *Board) Rows() int {
	return b.rows
}

// Cols returns the number of columns on the board
func (b *Board) Cols() int {
	return b.cols
}

// Reset resizes the board to new dimensions and kills every cell
func (b *Board) Reset(rows, cols int) {
	rows, cols = max(0, rows), max(0, cols)
	b.rows = rows
	b.cols = cols

	// Resize cells if needed
	if len(b.cells) != rows {
		b.cells = make([][]bool, rows)
	}
	for y := range b.cells {
		if len(b.cells[y]) != cols {
			b.cells[y] = make([]bool, cols)
		} else {
			clear(b.cells[y])
		}
	}
}

// InBounds reports whether (x, y) addresses a cell on the board
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.cols && y >= 0 && y < b.rows
}

// Get returns the state of a cell, reporting dead for anything off the board
func (b *Board) Get(x, y int) bool {
	if !b.InBounds(x, y) {
		return false
	}
	return b.cells[y][x]
}

// Set sets a cell to alive (true) or dead (false). Off-board writes are dropped.
func (b *Board) Set(x, y int, alive bool) {
	if b.InBounds(x, y) {
		b.cells[y][x] = alive
	}
}

// Toggle flips the cell at (x, y). It reports false, leaving the board
// untouched, when the coordinate is off the board.
func (b *Board) Toggle(x, y int) bool {
	if !b.InBounds(x, y) {
		return false
	}
	b.cells[y][x] = !b.cells[y][x]
	return true
}

// Clear kills every cell
func (b *Board) Clear() {
	for y := range b.rows {
		clear(b.cells[y])
	}
}

// Randomize sets each cell alive independently with probability density.
// A nil rng draws from the process-wide source.
func (b *Board) Randomize(density float64, rng *rand.Rand) {
	draw := rand.Float64
	if rng != nil {
		draw = rng.Float64
	}
	for y := range b.rows {
		for x := range b.cols {
			b.cells[y][x] = draw() < density
		}
	}
}

// CountLiveNeighbours counts the live cells in the Moore neighbourhood of
// (x, y). Neighbours off the board count as dead.
func (b *Board) CountLiveNeighbours(x, y int) (count int) {
	for _, off := range neighbourOffsets {
		if b.Get(x+off.X, y+off.Y) {
			count++
		}
	}
	return
}

// Advance returns the next generation as a new board and leaves b unmodified
func (b *Board) Advance() *Board {
	next := MakeEmpty(b.rows, b.cols)
	b.AdvanceInto(next)
	return next
}

// AdvanceInto writes the next generation of b into next, which must have the
// same dimensions as b. Every cell of next is overwritten.
func (b *Board) AdvanceInto(next *Board) {
	for y := range b.rows {
		for x := range b.cols {
			next.cells[y][x] = rules.Next(b.cells[y][x], b.CountLiveNeighbours(x, y))
		}
	}
}

// LiveCells returns the coordinates of every live cell in row-major order
// (y outer, x inner)
func (b *Board) LiveCells() []Cell {
	cells := make([]Cell, 0, b.Population())
	for y := range b.rows {
		for x := range b.cols {
			if b.cells[y][x] {
				cells = append(cells, Cell{X: x, Y: y})
			}
		}
	}
	return cells
}

// Population returns the total number of living cells
func (b *Board) Population() (count int) {
	for y := range b.rows {
		for x := range b.cols {
			if b.cells[y][x] {
				count++
			}
		}
	}
	return
}

// Hash returns an MD5 digest of the board contents, used to spot repeating states
func (b *Board) Hash() string {
	h := md5.New()
	row := make([]byte, b.cols)
	for y := range b.rows {
		for x := range b.cols {
			row[x] = 0
			if b.cells[y][x] {
				row[x] = 1
			}
		}
		h.Write(row)
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
