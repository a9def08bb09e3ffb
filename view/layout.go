// Package view holds what the frontends share: the mapping between board
// cells and the pixel (or character) coordinates they are drawn at, and the
// state behind the Run/Stop, Random, Clear and interval controls.
package view

import "github.com/sheikhrachel/gol-board/model"

// Rect is an axis-aligned rectangle in view units
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (px, py) lies inside r
func (r Rect) Contains(px, py int) bool {
	return px >= r.X && px < r.X+r.W && py >= r.Y && py < r.Y+r.H
}

// Layout describes a board drawn as a Width x Height container split into
// CellW x CellH cells.
type Layout struct {
	Width  int
	Height int
	CellW  int
	CellH  int
}

// NewLayout returns a layout of square cells
func NewLayout(width, height, cellSize int) Layout {
	return Layout{Width: width, Height: height, CellW: cellSize, CellH: cellSize}
}

// Rows returns the number of cell rows in the container
func (l Layout) Rows() int {
	return l.Height / l.CellH
}

// Cols returns the number of cell columns in the container
func (l Layout) Cols() int {
	return l.Width / l.CellW
}

// CellAt converts an offset inside the container to the cell under it.
// Offsets left of or above the container, or past the last cell, report false.
func (l Layout) CellAt(px, py int) (model.Cell, bool) {
	if px < 0 || py < 0 {
		return model.Cell{}, false
	}
	c := model.Cell{X: px / l.CellW, Y: py / l.CellH}
	if c.X >= l.Cols() || c.Y >= l.Rows() {
		return model.Cell{}, false
	}
	return c, true
}

// Marker returns the rectangle a live cell is painted in. It is inset by one
// unit so the background grid lines stay visible.
func (l Layout) Marker(c model.Cell) Rect {
	return Rect{
		X: c.X*l.CellW + 1,
		Y: c.Y*l.CellH + 1,
		W: l.CellW - 1,
		H: l.CellH - 1,
	}
}
