package model

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
)

const (
	gridPosBlock = "██"
	gridPosEmpty = "  "
)

// TextRenderer draws a live-cell set as text, two columns per cell
type TextRenderer struct {
	Rows int
	Cols int
}

// Display writes one frame for cells to w. Cells outside Rows x Cols are skipped.
func (r *TextRenderer) Display(w io.Writer, cells []Cell) error {
	alive := make(map[Cell]struct{}, len(cells))
	for _, c := range cells {
		alive[c] = struct{}{}
	}

	bw := bufio.NewWriter(w)
	for y := range r.Rows {
		for x := range r.Cols {
			if _, ok := alive[Cell{X: x, Y: y}]; ok {
				bw.WriteString(gridPosBlock)
			} else {
				bw.WriteString(gridPosEmpty)
			}
		}
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "[TextRenderer.Display] failed to write frame")
	}
	return nil
}
