//go:build !ebiten

package gui

import (
	"context"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/gol-board/sim"
	"github.com/sheikhrachel/gol-board/utils"
)

// ErrNotBuilt is returned when the binary was built without the ebiten tag
var ErrNotBuilt = errors.New("the gui frontend requires building with -tags ebiten")

// Run reports that the window frontend is not compiled in
func Run(context.Context, *sim.Loop, utils.Config) error {
	return errors.Wrap(ErrNotBuilt, "[gui.Run]")
}
