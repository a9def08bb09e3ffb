package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/gol-board/gui"
	"github.com/sheikhrachel/gol-board/model"
	"github.com/sheikhrachel/gol-board/sim"
	"github.com/sheikhrachel/gol-board/tui"
	"github.com/sheikhrachel/gol-board/utils"
	"github.com/sheikhrachel/gol-board/view"
)

const defaultConfigPath = "config.json"

// newFlagSet binds the command line to config, plus the -config path
func newFlagSet(config *utils.Config, path *string) *flag.FlagSet {
	fs := flag.NewFlagSet("gol-board", flag.ContinueOnError)
	fs.StringVar(path, "config", defaultConfigPath, "path to a JSON config file")
	config.Bind(fs)
	return fs
}

// loadConfig reads the config file named by -config, falling back to the
// defaults when the default file is absent, then applies the remaining flags
func loadConfig(args []string, out io.Writer) (utils.Config, error) {
	var (
		path  string
		probe = utils.DefaultConfig()
	)
	fs := newFlagSet(&probe, &path)
	fs.SetOutput(io.Discard)
	if err := fs.Parse(args); err != nil && !errors.Is(err, flag.ErrHelp) {
		return probe, errors.Wrap(err, "[loadConfig] failed to parse flags")
	}

	config, err := utils.LoadConfig(path)
	if err != nil {
		if path != defaultConfigPath || !errors.Is(err, os.ErrNotExist) {
			return config, err
		}
		fmt.Fprintln(out, "Using default configuration (config.json not found)")
		config = utils.DefaultConfig()
	}

	// Flags win over the file
	if err = newFlagSet(&config, &path).Parse(args); err != nil {
		return config, err
	}
	return config, config.Validate()
}

// initializeGame sets up the loop for config, tracing to trace when enabled
func initializeGame(config utils.Config, trace io.Writer) *sim.Loop {
	opts := []sim.Option{sim.WithDensity(config.RandomDensity)}
	if config.Trace {
		opts = append(opts, sim.WithLogger(log.New(trace, "gol-board ", log.LstdFlags|log.Lmicroseconds)))
	}
	return sim.New(config.Rows(), config.Cols(), config.Interval(), opts...)
}

// displayGameInfo shows the initial game information
func displayGameInfo(config utils.Config, w io.Writer) {
	if config.Frontend != utils.FrontendHeadless {
		return
	}
	fmt.Fprintf(w, "Grid: %dx%d | Interval: %v | Random density: %.2f\n",
		config.Cols(), config.Rows(), config.Interval(), config.RandomDensity)
	if config.MaxGenerations > 0 {
		fmt.Fprintf(w, "Stopping after %d generations\n", config.MaxGenerations)
	}
	fmt.Fprintln(w, "Press Ctrl+C to exit gracefully")
	fmt.Fprintln(w)
}

// runFrontend hands the loop to the configured frontend until it exits
func runFrontend(ctx context.Context, config utils.Config, loop *sim.Loop, out io.Writer) error {
	switch config.Frontend {
	case utils.FrontendGUI:
		return gui.Run(ctx, loop, config)
	case utils.FrontendHeadless:
		return runHeadless(ctx, config, loop, out)
	default:
		screen, err := tcell.NewScreen()
		if err != nil {
			return errors.Wrap(err, "[runFrontend] failed to create terminal screen")
		}
		return tui.New(screen, loop).Run(ctx)
	}
}

// runHeadless randomizes the board, runs the loop and prints every frame it
// publishes until max_generations is reached or ctx is cancelled
func runHeadless(ctx context.Context, config utils.Config, loop *sim.Loop, out io.Writer) error {
	frames := make(chan sim.Snapshot, 1)
	loop.SetPublisher(func(s sim.Snapshot) {
		// Only the newest frame matters; the loop lock makes this the sole sender.
		select {
		case frames <- s:
		default:
			select {
			case <-frames:
			default:
			}
			frames <- s
		}
	})
	defer loop.SetPublisher(nil)
	defer loop.Stop()

	renderer := &model.TextRenderer{Rows: config.Rows(), Cols: config.Cols()}
	loop.Randomize()
	loop.Start()

	for {
		select {
		case <-ctx.Done():
			return nil
		case s := <-frames:
			if _, err := fmt.Fprintln(out, view.StatusLine(s)); err != nil {
				return errors.Wrap(err, "[runHeadless] failed to write status")
			}
			if err := renderer.Display(out, s.Cells); err != nil {
				return err
			}
			if config.MaxGenerations > 0 && s.Generation >= config.MaxGenerations {
				return nil
			}
		}
	}
}
