package utils

import (
	"encoding/json"
	"flag"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Frontends understood by the launcher
const (
	FrontendTUI      = "tui"
	FrontendGUI      = "gui"
	FrontendHeadless = "headless"
)

// Config holds the configuration for the board and its frontend
type Config struct {
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	CellSize       int     `json:"cell_size"`
	IntervalMs     int     `json:"interval_ms"`
	RandomDensity  float64 `json:"random_density"`
	Frontend       string  `json:"frontend"`
	MaxGenerations int     `json:"max_generations"`
	Trace          bool    `json:"trace"`
}

// DefaultConfig returns an 800x600 board of 20px cells stepping every 100ms
func DefaultConfig() Config {
	return Config{
		Width:          800,
		Height:         600,
		CellSize:       20,
		IntervalMs:     100,
		RandomDensity:  0.5,
		Frontend:       FrontendTUI,
		MaxGenerations: 0, // run until interrupted
		Trace:          false,
	}
}

// LoadConfig loads configuration from JSON file
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

// Bind attaches the command-line overrides to the provided FlagSet
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Frontend, "frontend", c.Frontend, "frontend to run: tui, gui or headless")
	fs.IntVar(&c.IntervalMs, "interval", c.IntervalMs, "milliseconds between generations")
	fs.IntVar(&c.MaxGenerations, "generations", c.MaxGenerations, "headless only: stop after this many generations (0 runs until interrupted)")
	fs.BoolVar(&c.Trace, "trace", c.Trace, "log every generation advance to stderr")
}

// Validate checks that the board geometry and tunables are usable
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return errors.Errorf("[Config.Validate] board size must be positive, got %dx%d", c.Width, c.Height)
	case c.CellSize <= 0:
		return errors.Errorf("[Config.Validate] cell size must be positive, got %d", c.CellSize)
	case c.Width%c.CellSize != 0 || c.Height%c.CellSize != 0:
		return errors.Errorf("[Config.Validate] cell size %d does not divide board %dx%d", c.CellSize, c.Width, c.Height)
	case c.IntervalMs <= 0:
		return errors.Errorf("[Config.Validate] interval must be positive, got %dms", c.IntervalMs)
	case c.RandomDensity < 0 || c.RandomDensity > 1:
		return errors.Errorf("[Config.Validate] random density must be within [0,1], got %v", c.RandomDensity)
	}
	switch c.Frontend {
	case FrontendTUI, FrontendGUI, FrontendHeadless:
		return nil
	default:
		return errors.Errorf("[Config.Validate] unknown frontend %q", c.Frontend)
	}
}

// Rows returns the number of board rows
func (c Config) Rows() int {
	return c.Height / c.CellSize
}

// Cols returns the number of board columns
func (c Config) Cols() int {
	return c.Width / c.CellSize
}

// Interval returns the configured step interval
func (c Config) Interval() time.Duration {
	return time.Duration(c.IntervalMs) * time.Millisecond
}

// maxIntervalMs is the largest millisecond count a time.Duration can hold
const maxIntervalMs = math.MaxInt64 / int64(time.Millisecond)

// ParseInterval turns the text of an interval field, in milliseconds, into a
// duration. Empty, non-numeric, non-positive and out-of-range input is rejected.
func ParseInterval(text string) (time.Duration, error) {
	ms, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, errors.Wrapf(err, "[ParseInterval] %q is not a whole number of milliseconds", text)
	}
	if ms <= 0 {
		return 0, errors.Errorf("[ParseInterval] interval must be positive, got %dms", ms)
	}
	if int64(ms) > maxIntervalMs {
		return 0, errors.Errorf("[ParseInterval] interval %dms exceeds the maximum of %dms", ms, maxIntervalMs)
	}
	return time.Duration(ms) * time.Millisecond, nil
}
