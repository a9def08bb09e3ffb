// Package sim drives a Game of Life board on a timer. A Loop owns the board,
// applies user edits to it, and publishes a read-only Snapshot after every
// change so a frontend can redraw.
package sim

import (
	"io"
	"log"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/sheikhrachel/gol-board/model"
	"github.com/sheikhrachel/gol-board/utils"
)

// State is the run state of a Loop
type State int

const (
	Stopped State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

// Status summarises what the board is doing
type Status string

const (
	StatusActive  Status = "active"
	StatusStable  Status = "stable"
	StatusExtinct Status = "extinct"
)

// stablePeriod is the longest cycle reported as StatusStable
const stablePeriod = 2

// Snapshot is a copy of the loop state handed to frontends
type Snapshot struct {
	Rows       int
	Cols       int
	Cells      []model.Cell
	Generation int
	Population int
	State      State
	Interval   time.Duration
	Status     Status

	GenerationsPerSecond float64
	AveragePopulation    float64
}

// Running reports whether the loop was running when the snapshot was taken
func (s Snapshot) Running() bool {
	return s.State == Running
}

// Publisher receives every snapshot. It is called with the loop locked, so it
// must not call back into the Loop and should return quickly.
type Publisher func(Snapshot)

// Loop advances a board every interval while running. All methods are safe
// for concurrent use and the timer callback is serialised with them.
type Loop struct {
	mu sync.Mutex

	board   *model.Board
	pool    *model.BoardPool
	history *model.History
	stats   *utils.Stats

	state      State
	interval   time.Duration
	timer      Timer
	epoch      uint64 // bumped on every Start/Stop; stale timer callbacks compare against it
	generation int
	lastStep   time.Time
	status     Status

	density float64
	rng     *rand.Rand
	sched   Scheduler
	publish Publisher
	logger  *log.Logger
}

// Option configures a Loop
type Option func(*Loop)

// WithScheduler replaces the wall-clock scheduler
func WithScheduler(s Scheduler) Option {
	return func(l *Loop) { l.sched = s }
}

// WithLogger traces each generation advance to logger
func WithLogger(logger *log.Logger) Option {
	return func(l *Loop) { l.logger = logger }
}

// WithRand sets the random source used by Randomize
func WithRand(r *rand.Rand) Option {
	return func(l *Loop) { l.rng = r }
}

// WithDensity sets the probability that Randomize makes a cell alive
func WithDensity(density float64) Option {
	return func(l *Loop) { l.density = density }
}

// WithPublisher registers the snapshot consumer at construction
func WithPublisher(p Publisher) Option {
	return func(l *Loop) { l.publish = p }
}

// New returns a stopped Loop over an empty rows x cols board
func New(rows, cols int, interval time.Duration, opts ...Option) *Loop {
	l := &Loop{
		board:    model.MakeEmpty(rows, cols),
		pool:     model.NewBoardPool(),
		history:  model.NewHistory(stablePeriod),
		stats:    utils.NewStats(),
		state:    Stopped,
		interval: interval,
		status:   StatusExtinct,
		density:  0.5,
		sched:    RealScheduler{},
		logger:   log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// SetPublisher replaces the snapshot consumer
func (l *Loop) SetPublisher(p Publisher) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.publish = p
}

// Start moves the loop to Running, advances one generation straight away and
// arms the timer for the next. It is a no-op while already running.
func (l *Loop) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state == Running {
		return
	}
	l.state = Running
	l.epoch++
	l.lastStep = time.Time{}
	l.stepLocked(l.epoch)
}

// Stop moves the loop to Stopped and cancels the pending step. No advance
// happens after Stop returns. Stopping a stopped loop does nothing.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state == Stopped {
		return
	}
	l.state = Stopped
	l.epoch++
	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
	l.publishLocked()
}

// State returns the current run state
func (l *Loop) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// SetInterval changes the delay between generations. A pending step keeps the
// delay it was armed with; the new value applies from the next reschedule.
// Non-positive intervals are rejected.
func (l *Loop) SetInterval(d time.Duration) bool {
	if d <= 0 {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.interval = d
	return true
}

// Interval returns the delay between generations
func (l *Loop) Interval() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.interval
}

// Toggle flips the cell at (x, y) and publishes. Off-board coordinates are
// dropped and reported as false.
func (l *Loop) Toggle(x, y int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	ok := l.board.Toggle(x, y)
	if ok {
		l.history.Reset()
		l.status = l.editedStatus()
	}
	l.publishLocked()
	return ok
}

// Randomize refills the board at the configured density and publishes
func (l *Loop) Randomize() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.board.Randomize(l.density, l.rng)
	l.restartLocked()
	l.publishLocked()
}

// Clear kills every cell and publishes
func (l *Loop) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.board.Clear()
	l.restartLocked()
	l.publishLocked()
}

// Snapshot returns the current state without publishing it
func (l *Loop) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotLocked()
}

// tick is the timer callback for the run identified by epoch
func (l *Loop) tick(epoch uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	// Stop may have won the race against a timer that already fired.
	if l.state != Running || epoch != l.epoch {
		return
	}
	l.stepLocked(epoch)
}

// stepLocked advances, publishes and re-arms the timer with the current interval
func (l *Loop) stepLocked(epoch uint64) {
	l.advanceLocked()
	l.publishLocked()
	l.timer = l.sched.AfterFunc(l.interval, func() { l.tick(epoch) })
}

func (l *Loop) advanceLocked() {
	next := l.pool.Get(l.board.Rows(), l.board.Cols())
	l.board.AdvanceInto(next)
	l.pool.Put(l.board)
	l.board = next
	l.generation++

	population := next.Population()
	now := time.Now()
	var elapsed time.Duration
	if !l.lastStep.IsZero() {
		elapsed = now.Sub(l.lastStep)
	}
	l.lastStep = now
	l.stats.Update(l.generation, population, elapsed)

	hash := next.Hash()
	switch {
	case population == 0:
		l.status = StatusExtinct
	case l.history.Repeats(hash, stablePeriod):
		l.status = StatusStable
	default:
		l.status = StatusActive
	}
	l.history.Push(hash)

	l.logger.Printf("running iteration %d: %d live", l.generation, population)
}

// restartLocked resets the counters after the board was replaced wholesale
func (l *Loop) restartLocked() {
	l.generation = 0
	l.lastStep = time.Time{}
	l.stats.Reset()
	l.history.Reset()
	l.status = l.editedStatus()
}

func (l *Loop) editedStatus() Status {
	if l.board.Population() == 0 {
		return StatusExtinct
	}
	return StatusActive
}

func (l *Loop) publishLocked() {
	if l.publish == nil {
		return
	}
	l.publish(l.snapshotLocked())
}

func (l *Loop) snapshotLocked() Snapshot {
	cells := l.board.LiveCells()
	return Snapshot{
		Rows:                 l.board.Rows(),
		Cols:                 l.board.Cols(),
		Cells:                cells,
		Generation:           l.generation,
		Population:           len(cells),
		State:                l.state,
		Interval:             l.interval,
		Status:               l.status,
		GenerationsPerSecond: l.stats.GenerationsPerSecond,
		AveragePopulation:    l.stats.AveragePopulation,
	}
}
