package model

import (
	"bytes"
	"math/rand/v2"
	"reflect"
	"strings"
	"testing"
)

func boardWith(rows, cols int, live ...Cell) *Board {
	b := MakeEmpty(rows, cols)
	for _, c := range live {
		b.Set(c.X, c.Y, true)
	}
	return b
}

func TestMakeEmpty(t *testing.T) {
	b := MakeEmpty(30, 40)
	if b.Rows() != 30 || b.Cols() != 40 {
		t.Fatalf("dimensions = %dx%d, expected 30x40", b.Rows(), b.Cols())
	}
	if got := b.Population(); got != 0 {
		t.Fatalf("population = %d, expected 0", got)
	}
}

func TestAdvanceEmptyStaysEmpty(t *testing.T) {
	next := MakeEmpty(30, 40).Advance()
	if cells := next.LiveCells(); len(cells) != 0 {
		t.Fatalf("empty board produced live cells %v", cells)
	}
}

func TestAdvanceLeavesInputUnmodified(t *testing.T) {
	b := boardWith(5, 5, Cell{2, 1}, Cell{2, 2}, Cell{2, 3})
	before := b.LiveCells()
	_ = b.Advance()
	if after := b.LiveCells(); !reflect.DeepEqual(before, after) {
		t.Fatalf("input mutated: before %v after %v", before, after)
	}
}

func TestBlockIsStillLife(t *testing.T) {
	block := []Cell{{1, 1}, {2, 1}, {1, 2}, {2, 2}}
	b := boardWith(4, 4, block...)
	next := b.Advance()
	if got := next.LiveCells(); !reflect.DeepEqual(got, block) {
		t.Fatalf("block changed to %v", got)
	}
}

func TestIsolatedCellDies(t *testing.T) {
	b := boardWith(3, 3, Cell{1, 1})
	if got := b.Advance().Population(); got != 0 {
		t.Fatalf("population after advance = %d, expected 0", got)
	}
}

func TestBlinkerOscillation(t *testing.T) {
	b := boardWith(5, 5, Cell{2, 1}, Cell{2, 2}, Cell{2, 3})

	b = b.Advance()
	want := []Cell{{1, 2}, {2, 2}, {3, 2}}
	if got := b.LiveCells(); !reflect.DeepEqual(got, want) {
		t.Fatalf("after first step live = %v, expected %v", got, want)
	}

	b = b.Advance()
	want = []Cell{{2, 1}, {2, 2}, {2, 3}}
	if got := b.LiveCells(); !reflect.DeepEqual(got, want) {
		t.Fatalf("after second step live = %v, expected %v", got, want)
	}
}

func TestEdgesDoNotWrap(t *testing.T) {
	// A blinker against the left edge would gain a neighbour on a torus.
	b := boardWith(5, 5, Cell{0, 1}, Cell{0, 2}, Cell{0, 3})
	want := []Cell{{0, 2}, {1, 2}}
	if got := b.Advance().LiveCells(); !reflect.DeepEqual(got, want) {
		t.Fatalf("live = %v, expected %v", got, want)
	}
}

func TestCountLiveNeighbours(t *testing.T) {
	full := MakeEmpty(4, 4)
	full.Randomize(1, nil)

	tests := []struct {
		name string
		x, y int
		want int
	}{
		{"top-left corner", 0, 0, 3},
		{"top-right corner", 3, 0, 3},
		{"bottom-left corner", 0, 3, 3},
		{"top edge", 1, 0, 5},
		{"left edge", 0, 2, 5},
		{"interior", 1, 1, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := full.CountLiveNeighbours(tt.x, tt.y); got != tt.want {
				t.Errorf("CountLiveNeighbours(%d,%d) = %d, expected %d", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestCountLiveNeighboursIgnoresSelf(t *testing.T) {
	b := boardWith(3, 3, Cell{1, 1})
	if got := b.CountLiveNeighbours(1, 1); got != 0 {
		t.Fatalf("CountLiveNeighbours = %d, expected 0", got)
	}
	if got := b.CountLiveNeighbours(0, 0); got != 1 {
		t.Fatalf("CountLiveNeighbours(0,0) = %d, expected 1", got)
	}
}

func TestToggleIsSelfInverse(t *testing.T) {
	b := boardWith(3, 4, Cell{3, 2})
	for _, c := range []Cell{{0, 0}, {3, 2}} {
		before := b.Get(c.X, c.Y)
		if !b.Toggle(c.X, c.Y) {
			t.Fatalf("Toggle(%d,%d) rejected an in-bounds cell", c.X, c.Y)
		}
		if b.Get(c.X, c.Y) == before {
			t.Fatalf("Toggle(%d,%d) did not flip the cell", c.X, c.Y)
		}
		b.Toggle(c.X, c.Y)
		if b.Get(c.X, c.Y) != before {
			t.Fatalf("double Toggle(%d,%d) did not restore the cell", c.X, c.Y)
		}
	}
}

func TestToggleOutOfRangeIsIgnored(t *testing.T) {
	b := boardWith(3, 4, Cell{1, 1})
	for _, c := range []Cell{{-1, 0}, {0, -1}, {4, 0}, {0, 3}} {
		if b.Toggle(c.X, c.Y) {
			t.Errorf("Toggle(%d,%d) accepted an off-board cell", c.X, c.Y)
		}
	}
	if got := b.LiveCells(); !reflect.DeepEqual(got, []Cell{{1, 1}}) {
		t.Fatalf("board changed to %v", got)
	}
}

func TestClear(t *testing.T) {
	b := MakeEmpty(30, 40)
	b.Randomize(0.5, rand.New(rand.NewPCG(7, 0)))
	b.Clear()
	if cells := b.LiveCells(); len(cells) != 0 {
		t.Fatalf("LiveCells after Clear = %v", cells)
	}
}

func TestLiveCellsRowMajor(t *testing.T) {
	b := boardWith(3, 3, Cell{2, 0}, Cell{0, 2}, Cell{1, 0}, Cell{0, 1})
	want := []Cell{{1, 0}, {2, 0}, {0, 1}, {0, 2}}
	first := b.LiveCells()
	if !reflect.DeepEqual(first, want) {
		t.Fatalf("LiveCells = %v, expected %v", first, want)
	}
	if second := b.LiveCells(); !reflect.DeepEqual(first, second) {
		t.Fatalf("LiveCells not deterministic: %v then %v", first, second)
	}
}

func TestRandomizeDistribution(t *testing.T) {
	b := MakeEmpty(100, 100)
	b.Randomize(0.5, rand.New(rand.NewPCG(42, 0)))

	total := b.Rows() * b.Cols()
	ratio := float64(b.Population()) / float64(total)
	if ratio < 0.45 || ratio > 0.55 {
		t.Fatalf("live ratio = %.3f, expected about 0.5", ratio)
	}
}

func TestRandomizeDensityBounds(t *testing.T) {
	b := MakeEmpty(10, 10)
	b.Randomize(0, nil)
	if got := b.Population(); got != 0 {
		t.Fatalf("density 0 population = %d", got)
	}
	b.Randomize(1, nil)
	if got := b.Population(); got != 100 {
		t.Fatalf("density 1 population = %d", got)
	}
}

func TestHashTracksContents(t *testing.T) {
	a := boardWith(4, 4, Cell{1, 1})
	b := boardWith(4, 4, Cell{1, 1})
	if a.Hash() != b.Hash() {
		t.Fatal("equal boards hashed differently")
	}
	b.Toggle(2, 2)
	if a.Hash() == b.Hash() {
		t.Fatal("different boards hashed the same")
	}
}

func TestBoardPoolReuse(t *testing.T) {
	pool := NewBoardPool()
	b := pool.Get(3, 3)
	b.Set(1, 1, true)
	pool.Put(b)

	got := pool.Get(4, 5)
	if got.Rows() != 4 || got.Cols() != 5 || got.Population() != 0 {
		t.Fatalf("pooled board = %dx%d with %d live, expected clean 4x5", got.Rows(), got.Cols(), got.Population())
	}

	var nilPool *BoardPool
	if b := nilPool.Get(2, 2); b.Rows() != 2 {
		t.Fatal("nil pool did not allocate a board")
	}
}

func TestHistoryRepeats(t *testing.T) {
	h := NewHistory(3)
	for _, s := range []string{"a", "b", "c", "d"} {
		h.Push(s)
	}
	if h.Repeats("a", 3) {
		t.Fatal("evicted hash still reported")
	}
	if !h.Repeats("c", 2) {
		t.Fatal("hash two back not reported with period 2")
	}
	if h.Repeats("c", 1) {
		t.Fatal("hash two back reported with period 1")
	}
	h.Reset()
	if h.Repeats("d", 3) {
		t.Fatal("hash survived Reset")
	}
}

func TestTextRenderer(t *testing.T) {
	var buf bytes.Buffer
	r := &TextRenderer{Rows: 2, Cols: 3}
	if err := r.Display(&buf, []Cell{{0, 0}, {2, 1}, {9, 9}}); err != nil {
		t.Fatalf("Display: %v", err)
	}
	want := strings.Join([]string{
		gridPosBlock + gridPosEmpty + gridPosEmpty,
		gridPosEmpty + gridPosEmpty + gridPosBlock,
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Fatalf("Display wrote %q, expected %q", got, want)
	}
}
