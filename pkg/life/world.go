package life

import (
	"errors"
	"fmt"
)

// ErrInvalidSize is returned when a World is constructed with a dimension below one.
var ErrInvalidSize = errors.New("life: world dimensions must be at least 1x1")

// CellState is the liveness of a single cell.
type CellState uint8

const (
	// Dead is the zero value so fresh grids start empty.
	Dead CellState = iota
	// Live marks a populated cell.
	Live
)

// Invert returns the opposite state.
func (s CellState) Invert() CellState {
	if s == Dead {
		return Live
	}
	return Dead
}

func (s CellState) String() string {
	if s == Live {
		return "live"
	}
	return "dead"
}

// Cell is one grid element. Neighbours always equals the number of live cells
// among the eight toroidal neighbours.
type Cell struct {
	State      CellState
	Neighbours int32
}

// World is a fixed-size toroidal Game of Life board that tracks neighbour
// counts incrementally, so a generation costs one read-only sweep plus work
// proportional to the number of cells that flip.
type World struct {
	w, h    int
	grid    []Cell
	changes []int
}

// New allocates an all-dead world of the given dimensions.
func New(width, height int) (*World, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidSize, width, height)
	}
	total := width * height
	return &World{
		w:       width,
		h:       height,
		grid:    make([]Cell, total),
		changes: make([]int, 0, total/8),
	}, nil
}

// MustNew is like New but panics on invalid dimensions.
func MustNew(width, height int) *World {
	w, err := New(width, height)
	if err != nil {
		panic(err)
	}
	return w
}

// Size returns the grid dimensions.
func (w *World) Size() (int, int) { return w.w, w.h }

// ReadCell returns a copy of the cell at (x, y) after toroidal wrapping.
func (w *World) ReadCell(x, y int) Cell {
	return w.grid[w.index(x, y)]
}

// SetCell forces the cell at (x, y) into state and returns the population
// delta: +1 if it became live, -1 if it died, 0 if it already had that state.
func (w *World) SetCell(x, y int, state CellState) int {
	p := w.index(x, y)
	if w.grid[p].State == state {
		return 0
	}
	return w.flip(p)
}

// UpdateWorld advances one generation and returns the net population change.
func (w *World) UpdateWorld() int {
	w.changes = w.changes[:0]
	// Decide every flip against the counts as they stood at the start of the
	// generation; nothing is mutated until the set is complete.
	for p := range w.grid {
		c := &w.grid[p]
		if c.State == Live {
			if c.Neighbours != 2 && c.Neighbours != 3 {
				w.changes = append(w.changes, p)
			}
		} else if c.Neighbours == 3 {
			w.changes = append(w.changes, p)
		}
	}

	growth := 0
	for _, p := range w.changes {
		growth += w.flip(p)
	}
	return growth
}

// Changes lists the linear indices flipped by the most recent UpdateWorld.
// The slice is reused by the next generation and must not be modified.
func (w *World) Changes() []int { return w.changes }

func (w *World) index(x, y int) int {
	x %= w.w
	if x < 0 {
		x += w.w
	}
	y %= w.h
	if y < 0 {
		y += w.h
	}
	return x + y*w.w
}

// flip inverts the cell at linear index p and pushes the resulting delta onto
// its eight neighbours. Columns and rows wrap independently.
func (w *World) flip(p int) int {
	c := &w.grid[p]
	c.State = c.State.Invert()
	d := int32(-1)
	if c.State == Live {
		d = 1
	}

	x, y := p%w.w, p/w.w
	left := (x + w.w - 1) % w.w
	right := (x + 1) % w.w
	above := ((y + w.h - 1) % w.h) * w.w
	row := y * w.w
	below := ((y + 1) % w.h) * w.w

	w.grid[above+left].Neighbours += d
	w.grid[above+x].Neighbours += d
	w.grid[above+right].Neighbours += d
	w.grid[row+left].Neighbours += d
	w.grid[row+right].Neighbours += d
	w.grid[below+left].Neighbours += d
	w.grid[below+x].Neighbours += d
	w.grid[below+right].Neighbours += d
	return int(d)
}
