package life

import (
	"errors"
	"math/rand/v2"
	"testing"
)

type point struct{ x, y int }

func seed(t *testing.T, w *World, cells ...point) int {
	t.Helper()
	total := 0
	for _, c := range cells {
		total += w.SetCell(c.x, c.y, Live)
	}
	return total
}

func liveSet(w *World) map[point]bool {
	width, height := w.Size()
	live := make(map[point]bool)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if w.ReadCell(x, y).State == Live {
				live[point{x, y}] = true
			}
		}
	}
	return live
}

func expectLive(t *testing.T, w *World, want ...point) {
	t.Helper()
	got := liveSet(w)
	if len(got) != len(want) {
		t.Fatalf("live cells = %d, expected %d (%v)", len(got), len(want), got)
	}
	for _, p := range want {
		if !got[p] {
			t.Fatalf("cell (%d,%d) dead, expected live; live set %v", p.x, p.y, got)
		}
	}
}

// bruteNeighbours recounts the neighbourhood of (x, y) from cell states alone.
func bruteNeighbours(w *World, x, y int) int32 {
	n := int32(0)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if w.ReadCell(x+dx, y+dy).State == Live {
				n++
			}
		}
	}
	return n
}

func checkInvariant(t *testing.T, w *World) {
	t.Helper()
	width, height := w.Size()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			got := w.ReadCell(x, y).Neighbours
			if want := bruteNeighbours(w, x, y); got != want {
				t.Fatalf("cell (%d,%d) neighbours=%d, brute force counts %d", x, y, got, want)
			}
		}
	}
}

// naiveStep is the classic double-buffer rule used as an oracle.
func naiveStep(cur []bool, w, h int) []bool {
	nxt := make([]bool, len(cur))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			neighbors := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					nx := (x + dx + w) % w
					ny := (y + dy + h) % h
					if cur[ny*w+nx] {
						neighbors++
					}
				}
			}
			idx := y*w + x
			alive := cur[idx]
			nxt[idx] = (alive && (neighbors == 2 || neighbors == 3)) || (!alive && neighbors == 3)
		}
	}
	return nxt
}

func randomSoup(w *World, rng *rand.Rand, density float64) {
	width, height := w.Size()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if rng.Float64() < density {
				w.SetCell(x, y, Live)
			}
		}
	}
}

func TestNewRejectsEmptyDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 8}, {8, 0}, {0, 0}, {-1, 4}} {
		w, err := New(dims[0], dims[1])
		if !errors.Is(err, ErrInvalidSize) {
			t.Fatalf("New(%d,%d) err=%v, expected ErrInvalidSize", dims[0], dims[1], err)
		}
		if w != nil {
			t.Fatalf("New(%d,%d) returned a world alongside an error", dims[0], dims[1])
		}
	}
}

func TestMustNewPanicsOnInvalidSize(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("MustNew(0, 3) did not panic")
		}
	}()
	MustNew(0, 3)
}

func TestNewWorldIsEmpty(t *testing.T) {
	w := MustNew(7, 5)
	width, height := w.Size()
	if width != 7 || height != 5 {
		t.Fatalf("Size() = %dx%d, expected 7x5", width, height)
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if c := w.ReadCell(x, y); c != (Cell{}) {
				t.Fatalf("cell (%d,%d) = %+v, expected zero cell", x, y, c)
			}
		}
	}
	if delta := w.UpdateWorld(); delta != 0 {
		t.Fatalf("empty world delta = %d, expected 0", delta)
	}
}

func TestReadCellWraps(t *testing.T) {
	w := MustNew(6, 4)
	w.SetCell(0, 0, Live)
	w.SetCell(5, 3, Live)

	if w.ReadCell(0, 0) != w.ReadCell(6, 0) {
		t.Fatal("ReadCell(0,0) differs from ReadCell(width,0)")
	}
	if w.ReadCell(0, 0) != w.ReadCell(0, 4) {
		t.Fatal("ReadCell(0,0) differs from ReadCell(0,height)")
	}
	if w.ReadCell(5, 3) != w.ReadCell(-1, -1) {
		t.Fatal("negative coordinates do not wrap to the far corner")
	}
	if w.ReadCell(12, 8).State != Live {
		t.Fatal("multiples of the size do not wrap back to the origin")
	}
}

func TestSetCellWrapsAndTouchesEdgeNeighbours(t *testing.T) {
	w := MustNew(5, 5)
	if d := w.SetCell(5, 5, Live); d != 1 {
		t.Fatalf("SetCell delta = %d, expected 1", d)
	}
	if w.ReadCell(0, 0).State != Live {
		t.Fatal("SetCell(5,5) did not wrap to (0,0)")
	}
	// Horizontal wrap stays on the same row, vertical wrap on the same column.
	for _, p := range []point{{4, 4}, {0, 4}, {1, 4}, {4, 0}, {1, 0}, {4, 1}, {0, 1}, {1, 1}} {
		if n := w.ReadCell(p.x, p.y).Neighbours; n != 1 {
			t.Fatalf("neighbour (%d,%d) count = %d, expected 1", p.x, p.y, n)
		}
	}
	for _, p := range []point{{3, 0}, {2, 2}, {4, 2}, {0, 3}} {
		if n := w.ReadCell(p.x, p.y).Neighbours; n != 0 {
			t.Fatalf("non-neighbour (%d,%d) count = %d, expected 0", p.x, p.y, n)
		}
	}
	checkInvariant(t, w)
}

func TestSetCellIdempotent(t *testing.T) {
	w := MustNew(8, 8)
	seed(t, w, point{3, 3}, point{4, 3}, point{4, 4})
	before := make([]Cell, 0, 64)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			before = append(before, w.ReadCell(x, y))
		}
	}

	if d := w.SetCell(3, 3, Live); d != 0 {
		t.Fatalf("re-setting a live cell returned %d", d)
	}
	if d := w.SetCell(0, 0, Dead); d != 0 {
		t.Fatalf("re-setting a dead cell returned %d", d)
	}

	i := 0
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if got := w.ReadCell(x, y); got != before[i] {
				t.Fatalf("cell (%d,%d) changed from %+v to %+v", x, y, before[i], got)
			}
			i++
		}
	}
}

func TestSetCellKillReturnsNegativeDelta(t *testing.T) {
	w := MustNew(4, 4)
	w.SetCell(1, 1, Live)
	if d := w.SetCell(1, 1, Dead); d != -1 {
		t.Fatalf("killing a cell returned %d, expected -1", d)
	}
	checkInvariant(t, w)
	if len(liveSet(w)) != 0 {
		t.Fatal("world not empty after killing its only cell")
	}
}

func TestSeedDeltaMatchesPopulation(t *testing.T) {
	w := MustNew(8, 8)
	cells := []point{{1, 1}, {2, 1}, {3, 1}, {1, 2}, {2, 3}, {2, 3}, {9, 1}}
	total := seed(t, w, cells...)
	if got := len(liveSet(w)); total != got {
		t.Fatalf("sum of deltas = %d, live cells = %d", total, got)
	}
	if total != 5 {
		t.Fatalf("sum of deltas = %d, expected 5 after duplicate and wrapped sets", total)
	}
}

func TestBlockIsStable(t *testing.T) {
	w := MustNew(8, 8)
	seed(t, w, point{1, 1}, point{1, 2}, point{2, 1}, point{2, 2})
	for gen := 0; gen < 5; gen++ {
		if d := w.UpdateWorld(); d != 0 {
			t.Fatalf("generation %d delta = %d, expected 0", gen, d)
		}
		expectLive(t, w, point{1, 1}, point{1, 2}, point{2, 1}, point{2, 2})
		if len(w.Changes()) != 0 {
			t.Fatalf("generation %d recorded %d changes for a still life", gen, len(w.Changes()))
		}
	}
}

func TestBlinkerOscillation(t *testing.T) {
	w := MustNew(8, 8)
	if n := seed(t, w, point{2, 1}, point{2, 2}, point{2, 3}); n != 3 {
		t.Fatalf("seed delta = %d, expected 3", n)
	}

	if d := w.UpdateWorld(); d != 0 {
		t.Fatalf("first step delta = %d, expected 0", d)
	}
	expectLive(t, w, point{1, 2}, point{2, 2}, point{3, 2})
	if len(w.Changes()) != 4 {
		t.Fatalf("first step flipped %d cells, expected 4", len(w.Changes()))
	}

	if d := w.UpdateWorld(); d != 0 {
		t.Fatalf("second step delta = %d, expected 0", d)
	}
	expectLive(t, w, point{2, 1}, point{2, 2}, point{2, 3})
	checkInvariant(t, w)
}

func TestBlinkerAcrossCorner(t *testing.T) {
	w := MustNew(8, 8)
	seed(t, w, point{0, 7}, point{0, 0}, point{0, 1})
	w.UpdateWorld()
	expectLive(t, w, point{7, 0}, point{0, 0}, point{1, 0})
	w.UpdateWorld()
	expectLive(t, w, point{0, 7}, point{0, 0}, point{0, 1})
}

func shifted(cells []point, dx, dy, width, height int) []point {
	out := make([]point, len(cells))
	for i, c := range cells {
		out[i] = point{((c.x+dx)%width + width) % width, ((c.y+dy)%height + height) % height}
	}
	return out
}

func TestGliderTranslates(t *testing.T) {
	glider := []point{{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}}
	w := MustNew(8, 8)
	seed(t, w, glider...)
	for gen := 0; gen < 4; gen++ {
		w.UpdateWorld()
		if n := len(liveSet(w)); n != 5 && gen == 3 {
			t.Fatalf("population after 4 generations = %d, expected 5", n)
		}
	}
	expectLive(t, w, shifted(glider, 1, 1, 8, 8)...)
	checkInvariant(t, w)
}

func TestGliderWrapsAroundTorus(t *testing.T) {
	// Upper-left travelling glider seeded at the origin so its first moves
	// cross both edges.
	glider := []point{{1, 1}, {2, 1}, {3, 1}, {1, 2}, {2, 3}}
	w := MustNew(8, 8)
	lives := seed(t, w, glider...)

	for gen := 1; gen <= 32; gen++ {
		lives += w.UpdateWorld()
		if gen%4 == 0 {
			step := gen / 4
			expectLive(t, w, shifted(glider, -step, -step, 8, 8)...)
		}
		if lives != 5 && gen%4 == 0 {
			t.Fatalf("generation %d running population = %d, expected 5", gen, lives)
		}
	}
	expectLive(t, w, glider...)
	checkInvariant(t, w)
}

func TestGliderOnRectangularGrid(t *testing.T) {
	glider := []point{{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}}
	w := MustNew(9, 6)
	seed(t, w, glider...)
	for gen := 0; gen < 4*9*6; gen++ {
		w.UpdateWorld()
	}
	// 54 quarter-periods move the glider by (54, 54), which is (0, 0) mod (9, 6).
	expectLive(t, w, glider...)
}

func TestUpdateDeltaMatchesRecount(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	w := MustNew(16, 12)
	randomSoup(w, rng, 0.35)
	for gen := 0; gen < 40; gen++ {
		before := len(liveSet(w))
		d := w.UpdateWorld()
		after := len(liveSet(w))
		if d != after-before {
			t.Fatalf("generation %d delta = %d, recount says %d", gen, d, after-before)
		}
	}
}

func TestMatchesNaiveStep(t *testing.T) {
	sizes := [][2]int{{1, 1}, {2, 2}, {3, 1}, {3, 3}, {5, 4}, {16, 9}, {32, 32}}
	for i, size := range sizes {
		width, height := size[0], size[1]
		rng := rand.New(rand.NewPCG(uint64(i+1), 99))
		w := MustNew(width, height)
		randomSoup(w, rng, 0.4)

		cur := make([]bool, width*height)
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				cur[y*width+x] = w.ReadCell(x, y).State == Live
			}
		}

		for gen := 0; gen < 30; gen++ {
			w.UpdateWorld()
			cur = naiveStep(cur, width, height)
			for y := 0; y < height; y++ {
				for x := 0; x < width; x++ {
					alive := w.ReadCell(x, y).State == Live
					if alive != cur[y*width+x] {
						t.Fatalf("%dx%d generation %d cell (%d,%d) alive=%v, naive step says %v",
							width, height, gen, x, y, alive, cur[y*width+x])
					}
				}
			}
			checkInvariant(t, w)
		}
	}
}

func TestInvariantUnderMixedMutation(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	w := MustNew(10, 7)
	for round := 0; round < 200; round++ {
		x, y := rng.IntN(30)-10, rng.IntN(21)-7
		state := Dead
		if rng.IntN(2) == 0 {
			state = Live
		}
		w.SetCell(x, y, state)
		if round%10 == 0 {
			w.UpdateWorld()
		}
	}
	checkInvariant(t, w)
}

func TestChangesListsFlippedCells(t *testing.T) {
	w := MustNew(8, 8)
	seed(t, w, point{2, 1}, point{2, 2}, point{2, 3})
	w.UpdateWorld()
	flipped := make(map[int]bool)
	for _, p := range w.Changes() {
		flipped[p] = true
	}
	for _, p := range []point{{2, 1}, {2, 3}, {1, 2}, {3, 2}} {
		if !flipped[p.x+p.y*8] {
			t.Fatalf("cell (%d,%d) missing from Changes()", p.x, p.y)
		}
	}
}

func TestCellStateInvert(t *testing.T) {
	if Dead.Invert() != Live || Live.Invert() != Dead {
		t.Fatal("Invert does not swap states")
	}
	if Live.String() != "live" || Dead.String() != "dead" {
		t.Fatalf("unexpected String() values %q/%q", Live.String(), Dead.String())
	}
}
