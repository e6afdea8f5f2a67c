package life

import (
	"life-ca/internal/core"
	"life-ca/internal/patterns"
	engine "life-ca/pkg/life"
)

// Life adapts the incremental engine to the core.Sim contract. The display
// buffer is patched from the engine's change list rather than rebuilt.
type Life struct {
	cfg     Config
	pattern *patterns.Pattern
	world   *engine.World
	view    *core.ByteGrid

	generation int
	population int
	lastDelta  int
	lastFlips  int
}

// New returns a Life simulation with the provided dimensions and defaults.
func New(w, h int) *Life {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = w, h
	return NewWithConfig(cfg)
}

// NewWithConfig returns a Life simulation for cfg. Dimensions below one are
// clamped to one and an unknown pattern name is dropped, so Reset seeds a
// random soup and Parameters reports "random".
func NewWithConfig(cfg Config) *Life {
	if cfg.Width < 1 {
		cfg.Width = 1
	}
	if cfg.Height < 1 {
		cfg.Height = 1
	}
	l := &Life{cfg: cfg}
	if cfg.Pattern != "" {
		if p, err := patterns.Lookup(cfg.Pattern); err == nil {
			l.pattern = &p
		} else {
			l.cfg.Pattern = ""
		}
	}
	l.clear()
	return l
}

// Name returns the simulation identifier.
func (l *Life) Name() string { return "life" }

// Size returns the grid dimensions.
func (l *Life) Size() core.Size { return l.view.Size() }

// Cells exposes the current grid values (1 live, 0 dead).
func (l *Life) Cells() []uint8 { return l.view.Cells() }

// ReadCell returns the engine cell at (x, y). Edits go through SetCell so the
// display buffer and population stay in sync.
func (l *Life) ReadCell(x, y int) engine.Cell { return l.world.ReadCell(x, y) }

// Generation returns the number of steps since the last reset.
func (l *Life) Generation() int { return l.generation }

// Population returns the number of live cells.
func (l *Life) Population() int { return l.population }

// LastChanges returns the linear indices flipped by the latest step.
func (l *Life) LastChanges() []int {
	if l.generation == 0 {
		return nil
	}
	return l.world.Changes()
}

// Reset clears the board and reseeds it. With a configured pattern the seed
// is ignored and the pattern is stamped in the centre; otherwise the board is
// filled with a random soup of the configured density.
func (l *Life) Reset(seed int64) {
	l.clear()
	if l.pattern != nil {
		x, y := patterns.Centered(*l.pattern, l.cfg.Width, l.cfg.Height)
		l.Stamp(*l.pattern, x, y)
		return
	}
	rng := core.NewRNG(seed)
	for y := 0; y < l.cfg.Height; y++ {
		for x := 0; x < l.cfg.Width; x++ {
			if rng.Chance(l.cfg.Density) {
				l.SetCell(x, y, true)
			}
		}
	}
}

// Stamp places p with its top-left corner at (ox, oy).
func (l *Life) Stamp(p patterns.Pattern, ox, oy int) int {
	total := 0
	for _, c := range p.Cells {
		total += l.SetCell(ox+c.X, oy+c.Y, true)
	}
	return total
}

// SetCell forces the cell at (x, y) live or dead and returns the population delta.
func (l *Life) SetCell(x, y int, alive bool) int {
	state := engine.Dead
	if alive {
		state = engine.Live
	}
	d := l.world.SetCell(x, y, state)
	if d != 0 {
		l.view.Toggle(l.view.Index(x, y))
		l.population += d
	}
	return d
}

// Toggle inverts the cell at (x, y).
func (l *Life) Toggle(x, y int) int {
	return l.SetCell(x, y, l.world.ReadCell(x, y).State == engine.Dead)
}

// Step advances the simulation by one generation.
func (l *Life) Step() {
	d := l.world.UpdateWorld()
	changes := l.world.Changes()
	for _, p := range changes {
		l.view.Toggle(p)
	}
	l.generation++
	l.population += d
	l.lastDelta = d
	l.lastFlips = len(changes)
}

// Parameters reports the configuration and live statistics for the HUD.
func (l *Life) Parameters() core.ParameterSnapshot {
	name := l.cfg.Pattern
	if name == "" {
		name = "random"
	}
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				core.IntParam("w", "Width", l.cfg.Width),
				core.IntParam("h", "Height", l.cfg.Height),
				core.FloatParam("density", "Density", l.cfg.Density),
				core.StringParam("pattern", "Pattern", name),
			},
		},
		{
			Name: "Stats",
			Params: []core.Parameter{
				core.IntParam("generation", "Generation", l.generation),
				core.IntParam("population", "Population", l.population),
				core.IntParam("delta", "Delta", l.lastDelta),
				core.IntParam("flips", "Flips", l.lastFlips),
			},
		},
	}}
}

func (l *Life) clear() {
	l.world = engine.MustNew(l.cfg.Width, l.cfg.Height)
	l.view = core.NewByteGrid(l.cfg.Width, l.cfg.Height)
	l.generation = 0
	l.population = 0
	l.lastDelta = 0
	l.lastFlips = 0
}

func init() {
	core.Register("life", func(cfg map[string]string) core.Sim {
		return NewWithConfig(FromMap(cfg))
	})
}
