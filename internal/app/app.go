//go:build ebiten

package app

import (
	"image/color"
	"time"

	"life-ca/internal/core"
	"life-ca/internal/render"
	"life-ca/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type changeProvider interface {
	LastChanges() []int
}

type toggler interface {
	Toggle(x, y int) int
}

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD
	pacer   *core.FixedStep

	onColor  color.Color
	offColor color.Color

	scale    int
	paused   bool
	tickOnce bool
	seed     int64

	// Draw patches the image from the latest change list only when exactly
	// one step ran since the previous frame.
	stepsSinceDraw int
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, cfg *Config) *Game {
	size := sim.Size()
	return &Game{
		sim:      sim,
		painter:  render.NewGridPainter(size.W, size.H),
		overlay:  ui.NewOverlay(sim, cfg.Scale),
		hud:      ui.NewHUD(sim, cfg.HUDWidth),
		pacer:    core.NewFixedStep(cfg.GPS),
		onColor:  color.White,
		offColor: color.Black,
		scale:    cfg.Scale,
		seed:     cfg.Seed,
	}
}

// WindowSize returns the outer window dimensions including the HUD panel.
func (g *Game) WindowSize() (int, int) {
	return g.Layout(0, 0)
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
	g.painter.Invalidate()
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.toggleAt(ebiten.CursorPosition())
	}

	g.overlay.Update()

	if (!g.paused && g.pacer.ShouldStep()) || g.tickOnce {
		g.sim.Step()
		g.stepsSinceDraw++
		g.tickOnce = false
	}
	g.hud.Update(g.paused)
	return nil
}

func (g *Game) toggleAt(px, py int) {
	t, ok := g.sim.(toggler)
	if !ok || g.scale <= 0 || px < 0 || py < 0 {
		return
	}
	size := g.sim.Size()
	x, y := px/g.scale, py/g.scale
	if x >= size.W || y >= size.H {
		return
	}
	if t.Toggle(x, y) != 0 {
		g.painter.Invalidate()
	}
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	var changes []int // nil repaints everything
	switch {
	case g.stepsSinceDraw > 1:
	case g.stepsSinceDraw == 0:
		changes = []int{}
	default:
		if provider, ok := g.sim.(changeProvider); ok {
			changes = provider.LastChanges()
		}
	}
	g.painter.Blit(screen, g.sim.Cells(), changes, g.onColor, g.offColor, g.scale)
	g.stepsSinceDraw = 0

	g.overlay.Draw(screen)
	s := g.sim.Size()
	g.hud.Draw(screen, s.W*g.scale, g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.scale + g.hud.Width(), s.H * g.scale
}
