//go:build ebiten

package ui

import (
	"image/color"

	"life-ca/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type changeProvider interface {
	LastChanges() []int
}

// Overlay highlights the cells flipped by the latest generation: births in
// green, deaths in red.
type Overlay struct {
	sim         core.Sim
	scale       int
	showChanges bool
	pixel       *ebiten.Image

	birth color.RGBA
	death color.RGBA
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	o := &Overlay{
		sim:   sim,
		scale: scale,
		birth: color.RGBA{R: 60, G: 220, B: 90, A: 255},
		death: color.RGBA{R: 200, G: 50, B: 50, A: 160},
	}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles the change highlight on key 1.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showChanges = !o.showChanges
	}
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.showChanges {
		return
	}
	provider, ok := o.sim.(changeProvider)
	if !ok {
		return
	}
	size := o.sim.Size()
	if size.W <= 0 {
		return
	}
	scale := o.scale
	if scale <= 0 {
		scale = 1
	}
	cells := o.sim.Cells()
	for _, i := range provider.LastChanges() {
		if i < 0 || i >= len(cells) {
			continue
		}
		x, y := i%size.W, i/size.W
		col := o.death
		if cells[i] != 0 {
			col = o.birth
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(float64(scale), float64(scale))
		op.GeoM.Translate(float64(x*scale), float64(y*scale))
		op.ColorScale.ScaleWithColor(col)
		screen.DrawImage(o.pixel, op)
	}
}
