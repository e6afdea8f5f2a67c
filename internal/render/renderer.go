//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter keeps a single RGBA image in sync with binary cell data.
type GridPainter struct {
	w, h  int
	img   *ebiten.Image
	buf   []byte
	dirty bool
}

// NewGridPainter allocates a painter for a grid of size w*h.
func NewGridPainter(w, h int) *GridPainter {
	gp := &GridPainter{w: w, h: h, buf: make([]byte, 4*w*h), dirty: true}
	gp.img = ebiten.NewImage(w, h)
	return gp
}

// Invalidate forces the next Blit to repaint every pixel.
func (gp *GridPainter) Invalidate() { gp.dirty = true }

// Blit uploads the cells into the painter image and draws it scaled onto dst.
// When changes is non-nil and no full repaint is pending only those indices
// are repainted.
func (gp *GridPainter) Blit(dst *ebiten.Image, cells []uint8, changes []int, on, off color.Color, scale int) {
	if len(cells) != gp.w*gp.h {
		return
	}
	if gp.dirty || changes == nil {
		fillBinaryRGBA(gp.buf, cells, on, off)
		gp.dirty = false
	} else {
		patchBinaryRGBA(gp.buf, cells, changes, on, off)
	}
	gp.img.WritePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}
