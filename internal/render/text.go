package render

import (
	"bufio"
	"fmt"
	"io"

	"life-ca/internal/core"
)

// TextStyle selects the glyphs used for live and dead cells.
type TextStyle struct {
	Live byte
	Dead byte
}

// DefaultTextStyle draws live cells as '*' and dead cells as '.'.
var DefaultTextStyle = TextStyle{Live: '*', Dead: '.'}

// WriteFrame prints one row per line followed by a "Gen:<g> Lives:<n>" footer
// and a blank separator line.
func WriteFrame(w io.Writer, cells []uint8, size core.Size, gen, lives int, style TextStyle) error {
	if len(cells) != size.W*size.H {
		return fmt.Errorf("frame has %d cells, expected %dx%d", len(cells), size.W, size.H)
	}
	bw := bufio.NewWriter(w)
	row := make([]byte, size.W+1)
	row[size.W] = '\n'
	for y := 0; y < size.H; y++ {
		for x, c := range cells[y*size.W : (y+1)*size.W] {
			if c != 0 {
				row[x] = style.Live
			} else {
				row[x] = style.Dead
			}
		}
		if _, err := bw.Write(row); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(bw, "Gen:%d Lives:%d\n\n", gen, lives); err != nil {
		return err
	}
	return bw.Flush()
}
