// Package terminal draws particle fields into a character-cell terminal.
package terminal

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/particlefield/config"
)

// Glyphs used for each primitive.
const (
	GlyphEmpty     = ' '
	GlyphEdge      = '·'
	GlyphSmallDisc = '•'
	GlyphLargeDisc = '●'
)

// cell is one buffered character cell.
type cell struct {
	glyph rune
	color config.RGB
	alpha float64 // strongest coverage drawn into the cell this frame
}

// Surface rasterizes draw calls into terminal cells. Each cell stands for
// a CellW x CellH pixel block so field configs keep their pixel units.
type Surface struct {
	screen     tcell.Screen
	cellW      float64
	cellH      float64
	background config.RGB

	cols, rows int
	cells      []cell
}

// NewSurface creates a surface covering the whole screen.
func NewSurface(screen tcell.Screen, cellW, cellH float64, background config.RGB) *Surface {
	if cellW <= 0 {
		cellW = 8
	}
	if cellH <= 0 {
		cellH = 16
	}
	s := &Surface{
		screen:     screen,
		cellW:      cellW,
		cellH:      cellH,
		background: background,
	}
	s.Resize()
	return s
}

// Resize picks up the screen's current size.
func (s *Surface) Resize() {
	s.cols, s.rows = s.screen.Size()
	if s.cols < 0 {
		s.cols = 0
	}
	if s.rows < 0 {
		s.rows = 0
	}
	s.cells = make([]cell, s.cols*s.rows)
	s.Clear()
}

// Size implements renderer.Surface.
func (s *Surface) Size() (float64, float64) {
	return float64(s.cols) * s.cellW, float64(s.rows) * s.cellH
}

// CellCenter returns the pixel position at the middle of a cell.
func (s *Surface) CellCenter(col, row int) (x, y float64) {
	return (float64(col) + 0.5) * s.cellW, (float64(row) + 0.5) * s.cellH
}

// Clear implements renderer.Surface.
func (s *Surface) Clear() {
	for i := range s.cells {
		s.cells[i] = cell{glyph: GlyphEmpty, color: s.background}
	}
}

// Line implements renderer.Surface. Width is ignored; a cell is already
// wider than any configured stroke.
func (s *Surface) Line(x1, y1, x2, y2, _ float64, c config.RGB, alpha float64) {
	c0, r0 := s.toCell(x1, y1)
	c1, r1 := s.toCell(x2, y2)

	dc := abs(c1 - c0)
	dr := -abs(r1 - r0)
	sc, sr := 1, 1
	if c0 > c1 {
		sc = -1
	}
	if r0 > r1 {
		sr = -1
	}

	// Bresenham
	e := dc + dr
	for {
		s.plot(c0, r0, GlyphEdge, c, alpha, false)
		if c0 == c1 && r0 == r1 {
			return
		}
		e2 := 2 * e
		if e2 >= dr {
			e += dr
			c0 += sc
		}
		if e2 <= dc {
			e += dc
			r0 += sr
		}
	}
}

// FillCircle implements renderer.Surface. Discs are smaller than a cell,
// so each marks the cell holding its center.
func (s *Surface) FillCircle(x, y, radius float64, c config.RGB, alpha float64) {
	glyph := GlyphSmallDisc
	if radius >= 2 {
		glyph = GlyphLargeDisc
	}
	col, row := s.toCell(x, y)
	s.plot(col, row, glyph, c, alpha, true)
}

// Present copies the buffered frame to the screen.
func (s *Surface) Present() {
	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			cl := s.cells[row*s.cols+col]
			fg := blend(cl.color, s.background, cl.alpha)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(fg.R), int32(fg.G), int32(fg.B))).
				Background(tcell.NewRGBColor(int32(s.background.R), int32(s.background.G), int32(s.background.B)))
			s.screen.SetContent(col, row, cl.glyph, nil, style)
		}
	}
	s.screen.Show()
}

func (s *Surface) toCell(x, y float64) (int, int) {
	return int(math.Floor(x / s.cellW)), int(math.Floor(y / s.cellH))
}

// plot writes a glyph unless the cell already holds something stronger.
// Discs always cover lines.
func (s *Surface) plot(col, row int, glyph rune, c config.RGB, alpha float64, disc bool) {
	if col < 0 || row < 0 || col >= s.cols || row >= s.rows {
		return
	}
	cl := &s.cells[row*s.cols+col]
	isDisc := cl.glyph == GlyphSmallDisc || cl.glyph == GlyphLargeDisc
	switch {
	case disc && !isDisc:
	case disc == isDisc && alpha > cl.alpha:
	default:
		return
	}
	*cl = cell{glyph: glyph, color: c, alpha: alpha}
}

// blend mixes fg over bg with the given coverage.
func blend(fg, bg config.RGB, alpha float64) config.RGB {
	if alpha <= 0 {
		return bg
	}
	if alpha >= 1 {
		return fg
	}
	mix := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(b) + (float64(a)-float64(b))*alpha))
	}
	return config.RGB{R: mix(fg.R, bg.R), G: mix(fg.G, bg.G), B: mix(fg.B, bg.B)}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
