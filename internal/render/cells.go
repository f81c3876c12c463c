package render

import (
	"image"
	"math"

	"winter/pkg/snow"

	"github.com/gdamore/tcell/v2"
)

// CellSurface draws particles into a tcell screen. Particle coordinates are
// virtual pixels; each terminal cell covers cellW×cellH of them.
type CellSurface struct {
	screen       tcell.Screen
	cellW, cellH int
	style        tcell.Style
}

var _ snow.Surface = (*CellSurface)(nil)

// NewCellSurface returns a surface over screen with the given cell size.
func NewCellSurface(screen tcell.Screen, cellW, cellH int) *CellSurface {
	if cellW <= 0 {
		cellW = 1
	}
	if cellH <= 0 {
		cellH = 1
	}
	return &CellSurface{
		screen: screen,
		cellW:  cellW,
		cellH:  cellH,
		style:  tcell.StyleDefault.Foreground(tcell.ColorWhite),
	}
}

// Viewport converts a terminal size in cells into virtual pixels.
func (s *CellSurface) Viewport(cols, rows int) (int, int) {
	return cols * s.cellW, rows * s.cellH
}

// DrawImage draws a flake tinted with the sprite's mean colour.
func (s *CellSurface) DrawImage(img image.Image, x, y float64) {
	b := img.Bounds()
	cx := x + float64(b.Dx())/2
	cy := y + float64(b.Dy())/2
	s.put(cx, cy, '❄', s.style.Foreground(meanColor(img)))
}

// FillCircle picks a glyph by radius relative to the cell width.
func (s *CellSurface) FillCircle(x, y, radius float64) {
	s.put(x, y, diskRune(radius/float64(s.cellW)), s.style)
}

func (s *CellSurface) put(x, y float64, r rune, style tcell.Style) {
	col := int(math.Floor(x / float64(s.cellW)))
	row := int(math.Floor(y / float64(s.cellH)))
	w, h := s.screen.Size()
	if col < 0 || row < 0 || col >= w || row >= h {
		return
	}
	s.screen.SetContent(col, row, r, nil, style)
}

func diskRune(cells float64) rune {
	switch {
	case cells < 0.75:
		return '·'
	case cells < 1.5:
		return '•'
	default:
		return '*'
	}
}

func meanColor(img image.Image) tcell.Color {
	b := img.Bounds()
	var r, g, bl, n uint64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			cr, cg, cb, ca := img.At(x, y).RGBA()
			if ca == 0 {
				continue
			}
			r += uint64(cr >> 8)
			g += uint64(cg >> 8)
			bl += uint64(cb >> 8)
			n++
		}
	}
	if n == 0 {
		return tcell.ColorWhite
	}
	return tcell.NewRGBColor(int32(r/n), int32(g/n), int32(bl/n))
}
