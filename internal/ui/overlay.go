//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"winter/pkg/snow"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Overlay draws optional debugging visuals on top of the snow field.
type Overlay struct {
	field *snow.Field
	pixel *ebiten.Image

	showCull    bool
	showCentres bool
	showSway    bool
}

// NewOverlay constructs an overlay for field with every layer hidden.
func NewOverlay(field *snow.Field) *Overlay {
	o := &Overlay{field: field}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles layers: 1 cull band, 2 particle centres, 3 sway guides.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showCull = !o.showCull
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showCentres = !o.showCentres
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit3) {
		o.showSway = !o.showSway
	}
}

// Draw renders the enabled layers onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	w, h := o.field.Bounds()
	if w <= 0 || h <= 0 {
		return
	}
	if o.showCull {
		edge := color.RGBA{R: 240, G: 90, B: 80, A: 160}
		o.drawLine(screen, 0, 0.5, float64(w), 0.5, 1, edge)
		o.drawLine(screen, 0, float64(h)-0.5, float64(w), float64(h)-0.5, 1, edge)
	}
	if !o.showCentres && !o.showSway {
		return
	}
	for _, p := range o.field.Particles() {
		x, y := p.Position()
		if y < 0 || y > float64(h) {
			continue
		}
		if o.showSway {
			centre, half := p.Sway()
			guide := color.RGBA{R: 120, G: 170, B: 230, A: 90}
			o.drawLine(screen, centre-half, y, centre+half, y, 1, guide)
			o.drawPoint(screen, centre, y, 3, guide)
		}
		if o.showCentres {
			o.drawPoint(screen, x, y, 4, stateColor(p.State()))
		}
	}
}

func stateColor(s snow.State) color.RGBA {
	switch s {
	case snow.Draining:
		return color.RGBA{R: 250, G: 190, B: 60, A: 220}
	case snow.Destroyed:
		return color.RGBA{R: 200, G: 60, B: 60, A: 220}
	default:
		return color.RGBA{R: 90, G: 220, B: 120, A: 220}
	}
}

func (o *Overlay) drawPoint(screen *ebiten.Image, x, y, size float64, col color.RGBA) {
	if o.pixel == nil || size <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size, size)
	op.GeoM.Translate(x-size*0.5, y-size*0.5)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	if o.pixel == nil || thickness <= 0 {
		return
	}
	dx, dy := x2-x1, y2-y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}
