//go:build ebiten

package ui

import (
	"image"
	"image/color"
	"strconv"

	"winter/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders the parameter panel over the right edge of the snow view.
type HUD struct {
	source core.Tunable
	status func() string
	width  int

	panel *ebiten.Image
	pixel *ebiten.Image

	rows    []hudRow
	offsetX int
	message string
}

type hudRow struct {
	control  core.ParameterControl
	value    int
	hasValue bool

	top   int
	minus image.Rectangle
	plus  image.Rectangle
}

// NewHUD constructs a HUD for source. status supplies the line under the
// title and may be nil.
func NewHUD(source core.Tunable, status func() string, width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{source: source, status: status, width: width}
	h.pixel = ebiten.NewImage(1, 1)
	h.pixel.Fill(color.White)
	for i, ctrl := range source.ParameterControls() {
		top := controlsTop + i*lineHeight
		buttonY := top + (lineHeight-buttonSize)/2
		plus := image.Rect(width-panelPadding-buttonSize, buttonY, width-panelPadding, buttonY+buttonSize)
		minus := image.Rect(plus.Min.X-buttonGap-buttonSize, buttonY, plus.Min.X-buttonGap, buttonY+buttonSize)
		h.rows = append(h.rows, hudRow{control: ctrl, top: top, minus: minus, plus: plus})
	}
	return h
}

// Update refreshes control values from the source and handles clicks.
func (h *HUD) Update(offsetX int) {
	if h == nil {
		return
	}
	h.offsetX = offsetX
	snap := h.source.Parameters()
	for i := range h.rows {
		row := &h.rows[i]
		p, ok := snap.Lookup(row.control.Key)
		row.value, row.hasValue = p.Value, ok
	}
	h.handleClick()
}

func (h *HUD) handleClick() {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	px := mx - h.offsetX
	if px < 0 {
		return
	}
	for i := range h.rows {
		row := &h.rows[i]
		if !row.hasValue {
			continue
		}
		switch {
		case pointInRect(px, my, row.minus):
			h.adjust(row, -1)
			return
		case pointInRect(px, my, row.plus):
			h.adjust(row, 1)
			return
		}
	}
}

func (h *HUD) adjust(row *hudRow, direction int) {
	target, ok := row.target(direction)
	if !ok {
		return
	}
	if err := h.source.SetParameter(row.control.Key, target); err != nil {
		h.message = err.Error()
		return
	}
	h.message = ""
	row.value = target
}

func (r *hudRow) target(direction int) (int, bool) {
	step := r.control.Step
	if step <= 0 {
		step = 1
	}
	target := r.control.Clamp(r.value + direction*step)
	return target, target != r.value
}

// Draw paints the HUD panel at offsetX.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int) {
	if h == nil || h.width <= 0 {
		return
	}
	height := screen.Bounds().Dy()
	if height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		if h.panel != nil {
			h.panel.Dispose()
		}
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 220})

	face := basicfont.Face7x13
	text.Draw(h.panel, h.source.Title(), face, panelPadding, panelPadding+headerBaseline, titleColor)
	if h.status != nil {
		text.Draw(h.panel, h.status(), face, panelPadding, panelPadding+headerBaseline+statusSpacing, dimColor)
	}
	for i := range h.rows {
		h.drawRow(&h.rows[i])
	}
	if h.message != "" {
		text.Draw(h.panel, h.message, face, panelPadding, height-panelPadding, errorColor)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) drawRow(row *hudRow) {
	face := basicfont.Face7x13
	y := row.top + labelBaseline
	text.Draw(h.panel, row.control.Label, face, panelPadding, y, labelColor)

	value, col := "--", dimColor
	if row.hasValue {
		value, col = strconv.Itoa(row.value), labelColor
	}
	valueX := row.minus.Min.X - buttonGap - text.BoundString(face, value).Dx()
	text.Draw(h.panel, value, face, valueX, y, col)

	_, canDec := row.target(-1)
	_, canInc := row.target(1)
	h.drawButton(row.minus, "-", row.hasValue && canDec)
	h.drawButton(row.plus, "+", row.hasValue && canInc)
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	bg, fg := buttonColor, labelColor
	if !enabled {
		bg, fg = disabledColor, dimColor
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return image.Pt(x, y).In(rect)
}

var (
	titleColor    = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	labelColor    = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimColor      = color.RGBA{R: 150, G: 150, B: 165, A: 255}
	errorColor    = color.RGBA{R: 240, G: 120, B: 110, A: 255}
	buttonColor   = color.RGBA{R: 54, G: 56, B: 64, A: 255}
	disabledColor = color.RGBA{R: 32, G: 34, B: 40, A: 255}
)

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	statusSpacing  = 18
	labelBaseline  = 24
	controlsTop    = panelPadding + headerBaseline + statusSpacing + 14
)
