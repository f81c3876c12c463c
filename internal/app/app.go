//go:build ebiten

package app

import (
	"image/color"
	"log"

	"winter/internal/render"
	"winter/internal/ui"
	"winter/pkg/core"
	"winter/pkg/snow"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a snow field to the ebiten.Game interface.
type Game struct {
	field   *snow.Field
	clock   *core.FrameClock
	surface *render.Surface
	hud     *ui.HUD
	overlay *ui.Overlay

	background color.Color
	showHUD    bool
	hudWidth   int

	w, h               int
	pendingW, pendingH int
}

var _ ebiten.Game = (*Game)(nil)

// New constructs a Game around field. The clock must be the one the field
// arms its ticker on.
func New(field *snow.Field, clock *core.FrameClock, hudWidth int) *Game {
	return &Game{
		field:      field,
		clock:      clock,
		surface:    render.NewSurface(color.White),
		hud:        ui.NewHUD(FieldTunable{Field: field}, func() string { return Status(field) }, hudWidth),
		overlay:    ui.NewOverlay(field),
		background: color.RGBA{R: 18, G: 28, B: 52, A: 255},
		hudWidth:   hudWidth,
	}
}

// Update handles input, applies pending resizes and advances the clock.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if g.field.Paused() {
			g.field.Start()
		} else {
			g.field.Stop()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.field.Start()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyX) {
		g.field.StopImmediately()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}

	if g.pendingW != g.w || g.pendingH != g.h {
		if err := g.field.Resize(g.pendingW, g.pendingH); err != nil {
			log.Printf("[app] resize %dx%d: %v", g.pendingW, g.pendingH, err)
		} else {
			g.w, g.h = g.pendingW, g.pendingH
		}
	}

	g.overlay.Update()
	if g.showHUD {
		g.hud.Update(g.w - g.hudWidth)
	}
	g.clock.Advance()
	return nil
}

// Draw renders the current frame.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.background)
	g.surface.Begin(screen)
	g.field.Render(g.surface)
	g.surface.End()
	g.overlay.Draw(screen)
	if g.showHUD {
		g.hud.Draw(screen, g.w-g.hudWidth)
	}
}

// Layout uses the window size as the viewport; the field picks it up on the
// next Update, before the clock fires.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.pendingW, g.pendingH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
