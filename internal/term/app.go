// Package term runs a snow field inside a terminal.
package term

import (
	"context"
	"log"
	"time"

	"winter/internal/app"
	"winter/internal/render"
	"winter/pkg/core"
	"winter/pkg/snow"

	"github.com/gdamore/tcell/v2"
)

// App drives a field from terminal events and a wall-clock ticker. The last
// screen row is reserved for the status line.
type App struct {
	screen  tcell.Screen
	field   *snow.Field
	clock   *core.FrameClock
	surface *render.CellSurface

	interval    time.Duration
	cols, rows  int
	statusStyle tcell.Style
}

// New sizes field to the screen and returns an app ready to Run. The clock
// must be the one the field arms its ticker on.
func New(screen tcell.Screen, field *snow.Field, clock *core.FrameClock, cellW, cellH, tps int) (*App, error) {
	if tps <= 0 {
		tps = 30
	}
	a := &App{
		screen:      screen,
		field:       field,
		clock:       clock,
		surface:     render.NewCellSurface(screen, cellW, cellH),
		interval:    time.Second / time.Duration(tps),
		statusStyle: tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver),
	}
	if err := a.resize(); err != nil {
		return nil, err
	}
	return a, nil
}

// Run processes events and frames until the user quits or ctx is done.
func (a *App) Run(ctx context.Context) error {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	a.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok || !a.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			a.Step()
		}
	}
}

// HandleEvent applies one terminal event and reports whether to keep running.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyEnter:
			a.field.Start()
		case ev.Key() != tcell.KeyRune:
		case ev.Rune() == 'q':
			return false
		case ev.Rune() == ' ':
			if a.field.Paused() {
				a.field.Start()
			} else {
				a.field.Stop()
			}
		case ev.Rune() == 'x':
			a.field.StopImmediately()
		}
	case *tcell.EventResize:
		if err := a.resize(); err != nil {
			log.Printf("[term] resize %dx%d: %v", a.cols, a.rows, err)
		}
		a.screen.Sync()
	}
	a.Draw()
	return true
}

// Step advances the clock by one frame and redraws.
func (a *App) Step() {
	a.clock.Advance()
	a.Draw()
}

// Draw renders the field and the status line.
func (a *App) Draw() {
	a.screen.Clear()
	a.field.Render(a.surface)
	a.drawStatus()
	a.screen.Show()
}

func (a *App) resize() error {
	a.cols, a.rows = a.screen.Size()
	rows := a.rows - 1
	if rows < 1 {
		rows = 1
	}
	w, h := a.surface.Viewport(a.cols, rows)
	return a.field.Resize(w, h)
}

func (a *App) drawStatus() {
	if a.rows < 2 {
		return
	}
	row := a.rows - 1
	line := []rune(" " + app.Status(a.field) + "   space stop/start  x halt  q quit")
	for col := 0; col < a.cols; col++ {
		r := ' '
		if col < len(line) {
			r = line[col]
		}
		a.screen.SetContent(col, row, r, nil, a.statusStyle)
	}
}
