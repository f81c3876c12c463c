package term

import (
	"strings"
	"testing"

	"winter/pkg/core"
	"winter/pkg/snow"

	"github.com/gdamore/tcell/v2"
)

func newTestApp(t *testing.T, cols, rows int) (*App, tcell.SimulationScreen, *snow.Field) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(cols, rows)

	params := snow.DefaultParams()
	params.Count = 60
	params.Size = snow.Range{Min: 4, Max: 12}
	params.Speed = snow.Range{Min: 2, Max: 5}

	clock := core.NewFrameClock(0)
	field, err := snow.NewField(params, clock, core.NewRNG(5))
	if err != nil {
		t.Fatal(err)
	}
	a, err := New(screen, field, clock, 8, 16, 30)
	if err != nil {
		t.Fatal(err)
	}
	return a, screen, field
}

func rowText(screen tcell.SimulationScreen, row, cols int) string {
	var b strings.Builder
	for col := 0; col < cols; col++ {
		r, _, _, _ := screen.GetContent(col, row)
		if r == 0 {
			r = ' '
		}
		b.WriteRune(r)
	}
	return b.String()
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestNewSizesFieldAboveStatusRow(t *testing.T) {
	_, _, field := newTestApp(t, 40, 21)
	if w, h := field.Bounds(); w != 320 || h != 320 {
		t.Fatalf("field bounds %dx%d, want 320x320", w, h)
	}
	if n := len(field.Particles()); n != 60 {
		t.Fatalf("population %d, want 60", n)
	}
}

func TestSpaceTogglesGracefulStop(t *testing.T) {
	a, screen, field := newTestApp(t, 40, 21)

	if !a.HandleEvent(key(' ')) {
		t.Fatal("space quit the app")
	}
	if field.State() != snow.FieldRunning {
		t.Fatalf("state %s after space, want running", field.State())
	}
	for i := 0; i < 50; i++ {
		a.Step()
	}
	if status := rowText(screen, 20, 40); !strings.Contains(status, "running") {
		t.Fatalf("status row %q", status)
	}

	a.HandleEvent(key(' '))
	if field.State() != snow.FieldDraining {
		t.Fatalf("state %s after second space, want draining", field.State())
	}
	for i := 0; i < 2000 && field.State() != snow.FieldIdle; i++ {
		a.Step()
	}
	if field.State() != snow.FieldIdle {
		t.Fatalf("drain never completed: %+v", field.Stats())
	}
	if field.Ticker() != nil {
		t.Fatal("ticker still armed after drain")
	}
}

func TestHaltKeyStopsImmediately(t *testing.T) {
	a, _, field := newTestApp(t, 40, 21)
	a.HandleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	a.Step()
	a.HandleEvent(key(' '))
	a.HandleEvent(key('x'))
	if field.State() != snow.FieldIdle {
		t.Fatalf("state %s after x, want idle", field.State())
	}
	if st := field.Stats(); st.Drains != 0 {
		t.Fatalf("immediate stop counted as drain: %+v", st)
	}
}

func TestQuitKeys(t *testing.T) {
	a, _, _ := newTestApp(t, 40, 21)
	if a.HandleEvent(key('q')) {
		t.Fatal("q did not quit")
	}
	if a.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Fatal("escape did not quit")
	}
}

func TestResizeEventRespawns(t *testing.T) {
	a, screen, field := newTestApp(t, 40, 21)
	screen.SetSize(20, 11)
	if !a.HandleEvent(tcell.NewEventResize(20, 11)) {
		t.Fatal("resize quit the app")
	}
	if w, h := field.Bounds(); w != 160 || h != 160 {
		t.Fatalf("field bounds %dx%d after resize, want 160x160", w, h)
	}
	if n := len(field.Particles()); n != 60 {
		t.Fatalf("population %d after replace resize, want 60", n)
	}
}
