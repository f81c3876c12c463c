package app

import (
	"strings"
	"testing"

	"winter/pkg/core"
	"winter/pkg/snow"
)

func newField(t *testing.T) (*snow.Field, *core.FrameClock) {
	t.Helper()
	clock := core.NewFrameClock(0)
	f, err := snow.NewField(snow.DefaultParams(), clock, core.NewRNG(1))
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Resize(320, 240); err != nil {
		t.Fatal(err)
	}
	return f, clock
}

func TestFieldTunableSnapshot(t *testing.T) {
	f, _ := newField(t)
	snap := FieldTunable{Field: f}.Parameters()
	if p, ok := snap.Lookup("width"); !ok || p.Value != 320 {
		t.Fatalf("width parameter %+v, %v", p, ok)
	}
	if p, ok := snap.Lookup("particles"); !ok || p.Value != 100 {
		t.Fatalf("particles parameter %+v, %v", p, ok)
	}
	for _, ctrl := range (FieldTunable{Field: f}).ParameterControls() {
		if _, ok := snap.Lookup(ctrl.Key); !ok {
			t.Fatalf("control %q has no matching parameter", ctrl.Key)
		}
	}
}

func TestFieldTunableSetParameterRespawns(t *testing.T) {
	f, _ := newField(t)
	tun := FieldTunable{Field: f}
	if err := tun.SetParameter("snow_count", 20); err != nil {
		t.Fatal(err)
	}
	if n := len(f.Particles()); n != 20 {
		t.Fatalf("population %d after count change", n)
	}
	if err := tun.SetParameter("gravity", 1); err == nil {
		t.Fatal("unknown key accepted")
	}
}

func TestFieldTunableDragsRangePartner(t *testing.T) {
	f, _ := newField(t)
	tun := FieldTunable{Field: f}
	if err := tun.SetParameter("min_speed", 9); err != nil {
		t.Fatal(err)
	}
	if got := f.Params().Speed; got != (snow.Range{Min: 9, Max: 9}) {
		t.Fatalf("speed range %+v, want 9..9", got)
	}
	if err := tun.SetParameter("max_size", 5); err != nil {
		t.Fatal(err)
	}
	if got := f.Params().Size; got != (snow.Range{Min: 5, Max: 5}) {
		t.Fatalf("size range %+v, want 5..5", got)
	}
}

func TestStatusShowsDrainProgress(t *testing.T) {
	f, _ := newField(t)
	if s := Status(f); !strings.HasPrefix(s, "idle") {
		t.Fatalf("status %q", s)
	}
	f.Start()
	f.Stop()
	if s := Status(f); !strings.Contains(s, "drained 0/100") {
		t.Fatalf("status %q lacks drain progress", s)
	}
}
