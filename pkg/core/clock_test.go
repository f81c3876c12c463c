package core

import (
	"testing"
	"time"
)

func TestFrameClockFiresUntilCancelled(t *testing.T) {
	clock := NewFrameClock(0)
	calls := 0
	ticker := clock.Start(func() { calls++ })

	for i := 0; i < 3; i++ {
		if fired := clock.Advance(); fired != 1 {
			t.Fatalf("advance %d fired %d tickers, want 1", i, fired)
		}
	}
	if calls != 3 {
		t.Fatalf("expected 3 frames, got %d", calls)
	}

	ticker.Cancel()
	if ticker.Running() {
		t.Fatal("cancelled ticker still reports running")
	}
	clock.Advance()
	if calls != 3 {
		t.Fatalf("cancelled ticker fired again: %d calls", calls)
	}
	if clock.Active() != 0 {
		t.Fatalf("expected no active tickers, got %d", clock.Active())
	}
}

func TestFrameClockCancelFromInsideFrame(t *testing.T) {
	clock := NewFrameClock(0)
	var ticker Ticker
	calls := 0
	ticker = clock.Start(func() {
		calls++
		ticker.Cancel()
	})
	clock.Advance()
	clock.Advance()
	if calls != 1 {
		t.Fatalf("expected one frame before self-cancel, got %d", calls)
	}
}

func TestFrameClockStartFromInsideFrameWaitsForNextAdvance(t *testing.T) {
	clock := NewFrameClock(0)
	inner := 0
	var outer Ticker
	outer = clock.Start(func() {
		outer.Cancel()
		clock.Start(func() { inner++ })
	})
	clock.Advance()
	if inner != 0 {
		t.Fatalf("ticker started mid-frame fired in the same advance")
	}
	clock.Advance()
	if inner != 1 {
		t.Fatalf("expected inner ticker to fire once, got %d", inner)
	}
}

func TestFixedStepPacing(t *testing.T) {
	base := time.Unix(0, 0)
	now := base
	fs := NewFixedStep(10)
	fs.now = func() time.Time { return now }

	if !fs.ShouldStep() {
		t.Fatal("first call should step with a primed accumulator")
	}
	if fs.ShouldStep() {
		t.Fatal("no time elapsed, should not step")
	}
	now = now.Add(50 * time.Millisecond)
	if fs.ShouldStep() {
		t.Fatal("half a step elapsed, should not step")
	}
	now = now.Add(60 * time.Millisecond)
	if !fs.ShouldStep() {
		t.Fatal("a full step elapsed, should step")
	}
	if fs.Step() != 100*time.Millisecond {
		t.Fatalf("unexpected step %v", fs.Step())
	}
}

func TestRNGIntRange(t *testing.T) {
	rng := NewRNG(7)
	for i := 0; i < 1000; i++ {
		v := rng.IntRange(3, 7)
		if v < 3 || v >= 7 {
			t.Fatalf("value %d outside [3,7)", v)
		}
	}
	if v := rng.IntRange(5, 5); v != 5 {
		t.Fatalf("collapsed range should return min, got %d", v)
	}
	a, b := NewRNG(99), NewRNG(99)
	for i := 0; i < 10; i++ {
		if a.Float64() != b.Float64() {
			t.Fatal("same seed produced different sequences")
		}
	}
}
