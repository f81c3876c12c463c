package snow

import (
	"sync"
	"testing"
)

func TestBarrierFiresOnceAtTotal(t *testing.T) {
	fired := 0
	b := NewBarrier(3, func() { fired++ })
	if b.Arrive() || b.Arrive() {
		t.Fatal("barrier completed early")
	}
	if !b.Arrive() {
		t.Fatal("third arrival should complete the barrier")
	}
	if b.Arrive() {
		t.Fatal("arrival after completion reported completion")
	}
	if fired != 1 {
		t.Fatalf("fired %d times, want 1", fired)
	}
	if !b.Done() || b.Arrived() != 3 {
		t.Fatalf("done=%v arrived=%d", b.Done(), b.Arrived())
	}
}

func TestBarrierEmptyCompletesOnCheck(t *testing.T) {
	fired := 0
	b := NewBarrier(0, func() { fired++ })
	if fired != 0 {
		t.Fatal("constructor must not fire")
	}
	if !b.Check() || fired != 1 {
		t.Fatalf("empty barrier should fire on Check, fired=%d", fired)
	}
	if b.Check() || fired != 1 {
		t.Fatal("second Check fired again")
	}
}

func TestBarrierCancelIgnoresArrivals(t *testing.T) {
	fired := false
	b := NewBarrier(1, func() { fired = true })
	b.Cancel()
	if b.Arrive() || fired {
		t.Fatal("cancelled barrier fired")
	}
}

func TestBarrierAddExtendsTotal(t *testing.T) {
	fired := 0
	b := NewBarrier(1, func() { fired++ })
	b.Add(2)
	b.Arrive()
	b.Arrive()
	if fired != 0 {
		t.Fatal("fired before the added units arrived")
	}
	b.Arrive()
	if fired != 1 || b.Total() != 3 {
		t.Fatalf("fired=%d total=%d", fired, b.Total())
	}
}

func TestBarrierConcurrentArrivals(t *testing.T) {
	const n = 64
	var mu sync.Mutex
	fired := 0
	b := NewBarrier(n, func() {
		mu.Lock()
		fired++
		mu.Unlock()
	})
	var wg sync.WaitGroup
	for i := 0; i < n*2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.Arrive()
		}()
	}
	wg.Wait()
	if fired != 1 {
		t.Fatalf("fired %d times under concurrency, want 1", fired)
	}
}
