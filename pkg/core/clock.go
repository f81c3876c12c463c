package core

// Clock arms free-running repeating tickers. Hosts own the clock and drive it
// once per frame; engines only start and cancel tickers.
type Clock interface {
	Start(frame func()) Ticker
}

// Ticker is the handle of an armed frame callback.
type Ticker interface {
	Cancel()
	Running() bool
}

// FrameClock fires every running ticker each time Advance is called. When
// constructed with a positive TPS, Advance only fires once per elapsed step.
type FrameClock struct {
	pace    *FixedStep
	tickers []*FrameTicker
}

// NewFrameClock returns a clock paced at tps. tps <= 0 fires on every Advance,
// which is what tests and headless tools want.
func NewFrameClock(tps int) *FrameClock {
	c := &FrameClock{}
	if tps > 0 {
		c.pace = NewFixedStep(tps)
	}
	return c
}

// Start arms a ticker that invokes frame on every fired Advance until
// cancelled.
func (c *FrameClock) Start(frame func()) Ticker {
	t := &FrameTicker{frame: frame, running: true}
	c.tickers = append(c.tickers, t)
	return t
}

// Advance fires the running tickers and reports how many were invoked.
// Tickers started or cancelled from inside a frame callback take effect on
// the next Advance.
func (c *FrameClock) Advance() int {
	if len(c.tickers) == 0 {
		return 0
	}
	if c.pace != nil && !c.pace.ShouldStep() {
		return 0
	}
	armed := append([]*FrameTicker(nil), c.tickers...)
	fired := 0
	for _, t := range armed {
		if !t.running {
			continue
		}
		t.frames++
		t.frame()
		fired++
	}
	c.compact()
	return fired
}

// Active returns the number of running tickers.
func (c *FrameClock) Active() int {
	n := 0
	for _, t := range c.tickers {
		if t.running {
			n++
		}
	}
	return n
}

func (c *FrameClock) compact() {
	kept := c.tickers[:0]
	for _, t := range c.tickers {
		if t.running {
			kept = append(kept, t)
		}
	}
	for i := len(kept); i < len(c.tickers); i++ {
		c.tickers[i] = nil
	}
	c.tickers = kept
}

// FrameTicker is the Ticker handed out by FrameClock.
type FrameTicker struct {
	frame   func()
	running bool
	frames  uint64
}

// Cancel stops the ticker. Cancelling twice is harmless.
func (t *FrameTicker) Cancel() { t.running = false }

// Running reports whether the ticker is still armed.
func (t *FrameTicker) Running() bool { return t.running }

// Frames returns how many times the ticker has fired.
func (t *FrameTicker) Frames() uint64 { return t.frames }
