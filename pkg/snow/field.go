// Package snow animates falling particles and coordinates graceful stops.
package snow

import (
	"errors"
	"image"
	"io"
	"log"

	"winter/pkg/core"
)

// ErrDraining is returned by operations that cannot run while a graceful stop
// is waiting for particles to finish.
var ErrDraining = errors.New("snow: field is draining")

// FieldState is the animation state of a Field.
type FieldState uint8

const (
	// FieldIdle: no ticker, particles parked above the viewport.
	FieldIdle FieldState = iota
	// FieldRunning: ticker armed, particles loop forever.
	FieldRunning
	// FieldDraining: ticker armed, every particle finishes its current fall and
	// then disappears.
	FieldDraining
	// FieldStopping: the ticker is gone and particles are being re-seeded.
	FieldStopping
)

func (s FieldState) String() string {
	switch s {
	case FieldIdle:
		return "idle"
	case FieldRunning:
		return "running"
	case FieldDraining:
		return "draining"
	case FieldStopping:
		return "stopping"
	default:
		return "unknown"
	}
}

// Field owns a population of particles, the viewport they fall through and
// the ticker that animates them.
type Field struct {
	params Params
	sprite image.Image
	cfg    *SpawnConfig

	rng    Rand
	clock  core.Clock
	ticker core.Ticker

	particles []*Particle
	state     FieldState
	barrier   *Barrier
	dirty     bool

	onDrained func()
	logger    *log.Logger

	frames uint64
	drains int
}

// NewField validates params and returns an idle field. Particles are spawned
// once the viewport size is known via Resize.
func NewField(params Params, clock core.Clock, rng Rand) (*Field, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if clock == nil {
		return nil, errors.New("snow: nil clock")
	}
	if rng == nil {
		return nil, errors.New("snow: nil rng")
	}
	return &Field{
		params: params,
		rng:    rng,
		clock:  clock,
		logger: log.New(io.Discard, "", 0),
	}, nil
}

// SetLogger routes lifecycle messages to l. A nil logger discards them.
func (f *Field) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard, "", 0)
	}
	f.logger = l
}

// SetOnDrained registers a hook fired once per completed graceful stop, after
// the field is idle again.
func (f *Field) SetOnDrained(fn func()) { f.onDrained = fn }

// Resize records new viewport bounds and spawns a batch according to the
// resize policy.
func (f *Field) Resize(w, h int) error {
	cfg, err := NewSpawnConfig(w, h, f.params, f.sprite)
	if err != nil {
		return err
	}
	f.cfg = cfg
	switch f.params.Resize {
	case ResizeAppend:
		f.Spawn(f.params.Count)
	default:
		f.respawn()
	}
	f.logger.Printf("[field] resize %dx%d policy=%s particles=%d", w, h, f.params.Resize, len(f.particles))
	return nil
}

// SetParams replaces the spawn ranges and rebuilds the population. It is
// rejected while draining, since the barrier is sized to the old population.
func (f *Field) SetParams(p Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if f.state == FieldDraining {
		return ErrDraining
	}
	f.params = p
	return f.rebuild()
}

// SetSprite sets the bitmap used by subsequent batches (nil draws disks) and
// rebuilds the population.
func (f *Field) SetSprite(img image.Image) error {
	if f.state == FieldDraining {
		return ErrDraining
	}
	f.sprite = img
	return f.rebuild()
}

func (f *Field) rebuild() error {
	f.particles = nil
	if f.cfg == nil {
		return nil
	}
	cfg, err := NewSpawnConfig(f.cfg.Width, f.cfg.Height, f.params, f.sprite)
	if err != nil {
		return err
	}
	f.cfg = cfg
	f.Spawn(f.params.Count)
	return nil
}

// respawn clears the population and spawns a fresh batch. A drain in progress
// is re-armed over the new particles.
func (f *Field) respawn() {
	draining := f.state == FieldDraining
	if f.barrier != nil {
		f.barrier.Cancel()
		f.barrier = nil
	}
	f.particles = nil
	f.Spawn(f.params.Count)
	if draining {
		f.drain()
	}
}

// Spawn appends count particles built from the current batch config. It is a
// no-op until the viewport size is known. Particles spawned during a drain
// join it.
func (f *Field) Spawn(count int) {
	if f.cfg == nil || count <= 0 {
		return
	}
	batch := make([]*Particle, count)
	for i := range batch {
		batch[i] = NewParticle(f.cfg, f.rng)
	}
	f.particles = append(f.particles, batch...)
	if f.state == FieldDraining && f.barrier != nil {
		f.barrier.Add(count)
		for _, p := range batch {
			p.Stop(arrival(f.barrier))
		}
	}
}

// Start activates every particle and arms the ticker if it is not already
// running. Starting during a drain abandons the drain.
func (f *Field) Start() {
	for _, p := range f.particles {
		p.Start()
	}
	if f.barrier != nil {
		f.barrier.Cancel()
		f.barrier = nil
	}
	if f.ticker == nil || !f.ticker.Running() {
		f.ticker = f.clock.Start(f.invalidate)
	}
	if f.state != FieldRunning {
		f.logger.Printf("[field] start particles=%d", len(f.particles))
	}
	f.state = FieldRunning
}

// Stop begins a graceful stop: each particle finishes its current fall, and
// once all have done so the ticker is cancelled and the field returns to
// FieldIdle. Calling Stop while already draining, or while idle, does nothing.
func (f *Field) Stop() {
	if f.state != FieldRunning {
		return
	}
	f.logger.Printf("[field] drain particles=%d", len(f.particles))
	f.drain()
}

func (f *Field) drain() {
	b := NewBarrier(len(f.particles), f.finishDrain)
	f.barrier = b
	f.state = FieldDraining
	for _, p := range f.particles {
		p.Stop(arrival(b))
	}
	b.Check()
}

func arrival(b *Barrier) func() {
	return func() { b.Arrive() }
}

func (f *Field) finishDrain() {
	f.barrier = nil
	f.halt()
	f.drains++
	f.logger.Printf("[field] drain complete at frame %d", f.frames)
	if f.onDrained != nil {
		f.onDrained()
	}
}

// StopImmediately cancels the ticker and any drain and re-seeds every
// particle. It is safe in any state.
func (f *Field) StopImmediately() {
	if f.barrier != nil {
		f.barrier.Cancel()
		f.barrier = nil
	}
	f.halt()
	f.logger.Printf("[field] stopped immediately")
}

func (f *Field) halt() {
	if f.ticker != nil {
		f.ticker.Cancel()
		f.ticker = nil
	}
	f.dirty = false
	f.state = FieldStopping
	for _, p := range f.particles {
		p.Restart()
	}
	f.state = FieldIdle
}

func (f *Field) invalidate() { f.dirty = true }

// Tick updates and then draws every particle in order. It does nothing while
// paused, and stops early if a drain completes mid-frame. A nil surface
// updates without drawing.
func (f *Field) Tick(s Surface) {
	if f.Paused() {
		return
	}
	f.frames++
	for _, p := range f.particles {
		p.Update()
		if f.state == FieldIdle {
			return
		}
		if s != nil {
			p.Draw(s)
		}
	}
}

// Render is the host's per-frame draw entry. It ticks once if the ticker
// fired since the previous render and otherwise redraws the current frame.
func (f *Field) Render(s Surface) {
	if f.Paused() {
		return
	}
	if f.dirty {
		f.dirty = false
		f.Tick(s)
		return
	}
	if s == nil {
		return
	}
	for _, p := range f.particles {
		p.Draw(s)
	}
}

// Paused reports whether the ticker is not driving updates.
func (f *Field) Paused() bool { return f.state == FieldIdle || f.state == FieldStopping }

// State returns the current animation state.
func (f *Field) State() FieldState { return f.state }

// Particles returns the population in update order. Callers must not modify
// the slice.
func (f *Field) Particles() []*Particle { return f.particles }

// Params returns the current spawn parameters.
func (f *Field) Params() Params { return f.params }

// Bounds returns the viewport size, or zeros before the first Resize.
func (f *Field) Bounds() (w, h int) {
	if f.cfg == nil {
		return 0, 0
	}
	return f.cfg.Width, f.cfg.Height
}

// Ticker returns the armed ticker handle, or nil when idle.
func (f *Field) Ticker() core.Ticker { return f.ticker }

// Stats summarizes the field for HUDs and traces.
type Stats struct {
	State     FieldState
	Particles int
	Active    int
	Draining  int
	Destroyed int
	Arrived   int
	Expected  int
	Frames    uint64
	Drains    int
}

// Stats counts particles per lifecycle state and reports drain progress.
func (f *Field) Stats() Stats {
	st := Stats{State: f.state, Particles: len(f.particles), Frames: f.frames, Drains: f.drains}
	for _, p := range f.particles {
		switch p.State() {
		case Active:
			st.Active++
		case Draining:
			st.Draining++
		case Destroyed:
			st.Destroyed++
		}
	}
	if f.barrier != nil {
		st.Arrived = f.barrier.Arrived()
		st.Expected = f.barrier.Total()
	}
	return st
}
