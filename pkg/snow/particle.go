package snow

import (
	"image"
	"math"

	"winter/pkg/sprite"
)

// Rand supplies the uniform samples particles draw from. *core.RNG satisfies it.
type Rand interface {
	// IntRange returns an int in [min, max), or min when max <= min.
	IntRange(min, max int) int
	// Float64 returns a float64 in [0, 1).
	Float64() float64
}

// Surface receives draw calls for one frame.
type Surface interface {
	DrawImage(img image.Image, x, y float64)
	FillCircle(x, y, radius float64)
}

// State is the lifecycle state of a particle.
type State uint8

const (
	Active State = iota
	Draining
	Destroyed
)

func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case Draining:
		return "draining"
	case Destroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Sway scale and divisor ranges keep the horizontal swing inside the viewport.
var (
	swayScaleRange   = Range{Min: 45, Max: 65}
	swayDivisorRange = Range{Min: 4, Max: 7}
)

// Particle is a single flake falling down the viewport with a sinusoidal
// sideways drift.
type Particle struct {
	cfg *SpawnConfig
	rng Rand

	x, y  float64
	phase int

	amplitudePct int
	amplitude    float64
	swayScale    int
	swayDivisor  int
	startOffset  float64
	speed        int
	size         int
	sprite       image.Image

	state  State
	onDone func()
}

// NewParticle builds a particle for the batch described by cfg. It starts
// above the viewport, horizontally centred.
func NewParticle(cfg *SpawnConfig, rng Rand) *Particle {
	p := &Particle{cfg: cfg, rng: rng}
	p.amplitudePct = rng.IntRange(cfg.Amplitude.Min, cfg.Amplitude.Max)
	p.speed = rng.IntRange(cfg.Speed.Min, cfg.Speed.Max)
	p.swayScale = rng.IntRange(swayScaleRange.Min, swayScaleRange.Max)
	p.startOffset = rng.Float64()
	p.amplitude = p.amplitudeFor(cfg.Width)
	p.swayDivisor = rng.IntRange(swayDivisorRange.Min, swayDivisorRange.Max)
	p.size = rng.IntRange(cfg.Size.Min, cfg.Size.Max)
	p.sprite = p.scaledSprite()
	p.y = -float64(rng.IntRange(1, cfg.Height))
	p.x = float64(cfg.Width) / 2
	return p
}

func (p *Particle) amplitudeFor(width int) float64 {
	return float64(width) * float64(p.amplitudePct) / 100
}

func (p *Particle) scaledSprite() image.Image {
	if p.cfg.Sprite == nil {
		return nil
	}
	if img := sprite.Scale(p.cfg.Sprite, p.size); img != nil {
		return img
	}
	return nil
}

// Update advances the particle by one frame.
func (p *Particle) Update() {
	if p.state == Destroyed {
		return
	}
	w := float64(p.cfg.Width)
	radians := 0.0
	if p.amplitude > 0 {
		radians = math.Pi / p.amplitude * float64(p.phase)
	}
	p.phase++
	p.x = math.Sin(radians)*w/float64(p.swayDivisor)*float64(p.swayScale)/100 + w*p.startOffset
	p.y += float64(p.speed)

	if p.y-float64(p.size) > float64(p.cfg.Height) {
		p.reset()
	}
}

// reset re-randomizes the particle just above the viewport, offset by the
// size it fell with. A draining particle is destroyed and reports completion
// exactly once, after it has been re-randomized.
func (p *Particle) reset() {
	var done func()
	if p.state == Draining {
		p.state = Destroyed
		done, p.onDone = p.onDone, nil
	}

	p.y = -float64(p.size)
	p.phase = 0
	p.speed = p.rng.IntRange(p.cfg.Speed.Min, p.cfg.Speed.Max)
	p.swayScale = p.rng.IntRange(swayScaleRange.Min, swayScaleRange.Max)
	p.startOffset = p.rng.Float64()
	p.amplitude = p.amplitudeFor(p.cfg.Width)
	p.swayDivisor = p.rng.IntRange(swayDivisorRange.Min, swayDivisorRange.Max)
	p.size = p.rng.IntRange(p.cfg.Size.Min, p.cfg.Size.Max)
	p.sprite = p.scaledSprite()

	if done != nil {
		done()
	}
}

// Restart re-seeds the particle for the next run: it becomes Active without a
// callback and is placed at a random height above the viewport.
func (p *Particle) Restart() {
	p.state = Active
	p.onDone = nil
	p.reset()
	p.y = -float64(p.rng.IntRange(1, p.cfg.Height))
	p.x = float64(p.cfg.Width) / 2
}

// Start clears any drain without moving the particle.
func (p *Particle) Start() {
	p.state = Active
	p.onDone = nil
}

// Stop marks the particle as draining. done fires when its current fall
// completes.
func (p *Particle) Stop(done func()) {
	p.state = Draining
	p.onDone = done
}

// Draw paints the particle if it is alive and within the viewport rows.
func (p *Particle) Draw(s Surface) {
	if p.state == Destroyed || p.y < 0 || p.y > float64(p.cfg.Height) {
		return
	}
	if p.sprite != nil {
		s.DrawImage(p.sprite, p.x, p.y)
		return
	}
	s.FillCircle(p.x, p.y, float64(p.size))
}

// Sway returns the centre column of the particle's horizontal swing and its
// half-width in pixels.
func (p *Particle) Sway() (centre, half float64) {
	w := float64(p.cfg.Width)
	return w * p.startOffset, w / float64(p.swayDivisor) * float64(p.swayScale) / 100
}

// Position returns the current coordinates.
func (p *Particle) Position() (x, y float64) { return p.x, p.y }

// State returns the lifecycle state.
func (p *Particle) State() State { return p.state }

// Speed returns the vertical speed in pixels per frame.
func (p *Particle) Speed() int { return p.speed }

// Size returns the radius (disk) or edge length (sprite).
func (p *Particle) Size() int { return p.size }

// Phase returns the sway counter.
func (p *Particle) Phase() int { return p.phase }

// AmplitudePercent returns the amplitude range draw fixed at construction.
func (p *Particle) AmplitudePercent() int { return p.amplitudePct }

// Amplitude returns the absolute sway period derived from the viewport width.
func (p *Particle) Amplitude() float64 { return p.amplitude }

// StartOffset returns the fractional horizontal bias.
func (p *Particle) StartOffset() float64 { return p.startOffset }

// Sprite returns the particle's private scaled sprite, or nil.
func (p *Particle) Sprite() image.Image { return p.sprite }

// Config returns the spawn batch the particle belongs to.
func (p *Particle) Config() *SpawnConfig { return p.cfg }
