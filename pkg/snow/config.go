package snow

import (
	"errors"
	"fmt"
	"image"
	"strconv"
)

// ErrInvalidConfig is matched by every configuration rejection.
var ErrInvalidConfig = errors.New("invalid snow configuration")

// ConfigError describes a rejected configuration field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("snow config %s: %s", e.Field, e.Reason)
}

// Is lets errors.Is match ErrInvalidConfig.
func (e *ConfigError) Is(target error) bool { return target == ErrInvalidConfig }

// Range is an integer interval sampled half-open as [Min, Max); Min == Max
// always yields Min.
type Range struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

func (r Range) check(field string, floor int) error {
	if r.Min > r.Max {
		return &ConfigError{Field: field, Reason: fmt.Sprintf("min %d exceeds max %d", r.Min, r.Max)}
	}
	if r.Min < floor {
		return &ConfigError{Field: field, Reason: fmt.Sprintf("min %d below %d", r.Min, floor)}
	}
	return nil
}

// ResizePolicy selects what happens to existing particles when the viewport
// changes size.
type ResizePolicy string

const (
	// ResizeReplace clears the field and spawns a fresh batch.
	ResizeReplace ResizePolicy = "replace"
	// ResizeAppend keeps existing particles and appends a fresh batch, so the
	// population grows with every resize.
	ResizeAppend ResizePolicy = "append"
)

// Params holds the tunable spawn ranges of a field.
type Params struct {
	Count     int          `yaml:"count"`
	Amplitude Range        `yaml:"amplitude"`
	Speed     Range        `yaml:"speed"`
	Size      Range        `yaml:"size"`
	Resize    ResizePolicy `yaml:"resize"`
}

// DefaultParams returns the standard configuration.
func DefaultParams() Params {
	return Params{
		Count:     100,
		Amplitude: Range{Min: 40, Max: 50},
		Speed:     Range{Min: 3, Max: 7},
		Size:      Range{Min: 20, Max: 30},
		Resize:    ResizeReplace,
	}
}

// Validate rejects ranges that cannot be sampled or would stall the field.
// Speeds and sizes must be at least 1 so every particle eventually leaves the
// viewport, and amplitudes at least 1 so the sway period is finite.
func (p Params) Validate() error {
	if p.Count < 0 {
		return &ConfigError{Field: "count", Reason: fmt.Sprintf("negative count %d", p.Count)}
	}
	if err := p.Amplitude.check("amplitude", 1); err != nil {
		return err
	}
	if err := p.Speed.check("speed", 1); err != nil {
		return err
	}
	if err := p.Size.check("size", 1); err != nil {
		return err
	}
	switch p.Resize {
	case ResizeReplace, ResizeAppend:
	default:
		return &ConfigError{Field: "resize", Reason: fmt.Sprintf("unknown policy %q", p.Resize)}
	}
	return nil
}

// FromMap populates params from a string map (flag-style key/value pairs).
// Unparseable values keep their defaults; validation is left to Validate.
func FromMap(cfg map[string]string) Params {
	p := DefaultParams()
	if cfg == nil {
		return p
	}
	for key, dst := range p.intFields() {
		v, ok := cfg[key]
		if !ok {
			continue
		}
		if parsed, err := strconv.Atoi(v); err == nil {
			*dst = parsed
		}
	}
	if v, ok := cfg["resize"]; ok {
		p.Resize = ResizePolicy(v)
	}
	return p
}

// intFields maps flag-style keys onto the integer fields of p.
func (p *Params) intFields() map[string]*int {
	return map[string]*int{
		"snow_count":    &p.Count,
		"min_amplitude": &p.Amplitude.Min,
		"max_amplitude": &p.Amplitude.Max,
		"min_speed":     &p.Speed.Min,
		"max_speed":     &p.Speed.Max,
		"min_size":      &p.Size.Min,
		"max_size":      &p.Size.Max,
	}
}

// WithInt returns a copy of p with the flag-style key set to value.
func (p Params) WithInt(key string, value int) (Params, bool) {
	dst, ok := p.intFields()[key]
	if !ok {
		return p, false
	}
	*dst = value
	return p, true
}

// Int reads a flag-style integer key.
func (p Params) Int(key string) (int, bool) {
	src, ok := p.intFields()[key]
	if !ok {
		return 0, false
	}
	return *src, true
}

// SpawnConfig is the immutable input of one spawn batch. Every particle of the
// batch holds the same pointer.
type SpawnConfig struct {
	Width     int
	Height    int
	Sprite    image.Image
	Amplitude Range
	Speed     Range
	Size      Range
}

// NewSpawnConfig combines viewport bounds, params and an optional sprite.
func NewSpawnConfig(w, h int, p Params, sprite image.Image) (*SpawnConfig, error) {
	cfg := &SpawnConfig{
		Width:     w,
		Height:    h,
		Sprite:    sprite,
		Amplitude: p.Amplitude,
		Speed:     p.Speed,
		Size:      p.Size,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks bounds and ranges.
func (c *SpawnConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return &ConfigError{Field: "viewport", Reason: fmt.Sprintf("non-positive bounds %dx%d", c.Width, c.Height)}
	}
	if err := c.Amplitude.check("amplitude", 1); err != nil {
		return err
	}
	if err := c.Speed.check("speed", 1); err != nil {
		return err
	}
	return c.Size.check("size", 1)
}
