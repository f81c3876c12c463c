package snow

import (
	"errors"
	"testing"
)

func TestParamsValidate(t *testing.T) {
	if err := DefaultParams().Validate(); err != nil {
		t.Fatalf("defaults rejected: %v", err)
	}

	cases := map[string]func(*Params){
		"inverted amplitude": func(p *Params) { p.Amplitude = Range{Min: 50, Max: 40} },
		"inverted speed":     func(p *Params) { p.Speed = Range{Min: 7, Max: 3} },
		"inverted size":      func(p *Params) { p.Size = Range{Min: 30, Max: 20} },
		"zero speed":         func(p *Params) { p.Speed = Range{Min: 0, Max: 3} },
		"zero size":          func(p *Params) { p.Size = Range{Min: 0, Max: 0} },
		"zero amplitude":     func(p *Params) { p.Amplitude = Range{Min: 0, Max: 10} },
		"negative count":     func(p *Params) { p.Count = -1 },
		"unknown policy":     func(p *Params) { p.Resize = "grow" },
	}
	for name, mutate := range cases {
		p := DefaultParams()
		mutate(&p)
		err := p.Validate()
		if !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("%s: expected ErrInvalidConfig, got %v", name, err)
		}
		var cfgErr *ConfigError
		if !errors.As(err, &cfgErr) || cfgErr.Field == "" {
			t.Fatalf("%s: expected a ConfigError naming the field, got %v", name, err)
		}
	}

	p := DefaultParams()
	p.Speed = Range{Min: 5, Max: 5}
	if err := p.Validate(); err != nil {
		t.Fatalf("collapsed range should be valid: %v", err)
	}
}

func TestFromMap(t *testing.T) {
	p := FromMap(map[string]string{
		"snow_count": "12",
		"min_speed":  "2",
		"max_speed":  "9",
		"min_size":   "oops",
		"resize":     "append",
	})
	if p.Count != 12 || p.Speed != (Range{Min: 2, Max: 9}) || p.Resize != ResizeAppend {
		t.Fatalf("unexpected params %+v", p)
	}
	if p.Size.Min != 20 {
		t.Fatalf("unparseable value should keep the default, got %d", p.Size.Min)
	}
	if FromMap(nil) != DefaultParams() {
		t.Fatal("nil map should return defaults")
	}
}

func TestParamsIntKeys(t *testing.T) {
	p, ok := DefaultParams().WithInt("max_amplitude", 80)
	if !ok || p.Amplitude.Max != 80 {
		t.Fatalf("WithInt failed: ok=%v %+v", ok, p.Amplitude)
	}
	if DefaultParams().Amplitude.Max != 50 {
		t.Fatal("WithInt must not mutate the receiver's source")
	}
	if v, ok := p.Int("max_amplitude"); !ok || v != 80 {
		t.Fatalf("Int returned %d, %v", v, ok)
	}
	if _, ok := p.WithInt("gravity", 1); ok {
		t.Fatal("unknown key accepted")
	}
}

func TestSpawnConfigValidate(t *testing.T) {
	if _, err := NewSpawnConfig(0, 10, DefaultParams(), nil); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("zero width accepted: %v", err)
	}
	if _, err := NewSpawnConfig(10, -1, DefaultParams(), nil); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("negative height accepted: %v", err)
	}
	cfg, err := NewSpawnConfig(10, 10, DefaultParams(), nil)
	if err != nil || cfg.Sprite != nil {
		t.Fatalf("absent sprite should be valid: %v", err)
	}
}
