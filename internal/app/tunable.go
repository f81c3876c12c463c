package app

import (
	"fmt"
	"strings"

	"winter/internal/core"
	"winter/pkg/snow"
)

// FieldTunable exposes a field's spawn parameters to the HUD.
type FieldTunable struct {
	Field *snow.Field
}

var _ core.Tunable = FieldTunable{}

var fieldControls = []core.ParameterControl{
	{Key: "snow_count", Label: "Snow count", Step: 10, Min: 0, Max: 2000},
	{Key: "min_amplitude", Label: "Amplitude min %", Step: 1, Min: 1, Max: 100},
	{Key: "max_amplitude", Label: "Amplitude max %", Step: 1, Min: 1, Max: 100},
	{Key: "min_speed", Label: "Speed min", Step: 1, Min: 1, Max: 60},
	{Key: "max_speed", Label: "Speed max", Step: 1, Min: 1, Max: 60},
	{Key: "min_size", Label: "Size min", Step: 1, Min: 1, Max: 120},
	{Key: "max_size", Label: "Size max", Step: 1, Min: 1, Max: 120},
}

// Title names the HUD panel.
func (t FieldTunable) Title() string { return "Snow" }

// Parameters reports the spawn ranges and the viewport.
func (t FieldTunable) Parameters() core.ParameterSnapshot {
	p := t.Field.Params()
	w, h := t.Field.Bounds()
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{Name: "Viewport", Params: []core.Parameter{
			{Key: "width", Label: "Width", Value: w},
			{Key: "height", Label: "Height", Value: h},
		}},
		{Name: "Population", Params: []core.Parameter{
			{Key: "snow_count", Label: "Snow count", Value: p.Count},
			{Key: "particles", Label: "Particles", Value: len(t.Field.Particles())},
		}},
		{Name: "Ranges", Params: []core.Parameter{
			{Key: "min_amplitude", Label: "Amplitude min %", Value: p.Amplitude.Min},
			{Key: "max_amplitude", Label: "Amplitude max %", Value: p.Amplitude.Max},
			{Key: "min_speed", Label: "Speed min", Value: p.Speed.Min},
			{Key: "max_speed", Label: "Speed max", Value: p.Speed.Max},
			{Key: "min_size", Label: "Size min", Value: p.Size.Min},
			{Key: "max_size", Label: "Size max", Value: p.Size.Max},
		}},
	}}
}

// ParameterControls lists the HUD-adjustable keys.
func (t FieldTunable) ParameterControls() []core.ParameterControl {
	return fieldControls
}

// SetParameter applies one key and respawns the field. Moving one end of a
// range past the other drags the other end along.
func (t FieldTunable) SetParameter(key string, value int) error {
	p, ok := t.Field.Params().WithInt(key, value)
	if !ok {
		return fmt.Errorf("unknown parameter %q", key)
	}
	p.Amplitude = follow(p.Amplitude, key)
	p.Speed = follow(p.Speed, key)
	p.Size = follow(p.Size, key)
	return t.Field.SetParams(p)
}

func follow(r snow.Range, key string) snow.Range {
	if r.Min <= r.Max {
		return r
	}
	if strings.HasPrefix(key, "min_") {
		r.Max = r.Min
	} else {
		r.Min = r.Max
	}
	return r
}

// Status is a one-line summary of the field state and drain progress.
func Status(f *snow.Field) string {
	st := f.Stats()
	line := fmt.Sprintf("%s  particles=%d", st.State, st.Particles)
	if st.State == snow.FieldDraining {
		line += fmt.Sprintf("  drained %d/%d", st.Arrived, st.Expected)
	}
	return line
}
