package core

// Parameter is a single integer tunable shown on a HUD.
type Parameter struct {
	Key   string
	Label string
	Value int
}

// ParameterGroup clusters related parameters for presentation purposes.
type ParameterGroup struct {
	Name   string
	Params []Parameter
}

// ParameterSnapshot captures the current set of tunables.
type ParameterSnapshot struct {
	Groups []ParameterGroup
}

// Lookup finds a parameter by key across all groups.
func (s ParameterSnapshot) Lookup(key string) (Parameter, bool) {
	for _, g := range s.Groups {
		for _, p := range g.Params {
			if p.Key == key {
				return p, true
			}
		}
	}
	return Parameter{}, false
}

// ParameterControl describes an adjustable parameter with +/- buttons. Step
// defaults to 1 when zero.
type ParameterControl struct {
	Key   string
	Label string
	Step  int
	Min   int
	Max   int
}

// Clamp limits v to the control's bounds.
func (c ParameterControl) Clamp(v int) int {
	if v < c.Min {
		return c.Min
	}
	if v > c.Max {
		return c.Max
	}
	return v
}

// Tunable is implemented by anything a HUD can inspect and adjust.
type Tunable interface {
	Title() string
	Parameters() ParameterSnapshot
	ParameterControls() []ParameterControl
	SetParameter(key string, value int) error
}
