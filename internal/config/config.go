// Package config loads the YAML configuration shared by the winter hosts.
package config

import (
	_ "embed"
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"winter/pkg/snow"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds every host-level setting.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	TPS      int            `yaml:"tps"`
	Seed     int64          `yaml:"seed"`
	Sprite   string         `yaml:"sprite"`
	Verbose  bool           `yaml:"verbose"`
	Snow     snow.Params    `yaml:"snow"`
	Terminal TerminalConfig `yaml:"terminal"`
	Trace    TraceConfig    `yaml:"trace"`
}

// WindowConfig holds the initial window of the GUI host.
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// TerminalConfig maps terminal cells onto a virtual pixel viewport and
// overrides the spawn ranges that only make sense at pixel scale.
type TerminalConfig struct {
	CellWidth  int        `yaml:"cell_width"`
	CellHeight int        `yaml:"cell_height"`
	Count      int        `yaml:"count"`
	Size       snow.Range `yaml:"size"`
	Speed      snow.Range `yaml:"speed"`
}

// TraceConfig drives the headless sweep.
type TraceConfig struct {
	Seeds      int    `yaml:"seeds"`
	WarmFrames int    `yaml:"warm_frames"`
	MaxFrames  int    `yaml:"max_frames"`
	Workers    int    `yaml:"workers"` // 0 means one per CPU
	Out        string `yaml:"out"`
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load reads path over the embedded defaults and validates the result. An
// empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks host settings and both snow parameter sets.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.TPS <= 0 {
		return fmt.Errorf("tps %d must be positive", c.TPS)
	}
	if c.Terminal.CellWidth <= 0 || c.Terminal.CellHeight <= 0 {
		return fmt.Errorf("terminal cell %dx%d must be positive", c.Terminal.CellWidth, c.Terminal.CellHeight)
	}
	if c.Trace.Seeds < 0 || c.Trace.WarmFrames < 0 || c.Trace.MaxFrames <= 0 || c.Trace.Workers < 0 {
		return fmt.Errorf("trace settings out of range: %+v", c.Trace)
	}
	if err := c.Snow.Validate(); err != nil {
		return err
	}
	if err := c.TerminalParams().Validate(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	return nil
}

// TerminalParams returns the snow params with the terminal overrides applied.
func (c *Config) TerminalParams() snow.Params {
	p := c.Snow
	if c.Terminal.Count > 0 {
		p.Count = c.Terminal.Count
	}
	if c.Terminal.Size != (snow.Range{}) {
		p.Size = c.Terminal.Size
	}
	if c.Terminal.Speed != (snow.Range{}) {
		p.Speed = c.Terminal.Speed
	}
	return p
}

// Overrides are command-line values applied on top of the loaded file.
type Overrides struct {
	Path    string
	Seed    int64
	TPS     int
	Count   int
	Sprite  string
	Resize  string
	Verbose bool
}

// Bind attaches the overrides to the provided FlagSet.
func (o *Overrides) Bind(fs *flag.FlagSet) {
	fs.StringVar(&o.Path, "config", "", "YAML config file layered over the defaults")
	fs.Int64Var(&o.Seed, "seed", 42, "seed for particle randomization")
	fs.IntVar(&o.TPS, "tps", 60, "frames per second")
	fs.IntVar(&o.Count, "count", 100, "number of particles")
	fs.StringVar(&o.Sprite, "sprite", "", "sprite image (png, jpeg, gif, bmp, webp)")
	fs.StringVar(&o.Resize, "resize", "replace", "resize policy: replace or append")
	fs.BoolVar(&o.Verbose, "v", false, "log field lifecycle events")
}

// Resolve loads the config file named by -config and applies only the flags
// that were set explicitly on fs.
func (o *Overrides) Resolve(fs *flag.FlagSet) (*Config, error) {
	cfg, err := Load(o.Path)
	if err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			cfg.Seed = o.Seed
		case "tps":
			cfg.TPS = o.TPS
		case "count":
			cfg.Snow.Count = o.Count
			cfg.Terminal.Count = o.Count
		case "sprite":
			cfg.Sprite = o.Sprite
		case "resize":
			cfg.Snow.Resize = snow.ResizePolicy(o.Resize)
		case "v":
			cfg.Verbose = o.Verbose
		}
	})
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}
