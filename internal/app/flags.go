package app

import (
	"flag"
	"strconv"

	"life-ca/internal/patterns"
)

// Config represents the command-line parameters for the application.
type Config struct {
	Sim      string
	Scale    int
	TPS      int
	GPS      int
	Seed     int64
	HUDWidth int

	Width   int
	Height  int
	Density float64
	Pattern string
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Sim:      "life",
		Scale:    3,
		TPS:      60,
		GPS:      10,
		Seed:     42,
		HUDWidth: 200,
		Width:    128,
		Height:   128,
		Density:  0.5,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "frames per second")
	fs.IntVar(&c.GPS, "gps", c.GPS, "generations per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "stats panel width in pixels (0 hides it)")
	fs.IntVar(&c.Width, "w", c.Width, "grid width in cells")
	fs.IntVar(&c.Height, "h", c.Height, "grid height in cells")
	fs.Float64Var(&c.Density, "density", c.Density, "initial live-cell probability for random soups")
	fs.StringVar(&c.Pattern, "pattern", c.Pattern, "built-in pattern to seed instead of a random soup")
}

// SimConfig renders the sim-specific settings as the key/value map sim
// factories accept.
func (c *Config) SimConfig() map[string]string {
	m := map[string]string{
		"w":       strconv.Itoa(c.Width),
		"h":       strconv.Itoa(c.Height),
		"density": strconv.FormatFloat(c.Density, 'g', -1, 64),
	}
	if c.Pattern != "" {
		m["pattern"] = c.Pattern
	}
	return m
}

// Validate reports settings the sim factory would otherwise quietly replace,
// such as a misspelled pattern name.
func (c *Config) Validate() error {
	if c.Pattern == "" {
		return nil
	}
	_, err := patterns.Lookup(c.Pattern)
	return err
}
