// Package config holds the parameters of a generated level and simulation run.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Flicker noise sources for the player's torch.
const (
	FlickerSimplex     = "simplex"
	FlickerOpenSimplex = "opensimplex"
)

// SeedEnv overrides the seed when set and the -seed flag is left at 0.
const SeedEnv = "ROGUEKERNEL_SEED"

var (
	// ErrInvalidSize is returned for map dimensions too small to hold a level.
	ErrInvalidSize = errors.New("invalid map size")
	// ErrInvalidBSP is returned for unusable partition parameters.
	ErrInvalidBSP = errors.New("invalid BSP parameters")
	// ErrInvalidSimulation is returned for negative actor or turn counts.
	ErrInvalidSimulation = errors.New("invalid simulation parameters")
)

// Config drives level generation and the demo simulation.
type Config struct {
	// Seed is the master seed; 0 means pick one at random.
	Seed uint32

	Width  int
	Height int

	// BSP partitioning.
	Depth    int
	MinSize  int
	MaxRatio float64

	// Field of view.
	FOVRadius  int
	LightWalls bool
	// Flicker selects the noise behind the torch radius; empty means simplex.
	Flicker string

	// Simulation.
	Monsters int
	Turns    int
	// Delay between rendered passes; 0 renders only the final frame.
	Delay time.Duration

	// Locale for user-facing strings; empty LocaleDir keeps the built-in keys.
	LocaleDir string
	Language  string
}

// Default returns the configuration used when no flags are given.
func Default() Config {
	return Config{
		Width:      80,
		Height:     40,
		Depth:      8,
		MinSize:    6,
		MaxRatio:   1.5,
		FOVRadius:  8,
		LightWalls: true,
		Flicker:    FlickerSimplex,
		Monsters:   6,
		Turns:      20,
		Language:   "en_GB",
	}
}

// RegisterFlags binds the configuration fields to command line flags.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.Func("seed", "master seed (0 for random)", func(s string) error {
		v, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return fmt.Errorf("parse seed: %w", err)
		}
		c.Seed = uint32(v)
		return nil
	})
	fs.IntVar(&c.Width, "width", c.Width, "map width")
	fs.IntVar(&c.Height, "height", c.Height, "map height")
	fs.IntVar(&c.Depth, "depth", c.Depth, "BSP recursion depth")
	fs.IntVar(&c.MinSize, "min-size", c.MinSize, "minimum BSP node side")
	fs.Float64Var(&c.MaxRatio, "max-ratio", c.MaxRatio, "maximum side ratio before a forced split (0 disables)")
	fs.IntVar(&c.FOVRadius, "radius", c.FOVRadius, "field of view radius (0 for unlimited)")
	fs.BoolVar(&c.LightWalls, "light-walls", c.LightWalls, "include walls in the field of view")
	fs.StringVar(&c.Flicker, "flicker", c.Flicker, "torch flicker noise: simplex or opensimplex")
	fs.IntVar(&c.Monsters, "monsters", c.Monsters, "number of wandering monsters")
	fs.IntVar(&c.Turns, "turns", c.Turns, "scheduler passes to simulate")
	fs.DurationVar(&c.Delay, "delay", c.Delay, "pause between rendered passes (0 renders the last one only)")
	fs.StringVar(&c.LocaleDir, "locales", c.LocaleDir, "directory with gettext locales")
	fs.StringVar(&c.Language, "lang", c.Language, "locale language")
}

// ApplyEnv fills Seed from SeedEnv if no seed was given.
func (c *Config) ApplyEnv() error {
	if c.Seed != 0 {
		return nil
	}
	s, ok := os.LookupEnv(SeedEnv)
	if !ok || s == "" {
		return nil
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return fmt.Errorf("parse %s: %w", SeedEnv, err)
	}
	c.Seed = uint32(v)
	return nil
}

// Validate checks that the configuration can produce a level.
func (c Config) Validate() error {
	if c.Width < 3 || c.Height < 3 {
		return fmt.Errorf("%w: %dx%d, need at least 3x3", ErrInvalidSize, c.Width, c.Height)
	}
	if c.Depth < 0 {
		return fmt.Errorf("%w: depth %d", ErrInvalidBSP, c.Depth)
	}
	if c.MinSize < 3 {
		return fmt.Errorf("%w: min size %d, need at least 3 for a room with walls", ErrInvalidBSP, c.MinSize)
	}
	if c.MaxRatio < 0 {
		return fmt.Errorf("%w: max ratio %v", ErrInvalidBSP, c.MaxRatio)
	}
	if c.Monsters < 0 || c.Turns < 0 || c.Delay < 0 {
		return fmt.Errorf("%w: monsters %d, turns %d, delay %v", ErrInvalidSimulation, c.Monsters, c.Turns, c.Delay)
	}
	switch c.Flicker {
	case "", FlickerSimplex, FlickerOpenSimplex:
	default:
		return fmt.Errorf("%w: unknown flicker noise %q", ErrInvalidSimulation, c.Flicker)
	}
	return nil
}
