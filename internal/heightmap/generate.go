package heightmap

import (
	"github.com/chewxy/math32"

	"level-editor/internal/noise"
)

// Preset names a generator parameterization. All presets run the same fractal noise
// generator with different scale/octaves/persistence/height; valley additionally blends
// in a radial falloff that lowers the center of the terrain relative to the noise.
type Preset string

const (
	PresetFlat      Preset = "flat"
	PresetHills     Preset = "hills"
	PresetMountains Preset = "mountains"
	PresetValley    Preset = "valley"
)

// Config controls terrain generation. Zero Segments, Scale, Octaves, and Persistence
// are replaced with the hills preset defaults. MaxHeight is taken as given: zero is a
// legitimate flat terrain, only negatives are clamped to zero.
type Config struct {
	Segments    int     `yaml:"segments"`
	Seed        int64   `yaml:"seed"`
	MaxHeight   float32 `yaml:"maxHeight"`
	Scale       float32 `yaml:"scale"`
	Octaves     int     `yaml:"octaves"`
	Persistence float32 `yaml:"persistence"`
	// SmoothPasses runs Smooth over the generated grid. Valley and mountains presets
	// use a pass to round off noise spikes.
	SmoothPasses int `yaml:"smoothPasses"`
	// ValleyDepth scales the radial center lowering; only used when > 0.
	ValleyDepth float32 `yaml:"valleyDepth"`
}

// PresetConfig returns the generation parameters for a named preset at the given
// segment count and seed. Unknown presets fall back to hills.
func PresetConfig(p Preset, segments int, seed int64) Config {
	c := Config{Segments: segments, Seed: seed}
	switch p {
	case PresetFlat:
		c.MaxHeight = 0
		c.Scale = 1
		c.Octaves = 1
		c.Persistence = 0.5
	case PresetMountains:
		c.MaxHeight = 24
		c.Scale = 40
		c.Octaves = 6
		c.Persistence = 0.55
		c.SmoothPasses = 1
	case PresetValley:
		c.MaxHeight = 14
		c.Scale = 55
		c.Octaves = 4
		c.Persistence = 0.5
		c.SmoothPasses = 1
		c.ValleyDepth = 10
	case PresetHills:
		fallthrough
	default:
		c.MaxHeight = 8
		c.Scale = 50
		c.Octaves = 4
		c.Persistence = 0.5
	}
	return c
}

// Generate fills a Segments×Segments grid with fractal noise sampled at each grid
// coordinate, mapped from [-1,1] to [0, MaxHeight], then optionally smoothed. The same
// Config always yields the same grid (the noise generator is seed-deterministic).
func Generate(cfg Config) Grid {
	if cfg.Segments < 2 {
		cfg.Segments = 64
	}
	if cfg.Scale <= 0 {
		cfg.Scale = 50
	}
	if cfg.Octaves < 1 {
		cfg.Octaves = 4
	}
	if cfg.Persistence <= 0 {
		cfg.Persistence = 0.5
	}
	if cfg.MaxHeight < 0 {
		cfg.MaxHeight = 0
	}

	g := New(cfg.Segments)
	gen := noise.New(cfg.Seed)

	center := float32(cfg.Segments-1) / 2
	// Radius at which the valley falloff fades out: the inscribed circle of the grid.
	valleyRadius := center

	for z := 0; z < cfg.Segments; z++ {
		for x := 0; x < cfg.Segments; x++ {
			n := gen.Octave2D(float32(x), float32(z), cfg.Octaves, cfg.Persistence, cfg.Scale)
			h := (n + 1) / 2 * cfg.MaxHeight

			if cfg.ValleyDepth > 0 {
				dx := float32(x) - center
				dz := float32(z) - center
				d := math32.Sqrt(dx*dx+dz*dz) / valleyRadius
				if d > 1 {
					d = 1
				}
				// Center sits ValleyDepth below the rim; quadratic so the bowl is smooth.
				h -= cfg.ValleyDepth * (1 - d*d)
			}

			g.Heights[z*cfg.Segments+x] = h
		}
	}

	if cfg.ValleyDepth > 0 {
		// Lift the bowl back to non-negative ground so the lowest point is at 0.
		min, _ := g.MinMax()
		if min < 0 {
			for i := range g.Heights {
				g.Heights[i] -= min
			}
		}
	}

	if cfg.SmoothPasses > 0 {
		g = Smooth(g, cfg.SmoothPasses)
	}
	return g
}
