package heightmap

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Grid is a square heightmap: a flat slice of elevation samples, Segments per side,
// covering a square terrain of some world size centered at the origin. The invariant
// len(Heights) == Segments*Segments always holds for grids produced by this package;
// operations panic on malformed input because a length mismatch is a programming error
// that would silently desync editor and runtime height sampling.
type Grid struct {
	Heights  []float32
	Segments int
}

// New returns a zero-filled grid with the given number of segments per side.
func New(segments int) Grid {
	if segments < 2 {
		segments = 2
	}
	return Grid{
		Heights:  make([]float32, segments*segments),
		Segments: segments,
	}
}

// IsEmpty reports whether the grid has no samples. Sampling an empty grid returns 0,
// so terrain degrades gracefully to flat ground.
func (g Grid) IsEmpty() bool {
	return len(g.Heights) == 0 || g.Segments <= 0
}

// mustBeWellFormed panics when the sample count does not match Segments².
func (g Grid) mustBeWellFormed() {
	if len(g.Heights) != g.Segments*g.Segments {
		panic(fmt.Sprintf("heightmap: %d samples for %d segments (want %d)",
			len(g.Heights), g.Segments, g.Segments*g.Segments))
	}
}

// clone returns a copy of the grid with its own backing slice.
func (g Grid) clone() Grid {
	out := Grid{Heights: make([]float32, len(g.Heights)), Segments: g.Segments}
	copy(out.Heights, g.Heights)
	return out
}

// at returns the stored sample at integer grid coordinates. No bounds checks; callers clamp.
func (g Grid) at(x, z int) float32 {
	return g.Heights[z*g.Segments+x]
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SampleBilinear returns the bilinearly interpolated height at grid-space coordinates
// (x, z), clamped to [0, Segments-1]. At exact integer coordinates it returns the stored
// sample with no interpolation error, and it is continuous everywhere in between, with no
// seams across cell boundaries.
func (g Grid) SampleBilinear(x, z float32) float32 {
	if g.IsEmpty() {
		return 0
	}
	g.mustBeWellFormed()

	maxIdx := float32(g.Segments - 1)
	x = clampf(x, 0, maxIdx)
	z = clampf(z, 0, maxIdx)

	x0 := int(math32.Floor(x))
	z0 := int(math32.Floor(z))
	x1 := x0 + 1
	z1 := z0 + 1
	if x1 > g.Segments-1 {
		x1 = g.Segments - 1
	}
	if z1 > g.Segments-1 {
		z1 = g.Segments - 1
	}

	tx := x - float32(x0)
	tz := z - float32(z0)

	h00 := g.at(x0, z0)
	h10 := g.at(x1, z0)
	h01 := g.at(x0, z1)
	h11 := g.at(x1, z1)

	top := h00 + (h10-h00)*tx
	bottom := h01 + (h11-h01)*tx
	return top + (bottom-top)*tz
}

// SampleWorld returns the terrain height at world coordinates (worldX, worldZ) for a
// terrain of side terrainSize centered at the origin. World coordinates map to grid
// space as ((world + terrainSize/2) / terrainSize) * (Segments-1). Empty grids sample
// as flat ground at height 0.
func (g Grid) SampleWorld(terrainSize, worldX, worldZ float32) float32 {
	if g.IsEmpty() || terrainSize <= 0 {
		return 0
	}
	gx := ((worldX + terrainSize/2) / terrainSize) * float32(g.Segments-1)
	gz := ((worldZ + terrainSize/2) / terrainSize) * float32(g.Segments-1)
	return g.SampleBilinear(gx, gz)
}

// MinMax returns the lowest and highest sample in the grid. Empty grids return (0, 0).
func (g Grid) MinMax() (min, max float32) {
	if g.IsEmpty() {
		return 0, 0
	}
	min = g.Heights[0]
	max = g.Heights[0]
	for _, h := range g.Heights {
		if h < min {
			min = h
		}
		if h > max {
			max = h
		}
	}
	return min, max
}
