package noise

import (
	"github.com/chewxy/math32"
)

// permSize is the size of the permutation table. Doubled in the table so lattice
// lookups never need a modulo on the second index.
const permSize = 256

// Generator is deterministic 2D value noise seeded by a numeric seed. The same seed
// always produces the same permutation table, so terrain regenerated from a saved seed
// is identical between runs. Pure function of (seed, inputs); safe to share read-only.
type Generator struct {
	perm [permSize * 2]int32
}

// New returns a generator whose permutation table is derived from seed using a small
// xorshift-style PRNG (no dependency on math/rand ordering across Go versions).
func New(seed int64) *Generator {
	g := &Generator{}
	for i := int32(0); i < permSize; i++ {
		g.perm[i] = i
	}
	// Fisher-Yates driven by a splitmix64 stream of the seed.
	s := uint64(seed)
	if s == 0 {
		s = 0x9e3779b97f4a7c15
	}
	next := func() uint64 {
		s += 0x9e3779b97f4a7c15
		z := s
		z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
		z = (z ^ (z >> 27)) * 0x94d049bb133111eb
		return z ^ (z >> 31)
	}
	for i := permSize - 1; i > 0; i-- {
		j := int(next() % uint64(i+1))
		g.perm[i], g.perm[j] = g.perm[j], g.perm[i]
	}
	for i := 0; i < permSize; i++ {
		g.perm[permSize+i] = g.perm[i]
	}
	return g
}

// lattice returns a pseudo-random value in [-1,1] for integer lattice coordinates.
func (g *Generator) lattice(x, y int32) float32 {
	xi := x & (permSize - 1)
	yi := y & (permSize - 1)
	if xi < 0 {
		xi += permSize
	}
	if yi < 0 {
		yi += permSize
	}
	h := g.perm[g.perm[xi]+yi]
	return float32(h)/float32(permSize-1)*2 - 1
}

// fade is Perlin-style cubic easing: 3t^2 - 2t^3.
func fade(t float32) float32 {
	return t * t * (3 - 2*t)
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Noise2D returns smooth value noise in [-1,1] at the given coordinates.
// Continuous everywhere; exact lattice values at integer coordinates.
func (g *Generator) Noise2D(x, y float32) float32 {
	x0 := math32.Floor(x)
	y0 := math32.Floor(y)
	ix := int32(x0)
	iy := int32(y0)
	tx := fade(x - x0)
	ty := fade(y - y0)

	v00 := g.lattice(ix, iy)
	v10 := g.lattice(ix+1, iy)
	v01 := g.lattice(ix, iy+1)
	v11 := g.lattice(ix+1, iy+1)

	return lerp(lerp(v00, v10, tx), lerp(v01, v11, tx), ty)
}

// Octave2D sums octaves layers of Noise2D, each at double the previous frequency and
// persistence-scaled amplitude, normalized by total amplitude so the result stays in
// [-1,1] regardless of octave count. scale divides the input coordinates (larger scale
// = broader features). Degenerate parameters fall back to a single unit-scale octave.
func (g *Generator) Octave2D(x, y float32, octaves int, persistence, scale float32) float32 {
	if octaves < 1 {
		octaves = 1
	}
	if scale <= 0 {
		scale = 1
	}
	if persistence <= 0 {
		persistence = 0.5
	}

	var sum, amplitude, total float32
	amplitude = 1
	frequency := float32(1)
	for i := 0; i < octaves; i++ {
		sum += g.Noise2D(x/scale*frequency, y/scale*frequency) * amplitude
		total += amplitude
		amplitude *= persistence
		frequency *= 2
	}
	if total == 0 {
		return 0
	}
	return sum / total
}
