package heightmap

import (
	"github.com/chewxy/math32"
)

// FalloffFunc maps (distance, radius) to a weight in [0,1] for brush edits.
type FalloffFunc func(distance, radius float32) float32

// QuadraticFalloff is the default brush falloff: 1 - (d/r)², smooth to zero at the
// boundary so edits never leave a visible rim.
func QuadraticFalloff(distance, radius float32) float32 {
	if radius <= 0 || distance >= radius {
		return 0
	}
	t := distance / radius
	return 1 - t*t
}

// ModifyRegion adds intensity*falloff(distance, radius) to every grid cell within
// radius world-units of (centerX, centerZ) on a terrain of side terrainSize. A nil
// falloff uses QuadraticFalloff. Returns a new grid of the same length; the input is
// never mutated, so callers can retain the previous grid for undo.
func ModifyRegion(g Grid, centerX, centerZ, radius, intensity, terrainSize float32, falloff FalloffFunc) Grid {
	if g.IsEmpty() || radius <= 0 || terrainSize <= 0 {
		return g.clone()
	}
	g.mustBeWellFormed()
	if falloff == nil {
		falloff = QuadraticFalloff
	}

	out := g.clone()
	cellSize := terrainSize / float32(g.Segments-1)
	half := terrainSize / 2

	// Only visit cells inside the brush's bounding square.
	minX := int(math32.Floor((centerX - radius + half) / cellSize))
	maxX := int(math32.Ceil((centerX + radius + half) / cellSize))
	minZ := int(math32.Floor((centerZ - radius + half) / cellSize))
	maxZ := int(math32.Ceil((centerZ + radius + half) / cellSize))
	minX = clampi(minX, 0, g.Segments-1)
	maxX = clampi(maxX, 0, g.Segments-1)
	minZ = clampi(minZ, 0, g.Segments-1)
	maxZ = clampi(maxZ, 0, g.Segments-1)

	for z := minZ; z <= maxZ; z++ {
		wz := float32(z)*cellSize - half
		for x := minX; x <= maxX; x++ {
			wx := float32(x)*cellSize - half
			dx := wx - centerX
			dz := wz - centerZ
			d := math32.Sqrt(dx*dx + dz*dz)
			if d >= radius {
				continue
			}
			out.Heights[z*g.Segments+x] += intensity * falloff(d, radius)
		}
	}
	return out
}

// FlattenRegion moves every cell within radius of the brush center toward target
// height, weighted by the falloff (full strength at the center, zero at the rim).
// strength in [0,1] scales how far one application moves the cells.
func FlattenRegion(g Grid, centerX, centerZ, radius, target, strength, terrainSize float32) Grid {
	if g.IsEmpty() || radius <= 0 || terrainSize <= 0 {
		return g.clone()
	}
	g.mustBeWellFormed()
	strength = clampf(strength, 0, 1)

	out := g.clone()
	cellSize := terrainSize / float32(g.Segments-1)
	half := terrainSize / 2
	for z := 0; z < g.Segments; z++ {
		wz := float32(z)*cellSize - half
		for x := 0; x < g.Segments; x++ {
			wx := float32(x)*cellSize - half
			dx := wx - centerX
			dz := wz - centerZ
			d := math32.Sqrt(dx*dx + dz*dz)
			if d >= radius {
				continue
			}
			i := z*g.Segments + x
			w := QuadraticFalloff(d, radius) * strength
			out.Heights[i] += (target - out.Heights[i]) * w
		}
	}
	return out
}

// SmoothRegion blurs cells within radius of the brush center toward their 3×3
// neighborhood average, weighted by the falloff. Border cells are left unmodified,
// matching Smooth.
func SmoothRegion(g Grid, centerX, centerZ, radius, strength, terrainSize float32) Grid {
	if g.IsEmpty() || radius <= 0 || terrainSize <= 0 {
		return g.clone()
	}
	g.mustBeWellFormed()
	strength = clampf(strength, 0, 1)

	out := g.clone()
	cellSize := terrainSize / float32(g.Segments-1)
	half := terrainSize / 2
	for z := 1; z < g.Segments-1; z++ {
		wz := float32(z)*cellSize - half
		for x := 1; x < g.Segments-1; x++ {
			wx := float32(x)*cellSize - half
			dx := wx - centerX
			dz := wz - centerZ
			d := math32.Sqrt(dx*dx + dz*dz)
			if d >= radius {
				continue
			}
			avg := neighborhoodAverage(g, x, z)
			i := z*g.Segments + x
			w := QuadraticFalloff(d, radius) * strength
			out.Heights[i] += (avg - out.Heights[i]) * w
		}
	}
	return out
}

// neighborhoodAverage is the 3×3 weighted average used by smoothing: center weight 4,
// the 8 neighbors weight 1, divisor 12.
func neighborhoodAverage(g Grid, x, z int) float32 {
	sum := g.at(x, z) * 4
	sum += g.at(x-1, z-1) + g.at(x, z-1) + g.at(x+1, z-1)
	sum += g.at(x-1, z) + g.at(x+1, z)
	sum += g.at(x-1, z+1) + g.at(x, z+1) + g.at(x+1, z+1)
	return sum / 12
}

// Smooth runs iterations passes of a 3×3 weighted-average blur (center 4, neighbors 1,
// divisor 12) and returns a new grid. Edge cells (row/column 0 and Segments-1) are
// left unmodified each pass: the border anchors the terrain rim so repeated smoothing
// cannot pull the edges of the map downward.
func Smooth(g Grid, iterations int) Grid {
	if g.IsEmpty() || iterations < 1 {
		return g.clone()
	}
	g.mustBeWellFormed()

	cur := g.clone()
	for it := 0; it < iterations; it++ {
		next := cur.clone()
		for z := 1; z < cur.Segments-1; z++ {
			for x := 1; x < cur.Segments-1; x++ {
				next.Heights[z*cur.Segments+x] = neighborhoodAverage(cur, x, z)
			}
		}
		cur = next
	}
	return cur
}

// Normalize linearly rescales the grid's current [min,max] to [minHeight,maxHeight]
// and returns a new grid. A flat grid (zero range) fills with the midpoint of the
// target range.
func Normalize(g Grid, minHeight, maxHeight float32) Grid {
	if g.IsEmpty() {
		return g.clone()
	}
	g.mustBeWellFormed()

	out := g.clone()
	lo, hi := g.MinMax()
	span := hi - lo
	if span == 0 {
		mid := (minHeight + maxHeight) / 2
		for i := range out.Heights {
			out.Heights[i] = mid
		}
		return out
	}
	scale := (maxHeight - minHeight) / span
	for i, h := range out.Heights {
		out.Heights[i] = minHeight + (h-lo)*scale
	}
	return out
}

func clampi(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
