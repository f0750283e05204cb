// Package collider derives collision shape parameters from an object's collider type
// and scale vector. The same Descriptor feeds both the editor's wireframe drawing and
// the physics world, so the visual shape and the simulated shape are always the exact
// same size.
package collider

import (
	"github.com/chewxy/math32"
)

// Kind names a collider shape.
type Kind string

const (
	Box      Kind = "box"
	Cylinder Kind = "cylinder"
	Sphere   Kind = "sphere"
	Capsule  Kind = "capsule"
)

// Dimension clamp range. Physics engines misbehave on zero-size or enormous shapes;
// anything outside this range is clamped rather than rejected so a bad slider value
// renders as a minimal valid shape instead of crashing the editor.
const (
	MinDimension = float32(0.1)
	MaxDimension = float32(1000)
)

// Descriptor holds the resolved shape parameters for one collider.
//
// Box: Size is the full extent per axis; HalfExtents = Size/2 (physics convention).
// Sphere: Radius only.
// Cylinder/Capsule: Radius and HalfHeight. For capsules HalfHeight is the half-length
// of the cylindrical segment, excluding the end caps.
type Descriptor struct {
	Kind        Kind
	Size        [3]float32
	HalfExtents [3]float32
	Radius      float32
	HalfHeight  float32
}

// sanitize replaces NaN/Inf/non-positive components with 1 so degenerate input from a
// UI field or a corrupt level file never reaches the physics system, then clamps into
// the valid dimension range.
func sanitize(v float32) float32 {
	if math32.IsNaN(v) || math32.IsInf(v, 0) || v <= 0 {
		v = 1
	}
	if v < MinDimension {
		return MinDimension
	}
	if v > MaxDimension {
		return MaxDimension
	}
	return v
}

// BoundingHalfExtents returns the half extents of the axis-aligned box that encloses
// the shape. The physics broadphase works on these boxes regardless of kind.
func (d Descriptor) BoundingHalfExtents() [3]float32 {
	switch d.Kind {
	case Sphere:
		return [3]float32{d.Radius, d.Radius, d.Radius}
	case Cylinder:
		return [3]float32{d.Radius, d.HalfHeight, d.Radius}
	case Capsule:
		return [3]float32{d.Radius, d.HalfHeight + d.Radius, d.Radius}
	default:
		return d.HalfExtents
	}
}

// Shape maps a collider kind and scale vector to its Descriptor. Unknown kinds resolve
// as boxes. scale is interpreted as the full size of the shape's bounding box: for
// round shapes the radius is half of the larger horizontal extent and the height is
// the Y extent.
func Shape(kind Kind, scale [3]float32) Descriptor {
	sx := sanitize(scale[0])
	sy := sanitize(scale[1])
	sz := sanitize(scale[2])

	d := Descriptor{Kind: kind}
	switch kind {
	case Sphere:
		d.Radius = math32.Max(math32.Max(sx, sy), sz) / 2
	case Cylinder:
		d.Radius = math32.Max(sx, sz) / 2
		d.HalfHeight = sy / 2
	case Capsule:
		d.Radius = math32.Max(sx, sz) / 2
		// Capsule total height = cylinder segment + two hemispherical caps. If the
		// requested height is not taller than the caps alone, the cylinder segment
		// would be negative; collapse toward a sphere: shrink the radius to half the
		// height and keep a minimal segment.
		if sy <= d.Radius*2 {
			d.Radius = sy / 2
			d.HalfHeight = MinDimension / 2
		} else {
			d.HalfHeight = (sy - d.Radius*2) / 2
		}
		if d.Radius < MinDimension/2 {
			d.Radius = MinDimension / 2
		}
	case Box:
		fallthrough
	default:
		d.Kind = Box
		d.Size = [3]float32{sx, sy, sz}
		d.HalfExtents = [3]float32{sx / 2, sy / 2, sz / 2}
	}
	return d
}
