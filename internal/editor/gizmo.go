package editor

import (
	"github.com/chewxy/math32"

	"level-editor/internal/scene"
)

// Axis-handle gizmo math: picking an axis under the pointer ray and converting
// subsequent pointer rays into a signed scalar delta along that axis. The math is
// plain vector algebra so it needs no window and no GPU.

// Axis indexes X/Y/Z.
type Axis int

const (
	AxisNone Axis = -1
	AxisX    Axis = 0
	AxisY    Axis = 1
	AxisZ    Axis = 2
)

// GizmoLength is the world-space length of each axis handle; the renderer draws the
// handles at the same length the picking math uses.
const GizmoLength = float32(2.0)

const gizmoHitDist = float32(0.3)

var axisDirs = [3][3]float32{
	{1, 0, 0},
	{0, 1, 0},
	{0, 0, 1},
}

func v3Add(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func v3Sub(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func v3Scale(a [3]float32, s float32) [3]float32 {
	return [3]float32{a[0] * s, a[1] * s, a[2] * s}
}

func v3Dot(a, b [3]float32) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func v3Cross(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func v3Len(a [3]float32) float32 {
	return math32.Sqrt(v3Dot(a, a))
}

func v3Norm(a [3]float32) [3]float32 {
	l := v3Len(a)
	if l == 0 {
		return a
	}
	return v3Scale(a, 1/l)
}

// rayPlaneIntersect returns the intersection point of a ray with the plane through
// planePoint with the given normal, and whether the ray actually crosses it.
func rayPlaneIntersect(r scene.Ray, planePoint, normal [3]float32) ([3]float32, bool) {
	denom := v3Dot(r.Direction, normal)
	if math32.Abs(denom) < 1e-6 {
		return [3]float32{}, false
	}
	t := v3Dot(v3Sub(planePoint, r.Origin), normal) / denom
	if t < 0 {
		return [3]float32{}, false
	}
	return v3Add(r.Origin, v3Scale(r.Direction, t)), true
}

// closestBetweenRays returns, for two rays, the parameters along each at their
// closest approach and the distance between those points.
func closestBetweenRays(o1, d1, o2, d2 [3]float32) (t1, t2, dist float32) {
	r := v3Sub(o1, o2)
	a := v3Dot(d1, d1)
	b := v3Dot(d1, d2)
	c := v3Dot(d2, d2)
	d := v3Dot(d1, r)
	e := v3Dot(d2, r)
	denom := a*c - b*b
	if math32.Abs(denom) < 1e-6 {
		// Parallel: distance from o2 to the first ray's line.
		t1 = 0
		t2 = e / c
	} else {
		t1 = (b*e - c*d) / denom
		t2 = (a*e - b*d) / denom
	}
	p1 := v3Add(o1, v3Scale(d1, t1))
	p2 := v3Add(o2, v3Scale(d2, t2))
	return t1, t2, v3Len(v3Sub(p1, p2))
}

// PickGizmoAxis returns the gizmo axis handle nearest the pointer ray at the given
// gizmo center, or AxisNone when no handle is within grabbing distance.
func PickGizmoAxis(ray scene.Ray, center [3]float32) Axis {
	best := AxisNone
	bestDist := float32(math32.MaxFloat32)
	for i, dir := range axisDirs {
		_, t2, dist := closestBetweenRays(ray.Origin, ray.Direction, center, dir)
		if t2 > 0 && t2 < GizmoLength && dist < gizmoHitDist && dist < bestDist {
			bestDist = dist
			best = Axis(i)
		}
	}
	return best
}

// GizmoDrag converts pointer rays into a scalar offset along one gizmo axis for the
// duration of a drag. The drag plane contains the axis and faces the camera as much
// as possible, which keeps the projection stable for any viewing angle.
type GizmoDrag struct {
	axis        Axis
	center      [3]float32
	planeNormal [3]float32
	startT      float32
}

// BeginGizmoDrag sets up the drag plane for an axis drag starting at the given
// pointer ray, with the camera at camPos.
func BeginGizmoDrag(axis Axis, center [3]float32, ray scene.Ray, camPos [3]float32) *GizmoDrag {
	dir := axisDirs[axis]
	view := v3Norm(v3Sub(center, camPos))
	side := v3Cross(view, dir)
	normal := v3Norm(v3Cross(dir, side))

	g := &GizmoDrag{axis: axis, center: center, planeNormal: normal}
	if pt, ok := rayPlaneIntersect(ray, center, normal); ok {
		g.startT = v3Dot(v3Sub(pt, center), dir)
	}
	return g
}

// Axis returns the axis being dragged.
func (g *GizmoDrag) Axis() Axis { return g.axis }

// Delta returns the signed world-space offset along the drag axis for the current
// pointer ray, relative to where the drag started. Rays that miss the drag plane
// (grazing angles) report no movement.
func (g *GizmoDrag) Delta(ray scene.Ray) float32 {
	pt, ok := rayPlaneIntersect(ray, g.center, g.planeNormal)
	if !ok {
		return 0
	}
	return v3Dot(v3Sub(pt, g.center), axisDirs[g.axis]) - g.startT
}

// Translated returns start shifted by delta along the drag axis, the raw position a
// translate session's Update receives.
func (g *GizmoDrag) Translated(start [3]float32, delta float32) [3]float32 {
	return v3Add(start, v3Scale(axisDirs[g.axis], delta))
}

// degreesPerUnit maps one world unit of drag distance to degrees of rotation.
const degreesPerUnit = float32(45)

// Rotated returns start with delta mapped onto the drag axis as degrees, the raw
// rotation a rotate session's Update receives.
func (g *GizmoDrag) Rotated(start [3]float32, delta float32) [3]float32 {
	start[g.axis] += delta * degreesPerUnit
	return start
}

// scalePerUnit maps one world unit of drag distance to a scale factor change.
const scalePerUnit = float32(0.5)

// Scaled returns start with the drag axis component multiplied by a factor derived
// from delta (drag outward = bigger). The factor is floored so raw scale never goes
// non-positive before the session's own clamping.
func (g *GizmoDrag) Scaled(start [3]float32, delta float32) [3]float32 {
	factor := 1 + delta*scalePerUnit
	if factor < 0.01 {
		factor = 0.01
	}
	start[g.axis] *= factor
	return start
}
