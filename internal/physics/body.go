package physics

import "level-editor/internal/collider"

// Body is a 3D rigid body with position, velocity, and an AABB derived from its
// collider shape. Static bodies (walls, trigger volumes placed in the editor) do not
// move and are not affected by gravity.
type Body struct {
	ObjectID    string
	Position    [3]float32
	Velocity    [3]float32
	HalfExtents [3]float32
	Mass        float32
	Static      bool
}

// NewBody returns a body with the given position and collider shape. Velocity is
// zero. mass is used for collision response; use 1 for default.
func NewBody(objectID string, position [3]float32, desc collider.Descriptor, mass float32, static bool) *Body {
	if mass <= 0 {
		mass = 1
	}
	return &Body{
		ObjectID:    objectID,
		Position:    position,
		HalfExtents: desc.BoundingHalfExtents(),
		Mass:        mass,
		Static:      static,
	}
}

// aabb is the body's box in world space.
type aabb struct {
	min, max [3]float32
}

func (b *Body) box() aabb {
	var r aabb
	for i := 0; i < 3; i++ {
		h := b.HalfExtents[i]
		if h == 0 {
			h = 0.5
		}
		r.min[i] = b.Position[i] - h
		r.max[i] = b.Position[i] + h
	}
	return r
}
