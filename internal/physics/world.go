package physics

// HeightFunc returns the terrain surface height at a world (x, z). The world treats
// the terrain as an immovable floor under every body.
type HeightFunc func(x, z float32) float32

// World holds a set of bodies and runs a simple preview-mode physics step: gravity,
// integration, terrain floor, AABB collision. It exists so the editor's play preview
// behaves like the runtime without exporting the level first.
type World struct {
	Gravity [3]float32
	Bodies  []*Body
	Ground  HeightFunc
}

// NewWorld returns a physics world with default gravity (0, -9.8, 0) and no terrain.
func NewWorld() *World {
	return &World{
		Gravity: [3]float32{0, -9.8, 0},
	}
}

// SetGround sets the terrain height function bodies rest on. A nil function means no
// floor and dynamic bodies fall until they hit a static body.
func (w *World) SetGround(ground HeightFunc) {
	w.Ground = ground
}

// AddBody appends a body to the world. Order is preserved for syncing with scene objects.
func (w *World) AddBody(b *Body) {
	w.Bodies = append(w.Bodies, b)
}

// BodyFor returns the body for an object ID, or nil.
func (w *World) BodyFor(objectID string) *Body {
	for _, b := range w.Bodies {
		if b.ObjectID == objectID {
			return b
		}
	}
	return nil
}

// penetrationAxis returns the overlap amount and axis index (0=X, 1=Y, 2=Z) for the
// minimum penetration. If no overlap, returns (0, -1).
func penetrationAxis(a, b aabb) (depth float32, axis int) {
	axis = -1
	for i := 0; i < 3; i++ {
		overlap := min(a.max[i], b.max[i]) - max(a.min[i], b.min[i])
		if overlap <= 0 {
			return 0, -1
		}
		if axis < 0 || overlap < depth {
			depth = overlap
			axis = i
		}
	}
	return depth, axis
}

// Step advances the simulation by dt seconds: apply gravity, integrate, clamp to the
// terrain floor, then resolve AABB collisions pairwise along the minimum penetration
// axis. Static bodies never move.
func (w *World) Step(dt float32) {
	for _, b := range w.Bodies {
		if b.Static {
			continue
		}
		b.Velocity[0] += w.Gravity[0] * dt
		b.Velocity[1] += w.Gravity[1] * dt
		b.Velocity[2] += w.Gravity[2] * dt
		b.Position[0] += b.Velocity[0] * dt
		b.Position[1] += b.Velocity[1] * dt
		b.Position[2] += b.Velocity[2] * dt

		if w.Ground != nil {
			floor := w.Ground(b.Position[0], b.Position[2]) + b.HalfExtents[1]
			if b.Position[1] < floor {
				b.Position[1] = floor
				if b.Velocity[1] < 0 {
					b.Velocity[1] = 0
				}
			}
		}
	}

	for i := 0; i < len(w.Bodies); i++ {
		bi := w.Bodies[i]
		boxI := bi.box()
		for j := i + 1; j < len(w.Bodies); j++ {
			bj := w.Bodies[j]
			if bi.Static && bj.Static {
				continue
			}
			depth, axis := penetrationAxis(boxI, bj.box())
			if axis < 0 {
				continue
			}
			// Push apart along the axis, mass-weighted. Static doesn't move.
			totalMass := bi.Mass + bj.Mass
			var moveI, moveJ float32
			if bi.Static {
				moveI = 0
				moveJ = depth
			} else if bj.Static {
				moveI = -depth
				moveJ = 0
			} else {
				moveI = -depth * (bj.Mass / totalMass)
				moveJ = depth * (bi.Mass / totalMass)
			}
			if bi.Position[axis] > bj.Position[axis] {
				moveI, moveJ = -moveI, -moveJ
			}
			bi.Position[axis] += moveI
			bj.Position[axis] += moveJ
			if !bi.Static {
				bi.Velocity[axis] = 0
			}
			if !bj.Static {
				bj.Velocity[axis] = 0
			}
			boxI = bi.box() // update for next pair
		}
	}
}
