package scene

import (
	"sort"

	"github.com/chewxy/math32"
)

// Ray is a picking ray in world space. Direction need not be normalized; hit distances
// are reported in units of its length.
type Ray struct {
	Origin    [3]float32
	Direction [3]float32
}

// Hit is one ray/node intersection. Node is the struck node (possibly a child);
// ObjectID is the owning object resolved through parent links.
type Hit struct {
	Node     *Node
	ObjectID string
	Distance float32
}

// rayAABB is the slab-method ray/box intersection. Returns the entry distance and
// whether the ray hits. Rays starting inside the box hit at distance 0.
func rayAABB(r Ray, min, max [3]float32) (float32, bool) {
	tNear := float32(math32.Inf(-1))
	tFar := math32.Inf(1)
	for i := 0; i < 3; i++ {
		d := r.Direction[i]
		if d == 0 {
			if r.Origin[i] < min[i] || r.Origin[i] > max[i] {
				return 0, false
			}
			continue
		}
		t1 := (min[i] - r.Origin[i]) / d
		t2 := (max[i] - r.Origin[i]) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tNear {
			tNear = t1
		}
		if t2 < tFar {
			tFar = t2
		}
		if tNear > tFar || tFar < 0 {
			return 0, false
		}
	}
	if tNear < 0 {
		tNear = 0
	}
	return tNear, true
}

// Pick intersects the ray against every selectable annotated node in the scene and
// returns the hits ordered nearest-first. A miss returns an empty slice, not an
// error; "nothing was hit" is a normal outcome the selection logic branches on.
func (s *Scene) Pick(r Ray) []Hit {
	var hits []Hit
	s.walk(func(n *Node) {
		if !n.Selectable {
			return
		}
		owner := n.OwnerID()
		if owner == "" {
			return
		}
		min, max := n.bounds()
		if d, ok := rayAABB(r, min, max); ok {
			hits = append(hits, Hit{Node: n, ObjectID: owner, Distance: d})
		}
	})
	sort.Slice(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	return hits
}
