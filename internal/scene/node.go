// Package scene is the mutable 3D scene graph the editor manipulates: nodes carry the
// visual transform (which during a drag differs from the committed transform in the
// level store), an object-id annotation for hit-testing, and parent/child links.
package scene

// Node is one scene graph entry. Position/Scale are world-relative to the parent;
// RotationDeg is Euler degrees per axis. LocalSize is the node's untransformed bounding
// box extent, multiplied by Scale for picking.
type Node struct {
	Name string

	// ObjectID annotates which level object owns this node. Picking walks up parent
	// links until it finds a non-empty ObjectID, so child nodes (collider wireframes,
	// attachment points) resolve to their owning object.
	ObjectID   string
	Selectable bool

	Position    [3]float32
	RotationDeg [3]float32
	Scale       [3]float32
	LocalSize   [3]float32

	Parent   *Node
	Children []*Node
}

// NewNode returns a node with unit scale and a unit local bounding box.
func NewNode(name string) *Node {
	return &Node{
		Name:      name,
		Scale:     [3]float32{1, 1, 1},
		LocalSize: [3]float32{1, 1, 1},
	}
}

// AddChild links child under n. A child already parented elsewhere is re-parented.
func (n *Node) AddChild(child *Node) {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = n
	n.Children = append(n.Children, child)
}

// RemoveChild unlinks child from n. Unknown children are ignored.
func (n *Node) RemoveChild(child *Node) {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.Parent = nil
			return
		}
	}
}

// WorldPosition returns the node's position with all ancestor offsets applied.
func (n *Node) WorldPosition() [3]float32 {
	pos := n.Position
	for p := n.Parent; p != nil; p = p.Parent {
		pos[0] += p.Position[0]
		pos[1] += p.Position[1]
		pos[2] += p.Position[2]
	}
	return pos
}

// OwnerID walks up parent links until it finds a node annotated with an object ID.
// Returns "" when no ancestor is annotated.
func (n *Node) OwnerID() string {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.ObjectID != "" {
			return cur.ObjectID
		}
	}
	return ""
}

// bounds returns the node's world-space AABB (WorldPosition-centered, LocalSize
// stretched by Scale). Zero scale components are treated as 1 so a degenerate node
// still has a pickable volume.
func (n *Node) bounds() (min, max [3]float32) {
	pos := n.WorldPosition()
	for i := 0; i < 3; i++ {
		s := n.Scale[i]
		if s == 0 {
			s = 1
		}
		ext := n.LocalSize[i]
		if ext == 0 {
			ext = 1
		}
		half := s * ext / 2
		if half < 0 {
			half = -half
		}
		min[i] = pos[i] - half
		max[i] = pos[i] + half
	}
	return min, max
}
