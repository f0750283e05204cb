package scene

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	gridExtent     = 50
	gridMinorStep  = 1
	gridMajorStep  = 10
	gridMinorAlpha = 50
	gridMajorAlpha = 120
	axisLineAlpha  = 220
)

// Scene holds the editor's node graph and 3D camera. Nodes indexed by object ID give
// the per-frame sync step and the transform session O(1) access to an object's visual
// transform. Update runs camera logic; Draw renders between BeginMode3D and EndMode3D.
type Scene struct {
	Camera      rl.Camera3D
	GridVisible bool

	root    *Node
	byID    map[string]*Node
	// orbitEnabled gates camera input. Transform sessions disable it while dragging so
	// gizmo drags don't also orbit the camera.
	orbitEnabled bool
}

// New returns a scene with a perspective camera looking at the origin and an empty
// node graph. Camera: position (18,14,18), target (0,0,0), up (0,1,0), fovy 45°.
func New() *Scene {
	s := &Scene{
		root:         NewNode("root"),
		byID:         make(map[string]*Node),
		orbitEnabled: true,
	}
	s.Camera.Position = rl.NewVector3(18, 14, 18)
	s.Camera.Target = rl.NewVector3(0, 0, 0)
	s.Camera.Up = rl.NewVector3(0, 1, 0)
	s.Camera.Fovy = 45
	s.Camera.Projection = rl.CameraPerspective
	s.GridVisible = true
	return s
}

// Root returns the root node.
func (s *Scene) Root() *Node {
	return s.root
}

// Attach adds a node under the root and, when it carries an ObjectID, indexes it.
func (s *Scene) Attach(n *Node) {
	s.root.AddChild(n)
	if n.ObjectID != "" {
		s.byID[n.ObjectID] = n
	}
}

// Detach removes a node (by object ID) from the graph and the index.
func (s *Scene) Detach(objectID string) {
	n, ok := s.byID[objectID]
	if !ok {
		return
	}
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
	delete(s.byID, objectID)
}

// NodeFor returns the node registered for an object ID, or nil. A nil result means
// the node is not mounted yet; callers treat that as "not ready", not an error.
func (s *Scene) NodeFor(objectID string) *Node {
	return s.byID[objectID]
}

// walk visits every node in the graph, depth-first.
func (s *Scene) walk(fn func(*Node)) {
	var visit func(*Node)
	visit = func(n *Node) {
		fn(n)
		for _, c := range n.Children {
			visit(c)
		}
	}
	visit(s.root)
}

// SetOrbitEnabled gates camera orbit input. Disabled during transform drags.
func (s *Scene) SetOrbitEnabled(enabled bool) {
	s.orbitEnabled = enabled
}

// OrbitEnabled reports whether camera input is currently active.
func (s *Scene) OrbitEnabled() bool {
	return s.orbitEnabled
}

// SetGridVisible sets whether the editor grid is drawn.
func (s *Scene) SetGridVisible(visible bool) {
	s.GridVisible = visible
}

// ScreenRay converts a screen-space point into a world-space picking ray using the
// scene camera.
func (s *Scene) ScreenRay(x, y float32) Ray {
	r := rl.GetScreenToWorldRay(rl.NewVector2(x, y), s.Camera)
	return Ray{
		Origin:    [3]float32{r.Position.X, r.Position.Y, r.Position.Z},
		Direction: [3]float32{r.Direction.X, r.Direction.Y, r.Direction.Z},
	}
}

// Update runs once per frame: camera orbit/zoom when orbit input is enabled. The
// cursor stays visible; the editor is pointer-driven, unlike a captured-mouse game.
func (s *Scene) Update() {
	if s.orbitEnabled {
		rl.UpdateCamera(&s.Camera, rl.CameraThirdPerson)
	}
}

// BeginDraw3D enters 3D mode and draws the grid. Callers draw scene content, then
// EndDraw3D.
func (s *Scene) BeginDraw3D() {
	rl.BeginMode3D(s.Camera)
	if s.GridVisible {
		drawEditorGrid()
	}
}

// EndDraw3D leaves 3D mode.
func (s *Scene) EndDraw3D() {
	rl.EndMode3D()
}

// drawEditorGrid draws a grid on the XZ plane with major/minor lines and axis lines.
// Reuses start/end vectors to avoid per-frame allocations in the hot loop.
func drawEditorGrid() {
	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	major := rl.NewColor(160, 160, 160, gridMajorAlpha)
	axisX := rl.NewColor(220, 80, 80, axisLineAlpha)
	axisY := rl.NewColor(80, 220, 80, axisLineAlpha)
	axisZ := rl.NewColor(80, 80, 220, axisLineAlpha)

	var start, end rl.Vector3
	for x := -gridExtent; x <= gridExtent; x += gridMinorStep {
		c := major
		if x%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(x), 0, float32(-gridExtent)
		end.X, end.Y, end.Z = float32(x), 0, float32(gridExtent)
		rl.DrawLine3D(start, end, c)
	}
	for z := -gridExtent; z <= gridExtent; z += gridMinorStep {
		c := major
		if z%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(-gridExtent), 0, float32(z)
		end.X, end.Y, end.Z = float32(gridExtent), 0, float32(z)
		rl.DrawLine3D(start, end, c)
	}

	start.X, start.Y, start.Z = float32(-gridExtent), 0, 0
	end.X, end.Y, end.Z = float32(gridExtent), 0, 0
	rl.DrawLine3D(start, end, axisX)
	start.X, start.Y, start.Z = 0, float32(-gridExtent), 0
	end.X, end.Y, end.Z = 0, float32(gridExtent), 0
	rl.DrawLine3D(start, end, axisY)
	start.X, start.Y, start.Z = 0, 0, float32(-gridExtent)
	end.X, end.Y, end.Z = 0, 0, float32(gridExtent)
	rl.DrawLine3D(start, end, axisZ)
}
