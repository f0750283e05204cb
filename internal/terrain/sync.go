package terrain

import (
	"level-editor/internal/heightmap"
	"level-editor/internal/level"
	"level-editor/internal/scene"
)

// TransformGate reports whether an object's visual transform is currently owned by an
// active transform session. The reconcile step must not touch such nodes: writing
// committed state over a live drag would fight the drag every frame.
type TransformGate interface {
	IsTransforming(objectID string) bool
}

// Reconciler is the per-frame synchronization step that pushes committed object state
// (level store) into the scene graph's visual transforms. Runs once per rendered
// frame; pointer event handlers interleave with it arbitrarily, which is exactly why
// transforming objects are skipped here rather than ordered around.
type Reconciler struct {
	Scene   *scene.Scene
	Store   *level.Store
	Offsets *OffsetModel

	// Gate is consulted per object; nil means nothing is transforming.
	Gate TransformGate

	TerrainSize float32
}

// Sync reconciles every stored object's committed transform into its scene node.
// Skips objects with an active transform session and objects whose node is not mounted
// yet. Writes are value-equality short-circuited: when the node already shows the
// committed state the step is a no-op for that object.
func (r *Reconciler) Sync(grid heightmap.Grid) {
	for _, obj := range r.Store.List() {
		if r.Gate != nil && r.Gate.IsTransforming(obj.ID) {
			continue
		}
		node := r.Scene.NodeFor(obj.ID)
		if node == nil {
			continue
		}
		pos := VisualPosition(obj, r.Offsets, grid, r.TerrainSize)
		if node.Position != pos {
			node.Position = pos
		}
		if node.RotationDeg != obj.Rotation {
			node.RotationDeg = obj.Rotation
		}
		if node.Scale != obj.Scale {
			node.Scale = obj.Scale
		}
	}
}
