package editor

import (
	"testing"

	"level-editor/internal/level"
)

// recordedUpdate captures OnUpdate invocations.
type recordedUpdate struct {
	id     string
	update level.TransformUpdate
}

func recordUpdates(r *testRig) *[]recordedUpdate {
	var updates []recordedUpdate
	store := r.ctx.Store
	r.ctx.OnUpdate = func(id string, u level.TransformUpdate) {
		updates = append(updates, recordedUpdate{id: id, update: u})
		store.ApplyUpdate(id, u)
	}
	return &updates
}

func TestSession_SnapToGroundDuringHorizontalDrag(t *testing.T) {
	r := newRig(t) // terrain height 3 everywhere
	// crate has modelOffset 2 at scale 1; starts resting on the ground (visual Y 5).
	id := r.addObject(t, level.SceneObject{Type: level.TypeMesh, Model: "crate"}, [3]float32{0, 5, 0})

	s, err := r.ctx.StartTransform(id, ModeTranslate, r.grid)
	if err != nil {
		t.Fatalf("StartTransform: %v", err)
	}
	// Pure X drag; raw gizmo position carries the unchanged Y.
	s.Update(Transform{Position: [3]float32{3.2, 5, 0}})

	node := r.ctx.Scene.NodeFor(id)
	if node.Position[0] != 3 {
		t.Fatalf("X not snapped: got %v want 3", node.Position[0])
	}
	// Visual Y pinned to terrainHeight + modelOffset = 3 + 2.
	if node.Position[1] != 5 {
		t.Fatalf("visual Y: got %v want 5", node.Position[1])
	}
	if s.IsDraggingVerticalAxis() {
		t.Fatalf("horizontal drag classified as vertical")
	}
}

func TestSession_CommitStripsOffsets(t *testing.T) {
	r := newRig(t) // terrain height 3
	id := r.addObject(t, level.SceneObject{Type: level.TypeMesh, Model: "crate"}, [3]float32{0, 5, 0})
	updates := recordUpdates(r)

	s, err := r.ctx.StartTransform(id, ModeTranslate, r.grid)
	if err != nil {
		t.Fatalf("StartTransform: %v", err)
	}
	// Vertical drag up to a visual Y of 6 (dy=1 exceeds threshold, no horizontal move).
	s.Update(Transform{Position: [3]float32{0, 6, 0}})
	if !s.IsDraggingVerticalAxis() {
		t.Fatalf("vertical drag not classified as vertical")
	}
	s.End()

	if len(*updates) != 1 {
		t.Fatalf("commit count: got %d want 1", len(*updates))
	}
	u := (*updates)[0]
	if u.update.Position == nil {
		t.Fatalf("translate commit carried no position")
	}
	// visual 6 - terrain 3 - offset 2 = base 1
	if (*u.update.Position)[1] != 1 {
		t.Fatalf("committed base Y: got %v want 1", (*u.update.Position)[1])
	}
}

func TestSession_NoCommitUntilEnd(t *testing.T) {
	r := newRig(t)
	id := r.addObject(t, level.SceneObject{Type: level.TypeMesh, Model: "crate"}, [3]float32{0, 5, 0})
	updates := recordUpdates(r)

	s, _ := r.ctx.StartTransform(id, ModeTranslate, r.grid)
	for i := 0; i < 20; i++ {
		s.Update(Transform{Position: [3]float32{float32(i), 5, 0}})
		if len(*updates) != 0 {
			t.Fatalf("OnUpdate called during active session (update %d)", i)
		}
	}
	s.End()
	if len(*updates) != 1 {
		t.Fatalf("commit count after End: got %d want 1", len(*updates))
	}
	// A second End must not double-commit.
	s.End()
	if len(*updates) != 1 {
		t.Fatalf("repeated End re-committed: got %d", len(*updates))
	}
}

func TestSession_VerticalDragClampedToGround(t *testing.T) {
	r := newRig(t) // ground at visual Y 5 for the crate
	id := r.addObject(t, level.SceneObject{Type: level.TypeMesh, Model: "crate"}, [3]float32{0, 5, 0})

	s, _ := r.ctx.StartTransform(id, ModeTranslate, r.grid)
	// Drag down below the surface.
	s.Update(Transform{Position: [3]float32{0, 2, 0}})
	node := r.ctx.Scene.NodeFor(id)
	if node.Position[1] != 5 {
		t.Fatalf("object sank below terrain: visual Y %v want 5", node.Position[1])
	}
}

func TestSession_SmallYJitterStaysHorizontal(t *testing.T) {
	r := newRig(t)
	id := r.addObject(t, level.SceneObject{Type: level.TypeMesh, Model: "crate"}, [3]float32{0, 5, 0})

	s, _ := r.ctx.StartTransform(id, ModeTranslate, r.grid)
	// Large X movement with Y jitter beyond the absolute threshold but far below the
	// 3× ratio: a horizontal drag.
	s.Update(Transform{Position: [3]float32{6, 5.4, 0}})
	if s.IsDraggingVerticalAxis() {
		t.Fatalf("jittery horizontal drag classified as vertical")
	}
	node := r.ctx.Scene.NodeFor(id)
	if node.Position[1] != 5 {
		t.Fatalf("visual Y: got %v want ground 5", node.Position[1])
	}
}

func TestSession_RotateSnaps(t *testing.T) {
	r := newRig(t)
	id := r.addObject(t, level.SceneObject{Type: level.TypeMesh}, [3]float32{0, 3, 0})
	updates := recordUpdates(r)

	s, _ := r.ctx.StartTransform(id, ModeRotate, r.grid)
	s.Update(Transform{RotationDeg: [3]float32{0, 52, 0}})
	s.End()

	u := (*updates)[0]
	if u.update.Rotation == nil {
		t.Fatalf("rotate commit carried no rotation")
	}
	if (*u.update.Rotation)[1] != 45 {
		t.Fatalf("rotation snap: got %v want 45", (*u.update.Rotation)[1])
	}
}

func TestSession_ScaleClampPerKind(t *testing.T) {
	r := newRig(t)
	mesh := r.addObject(t, level.SceneObject{Type: level.TypeMesh}, [3]float32{0, 3, 0})
	wall := r.addObject(t, level.SceneObject{Type: level.TypeCollider, ColliderType: "box"}, [3]float32{5, 3, 0})

	s, _ := r.ctx.StartTransform(mesh, ModeScale, r.grid)
	s.Update(Transform{Scale: [3]float32{50, 1, 1}})
	s.End()
	if got := r.ctx.Scene.NodeFor(mesh).Scale[0]; got != r.ctx.Tuning.MeshScaleMax {
		t.Fatalf("mesh scale clamp: got %v want %v", got, r.ctx.Tuning.MeshScaleMax)
	}

	s2, err := r.ctx.StartTransform(wall, ModeScale, r.grid)
	if err != nil {
		t.Fatalf("second session after first ended: %v", err)
	}
	s2.Update(Transform{Scale: [3]float32{50, 1, 1}})
	s2.End()
	if got := r.ctx.Scene.NodeFor(wall).Scale[0]; got != 50 {
		t.Fatalf("collider scale 50 should stay inside loose range: got %v", got)
	}
}

func TestSession_SingleActiveSessionEnforced(t *testing.T) {
	r := newRig(t)
	a := r.addObject(t, level.SceneObject{Type: level.TypeMesh}, [3]float32{0, 3, 0})
	b := r.addObject(t, level.SceneObject{Type: level.TypeMesh}, [3]float32{5, 3, 0})

	s, err := r.ctx.StartTransform(a, ModeTranslate, r.grid)
	if err != nil {
		t.Fatalf("first session: %v", err)
	}
	if _, err := r.ctx.StartTransform(b, ModeTranslate, r.grid); err == nil {
		t.Fatalf("second concurrent session allowed")
	}
	s.End()
	if _, err := r.ctx.StartTransform(b, ModeTranslate, r.grid); err != nil {
		t.Fatalf("session after End: %v", err)
	}
}

func TestSession_OrbitDisabledWhileDragging(t *testing.T) {
	r := newRig(t)
	id := r.addObject(t, level.SceneObject{Type: level.TypeMesh}, [3]float32{0, 3, 0})

	s, _ := r.ctx.StartTransform(id, ModeTranslate, r.grid)
	if r.ctx.Scene.OrbitEnabled() {
		t.Fatalf("camera orbit still enabled during drag")
	}
	s.End()
	if !r.ctx.Scene.OrbitEnabled() {
		t.Fatalf("camera orbit not restored after drag")
	}
}

func TestSession_MissingNodeCommitsBestEffort(t *testing.T) {
	r := newRig(t)
	id := r.addObject(t, level.SceneObject{Type: level.TypeMesh, Model: "crate"}, [3]float32{0, 5, 0})
	updates := recordUpdates(r)

	s, _ := r.ctx.StartTransform(id, ModeTranslate, r.grid)
	s.Update(Transform{Position: [3]float32{4, 5, 0}})
	// The node vanishes mid-drag (external deletion flow).
	r.ctx.Scene.Detach(id)
	s.End()

	if len(*updates) != 1 {
		t.Fatalf("best-effort commit count: got %d want 1", len(*updates))
	}
	if (*updates)[0].update.Position == nil {
		t.Fatalf("best-effort commit lost the pending position")
	}
}

func TestSession_MissingNodeNoPendingIsNoop(t *testing.T) {
	r := newRig(t)
	id := r.addObject(t, level.SceneObject{Type: level.TypeMesh}, [3]float32{0, 3, 0})
	updates := recordUpdates(r)

	s, _ := r.ctx.StartTransform(id, ModeTranslate, r.grid)
	r.ctx.Scene.Detach(id)
	s.End() // no Update ever ran, node gone: silent no-op, not a crash

	if len(*updates) != 0 {
		t.Fatalf("no-op end committed: %d updates", len(*updates))
	}
	if r.ctx.ActiveSession() != nil {
		t.Fatalf("session slot not released")
	}
}

func TestSession_IsTransformingHoldsThroughFirstReleaseStage(t *testing.T) {
	r := newRig(t)
	id := r.addObject(t, level.SceneObject{Type: level.TypeMesh}, [3]float32{0, 3, 0})

	if r.ctx.IsTransforming(id) {
		t.Fatalf("transforming before any session")
	}
	s, _ := r.ctx.StartTransform(id, ModeTranslate, r.grid)
	if !r.ctx.IsTransforming(id) {
		t.Fatalf("live session not reported")
	}
	s.End()
	// The reconcile gate stays closed through the first release stage so a sync
	// running right after End does not fight trailing pointer events.
	if !r.ctx.IsTransforming(id) {
		t.Fatalf("reconcile gate opened immediately after End")
	}
	r.clk.advance(r.ctx.Tuning.TransformingFirstStage / 2)
	if !r.ctx.IsTransforming(id) {
		t.Fatalf("reconcile gate opened inside the first release stage")
	}
	r.clk.advance(r.ctx.Tuning.TransformingFirstStage)
	if r.ctx.IsTransforming(id) {
		t.Fatalf("reconcile gate still closed after the first release stage")
	}
	if r.ctx.IsTransforming("someone-else") {
		t.Fatalf("gate leaked to an unrelated object")
	}
}
