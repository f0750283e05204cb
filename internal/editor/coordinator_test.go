package editor

import (
	"testing"

	"level-editor/internal/editorconfig"
	"level-editor/internal/heightmap"
	"level-editor/internal/level"
	"level-editor/internal/scene"
	"level-editor/internal/terrain"
)

// testRig wires a minimal editing session: a scene with boxes, a store, an offset
// model with a known model, and an injected clock.
type testRig struct {
	ctx   *Context
	coord *Coordinator
	clk   *fakeClock
	grid  heightmap.Grid
}

type rigBounds struct{}

func (rigBounds) ModelBounds(model string) (terrain.Bounds, bool) {
	if model == "crate" {
		// Origin 2 above the lowest point at unit scale.
		return terrain.Bounds{Min: [3]float32{-1, -2, -1}, Max: [3]float32{1, 1, 1}}, true
	}
	return terrain.Bounds{}, false
}

func flatGrid(h float32) heightmap.Grid {
	g := heightmap.New(9)
	for i := range g.Heights {
		g.Heights[i] = h
	}
	return g
}

func newRig(t *testing.T) *testRig {
	t.Helper()
	clk := newFakeClock()
	tun := editorconfig.DefaultTuning()
	scn := scene.New()
	store := level.NewStore()
	offsets := terrain.NewOffsetModel(rigBounds{})

	ctx := &Context{
		Scene:       scn,
		Store:       store,
		Offsets:     offsets,
		Guard:       NewGuardWithClock(tun, clk.now),
		Tuning:      tun,
		TerrainSize: 64,
	}
	ctx.OnUpdate = store.ApplyUpdate
	return &testRig{ctx: ctx, coord: NewCoordinator(ctx), clk: clk, grid: flatGrid(3)}
}

// addObject puts an object in the store and mounts its node at the given world
// position.
func (r *testRig) addObject(t *testing.T, obj level.SceneObject, nodePos [3]float32) string {
	t.Helper()
	id := r.ctx.Store.Add(obj)
	n := scene.NewNode(id)
	n.ObjectID = id
	n.Selectable = true
	n.Position = nodePos
	r.ctx.Scene.Attach(n)
	return id
}

func rayAt(x, z float32) scene.Ray {
	return scene.Ray{Origin: [3]float32{x, 50, z}, Direction: [3]float32{0, -1, 0}}
}

func TestCoordinator_ClickSelectsNearestOwner(t *testing.T) {
	r := newRig(t)
	a := r.addObject(t, level.SceneObject{Type: level.TypeMesh}, [3]float32{0, 0, 0})
	r.addObject(t, level.SceneObject{Type: level.TypeMesh}, [3]float32{10, 0, 0})

	r.coord.OnPointerDown(100, 100)
	r.coord.OnPointerUp()
	r.coord.OnCanvasClick(rayAt(0, 0))

	if got := r.ctx.Guard.SelectedID(); got != a {
		t.Fatalf("selected: got %q want %q", got, a)
	}
}

func TestCoordinator_DragVsClickThreshold(t *testing.T) {
	r := newRig(t)
	r.coord.OnPointerDown(100, 100)
	r.coord.OnPointerMove(102, 101) // under the 5px threshold
	if r.coord.DragActive() {
		t.Fatalf("sub-threshold movement promoted to drag")
	}
	r.coord.OnPointerMove(110, 108)
	if !r.coord.DragActive() {
		t.Fatalf("movement past threshold not promoted to drag")
	}
	r.coord.OnPointerUp()
	if !r.ctx.Guard.InClickGuard() {
		t.Fatalf("drag end not recorded in guard")
	}
}

func TestCoordinator_NoPrematureDeselectionAfterTransform(t *testing.T) {
	r := newRig(t)
	id := r.addObject(t, level.SceneObject{Type: level.TypeMesh, Model: "crate"}, [3]float32{0, 5, 0})
	r.ctx.Guard.Select(id)

	// Drag-transform the object, then release: the release produces a trailing
	// synthetic click over empty space.
	s, err := r.ctx.StartTransform(id, ModeTranslate, r.grid)
	if err != nil {
		t.Fatalf("StartTransform: %v", err)
	}
	r.coord.OnPointerDown(100, 100)
	r.coord.OnPointerMove(160, 100)
	s.Update(Transform{Position: [3]float32{4, 5, 0}})
	r.coord.OnPointerUp()
	s.End()

	// Trailing synthetic click right after release, over empty space.
	r.coord.OnCanvasClick(rayAt(40, 40))
	if r.ctx.Guard.SelectedID() != id {
		t.Fatalf("object deselected by trailing click")
	}

	// Still protected for the duration of the window.
	r.clk.advance(r.ctx.Tuning.TransformProtection / 2)
	r.coord.OnCanvasClick(rayAt(40, 40))
	if r.ctx.Guard.SelectedID() != id {
		t.Fatalf("object deselected inside protection window")
	}
}

func TestCoordinator_EventualDeselectionAllowed(t *testing.T) {
	r := newRig(t)
	id := r.addObject(t, level.SceneObject{Type: level.TypeMesh}, [3]float32{0, 0, 0})
	r.ctx.Guard.Select(id)

	s, err := r.ctx.StartTransform(id, ModeTranslate, r.grid)
	if err != nil {
		t.Fatalf("StartTransform: %v", err)
	}
	s.End()

	r.clk.advance(r.ctx.Tuning.TransformProtection * 2)
	r.coord.OnCanvasClick(rayAt(40, 40))
	if r.ctx.Guard.SelectedID() != "" {
		t.Fatalf("empty-space click after protection window did not deselect")
	}
}

func TestCoordinator_HitDifferentObjectBypassesProtection(t *testing.T) {
	r := newRig(t)
	a := r.addObject(t, level.SceneObject{Type: level.TypeMesh}, [3]float32{0, 0, 0})
	b := r.addObject(t, level.SceneObject{Type: level.TypeMesh}, [3]float32{10, 0, 0})
	r.ctx.Guard.Select(a)

	s, err := r.ctx.StartTransform(a, ModeTranslate, r.grid)
	if err != nil {
		t.Fatalf("StartTransform: %v", err)
	}
	s.End()

	// Inside the protection window, but well past the trailing-click guard: a genuine
	// stationary click on another object reselects; protection is identity-scoped.
	r.clk.advance(r.ctx.Tuning.ClickGuard * 2)
	r.coord.OnCanvasClick(rayAt(10, 0))
	if got := r.ctx.Guard.SelectedID(); got != b {
		t.Fatalf("selected: got %q want %q (new-object click must bypass protection)", got, b)
	}
}

func TestCoordinator_EmptyClickWithNothingSelectedIsNoop(t *testing.T) {
	r := newRig(t)
	r.coord.OnCanvasClick(rayAt(40, 40))
	if r.ctx.Guard.SelectedID() != "" {
		t.Fatalf("no-op click selected something")
	}
}
