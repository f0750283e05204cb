package main

import (
	"testing"

	"level-editor/internal/heightmap"
	"level-editor/internal/level"
	"level-editor/internal/scene"
)

func TestBuildPreviewWorld_BodiesFromLevel(t *testing.T) {
	store := level.NewStore()
	scn := scene.New()
	grid := heightmap.New(terrainSegs)
	for i := range grid.Heights {
		grid.Heights[i] = 2
	}

	meshID := store.Add(level.SceneObject{Type: level.TypeMesh, Model: "crate"})
	colID := store.Add(level.SceneObject{Type: level.TypeCollider, ColliderType: "box", Scale: [3]float32{4, 2, 4}})
	camID := store.Add(level.SceneObject{Type: level.TypeCamera})

	mount := func(id string, pos [3]float32) {
		n := scene.NewNode(id)
		n.ObjectID = id
		n.Position = pos
		scn.Attach(n)
	}
	mount(meshID, [3]float32{1, 6, 1})
	mount(colID, [3]float32{-3, 1, 0})
	mount(camID, [3]float32{0, 10, 0})

	w := buildPreviewWorld(store, scn, grid)
	if len(w.Bodies) != 2 {
		t.Fatalf("bodies: got %d want 2", len(w.Bodies))
	}
	if b := w.BodyFor(meshID); b == nil || b.Static {
		t.Fatalf("mesh body must be dynamic, got %+v", b)
	}
	if b := w.BodyFor(colID); b == nil || !b.Static {
		t.Fatalf("collider body must be static, got %+v", b)
	}
	if w.BodyFor(camID) != nil {
		t.Fatalf("camera must not get a body")
	}
	if h := w.Ground(0, 0); h != 2 {
		t.Fatalf("ground height: got %v want 2", h)
	}
}

func TestBuildPreviewWorld_SettlesOnTerrain(t *testing.T) {
	store := level.NewStore()
	scn := scene.New()
	grid := heightmap.New(terrainSegs)
	for i := range grid.Heights {
		grid.Heights[i] = 3
	}

	id := store.Add(level.SceneObject{Type: level.TypeMesh, Model: "crate"})
	n := scene.NewNode(id)
	n.ObjectID = id
	n.Position = [3]float32{0, 10, 0}
	scn.Attach(n)

	w := buildPreviewWorld(store, scn, grid)
	for i := 0; i < 600; i++ {
		w.Step(1.0 / 60.0)
	}
	b := w.BodyFor(id)
	// Unit box, half extent 0.5, resting on the terrain surface at height 3.
	if b.Position[1] != 3.5 {
		t.Fatalf("rest height: got %v want 3.5", b.Position[1])
	}
}

func TestSculptInput_LiveDragKeepsPointerRouting(t *testing.T) {
	if !sculptInput(true, false) {
		t.Fatalf("modifier with no drag must route to sculpting")
	}
	if sculptInput(true, true) {
		t.Fatalf("a live gizmo drag must keep pointer routing so the release ends it")
	}
	if sculptInput(false, false) {
		t.Fatalf("sculpting without the modifier")
	}
}
