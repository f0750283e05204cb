package scene

import "testing"

func addBox(s *Scene, id string, pos [3]float32) *Node {
	n := NewNode(id)
	n.ObjectID = id
	n.Selectable = true
	n.Position = pos
	s.Attach(n)
	return n
}

func TestPick_NearestFirst(t *testing.T) {
	s := New()
	addBox(s, "near", [3]float32{0, 0, 5})
	addBox(s, "far", [3]float32{0, 0, 15})

	hits := s.Pick(Ray{Origin: [3]float32{0, 0, 0}, Direction: [3]float32{0, 0, 1}})
	if len(hits) != 2 {
		t.Fatalf("hit count: got %d want 2", len(hits))
	}
	if hits[0].ObjectID != "near" || hits[1].ObjectID != "far" {
		t.Fatalf("order: got %s, %s", hits[0].ObjectID, hits[1].ObjectID)
	}
	if hits[0].Distance >= hits[1].Distance {
		t.Fatalf("distances not ascending: %v, %v", hits[0].Distance, hits[1].Distance)
	}
}

func TestPick_MissReturnsEmpty(t *testing.T) {
	s := New()
	addBox(s, "a", [3]float32{0, 0, 5})
	hits := s.Pick(Ray{Origin: [3]float32{0, 0, 0}, Direction: [3]float32{0, 1, 0}})
	if len(hits) != 0 {
		t.Fatalf("expected miss, got %d hits", len(hits))
	}
}

func TestPick_IgnoresUnselectableAndUnannotated(t *testing.T) {
	s := New()
	hidden := NewNode("hidden")
	hidden.ObjectID = "hidden"
	hidden.Position = [3]float32{0, 0, 5}
	s.Attach(hidden) // Selectable false

	bare := NewNode("bare")
	bare.Selectable = true
	bare.Position = [3]float32{0, 0, 8}
	s.Attach(bare) // no ObjectID anywhere up the chain

	hits := s.Pick(Ray{Origin: [3]float32{0, 0, 0}, Direction: [3]float32{0, 0, 1}})
	if len(hits) != 0 {
		t.Fatalf("expected no selectable hits, got %d", len(hits))
	}
}

func TestPick_ChildResolvesToOwningObject(t *testing.T) {
	s := New()
	parent := addBox(s, "owner", [3]float32{0, 0, 5})

	child := NewNode("wireframe")
	child.Selectable = true
	child.Position = [3]float32{0, 2, 0} // world (0,2,5)
	parent.AddChild(child)

	hits := s.Pick(Ray{Origin: [3]float32{0, 2, 0}, Direction: [3]float32{0, 0, 1}})
	if len(hits) == 0 {
		t.Fatalf("child not hit")
	}
	if hits[0].ObjectID != "owner" {
		t.Fatalf("owner: got %q want %q", hits[0].ObjectID, "owner")
	}
	if hits[0].Node != child {
		t.Fatalf("struck node should be the child")
	}
}

func TestPick_RayStartingInsideHitsAtZero(t *testing.T) {
	s := New()
	addBox(s, "around", [3]float32{0, 0, 0})
	hits := s.Pick(Ray{Origin: [3]float32{0, 0, 0}, Direction: [3]float32{1, 0, 0}})
	if len(hits) != 1 {
		t.Fatalf("hit count: got %d want 1", len(hits))
	}
	if hits[0].Distance != 0 {
		t.Fatalf("distance: got %v want 0", hits[0].Distance)
	}
}

func TestDetach_RemovesFromPicking(t *testing.T) {
	s := New()
	addBox(s, "gone", [3]float32{0, 0, 5})
	s.Detach("gone")
	if s.NodeFor("gone") != nil {
		t.Fatalf("node still indexed after Detach")
	}
	hits := s.Pick(Ray{Origin: [3]float32{0, 0, 0}, Direction: [3]float32{0, 0, 1}})
	if len(hits) != 0 {
		t.Fatalf("detached node still pickable")
	}
}
