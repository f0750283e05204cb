package collider

import (
	"math"
	"testing"
)

func TestShape_BoxHalfExtentsCongruent(t *testing.T) {
	d := Shape(Box, [3]float32{4, 2, 6})
	if d.Size != [3]float32{4, 2, 6} {
		t.Fatalf("size: got %v want [4 2 6]", d.Size)
	}
	if d.HalfExtents != [3]float32{2, 1, 3} {
		t.Fatalf("half extents: got %v want [2 1 3]", d.HalfExtents)
	}
	for i := 0; i < 3; i++ {
		if d.HalfExtents[i]*2 != d.Size[i] {
			t.Fatalf("axis %d: wireframe size %v and physics half extent %v not congruent", i, d.Size[i], d.HalfExtents[i])
		}
	}
}

func TestShape_SphereRadiusFromLargestAxis(t *testing.T) {
	d := Shape(Sphere, [3]float32{2, 6, 4})
	if d.Radius != 3 {
		t.Fatalf("radius: got %v want 3", d.Radius)
	}
}

func TestShape_Cylinder(t *testing.T) {
	d := Shape(Cylinder, [3]float32{2, 5, 3})
	if d.Radius != 1.5 {
		t.Fatalf("radius: got %v want 1.5", d.Radius)
	}
	if d.HalfHeight != 2.5 {
		t.Fatalf("half height: got %v want 2.5", d.HalfHeight)
	}
}

func TestShape_CapsuleSegmentExcludesCaps(t *testing.T) {
	d := Shape(Capsule, [3]float32{2, 8, 2})
	if d.Radius != 1 {
		t.Fatalf("radius: got %v want 1", d.Radius)
	}
	// Total height 8, two caps of radius 1 leave a 6-unit segment.
	if d.HalfHeight != 3 {
		t.Fatalf("half height: got %v want 3", d.HalfHeight)
	}
}

func TestShape_DegenerateCapsuleCollapsesToSphere(t *testing.T) {
	// Requested height (1) smaller than the cap diameter (4): collapse.
	d := Shape(Capsule, [3]float32{4, 1, 4})
	if d.Radius != 0.5 {
		t.Fatalf("radius: got %v want 0.5", d.Radius)
	}
	if d.HalfHeight <= 0 || d.HalfHeight > MinDimension {
		t.Fatalf("half height: got %v want minimal positive segment", d.HalfHeight)
	}
}

func TestShape_SanitizesDegenerateInput(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))
	d := Shape(Box, [3]float32{nan, -2, inf})
	// NaN, negative, and Inf all substitute 1.
	if d.Size != [3]float32{1, 1, 1} {
		t.Fatalf("sanitized size: got %v want [1 1 1]", d.Size)
	}
}

func TestShape_ClampsToValidRange(t *testing.T) {
	d := Shape(Box, [3]float32{0.001, 5000, 2})
	if d.Size[0] != MinDimension {
		t.Fatalf("undersize: got %v want %v", d.Size[0], MinDimension)
	}
	if d.Size[1] != MaxDimension {
		t.Fatalf("oversize: got %v want %v", d.Size[1], MaxDimension)
	}
}

func TestShape_UnknownKindFallsBackToBox(t *testing.T) {
	d := Shape(Kind("wedge"), [3]float32{1, 2, 3})
	if d.Kind != Box {
		t.Fatalf("kind: got %q want box", d.Kind)
	}
}
