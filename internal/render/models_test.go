package render

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRegisterDefaultsSize(t *testing.T) {
	r := NewRegistry()
	r.Register("crate", Def{})
	b, ok := r.ModelBounds("crate")
	if !ok {
		t.Fatalf("registered model not found")
	}
	if b.Min != [3]float32{-0.5, -0.5, -0.5} || b.Max != [3]float32{0.5, 0.5, 0.5} {
		t.Fatalf("unit bounds: got %v..%v", b.Min, b.Max)
	}
}

func TestModelBounds(t *testing.T) {
	r := NewRegistry()
	r.Register("tower", Def{Type: "cylinder", Size: [3]float32{2, 8, 2}})
	b, ok := r.ModelBounds("tower")
	if !ok {
		t.Fatalf("tower not found")
	}
	if b.Min[1] != -4 || b.Max[1] != 4 {
		t.Fatalf("tower Y bounds: got %v..%v want -4..4", b.Min[1], b.Max[1])
	}
	if _, ok := r.ModelBounds("ghost"); ok {
		t.Fatalf("unknown model reported bounds")
	}
}

func TestLoadDefs(t *testing.T) {
	dir := t.TempDir()
	def := "type: sphere\nsize: [3, 3, 3]\ncolor: \"#ff8800\"\n"
	if err := os.WriteFile(filepath.Join(dir, "boulder.yaml"), []byte(def), 0644); err != nil {
		t.Fatalf("write def: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore me"), 0644); err != nil {
		t.Fatalf("write stray file: %v", err)
	}

	r := NewRegistry()
	if err := r.LoadDefs(dir); err != nil {
		t.Fatalf("LoadDefs: %v", err)
	}
	b, ok := r.ModelBounds("boulder")
	if !ok {
		t.Fatalf("boulder not loaded")
	}
	if b.Max != [3]float32{1.5, 1.5, 1.5} {
		t.Fatalf("boulder bounds: got %v", b.Max)
	}
}

func TestLoadDefsMissingDir(t *testing.T) {
	r := NewRegistry()
	if err := r.LoadDefs(filepath.Join(t.TempDir(), "nope")); err != nil {
		t.Fatalf("missing directory should be fine: %v", err)
	}
}

func TestParseColor(t *testing.T) {
	c := parseColor("#ff8800")
	if c.R != 0xff || c.G != 0x88 || c.B != 0x00 {
		t.Fatalf("parse #ff8800: got %v", c)
	}
	fallback := parseColor("teal")
	if fallback.R != 128 || fallback.G != 128 || fallback.B != 128 {
		t.Fatalf("invalid color fallback: got %v", fallback)
	}
}
