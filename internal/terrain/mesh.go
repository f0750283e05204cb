package terrain

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"level-editor/internal/heightmap"
)

// Renderer owns the GPU resources for drawing the terrain surface. The mesh is rebuilt
// from the grid on demand (after generation or a brush stroke), via a grayscale image
// and raylib's heightmap mesh generator rather than manual vertex pointer math.
type Renderer struct {
	model  rl.Model
	loaded bool
	flat   bool

	TerrainSize float32
	Tint        rl.Color
}

// NewRenderer returns a renderer for a terrain of the given world size.
func NewRenderer(terrainSize float32) *Renderer {
	return &Renderer{
		TerrainSize: terrainSize,
		Tint:        rl.NewColor(110, 140, 90, 255),
	}
}

// Rebuild regenerates the terrain mesh from the grid. Must run on the render thread
// with the window open (allocates GPU buffers). An empty grid draws as a flat plane.
func (r *Renderer) Rebuild(grid heightmap.Grid) {
	r.Unload()
	if grid.IsEmpty() {
		r.flat = true
		return
	}
	r.flat = false

	lo, hi := grid.MinMax()
	span := hi - lo
	img := rl.NewImageFromImage(heightmap.ToImage(grid))
	// GenMeshHeightmap maps black..white to 0..size.Y; ToImage normalized the grid to
	// that range, so size.Y is the grid's real height span.
	size := rl.NewVector3(r.TerrainSize, span, r.TerrainSize)
	mesh := rl.GenMeshHeightmap(*img, size)
	rl.UnloadImage(img)

	r.model = rl.LoadModelFromMesh(mesh)
	r.loaded = true
	// The generated mesh spans [0,size] from its origin; recenter on XZ and lift by
	// the grid minimum so mesh heights equal SampleWorld heights.
	r.model.Transform = rl.MatrixTranslate(-r.TerrainSize/2, lo, -r.TerrainSize/2)
}

// Draw renders the terrain. Call between BeginMode3D and EndMode3D.
func (r *Renderer) Draw() {
	if r.flat || !r.loaded {
		half := r.TerrainSize / 2
		rl.DrawPlane(rl.NewVector3(0, 0, 0), rl.NewVector2(half*2, half*2), r.Tint)
		return
	}
	rl.DrawModel(r.model, rl.NewVector3(0, 0, 0), 1, r.Tint)
}

// Unload releases GPU resources. Safe to call when nothing is loaded.
func (r *Renderer) Unload() {
	if r.loaded {
		rl.UnloadModel(r.model)
		r.loaded = false
	}
}
