// Package render draws the editor's placeable objects: primitive-based models with a
// simple lit material, and wireframes for colliders and selection. The model registry
// also publishes local bounding boxes, which is what the terrain offset model reads.
package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"

	"level-editor/internal/terrain"
)

// Def is the YAML definition for a placeable model (e.g. assets/models/crate.yaml).
// Type picks the generated primitive mesh; Size is the model's local extent before
// the object's own scale applies; Color is a "#rrggbb" albedo tint.
type Def struct {
	Type  string     `yaml:"type"`
	Size  [3]float32 `yaml:"size,omitempty"`
	Color string     `yaml:"color,omitempty"`
}

// cached holds the GPU mesh and material for one primitive type. Created lazily on
// first Draw so GPU resources are allocated after the window/OpenGL context exists.
type cached struct {
	mesh rl.Mesh
	mtl  rl.Material
}

// Registry maps model names to definitions and primitive meshes.
type Registry struct {
	defs     map[string]Def
	cache    map[string]cached
	shader   rl.Shader
	hasShdr  bool
	lightDir [3]float32
}

// NewRegistry returns a registry with no models registered.
func NewRegistry() *Registry {
	return &Registry{
		defs:     make(map[string]Def),
		cache:    make(map[string]cached),
		lightDir: [3]float32{0.5, 1, 0.5},
	}
}

// Register adds or replaces a model definition. Zero size components default to 1.
func (r *Registry) Register(name string, def Def) {
	for i := range def.Size {
		if def.Size[i] == 0 {
			def.Size[i] = 1
		}
	}
	if def.Type == "" {
		def.Type = "cube"
	}
	r.defs[name] = def
}

// LoadDefs registers every *.yaml definition in dir, keyed by file base name. Missing
// directory is not an error; a broken definition file is.
func (r *Registry) LoadDefs(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read model defs: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".yaml" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return fmt.Errorf("read model def %s: %w", e.Name(), err)
		}
		var def Def
		if err := yaml.Unmarshal(data, &def); err != nil {
			return fmt.Errorf("parse model def %s: %w", e.Name(), err)
		}
		r.Register(strings.TrimSuffix(e.Name(), ".yaml"), def)
	}
	return nil
}

// ModelBounds returns the local bounding box for a registered model. All generated
// primitives are center-origin, so the box is symmetric around the origin. Implements
// the bounds source the terrain offset model reads.
func (r *Registry) ModelBounds(model string) (terrain.Bounds, bool) {
	def, ok := r.defs[model]
	if !ok {
		return terrain.Bounds{}, false
	}
	var b terrain.Bounds
	for i := 0; i < 3; i++ {
		b.Min[i] = -def.Size[i] / 2
		b.Max[i] = def.Size[i] / 2
	}
	return b, true
}

// SetView sets the direction to the light for this frame's shading.
func (r *Registry) SetView(lightDir [3]float32) {
	r.lightDir = lightDir
}

// parseColor turns "#rrggbb" into a raylib color, falling back to mid gray.
func parseColor(s string) rl.Color {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return rl.NewColor(128, 128, 128, 255)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return rl.NewColor(128, 128, 128, 255)
	}
	return rl.NewColor(uint8(v>>16), uint8(v>>8), uint8(v), 255)
}

// ensure creates the mesh and material for a primitive type if not yet cached.
func (r *Registry) ensure(primType string) (cached, bool) {
	if c, ok := r.cache[primType]; ok {
		return c, true
	}
	var mesh rl.Mesh
	switch primType {
	case "cube":
		mesh = rl.GenMeshCube(1, 1, 1)
	case "sphere":
		mesh = rl.GenMeshSphere(0.5, 16, 16)
	case "cylinder":
		mesh = rl.GenMeshCylinder(0.5, 1, 16)
	case "plane":
		mesh = rl.GenMeshPlane(1, 1, 1, 1)
	default:
		return cached{}, false
	}
	mtl := rl.LoadMaterialDefault()
	if !r.hasShdr {
		r.shader = rl.LoadShaderFromMemory(litVS, litFS)
		r.hasShdr = true
	}
	if rl.IsShaderValid(r.shader) {
		mtl.Shader = r.shader
	}
	c := cached{mesh: mesh, mtl: mtl}
	r.cache[primType] = c
	return c, true
}

// Draw draws one instance of a registered model at position with the object's scale
// and Y rotation in degrees. Must be called between BeginMode3D and EndMode3D.
// Unknown models draw nothing.
func (r *Registry) Draw(model string, position, scale [3]float32, yawDeg float32) {
	def, ok := r.defs[model]
	if !ok {
		return
	}
	c, ok := r.ensure(def.Type)
	if !ok {
		return
	}
	r.pushLightUniforms(c.mtl.Shader)
	if albedo := c.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = parseColor(def.Color)
	}

	sx, sy, sz := scale[0], scale[1], scale[2]
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	if sz == 0 {
		sz = 1
	}
	scaleM := rl.MatrixScale(def.Size[0]*sx, def.Size[1]*sy, def.Size[2]*sz)
	rotM := rl.MatrixRotateY(yawDeg * rl.Deg2rad)
	transM := rl.MatrixTranslate(position[0], position[1], position[2])
	transform := rl.MatrixMultiply(rl.MatrixMultiply(scaleM, rotM), transM)
	if def.Type == "cylinder" {
		// Raylib cylinder meshes have the base at Y=0; re-center before scaling.
		transform = rl.MatrixMultiply(rl.MatrixTranslate(0, -0.5, 0), transform)
	}
	rl.DrawMesh(c.mesh, c.mtl, transform)
}

// Unload releases GPU meshes and the shader. Call once after the render loop exits.
func (r *Registry) Unload() {
	for _, c := range r.cache {
		rl.UnloadMesh(&c.mesh)
	}
	r.cache = make(map[string]cached)
	if r.hasShdr && rl.IsShaderValid(r.shader) {
		rl.UnloadShader(r.shader)
		r.hasShdr = false
	}
}

func (r *Registry) pushLightUniforms(shader rl.Shader) {
	if !rl.IsShaderValid(shader) {
		return
	}
	dir := [3]float32{r.lightDir[0], r.lightDir[1], r.lightDir[2]}
	amb := [4]float32{0.25, 0.27, 0.3, 1}
	if loc := rl.GetShaderLocation(shader, "sunDir"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, dir[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "ambientColor"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, amb[:], rl.ShaderUniformVec4, 1)
	}
}

// Minimal directional-light shader: one sun direction plus an ambient floor, enough
// to read shape and slope in the editor viewport.
const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragNormal;
void main() {
  fragNormal = mat3(matModel) * vertexNormal;
  gl_Position = matProjection * matView * matModel * vec4(vertexPosition, 1.0);
}
`
	litFS = `#version 330
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 sunDir;
uniform vec4 ambientColor;
out vec4 finalColor;
void main() {
  vec3 N = normalize(fragNormal);
  float shade = max(dot(N, normalize(sunDir)), 0.0);
  vec3 lit = colDiffuse.rgb * (ambientColor.rgb + shade * 0.8);
  finalColor = vec4(min(lit, vec3(1.0)), colDiffuse.a);
}
`
)
