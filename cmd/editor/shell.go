package main

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"level-editor/internal/collider"
	"level-editor/internal/debug"
	"level-editor/internal/editor"
	"level-editor/internal/editorconfig"
	"level-editor/internal/heightmap"
	"level-editor/internal/level"
	"level-editor/internal/logger"
	"level-editor/internal/physics"
	"level-editor/internal/render"
	"level-editor/internal/scene"
	"level-editor/internal/terrain"
)

const (
	levelPath   = "levels/default.yaml"
	modelsDir   = "assets/models"
	terrainSize = float32(64)
	terrainSegs = 65
)

// brushKind names a terrain sculpt tool.
type brushKind int

const (
	brushRaise brushKind = iota
	brushLower
	brushFlatten
	brushSmooth
	brushCount
)

var brushNames = [brushCount]string{"raise", "lower", "flatten", "smooth"}

const (
	brushRadius   = float32(6)
	brushStrength = float32(8) // height units per second at the brush center
)

// shell owns the editor's per-frame state: the scene and store, the interaction
// context, the terrain grid and its renderer, and the HUD.
type shell struct {
	log     *logger.Logger
	prefs   editorconfig.Prefs
	models  *render.Registry
	scn     *scene.Scene
	store   *level.Store
	ctx     *editor.Context
	coord   *editor.Coordinator
	rec     *terrain.Reconciler
	ground  *terrain.Renderer
	overlay *debug.Overlay

	grid       heightmap.Grid
	terrainCfg heightmap.Config

	mode    editor.Mode
	drag    *editor.GizmoDrag
	session *editor.Session
	// Transform values at gizmo-drag start; drag deltas apply on top of these.
	startPos, startRot, startScale [3]float32

	brush      brushKind
	gridDirty  bool
	levelDirty bool

	// world is non-nil while play preview is running.
	world *physics.World
}

func newShell(log *logger.Logger) (*shell, error) {
	prefs := editorconfig.LoadPrefs()
	tuning := editorconfig.LoadTuning()

	models := render.NewRegistry()
	registerBuiltinModels(models)
	if err := models.LoadDefs(modelsDir); err != nil {
		return nil, err
	}

	s := &shell{
		log:     log,
		prefs:   prefs,
		models:  models,
		scn:     scene.New(),
		overlay: debug.New(),
		mode:    editor.ModeTranslate,
	}
	s.overlay.SetShowFPS(prefs.ShowFPS)
	s.overlay.SetShowMemAlloc(prefs.ShowMemAlloc)
	s.scn.SetGridVisible(prefs.GridVisible)

	if err := s.loadLevel(); err != nil {
		return nil, err
	}

	offsets := terrain.NewOffsetModel(models)
	s.ctx = editor.NewContext(s.scn, s.store, offsets, tuning, s.store.ApplyUpdate)
	s.ctx.Log = log
	s.ctx.TerrainSize = terrainSize
	s.coord = editor.NewCoordinator(s.ctx)
	s.rec = &terrain.Reconciler{
		Scene:       s.scn,
		Store:       s.store,
		Offsets:     offsets,
		Gate:        s.ctx,
		TerrainSize: terrainSize,
	}
	s.ground = terrain.NewRenderer(terrainSize)
	s.gridDirty = true
	return s, nil
}

// registerBuiltinModels provides a default palette when no assets/models defs exist
// on disk; defs loaded from disk afterwards override these.
func registerBuiltinModels(r *render.Registry) {
	r.Register("crate", render.Def{Type: "cube", Size: [3]float32{1, 1, 1}, Color: "#a07840"})
	r.Register("boulder", render.Def{Type: "sphere", Size: [3]float32{2, 2, 2}, Color: "#787878"})
	r.Register("pillar", render.Def{Type: "cylinder", Size: [3]float32{1, 4, 1}, Color: "#b0b0c0"})
	r.Register("platform", render.Def{Type: "plane", Size: [3]float32{4, 1, 4}, Color: "#607860"})
}

// loadLevel reads the saved level, or generates a fresh hills terrain when none
// exists yet, and mounts a scene node per stored object.
func (s *shell) loadLevel() error {
	store, ts, grid, err := level.Load(levelPath)
	if err == nil {
		s.store = store
		s.terrainCfg = ts.Config
		s.grid = grid
		s.log.Logf("loaded level %s (%d objects)", levelPath, store.Len())
	} else {
		s.store = level.NewStore()
		s.terrainCfg = heightmap.PresetConfig(heightmap.PresetHills, terrainSegs, 1)
		s.grid = heightmap.Generate(s.terrainCfg)
		s.log.Log("no saved level, generated hills terrain")
	}
	for _, obj := range s.store.List() {
		s.mountNode(obj)
	}
	return nil
}

// mountNode creates the scene node for a stored object. The node's transform is
// filled in by the per-frame reconcile step.
func (s *shell) mountNode(obj level.SceneObject) {
	name := obj.Name
	if name == "" {
		name = string(obj.Type)
	}
	n := scene.NewNode(name)
	n.ObjectID = obj.ID
	n.Selectable = true
	n.LocalSize = [3]float32{1, 1, 1}
	if obj.Type == level.TypeMesh {
		if b, ok := s.models.ModelBounds(obj.Model); ok {
			for i := 0; i < 3; i++ {
				n.LocalSize[i] = b.Max[i] - b.Min[i]
			}
		}
	}
	s.scn.Attach(n)
}

func (s *shell) update() {
	s.scn.Update()
	s.handleKeys()

	if s.world != nil {
		s.stepPreview()
	} else {
		mouse := rl.GetMousePosition()
		ray := s.scn.ScreenRay(mouse.X, mouse.Y)

		if sculptInput(rl.IsKeyDown(rl.KeyLeftShift), s.session != nil) {
			s.sculpt(ray)
		} else {
			s.handlePointer(mouse, ray)
		}

		s.rec.Sync(s.grid)
	}

	if s.gridDirty && !rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		s.ground.Rebuild(s.grid)
		s.gridDirty = false
	}

	status := "mode: " + string(s.mode) + "  brush: " + brushNames[s.brush]
	if s.world != nil {
		status = "preview  (space stops)"
	}
	if id := s.ctx.Guard.SelectedID(); id != "" {
		if obj, ok := s.store.Get(id); ok {
			name := obj.Name
			if name == "" {
				name = obj.ID
			}
			status += "  selected: " + name
		}
	}
	s.overlay.SetStatus(status)
}

// sculptInput reports whether this frame's input drives the sculpt brush rather than
// the pointer handlers. A live gizmo drag keeps pointer routing until it ends, even
// when the sculpt modifier goes down mid-drag; otherwise the button release would be
// swallowed and the session left dangling for the next press to resume.
func sculptInput(shiftDown, sessionLive bool) bool {
	return shiftDown && !sessionLive
}

func (s *shell) handleKeys() {
	if rl.IsKeyPressed(rl.KeySpace) {
		s.togglePreview()
		return
	}
	if s.world != nil {
		// Editing keys are inert during preview; objects are under the simulation.
		return
	}
	switch {
	case rl.IsKeyPressed(rl.KeyT):
		s.mode = editor.ModeTranslate
	case rl.IsKeyPressed(rl.KeyR):
		s.mode = editor.ModeRotate
	case rl.IsKeyPressed(rl.KeyY):
		s.mode = editor.ModeScale
	case rl.IsKeyPressed(rl.KeyB):
		s.brush = (s.brush + 1) % brushCount
	case rl.IsKeyPressed(rl.KeyG):
		s.prefs.GridVisible = !s.prefs.GridVisible
		s.scn.SetGridVisible(s.prefs.GridVisible)
	case rl.IsKeyPressed(rl.KeyN):
		s.prefs.SnapEnabled = !s.prefs.SnapEnabled
		if s.session != nil {
			s.session.SetSnap(s.prefs.SnapEnabled)
		}
	case rl.IsKeyPressed(rl.KeyF1):
		s.prefs.ShowFPS = !s.prefs.ShowFPS
		s.overlay.SetShowFPS(s.prefs.ShowFPS)
	case rl.IsKeyPressed(rl.KeyF2):
		s.prefs.ShowMemAlloc = !s.prefs.ShowMemAlloc
		s.overlay.SetShowMemAlloc(s.prefs.ShowMemAlloc)
	case rl.IsKeyPressed(rl.KeyP):
		s.placeObject(level.SceneObject{Type: level.TypeMesh, Model: "crate", Name: "crate"})
	case rl.IsKeyPressed(rl.KeyO):
		s.placeObject(level.SceneObject{Type: level.TypeCollider, ColliderType: "box", Name: "collider", Scale: [3]float32{4, 2, 4}})
	case rl.IsKeyPressed(rl.KeyDelete):
		s.deleteSelected()
	case rl.IsKeyPressed(rl.KeyS) && rl.IsKeyDown(rl.KeyLeftControl):
		s.saveLevel()
	}
}

// placeObject drops a new object where the pointer ray meets the terrain.
func (s *shell) placeObject(obj level.SceneObject) {
	mouse := rl.GetMousePosition()
	hit, ok := s.terrainHit(s.scn.ScreenRay(mouse.X, mouse.Y))
	if !ok {
		return
	}
	obj.Position = [3]float32{hit[0], 0, hit[2]}
	id := s.store.Add(obj)
	stored, _ := s.store.Get(id)
	s.mountNode(stored)
	s.levelDirty = true
	s.log.Logf("place %s %s", stored.Type, id)
}

func (s *shell) deleteSelected() {
	id := s.ctx.Guard.SelectedID()
	if id == "" || s.ctx.IsTransforming(id) {
		return
	}
	s.ctx.Guard.ClearSelection()
	s.scn.Detach(id)
	s.store.Remove(id)
	s.levelDirty = true
	s.log.Log("delete " + id)
}

// handlePointer runs the selection and gizmo interaction for one frame.
func (s *shell) handlePointer(mouse rl.Vector2, ray scene.Ray) {
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		if s.session == nil && s.tryBeginGizmoDrag(ray) {
			return
		}
		s.coord.OnPointerDown(mouse.X, mouse.Y)
		return
	}

	if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		if s.session != nil {
			s.updateGizmoDrag(ray)
			return
		}
		s.coord.OnPointerMove(mouse.X, mouse.Y)
		return
	}

	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		if s.session != nil {
			s.session.End()
			s.session = nil
			s.drag = nil
			s.levelDirty = true
			return
		}
		s.coord.OnPointerUp()
		s.coord.OnCanvasClick(ray)
	}
}

// togglePreview flips play-preview mode. Entering snapshots the level into a physics
// world; leaving drops the world, and the next reconcile pass restores every node to
// its committed transform. The store itself is never touched by the simulation.
func (s *shell) togglePreview() {
	if s.world != nil {
		s.world = nil
		s.log.Log("preview stop")
		return
	}
	if s.session != nil {
		return
	}
	s.world = buildPreviewWorld(s.store, s.scn, s.grid)
	s.log.Log("preview start")
}

// buildPreviewWorld snapshots the stored objects into a physics world resting on the
// current terrain. Meshes become dynamic boxes sized from their node bounds, collider
// volumes are static with their exact shape, cameras get no body.
func buildPreviewWorld(store *level.Store, scn *scene.Scene, grid heightmap.Grid) *physics.World {
	w := physics.NewWorld()
	w.SetGround(func(x, z float32) float32 {
		return grid.SampleWorld(terrainSize, x, z)
	})
	for _, obj := range store.List() {
		n := scn.NodeFor(obj.ID)
		if n == nil {
			continue
		}
		var desc collider.Descriptor
		static := false
		switch obj.Type {
		case level.TypeMesh:
			min, max := nodeBox(n)
			desc = collider.Shape(collider.Box, [3]float32{max[0] - min[0], max[1] - min[1], max[2] - min[2]})
		case level.TypeCollider:
			desc = collider.Shape(collider.Kind(obj.ColliderType), n.Scale)
			static = true
		default:
			continue
		}
		w.AddBody(physics.NewBody(obj.ID, n.Position, desc, 1, static))
	}
	return w
}

// stepPreview advances the simulation one frame and mirrors body positions into the
// scene nodes so the preview renders through the normal draw path.
func (s *shell) stepPreview() {
	s.world.Step(rl.GetFrameTime())
	for _, b := range s.world.Bodies {
		if n := s.scn.NodeFor(b.ObjectID); n != nil {
			n.Position = b.Position
		}
	}
}

// tryBeginGizmoDrag starts a transform session when the press lands on a gizmo axis
// handle of the selected object.
func (s *shell) tryBeginGizmoDrag(ray scene.Ray) bool {
	id := s.ctx.Guard.SelectedID()
	if id == "" {
		return false
	}
	node := s.scn.NodeFor(id)
	if node == nil {
		return false
	}
	axis := editor.PickGizmoAxis(ray, node.Position)
	if axis == editor.AxisNone {
		return false
	}

	session, err := s.ctx.StartTransform(id, s.mode, s.grid)
	if err != nil {
		return false
	}
	session.SetSnap(s.prefs.SnapEnabled)
	s.session = session
	cam := s.scn.Camera.Position
	s.drag = editor.BeginGizmoDrag(axis, node.Position, ray, [3]float32{cam.X, cam.Y, cam.Z})
	s.startPos = node.Position
	s.startRot = node.RotationDeg
	s.startScale = node.Scale
	return true
}

func (s *shell) updateGizmoDrag(ray scene.Ray) {
	delta := s.drag.Delta(ray)
	switch s.mode {
	case editor.ModeRotate:
		s.session.Update(editor.Transform{RotationDeg: s.drag.Rotated(s.startRot, delta)})
	case editor.ModeScale:
		s.session.Update(editor.Transform{Scale: s.drag.Scaled(s.startScale, delta)})
	default:
		s.session.Update(editor.Transform{Position: s.drag.Translated(s.startPos, delta)})
	}
}

// sculpt applies the active brush at the terrain point under the pointer while the
// left button is held.
func (s *shell) sculpt(ray scene.Ray) {
	if !rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		return
	}
	hit, ok := s.terrainHit(ray)
	if !ok {
		return
	}
	amount := brushStrength * rl.GetFrameTime()
	switch s.brush {
	case brushRaise:
		s.grid = heightmap.ModifyRegion(s.grid, hit[0], hit[2], brushRadius, amount, terrainSize, nil)
	case brushLower:
		s.grid = heightmap.ModifyRegion(s.grid, hit[0], hit[2], brushRadius, -amount, terrainSize, nil)
	case brushFlatten:
		s.grid = heightmap.FlattenRegion(s.grid, hit[0], hit[2], brushRadius, hit[1], amount, terrainSize)
	case brushSmooth:
		s.grid = heightmap.SmoothRegion(s.grid, hit[0], hit[2], brushRadius, amount, terrainSize)
	}
	s.gridDirty = true
	s.levelDirty = true
}

// terrainHit marches the ray against the heightfield and returns the surface point.
func (s *shell) terrainHit(ray scene.Ray) ([3]float32, bool) {
	const maxDist, step = float32(300), float32(0.5)
	for t := float32(0); t < maxDist; t += step {
		p := [3]float32{
			ray.Origin[0] + ray.Direction[0]*t,
			ray.Origin[1] + ray.Direction[1]*t,
			ray.Origin[2] + ray.Direction[2]*t,
		}
		if p[0] < -terrainSize/2 || p[0] > terrainSize/2 || p[2] < -terrainSize/2 || p[2] > terrainSize/2 {
			continue
		}
		h := s.grid.SampleWorld(terrainSize, p[0], p[2])
		if p[1] <= h {
			return [3]float32{p[0], h, p[2]}, true
		}
	}
	return [3]float32{}, false
}

func (s *shell) saveLevel() {
	if err := level.Save(levelPath, s.store, terrainSize, s.terrainCfg, s.grid); err != nil {
		s.log.Logf("save failed: %v", err)
		return
	}
	s.levelDirty = false
	s.log.Log("saved " + levelPath)
}

func (s *shell) draw() {
	s.scn.BeginDraw3D()
	s.ground.Draw()
	s.models.SetView([3]float32{0.5, 1, 0.5})

	selected := s.ctx.Guard.SelectedID()
	for _, obj := range s.store.List() {
		node := s.scn.NodeFor(obj.ID)
		if node == nil {
			continue
		}
		switch obj.Type {
		case level.TypeMesh:
			s.models.Draw(obj.Model, node.Position, node.Scale, node.RotationDeg[1])
			if obj.ID == selected {
				min, max := nodeBox(node)
				render.DrawSelectionBox(min, max)
			}
		case level.TypeCollider:
			desc := collider.Shape(collider.Kind(obj.ColliderType), node.Scale)
			render.DrawColliderWire(desc, node.Position, obj.ID == selected)
		case level.TypeCamera:
			c := rl.NewVector3(node.Position[0], node.Position[1], node.Position[2])
			rl.DrawCubeWires(c, 0.8, 0.5, 1.2, rl.SkyBlue)
		}
	}

	if selected != "" {
		if node := s.scn.NodeFor(selected); node != nil {
			render.DrawGizmo(node.Position, editor.GizmoLength)
		}
	}
	s.scn.EndDraw3D()
	s.overlay.Draw()
}

// nodeBox is the node's world AABB for the selection highlight.
func nodeBox(n *scene.Node) (min, max [3]float32) {
	for i := 0; i < 3; i++ {
		sc := n.Scale[i]
		if sc == 0 {
			sc = 1
		}
		half := n.LocalSize[i] * sc / 2
		if half == 0 {
			half = 0.5
		}
		min[i] = n.Position[i] - half
		max[i] = n.Position[i] + half
	}
	return min, max
}

// cleanup releases GPU resources and persists state; runs before the window closes.
func (s *shell) cleanup() {
	if s.levelDirty {
		s.saveLevel()
	}
	_ = editorconfig.SavePrefs(s.prefs)
	s.ground.Unload()
	s.models.Unload()
}
