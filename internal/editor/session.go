package editor

import (
	"fmt"
	"time"

	"github.com/chewxy/math32"

	"level-editor/internal/heightmap"
	"level-editor/internal/level"
	"level-editor/internal/terrain"
)

// Mode is a transform session's manipulation mode.
type Mode string

const (
	ModeTranslate Mode = "translate"
	ModeRotate    Mode = "rotate"
	ModeScale     Mode = "scale"
)

// Transform is a raw gizmo-driven transform for a scene node, before the session's
// mode-specific policy (snapping, ground clamping) is applied.
type Transform struct {
	Position    [3]float32
	RotationDeg [3]float32
	Scale       [3]float32
}

// Session is the state machine for one continuous drag-transform of one object. It
// owns the object's visual transform from Start to End; the per-frame reconcile step
// stays away (Context.IsTransforming), and the level store is updated exactly once at
// End, never during the drag, which would churn state and re-renders every frame.
type Session struct {
	ctx  *Context
	grid heightmap.Grid

	objectID string
	mode     Mode
	obj      level.SceneObject

	startPos   [3]float32
	startRot   [3]float32
	startScale [3]float32
	startTime  time.Time

	snap             bool
	draggingVertical bool

	// pending buffers the commit values computed by the latest update, so a session
	// whose node vanishes before End can still make a best-effort commit.
	pending *level.TransformUpdate
	done    bool
}

// newSession captures the baseline and flips the interaction state into "dragging":
// the guard is marked, camera orbit is disabled. Returns an error when the node is not
// mounted or the object is unknown: "not ready", the caller simply doesn't start.
func newSession(ctx *Context, objectID string, mode Mode, grid heightmap.Grid) (*Session, error) {
	node := ctx.Scene.NodeFor(objectID)
	if node == nil {
		return nil, fmt.Errorf("editor: no scene node for %s", objectID)
	}
	obj, ok := ctx.Store.Get(objectID)
	if !ok {
		return nil, fmt.Errorf("editor: unknown object %s", objectID)
	}
	s := &Session{
		ctx:        ctx,
		grid:       grid,
		objectID:   objectID,
		mode:       mode,
		obj:        obj,
		startPos:   node.Position,
		startRot:   node.RotationDeg,
		startScale: node.Scale,
		startTime:  ctx.Guard.now(),
		snap:       true,
	}
	ctx.Guard.BeginTransform(objectID)
	ctx.Scene.SetOrbitEnabled(false)
	return s, nil
}

// ObjectID returns the object under transform.
func (s *Session) ObjectID() string { return s.objectID }

// Mode returns the session's manipulation mode.
func (s *Session) Mode() Mode { return s.mode }

// StartTime returns when the session began.
func (s *Session) StartTime() time.Time { return s.startTime }

// IsDraggingVerticalAxis reports whether the latest translate update was classified
// as vertical movement.
func (s *Session) IsDraggingVerticalAxis() bool { return s.draggingVertical }

// SetSnap enables or disables snap quantization for this session.
func (s *Session) SetSnap(enabled bool) { s.snap = enabled }

// snapValue quantizes v to the nearest multiple of step.
func snapValue(v, step float32) float32 {
	if step <= 0 {
		return v
	}
	return math32.Round(v/step) * step
}

// Update applies a raw gizmo transform to the scene node, filtered through the
// session's mode policy. Called on every pointer move while dragging; never touches
// the level store.
func (s *Session) Update(raw Transform) {
	if s.done {
		return
	}
	s.apply(raw)
}

// apply runs one policy pass: mutate the node's visual transform and refresh the
// pending commit values. Shared by Update and End's final pass.
func (s *Session) apply(raw Transform) {
	node := s.ctx.Scene.NodeFor(s.objectID)
	if node == nil {
		return
	}
	switch s.mode {
	case ModeTranslate:
		pos := s.policyTranslate(raw.Position)
		node.Position = pos
		base := s.baseFromVisual(pos)
		s.pending = &level.TransformUpdate{Position: &base}
	case ModeRotate:
		rot := raw.RotationDeg
		if s.snap {
			for i := range rot {
				rot[i] = snapValue(rot[i], s.ctx.Tuning.RotateSnapDeg)
			}
		}
		node.RotationDeg = rot
		s.pending = &level.TransformUpdate{Rotation: &rot}
	case ModeScale:
		sc := s.policyScale(raw.Scale)
		node.Scale = sc
		s.pending = &level.TransformUpdate{Scale: &sc}
	}
}

// policyTranslate decides vertical-vs-horizontal movement, snaps, and applies the
// terrain ground policy.
//
// A drag counts as vertical only when |dY| from the session baseline exceeds the
// minimum threshold AND is at least VerticalRatio times the larger horizontal delta;
// small incidental Y jitter during a horizontal drag must not lift the object off the
// ground. Horizontal drags pin the visual Y to terrainHeight + modelOffset every
// update so the object never sinks below the surface; vertical drags move Y freely but
// are clamped to the ground from below.
func (s *Session) policyTranslate(pos [3]float32) [3]float32 {
	dy := math32.Abs(pos[1] - s.startPos[1])
	dh := math32.Max(math32.Abs(pos[0]-s.startPos[0]), math32.Abs(pos[2]-s.startPos[2]))
	vertical := dy > s.ctx.Tuning.VerticalMinDelta && dy >= s.ctx.Tuning.VerticalRatio*dh
	s.draggingVertical = vertical

	if s.snap {
		pos[0] = snapValue(pos[0], s.ctx.Tuning.TranslateSnap)
		pos[2] = snapValue(pos[2], s.ctx.Tuning.TranslateSnap)
		if vertical {
			pos[1] = snapValue(pos[1], s.ctx.Tuning.TranslateSnap)
		}
	}

	if terrain.TerrainRelative(s.obj.Type) {
		ground := s.groundY(pos[0], pos[2])
		if !vertical {
			pos[1] = ground
		} else if pos[1] < ground {
			pos[1] = ground
		}
	}
	return pos
}

// policyScale quantizes and clamps a scale vector per the object kind's range. Meshes
// use the tight range; colliders (walls, trigger volumes) the loose one.
func (s *Session) policyScale(sc [3]float32) [3]float32 {
	min, max := s.ctx.Tuning.MeshScaleMin, s.ctx.Tuning.MeshScaleMax
	if s.obj.Type == level.TypeCollider {
		min, max = s.ctx.Tuning.ColliderScaleMin, s.ctx.Tuning.ColliderScaleMax
	}
	for i := range sc {
		if s.snap {
			sc[i] = snapValue(sc[i], s.ctx.Tuning.ScaleSnap)
		}
		if sc[i] < min {
			sc[i] = min
		}
		if sc[i] > max {
			sc[i] = max
		}
	}
	return sc
}

// groundY returns the visual height at (x,z) that rests the object on the terrain:
// terrain height plus the model-origin offset.
func (s *Session) groundY(x, z float32) float32 {
	h := s.grid.SampleWorld(s.ctx.TerrainSize, x, z)
	off := s.ctx.Offsets.ModelOffset(s.obj.Model, s.obj.Scale[1])
	return h + off
}

// baseFromVisual converts a visual position back to the stored base position by
// subtracting the terrain-height and model-offset contributions. Persisted positions
// are always offset-free.
func (s *Session) baseFromVisual(pos [3]float32) [3]float32 {
	if !terrain.TerrainRelative(s.obj.Type) {
		return pos
	}
	h := s.grid.SampleWorld(s.ctx.TerrainSize, pos[0], pos[2])
	off := s.ctx.Offsets.ModelOffset(s.obj.Model, s.obj.Scale[1])
	pos[1] = terrain.BaseY(pos[1], h, off)
	return pos
}

// End finishes the session: one final policy pass over the node's live transform, one
// commit to the store, then the interaction state is released. If the node reference
// is unexpectedly gone, the last buffered pending values are committed best-effort; if
// none exist the session ends as a no-op, not an error.
func (s *Session) End() {
	if s.done {
		return
	}
	s.done = true

	if node := s.ctx.Scene.NodeFor(s.objectID); node != nil {
		// Final snap pass over whatever the gizmo left on the node.
		s.apply(Transform{Position: node.Position, RotationDeg: node.RotationDeg, Scale: node.Scale})
	}
	if s.pending != nil && !s.pending.IsZero() && s.ctx.OnUpdate != nil {
		s.ctx.OnUpdate(s.objectID, *s.pending)
	}

	s.ctx.Guard.EndTransform()
	s.ctx.Scene.SetOrbitEnabled(true)
	s.ctx.endSession(s)
	if s.ctx.Log != nil {
		s.ctx.Log.Log(fmt.Sprintf("commit %s %s", s.mode, s.objectID))
	}
}
