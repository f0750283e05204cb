package editor

import (
	"fmt"

	"level-editor/internal/editorconfig"
	"level-editor/internal/heightmap"
	"level-editor/internal/level"
	"level-editor/internal/logger"
	"level-editor/internal/scene"
	"level-editor/internal/terrain"
)

// Context is the shared editor interaction state, injected into whichever components
// need it instead of threading individual mutable cells around: the guard, the scene,
// the store, the offset model, the tuning, and the single active session.
type Context struct {
	Scene   *scene.Scene
	Store   *level.Store
	Offsets *terrain.OffsetModel
	Guard   *Guard
	Tuning  editorconfig.Tuning

	// OnUpdate is the persistence callback a session invokes exactly once at commit.
	OnUpdate level.UpdateFunc

	// Log is optional; nil disables interaction logging.
	Log *logger.Logger

	TerrainSize float32

	session *Session
}

// NewContext wires a context with a wall-clock guard.
func NewContext(scn *scene.Scene, store *level.Store, offsets *terrain.OffsetModel, tuning editorconfig.Tuning, onUpdate level.UpdateFunc) *Context {
	return &Context{
		Scene:    scn,
		Store:    store,
		Offsets:  offsets,
		Guard:    NewGuard(tuning),
		Tuning:   tuning,
		OnUpdate: onUpdate,
	}
}

// ActiveSession returns the live transform session, or nil.
func (c *Context) ActiveSession() *Session {
	return c.session
}

// IsTransforming reports whether objectID's visual transform is owned by the editor
// right now: a live session, or the transforming mark still held through the first
// release stage after one ends. This is the gate the per-frame reconcile step consults
// before syncing committed state into a node; holding it past End keeps the reconciler
// off a just-released node while trailing pointer events are still being delivered.
func (c *Context) IsTransforming(objectID string) bool {
	if c.session != nil && c.session.ObjectID() == objectID {
		return true
	}
	return c.Guard != nil && c.Guard.TransformingID() == objectID
}

// StartTransform begins a drag-transform session on an object. Only one session may
// exist at a time; starting a second while one is live is a caller error. The grid is
// captured for the session's duration; terrain cannot change mid-drag.
func (c *Context) StartTransform(objectID string, mode Mode, grid heightmap.Grid) (*Session, error) {
	if c.session != nil {
		return nil, fmt.Errorf("editor: transform session already active on %s", c.session.ObjectID())
	}
	s, err := newSession(c, objectID, mode, grid)
	if err != nil {
		return nil, err
	}
	c.session = s
	return s, nil
}

// endSession is called by Session.End to release the single-session slot.
func (c *Context) endSession(s *Session) {
	if c.session == s {
		c.session = nil
	}
}
