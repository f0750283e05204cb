package editor

import (
	"github.com/chewxy/math32"

	"level-editor/internal/scene"
)

// Coordinator arbitrates selection: it tracks whether pointer movement amounts to a
// genuine drag, hit-tests canvas clicks against the scene, and consults the Guard
// before letting a click clear the selection.
type Coordinator struct {
	ctx *Context

	pointerDown  bool
	dragActive   bool
	downX, downY float32
}

// NewCoordinator returns a coordinator over the shared interaction context.
func NewCoordinator(ctx *Context) *Coordinator {
	return &Coordinator{ctx: ctx}
}

// OnPointerDown records the press position; movement from here decides drag vs click.
func (c *Coordinator) OnPointerDown(x, y float32) {
	c.pointerDown = true
	c.dragActive = false
	c.downX, c.downY = x, y
}

// OnPointerMove promotes the gesture to a drag once movement exceeds the pixel
// threshold. Stays a drag for the rest of the gesture even if the pointer returns to
// its origin.
func (c *Coordinator) OnPointerMove(x, y float32) {
	if !c.pointerDown || c.dragActive {
		return
	}
	dx := x - c.downX
	dy := y - c.downY
	if math32.Sqrt(dx*dx+dy*dy) > c.ctx.Tuning.DragThresholdPx {
		c.dragActive = true
	}
}

// OnPointerUp ends the gesture. A gesture that was a drag timestamps the guard so the
// trailing synthetic click is recognized as such.
func (c *Coordinator) OnPointerUp() {
	if c.dragActive {
		c.ctx.Guard.RecordDragEnd()
	}
	c.pointerDown = false
	c.dragActive = false
}

// DragActive reports whether the current gesture has been promoted to a drag.
func (c *Coordinator) DragActive() bool {
	return c.dragActive
}

// OnCanvasClick resolves a click against the scene. Resolution order:
//
//  1. a drag is in progress or just ended → ignore entirely (trailing synthetic click)
//  2. the ray hit a selectable node → select its nearest owning object; a genuine hit
//     on a different object bypasses protection (protection is identity-scoped)
//  3. nothing selected → no-op
//  4. empty space with no guard active → clear selection
//
// Mid- and post-transform deselection is blocked by the Guard, never by luck of event
// ordering.
func (c *Coordinator) OnCanvasClick(ray scene.Ray) {
	if c.dragActive || c.ctx.Guard.InClickGuard() {
		return
	}

	hits := c.ctx.Scene.Pick(ray)
	if len(hits) > 0 {
		id := hits[0].ObjectID
		if id != c.ctx.Guard.SelectedID() {
			c.ctx.Guard.Select(id)
			if c.ctx.Log != nil {
				c.ctx.Log.Log("select " + id)
			}
		}
		return
	}

	if c.ctx.Guard.SelectedID() == "" {
		return
	}
	if !c.ctx.Guard.AllowDeselect() {
		return
	}
	if c.ctx.Log != nil {
		c.ctx.Log.Log("deselect " + c.ctx.Guard.SelectedID())
	}
	c.ctx.Guard.ClearSelection()
}
