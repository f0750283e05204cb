// Package editor implements the interactive transform/selection core: the selection
// guard, the click/drag coordinator, and the drag-transform session state machine.
// Everything here runs on the single frame/event thread; the hazards are ordering
// hazards (trailing synthetic clicks, reconcile-vs-drag races), not data races.
package editor

import (
	"time"

	"level-editor/internal/editorconfig"
)

// Guard is the selection guard: the time- and identity-based state consulted by every
// click handler before a deselection is permitted. Pointer-driven transform widgets
// emit a trailing synthetic click on release; without the guard, "click empty space
// deselects" would strip the selection from an object the moment its drag ends.
//
// Shared by the coordinator and active sessions: one Guard per editor session, passed
// by reference, with all reads and writes going through these methods.
type Guard struct {
	tuning editorconfig.Tuning
	now    func() time.Time

	selectedID     string
	transformingID string
	sessionActive  bool

	// lastTransformEnd is the zero Time until the first transform ends.
	lastTransformEnd time.Time
	lastDragEnd      time.Time
}

// NewGuard returns a guard using wall-clock time. Guards are wall-clock-based rather
// than frame-counted because pointer events and render frames are not synchronized.
func NewGuard(tuning editorconfig.Tuning) *Guard {
	return NewGuardWithClock(tuning, time.Now)
}

// NewGuardWithClock injects the clock; tests use this to verify the ordering of guard
// expiration without sleeping through real protection windows.
func NewGuardWithClock(tuning editorconfig.Tuning, now func() time.Time) *Guard {
	return &Guard{tuning: tuning, now: now}
}

// SelectedID returns the selected object's ID, or "" when nothing is selected.
func (g *Guard) SelectedID() string {
	return g.selectedID
}

// Select marks an object as selected.
func (g *Guard) Select(id string) {
	g.selectedID = id
}

// ClearSelection unconditionally clears the selection. Callers are expected to have
// consulted AllowDeselect first; programmatic deletion flows use this directly.
func (g *Guard) ClearSelection() {
	g.selectedID = ""
}

// BeginTransform marks an object's transform session as active.
func (g *Guard) BeginTransform(id string) {
	g.transformingID = id
	g.sessionActive = true
}

// EndTransform records the end of the active session. The transforming mark is not
// cleared here; it is released in two stages (see TransformingID) so event handlers
// that observe state between the session end and their own dispatch still see it.
func (g *Guard) EndTransform() {
	g.sessionActive = false
	g.lastTransformEnd = g.now()
}

// SessionActive reports whether a transform session is live right now.
func (g *Guard) SessionActive() bool {
	return g.sessionActive
}

// TransformingID returns the object whose transform mark is still held. While a
// session is live this is that session's object. After the session ends the mark is
// held through the first release stage and reported as "" afterward, though full
// deselection protection (AllowDeselect) lasts the longer protection window. The two
// staged steps tolerate events queued before the session ended but delivered after.
func (g *Guard) TransformingID() string {
	if g.sessionActive {
		return g.transformingID
	}
	if g.transformingID == "" {
		return ""
	}
	if g.now().Sub(g.lastTransformEnd) < g.tuning.TransformingFirstStage {
		return g.transformingID
	}
	if g.now().Sub(g.lastTransformEnd) >= g.tuning.TransformingRelease {
		g.transformingID = ""
	}
	return ""
}

// RecordDragEnd timestamps the end of a pointer drag (any drag, gizmo or camera).
func (g *Guard) RecordDragEnd() {
	g.lastDragEnd = g.now()
}

// InClickGuard reports whether a click arriving now should be treated as the trailing
// synthetic click of a drag that just ended.
func (g *Guard) InClickGuard() bool {
	if g.lastDragEnd.IsZero() {
		return false
	}
	return g.now().Sub(g.lastDragEnd) < g.tuning.ClickGuard
}

// AllowDeselect reports whether an empty-space click may clear the selection now.
// Deselection is blocked while a session is live and for the protection window after
// the last session ended.
func (g *Guard) AllowDeselect() bool {
	if g.sessionActive {
		return false
	}
	if !g.lastTransformEnd.IsZero() && g.now().Sub(g.lastTransformEnd) < g.tuning.TransformProtection {
		return false
	}
	return true
}
