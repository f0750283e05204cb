package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	overlayFontSize   = 20
	overlayPadding    = 12
	overlayLineHeight = overlayFontSize + 4
	// updateInterval: only refresh FPS/Mem text every N frames to reduce allocations.
	updateInterval = 30
)

// Overlay holds the editor's debug overlays: FPS and heap counters top-right, and a
// status line (selection, active transform mode) bottom-left. All counters are off by
// default; the status line draws whenever it is non-empty.
type Overlay struct {
	ShowFPS      bool
	ShowMemAlloc bool
	status       string
	frameCount   uint32
	lastFpsText  string
	lastMemText  string
	lastMemStats runtime.MemStats
}

// New returns an Overlay with all counters hidden.
func New() *Overlay {
	return &Overlay{}
}

// SetShowFPS sets whether the FPS counter is drawn (top-right, green).
func (d *Overlay) SetShowFPS(show bool) {
	d.ShowFPS = show
}

// SetShowMemAlloc sets whether the memory allocation counter is drawn (top-right, under FPS).
func (d *Overlay) SetShowMemAlloc(show bool) {
	d.ShowMemAlloc = show
}

// SetStatus sets the bottom-left status line. An empty string hides it.
func (d *Overlay) SetStatus(status string) {
	d.status = status
}

// Draw renders the enabled overlays. Call after the 3D scene in the draw loop.
// Counter text is only recomputed every updateInterval frames to limit allocations.
func (d *Overlay) Draw() {
	d.frameCount++
	update := (d.frameCount % updateInterval) == 0
	if d.ShowFPS && d.lastFpsText == "" {
		update = true
	}
	if d.ShowMemAlloc && d.lastMemText == "" {
		update = true
	}

	screenW := int32(rl.GetScreenWidth())
	y := int32(overlayPadding)

	if d.ShowFPS {
		if update {
			d.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		if d.lastFpsText != "" {
			drawRightAligned(d.lastFpsText, screenW, y)
		}
		y += overlayLineHeight
	}

	if d.ShowMemAlloc {
		if update {
			runtime.ReadMemStats(&d.lastMemStats)
			mb := float64(d.lastMemStats.Alloc) / (1024 * 1024)
			d.lastMemText = fmt.Sprintf("Mem: %.2f MiB", mb)
		}
		if d.lastMemText != "" {
			drawRightAligned(d.lastMemText, screenW, y)
		}
	}

	if d.status != "" {
		sy := int32(rl.GetScreenHeight()) - overlayLineHeight - overlayPadding
		rl.DrawText(d.status, overlayPadding, sy, overlayFontSize, rl.RayWhite)
	}
}

func drawRightAligned(text string, screenW, y int32) {
	w := rl.MeasureText(text, overlayFontSize)
	rl.DrawText(text, screenW-w-overlayPadding, y, overlayFontSize, rl.Green)
}
