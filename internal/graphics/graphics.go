package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

const (
	windowWidth  = 1600
	windowHeight = 900
)

// Run starts the editor window and main loop. Each frame it calls update (input,
// selection, terrain edits), then clears the screen and calls draw (3D scene plus
// overlays). cleanup runs once after the loop exits, while the GL context is still
// alive, so GPU resources can be released there. This keeps the graphics layer
// separate from editing logic.
// The window is resizable and windowed; close via the window button.
func Run(title string, update, draw, cleanup func()) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(windowWidth, windowHeight, title)
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull) // ESC cancels a drag or deselects, it must not quit
	rl.SetTargetFPS(60)

	for !rl.WindowShouldClose() {
		update()

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(24, 26, 32, 255))
		draw()
		rl.EndDrawing()
	}

	if cleanup != nil {
		cleanup()
	}
}
