package main

import (
	"fmt"
	"os"

	"level-editor/internal/graphics"
	"level-editor/internal/logger"
)

func main() {
	log := logger.New()
	s, err := newShell(log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "editor:", err)
		os.Exit(1)
	}
	graphics.Run("Level Editor", s.update, s.draw, s.cleanup)
}
