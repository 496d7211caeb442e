package ui

import (
	"scratchcard/internal/host"
	"scratchcard/internal/scratch"

	"github.com/hajimehoshi/ebiten/v2"
)

// Run opens a window sized for n cards and blocks until it closes.
func Run(game *Game, n int) error {
	w, h := game.grid.Size(max(n, 1))
	ebiten.SetWindowSize(int(w), int(h))
	ebiten.SetWindowTitle("Scratch cards")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	return ebiten.RunGame(game)
}

// GridFor lays cards of the given size out in two columns.
func GridFor(cell scratch.Box) host.Grid {
	return host.Grid{Cols: 2, Cell: cell, Gap: 16, Margin: 24, Caption: 18}
}
