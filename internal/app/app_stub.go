//go:build !ebiten

package app

import (
	"log/slog"

	"github.com/Pmuzik/Ecosystem-Project/internal/core"
)

// Game is a placeholder that satisfies the API expected by the GUI build.
type Game struct{}

// New panics to indicate that the ebiten build tag is required for GUI support.
func New(core.Sim, int, int, int64) *Game {
	panic("app.New requires building with the 'ebiten' tag")
}

// SetCensusSink is a no-op placeholder.
func (g *Game) SetCensusSink(CensusSink) {}

// SetLogger is a no-op placeholder.
func (g *Game) SetLogger(*slog.Logger) {}

// Reset is a no-op placeholder.
func (g *Game) Reset(int64) {}

// Update always reports that the GUI build tag is missing.
func (g *Game) Update() error { return ErrNoGUI }

// Draw is a no-op placeholder to satisfy the interface shape.
func (g *Game) Draw(any) {}

// Layout returns zeros in the headless build.
func (g *Game) Layout(int, int) (int, int) { return 0, 0 }
