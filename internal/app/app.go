//go:build ebiten

package app

import (
	"image/color"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/Pmuzik/Ecosystem-Project/internal/core"
	"github.com/Pmuzik/Ecosystem-Project/internal/render"
	"github.com/Pmuzik/Ecosystem-Project/internal/sims/ecosystem"
	"github.com/Pmuzik/Ecosystem-Project/internal/telemetry"
	"github.com/Pmuzik/Ecosystem-Project/internal/ui"
)

type paletteProvider interface {
	Palette() []color.RGBA
}

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD
	palette []color.RGBA
	sink    CensusSink
	log     *slog.Logger

	scale    int
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, scale, hudWidth int, seed int64) *Game {
	if scale <= 0 {
		scale = 1
	}
	g := &Game{
		sim:     sim,
		painter: render.NewGridPainter(sim.Size().W, sim.Size().H),
		overlay: ui.NewOverlay(sim),
		hud:     ui.NewHUD(sim, hudWidth),
		log:     slog.New(slog.DiscardHandler),
		scale:   scale,
		seed:    seed,
	}
	if p, ok := sim.(paletteProvider); ok {
		g.palette = p.Palette()
	}
	return g
}

// SetCensusSink installs fn to receive the census after every step.
func (g *Game) SetCensusSink(fn CensusSink) { g.sink = fn }

// SetLogger routes game events to l.
func (g *Game) SetLogger(l *slog.Logger) {
	if l != nil {
		g.log = l
	}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
}

// Update handles per-frame logic and advances the simulation. A failed step
// stops the game loop with that error.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
		g.log.Info("reseeded", "seed", g.seed)
	}

	g.overlay.Update()

	if !g.paused || g.tickOnce {
		if err := g.sim.Step(); err != nil {
			return err
		}
		g.tickOnce = false
		if g.sink != nil {
			if world, ok := g.sim.(*ecosystem.World); ok {
				if err := g.sink(telemetry.Take(world)); err != nil {
					return err
				}
			}
		}
	}

	g.hud.Update(g.gridWidth(), g.status())
	return nil
}

func (g *Game) status() []string {
	world, ok := g.sim.(*ecosystem.World)
	if !ok {
		return nil
	}
	return ui.StatusLines(telemetry.Take(world), g.paused)
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.Cells(), g.palette, g.overlay.Mask(), ui.ThreatTint, g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.gridWidth())
}

func (g *Game) gridWidth() int { return g.sim.Size().W * g.scale }

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	h := s.H * g.scale
	if hh := g.hud.Height(); hh > h {
		h = hh
	}
	return g.gridWidth() + g.hud.Width(), h
}
