//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"github.com/Pmuzik/Ecosystem-Project/internal/core"
)

type threatProvider interface {
	ThreatMask() []bool
}

type paletteProvider interface {
	Palette() []color.RGBA
}

// ThreatTint is blended over cells next to a burning wildfire.
var ThreatTint = color.RGBA{R: 255, G: 40, B: 40, A: 140}

// Overlay toggles debugging visuals on top of the base simulation: key 1
// highlights cells threatened by fire, key 2 shows the colour legend.
type Overlay struct {
	sim        core.Sim
	showThreat bool
	showLegend bool
	pixel      *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim) *Overlay {
	o := &Overlay{sim: sim}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update handles the overlay toggles.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showThreat = !o.showThreat
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showLegend = !o.showLegend
	}
}

// Mask returns the cells to tint this frame, or nil when the threat view is
// off or the sim has no notion of fire.
func (o *Overlay) Mask() []bool {
	if o == nil || !o.showThreat {
		return nil
	}
	if p, ok := o.sim.(threatProvider); ok {
		return p.ThreatMask()
	}
	return nil
}

// Draw paints the legend in the top-left corner of the grid.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if o == nil || !o.showLegend {
		return
	}
	p, ok := o.sim.(paletteProvider)
	if !ok {
		return
	}
	palette := p.Palette()
	face := basicfont.Face7x13
	for i, entry := range LegendEntries() {
		if entry.Index >= len(palette) {
			continue
		}
		y := 6 + i*16
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(12, 12)
		op.GeoM.Translate(6, float64(y))
		op.ColorScale.ScaleWithColor(palette[entry.Index])
		screen.DrawImage(o.pixel, op)
		text.Draw(screen, entry.Label, face, 24, y+11, color.White)
	}
}
