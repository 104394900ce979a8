package ecosystem

import "image/color"

const (
	displayKindMask  = 0x07
	displayYoungBit  = 0x08
	displayPaletteSz = 16
)

var ecosystemPalette = buildEcosystemPalette()

// Palette exposes the color palette used for rendering the ecosystem world.
func (w *World) Palette() []color.RGBA {
	return ecosystemPalette
}

func buildEcosystemPalette() []color.RGBA {
	palette := make([]color.RGBA, displayPaletteSz)
	for i := range palette {
		v := uint8(i)
		kind, ok := kindFromDisplay(v)
		palette[i] = toRGBA(paletteColorFor(kind, ok, v&displayYoungBit != 0))
	}
	return palette
}

func toRGBA(c color.NRGBA) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func paletteColorFor(kind Kind, occupied, young bool) color.NRGBA {
	ground := color.NRGBA{R: 70, G: 52, B: 32, A: 255}
	if !occupied {
		return ground
	}
	var base color.NRGBA
	switch kind {
	case KindDeer:
		base = color.NRGBA{R: 196, G: 140, B: 80, A: 255}
	case KindTree:
		base = color.NRGBA{R: 40, G: 100, B: 55, A: 255}
	case KindGrass:
		base = color.NRGBA{R: 70, G: 160, B: 80, A: 255}
	case KindWildfire:
		base = color.NRGBA{R: 255, G: 130, B: 40, A: 255}
	}
	if young {
		return blendColors(base, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, 0.35)
	}
	return base
}

func blendColors(base, overlay color.NRGBA, overlayWeight float64) color.NRGBA {
	if overlayWeight <= 0 {
		return base
	}
	if overlayWeight >= 1 {
		return overlay
	}
	br, bg, bb, ba := float64(base.R), float64(base.G), float64(base.B), float64(base.A)
	or, og, ob, oa := float64(overlay.R), float64(overlay.G), float64(overlay.B), float64(overlay.A)
	w := overlayWeight
	inv := 1 - w
	return color.NRGBA{
		R: uint8(br*inv + or*w + 0.5),
		G: uint8(bg*inv + og*w + 0.5),
		B: uint8(bb*inv + ob*w + 0.5),
		A: uint8(ba*inv + oa*w + 0.5),
	}
}

// DisplayValue is the Cells() byte of a mature organism of the given kind.
func DisplayValue(kind Kind) uint8 {
	return (uint8(kind) + 1) & displayKindMask
}

func kindFromDisplay(v uint8) (Kind, bool) {
	k := v & displayKindMask
	if k == 0 || k > uint8(kindCount) {
		return 0, false
	}
	return Kind(k - 1), true
}

// encodeDisplay packs an occupant into one display byte: the low bits hold
// kind+1 (0 = empty) and the young bit marks organisms born in the last tick.
func encodeDisplay(o *Organism, tick int) uint8 {
	if o == nil {
		return 0
	}
	v := DisplayValue(o.Kind)
	if o.Born >= 0 && o.Born >= tick-1 {
		v |= displayYoungBit
	}
	return v
}

func (w *World) rebuildDisplay() {
	cells := w.display.Cells()
	for i := range cells {
		cells[i] = encodeDisplay(w.field.cells[i], w.tick)
	}
}

// ThreatMask marks every cell not already burning that is adjacent to a live
// wildfire, in row-major order.
func (w *World) ThreatMask() []bool {
	mask := make([]bool, len(w.field.cells))
	for _, o := range w.organisms {
		if o.Kind != KindWildfire || !o.IsAlive() {
			continue
		}
		for _, n := range w.field.AdjacentLocations(o.loc) {
			occ := w.field.occupant(n)
			if occ == nil || occ.Kind != KindWildfire {
				mask[w.field.index(n)] = true
			}
		}
	}
	return mask
}
