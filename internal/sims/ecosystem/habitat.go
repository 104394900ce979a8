package ecosystem

import (
	"math"

	"github.com/ojrac/opensimplex-go"
)

// moisture samples octave simplex noise normalised to [0, 1].
type moisture struct {
	os         opensimplex.Noise
	scale      float64
	amplitudes []float64
	total      float64
}

func newMoisture(p HabitatParams, seed int64) *moisture {
	octaves := p.Octaves
	if octaves < 1 {
		octaves = 1
	}
	m := &moisture{
		os:         opensimplex.NewNormalized(seed),
		scale:      p.NoiseScale,
		amplitudes: make([]float64, octaves),
	}
	for i := range m.amplitudes {
		m.amplitudes[i] = math.Pow(p.Persistence, float64(i))
		m.total += m.amplitudes[i]
	}
	return m
}

// At returns the moisture of the cell at loc.
func (m *moisture) At(loc Location) float64 {
	if m.total == 0 {
		return 0.5
	}
	x := float64(loc.Col) * m.scale
	y := float64(loc.Row) * m.scale
	var sum float64
	for i, amp := range m.amplitudes {
		freq := math.Pow(2, float64(i))
		sum += amp * m.os.Eval2(x*freq, y*freq)
	}
	return sum / m.total
}

// bias maps a habitat value in [0, 1] to a density multiplier in
// [1-weight, 1+weight].
func bias(v, weight float64) float64 {
	return 1 + weight*(2*v-1)
}
