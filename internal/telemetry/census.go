package telemetry

import (
	"gonum.org/v1/gonum/stat"

	"github.com/Pmuzik/Ecosystem-Project/internal/sims/ecosystem"
)

// Census is one row of per-tick population data.
type Census struct {
	Tick int `csv:"tick" json:"tick"`

	// Population counts after reconciliation
	Deer     int `csv:"deer" json:"deer"`
	Trees    int `csv:"trees" json:"trees"`
	Grass    int `csv:"grass" json:"grass"`
	Wildfire int `csv:"wildfire" json:"wildfire"`

	// Structural changes merged by the tick
	Births int `csv:"births" json:"births"`
	Deaths int `csv:"deaths" json:"deaths"`

	// Deaths by cause
	OldAge       int `csv:"old_age" json:"old_age"`
	Starvation   int `csv:"starvation" json:"starvation"`
	Eaten        int `csv:"eaten" json:"eaten"`
	Burned       int `csv:"burned" json:"burned"`
	Overcrowding int `csv:"overcrowding" json:"overcrowding"`
	BurnedOut    int `csv:"burned_out" json:"burned_out"`
	Ignited      int `csv:"ignited" json:"ignited"`

	// Deer condition (sampled after reconciliation)
	DeerHealthMean float64 `csv:"deer_health_mean" json:"deer_health_mean"`
	DeerHealthStd  float64 `csv:"deer_health_std" json:"deer_health_std"`
	DeerAgeMean    float64 `csv:"deer_age_mean" json:"deer_age_mean"`
	DeerAgeStd     float64 `csv:"deer_age_std" json:"deer_age_std"`
}

// Total returns the number of live organisms.
func (c Census) Total() int {
	return c.Deer + c.Trees + c.Grass + c.Wildfire
}

// Count returns the population of kind k.
func (c Census) Count(k ecosystem.Kind) int {
	switch k {
	case ecosystem.KindDeer:
		return c.Deer
	case ecosystem.KindTree:
		return c.Trees
	case ecosystem.KindGrass:
		return c.Grass
	case ecosystem.KindWildfire:
		return c.Wildfire
	}
	return 0
}

// Take builds the census for the world's most recent tick.
func Take(w *ecosystem.World) Census {
	s := w.Stats()
	c := Census{
		Tick:     w.Tick(),
		Deer:     s.Population[ecosystem.KindDeer],
		Trees:    s.Population[ecosystem.KindTree],
		Grass:    s.Population[ecosystem.KindGrass],
		Wildfire: s.Population[ecosystem.KindWildfire],
	}
	for _, k := range ecosystem.Kinds() {
		c.Births += s.Births[k]
		c.Deaths += s.Deaths[k]
	}
	c.OldAge = s.Causes[ecosystem.CauseOldAge]
	c.Starvation = s.Causes[ecosystem.CauseStarvation]
	c.Eaten = s.Causes[ecosystem.CauseEaten]
	c.Burned = s.Causes[ecosystem.CauseBurned]
	c.Overcrowding = s.Causes[ecosystem.CauseOvercrowding]
	c.BurnedOut = s.Causes[ecosystem.CauseBurnedOut]
	c.Ignited = s.Causes[ecosystem.CauseIgnited]

	var health, age []float64
	for _, o := range w.Organisms() {
		if o.Kind != ecosystem.KindDeer {
			continue
		}
		health = append(health, float64(o.Health))
		age = append(age, float64(o.Age))
	}
	c.DeerHealthMean, c.DeerHealthStd = meanStd(health)
	c.DeerAgeMean, c.DeerAgeStd = meanStd(age)
	return c
}

// meanStd returns the sample mean and standard deviation of values, reporting
// zero instead of NaN for empty and single-element samples.
func meanStd(values []float64) (mean, std float64) {
	switch len(values) {
	case 0:
		return 0, 0
	case 1:
		return values[0], 0
	}
	return stat.MeanStdDev(values, nil)
}
