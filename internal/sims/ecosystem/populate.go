package ecosystem

import "fmt"

// populate fills an empty field cell by cell. Each cell draws once against the
// cumulative creation probabilities; trees favour moist cells, grass dry ones.
func (w *World) populate(seed int64) error {
	pop := w.cfg.Population
	wet := newMoisture(w.cfg.Habitat, seed)
	weight := w.cfg.Habitat.MoistureWeight

	for row := 0; row < w.field.Height(); row++ {
		for col := 0; col < w.field.Width(); col++ {
			loc := Location{Row: row, Col: col}
			m := wet.At(loc)

			r := w.rng.Float64()
			threshold := pop.WildfireProbability
			kind := Kind(kindCount)
			switch {
			case r < threshold:
				kind = KindWildfire
			case r < threshold+pop.DeerProbability:
				kind = KindDeer
			case r < threshold+pop.DeerProbability+pop.TreeProbability*bias(m, weight):
				kind = KindTree
			case r < threshold+pop.DeerProbability+pop.TreeProbability*bias(m, weight)+pop.GrassProbability*bias(1-m, weight):
				kind = KindGrass
			}
			if kind == kindCount {
				continue
			}
			if _, err := w.seedOrganism(kind, loc); err != nil {
				return fmt.Errorf("populate: %w", err)
			}
		}
	}
	return nil
}

// seedOrganism adds a member of the initial population with randomised state.
func (w *World) seedOrganism(kind Kind, loc Location) (*Organism, error) {
	w.nextID++
	o := newOrganism(w.nextID, kind, loc, -1)
	switch kind {
	case KindDeer:
		o.Age = w.rng.IntN(w.cfg.Deer.MaxAge)
		o.Health = w.rng.IntN(w.cfg.Deer.MaxHealth)
	case KindTree:
		o.Turns = w.rng.IntN(w.cfg.Tree.ReproductionInterval)
	case KindGrass:
		o.Turns = w.rng.IntN(w.cfg.Grass.ReproductionInterval)
	}
	if err := w.field.Place(o, loc); err != nil {
		return nil, err
	}
	w.organisms = append(w.organisms, o)
	return o, nil
}
