package ecosystem

// actDeer runs one deer turn: age, hunger, fire, feeding, breeding and
// movement. Starvation is judged after the feeding scan so a deer on its last
// health point survives when food is adjacent.
func actDeer(t *turn, o *Organism) error {
	p := &t.cfg.Deer
	senesce(o, p.MaxAge, CauseOldAge)
	o.Health--
	if !o.IsAlive() {
		return nil
	}
	hazard(t, o, p.FireSurvival)
	if !o.IsAlive() {
		return nil
	}

	food, found, err := feed(t, o, p.Eats)
	if err != nil {
		return err
	}
	if found {
		o.Health += p.FoodValue
	}
	if o.Health <= 0 {
		o.SetDead(CauseStarvation)
		return nil
	}

	var avoid []Location
	if found {
		avoid = append(avoid, food)
	}
	if err := reproduce(t, o, deerLitter(t, o), avoid...); err != nil {
		return err
	}

	if found {
		return relocate(t, o, &food)
	}
	return relocate(t, o, nil)
}

// deerLitter draws the number of births for this turn, possibly zero.
func deerLitter(t *turn, o *Organism) int {
	p := &t.cfg.Deer
	if p.MaxLitter <= 0 || o.Age < p.BreedingAge || o.Health < p.BreedingHealth {
		return 0
	}
	if t.rng.Float64() > p.BreedingProbability {
		return 0
	}
	return t.rng.IntN(p.MaxLitter) + 1
}
