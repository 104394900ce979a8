package ecosystem

func actTree(t *turn, o *Organism) error { return actFlora(t, o, &t.cfg.Tree) }

func actGrass(t *turn, o *Organism) error { return actFlora(t, o, &t.cfg.Grass) }

// actFlora is shared by the producer species: they never move, advance a
// reproduction clock, may catch fire spontaneously and risk burning next to
// wildfire.
func actFlora(t *turn, o *Organism, p *FloraParams) error {
	senesce(o, p.MaxAge, CauseOldAge)
	if !o.IsAlive() {
		return nil
	}
	o.Turns++

	if p.IgnitionProbability > 0 && t.rng.Float64() < p.IgnitionProbability {
		o.SetDead(CauseIgnited)
		_, err := t.spawn(KindWildfire, o.loc)
		return err
	}

	hazard(t, o, p.FireSurvival)
	if !o.IsAlive() {
		return nil
	}

	if p.ReproductionInterval > 0 && o.Turns >= p.ReproductionInterval {
		o.Turns = 0
		if p.MaxSeeds > 0 {
			return reproduce(t, o, t.rng.IntN(p.MaxSeeds)+1)
		}
	}
	return nil
}
