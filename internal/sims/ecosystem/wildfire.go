package ecosystem

// actWildfire burns in place until its burn time is spent, occasionally
// throwing embers into free neighbouring cells.
func actWildfire(t *turn, o *Organism) error {
	p := &t.cfg.Wildfire
	senesce(o, p.BurnTime, CauseBurnedOut)
	if !o.IsAlive() {
		return nil
	}
	if p.MaxSpread <= 0 || p.SpreadProbability <= 0 {
		return nil
	}
	if t.rng.Float64() >= p.SpreadProbability {
		return nil
	}
	return reproduce(t, o, t.rng.IntN(p.MaxSpread)+1)
}
