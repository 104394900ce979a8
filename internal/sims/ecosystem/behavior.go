package ecosystem

import "fmt"

// Rand is the randomness source every behaviour draws from. *core.RNG
// satisfies it; tests may substitute scripted sources.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// turn carries everything a behaviour may touch during one sweep: the live
// field, the shared random source, the parameters and the newborn sink.
type turn struct {
	field  *Field
	rng    Rand
	cfg    *Config
	tick   int
	nextID *uint64

	births []*Organism
}

type behaviorFunc func(t *turn, o *Organism) error

// behaviors is the dispatch table from variant to its act implementation.
var behaviors = [kindCount]behaviorFunc{
	KindDeer:     actDeer,
	KindTree:     actTree,
	KindGrass:    actGrass,
	KindWildfire: actWildfire,
}

// act advances o by one tick.
func act(t *turn, o *Organism) error {
	if o.Kind >= kindCount {
		return fmt.Errorf("organism #%d has unknown kind %d", o.ID, o.Kind)
	}
	return behaviors[o.Kind](t, o)
}

// senesce increments the age counter and applies the species max age. A max
// age of zero disables senescence.
func senesce(o *Organism, maxAge int, cause DeathCause) {
	if o.Age < MaxRecordedAge {
		o.Age++
	}
	if maxAge > 0 && o.Age > maxAge {
		o.SetDead(cause)
	}
}

// hazard rolls once against survival for the first live wildfire found in
// neighbour order.
func hazard(t *turn, o *Organism, survival float64) {
	for _, where := range t.field.AdjacentLocations(o.loc) {
		occ := t.field.occupant(where)
		if occ == nil || occ.Kind != KindWildfire || !occ.IsAlive() {
			continue
		}
		if t.rng.Float64() >= survival {
			o.SetDead(CauseBurned)
		}
		return
	}
}

// feed kills and clears the first live adjacent organism accepted by eats and
// returns its former location.
func feed(t *turn, o *Organism, eats func(Kind) bool) (Location, bool, error) {
	for _, where := range t.field.AdjacentLocations(o.loc) {
		prey := t.field.occupant(where)
		if prey == nil || !prey.IsAlive() || !eats(prey.Kind) {
			continue
		}
		prey.SetDead(CauseEaten)
		if err := t.field.Clear(where); err != nil {
			return Location{}, false, err
		}
		return where, true, nil
	}
	return Location{}, false, nil
}

// reproduce places up to births newborns of the parent's kind into free
// adjacent cells, consuming each candidate cell as it is claimed. Cells in
// avoid are never used.
func reproduce(t *turn, parent *Organism, births int, avoid ...Location) error {
	if births <= 0 {
		return nil
	}
	free := t.field.FreeAdjacentLocations(parent.loc)
	for b := 0; b < births && len(free) > 0; {
		loc := free[0]
		free = free[1:]
		if contains(avoid, loc) {
			continue
		}
		if _, err := t.spawn(parent.Kind, loc); err != nil {
			return err
		}
		b++
	}
	return nil
}

// spawn reserves loc and appends a newborn to the sink. The newborn joins the
// field only when the sweep is reconciled.
func (t *turn) spawn(kind Kind, loc Location) (*Organism, error) {
	if err := t.field.Reserve(loc); err != nil {
		return nil, fmt.Errorf("spawn %v: %w", kind, err)
	}
	*t.nextID++
	o := newOrganism(*t.nextID, kind, loc, t.tick)
	initNewborn(t.cfg, o)
	t.births = append(t.births, o)
	return o, nil
}

// initNewborn gives a freshly born organism its full starting state.
func initNewborn(cfg *Config, o *Organism) {
	o.Age = 0
	o.Turns = 0
	if o.Kind == KindDeer {
		o.Health = cfg.Deer.MaxHealth
	}
}

// relocate moves o to target when one is given, otherwise to the first free
// adjacent cell. With nowhere to go the organism dies of overcrowding.
func relocate(t *turn, o *Organism, target *Location) error {
	if target == nil {
		free := t.field.FreeAdjacentLocations(o.loc)
		if len(free) == 0 {
			o.SetDead(CauseOvercrowding)
			return nil
		}
		target = &free[0]
	}
	return t.field.Move(o, *target)
}

func contains(locs []Location, loc Location) bool {
	for _, l := range locs {
		if l == loc {
			return true
		}
	}
	return false
}
