package ecosystem

import (
	"errors"
	"slices"
	"testing"

	"github.com/Pmuzik/Ecosystem-Project/internal/core"
)

func newScenarioWorld(w, h int, tweak func(*Config)) *World {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	cfg.CheckInvariants = true
	cfg.Tree.IgnitionProbability = 0
	cfg.Grass.IgnitionProbability = 0
	if tweak != nil {
		tweak(&cfg)
	}
	return NewWithConfig(cfg)
}

func mustSpawn(t *testing.T, w *World, kind Kind, loc Location) *Organism {
	t.Helper()
	o, err := w.Spawn(kind, loc)
	if err != nil {
		t.Fatalf("spawn %v at %v: %v", kind, loc, err)
	}
	return o
}

func mustStep(t *testing.T, w *World) {
	t.Helper()
	if err := w.Step(); err != nil {
		t.Fatalf("step %d: %v", w.Tick(), err)
	}
}

func TestDeerEatsAdjacentGrass(t *testing.T) {
	w := newScenarioWorld(3, 3, nil)
	deer := mustSpawn(t, w, KindDeer, Loc(1, 1))
	deer.Health = 1
	grass := mustSpawn(t, w, KindGrass, Loc(2, 2))

	mustStep(t, w)

	if grass.IsAlive() || grass.Cause != CauseEaten {
		t.Fatalf("grass alive=%v cause=%v, want eaten", grass.IsAlive(), grass.Cause)
	}
	if !deer.IsAlive() {
		t.Fatalf("deer died of %v", deer.Cause)
	}
	// One tick of hunger, then the meal.
	if want := 1 - 1 + w.cfg.Deer.FoodValue; deer.Health != want {
		t.Fatalf("deer health = %d, want %d", deer.Health, want)
	}
	if deer.Location() != Loc(2, 2) {
		t.Fatalf("deer at %v, want the grass cell (2,2)", deer.Location())
	}
	if occ, _ := w.Field().OccupantAt(Loc(1, 1)); occ != nil {
		t.Fatal("deer's old cell should be empty")
	}
	if got := len(w.Organisms()); got != 1 {
		t.Fatalf("organisms = %d, want 1", got)
	}
}

func TestDeerDiesOfOvercrowding(t *testing.T) {
	w := newScenarioWorld(3, 3, func(c *Config) {
		c.Deer.Diet = []Kind{KindGrass}
	})
	deer := mustSpawn(t, w, KindDeer, Loc(1, 1))
	for _, loc := range w.Field().AdjacentLocations(Loc(1, 1)) {
		mustSpawn(t, w, KindTree, loc)
	}

	mustStep(t, w)

	if deer.IsAlive() || deer.Cause != CauseOvercrowding {
		t.Fatalf("deer alive=%v cause=%v, want overcrowding", deer.IsAlive(), deer.Cause)
	}
	if occ, _ := w.Field().OccupantAt(Loc(1, 1)); occ != nil {
		t.Fatal("dead deer still on the field after reconciliation")
	}
	if got := len(w.Organisms()); got != 8 {
		t.Fatalf("organisms = %d, want 8 trees", got)
	}
	if got := w.Stats().Causes[CauseOvercrowding]; got != 1 {
		t.Fatalf("overcrowding deaths = %d, want 1", got)
	}
}

func TestDeerStarvesWithoutFood(t *testing.T) {
	w := newScenarioWorld(3, 3, nil)
	deer := mustSpawn(t, w, KindDeer, Loc(1, 1))
	deer.Health = 1

	mustStep(t, w)

	if deer.IsAlive() || deer.Cause != CauseStarvation {
		t.Fatalf("deer alive=%v cause=%v, want starvation", deer.IsAlive(), deer.Cause)
	}
	if len(w.Organisms()) != 0 {
		t.Fatal("starved deer should be swept")
	}
}

func TestDeerLitterUsesOnlyFreeCells(t *testing.T) {
	w := newScenarioWorld(3, 3, func(c *Config) {
		c.Deer.Diet = []Kind{KindGrass}
		c.Deer.BreedingProbability = 1
	})
	parent := mustSpawn(t, w, KindDeer, Loc(0, 0))
	parent.Age = w.cfg.Deer.BreedingAge
	mustSpawn(t, w, KindTree, Loc(0, 1))
	mustSpawn(t, w, KindTree, Loc(1, 0))

	mustStep(t, w)

	stats := w.Stats()
	if stats.Births[KindDeer] != 1 {
		t.Fatalf("deer births = %d, want 1 (one free cell)", stats.Births[KindDeer])
	}
	occ, _ := w.Field().OccupantAt(Loc(1, 1))
	if occ == nil || occ.Kind != KindDeer || occ == parent {
		t.Fatalf("newborn not placed in the free cell, got %+v", occ)
	}
	if occ.Age != 0 || occ.Health != w.cfg.Deer.MaxHealth {
		t.Fatalf("newborn state age=%d health=%d", occ.Age, occ.Health)
	}
	// The only free cell went to the fawn, so the parent had nowhere to go.
	if parent.IsAlive() || parent.Cause != CauseOvercrowding {
		t.Fatalf("parent alive=%v cause=%v", parent.IsAlive(), parent.Cause)
	}
}

func TestDeerDiesOfOldAge(t *testing.T) {
	w := newScenarioWorld(10, 10, func(c *Config) {
		c.Deer.MaxAge = 20
		c.Deer.MaxHealth = 1000
		c.Deer.MaxLitter = 0
	})
	deer := mustSpawn(t, w, KindDeer, Loc(5, 5))

	for i := 0; i < 20; i++ {
		mustStep(t, w)
	}
	if !deer.IsAlive() || deer.Age != 20 {
		t.Fatalf("after 20 ticks alive=%v age=%d", deer.IsAlive(), deer.Age)
	}
	mustStep(t, w)
	if deer.IsAlive() || deer.Cause != CauseOldAge {
		t.Fatalf("after 21 ticks alive=%v cause=%v, want old age", deer.IsAlive(), deer.Cause)
	}
}

func TestFloraAgeIsBounded(t *testing.T) {
	w := newScenarioWorld(1, 1, nil)
	tree := mustSpawn(t, w, KindTree, Loc(0, 0))
	tree.Age = MaxRecordedAge

	mustStep(t, w)

	if !tree.IsAlive() || tree.Age != MaxRecordedAge {
		t.Fatalf("tree alive=%v age=%d, want saturated age", tree.IsAlive(), tree.Age)
	}
}

func TestTreeIgnitesInPlace(t *testing.T) {
	w := newScenarioWorld(3, 3, func(c *Config) {
		c.Tree.IgnitionProbability = 1
	})
	tree := mustSpawn(t, w, KindTree, Loc(1, 1))

	mustStep(t, w)

	if tree.IsAlive() || tree.Cause != CauseIgnited {
		t.Fatalf("tree alive=%v cause=%v", tree.IsAlive(), tree.Cause)
	}
	occ, _ := w.Field().OccupantAt(Loc(1, 1))
	if occ == nil || occ.Kind != KindWildfire {
		t.Fatalf("expected wildfire where the tree stood, got %+v", occ)
	}
	if got := w.Stats().Births[KindWildfire]; got != 1 {
		t.Fatalf("wildfire births = %d, want 1", got)
	}
}

func TestWildfireBurnsOut(t *testing.T) {
	w := newScenarioWorld(3, 3, func(c *Config) {
		c.Wildfire.BurnTime = 2
		c.Wildfire.SpreadProbability = 0
	})
	fire := mustSpawn(t, w, KindWildfire, Loc(1, 1))

	mustStep(t, w)
	mustStep(t, w)
	if !fire.IsAlive() {
		t.Fatal("fire burned out early")
	}
	mustStep(t, w)
	if fire.IsAlive() || fire.Cause != CauseBurnedOut {
		t.Fatalf("fire alive=%v cause=%v", fire.IsAlive(), fire.Cause)
	}
	if w.Field().Occupied() != 0 {
		t.Fatal("burned out fire left on the field")
	}
}

func TestNewbornsDoNotActInTheirBirthTick(t *testing.T) {
	w := newScenarioWorld(5, 5, func(c *Config) {
		c.Grass.ReproductionInterval = 1
		c.Grass.MaxSeeds = 2
	})
	parent := mustSpawn(t, w, KindGrass, Loc(2, 2))

	mustStep(t, w)

	for _, o := range w.Organisms() {
		if o != parent && (o.Age != 0 || o.Turns != 0) {
			t.Fatalf("newborn #%d acted in its birth tick: age=%d turns=%d", o.ID, o.Age, o.Turns)
		}
	}
	if w.Stats().Births[KindGrass] == 0 {
		t.Fatal("expected the grass to seed")
	}
}

func TestSpawnRejectsOccupiedCell(t *testing.T) {
	w := newScenarioWorld(2, 2, nil)
	mustSpawn(t, w, KindGrass, Loc(0, 0))
	if _, err := w.Spawn(KindDeer, Loc(0, 0)); !errors.Is(err, ErrInvalidPlacement) {
		t.Fatalf("spawn on occupied cell err = %v", err)
	}
	if _, err := w.Spawn(KindDeer, Loc(3, 0)); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("spawn out of bounds err = %v", err)
	}
	if len(w.Organisms()) != 1 {
		t.Fatal("failed spawns must not join the master list")
	}
}

func TestStepSurfacesDesync(t *testing.T) {
	w := newScenarioWorld(3, 3, nil)
	deer := mustSpawn(t, w, KindDeer, Loc(1, 1))
	if err := w.Field().Clear(deer.Location()); err != nil {
		t.Fatal(err)
	}
	if err := w.Verify(); !errors.Is(err, ErrDesync) {
		t.Fatalf("Verify err = %v, want ErrDesync", err)
	}
	if err := w.Step(); !errors.Is(err, ErrDesync) {
		t.Fatalf("Step err = %v, want ErrDesync", err)
	}
}

type organismState struct {
	id    uint64
	kind  Kind
	loc   Location
	age   int
	turns int
	hp    int
}

func worldState(w *World) []organismState {
	out := make([]organismState, 0, len(w.Organisms()))
	for _, o := range w.Organisms() {
		out = append(out, organismState{o.ID, o.Kind, o.loc, o.Age, o.Turns, o.Health})
	}
	return out
}

func TestDeterministicReplay(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 48
	cfg.Height = 32
	cfg.CheckInvariants = true
	cfg.Population.WildfireProbability = 0.01

	a := NewWithConfig(cfg)
	b := NewWithConfig(cfg)
	a.Reset(99)
	b.Reset(99)
	initial := worldState(a)

	for i := 0; i < 60; i++ {
		if !slices.Equal(a.Cells(), b.Cells()) {
			t.Fatalf("field diverged at tick %d", i)
		}
		if !slices.Equal(worldState(a), worldState(b)) {
			t.Fatalf("organisms diverged at tick %d", i)
		}
		mustStep(t, a)
		mustStep(t, b)
	}

	c := NewWithConfig(cfg)
	c.Reset(100)
	if slices.Equal(initial, worldState(c)) {
		t.Fatal("different seeds should not replay identically")
	}
}

func TestResetDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 32
	cfg.Height = 24
	w := NewWithConfig(cfg)

	w.Reset(0)
	initial := slices.Clone(w.Cells())
	initialState := worldState(w)
	if len(initialState) == 0 {
		t.Fatal("Reset should seed an initial population")
	}
	mustStep(t, w)
	w.Reset(0)
	if !slices.Equal(initial, w.Cells()) || !slices.Equal(initialState, worldState(w)) {
		t.Fatal("Reset with the config seed is not deterministic")
	}
	if w.Tick() != 0 {
		t.Fatalf("tick after Reset = %d", w.Tick())
	}
	if err := w.Verify(); err != nil {
		t.Fatalf("initial population violates invariants: %v", err)
	}
}

func TestWorldInvariantsHoldAcrossTicks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 40
	cfg.Height = 30
	cfg.Population.WildfireProbability = 0.01
	cfg.Tree.IgnitionProbability = 0.01
	w := NewWithConfig(cfg)
	w.Reset(7)

	dead := map[*Organism]bool{}
	for tick := 0; tick < 120; tick++ {
		before := slices.Clone(w.Organisms())
		mustStep(t, w)

		if err := w.Verify(); err != nil {
			t.Fatalf("tick %d: %v", tick, err)
		}
		for _, o := range before {
			if !o.IsAlive() {
				dead[o] = true
			}
		}
		for o := range dead {
			if o.IsAlive() {
				t.Fatalf("tick %d: %v #%d came back to life", tick, o.Kind, o.ID)
			}
		}
		for _, o := range w.Organisms() {
			if dead[o] {
				t.Fatalf("tick %d: dead %v #%d still listed", tick, o.Kind, o.ID)
			}
			if o.Kind == KindDeer && o.Age > w.cfg.Deer.MaxAge {
				t.Fatalf("tick %d: deer #%d outlived max age (%d)", tick, o.ID, o.Age)
			}
		}
		for i := 0; i < w.Field().Width()*w.Field().Height(); i++ {
			if occ := w.Field().cells[i]; occ != nil && dead[occ] {
				t.Fatalf("tick %d: dead %v #%d still on the field", tick, occ.Kind, occ.ID)
			}
		}
	}
}

func TestRegisteredSims(t *testing.T) {
	factory, ok := core.Sims()["meadow"]
	if !ok {
		t.Fatal("meadow preset not registered")
	}
	sim := factory(map[string]string{"w": "30", "h": "20"})
	if sim.Name() != "meadow" {
		t.Fatalf("name = %q", sim.Name())
	}
	if got := sim.Size(); got != (core.Size{W: 30, H: 20}) {
		t.Fatalf("size = %+v", got)
	}
	sim.Reset(5)
	w := sim.(*World)
	for _, o := range w.Organisms() {
		if o.Kind == KindTree || o.Kind == KindWildfire {
			t.Fatalf("meadow seeded a %v", o.Kind)
		}
	}
	if _, ok := core.Sims()["ecosystem"]; !ok {
		t.Fatal("ecosystem preset not registered")
	}
	if _, err := NewPreset("tundra", DefaultConfig()); err == nil {
		t.Fatal("unknown preset should fail")
	}
}

func TestSetParameters(t *testing.T) {
	w := New(10, 10)
	if !w.SetFloatParameter("tree_fire_survival", 1.5) {
		t.Fatal("tree fire survival should be adjustable")
	}
	if got := w.cfg.Tree.FireSurvival; got != 1 {
		t.Fatalf("survival = %f, want clamp to 1", got)
	}
	if w.SetIntParameter("w", 50) {
		t.Fatal("dimensions must not change on a live world")
	}
	if !w.SetIntParameter("deer_max_litter", 4) || w.cfg.Deer.MaxLitter != 4 {
		t.Fatal("deer max litter should be adjustable")
	}
	if w.SetFloatParameter("nonexistent", 1) {
		t.Fatal("unknown keys must be rejected")
	}

	p, ok := w.Parameters().Lookup("deer_max_litter")
	if !ok || p.Value != "4" {
		t.Fatalf("snapshot deer_max_litter = %+v, %v", p, ok)
	}
	if p, ok := w.Parameters().Lookup("deer_diet"); !ok || p.Value != "grass,tree" {
		t.Fatalf("snapshot diet = %+v, %v", p, ok)
	}
	for _, c := range w.ParameterControls() {
		if c.Key == "w" || c.Key == "h" {
			t.Fatal("dimension controls must not be exposed")
		}
	}
}
