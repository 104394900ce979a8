package ecosystem

import (
	"fmt"
	"log/slog"

	"github.com/Pmuzik/Ecosystem-Project/internal/core"
)

// TickStats summarises the structural changes applied by one reconciliation.
type TickStats struct {
	Tick       int
	Population [kindCount]int
	Births     [kindCount]int
	Deaths     [kindCount]int
	Causes     [causeCount]int
}

// World owns the field, the master organism list and the random source, and
// drives the per-tick sweep.
type World struct {
	name string
	cfg  Config

	field     *Field
	organisms []*Organism
	rng       *core.RNG
	nextID    uint64
	tick      int

	stats   TickStats
	display *core.ByteGrid
	log     *slog.Logger
}

// New returns an ecosystem world with the provided dimensions using defaults.
func New(w, h int) *World {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig returns a world configured from the provided options. The
// world is empty until Reset is called.
func NewWithConfig(cfg Config) *World {
	return &World{
		name:    "ecosystem",
		cfg:     cfg,
		field:   NewField(cfg.Width, cfg.Height),
		rng:     core.NewRNG(cfg.Seed),
		display: core.NewByteGrid(cfg.Width, cfg.Height),
		log:     slog.New(slog.DiscardHandler),
	}
}

// SetLogger routes world events to l. A nil logger discards them.
func (w *World) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	w.log = l.With("sim", w.name)
}

// Name returns the simulation identifier.
func (w *World) Name() string { return w.name }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.field.Width(), H: w.field.Height()} }

// Cells exposes the current display buffer.
func (w *World) Cells() []uint8 { return w.display.Cells() }

// Field exposes the live field.
func (w *World) Field() *Field { return w.field }

// Organisms returns the master list in insertion order. Callers must not
// modify it.
func (w *World) Organisms() []*Organism { return w.organisms }

// Tick returns the number of completed steps since the last Reset.
func (w *World) Tick() int { return w.tick }

// Stats returns the summary of the most recent reconciliation.
func (w *World) Stats() TickStats { return w.stats }

// Config returns a copy of the active configuration.
func (w *World) Config() Config { return w.cfg }

// Reset rebuilds the initial population using deterministic randomness. A
// zero seed falls back to the configured one.
func (w *World) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = w.cfg.Seed
	}
	w.rng.Seed(effective)
	w.field = NewField(w.cfg.Width, w.cfg.Height)
	w.display = core.NewByteGrid(w.cfg.Width, w.cfg.Height)
	w.organisms = nil
	w.nextID = 0
	w.tick = 0

	if err := w.populate(effective); err != nil {
		// Placement into a fresh field only fails on a programming error.
		panic(err)
	}
	w.stats = TickStats{Population: w.census()}
	w.rebuildDisplay()
	w.log.Info("world reset",
		"seed", effective,
		"width", w.cfg.Width,
		"height", w.cfg.Height,
		"organisms", len(w.organisms),
	)
}

// Spawn adds a fresh organism (age zero, full health) at loc and appends it to
// the master list. It is meant for drivers and scenario setup between ticks.
func (w *World) Spawn(kind Kind, loc Location) (*Organism, error) {
	if kind >= kindCount {
		return nil, fmt.Errorf("spawn: unknown kind %d", kind)
	}
	w.nextID++
	o := newOrganism(w.nextID, kind, loc, w.tick)
	initNewborn(&w.cfg, o)
	if err := w.field.Place(o, loc); err != nil {
		return nil, err
	}
	w.organisms = append(w.organisms, o)
	w.display.Set(loc.Col, loc.Row, encodeDisplay(o, w.tick))
	return o, nil
}

// Step advances the world by one tick: every organism alive in the current
// master list acts once, in insertion order, against the live field; births
// and deaths are merged only after the sweep completes.
func (w *World) Step() error {
	t := &turn{
		field:  w.field,
		rng:    w.rng,
		cfg:    &w.cfg,
		tick:   w.tick,
		nextID: &w.nextID,
	}

	snapshot := w.organisms
	for _, o := range snapshot {
		if !o.IsAlive() {
			continue
		}
		if err := act(t, o); err != nil {
			return fmt.Errorf("tick %d: %v #%d: %w", w.tick, o.Kind, o.ID, err)
		}
	}

	prev := w.stats.Population
	if err := w.reconcile(t.births); err != nil {
		return fmt.Errorf("tick %d: reconcile: %w", w.tick, err)
	}
	if w.cfg.CheckInvariants {
		if err := w.Verify(); err != nil {
			return fmt.Errorf("tick %d: %w", w.tick, err)
		}
	}
	w.tick++
	w.rebuildDisplay()

	for _, k := range Kinds() {
		if prev[k] > 0 && w.stats.Population[k] == 0 {
			w.log.Info("species extinct", "kind", k.String(), "tick", w.tick)
		}
	}
	w.log.Debug("step",
		"tick", w.tick,
		"organisms", len(w.organisms),
		"births", len(t.births),
	)
	return nil
}

// reconcile purges the dead from the field and master list, then merges the
// newborn sink in sink order.
func (w *World) reconcile(births []*Organism) error {
	stats := TickStats{Tick: w.tick}

	n := len(w.organisms)
	live := w.organisms[:0]
	for _, o := range w.organisms {
		if o.IsAlive() {
			live = append(live, o)
			continue
		}
		stats.Deaths[o.Kind]++
		stats.Causes[o.Cause]++
		if w.field.InBounds(o.loc) && w.field.occupant(o.loc) == o {
			if err := w.field.Clear(o.loc); err != nil {
				return err
			}
		}
	}
	clear(w.organisms[len(live):n])

	w.field.ResetReservations()
	for _, b := range births {
		if err := w.field.Place(b, b.loc); err != nil {
			return fmt.Errorf("newborn %v #%d: %w", b.Kind, b.ID, err)
		}
		live = append(live, b)
		stats.Births[b.Kind]++
	}
	w.organisms = live

	stats.Population = w.census()
	w.stats = stats
	return nil
}

func (w *World) census() [kindCount]int {
	var counts [kindCount]int
	for _, o := range w.organisms {
		counts[o.Kind]++
	}
	return counts
}

// Verify checks the structural invariants between the master list and the
// field: every listed organism is alive and owns the cell it records, and no
// cell holds anything else.
func (w *World) Verify() error {
	for _, o := range w.organisms {
		if !o.IsAlive() {
			return fmt.Errorf("dead %v #%d still listed: %w", o.Kind, o.ID, ErrDesync)
		}
		occ, err := w.field.OccupantAt(o.loc)
		if err != nil {
			return fmt.Errorf("%v #%d: %w: %w", o.Kind, o.ID, ErrDesync, err)
		}
		if occ != o {
			return fmt.Errorf("%v #%d records %v but the field does not hold it: %w", o.Kind, o.ID, o.loc, ErrDesync)
		}
	}
	if occupied := w.field.Occupied(); occupied != len(w.organisms) {
		return fmt.Errorf("field holds %d organisms, list has %d: %w", occupied, len(w.organisms), ErrDesync)
	}
	return nil
}

func init() {
	for _, name := range Presets() {
		core.Register(name, func(cfg map[string]string) core.Sim {
			w, err := NewPreset(name, FromMap(cfg))
			if err != nil {
				panic(err)
			}
			return w
		})
	}
}

// Presets lists the registered world presets.
func Presets() []string { return []string{"ecosystem", "meadow"} }

// NewPreset builds a world from c adjusted for the named preset.
func NewPreset(name string, c Config) (*World, error) {
	switch name {
	case "ecosystem":
	case "meadow":
		c = MeadowConfig(c)
	default:
		return nil, fmt.Errorf("unknown preset %q", name)
	}
	w := NewWithConfig(c)
	w.name = name
	return w, nil
}

// MeadowConfig strips trees and fire from c, leaving deer grazing on grass.
func MeadowConfig(c Config) Config {
	c.Population.TreeProbability = 0
	c.Population.WildfireProbability = 0
	c.Tree.IgnitionProbability = 0
	c.Grass.IgnitionProbability = 0
	return c
}
