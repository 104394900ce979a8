package ecosystem

// Kind enumerates the closed set of organism variants.
type Kind uint8

const (
	KindDeer Kind = iota
	KindTree
	KindGrass
	KindWildfire
	kindCount
)

var kindNames = [kindCount]string{"deer", "tree", "grass", "wildfire"}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "unknown"
}

// Kinds returns every organism kind in declaration order.
func Kinds() []Kind {
	return []Kind{KindDeer, KindTree, KindGrass, KindWildfire}
}

// ParseKind maps a lower-case kind name back to its Kind.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), true
		}
	}
	return 0, false
}

// DeathCause records why an organism left the Alive state.
type DeathCause uint8

const (
	CauseNone DeathCause = iota
	CauseOldAge
	CauseStarvation
	CauseEaten
	CauseBurned
	CauseOvercrowding
	CauseBurnedOut
	CauseIgnited
	causeCount
)

var causeNames = [causeCount]string{"none", "old_age", "starvation", "eaten", "burned", "overcrowding", "burned_out", "ignited"}

// Causes returns every death cause, CauseNone included, in declaration order.
func Causes() []DeathCause {
	cs := make([]DeathCause, causeCount)
	for i := range cs {
		cs[i] = DeathCause(i)
	}
	return cs
}

func (c DeathCause) String() string {
	if c < causeCount {
		return causeNames[c]
	}
	return "unknown"
}

// MaxRecordedAge caps the age counter of species without senescence.
const MaxRecordedAge = 1 << 20

// Organism is the common record shared by every variant. Which counters are
// meaningful depends on Kind: deer use Health, flora use Turns as their
// reproduction clock, and wildfire uses Age as its burn time.
type Organism struct {
	ID   uint64
	Kind Kind

	Age    int
	Health int
	Turns  int

	// Born is the tick the organism entered the world; -1 for the initial
	// population.
	Born  int
	Cause DeathCause

	alive bool
	loc   Location
}

func newOrganism(id uint64, kind Kind, loc Location, born int) *Organism {
	return &Organism{ID: id, Kind: kind, Born: born, alive: true, loc: loc}
}

// IsAlive reports whether the organism is still in the Alive state.
func (o *Organism) IsAlive() bool { return o.alive }

// SetDead moves the organism to the terminal Dead state. It is idempotent and
// keeps the first cause. Removal from the field happens during reconciliation.
func (o *Organism) SetDead(cause DeathCause) {
	if !o.alive {
		return
	}
	o.alive = false
	o.Cause = cause
}

// Location returns the last location the field recorded for the organism.
func (o *Organism) Location() Location { return o.loc }
