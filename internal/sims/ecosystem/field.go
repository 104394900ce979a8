package ecosystem

import "fmt"

// neighborOffsets lists the Moore neighbourhood in the fixed order used for
// every adjacency query: rows top to bottom, columns left to right.
var neighborOffsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Field owns the occupancy slots of a bounded grid. Each cell holds at most
// one organism. Organisms only cache their Location; the Field is the source
// of truth.
type Field struct {
	w, h     int
	cells    []*Organism
	reserved []bool
	pending  int
}

// NewField allocates an empty field of the given dimensions.
func NewField(width, height int) *Field {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Field{
		w:        width,
		h:        height,
		cells:    make([]*Organism, width*height),
		reserved: make([]bool, width*height),
	}
}

// Width returns the number of columns.
func (f *Field) Width() int { return f.w }

// Height returns the number of rows.
func (f *Field) Height() int { return f.h }

// InBounds reports whether loc lies inside the grid.
func (f *Field) InBounds(loc Location) bool {
	return loc.Row >= 0 && loc.Row < f.h && loc.Col >= 0 && loc.Col < f.w
}

func (f *Field) index(loc Location) int { return loc.Row*f.w + loc.Col }

// OccupantAt returns the organism recorded at loc, or nil for an empty cell.
func (f *Field) OccupantAt(loc Location) (*Organism, error) {
	if !f.InBounds(loc) {
		return nil, fmt.Errorf("occupant at %v: %w", loc, ErrOutOfBounds)
	}
	return f.cells[f.index(loc)], nil
}

// occupant is OccupantAt for locations already known to be in bounds.
func (f *Field) occupant(loc Location) *Organism {
	return f.cells[f.index(loc)]
}

// AdjacentLocations returns the in-bounds neighbours of loc in the fixed
// neighbour order. It never yields an out-of-bounds location.
func (f *Field) AdjacentLocations(loc Location) []Location {
	adj := make([]Location, 0, len(neighborOffsets))
	for _, d := range neighborOffsets {
		n := Location{Row: loc.Row + d[0], Col: loc.Col + d[1]}
		if f.InBounds(n) {
			adj = append(adj, n)
		}
	}
	return adj
}

// Free reports whether loc is in bounds, unoccupied and not reserved for a
// newborn.
func (f *Field) Free(loc Location) bool {
	if !f.InBounds(loc) {
		return false
	}
	i := f.index(loc)
	return f.cells[i] == nil && !f.reserved[i]
}

// FreeAdjacentLocations returns the subset of AdjacentLocations that is free,
// in the same order.
func (f *Field) FreeAdjacentLocations(loc Location) []Location {
	adj := f.AdjacentLocations(loc)
	free := adj[:0]
	for _, n := range adj {
		if f.Free(n) {
			free = append(free, n)
		}
	}
	return free
}

// Place puts o at loc and updates o's recorded location. A dead occupant that
// has not been swept yet is overwritten; a live one is an error.
func (f *Field) Place(o *Organism, loc Location) error {
	if !f.InBounds(loc) {
		return fmt.Errorf("place %v at %v: %w: %w", o.Kind, loc, ErrInvalidPlacement, ErrOutOfBounds)
	}
	i := f.index(loc)
	if cur := f.cells[i]; cur != nil && cur != o && cur.IsAlive() {
		return fmt.Errorf("place %v at %v: held by live %v #%d: %w", o.Kind, loc, cur.Kind, cur.ID, ErrInvalidPlacement)
	}
	f.cells[i] = o
	o.loc = loc
	return nil
}

// Clear drops the reference held at loc. The organism itself is untouched.
func (f *Field) Clear(loc Location) error {
	if !f.InBounds(loc) {
		return fmt.Errorf("clear %v: %w", loc, ErrOutOfBounds)
	}
	f.cells[f.index(loc)] = nil
	return nil
}

// Move relocates o from its recorded location to an adjacent target.
func (f *Field) Move(o *Organism, to Location) error {
	from := o.loc
	if cur, err := f.OccupantAt(from); err != nil {
		return fmt.Errorf("move %v #%d: %w", o.Kind, o.ID, err)
	} else if cur != o {
		return fmt.Errorf("move %v #%d from %v: %w", o.Kind, o.ID, from, ErrDesync)
	}
	if err := f.Place(o, to); err != nil {
		return err
	}
	f.cells[f.index(from)] = nil
	return nil
}

// Reserve marks loc as the target of a pending newborn so no other newborn or
// mover can claim it before the end-of-tick merge.
func (f *Field) Reserve(loc Location) error {
	if !f.Free(loc) {
		if !f.InBounds(loc) {
			return fmt.Errorf("reserve %v: %w", loc, ErrOutOfBounds)
		}
		if f.reserved[f.index(loc)] {
			return fmt.Errorf("reserve %v: already reserved: %w", loc, ErrInvalidPlacement)
		}
		// Occupied cells may only be claimed by a dying occupant's successor.
		if cur := f.occupant(loc); cur.IsAlive() {
			return fmt.Errorf("reserve %v: held by live %v: %w", loc, cur.Kind, ErrInvalidPlacement)
		}
	}
	f.reserved[f.index(loc)] = true
	f.pending++
	return nil
}

// Reserved reports whether loc is claimed by a pending newborn.
func (f *Field) Reserved(loc Location) bool {
	return f.InBounds(loc) && f.reserved[f.index(loc)]
}

// ResetReservations releases every pending claim.
func (f *Field) ResetReservations() {
	if f.pending == 0 {
		return
	}
	for i := range f.reserved {
		f.reserved[i] = false
	}
	f.pending = 0
}

// Occupied counts the cells that currently hold an organism.
func (f *Field) Occupied() int {
	n := 0
	for _, o := range f.cells {
		if o != nil {
			n++
		}
	}
	return n
}
