package ecosystem

import "fmt"

// Location is a (row, column) grid coordinate. It is a comparable value type
// and can be used directly as a map key.
type Location struct {
	Row int
	Col int
}

// Loc is shorthand for Location{Row: row, Col: col}.
func Loc(row, col int) Location { return Location{Row: row, Col: col} }

func (l Location) String() string { return fmt.Sprintf("(%d,%d)", l.Row, l.Col) }
