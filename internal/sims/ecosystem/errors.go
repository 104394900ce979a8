package ecosystem

import "errors"

var (
	// ErrOutOfBounds is returned for any query or mutation outside the grid.
	ErrOutOfBounds = errors.New("location out of bounds")
	// ErrInvalidPlacement is returned when a placement targets a cell that is
	// out of bounds or already held by a live organism.
	ErrInvalidPlacement = errors.New("invalid placement")
	// ErrDesync marks a disagreement between the field and an organism's
	// recorded location, or any other broken world invariant.
	ErrDesync = errors.New("field desynchronized")
)
