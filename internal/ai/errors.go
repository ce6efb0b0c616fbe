package ai

import (
	"errors"
	"fmt"
)

// ErrNoMoveAvailable is a normal outcome of move selection, not a fault:
// the agent has no cell left it is willing to pick. Callers branch on it
// with errors.Is.
var ErrNoMoveAvailable = errors.New("no move available")

// InvalidObservationError signals a contract violation by the board
// collaborator: an out-of-bounds cell or a neighbor count that cannot be
// true. The observation is rejected before any state changes.
type InvalidObservationError struct {
	Cell   Cell
	Count  int
	Reason string
}

// [InvalidObservationError] implements [error]
func (e *InvalidObservationError) Error() string {
	return fmt.Sprintf("invalid observation %s=%d: %s", e.Cell, e.Count, e.Reason)
}
