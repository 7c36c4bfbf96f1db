// Package cell provides hook-pipelined mutable state cells: a scalar value
// cell and a transformed list cell. A cell owns its storage exclusively and
// exposes it through a pair of bidirectional transforms between the internal
// and external representation, with optional before/after hooks wrapping every
// read and write. Each cell also exposes a bypass view, a privileged accessor
// over the same storage that applies the transforms but skips all hooks.
//
// Hooks fire strictly before the corresponding state change, so a failing hook
// or transform always leaves the cell's storage untouched. Hooks are permitted
// to mutate the cell they are attached to (an access hook appending an element
// is a supported pattern, not a reentrancy bug).
//
// Cells are not safe for concurrent use. Callers sharing a cell across
// goroutines must synchronise externally.
package cell

import (
	"errors"
	"fmt"
)

// Transform maps a value between two representations of a cell. Transforms may
// fail to reject malformed input; a failing transform aborts the surrounding
// operation before any state change.
type Transform[A, B any] func(A) (B, error)

// Identity returns a transform that passes values through unchanged.
func Identity[T any]() Transform[T, T] {
	return func(v T) (T, error) { return v, nil }
}

// ErrNilTransform reports a cell constructed without its mandatory transforms.
var ErrNilTransform = errors.New("cell: transform must not be nil")

// ErrIndexOutOfRange reports a list operation with an index outside the
// delegate bounds.
var ErrIndexOutOfRange = errors.New("cell: index out of range")

// ErrNotReplaceable reports a whole-list replacement on a list whose reference
// has been pinned in place.
var ErrNotReplaceable = errors.New("cell: list reference is not replaceable")

func indexError(index, size int) error {
	return fmt.Errorf("%w: index %d, size %d", ErrIndexOutOfRange, index, size)
}
