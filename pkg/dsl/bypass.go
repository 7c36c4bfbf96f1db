package dsl

import "dslcore/pkg/cell"

// TryBypass runs fn against the hook-skipping bypass view when seq is one of
// this library's list cells, reporting true. For any other Sequence
// implementation the miss callback (when non-nil) is invoked and the zero R is
// returned with false.
//
// It is the facade-level entry point for code that received a plain sequence
// reference and wants privileged access only if the reference happens to be
// hook-bearing; see cell.TryBypass.
func TryBypass[O, R any](seq cell.Sequence[O], fn func(cell.Sequence[O]) R, miss func()) (R, bool) {
	return cell.TryBypass(seq, fn, miss)
}
