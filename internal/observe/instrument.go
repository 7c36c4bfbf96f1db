package observe

import (
	"dslcore/pkg/cell"
)

// Value is an instrumented view over a scalar cell. Every hooked operation is
// reported to the recorder with the wrapped cell's name; the underlying cell
// remains reachable for bypass access.
type Value[I, O any] struct {
	name     string
	recorder Recorder
	cell     *cell.Value[I, O]
}

// NewValue wraps a scalar cell with outcome recording.
func NewValue[I, O any](name string, recorder Recorder, c *cell.Value[I, O]) *Value[I, O] {
	return &Value[I, O]{name: name, recorder: recorder, cell: c}
}

// Cell returns the wrapped cell.
func (v *Value[I, O]) Cell() *cell.Value[I, O] {
	return v.cell
}

// Get runs the hooked read pipeline and records its outcome.
func (v *Value[I, O]) Get() (O, error) {
	out, err := v.cell.Get()
	v.recorder.Observe(v.name, "get", err == nil)
	return out, err
}

// Set runs the hooked write pipeline and records its outcome.
func (v *Value[I, O]) Set(external O) error {
	err := v.cell.Set(external)
	v.recorder.Observe(v.name, "set", err == nil)
	return err
}

// List is an instrumented view over a list cell.
type List[I, O any] struct {
	name     string
	recorder Recorder
	cell     *cell.List[I, O]
}

// NewList wraps a list cell with outcome recording.
func NewList[I, O any](name string, recorder Recorder, c *cell.List[I, O]) *List[I, O] {
	return &List[I, O]{name: name, recorder: recorder, cell: c}
}

// Cell returns the wrapped cell.
func (l *List[I, O]) Cell() *cell.List[I, O] {
	return l.cell
}

// Len reports the element count without recording; it runs no hooks and
// cannot fail.
func (l *List[I, O]) Len() int {
	return l.cell.Len()
}

// Get reads one element and records the outcome.
func (l *List[I, O]) Get(index int) (O, error) {
	out, err := l.cell.Get(index)
	l.recorder.Observe(l.name, "get", err == nil)
	return out, err
}

// Set replaces one element and records the outcome.
func (l *List[I, O]) Set(index int, element O) (O, error) {
	previous, err := l.cell.Set(index, element)
	l.recorder.Observe(l.name, "set", err == nil)
	return previous, err
}

// Add inserts one element and records the outcome.
func (l *List[I, O]) Add(index int, element O) error {
	err := l.cell.Add(index, element)
	l.recorder.Observe(l.name, "add", err == nil)
	return err
}

// Append adds one element at the end and records the outcome under the same
// operation as Add.
func (l *List[I, O]) Append(element O) error {
	err := l.cell.Append(element)
	l.recorder.Observe(l.name, "add", err == nil)
	return err
}

// RemoveAt deletes one element and records the outcome.
func (l *List[I, O]) RemoveAt(index int) (O, error) {
	previous, err := l.cell.RemoveAt(index)
	l.recorder.Observe(l.name, "remove", err == nil)
	return previous, err
}

// Access obtains the whole-list view and records the outcome.
func (l *List[I, O]) Access() (cell.Sequence[O], error) {
	seq, err := l.cell.Access()
	l.recorder.Observe(l.name, "access", err == nil)
	return seq, err
}

// Replace swaps the whole contents and records the outcome.
func (l *List[I, O]) Replace(elements []O) error {
	err := l.cell.Replace(elements)
	l.recorder.Observe(l.name, "replace", err == nil)
	return err
}
