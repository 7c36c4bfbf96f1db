package cell

import "encoding/json"

// ListHooks bundles the optional pipeline callbacks for a list cell. The zero
// value installs no hooks.
//
// BeforeGet, BeforeSet and BeforeRemove guard the per-element operations;
// BeforeSet fires for both Set and Add since both introduce a new external
// value at a position. BeforeAccess fires once per whole-list access (not per
// element) and receives the cell itself, so it may mutate the list it is
// attached to. BeforeReplace fires when the whole reference is swapped and may
// rewrite the incoming elements before they are committed. AccessTransform
// runs after BeforeAccess and may return a different sequence, for example a
// freshly computed derived view.
type ListHooks[I, O any] struct {
	BeforeGet       func(index int) error
	BeforeSet       func(index int, element O) error
	BeforeRemove    func(index int) error
	BeforeAccess    func(list *List[I, O]) error
	BeforeReplace   func(elements []O) ([]O, error)
	AccessTransform func(list *List[I, O]) (Sequence[O], error)
}

// List is a mutable sequence of internal element type I exposed as a sequence
// of external element type O through per-element transforms. Every hook fires
// strictly before the delegate mutation it guards, so a failing hook or
// transform never leaves the delegate partially updated.
type List[I, O any] struct {
	delegate []I
	get      Transform[I, O]
	set      Transform[O, I]
	hooks    ListHooks[I, O]
	pinned   bool
}

// NewList constructs a list cell over a copy of the initial internal elements.
// Both element transforms are mandatory; passing nil panics with
// ErrNilTransform.
func NewList[I, O any](initial []I, get Transform[I, O], set Transform[O, I], hooks ListHooks[I, O]) *List[I, O] {
	if get == nil || set == nil {
		panic(ErrNilTransform)
	}
	return &List[I, O]{
		delegate: append([]I(nil), initial...),
		get:      get,
		set:      set,
		hooks:    hooks,
	}
}

// DisableReplace pins the whole-list reference: Replace fails with
// ErrNotReplaceable while in-place element mutation stays available. It
// returns the list so declaration sites can chain it.
func (l *List[I, O]) DisableReplace() *List[I, O] {
	l.pinned = true
	return l
}

// Len reports the delegate length.
func (l *List[I, O]) Len() int {
	return len(l.delegate)
}

// Get returns the transformed element at index. BeforeGet fires before the
// bounds check; an invalid index never mutates the delegate either way.
func (l *List[I, O]) Get(index int) (O, error) {
	var zero O
	if l.hooks.BeforeGet != nil {
		if err := l.hooks.BeforeGet(index); err != nil {
			return zero, err
		}
	}
	return l.getAt(index)
}

// Set replaces the element at index and returns the previous external value.
func (l *List[I, O]) Set(index int, element O) (O, error) {
	var zero O
	if l.hooks.BeforeSet != nil {
		if err := l.hooks.BeforeSet(index, element); err != nil {
			return zero, err
		}
	}
	return l.setAt(index, element)
}

// Add inserts an element at index; index == Len() appends. Add shares the
// BeforeSet hook with Set.
func (l *List[I, O]) Add(index int, element O) error {
	if l.hooks.BeforeSet != nil {
		if err := l.hooks.BeforeSet(index, element); err != nil {
			return err
		}
	}
	return l.addAt(index, element)
}

// Append inserts an element at the end of the list.
func (l *List[I, O]) Append(element O) error {
	return l.Add(len(l.delegate), element)
}

// RemoveAt deletes and returns the element at index.
func (l *List[I, O]) RemoveAt(index int) (O, error) {
	var zero O
	if l.hooks.BeforeRemove != nil {
		if err := l.hooks.BeforeRemove(index); err != nil {
			return zero, err
		}
	}
	return l.removeAt(index)
}

// Access is the single whole-list entry point. It fires BeforeAccess exactly
// once, applies AccessTransform when configured, and returns the externally
// visible sequence — the cell itself by default. Element operations on an
// already-obtained reference do not re-fire BeforeAccess.
//
// A sequence returned by AccessTransform that is not this cell carries no
// hooks: further mutation on such a derived view bypasses the pipeline by
// construction.
func (l *List[I, O]) Access() (Sequence[O], error) {
	if l.hooks.BeforeAccess != nil {
		if err := l.hooks.BeforeAccess(l); err != nil {
			return nil, err
		}
	}
	if l.hooks.AccessTransform != nil {
		return l.hooks.AccessTransform(l)
	}
	return l, nil
}

// Replace swaps the whole delegate for the provided external elements,
// rewritten by BeforeReplace when configured. The replacement is fully
// transformed before commit, so a failing element transform leaves the
// delegate unchanged.
func (l *List[I, O]) Replace(elements []O) error {
	if l.pinned {
		return ErrNotReplaceable
	}
	if l.hooks.BeforeReplace != nil {
		var err error
		elements, err = l.hooks.BeforeReplace(elements)
		if err != nil {
			return err
		}
	}
	next := make([]I, len(elements))
	for i, element := range elements {
		internal, err := l.set(element)
		if err != nil {
			return err
		}
		next[i] = internal
	}
	l.delegate = next
	return nil
}

// Bypass returns the privileged view over the same delegate. The element
// transforms still apply; no hooks fire, and obtaining the view does not fire
// BeforeAccess.
func (l *List[I, O]) Bypass() ListBypass[I, O] {
	return ListBypass[I, O]{list: l}
}

// Elements materialises the external view of the delegate without firing
// hooks.
func (l *List[I, O]) Elements() ([]O, error) {
	out := make([]O, len(l.delegate))
	for i, internal := range l.delegate {
		external, err := l.get(internal)
		if err != nil {
			return nil, err
		}
		out[i] = external
	}
	return out, nil
}

// MarshalJSON serialises the transformed external view of the delegate
// without firing hooks.
func (l *List[I, O]) MarshalJSON() ([]byte, error) {
	elements, err := l.Elements()
	if err != nil {
		return nil, err
	}
	return json.Marshal(elements)
}

// UnmarshalJSON decodes external elements and installs them through the set
// transform, skipping hooks and the replaceability pin: loading a snapshot is
// privileged internal mutation.
func (l *List[I, O]) UnmarshalJSON(data []byte) error {
	var elements []O
	if err := json.Unmarshal(data, &elements); err != nil {
		return err
	}
	next := make([]I, len(elements))
	for i, element := range elements {
		internal, err := l.set(element)
		if err != nil {
			return err
		}
		next[i] = internal
	}
	l.delegate = next
	return nil
}

func (l *List[I, O]) getAt(index int) (O, error) {
	if index < 0 || index >= len(l.delegate) {
		var zero O
		return zero, indexError(index, len(l.delegate))
	}
	return l.get(l.delegate[index])
}

func (l *List[I, O]) setAt(index int, element O) (O, error) {
	var zero O
	if index < 0 || index >= len(l.delegate) {
		return zero, indexError(index, len(l.delegate))
	}
	previous, err := l.get(l.delegate[index])
	if err != nil {
		return zero, err
	}
	internal, err := l.set(element)
	if err != nil {
		return zero, err
	}
	l.delegate[index] = internal
	return previous, nil
}

func (l *List[I, O]) addAt(index int, element O) error {
	if index < 0 || index > len(l.delegate) {
		return indexError(index, len(l.delegate))
	}
	internal, err := l.set(element)
	if err != nil {
		return err
	}
	var zero I
	l.delegate = append(l.delegate, zero)
	copy(l.delegate[index+1:], l.delegate[index:])
	l.delegate[index] = internal
	return nil
}

func (l *List[I, O]) removeAt(index int) (O, error) {
	var zero O
	if index < 0 || index >= len(l.delegate) {
		return zero, indexError(index, len(l.delegate))
	}
	previous, err := l.get(l.delegate[index])
	if err != nil {
		return zero, err
	}
	l.delegate = append(l.delegate[:index], l.delegate[index+1:]...)
	return previous, nil
}

// bypassSequence lets TryBypass recognise hook-bearing lists behind the
// Sequence interface.
func (l *List[I, O]) bypassSequence() Sequence[O] {
	return l.Bypass()
}

// ListBypass is the hook-skipping accessor over a list cell's delegate. The
// per-element transforms still apply implicitly through get and set.
type ListBypass[I, O any] struct {
	list *List[I, O]
}

// Len reports the delegate length.
func (b ListBypass[I, O]) Len() int {
	return len(b.list.delegate)
}

// Get returns the transformed element at index without firing BeforeGet.
func (b ListBypass[I, O]) Get(index int) (O, error) {
	return b.list.getAt(index)
}

// Set replaces the element at index without firing BeforeSet.
func (b ListBypass[I, O]) Set(index int, element O) (O, error) {
	return b.list.setAt(index, element)
}

// Add inserts an element at index without firing BeforeSet.
func (b ListBypass[I, O]) Add(index int, element O) error {
	return b.list.addAt(index, element)
}

// RemoveAt deletes the element at index without firing BeforeRemove.
func (b ListBypass[I, O]) RemoveAt(index int) (O, error) {
	return b.list.removeAt(index)
}

type bypassCarrier[O any] interface {
	bypassSequence() Sequence[O]
}

// TryBypass runs fn against the bypass view when seq is one of this package's
// list cells, reporting true. When seq is any other Sequence implementation
// the miss callback (when non-nil) is invoked and the zero R is returned with
// false. It is used by code that received a plain sequence reference and wants
// privileged access only if the reference happens to be hook-bearing.
func TryBypass[O, R any](seq Sequence[O], fn func(Sequence[O]) R, miss func()) (R, bool) {
	if carrier, ok := seq.(bypassCarrier[O]); ok {
		return fn(carrier.bypassSequence()), true
	}
	if miss != nil {
		miss()
	}
	var zero R
	return zero, false
}
