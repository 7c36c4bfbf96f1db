// Package dsl composes the cells from dslcore/pkg/cell into declaration
// factories for builder objects: classes whose settable properties and lists
// run every read and write through a transformation and validation pipeline,
// with an optional one-way lock that freezes the object after a builder block
// completes.
//
// Every factory takes an optional *Lockable owner as its first argument. With
// a nil owner the declared cell is a plain hooked cell; with a non-nil owner a
// not-locked precondition is injected in front of every user-facing mutation
// hook, and mutation performed by a BeforeAccess hook stays exempt (see
// Lockable).
//
// Builder scopes are not designed to nest: a configure block passed to Build
// must only touch the builder it was handed. The source language this design
// originates from enforces that at compile time; in Go it is a usage
// convention, optionally checked by the builder-check tool in this repository.
//
// Declared cells are not safe for concurrent use; callers needing
// cross-goroutine access must synchronise externally.
package dsl

import (
	"errors"
	"fmt"

	"dslcore/pkg/cell"
)

// ErrInvalidArgument reports a rejected write: a failed validation or a
// malformed external value.
var ErrInvalidArgument = errors.New("dsl: invalid argument")

// ErrInvalidState reports a read from a property whose value has not been
// provided yet.
var ErrInvalidState = errors.New("dsl: invalid state")

// ErrLocked reports a mutation attempted after the owning object was locked.
// It is a capability failure, distinct from the data failures above.
var ErrLocked = errors.New("dsl: object is locked")

// MessageBuilder produces the failure message attached to validation errors
// for a named property.
type MessageBuilder func(name string) string

// DefaultMessage is the MessageBuilder used when a factory receives nil.
func DefaultMessage(name string) string {
	return fmt.Sprintf("invalid value for property %q", name)
}

func messageOr(builder MessageBuilder) MessageBuilder {
	if builder != nil {
		return builder
	}
	return DefaultMessage
}

// Value declares a generic scalar property with explicit transforms and an
// arbitrary hook set.
func Value[I, O any](owner *Lockable, initial I, get cell.Transform[I, O], set cell.Transform[O, I], hooks cell.ValueHooks[I, O]) *cell.Value[I, O] {
	return cell.NewValue(initial, get, set, guardValueHooks(owner, hooks))
}

// Prepared declares a simple default-holding property with identity
// transforms and optional override hooks.
func Prepared[T any](owner *Lockable, initial T, hooks cell.ValueHooks[T, T]) *cell.Value[T, T] {
	return Value(owner, initial, cell.Identity[T](), cell.Identity[T](), hooks)
}

// Optional declares the nullable variant of Prepared: internal and external
// type are both *T, absence is representable and never enforced.
func Optional[T any](owner *Lockable, initial *T, hooks cell.ValueHooks[*T, *T]) *cell.Value[*T, *T] {
	return Value(owner, initial, cell.Identity[*T](), cell.Identity[*T](), hooks)
}

// Conditional declares a validated scalar property. validateSet runs on the
// transformed internal value before it is stored; validateGet runs on the
// transformed external value before it is returned. Validation and
// set-transform failures classify as ErrInvalidArgument and carry the message
// produced by builder (DefaultMessage when nil) for the property name.
func Conditional[I, O any](owner *Lockable, name string, initial I, get cell.Transform[I, O], set cell.Transform[O, I], validateGet func(O) bool, validateSet func(I) bool, builder MessageBuilder) *cell.Value[I, O] {
	message := messageOr(builder)
	checkedGet := get
	if validateGet != nil {
		checkedGet = func(internal I) (O, error) {
			external, err := get(internal)
			if err != nil {
				return external, err
			}
			if !validateGet(external) {
				var zero O
				return zero, fmt.Errorf("%w: %s", ErrInvalidArgument, message(name))
			}
			return external, nil
		}
	}
	checkedSet := func(external O) (I, error) {
		internal, err := set(external)
		if err != nil {
			var zero I
			return zero, fmt.Errorf("%w: %s: %v", ErrInvalidArgument, message(name), err)
		}
		if validateSet != nil && !validateSet(internal) {
			var zero I
			return zero, fmt.Errorf("%w: %s", ErrInvalidArgument, message(name))
		}
		return internal, nil
	}
	return Value(owner, initial, checkedGet, checkedSet, cell.ValueHooks[I, O]{})
}

// Required declares a property whose value must be provided before the first
// read. The internal representation is *T with nil meaning absent; the
// external type is plain T. Reads before the first write fail with
// ErrInvalidState carrying the property message.
func Required[T any](owner *Lockable, name string, builder MessageBuilder) *cell.Value[*T, T] {
	return RequiredTransformed[T, T](owner, name, cell.Identity[T](), cell.Identity[T](), builder)
}

// RequiredTransformed is Required with explicit transforms between the
// internal element type I and the external type O. The absence check is
// installed as a BeforeGet hook, so the hooked read path enforces presence;
// the lifted get transform repeats the check defensively for bypass reads of
// a still-absent slot.
func RequiredTransformed[I, O any](owner *Lockable, name string, get cell.Transform[I, O], set cell.Transform[O, I], builder MessageBuilder) *cell.Value[*I, O] {
	message := messageOr(builder)
	absent := func() error {
		return fmt.Errorf("%w: %s", ErrInvalidState, message(name))
	}
	liftedGet := func(internal *I) (O, error) {
		if internal == nil {
			var zero O
			return zero, absent()
		}
		return get(*internal)
	}
	liftedSet := func(external O) (*I, error) {
		internal, err := set(external)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidArgument, message(name), err)
		}
		return &internal, nil
	}
	hooks := cell.ValueHooks[*I, O]{
		BeforeGet: func(internal *I) error {
			if internal == nil {
				return absent()
			}
			return nil
		},
	}
	var initial *I
	return Value(owner, initial, liftedGet, liftedSet, hooks)
}

// List declares an in-place list property with identical internal and
// external element type. The whole-list reference is fixed: Replace fails
// with cell.ErrNotReplaceable while element mutation remains available.
func List[T any](owner *Lockable, initial []T, hooks cell.ListHooks[T, T]) *cell.List[T, T] {
	return TransformedList(owner, initial, cell.Identity[T](), cell.Identity[T](), hooks).DisableReplace()
}

// ReplaceableList declares a list property whose whole reference may be
// swapped via Replace, with the incoming elements optionally rewritten by the
// BeforeReplace hook.
func ReplaceableList[T any](owner *Lockable, initial []T, hooks cell.ListHooks[T, T]) *cell.List[T, T] {
	return TransformedList(owner, initial, cell.Identity[T](), cell.Identity[T](), hooks)
}

// TransformedList declares a replaceable list property with per-element
// transforms and the full hook set.
func TransformedList[I, O any](owner *Lockable, initial []I, get cell.Transform[I, O], set cell.Transform[O, I], hooks cell.ListHooks[I, O]) *cell.List[I, O] {
	return cell.NewList(initial, get, set, guardListHooks(owner, hooks))
}
