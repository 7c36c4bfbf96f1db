package dsl

import "dslcore/pkg/cell"

// Lockable is the embeddable lock state for builder objects. The zero value
// is unlocked. Locking is one-way: once Lock has been called every user-driven
// mutation of a cell declared with this owner fails with ErrLocked, while
// reads keep working.
//
// Mutation performed by a BeforeAccess hook is exempt from the lock check: an
// access hook that appends a housekeeping element on every read is the cell's
// own declared read-time behaviour, not user-driven input, and must keep
// functioning after the lock. The exemption is tracked with a transient access
// depth that is released on every exit path of the hook invocation, including
// hook failure.
type Lockable struct {
	locked      bool
	accessDepth int
}

// Lock freezes the owner. Calling it again has no further effect; there is no
// unlock. It is intended to be called once, at the end of the construction or
// build step — see Build.
func (l *Lockable) Lock() {
	l.locked = true
}

// IsLocked reports whether Lock has been called.
func (l *Lockable) IsLocked() bool {
	return l != nil && l.locked
}

// Guard returns ErrLocked when the owner is locked and the call is not taking
// place inside a BeforeAccess invocation. The factories install it in front of
// every user-facing mutation hook; it is exported for hand-built cells that
// want the same policy.
func (l *Lockable) Guard() error {
	if l == nil {
		return nil
	}
	if l.locked && l.accessDepth == 0 {
		return ErrLocked
	}
	return nil
}

func (l *Lockable) beginAccess() {
	if l != nil {
		l.accessDepth++
	}
}

func (l *Lockable) endAccess() {
	if l != nil {
		l.accessDepth--
	}
}

// Locker is satisfied by builder objects embedding Lockable.
type Locker interface {
	Lock()
}

// Build runs configure against the builder and locks it when the block
// returns nil. On error the builder is handed back unlocked so the caller can
// inspect or retry.
func Build[B Locker](builder B, configure func(B) error) (B, error) {
	if configure != nil {
		if err := configure(builder); err != nil {
			return builder, err
		}
	}
	builder.Lock()
	return builder, nil
}

func guardValueHooks[I, O any](owner *Lockable, hooks cell.ValueHooks[I, O]) cell.ValueHooks[I, O] {
	if owner == nil {
		return hooks
	}
	userBeforeSet := hooks.BeforeSet
	hooks.BeforeSet = func(value O) error {
		if err := owner.Guard(); err != nil {
			return err
		}
		if userBeforeSet != nil {
			return userBeforeSet(value)
		}
		return nil
	}
	return hooks
}

func guardListHooks[I, O any](owner *Lockable, hooks cell.ListHooks[I, O]) cell.ListHooks[I, O] {
	if owner == nil {
		return hooks
	}
	userBeforeSet := hooks.BeforeSet
	hooks.BeforeSet = func(index int, element O) error {
		if err := owner.Guard(); err != nil {
			return err
		}
		if userBeforeSet != nil {
			return userBeforeSet(index, element)
		}
		return nil
	}
	userBeforeRemove := hooks.BeforeRemove
	hooks.BeforeRemove = func(index int) error {
		if err := owner.Guard(); err != nil {
			return err
		}
		if userBeforeRemove != nil {
			return userBeforeRemove(index)
		}
		return nil
	}
	userBeforeReplace := hooks.BeforeReplace
	hooks.BeforeReplace = func(elements []O) ([]O, error) {
		if err := owner.Guard(); err != nil {
			return nil, err
		}
		if userBeforeReplace != nil {
			return userBeforeReplace(elements)
		}
		return elements, nil
	}
	if userBeforeAccess := hooks.BeforeAccess; userBeforeAccess != nil {
		hooks.BeforeAccess = func(list *cell.List[I, O]) error {
			owner.beginAccess()
			defer owner.endAccess()
			return userBeforeAccess(list)
		}
	}
	return hooks
}
