package cell

import "encoding/json"

// ValueHooks bundles the optional pipeline callbacks for a scalar cell. The
// zero value installs no hooks. BeforeGet observes the internal value before
// the get transform runs; AfterGet observes the transformed external result.
// BeforeSet observes the raw external input before the set transform runs;
// AfterSet observes the new internal value after it has been stored.
type ValueHooks[I, O any] struct {
	BeforeGet func(I) error
	AfterGet  func(O) error
	BeforeSet func(O) error
	AfterSet  func(I) error
}

// Value is a single mutable slot of internal type I exposed through external
// type O. Reads run BeforeGet, the get transform, then AfterGet; writes run
// BeforeSet, the set transform, the store, then AfterSet. A failure anywhere
// before the store leaves the slot unchanged.
type Value[I, O any] struct {
	stored I
	get    Transform[I, O]
	set    Transform[O, I]
	hooks  ValueHooks[I, O]
}

// NewValue constructs a scalar cell holding initial. Both transforms are
// mandatory; a cell without transforms cannot serve any read or write, so
// passing nil panics with ErrNilTransform.
func NewValue[I, O any](initial I, get Transform[I, O], set Transform[O, I], hooks ValueHooks[I, O]) *Value[I, O] {
	if get == nil || set == nil {
		panic(ErrNilTransform)
	}
	return &Value[I, O]{stored: initial, get: get, set: set, hooks: hooks}
}

// Get runs the read pipeline and returns the external representation of the
// stored value.
func (v *Value[I, O]) Get() (O, error) {
	var zero O
	if v.hooks.BeforeGet != nil {
		if err := v.hooks.BeforeGet(v.stored); err != nil {
			return zero, err
		}
	}
	external, err := v.get(v.stored)
	if err != nil {
		return zero, err
	}
	if v.hooks.AfterGet != nil {
		if err := v.hooks.AfterGet(external); err != nil {
			return zero, err
		}
	}
	return external, nil
}

// Set runs the write pipeline. A failure in BeforeSet or the set transform
// leaves the stored value unchanged; AfterSet observes the committed internal
// value and its error, if any, propagates to the caller after the store.
func (v *Value[I, O]) Set(value O) error {
	if v.hooks.BeforeSet != nil {
		if err := v.hooks.BeforeSet(value); err != nil {
			return err
		}
	}
	internal, err := v.set(value)
	if err != nil {
		return err
	}
	v.stored = internal
	if v.hooks.AfterSet != nil {
		return v.hooks.AfterSet(internal)
	}
	return nil
}

// Bypass returns the privileged accessor over the same slot. The transforms
// still apply; none of the four hooks fire.
func (v *Value[I, O]) Bypass() ValueBypass[I, O] {
	return ValueBypass[I, O]{cell: v}
}

// MarshalJSON serialises the transformed external view of the slot without
// firing hooks.
func (v *Value[I, O]) MarshalJSON() ([]byte, error) {
	external, err := v.Bypass().Get()
	if err != nil {
		return nil, err
	}
	return json.Marshal(external)
}

// UnmarshalJSON decodes an external value and stores it through the bypass
// channel, so loading a snapshot does not re-trigger validation hooks.
func (v *Value[I, O]) UnmarshalJSON(data []byte) error {
	var external O
	if err := json.Unmarshal(data, &external); err != nil {
		return err
	}
	return v.Bypass().Set(external)
}

// ValueBypass is the hook-skipping accessor over a value cell. It is used for
// privileged internal mutation that must not re-trigger validation, such as
// applying defaults or loading snapshots.
type ValueBypass[I, O any] struct {
	cell *Value[I, O]
}

// Get applies the get transform to the stored value directly.
func (b ValueBypass[I, O]) Get() (O, error) {
	return b.cell.get(b.cell.stored)
}

// Set applies the set transform and stores the result directly.
func (b ValueBypass[I, O]) Set(value O) error {
	internal, err := b.cell.set(value)
	if err != nil {
		return err
	}
	b.cell.stored = internal
	return nil
}
