package cell

// Sequence is the external view of an ordered, mutable collection of elements.
// Hook-bearing list cells, their bypass views and plain slice adapters all
// implement it, so code consuming a list property does not need to know
// whether the reference it holds is hooked.
type Sequence[E any] interface {
	// Len reports the number of elements.
	Len() int
	// Get returns the element at index.
	Get(index int) (E, error)
	// Set replaces the element at index and returns the previous element.
	Set(index int, element E) (E, error)
	// Add inserts an element at index; index == Len() appends.
	Add(index int, element E) error
	// RemoveAt deletes and returns the element at index.
	RemoveAt(index int) (E, error)
}

// Slice adapts a plain Go slice to the Sequence interface. It carries no
// transforms and no hooks; access transforms returning derived views hand out
// Slice values, which is why mutation of such a view never reaches the
// originating cell.
type Slice[E any] struct {
	elements []E
}

// NewSlice builds a sequence over a copy of the provided elements.
func NewSlice[E any](elements ...E) *Slice[E] {
	return &Slice[E]{elements: append([]E(nil), elements...)}
}

// Len reports the number of elements.
func (s *Slice[E]) Len() int {
	return len(s.elements)
}

// Get returns the element at index.
func (s *Slice[E]) Get(index int) (E, error) {
	if index < 0 || index >= len(s.elements) {
		var zero E
		return zero, indexError(index, len(s.elements))
	}
	return s.elements[index], nil
}

// Set replaces the element at index and returns the previous element.
func (s *Slice[E]) Set(index int, element E) (E, error) {
	if index < 0 || index >= len(s.elements) {
		var zero E
		return zero, indexError(index, len(s.elements))
	}
	previous := s.elements[index]
	s.elements[index] = element
	return previous, nil
}

// Add inserts an element at index; index == Len() appends.
func (s *Slice[E]) Add(index int, element E) error {
	if index < 0 || index > len(s.elements) {
		return indexError(index, len(s.elements))
	}
	var zero E
	s.elements = append(s.elements, zero)
	copy(s.elements[index+1:], s.elements[index:])
	s.elements[index] = element
	return nil
}

// RemoveAt deletes and returns the element at index.
func (s *Slice[E]) RemoveAt(index int) (E, error) {
	if index < 0 || index >= len(s.elements) {
		var zero E
		return zero, indexError(index, len(s.elements))
	}
	previous := s.elements[index]
	s.elements = append(s.elements[:index], s.elements[index+1:]...)
	return previous, nil
}

// Elements returns a copy of the underlying slice.
func (s *Slice[E]) Elements() []E {
	return append([]E(nil), s.elements...)
}
