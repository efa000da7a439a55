package domain

import (
	"slices"
	"strings"
)

// SearchPathSpec is an ordered, de-duplicated sequence of path elements.
// Index 0 is searched first.
type SearchPathSpec struct {
	elems []PathElement
}

// NewSearchPathSpec builds a spec from the given elements, dropping duplicates.
func NewSearchPathSpec(elems ...PathElement) SearchPathSpec {
	var s SearchPathSpec
	for _, e := range elems {
		s.Append(e)
	}
	return s
}

// Append adds an element at the end unless an equal element is already present.
// It reports whether the element was added.
func (s *SearchPathSpec) Append(e PathElement) bool {
	if e.location == "" && e.mirror == "" {
		return false
	}
	if s.IndexOf(e.Key()) >= 0 {
		return false
	}
	s.elems = append(s.elems, e)
	return true
}

// AppendAll appends every element of other, skipping duplicates.
func (s *SearchPathSpec) AppendAll(other SearchPathSpec) {
	for _, e := range other.elems {
		s.Append(e)
	}
}

// IndexOf returns the position of the element with the given key, or -1.
func (s SearchPathSpec) IndexOf(key string) int {
	return slices.IndexFunc(s.elems, func(e PathElement) bool {
		return e.Key() == key
	})
}

// Elements returns a copy of the ordered elements.
func (s SearchPathSpec) Elements() []PathElement {
	return slices.Clone(s.elems)
}

// At returns the element at index i.
func (s SearchPathSpec) At(i int) PathElement {
	return s.elems[i]
}

// Len returns the number of elements.
func (s SearchPathSpec) Len() int {
	return len(s.elems)
}

// IsEmpty reports whether the search path has no elements.
func (s SearchPathSpec) IsEmpty() bool {
	return len(s.elems) == 0
}

// String serializes the search path in symbol path syntax.
func (s SearchPathSpec) String() string {
	parts := make([]string, len(s.elems))
	for i, e := range s.elems {
		parts[i] = e.String()
	}
	return strings.Join(parts, ";")
}

// Equal compares the serialized ordered sequence of locations.
func (s SearchPathSpec) Equal(other SearchPathSpec) bool {
	return s.String() == other.String()
}
