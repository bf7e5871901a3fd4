// Package sparse provides a sparse set of small integer IDs.
//
// The model finder in package symbolic numbers the string variables of a
// query densely from zero and uses a sparse set to track which of them are
// bound on the current search path. Insert, Remove and Contains are O(1), and
// Values preserves insertion order, which is also the order bindings must be
// undone in when the search backtracks.
package sparse

// SparseSet is a set of uint32 values drawn from [0, capacity).
type SparseSet struct {
	sparse []uint32 // Maps value -> index in dense
	dense  []uint32 // Contains the actual values, in insertion order
}

// NewSparseSet creates a set able to hold values in [0, capacity).
func NewSparseSet(capacity uint32) *SparseSet {
	return &SparseSet{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, capacity),
	}
}

// Insert adds value to the set and reports whether it was newly added.
// Panics if value >= capacity.
func (s *SparseSet) Insert(value uint32) bool {
	if s.Contains(value) {
		return false
	}
	//nolint:gosec // G115: dense never grows beyond capacity, which is a uint32
	s.sparse[value] = uint32(len(s.dense))
	s.dense = append(s.dense, value)
	return true
}

// Contains reports whether value is in the set.
func (s *SparseSet) Contains(value uint32) bool {
	if uint64(value) >= uint64(len(s.sparse)) {
		return false
	}
	idx := s.sparse[value]
	return uint64(idx) < uint64(len(s.dense)) && s.dense[idx] == value
}

// Remove deletes value from the set. Removing the most recently inserted
// value keeps the order of the others intact.
func (s *SparseSet) Remove(value uint32) {
	if !s.Contains(value) {
		return
	}
	idx := s.sparse[value]
	last := s.dense[len(s.dense)-1]
	s.dense[idx] = last
	s.sparse[last] = idx
	s.dense = s.dense[:len(s.dense)-1]
}

// Truncate removes every value inserted after the first n, newest first.
func (s *SparseSet) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	if n < len(s.dense) {
		s.dense = s.dense[:n]
	}
}

// Clear removes all elements in O(1) time.
func (s *SparseSet) Clear() {
	s.dense = s.dense[:0]
}

// Len returns the number of elements in the set.
func (s *SparseSet) Len() int {
	return len(s.dense)
}

// IsEmpty reports whether the set has no elements.
func (s *SparseSet) IsEmpty() bool {
	return len(s.dense) == 0
}

// Values returns the elements in insertion order.
// The returned slice is valid until the next mutation.
func (s *SparseSet) Values() []uint32 {
	return s.dense
}
