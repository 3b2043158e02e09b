package ecs

// pageLenLog2/pageLen mirror the paged-buffer idiom of a fixed-size,
// power-of-two page used to bound the memory a sparse index needs per live
// region of entity-id space. A page is a slice of int32 slots; a nil slice
// IS the null-page sentinel, never a zero-filled one, so "page in use" is a
// nil check rather than a content comparison.
const (
	pageLenLog2 = 12
	pageLen     = 1 << pageLenLog2
	pageMask    = pageLen - 1
)

type page []int32

func splitID(id Entity) (pageIdx, offset int) {
	n := int(id) - 1
	return n >> pageLenLog2, n & pageMask
}

// SparseSet is a paged sparse-set index mapping positive entity ids to a
// packed position in insertion order. It supplies O(1) membership,
// insertion, removal, and position lookup, and is the shared backbone of
// every component storage kind.
type SparseSet struct {
	packed     []Entity
	reverse    []page
	counters   []int32
	generation int
}

// NewSparseSet creates an empty paged sparse set.
func NewSparseSet() *SparseSet {
	return &SparseSet{}
}

// Len returns the number of present entities.
func (s *SparseSet) Len() int { return len(s.packed) }

// IsEmpty reports whether the set has no members.
func (s *SparseSet) IsEmpty() bool { return len(s.packed) == 0 }

// Packed returns the present entities in insertion (packed) order. The
// returned slice aliases internal storage and must not be mutated.
func (s *SparseSet) Packed() []Entity { return s.packed }

func (s *SparseSet) ensurePage(pageIdx int) {
	for len(s.reverse) <= pageIdx {
		s.reverse = append(s.reverse, nil)
		s.counters = append(s.counters, 0)
	}
	if s.reverse[pageIdx] == nil {
		s.reverse[pageIdx] = make(page, pageLen)
	}
}

// Contains reports whether id is present in the set. Never fails; an
// invalid (zero) id is simply never present.
func (s *SparseSet) Contains(id Entity) bool {
	if !id.IsValid() {
		return false
	}
	p, o := splitID(id)
	if p >= len(s.reverse) || s.reverse[p] == nil {
		return false
	}
	return s.reverse[p][o] != 0
}

// Insert adds id to the set. It is idempotent: inserting an id already
// present is a no-op. Returns InvalidID if id <= 0.
func (s *SparseSet) Insert(id Entity) error {
	if !id.IsValid() {
		return New(InvalidID, "sparseset: insert invalid id %d", id)
	}
	if s.Contains(id) {
		return nil
	}
	p, o := splitID(id)
	s.ensurePage(p)
	s.reverse[p][o] = int32(len(s.packed)) + 1
	s.packed = append(s.packed, id)
	s.counters[p]++
	s.generation++
	return nil
}

// PositionOf returns the 0-based packed position of a present id.
func (s *SparseSet) PositionOf(id Entity) (int, error) {
	if !s.Contains(id) {
		return 0, New(NotPresent, "sparseset: %d not present", id)
	}
	p, o := splitID(id)
	return int(s.reverse[p][o]) - 1, nil
}

// reclaimIfEmpty releases a page back to the null sentinel once its last
// live slot has been cleared.
func (s *SparseSet) reclaimIfEmpty(pageIdx int) {
	if s.counters[pageIdx] == 0 {
		s.reverse[pageIdx] = nil
	}
}

// remove performs the swap-remove in-place, assuming id is present.
func (s *SparseSet) remove(id Entity) {
	k, _ := s.PositionOf(id)
	n := len(s.packed)
	tail := s.packed[n-1]

	s.packed[k] = tail
	tp, to := splitID(tail)
	s.reverse[tp][to] = int32(k) + 1

	ip, io := splitID(id)
	s.reverse[ip][io] = 0
	s.counters[ip]--

	s.packed = s.packed[:n-1]
	s.reclaimIfEmpty(ip)
	s.generation++
}

// Remove removes id from the set via swap-remove, returning NotPresent if
// id is absent. The store is left unchanged on error.
func (s *SparseSet) Remove(id Entity) error {
	if !s.Contains(id) {
		return New(NotPresent, "sparseset: remove: %d not present", id)
	}
	s.remove(id)
	return nil
}

// MustRemove removes id, panicking with a NotPresent error if id is absent.
// This is the panicking counterpart to Remove for call sites that have
// already established presence and treat absence as a bug.
func (s *SparseSet) MustRemove(id Entity) {
	if !s.Contains(id) {
		Panic(NotPresent, "sparseset: must-remove: %d not present", id)
	}
	s.remove(id)
}

// PopLast removes and returns the most recently inserted entity, or an
// Empty error if the set has no members.
func (s *SparseSet) PopLast() (Entity, error) {
	if s.IsEmpty() {
		return 0, New(Empty, "sparseset: pop on empty set")
	}
	last := s.packed[len(s.packed)-1]
	s.remove(last)
	return last, nil
}

// SwapPositions exchanges the packed positions of two present entities
// without removing either. Used to co-sort parallel storage arrays.
func (s *SparseSet) SwapPositions(a, b Entity) error {
	pa, err := s.PositionOf(a)
	if err != nil {
		return err
	}
	pb, err := s.PositionOf(b)
	if err != nil {
		return err
	}
	if pa == pb {
		return nil
	}
	s.packed[pa], s.packed[pb] = s.packed[pb], s.packed[pa]
	ap, ao := splitID(a)
	bp, bo := splitID(b)
	s.reverse[ap][ao] = int32(pb) + 1
	s.reverse[bp][bo] = int32(pa) + 1
	s.generation++
	return nil
}

// Permute reorders packed so that the entity formerly at position perm[i]
// is now at position i, and repairs every reverse slot to match. perm must
// be a permutation of [0, Len()).
func (s *SparseSet) Permute(perm []int) error {
	if len(perm) != len(s.packed) {
		return New(InvalidID, "sparseset: permute: length mismatch %d != %d", len(perm), len(s.packed))
	}
	next := make([]Entity, len(s.packed))
	for i, from := range perm {
		next[i] = s.packed[from]
	}
	s.packed = next
	for i, id := range s.packed {
		p, o := splitID(id)
		s.reverse[p][o] = int32(i) + 1
	}
	s.generation++
	return nil
}

// Generation returns a counter bumped on every mutation, used by debug
// builds to detect iteration over a storage that was mutated mid-iteration.
func (s *SparseSet) Generation() int { return s.generation }

// Clear removes every entity from the set, reclaiming all pages.
func (s *SparseSet) Clear() {
	s.packed = s.packed[:0]
	s.reverse = nil
	s.counters = nil
	s.generation++
}

// pageCount returns how many pages are currently live (non-nil); exposed
// for tests that assert on page lifecycle rather than internal fields.
func (s *SparseSet) pageCount() int {
	n := 0
	for _, p := range s.reverse {
		if p != nil {
			n++
		}
	}
	return n
}
