package ecs

// Dense pairs a SparseSet with a parallel slice of values: entity maps to
// packed position maps to value. It is the workhorse storage shape for
// component types with no useful sharing or grouping structure.
type Dense[T any] struct {
	indices *SparseSet
	data    []T
}

// NewDense creates an empty dense component store.
func NewDense[T any]() *Dense[T] {
	return &Dense[T]{indices: NewSparseSet()}
}

// Len returns the number of entities holding a value.
func (d *Dense[T]) Len() int { return d.indices.Len() }

// IsEmpty reports whether the store has no members.
func (d *Dense[T]) IsEmpty() bool { return d.indices.IsEmpty() }

// Contains reports whether e has a value in this store.
func (d *Dense[T]) Contains(e Entity) bool { return d.indices.Contains(e) }

// Indices exposes the backing SparseSet, satisfying join.Source.
func (d *Dense[T]) Indices() *SparseSet { return d.indices }

// Set assigns v to e, overwriting any existing value, or inserting e with v
// as a new packed entry at the end.
func (d *Dense[T]) Set(e Entity, v T) error {
	if pos, err := d.indices.PositionOf(e); err == nil {
		d.data[pos] = v
		return nil
	}
	if err := d.indices.Insert(e); err != nil {
		return err
	}
	d.data = append(d.data, v)
	return nil
}

// Get returns e's value and whether e is present.
func (d *Dense[T]) Get(e Entity) (T, bool) {
	var zero T
	pos, err := d.indices.PositionOf(e)
	if err != nil {
		return zero, false
	}
	return d.data[pos], true
}

// GetPtr returns a pointer to e's value, or nil if e is absent. The
// pointer is invalidated by any subsequent Remove/swap-remove on the store.
func (d *Dense[T]) GetPtr(e Entity) *T {
	pos, err := d.indices.PositionOf(e)
	if err != nil {
		return nil
	}
	return &d.data[pos]
}

// Remove removes e, swap-removing its value in lockstep with the index, and
// returns the removed value.
func (d *Dense[T]) Remove(e Entity) (T, error) {
	var zero T
	pos, err := d.indices.PositionOf(e)
	if err != nil {
		return zero, err
	}
	v := d.data[pos]
	last := len(d.data) - 1
	d.data[pos] = d.data[last]
	d.data = d.data[:last]
	if err := d.indices.Remove(e); err != nil {
		return zero, err
	}
	return v, nil
}

// Clear removes every entity and value.
func (d *Dense[T]) Clear() {
	d.indices.Clear()
	d.data = d.data[:0]
}

// Data returns the packed value slice in the same order as Indices().Packed().
// The returned slice aliases internal storage and must not be retained
// across mutating calls.
func (d *Dense[T]) Data() []T { return d.data }

// Iter returns the present entities in packed order.
func (d *Dense[T]) Iter() []Entity { return d.indices.Packed() }

// ForEach calls fn for every entity and a pointer to its value, in packed
// order.
func (d *Dense[T]) ForEach(fn func(Entity, *T)) {
	for i, e := range d.indices.Packed() {
		fn(e, &d.data[i])
	}
}

// SwapPositions exchanges the packed positions of two present entities,
// keeping the index and value slice co-ordered.
func (d *Dense[T]) SwapPositions(a, b Entity) error {
	pa, err := d.indices.PositionOf(a)
	if err != nil {
		return err
	}
	pb, err := d.indices.PositionOf(b)
	if err != nil {
		return err
	}
	if err := d.indices.SwapPositions(a, b); err != nil {
		return err
	}
	d.data[pa], d.data[pb] = d.data[pb], d.data[pa]
	return nil
}

// Permute reorders both the index and the value slice by perm (see
// SparseSet.Permute for the exact semantics).
func (d *Dense[T]) Permute(perm []int) error {
	if len(perm) != len(d.data) {
		return New(InvalidID, "dense: permute: length mismatch %d != %d", len(perm), len(d.data))
	}
	next := make([]T, len(d.data))
	for i, from := range perm {
		next[i] = d.data[from]
	}
	if err := d.indices.Permute(perm); err != nil {
		return err
	}
	d.data = next
	return nil
}
