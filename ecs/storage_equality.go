package ecs

import (
	"fmt"
	"hash/fnv"
	"reflect"
)

// equalityHashThreshold is the length above which Equal first compares
// Hash() and short-circuits on mismatch before falling through to the full
// per-entity comparison.
const equalityHashThreshold = 20

// Equal reports whether d and other hold the same (entity, value) pairs,
// independent of insertion order.
func (d *Dense[T]) Equal(other *Dense[T]) bool {
	if d.Len() != other.Len() {
		return false
	}
	if d.Len() > equalityHashThreshold && d.Hash() != other.Hash() {
		return false
	}
	for i, e := range d.indices.Packed() {
		v2, ok := other.Get(e)
		if !ok || !reflect.DeepEqual(d.data[i], v2) {
			return false
		}
	}
	return true
}

// Hash is an order-insensitive hash of (type tag, entity, value) over every
// member, suitable for the Equal short-circuit above.
func (d *Dense[T]) Hash() uint64 {
	var acc uint64
	for i, e := range d.indices.Packed() {
		h := fnv.New64a()
		fmt.Fprintf(h, "dense|%d|%v", e, d.data[i])
		acc ^= h.Sum64()
	}
	return acc
}

// Equal reports whether s and other hold the same (entity, value) pairs,
// independent of insertion order or how values happen to be interned.
func (s *Shared[T]) Equal(other *Shared[T]) bool {
	if s.Len() != other.Len() {
		return false
	}
	if s.Len() > equalityHashThreshold && s.Hash() != other.Hash() {
		return false
	}
	for i, e := range s.indices.Packed() {
		v2, ok := other.Get(e)
		if !ok || s.shared[s.data[i]] != v2 {
			return false
		}
	}
	return true
}

// Hash is an order-insensitive hash of (type tag, entity, value) over every
// member.
func (s *Shared[T]) Hash() uint64 {
	var acc uint64
	for i, e := range s.indices.Packed() {
		h := fnv.New64a()
		fmt.Fprintf(h, "shared|%d|%v", e, s.shared[s.data[i]])
		acc ^= h.Sum64()
	}
	return acc
}

// Equal reports whether g and other hold the same (entity, value) pairs.
// Group structure itself (which entities share a group id) is not part of
// the comparison, only the effective value each entity resolves to.
func (g *Grouped[T]) Equal(other *Grouped[T]) bool {
	if g.Len() != other.Len() {
		return false
	}
	if g.Len() > equalityHashThreshold && g.Hash() != other.Hash() {
		return false
	}
	for i, e := range g.indices.Packed() {
		v2, ok := other.Get(e)
		if !ok || g.data[g.group[i]] != v2 {
			return false
		}
	}
	return true
}

// Hash is an order-insensitive hash of (type tag, entity, effective value)
// over every member.
func (g *Grouped[T]) Hash() uint64 {
	var acc uint64
	for i, e := range g.indices.Packed() {
		h := fnv.New64a()
		fmt.Fprintf(h, "grouped|%d|%v", e, g.data[g.group[i]])
		acc ^= h.Sum64()
	}
	return acc
}
