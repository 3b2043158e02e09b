package ecs

// Source is the minimum capability a component storage must expose to
// participate in join iteration: its backing index, and O(1) membership.
// Dense, Shared, and Grouped all satisfy this.
type Source interface {
	Indices() *SparseSet
	Contains(e Entity) bool
}

// Predicate is a boolean expression over component membership, built from
// All, Any, Not, And, and Or. The top-level shape of a predicate built with
// And(All(...), Any(...), Not(...)) is what drives iterator selection: the
// positive conjuncts contributed by All/And terms and the disjunct groups
// contributed by Any terms are extracted; Not and Or terms are evaluated
// but never drive.
type Predicate struct {
	eval           func(Entity) bool
	conjuncts      []Source
	disjunctGroups [][]Source
}

// Eval reports whether e satisfies the predicate.
func (p *Predicate) Eval(e Entity) bool { return p.eval(e) }

// All builds a predicate requiring presence in every given source. It also
// registers each source as a positive conjunct for driver selection.
func All(sources ...Source) *Predicate {
	srcs := append([]Source(nil), sources...)
	return &Predicate{
		eval: func(e Entity) bool {
			for _, s := range srcs {
				if !s.Contains(e) {
					return false
				}
			}
			return true
		},
		conjuncts: srcs,
	}
}

// Any builds a predicate requiring presence in at least one given source. It
// registers the group as a disjunct group for driver selection.
func Any(sources ...Source) *Predicate {
	srcs := append([]Source(nil), sources...)
	return &Predicate{
		eval: func(e Entity) bool {
			for _, s := range srcs {
				if s.Contains(e) {
					return true
				}
			}
			return false
		},
		disjunctGroups: [][]Source{srcs},
	}
}

// Not negates a predicate. Negated terms are evaluated like any other but
// never contribute conjuncts or disjuncts to driver selection.
func Not(p *Predicate) *Predicate {
	return &Predicate{eval: func(e Entity) bool { return !p.eval(e) }}
}

// And conjoins predicates, flattening their conjuncts and disjunct groups
// so a top-level And(All(...), Any(...), Not(...)) exposes full
// driver-selection metadata to the Iterator.
func And(preds ...*Predicate) *Predicate {
	ps := append([]*Predicate(nil), preds...)
	out := &Predicate{
		eval: func(e Entity) bool {
			for _, p := range ps {
				if !p.eval(e) {
					return false
				}
			}
			return true
		},
	}
	for _, p := range ps {
		out.conjuncts = append(out.conjuncts, p.conjuncts...)
		out.disjunctGroups = append(out.disjunctGroups, p.disjunctGroups...)
	}
	return out
}

// Or disjoins predicates. A general Or is evaluated but, unlike Any, does
// not expose driver-selection metadata to an enclosing And: "at least one
// of these arbitrary sub-predicates" has no single SparseSet to drive from.
func Or(preds ...*Predicate) *Predicate {
	ps := append([]*Predicate(nil), preds...)
	return &Predicate{
		eval: func(e Entity) bool {
			for _, p := range ps {
				if p.eval(e) {
					return true
				}
			}
			return false
		},
	}
}

// Iterator lazily walks the shortest driving index and yields only entities
// satisfying a predicate. It is single-pass, stable (driver's packed
// order), and O(|driver|) with O(1) membership tests per step.
type Iterator struct {
	predicate *Predicate
	driver    *SparseSet
}

// NewIterator selects a driver for p per the rule in the join engine: the
// shortest positive conjunct if any exist, otherwise the union of the
// disjunct groups' sources, otherwise an empty (non-driving) set.
func NewIterator(p *Predicate) *Iterator {
	var driver *SparseSet
	switch {
	case len(p.conjuncts) > 0:
		driver = p.conjuncts[0].Indices()
		for _, c := range p.conjuncts[1:] {
			if c.Indices().Len() < driver.Len() {
				driver = c.Indices()
			}
		}
	case len(p.disjunctGroups) > 0:
		u := NewSparseSet()
		for _, group := range p.disjunctGroups {
			for _, s := range group {
				for _, id := range s.Indices().Packed() {
					_ = u.Insert(id)
				}
			}
		}
		driver = u
	default:
		driver = NewSparseSet()
	}
	return &Iterator{predicate: p, driver: driver}
}

// Each calls fn for every entity in the driver's packed order that
// satisfies the predicate. Mutating the driver (or any store it was built
// from) while Each is running is a bug; debug builds panic when they
// detect it, see iterator_debug.go.
func (it *Iterator) Each(fn func(Entity)) {
	snapshot := it.driver.Generation()
	for _, e := range it.driver.Packed() {
		checkGeneration(it.driver, snapshot)
		if it.predicate.eval(e) {
			fn(e)
		}
	}
}

// Collect gathers every matching entity into a slice, in driver order.
func (it *Iterator) Collect() []Entity {
	out := make([]Entity, 0, it.driver.Len())
	it.Each(func(e Entity) {
		out = append(out, e)
	})
	return out
}
