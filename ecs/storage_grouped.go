package ecs

// Grouped stores a value shared by an equivalence class ("group") of
// entities. Each present entity belongs to exactly one group; the group's
// value lives once in data, not once per entity. Groups are created,
// merged via parent-linking, detached, and folded by value equality.
type Grouped[T comparable] struct {
	indices   *SparseSet
	group     []int // per packed position: group id
	groupSize []int // per group id: member count
	data      []T   // per group id: shared value
}

// NewGrouped creates an empty grouped component store.
func NewGrouped[T comparable]() *Grouped[T] {
	return &Grouped[T]{indices: NewSparseSet()}
}

// Len returns the number of entities holding a value.
func (g *Grouped[T]) Len() int { return g.indices.Len() }

// IsEmpty reports whether the store has no members.
func (g *Grouped[T]) IsEmpty() bool { return g.indices.IsEmpty() }

// Contains reports whether e has a value in this store.
func (g *Grouped[T]) Contains(e Entity) bool { return g.indices.Contains(e) }

// Indices exposes the backing SparseSet, satisfying join.Source.
func (g *Grouped[T]) Indices() *SparseSet { return g.indices }

// GroupCount returns the number of live groups.
func (g *Grouped[T]) GroupCount() int { return len(g.data) }

// GroupSize returns the member count of group id gid.
func (g *Grouped[T]) GroupSize(gid int) int { return g.groupSize[gid] }

// GroupOf returns the group id e currently belongs to.
func (g *Grouped[T]) GroupOf(e Entity) (int, error) {
	pos, err := g.indices.PositionOf(e)
	if err != nil {
		return 0, err
	}
	return g.group[pos], nil
}

// Set assigns v as e's own value. If e already shares a group of size > 1,
// it is detached into a fresh singleton group holding v, leaving the rest
// of its former group untouched; if e is the sole member of its group, the
// group's value is overwritten in place; if e is absent, a new singleton
// group is created for it.
func (g *Grouped[T]) Set(e Entity, v T) error {
	if !e.IsValid() {
		return New(InvalidID, "grouped: set: invalid id %d", e)
	}
	pos, err := g.indices.PositionOf(e)
	if err != nil {
		gid := len(g.data)
		g.data = append(g.data, v)
		g.groupSize = append(g.groupSize, 1)
		if err := g.indices.Insert(e); err != nil {
			g.data = g.data[:gid]
			g.groupSize = g.groupSize[:gid]
			return err
		}
		g.group = append(g.group, gid)
		return nil
	}

	gid := g.group[pos]
	if g.groupSize[gid] == 1 {
		g.data[gid] = v
		return nil
	}
	g.groupSize[gid]--
	newGid := len(g.data)
	g.data = append(g.data, v)
	g.groupSize = append(g.groupSize, 1)
	g.group[pos] = newGid
	return nil
}

// removeGroupID deletes group gid (already emptied) from data/groupSize and
// renumbers every higher group id down by one. It returns the renumbering
// function to apply to any group id held outside of g.group.
func (g *Grouped[T]) removeGroupID(gid int) func(int) int {
	g.data = append(g.data[:gid], g.data[gid+1:]...)
	g.groupSize = append(g.groupSize[:gid], g.groupSize[gid+1:]...)
	for i, gg := range g.group {
		if gg > gid {
			g.group[i] = gg - 1
		}
	}
	return func(x int) int {
		if x > gid {
			return x - 1
		}
		return x
	}
}

// SetParent links e into the same group as parent, which must already be
// present. If e was the sole member of its prior group, that group is
// deleted; otherwise its size is simply decremented.
func (g *Grouped[T]) SetParent(e, parent Entity) error {
	parentPos, err := g.indices.PositionOf(parent)
	if err != nil {
		return New(ParentMissing, "grouped: set-parent: parent %d not present", parent)
	}
	pg := g.group[parentPos]

	pos, err := g.indices.PositionOf(e)
	if err != nil {
		if err := g.indices.Insert(e); err != nil {
			return err
		}
		g.group = append(g.group, pg)
		g.groupSize[pg]++
		return nil
	}

	eg := g.group[pos]
	if eg == pg {
		return nil
	}
	if g.groupSize[eg] == 1 {
		renumber := g.removeGroupID(eg)
		pg = renumber(pg)
	} else {
		g.groupSize[eg]--
	}
	g.group[pos] = pg
	g.groupSize[pg]++
	return nil
}

// SetGroup overwrites the value shared by e's entire group, affecting every
// member at once.
func (g *Grouped[T]) SetGroup(e Entity, v T) error {
	gid, err := g.GroupOf(e)
	if err != nil {
		return err
	}
	g.data[gid] = v
	return nil
}

// Get returns e's value (its group's shared value) and whether e is present.
func (g *Grouped[T]) Get(e Entity) (T, bool) {
	var zero T
	gid, err := g.GroupOf(e)
	if err != nil {
		return zero, false
	}
	return g.data[gid], true
}

// Remove removes e from its group, shrinking or deleting that group as
// needed, and returns the value e held.
func (g *Grouped[T]) Remove(e Entity) (T, error) {
	var zero T
	pos, err := g.indices.PositionOf(e)
	if err != nil {
		return zero, err
	}
	gid := g.group[pos]
	value := g.data[gid]

	last := len(g.group) - 1
	g.group[pos] = g.group[last]
	g.group = g.group[:last]
	g.groupSize[gid]--

	if err := g.indices.Remove(e); err != nil {
		return zero, err
	}
	if g.groupSize[gid] == 0 {
		g.removeGroupID(gid)
	}
	return value, nil
}

// Clear removes every entity and group.
func (g *Grouped[T]) Clear() {
	g.indices.Clear()
	g.group = g.group[:0]
	g.groupSize = g.groupSize[:0]
	g.data = g.data[:0]
}

// Iter returns the present entities in packed order.
func (g *Grouped[T]) Iter() []Entity { return g.indices.Packed() }

// IterGroup calls fn for every entity currently in group gid, in packed
// order.
func (g *Grouped[T]) IterGroup(gid int, fn func(Entity)) {
	for i, e := range g.indices.Packed() {
		if g.group[i] == gid {
			fn(e)
		}
	}
}

// MakeUnique folds groups that happen to hold equal values into a single
// group, then compacts away now-empty groups. It is idempotent: calling it
// twice in a row leaves the store unchanged, and Get(e) is preserved for
// every entity.
func (g *Grouped[T]) MakeUnique() {
	for g0 := 0; g0 < len(g.data); g0++ {
		if g.groupSize[g0] == 0 {
			continue
		}
		for g1 := g0 + 1; g1 < len(g.data); g1++ {
			if g.groupSize[g1] == 0 || g.data[g1] != g.data[g0] {
				continue
			}
			for i, gg := range g.group {
				if gg == g1 {
					g.group[i] = g0
				}
			}
			g.groupSize[g0] += g.groupSize[g1]
			g.groupSize[g1] = 0
		}
	}

	newData := make([]T, 0, len(g.data))
	newSize := make([]int, 0, len(g.groupSize))
	remap := make([]int, len(g.data))
	for gid := range g.data {
		if g.groupSize[gid] == 0 {
			remap[gid] = -1
			continue
		}
		remap[gid] = len(newData)
		newData = append(newData, g.data[gid])
		newSize = append(newSize, g.groupSize[gid])
	}
	for i, gg := range g.group {
		g.group[i] = remap[gg]
	}
	g.data = newData
	g.groupSize = newSize
}
